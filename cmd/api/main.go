package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aswaq-storefront/internal/cache"
	"aswaq-storefront/internal/clientstore"
	"aswaq-storefront/internal/config"
	"aswaq-storefront/internal/db"
	"aswaq-storefront/internal/httpserver"
	categoryrepo "aswaq-storefront/internal/repository/category"
	orderrepo "aswaq-storefront/internal/repository/order"
	productrepo "aswaq-storefront/internal/repository/product"
	cartsvc "aswaq-storefront/internal/service/cart"
	catalogsvc "aswaq-storefront/internal/service/catalog"
	ordersvc "aswaq-storefront/internal/service/order"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	store := sessionStore(ctx, cfg.RedisAddr, logger)

	productRepo := productrepo.NewPostgres(dbpool, logger)
	categoryRepo := categoryrepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)

	mem := cache.New(cfg.CacheCapacity, cfg.CacheTTL)
	local := clientstore.NewCache(store, cfg.LocalFreshness, logger)

	catalogService := catalogsvc.NewService(productRepo, categoryRepo, mem, cfg.HomeTimeout, logger)
	sessionReader := catalogsvc.NewSessionReader(productRepo, local, cfg.DedupWindow, logger)
	cartManager := cartsvc.NewManager(store, logger)
	orderService := ordersvc.New(orderRepo, cartManager, store, logger)

	srv := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Catalog: catalogService,
		Session: sessionReader,
		Cart:    cartManager,
		Orders:  orderService,
	}, cfg.AllowedOrigins)

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}

// sessionStore connects to Redis when an address is configured. Without
// one, or when the ping fails, carts and order tracking degrade to
// per-request state instead of blocking startup.
func sessionStore(ctx context.Context, addr string, logger *log.Logger) clientstore.Store {
	if addr == "" {
		logger.Printf("REDIS_ADDR not set, session store disabled")
		return clientstore.NewNoop()
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Printf("redis %s unreachable, session store disabled: %v", addr, err)
		return clientstore.NewNoop()
	}
	logger.Printf("session store on redis %s", addr)
	return clientstore.NewRedis(client)
}
