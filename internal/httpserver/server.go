package httpserver

import (
	"context"
	"log"
	"net/http"
	"time"

	"aswaq-storefront/internal/service/cart"
	"aswaq-storefront/internal/service/catalog"
	"aswaq-storefront/internal/service/order"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Deps are the services the router needs.
type Deps struct {
	Catalog *catalog.Service
	Session *catalog.SessionReader
	Cart    *cart.Manager
	Orders  *order.Service
}

// Server wraps the HTTP server setup.
type Server struct {
	httpServer *http.Server
	logger     *log.Logger
	db         *pgxpool.Pool
}

// New builds a Server with the storefront routes.
func New(addr string, logger *log.Logger, db *pgxpool.Pool, deps Deps, allowedOrigins []string) *Server {
	router := buildRouter(logger, db, deps, allowedOrigins)

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		httpServer: httpSrv,
		logger:     logger,
		db:         db,
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
