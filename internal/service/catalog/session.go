package catalog

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"time"

	"aswaq-storefront/internal/clientstore"
	"aswaq-storefront/internal/domain"
	productrepo "aswaq-storefront/internal/repository/product"
	"golang.org/x/sync/singleflight"
)

// DefaultDedupWindow is how long a fetched result keeps answering
// repeat requests for the same key without touching the store.
const DefaultDedupWindow = 2 * time.Minute

// SessionReader is the client-path reader: a durable per-session cache
// tier in front of the repositories, plus request deduplication.
// Concurrent reads for one key share a single underlying fetch, and
// reads inside the dedup window reuse the most recent result. There is
// no revalidation trigger beyond the caches going stale or an explicit
// key change.
type SessionReader struct {
	products productrepo.Repository
	local    *clientstore.Cache
	window   time.Duration
	logger   *log.Logger

	group  singleflight.Group
	mu     sync.Mutex
	recent map[string]recentResult

	now func() time.Time
}

type recentResult struct {
	at    time.Time
	value interface{}
}

func NewSessionReader(products productrepo.Repository, local *clientstore.Cache, window time.Duration, logger *log.Logger) *SessionReader {
	if window <= 0 {
		window = DefaultDedupWindow
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &SessionReader{
		products: products,
		local:    local,
		window:   window,
		logger:   logger,
		recent:   make(map[string]recentResult),
		now:      time.Now,
	}
}

// Products returns one page of the product listing through the
// client-path tiers.
func (r *SessionReader) Products(ctx context.Context, page, limit int) (domain.ProductPage, error) {
	page, limit = normalizePage(page, limit)
	key := productsKey(page, limit)

	var cached domain.ProductPage
	if r.local.Read(ctx, key, &cached) {
		return cached, nil
	}

	v, err := r.fetch(key, func() (interface{}, error) {
		result, err := r.products.List(ctx, page, limit)
		if err != nil {
			return nil, err
		}
		r.local.Write(ctx, key, result)
		return result, nil
	})
	if err != nil {
		return domain.ProductPage{}, err
	}
	return v.(domain.ProductPage), nil
}

// ProductByID resolves a product through the client-path tiers. A
// missing product is nil with no error, and the absence is remembered
// for the dedup window like any other result.
func (r *SessionReader) ProductByID(ctx context.Context, id string) (*domain.Product, error) {
	key := productKey(id)

	var cached domain.Product
	if r.local.Read(ctx, key, &cached) {
		return &cached, nil
	}

	v, err := r.fetch(key, func() (interface{}, error) {
		p, err := r.products.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return (*domain.Product)(nil), nil
			}
			return nil, err
		}
		r.local.Write(ctx, key, *p)
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Product), nil
}

// fetch answers from the dedup window when it can, otherwise runs fn
// once no matter how many callers arrive with the same key.
func (r *SessionReader) fetch(key string, fn func() (interface{}, error)) (interface{}, error) {
	if v, ok := r.recentResult(key); ok {
		return v, nil
	}
	v, err, shared := r.group.Do(key, fn)
	if err != nil {
		return nil, err
	}
	if shared {
		r.logger.Printf("catalog: deduplicated fetch key=%s", key)
	}
	r.remember(key, v)
	return v, nil
}

func (r *SessionReader) recentResult(key string) (interface{}, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.recent[key]
	if !ok {
		return nil, false
	}
	if r.now().Sub(res.at) >= r.window {
		delete(r.recent, key)
		return nil, false
	}
	return res.value, true
}

func (r *SessionReader) remember(key string, v interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	for k, res := range r.recent {
		if now.Sub(res.at) >= r.window {
			delete(r.recent, k)
		}
	}
	r.recent[key] = recentResult{at: now, value: v}
}
