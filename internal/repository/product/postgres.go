package product

import (
	"context"
	"errors"
	"io"
	"log"

	"aswaq-storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

const productColumns = `id::text, name, price, COALESCE(description, ''), COALESCE(image, ''), COALESCE(category_id::text, ''), created_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) List(ctx context.Context, page, limit int) (domain.ProductPage, error) {
	const rangeQ = `
SELECT ` + productColumns + `
FROM products
ORDER BY created_at DESC
OFFSET $1 LIMIT $2
`
	const countQ = `SELECT COUNT(*) FROM products`
	return r.listPage(ctx, page, limit, rangeQ, countQ)
}

func (r *postgresRepo) ListByCategory(ctx context.Context, categoryID string, page, limit int) (domain.ProductPage, error) {
	const rangeQ = `
SELECT ` + productColumns + `
FROM products
WHERE category_id = $3
ORDER BY created_at DESC
OFFSET $1 LIMIT $2
`
	const countQ = `SELECT COUNT(*) FROM products WHERE category_id = $1`
	return r.listPage(ctx, page, limit, rangeQ, countQ, categoryID)
}

// listPage issues the row-range query and the count query concurrently.
// The range query failing fails the page; a count failure only degrades
// the total to zero.
func (r *postgresRepo) listPage(ctx context.Context, page, limit int, rangeQ, countQ string, extra ...interface{}) (domain.ProductPage, error) {
	offset := (page - 1) * limit

	var (
		products []domain.Product
		total    int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		args := append([]interface{}{offset, limit}, extra...)
		rows, err := r.pool.Query(gctx, rangeQ, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		products, err = scanProducts(rows)
		return err
	})
	g.Go(func() error {
		if err := r.pool.QueryRow(gctx, countQ, extra...).Scan(&total); err != nil {
			r.logger.Printf("product repo: count error=%v", err)
			total = 0
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		r.logger.Printf("product repo: list page=%d limit=%d error=%v", page, limit, err)
		return domain.ProductPage{}, err
	}
	return domain.NewProductPage(products, total, page, limit), nil
}

func (r *postgresRepo) ListNewest(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("product repo: list newest error=%v", err)
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE id = $1
`
	var p domain.Product
	err := r.pool.QueryRow(ctx, q, id).Scan(&p.ID, &p.Name, &p.Price, &p.Description, &p.Image, &p.CategoryID, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &p, nil
}

func scanProducts(rows pgx.Rows) ([]domain.Product, error) {
	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Description, &p.Image, &p.CategoryID, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
