package order

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"aswaq-storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

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

// Create writes the order header and all line items in one transaction,
// so a failed line batch never leaves an orphaned header behind.
func (r *postgresRepo) Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	const headerQ = `
INSERT INTO orders (customer_name, total_amount, status, notes)
VALUES ($1, $2, $3, NULLIF($4, ''))
RETURNING id::text, created_at
`
	ord := domain.Order{
		CustomerName: in.CustomerName,
		TotalAmount:  in.TotalAmount,
		Status:       in.Status,
		Notes:        in.Notes,
	}
	if err := tx.QueryRow(ctx, headerQ, in.CustomerName, in.TotalAmount, in.Status, in.Notes).Scan(&ord.ID, &ord.CreatedAt); err != nil {
		r.logger.Printf("order repo: insert header customer=%q error=%v", in.CustomerName, err)
		return nil, fmt.Errorf("insert order: %w", err)
	}

	const lineQ = `
INSERT INTO order_items (order_id, product_id, quantity, unit_price, total_price)
VALUES ($1, $2, $3, $4, $5)
`
	batch := &pgx.Batch{}
	for _, line := range in.Lines {
		batch.Queue(lineQ, ord.ID, line.ProductID, line.Quantity, line.UnitPrice, line.TotalPrice)
	}
	br := tx.SendBatch(ctx, batch)
	for range in.Lines {
		if _, err := br.Exec(); err != nil {
			br.Close()
			r.logger.Printf("order repo: insert lines order_id=%s error=%v", ord.ID, err)
			return nil, fmt.Errorf("insert order items: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return nil, fmt.Errorf("close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit order: %w", err)
	}

	for _, line := range in.Lines {
		ord.Lines = append(ord.Lines, domain.OrderLine{
			OrderID:    ord.ID,
			ProductID:  line.ProductID,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
			TotalPrice: line.TotalPrice,
		})
	}
	r.logger.Printf("order repo: created id=%s lines=%d total=%d", ord.ID, len(ord.Lines), ord.TotalAmount)
	return &ord, nil
}

func (r *postgresRepo) GetStatus(ctx context.Context, id string) (string, error) {
	const q = `SELECT status FROM orders WHERE id = $1`
	var status string
	if err := r.pool.QueryRow(ctx, q, id).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	return status, nil
}
