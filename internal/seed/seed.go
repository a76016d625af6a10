package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type productSeed struct {
	Name        string
	Description string
	Image       string
	Price       int64
	Category    string
}

// Apply inserts sample catalog data for manual testing. Names have no
// unique constraint, so idempotency is check-then-insert by name.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	categories := []string{"Rugs & Carpets", "Home Decor", "Kitchen"}
	categoryIDs := make(map[string]string, len(categories))
	for _, name := range categories {
		id, err := ensureCategory(ctx, pool, name)
		if err != nil {
			return fmt.Errorf("ensure category %q: %w", name, err)
		}
		categoryIDs[name] = id
	}

	products := []productSeed{
		{
			Name:        "Hand-Knotted Wool Carpet",
			Description: "Traditional hand-knotted carpet, 2x3m",
			Image:       "/images/wool-carpet.jpg",
			Price:       185000,
			Category:    "Rugs & Carpets",
		},
		{
			Name:        "Kilim Runner",
			Description: "Flat-woven runner for hallways",
			Image:       "/images/kilim-runner.jpg",
			Price:       64000,
			Category:    "Rugs & Carpets",
		},
		{
			Name:        "Embroidered Cushion Cover",
			Description: "Cotton cushion cover with floral embroidery",
			Image:       "/images/cushion-cover.jpg",
			Price:       9500,
			Category:    "Home Decor",
		},
		{
			Name:        "Brass Wall Mirror",
			Description: "Round wall mirror with hammered brass frame",
			Image:       "/images/brass-mirror.jpg",
			Price:       42000,
			Category:    "Home Decor",
		},
		{
			Name:        "Ceramic Serving Bowl",
			Description: "Glazed ceramic bowl, dishwasher safe",
			Image:       "/images/serving-bowl.jpg",
			Price:       15500,
			Category:    "Kitchen",
		},
		{
			Name:        "Copper Coffee Pot",
			Description: "Hand-beaten copper pot with wooden handle",
			Image:       "/images/coffee-pot.jpg",
			Price:       28000,
			Category:    "Kitchen",
		},
	}

	for _, p := range products {
		if err := ensureProduct(ctx, pool, categoryIDs[p.Category], p); err != nil {
			return fmt.Errorf("ensure product %q: %w", p.Name, err)
		}
	}

	return nil
}

func ensureCategory(ctx context.Context, pool *pgxpool.Pool, name string) (string, error) {
	var id string
	err := pool.QueryRow(ctx, `SELECT id::text FROM categories WHERE name = $1`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", err
	}
	const q = `INSERT INTO categories (name) VALUES ($1) RETURNING id::text`
	if err := pool.QueryRow(ctx, q, name).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func ensureProduct(ctx context.Context, pool *pgxpool.Pool, categoryID string, p productSeed) error {
	var exists bool
	err := pool.QueryRow(ctx, `SELECT true FROM products WHERE name = $1`, p.Name).Scan(&exists)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	const q = `
INSERT INTO products (name, price, description, image, category_id)
VALUES ($1, $2, $3, $4, $5)
`
	_, err = pool.Exec(ctx, q, p.Name, p.Price, p.Description, p.Image, categoryID)
	return err
}
