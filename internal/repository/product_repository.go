package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/bagcheckout/internal/db"
	"github.com/nikolayk812/bagcheckout/internal/domain"
	"github.com/nikolayk812/bagcheckout/internal/port"
)

type productRepository struct {
	q *db.Queries
}

func NewProduct(pool *pgxpool.Pool) port.ProductRepository {
	return &productRepository{
		q: db.New(pool),
	}
}

func NewProductWithTx(tx pgx.Tx) port.ProductRepository {
	return &productRepository{
		q: db.New(tx),
	}
}

func (r *productRepository) GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error) {
	var p domain.Product

	dbProduct, err := r.q.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return p, domain.NewNotFoundError("product", productID.String())
		}
		return p, fmt.Errorf("q.GetProduct: %w", err)
	}

	return mapDBProductToDomain(dbProduct), nil
}

func (r *productRepository) InsertProduct(ctx context.Context, product domain.Product) (uuid.UUID, error) {
	if product.Name == "" {
		return uuid.Nil, errors.New("name is empty")
	}
	if product.Price.IsNegative() {
		return uuid.Nil, errors.New("price is negative")
	}

	row, err := r.q.InsertProduct(ctx, db.InsertProductParams{
		Sku:      product.SKU,
		Name:     product.Name,
		Price:    product.Price,
		HasSizes: product.HasSizes,
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("q.InsertProduct: %w", err)
	}

	return row.ID, nil
}

func (r *productRepository) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	if productID == uuid.Nil {
		return fmt.Errorf("productID is empty")
	}

	cmdTag, err := r.q.DeleteProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("q.DeleteProduct: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("q.DeleteProduct: %w", domain.NewNotFoundError("product", productID.String()))
	}

	return nil
}

func mapDBProductToDomain(p db.Product) domain.Product {
	return domain.Product{
		ID:        p.ID,
		SKU:       p.Sku,
		Name:      p.Name,
		Price:     p.Price,
		HasSizes:  p.HasSizes,
		CreatedAt: p.CreatedAt,
	}
}
