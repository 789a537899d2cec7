package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/bagcheckout/internal/domain"
)

// ProductCatalog returns a *domain.NotFoundError for unknown products.
type ProductCatalog interface {
	GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error)
}

type ProductRepository interface {
	ProductCatalog

	InsertProduct(ctx context.Context, product domain.Product) (uuid.UUID, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error
}
