package bag_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/bagcheckout/internal/domain"
)

type fakeCatalog map[uuid.UUID]domain.Product

func (c fakeCatalog) GetProduct(_ context.Context, productID uuid.UUID) (domain.Product, error) {
	p, ok := c[productID]
	if !ok {
		return domain.Product{}, domain.NewNotFoundError("product", productID.String())
	}
	return p, nil
}
