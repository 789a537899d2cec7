package port

import (
	"context"

	"github.com/nikolayk812/bagcheckout/internal/domain"
)

type OrderRepository interface {
	GetOrder(ctx context.Context, orderNumber string) (domain.Order, error)

	SearchOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)

	// InsertOrder assigns the order number when it is empty and persists the order
	// together with its line items. The returned order carries recomputed totals.
	InsertOrder(ctx context.Context, order domain.Order) (domain.Order, error)

	// ApplyLineItemChange persists one line item mutation and the recomputed order totals atomically.
	ApplyLineItemChange(ctx context.Context, orderNumber string, change domain.LineItemChange) (domain.Order, error)

	// DeleteOrder deletes the order and, by cascade, its line items.
	DeleteOrder(ctx context.Context, orderNumber string) error
}
