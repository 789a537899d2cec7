package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BagSnapshot is the priced, read-only view of a bag. It is derived on every read and never stored.
type BagSnapshot struct {
	Lines []BagLine

	Total                 decimal.Decimal
	ProductCount          int
	Delivery              decimal.Decimal
	FreeDeliveryDelta     decimal.Decimal
	FreeDeliveryThreshold decimal.Decimal
	GrandTotal            decimal.Decimal
}

type BagLine struct {
	ProductID uuid.UUID
	Quantity  int
	Product   Product
	// Size is empty for simple entries.
	Size ProductSize
}

func (l BagLine) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
