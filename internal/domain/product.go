package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID    uuid.UUID
	SKU   string
	Name  string
	Price decimal.Decimal

	// HasSizes marks products sold per size; bag entries for them are always sized.
	HasSizes bool

	CreatedAt time.Time
}
