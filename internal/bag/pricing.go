package bag

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/bagcheckout/internal/domain"
	"github.com/nikolayk812/bagcheckout/internal/port"
	"github.com/shopspring/decimal"
)

// ComputeSnapshot prices b against the catalog. A product missing from the
// catalog fails the whole snapshot, the error wraps *domain.NotFoundError.
func ComputeSnapshot(ctx context.Context, b domain.Bag, catalog port.ProductCatalog, policy domain.DeliveryPolicy) (domain.BagSnapshot, error) {
	var s domain.BagSnapshot

	if catalog == nil {
		return s, errors.New("catalog is nil")
	}

	total := decimal.Zero
	var count int

	lines := make([]domain.BagLine, 0, len(b.Entries))

	for _, entry := range b.Entries {
		product, err := catalog.GetProduct(ctx, entry.ProductID)
		if err != nil {
			return s, fmt.Errorf("catalog.GetProduct: %w", err)
		}

		for _, line := range entryLines(entry, product) {
			total = total.Add(line.Subtotal())
			count += line.Quantity
			lines = append(lines, line)
		}
	}

	delivery := policy.DeliveryFee(total)

	return domain.BagSnapshot{
		Lines:                 lines,
		Total:                 total,
		ProductCount:          count,
		Delivery:              delivery,
		FreeDeliveryDelta:     policy.FreeDeliveryDelta(total),
		FreeDeliveryThreshold: policy.FreeDeliveryThreshold,
		GrandTotal:            total.Add(delivery),
	}, nil
}

// entryLines expands a sized entry into one line per size, smallest size first.
func entryLines(entry domain.BagEntry, product domain.Product) []domain.BagLine {
	if entry.Kind == domain.EntryKindSimple {
		return []domain.BagLine{{
			ProductID: entry.ProductID,
			Quantity:  entry.Quantity,
			Product:   product,
		}}
	}

	lines := make([]domain.BagLine, 0, len(entry.ItemsBySize))
	for _, size := range entry.Sizes() {
		lines = append(lines, domain.BagLine{
			ProductID: entry.ProductID,
			Quantity:  entry.ItemsBySize[size],
			Product:   product,
			Size:      size,
		})
	}

	return lines
}
