package steps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nikolayk812/bagcheckout/internal/domain"
	"github.com/nikolayk812/bagcheckout/internal/port"
)

type PersistOrder struct {
	transactor port.Transactor
}

func NewPersistOrder(transactor port.Transactor) (PersistOrder, error) {
	var s PersistOrder

	if transactor == nil {
		return s, fmt.Errorf("transactor is nil")
	}

	return PersistOrder{transactor: transactor}, nil
}

func (s PersistOrder) Name() string {
	return "persist_order"
}

// Run writes the order and all its line items in one transaction, either all of them survive or none.
// The payment intent is not cancelled when the transaction fails.
func (s PersistOrder) Run(ctx context.Context, state *State) error {
	originalBag, err := json.Marshal(state.Bag)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	var order domain.Order

	err = s.transactor.WithinTx(ctx, func(repos port.Repositories) error {
		order, err = repos.Orders.InsertOrder(ctx, domain.Order{
			Customer:         state.Customer,
			OriginalBag:      originalBag,
			PaymentReference: state.Intent.ID,
		})
		if err != nil {
			return fmt.Errorf("orders.InsertOrder: %w", err)
		}

		for _, entry := range state.Bag.Entries {
			product, err := repos.Products.GetProduct(ctx, entry.ProductID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return fmt.Errorf("%w: %w", domain.ErrProductGone, err)
				}
				return fmt.Errorf("products.GetProduct: %w", err)
			}

			for _, item := range lineItems(entry, product) {
				order, err = repos.Orders.ApplyLineItemChange(ctx, order.OrderNumber, domain.LineItemChange{
					Op:   domain.LineItemAdd,
					Item: item,
				})
				if err != nil {
					return fmt.Errorf("orders.ApplyLineItemChange: %w", err)
				}
			}
		}

		// the order must total exactly what the shopper was asked to pay
		if charged := state.Snapshot.GrandTotal.Round(2); !order.GrandTotal.Equal(charged) {
			return fmt.Errorf("%w: order[%s] charged[%s]", domain.ErrPriceChanged, order.GrandTotal, charged)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("transactor.WithinTx: %w", err)
	}

	state.Order = order

	return nil
}

// lineItems returns one line item for a simple entry and one per size for a sized entry.
func lineItems(entry domain.BagEntry, product domain.Product) []domain.OrderLineItem {
	if entry.Kind == domain.EntryKindSimple {
		return []domain.OrderLineItem{{Product: product, Quantity: entry.Quantity}}
	}

	items := make([]domain.OrderLineItem, 0, len(entry.ItemsBySize))
	for _, size := range entry.Sizes() {
		items = append(items, domain.OrderLineItem{
			Product:     product,
			ProductSize: size,
			Quantity:    entry.ItemsBySize[size],
		})
	}

	return items
}
