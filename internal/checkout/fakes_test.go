package checkout_test

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/nikolayk812/bagcheckout/internal/domain"
	"github.com/nikolayk812/bagcheckout/internal/port"
)

type fakeCatalog map[uuid.UUID]domain.Product

func (c fakeCatalog) GetProduct(_ context.Context, productID uuid.UUID) (domain.Product, error) {
	p, ok := c[productID]
	if !ok {
		return domain.Product{}, domain.NewNotFoundError("product", productID.String())
	}
	return p, nil
}

// fakeOrders keeps orders by order number.
type fakeOrders struct {
	policy domain.DeliveryPolicy
	orders map[string]domain.Order
}

func (r *fakeOrders) GetOrder(_ context.Context, orderNumber string) (domain.Order, error) {
	o, ok := r.orders[orderNumber]
	if !ok {
		return domain.Order{}, domain.NewNotFoundError("order", orderNumber)
	}
	return o, nil
}

func (r *fakeOrders) SearchOrders(_ context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	var result []domain.Order
	for _, number := range filter.OrderNumbers {
		if o, ok := r.orders[number]; ok {
			result = append(result, o)
		}
	}
	return result, nil
}

func (r *fakeOrders) InsertOrder(_ context.Context, order domain.Order) (domain.Order, error) {
	if order.ID != uuid.Nil {
		return domain.Order{}, errors.New("order is already persisted")
	}

	order.ID = uuid.New()
	order.OrderNumber = domain.NewOrderNumber()
	items := order.LineItems
	order.LineItems = nil
	order.UpdateTotal(r.policy)

	for _, item := range items {
		var err error
		order, err = domain.ApplyLineItemChange(order, domain.LineItemChange{Op: domain.LineItemAdd, Item: item}, r.policy)
		if err != nil {
			return domain.Order{}, err
		}
	}

	r.orders[order.OrderNumber] = order
	return order, nil
}

func (r *fakeOrders) ApplyLineItemChange(ctx context.Context, orderNumber string, change domain.LineItemChange) (domain.Order, error) {
	current, err := r.GetOrder(ctx, orderNumber)
	if err != nil {
		return domain.Order{}, err
	}

	updated, err := domain.ApplyLineItemChange(current, change, r.policy)
	if err != nil {
		return domain.Order{}, err
	}

	r.orders[orderNumber] = updated
	return updated, nil
}

func (r *fakeOrders) DeleteOrder(_ context.Context, orderNumber string) error {
	if _, ok := r.orders[orderNumber]; !ok {
		return domain.NewNotFoundError("order", orderNumber)
	}
	delete(r.orders, orderNumber)
	return nil
}

// fakeTransactor stages writes on a copy of the committed orders and keeps them only when fn succeeds.
type fakeTransactor struct {
	mu        sync.Mutex
	committed *fakeOrders
	catalog   port.ProductCatalog
}

func newFakeTransactor(policy domain.DeliveryPolicy, catalog port.ProductCatalog) *fakeTransactor {
	return &fakeTransactor{
		committed: &fakeOrders{policy: policy, orders: map[string]domain.Order{}},
		catalog:   catalog,
	}
}

func (t *fakeTransactor) WithinTx(_ context.Context, fn func(repos port.Repositories) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	staging := &fakeOrders{policy: t.committed.policy, orders: maps.Clone(t.committed.orders)}

	if err := fn(port.Repositories{Orders: staging, Products: t.catalog}); err != nil {
		return err
	}

	t.committed.orders = staging.orders
	return nil
}

func (t *fakeTransactor) orders() []domain.Order {
	t.mu.Lock()
	defer t.mu.Unlock()

	return slices.Collect(maps.Values(t.committed.orders))
}

type fakeIntents struct {
	err    error
	calls  int
	amount domain.Money
	meta   map[string]string
}

func (f *fakeIntents) CreateIntent(_ context.Context, amount domain.Money, metadata map[string]string) (port.PaymentIntent, error) {
	f.calls++
	f.amount = amount
	f.meta = metadata

	if f.err != nil {
		return port.PaymentIntent{}, &domain.ExternalServiceError{Service: "payment intents", Err: f.err}
	}

	return port.PaymentIntent{ID: "pi_test", ClientSecret: "pi_test_secret"}, nil
}
