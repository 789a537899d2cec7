package steps

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/bagcheckout/internal/bag"
	"github.com/nikolayk812/bagcheckout/internal/domain"
	"github.com/nikolayk812/bagcheckout/internal/port"
)

type PriceBag struct {
	store   port.BagStore
	catalog port.ProductCatalog
	policy  domain.DeliveryPolicy
}

func NewPriceBag(store port.BagStore, catalog port.ProductCatalog, policy domain.DeliveryPolicy) (PriceBag, error) {
	var s PriceBag

	if store == nil {
		return s, fmt.Errorf("store is nil")
	}
	if catalog == nil {
		return s, fmt.Errorf("catalog is nil")
	}

	return PriceBag{
		store:   store,
		catalog: catalog,
		policy:  policy,
	}, nil
}

func (s PriceBag) Name() string {
	return "price_bag"
}

func (s PriceBag) Run(ctx context.Context, state *State) error {
	b, err := s.store.GetBag(ctx, state.SessionID)
	if err != nil {
		return fmt.Errorf("store.GetBag: %w", err)
	}

	if b.IsEmpty() {
		return domain.ErrEmptyBag
	}

	snapshot, err := bag.ComputeSnapshot(ctx, b, s.catalog, s.policy)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: %w", domain.ErrProductGone, err)
		}
		return fmt.Errorf("bag.ComputeSnapshot: %w", err)
	}

	state.Bag = b
	state.Snapshot = snapshot

	return nil
}
