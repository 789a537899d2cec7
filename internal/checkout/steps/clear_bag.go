package steps

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nikolayk812/bagcheckout/internal/port"
)

type ClearBag struct {
	store port.BagStore
}

func NewClearBag(store port.BagStore) (ClearBag, error) {
	var s ClearBag

	if store == nil {
		return s, fmt.Errorf("store is nil")
	}

	return ClearBag{store: store}, nil
}

func (s ClearBag) Name() string {
	return "clear_bag"
}

// Run never fails, the order is already committed at this point.
func (s ClearBag) Run(ctx context.Context, state *State) error {
	if err := s.store.ClearBag(ctx, state.SessionID); err != nil {
		slog.Error("Bag not cleared after checkout",
			"method", "ClearBag.Run",
			"session_id", state.SessionID,
			"order_number", state.Order.OrderNumber,
			"error", err)
	}

	return nil
}
