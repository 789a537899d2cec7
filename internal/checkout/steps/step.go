package steps

import (
	"context"

	"github.com/nikolayk812/bagcheckout/internal/domain"
	"github.com/nikolayk812/bagcheckout/internal/port"
)

type Step interface {
	Name() string
	Run(ctx context.Context, state *State) error
}

// State is passed through the checkout steps, each step fills in its part.
type State struct {
	SessionID string
	Customer  domain.CustomerDetails

	Bag      domain.Bag
	Snapshot domain.BagSnapshot
	Intent   port.PaymentIntent
	Order    domain.Order
}
