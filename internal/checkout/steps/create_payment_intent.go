package steps

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nikolayk812/bagcheckout/internal/domain"
	"github.com/nikolayk812/bagcheckout/internal/port"
	"golang.org/x/text/currency"
)

type CreatePaymentIntent struct {
	intents  port.PaymentIntents
	currency currency.Unit
}

func NewCreatePaymentIntent(intents port.PaymentIntents, cur currency.Unit) (CreatePaymentIntent, error) {
	var s CreatePaymentIntent

	if intents == nil {
		return s, fmt.Errorf("intents is nil")
	}
	if cur == (currency.Unit{}) {
		return s, fmt.Errorf("currency is empty")
	}

	return CreatePaymentIntent{
		intents:  intents,
		currency: cur,
	}, nil
}

func (s CreatePaymentIntent) Name() string {
	return "create_payment_intent"
}

func (s CreatePaymentIntent) Run(ctx context.Context, state *State) error {
	bagJSON, err := json.Marshal(state.Bag)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	amount := domain.Money{
		Amount:   state.Snapshot.GrandTotal,
		Currency: s.currency,
	}

	intent, err := s.intents.CreateIntent(ctx, amount, map[string]string{
		"session_id": state.SessionID,
		"email":      state.Customer.Email,
		"bag":        string(bagJSON),
	})
	if err != nil {
		return fmt.Errorf("intents.CreateIntent: %w", err)
	}

	state.Intent = intent

	return nil
}
