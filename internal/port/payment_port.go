package port

import (
	"context"

	"github.com/nikolayk812/bagcheckout/internal/domain"
)

type PaymentIntent struct {
	ID           string
	ClientSecret string
}

type PaymentIntents interface {
	// CreateIntent fails with a *domain.ExternalServiceError when the provider call fails.
	CreateIntent(ctx context.Context, amount domain.Money, metadata map[string]string) (PaymentIntent, error)
}
