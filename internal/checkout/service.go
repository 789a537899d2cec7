package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nikolayk812/bagcheckout/internal/checkout/steps"
	"github.com/nikolayk812/bagcheckout/internal/domain"
	"github.com/nikolayk812/bagcheckout/internal/port"
	"github.com/nikolayk812/bagcheckout/internal/template"
)

// Service places orders from session bags and reports the outcome to the shopper.
type Service struct {
	pipeline Pipeline
	orders   port.OrderRepository
	messages *template.Engine
}

func NewService(pipeline Pipeline, orders port.OrderRepository, messages *template.Engine) (*Service, error) {
	if len(pipeline.steps) == 0 {
		return nil, errors.New("pipeline has no steps")
	}
	if orders == nil {
		return nil, errors.New("orders is nil")
	}
	if messages == nil {
		return nil, errors.New("messages is nil")
	}

	return &Service{
		pipeline: pipeline,
		orders:   orders,
		messages: messages,
	}, nil
}

// Receipt is a placed order together with the client secret the shopper confirms the payment with.
// The secret is never persisted.
type Receipt struct {
	Order        domain.Order
	ClientSecret string
}

// PlaceOrder either returns a fully persisted order or leaves no order behind.
// Errors match domain.ValidationErrors, domain.ErrEmptyBag, *domain.ExternalServiceError,
// domain.ErrProductGone or domain.ErrPriceChanged.
func (s *Service) PlaceOrder(ctx context.Context, sessionID string, customer domain.CustomerDetails, n port.Notifier) (Receipt, error) {
	var r Receipt

	if sessionID == "" {
		return r, errors.New("sessionID is empty")
	}

	state := &steps.State{
		SessionID: sessionID,
		Customer:  customer,
	}

	if err := s.pipeline.Run(ctx, state); err != nil {
		s.notifyFailure(n, err)
		return r, err
	}

	s.notify(n.Success, template.CheckoutSuccess, template.BuildOrderDataMap(state.Order.OrderNumber, state.Order.Customer.Email))

	return Receipt{
		Order:        state.Order,
		ClientSecret: state.Intent.ClientSecret,
	}, nil
}

func (s *Service) GetOrder(ctx context.Context, orderNumber string) (domain.Order, error) {
	order, err := s.orders.GetOrder(ctx, orderNumber)
	if err != nil {
		return order, fmt.Errorf("orders.GetOrder: %w", err)
	}

	return order, nil
}

func (s *Service) notifyFailure(n port.Notifier, err error) {
	var (
		validationErrs domain.ValidationErrors
		externalErr    *domain.ExternalServiceError
	)

	switch {
	case errors.As(err, &validationErrs):
		s.notify(n.Error, template.CheckoutFormInvalid, nil)
	case errors.Is(err, domain.ErrEmptyBag):
		s.notify(n.Error, template.CheckoutEmptyBag, nil)
	case errors.Is(err, domain.ErrProductGone):
		s.notify(n.Error, template.CheckoutProductGone, nil)
	case errors.Is(err, domain.ErrPriceChanged):
		s.notify(n.Error, template.CheckoutPriceChanged, nil)
	case errors.As(err, &externalErr):
		s.notify(n.Warning, template.CheckoutPaymentFailed, nil)
	default:
		slog.Error("Checkout failed",
			"method", "Service.PlaceOrder",
			"error", err)
	}
}

func (s *Service) notify(send func(string), name string, data map[string]string) {
	msg, err := s.messages.Execute(name, data)
	if err != nil {
		slog.Error("Message rendering failed",
			"method", "Service.notify",
			"template", name,
			"error", err)
		return
	}

	send(msg)
}
