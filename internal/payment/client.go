package payment

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/nikolayk812/bagcheckout/internal/domain"
	"github.com/nikolayk812/bagcheckout/internal/port"
)

const serviceName = "payment intents"

type Config struct {
	BaseURL   string
	SecretKey string
	Timeout   time.Duration
}

// Client creates payment intents on a Stripe compatible API.
// Calls are never retried, a failed intent is reported to the caller.
type Client struct {
	http *resty.Client
}

type intentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("base url is empty")
	}
	if cfg.SecretKey == "" {
		return nil, errors.New("secret key is empty")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	http := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetAuthToken(cfg.SecretKey).
		SetHeader("Accept", "application/json")

	return &Client{http: http}, nil
}

// CreateIntent fails with *domain.ExternalServiceError on transport errors and non-2xx answers.
func (c *Client) CreateIntent(ctx context.Context, amount domain.Money, metadata map[string]string) (port.PaymentIntent, error) {
	var pi port.PaymentIntent

	minor, err := amount.MinorUnits()
	if err != nil {
		return pi, fmt.Errorf("amount.MinorUnits: %w", err)
	}

	form := map[string]string{
		"amount":   strconv.FormatInt(minor, 10),
		"currency": strings.ToLower(amount.Currency.String()),
	}
	for k, v := range metadata {
		form["metadata["+k+"]"] = v
	}

	var (
		result  intentResponse
		failure errorResponse
	)

	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(form).
		SetResult(&result).
		SetError(&failure).
		Post("/v1/payment_intents")
	if err != nil {
		return pi, &domain.ExternalServiceError{Service: serviceName, Err: err}
	}

	if resp.IsError() {
		reason := failure.Error.Message
		if reason == "" {
			reason = strings.TrimSpace(string(resp.Body()))
		}
		return pi, &domain.ExternalServiceError{
			Service: serviceName,
			Err:     fmt.Errorf("status %d: %s", resp.StatusCode(), reason),
		}
	}

	if result.ID == "" || result.ClientSecret == "" {
		return pi, &domain.ExternalServiceError{Service: serviceName, Err: errors.New("incomplete response")}
	}

	return port.PaymentIntent{
		ID:           result.ID,
		ClientSecret: result.ClientSecret,
	}, nil
}
