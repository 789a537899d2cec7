package domain_test

import (
	"testing"
	"time"

	"github.com/nikolayk812/bagcheckout/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func TestDeliveryFee(t *testing.T) {
	tests := []struct {
		name      string
		total     string
		wantFee   string
		wantDelta string
	}{
		{name: "empty bag: ok", total: "0", wantFee: "0", wantDelta: "50"},
		{name: "below threshold: ok", total: "49.99", wantFee: "4.999", wantDelta: "0.01"},
		{name: "at threshold: ok", total: "50.00", wantFee: "0", wantDelta: "0"},
		{name: "above threshold: ok", total: "120", wantFee: "0", wantDelta: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := decimal.RequireFromString(tt.total)

			fee := testPolicy.DeliveryFee(total)
			assert.True(t, fee.Equal(decimal.RequireFromString(tt.wantFee)), fee.String())

			delta := testPolicy.FreeDeliveryDelta(total)
			assert.True(t, delta.Equal(decimal.RequireFromString(tt.wantDelta)), delta.String())
		})
	}
}

func TestDeliveryPolicyValidate(t *testing.T) {
	tests := []struct {
		name      string
		policy    domain.DeliveryPolicy
		wantError string
	}{
		{
			name:   "zero percentage: ok",
			policy: domain.DeliveryPolicy{FreeDeliveryThreshold: decimal.NewFromInt(50)},
		},
		{
			name:      "negative threshold: fail",
			policy:    domain.DeliveryPolicy{FreeDeliveryThreshold: decimal.NewFromInt(-1)},
			wantError: "free delivery threshold is negative",
		},
		{
			name:      "percentage above 100: fail",
			policy:    domain.DeliveryPolicy{StandardDeliveryPercentage: decimal.RequireFromString("100.5")},
			wantError: "standard delivery percentage[100.5] is out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.policy.Validate()
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestMoneyMinorUnits(t *testing.T) {
	tests := []struct {
		name      string
		money     domain.Money
		want      int64
		wantError string
	}{
		{
			name:  "two decimals: ok",
			money: domain.Money{Amount: decimal.RequireFromString("44.00"), Currency: currency.USD},
			want:  4400,
		},
		{
			name:  "half cent rounds up: ok",
			money: domain.Money{Amount: decimal.RequireFromString("132.005"), Currency: currency.GBP},
			want:  13201,
		},
		{
			name:  "zero decimal currency: ok",
			money: domain.Money{Amount: decimal.RequireFromString("1234.5"), Currency: currency.JPY},
			want:  1235,
		},
		{
			name:      "missing currency: fail",
			money:     domain.Money{Amount: decimal.NewFromInt(1)},
			wantError: "currency is empty",
		},
		{
			name:      "negative amount: fail",
			money:     domain.Money{Amount: decimal.NewFromInt(-1), Currency: currency.EUR},
			wantError: "amount[-1] is negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.money.MinorUnits()
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToProductSize(t *testing.T) {
	for _, input := range []string{"xs", " S ", "m", "L", "xl"} {
		_, err := domain.ToProductSize(input)
		assert.NoError(t, err, input)
	}

	size, err := domain.ToProductSize("xl")
	require.NoError(t, err)
	assert.Equal(t, domain.ProductSizeXL, size)

	_, err = domain.ToProductSize("XXL")
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "product_size", ve.Field)

	assert.Equal(t, []domain.ProductSize{"XS", "S", "M", "L", "XL"}, domain.ProductSizes())
}

func TestOrderFilterValidate(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		filter    domain.OrderFilter
		wantError string
	}{
		{
			name:   "order numbers: ok",
			filter: domain.OrderFilter{OrderNumbers: []string{domain.NewOrderNumber()}},
		},
		{
			name:   "created after: ok",
			filter: domain.OrderFilter{CreatedAt: &domain.TimeRange{After: lo.ToPtr(now)}},
		},
		{
			name:      "empty: fail",
			filter:    domain.OrderFilter{},
			wantError: "all fields are empty",
		},
		{
			name:      "empty range: fail",
			filter:    domain.OrderFilter{CreatedAt: &domain.TimeRange{}},
			wantError: "createdAt: both Before and After are nil",
		},
		{
			name: "inverted range: fail",
			filter: domain.OrderFilter{CreatedAt: &domain.TimeRange{
				Before: lo.ToPtr(now.Add(-time.Hour)),
				After:  lo.ToPtr(now),
			}},
			wantError: "createdAt: before is before After",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.filter.Validate()
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestErrors(t *testing.T) {
	notFound := domain.NewNotFoundError("order", "ABC")
	assert.EqualError(t, notFound, "order[ABC] not found")
	assert.ErrorIs(t, notFound, domain.ErrNotFound)

	errs := domain.ValidationErrors{
		domain.NewValidationError("email", "is required"),
		domain.NewValidationError("country", "is required"),
	}
	assert.EqualError(t, errs, "email: is required\ncountry: is required")

	var ve *domain.ValidationError
	require.ErrorAs(t, errs, &ve)
	assert.Equal(t, "email", ve.Field)
}
