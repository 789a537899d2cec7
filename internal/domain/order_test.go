package domain_test

import (
	"regexp"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/nikolayk812/bagcheckout/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPolicy = domain.DeliveryPolicy{
	FreeDeliveryThreshold:      decimal.NewFromInt(50),
	StandardDeliveryPercentage: decimal.NewFromInt(10),
}

func TestNewOrderNumber(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9A-F]{32}$`)

	seen := make(map[string]struct{})
	for range 100 {
		number := domain.NewOrderNumber()
		assert.Regexp(t, pattern, number)

		_, dup := seen[number]
		assert.False(t, dup)
		seen[number] = struct{}{}
	}
}

func TestApplyLineItemChange(t *testing.T) {
	mug := domain.Product{ID: mugID, Name: "Mug", Price: decimal.RequireFromString("10.00")}
	shirt := domain.Product{ID: shirtID, Name: "Shirt", Price: decimal.RequireFromString("20.00"), HasSizes: true}

	order := domain.Order{OrderNumber: domain.NewOrderNumber()}

	order, err := domain.ApplyLineItemChange(order, domain.LineItemChange{
		Op:   domain.LineItemAdd,
		Item: domain.OrderLineItem{Product: mug, Quantity: 2},
	}, testPolicy)
	require.NoError(t, err)
	require.Len(t, order.LineItems, 1)
	assert.NotEqual(t, uuid.Nil, order.LineItems[0].ID)
	assertTotals(t, order, "20.00", "2.00", "22.00")

	order, err = domain.ApplyLineItemChange(order, domain.LineItemChange{
		Op:   domain.LineItemAdd,
		Item: domain.OrderLineItem{Product: shirt, ProductSize: domain.ProductSizeL, Quantity: 3},
	}, testPolicy)
	require.NoError(t, err)
	assertTotals(t, order, "80.00", "0", "80.00")

	shirtLine := order.LineItems[1]
	assert.True(t, shirtLine.LineItemTotal.Equal(decimal.RequireFromString("60.00")))

	order, err = domain.ApplyLineItemChange(order, domain.LineItemChange{
		Op:   domain.LineItemUpdate,
		Item: domain.OrderLineItem{ID: shirtLine.ID, ProductSize: domain.ProductSizeM, Quantity: 1},
	}, testPolicy)
	require.NoError(t, err)
	assert.Equal(t, domain.ProductSizeM, order.LineItems[1].ProductSize)
	assertTotals(t, order, "40.00", "4.00", "44.00")

	order, err = domain.ApplyLineItemChange(order, domain.LineItemChange{
		Op:   domain.LineItemDelete,
		Item: domain.OrderLineItem{ID: order.LineItems[0].ID},
	}, testPolicy)
	require.NoError(t, err)
	require.Len(t, order.LineItems, 1)
	assertTotals(t, order, "20.00", "2.00", "22.00")
}

func TestApplyLineItemChangeInvalid(t *testing.T) {
	mug := domain.Product{ID: mugID, Name: "Mug", Price: decimal.RequireFromString("10.00")}

	order, err := domain.ApplyLineItemChange(domain.Order{}, domain.LineItemChange{
		Op:   domain.LineItemAdd,
		Item: domain.OrderLineItem{Product: mug, Quantity: 1},
	}, testPolicy)
	require.NoError(t, err)

	existing := order.LineItems[0]

	tests := []struct {
		name     string
		change   domain.LineItemChange
		wantErr  error
		wantText string
	}{
		{
			name:     "zero quantity add: fail",
			change:   domain.LineItemChange{Op: domain.LineItemAdd, Item: domain.OrderLineItem{Product: mug}},
			wantText: "item.Validate: quantity: 0 is not positive",
		},
		{
			name:     "missing product: fail",
			change:   domain.LineItemChange{Op: domain.LineItemAdd, Item: domain.OrderLineItem{Quantity: 1}},
			wantText: "item.Validate: product: is empty",
		},
		{
			name:     "duplicate id: fail",
			change:   domain.LineItemChange{Op: domain.LineItemAdd, Item: existing},
			wantText: "line item[" + existing.ID.String() + "] already exists",
		},
		{
			name:     "negative quantity update: fail",
			change:   domain.LineItemChange{Op: domain.LineItemUpdate, Item: domain.OrderLineItem{ID: existing.ID, Quantity: -1}},
			wantText: "item.Validate: quantity: -1 is not positive",
		},
		{
			name:    "unknown line item update: fail",
			change:  domain.LineItemChange{Op: domain.LineItemUpdate, Item: domain.OrderLineItem{ID: uuid.New(), Quantity: 1}},
			wantErr: domain.ErrNotFound,
		},
		{
			name:    "unknown line item delete: fail",
			change:  domain.LineItemChange{Op: domain.LineItemDelete, Item: domain.OrderLineItem{ID: uuid.New()}},
			wantErr: domain.ErrNotFound,
		},
		{
			name:     "unknown op: fail",
			change:   domain.LineItemChange{Op: "merge"},
			wantText: "unknown line item op[merge]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ApplyLineItemChange(order, tt.change, testPolicy)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.EqualError(t, err, tt.wantText)
			}

			// a failed change hands back the order untouched
			assert.Equal(t, order, got)
		})
	}
}

func TestApplyLineItemChangeKeepsTotalsInSync(t *testing.T) {
	products := []domain.Product{
		{ID: uuid.New(), Price: decimal.RequireFromString("3.33")},
		{ID: uuid.New(), Price: decimal.RequireFromString("12.49")},
		{ID: uuid.New(), Price: decimal.RequireFromString("0.99")},
	}

	order := domain.Order{}

	for range 100 {
		var change domain.LineItemChange

		switch {
		case len(order.LineItems) == 0 || gofakeit.Number(0, 2) == 0:
			change = domain.LineItemChange{Op: domain.LineItemAdd, Item: domain.OrderLineItem{
				Product:  products[gofakeit.Number(0, len(products)-1)],
				Quantity: gofakeit.Number(1, 5),
			}}
		case gofakeit.Bool():
			item := order.LineItems[gofakeit.Number(0, len(order.LineItems)-1)]
			change = domain.LineItemChange{Op: domain.LineItemUpdate, Item: domain.OrderLineItem{ID: item.ID, Quantity: gofakeit.Number(1, 5)}}
		default:
			item := order.LineItems[gofakeit.Number(0, len(order.LineItems)-1)]
			change = domain.LineItemChange{Op: domain.LineItemDelete, Item: domain.OrderLineItem{ID: item.ID}}
		}

		var err error
		order, err = domain.ApplyLineItemChange(order, change, testPolicy)
		require.NoError(t, err)

		sum := decimal.Zero
		for _, item := range order.LineItems {
			assert.True(t, item.LineItemTotal.Equal(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))))
			sum = sum.Add(item.LineItemTotal)
		}
		require.True(t, order.OrderTotal.Equal(sum))
		require.True(t, order.GrandTotal.Equal(order.OrderTotal.Add(order.DeliveryCost)))
		require.True(t, order.DeliveryCost.Equal(testPolicy.DeliveryFee(sum).Round(2)))
	}
}

func TestUpdateTotalRoundsDelivery(t *testing.T) {
	order := domain.Order{LineItems: []domain.OrderLineItem{
		{LineItemTotal: decimal.RequireFromString("3.33")},
	}}

	order.UpdateTotal(testPolicy)

	assertTotals(t, order, "3.33", "0.33", "3.66")
}

func assertTotals(t *testing.T, order domain.Order, orderTotal, delivery, grandTotal string) {
	t.Helper()

	assert.True(t, order.OrderTotal.Equal(decimal.RequireFromString(orderTotal)), "order total %s", order.OrderTotal)
	assert.True(t, order.DeliveryCost.Equal(decimal.RequireFromString(delivery)), "delivery %s", order.DeliveryCost)
	assert.True(t, order.GrandTotal.Equal(decimal.RequireFromString(grandTotal)), "grand total %s", order.GrandTotal)
}
