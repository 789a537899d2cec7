package repository_test

import (
	"encoding/json"
	"sort"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
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

func randomProduct(hasSizes bool) domain.Product {
	return domain.Product{
		SKU:  gofakeit.Regex("[A-Z]{2}[0-9]{6}"),
		Name: gofakeit.ProductName(),
		// numeric(10,2) keeps cents only
		Price:    decimal.NewFromFloat(gofakeit.Price(1, 100)).Round(2),
		HasSizes: hasSizes,
	}
}

func randomCustomer() domain.CustomerDetails {
	return domain.CustomerDetails{
		FullName:       truncate(gofakeit.Name(), 50),
		Email:          gofakeit.Email(),
		PhoneNumber:    gofakeit.Numerify("+44##########"),
		Country:        truncate(gofakeit.Country(), 40),
		Postcode:       gofakeit.Zip(),
		TownOrCity:     truncate(gofakeit.City(), 40),
		StreetAddress1: truncate(gofakeit.Street(), 80),
		StreetAddress2: truncate(gofakeit.StreetName(), 80),
		County:         truncate(gofakeit.State(), 80),
	}
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func randomLineItem(product domain.Product) domain.OrderLineItem {
	item := domain.OrderLineItem{
		Product:  product,
		Quantity: gofakeit.Number(1, 5),
	}

	if product.HasSizes {
		sizes := domain.ProductSizes()
		item.ProductSize = sizes[gofakeit.Number(0, len(sizes)-1)]
	}

	return item
}

var decimalComparer = cmp.Comparer(func(x, y decimal.Decimal) bool {
	return x.Equal(y)
})

var jsonComparer = cmp.Comparer(func(x, y []byte) bool {
	if len(x) == 0 && len(y) == 0 {
		return true
	}

	var normalizedX, normalizedY any

	if err := json.Unmarshal(x, &normalizedX); err != nil {
		return false
	}
	if err := json.Unmarshal(y, &normalizedY); err != nil {
		return false
	}

	return cmp.Equal(normalizedX, normalizedY)
})

func assertOrder(t *testing.T, expected, actual domain.Order) {
	t.Helper()

	opts := cmp.Options{
		cmpopts.IgnoreFields(domain.OrderLineItem{}, "ID", "CreatedAt"),
		cmpopts.IgnoreFields(domain.Product{}, "CreatedAt"),
		cmpopts.IgnoreFields(domain.Order{}, "ID", "CreatedAt", "UpdatedAt"),
		cmpopts.EquateEmpty(),
		decimalComparer,
		cmp.FilterPath(func(p cmp.Path) bool {
			return p.Last().String() == ".OriginalBag"
		}, jsonComparer),
	}

	diff := cmp.Diff(expected, actual, opts)
	assert.Empty(t, diff)

	assert.NotEqual(t, uuid.Nil, actual.ID)
	assert.False(t, actual.CreatedAt.IsZero())
	assert.False(t, actual.UpdatedAt.IsZero())
	assert.True(t, actual.GrandTotal.Equal(actual.OrderTotal.Add(actual.DeliveryCost)))

	for _, item := range actual.LineItems {
		assert.NotEqual(t, uuid.Nil, item.ID)
		assert.True(t, item.LineItemTotal.Equal(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))))
	}
}

func assertOrders(t *testing.T, expected, actual []domain.Order) {
	t.Helper()

	sortOrders := func(orders []domain.Order) {
		sort.Slice(orders, func(i, j int) bool {
			return orders[i].OrderNumber < orders[j].OrderNumber
		})
	}

	sortOrders(expected)
	sortOrders(actual)

	require.Equal(t, len(expected), len(actual))

	for i := range expected {
		assertOrder(t, expected[i], actual[i])
	}
}
