package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/nikolayk812/bagcheckout/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	mugID   = uuid.MustParse("0f1e2d3c-4b5a-4968-8776-a5b4c3d2e1f0")
	shirtID = uuid.MustParse("8a6c6f5e-2f5d-4a53-9d1b-6b3c1a0c2a11")
)

func TestBagJSON(t *testing.T) {
	b := domain.Bag{Entries: []domain.BagEntry{
		{ProductID: mugID, Kind: domain.EntryKindSimple, Quantity: 2},
		{ProductID: shirtID, Kind: domain.EntryKindSized, ItemsBySize: map[domain.ProductSize]int{"M": 1, "L": 3}},
	}}

	data, err := json.Marshal(b)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"product_id": "0f1e2d3c-4b5a-4968-8776-a5b4c3d2e1f0", "kind": "simple", "quantity": 2},
		{"product_id": "8a6c6f5e-2f5d-4a53-9d1b-6b3c1a0c2a11", "kind": "sized", "items_by_size": {"M": 1, "L": 3}}
	]`, string(data))

	var decoded domain.Bag
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Empty(t, cmp.Diff(b, decoded))
}

func TestBagUnmarshalInvalid(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantError string
	}{
		{
			name:      "not an array: fail",
			input:     `{"product_id": "0f1e2d3c-4b5a-4968-8776-a5b4c3d2e1f0"}`,
			wantError: "json.Unmarshal",
		},
		{
			name:      "zero quantity: fail",
			input:     `[{"product_id": "0f1e2d3c-4b5a-4968-8776-a5b4c3d2e1f0", "kind": "simple", "quantity": 0}]`,
			wantError: "bag.Validate: product[0f1e2d3c-4b5a-4968-8776-a5b4c3d2e1f0]: quantity[0] is not positive",
		},
		{
			name: "duplicate product: fail",
			input: `[{"product_id": "0f1e2d3c-4b5a-4968-8776-a5b4c3d2e1f0", "kind": "simple", "quantity": 1},
				{"product_id": "0f1e2d3c-4b5a-4968-8776-a5b4c3d2e1f0", "kind": "simple", "quantity": 1}]`,
			wantError: "bag.Validate: product[0f1e2d3c-4b5a-4968-8776-a5b4c3d2e1f0] appears twice",
		},
		{
			name:      "simple entry with sizes: fail",
			input:     `[{"product_id": "0f1e2d3c-4b5a-4968-8776-a5b4c3d2e1f0", "kind": "simple", "quantity": 1, "items_by_size": {"M": 1}}]`,
			wantError: "bag.Validate: product[0f1e2d3c-4b5a-4968-8776-a5b4c3d2e1f0]: simple entry has sizes",
		},
		{
			name:      "sized entry without sizes: fail",
			input:     `[{"product_id": "0f1e2d3c-4b5a-4968-8776-a5b4c3d2e1f0", "kind": "sized"}]`,
			wantError: "bag.Validate: product[0f1e2d3c-4b5a-4968-8776-a5b4c3d2e1f0]: sized entry has no sizes",
		},
		{
			name:      "unknown kind: fail",
			input:     `[{"product_id": "0f1e2d3c-4b5a-4968-8776-a5b4c3d2e1f0", "kind": "bundle", "quantity": 1}]`,
			wantError: "bag.Validate: product[0f1e2d3c-4b5a-4968-8776-a5b4c3d2e1f0]: unknown entry kind[bundle]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b domain.Bag
			err := json.Unmarshal([]byte(tt.input), &b)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantError)
			assert.True(t, b.IsEmpty())
		})
	}
}

func TestBagClone(t *testing.T) {
	b := domain.Bag{Entries: []domain.BagEntry{
		{ProductID: shirtID, Kind: domain.EntryKindSized, ItemsBySize: map[domain.ProductSize]int{"M": 1}},
	}}

	c := b.Clone()
	c.Entries[0].ItemsBySize["M"] = 5
	c.Entries[0].ItemsBySize["XL"] = 1
	c.Entries = append(c.Entries, domain.BagEntry{ProductID: mugID, Kind: domain.EntryKindSimple, Quantity: 1})

	assert.Equal(t, map[domain.ProductSize]int{"M": 1}, b.Entries[0].ItemsBySize)
	assert.Len(t, b.Entries, 1)

	assert.Empty(t, cmp.Diff(domain.Bag{}, domain.Bag{}.Clone(), cmpopts.EquateEmpty()))
}

func TestBagProductCount(t *testing.T) {
	b := domain.Bag{Entries: []domain.BagEntry{
		{ProductID: mugID, Kind: domain.EntryKindSimple, Quantity: 2},
		{ProductID: shirtID, Kind: domain.EntryKindSized, ItemsBySize: map[domain.ProductSize]int{"M": 1, "L": 3}},
	}}

	assert.Equal(t, 6, b.ProductCount())
	assert.Equal(t, 4, b.Entries[1].TotalQuantity())
	assert.Equal(t, []domain.ProductSize{"M", "L"}, b.Entries[1].Sizes())

	entry, idx, ok := b.Find(shirtID)
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, domain.EntryKindSized, entry.Kind)

	_, idx, ok = b.Find(uuid.New())
	assert.False(t, ok)
	assert.Equal(t, -1, idx)
}
