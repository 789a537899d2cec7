package bag

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/nikolayk812/bagcheckout/internal/domain"
)

// MaxQuantity bounds every stored quantity, order line items keep it in an INTEGER column.
const MaxQuantity = math.MaxInt32

type ChangeKind string

const (
	ChangeAdded   ChangeKind = "added"
	ChangeUpdated ChangeKind = "updated"
	ChangeRemoved ChangeKind = "removed"
)

// Change describes what a mutation did to one bag entry.
// Quantity is the resulting quantity, zero for removals.
type Change struct {
	Kind      ChangeKind
	ProductID uuid.UUID
	Size      domain.ProductSize
	Quantity  int
}

// ParseQuantity accepts whole numbers only, zero and negative values included.
func ParseQuantity(s string) (int, error) {
	qty, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, domain.NewValidationError("quantity", "must be a whole number")
	}

	return qty, nil
}

// ParseSize returns an empty size for empty input.
func ParseSize(s string) (domain.ProductSize, error) {
	if strings.TrimSpace(s) == "" {
		return "", nil
	}

	return domain.ToProductSize(s)
}

// Add increments the quantity of productID, or of its size when size is set.
// b is never modified.
func Add(b domain.Bag, productID uuid.UUID, quantity int, size domain.ProductSize) (domain.Bag, Change, error) {
	var c Change

	if productID == uuid.Nil {
		return b, c, domain.NewValidationError("product_id", "is empty")
	}
	if quantity <= 0 {
		return b, c, domain.NewValidationError("quantity", "must be positive")
	}
	if err := checkMax(0, quantity); err != nil {
		return b, c, err
	}

	next := b.Clone()
	entry, idx, ok := next.Find(productID)

	if !ok {
		entry = domain.BagEntry{ProductID: productID, Kind: domain.EntryKindSimple, Quantity: quantity}
		if size != "" {
			entry = domain.BagEntry{ProductID: productID, Kind: domain.EntryKindSized, ItemsBySize: map[domain.ProductSize]int{size: quantity}}
		}
		next.Entries = append(next.Entries, entry)

		return next, Change{Kind: ChangeAdded, ProductID: productID, Size: size, Quantity: quantity}, nil
	}

	if err := checkShape(entry, size); err != nil {
		return b, c, err
	}

	if size == "" {
		if err := checkMax(entry.Quantity, quantity); err != nil {
			return b, c, err
		}
		entry.Quantity += quantity
		next.Entries[idx] = entry

		return next, Change{Kind: ChangeUpdated, ProductID: productID, Quantity: entry.Quantity}, nil
	}

	if err := checkMax(entry.ItemsBySize[size], quantity); err != nil {
		return b, c, err
	}

	kind := ChangeAdded
	if _, exists := entry.ItemsBySize[size]; exists {
		kind = ChangeUpdated
	}
	entry.ItemsBySize[size] += quantity
	next.Entries[idx] = entry

	return next, Change{Kind: kind, ProductID: productID, Size: size, Quantity: entry.ItemsBySize[size]}, nil
}

// Adjust sets the quantity of productID, or of its size, exactly. A quantity of
// zero or less removes it, without a size the whole entry goes whatever its kind.
// A sized entry left without sizes is removed whole.
func Adjust(b domain.Bag, productID uuid.UUID, quantity int, size domain.ProductSize) (domain.Bag, Change, error) {
	var c Change

	next := b.Clone()
	entry, idx, ok := next.Find(productID)
	if !ok {
		return b, c, domain.NewNotFoundError("bag entry", productID.String())
	}

	if size == "" && quantity <= 0 {
		next.Entries = deleteEntry(next.Entries, idx)
		return next, Change{Kind: ChangeRemoved, ProductID: productID}, nil
	}

	if err := checkShape(entry, size); err != nil {
		return b, c, err
	}
	if err := checkMax(0, quantity); err != nil {
		return b, c, err
	}

	if size == "" {
		entry.Quantity = quantity
		next.Entries[idx] = entry

		return next, Change{Kind: ChangeUpdated, ProductID: productID, Quantity: quantity}, nil
	}

	if quantity <= 0 {
		if _, exists := entry.ItemsBySize[size]; !exists {
			return b, c, domain.NewNotFoundError("bag entry size", sizeKey(productID, size))
		}

		next.Entries = deleteSize(next.Entries, idx, size)
		return next, Change{Kind: ChangeRemoved, ProductID: productID, Size: size}, nil
	}

	entry.ItemsBySize[size] = quantity
	next.Entries[idx] = entry

	return next, Change{Kind: ChangeUpdated, ProductID: productID, Size: size, Quantity: quantity}, nil
}

// Remove deletes the size of productID, or the whole entry when size is empty.
func Remove(b domain.Bag, productID uuid.UUID, size domain.ProductSize) (domain.Bag, Change, error) {
	var c Change

	next := b.Clone()
	entry, idx, ok := next.Find(productID)
	if !ok {
		return b, c, domain.NewNotFoundError("bag entry", productID.String())
	}

	if size == "" {
		next.Entries = deleteEntry(next.Entries, idx)
		return next, Change{Kind: ChangeRemoved, ProductID: productID}, nil
	}

	if entry.Kind != domain.EntryKindSized {
		return b, c, domain.NewValidationError("product_size", "product is in the bag without a size")
	}
	if _, exists := entry.ItemsBySize[size]; !exists {
		return b, c, domain.NewNotFoundError("bag entry size", sizeKey(productID, size))
	}

	next.Entries = deleteSize(next.Entries, idx, size)
	return next, Change{Kind: ChangeRemoved, ProductID: productID, Size: size}, nil
}

// checkShape rejects mixing simple and sized quantities of one product.
func checkShape(entry domain.BagEntry, size domain.ProductSize) error {
	switch {
	case size == "" && entry.Kind == domain.EntryKindSized:
		return domain.NewValidationError("product_size", "size is required for this product")
	case size != "" && entry.Kind == domain.EntryKindSimple:
		return domain.NewValidationError("product_size", "product is in the bag without a size")
	}

	return nil
}

// checkMax rejects adding quantity to current when the sum exceeds MaxQuantity.
func checkMax(current, quantity int) error {
	if quantity > MaxQuantity-current {
		return domain.NewValidationError("quantity", fmt.Sprintf("must be at most %d", MaxQuantity))
	}

	return nil
}

func deleteEntry(entries []domain.BagEntry, idx int) []domain.BagEntry {
	return slices.Delete(entries, idx, idx+1)
}

func deleteSize(entries []domain.BagEntry, idx int, size domain.ProductSize) []domain.BagEntry {
	delete(entries[idx].ItemsBySize, size)
	if len(entries[idx].ItemsBySize) == 0 {
		return deleteEntry(entries, idx)
	}

	return entries
}

func sizeKey(productID uuid.UUID, size domain.ProductSize) string {
	return productID.String() + "/" + string(size)
}
