package domain

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/google/uuid"
)

type EntryKind string

const (
	// EntryKindSimple is a product bought without a size, it carries a single quantity.
	EntryKindSimple EntryKind = "simple"
	// EntryKindSized is a product bought per size, it carries a quantity per size.
	EntryKindSized EntryKind = "sized"
)

// Bag is the shopper's in-progress cart kept in the session.
// Entries keep the order in which products were first added.
type Bag struct {
	Entries []BagEntry
}

// BagEntry is one product in the bag. Quantity is used by simple entries,
// ItemsBySize by sized ones; a product never has both.
type BagEntry struct {
	ProductID   uuid.UUID
	Kind        EntryKind
	Quantity    int
	ItemsBySize map[ProductSize]int
}

func (b Bag) IsEmpty() bool {
	return len(b.Entries) == 0
}

// Find returns the entry of productID and its position.
func (b Bag) Find(productID uuid.UUID) (BagEntry, int, bool) {
	for i, entry := range b.Entries {
		if entry.ProductID == productID {
			return entry, i, true
		}
	}

	return BagEntry{}, -1, false
}

// Clone returns a deep copy, mutations of the copy never reach b.
func (b Bag) Clone() Bag {
	if b.Entries == nil {
		return Bag{}
	}

	entries := make([]BagEntry, len(b.Entries))
	for i, entry := range b.Entries {
		entries[i] = entry.clone()
	}

	return Bag{Entries: entries}
}

func (b Bag) ProductCount() int {
	var count int
	for _, entry := range b.Entries {
		count += entry.TotalQuantity()
	}
	return count
}

func (b Bag) Validate() error {
	seen := make(map[uuid.UUID]struct{}, len(b.Entries))

	for _, entry := range b.Entries {
		if _, ok := seen[entry.ProductID]; ok {
			return fmt.Errorf("product[%s] appears twice", entry.ProductID)
		}
		seen[entry.ProductID] = struct{}{}

		if err := entry.Validate(); err != nil {
			return fmt.Errorf("product[%s]: %w", entry.ProductID, err)
		}
	}

	return nil
}

func (e BagEntry) Validate() error {
	if e.ProductID == uuid.Nil {
		return fmt.Errorf("product id is empty")
	}

	switch e.Kind {
	case EntryKindSimple:
		if e.Quantity <= 0 {
			return fmt.Errorf("quantity[%d] is not positive", e.Quantity)
		}
		if len(e.ItemsBySize) != 0 {
			return fmt.Errorf("simple entry has sizes")
		}
	case EntryKindSized:
		if len(e.ItemsBySize) == 0 {
			return fmt.Errorf("sized entry has no sizes")
		}
		for size, qty := range e.ItemsBySize {
			if qty <= 0 {
				return fmt.Errorf("size[%s] quantity[%d] is not positive", size, qty)
			}
		}
	default:
		return fmt.Errorf("unknown entry kind[%s]", e.Kind)
	}

	return nil
}

// Sizes returns the sizes of a sized entry, smallest first.
func (e BagEntry) Sizes() []ProductSize {
	sizes := slices.Collect(maps.Keys(e.ItemsBySize))
	sortSizes(sizes)
	return sizes
}

func (e BagEntry) TotalQuantity() int {
	if e.Kind == EntryKindSimple {
		return e.Quantity
	}

	var total int
	for _, qty := range e.ItemsBySize {
		total += qty
	}
	return total
}

func (e BagEntry) clone() BagEntry {
	c := e
	if e.ItemsBySize != nil {
		c.ItemsBySize = maps.Clone(e.ItemsBySize)
	}
	return c
}

type bagEntryJSON struct {
	ProductID   uuid.UUID           `json:"product_id"`
	Kind        EntryKind           `json:"kind"`
	Quantity    int                 `json:"quantity,omitempty"`
	ItemsBySize map[ProductSize]int `json:"items_by_size,omitempty"`
}

func (b Bag) MarshalJSON() ([]byte, error) {
	entries := make([]bagEntryJSON, 0, len(b.Entries))
	for _, entry := range b.Entries {
		entries = append(entries, bagEntryJSON(entry))
	}

	return json.Marshal(entries)
}

func (b *Bag) UnmarshalJSON(data []byte) error {
	var entries []bagEntryJSON
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("json.Unmarshal: %w", err)
	}

	decoded := Bag{}
	for _, entry := range entries {
		decoded.Entries = append(decoded.Entries, BagEntry(entry))
	}

	if err := decoded.Validate(); err != nil {
		return fmt.Errorf("bag.Validate: %w", err)
	}

	*b = decoded
	return nil
}
