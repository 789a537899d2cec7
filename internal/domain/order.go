package domain

import (
	"encoding/hex"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// centsScale is the scale of every stored order amount.
const centsScale = 2

type Order struct {
	ID          uuid.UUID
	OrderNumber string
	Customer    CustomerDetails

	DeliveryCost decimal.Decimal
	OrderTotal   decimal.Decimal
	GrandTotal   decimal.Decimal

	// OriginalBag is the JSON encoded bag the order was built from, kept for audit.
	OriginalBag      []byte
	PaymentReference string

	LineItems []OrderLineItem

	CreatedAt time.Time
	UpdatedAt time.Time
}

type OrderLineItem struct {
	ID          uuid.UUID
	Product     Product
	ProductSize ProductSize
	Quantity    int

	// LineItemTotal is derived from Product.Price and Quantity, never set it directly.
	LineItemTotal decimal.Decimal

	CreatedAt time.Time
}

// NewOrderNumber returns 32 upper-case hex characters of a random 128-bit value.
func NewOrderNumber() string {
	id := uuid.New()
	return strings.ToUpper(hex.EncodeToString(id[:]))
}

// UpdateTotal recomputes the order totals from its line items.
func (o *Order) UpdateTotal(policy DeliveryPolicy) {
	total := decimal.Zero
	for _, item := range o.LineItems {
		total = total.Add(item.LineItemTotal)
	}

	o.OrderTotal = total
	o.DeliveryCost = policy.DeliveryFee(total).Round(centsScale)
	o.GrandTotal = o.OrderTotal.Add(o.DeliveryCost)
}

func (o Order) FindLineItem(id uuid.UUID) (OrderLineItem, int, bool) {
	for i, item := range o.LineItems {
		if item.ID == id {
			return item, i, true
		}
	}

	return OrderLineItem{}, -1, false
}

func (i *OrderLineItem) updateTotal() {
	i.LineItemTotal = i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func (i OrderLineItem) Validate() error {
	if i.Product.ID == uuid.Nil {
		return NewValidationError("product", "is empty")
	}

	if i.Quantity <= 0 {
		return NewValidationError("quantity", fmt.Sprintf("%d is not positive", i.Quantity))
	}

	if i.ProductSize != "" {
		if _, err := ToProductSize(string(i.ProductSize)); err != nil {
			return err
		}
	}

	return nil
}

type LineItemOp string

const (
	LineItemAdd    LineItemOp = "add"
	LineItemUpdate LineItemOp = "update"
	LineItemDelete LineItemOp = "delete"
)

// LineItemChange is a single mutation of an order's line items.
// For LineItemUpdate only Quantity and ProductSize of Item are applied,
// for LineItemDelete only Item.ID is used.
type LineItemChange struct {
	Op   LineItemOp
	Item OrderLineItem
}

// ApplyLineItemChange applies change to a copy of order, recomputes the
// affected line item total and then the order totals.
func ApplyLineItemChange(order Order, change LineItemChange, policy DeliveryPolicy) (Order, error) {
	updated := order
	updated.LineItems = slices.Clone(order.LineItems)

	switch change.Op {
	case LineItemAdd:
		item := change.Item
		if err := item.Validate(); err != nil {
			return order, fmt.Errorf("item.Validate: %w", err)
		}
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		if _, _, exists := updated.FindLineItem(item.ID); exists {
			return order, fmt.Errorf("line item[%s] already exists", item.ID)
		}
		item.updateTotal()
		updated.LineItems = append(updated.LineItems, item)

	case LineItemUpdate:
		existing, idx, ok := updated.FindLineItem(change.Item.ID)
		if !ok {
			return order, NewNotFoundError("line item", change.Item.ID.String())
		}
		existing.Quantity = change.Item.Quantity
		existing.ProductSize = change.Item.ProductSize
		if err := existing.Validate(); err != nil {
			return order, fmt.Errorf("item.Validate: %w", err)
		}
		existing.updateTotal()
		updated.LineItems[idx] = existing

	case LineItemDelete:
		_, idx, ok := updated.FindLineItem(change.Item.ID)
		if !ok {
			return order, NewNotFoundError("line item", change.Item.ID.String())
		}
		updated.LineItems = slices.Delete(updated.LineItems, idx, idx+1)

	default:
		return order, fmt.Errorf("unknown line item op[%s]", change.Op)
	}

	updated.UpdateTotal(policy)

	return updated, nil
}
