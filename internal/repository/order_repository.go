package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/bagcheckout/internal/db"
	"github.com/nikolayk812/bagcheckout/internal/domain"
	"github.com/nikolayk812/bagcheckout/internal/port"
	"github.com/samber/lo"
)

type orderRepository struct {
	q      *db.Queries
	dbtx   db.DBTX
	policy domain.DeliveryPolicy
}

func NewOrder(pool *pgxpool.Pool, policy domain.DeliveryPolicy) (port.OrderRepository, error) {
	if pool == nil {
		return nil, errors.New("pool is nil")
	}

	return newOrderRepository(pool, policy)
}

func NewOrderWithTx(tx pgx.Tx, policy domain.DeliveryPolicy) (port.OrderRepository, error) {
	if tx == nil {
		return nil, errors.New("tx is nil")
	}

	// use provided transaction instead of a pool
	return newOrderRepository(tx, policy)
}

func newOrderRepository(dbtx db.DBTX, policy domain.DeliveryPolicy) (*orderRepository, error) {
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("policy.Validate: %w", err)
	}

	return &orderRepository{
		q:      db.New(dbtx),
		dbtx:   dbtx,
		policy: policy,
	}, nil
}

func (r *orderRepository) GetOrder(ctx context.Context, orderNumber string) (domain.Order, error) {
	var o domain.Order

	if orderNumber == "" {
		return o, fmt.Errorf("orderNumber is empty")
	}

	order, err := withTx(ctx, r.dbtx, func(q *db.Queries) (domain.Order, error) {
		return getOrder(ctx, q, orderNumber, false)
	})
	if err != nil {
		return o, fmt.Errorf("withTx: %w", err)
	}

	return order, nil
}

func (r *orderRepository) InsertOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	var o domain.Order

	if order.ID != uuid.Nil {
		return o, errors.New("order is already persisted")
	}

	inserted, err := withTx(ctx, r.dbtx, func(q *db.Queries) (domain.Order, error) {
		// the order number is assigned once, on first persist
		if order.OrderNumber == "" {
			order.OrderNumber = domain.NewOrderNumber()
		}

		row, err := q.InsertOrder(ctx, mapDomainOrderToInsertParams(order))
		if err != nil {
			return o, fmt.Errorf("q.InsertOrder: %w", err)
		}

		saved := order
		saved.ID = row.ID
		saved.CreatedAt = row.CreatedAt
		saved.UpdatedAt = row.UpdatedAt
		saved.LineItems = nil
		saved.UpdateTotal(r.policy)

		for _, item := range order.LineItems {
			item.ID = uuid.Nil
			saved, err = r.applyLineItemChange(ctx, q, saved, domain.LineItemChange{Op: domain.LineItemAdd, Item: item})
			if err != nil {
				return o, fmt.Errorf("r.applyLineItemChange: %w", err)
			}
		}

		return saved, nil
	})
	if err != nil {
		return o, fmt.Errorf("withTx: %w", err)
	}

	return inserted, nil
}

func (r *orderRepository) ApplyLineItemChange(ctx context.Context, orderNumber string, change domain.LineItemChange) (domain.Order, error) {
	var o domain.Order

	if orderNumber == "" {
		return o, fmt.Errorf("orderNumber is empty")
	}

	order, err := withTx(ctx, r.dbtx, func(q *db.Queries) (domain.Order, error) {
		current, err := getOrder(ctx, q, orderNumber, true)
		if err != nil {
			return o, err
		}

		return r.applyLineItemChange(ctx, q, current, change)
	})
	if err != nil {
		return o, fmt.Errorf("withTx: %w", err)
	}

	return order, nil
}

// applyLineItemChange persists the line item mutation and then the order totals.
// Both writes happen in the caller's transaction.
func (r *orderRepository) applyLineItemChange(ctx context.Context, q *db.Queries, current domain.Order, change domain.LineItemChange) (domain.Order, error) {
	var o domain.Order

	updated, err := domain.ApplyLineItemChange(current, change, r.policy)
	if err != nil {
		return o, fmt.Errorf("domain.ApplyLineItemChange: %w", err)
	}

	switch change.Op {
	case domain.LineItemAdd:
		item := updated.LineItems[len(updated.LineItems)-1]

		if err := q.InsertOrderLineItem(ctx, db.InsertOrderLineItemParams{
			ID:            item.ID,
			OrderID:       updated.ID,
			ProductID:     item.Product.ID,
			ProductSize:   lo.EmptyableToPtr(string(item.ProductSize)),
			Quantity:      int32(item.Quantity),
			LineitemTotal: item.LineItemTotal,
		}); err != nil {
			return o, fmt.Errorf("q.InsertOrderLineItem: %w", err)
		}

	case domain.LineItemUpdate:
		item, _, _ := updated.FindLineItem(change.Item.ID)

		cmdTag, err := q.UpdateOrderLineItem(ctx, db.UpdateOrderLineItemParams{
			ID:            item.ID,
			OrderID:       updated.ID,
			ProductSize:   lo.EmptyableToPtr(string(item.ProductSize)),
			Quantity:      int32(item.Quantity),
			LineitemTotal: item.LineItemTotal,
		})
		if err != nil {
			return o, fmt.Errorf("q.UpdateOrderLineItem: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return o, fmt.Errorf("q.UpdateOrderLineItem: %w", domain.NewNotFoundError("line item", item.ID.String()))
		}

	case domain.LineItemDelete:
		cmdTag, err := q.DeleteOrderLineItem(ctx, db.DeleteOrderLineItemParams{
			ID:      change.Item.ID,
			OrderID: updated.ID,
		})
		if err != nil {
			return o, fmt.Errorf("q.DeleteOrderLineItem: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return o, fmt.Errorf("q.DeleteOrderLineItem: %w", domain.NewNotFoundError("line item", change.Item.ID.String()))
		}
	}

	stored, err := q.SumOrderLineItems(ctx, updated.ID)
	if err != nil {
		return o, fmt.Errorf("q.SumOrderLineItems: %w", err)
	}
	if !stored.Equal(updated.OrderTotal) {
		return o, fmt.Errorf("order[%s] total[%s] diverges from stored line items[%s]", updated.OrderNumber, updated.OrderTotal, stored)
	}

	cmdTag, err := q.UpdateOrderTotals(ctx, db.UpdateOrderTotalsParams{
		ID:           updated.ID,
		DeliveryCost: updated.DeliveryCost,
		OrderTotal:   updated.OrderTotal,
		GrandTotal:   updated.GrandTotal,
	})
	if err != nil {
		return o, fmt.Errorf("q.UpdateOrderTotals: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return o, fmt.Errorf("q.UpdateOrderTotals: %w", domain.NewNotFoundError("order", updated.OrderNumber))
	}

	return updated, nil
}

func (r *orderRepository) SearchOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	if err := filter.Validate(); err != nil {
		return nil, fmt.Errorf("filter.Validate: %w", err)
	}

	orders, err := withTx(ctx, r.dbtx, func(q *db.Queries) ([]domain.Order, error) {
		dbOrders, err := q.SearchOrders(ctx, mapDomainOrderFilterToDBFilter(filter))
		if err != nil {
			return nil, fmt.Errorf("q.SearchOrders: %w", err)
		}

		result := make([]domain.Order, 0, len(dbOrders))

		// TODO: fetch line items of all found orders in one query
		for _, dbOrder := range dbOrders {
			dbItems, err := q.GetOrderLineItems(ctx, dbOrder.ID)
			if err != nil {
				return nil, fmt.Errorf("q.GetOrderLineItems: %w", err)
			}

			result = append(result, mapDBOrderToDomain(dbOrder, dbItems))
		}

		return result, nil
	})
	if err != nil {
		return nil, fmt.Errorf("withTx: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) DeleteOrder(ctx context.Context, orderNumber string) error {
	if orderNumber == "" {
		return fmt.Errorf("orderNumber is empty")
	}

	// line items are removed by ON DELETE CASCADE
	cmdTag, err := r.q.DeleteOrder(ctx, orderNumber)
	if err != nil {
		return fmt.Errorf("q.DeleteOrder: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("q.DeleteOrder: %w", domain.NewNotFoundError("order", orderNumber))
	}

	return nil
}

func getOrder(ctx context.Context, q *db.Queries, orderNumber string, forUpdate bool) (domain.Order, error) {
	var (
		o       domain.Order
		dbOrder db.Order
		err     error
	)

	if forUpdate {
		dbOrder, err = q.GetOrderForUpdate(ctx, orderNumber)
	} else {
		dbOrder, err = q.GetOrder(ctx, orderNumber)
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return o, fmt.Errorf("q.GetOrder: %w", domain.NewNotFoundError("order", orderNumber))
		}
		return o, fmt.Errorf("q.GetOrder: %w", err)
	}

	dbItems, err := q.GetOrderLineItems(ctx, dbOrder.ID)
	if err != nil {
		return o, fmt.Errorf("q.GetOrderLineItems: %w", err)
	}

	return mapDBOrderToDomain(dbOrder, dbItems), nil
}

func mapDomainOrderToInsertParams(order domain.Order) db.InsertOrderParams {
	c := order.Customer

	return db.InsertOrderParams{
		OrderNumber:      order.OrderNumber,
		FullName:         c.FullName,
		Email:            c.Email,
		PhoneNumber:      c.PhoneNumber,
		Country:          c.Country,
		Postcode:         lo.EmptyableToPtr(c.Postcode),
		TownOrCity:       c.TownOrCity,
		StreetAddress1:   c.StreetAddress1,
		StreetAddress2:   lo.EmptyableToPtr(c.StreetAddress2),
		County:           lo.EmptyableToPtr(c.County),
		OriginalBag:      emptyJSONArrayIfNil(order.OriginalBag),
		PaymentReference: order.PaymentReference,
	}
}

func mapDomainOrderFilterToDBFilter(filter domain.OrderFilter) db.SearchOrdersParams {
	var createdAfter, createdBefore *time.Time

	if filter.CreatedAt != nil {
		createdAfter = filter.CreatedAt.After
		createdBefore = filter.CreatedAt.Before
	}

	emails := lo.Map(filter.Emails, func(email string, _ int) string {
		return strings.ToLower(email)
	})

	return db.SearchOrdersParams{
		OrderNumbers:  nilSliceIfEmpty(filter.OrderNumbers),
		Emails:        nilSliceIfEmpty(emails),
		CreatedAfter:  createdAfter,
		CreatedBefore: createdBefore,
	}
}

func mapDBOrderToDomain(dbOrder db.Order, dbItems []db.GetOrderLineItemsRow) domain.Order {
	return domain.Order{
		ID:          dbOrder.ID,
		OrderNumber: dbOrder.OrderNumber,
		Customer: domain.CustomerDetails{
			FullName:       dbOrder.FullName,
			Email:          dbOrder.Email,
			PhoneNumber:    dbOrder.PhoneNumber,
			Country:        dbOrder.Country,
			Postcode:       lo.FromPtr(dbOrder.Postcode),
			TownOrCity:     dbOrder.TownOrCity,
			StreetAddress1: dbOrder.StreetAddress1,
			StreetAddress2: lo.FromPtr(dbOrder.StreetAddress2),
			County:         lo.FromPtr(dbOrder.County),
		},
		DeliveryCost:     dbOrder.DeliveryCost,
		OrderTotal:       dbOrder.OrderTotal,
		GrandTotal:       dbOrder.GrandTotal,
		OriginalBag:      dbOrder.OriginalBag,
		PaymentReference: dbOrder.PaymentReference,
		LineItems:        lo.Map(dbItems, mapGetOrderLineItemsRowToDomain),
		CreatedAt:        dbOrder.CreatedAt,
		UpdatedAt:        dbOrder.UpdatedAt,
	}
}

func mapGetOrderLineItemsRowToDomain(row db.GetOrderLineItemsRow, _ int) domain.OrderLineItem {
	return domain.OrderLineItem{
		ID: row.ID,
		Product: domain.Product{
			ID:       row.ProductID,
			SKU:      row.ProductSku,
			Name:     row.ProductName,
			Price:    row.ProductPrice,
			HasSizes: row.ProductHasSizes,
		},
		ProductSize:   domain.ProductSize(lo.FromPtr(row.ProductSize)),
		Quantity:      int(row.Quantity),
		LineItemTotal: row.LineitemTotal,
		CreatedAt:     row.CreatedAt,
	}
}

func emptyJSONArrayIfNil(j []byte) []byte {
	if j == nil {
		return []byte(`[]`)
	}
	return j
}

func nilSliceIfEmpty[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	return s
}
