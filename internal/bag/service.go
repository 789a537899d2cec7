package bag

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/nikolayk812/bagcheckout/internal/domain"
	"github.com/nikolayk812/bagcheckout/internal/port"
	"github.com/nikolayk812/bagcheckout/internal/template"
)

// MutationRequest carries the raw form values of a bag mutation.
// Quantity is ignored by RemoveFromBag.
type MutationRequest struct {
	SessionID string
	ProductID uuid.UUID
	Quantity  string
	Size      string
}

// Service runs bag mutations against the session store and reports them to the shopper.
type Service struct {
	store    port.BagStore
	catalog  port.ProductCatalog
	policy   domain.DeliveryPolicy
	messages *template.Engine
}

func NewService(store port.BagStore, catalog port.ProductCatalog, policy domain.DeliveryPolicy, messages *template.Engine) (*Service, error) {
	if store == nil {
		return nil, errors.New("store is nil")
	}
	if catalog == nil {
		return nil, errors.New("catalog is nil")
	}
	if messages == nil {
		return nil, errors.New("messages is nil")
	}
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("policy.Validate: %w", err)
	}

	return &Service{
		store:    store,
		catalog:  catalog,
		policy:   policy,
		messages: messages,
	}, nil
}

// AddToBag fails with *domain.ValidationError for a malformed quantity or size
// before the stored bag is touched.
func (s *Service) AddToBag(ctx context.Context, req MutationRequest, n port.Notifier) (domain.Bag, error) {
	var b domain.Bag

	quantity, err := ParseQuantity(req.Quantity)
	if err != nil {
		n.Error(err.Error())
		return b, err
	}

	size, err := ParseSize(req.Size)
	if err != nil {
		n.Error(err.Error())
		return b, err
	}

	product, err := s.catalog.GetProduct(ctx, req.ProductID)
	if err != nil {
		n.Error(err.Error())
		return b, fmt.Errorf("catalog.GetProduct: %w", err)
	}

	switch {
	case product.HasSizes && size == "":
		err = domain.NewValidationError("product_size", "size is required for this product")
	case !product.HasSizes && size != "":
		err = domain.NewValidationError("product_size", "product has no sizes")
	}
	if err != nil {
		n.Error(err.Error())
		return b, err
	}

	var change Change

	updated, err := s.store.UpdateBag(ctx, req.SessionID, func(current domain.Bag) (domain.Bag, error) {
		next, c, err := Add(current, req.ProductID, quantity, size)
		change = c
		return next, err
	})
	if err != nil {
		n.Error(err.Error())
		return b, fmt.Errorf("store.UpdateBag: %w", err)
	}

	s.notifyChange(n, change, product.Name)

	return updated, nil
}

// AdjustBag fails with *domain.NotFoundError when the product, or the size
// being removed, is not in the bag.
func (s *Service) AdjustBag(ctx context.Context, req MutationRequest, n port.Notifier) (domain.Bag, error) {
	var b domain.Bag

	quantity, err := ParseQuantity(req.Quantity)
	if err != nil {
		n.Error(err.Error())
		return b, err
	}

	size, err := ParseSize(req.Size)
	if err != nil {
		n.Error(err.Error())
		return b, err
	}

	var change Change

	updated, err := s.store.UpdateBag(ctx, req.SessionID, func(current domain.Bag) (domain.Bag, error) {
		next, c, err := Adjust(current, req.ProductID, quantity, size)
		change = c
		return next, err
	})
	if err != nil {
		n.Error(err.Error())
		return b, fmt.Errorf("store.UpdateBag: %w", err)
	}

	s.notifyChange(n, change, s.productName(ctx, req.ProductID))

	return updated, nil
}

// RemoveFromBag reports every failure to n, the stored bag is left as it was.
func (s *Service) RemoveFromBag(ctx context.Context, req MutationRequest, n port.Notifier) (domain.Bag, error) {
	var b domain.Bag

	size, err := ParseSize(req.Size)
	if err != nil {
		s.notifyRemoveFailed(n, err)
		return b, err
	}

	var change Change

	updated, err := s.store.UpdateBag(ctx, req.SessionID, func(current domain.Bag) (domain.Bag, error) {
		next, c, err := Remove(current, req.ProductID, size)
		change = c
		return next, err
	})
	if err != nil {
		s.notifyRemoveFailed(n, err)
		return b, fmt.Errorf("store.UpdateBag: %w", err)
	}

	s.notifyChange(n, change, s.productName(ctx, req.ProductID))

	return updated, nil
}

func (s *Service) Snapshot(ctx context.Context, sessionID string) (domain.BagSnapshot, error) {
	var snapshot domain.BagSnapshot

	b, err := s.store.GetBag(ctx, sessionID)
	if err != nil {
		return snapshot, fmt.Errorf("store.GetBag: %w", err)
	}

	snapshot, err = ComputeSnapshot(ctx, b, s.catalog, s.policy)
	if err != nil {
		return snapshot, fmt.Errorf("ComputeSnapshot: %w", err)
	}

	return snapshot, nil
}

// productName falls back to the id, a product deleted from the catalog can still be adjusted or removed.
func (s *Service) productName(ctx context.Context, productID uuid.UUID) string {
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		slog.Warn("Product lookup failed",
			"method", "Service.productName",
			"product_id", productID,
			"error", err)
		return productID.String()
	}

	return product.Name
}

func (s *Service) notifyChange(n port.Notifier, change Change, productName string) {
	name := template.BagAdded
	switch change.Kind {
	case ChangeUpdated:
		name = template.BagUpdated
	case ChangeRemoved:
		name = template.BagRemoved
	}

	msg, err := s.messages.Execute(name, template.BuildBagDataMap(productName, string(change.Size), change.Quantity))
	if err != nil {
		slog.Error("Message rendering failed",
			"method", "Service.notifyChange",
			"template", name,
			"error", err)
		return
	}

	n.Success(msg)
}

func (s *Service) notifyRemoveFailed(n port.Notifier, cause error) {
	msg, err := s.messages.Execute(template.BagRemoveFailed, template.BuildFailureDataMap(cause.Error()))
	if err != nil {
		slog.Error("Message rendering failed",
			"method", "Service.notifyRemoveFailed",
			"template", template.BagRemoveFailed,
			"error", err)
		return
	}

	n.Error(msg)
}
