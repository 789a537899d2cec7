package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")

	// ErrProductGone is returned by checkout when a product in the bag no longer exists in the catalog.
	ErrProductGone = errors.New("product in bag no longer exists")

	ErrEmptyBag = errors.New("bag is empty")

	// ErrPriceChanged is returned by checkout when the persisted order total differs from the amount charged.
	ErrPriceChanged = errors.New("order total differs from payment amount")
)

// ValidationError reports malformed client input: a bad quantity, a missing
// address field and so on. No state is changed when it is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ValidationErrors groups the field errors of one form.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	errs := make([]error, 0, len(e))
	for _, ve := range e {
		errs = append(errs, ve)
	}
	return errors.Join(errs...).Error()
}

func (e ValidationErrors) Unwrap() []error {
	errs := make([]error, 0, len(e))
	for _, ve := range e {
		errs = append(errs, ve)
	}
	return errs
}

// NotFoundError reports a missing product, bag entry, size or order.
type NotFoundError struct {
	Resource string
	Key      string
}

func NewNotFoundError(resource, key string) *NotFoundError {
	return &NotFoundError{Resource: resource, Key: key}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s[%s] not found", e.Resource, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ExternalServiceError wraps a failed call to a collaborator outside the process, i.e. the payment provider.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}
