package steps

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nikolayk812/bagcheckout/internal/domain"
)

type ValidateCustomer struct {
	validate *validator.Validate
}

func NewValidateCustomer() ValidateCustomer {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report form field names, not Go field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return ValidateCustomer{validate: v}
}

func (s ValidateCustomer) Name() string {
	return "validate_customer"
}

func (s ValidateCustomer) Run(_ context.Context, state *State) error {
	state.Customer = normalizeCustomer(state.Customer)

	err := s.validate.Struct(state.Customer)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate.Struct: %w", err)
	}

	result := make(domain.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		result = append(result, domain.NewValidationError(fe.Field(), describe(fe)))
	}

	return result
}

func normalizeCustomer(c domain.CustomerDetails) domain.CustomerDetails {
	c.FullName = strings.TrimSpace(c.FullName)
	c.Email = strings.TrimSpace(c.Email)
	c.PhoneNumber = strings.TrimSpace(c.PhoneNumber)
	c.Country = strings.TrimSpace(c.Country)
	c.Postcode = strings.TrimSpace(c.Postcode)
	c.TownOrCity = strings.TrimSpace(c.TownOrCity)
	c.StreetAddress1 = strings.TrimSpace(c.StreetAddress1)
	c.StreetAddress2 = strings.TrimSpace(c.StreetAddress2)
	c.County = strings.TrimSpace(c.County)
	return c
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "is not a valid email address"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %s check", fe.Tag())
	}
}
