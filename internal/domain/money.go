package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

// MinorUnits converts the amount to integer minor units of its currency,
// i.e. cents for USD, rounding half-up.
func (m Money) MinorUnits() (int64, error) {
	if m.Currency == (currency.Unit{}) {
		return 0, errors.New("currency is empty")
	}
	if m.Amount.IsNegative() {
		return 0, fmt.Errorf("amount[%s] is negative", m.Amount)
	}

	scale, _ := currency.Standard.Rounding(m.Currency)

	return m.Amount.Shift(int32(scale)).Round(0).IntPart(), nil
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Amount.StringFixed(2), m.Currency)
}
