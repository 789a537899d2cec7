package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// DeliveryPolicy charges a percentage of the subtotal below a free delivery threshold.
type DeliveryPolicy struct {
	FreeDeliveryThreshold      decimal.Decimal
	StandardDeliveryPercentage decimal.Decimal
}

func (p DeliveryPolicy) Validate() error {
	if p.FreeDeliveryThreshold.IsNegative() {
		return errors.New("free delivery threshold is negative")
	}

	if p.StandardDeliveryPercentage.IsNegative() || p.StandardDeliveryPercentage.GreaterThan(hundred) {
		return fmt.Errorf("standard delivery percentage[%s] is out of range", p.StandardDeliveryPercentage)
	}

	return nil
}

// DeliveryFee is exactly zero once total reaches the threshold.
func (p DeliveryPolicy) DeliveryFee(total decimal.Decimal) decimal.Decimal {
	if total.LessThan(p.FreeDeliveryThreshold) {
		return total.Mul(p.StandardDeliveryPercentage).Div(hundred)
	}

	return decimal.Zero
}

func (p DeliveryPolicy) FreeDeliveryDelta(total decimal.Decimal) decimal.Decimal {
	delta := p.FreeDeliveryThreshold.Sub(total)
	if delta.IsPositive() {
		return delta
	}

	return decimal.Zero
}
