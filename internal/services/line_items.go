package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// lineTotal returns the explicit total when given, otherwise quantity × unit price.
func lineTotal(total *float64, quantity, unitPrice float64) float64 {
	if total != nil && *total != 0 {
		return *total
	}
	return decimal.NewFromFloat(quantity).Mul(decimal.NewFromFloat(unitPrice)).Round(2).InexactFloat64()
}

func validateDate(field, value string) error {
	if _, err := time.Parse(dateLayout, value); err != nil {
		return fmt.Errorf("%w: %s must be YYYY-MM-DD", ErrValidation, field)
	}
	return nil
}
