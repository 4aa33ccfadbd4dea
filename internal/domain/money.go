package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrMoneyPrecision is returned for amounts with more than two fractional digits.
var ErrMoneyPrecision = errors.New("amount has more than 2 decimal places")

// ErrMoneyRange is returned for amounts whose magnitude exceeds MaxMoney.
var ErrMoneyRange = errors.New("amount is out of range")

// MaxMoney is the largest accepted amount, 99,999,999.99 (NUMERIC(10,2)).
const MaxMoney Money = 9_999_999_999

var maxMoneyDecimal = decimal.New(int64(MaxMoney), -2)

// Money is an amount in minor currency units (cents). It is rendered as a
// 2-decimal JSON number and only converted to decimal form at the edges.
type Money int64

// MoneyFromDecimal converts d to cents, rejecting sub-cent precision.
func MoneyFromDecimal(d decimal.Decimal) (Money, error) {
	if !d.Equal(d.Round(2)) {
		return 0, ErrMoneyPrecision
	}
	if d.Abs().GreaterThan(maxMoneyDecimal) {
		return 0, ErrMoneyRange
	}
	return Money(d.Shift(2).IntPart()), nil
}

// ParseMoney parses a decimal string such as "59.99".
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return MoneyFromDecimal(d)
}

// Cents builds Money from a whole number of minor units.
func Cents(v int64) Money {
	return Money(v)
}

func (m Money) Cents() int64 {
	return int64(m)
}

func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

// Mul multiplies by an item quantity.
func (m Money) Mul(qty int) Money {
	return m * Money(qty)
}

func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts both numbers (59.99) and decimal strings ("59.99").
func (m *Money) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}
	v, err := MoneyFromDecimal(d)
	if err != nil {
		return err
	}
	*m = v
	return nil
}
