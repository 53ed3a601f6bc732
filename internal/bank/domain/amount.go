package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a fixed-point monetary value with two decimal places. Balances
// and transaction amounts never go through binary floats; repeated
// deposits and withdrawals must not drift.
type Amount struct {
	decimal.Decimal
}

func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

func AmountFromInt(units int64) Amount {
	return Amount{Decimal: decimal.NewFromInt(units)}
}

// ParseAmount converts caller input into an Amount. It accepts anything
// decimal accepts ("100", "40.50", "1e2"); validation of sign and
// precision happens in the ledger service.
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Amount{}, err
	}
	return Amount{Decimal: d}, nil
}

func (a Amount) Add(b Amount) Amount {
	return Amount{Decimal: a.Decimal.Add(b.Decimal)}
}

func (a Amount) Sub(b Amount) Amount {
	return Amount{Decimal: a.Decimal.Sub(b.Decimal)}
}

func (a Amount) GreaterThan(b Amount) bool {
	return a.Decimal.GreaterThan(b.Decimal)
}

func (a Amount) Equal(b Amount) bool {
	return a.Decimal.Equal(b.Decimal)
}

// FitsPrecision reports whether the value carries at most two decimal
// places; 40.50 fits, 40.505 does not.
func (a Amount) FitsPrecision() bool {
	return a.Decimal.Equal(a.Decimal.Round(2))
}

func (a Amount) String() string {
	return a.Decimal.StringFixed(2)
}

// MarshalJSON renders the amount as a bare JSON number with two decimal
// places, matching the persisted document layout.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.StringFixed(2)), nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	return a.Decimal.UnmarshalJSON(data)
}
