package marketdata

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value for display: home values and rents are
// published as plain numbers, this type carries them with their currency.
type Money struct {
	value decimal.Decimal // in major units
	cur   string
}

// M builds a Money from a numeric value and an ISO currency code.
func M[T float32 | float64 | int | int64](value T, currency string) Money {
	return Money{value: decimal.NewFromFloat(float64(value)), cur: currency}
}

// currency returns the money's currency.
func (m Money) currency() money.Currency {
	// the Money constructor is the only way to get a never-nil currency
	return *money.New(0, m.cur).Currency()
}

// String formats the value with its currency symbol and grouping, e.g.
// "$305,000.00".
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

func (m Money) Currency() string   { return m.cur }
func (m Money) IsZero() bool       { return m.value.IsZero() }
func (m Money) Equal(n Money) bool { return m.value.Equal(n.value) && m.cur == n.cur }

// AsFloat returns the value in major units.
func (m Money) AsFloat() float64 { return m.value.InexactFloat64() }
