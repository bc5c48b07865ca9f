package extraction

import "github.com/shopspring/decimal"

// Quantity is the number of units a receipt amount represents. Whole counts
// render as integers ("2"), fractional counts keep two decimal places ("1.5").
type Quantity struct {
	value decimal.Decimal
	whole bool
}

// WholeQuantity returns an integer quantity
func WholeQuantity(n int64) Quantity {
	return Quantity{value: decimal.NewFromInt(n), whole: true}
}

// DeriveQuantity computes how many units of unitPrice the amount pays for.
// A non-positive unit price means no pricing is configured and yields zero.
func DeriveQuantity(amount, unitPrice decimal.Decimal) Quantity {
	if !unitPrice.IsPositive() {
		return WholeQuantity(0)
	}

	raw := amount.Div(unitPrice)
	if raw.IsInteger() {
		return WholeQuantity(raw.IntPart())
	}
	return Quantity{value: raw.Round(2)}
}

// IsWhole reports whether the quantity is an integer count
func (q Quantity) IsWhole() bool { return q.whole }

// Decimal returns the quantity as a decimal
func (q Quantity) Decimal() decimal.Decimal { return q.value }

// Int returns the integer part of the quantity
func (q Quantity) Int() int64 { return q.value.IntPart() }

// Float64 returns the quantity as a float, for spreadsheet cells
func (q Quantity) Float64() float64 { return q.value.InexactFloat64() }

func (q Quantity) String() string {
	if q.whole {
		return q.value.StringFixed(0)
	}
	return q.value.String()
}

func (q Quantity) MarshalJSON() ([]byte, error) {
	return []byte(q.String()), nil
}
