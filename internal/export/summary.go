package export

import (
	"encoding/json"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/zombor/pix-sales/internal/extraction"
)

// Summary aggregates a batch for the report and the "Resumo" sheet
type Summary struct {
	ProductLabel  string
	Records       int
	Errors        int
	TotalAmount   decimal.Decimal
	TotalQuantity decimal.Decimal
}

// Summarize totals the records in outcomes. Failed inputs are counted but
// contribute nothing to the totals.
func Summarize(productLabel string, outcomes []extraction.Outcome) Summary {
	records, failures := extraction.Split(outcomes)

	s := Summary{
		ProductLabel:  productLabel,
		Records:       len(records),
		Errors:        len(failures),
		TotalAmount:   decimal.Zero,
		TotalQuantity: decimal.Zero,
	}
	for _, r := range records {
		s.TotalAmount = s.TotalAmount.Add(r.Amount)
		s.TotalQuantity = s.TotalQuantity.Add(r.Quantity.Decimal())
	}
	return s
}

// AmountDisplay formats the total amount in reais, e.g. "R$1.234,56"
func (s Summary) AmountDisplay() string {
	cents := s.TotalAmount.Shift(2).Round(0).IntPart()
	return money.New(cents, money.BRL).Display()
}

// QuantityDisplay renders whole totals without decimals
func (s Summary) QuantityDisplay() string {
	if s.TotalQuantity.IsInteger() {
		return s.TotalQuantity.StringFixed(0)
	}
	return s.TotalQuantity.String()
}

func (s Summary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ProductLabel  string      `json:"product_label"`
		Records       int         `json:"records"`
		Errors        int         `json:"errors"`
		TotalAmount   json.Number `json:"total_amount"`
		TotalQuantity json.Number `json:"total_quantity"`
		AmountDisplay string      `json:"total_amount_display"`
	}{
		ProductLabel:  s.ProductLabel,
		Records:       s.Records,
		Errors:        s.Errors,
		TotalAmount:   json.Number(s.TotalAmount.StringFixed(2)),
		TotalQuantity: json.Number(s.QuantityDisplay()),
		AmountDisplay: s.AmountDisplay(),
	})
}
