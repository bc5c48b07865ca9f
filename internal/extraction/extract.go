// Package extraction turns the raw text recognized from a Pix payment receipt
// into a SalesRecord.
//
// Extraction is best-effort: each field is found by its own first-match
// heuristic and falls back to a sentinel or zero on its own, so a receipt
// with an unreadable date still yields its amount.
package extraction

import "github.com/shopspring/decimal"

// Input is the recognized text of one receipt plus the batch configuration
type Input struct {
	RawText      string
	SourceLabel  string
	ProductLabel string
	UnitPrice    decimal.Decimal
}

// Extract builds the SalesRecord for one receipt. It never fails.
func Extract(in Input) *SalesRecord {
	amount := ExtractAmount(in.RawText)

	return &SalesRecord{
		Date:         ExtractDate(in.RawText),
		PayerName:    ExtractPayerName(in.RawText),
		ProductLabel: in.ProductLabel,
		Quantity:     DeriveQuantity(amount, in.UnitPrice),
		Amount:       amount,
		SourceLabel:  in.SourceLabel,
	}
}
