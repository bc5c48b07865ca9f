package extraction

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	// DateNotDetermined is the Date of a record whose receipt had no
	// recognizable date token.
	DateNotDetermined = "ND"

	// PayerUnidentified is the PayerName of a record whose receipt had no
	// "Nome" line after the "Origem" block.
	PayerUnidentified = "Não identificado"
)

// Outcome is the result of processing one receipt: either a *SalesRecord or
// an *ExtractionError. No other type implements it.
type Outcome interface {
	// Source returns the label of the input the outcome belongs to
	Source() string
	outcome()
}

// SalesRecord is the structured data extracted from one receipt
type SalesRecord struct {
	Date         string          `json:"date"`
	PayerName    string          `json:"payer_name"`
	ProductLabel string          `json:"product_label"`
	Quantity     Quantity        `json:"quantity"`
	Amount       decimal.Decimal `json:"amount"`
	SourceLabel  string          `json:"source_label"`
}

func (r *SalesRecord) Source() string { return r.SourceLabel }
func (*SalesRecord) outcome()         {}

// HasDate reports whether a date was found on the receipt
func (r *SalesRecord) HasDate() bool { return r.Date != DateNotDetermined }

// HasPayer reports whether a payer name was found on the receipt
func (r *SalesRecord) HasPayer() bool { return r.PayerName != PayerUnidentified }

// MarshalJSON renders the record with a "kind" discriminator and the amount
// as a bare JSON number.
func (r *SalesRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind         string      `json:"kind"`
		Date         string      `json:"date"`
		PayerName    string      `json:"payer_name"`
		ProductLabel string      `json:"product_label"`
		Quantity     Quantity    `json:"quantity"`
		Amount       json.Number `json:"amount"`
		SourceLabel  string      `json:"source_label"`
	}{
		Kind:         "record",
		Date:         r.Date,
		PayerName:    r.PayerName,
		ProductLabel: r.ProductLabel,
		Quantity:     r.Quantity,
		Amount:       json.Number(r.Amount.String()),
		SourceLabel:  r.SourceLabel,
	})
}

// ExtractionError is returned in place of a SalesRecord when the input could
// not be opened, decoded or recognized at all.
type ExtractionError struct {
	SourceLabel string `json:"source_label"`
	Message     string `json:"error"`
}

// NewExtractionError builds an ExtractionError for the given input label
func NewExtractionError(sourceLabel string, err error) *ExtractionError {
	return &ExtractionError{
		SourceLabel: sourceLabel,
		Message:     err.Error(),
	}
}

func (e *ExtractionError) Source() string { return e.SourceLabel }
func (*ExtractionError) outcome()         {}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s: %s", e.SourceLabel, e.Message)
}

// MarshalJSON renders the error with a "kind" discriminator
func (e *ExtractionError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind        string `json:"kind"`
		SourceLabel string `json:"source_label"`
		Message     string `json:"error"`
	}{
		Kind:        "error",
		SourceLabel: e.SourceLabel,
		Message:     e.Message,
	})
}

// Split separates outcomes into records and errors, keeping their order
func Split(outcomes []Outcome) ([]*SalesRecord, []*ExtractionError) {
	records := make([]*SalesRecord, 0, len(outcomes))
	var failures []*ExtractionError
	for _, o := range outcomes {
		switch v := o.(type) {
		case *SalesRecord:
			records = append(records, v)
		case *ExtractionError:
			failures = append(failures, v)
		}
	}
	return records, failures
}
