package export

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/zombor/pix-sales/internal/extraction"
)

// csvRow is one CSV line. Failed inputs only fill Arquivo and Erro.
type csvRow struct {
	Date         string `csv:"Data"`
	PayerName    string `csv:"Cliente"`
	ProductLabel string `csv:"Produto"`
	Quantity     string `csv:"Qtd"`
	Amount       string `csv:"Valor Total"`
	SourceLabel  string `csv:"Arquivo"`
	Error        string `csv:"Erro"`
}

// WriteCSV writes one row per outcome, in outcome order
func WriteCSV(w io.Writer, outcomes []extraction.Outcome) error {
	rows := make([]*csvRow, 0, len(outcomes))
	for _, o := range outcomes {
		switch v := o.(type) {
		case *extraction.SalesRecord:
			rows = append(rows, &csvRow{
				Date:         v.Date,
				PayerName:    v.PayerName,
				ProductLabel: v.ProductLabel,
				Quantity:     v.Quantity.String(),
				Amount:       v.Amount.StringFixed(2),
				SourceLabel:  v.SourceLabel,
			})
		case *extraction.ExtractionError:
			rows = append(rows, &csvRow{SourceLabel: v.SourceLabel, Error: v.Message})
		}
	}

	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}
