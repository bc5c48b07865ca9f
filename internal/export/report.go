package export

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/zombor/pix-sales/internal/extraction"
)

// WriteReport writes a printable plain-text summary followed by the record
// table and the list of receipts that could not be read
func WriteReport(w io.Writer, s Summary, outcomes []extraction.Outcome) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Vendas de %s\n\n", s.ProductLabel)
	fmt.Fprintf(tw, "Faturamento:\t%s\n", s.AmountDisplay())
	fmt.Fprintf(tw, "Total de %ss:\t%s un\n", s.ProductLabel, s.QuantityDisplay())
	fmt.Fprintf(tw, "Comprovantes lidos:\t%d\n", s.Records)
	if s.Errors > 0 {
		fmt.Fprintf(tw, "Falhas:\t%d\n", s.Errors)
	}

	records, failures := extraction.Split(outcomes)
	if len(records) > 0 {
		fmt.Fprintln(tw)
		for i, c := range columns {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, c)
		}
		fmt.Fprintln(tw)
		for _, r := range records {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
				r.Date, r.PayerName, r.ProductLabel, r.Quantity, r.Amount.StringFixed(2), r.SourceLabel)
		}
	}

	if len(failures) > 0 {
		fmt.Fprintln(tw, "\nNão foi possível ler:")
		for _, e := range failures {
			fmt.Fprintf(tw, "  %s\t%s\n", e.SourceLabel, e.Message)
		}
	}

	return tw.Flush()
}
