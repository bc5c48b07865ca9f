// Package export renders batches of sales outcomes as spreadsheets, CSV and a
// printable summary report.
package export

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/zombor/pix-sales/internal/extraction"
)

// Format is an export file format
type Format string

const (
	FormatXLSX   Format = "xlsx"
	FormatCSV    Format = "csv"
	FormatReport Format = "report"
)

// Column headers in export order: Date, PayerName, ProductLabel, Quantity,
// Amount, SourceLabel
var columns = []string{"Data", "Cliente", "Produto", "Qtd", "Valor Total", "Arquivo"}

// ParseFormat validates a user supplied format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatXLSX, FormatCSV, FormatReport:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q (valid: xlsx, csv, report)", s)
	}
}

// ContentType returns the MIME type for the format
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Extension returns the file extension for the format
func (f Format) Extension() string {
	if f == FormatReport {
		return ".txt"
	}
	return "." + string(f)
}

// Write renders outcomes in the given format
func Write(w io.Writer, f Format, productLabel string, outcomes []extraction.Outcome) error {
	switch f {
	case FormatXLSX:
		return WriteXLSX(w, productLabel, outcomes)
	case FormatCSV:
		return WriteCSV(w, outcomes)
	case FormatReport:
		return WriteReport(w, Summarize(productLabel, outcomes), outcomes)
	default:
		return fmt.Errorf("unknown export format %q", f)
	}
}

var (
	unsafeFilenameChars = regexp.MustCompile(`[^\p{L}\p{N}\s\-_]`)
	whitespaceRun       = regexp.MustCompile(`\s+`)
)

// Filename returns the download name for a batch export, e.g.
// "Vendas_Pudim.xlsx"
func Filename(productLabel string, f Format) string {
	return Basename(productLabel) + f.Extension()
}

// Basename is the export filename without an extension
func Basename(productLabel string) string {
	return "Vendas_" + sanitizeFilename(productLabel)
}

// sanitizeFilename keeps letters, digits, hyphens and underscores, joins
// words with underscores and truncates long labels
func sanitizeFilename(name string) string {
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	name = whitespaceRun.ReplaceAllString(strings.TrimSpace(name), "_")

	const maxLen = 50
	if runes := []rune(name); len(runes) > maxLen {
		name = string(runes[:maxLen])
	}

	if name == "" {
		name = "produto"
	}
	return name
}
