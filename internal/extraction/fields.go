package extraction

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// These heuristics are tuned to the Pix receipt layouts of the common
// Brazilian banks. They are first-match-wins and make no attempt to validate
// the text as a whole.
var (
	// \s is ASCII-only in RE2; \p{Zs} adds the no-break space pt-BR
	// currency formatting puts after "R$"
	amountPattern = regexp.MustCompile(`R\$[\s\p{Zs}]?([\d.,]+)`)
	datePattern   = regexp.MustCompile(`(\d{2})[\s\p{Zs}]([A-Za-z]{3})[\s\p{Zs}](\d{4})`)
)

const (
	originMarker = "Origem"
	nameMarker   = "Nome"
)

// Months holds the pt-BR three-letter month abbreviations in calendar order
var Months = [12]string{
	"JAN", "FEV", "MAR", "ABR", "MAI", "JUN",
	"JUL", "AGO", "SET", "OUT", "NOV", "DEZ",
}

// ExtractAmount returns the first "R$ 1.234,56" amount in text, or zero
func ExtractAmount(text string) decimal.Decimal {
	match := amountPattern.FindStringSubmatch(text)
	if match == nil {
		return decimal.Zero
	}

	// The digit run is greedy and can swallow trailing punctuation ("R$ 50,00.")
	raw := strings.TrimRight(match[1], ".,")
	normalized := strings.ReplaceAll(raw, ".", "")
	normalized = strings.ReplaceAll(normalized, ",", ".")

	amount, err := decimal.NewFromString(normalized)
	if err != nil {
		slog.Debug("Unparseable amount", "token", match[0], "error", err)
		return decimal.Zero
	}
	return amount
}

// ExtractDate returns the first "05 MAR 2024" token in text normalized to
// "05/03/2024", or DateNotDetermined
func ExtractDate(text string) string {
	token := datePattern.FindString(text)
	if token == "" {
		return DateNotDetermined
	}
	return NormalizeMonth(token)
}

// NormalizeMonth replaces the month abbreviation in a date token with its
// slash-delimited number and drops the whitespace. Tokens without a known
// abbreviation are returned as given.
func NormalizeMonth(token string) string {
	upper := strings.ToUpper(token)
	for i, month := range Months {
		if !strings.Contains(upper, month) {
			continue
		}
		replaced := strings.ReplaceAll(upper, month, fmt.Sprintf("/%02d/", i+1))
		return strings.Join(strings.Fields(replaced), "")
	}
	return token
}

// ExtractPayerName returns the title-cased name on the first "Nome" line
// after the first "Origem" line, or PayerUnidentified. A bare "Nome" label on
// the last line also yields PayerUnidentified.
func ExtractPayerName(text string) string {
	lines := nonEmptyLines(text)

	foundOrigin := false
	for i, line := range lines {
		if strings.Contains(line, originMarker) {
			foundOrigin = true
			continue
		}
		if !foundOrigin || !strings.Contains(line, nameMarker) {
			continue
		}

		name := strings.TrimSpace(strings.ReplaceAll(line, nameMarker, ""))
		if name == "" && i+1 < len(lines) {
			// Some banks put the label and the value on separate lines
			name = lines[i+1]
		}
		if name == "" {
			return PayerUnidentified
		}
		return titleCase(name)
	}
	return PayerUnidentified
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// titleCase follows Unicode word boundaries: letters after a hyphen are
// capitalized, letters after an apostrophe are not ("Maria-José D'ávila").
// It builds a new Caser per call; Casers are not safe for concurrent use.
func titleCase(s string) string {
	return cases.Title(language.BrazilianPortuguese).String(s)
}
