package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/zombor/pix-sales/internal/extraction"
)

const (
	salesSheet   = "Vendas"
	summarySheet = "Resumo"
	errorsSheet  = "Erros"

	// Built-in excel number format "#,##0.00"
	numFmtMoney = 4
)

// WriteXLSX writes the records to a "Vendas" sheet, totals to "Resumo" and
// any failed inputs to "Erros"
func WriteXLSX(w io.Writer, productLabel string, outcomes []extraction.Outcome) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", salesSheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: numFmtMoney})
	if err != nil {
		return fmt.Errorf("creating money style: %w", err)
	}

	records, failures := extraction.Split(outcomes)

	if err := writeRow(f, salesSheet, 1, stringsToCells(columns)); err != nil {
		return err
	}
	for i, r := range records {
		row := []interface{}{r.Date, r.PayerName, r.ProductLabel, quantityCell(r.Quantity), r.Amount.InexactFloat64(), r.SourceLabel}
		if err := writeRow(f, salesSheet, i+2, row); err != nil {
			return err
		}
	}
	if err := f.SetRowStyle(salesSheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}
	if len(records) > 0 {
		if err := f.SetCellStyle(salesSheet, "E2", fmt.Sprintf("E%d", len(records)+1), moneyStyle); err != nil {
			return fmt.Errorf("styling amounts: %w", err)
		}
	}
	if err := f.SetColWidth(salesSheet, "A", "F", 18); err != nil {
		return fmt.Errorf("setting column width: %w", err)
	}

	if err := writeSummarySheet(f, Summarize(productLabel, outcomes), headerStyle); err != nil {
		return err
	}
	if len(failures) > 0 {
		if err := writeErrorsSheet(f, failures, headerStyle); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, s Summary, headerStyle int) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("creating summary sheet: %w", err)
	}

	rows := [][]interface{}{
		{"Produto", s.ProductLabel},
		{"Faturamento", s.TotalAmount.InexactFloat64()},
		{"Total de unidades", s.TotalQuantity.InexactFloat64()},
		{"Comprovantes lidos", s.Records},
		{"Falhas", s.Errors},
	}
	for i, row := range rows {
		if err := writeRow(f, summarySheet, i+1, row); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(summarySheet, "A1", fmt.Sprintf("A%d", len(rows)), headerStyle); err != nil {
		return fmt.Errorf("styling summary: %w", err)
	}
	return f.SetColWidth(summarySheet, "A", "B", 22)
}

func writeErrorsSheet(f *excelize.File, failures []*extraction.ExtractionError, headerStyle int) error {
	if _, err := f.NewSheet(errorsSheet); err != nil {
		return fmt.Errorf("creating errors sheet: %w", err)
	}
	if err := writeRow(f, errorsSheet, 1, []interface{}{"Arquivo", "Erro"}); err != nil {
		return err
	}
	for i, e := range failures {
		if err := writeRow(f, errorsSheet, i+2, []interface{}{e.SourceLabel, e.Message}); err != nil {
			return err
		}
	}
	return f.SetRowStyle(errorsSheet, 1, 1, headerStyle)
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing %s row %d: %w", sheet, row, err)
	}
	return nil
}

// quantityCell keeps whole quantities as integers in the sheet
func quantityCell(q extraction.Quantity) interface{} {
	if q.IsWhole() {
		return q.Int()
	}
	return q.Float64()
}

func stringsToCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
