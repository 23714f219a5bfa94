// Package export writes the current date range to an .xlsx workbook so a
// range can be shared outside the dashboard.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"finboard/internal/core"
	"finboard/internal/report"
)

const (
	sheetTransactions   = "Transactions"
	sheetClassification = "By Classification"
	sheetDaily          = "By Day"
)

// WriteWorkbook writes the transaction set and its derived series to path.
// The classification and daily sheets are computed from the same set, so
// the workbook is internally consistent with what the charts showed.
func WriteWorkbook(path string, txs []core.Transaction) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetTransactions); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeTransactions(f, txs); err != nil {
		return err
	}

	if _, err := f.NewSheet(sheetClassification); err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}
	if err := writeClassifications(f, report.ByClassification(txs, nil)); err != nil {
		return err
	}

	if _, err := f.NewSheet(sheetDaily); err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}
	if err := writeDaily(f, report.ByDay(txs)); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeTransactions(f *excelize.File, txs []core.Transaction) error {
	headers := []string{"Date", "Receiver", "Classification", "Amount", "Original Amount", "Paid To Me"}
	if err := writeRow(f, sheetTransactions, 1, headers); err != nil {
		return err
	}
	for i, tx := range txs {
		row := []any{
			tx.Date.Format("2006-01-02 15:04:05"),
			tx.Receiver,
			tx.Classification,
			core.ParseAmount(tx.Amount).InexactFloat64(),
			tx.OriginalAmount,
			tx.PaidToMe,
		}
		if err := writeRow(f, sheetTransactions, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeClassifications(f *excelize.File, groups []report.ClassificationGroup) error {
	if err := writeRow(f, sheetClassification, 1, []string{"Classification", "Total", "Transactions"}); err != nil {
		return err
	}
	for i, g := range groups {
		row := []any{g.Name, g.Total.InexactFloat64(), len(g.Transactions)}
		if err := writeRow(f, sheetClassification, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeDaily(f *excelize.File, buckets []report.DayBucket) error {
	if err := writeRow(f, sheetDaily, 1, []string{"Day", "Total"}); err != nil {
		return err
	}
	for i, b := range buckets {
		row := []any{b.Day.String(), b.Total.InexactFloat64()}
		if err := writeRow(f, sheetDaily, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeRow[T any](f *excelize.File, sheet string, row int, values []T) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("write %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}
