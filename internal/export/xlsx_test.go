package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"finboard/internal/core"
)

func TestWriteWorkbook(t *testing.T) {
	txs := []core.Transaction{
		{
			Classification: "Grocery",
			Amount:         "1,250.00",
			Receiver:       "Shop",
			Date:           core.NewTimestamp(time.Date(2025, 6, 12, 18, 30, 0, 0, time.UTC)),
		},
		{
			Classification: "Fuel",
			Amount:         "500",
			Receiver:       "Station",
			Date:           core.NewTimestamp(time.Date(2025, 6, 12, 9, 0, 0, 0, time.UTC)),
		},
	}

	path := filepath.Join(t.TempDir(), "report.xlsx")
	if err := WriteWorkbook(path, txs); err != nil {
		t.Fatalf("WriteWorkbook: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	for _, sheet := range []string{"Transactions", "By Classification", "By Day"} {
		if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
			t.Fatalf("missing sheet %q (idx=%d err=%v)", sheet, idx, err)
		}
	}

	if got, _ := f.GetCellValue("Transactions", "B2"); got != "Shop" {
		t.Fatalf("Transactions!B2 = %q", got)
	}
	if got, _ := f.GetCellValue("By Classification", "A2"); got != "Grocery" {
		t.Fatalf("By Classification!A2 = %q (expect largest total first)", got)
	}
	if got, _ := f.GetCellValue("By Day", "A2"); got != "2025-06-12" {
		t.Fatalf("By Day!A2 = %q", got)
	}
}
