package transfer

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/five82/quoter/internal/quotes"
)

const xlsxSheet = "Sheet1"

var xlsxHeader = []any{"id", "text", "category", "updated_at"}

// ExportXLSX writes list to a spreadsheet at path.
func ExportXLSX(path string, list []quotes.Quote) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sw, err := f.NewStreamWriter(xlsxSheet)
	if err != nil {
		return fmt.Errorf("xlsx stream: %w", err)
	}
	if err := sw.SetRow("A1", xlsxHeader); err != nil {
		return fmt.Errorf("xlsx header: %w", err)
	}
	for i, q := range list {
		updated := ""
		if !q.UpdatedAt.IsZero() {
			updated = q.UpdatedAt.UTC().Format(time.RFC3339)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("xlsx cell: %w", err)
		}
		if err := sw.SetRow(cell, []any{q.ID, q.Text, q.Category, updated}); err != nil {
			return fmt.Errorf("xlsx row %d: %w", i+1, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("xlsx flush: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save xlsx: %w", err)
	}
	return nil
}
