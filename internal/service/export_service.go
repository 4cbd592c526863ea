package service

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/navid-fn/hotelradar/internal/aggregate"
)

// ExportService renders a pivot table as an .xlsx workbook for download.
type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

const exportSheet = "Prices"

// WriteWorkbook streams the pivot as a single-sheet workbook: a bold
// header row of column names, then the pivot rows in order, blanks and
// the AVERAGE row included as-is.
func (es *ExportService) WriteWorkbook(pivot *aggregate.Pivot, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", exportSheet)

	header := make([]interface{}, len(pivot.Columns))
	for i, col := range pivot.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetRowStyle(exportSheet, 1, 1, boldStyle)
	}

	for i, row := range pivot.Rows {
		cells := make([]interface{}, len(pivot.Columns))
		for j, col := range pivot.Columns {
			cells[j] = row[col]
		}
		start, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetSheetRow(exportSheet, start, &cells); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
		if row[aggregate.ColScrapeDate] == aggregate.AverageLabel && boldStyle != 0 {
			_ = f.SetRowStyle(exportSheet, i+2, i+2, boldStyle)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
