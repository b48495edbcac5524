package shift

import (
	"fmt"
	"io"

	"edp-shifts/internal/models"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Shifts"

var exportHeader = []any{
	"ID", "Date", "Branch", "Staff Name", "Staff Number", "Mobile Phone", "Shift Timing", "Timestamp",
}

// WriteXLSX renders shifts as a workbook with one header row and one row per
// shift, dates as DD-MM-YYYY.
func WriteXLSX(w io.Writer, shifts []models.Shift) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"F5F5F5"}},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if err := f.SetRowStyle(exportSheet, 1, 1, bold); err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	for i, sh := range shifts {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			sh.ID,
			FormatDisplayDate(sh.Date),
			sh.Branch,
			sh.StaffName,
			sh.StaffNumber,
			sh.MobilePhone,
			string(sh.ShiftTiming),
			sh.Timestamp.Format(TimestampLayout),
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return fmt.Errorf("write shift %d: %w", sh.ID, err)
		}
	}

	if err := f.SetColWidth(exportSheet, "A", "H", 16); err != nil {
		return err
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
