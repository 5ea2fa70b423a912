package workoutplan

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Plan"

var exportHeader = []string{"Day", "Workout", "Focus", "Intensity", "Minutes", "Exercise", "Sets", "Reps", "Equipment"}

// WriteXLSX writes the plan as a spreadsheet: a title row, the summary, then
// one row per exercise in calendar order.
func WriteXLSX(w io.Writer, p Plan) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	f.SetCellValue(exportSheet, "A1", p.Name)
	f.SetCellStyle(exportSheet, "A1", "A1", bold)
	f.SetCellValue(exportSheet, "A2", p.Summary)

	for i, h := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		f.SetCellValue(exportSheet, cell, h)
	}
	f.SetCellStyle(exportSheet, "A3", "I3", bold)

	row := 4
	for _, day := range p.Days() {
		wk := p.Workouts[day]
		for _, ex := range wk.Exercises {
			values := []any{day, wk.Name, wk.FocusArea, string(wk.Intensity), wk.DurationMinutes, ex.Name, ex.Sets, ex.Reps, yesNo(ex.Equipment)}
			if err := f.SetSheetRow(exportSheet, fmt.Sprintf("A%d", row), &values); err != nil {
				return fmt.Errorf("write row %d: %w", row, err)
			}
			row++
		}
	}
	f.SetColWidth(exportSheet, "A", "B", 24)
	f.SetColWidth(exportSheet, "F", "F", 22)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
