package excel

import (
	"fmt"
	"time"

	"github.com/courtside/fixtures/internal/config"
	"github.com/courtside/fixtures/internal/schedule"
	"github.com/xuri/excelize/v2"
)

// Generate creates the results workbook: the fixture schedule, per-team
// calendar, division balance table, and the processing log.
func Generate(cfg *config.Config, result *schedule.Result) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetDefaultFont("Arial")

	if err := writeFixtureSheet(f, result); err != nil {
		return nil, fmt.Errorf("writing fixture schedule: %w", err)
	}
	if err := writeCalendarSheet(f, result); err != nil {
		return nil, fmt.Errorf("writing team calendar: %w", err)
	}
	if err := writeBalanceSheet(f, cfg, result); err != nil {
		return nil, fmt.Errorf("writing division balance: %w", err)
	}
	if err := writeLogSheet(f, result); err != nil {
		return nil, fmt.Errorf("writing processing log: %w", err)
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

func sheetStyles(f *excelize.File) (header, cell int) {
	header, _ = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 12, Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	cell, _ = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 12, Family: "Arial"},
	})
	return header, cell
}

func writeHeaderRow(f *excelize.File, sheet string, headers []string, style int) {
	for i, h := range headers {
		f.SetCellValue(sheet, cellRef(i+1, 1), h)
		if style != 0 {
			f.SetCellStyle(sheet, cellRef(i+1, 1), cellRef(i+1, 1), style)
		}
	}
}

func styleRow(f *excelize.File, sheet string, row, cols, style int) {
	if style == 0 {
		return
	}
	for col := 1; col <= cols; col++ {
		f.SetCellStyle(sheet, cellRef(col, row), cellRef(col, row), style)
	}
}

func writeFixtureSheet(f *excelize.File, result *schedule.Result) error {
	sheet := "Fixture Schedule"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headerStyle, cellStyle := sheetStyles(f)
	headers := []string{"Date", "Day", "Time", "Court", "Division", "Home Team", "Away Team"}
	writeHeaderRow(f, sheet, headers, headerStyle)

	for i, m := range result.Matches {
		row := i + 2
		f.SetCellValue(sheet, cellRef(1, row), m.Slot.Date.Format("01/02/2006"))
		f.SetCellValue(sheet, cellRef(2, row), m.Slot.Date.Format("Mon"))
		f.SetCellValue(sheet, cellRef(3, row), m.Slot.Time)
		f.SetCellValue(sheet, cellRef(4, row), m.Slot.Court)
		f.SetCellValue(sheet, cellRef(5, row), m.Division)
		f.SetCellValue(sheet, cellRef(6, row), m.Home)
		f.SetCellValue(sheet, cellRef(7, row), m.Away)
		styleRow(f, sheet, row, len(headers), cellStyle)
	}

	widths := map[string]float64{"A": 14, "B": 7, "C": 9, "D": 16, "E": 16, "F": 20, "G": 20}
	for col, w := range widths {
		f.SetColWidth(sheet, col, col, w)
	}
	return nil
}

func writeCalendarSheet(f *excelize.File, result *schedule.Result) error {
	sheet := "Team Calendar"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headerStyle, cellStyle := sheetStyles(f)
	headers := []string{"Team", "Date", "Day", "Time", "Court", "Opponent", "Home/Away", "Division"}
	writeHeaderRow(f, sheet, headers, headerStyle)

	for i, r := range result.TeamCalendar {
		row := i + 2
		f.SetCellValue(sheet, cellRef(1, row), r.Team)
		f.SetCellValue(sheet, cellRef(2, row), r.Date.Format("01/02/2006"))
		f.SetCellValue(sheet, cellRef(3, row), r.Date.Format("Mon"))
		f.SetCellValue(sheet, cellRef(4, row), r.Time)
		f.SetCellValue(sheet, cellRef(5, row), r.Court)
		f.SetCellValue(sheet, cellRef(6, row), r.Opponent)
		f.SetCellValue(sheet, cellRef(7, row), r.Role)
		f.SetCellValue(sheet, cellRef(8, row), r.Division)
		styleRow(f, sheet, row, len(headers), cellStyle)
	}

	widths := map[string]float64{"A": 20, "B": 14, "C": 7, "D": 9, "E": 16, "F": 20, "G": 12, "H": 16}
	for col, w := range widths {
		f.SetColWidth(sheet, col, col, w)
	}
	return nil
}

func writeBalanceSheet(f *excelize.File, cfg *config.Config, result *schedule.Result) error {
	sheet := "Division Balance"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headerStyle, cellStyle := sheetStyles(f)
	headers := []string{"Date"}
	for _, div := range cfg.Divisions {
		headers = append(headers, div.Name)
	}
	writeHeaderRow(f, sheet, headers, headerStyle)

	for i, r := range result.Balance {
		row := i + 2
		f.SetCellValue(sheet, cellRef(1, row), r.Date.Format("01/02/2006"))
		for di, div := range cfg.Divisions {
			f.SetCellValue(sheet, cellRef(di+2, row), r.Counts[div.Name])
		}
		styleRow(f, sheet, row, len(headers), cellStyle)
	}

	f.SetColWidth(sheet, "A", "A", 14)
	for i := range cfg.Divisions {
		col := colLetter(i + 2)
		f.SetColWidth(sheet, col, col, 16)
	}
	return nil
}

func writeLogSheet(f *excelize.File, result *schedule.Result) error {
	sheet := "Processing Log"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headerStyle, cellStyle := sheetStyles(f)
	headers := []string{"Step", "Status", "Detail"}
	writeHeaderRow(f, sheet, headers, headerStyle)

	for i, e := range result.Log {
		row := i + 2
		f.SetCellValue(sheet, cellRef(1, row), e.Step)
		f.SetCellValue(sheet, cellRef(2, row), e.Status)
		f.SetCellValue(sheet, cellRef(3, row), e.Detail)
		styleRow(f, sheet, row, len(headers), cellStyle)
	}

	f.SetColWidth(sheet, "A", "A", 22)
	f.SetColWidth(sheet, "B", "B", 10)
	f.SetColWidth(sheet, "C", "C", 80)
	return nil
}

// ReadUnavailability reads team unavailability records from a spreadsheet
// with Team and Date columns, the format league coordinators already
// maintain. Dates may be written as 2006-01-02 or 01/02/2006.
func ReadUnavailability(path string) ([]config.Unavailability, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s has no rows", sheet)
	}

	teamCol, dateCol := -1, -1
	for i, h := range rows[0] {
		switch h {
		case "Team":
			teamCol = i
		case "Date":
			dateCol = i
		}
	}
	if teamCol < 0 || dateCol < 0 {
		return nil, fmt.Errorf("%s must have Team and Date columns", sheet)
	}

	var records []config.Unavailability
	for i, row := range rows[1:] {
		if teamCol >= len(row) || dateCol >= len(row) {
			continue
		}
		team, raw := row[teamCol], row[dateCol]
		if team == "" && raw == "" {
			continue
		}
		d, err := parseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		records = append(records, config.Unavailability{Team: team, Date: config.Date{Time: d}})
	}
	return records, nil
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", "01/02/2006"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", raw)
}

func cellRef(col, row int) string {
	return fmt.Sprintf("%s%d", colLetter(col), row)
}

func colLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}
