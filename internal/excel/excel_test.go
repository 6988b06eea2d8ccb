package excel

import (
	"testing"
	"time"

	"github.com/courtside/fixtures/internal/config"
	"github.com/courtside/fixtures/internal/schedule"
	"github.com/xuri/excelize/v2"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func testData() (*config.Config, *schedule.Result) {
	cfg := &config.Config{
		Season: config.Season{
			StartDate: config.Date{Time: date(2026, 1, 10)},
			EndDate:   config.Date{Time: date(2026, 1, 17)},
			PlayDays:  []string{"Saturday"},
		},
		Divisions: []config.Division{
			{Name: "Division 1", Teams: []string{"Falcons", "Hornets"}},
			{Name: "Division 2", Teams: []string{"Magpies", "Vixens"}},
		},
		Courts:    []string{"Court 1"},
		TimeSlots: []string{"09:00"},
		Seed:      42,
	}

	result := &schedule.Result{
		Matches: []schedule.ScheduledMatch{
			{
				Slot:     schedule.Slot{Date: date(2026, 1, 10), Time: "09:00", Court: "Court 1"},
				Division: "Division 1", Home: "Falcons", Away: "Hornets",
			},
			{
				Slot:     schedule.Slot{Date: date(2026, 1, 17), Time: "09:00", Court: "Court 1"},
				Division: "Division 2", Home: "Magpies", Away: "Vixens",
			},
		},
		TeamCalendar: []schedule.CalendarRow{
			{Team: "Falcons", Opponent: "Hornets", Role: "Home", Division: "Division 1",
				Date: date(2026, 1, 10), Time: "09:00", Court: "Court 1"},
			{Team: "Hornets", Opponent: "Falcons", Role: "Away", Division: "Division 1",
				Date: date(2026, 1, 10), Time: "09:00", Court: "Court 1"},
		},
		Balance: []schedule.BalanceRow{
			{Date: date(2026, 1, 10), Counts: map[string]int{"Division 1": 1, "Division 2": 0}},
			{Date: date(2026, 1, 17), Counts: map[string]int{"Division 1": 0, "Division 2": 1}},
		},
		Log: []schedule.LogEntry{
			{Step: "Load Configuration", Status: schedule.StatusOK, Detail: "2 divisions, 4 teams, 1 courts, 1 time slots"},
		},
	}

	return cfg, result
}

func TestGenerateWorkbook(t *testing.T) {
	cfg, result := testData()

	f, err := Generate(cfg, result)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	t.Run("has all four sheets", func(t *testing.T) {
		for _, sheet := range []string{"Fixture Schedule", "Team Calendar", "Division Balance", "Processing Log"} {
			idx, err := f.GetSheetIndex(sheet)
			if err != nil {
				t.Fatalf("GetSheetIndex error: %v", err)
			}
			if idx < 0 {
				t.Errorf("%s sheet not found", sheet)
			}
		}
	})

	t.Run("fixture sheet has headers", func(t *testing.T) {
		val, _ := f.GetCellValue("Fixture Schedule", "A1")
		if val != "Date" {
			t.Errorf("A1 = %q, want Date", val)
		}
		val, _ = f.GetCellValue("Fixture Schedule", "F1")
		if val != "Home Team" {
			t.Errorf("F1 = %q, want Home Team", val)
		}
	})

	t.Run("fixture sheet has match rows", func(t *testing.T) {
		found := false
		rows, _ := f.GetRows("Fixture Schedule")
		for _, row := range rows[1:] { // skip header
			if len(row) >= 7 && row[5] == "Falcons" && row[6] == "Hornets" {
				found = true
				if row[0] != "01/10/2026" {
					t.Errorf("date = %q, want 01/10/2026", row[0])
				}
				if row[1] != "Sat" {
					t.Errorf("day = %q, want Sat", row[1])
				}
				break
			}
		}
		if !found {
			t.Error("Falcons vs Hornets match not found in fixture sheet")
		}
	})

	t.Run("calendar sheet has a row per team", func(t *testing.T) {
		rows, _ := f.GetRows("Team Calendar")
		if len(rows) != 3 {
			t.Fatalf("calendar has %d rows, want 3", len(rows))
		}
		if rows[1][0] != "Falcons" || rows[1][6] != "Home" {
			t.Errorf("first row = %v", rows[1])
		}
		if rows[2][0] != "Hornets" || rows[2][6] != "Away" {
			t.Errorf("second row = %v", rows[2])
		}
	})

	t.Run("balance sheet has a column per division", func(t *testing.T) {
		val, _ := f.GetCellValue("Division Balance", "B1")
		if val != "Division 1" {
			t.Errorf("B1 = %q, want Division 1", val)
		}
		val, _ = f.GetCellValue("Division Balance", "C2")
		if val != "0" {
			t.Errorf("C2 = %q, want 0", val)
		}
	})

	t.Run("log sheet carries the audit trail", func(t *testing.T) {
		val, _ := f.GetCellValue("Processing Log", "A2")
		if val != "Load Configuration" {
			t.Errorf("A2 = %q, want Load Configuration", val)
		}
		val, _ = f.GetCellValue("Processing Log", "B2")
		if val != "ok" {
			t.Errorf("B2 = %q, want ok", val)
		}
	})

	t.Run("default Sheet1 removed", func(t *testing.T) {
		idx, _ := f.GetSheetIndex("Sheet1")
		if idx >= 0 {
			t.Error("Sheet1 should be removed")
		}
	})
}

func TestWriteAndRead(t *testing.T) {
	cfg, result := testData()

	f, err := Generate(cfg, result)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	path := t.TempDir() + "/fixtures.xlsx"
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs error: %v", err)
	}

	f2, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile error: %v", err)
	}
	defer f2.Close()

	val, _ := f2.GetCellValue("Fixture Schedule", "A1")
	if val != "Date" {
		t.Errorf("re-read A1 = %q, want Date", val)
	}
}

func TestReadUnavailability(t *testing.T) {
	write := func(t *testing.T, rows [][]string) string {
		t.Helper()
		f := excelize.NewFile()
		for i, row := range rows {
			for j, val := range row {
				f.SetCellValue("Sheet1", cellRef(j+1, i+1), val)
			}
		}
		path := t.TempDir() + "/unavailability.xlsx"
		if err := f.SaveAs(path); err != nil {
			t.Fatalf("SaveAs error: %v", err)
		}
		return path
	}

	t.Run("reads team and date columns", func(t *testing.T) {
		path := write(t, [][]string{
			{"Team", "Date"},
			{"Falcons", "2026-01-10"},
			{"Hornets", "01/17/2026"},
		})

		records, err := ReadUnavailability(path)
		if err != nil {
			t.Fatalf("ReadUnavailability() error: %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("records = %d, want 2", len(records))
		}
		if records[0].Team != "Falcons" || !records[0].Date.Time.Equal(date(2026, 1, 10)) {
			t.Errorf("record 0 = %s %s", records[0].Team, records[0].Date.Time.Format("2006-01-02"))
		}
		if records[1].Team != "Hornets" || !records[1].Date.Time.Equal(date(2026, 1, 17)) {
			t.Errorf("record 1 = %s %s", records[1].Team, records[1].Date.Time.Format("2006-01-02"))
		}
	})

	t.Run("tolerates extra columns", func(t *testing.T) {
		path := write(t, [][]string{
			{"Notes", "Team", "Date"},
			{"holiday", "Falcons", "2026-01-10"},
		})

		records, err := ReadUnavailability(path)
		if err != nil {
			t.Fatalf("ReadUnavailability() error: %v", err)
		}
		if len(records) != 1 || records[0].Team != "Falcons" {
			t.Errorf("records = %v", records)
		}
	})

	t.Run("rejects missing columns", func(t *testing.T) {
		path := write(t, [][]string{
			{"Club", "When"},
			{"Falcons", "2026-01-10"},
		})

		if _, err := ReadUnavailability(path); err == nil {
			t.Error("expected error for missing Team and Date columns")
		}
	})

	t.Run("rejects bad dates", func(t *testing.T) {
		path := write(t, [][]string{
			{"Team", "Date"},
			{"Falcons", "next Saturday"},
		})

		if _, err := ReadUnavailability(path); err == nil {
			t.Error("expected error for unparseable date")
		}
	})
}
