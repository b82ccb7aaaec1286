package schedule

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fortuna/augur/internal/nbadata"
)

// csvDateLayouts covers the date formats seen in exported schedule files.
var csvDateLayouts = []string{"2006-01-02", "1/2/2006", "01/02/2006", "Mon Jan 2 2006"}

// CSVSchedule is a local schedule feed loaded from a Date,Visitor,Home file.
// It serves as the fallback when the scoreboard upstream is unavailable.
type CSVSchedule struct {
	entries []Entry
}

// LoadCSV reads a schedule file. Rows with unknown teams or unparseable
// dates are skipped.
func LoadCSV(path string) (*CSVSchedule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("schedule file %s is empty", path)
	}

	dateCol, visitorCol, homeCol := 0, 1, 2
	start := 0
	if looksLikeHeader(records[0]) {
		for i, label := range records[0] {
			switch strings.ToLower(strings.TrimSpace(label)) {
			case "date":
				dateCol = i
			case "visitor":
				visitorCol = i
			case "home":
				homeCol = i
			}
		}
		start = 1
	}

	sched := &CSVSchedule{}
	for _, record := range records[start:] {
		if len(record) <= dateCol || len(record) <= visitorCol || len(record) <= homeCol {
			continue
		}

		date, ok := parseCSVDate(record[dateCol])
		if !ok {
			continue
		}
		visitor, ok := nbadata.Resolve(record[visitorCol])
		if !ok {
			continue
		}
		home, ok := nbadata.Resolve(record[homeCol])
		if !ok {
			continue
		}

		sched.entries = append(sched.entries, Entry{
			Date:          date,
			HomeTeamID:    home.ID,
			VisitorTeamID: visitor.ID,
		})
	}

	if len(sched.entries) == 0 {
		return nil, fmt.Errorf("schedule file %s has no usable rows", path)
	}
	return sched, nil
}

// GamesOn returns the entries scheduled on the given calendar date.
func (s *CSVSchedule) GamesOn(_ context.Context, date time.Time) ([]Entry, error) {
	day := dateOnly(date)
	var out []Entry
	for _, entry := range s.entries {
		if dateOnly(entry.Date).Equal(day) {
			out = append(out, entry)
		}
	}
	return out, nil
}

// Len reports how many entries were loaded.
func (s *CSVSchedule) Len() int {
	return len(s.entries)
}

func looksLikeHeader(record []string) bool {
	for _, field := range record {
		if _, ok := parseCSVDate(field); ok {
			return false
		}
	}
	return true
}

func parseCSVDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range csvDateLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
