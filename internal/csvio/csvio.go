// Package csvio reads and writes the schedule CSV format. Fields are joined
// with bare commas and never quoted, so a title containing a comma produces
// a row that does not round-trip.
package csvio

import (
	"fmt"
	"io"
	"strconv"
	"strings"


	"github.com/julianstephens/vibequest/internal/constants"
	"github.com/julianstephens/vibequest/internal/models"
)

const (
	Header     = "Title,Date,StartTime,EndTime,Duration,Priority"
	minColumns = 6
)

// Format renders entries as CSV text: the header line, then one line per
// entry, with no trailing newline after the last row.
func Format(entries []models.ScheduleEntry) string {
	var b strings.Builder
	b.WriteString(Header)
	b.WriteByte('\n')
	for i, e := range entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.Join([]string{
			e.Title,
			e.Date,
			e.StartTime,
			e.EndTime,
			strconv.Itoa(e.EstimatedDuration),
			string(e.Priority),
		}, ","))
	}
	return b.String()
}

func Export(w io.Writer, entries []models.ScheduleEntry) error {
	if _, err := io.WriteString(w, Format(entries)); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

// Parse returns the six CSV columns of every data row as partial entries.
// The first line is always skipped as the header, and rows with fewer than
// six columns are ignored. A non-numeric duration becomes 0.
func Parse(text string) []models.ScheduleEntry {
	lines := strings.Split(text, "\n")
	var out []models.ScheduleEntry
	for i := 1; i < len(lines); i++ {
		cols := strings.Split(strings.TrimSuffix(lines[i], "\r"), ",")
		if len(cols) < minColumns {
			continue
		}
		duration, err := strconv.Atoi(strings.TrimSpace(cols[4]))
		if err != nil {
			duration = 0
		}
		out = append(out, models.ScheduleEntry{
			Title:             cols[0],
			Date:              cols[1],
			StartTime:         cols[2],
			EndTime:           cols[3],
			EstimatedDuration: duration,
			Priority:          models.Priority(cols[5]),
		})
	}
	return out
}

// Import parses CSV from r into fresh ACTIVE TASK entries in the fallback
// project. newID supplies the random part of each entry id.
func Import(r io.Reader, newID func() string) ([]models.ScheduleEntry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	rows := Parse(string(data))
	for i := range rows {
		rows[i].ID = constants.EntryIDPrefix + newID()
		rows[i].Type = models.EntryTypeTask
		rows[i].Status = models.StatusActive
		rows[i].ProjectID = constants.FallbackProjectID
		rows[i].Difficulty = models.DifficultyNormal
		rows[i].Tags = []string{}
		rows[i].RepeatConfig = models.RepeatConfig{Type: models.RepeatNone, Interval: 1}
	}
	return rows, nil
}
