// Package export writes the task tree out in interchange formats: flat
// CSV, Microsoft Project import CSV, JSON and a static SVG snapshot of
// the chart.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/mvillagra/gantterm/internal/dateutil"
	"github.com/mvillagra/gantterm/internal/task"
)

// WriteCSV writes a flat spreadsheet-style listing: one row per task and
// subtask, with the nesting level as a column.
func WriteCSV(w io.Writer, tr task.Tree) error {
	cw := csv.NewWriter(w)

	header := []string{"ID", "Name", "Level", "Start", "Finish", "Progress", "Priority", "Resources"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	var writeErr error
	tr.Walk(func(t *task.Task, parent *task.Task) bool {
		level := 0
		if parent != nil {
			level = 1
		}
		row := []string{
			t.ID,
			t.Name,
			strconv.Itoa(level),
			formatDate(t.StartDate),
			formatDate(t.EndDate()),
			fmt.Sprintf("%d%%", t.Progress),
			string(t.Priority),
			strings.Join(t.Assignees, ", "),
		}
		if err := cw.Write(row); err != nil {
			writeErr = fmt.Errorf("writing csv row for %q: %w", t.Name, err)
			return false
		}
		return true
	})
	if writeErr != nil {
		return writeErr
	}

	cw.Flush()
	return cw.Error()
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return dateutil.Format(*t)
}
