package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mvillagra/gantterm/internal/task"
)

// projectHeaders are the columns Microsoft Project's import wizard maps
// automatically.
var projectHeaders = []string{
	"ID", "Name", "Duration", "Start", "Finish", "Predecessors",
	"Resource Names", "Outline Level", "Priority", "% Complete",
	"Notes", "Work", "Type", "WBS",
}

// projectPriority maps task priorities onto Project's 0-1000 scale.
func projectPriority(p task.Priority) int {
	switch p {
	case task.PriorityLow:
		return 300
	case task.PriorityHigh:
		return 700
	case task.PriorityCritical:
		return 900
	default:
		return 500
	}
}

// projectDate renders dates the MM/DD/YYYY way Project expects.
func projectDate(t *task.Task) (start, finish string) {
	if t.StartDate == nil {
		return "", ""
	}
	const layout = "01/02/2006"
	return t.StartDate.Format(layout), t.EndDate().Format(layout)
}

// workHours estimates total work as eight hours per scheduled day per
// assigned resource.
func workHours(t *task.Task) string {
	resources := len(t.Assignees)
	if resources == 0 {
		resources = 1
	}
	duration := t.Duration
	if duration < 1 {
		duration = 1
	}
	return fmt.Sprintf("%dh", duration*8*resources)
}

// WriteProjectCSV writes the tree in Microsoft Project's CSV import
// shape: sequential numeric ids, outline levels and WBS codes encoding
// the hierarchy, and each task linked to its predecessor sibling.
//
// The output starts with a UTF-8 BOM and uses CRLF line endings, which
// is what Project's wizard expects on Windows.
func WriteProjectCSV(w io.Writer, tr task.Tree) error {
	if _, err := io.WriteString(w, "\uFEFF"); err != nil {
		return fmt.Errorf("writing bom: %w", err)
	}

	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(projectHeaders); err != nil {
		return fmt.Errorf("writing project header: %w", err)
	}

	id := 0
	prevTask := 0
	for _, t := range tr.Tasks {
		id++
		parentWBS := strconv.Itoa(id)
		if err := writeProjectRow(cw, t, id, 1, parentWBS, prevTask); err != nil {
			return err
		}
		prevTask = id

		prevSub := 0
		for i, sub := range t.Subtasks {
			id++
			wbs := fmt.Sprintf("%s.%d", parentWBS, i+1)
			if err := writeProjectRow(cw, sub, id, 2, wbs, prevSub); err != nil {
				return err
			}
			prevSub = id
		}
	}

	cw.Flush()
	return cw.Error()
}

func writeProjectRow(cw *csv.Writer, t *task.Task, id, outline int, wbs string, predecessor int) error {
	start, finish := projectDate(t)

	pred := ""
	if predecessor > 0 {
		pred = strconv.Itoa(predecessor)
	}

	row := []string{
		strconv.Itoa(id),
		t.Name,
		fmt.Sprintf("%dd", t.Duration),
		start,
		finish,
		pred,
		strings.Join(t.Assignees, ";"),
		strconv.Itoa(outline),
		strconv.Itoa(projectPriority(t.Priority)),
		strconv.Itoa(t.Progress),
		"",
		workHours(t),
		"Fixed Duration",
		wbs,
	}
	if err := cw.Write(row); err != nil {
		return fmt.Errorf("writing project row for %q: %w", t.Name, err)
	}
	return nil
}
