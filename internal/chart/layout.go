package chart

import (
	"time"

	"github.com/mvillagra/gantterm/internal/task"
)

// Vertical metrics, in pixels.
const (
	TaskBarHeight    = 40
	SubtaskBarHeight = 28
	SubtaskMargin    = 3
	ChartTopPx       = 100
)

// Row is one laid-out bar: a task or subtask with its placement resolved.
type Row struct {
	Task   *task.Task
	Parent *task.Task // nil for top-level tasks
	Rect   BarRect
	TopPx  int
	Height int
	Late   bool // past its end date without reaching 100%
	Culled bool // outside the render buffer; placed but not drawn
}

// Layout computes the full set of rows for the chart. Subtasks appear
// only under expanded parents, each one wrapped in a small margin.
// expanded maps task id to its expansion state; absent ids are collapsed.
func Layout(tr task.Tree, w Window, s Scale, expanded map[string]bool, now time.Time) []Row {
	rows := make([]Row, 0, tr.Count())
	y := ChartTopPx
	for _, t := range tr.Tasks {
		rows = append(rows, Row{
			Task:   t,
			Rect:   Project(t, w, s),
			TopPx:  y,
			Height: TaskBarHeight,
			Late:   isLate(t, now),
			Culled: !Visible(t, w),
		})

		if expanded[t.ID] {
			for i, sub := range t.Subtasks {
				rows = append(rows, Row{
					Task:   sub,
					Parent: t,
					Rect:   Project(sub, w, s),
					TopPx:  y + TaskBarHeight + SubtaskMargin + i*(SubtaskBarHeight+SubtaskMargin),
					Height: SubtaskBarHeight,
					Late:   isLate(sub, now),
					Culled: !Visible(sub, w),
				})
			}
			// Each subtask reserves a margin on both sides.
			y += len(t.Subtasks) * (SubtaskBarHeight + 2*SubtaskMargin)
		}
		y += TaskBarHeight
	}
	return rows
}

func isLate(t *task.Task, now time.Time) bool {
	end := t.EndDate()
	return end != nil && t.Progress < 100 && now.After(*end)
}

// RowAt returns the row whose vertical extent contains y, or nil.
func RowAt(rows []Row, y int) *Row {
	for i := range rows {
		if y >= rows[i].TopPx && y < rows[i].TopPx+rows[i].Height {
			return &rows[i]
		}
	}
	return nil
}
