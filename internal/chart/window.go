package chart

import (
	"time"

	"github.com/mvillagra/gantterm/internal/dateutil"
	"github.com/mvillagra/gantterm/internal/task"
)

// Window padding around the scheduled tasks, in days. The lead-in gives
// room to drag bars earlier; the longer tail leaves room to extend.
const (
	windowLeadDays = 7
	windowTailDays = 14
)

// Window is the visible date range of the chart.
type Window struct {
	Start time.Time
	End   time.Time
}

// Days returns the number of axis days the window needs: the day count
// between start and end, inclusive of the end day.
func (w Window) Days() int {
	return dateutil.DaysBetween(w.Start, w.End) + 1
}

// Contains reports whether d falls inside the window.
func (w Window) Contains(d time.Time) bool {
	return !d.Before(w.Start) && !d.After(w.End)
}

// CalculateWindow derives the visible date range from the tree.
//
// An empty tree shows today through two months out, unpadded. Otherwise
// the range spans every scheduled task and subtask plus today, padded by
// a week of lead-in and two weeks of tail so bars never sit flush against
// the chart edge.
func CalculateWindow(tr task.Tree, now time.Time) Window {
	today := dateutil.TruncateToDay(now)
	if tr.Empty() {
		return Window{Start: today, End: today.AddDate(0, 2, 0)}
	}

	minStart := today
	maxEnd := today
	tr.Walk(func(t *task.Task, _ *task.Task) bool {
		if t.StartDate == nil {
			return true
		}
		minStart = dateutil.MinDate(minStart, *t.StartDate)
		maxEnd = dateutil.MaxDate(maxEnd, *t.EndDate())
		return true
	})

	return Window{
		Start: dateutil.AddDays(minStart, -windowLeadDays),
		End:   dateutil.AddDays(maxEnd, windowTailDays),
	}
}
