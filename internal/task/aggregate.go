package task

import (
	"math"
	"time"

	"github.com/mvillagra/gantterm/internal/dateutil"
)

// ============================================
// Parent aggregation
// ============================================

// Aggregate recomputes a parent's dates and progress from its subtasks.
//
// The parent span covers every scheduled subtask: start is the earliest
// subtask start, duration the whole days to the latest subtask end.
// Progress becomes the rounded mean of subtask progress and is marked as
// derived. Tasks without subtasks keep their own values untouched.
//
// Running it twice on the same inputs yields the same parent.
func Aggregate(parent *Task) {
	if !parent.HasSubtasks() {
		return
	}

	var minStart, maxEnd *time.Time
	for _, s := range parent.Subtasks {
		if s.StartDate == nil {
			continue
		}
		if minStart == nil || s.StartDate.Before(*minStart) {
			d := *s.StartDate
			minStart = &d
		}
		end := s.EndDate()
		if maxEnd == nil || end.After(*maxEnd) {
			maxEnd = end
		}
	}
	// No scheduled subtask at all: leave the parent as it is, progress
	// included.
	if minStart == nil {
		return
	}

	parent.StartDate = minStart
	if d := dateutil.DaysBetween(*minStart, *maxEnd); d >= 1 {
		parent.Duration = d
	} else {
		parent.Duration = 1
	}

	sum := 0
	for _, s := range parent.Subtasks {
		sum += s.Progress
	}
	parent.Progress = int(math.Round(float64(sum) / float64(len(parent.Subtasks))))
	parent.ProgressCalculated = true
}

// AggregateAll recomputes every parent in the tree.
func AggregateAll(tr Tree) {
	for _, t := range tr.Tasks {
		Aggregate(t)
	}
}

// InitializeSubtaskDates assigns start dates to unscheduled subtasks by
// packing them sequentially after their siblings. A date cursor starts at
// the parent's start (today when the parent is unscheduled too) and
// advances past each subtask in order: scheduled subtasks move the cursor
// to their own end, unscheduled ones are placed at the cursor.
//
// now supplies the fallback start; inject a fixed clock in tests.
func InitializeSubtaskDates(parent *Task, now time.Time) {
	cursor := dateutil.TruncateToDay(now)
	if parent.StartDate != nil {
		cursor = *parent.StartDate
	}
	for _, s := range parent.Subtasks {
		if s.StartDate == nil {
			d := cursor
			s.StartDate = &d
		}
		cursor = *s.EndDate()
	}
}
