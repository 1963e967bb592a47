package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/mvillagra/gantterm/internal/dateutil"
	"github.com/mvillagra/gantterm/internal/task"
)

// Stats holds aggregated statistics for a tree of tasks.
type Stats struct {
	Tasks       int
	Subtasks    int
	Scheduled   int
	Unscheduled int
	Late        int
	Done        int
	ProgressSum int
}

// Total returns the number of tasks and subtasks combined.
func (s Stats) Total() int {
	return s.Tasks + s.Subtasks
}

// AvgProgress returns the mean progress across all tasks and subtasks.
func (s Stats) AvgProgress() int {
	if s.Total() == 0 {
		return 0
	}
	return s.ProgressSum / s.Total()
}

// CollectStats walks the tree and accumulates statistics.
func CollectStats(tr task.Tree, now time.Time) Stats {
	var stats Stats
	tr.Walk(func(t *task.Task, parent *task.Task) bool {
		if parent == nil {
			stats.Tasks++
		} else {
			stats.Subtasks++
		}
		if t.StartDate != nil {
			stats.Scheduled++
		} else {
			stats.Unscheduled++
		}
		if t.Progress >= 100 {
			stats.Done++
		}
		if isLate(t, now) {
			stats.Late++
		}
		stats.ProgressSum += t.Progress
		return true
	})
	return stats
}

// isLate reports whether a task is past its end date short of 100%.
func isLate(t *task.Task, now time.Time) bool {
	end := t.EndDate()
	return end != nil && t.Progress < 100 && now.After(*end)
}

// PrintStats prints the stats block under a listing.
func PrintStats(stats Stats) {
	fmt.Printf("%s %d tasks, %d subtasks\n", formatHeader("Plan:"), stats.Tasks, stats.Subtasks)
	fmt.Printf("  progress  %d%% average, %d done\n", stats.AvgProgress(), stats.Done)
	if stats.Unscheduled > 0 {
		fmt.Printf("  %s\n", formatMuted(fmt.Sprintf("%d unscheduled", stats.Unscheduled)))
	}
	if stats.Late > 0 {
		fmt.Printf("  %s\n", formatLate(fmt.Sprintf("%d late", stats.Late)))
	}
}

// ProgressBar renders a fixed-width textual progress bar.
func ProgressBar(progress, width int) string {
	if width <= 0 {
		return ""
	}
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	filled := progress * width / 100
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

// formatSpan renders a task's date range, or a placeholder when
// unscheduled.
func formatSpan(t *task.Task) string {
	if t.StartDate == nil {
		return "unscheduled"
	}
	return fmt.Sprintf("%s → %s (%dd)",
		dateutil.Format(*t.StartDate),
		dateutil.Format(*t.EndDate()),
		t.Duration,
	)
}
