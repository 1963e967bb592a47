// Package advisor derives schedule warnings and suggestions from task
// shape alone. The rules are deliberately simple heuristics; anything
// smarter goes through the LLM planner instead.
package advisor

import (
	"errors"
	"fmt"
	"math"

	"github.com/mvillagra/gantterm/internal/task"
)

// ErrUnknownSuggestion is returned by Apply for a suggestion id that no
// rule produces.
var ErrUnknownSuggestion = errors.New("unknown suggestion")

// Alert thresholds. A long task moving slowly projects its remaining work
// forward; anything spilling more than a week past plan raises an alert.
const (
	alertMinDuration   = 10
	alertMaxProgress   = 60
	alertSlackDays     = 7
	suggestAddResource = 50 // progress below this on week-plus tasks
	suggestTrimScope   = 14 // duration above this
	suggestExtend      = 30 // progress below this

	trimDays   = 3
	extendDays = 5
)

// Suggestion is one actionable hint for a task.
type Suggestion struct {
	ID   int
	Text string
}

// Alert checks a task for likely schedule slippage. Returns the warning
// text and true when the task is long, behind, and its projected
// remaining work overruns the slack.
func Alert(t *task.Task) (string, bool) {
	if t.Duration <= alertMinDuration || t.Progress >= alertMaxProgress {
		return "", false
	}
	remaining := int(math.Ceil(float64(t.Duration) * (1 - float64(t.Progress)/100)))
	if remaining <= alertSlackDays {
		return "", false
	}
	return fmt.Sprintf("Possible delay of %d days at the current pace", remaining-alertSlackDays), true
}

// Suggestions returns the hints that apply to the task, in a stable order.
func Suggestions(t *task.Task) []Suggestion {
	var out []Suggestion
	if t.Progress < suggestAddResource && t.Duration > 7 {
		out = append(out, Suggestion{
			ID:   1,
			Text: "Assign one extra resource to speed up progress",
		})
	}
	if t.Duration > suggestTrimScope {
		out = append(out, Suggestion{
			ID:   2,
			Text: "Trim scope on the less critical deliverables",
		})
	}
	if t.Progress < suggestExtend {
		out = append(out, Suggestion{
			ID:   3,
			Text: "Extend the duration by 5 days to match team availability",
		})
	}
	return out
}

// Apply mutates the task according to the accepted suggestion. Duration
// never drops below one day. Callers re-aggregate the parent afterwards
// when the task is a subtask.
func Apply(t *task.Task, id int) error {
	switch id {
	case 1:
		t.Assignees = append(t.Assignees, "extra resource")
	case 2:
		t.Duration -= trimDays
		if t.Duration < 1 {
			t.Duration = 1
		}
	case 3:
		t.Duration += extendDays
	default:
		return ErrUnknownSuggestion
	}
	return nil
}

// Review runs Alert over every task and subtask in the tree and returns
// the warnings keyed by task id.
func Review(tr task.Tree) map[string]string {
	alerts := make(map[string]string)
	tr.Walk(func(t *task.Task, _ *task.Task) bool {
		if msg, ok := Alert(t); ok {
			alerts[t.ID] = msg
		}
		return true
	})
	return alerts
}
