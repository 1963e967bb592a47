package advisor

import (
	"strings"
	"testing"

	"github.com/mvillagra/gantterm/internal/task"
)

func TestAlert(t *testing.T) {
	tests := []struct {
		name     string
		duration int
		progress int
		want     string
		wantOk   bool
	}{
		{
			name:     "long and behind",
			duration: 20,
			progress: 10,
			// ceil(20 * 0.9) = 18 remaining, 11 past the slack.
			want:   "11 days",
			wantOk: true,
		},
		{
			name:     "long but on pace",
			duration: 20,
			progress: 70,
			wantOk:   false,
		},
		{
			name:     "short task never alerts",
			duration: 5,
			progress: 0,
			wantOk:   false,
		},
		{
			name:     "remaining within slack",
			duration: 12,
			progress: 50,
			// ceil(12 * 0.5) = 6, inside the 7-day slack.
			wantOk: false,
		},
		{
			name:     "boundary duration excluded",
			duration: 10,
			progress: 0,
			wantOk:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tsk := &task.Task{Name: "T", Duration: tt.duration, Progress: tt.progress}
			got, ok := Alert(tsk)
			if ok != tt.wantOk {
				t.Fatalf("Alert ok = %v, want %v (msg %q)", ok, tt.wantOk, got)
			}
			if tt.wantOk && !strings.Contains(got, tt.want) {
				t.Errorf("Alert = %q, want mention of %q", got, tt.want)
			}
		})
	}
}

func TestSuggestions(t *testing.T) {
	tests := []struct {
		name     string
		duration int
		progress int
		wantIDs  []int
	}{
		{
			name:     "slow long task gets all three",
			duration: 20,
			progress: 10,
			wantIDs:  []int{1, 2, 3},
		},
		{
			name:     "healthy short task gets none",
			duration: 3,
			progress: 80,
			wantIDs:  nil,
		},
		{
			name:     "long but progressing only trims scope",
			duration: 20,
			progress: 75,
			wantIDs:  []int{2},
		},
		{
			name:     "short and stalled",
			duration: 5,
			progress: 10,
			wantIDs:  []int{3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tsk := &task.Task{Name: "T", Duration: tt.duration, Progress: tt.progress}
			got := Suggestions(tsk)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d suggestions, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Errorf("suggestion[%d].ID = %d, want %d", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestReview(t *testing.T) {
	tr := task.Tree{Tasks: []*task.Task{
		{ID: "slow", Name: "Slow", Duration: 30, Progress: 0},
		{ID: "fine", Name: "Fine", Duration: 3, Progress: 90, Subtasks: []*task.Task{
			{ID: "sub-slow", Name: "Sub", Duration: 15, Progress: 5},
		}},
	}}

	alerts := Review(tr)

	if _, ok := alerts["slow"]; !ok {
		t.Error("expected alert for slow task")
	}
	if _, ok := alerts["sub-slow"]; !ok {
		t.Error("expected alert for slow subtask")
	}
	if _, ok := alerts["fine"]; ok {
		t.Error("unexpected alert for healthy task")
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name  string
		id    int
		setup task.Task
		check func(t *testing.T, got *task.Task)
	}{
		{
			name:  "add resource",
			id:    1,
			setup: task.Task{Duration: 10, Assignees: []string{"ana"}},
			check: func(t *testing.T, got *task.Task) {
				if len(got.Assignees) != 2 {
					t.Errorf("len(Assignees) = %d, want 2", len(got.Assignees))
				}
			},
		},
		{
			name:  "trim scope",
			id:    2,
			setup: task.Task{Duration: 20},
			check: func(t *testing.T, got *task.Task) {
				if got.Duration != 17 {
					t.Errorf("Duration = %d, want 17", got.Duration)
				}
			},
		},
		{
			name:  "trim scope clamps at one day",
			id:    2,
			setup: task.Task{Duration: 2},
			check: func(t *testing.T, got *task.Task) {
				if got.Duration != 1 {
					t.Errorf("Duration = %d, want 1", got.Duration)
				}
			},
		},
		{
			name:  "extend duration",
			id:    3,
			setup: task.Task{Duration: 10},
			check: func(t *testing.T, got *task.Task) {
				if got.Duration != 15 {
					t.Errorf("Duration = %d, want 15", got.Duration)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := tt.setup
			if err := Apply(&tk, tt.id); err != nil {
				t.Fatalf("Apply: %v", err)
			}
			tt.check(t, &tk)
		})
	}
}

func TestApplyUnknownID(t *testing.T) {
	tk := task.Task{Duration: 5}
	if err := Apply(&tk, 9); err != ErrUnknownSuggestion {
		t.Errorf("err = %v, want ErrUnknownSuggestion", err)
	}
	if tk.Duration != 5 {
		t.Errorf("task mutated on unknown suggestion")
	}
}
