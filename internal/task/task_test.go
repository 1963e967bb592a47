package task

import (
	"errors"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		taskName string
		date     string
		priority string
		duration int
		wantErr  error
	}{
		{
			name:     "valid scheduled task",
			taskName: "Design review",
			date:     "2025-02-03",
			priority: "high",
			duration: 3,
		},
		{
			name:     "valid unscheduled task",
			taskName: "Backlog item",
			date:     "",
			priority: "",
			duration: 1,
		},
		{
			name:     "empty name",
			taskName: "  ",
			date:     "2025-02-03",
			priority: "low",
			duration: 1,
			wantErr:  ErrEmptyName,
		},
		{
			name:     "zero duration",
			taskName: "Too short",
			date:     "2025-02-03",
			priority: "low",
			duration: 0,
			wantErr:  ErrInvalidDuration,
		},
		{
			name:     "unknown priority",
			taskName: "Task",
			date:     "2025-02-03",
			priority: "urgent",
			duration: 1,
			wantErr:  ErrInvalidPriority,
		},
		{
			name:     "malformed date",
			taskName: "Task",
			date:     "03/02/2025",
			priority: "low",
			duration: 1,
			wantErr:  errors.New("start date"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(tt.taskName, tt.date, tt.priority, tt.duration)
			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("New() succeeded, want error %v", tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() unexpected error: %v", err)
			}
			if got.ID == "" {
				t.Error("expected ID to be set")
			}
			if tt.date == "" && got.StartDate != nil {
				t.Errorf("unscheduled task got start %v", got.StartDate)
			}
			if tt.date != "" && got.StartDate == nil {
				t.Error("scheduled task got nil start")
			}
			if tt.priority == "" && got.Priority != PriorityMedium {
				t.Errorf("default priority = %q, want medium", got.Priority)
			}
		})
	}
}

func TestSetProgress(t *testing.T) {
	tsk := &Task{Name: "Task", Duration: 1, Progress: 50, ProgressCalculated: true}

	if err := tsk.SetProgress(75); err != nil {
		t.Fatalf("SetProgress failed: %v", err)
	}
	if tsk.Progress != 75 {
		t.Errorf("progress = %d, want 75", tsk.Progress)
	}
	if tsk.ProgressCalculated {
		t.Error("manual progress should clear ProgressCalculated")
	}

	if err := tsk.SetProgress(101); !errors.Is(err, ErrInvalidProgress) {
		t.Errorf("SetProgress(101) = %v, want ErrInvalidProgress", err)
	}
	if err := tsk.SetProgress(-1); !errors.Is(err, ErrInvalidProgress) {
		t.Errorf("SetProgress(-1) = %v, want ErrInvalidProgress", err)
	}
}

func TestEndDate(t *testing.T) {
	start := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	tsk := &Task{Name: "Task", StartDate: &start, Duration: 5}

	end := tsk.EndDate()
	want := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	if end == nil || !end.Equal(want) {
		t.Errorf("EndDate = %v, want %v", end, want)
	}

	unscheduled := &Task{Name: "Task", Duration: 5}
	if unscheduled.EndDate() != nil {
		t.Error("EndDate of unscheduled task should be nil")
	}
}

func TestClone(t *testing.T) {
	start := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	orig := &Task{
		ID:        "p-1",
		Name:      "Parent",
		StartDate: &start,
		Duration:  5,
		Assignees: []string{"ana"},
		Subtasks: []*Task{
			{ID: "s-1", Name: "Child", StartDate: &start, Duration: 2},
		},
	}

	clone := orig.Clone()

	*clone.StartDate = start.AddDate(0, 0, 7)
	clone.Assignees[0] = "bea"
	clone.Subtasks[0].Duration = 9

	if !orig.StartDate.Equal(start) {
		t.Error("mutating clone start leaked into original")
	}
	if orig.Assignees[0] != "ana" {
		t.Error("mutating clone assignees leaked into original")
	}
	if orig.Subtasks[0].Duration != 2 {
		t.Error("mutating clone subtask leaked into original")
	}
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		input   string
		want    Priority
		wantErr bool
	}{
		{"low", PriorityLow, false},
		{"CRITICAL", PriorityCritical, false},
		{"", PriorityMedium, false},
		{"whenever", "", true},
	}

	for _, tt := range tests {
		got, err := ParsePriority(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidPriority) {
				t.Errorf("ParsePriority(%q) error = %v, want ErrInvalidPriority", tt.input, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParsePriority(%q) = %q, %v, want %q", tt.input, got, err, tt.want)
		}
	}
}
