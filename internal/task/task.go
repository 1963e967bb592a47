// Package task defines the core domain types for gantterm.
package task

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mvillagra/gantterm/internal/dateutil"
)

// Validation errors.
var (
	ErrEmptyName       = errors.New("name cannot be empty")
	ErrInvalidPriority = errors.New("priority must be 'low', 'medium', 'high' or 'critical'")
	ErrInvalidProgress = errors.New("progress must be between 0 and 100")
	ErrInvalidDuration = errors.New("duration must be at least 1 day")
)

// Domain errors.
var (
	ErrTaskNotFound   = errors.New("task not found")
	ErrNotASubtask    = errors.New("operation only applies to subtasks")
	ErrNestingTooDeep = errors.New("subtasks cannot have subtasks of their own")
)

// Priority represents how urgent a task is.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Valid returns true if the priority is a known value.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	default:
		return false
	}
}

// ParsePriority parses a priority string, accepting any casing.
// Empty input defaults to medium.
func ParsePriority(s string) (Priority, error) {
	if s == "" {
		return PriorityMedium, nil
	}
	p := Priority(strings.ToLower(s))
	if !p.Valid() {
		return "", ErrInvalidPriority
	}
	return p, nil
}

// Task represents a bar on the chart. Top-level tasks may carry subtasks;
// subtasks never nest further.
type Task struct {
	ID        string
	Name      string
	StartDate *time.Time // nil means not scheduled yet
	Duration  int        // whole days, always >= 1
	Progress  int        // 0..100
	// ProgressCalculated marks progress as derived from subtasks rather
	// than set by hand. Derived progress is overwritten on every
	// aggregation pass; manual progress on a childless task is kept.
	ProgressCalculated bool
	Color              string // hex like "#89b4fa", empty means theme default
	Priority           Priority
	Assignees          []string
	Subtasks           []*Task
}

// New creates a top-level Task with validation.
// date can be empty (unscheduled) or in YYYY-MM-DD format.
func New(name, date, priority string, duration int) (*Task, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if duration < 1 {
		return nil, ErrInvalidDuration
	}

	prio, err := ParsePriority(priority)
	if err != nil {
		return nil, err
	}

	var start *time.Time
	if date != "" {
		parsed, err := dateutil.ParseDate(date)
		if err != nil {
			return nil, fmt.Errorf("start date: %w", err)
		}
		start = &parsed
	}

	return &Task{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		StartDate: start,
		Duration:  duration,
		Priority:  prio,
	}, nil
}

// NewSubtask creates a subtask of parent with validation. The subtask is
// appended to the parent's children.
func NewSubtask(parent *Task, name, date string, duration int) (*Task, error) {
	sub, err := New(name, date, string(parent.Priority), duration)
	if err != nil {
		return nil, err
	}
	parent.Subtasks = append(parent.Subtasks, sub)
	return sub, nil
}

// SetProgress sets manual progress, marking it user-owned.
func (t *Task) SetProgress(p int) error {
	if p < 0 || p > 100 {
		return ErrInvalidProgress
	}
	t.Progress = p
	t.ProgressCalculated = false
	return nil
}

// EndDate returns the exclusive end of the task bar: start + duration days.
// Returns nil when the task is unscheduled.
func (t *Task) EndDate() *time.Time {
	if t.StartDate == nil {
		return nil
	}
	end := dateutil.AddDays(*t.StartDate, t.Duration)
	return &end
}

// HasSubtasks reports whether the task is a parent.
func (t *Task) HasSubtasks() bool {
	return len(t.Subtasks) > 0
}

// Clone returns a deep copy of the task and its subtasks. Sessions mutate
// clones and commit them back, so shared pointers would leak edits.
func (t *Task) Clone() *Task {
	c := *t
	if t.StartDate != nil {
		d := *t.StartDate
		c.StartDate = &d
	}
	if t.Assignees != nil {
		c.Assignees = append([]string(nil), t.Assignees...)
	}
	if t.Subtasks != nil {
		c.Subtasks = make([]*Task, len(t.Subtasks))
		for i, s := range t.Subtasks {
			c.Subtasks[i] = s.Clone()
		}
	}
	return &c
}
