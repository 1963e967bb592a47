package task

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mvillagra/gantterm/internal/dateutil"
)

// ============================================
// JSON ingestion
// ============================================

// Payload is the wire shape accepted by `gantterm import` and produced by
// the LLM planner. Field names tolerate the variants seen in the wild:
// assignees may be a single string or a list, and older exports reference
// parents by name instead of nesting subtasks.
type Payload struct {
	Tasks []PayloadTask `json:"tasks"`
}

// PayloadTask is one task entry in a Payload.
type PayloadTask struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	StartDate string        `json:"start_date"`
	Duration  int           `json:"duration"`
	Progress  int           `json:"progress"`
	Color     string        `json:"color"`
	Priority  string        `json:"priority"`
	Assignees stringList    `json:"assignees"`
	Parent    string        `json:"parent"` // legacy: parent referenced by name
	Subtasks  []PayloadTask `json:"subtasks"`
}

// payloadUser is the object form older exports use for assignments.
type payloadUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UnmarshalJSON folds the legacy assignment variants into Assignees:
// `resources` (list of names) and `assignedUsers` (list of user objects)
// both collapse into the canonical list, with `assignees` winning when
// more than one is present. Output always uses `assignees` only.
func (pt *PayloadTask) UnmarshalJSON(data []byte) error {
	type alias PayloadTask
	aux := struct {
		*alias
		Resources     stringList    `json:"resources"`
		AssignedUsers []payloadUser `json:"assignedUsers"`
	}{alias: (*alias)(pt)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(pt.Assignees) == 0 {
		switch {
		case len(aux.Resources) > 0:
			pt.Assignees = stringList(aux.Resources)
		case len(aux.AssignedUsers) > 0:
			for _, u := range aux.AssignedUsers {
				name := u.Name
				if name == "" {
					name = u.ID
				}
				if name != "" {
					pt.Assignees = append(pt.Assignees, name)
				}
			}
		}
	}
	return nil
}

// stringList unmarshals from either a JSON string or an array of strings.
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		if strings.TrimSpace(one) == "" {
			*l = nil
			return nil
		}
		*l = []string{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("assignees must be a string or list of strings")
	}
	*l = many
	return nil
}

// ParsePayload decodes raw JSON into a Payload.
func ParsePayload(raw []byte) (*Payload, error) {
	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("parsing task payload: %w", err)
	}
	return &p, nil
}

// BuildTree converts a Payload into a Tree, normalizing as it goes:
// missing ids are minted, progress is clamped to 0..100, durations are
// floored at 1 day, unknown priorities fall back to medium and malformed
// dates to unscheduled. Legacy entries carrying a parent name are attached
// under that parent; entries naming a parent that does not exist are
// dropped silently.
//
// After building, every parent is aggregated and unscheduled subtasks get
// packed dates, so the tree is ready to render.
func BuildTree(p *Payload, now time.Time) Tree {
	var tr Tree

	// First pass: top-level tasks and their nested subtasks.
	for _, pt := range p.Tasks {
		if pt.Parent != "" {
			continue
		}
		t := fromPayload(pt)
		for _, ps := range pt.Subtasks {
			t.Subtasks = append(t.Subtasks, fromPayload(ps))
		}
		tr.Tasks = append(tr.Tasks, t)
	}

	// Second pass: legacy flat entries referencing a parent by name.
	for _, pt := range p.Tasks {
		if pt.Parent == "" {
			continue
		}
		parent := tr.FindByName(pt.Parent)
		if parent == nil || tr.ParentOf(parent.ID) != nil {
			continue
		}
		parent.Subtasks = append(parent.Subtasks, fromPayload(pt))
	}

	for _, t := range tr.Tasks {
		if t.HasSubtasks() {
			InitializeSubtaskDates(t, now)
			Aggregate(t)
		}
	}
	return tr
}

func fromPayload(pt PayloadTask) *Task {
	id := strings.TrimSpace(pt.ID)
	if id == "" {
		id = uuid.NewString()
	}
	name := strings.TrimSpace(pt.Name)
	if name == "" {
		name = "Untitled"
	}
	duration := pt.Duration
	if duration < 1 {
		duration = 1
	}
	progress := pt.Progress
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	prio, err := ParsePriority(pt.Priority)
	if err != nil {
		prio = PriorityMedium
	}
	return &Task{
		ID:        id,
		Name:      name,
		StartDate: dateutil.ParseOptionalDate(pt.StartDate),
		Duration:  duration,
		Progress:  progress,
		Color:     strings.TrimSpace(pt.Color),
		Priority:  prio,
		Assignees: pt.Assignees,
	}
}

// ToPayload converts a Tree back into its wire shape for export.
func ToPayload(tr Tree) *Payload {
	p := &Payload{}
	for _, t := range tr.Tasks {
		pt := toPayloadTask(t)
		for _, s := range t.Subtasks {
			pt.Subtasks = append(pt.Subtasks, toPayloadTask(s))
		}
		p.Tasks = append(p.Tasks, pt)
	}
	return p
}

func toPayloadTask(t *Task) PayloadTask {
	pt := PayloadTask{
		ID:        t.ID,
		Name:      t.Name,
		Duration:  t.Duration,
		Progress:  t.Progress,
		Color:     t.Color,
		Priority:  string(t.Priority),
		Assignees: stringList(t.Assignees),
	}
	if t.StartDate != nil {
		pt.StartDate = dateutil.Format(*t.StartDate)
	}
	return pt
}
