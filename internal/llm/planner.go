package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mvillagra/gantterm/internal/task"
)

const plannerSystemPrompt = `You are a project planning assistant that turns natural language into a Gantt chart plan.

Context:
- Today: %s (%s)
- Existing plan:
%s

User request: "%s"

Rules:
1. Resolve ALL dates to YYYY-MM-DD format in start_date
2. Durations are whole days, minimum 1
3. Break work items longer than two weeks into subtasks
4. Subtasks are nested under their parent; never nest deeper than one level
5. Give consecutive subtasks back-to-back dates unless the request says otherwise
6. Priority must be "low", "medium", "high" or "critical"
7. Progress is 0 for new work
8. Keep assignees from the request; leave the list empty when nobody is named
9. Do not duplicate or modify tasks from the existing plan, only add new ones
10. Warn when the requested work overlaps existing tasks or cannot fit the stated deadline

Respond ONLY with valid JSON (no markdown, no explanation):
{
  "tasks": [
    {
      "name": "string",
      "start_date": "YYYY-MM-DD",
      "duration": 1,
      "progress": 0,
      "priority": "medium",
      "assignees": ["string"],
      "subtasks": []
    }
  ],
  "warnings": ["string"],
  "suggestions": ["string"]
}`

const plannerPromptCompact = `You are a project planner. Return JSON only.

Today: %s
Existing plan:
%s

User request: "%s"

Rules:
- Return JSON only (no markdown).
- start_date is YYYY-MM-DD, duration is whole days (minimum 1).
- priority is one of low, medium, high, critical.
- Subtasks nest one level under "subtasks".
- "warnings" and "suggestions" must be arrays of strings.

JSON schema:
{
  "tasks": [
    {"name": "string", "start_date": "YYYY-MM-DD", "duration": 1, "progress": 0, "priority": "medium", "assignees": [], "subtasks": []}
  ],
  "warnings": ["string"],
  "suggestions": ["string"]
}`

// PlanRequest contains the input for the planner.
type PlanRequest struct {
	Input            string
	Today            time.Time
	Existing         task.Tree // current plan, for overlap context
	UseCompactPrompt bool      // use a shorter prompt for local models
}

// PlanResponse contains the parsed LLM response.
type PlanResponse struct {
	Tasks       []task.PayloadTask `json:"tasks"`
	Warnings    []string           `json:"warnings"`
	Suggestions []string           `json:"suggestions"`
}

// Payload converts the response into the ingestion wire shape.
func (r *PlanResponse) Payload() *task.Payload {
	return &task.Payload{Tasks: r.Tasks}
}

// Planner uses an LLM to build chart tasks from natural language input.
type Planner struct {
	client Client
}

// NewPlanner creates a new Planner with the given LLM client.
func NewPlanner(client Client) *Planner {
	return &Planner{client: client}
}

// Plan converts natural language input into chart tasks.
func (p *Planner) Plan(ctx context.Context, req PlanRequest) (*PlanResponse, error) {
	return p.planWithMessages(ctx, p.buildInitialMessages(req))
}

// PlanWithMessages allows planning with a pre-built message history.
// Used for retry logic where error feedback is appended to the thread.
func (p *Planner) PlanWithMessages(ctx context.Context, messages []Message) (*PlanResponse, error) {
	return p.planWithMessages(ctx, messages)
}

// BuildInitialMessages creates the initial message list for a planning
// request, exported so callers can extend the thread on retries.
func (p *Planner) BuildInitialMessages(req PlanRequest) []Message {
	return p.buildInitialMessages(req)
}

func (p *Planner) buildInitialMessages(req PlanRequest) []Message {
	today := req.Today.Format("2006-01-02")
	dayOfWeek := req.Today.Format("Monday")
	existing := describeTree(req.Existing)

	var prompt string
	if req.UseCompactPrompt {
		prompt = fmt.Sprintf(plannerPromptCompact, today, existing, req.Input)
	} else {
		prompt = fmt.Sprintf(plannerSystemPrompt, today, dayOfWeek, existing, req.Input)
	}

	return []Message{UserMessage(prompt)}
}

func (p *Planner) planWithMessages(ctx context.Context, messages []Message) (*PlanResponse, error) {
	var resp PlanResponse
	if err := p.client.ChatJSON(ctx, messages, &resp); err != nil {
		return nil, fmt.Errorf("planning tasks: %w", err)
	}
	return &resp, nil
}

// describeTree renders the current plan as compact prompt context.
func describeTree(tr task.Tree) string {
	if tr.Empty() {
		return "  (no tasks yet)"
	}
	var b strings.Builder
	tr.Walk(func(t *task.Task, parent *task.Task) bool {
		indent := "  "
		if parent != nil {
			indent = "    "
		}
		date := "unscheduled"
		if t.StartDate != nil {
			date = t.StartDate.Format("2006-01-02")
		}
		fmt.Fprintf(&b, "%s- %s: %s, %dd, %d%%\n", indent, t.Name, date, t.Duration, t.Progress)
		return true
	})
	return strings.TrimRight(b.String(), "\n")
}
