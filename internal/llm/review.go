package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mvillagra/gantterm/internal/task"
)

const reviewSystemPrompt = `You are a minimalist project analyst. Output ONLY the exact format shown - no markdown, no extra text. Be extremely concise.`

const reviewUserTemplate = `Analyze this project plan as of %s and output EXACTLY this format (no markdown, no code blocks):

THEME: [ 2-4 word project theme ]

RISK: Biggest schedule risk in one sentence, naming the task.
STALLED: Tasks past their midpoint with progress under 30%%, or omit this line.
CRITICAL PATH: The chain of tasks that drives the end date, by name.

NEXT:
-> First specific re-planning action.
-> Second specific re-planning action.

Plan data (name, start, duration, progress, priority):
%s

Rules:
- Keep each line under 80 characters
- Be specific with dates and durations from the data
- If no issue exists for a category, omit that line
- Output plain text only, no markdown formatting`

// Reviewer produces an LLM-written health report for the current plan.
type Reviewer struct {
	client Client
}

// NewReviewer creates a new Reviewer with the given LLM client.
func NewReviewer(client Client) *Reviewer {
	return &Reviewer{client: client}
}

// Review summarizes the plan's health as plain text.
func (r *Reviewer) Review(ctx context.Context, tr task.Tree, now time.Time) (string, error) {
	if tr.Empty() {
		return "", fmt.Errorf("no tasks to review")
	}

	prompt := fmt.Sprintf(reviewUserTemplate, now.Format("2006-01-02"), formatPlanData(tr))
	messages := []Message{
		SystemMessage(reviewSystemPrompt),
		UserMessage(prompt),
	}

	out, err := r.client.Chat(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("reviewing plan: %w", err)
	}
	return strings.TrimSpace(out), nil
}

func formatPlanData(tr task.Tree) string {
	var b strings.Builder
	tr.Walk(func(t *task.Task, parent *task.Task) bool {
		prefix := ""
		if parent != nil {
			prefix = "  > "
		}
		date := "unscheduled"
		if t.StartDate != nil {
			date = t.StartDate.Format("2006-01-02")
		}
		fmt.Fprintf(&b, "%s%s | %s | %dd | %d%% | %s\n", prefix, t.Name, date, t.Duration, t.Progress, t.Priority)
		return true
	})
	return strings.TrimRight(b.String(), "\n")
}
