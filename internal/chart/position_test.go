package chart

import (
	"testing"

	"github.com/mvillagra/gantterm/internal/task"
)

func TestProject(t *testing.T) {
	w := Window{Start: date(2025, 1, 1), End: date(2025, 3, 1)}
	s := NewScale(ZoomDay, w.Days())

	tests := []struct {
		name      string
		task      *task.Task
		wantLeft  int
		wantWidth int
	}{
		{
			name:      "scheduled inside window",
			task:      &task.Task{Name: "A", StartDate: datePtr(2025, 1, 11), Duration: 5},
			wantLeft:  10 * 48,
			wantWidth: 5 * 48,
		},
		{
			name:      "starts before window clamps to edge",
			task:      &task.Task{Name: "B", StartDate: datePtr(2024, 12, 20), Duration: 3},
			wantLeft:  0,
			wantWidth: 3 * 48,
		},
		{
			name:      "zero duration floors to one day",
			task:      &task.Task{Name: "C", StartDate: datePtr(2025, 1, 2), Duration: 0},
			wantLeft:  48,
			wantWidth: 48,
		},
		{
			name:      "unscheduled renders at window start",
			task:      &task.Task{Name: "D", Duration: 2},
			wantLeft:  0,
			wantWidth: 2 * 48,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Project(tt.task, w, s)
			if got.LeftPx != tt.wantLeft {
				t.Errorf("LeftPx = %d, want %d", got.LeftPx, tt.wantLeft)
			}
			if got.WidthPx != tt.wantWidth {
				t.Errorf("WidthPx = %d, want %d", got.WidthPx, tt.wantWidth)
			}
		})
	}
}

func TestVisible(t *testing.T) {
	w := Window{Start: date(2025, 2, 1), End: date(2025, 3, 1)}

	tests := []struct {
		name string
		task *task.Task
		want bool
	}{
		{
			name: "inside window",
			task: &task.Task{Name: "A", StartDate: datePtr(2025, 2, 10), Duration: 3},
			want: true,
		},
		{
			name: "just inside the leading buffer",
			task: &task.Task{Name: "B", StartDate: datePtr(2025, 1, 1), Duration: 3},
			want: true,
		},
		{
			name: "ends before the buffer",
			task: &task.Task{Name: "C", StartDate: datePtr(2024, 11, 1), Duration: 5},
			want: false,
		},
		{
			name: "starts after the trailing buffer",
			task: &task.Task{Name: "D", StartDate: datePtr(2025, 4, 15), Duration: 5},
			want: false,
		},
		{
			name: "unscheduled always renders",
			task: &task.Task{Name: "E", Duration: 1},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Visible(tt.task, w); got != tt.want {
				t.Errorf("Visible = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDateAtPx(t *testing.T) {
	w := Window{Start: date(2025, 1, 1), End: date(2025, 3, 1)}
	s := NewScale(ZoomWeek, w.Days())

	if got := DateAtPx(0, w, s); !got.Equal(date(2025, 1, 1)) {
		t.Errorf("DateAtPx(0) = %v, want window start", got)
	}
	// 10 days in at 24px per day.
	if got := DateAtPx(240, w, s); !got.Equal(date(2025, 1, 11)) {
		t.Errorf("DateAtPx(240) = %v, want 2025-01-11", got)
	}
}

func TestLayout(t *testing.T) {
	now := date(2025, 1, 15)
	w := Window{Start: date(2025, 1, 1), End: date(2025, 3, 1)}
	s := NewScale(ZoomDay, w.Days())

	tr := task.Tree{Tasks: []*task.Task{
		{ID: "t-1", Name: "First", StartDate: datePtr(2025, 1, 5), Duration: 4, Subtasks: []*task.Task{
			{ID: "s-1", Name: "Sub A", StartDate: datePtr(2025, 1, 5), Duration: 2},
			{ID: "s-2", Name: "Sub B", StartDate: datePtr(2025, 1, 7), Duration: 2},
		}},
		{ID: "t-2", Name: "Second", StartDate: datePtr(2025, 1, 10), Duration: 3},
	}}

	t.Run("collapsed hides subtasks", func(t *testing.T) {
		rows := Layout(tr, w, s, map[string]bool{}, now)
		if len(rows) != 2 {
			t.Fatalf("got %d rows, want 2", len(rows))
		}
		if rows[0].TopPx != ChartTopPx {
			t.Errorf("first row top = %d, want %d", rows[0].TopPx, ChartTopPx)
		}
		if rows[1].TopPx != ChartTopPx+TaskBarHeight {
			t.Errorf("second row top = %d, want %d", rows[1].TopPx, ChartTopPx+TaskBarHeight)
		}
	})

	t.Run("expanded inserts subtask rows", func(t *testing.T) {
		rows := Layout(tr, w, s, map[string]bool{"t-1": true}, now)
		if len(rows) != 4 {
			t.Fatalf("got %d rows, want 4", len(rows))
		}

		wantSubTop := ChartTopPx + TaskBarHeight + SubtaskMargin
		if rows[1].TopPx != wantSubTop {
			t.Errorf("first subtask top = %d, want %d", rows[1].TopPx, wantSubTop)
		}
		wantSub2Top := wantSubTop + SubtaskBarHeight + SubtaskMargin
		if rows[2].TopPx != wantSub2Top {
			t.Errorf("second subtask top = %d, want %d", rows[2].TopPx, wantSub2Top)
		}

		// Next task clears the group: each subtask reserves margin on
		// both sides.
		wantNextTop := ChartTopPx + TaskBarHeight + 2*(SubtaskBarHeight+2*SubtaskMargin)
		if rows[3].TopPx != wantNextTop {
			t.Errorf("next task top = %d, want %d", rows[3].TopPx, wantNextTop)
		}
		if rows[3].Parent != nil {
			t.Error("next task should be top-level")
		}
	})

	t.Run("late flag", func(t *testing.T) {
		lateTr := task.Tree{Tasks: []*task.Task{
			{ID: "l", Name: "Overdue", StartDate: datePtr(2025, 1, 2), Duration: 2, Progress: 50},
			{ID: "ok", Name: "Done", StartDate: datePtr(2025, 1, 2), Duration: 2, Progress: 100},
		}}
		rows := Layout(lateTr, w, s, nil, now)
		if !rows[0].Late {
			t.Error("overdue unfinished task should be late")
		}
		if rows[1].Late {
			t.Error("finished task should not be late")
		}
	})
}

func TestRowAt(t *testing.T) {
	now := date(2025, 1, 15)
	w := Window{Start: date(2025, 1, 1), End: date(2025, 3, 1)}
	s := NewScale(ZoomDay, w.Days())
	tr := task.Tree{Tasks: []*task.Task{
		{ID: "t-1", Name: "First", StartDate: datePtr(2025, 1, 5), Duration: 4},
	}}

	rows := Layout(tr, w, s, nil, now)

	if got := RowAt(rows, ChartTopPx+5); got == nil || got.Task.ID != "t-1" {
		t.Errorf("RowAt inside bar = %v, want t-1", got)
	}
	if got := RowAt(rows, ChartTopPx-1); got != nil {
		t.Errorf("RowAt above chart = %v, want nil", got)
	}
}
