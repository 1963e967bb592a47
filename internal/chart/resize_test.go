package chart

import (
	"testing"

	"github.com/mvillagra/gantterm/internal/task"
)

func resizeFixture() (task.Tree, Window, Scale) {
	tr := task.Tree{Tasks: []*task.Task{
		{ID: "p", Name: "Parent", StartDate: datePtr(2025, 1, 10), Duration: 6, Subtasks: []*task.Task{
			{ID: "s-1", Name: "A", StartDate: datePtr(2025, 1, 10), Duration: 3},
			{ID: "s-2", Name: "B", StartDate: datePtr(2025, 1, 13), Duration: 3},
		}},
		{ID: "solo", Name: "Solo", StartDate: datePtr(2025, 2, 1), Duration: 4},
	}}
	w := Window{Start: date(2025, 1, 1), End: date(2025, 3, 1)}
	s := NewScale(ZoomDay, w.Days())
	return tr, w, s
}

func TestBeginResize_TopLevelRefused(t *testing.T) {
	tr, w, s := resizeFixture()
	if rs := BeginResize(tr, "solo", ResizeEnd, 0, w, s); rs != nil {
		t.Error("top-level tasks must not be resizable")
	}
	if rs := BeginResize(tr, "p", ResizeEnd, 0, w, s); rs != nil {
		t.Error("parents must not be resizable")
	}
	if rs := BeginResize(tr, "ghost", ResizeEnd, 0, w, s); rs != nil {
		t.Error("unknown ids must not start a session")
	}
}

func TestResize_RightEdge(t *testing.T) {
	tr, w, s := resizeFixture()
	rs := BeginResize(tr, "s-1", ResizeEnd, 0, w, s)
	if rs == nil {
		t.Fatal("session not created")
	}

	if !rs.Move(2 * 48) {
		t.Fatal("move rejected")
	}

	sub := rs.Tree().FindByID("s-1")
	if sub.Duration != 5 {
		t.Errorf("duration = %d, want 5", sub.Duration)
	}
	if !sub.StartDate.Equal(date(2025, 1, 10)) {
		t.Errorf("start moved to %v during right-edge resize", sub.StartDate)
	}
}

func TestResize_LeftEdge(t *testing.T) {
	tr, w, s := resizeFixture()
	rs := BeginResize(tr, "s-2", ResizeStart, 0, w, s)

	if !rs.Move(-2 * 48) {
		t.Fatal("move rejected")
	}

	sub := rs.Tree().FindByID("s-2")
	if !sub.StartDate.Equal(date(2025, 1, 11)) {
		t.Errorf("start = %v, want 2025-01-11", sub.StartDate)
	}
	if sub.Duration != 5 {
		t.Errorf("duration = %d, want 5", sub.Duration)
	}
}

func TestResize_DurationFloor(t *testing.T) {
	tr, w, s := resizeFixture()

	t.Run("left edge past right pins at one day", func(t *testing.T) {
		rs := BeginResize(tr, "s-1", ResizeStart, 0, w, s)
		// Initial duration 3, dragged 5 days right: 3-5 floors at 1.
		rs.Move(5 * 48)
		sub := rs.Tree().FindByID("s-1")
		if sub.Duration != 1 {
			t.Errorf("duration = %d, want floor 1", sub.Duration)
		}
		if !sub.StartDate.Equal(date(2025, 1, 15)) {
			t.Errorf("start = %v, want 2025-01-15", sub.StartDate)
		}
	})

	t.Run("right edge dragged left floors too", func(t *testing.T) {
		rs := BeginResize(tr, "s-1", ResizeEnd, 0, w, s)
		rs.Move(-10 * 48)
		if got := rs.Tree().FindByID("s-1").Duration; got != 1 {
			t.Errorf("duration = %d, want floor 1", got)
		}
	})
}

func TestResize_ReaggregatesParentEachMove(t *testing.T) {
	tr, w, s := resizeFixture()
	rs := BeginResize(tr, "s-2", ResizeEnd, 0, w, s)

	rs.Move(4 * 48)

	// s-2 now ends Jan 20; parent span Jan 10 .. Jan 20.
	p := rs.Tree().FindByID("p")
	if p.Duration != 10 {
		t.Errorf("parent duration = %d, want 10", p.Duration)
	}
	if !p.ProgressCalculated {
		t.Error("parent progress should be derived after aggregation")
	}
}

func TestResize_EndCommitsWorkingTree(t *testing.T) {
	tr, w, s := resizeFixture()
	rs := BeginResize(tr, "s-1", ResizeEnd, 0, w, s)

	final, err := rs.End(3 * 48)
	if err != nil {
		t.Fatalf("End failed: %v", err)
	}
	if got := final.FindByID("s-1").Duration; got != 6 {
		t.Errorf("committed duration = %d, want 6", got)
	}
	// Source tree stays untouched.
	if got := tr.FindByID("s-1").Duration; got != 3 {
		t.Errorf("source tree mutated: duration = %d", got)
	}

	if _, err := rs.End(0); err != ErrSessionDone {
		t.Errorf("second End = %v, want ErrSessionDone", err)
	}
}
