package chart

import (
	"testing"
	"time"

	"github.com/mvillagra/gantterm/internal/task"
)

func dragFixture() (task.Tree, Window, Scale) {
	tr := task.Tree{Tasks: []*task.Task{
		{ID: "p", Name: "Parent", StartDate: datePtr(2025, 1, 10), Duration: 6, Subtasks: []*task.Task{
			{ID: "s-1", Name: "A", StartDate: datePtr(2025, 1, 10), Duration: 2, Progress: 40},
			{ID: "s-2", Name: "B", StartDate: datePtr(2025, 1, 13), Duration: 3, Progress: 60},
		}},
		{ID: "solo", Name: "Solo", StartDate: datePtr(2025, 2, 1), Duration: 4},
	}}
	w := Window{Start: date(2025, 1, 1), End: date(2025, 3, 1)}
	s := NewScale(ZoomDay, w.Days())
	return tr, w, s
}

func TestBeginDrag_UnknownID(t *testing.T) {
	tr, w, s := dragFixture()
	if ds := BeginDrag(tr, "ghost", 0, w, s, false); ds != nil {
		t.Error("expected nil session for unknown id")
	}
}

func TestDrag_SimpleTask(t *testing.T) {
	tr, w, s := dragFixture()
	ds := BeginDrag(tr, "solo", 500, w, s, false)
	if ds == nil {
		t.Fatal("session not created")
	}

	now := time.Now()
	// Three days right at 48px per day.
	if !ds.Move(500+3*48, now.Add(50*time.Millisecond)) {
		t.Fatal("move rejected")
	}

	got := ds.Tree().FindByID("solo")
	if !got.StartDate.Equal(date(2025, 2, 4)) {
		t.Errorf("dragged start = %v, want 2025-02-04", got.StartDate)
	}
	if got.Duration != 4 {
		t.Errorf("duration changed to %d during drag", got.Duration)
	}

	// Original tree untouched until commit.
	if !tr.FindByID("solo").StartDate.Equal(date(2025, 2, 1)) {
		t.Error("drag leaked into source tree")
	}
}

func TestDrag_Throttled(t *testing.T) {
	tr, w, s := dragFixture()
	ds := BeginDrag(tr, "solo", 0, w, s, false)

	now := time.Now()
	if !ds.Move(48, now.Add(40*time.Millisecond)) {
		t.Fatal("first move rejected")
	}
	// Within 33ms of the last accepted move: dropped.
	if ds.Move(96, now.Add(50*time.Millisecond)) {
		t.Error("move inside throttle window should be dropped")
	}
	// After the window it goes through.
	if !ds.Move(96, now.Add(90*time.Millisecond)) {
		t.Error("move after throttle window rejected")
	}
}

func TestDrag_SkipsRepeatedDelta(t *testing.T) {
	tr, w, s := dragFixture()
	ds := BeginDrag(tr, "solo", 0, w, s, false)

	now := time.Now()
	if !ds.Move(48, now.Add(40*time.Millisecond)) {
		t.Fatal("first move rejected")
	}
	// 50px still rounds to one day: no change.
	if ds.Move(50, now.Add(80*time.Millisecond)) {
		t.Error("sub-day move should be skipped")
	}
}

func TestDrag_ReplayInvariant(t *testing.T) {
	// The final tree depends only on the initial snapshot and the last
	// applied delta, not on the path the pointer took.
	now := time.Now()

	run := func(moves []int) *task.Task {
		tr, w, s := dragFixture()
		ds := BeginDrag(tr, "solo", 0, w, s, false)
		for i, x := range moves {
			ds.Move(x, now.Add(time.Duration(i+1)*40*time.Millisecond))
		}
		final, err := ds.End(moves[len(moves)-1])
		if err != nil {
			t.Fatalf("End failed: %v", err)
		}
		return final.FindByID("solo")
	}

	direct := run([]int{5 * 48})
	wandering := run([]int{-2 * 48, 7 * 48, 48, 5 * 48})

	if !direct.StartDate.Equal(*wandering.StartDate) {
		t.Errorf("replay mismatch: %v vs %v", direct.StartDate, wandering.StartDate)
	}
	if !direct.StartDate.Equal(date(2025, 2, 6)) {
		t.Errorf("final start = %v, want 2025-02-06", direct.StartDate)
	}
}

func TestDrag_ParentShiftsChildren(t *testing.T) {
	tr, w, s := dragFixture()
	ds := BeginDrag(tr, "p", 0, w, s, true)

	final, err := ds.End(3 * 48)
	if err != nil {
		t.Fatalf("End failed: %v", err)
	}

	p := final.FindByID("p")
	if !p.StartDate.Equal(date(2025, 1, 13)) {
		t.Errorf("parent start = %v, want 2025-01-13", p.StartDate)
	}
	// Children keep their relative offsets.
	if !final.FindByID("s-1").StartDate.Equal(date(2025, 1, 13)) {
		t.Errorf("first child = %v, want 2025-01-13", final.FindByID("s-1").StartDate)
	}
	if !final.FindByID("s-2").StartDate.Equal(date(2025, 1, 16)) {
		t.Errorf("second child = %v, want 2025-01-16", final.FindByID("s-2").StartDate)
	}
	if p.Duration != 6 {
		t.Errorf("parent duration = %d, want 6", p.Duration)
	}
}

func TestDrag_CollapsedParentKeepsDurationMidDrag(t *testing.T) {
	tr, w, s := dragFixture()
	// Stretch the parent's stored duration away from the derived span.
	tr.FindByID("p").Duration = 20

	ds := BeginDrag(tr, "p", 0, w, s, false)
	now := time.Now()
	ds.Move(2*48, now.Add(40*time.Millisecond))

	// Mid-drag the collapsed parent keeps its stored duration.
	if got := ds.Tree().FindByID("p").Duration; got != 20 {
		t.Errorf("mid-drag duration = %d, want 20", got)
	}

	final, err := ds.End(2 * 48)
	if err != nil {
		t.Fatalf("End failed: %v", err)
	}
	// On drop the span is reconciled with the children.
	if got := final.FindByID("p").Duration; got != 6 {
		t.Errorf("committed duration = %d, want 6", got)
	}
}

func TestDrag_SubtaskReaggregatesParent(t *testing.T) {
	tr, w, s := dragFixture()
	ds := BeginDrag(tr, "s-2", 0, w, s, true)

	final, err := ds.End(5 * 48)
	if err != nil {
		t.Fatalf("End failed: %v", err)
	}

	if !final.FindByID("s-2").StartDate.Equal(date(2025, 1, 18)) {
		t.Errorf("subtask start = %v, want 2025-01-18", final.FindByID("s-2").StartDate)
	}
	// Parent span stretches to cover the moved child: Jan 10 .. Jan 21.
	p := final.FindByID("p")
	if !p.StartDate.Equal(date(2025, 1, 10)) || p.Duration != 11 {
		t.Errorf("parent = %v/%d, want 2025-01-10/11", p.StartDate, p.Duration)
	}
}

func TestDrag_EndTwice(t *testing.T) {
	tr, w, s := dragFixture()
	ds := BeginDrag(tr, "solo", 0, w, s, false)

	if _, err := ds.End(48); err != nil {
		t.Fatalf("first End failed: %v", err)
	}
	if _, err := ds.End(96); err != ErrSessionDone {
		t.Errorf("second End = %v, want ErrSessionDone", err)
	}
}
