package chart

import (
	"math"
	"time"

	"github.com/mvillagra/gantterm/internal/dateutil"
	"github.com/mvillagra/gantterm/internal/task"
)

// Horizontal drags are throttled to roughly 30 updates per second; the
// math is cheap but every accepted move redraws the chart.
const dragThrottle = 33 * time.Millisecond

// DragSession tracks one horizontal drag of a bar. It owns a working
// clone of the tree: every accepted move edits the clone, and End hands
// the finished clone back for the caller to commit in one step. The
// original tree is never touched, so abandoning a session is free.
//
// Deltas accumulate from the pointer position captured at Begin rather
// than chaining per-event deltas, which would drift under throttling.
type DragSession struct {
	tree  task.Tree
	scale Scale

	taskID   string
	parentID string // set when dragging a subtask

	initialStart time.Time
	childStarts  map[string]time.Time // captured starts of the children
	expanded     bool

	startXPx   int
	appliedDay int
	lastMove   time.Time
	done       bool
}

// BeginDrag starts a drag on the task or subtask with the given id at
// pointer position xPx. Returns nil when the id matches nothing; callers
// treat that as "nothing to drag".
//
// w resolves unscheduled bars to their displayed position, and expanded
// tells the session whether the dragged parent's children are on screen.
func BeginDrag(tr task.Tree, id string, xPx int, w Window, s Scale, expanded bool) *DragSession {
	target := tr.FindByID(id)
	if target == nil {
		return nil
	}

	ds := &DragSession{
		tree:     tr.Clone(),
		scale:    s,
		taskID:   id,
		startXPx: xPx,
		expanded: expanded,
	}
	if parent := tr.ParentOf(id); parent != nil {
		ds.parentID = parent.ID
	}

	// Re-resolve inside the clone so moves mutate session state only.
	target = ds.tree.FindByID(id)
	if target.StartDate != nil {
		ds.initialStart = *target.StartDate
	} else {
		ds.initialStart = w.Start
	}

	if ds.parentID == "" && target.HasSubtasks() {
		ds.childStarts = make(map[string]time.Time, len(target.Subtasks))
		for _, sub := range target.Subtasks {
			if sub.StartDate != nil {
				ds.childStarts[sub.ID] = *sub.StartDate
			}
		}
	}

	return ds
}

// Tree returns the session's working tree for rendering mid-drag.
func (ds *DragSession) Tree() task.Tree {
	return ds.tree
}

// TaskID returns the id of the bar being dragged.
func (ds *DragSession) TaskID() string {
	return ds.taskID
}

// DeltaDays returns the day shift currently applied.
func (ds *DragSession) DeltaDays() int {
	return ds.appliedDay
}

// Move processes a pointer move to xPx at time now. Returns true when the
// working tree changed. Moves are throttled, and sub-day deltas that
// round to the already-applied shift are skipped.
func (ds *DragSession) Move(xPx int, now time.Time) bool {
	if ds.done {
		return false
	}
	if now.Sub(ds.lastMove) < dragThrottle {
		return false
	}
	ds.lastMove = now

	deltaDays := int(math.Round(float64(xPx-ds.startXPx) / float64(ds.scale.UnitWidthPx)))
	if deltaDays == ds.appliedDay {
		return false
	}
	ds.appliedDay = deltaDays

	return ds.apply(deltaDays)
}

func (ds *DragSession) apply(deltaDays int) bool {
	target := ds.tree.FindByID(ds.taskID)
	if target == nil {
		return false
	}

	if ds.parentID != "" {
		// Subtask drag: shift it and resize the parent around it.
		newStart := dateutil.AddDays(ds.initialStart, deltaDays)
		target.StartDate = &newStart
		parent := ds.tree.FindByID(ds.parentID)
		if parent == nil {
			return false
		}
		task.Aggregate(parent)
		return true
	}

	newStart := dateutil.AddDays(ds.initialStart, deltaDays)
	target.StartDate = &newStart

	if target.HasSubtasks() {
		for _, sub := range target.Subtasks {
			init, ok := ds.childStarts[sub.ID]
			if !ok {
				continue
			}
			shifted := dateutil.AddDays(init, deltaDays)
			sub.StartDate = &shifted
		}
		// A collapsed parent keeps its stored duration while dragging;
		// the span is reconciled on drop.
		if ds.expanded {
			task.Aggregate(target)
		}
	}
	return true
}

// End finishes the drag and returns the tree to commit. The final pointer
// position is applied without throttling so the drop never loses the last
// bit of movement. After End the session is spent.
func (ds *DragSession) End(xPx int) (task.Tree, error) {
	if ds.done {
		return task.Tree{}, ErrSessionDone
	}
	ds.done = true

	deltaDays := int(math.Round(float64(xPx-ds.startXPx) / float64(ds.scale.UnitWidthPx)))
	if deltaDays != ds.appliedDay {
		ds.appliedDay = deltaDays
		ds.apply(deltaDays)
	}

	// Reconcile parents that skipped aggregation mid-drag.
	if target := ds.tree.FindByID(ds.taskID); target != nil && target.HasSubtasks() {
		task.Aggregate(target)
	}

	return ds.tree, nil
}

// Cancel abandons the session; the working tree is discarded.
func (ds *DragSession) Cancel() {
	ds.done = true
}
