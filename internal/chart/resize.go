package chart

import (
	"math"
	"time"

	"github.com/mvillagra/gantterm/internal/dateutil"
	"github.com/mvillagra/gantterm/internal/task"
)

// ResizeEdge names the bar edge being dragged.
type ResizeEdge string

const (
	ResizeStart ResizeEdge = "start" // left edge: moves start, shrinks duration
	ResizeEnd   ResizeEdge = "end"   // right edge: grows or shrinks duration
)

// ResizeSession tracks one edge drag of a subtask bar. Only subtasks can
// be resized: a parent's span is always derived from its children, so
// resizing it directly would be overwritten on the next aggregation.
//
// Unlike drags, resizes are not throttled; the parent is re-aggregated on
// every move so its span tracks the edge in real time.
type ResizeSession struct {
	tree  task.Tree
	scale Scale

	taskID   string
	parentID string
	edge     ResizeEdge

	initialStart    time.Time
	initialDuration int

	startXPx int
	done     bool
}

// BeginResize starts an edge drag on the subtask with the given id at
// pointer position xPx. Returns nil when the id does not name a subtask;
// top-level bars have no resize handles.
func BeginResize(tr task.Tree, id string, edge ResizeEdge, xPx int, w Window, s Scale) *ResizeSession {
	parent := tr.ParentOf(id)
	if parent == nil {
		return nil
	}

	rs := &ResizeSession{
		tree:     tr.Clone(),
		scale:    s,
		taskID:   id,
		parentID: parent.ID,
		edge:     edge,
		startXPx: xPx,
	}

	target := rs.tree.FindByID(id)
	if target.StartDate != nil {
		rs.initialStart = *target.StartDate
	} else {
		rs.initialStart = w.Start
	}
	rs.initialDuration = target.Duration
	if rs.initialDuration < 1 {
		rs.initialDuration = 1
	}

	return rs
}

// Tree returns the session's working tree for rendering mid-resize.
func (rs *ResizeSession) Tree() task.Tree {
	return rs.tree
}

// TaskID returns the id of the subtask being resized.
func (rs *ResizeSession) TaskID() string {
	return rs.taskID
}

// Move processes a pointer move to xPx. Returns true when the working
// tree changed. Duration never drops below one day; pulling the left
// edge past the right pins the bar at a single day.
func (rs *ResizeSession) Move(xPx int) bool {
	if rs.done {
		return false
	}

	deltaDays := int(math.Round(float64(xPx-rs.startXPx) / float64(rs.scale.UnitWidthPx)))

	target := rs.tree.FindByID(rs.taskID)
	if target == nil {
		return false
	}

	newStart := rs.initialStart
	newDuration := rs.initialDuration
	switch rs.edge {
	case ResizeStart:
		newStart = dateutil.AddDays(rs.initialStart, deltaDays)
		newDuration = rs.initialDuration - deltaDays
	case ResizeEnd:
		newDuration = rs.initialDuration + deltaDays
	}
	if newDuration < 1 {
		newDuration = 1
	}

	if target.StartDate != nil && target.StartDate.Equal(newStart) && target.Duration == newDuration {
		return false
	}

	target.StartDate = &newStart
	target.Duration = newDuration

	if parent := rs.tree.FindByID(rs.parentID); parent != nil {
		task.Aggregate(parent)
	}
	return true
}

// End finishes the resize and returns the tree to commit. After End the
// session is spent.
func (rs *ResizeSession) End(xPx int) (task.Tree, error) {
	if rs.done {
		return task.Tree{}, ErrSessionDone
	}
	rs.Move(xPx)
	rs.done = true
	return rs.tree, nil
}

// Cancel abandons the session; the working tree is discarded.
func (rs *ResizeSession) Cancel() {
	rs.done = true
}
