package tui

import (
	"errors"
	"time"

	"github.com/mvillagra/gantterm/internal/chart"
	"github.com/mvillagra/gantterm/internal/task"
)

// TreeStateManager errors.
var (
	ErrNothingToUndo   = errors.New("nothing to undo")
	ErrSessionActive   = errors.New("a drag or resize session is already active")
	ErrNoActiveSession = errors.New("no active session")
	ErrTaskNotDraggable = errors.New("task cannot be dragged")
)

const defaultMaxHistory = 50

// HistoryEntry represents a single undo-able operation.
type HistoryEntry struct {
	Description string    // e.g., "Drag: task name"
	Tree        task.Tree // The tree state before the operation
}

// UpdateFunc is invoked after every committed mutation with the new tree.
type UpdateFunc func(task.Tree)

// commitBox collects trees handed to the commit observer until the
// update loop flushes them to the repository. Only the latest commit
// matters since each save writes the whole tree.
type commitBox struct {
	tree    task.Tree
	pending bool
}

func (b *commitBox) record(tr task.Tree) {
	b.tree = tr
	b.pending = true
}

// take returns the recorded commit and clears the box.
func (b *commitBox) take() (task.Tree, bool) {
	if !b.pending {
		return task.Tree{}, false
	}
	b.pending = false
	return b.tree, true
}

// TreeStateManager owns the task tree shown by the TUI. Mutations go
// through Apply or a drag/resize session; each committed mutation pushes
// an undo snapshot and notifies the registered observer.
type TreeStateManager struct {
	tree  task.Tree
	dirty bool

	history    []HistoryEntry
	maxHistory int

	// At most one of drag/resize may be active at a time.
	drag   *chart.DragSession
	resize *chart.ResizeSession

	onUpdate UpdateFunc
}

// NewTreeStateManager creates a manager around an initial tree.
func NewTreeStateManager(tr task.Tree) *TreeStateManager {
	return &TreeStateManager{
		tree:       tr,
		maxHistory: defaultMaxHistory,
	}
}

// Tree returns the tree to render. During a drag or resize session this
// is the session's working tree, not the committed one.
func (sm *TreeStateManager) Tree() task.Tree {
	if sm.drag != nil {
		return sm.drag.Tree()
	}
	if sm.resize != nil {
		return sm.resize.Tree()
	}
	return sm.tree
}

// SetTree replaces the committed tree (after loading from the repository).
func (sm *TreeStateManager) SetTree(tr task.Tree) {
	sm.tree = tr
	sm.dirty = false
	sm.history = nil
	sm.drag = nil
	sm.resize = nil
}

// SetOnUpdate registers an observer called with the new tree after every
// committed mutation.
func (sm *TreeStateManager) SetOnUpdate(fn UpdateFunc) {
	sm.onUpdate = fn
}

// HasChanges returns true if there are unsaved modifications.
func (sm *TreeStateManager) HasChanges() bool {
	return sm.dirty
}

// MarkSaved clears the dirty flag after a successful persist.
func (sm *TreeStateManager) MarkSaved() {
	sm.dirty = false
}

// InSession returns true while a drag or resize session is active.
func (sm *TreeStateManager) InSession() bool {
	return sm.drag != nil || sm.resize != nil
}

// CanUndo returns true if there are operations to undo.
func (sm *TreeStateManager) CanUndo() bool {
	return !sm.InSession() && len(sm.history) > 0
}

// UndoCount returns the number of operations that can be undone.
func (sm *TreeStateManager) UndoCount() int {
	return len(sm.history)
}

// Undo reverts the last committed operation.
func (sm *TreeStateManager) Undo() error {
	if sm.InSession() {
		return ErrSessionActive
	}
	if len(sm.history) == 0 {
		return ErrNothingToUndo
	}

	entry := sm.history[len(sm.history)-1]
	sm.history = sm.history[:len(sm.history)-1]
	sm.tree = entry.Tree
	sm.dirty = true
	sm.notify()
	return nil
}

// Apply runs a mutation against a clone of the committed tree and commits
// the result. The original tree is kept for undo. A mutation returning an
// error leaves the committed tree untouched.
func (sm *TreeStateManager) Apply(description string, fn func(*task.Tree) error) error {
	if sm.InSession() {
		return ErrSessionActive
	}

	next := sm.tree.Clone()
	if err := fn(&next); err != nil {
		return err
	}

	sm.pushHistory(description)
	sm.tree = next
	sm.dirty = true
	sm.notify()
	return nil
}

// StartDrag begins a drag session for the task with the given id.
func (sm *TreeStateManager) StartDrag(id string, xPx int, w chart.Window, s chart.Scale, expanded bool) error {
	if sm.InSession() {
		return ErrSessionActive
	}
	ds := chart.BeginDrag(sm.tree, id, xPx, w, s, expanded)
	if ds == nil {
		return ErrTaskNotDraggable
	}
	sm.drag = ds
	return nil
}

// MoveDrag forwards a pointer position to the active drag session.
// Returns true if the session applied a new day offset.
func (sm *TreeStateManager) MoveDrag(xPx int, now time.Time) bool {
	if sm.drag == nil {
		return false
	}
	return sm.drag.Move(xPx, now)
}

// DragDeltaDays returns the day offset applied so far, or 0 outside a drag.
func (sm *TreeStateManager) DragDeltaDays() int {
	if sm.drag == nil {
		return 0
	}
	return sm.drag.DeltaDays()
}

// DraggingID returns the id of the task being dragged, or "".
func (sm *TreeStateManager) DraggingID() string {
	if sm.drag == nil {
		return ""
	}
	return sm.drag.TaskID()
}

// EndDrag finishes the active drag session and commits the result.
func (sm *TreeStateManager) EndDrag(xPx int) error {
	if sm.drag == nil {
		return ErrNoActiveSession
	}
	ds := sm.drag
	sm.drag = nil

	final, err := ds.End(xPx)
	if err != nil {
		return err
	}
	if ds.DeltaDays() == 0 {
		return nil
	}

	sm.pushHistory("Drag")
	sm.tree = final
	sm.dirty = true
	sm.notify()
	return nil
}

// CancelDrag abandons the active drag session without committing.
func (sm *TreeStateManager) CancelDrag() {
	if sm.drag != nil {
		sm.drag.Cancel()
		sm.drag = nil
	}
}

// StartResize begins a resize session for the subtask with the given id.
func (sm *TreeStateManager) StartResize(id string, edge chart.ResizeEdge, xPx int, w chart.Window, s chart.Scale) error {
	if sm.InSession() {
		return ErrSessionActive
	}
	rs := chart.BeginResize(sm.tree, id, edge, xPx, w, s)
	if rs == nil {
		return ErrTaskNotDraggable
	}
	sm.resize = rs
	return nil
}

// MoveResize forwards a pointer position to the active resize session.
func (sm *TreeStateManager) MoveResize(xPx int) bool {
	if sm.resize == nil {
		return false
	}
	return sm.resize.Move(xPx)
}

// ResizingID returns the id of the task being resized, or "".
func (sm *TreeStateManager) ResizingID() string {
	if sm.resize == nil {
		return ""
	}
	return sm.resize.TaskID()
}

// EndResize finishes the active resize session and commits the result.
func (sm *TreeStateManager) EndResize(xPx int) error {
	if sm.resize == nil {
		return ErrNoActiveSession
	}
	rs := sm.resize
	sm.resize = nil

	final, err := rs.End(xPx)
	if err != nil {
		return err
	}

	sm.pushHistory("Resize")
	sm.tree = final
	sm.dirty = true
	sm.notify()
	return nil
}

// CancelResize abandons the active resize session without committing.
func (sm *TreeStateManager) CancelResize() {
	if sm.resize != nil {
		sm.resize.Cancel()
		sm.resize = nil
	}
}

// pushHistory saves the current state before a modification.
func (sm *TreeStateManager) pushHistory(description string) {
	if len(sm.history) >= sm.maxHistory {
		sm.history = sm.history[1:]
	}
	sm.history = append(sm.history, HistoryEntry{
		Description: description,
		Tree:        sm.tree,
	})
}

func (sm *TreeStateManager) notify() {
	if sm.onUpdate != nil {
		sm.onUpdate(sm.tree)
	}
}
