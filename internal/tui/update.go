package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mvillagra/gantterm/internal/chart"
	"github.com/mvillagra/gantterm/internal/task"
	"github.com/mvillagra/gantterm/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampScroll()
		return m, nil

	case commands.TreeLoadedMsg:
		m.treeState.SetTree(msg.Tree)
		m.loading = false
		m.refreshLayout()
		return m, commands.Advise(msg.Tree)

	case commands.TreeSavedMsg:
		m.treeState.MarkSaved()
		m.setStatus("Saved")
		return m, m.clearStatusLater()

	case commands.ErrMsg:
		LogError("update", msg.Err)
		m.err = msg.Err
		m.statusMsg = fmt.Sprintf("Error: %v", msg.Err)
		m.statusTime = m.nowFunc().Add(5 * time.Second)
		return m, nil

	case commands.StatusMsgCmd:
		m.setStatus(msg.Msg)
		return m, m.clearStatusLater()

	case commands.ClearStatusMsg:
		if m.nowFunc().After(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil

	case commands.PlanStartedMsg:
		m.statusMsg = "Planning..."
		return m, nil

	case commands.PlanResultMsg:
		m.planResult = msg.Result
		m.mode = ModeModal
		m.modalType = ModalPlanResult
		m.statusMsg = ""
		return m, nil

	case commands.ReviewResultMsg:
		m.mode = ModeModal
		m.modalType = ModalReview
		m.modalText = msg.Report
		m.statusMsg = ""
		return m, nil

	case commands.AdvisorMsg:
		m.alerts = msg.Alerts
		return m, nil

	case commands.ExportDoneMsg:
		m.setStatus(fmt.Sprintf("Exported %s", msg.Path))
		return m, m.clearStatusLater()
	}

	return m, nil
}

func (m *Model) clearStatusLater() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return commands.ClearStatusMsg{}
	})
}

// handleMouseMsg maps pointer events onto drag and resize sessions.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode == ModeModal || m.mode == ModePrompt || m.mode == ModeRename || m.mode == ModeProgress {
		return m, nil
	}

	// Translate terminal cell to chart coordinates.
	xPx := pxForCell(msg.X - nameColWidth + m.scrollX)
	rowIdx := m.scrollY + msg.Y - headerLines

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || msg.X < nameColWidth {
			return m, nil
		}
		if rowIdx < 0 || rowIdx >= len(m.rows) {
			return m, nil
		}
		row := m.rows[rowIdx]
		m.cursor = rowIdx

		// An edge press on a subtask starts a resize, anywhere else on
		// the bar starts a drag.
		start, end := cellSpan(row.Rect)
		cell := msg.X - nameColWidth + m.scrollX
		if cell < start || cell >= end {
			return m, nil
		}
		if row.Parent != nil && cell == start {
			return m.startResize(row.Task.ID, chart.ResizeStart, xPx)
		}
		if row.Parent != nil && cell == end-1 && end-start > 1 {
			return m.startResize(row.Task.ID, chart.ResizeEnd, xPx)
		}
		return m.startDrag(row.Task.ID, xPx)

	case tea.MouseActionMotion:
		switch m.mode {
		case ModeDrag:
			if m.treeState.MoveDrag(xPx, m.nowFunc()) {
				m.refreshLayout()
			}
		case ModeResize:
			if m.treeState.MoveResize(xPx) {
				m.refreshLayout()
			}
		}
		return m, nil

	case tea.MouseActionRelease:
		switch m.mode {
		case ModeDrag:
			return m.endDrag(xPx)
		case ModeResize:
			return m.endResize(xPx)
		}
	}

	return m, nil
}

func (m Model) startDrag(id string, xPx int) (tea.Model, tea.Cmd) {
	err := m.treeState.StartDrag(id, xPx, m.window, m.scale, m.expanded[id])
	if err != nil {
		LogError("start drag", err)
		return m, nil
	}
	LogModeChange(m.mode, ModeDrag, "drag start")
	m.mode = ModeDrag
	m.sessionXPx = xPx
	return m, nil
}

func (m Model) endDrag(xPx int) (tea.Model, tea.Cmd) {
	if err := m.treeState.EndDrag(xPx); err != nil {
		LogError("end drag", err)
	}
	LogModeChange(m.mode, ModeNormal, "drag end")
	m.mode = ModeNormal
	m.refreshLayout()
	return m, m.flushCommit()
}

func (m Model) startResize(id string, edge chart.ResizeEdge, xPx int) (tea.Model, tea.Cmd) {
	err := m.treeState.StartResize(id, edge, xPx, m.window, m.scale)
	if err != nil {
		LogError("start resize", err)
		return m, nil
	}
	LogModeChange(m.mode, ModeResize, "resize start")
	m.mode = ModeResize
	m.sessionXPx = xPx
	return m, nil
}

func (m Model) endResize(xPx int) (tea.Model, tea.Cmd) {
	if err := m.treeState.EndResize(xPx); err != nil {
		LogError("end resize", err)
	}
	LogModeChange(m.mode, ModeNormal, "resize end")
	m.mode = ModeNormal
	m.refreshLayout()
	return m, m.flushCommit()
}

// flushCommit turns the commit recorded by the state manager's observer
// into an async save plus an advisor refresh. Mutations that never
// notified (a zero-delta drag, a cancelled session) flush nothing.
func (m *Model) flushCommit() tea.Cmd {
	tr, ok := m.commits.take()
	if !ok {
		return nil
	}
	return tea.Batch(
		commands.SaveTree(m.repo, tr),
		commands.Advise(tr),
	)
}

// applyMutation runs a tree mutation through the state manager and
// refreshes layout and persistence on success.
func (m *Model) applyMutation(description string, fn func(*task.Tree) error) tea.Cmd {
	if err := m.treeState.Apply(description, fn); err != nil {
		LogError(description, err)
		m.setStatus(fmt.Sprintf("Error: %v", err))
		return m.clearStatusLater()
	}
	m.refreshLayout()
	return m.flushCommit()
}
