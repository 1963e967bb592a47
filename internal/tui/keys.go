package tui

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mvillagra/gantterm/internal/advisor"
	"github.com/mvillagra/gantterm/internal/chart"
	"github.com/mvillagra/gantterm/internal/task"
	"github.com/mvillagra/gantterm/internal/tui/commands"
)

// inputAction routes the inline text input to the edit it feeds.
type inputAction int

const (
	inputNone inputAction = iota
	inputRename
	inputNewTask
	inputNewSubtask
	inputProgress
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKeyPress(msg)

	// Global keys (work in all modes)
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModePrompt:
		return m.handlePromptKeys(msg)
	case ModeDrag:
		return m.handleDragKeys(msg)
	case ModeResize:
		return m.handleResizeKeys(msg)
	case ModeRename, ModeProgress:
		return m.handleInputKeys(msg)
	case ModeModal:
		return m.handleModalKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	// Navigation
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
			m.clampScroll()
			LogCursorMove(m.cursor, "up")
		}
	case "j", "down":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
			m.clampScroll()
			LogCursorMove(m.cursor, "down")
		}
	case "h", "left":
		m.scrollX -= cellsPerDay(m.scale)
		m.clampScroll()
	case "l", "right":
		m.scrollX += cellsPerDay(m.scale)
		m.clampScroll()
	case "H", "pgup":
		m.scrollX -= m.chartCols()
		m.clampScroll()
	case "L", "pgdown":
		m.scrollX += m.chartCols()
		m.clampScroll()
	case "t":
		// Jump so today sits a third of the way into the viewport.
		todayCell := cellForPx(m.todayPx())
		m.scrollX = todayCell - m.chartCols()/3
		m.clampScroll()

	// Expansion
	case " ":
		if row := m.currentRow(); row != nil && row.Parent == nil && row.Task.HasSubtasks() {
			m.expanded[row.Task.ID] = !m.expanded[row.Task.ID]
			m.refreshLayout()
		}

	// Zoom
	case "+", "=":
		if z := m.zoom.In(); z != m.zoom {
			m.zoom = z
			m.refreshLayout()
			m.scrollToCursor()
		}
	case "-":
		if z := m.zoom.Out(); z != m.zoom {
			m.zoom = z
			m.refreshLayout()
			m.scrollToCursor()
		}

	// Task edits
	case "n":
		m.input.SetValue("")
		m.input.Placeholder = "New task name"
		m.input.Focus()
		m.inputAction = inputNewTask
		m.mode = ModeRename
	case "N":
		row := m.currentRow()
		if row == nil {
			break
		}
		parent := row.Task
		if row.Parent != nil {
			parent = row.Parent
		}
		m.input.SetValue("")
		m.input.Placeholder = "New subtask name"
		m.input.Focus()
		m.inputAction = inputNewSubtask
		m.inputTaskID = parent.ID
		m.mode = ModeRename
	case "r":
		row := m.currentRow()
		if row == nil {
			break
		}
		m.input.SetValue(row.Task.Name)
		m.input.Placeholder = "Task name"
		m.input.Focus()
		m.inputAction = inputRename
		m.inputTaskID = row.Task.ID
		m.mode = ModeRename
	case "p":
		row := m.currentRow()
		if row == nil {
			break
		}
		if row.Task.ProgressCalculated {
			m.setStatus("Progress is derived from subtasks")
			return m, m.clearStatusLater()
		}
		m.input.SetValue(strconv.Itoa(row.Task.Progress))
		m.input.Placeholder = "Progress 0-100"
		m.input.Focus()
		m.inputAction = inputProgress
		m.inputTaskID = row.Task.ID
		m.mode = ModeProgress
	case "d":
		row := m.currentRow()
		if row == nil {
			break
		}
		m.confirmMessage = fmt.Sprintf("Delete %q?", row.Task.Name)
		m.inputTaskID = row.Task.ID
		m.mode = ModeModal
		m.modalType = ModalConfirmDelete

	// Drag and resize via keyboard
	case "m":
		row := m.currentRow()
		if row == nil {
			break
		}
		m.sessionXPx = 0
		return m.startDrag(row.Task.ID, 0)
	case "e":
		row := m.currentRow()
		if row == nil || row.Parent == nil {
			break
		}
		m.sessionXPx = 0
		return m.startResize(row.Task.ID, chart.ResizeEnd, 0)
	case "E":
		row := m.currentRow()
		if row == nil || row.Parent == nil {
			break
		}
		m.sessionXPx = 0
		return m.startResize(row.Task.ID, chart.ResizeStart, 0)

	case "u":
		if err := m.treeState.Undo(); err != nil {
			m.setStatus("Nothing to undo")
			return m, m.clearStatusLater()
		}
		m.refreshLayout()
		return m, m.flushCommit()

	// LLM
	case "g":
		m.prompt.SetValue("")
		m.prompt.Focus()
		m.mode = ModePrompt
	case "R":
		m.setStatus("Reviewing...")
		return m, commands.Review(m.config, m.treeState.Tree())

	// Details and alerts
	case "enter":
		row := m.currentRow()
		if row == nil {
			break
		}
		m.inputTaskID = row.Task.ID
		m.modalText = m.taskDetail(row)
		m.mode = ModeModal
		m.modalType = ModalTaskDetail
	case "a":
		row := m.currentRow()
		if row == nil {
			break
		}
		if alert, ok := m.alerts[row.Task.ID]; ok {
			m.setStatus(alert)
		} else {
			m.setStatus("No alerts for this task")
		}
		return m, m.clearStatusLater()

	// Export
	case "x":
		return m, commands.ExportSVG(m.config, m.treeState.Tree(), m.zoom)
	case "X":
		return m, commands.ExportProjectCSV(m.config, m.treeState.Tree())
	case "c":
		payload := task.ToPayload(m.treeState.Tree())
		data, err := json.MarshalIndent(payload, "", "  ")
		if err == nil {
			err = clipboard.WriteAll(string(data))
		}
		if err != nil {
			m.setStatus(fmt.Sprintf("Clipboard error: %v", err))
		} else {
			m.setStatus("Copied plan JSON to clipboard")
		}
		return m, m.clearStatusLater()

	case "?":
		m.mode = ModeModal
		m.modalType = ModalHelp
	}

	return m, nil
}

// handleDragKeys drives a keyboard drag session one day at a time.
func (m Model) handleDragKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "h", "left":
		m.sessionXPx -= m.scale.UnitWidthPx
		if m.treeState.MoveDrag(m.sessionXPx, m.nowFunc()) {
			m.refreshLayout()
		}
	case "l", "right":
		m.sessionXPx += m.scale.UnitWidthPx
		if m.treeState.MoveDrag(m.sessionXPx, m.nowFunc()) {
			m.refreshLayout()
		}
	case "enter":
		return m.endDrag(m.sessionXPx)
	case "esc":
		m.treeState.CancelDrag()
		m.mode = ModeNormal
		m.refreshLayout()
	}
	return m, nil
}

// handleResizeKeys drives a keyboard resize session one day at a time.
func (m Model) handleResizeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "h", "left":
		m.sessionXPx -= m.scale.UnitWidthPx
		if m.treeState.MoveResize(m.sessionXPx) {
			m.refreshLayout()
		}
	case "l", "right":
		m.sessionXPx += m.scale.UnitWidthPx
		if m.treeState.MoveResize(m.sessionXPx) {
			m.refreshLayout()
		}
	case "enter":
		return m.endResize(m.sessionXPx)
	case "esc":
		m.treeState.CancelResize()
		m.mode = ModeNormal
		m.refreshLayout()
	}
	return m, nil
}

// handleInputKeys handles the inline rename and progress inputs.
func (m Model) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.input.Blur()
		m.inputAction = inputNone
		m.mode = ModeNormal
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		m.input.Blur()
		m.mode = ModeNormal
		cmd := m.applyInput(value)
		m.inputAction = inputNone
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// applyInput commits the inline input value.
func (m *Model) applyInput(value string) tea.Cmd {
	switch m.inputAction {
	case inputNewTask:
		if value == "" {
			return nil
		}
		return m.applyMutation("Add task", func(tr *task.Tree) error {
			t, err := task.New(value, "", "", 1)
			if err != nil {
				return err
			}
			t.Color = m.config.Chart.DefaultColor
			tr.Tasks = append(tr.Tasks, t)
			return nil
		})
	case inputNewSubtask:
		if value == "" {
			return nil
		}
		parentID := m.inputTaskID
		now := m.nowFunc()
		return m.applyMutation("Add subtask", func(tr *task.Tree) error {
			parent := tr.FindByID(parentID)
			if parent == nil {
				return task.ErrTaskNotFound
			}
			if _, err := task.NewSubtask(parent, value, "", 1); err != nil {
				return err
			}
			task.InitializeSubtaskDates(parent, now)
			task.Aggregate(parent)
			return nil
		})
	case inputRename:
		if value == "" {
			return nil
		}
		id := m.inputTaskID
		return m.applyMutation("Rename", func(tr *task.Tree) error {
			t := tr.FindByID(id)
			if t == nil {
				return task.ErrTaskNotFound
			}
			t.Name = value
			return nil
		})
	case inputProgress:
		p, err := strconv.Atoi(value)
		if err != nil {
			m.setStatus("Progress must be a number")
			return m.clearStatusLater()
		}
		id := m.inputTaskID
		return m.applyMutation("Progress", func(tr *task.Tree) error {
			t := tr.FindByID(id)
			if t == nil {
				return task.ErrTaskNotFound
			}
			if err := t.SetProgress(p); err != nil {
				return err
			}
			if parent := tr.ParentOf(id); parent != nil {
				task.Aggregate(parent)
			}
			return nil
		})
	}
	return nil
}

// handlePromptKeys handles the LLM prompt input.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.prompt.Blur()
		m.mode = ModeNormal
		return m, nil
	case "enter":
		input := strings.TrimSpace(m.prompt.Value())
		m.prompt.Blur()
		m.mode = ModeNormal
		if input == "" {
			return m, nil
		}
		return m, tea.Batch(
			func() tea.Msg { return commands.PlanStartedMsg{} },
			commands.Plan(input, m.config, m.treeState.Tree()),
		)
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// handleModalKeys handles keys while a modal is open.
func (m Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modalType {
	case ModalConfirmDelete:
		switch msg.String() {
		case "y", "enter":
			id := m.inputTaskID
			m.closeModal()
			return m, m.applyMutation("Delete", func(tr *task.Tree) error {
				parent := tr.ParentOf(id)
				if err := tr.Remove(id); err != nil {
					return err
				}
				if parent != nil {
					task.Aggregate(parent)
				}
				return nil
			})
		case "n", "esc":
			m.closeModal()
		}
		return m, nil

	case ModalPlanResult:
		switch msg.String() {
		case "y", "enter":
			result := m.planResult
			m.closeModal()
			if result == nil || len(result.Tasks) == 0 {
				return m, nil
			}
			now := m.nowFunc()
			return m, m.applyMutation("Plan", func(tr *task.Tree) error {
				planned := task.BuildTree(result.Payload(), now)
				tr.Tasks = append(tr.Tasks, planned.Tasks...)
				return nil
			})
		case "n", "esc", "q":
			m.planResult = nil
			m.closeModal()
		}
		return m, nil

	case ModalTaskDetail:
		switch key := msg.String(); key {
		case "1", "2", "3":
			id := m.inputTaskID
			n := int(key[0] - '0')
			m.closeModal()
			m.setStatus("Suggestion applied")
			return m, tea.Batch(m.applyMutation("Suggestion", func(tr *task.Tree) error {
				t := tr.FindByID(id)
				if t == nil {
					return task.ErrTaskNotFound
				}
				if err := advisor.Apply(t, n); err != nil {
					return err
				}
				if parent := tr.ParentOf(id); parent != nil {
					task.Aggregate(parent)
				}
				return nil
			}), m.clearStatusLater())
		case "esc", "q", "enter":
			m.closeModal()
		}
		return m, nil

	default:
		switch msg.String() {
		case "esc", "q", "enter":
			m.closeModal()
		}
		return m, nil
	}
}

func (m *Model) closeModal() {
	m.mode = ModeNormal
	m.modalType = ModalNone
	m.modalText = ""
	m.confirmMessage = ""
}
