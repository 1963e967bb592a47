// Package tui provides the terminal user interface for gantterm.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mvillagra/gantterm/internal/chart"
	"github.com/mvillagra/gantterm/internal/config"
	"github.com/mvillagra/gantterm/internal/llm"
	"github.com/mvillagra/gantterm/internal/task"
	"github.com/mvillagra/gantterm/internal/tui/commands"
	"github.com/mvillagra/gantterm/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeDrag        // Moving a bar horizontally (keyboard or mouse)
	ModeResize      // Dragging a subtask edge
	ModeRename      // Inline rename input
	ModeProgress    // Inline progress input
	ModePrompt      // LLM prompt input
	ModeModal
)

// ModalType identifies the type of modal.
type ModalType int

const (
	ModalNone ModalType = iota
	ModalTaskDetail
	ModalConfirmDelete
	ModalPlanResult // Show LLM planning results
	ModalReview     // Show LLM plan review
	ModalHelp
)

// Model is the main TUI model.
type Model struct {
	// Dependencies
	repo   task.Repository
	config *config.Config

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// State manager (tree-based)
	treeState *TreeStateManager

	// Commits recorded by the state manager's observer, waiting to be
	// flushed to the repository. Pointer-shared so bubbletea's model
	// copies all see the same box.
	commits *commitBox

	// Chart geometry, recomputed whenever the tree or zoom changes
	zoom   chart.Zoom
	window chart.Window
	scale  chart.Scale
	rows   []chart.Row

	// Per-parent expansion; absent ids are collapsed
	expanded map[string]bool

	// State
	cursor  int // index into rows
	scrollX int // horizontal chart offset, in cells
	scrollY int // first visible row index
	mode    Mode
	loading bool

	// Drag/resize bookkeeping for the view; the TreeStateManager owns
	// the session itself
	sessionXPx int // synthetic pointer position for keyboard sessions

	// Modal state
	modalType      ModalType
	modalText      string
	confirmMessage string

	// Inline inputs
	input  textinput.Model
	prompt textinput.Model

	// Which edit the inline input feeds, and its target task
	inputAction inputAction
	inputTaskID string

	// Planning state
	planResult *llm.PlanResponse

	// Advisor alerts keyed by task id
	alerts map[string]string

	// Terminal dimensions
	width  int
	height int

	// Status bar
	statusMsg  string
	statusTime time.Time
	err        error

	// For tests
	nowFunc func() time.Time
}

// New creates the TUI model.
func New(repo task.Repository, cfg *config.Config) (*Model, error) {
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		return nil, err
	}

	input := textinput.New()
	input.CharLimit = 120

	prompt := textinput.New()
	prompt.Placeholder = "Describe the plan, e.g. \"website redesign starting Monday, 3 phases\""
	prompt.CharLimit = 400

	m := &Model{
		repo:      repo,
		config:    cfg,
		theme:     t,
		styles:    NewStyles(t),
		treeState: NewTreeStateManager(task.Tree{}),
		commits:   &commitBox{},
		zoom:      cfg.Zoom(),
		expanded:  make(map[string]bool),
		alerts:    make(map[string]string),
		input:     input,
		prompt:    prompt,
		loading:   true,
		nowFunc:   time.Now,
	}
	// The repository learns about committed mutations only through this
	// observer; the update loop flushes the box into an async save.
	m.treeState.SetOnUpdate(m.commits.record)
	m.refreshLayout()
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		commands.LoadTree(m.repo),
		textinput.Blink,
	)
}

// refreshLayout recomputes window, scale and rows from the current tree.
func (m *Model) refreshLayout() {
	tr := m.treeState.Tree()
	m.window = chart.CalculateWindow(tr, m.nowFunc())
	m.scale = chart.NewScale(m.zoom, m.window.Days())
	m.rows = chart.Layout(tr, m.window, m.scale, m.expanded, m.nowFunc())
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.clampScroll()
}

// currentRow returns the row under the cursor, or nil on an empty chart.
func (m *Model) currentRow() *chart.Row {
	if len(m.rows) == 0 || m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return &m.rows[m.cursor]
}

// chartCols returns how many chart columns fit beside the name column.
func (m *Model) chartCols() int {
	cols := m.width - nameColWidth - 1
	if cols < 10 {
		cols = 10
	}
	return cols
}

// chartRows returns how many bar rows fit between header and footer.
func (m *Model) chartRows() int {
	rows := m.height - chromeLines
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m *Model) clampScroll() {
	maxX := totalCells(m.scale) - m.chartCols()
	if maxX < 0 {
		maxX = 0
	}
	if m.scrollX > maxX {
		m.scrollX = maxX
	}
	if m.scrollX < 0 {
		m.scrollX = 0
	}

	if m.cursor < m.scrollY {
		m.scrollY = m.cursor
	}
	if m.cursor >= m.scrollY+m.chartRows() {
		m.scrollY = m.cursor - m.chartRows() + 1
	}
	if m.scrollY < 0 {
		m.scrollY = 0
	}
}

// scrollToCursor brings the cursor's bar into horizontal view.
func (m *Model) scrollToCursor() {
	row := m.currentRow()
	if row == nil {
		return
	}
	start, end := cellSpan(row.Rect)
	if start < m.scrollX {
		m.scrollX = start
	}
	if end > m.scrollX+m.chartCols() {
		m.scrollX = end - m.chartCols()
	}
	m.clampScroll()
}

// setStatus shows a transient status message.
func (m *Model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusTime = m.nowFunc().Add(3 * time.Second)
}
