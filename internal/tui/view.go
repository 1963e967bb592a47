package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mvillagra/gantterm/internal/advisor"
	"github.com/mvillagra/gantterm/internal/chart"
	"github.com/mvillagra/gantterm/internal/dateutil"
)

// Fixed chrome: title, two axis lines above the chart, status and help
// below it.
const (
	headerLines = 3
	footerLines = 2
	chromeLines = headerLines + footerLines
)

// View renders the TUI.
func (m Model) View() string {
	if m.loading {
		return m.styles.StatusStyle.Render("Loading tasks...")
	}
	if m.width == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteString("\n")
	b.WriteString(m.renderAxis())
	b.WriteString(m.renderChart())
	b.WriteString(m.renderFooter())

	if m.mode == ModeModal {
		return m.renderModal(b.String())
	}
	return b.String()
}

func (m Model) renderTitle() string {
	title := m.styles.TitleStyle.Render("gantterm")
	zoom := m.styles.StatusStyle.Render(fmt.Sprintf("  zoom: %s", m.zoom))
	dirty := ""
	if m.treeState.HasChanges() {
		dirty = m.styles.WarningStyle.Render("  [unsaved]")
	}
	mode := ""
	switch m.mode {
	case ModeDrag:
		mode = m.styles.WarningStyle.Render("  MOVE  h/l shift, enter drop, esc cancel")
	case ModeResize:
		mode = m.styles.WarningStyle.Render("  RESIZE  h/l adjust, enter drop, esc cancel")
	}
	return title + zoom + dirty + mode
}

// renderAxis draws two rows: month names on top, day numbers underneath.
// Month zoom has one cell per day, so day numbers are dropped there.
func (m Model) renderAxis() string {
	cols := m.chartCols()
	perDay := cellsPerDay(m.scale)
	pad := strings.Repeat(" ", nameColWidth)

	months := make([]byte, 0, cols)
	days := make([]byte, 0, cols)
	for col := 0; col < cols; {
		d := dateAtCell(m.scrollX+col, m.window, m.scale)

		if (d.Day() == 1 || col == 0) && len(months) <= col {
			label := d.Format("Jan 2006")
			if len(label) <= cols-col {
				months = append(months, label...)
			}
		}
		for len(months) < col+1 {
			months = append(months, ' ')
		}

		if perDay >= 2 {
			label := fmt.Sprintf("%d", d.Day())
			if perDay == 2 && d.Day()%2 == 0 && len(label) > 1 {
				label = "" // avoid two-digit collisions at week zoom
			}
			if len(label) > perDay {
				label = label[:perDay]
			}
			days = append(days, label...)
			for len(days) < col+perDay {
				days = append(days, ' ')
			}
		}
		col += perDay
	}
	months = clampLine(months, cols)
	days = clampLine(days, cols)

	out := pad + m.styles.AxisStyle.Render(string(months)) + "\n" +
		pad + m.styles.AxisStyle.Render(string(days)) + "\n"
	return out
}

func clampLine(b []byte, cols int) []byte {
	if len(b) > cols {
		return b[:cols]
	}
	for len(b) < cols {
		b = append(b, ' ')
	}
	return b
}

// renderChart draws the visible slice of rows.
func (m Model) renderChart() string {
	var b strings.Builder
	visible := m.chartRows()
	todayCell := cellForPx(m.todayPx())

	for i := 0; i < visible; i++ {
		idx := m.scrollY + i
		if idx >= len(m.rows) {
			b.WriteString("\n")
			continue
		}
		b.WriteString(m.renderRow(idx, todayCell))
		b.WriteString("\n")
	}
	return b.String()
}

// renderRow draws one bar row: the name column and the chart cells.
func (m Model) renderRow(idx, todayCell int) string {
	row := m.rows[idx]
	selected := idx == m.cursor

	name := row.Task.Name
	if row.Parent != nil {
		name = "  • " + name
	} else if row.Task.HasSubtasks() {
		marker := "▸ "
		if m.expanded[row.Task.ID] {
			marker = "▾ "
		}
		name = marker + name
	}
	if _, ok := m.alerts[row.Task.ID]; ok {
		name += " !"
	}
	name = truncate(name, nameColWidth-1)

	nameStyle := m.styles.NameStyle
	if selected {
		nameStyle = m.styles.NameSelectedStyle
	} else if row.Culled {
		nameStyle = m.styles.NameMutedStyle
	}

	return nameStyle.Render(name) + " " + m.renderBarCells(row, selected, todayCell)
}

// renderBarCells draws the chart area of a single row.
func (m Model) renderBarCells(row chart.Row, selected bool, todayCell int) string {
	cols := m.chartCols()
	start, end := cellSpan(row.Rect)
	progressEnd := start
	if row.Task.Progress > 0 {
		progressEnd = start + (end-start)*row.Task.Progress/100
		if progressEnd == start {
			progressEnd = start + 1
		}
	}

	barStyle := m.styles.BarStyle
	fillStyle := m.styles.BarProgressStyle
	if row.Parent != nil {
		barStyle = m.styles.SubtaskStyle
		fillStyle = m.styles.SubProgressStyle
	}
	if row.Late {
		barStyle = m.styles.LateBarStyle
	}
	if selected {
		barStyle = m.styles.BarSelectedStyle
	}
	sessionID := m.treeState.DraggingID()
	if sessionID == "" {
		sessionID = m.treeState.ResizingID()
	}
	if sessionID == row.Task.ID {
		barStyle = m.styles.BarDraggingStyle
		fillStyle = m.styles.BarDraggingStyle
	}

	// One rune per cell. Indexing the label by byte would smear a
	// multibyte rune, the truncation ellipsis included, across cells.
	label := []rune(barLabel(row))
	var b strings.Builder
	for col := 0; col < cols; col++ {
		cell := m.scrollX + col
		switch {
		case row.Culled:
			b.WriteString(m.styles.EmptyCellStyle.Render(" "))
		case cell >= start && cell < end:
			ch := " "
			if li := cell - start; li < len(label) {
				ch = string(label[li])
			}
			if cell < progressEnd {
				b.WriteString(fillStyle.Render(ch))
			} else {
				b.WriteString(barStyle.Render(ch))
			}
		case m.config.Chart.TodayMarker && cell == todayCell:
			b.WriteString(m.styles.TodayStyle.Render("│"))
		case m.config.Chart.WeekendShade && isWeekendCell(cell, m.window, m.scale):
			b.WriteString(m.styles.WeekendStyle.Render(" "))
		default:
			b.WriteString(m.styles.EmptyCellStyle.Render(" "))
		}
	}
	return b.String()
}

// barLabel is the text drawn inside a bar when it is wide enough.
func barLabel(row chart.Row) string {
	if row.Task.StartDate == nil {
		return ""
	}
	return fmt.Sprintf(" %s %d%%", truncate(row.Task.Name, 14), row.Task.Progress)
}

func isWeekendCell(cell int, w chart.Window, s chart.Scale) bool {
	wd := dateAtCell(cell, w, s).Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// todayPx returns the chart x coordinate of the current day.
func (m Model) todayPx() int {
	days := dateutil.DaysBetween(m.window.Start, m.nowFunc())
	return days * m.scale.UnitWidthPx
}

func (m Model) renderFooter() string {
	var status string
	switch m.mode {
	case ModeRename, ModeProgress:
		status = m.styles.PromptFocusedStyle.Render(m.input.View())
	case ModePrompt:
		status = m.styles.PromptFocusedStyle.Render(m.prompt.View())
	default:
		if m.statusMsg != "" {
			status = m.styles.StatusStyle.Render(m.statusMsg)
		}
	}

	help := m.styles.HelpStyle.Render(
		"j/k task  h/l pan  space expand  +/- zoom  m move  e/E resize  n/N add  d del  g plan  x/X export  ? help  q quit")
	return status + "\n" + help
}

// renderModal centers the active modal over the chart.
func (m Model) renderModal(base string) string {
	var title, body, hint string

	switch m.modalType {
	case ModalTaskDetail:
		title = "Task"
		body = m.modalText
		hint = "esc close"
	case ModalConfirmDelete:
		title = "Confirm"
		body = m.confirmMessage
		hint = "y delete  n cancel"
	case ModalPlanResult:
		title = "Proposed plan"
		body = m.renderPlanResult()
		hint = "y accept  n discard"
	case ModalReview:
		title = "Plan review"
		body = m.modalText
		hint = "esc close"
	case ModalHelp:
		title = "Help"
		body = helpText
		hint = "esc close"
	}

	content := m.styles.ModalTitleStyle.Render(title) + "\n\n" +
		m.styles.ModalBodyStyle.Render(body) + "\n\n" +
		m.styles.ModalHintStyle.Render(hint)
	modal := m.styles.ModalStyle.Render(content)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

func (m Model) renderPlanResult() string {
	if m.planResult == nil {
		return "No plan."
	}
	var b strings.Builder
	for _, t := range m.planResult.Tasks {
		fmt.Fprintf(&b, "%s  %s  %dd\n", t.Name, t.StartDate, t.Duration)
		for _, sub := range t.Subtasks {
			fmt.Fprintf(&b, "  • %s  %dd\n", sub.Name, sub.Duration)
		}
	}
	for _, w := range m.planResult.Warnings {
		fmt.Fprintf(&b, "\n! %s", w)
	}
	return strings.TrimRight(b.String(), "\n")
}

// taskDetail formats the detail modal body for a row.
func (m Model) taskDetail(row *chart.Row) string {
	t := row.Task
	var b strings.Builder
	fmt.Fprintf(&b, "Name:     %s\n", t.Name)
	if t.StartDate != nil {
		fmt.Fprintf(&b, "Start:    %s\n", dateutil.Format(*t.StartDate))
		fmt.Fprintf(&b, "End:      %s\n", dateutil.Format(*t.EndDate()))
	} else {
		b.WriteString("Start:    unscheduled\n")
	}
	fmt.Fprintf(&b, "Duration: %d days\n", t.Duration)
	progress := fmt.Sprintf("%d%%", t.Progress)
	if t.ProgressCalculated {
		progress += " (derived)"
	}
	fmt.Fprintf(&b, "Progress: %s\n", progress)
	fmt.Fprintf(&b, "Priority: %s\n", t.Priority)
	if len(t.Assignees) > 0 {
		fmt.Fprintf(&b, "Assigned: %s\n", strings.Join(t.Assignees, ", "))
	}
	if alert, ok := m.alerts[t.ID]; ok {
		fmt.Fprintf(&b, "\nAlert: %s\n", alert)
	}
	if suggestions := advisor.Suggestions(t); len(suggestions) > 0 {
		b.WriteString("\nSuggestions (press the number to apply):\n")
		for _, s := range suggestions {
			fmt.Fprintf(&b, "  %d. %s\n", s.ID, s.Text)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

const helpText = `j/k, up/down   select task
h/l, left/right  pan the chart
H/L            pan a full page
t              jump to today
space          expand or collapse subtasks
+/-            zoom in or out
enter          task details
n / N          new task / new subtask
r              rename
p              set progress
d              delete
m              move the bar (h/l, enter, esc)
e / E          resize subtask end / start edge
u              undo
g              plan with the LLM
R              review the plan with the LLM
a              show schedule alert
x / X          export SVG / MS Project CSV
c              copy plan JSON
q              quit`

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}
