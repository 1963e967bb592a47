// Package tui provides the terminal user interface for gantterm.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mvillagra/gantterm/internal/tui/theme"
)

// Width of the task name column on the left of the chart.
const nameColWidth = 24

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	// Title and chrome
	TitleStyle  lipgloss.Style
	HeaderStyle lipgloss.Style
	AxisStyle   lipgloss.Style
	TodayStyle  lipgloss.Style

	// Name column
	NameStyle         lipgloss.Style
	NameSelectedStyle lipgloss.Style
	NameMutedStyle    lipgloss.Style

	// Bars
	BarStyle         lipgloss.Style
	BarProgressStyle lipgloss.Style
	SubtaskStyle     lipgloss.Style
	SubProgressStyle lipgloss.Style
	LateBarStyle     lipgloss.Style
	BarSelectedStyle lipgloss.Style
	BarDraggingStyle lipgloss.Style
	ConnectorStyle   lipgloss.Style
	WeekendStyle     lipgloss.Style
	EmptyCellStyle   lipgloss.Style

	// Prompt box
	PromptStyle        lipgloss.Style
	PromptFocusedStyle lipgloss.Style

	// Status bar
	StatusStyle  lipgloss.Style
	WarningStyle lipgloss.Style
	HelpStyle    lipgloss.Style

	// Modal
	ModalStyle      lipgloss.Style
	ModalTitleStyle lipgloss.Style
	ModalBodyStyle  lipgloss.Style
	ModalHintStyle  lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)

	s := &Styles{palette: p}

	s.TitleStyle = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true)

	s.HeaderStyle = lipgloss.NewStyle().
		Foreground(p.Fg).
		Background(p.BgHighlight)

	s.AxisStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted)

	s.TodayStyle = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true)

	s.NameStyle = lipgloss.NewStyle().
		Foreground(p.Fg).
		Width(nameColWidth)

	s.NameSelectedStyle = lipgloss.NewStyle().
		Foreground(p.Fg).
		Background(p.BgSelection).
		Bold(true).
		Width(nameColWidth)

	s.NameMutedStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted).
		Width(nameColWidth)

	s.BarStyle = lipgloss.NewStyle().
		Foreground(p.TextOnBar).
		Background(p.BarBg)

	s.BarProgressStyle = lipgloss.NewStyle().
		Foreground(p.Bg).
		Background(p.BarProgress)

	s.SubtaskStyle = lipgloss.NewStyle().
		Foreground(p.TextOnBar).
		Background(p.SubtaskBg)

	s.SubProgressStyle = lipgloss.NewStyle().
		Foreground(p.Bg).
		Background(p.SubProgress)

	s.LateBarStyle = lipgloss.NewStyle().
		Foreground(p.TextOnLate).
		Background(p.LateBg)

	s.BarSelectedStyle = lipgloss.NewStyle().
		Foreground(p.Bg).
		Background(p.Accent).
		Bold(true)

	s.BarDraggingStyle = lipgloss.NewStyle().
		Foreground(p.TextOnWarning).
		Background(p.Warning).
		Bold(true)

	s.ConnectorStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted)

	s.WeekendStyle = lipgloss.NewStyle().
		Background(p.Weekend)

	s.EmptyCellStyle = lipgloss.NewStyle()

	s.PromptStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.FgMuted).
		Padding(0, 1)

	s.PromptFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Accent).
		Padding(0, 1)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted)

	s.WarningStyle = lipgloss.NewStyle().
		Foreground(p.Warning).
		Bold(true)

	s.HelpStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted)

	s.ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Accent).
		Padding(1, 2)

	s.ModalTitleStyle = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true)

	s.ModalBodyStyle = lipgloss.NewStyle().
		Foreground(p.Fg)

	s.ModalHintStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted)

	return s
}

// Palette exposes the derived palette for code that needs raw colors.
func (s *Styles) Palette() *theme.Palette {
	return s.palette
}
