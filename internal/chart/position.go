package chart

import (
	"time"

	"github.com/mvillagra/gantterm/internal/dateutil"
	"github.com/mvillagra/gantterm/internal/task"
)

// Bars scheduled this many days beyond the window edges are skipped
// entirely; a generous buffer keeps partially visible bars rendered.
const cullBufferDays = 30

// BarRect is the horizontal placement of one task bar.
type BarRect struct {
	LeftPx  int
	WidthPx int
}

// Project places a task bar on the axis. Bars starting before the window
// clamp to its left edge; duration is floored at one day so a bar is
// never invisible. Unscheduled tasks resolve their start to the window
// start for display.
func Project(t *task.Task, w Window, s Scale) BarRect {
	start := w.Start
	if t.StartDate != nil {
		start = *t.StartDate
	}

	days := dateutil.DaysBetween(w.Start, start)
	if days < 0 {
		days = 0
	}

	duration := t.Duration
	if duration < 1 {
		duration = 1
	}

	return BarRect{
		LeftPx:  days * s.UnitWidthPx,
		WidthPx: duration * s.UnitWidthPx,
	}
}

// Visible reports whether the task bar is worth rendering: scheduled
// anywhere inside the window extended by the cull buffer on both sides.
// Unscheduled tasks are always rendered at the window start.
func Visible(t *task.Task, w Window) bool {
	if t.StartDate == nil {
		return true
	}
	lo := dateutil.AddDays(w.Start, -cullBufferDays)
	hi := dateutil.AddDays(w.End, cullBufferDays)
	end := t.EndDate()
	return !end.Before(lo) && !t.StartDate.After(hi)
}

// DateAtPx maps an axis pixel offset back to the calendar day it falls on.
func DateAtPx(px int, w Window, s Scale) time.Time {
	if s.UnitWidthPx <= 0 {
		return w.Start
	}
	return dateutil.AddDays(w.Start, px/s.UnitWidthPx)
}
