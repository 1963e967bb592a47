// Package chart implements the Gantt chart projection engine: the visible
// date window, date-to-pixel mapping, bar layout, connector geometry and
// the drag/resize interaction sessions.
//
// All horizontal measures are in abstract pixels; the terminal front end
// maps pixels to cells at a fixed ratio so the math here stays independent
// of the renderer.
package chart

import "errors"

// Session errors.
var (
	ErrSessionDone = errors.New("session already ended")
)

// Zoom selects the granularity of the time axis.
type Zoom string

const (
	ZoomDay   Zoom = "day"
	ZoomWeek  Zoom = "week"
	ZoomMonth Zoom = "month"
)

// Valid returns true if the zoom is a known value.
func (z Zoom) Valid() bool {
	switch z {
	case ZoomDay, ZoomWeek, ZoomMonth:
		return true
	default:
		return false
	}
}

// In returns the next finer zoom, or day when already there.
func (z Zoom) In() Zoom {
	switch z {
	case ZoomMonth:
		return ZoomWeek
	default:
		return ZoomDay
	}
}

// Out returns the next coarser zoom, or month when already there.
func (z Zoom) Out() Zoom {
	switch z {
	case ZoomDay:
		return ZoomWeek
	default:
		return ZoomMonth
	}
}

// Per-zoom unit widths (pixels per day) and minimum window sizes (days).
// The minimums keep short projects from collapsing into a sliver of axis.
const (
	dayUnitWidth   = 48
	weekUnitWidth  = 24
	monthUnitWidth = 12

	dayMinDays   = 31
	weekMinDays  = 84
	monthMinDays = 180
)

// Scale maps calendar days onto horizontal pixels for one zoom level.
type Scale struct {
	Zoom        Zoom
	UnitWidthPx int // pixels per day
	TotalDays   int // days covered by the axis, after applying the floor
}

// NewScale builds the scale for a zoom level and the number of days the
// window needs to show. Unknown zoom values fall back to week.
func NewScale(zoom Zoom, daysNeeded int) Scale {
	unitWidth := weekUnitWidth
	minDays := weekMinDays
	switch zoom {
	case ZoomDay:
		unitWidth = dayUnitWidth
		minDays = dayMinDays
	case ZoomMonth:
		unitWidth = monthUnitWidth
		minDays = monthMinDays
	}

	totalDays := daysNeeded
	if totalDays < minDays {
		totalDays = minDays
	}

	return Scale{
		Zoom:        zoom,
		UnitWidthPx: unitWidth,
		TotalDays:   totalDays,
	}
}

// WidthPx returns the total pixel width of the axis.
func (s Scale) WidthPx() int {
	return s.TotalDays * s.UnitWidthPx
}
