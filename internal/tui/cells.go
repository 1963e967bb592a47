package tui

import (
	"time"

	"github.com/mvillagra/gantterm/internal/chart"
)

// The chart core works in abstract pixels; the terminal works in cells.
// One cell is 12 horizontal pixels, so the month zoom maps one day to one
// cell, week to two, and day to four.
const pxPerCell = 12

// cellForPx converts a chart x coordinate to a terminal column.
func cellForPx(px int) int {
	if px < 0 {
		return (px - pxPerCell + 1) / pxPerCell
	}
	return px / pxPerCell
}

// pxForCell converts a terminal column to a chart x coordinate, anchored
// at the left edge of the cell.
func pxForCell(cell int) int {
	return cell * pxPerCell
}

// cellsPerDay returns how many columns one calendar day spans.
func cellsPerDay(s chart.Scale) int {
	n := s.UnitWidthPx / pxPerCell
	if n < 1 {
		n = 1
	}
	return n
}

// totalCells returns the column count of the full axis.
func totalCells(s chart.Scale) int {
	return cellForPx(s.WidthPx())
}

// dateAtCell resolves a terminal column back to the day it lands on.
func dateAtCell(cell int, w chart.Window, s chart.Scale) time.Time {
	return chart.DateAtPx(pxForCell(cell), w, s)
}

// cellSpan converts a bar rect to a half-open column range. Bars always
// occupy at least one column so a one-day bar at month zoom stays visible.
func cellSpan(r chart.BarRect) (start, end int) {
	start = cellForPx(r.LeftPx)
	end = cellForPx(r.LeftPx + r.WidthPx)
	if end <= start {
		end = start + 1
	}
	return start, end
}
