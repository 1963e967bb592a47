package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mvillagra/gantterm/internal/chart"
	"github.com/mvillagra/gantterm/internal/task"
)

// SVG rendering defaults.
const (
	svgBarRadius    = 4
	svgLabelOffset  = 6
	svgFont         = "12px sans-serif"
	svgBarColor     = "#3b82f6"
	svgSubColor     = "#60a5fa"
	svgLineColor    = "#94a3b8"
	svgLateColor    = "#ef4444"
	svgProgressTint = "rgba(255,255,255,0.35)"
	svgBottomPad    = 40
)

// WriteSVG renders a static snapshot of the chart: every bar at its
// projected position, progress fills, and the dependency connectors.
// All parents are drawn expanded so the snapshot shows the whole plan.
func WriteSVG(w io.Writer, tr task.Tree, now time.Time, zoom chart.Zoom) error {
	window := chart.CalculateWindow(tr, now)
	scale := chart.NewScale(zoom, window.Days())

	expanded := make(map[string]bool, len(tr.Tasks))
	for _, t := range tr.Tasks {
		expanded[t.ID] = true
	}
	rows := chart.Layout(tr, window, scale, expanded, now)

	height := chart.ChartTopPx + svgBottomPad
	for _, r := range rows {
		if bottom := r.TopPx + r.Height; bottom+svgBottomPad > height {
			height = bottom + svgBottomPad
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		scale.WidthPx(), height, scale.WidthPx(), height)

	for _, c := range chart.Connectors(rows) {
		fmt.Fprintf(&b, `  <path d="%s" fill="none" stroke="%s" stroke-width="1.5"/>`+"\n",
			c.Path.SVG(), svgLineColor)
		fmt.Fprintf(&b, `  <circle cx="%g" cy="%g" r="%d" fill="%s"/>`+"\n",
			c.Path.End.X, c.Path.End.Y, c.EndDotRadius, svgLineColor)
	}

	for _, r := range rows {
		if r.Culled {
			continue
		}
		color := r.Task.Color
		if color == "" {
			if r.Parent != nil {
				color = svgSubColor
			} else {
				color = svgBarColor
			}
		}
		if r.Late {
			color = svgLateColor
		}
		fmt.Fprintf(&b, `  <rect x="%d" y="%d" width="%d" height="%d" rx="%d" fill="%s"/>`+"\n",
			r.Rect.LeftPx, r.TopPx, r.Rect.WidthPx, r.Height, svgBarRadius, color)
		if r.Task.Progress > 0 {
			fill := r.Rect.WidthPx * r.Task.Progress / 100
			fmt.Fprintf(&b, `  <rect x="%d" y="%d" width="%d" height="%d" rx="%d" fill="%s"/>`+"\n",
				r.Rect.LeftPx, r.TopPx, fill, r.Height, svgBarRadius, svgProgressTint)
		}
		fmt.Fprintf(&b, `  <text x="%d" y="%d" style="font:%s" fill="#fff">%s</text>`+"\n",
			r.Rect.LeftPx+svgLabelOffset, r.TopPx+r.Height/2+4, svgFont, escapeXML(r.Task.Name))
	}

	b.WriteString("</svg>\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing svg: %w", err)
	}
	return nil
}

func escapeXML(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return r.Replace(s)
}

// WriteJSON writes the tree as an importable JSON payload.
func WriteJSON(w io.Writer, tr task.Tree) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(task.ToPayload(tr)); err != nil {
		return fmt.Errorf("encoding tasks: %w", err)
	}
	return nil
}
