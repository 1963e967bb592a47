package chart

import (
	"fmt"
	"math"
)

// Connector tuning. Rows further apart than the vertical threshold get an
// orthogonal elbow; closer rows get a cubic curve whose pull grows with
// distance inside the clamp range.
const (
	taskElbowThreshold = 50
	taskCurveScale     = 0.15
	taskCurveMin       = 30
	taskCurveMax       = 100
	taskEndDotRadius   = 4

	subtaskElbowThreshold = 20
	subtaskCurveScale     = 0.1
	subtaskCurveMin       = 20
	subtaskCurveMax       = 50
	subtaskEndDotRadius   = 3
)

// Point is a position on the chart plane.
type Point struct {
	X, Y float64
}

// PathKind discriminates connector geometry.
type PathKind int

const (
	// PathElbow is three straight segments through a vertical midline.
	PathElbow PathKind = iota
	// PathCubic is a single cubic Bezier.
	PathCubic
)

// Path is the geometry of one dependency connector, from the right edge
// of the earlier bar to the left edge of the later one.
type Path struct {
	Kind     PathKind
	Start    Point
	End      Point
	MidX     float64 // elbow only
	Control1 Point   // cubic only
	Control2 Point   // cubic only
}

// Connector links two consecutive sibling bars.
type Connector struct {
	Path         Path
	EndDotRadius int
}

// connect builds the path between two bar anchor points.
func connect(start, end Point, elbowThreshold int, curveScale, curveMin, curveMax float64) Path {
	dx := end.X - start.X
	dy := end.Y - start.Y

	if math.Abs(dy) > float64(elbowThreshold) {
		return Path{
			Kind:  PathElbow,
			Start: start,
			End:   end,
			MidX:  start.X + dx*0.5,
		}
	}

	dist := math.Hypot(dx, dy)
	pull := math.Min(math.Max(dist*curveScale, curveMin), curveMax)
	return Path{
		Kind:     PathCubic,
		Start:    start,
		End:      end,
		Control1: Point{X: start.X + pull, Y: start.Y},
		Control2: Point{X: end.X - pull, Y: end.Y},
	}
}

// Connectors derives the dependency connectors for a laid-out chart:
// one per consecutive pair of top-level tasks, and one per consecutive
// pair of subtasks under each expanded parent. Each path leaves the
// middle of the earlier bar's right edge and lands on the middle of the
// later bar's left edge.
func Connectors(rows []Row) []Connector {
	var out []Connector
	var prevTask, prevSub *Row

	for i := range rows {
		row := &rows[i]
		if row.Parent == nil {
			if prevTask != nil {
				start := Point{
					X: float64(prevTask.Rect.LeftPx + prevTask.Rect.WidthPx),
					Y: float64(prevTask.TopPx) + TaskBarHeight/2,
				}
				end := Point{
					X: float64(row.Rect.LeftPx),
					Y: float64(row.TopPx) + TaskBarHeight/2,
				}
				out = append(out, Connector{
					Path:         connect(start, end, taskElbowThreshold, taskCurveScale, taskCurveMin, taskCurveMax),
					EndDotRadius: taskEndDotRadius,
				})
			}
			prevTask = row
			prevSub = nil
			continue
		}

		if prevSub != nil && prevSub.Parent == row.Parent {
			start := Point{
				X: float64(prevSub.Rect.LeftPx + prevSub.Rect.WidthPx),
				Y: float64(prevSub.TopPx) + SubtaskBarHeight/2,
			}
			end := Point{
				X: float64(row.Rect.LeftPx),
				Y: float64(row.TopPx) + SubtaskBarHeight/2,
			}
			out = append(out, Connector{
				Path:         connect(start, end, subtaskElbowThreshold, subtaskCurveScale, subtaskCurveMin, subtaskCurveMax),
				EndDotRadius: subtaskEndDotRadius,
			})
		}
		prevSub = row
	}
	return out
}

// SVG renders the path as SVG path data.
func (p Path) SVG() string {
	switch p.Kind {
	case PathElbow:
		return fmt.Sprintf("M %g %g L %g %g L %g %g L %g %g",
			p.Start.X, p.Start.Y, p.MidX, p.Start.Y, p.MidX, p.End.Y, p.End.X, p.End.Y)
	default:
		return fmt.Sprintf("M %g %g C %g %g, %g %g, %g %g",
			p.Start.X, p.Start.Y, p.Control1.X, p.Control1.Y, p.Control2.X, p.Control2.Y, p.End.X, p.End.Y)
	}
}
