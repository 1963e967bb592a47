package chart

import (
	"math"
	"strings"
	"testing"

	"github.com/mvillagra/gantterm/internal/task"
)

func TestConnect_ElbowWhenFarApart(t *testing.T) {
	start := Point{X: 100, Y: 120}
	end := Point{X: 200, Y: 300}

	p := connect(start, end, taskElbowThreshold, taskCurveScale, taskCurveMin, taskCurveMax)

	if p.Kind != PathElbow {
		t.Fatalf("kind = %v, want elbow", p.Kind)
	}
	if p.MidX != 150 {
		t.Errorf("MidX = %g, want 150", p.MidX)
	}
}

func TestConnect_CubicWhenClose(t *testing.T) {
	start := Point{X: 100, Y: 120}
	end := Point{X: 400, Y: 140} // dy 20, under the task threshold of 50

	p := connect(start, end, taskElbowThreshold, taskCurveScale, taskCurveMin, taskCurveMax)

	if p.Kind != PathCubic {
		t.Fatalf("kind = %v, want cubic", p.Kind)
	}
	dist := math.Hypot(300, 20)
	wantPull := dist * taskCurveScale
	if got := p.Control1.X - start.X; math.Abs(got-wantPull) > 1e-9 {
		t.Errorf("control pull = %g, want %g", got, wantPull)
	}
	if p.Control1.Y != start.Y || p.Control2.Y != end.Y {
		t.Error("control points should stay on their row centerlines")
	}
}

func TestConnect_PullClamps(t *testing.T) {
	// Tiny distance clamps to the minimum pull.
	p := connect(Point{X: 0, Y: 0}, Point{X: 10, Y: 0}, taskElbowThreshold, taskCurveScale, taskCurveMin, taskCurveMax)
	if got := p.Control1.X; got != taskCurveMin {
		t.Errorf("min clamp: pull = %g, want %d", got, taskCurveMin)
	}

	// Huge distance clamps to the maximum.
	p = connect(Point{X: 0, Y: 0}, Point{X: 5000, Y: 0}, taskElbowThreshold, taskCurveScale, taskCurveMin, taskCurveMax)
	if got := p.Control1.X; got != taskCurveMax {
		t.Errorf("max clamp: pull = %g, want %d", got, taskCurveMax)
	}
}

func TestConnectors(t *testing.T) {
	now := date(2025, 1, 15)
	w := Window{Start: date(2025, 1, 1), End: date(2025, 3, 1)}
	s := NewScale(ZoomDay, w.Days())

	tr := task.Tree{Tasks: []*task.Task{
		{ID: "t-1", Name: "First", StartDate: datePtr(2025, 1, 2), Duration: 3, Subtasks: []*task.Task{
			{ID: "s-1", Name: "A", StartDate: datePtr(2025, 1, 2), Duration: 1},
			{ID: "s-2", Name: "B", StartDate: datePtr(2025, 1, 3), Duration: 1},
			{ID: "s-3", Name: "C", StartDate: datePtr(2025, 1, 4), Duration: 1},
		}},
		{ID: "t-2", Name: "Second", StartDate: datePtr(2025, 1, 6), Duration: 2},
		{ID: "t-3", Name: "Third", StartDate: datePtr(2025, 1, 9), Duration: 2},
	}}

	t.Run("collapsed links tasks only", func(t *testing.T) {
		rows := Layout(tr, w, s, nil, now)
		conns := Connectors(rows)
		// Three tasks: two connectors between consecutive pairs.
		if len(conns) != 2 {
			t.Fatalf("got %d connectors, want 2", len(conns))
		}
		for _, c := range conns {
			if c.EndDotRadius != taskEndDotRadius {
				t.Errorf("dot radius = %d, want %d", c.EndDotRadius, taskEndDotRadius)
			}
		}
	})

	t.Run("expanded adds subtask links", func(t *testing.T) {
		rows := Layout(tr, w, s, map[string]bool{"t-1": true}, now)
		conns := Connectors(rows)
		// Two task links plus two subtask links.
		if len(conns) != 4 {
			t.Fatalf("got %d connectors, want 4", len(conns))
		}
	})

	t.Run("anchors on bar edges", func(t *testing.T) {
		rows := Layout(tr, w, s, nil, now)
		conns := Connectors(rows)

		first := rows[0]
		second := rows[1]
		c := conns[0]
		if c.Path.Start.X != float64(first.Rect.LeftPx+first.Rect.WidthPx) {
			t.Errorf("start X = %g, want right edge of first bar", c.Path.Start.X)
		}
		if c.Path.End.X != float64(second.Rect.LeftPx) {
			t.Errorf("end X = %g, want left edge of second bar", c.Path.End.X)
		}
		if c.Path.Start.Y != float64(first.TopPx)+TaskBarHeight/2 {
			t.Errorf("start Y = %g, want bar centerline", c.Path.Start.Y)
		}
	})
}

func TestPathSVG(t *testing.T) {
	elbow := Path{Kind: PathElbow, Start: Point{0, 10}, End: Point{100, 90}, MidX: 50}
	if got := elbow.SVG(); !strings.HasPrefix(got, "M 0 10 L 50 10 L 50 90") {
		t.Errorf("elbow SVG = %q", got)
	}

	cubic := Path{
		Kind:     PathCubic,
		Start:    Point{0, 10},
		End:      Point{100, 20},
		Control1: Point{30, 10},
		Control2: Point{70, 20},
	}
	if got := cubic.SVG(); !strings.Contains(got, "C 30 10, 70 20") {
		t.Errorf("cubic SVG = %q", got)
	}
}
