package physics

import (
	"testing"

	"github.com/jakecoffman/cp"
)

type recordingCanvas struct {
	fills   []cp.FColor
	strokes int
}

func (c *recordingCanvas) StrokeLine(a, b cp.Vector, clr cp.FColor) {
	c.strokes++
}

func (c *recordingCanvas) FillPolygon(verts []cp.Vector, clr cp.FColor) {
	c.fills = append(c.fills, clr)
}

func TestDrawDebugHidesBlockBoxes(t *testing.T) {
	cases := []struct {
		name        string
		verbose     bool
		grab        bool
		wantFills   int
		wantStrokes int
	}{
		// three boundaries, four edges each
		{"quiet", false, false, 3, 12},
		{"quiet_while_dragging", false, true, 3, 12},
		{"verbose", true, false, 4, 16},
		// the pivot joint adds two anchor dots of two strokes each
		{"verbose_while_dragging", true, true, 4, 20},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := newTestSpace()
			s.CreateBody(Box{X: 400, Y: 300, Width: 100, Height: 50}, Material{})
			if c.grab && !s.Grab(400, 300) {
				t.Fatalf("expected grab to succeed")
			}

			canvas := &recordingCanvas{}
			s.DrawDebug(canvas, c.verbose)

			if len(canvas.fills) != c.wantFills {
				t.Fatalf("fills = %d, want %d", len(canvas.fills), c.wantFills)
			}
			if canvas.strokes != c.wantStrokes {
				t.Fatalf("strokes = %d, want %d", canvas.strokes, c.wantStrokes)
			}
			for i, fill := range canvas.fills {
				if fill.A == 0 {
					t.Fatalf("fill %d is transparent", i)
				}
			}
		})
	}
}

func TestDebugDrawerShapeColor(t *testing.T) {
	s := newTestSpace()
	b := s.CreateBody(Box{X: 400, Y: 300, Width: 100, Height: 50}, Material{}).(*body)
	ground := s.bodies[0]

	cases := []struct {
		name    string
		shape   *cp.Shape
		verbose bool
		wantA   float32
	}{
		{"static_quiet", ground.shape, false, 1},
		{"static_verbose", ground.shape, true, 1},
		{"block_quiet", b.shape, false, 0},
		{"block_verbose", b.shape, true, 0.5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d := &DebugDrawer{Canvas: &recordingCanvas{}, Verbose: c.verbose}
			if got := d.ShapeColor(c.shape, nil).A; got != c.wantA {
				t.Fatalf("alpha = %v, want %v", got, c.wantA)
			}
		})
	}
}
