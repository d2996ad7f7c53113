package ingest

import (
	"math"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/milk9111/msgfall/api"
	"github.com/milk9111/msgfall/ecs"
	"github.com/milk9111/msgfall/ecs/component"
	"github.com/milk9111/msgfall/geom"
	"github.com/milk9111/msgfall/physics"
)

var testViewport = geom.Rect{Width: 800, Height: 600}

type fakeBody struct {
	box  physics.Box
	data any
}

func (b *fakeBody) Position() (float64, float64) { return b.box.X, b.box.Y }
func (b *fakeBody) Angle() float64 { return 0 }
func (b *fakeBody) Static() bool { return false }
func (b *fakeBody) UserData() any { return b.data }
func (b *fakeBody) SetUserData(v any) { b.data = v }

type fakeEngine struct {
	bodies    []physics.Body
	materials []physics.Material
}

func (f *fakeEngine) CreateBody(shape physics.Box, material physics.Material) physics.Body {
	b := &fakeBody{box: shape}
	f.bodies = append(f.bodies, b)
	f.materials = append(f.materials, material)
	return b
}
func (f *fakeEngine) Step(float64) {}
func (f *fakeEngine) Bodies() []physics.Body { return f.bodies }
func (f *fakeEngine) OnAfterStep(func()) {}

func newTestService(engine physics.Engine) (*Service, *ecs.World) {
	w := ecs.NewWorld()
	svc := NewService(w, engine, Options{
		Viewport: testViewport,
		Material: physics.Material{Elasticity: 0.8, Friction: 0.5},
		Rand:     rand.New(rand.NewPCG(1, 2)),
	})
	return svc, w
}

func TestBlockSize(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		wantW float64
	}{
		{"empty", "", 20},
		{"short", "hi", 36},
		{"exactly_cap", strings.Repeat("x", 35), 300},
		{"over_cap", strings.Repeat("x", 100), 300},
		{"counts_runes_not_bytes", "héllo", 60},
		{"astral_counts_two_units", "😀", 36},
		{"mixed_astral", "ok 👍", 60},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, h := BlockSize(c.text, DefaultMaxWidth, DefaultHeight)
			if w != c.wantW || h != 50 {
				t.Fatalf("BlockSize(%q) = %vx%v, want %vx50", c.text, w, h, c.wantW)
			}
			if want := math.Min(300, 20+8*float64(len([]rune(c.text)))); w != want {
				t.Fatalf("width %v does not match min(300, 20+8n) = %v", w, want)
			}
		})
	}
}

func TestIngestSameIDOnce(t *testing.T) {
	engine := &fakeEngine{}
	svc, w := newTestService(engine)

	if _, ok := svc.Ingest("hello", "a"); !ok {
		t.Fatalf("first ingest should create a block")
	}
	if _, ok := svc.Ingest("hello again", "a"); ok {
		t.Fatalf("second ingest of the same id should be a no-op")
	}
	if len(engine.bodies) != 1 {
		t.Fatalf("expected 1 body, got %d", len(engine.bodies))
	}
	if ecs.Count(w, component.MessageBlockComponent.Kind()) != 1 {
		t.Fatalf("expected 1 message entity")
	}
	if !svc.HasSeen("a") || svc.Seen() != 1 {
		t.Fatalf("expected id a to be seen")
	}
}

func TestIngestAnonymousNeverTouchesSeenSet(t *testing.T) {
	engine := &fakeEngine{}
	svc, _ := newTestService(engine)

	svc.Ingest("first", "")
	svc.Ingest("first", "")

	if len(engine.bodies) != 2 {
		t.Fatalf("anonymous messages should always spawn, got %d bodies", len(engine.bodies))
	}
	if svc.Seen() != 0 || svc.HasSeen("") {
		t.Fatalf("anonymous ingest must not record an id")
	}
}

func TestRepeatPollAddsNothing(t *testing.T) {
	engine := &fakeEngine{}
	svc, _ := newTestService(engine)
	remote := []api.Message{{ID: "a", Text: "hi"}, {ID: "b", Text: "yo"}}

	if got := svc.IngestAll(remote); got != 2 {
		t.Fatalf("first poll created %d blocks, want 2", got)
	}
	if got := svc.IngestAll(remote); got != 0 {
		t.Fatalf("second poll created %d blocks, want 0", got)
	}
	if len(engine.bodies) != 2 {
		t.Fatalf("expected exactly 2 bodies, got %d", len(engine.bodies))
	}
}

func TestIngestPlacementAndMaterial(t *testing.T) {
	engine := &fakeEngine{}
	svc, w := newTestService(engine)

	for i := 0; i < 200; i++ {
		e, ok := svc.Ingest(strings.Repeat("m", i%50), "")
		if !ok {
			t.Fatalf("ingest %d failed", i)
		}
		block, ok := ecs.Get(w, e, component.MessageBlockComponent.Kind())
		if !ok {
			t.Fatalf("entity %v has no message block", e)
		}
		body := engine.bodies[i].(*fakeBody)
		if body.box.Y != 0 {
			t.Fatalf("block %d spawned at y=%v, want 0", i, body.box.Y)
		}
		if body.box.X-block.Width/2 < 0 || body.box.X+block.Width/2 > testViewport.Width {
			t.Fatalf("block %d at x=%v width=%v leaves the viewport", i, body.box.X, block.Width)
		}
		if body.UserData() != e {
			t.Fatalf("body user data = %v, want %v", body.UserData(), e)
		}
		if m := engine.materials[i]; m.Elasticity != 0.8 || m.Friction != 0.5 {
			t.Fatalf("unexpected material %+v", m)
		}
	}
}

func TestBlockColorIsFixedHSL(t *testing.T) {
	space := physics.NewSpace(physics.Config{Gravity: 1000}, testViewport)
	svc, w := newTestService(space)

	e, ok := svc.Ingest("colorful", "c")
	if !ok {
		t.Fatalf("ingest failed")
	}
	block, _ := ecs.Get(w, e, component.MessageBlockComponent.Kind())
	before := block.Color

	_, s, l := colorful.Color{R: float64(before.R) / 255, G: float64(before.G) / 255, B: float64(before.B) / 255}.Hsl()
	if math.Abs(s-0.7) > 0.02 || math.Abs(l-0.5) > 0.02 {
		t.Fatalf("color %v has s=%.3f l=%.3f, want 0.7/0.5", before, s, l)
	}

	for i := 0; i < 120; i++ {
		space.Step(1.0 / 60.0)
	}
	svc.Ingest("another", "d")

	block, _ = ecs.Get(w, e, component.MessageBlockComponent.Kind())
	if block.Color != before {
		t.Fatalf("color changed from %v to %v", before, block.Color)
	}
}

func TestIngestPushesSpawnEvent(t *testing.T) {
	svc, w := newTestService(&fakeEngine{})
	e, _ := svc.Ingest("event", "e")

	evts := w.Events().Drain()
	if len(evts) != 1 || evts[0].Type != ecs.EventBlockSpawned || evts[0].Data != e {
		t.Fatalf("unexpected events %v", evts)
	}
}

func TestSpawnXNarrowViewport(t *testing.T) {
	engine := &fakeEngine{}
	w := ecs.NewWorld()
	svc := NewService(w, engine, Options{Viewport: geom.Rect{Width: 100, Height: 100}})

	svc.Ingest(strings.Repeat("x", 40), "")
	if x := engine.bodies[0].(*fakeBody).box.X; x != 50 {
		t.Fatalf("expected centered spawn in a narrow viewport, got x=%v", x)
	}
}
