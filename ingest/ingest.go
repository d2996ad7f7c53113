// Package ingest turns message records into falling blocks.
package ingest

import (
	"image/color"
	"log"
	"math/rand/v2"
	"time"
	"unicode/utf16"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/milk9111/msgfall/api"
	"github.com/milk9111/msgfall/ecs"
	"github.com/milk9111/msgfall/ecs/component"
	"github.com/milk9111/msgfall/ecs/entity"
	"github.com/milk9111/msgfall/geom"
	"github.com/milk9111/msgfall/physics"
)

const (
	DefaultMaxWidth = 300.0
	DefaultHeight   = 50.0

	widthPadding = 20.0
	widthPerUnit = 8.0

	blockSaturation = 0.7
	blockLightness  = 0.5
)

// Options configures a Service. Zero sizes fall back to the defaults.
type Options struct {
	// Viewport is the area new blocks spawn across. Blocks start at its top.
	Viewport geom.Rect
	MaxWidth float64
	Height   float64
	Material physics.Material
	// Rand drives spawn position and hue. Nil seeds from the clock.
	Rand *rand.Rand
}

// Service owns the Seen-set and creates one block per unseen message.
//
// A Service is not safe for concurrent use. The game calls it only from the
// Ebiten update goroutine; network goroutines hand their results over a
// channel instead of calling in here.
type Service struct {
	world  *ecs.World
	engine physics.Engine
	seen   map[string]struct{}

	viewport geom.Rect
	maxWidth float64
	height   float64
	material physics.Material
	rng      *rand.Rand
}

// NewService creates the ingestion service for one session.
func NewService(w *ecs.World, engine physics.Engine, opts Options) *Service {
	if opts.MaxWidth <= 0 {
		opts.MaxWidth = DefaultMaxWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	if opts.Rand == nil {
		seed := uint64(time.Now().UnixNano())
		opts.Rand = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return &Service{
		world:    w,
		engine:   engine,
		seen:     make(map[string]struct{}),
		viewport: opts.Viewport,
		maxWidth: opts.MaxWidth,
		height:   opts.Height,
		material: opts.Material,
		rng:      opts.Rand,
	}
}

// BlockSize returns the block size for text: 20px of padding plus 8px per
// UTF-16 code unit, capped at maxWidth. Characters outside the BMP count
// twice, the same as a JavaScript string length, so blocks get the width
// other clients give them. It is a heuristic, not a text measurement.
func BlockSize(text string, maxWidth, height float64) (float64, float64) {
	w := widthPadding + widthPerUnit*float64(utf16Len(text))
	return min(maxWidth, w), height
}

func utf16Len(text string) int {
	n := 0
	for _, r := range text {
		n += utf16.RuneLen(r)
	}
	return n
}

// Ingest creates a block for text unless id is already in the Seen-set.
// An empty id marks an anonymous message: it always spawns and is never
// recorded. It returns the new entity and whether a block was created.
func (s *Service) Ingest(text, id string) (ecs.Entity, bool) {
	if id != "" {
		if _, ok := s.seen[id]; ok {
			return 0, false
		}
	}

	w, h := BlockSize(text, s.maxWidth, s.height)
	x := s.spawnX(w)
	y := s.viewport.Y

	body := s.engine.CreateBody(physics.Box{X: x, Y: y, Width: w, Height: h}, s.material)
	e, err := entity.NewMessageBlock(s.world, body, component.MessageBlock{
		ID:     id,
		Text:   text,
		Width:  w,
		Height: h,
		Color:  s.randomColor(),
	})
	if err != nil {
		// Only reachable with a nil body from a broken engine.
		log.Printf("Ingest: create block for %q: %v", id, err)
		return 0, false
	}

	if id != "" {
		s.seen[id] = struct{}{}
	}
	s.world.Events().Push(ecs.Event{Type: ecs.EventBlockSpawned, Data: e})
	return e, true
}

// IngestAll ingests every message in msgs and returns how many blocks were
// created.
func (s *Service) IngestAll(msgs []api.Message) int {
	created := 0
	for _, m := range msgs {
		if _, ok := s.Ingest(m.Text, m.ID); ok {
			created++
		}
	}
	return created
}

// HasSeen reports whether a block already exists for id.
func (s *Service) HasSeen(id string) bool {
	_, ok := s.seen[id]
	return ok
}

// Seen returns the size of the Seen-set.
func (s *Service) Seen() int {
	return len(s.seen)
}

// spawnX picks a uniform x so the whole block starts inside the viewport.
func (s *Service) spawnX(width float64) float64 {
	span := s.viewport.Width - width
	if span <= 0 {
		return s.viewport.X + s.viewport.Width/2
	}
	return s.viewport.X + s.rng.Float64()*span + width/2
}

func (s *Service) randomColor() color.NRGBA {
	hue := float64(s.rng.IntN(360))
	r, g, b := colorful.Hsl(hue, blockSaturation, blockLightness).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}
