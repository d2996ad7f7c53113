package main

import (
	"context"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/msgfall/api"
	"github.com/milk9111/msgfall/common"
	"github.com/milk9111/msgfall/config"
	"github.com/milk9111/msgfall/ecs"
	"github.com/milk9111/msgfall/ecs/component"
	"github.com/milk9111/msgfall/ecs/entity"
	"github.com/milk9111/msgfall/ecs/system"
	"github.com/milk9111/msgfall/feed"
	"github.com/milk9111/msgfall/geom"
	"github.com/milk9111/msgfall/ingest"
	"github.com/milk9111/msgfall/physics"
)

// Game wires the simulation, the feed and the form together.
//
// Ebiten calls Update and Draw on a single goroutine, and that goroutine is
// the only one that touches the world, the Seen-set or the physics space.
// The feed and the config watcher run elsewhere and hand their results over
// channels that Update drains.
type Game struct {
	cfg *config.Config

	world     *ecs.World
	space     *physics.Space
	ingest    *ingest.Service
	feed      *feed.Feed
	scheduler *ecs.Scheduler

	physicsDebug *system.PhysicsDebugSystem
	blocks       *system.BlockRenderSystem
	form         *SubmitForm
	watcher      *config.Watcher

	ctx    context.Context
	cancel context.CancelFunc

	background color.Color
}

// GameOptions holds the start-up settings that do not come from the config
// file.
type GameOptions struct {
	Width, Height int
	Debug         bool
	Paste         bool
	Watcher       *config.Watcher
}

func NewGame(cfg *config.Config, opts GameOptions) (*Game, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = common.BaseWidth, common.BaseHeight
	}
	viewport := geom.Rect{
		Width:  float64(opts.Width),
		Height: float64(max(opts.Height-common.FormHeight, 1)),
	}

	world := ecs.NewWorld()
	space := physics.NewSpace(physics.Config{
		Gravity:       cfg.Gravity,
		DragStiffness: cfg.DragStiffness,
	}, viewport)
	if _, err := entity.NewBoundaries(world, space); err != nil {
		return nil, fmt.Errorf("game: register boundaries: %w", err)
	}

	ingestSvc := ingest.NewService(world, space, ingest.Options{
		Viewport: viewport,
		MaxWidth: cfg.MaxBlockWidth,
		Height:   cfg.BlockHeight,
		Material: physics.Material{
			Density:    cfg.Density,
			Elasticity: cfg.Elasticity,
			Friction:   cfg.Friction,
		},
	})

	client := api.NewClient(cfg.APIURL, cfg.RequestTimeout)
	f := feed.New(client, cfg.PollInterval)

	blocks, err := system.NewBlockRenderSystem(cfg.CornerRadius, cfg.FontSize)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	g := &Game{
		cfg:          cfg,
		world:        world,
		space:        space,
		ingest:       ingestSvc,
		feed:         f,
		physicsDebug: system.NewPhysicsDebugSystem(space, opts.Debug),
		blocks:       blocks,
		watcher:      opts.Watcher,
		ctx:          ctx,
		cancel:       cancel,
		background:   cfg.BackgroundColor(),
	}
	g.form = NewSubmitForm(blocks.Face(), opts.Paste, func(raw string) bool {
		return g.feed.Submit(g.ctx, raw)
	})

	g.scheduler = ecs.NewScheduler(
		system.NewFeedSystem(f, ingestSvc),
		system.NewDragSystem(space, viewport),
		system.NewPhysicsSystem(space),
	)

	f.Start(ctx)
	log.Printf("Game: polling %s every %s", cfg.APIURL, cfg.PollInterval)
	return g, nil
}

func (g *Game) Update() error {
	g.applyConfigChanges()

	g.form.Update()
	g.scheduler.Update(g.world)

	for _, evt := range g.world.Events().Drain() {
		switch evt.Type {
		case ecs.EventBlockSpawned:
			g.logSpawn(evt)
		case ecs.EventMessageSubmitted:
			g.form.Clear()
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.background)
	g.physicsDebug.Draw(g.world, screen)
	g.blocks.Draw(g.world, screen)
	g.form.Draw(screen)
}

// LayoutF keeps a 1:1 mapping between window and world pixels. Resizing
// changes only the drawing surface; the boundaries keep their start-up
// geometry.
func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return outsideWidth, outsideHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// Close stops the feed and the config watcher.
func (g *Game) Close() {
	g.cancel()
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("Config: close watcher: %v", err)
		}
	}
}

func (g *Game) logSpawn(evt ecs.Event) {
	e, ok := evt.Data.(ecs.Entity)
	if !ok {
		return
	}
	block, ok := ecs.Get(g.world, e, component.MessageBlockComponent.Kind())
	if !ok {
		return
	}
	log.Printf("Game: spawned %v %q (%.0fx%.0f)", e, block.ID, block.Width, block.Height)
}

// applyConfigChanges applies hot-reloaded settings. Only gravity and the
// poll interval change at runtime; everything else needs a restart.
func (g *Game) applyConfigChanges() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case cfg := <-g.watcher.Configs:
			if cfg.Gravity != g.cfg.Gravity {
				g.space.SetGravity(cfg.Gravity)
				log.Printf("Config: gravity %.0f -> %.0f", g.cfg.Gravity, cfg.Gravity)
			}
			if cfg.PollInterval != g.cfg.PollInterval {
				g.feed.SetInterval(cfg.PollInterval)
			}
			g.cfg.Gravity = cfg.Gravity
			g.cfg.PollInterval = cfg.PollInterval
		case err := <-g.watcher.Errors:
			log.Printf("Config: reload failed, keeping current settings: %v", err)
		default:
			return
		}
	}
}
