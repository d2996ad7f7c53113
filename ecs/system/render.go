package system

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/msgfall/ecs"
	"github.com/milk9111/msgfall/ecs/component"
	"github.com/milk9111/msgfall/geom"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	DefaultCornerRadius = 10.0
	DefaultFontSize     = 16.0
)

var (
	blockOutline = color.Black
	blockText    = color.White
)

// BlockRenderSystem draws every message block as a rounded rectangle in its
// own color with the message centered on it in white. It runs after the
// engine pass and only reads the world.
type BlockRenderSystem struct {
	face         text.Face
	cornerRadius float64
}

func NewBlockRenderSystem(cornerRadius, fontSize float64) (*BlockRenderSystem, error) {
	if cornerRadius < 0 {
		cornerRadius = DefaultCornerRadius
	}
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}

	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("render: load font: %w", err)
	}

	return &BlockRenderSystem{
		face:         &text.GoTextFace{Source: src, Size: fontSize},
		cornerRadius: cornerRadius,
	}, nil
}

// Face returns the font face blocks are labelled with, so other text on
// screen can share one size.
func (r *BlockRenderSystem) Face() text.Face {
	return r.face
}

func (r *BlockRenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	ecs.ForEach2(w, component.MessageBlockComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, block *component.MessageBlock, t *component.Transform) {
		var local ebiten.GeoM
		local.Rotate(t.Rotation)
		local.Translate(t.X, t.Y)

		shape := geom.RoundRect(-block.Width/2, -block.Height/2, block.Width, block.Height, r.cornerRadius)
		path := toVectorPath(shape, local)
		fillPath(screen, path, block.Color)
		strokePath(screen, path, 1, blockOutline)

		op := &text.DrawOptions{}
		op.GeoM = local
		op.ColorScale.ScaleWithColor(blockText)
		op.PrimaryAlign = text.AlignCenter
		op.SecondaryAlign = text.AlignCenter
		text.Draw(screen, block.Text, r.face, op)
	})
}
