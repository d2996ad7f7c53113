package system

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/msgfall/geom"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// toVectorPath replays p onto an ebiten path, mapping every point through geoM.
func toVectorPath(p geom.Path, geoM ebiten.GeoM) *vector.Path {
	var out vector.Path
	for _, c := range p {
		switch c.Op {
		case geom.OpMoveTo:
			x, y := geoM.Apply(c.X, c.Y)
			out.MoveTo(float32(x), float32(y))
		case geom.OpLineTo:
			x, y := geoM.Apply(c.X, c.Y)
			out.LineTo(float32(x), float32(y))
		case geom.OpQuadTo:
			cx, cy := geoM.Apply(c.CX, c.CY)
			x, y := geoM.Apply(c.X, c.Y)
			out.QuadTo(float32(cx), float32(cy), float32(x), float32(y))
		case geom.OpClose:
			out.Close()
		}
	}
	return &out
}

func fillPath(dst *ebiten.Image, path *vector.Path, clr color.Color) {
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	drawPathTriangles(dst, vs, is, clr)
}

func strokePath(dst *ebiten.Image, path *vector.Path, width float32, clr color.Color) {
	vs, is := path.AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{
		Width:    width,
		LineJoin: vector.LineJoinRound,
	})
	drawPathTriangles(dst, vs, is, clr)
}

func drawPathTriangles(dst *ebiten.Image, vs []ebiten.Vertex, is []uint16, clr color.Color) {
	if len(is) == 0 {
		return
	}
	// RGBA returns alpha-premultiplied values, which is what vertices expect.
	r, g, b, a := clr.RGBA()
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = float32(r) / 0xffff
		vs[i].ColorG = float32(g) / 0xffff
		vs[i].ColorB = float32(b) / 0xffff
		vs[i].ColorA = float32(a) / 0xffff
	}
	op := &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
		FillRule:  ebiten.FillRuleFillAll,
	}
	dst.DrawTriangles(vs, is, whiteSubImage, op)
}
