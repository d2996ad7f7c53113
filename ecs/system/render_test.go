package system

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

func TestBlockRenderFaceSize(t *testing.T) {
	cases := []struct {
		name     string
		fontSize float64
		want     float64
	}{
		{"configured", 24, 24},
		{"zero_uses_default", 0, DefaultFontSize},
		{"negative_uses_default", -3, DefaultFontSize},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := NewBlockRenderSystem(DefaultCornerRadius, c.fontSize)
			if err != nil {
				t.Fatalf("NewBlockRenderSystem: %v", err)
			}
			face, ok := r.Face().(*text.GoTextFace)
			if !ok {
				t.Fatalf("unexpected face type %T", r.Face())
			}
			if face.Size != c.want {
				t.Fatalf("face size = %v, want %v", face.Size, c.want)
			}
		})
	}
}
