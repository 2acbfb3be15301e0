package system

import (
	"bytes"
	"image/color"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/coindash/ecs"
	"github.com/milk9111/coindash/ecs/component"
	"golang.org/x/image/font/gofont/goregular"
)

type RenderSystem struct{}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Update(*ecs.World) {}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	camX, camY, zoom := cameraView(w)

	entities := append(
		w.Query(component.TransformComponent.Kind(), component.SpriteComponent.Kind()),
		w.Query(component.TransformComponent.Kind(), component.TextComponent.Kind())...,
	)
	sort.SliceStable(entities, func(i, j int) bool {
		li, lj := renderLayer(w, entities[i]), renderLayer(w, entities[j])
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		screenSpace := ecs.Has(w, e, component.ScreenSpaceComponent.Kind())

		if s, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
			drawSprite(screen, t, s, screenSpace, camX, camY, zoom)
		}
		if txt, ok := ecs.Get(w, e, component.TextComponent.Kind()); ok {
			drawText(screen, t, txt)
		}
	}
}

func renderLayer(w *ecs.World, e ecs.Entity) int {
	if layer, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
		return layer.Index
	}
	return 0
}

func drawSprite(screen *ebiten.Image, t *component.Transform, s *component.Sprite, screenSpace bool, camX, camY, zoom float64) {
	if s.Image == nil {
		return
	}
	img := s.Image
	if s.UseSource {
		if sub, ok := s.Image.SubImage(s.Source).(*ebiten.Image); ok {
			img = sub
		}
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-s.OriginX, -s.OriginY)
	if s.FacingLeft {
		// mirror around the origin
		op.GeoM.Scale(-1, 1)
	}

	sx, sy := t.ScaleX, t.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	op.GeoM.Scale(sx, sy)
	op.GeoM.Rotate(t.Rotation)

	if screenSpace {
		op.GeoM.Translate(t.X, t.Y)
	} else {
		op.GeoM.Scale(zoom, zoom)
		op.GeoM.Translate((t.X-camX)*zoom, (t.Y-camY)*zoom)
	}
	screen.DrawImage(img, op)
}

var (
	hudFontOnce   sync.Once
	hudFontSource *text.GoTextFaceSource
)

func hudFont() *text.GoTextFaceSource {
	hudFontOnce.Do(func() {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			log.Error("render: load hud font", "err", err)
			return
		}
		hudFontSource = src
	})
	return hudFontSource
}

// Text is always drawn in screen space.
func drawText(screen *ebiten.Image, t *component.Transform, txt *component.Text) {
	src := hudFont()
	if src == nil || txt.Value == "" {
		return
	}
	size := txt.Size
	if size <= 0 {
		size = 16
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(t.X, t.Y)
	var c color.Color = color.White
	if txt.Color != nil {
		c = txt.Color
	}
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, txt.Value, &text.GoTextFace{Source: src, Size: size}, op)
}
