package system

import (
	"image/color"
	"sort"

	"cogentcore.org/core/math32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/orbitcore/ecs"
	"github.com/milk9111/orbitcore/ecs/component"
	"golang.org/x/image/colornames"
)

var (
	spaceColor = color.RGBA{R: 4, G: 4, B: 12, A: 255}
	starColor  = color.RGBA{R: 255, G: 255, B: 255, A: 200}
)

type drawItem struct {
	entity ecs.Entity
	depth  float64
}

// RenderSystem draws the starfield, then planets back to front.
type RenderSystem struct {
	face  text.Face
	order []drawItem
}

func NewRenderSystem(face text.Face) *RenderSystem {
	return &RenderSystem{face: face}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	screen.Fill(spaceColor)

	camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return
	}
	cam, _ := ecs.Get(w, camEntity, component.CameraComponent.Kind())
	if cam.Height <= 0 {
		return
	}

	ecs.ForEach2(w, component.StarfieldComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, stars *component.Starfield, t *component.Transform) {
		r.drawStars(screen, cam, stars, t.Rotation)
	})

	r.order = r.order[:0]
	ecs.ForEach2(w, component.PlanetBodyComponent.Kind(), component.ProjectionComponent.Kind(), func(e ecs.Entity, _ *component.PlanetBody, p *component.Projection) {
		if p.Visible {
			r.order = append(r.order, drawItem{entity: e, depth: p.Depth})
		}
	})
	sort.SliceStable(r.order, func(i, j int) bool {
		if r.order[i].depth != r.order[j].depth {
			return r.order[i].depth > r.order[j].depth
		}
		return uint64(r.order[i].entity) < uint64(r.order[j].entity)
	})

	var label *component.PlanetBody
	var labelProj *component.Projection
	for _, item := range r.order {
		body, _ := ecs.Get(w, item.entity, component.PlanetBodyComponent.Kind())
		proj, _ := ecs.Get(w, item.entity, component.ProjectionComponent.Kind())
		hovered := false
		if hover, ok := ecs.Get(w, item.entity, component.HoverComponent.Kind()); ok {
			hovered = hover.Hovered
		}
		rotation := float32(0)
		if t, ok := ecs.Get(w, item.entity, component.TransformComponent.Kind()); ok {
			rotation = t.Rotation
		}
		drawPlanet(screen, body, proj, rotation, hovered)
		if hovered {
			label, labelProj = body, proj
		}
	}

	if label != nil && r.face != nil {
		op := &text.DrawOptions{}
		op.GeoM.Translate(labelProj.X, labelProj.Y+labelProj.Radius+6)
		op.PrimaryAlign = text.AlignCenter
		op.ColorScale.ScaleWithColor(colornames.White)
		text.Draw(screen, label.Planet.Name, r.face, op)
	}
}

func (r *RenderSystem) drawStars(screen *ebiten.Image, cam *component.Camera, stars *component.Starfield, rotation float32) {
	sin, cos := math32.Sincos(rotation)
	size := stars.Size
	if size <= 0 {
		size = 1
	}
	for _, p := range stars.Points {
		rotated := math32.Vec3(p.X*cos+p.Z*sin, p.Y, -p.X*sin+p.Z*cos)
		x, y, depth, ok := cam.Project(rotated)
		if !ok {
			continue
		}
		s := size
		if depth < 20 {
			s *= 2
		}
		vector.FillRect(screen, float32(x), float32(y), s, s, starColor, false)
	}
}

func drawPlanet(screen *ebiten.Image, body *component.PlanetBody, proj *component.Projection, rotation float32, hovered bool) {
	base := body.Planet.Color.NRGBA
	base.A = 255
	cx, cy, radius := float32(proj.X), float32(proj.Y), float32(proj.Radius)

	vector.FillCircle(screen, cx, cy, radius, base, true)

	// Terminator shading, lit from the upper left.
	shade := color.NRGBA{A: 90}
	vector.FillCircle(screen, cx+radius*0.25, cy+radius*0.25, radius*0.8, shade, true)

	// A surface band that turns with the planet.
	bandX := cx + radius*0.6*math32.Sin(rotation)
	band := lighten(base, 0.25)
	band.A = 140
	vector.FillCircle(screen, bandX, cy, radius*0.18, band, true)

	highlight := lighten(base, 0.5)
	highlight.A = 160
	vector.FillCircle(screen, cx-radius*0.35, cy-radius*0.35, radius*0.25, highlight, true)

	if hovered {
		glow := lighten(base, 0.3)
		glow.A = 70
		vector.FillCircle(screen, cx, cy, radius, glow, true)
		vector.StrokeCircle(screen, cx, cy, radius+2, 2, lighten(base, 0.6), true)
	}
}

func lighten(c color.NRGBA, amount float64) color.NRGBA {
	mix := func(v uint8) uint8 {
		return uint8(float64(v) + (255-float64(v))*amount)
	}
	return color.NRGBA{R: mix(c.R), G: mix(c.G), B: mix(c.B), A: c.A}
}
