package system

import (
	"github.com/milk9111/orbitcore/ecs"
	"github.com/milk9111/orbitcore/ecs/component"
)

type SpinSystem struct{}

func NewSpinSystem() *SpinSystem {
	return &SpinSystem{}
}

// Update derives every spin angle from the world clock, so frame rate never
// changes the rotation reached.
func (s *SpinSystem) Update(w *ecs.World) {
	elapsed := w.Elapsed()
	ecs.ForEach2(w, component.SpinComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, spin *component.Spin, t *component.Transform) {
		spin.Angle = component.SpinAngle(spin.Rate, elapsed)
		t.Rotation = spin.Angle
	})
}

type HoverSystem struct{}

func NewHoverSystem() *HoverSystem {
	return &HoverSystem{}
}

// Update sets each scale from the hover flag alone.
func (h *HoverSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.HoverComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, hover *component.Hover, t *component.Transform) {
		t.Scale = component.HoverScale(hover.Hovered)
	})
}
