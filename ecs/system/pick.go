package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/orbitcore/ecs"
	"github.com/milk9111/orbitcore/ecs/component"
)

// radiusTolerance is how far a projected radius may drift before the pick
// shape is rebuilt.
const radiusTolerance = 0.25

// ProjectionSystem projects every planet sphere into screen space.
type ProjectionSystem struct{}

func NewProjectionSystem() *ProjectionSystem {
	return &ProjectionSystem{}
}

func (p *ProjectionSystem) Update(w *ecs.World) {
	camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return
	}
	cam, _ := ecs.Get(w, camEntity, component.CameraComponent.Kind())
	if cam.Height <= 0 {
		return
	}

	ecs.ForEach2(w, component.PlanetBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, body *component.PlanetBody, t *component.Transform) {
		scale := t.Scale
		if scale == 0 {
			scale = 1
		}
		proj := cam.ProjectSphere(t.Position, body.Radius*scale)
		if cur, ok := ecs.Get(w, e, component.ProjectionComponent.Kind()); ok {
			*cur = proj
			return
		}
		_ = ecs.Add(w, e, component.ProjectionComponent.Kind(), &proj)
	})
}

type pickShape struct {
	body   *cp.Body
	shape  *cp.Shape
	radius float64
}

// PickSystem keeps one chipmunk circle per projected planet and queries
// it at the cursor. The hovered planet is the nearest to the camera among
// those under the cursor. A click on it pushes EventPlanetSelected.
type PickSystem struct {
	space    *cp.Space
	shapes   map[ecs.Entity]*pickShape
	entities map[*cp.Shape]ecs.Entity
	hovered  ecs.Entity
}

func NewPickSystem() *PickSystem {
	return &PickSystem{
		space:    cp.NewSpace(),
		shapes:   make(map[ecs.Entity]*pickShape),
		entities: make(map[*cp.Shape]ecs.Entity),
	}
}

// Hovered returns the planet under the cursor, if any.
func (ps *PickSystem) Hovered() (ecs.Entity, bool) {
	return ps.hovered, ps.hovered.Valid()
}

func (ps *PickSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ps.sync(w)

	var input component.Input
	if e, ok := ecs.First(w, component.InputComponent.Kind()); ok {
		in, _ := ecs.Get(w, e, component.InputComponent.Kind())
		input = *in
	}

	ps.hovered = 0
	if input.InViewport {
		ps.hovered = ps.query(w, input.X, input.Y)
	}

	ecs.ForEach(w, component.HoverComponent.Kind(), func(e ecs.Entity, hover *component.Hover) {
		hover.Hovered = e == ps.hovered
	})

	if input.Clicked && ps.hovered.Valid() {
		w.Events().Push(ecs.Event{Type: ecs.EventPlanetSelected, Data: ps.hovered})
	}
}

func (ps *PickSystem) sync(w *ecs.World) {
	for e, s := range ps.shapes {
		if !ecs.Has(w, e, component.ProjectionComponent.Kind()) {
			ps.removeShape(e, s)
		}
	}

	ecs.ForEach(w, component.ProjectionComponent.Kind(), func(e ecs.Entity, proj *component.Projection) {
		s := ps.shapes[e]
		if s == nil {
			s = &pickShape{body: cp.NewKinematicBody()}
			ps.space.AddBody(s.body)
			ps.shapes[e] = s
		}
		s.body.SetPosition(cp.Vector{X: proj.X, Y: proj.Y})

		radius := proj.Radius
		if !proj.Visible {
			radius = 0
		}
		if s.shape == nil || math.Abs(s.radius-radius) > radiusTolerance {
			if s.shape != nil {
				delete(ps.entities, s.shape)
				ps.space.RemoveShape(s.shape)
			}
			s.shape = ps.space.AddShape(cp.NewCircle(s.body, math.Max(radius, 0), cp.Vector{}))
			s.radius = radius
			ps.entities[s.shape] = e
		}
		ps.space.ReindexShapesForBody(s.body)
	})
}

func (ps *PickSystem) removeShape(e ecs.Entity, s *pickShape) {
	if s.shape != nil {
		delete(ps.entities, s.shape)
		ps.space.RemoveShape(s.shape)
	}
	ps.space.RemoveBody(s.body)
	delete(ps.shapes, e)
}

func (ps *PickSystem) query(w *ecs.World, x, y float64) ecs.Entity {
	var best ecs.Entity
	bestDepth := math.Inf(1)
	ps.space.PointQuery(cp.Vector{X: x, Y: y}, 0, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ cp.Vector, _ float64, _ cp.Vector, _ interface{}) {
		e, ok := ps.entities[shape]
		if !ok {
			return
		}
		proj, ok := ecs.Get(w, e, component.ProjectionComponent.Kind())
		if !ok || !proj.Visible || proj.Radius <= 0 {
			return
		}
		if proj.Depth < bestDepth {
			best, bestDepth = e, proj.Depth
		}
	}, nil)
	return best
}
