package entity

import (
	"fmt"
	"math/rand/v2"

	"cogentcore.org/core/math32"
	"github.com/milk9111/orbitcore/data"
	"github.com/milk9111/orbitcore/ecs"
	"github.com/milk9111/orbitcore/ecs/component"
)

const (
	PositionDivisor = 50
	SizeDivisor     = 100

	PlanetSpinRate    = 0.5
	StarfieldSpinRate = 0.05

	DefaultStarCount = 1000
	starCube         = 2000
)

// SceneOptions configures BuildUniverse. Zero values take the defaults.
type SceneOptions struct {
	StarCount   int
	Seed        uint64
	MinDistance float32
	MaxDistance float32
}

func (o SceneOptions) withDefaults() SceneOptions {
	if o.StarCount <= 0 {
		o.StarCount = DefaultStarCount
	}
	if o.MinDistance <= 0 {
		o.MinDistance = component.DefaultMinDistance
	}
	if o.MaxDistance <= o.MinDistance {
		o.MaxDistance = component.DefaultMaxDistance
	}
	return o
}

// Universe holds the entities of a built scene.
type Universe struct {
	Planets   []ecs.Entity
	Starfield ecs.Entity
	Camera    ecs.Entity
}

// BuildUniverse adds one entity per planet, the starfield and the camera.
func BuildUniverse(w *ecs.World, planets []data.Planet, opts SceneOptions) (Universe, error) {
	opts = opts.withDefaults()
	var u Universe

	for _, p := range planets {
		e, err := BuildPlanet(w, p)
		if err != nil {
			return Universe{}, err
		}
		u.Planets = append(u.Planets, e)
	}

	stars := ecs.CreateEntity(w)
	if err := ecs.Add(w, stars, component.StarfieldComponent.Kind(), &component.Starfield{
		Points: StarPoints(opts.StarCount, opts.Seed),
		Size:   1,
	}); err != nil {
		return Universe{}, fmt.Errorf("add starfield: %w", err)
	}
	if err := ecs.Add(w, stars, component.SpinComponent.Kind(), &component.Spin{Rate: StarfieldSpinRate}); err != nil {
		return Universe{}, fmt.Errorf("add starfield spin: %w", err)
	}
	if err := ecs.Add(w, stars, component.TransformComponent.Kind(), &component.Transform{Scale: 1}); err != nil {
		return Universe{}, fmt.Errorf("add starfield transform: %w", err)
	}
	u.Starfield = stars

	cam := ecs.CreateEntity(w)
	camera := component.NewCamera(opts.MinDistance, opts.MaxDistance)
	if err := ecs.Add(w, cam, component.CameraComponent.Kind(), &camera); err != nil {
		return Universe{}, fmt.Errorf("add camera: %w", err)
	}
	if err := ecs.Add(w, cam, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return Universe{}, fmt.Errorf("add camera input: %w", err)
	}
	u.Camera = cam

	return u, nil
}

// BuildPlanet adds a single planet entity.
func BuildPlanet(w *ecs.World, p data.Planet) (ecs.Entity, error) {
	pos := p.Position.Scale(PositionDivisor)
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Position: math32.Vec3(float32(pos.X), float32(pos.Y), float32(pos.Z)),
		Scale:    1,
	}); err != nil {
		return 0, fmt.Errorf("add planet %q transform: %w", p.ID, err)
	}
	if err := ecs.Add(w, e, component.PlanetBodyComponent.Kind(), &component.PlanetBody{
		Planet: p,
		Radius: float32(p.Size / SizeDivisor),
	}); err != nil {
		return 0, fmt.Errorf("add planet %q body: %w", p.ID, err)
	}
	if err := ecs.Add(w, e, component.SpinComponent.Kind(), &component.Spin{Rate: PlanetSpinRate}); err != nil {
		return 0, fmt.Errorf("add planet %q spin: %w", p.ID, err)
	}
	if err := ecs.Add(w, e, component.HoverComponent.Kind(), &component.Hover{}); err != nil {
		return 0, fmt.Errorf("add planet %q hover: %w", p.ID, err)
	}
	return e, nil
}

// StarPoints places n points uniformly in the star cube, scaled into world
// units. The same seed always yields the same points.
func StarPoints(n int, seed uint64) []math32.Vector3 {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	half := float32(starCube) / 2 / PositionDivisor
	coord := func() float32 {
		return (rng.Float32()*2 - 1) * half
	}
	points := make([]math32.Vector3, n)
	for i := range points {
		points[i] = math32.Vec3(coord(), coord(), coord())
	}
	return points
}

// ClearUniverse destroys the entities of u.
func ClearUniverse(w *ecs.World, u Universe) {
	for _, e := range u.Planets {
		ecs.DestroyEntity(w, e)
	}
	ecs.DestroyEntity(w, u.Starfield)
	ecs.DestroyEntity(w, u.Camera)
}
