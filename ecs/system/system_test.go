package system

import (
	"context"
	"testing"
	"time"

	"cogentcore.org/core/math32"
	"github.com/milk9111/orbitcore/data"
	"github.com/milk9111/orbitcore/ecs"
	"github.com/milk9111/orbitcore/ecs/component"
	"github.com/milk9111/orbitcore/ecs/entity"
	"github.com/milk9111/orbitcore/route"
	"github.com/milk9111/orbitcore/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = time.Second / 60

type scriptedPointer struct {
	current Pointer
}

func (s *scriptedPointer) Pointer() Pointer { return s.current }

type scene struct {
	world    *ecs.World
	pointer  *scriptedPointer
	pick     *PickSystem
	audio    *store.AudioStore
	router   *route.Router
	universe entity.Universe
	table    *data.Table
}

func newScene(t *testing.T) *scene {
	t.Helper()
	table, err := data.Source{}.LoadPlanets()
	require.NoError(t, err)
	catalog, err := data.Source{}.LoadCatalog()
	require.NoError(t, err)

	s := &scene{
		world:   ecs.NewWorld(),
		pointer: &scriptedPointer{},
		pick:    NewPickSystem(),
		audio:   store.NewAudioStore(),
		router:  route.NewRouter(route.RootPath),
		table:   table,
	}
	ctx := store.WithApp(store.WithAudio(context.Background(), s.audio), store.NewAppStore())

	s.universe, err = entity.BuildUniverse(s.world, table.All(), entity.SceneOptions{StarCount: 16, Seed: 7})
	require.NoError(t, err)

	s.world.AddSystem(NewInputSystem(s.pointer))
	s.world.AddSystem(NewCameraSystem(1280, 720))
	s.world.AddSystem(NewSpinSystem())
	s.world.AddSystem(NewProjectionSystem())
	s.world.AddSystem(s.pick)
	s.world.AddSystem(NewHoverSystem())
	s.world.AddSystem(NewSelectionSystem(ctx, catalog, s.router))
	return s
}

func (s *scene) step(p Pointer) {
	s.pointer.current = p
	s.world.Step(frame)
}

func (s *scene) screenPos(t *testing.T, id string) (float64, float64) {
	t.Helper()
	for _, e := range s.universe.Planets {
		body, _ := ecs.Get(s.world, e, component.PlanetBodyComponent.Kind())
		if body.Planet.ID != id {
			continue
		}
		cam := component.NewCamera(component.DefaultMinDistance, component.DefaultMaxDistance)
		cam.Width, cam.Height = 1280, 720
		tr, _ := ecs.Get(s.world, e, component.TransformComponent.Kind())
		x, y, _, ok := cam.Project(tr.Position)
		require.True(t, ok)
		return x, y
	}
	t.Fatalf("planet %q not in scene", id)
	return 0, 0
}

func (s *scene) click(x, y float64) {
	s.step(Pointer{X: x, Y: y})
	s.step(Pointer{X: x, Y: y, Left: true})
	s.step(Pointer{X: x, Y: y})
}

func TestClickPlanetSelectsAndNavigates(t *testing.T) {
	s := newScene(t)
	x, y := s.screenPos(t, "corefire")

	s.click(x, y)

	state := s.audio.State()
	require.NotNil(t, state.CurrentPlanet)
	assert.Equal(t, "corefire", state.CurrentPlanet.ID)
	require.NotNil(t, state.CurrentTrack)
	assert.Equal(t, "Corefire Theme", state.CurrentTrack.Title)
	assert.Equal(t, "Space Composer", state.CurrentTrack.Artist)
	assert.Equal(t, 240, state.CurrentTrack.Duration)
	assert.True(t, state.IsPlaying)
	assert.Equal(t, "/planet/corefire", s.router.Path())
}

func TestRepeatedClicksAreNotDeduplicated(t *testing.T) {
	s := newScene(t)
	x, y := s.screenPos(t, "echo-blue")

	var dispatches int
	s.audio.Subscribe(func(_, _ store.AudioState) { dispatches++ })
	s.click(x, y)
	s.click(x, y)

	assert.Equal(t, 4, dispatches, "SetPlanet and PlayTrack per click")
	assert.Equal(t, 3, s.router.Depth())
}

func TestHoverFollowsCursor(t *testing.T) {
	s := newScene(t)
	x, y := s.screenPos(t, "voidtide")

	s.step(Pointer{X: x, Y: y})
	e, ok := s.pick.Hovered()
	require.True(t, ok)
	body, _ := ecs.Get(s.world, e, component.PlanetBodyComponent.Kind())
	assert.Equal(t, "voidtide", body.Planet.ID)

	tr, _ := ecs.Get(s.world, e, component.TransformComponent.Kind())
	assert.Equal(t, float32(component.HoveredScale), tr.Scale, "full scale on the first hovered frame")

	s.step(Pointer{X: 2, Y: 2})
	_, ok = s.pick.Hovered()
	assert.False(t, ok)
	hover, _ := ecs.Get(s.world, e, component.HoverComponent.Kind())
	assert.False(t, hover.Hovered)
	assert.Equal(t, float32(1), tr.Scale, "reverts on the first frame off")
}

func TestClickOnEmptySpaceDoesNothing(t *testing.T) {
	s := newScene(t)
	s.click(2, 2)

	assert.Nil(t, s.audio.State().CurrentPlanet)
	assert.Equal(t, "/", s.router.Path())
}

func TestDragRotatesWithoutSelecting(t *testing.T) {
	s := newScene(t)
	x, y := s.screenPos(t, "corefire")

	s.step(Pointer{X: x, Y: y})
	s.step(Pointer{X: x, Y: y, Left: true})
	s.step(Pointer{X: x + 40, Y: y, Left: true})
	s.step(Pointer{X: x + 40, Y: y})

	cam, _ := ecs.Get(s.world, s.universe.Camera, component.CameraComponent.Kind())
	assert.NotZero(t, cam.Yaw)
	assert.Nil(t, s.audio.State().CurrentPlanet)
	assert.Equal(t, "/", s.router.Path())
}

func TestWheelZoomIsClamped(t *testing.T) {
	s := newScene(t)
	for i := 0; i < 200; i++ {
		s.step(Pointer{X: 2, Y: 2, WheelY: 1})
	}
	cam, _ := ecs.Get(s.world, s.universe.Camera, component.CameraComponent.Kind())
	assert.Equal(t, float32(component.DefaultMinDistance), cam.Distance)

	for i := 0; i < 200; i++ {
		s.step(Pointer{X: 2, Y: 2, WheelY: -1})
	}
	assert.Equal(t, float32(component.DefaultMaxDistance), cam.Distance)
}

func TestSpinIsFrameRateIndependent(t *testing.T) {
	run := func(dt time.Duration, steps int) float32 {
		w := ecs.NewWorld()
		e := ecs.CreateEntity(w)
		_ = ecs.Add(w, e, component.SpinComponent.Kind(), &component.Spin{Rate: entity.PlanetSpinRate})
		_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Scale: 1})
		w.AddSystem(NewSpinSystem())
		for i := 0; i < steps; i++ {
			w.Step(dt)
		}
		tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		return tr.Rotation
	}
	assert.InDelta(t, run(time.Second/30, 60), run(time.Second/144, 288), 1e-4)
	assert.InDelta(t, 1.0, run(time.Second/60, 120), 1e-4)
}

func TestNearestPlanetWinsOverlap(t *testing.T) {
	w := ecs.NewWorld()
	near, err := entity.BuildPlanet(w, data.Planet{ID: "near", Position: data.Vec3{Z: 100}, Size: 60})
	require.NoError(t, err)
	_, err = entity.BuildPlanet(w, data.Planet{ID: "far", Position: data.Vec3{Z: -100}, Size: 200})
	require.NoError(t, err)
	cam := ecs.CreateEntity(w)
	camera := component.NewCamera(5, 50)
	_ = ecs.Add(w, cam, component.CameraComponent.Kind(), &camera)
	_ = ecs.Add(w, cam, component.InputComponent.Kind(), &component.Input{})

	pick := NewPickSystem()
	w.AddSystem(NewInputSystem(&scriptedPointer{current: Pointer{X: 640, Y: 360}}))
	w.AddSystem(NewCameraSystem(1280, 720))
	w.AddSystem(NewProjectionSystem())
	w.AddSystem(pick)
	w.Step(frame)

	e, ok := pick.Hovered()
	require.True(t, ok)
	assert.Equal(t, near, e)
}

func TestStarfieldIsSeeded(t *testing.T) {
	a := entity.StarPoints(100, 3)
	b := entity.StarPoints(100, 3)
	assert.Equal(t, a, b)
	assert.Len(t, a, 100)
	for _, p := range a {
		assert.LessOrEqual(t, math32.Abs(p.X), float32(20))
	}
}
