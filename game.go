package main

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/milk9111/orbitcore/config"
	"github.com/milk9111/orbitcore/data"
	"github.com/milk9111/orbitcore/detail"
	"github.com/milk9111/orbitcore/ecs"
	"github.com/milk9111/orbitcore/ecs/component"
	"github.com/milk9111/orbitcore/ecs/entity"
	"github.com/milk9111/orbitcore/ecs/system"
	"github.com/milk9111/orbitcore/loading"
	"github.com/milk9111/orbitcore/media"
	"github.com/milk9111/orbitcore/route"
	"github.com/milk9111/orbitcore/store"
	"github.com/milk9111/orbitcore/ui"
)

var (
	dimColor     = color.NRGBA{A: 0x99}
	horizonColor = color.NRGBA{R: 0x8a, G: 0x4b, B: 0xff, A: 0xff}
)

// tables is everything read from the data source.
type tables struct {
	planets  *data.Table
	messages data.Messages
	catalog  *data.Catalog
}

func loadTables(src data.Source) (tables, error) {
	planets, err := src.LoadPlanets()
	if err != nil {
		return tables{}, err
	}
	messages, err := src.LoadMessages()
	if err != nil {
		return tables{}, err
	}
	catalog, err := src.LoadCatalog()
	if err != nil {
		return tables{}, err
	}
	return tables{planets: planets, messages: messages, catalog: catalog}, nil
}

// viewFor maps a route and playback mode to the view the app shows.
func viewFor(m route.Match, mode store.PlaybackMode) store.View {
	if m.Name != route.Planet {
		return store.ViewUniverse
	}
	if mode == store.PlaybackBlackhole {
		return store.ViewBlackhole
	}
	return store.ViewPlanet
}

// stepLoading feeds dt to seq and completes it when confirm arrives while
// the continue prompt is shown. It reports whether seq completed.
func stepLoading(seq *loading.Sequence, dt time.Duration, confirm bool) bool {
	seq.Advance(dt)
	if confirm && seq.CanContinue() {
		return seq.Continue()
	}
	return false
}

// confirmPressed reports Enter, Space, or a click or tap released anywhere
// on screen this frame.
func confirmPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
		inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) ||
		len(inpututil.AppendJustReleasedTouchIDs(nil)) > 0
}

type Game struct {
	cfg    config.Config
	ctx    context.Context
	cancel context.CancelFunc
	source data.Source
	data   tables

	audio  *store.AudioStore
	app    *store.AppStore
	router *route.Router

	world     *ecs.World
	universe  entity.Universe
	camera    *system.CameraSystem
	selection *system.SelectionSystem
	render    *system.RenderSystem

	theme     *ui.Theme
	clip      ui.Clipboard
	loading   *loading.Sequence
	loadingUI *ui.LoadingScreen
	overlay   *ui.UniverseOverlay
	detail    *detail.Model
	detailUI  *ui.DetailView

	backend *media.Backend
	watcher *data.Watcher

	pending *route.Match
	closed  bool
}

// NewGame mounts the stores, builds the universe and starts the loading
// sequence. factory opens the audio of tracks.
func NewGame(cfg config.Config, factory media.PlayerFactory) (*Game, error) {
	g := &Game{
		cfg:    cfg,
		source: data.Source{Dir: cfg.Data.Dir},
		audio:  store.NewAudioStore(),
		app:    store.NewAppStore(),
		router: route.NewRouter(cfg.StartRoute),
		world:  ecs.NewWorld(),
		clip:   &ui.SystemClipboard{},
	}

	t, err := loadTables(g.source)
	if err != nil {
		return nil, fmt.Errorf("load data: %w", err)
	}
	g.data = t

	theme, err := ui.NewTheme()
	if err != nil {
		return nil, fmt.Errorf("load theme: %w", err)
	}
	g.theme = theme

	ctx := store.WithSession(context.Background(), uuid.NewString())
	ctx = store.WithAudio(ctx, g.audio)
	ctx = store.WithApp(ctx, g.app)
	g.ctx, g.cancel = context.WithCancel(ctx)

	g.camera = system.NewCameraSystem(float64(cfg.Window.Width), float64(cfg.Window.Height))
	g.selection = system.NewSelectionSystem(g.ctx, g, g.router)
	g.render = system.NewRenderSystem(theme.Body)

	input := system.NewInputSystem(system.EbitenPointer{})
	input.SetViewport(g.sceneAccepts)
	g.world.AddSystem(input)
	g.world.AddSystem(g.camera)
	g.world.AddSystem(system.NewSpinSystem())
	g.world.AddSystem(system.NewProjectionSystem())
	g.world.AddSystem(system.NewPickSystem())
	g.world.AddSystem(system.NewHoverSystem())
	g.world.AddSystem(g.selection)

	if err := g.buildUniverse(); err != nil {
		return nil, err
	}

	g.overlay = ui.NewUniverseOverlay(theme, g.data.planets.All(), g.selection.Select)

	g.router.Listen(func(m route.Match) {
		g.pending = &m
	})
	g.audio.Subscribe(func(prev, next store.AudioState) {
		if prev.PlaybackMode == next.PlaybackMode || g.app.State().IsLoading {
			return
		}
		g.app.Dispatch(store.SetView{View: viewFor(g.router.Current(), next.PlaybackMode)})
	})

	g.backend = media.NewBackend(factory, cfg.Audio.FadeFrames)
	g.backend.Attach(store.Audio(g.ctx))

	if cfg.Data.Watch {
		if err := g.startWatcher(); err != nil {
			log.Printf("game: data watch disabled: %v", err)
		}
	}

	if cfg.SkipLoading {
		g.finishLoading()
		g.applyRoute()
	} else {
		g.startLoading()
	}

	log.Printf("game: session %s started at %s", store.Session(g.ctx), g.router.Path())
	return g, nil
}

// Theme resolves planet themes against the current catalog, which may be
// swapped by a data reload.
func (g *Game) Theme(p data.Planet) (data.Track, error) {
	return g.data.catalog.Theme(p)
}

func (g *Game) sceneAccepts(x, y float64) bool {
	return g.app.State().CurrentView == store.ViewUniverse && !g.overlay.Covers(x, y)
}

func (g *Game) buildUniverse() error {
	u, err := entity.BuildUniverse(g.world, g.data.planets.All(), entity.SceneOptions{
		StarCount:   g.cfg.Scene.Stars,
		Seed:        g.cfg.Scene.Seed,
		MinDistance: float32(g.cfg.Scene.MinDistance),
		MaxDistance: float32(g.cfg.Scene.MaxDistance),
	})
	if err != nil {
		return fmt.Errorf("build universe: %w", err)
	}
	g.universe = u
	return nil
}

func (g *Game) startLoading() {
	msgs := g.data.messages.Loading
	g.loadingUI = ui.NewLoadingScreen(g.theme, func() {
		if g.loading != nil {
			g.loading.Continue()
		}
	})
	g.loading = loading.New(g.ctx, msgs, loading.Options{
		Tick:          g.cfg.LoadingTick(),
		ContinueDelay: g.cfg.Loading.ContinueDelay,
		OnMessage: func(i int, msg data.LoadingMessage) {
			g.loadingUI.SetMessage(msg.Text, i, len(msgs))
		},
		OnAwait: func() {
			g.loadingUI.ShowContinue(true)
		},
		OnComplete: g.finishLoading,
	})
}

func (g *Game) finishLoading() {
	g.app.Dispatch(store.SetLoading{Loading: false})
	g.app.Dispatch(store.SetView{View: store.ViewUniverse})
	m := g.router.Current()
	g.pending = &m
}

// applyRoute mounts the view of the last route change.
func (g *Game) applyRoute() {
	if g.pending == nil || g.app.State().IsLoading {
		return
	}
	m := *g.pending
	g.pending = nil
	if g.cfg.Debug {
		log.Printf("game: mount %s (%s)", m.Path, m.Name)
	}

	g.detail, g.detailUI = nil, nil
	if m.Name == route.Planet {
		g.detail = detail.New(g.ctx, m.PlanetID, g.data.planets, g.data.catalog, g.router)
		g.detail.Resolve()
		g.detailUI = ui.NewDetailView(g.theme, g.detail, g.data.messages, g.clip)
	}
	g.app.Dispatch(store.SetView{View: viewFor(m, g.audio.State().PlaybackMode)})
}

func (g *Game) startWatcher() error {
	if g.cfg.Data.Dir == "" {
		return fmt.Errorf("data.dir is not set")
	}
	dirs := []string{g.cfg.Data.Dir}
	scripts := filepath.Join(g.cfg.Data.Dir, "scripts")
	if info, err := os.Stat(scripts); err == nil && info.IsDir() {
		dirs = append(dirs, scripts)
	}
	w, err := data.NewWatcher(dirs...)
	if err != nil {
		return err
	}
	g.watcher = w
	log.Printf("game: watching %v", dirs)
	return nil
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	select {
	case err, ok := <-g.watcher.Errors:
		if ok && err != nil {
			log.Printf("game: data watch: %v", err)
		}
	default:
	}
	changed := g.watcher.Poll()
	if len(changed) == 0 {
		return
	}
	log.Printf("game: data changed: %v", changed)
	g.reload()
}

// reload swaps in freshly read tables and rebuilds the scene. On failure the
// previous tables stay in use.
func (g *Game) reload() {
	t, err := loadTables(g.source)
	if err != nil {
		log.Printf("game: reload: %v", err)
		return
	}

	var cam component.Camera
	camera, hadCamera := ecs.Get(g.world, g.universe.Camera, component.CameraComponent.Kind())
	if hadCamera {
		cam = *camera
	}

	prev := g.data
	g.data = t
	entity.ClearUniverse(g.world, g.universe)
	if err := g.buildUniverse(); err != nil {
		log.Printf("game: reload: %v", err)
		g.data = prev
		if err := g.buildUniverse(); err != nil {
			log.Printf("game: restore universe: %v", err)
		}
		return
	}
	if hadCamera {
		if c, ok := ecs.Get(g.world, g.universe.Camera, component.CameraComponent.Kind()); ok {
			*c = cam
		}
	}

	g.overlay.SetPlanets(g.data.planets.All())
	if g.detail != nil {
		m := g.router.Current()
		g.pending = &m
	}
}

func (g *Game) Update() error {
	if g.closed {
		return ebiten.Termination
	}

	dt := time.Second / time.Duration(ebiten.TPS())
	g.pollWatcher()

	switch view := g.app.State(); view.CurrentView {
	case store.ViewLoading:
		// The scene steps first so the confirming release is not also read
		// as a planet click once the universe view is up.
		g.world.Step(dt)
		if g.loading != nil {
			stepLoading(g.loading, dt, confirmPressed())
		}
		if g.loadingUI != nil {
			g.loadingUI.Update()
		}
	case store.ViewUniverse:
		status := data.Cycle(g.data.messages.Transition, g.world.Elapsed(), 3*time.Second)
		if view.Error != "" {
			status = view.Error
		}
		g.overlay.SetStatus(status)
		g.overlay.Update()
		g.world.Step(dt)
	case store.ViewPlanet, store.ViewBlackhole:
		g.world.Step(dt)
		if g.detailUI != nil {
			g.detailUI.Refresh(g.audio.State(), g.world.Elapsed())
			g.detailUI.Update()
		}
		if g.detail != nil && inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			if err := g.detail.Back(); err != nil {
				log.Printf("game: back: %v", err)
			}
		}
	}

	if view := g.app.State().CurrentView; view != store.ViewLoading && inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		g.router.Back()
	}

	g.applyRoute()
	g.backend.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)

	switch g.app.State().CurrentView {
	case store.ViewLoading:
		if g.loadingUI != nil {
			g.loadingUI.Draw(screen)
		}
	case store.ViewUniverse:
		g.overlay.Draw(screen)
	case store.ViewPlanet, store.ViewBlackhole:
		b := screen.Bounds()
		vector.FillRect(screen, 0, 0, float32(b.Dx()), float32(b.Dy()), dimColor, false)
		if g.app.State().CurrentView == store.ViewBlackhole {
			drawBlackhole(screen, g.world.Elapsed())
		}
		if g.detailUI != nil {
			g.detailUI.Draw(screen)
		}
	}

	if g.cfg.Debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.2f  route: %s  track: %s", ebiten.ActualFPS(), g.router.Path(), g.backend.Current()))
	}
}

// drawBlackhole draws an event horizon with rings pulsing inward.
func drawBlackhole(screen *ebiten.Image, elapsed time.Duration) {
	b := screen.Bounds()
	cx, cy := float32(b.Dx())/2, float32(b.Dy())/2
	r := float32(min(b.Dx(), b.Dy())) * 0.45
	phase := float32(elapsed.Seconds()*0.25) - float32(int(elapsed.Seconds()*0.25))
	for i := range 6 {
		f := float32(i)/6 + phase
		f -= float32(int(f))
		ring := horizonColor
		ring.A = uint8(0x80 * (1 - f))
		vector.StrokeCircle(screen, cx, cy, r*(1-f*0.7), 2, ring, true)
	}
	vector.FillCircle(screen, cx, cy, r*0.3, color.Black, true)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	g.camera.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// Close tears the app down: the root context ends, which cancels the
// loading sequence, then the watcher and audio are released.
func (g *Game) Close() error {
	if g.closed {
		return nil
	}
	g.closed = true
	g.cancel()
	if g.loading != nil {
		g.loading.Close()
	}
	var err error
	if g.watcher != nil {
		err = g.watcher.Close()
	}
	if cerr := g.backend.Close(); err == nil {
		err = cerr
	}
	return err
}
