package system

import (
	"context"
	"log"

	"github.com/milk9111/orbitcore/data"
	"github.com/milk9111/orbitcore/ecs"
	"github.com/milk9111/orbitcore/ecs/component"
	"github.com/milk9111/orbitcore/route"
	"github.com/milk9111/orbitcore/store"
)

// ThemeSource resolves the theme track of a planet.
type ThemeSource interface {
	Theme(p data.Planet) (data.Track, error)
}

// Navigator moves the app to another route.
type Navigator interface {
	Navigate(path string) error
}

// SelectionSystem turns planet selections into store actions and a
// navigation to the planet's detail route.
type SelectionSystem struct {
	ctx    context.Context
	themes ThemeSource
	nav    Navigator
}

func NewSelectionSystem(ctx context.Context, themes ThemeSource, nav Navigator) *SelectionSystem {
	return &SelectionSystem{ctx: ctx, themes: themes, nav: nav}
}

func (s *SelectionSystem) Update(w *ecs.World) {
	events := w.Events().Drain()
	for _, evt := range events {
		if evt.Type != ecs.EventPlanetSelected {
			continue
		}
		e, ok := evt.Data.(ecs.Entity)
		if !ok {
			continue
		}
		body, ok := ecs.Get(w, e, component.PlanetBodyComponent.Kind())
		if !ok {
			continue
		}
		s.Select(body.Planet)
	}
}

// Select makes p current, starts its theme and opens its detail view.
func (s *SelectionSystem) Select(p data.Planet) {
	audio := store.Audio(s.ctx)
	audio.Dispatch(store.SetPlanet{Planet: p})

	theme, err := s.themes.Theme(p)
	if err != nil {
		log.Printf("selection: theme for %q: %v", p.ID, err)
	} else {
		audio.Dispatch(store.PlayTrack{Track: theme})
	}

	if err := s.nav.Navigate(route.PlanetPath(p.ID)); err != nil {
		log.Printf("selection: navigate to %q: %v", p.ID, err)
	}
}
