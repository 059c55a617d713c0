// Package detail is the planet player screen: it resolves a route's planet
// id, offers the planet's track list and dispatches playback actions.
package detail

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/milk9111/orbitcore/data"
	"github.com/milk9111/orbitcore/route"
	"github.com/milk9111/orbitcore/store"
)

// Status is the resolution state of the route's planet id.
type Status int

const (
	StatusResolving Status = iota
	StatusFound
	StatusNotFound
)

func (s Status) String() string {
	switch s {
	case StatusResolving:
		return "resolving"
	case StatusFound:
		return "found"
	case StatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Navigator moves the app to another route.
type Navigator interface {
	Navigate(path string) error
}

// Lookup resolves planets by id.
type Lookup interface {
	Lookup(id string) (data.Planet, error)
}

// TrackSource lists the tracks shown for a planet.
type TrackSource interface {
	Tracks(p data.Planet) ([]data.Track, error)
}

// Model holds one mounted planet view. Store access goes through the
// providers of ctx.
type Model struct {
	ctx      context.Context
	planetID string
	planets  Lookup
	catalog  TrackSource
	nav      Navigator

	status Status
	planet data.Planet
	tracks []data.Track
}

// New mounts a planet view for planetID. Call Resolve before use.
func New(ctx context.Context, planetID string, planets Lookup, catalog TrackSource, nav Navigator) *Model {
	return &Model{
		ctx:      ctx,
		planetID: planetID,
		planets:  planets,
		catalog:  catalog,
		nav:      nav,
	}
}

// Resolve looks the planet up. A hit makes it the current planet and
// playlist; a miss is recorded as the app error.
func (m *Model) Resolve() Status {
	audio := store.Audio(m.ctx)
	app := store.App(m.ctx)

	p, err := m.planets.Lookup(m.planetID)
	if err != nil {
		if !errors.Is(err, data.ErrPlanetNotFound) {
			log.Printf("detail: lookup %q: %v", m.planetID, err)
		}
		m.status = StatusNotFound
		app.Dispatch(store.SetError{Err: fmt.Sprintf("planet %q not found", m.planetID)})
		return m.status
	}

	tracks, err := m.catalog.Tracks(p)
	if err != nil {
		log.Printf("detail: tracks for %q: %v", p.ID, err)
		tracks = nil
	}

	m.planet = p
	m.tracks = tracks
	m.status = StatusFound
	audio.Dispatch(store.SetPlanet{Planet: p})
	audio.Dispatch(store.SetPlaylist{Tracks: tracks})
	if app.State().Error != "" {
		app.Dispatch(store.SetError{})
	}
	return m.status
}

func (m *Model) Status() Status      { return m.status }
func (m *Model) PlanetID() string    { return m.planetID }
func (m *Model) Planet() data.Planet { return m.planet }

// Tracks returns the listed tracks.
func (m *Model) Tracks() []data.Track {
	return append([]data.Track(nil), m.tracks...)
}

// Audio returns the current audio state.
func (m *Model) Audio() store.AudioState {
	return store.Audio(m.ctx).State()
}

// PlayTrack plays the i-th listed track.
func (m *Model) PlayTrack(i int) error {
	if m.status != StatusFound {
		return fmt.Errorf("detail: planet %q is %s", m.planetID, m.status)
	}
	if i < 0 || i >= len(m.tracks) {
		return fmt.Errorf("detail: track index %d out of range [0,%d)", i, len(m.tracks))
	}
	store.Audio(m.ctx).Dispatch(store.PlayTrack{Track: m.tracks[i]})
	return nil
}

// TogglePlayback pauses when playing and resumes otherwise.
func (m *Model) TogglePlayback() {
	audio := store.Audio(m.ctx)
	if audio.State().IsPlaying {
		audio.Dispatch(store.Pause{})
		return
	}
	audio.Dispatch(store.Resume{})
}

// SetVolume dispatches v unchanged.
func (m *Model) SetVolume(v float64) {
	store.Audio(m.ctx).Dispatch(store.SetVolume{Volume: v})
}

// ToggleBlackhole flips the playback mode and returns the new mode.
func (m *Model) ToggleBlackhole() store.PlaybackMode {
	audio := store.Audio(m.ctx)
	mode := store.PlaybackBlackhole
	if audio.State().PlaybackMode == store.PlaybackBlackhole {
		mode = store.PlaybackNormal
	}
	audio.Dispatch(store.SetPlaybackMode{Mode: mode})
	return mode
}

// Back stops playback and returns to the universe.
func (m *Model) Back() error {
	store.Audio(m.ctx).Dispatch(store.Pause{})
	return m.nav.Navigate(route.RootPath)
}

// ShareLink is the route of this planet.
func (m *Model) ShareLink() string {
	return route.PlanetPath(m.planetID)
}

// FormatDuration renders seconds as m:ss.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
