// Package route maps the app's paths to views and keeps navigation history.
package route

import (
	"errors"
	"fmt"
	"strings"
)

const (
	RootPath     = "/"
	planetPrefix = "/planet/"
)

var ErrUnknownRoute = errors.New("route: unknown route")

// Name identifies a routed view.
type Name string

const (
	Universe Name = "universe"
	Planet   Name = "planet"
	Unknown  Name = "unknown"
)

// Match is a resolved path.
type Match struct {
	Name     Name
	Path     string
	PlanetID string
}

// PlanetPath returns the route of a planet's detail view.
func PlanetPath(id string) string {
	return planetPrefix + id
}

// Parse resolves path to a route. Unknown paths return ErrUnknownRoute
// along with a Match named Unknown.
func Parse(path string) (Match, error) {
	p := "/" + strings.Trim(strings.TrimSpace(path), "/")
	if p == RootPath {
		return Match{Name: Universe, Path: RootPath}, nil
	}
	if id, ok := strings.CutPrefix(p, planetPrefix); ok && id != "" && !strings.Contains(id, "/") {
		return Match{Name: Planet, Path: p, PlanetID: id}, nil
	}
	return Match{Name: Unknown, Path: p}, fmt.Errorf("%w: %s", ErrUnknownRoute, path)
}

// Router holds the current route and history. Listeners run synchronously
// on every navigation.
type Router struct {
	history   []Match
	listeners []func(Match)
}

// NewRouter starts at path; an unknown start path falls back to the root.
func NewRouter(path string) *Router {
	m, err := Parse(path)
	if err != nil {
		m, _ = Parse(RootPath)
	}
	return &Router{history: []Match{m}}
}

// Current returns the active route.
func (r *Router) Current() Match {
	return r.history[len(r.history)-1]
}

// Path returns the active path.
func (r *Router) Path() string {
	return r.Current().Path
}

// Navigate pushes path. Unknown paths are rejected and leave the router
// where it was.
func (r *Router) Navigate(path string) error {
	m, err := Parse(path)
	if err != nil {
		return err
	}
	r.history = append(r.history, m)
	r.notify(m)
	return nil
}

// Back pops one history entry. It returns false at the first entry.
func (r *Router) Back() bool {
	if len(r.history) <= 1 {
		return false
	}
	r.history = r.history[:len(r.history)-1]
	r.notify(r.Current())
	return true
}

// Depth returns the number of history entries.
func (r *Router) Depth() int {
	return len(r.history)
}

// Listen registers fn for navigation changes.
func (r *Router) Listen(fn func(Match)) {
	r.listeners = append(r.listeners, fn)
}

func (r *Router) notify(m Match) {
	for _, fn := range r.listeners {
		fn(m)
	}
}
