package data

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

const CatalogScript = "catalog.tengo"

// Catalog derives a planet's theme track and its display track list by
// running the catalog script. Real track data belongs to an external media
// catalog; the script stands in for it.
type Catalog struct {
	compiled *tengo.Compiled
}

// NewCatalog compiles a catalog script.
func NewCatalog(src []byte) (*Catalog, error) {
	script := tengo.NewScript(src)
	_ = script.Add("planet_id", "")
	_ = script.Add("planet_name", "")
	script.SetImports(stdlib.GetModuleMap("fmt", "text"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("data: compile catalog: %w", err)
	}
	return &Catalog{compiled: compiled}, nil
}

// LoadCatalog reads and compiles the catalog script.
func (s Source) LoadCatalog() (*Catalog, error) {
	src, err := s.LoadScript(CatalogScript)
	if err != nil {
		return nil, err
	}
	return NewCatalog(src)
}

func (c *Catalog) run(p Planet) (*tengo.Compiled, error) {
	if c == nil || c.compiled == nil {
		return nil, fmt.Errorf("data: catalog not loaded")
	}
	run := c.compiled.Clone()
	if err := run.Set("planet_id", p.ID); err != nil {
		return nil, err
	}
	if err := run.Set("planet_name", p.Name); err != nil {
		return nil, err
	}
	if err := run.Run(); err != nil {
		return nil, fmt.Errorf("data: run catalog for %q: %w", p.ID, err)
	}
	return run, nil
}

// Theme returns the placeholder theme track played when p is selected.
func (c *Catalog) Theme(p Planet) (Track, error) {
	run, err := c.run(p)
	if err != nil {
		return Track{}, err
	}
	if !run.IsDefined("theme") {
		return Track{}, fmt.Errorf("data: catalog for %q: theme not defined", p.ID)
	}
	return trackFromValue(run.Get("theme").Map())
}

// Tracks returns p's own tracks when it has any, else the script's list.
func (c *Catalog) Tracks(p Planet) ([]Track, error) {
	if len(p.Tracks) > 0 {
		return append([]Track(nil), p.Tracks...), nil
	}
	run, err := c.run(p)
	if err != nil {
		return nil, err
	}
	if !run.IsDefined("tracks") {
		return nil, fmt.Errorf("data: catalog for %q: tracks not defined", p.ID)
	}
	raw := run.Get("tracks").Array()
	out := make([]Track, 0, len(raw))
	for i, v := range raw {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("data: catalog for %q: track %d is %T", p.ID, i, v)
		}
		t, err := trackFromValue(m)
		if err != nil {
			return nil, fmt.Errorf("data: catalog for %q: track %d: %w", p.ID, i, err)
		}
		out = append(out, t)
	}
	return out, nil
}

func trackFromValue(m map[string]any) (Track, error) {
	if m == nil {
		return Track{}, fmt.Errorf("track is not a map")
	}
	t := Track{
		ID:       toInt(m["id"]),
		Title:    toString(m["title"]),
		Artist:   toString(m["artist"]),
		Duration: toInt(m["duration"]),
		URL:      toString(m["url"]),
	}
	if t.Duration < 0 {
		return Track{}, fmt.Errorf("negative duration %d", t.Duration)
	}
	return t, nil
}

func toInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	}
	return 0
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
