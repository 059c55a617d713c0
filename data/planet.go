package data

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const PlanetsFile = "planets.yaml"

var ErrPlanetNotFound = errors.New("data: planet not found")

// Vec3 is a position in world units.
type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Scale divides every coordinate by d.
func (v Vec3) Scale(d float64) Vec3 {
	if d == 0 {
		return v
	}
	return Vec3{X: v.X / d, Y: v.Y / d, Z: v.Z / d}
}

// Track is a playable item. Duration is in seconds.
type Track struct {
	ID       int    `yaml:"id"`
	Title    string `yaml:"title"`
	Artist   string `yaml:"artist"`
	Duration int    `yaml:"duration"`
	URL      string `yaml:"url"`
}

// Planet is a themed musical world.
type Planet struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Color       Color   `yaml:"color"`
	Position    Vec3    `yaml:"position"`
	Size        float64 `yaml:"size"`
	Genre       string  `yaml:"genre"`
	Tracks      []Track `yaml:"tracks"`
}

// Color is an RGBA color written as #rrggbb or #rrggbbaa.
type Color struct {
	color.NRGBA
}

// Hex parses a #rrggbb or #rrggbbaa string.
func Hex(s string) (Color, error) {
	v := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(v) != 6 && len(v) != 8 {
		return Color{}, fmt.Errorf("invalid color format: %s", s)
	}
	parse := func(start int) (uint8, error) {
		n, err := strconv.ParseUint(v[start:start+2], 16, 8)
		return uint8(n), err
	}
	var c color.NRGBA
	var err error
	if c.R, err = parse(0); err != nil {
		return Color{}, err
	}
	if c.G, err = parse(2); err != nil {
		return Color{}, err
	}
	if c.B, err = parse(4); err != nil {
		return Color{}, err
	}
	c.A = 0xff
	if len(v) == 8 {
		if c.A, err = parse(6); err != nil {
			return Color{}, err
		}
	}
	return Color{NRGBA: c}, nil
}

// MustHex is Hex for literals.
func MustHex(s string) Color {
	c, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := Hex(value.Value)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Color) MarshalYAML() (any, error) {
	return c.String(), nil
}

func (c Color) String() string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a uint8) color.NRGBA {
	out := c.NRGBA
	out.A = a
	return out
}

// Table is an immutable, id-indexed planet list.
type Table struct {
	planets []Planet
	byID    map[string]int
}

// NewTable validates planets and indexes them by id.
func NewTable(planets []Planet) (*Table, error) {
	t := &Table{
		planets: make([]Planet, 0, len(planets)),
		byID:    make(map[string]int, len(planets)),
	}
	for i, p := range planets {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			return nil, fmt.Errorf("data: planet %d: empty id", i)
		}
		if _, dup := t.byID[id]; dup {
			return nil, fmt.Errorf("data: planet %d: duplicate id %q", i, id)
		}
		for j, tr := range p.Tracks {
			if tr.Duration < 0 {
				return nil, fmt.Errorf("data: planet %q track %d: negative duration %d", id, j, tr.Duration)
			}
		}
		p.ID = id
		p.Tracks = append([]Track(nil), p.Tracks...)
		t.byID[id] = len(t.planets)
		t.planets = append(t.planets, p)
	}
	return t, nil
}

// All returns the planets in table order.
func (t *Table) All() []Planet {
	if t == nil {
		return nil
	}
	out := make([]Planet, len(t.planets))
	copy(out, t.planets)
	return out
}

// Len returns the number of planets.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.planets)
}

// Lookup resolves a planet by id.
func (t *Table) Lookup(id string) (Planet, error) {
	if t != nil {
		if i, ok := t.byID[id]; ok {
			return t.planets[i], nil
		}
	}
	return Planet{}, fmt.Errorf("%w: %q", ErrPlanetNotFound, id)
}

type planetsFile struct {
	Planets []Planet `yaml:"planets"`
}

// ParsePlanets decodes a planet table document.
func ParsePlanets(b []byte) (*Table, error) {
	var f planetsFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("data: unmarshal planets: %w", err)
	}
	return NewTable(f.Planets)
}

// LoadPlanets reads and decodes the planet table.
func (s Source) LoadPlanets() (*Table, error) {
	b, err := s.Load(PlanetsFile)
	if err != nil {
		return nil, err
	}
	return ParsePlanets(b)
}
