package route

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	cases := []struct {
		path    string
		name    Name
		planet  string
		wantErr bool
	}{
		{"/", Universe, "", false},
		{"", Universe, "", false},
		{"/planet/corefire", Planet, "corefire", false},
		{"/planet/echo-blue/", Planet, "echo-blue", false},
		{"planet/voidtide", Planet, "voidtide", false},
		{"/planet/", Unknown, "", true},
		{"/planet/a/b", Unknown, "", true},
		{"/blackhole", Unknown, "", true},
	}
	for _, c := range cases {
		t.Run(c.path, func(t *testing.T) {
			m, err := Parse(c.path)
			if c.wantErr {
				if !errors.Is(err, ErrUnknownRoute) {
					t.Fatalf("expected ErrUnknownRoute, got %v", err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if m.Name != c.name || m.PlanetID != c.planet {
				t.Fatalf("got %+v", m)
			}
		})
	}
}

func TestRouterNavigation(t *testing.T) {
	r := NewRouter("/nowhere")
	if r.Path() != "/" {
		t.Fatalf("unknown start path should fall back to root, got %q", r.Path())
	}

	var seen []string
	r.Listen(func(m Match) { seen = append(seen, m.Path) })

	if err := r.Navigate(PlanetPath("corefire")); err != nil {
		t.Fatal(err)
	}
	if got := r.Current(); got.Name != Planet || got.PlanetID != "corefire" {
		t.Fatalf("got %+v", got)
	}
	if err := r.Navigate("/planet/"); err == nil {
		t.Fatal("expected error for empty planet id")
	}
	if r.Path() != "/planet/corefire" {
		t.Fatalf("failed navigation must not move the router, at %q", r.Path())
	}

	if !r.Back() {
		t.Fatal("expected back to succeed")
	}
	if r.Back() {
		t.Fatal("expected back to fail at first entry")
	}
	if len(seen) != 2 || seen[0] != "/planet/corefire" || seen[1] != "/" {
		t.Fatalf("listener saw %v", seen)
	}
}
