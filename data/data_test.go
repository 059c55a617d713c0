package data

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedPlanetTable(t *testing.T) {
	table, err := Source{}.LoadPlanets()
	require.NoError(t, err)
	require.Equal(t, 6, table.Len())

	ids := []string{"echo-blue", "corefire", "voidtide", "moontrace", "earth-link", "reflecta"}
	for i, p := range table.All() {
		assert.Equal(t, ids[i], p.ID)
		assert.Empty(t, p.Tracks)
		assert.NotEmpty(t, p.Name)
		assert.Greater(t, p.Size, 0.0)
	}

	corefire, err := table.Lookup("corefire")
	require.NoError(t, err)
	assert.Equal(t, "Corefire", corefire.Name)
	assert.Equal(t, "#ff6b6b", corefire.Color.String())
	assert.Equal(t, Vec3{X: 150, Y: -80}, corefire.Position)
}

func TestLookupIsTotalAndInjective(t *testing.T) {
	table, err := Source{}.LoadPlanets()
	require.NoError(t, err)

	for _, p := range table.All() {
		got, err := table.Lookup(p.ID)
		require.NoError(t, err, p.ID)
		assert.Equal(t, p, got)
	}

	_, err = table.Lookup("andromeda")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPlanetNotFound))

	var empty *Table
	_, err = empty.Lookup("corefire")
	assert.True(t, errors.Is(err, ErrPlanetNotFound))
}

func TestNewTableRejectsBadRows(t *testing.T) {
	cases := []struct {
		name    string
		planets []Planet
	}{
		{"empty_id", []Planet{{ID: " "}}},
		{"duplicate_id", []Planet{{ID: "a"}, {ID: "a"}}},
		{"negative_duration", []Planet{{ID: "a", Tracks: []Track{{Duration: -1}}}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewTable(c.planets)
			assert.Error(t, err)
		})
	}

	table, err := NewTable(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
}

func TestHex(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"#4a90e2", "#4a90e2", false},
		{"ff6b6b", "#ff6b6b", false},
		{"#00000080", "#00000080", false},
		{"#abc", "", true},
		{"#zzzzzz", "", true},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := Hex(c.in)
			if c.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, got.String())
		})
	}
}

func TestParsePlanetsRejectsBadColor(t *testing.T) {
	_, err := ParsePlanets([]byte("planets:\n  - id: x\n    color: [1, 2]\n"))
	assert.Error(t, err)
}

func TestMessages(t *testing.T) {
	m, err := Source{}.LoadMessages()
	require.NoError(t, err)

	require.Len(t, m.Loading, 6)
	assert.Equal(t, 1500*time.Millisecond, m.Loading[0].Duration)
	assert.True(t, m.Loading[5].Final)
	for _, msg := range m.Loading[:5] {
		assert.False(t, msg.Final)
	}
	assert.Len(t, m.Transition, 5)
	assert.Len(t, m.PlanetEntry, 3)
	assert.Len(t, m.Blackhole, 4)
	assert.Contains(t, m.Transition, "Memory fragment approaching — brace for impact.")
	assert.Equal(t, "Tap anywhere to enter the universe.", m.Loading[5].Text)
}

func TestCycle(t *testing.T) {
	lines := []string{"a", "b", "c"}
	assert.Equal(t, "", Cycle(nil, time.Second, time.Second))
	assert.Equal(t, "a", Cycle(lines, 0, time.Second))
	assert.Equal(t, "b", Cycle(lines, 1500*time.Millisecond, time.Second))
	assert.Equal(t, "a", Cycle(lines, 3*time.Second, time.Second))
	assert.Equal(t, "a", Cycle(lines, 5*time.Second, 0))
}

func TestEmbeddedCatalogCompiles(t *testing.T) {
	src, err := ScriptsFS.ReadFile("scripts/" + CatalogScript)
	require.NoError(t, err)
	_, err = NewCatalog(src)
	require.NoError(t, err)

	catalog, err := Source{}.LoadCatalog()
	require.NoError(t, err)
	table, err := Source{}.LoadPlanets()
	require.NoError(t, err)
	for _, p := range table.All() {
		theme, err := catalog.Theme(p)
		require.NoError(t, err, p.ID)
		assert.Equal(t, p.Name+" Theme", theme.Title)
		tracks, err := catalog.Tracks(p)
		require.NoError(t, err, p.ID)
		assert.Len(t, tracks, 3, p.ID)
	}
}

func TestCatalog(t *testing.T) {
	catalog, err := Source{}.LoadCatalog()
	require.NoError(t, err)

	p := Planet{ID: "echo-blue", Name: "Echo Blue"}

	theme, err := catalog.Theme(p)
	require.NoError(t, err)
	assert.Equal(t, Track{ID: 1, Title: "Echo Blue Theme", Artist: "Space Composer", Duration: 240, URL: "/sounds/echo-blue/theme.mp3"}, theme)

	tracks, err := catalog.Tracks(p)
	require.NoError(t, err)
	require.Len(t, tracks, 3)
	assert.Equal(t, "Echo Blue Ambient", tracks[0].Title)
	assert.Equal(t, 245, tracks[0].Duration)
	assert.Equal(t, "Deep Echo Blue", tracks[1].Title)
	assert.Equal(t, "Space Orchestra", tracks[1].Artist)
	assert.Equal(t, "/sounds/echo-blue/track2.mp3", tracks[1].URL)
	assert.Equal(t, "Echo Blue Dreams", tracks[2].Title)
	assert.Equal(t, 198, tracks[2].Duration)

	own := Planet{ID: "x", Name: "X", Tracks: []Track{{ID: 9, Title: "Real"}}}
	tracks, err = catalog.Tracks(own)
	require.NoError(t, err)
	assert.Equal(t, own.Tracks, tracks)
}

func TestCatalogRejectsBrokenScript(t *testing.T) {
	_, err := NewCatalog([]byte("theme := {"))
	assert.Error(t, err)

	catalog, err := NewCatalog([]byte("x := 1"))
	require.NoError(t, err)
	_, err = catalog.Theme(Planet{ID: "a"})
	assert.Error(t, err)
}

func TestSourcePrefersDisk(t *testing.T) {
	dir := t.TempDir()
	doc := "planets:\n  - id: solo\n    name: Solo\n    color: \"#ffffff\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, PlanetsFile), []byte(doc), 0o644))

	table, err := Source{Dir: dir}.LoadPlanets()
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	assert.Equal(t, "solo", table.All()[0].ID)

	_, ok := Source{Dir: dir}.ModTime(PlanetsFile)
	assert.True(t, ok)

	// Files missing on disk fall back to the embedded copy.
	m, err := Source{Dir: dir}.LoadMessages()
	require.NoError(t, err)
	assert.NotEmpty(t, m.Loading)
}

func TestWatcherReportsTableEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	path := filepath.Join(dir, PlanetsFile)
	require.NoError(t, os.WriteFile(path, []byte("planets: []\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	var got []string
	require.Eventually(t, func() bool {
		got = append(got, w.Poll()...)
		return len(got) > 0
	}, 2*time.Second, 10*time.Millisecond)
	for _, name := range got {
		assert.Equal(t, PlanetsFile, filepath.Base(name))
	}

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}

func TestWatcherReportsBurstOnceAfterLastWrite(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	path := filepath.Join(dir, MessagesFile)
	var lastWrite time.Time
	for i := range 5 {
		require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("#", i+1)+"\n"), 0o644))
		lastWrite = time.Now()
		time.Sleep(Debounce / 5)
	}

	var got []string
	var seen time.Time
	require.Eventually(t, func() bool {
		got = append(got, w.Poll()...)
		seen = time.Now()
		return len(got) > 0
	}, 2*time.Second, 5*time.Millisecond)
	assert.GreaterOrEqual(t, seen.Sub(lastWrite), Debounce, "reported only after the burst went quiet")

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "#####\n", string(b))

	time.Sleep(3 * Debounce)
	got = append(got, w.Poll()...)
	assert.Len(t, got, 1)
	assert.Equal(t, MessagesFile, filepath.Base(got[0]))
}
