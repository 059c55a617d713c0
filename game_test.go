package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/orbitcore/data"
	"github.com/milk9111/orbitcore/loading"
	"github.com/milk9111/orbitcore/route"
	"github.com/milk9111/orbitcore/store"
)

func TestViewFor(t *testing.T) {
	universe := route.Match{Name: route.Universe, Path: route.RootPath}
	planet := route.Match{Name: route.Planet, Path: route.PlanetPath("corefire"), PlanetID: "corefire"}

	assert.Equal(t, store.ViewUniverse, viewFor(universe, store.PlaybackNormal))
	assert.Equal(t, store.ViewUniverse, viewFor(universe, store.PlaybackBlackhole))
	assert.Equal(t, store.ViewPlanet, viewFor(planet, store.PlaybackNormal))
	assert.Equal(t, store.ViewBlackhole, viewFor(planet, store.PlaybackBlackhole))
	assert.Equal(t, store.ViewUniverse, viewFor(route.Match{Name: route.Unknown}, store.PlaybackNormal))
}

func TestLoadTablesEmbedded(t *testing.T) {
	tb, err := loadTables(data.Source{})
	require.NoError(t, err)

	assert.Equal(t, 6, tb.planets.Len())
	assert.NotEmpty(t, tb.messages.Loading)

	p, err := tb.planets.Lookup("corefire")
	require.NoError(t, err)
	theme, err := tb.catalog.Theme(p)
	require.NoError(t, err)
	assert.Equal(t, "Corefire Theme", theme.Title)
}

func TestLoadTablesFallsBackToEmbeddedForMissingDir(t *testing.T) {
	tb, err := loadTables(data.Source{Dir: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, 6, tb.planets.Len())
}

func TestConfirmAnywhereCompletesLoadingOnlyAtPrompt(t *testing.T) {
	msgs := []data.LoadingMessage{
		{Text: "Initializing..."},
		{Text: "Tap anywhere to enter the universe.", Final: true},
	}
	completed := 0
	seq := loading.New(context.Background(), msgs, loading.Options{
		Tick:          time.Second,
		ContinueDelay: time.Second,
		OnComplete:    func() { completed++ },
	})

	assert.False(t, stepLoading(seq, 0, true), "confirm before the prompt is ignored")
	assert.False(t, stepLoading(seq, time.Second, true), "last message shown, prompt not yet up")
	assert.Equal(t, 1, seq.Index())
	assert.Equal(t, 0, completed)

	assert.False(t, stepLoading(seq, time.Second, false))
	require.True(t, seq.CanContinue())

	assert.True(t, stepLoading(seq, 0, true))
	assert.Equal(t, loading.StateCompleted, seq.State())
	assert.False(t, stepLoading(seq, time.Second, true))
	assert.Equal(t, 1, completed)
}
