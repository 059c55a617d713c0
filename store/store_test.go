package store

import (
	"context"
	"errors"
	"testing"

	"github.com/milk9111/orbitcore/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bogusAudio struct{}

func (bogusAudio) Type() string { return "BOGUS" }
func (bogusAudio) audioAction() {}

type bogusApp struct{}

func (bogusApp) Type() string { return "BOGUS" }
func (bogusApp) appAction()   {}

var (
	theme = data.Track{ID: 1, Title: "Corefire Theme", Artist: "Space Composer", Duration: 240, URL: "/sounds/corefire/theme.mp3"}
	other = data.Track{ID: 2, Title: "Deep Echo Blue", Artist: "Space Orchestra", Duration: 312}
)

func TestAudioDefaults(t *testing.T) {
	s := NewAudioStore().State()
	assert.Nil(t, s.CurrentTrack)
	assert.False(t, s.IsPlaying)
	assert.Equal(t, 0.7, s.Volume)
	assert.Nil(t, s.CurrentPlanet)
	assert.Empty(t, s.Playlist)
	assert.Equal(t, PlaybackNormal, s.PlaybackMode)
}

func TestReduceAudio(t *testing.T) {
	planet := data.Planet{ID: "corefire", Name: "Corefire"}
	cases := []struct {
		name   string
		start  AudioState
		action AudioAction
		check  func(t *testing.T, s AudioState)
	}{
		{
			name:   "play_track_from_paused",
			start:  NewAudioState(),
			action: PlayTrack{Track: theme},
			check: func(t *testing.T, s AudioState) {
				require.NotNil(t, s.CurrentTrack)
				assert.Equal(t, theme, *s.CurrentTrack)
				assert.True(t, s.IsPlaying)
			},
		},
		{
			name:   "play_track_while_playing",
			start:  AudioState{IsPlaying: true, CurrentTrack: &other},
			action: PlayTrack{Track: theme},
			check: func(t *testing.T, s AudioState) {
				assert.Equal(t, "Corefire Theme", s.CurrentTrack.Title)
				assert.True(t, s.IsPlaying)
			},
		},
		{
			name:   "pause",
			start:  AudioState{IsPlaying: true},
			action: Pause{},
			check:  func(t *testing.T, s AudioState) { assert.False(t, s.IsPlaying) },
		},
		{
			name:   "resume",
			start:  AudioState{},
			action: Resume{},
			check:  func(t *testing.T, s AudioState) { assert.True(t, s.IsPlaying) },
		},
		{
			name:   "volume_is_not_clamped",
			start:  NewAudioState(),
			action: SetVolume{Volume: 1.5},
			check:  func(t *testing.T, s AudioState) { assert.Equal(t, 1.5, s.Volume) },
		},
		{
			name:   "set_planet",
			start:  NewAudioState(),
			action: SetPlanet{Planet: planet},
			check: func(t *testing.T, s AudioState) {
				require.NotNil(t, s.CurrentPlanet)
				assert.Equal(t, "corefire", s.CurrentPlanet.ID)
			},
		},
		{
			name:   "playback_mode",
			start:  NewAudioState(),
			action: SetPlaybackMode{Mode: PlaybackBlackhole},
			check:  func(t *testing.T, s AudioState) { assert.Equal(t, PlaybackBlackhole, s.PlaybackMode) },
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			c.check(t, ReduceAudio(c.start, c.action))
		})
	}
}

func TestReduceAudioIsPure(t *testing.T) {
	start := NewAudioState()
	start.Playlist = []data.Track{theme}
	actions := []AudioAction{
		PlayTrack{Track: theme}, Pause{}, Resume{}, SetVolume{Volume: 0.2},
		SetPlanet{Planet: data.Planet{ID: "x"}}, SetPlaylist{Tracks: []data.Track{other}},
		SetPlaybackMode{Mode: PlaybackBlackhole},
	}
	for _, a := range actions {
		t.Run(a.Type(), func(t *testing.T) {
			before := cloneAudioState(start)
			first := ReduceAudio(start, a)
			second := ReduceAudio(start, a)
			assert.Equal(t, first, second)
			assert.Equal(t, before, start, "input state must not change")
		})
	}
}

func TestUnknownActionsAreNoOps(t *testing.T) {
	audio := NewAudioState()
	audio.CurrentTrack = &theme
	assert.Equal(t, audio, ReduceAudio(audio, bogusAudio{}))
	assert.Equal(t, audio, ReduceAudio(audio, nil))

	app := NewAppState()
	assert.Equal(t, app, ReduceApp(app, bogusApp{}))
	assert.Equal(t, app, ReduceApp(app, nil))
}

func TestPlaybackFlagsAreIdempotent(t *testing.T) {
	s := NewAudioStore()
	s.Dispatch(PlayTrack{Track: theme})
	s.Dispatch(Pause{})
	once := s.State()
	s.Dispatch(Pause{})
	assert.Equal(t, once, s.State())

	s.Dispatch(Resume{})
	s.Dispatch(Resume{})
	assert.True(t, s.State().IsPlaying)

	s.Dispatch(Pause{})
	s.Dispatch(PlayTrack{Track: other})
	assert.True(t, s.State().IsPlaying)
}

func TestSetPlaylistReadBack(t *testing.T) {
	s := NewAudioStore()
	list := []data.Track{other, theme, other}
	s.Dispatch(SetPlaylist{Tracks: list})

	got := s.State().Playlist
	assert.Equal(t, list, got)

	got[0].Title = "changed"
	list[1].Title = "changed too"
	assert.Equal(t, "Deep Echo Blue", s.State().Playlist[0].Title)
	assert.Equal(t, "Corefire Theme", s.State().Playlist[1].Title)
	assert.Equal(t, "changed too", list[1].Title, "caller's slice is left alone")
}

func TestStateReadsDoNotAlias(t *testing.T) {
	s := NewAudioStore()
	s.Dispatch(PlayTrack{Track: theme})
	read := s.State()
	read.CurrentTrack.Title = "mutated"
	assert.Equal(t, "Corefire Theme", s.State().CurrentTrack.Title)
}

func TestReduceApp(t *testing.T) {
	s := NewAppStore()
	assert.Equal(t, AppState{CurrentView: ViewLoading, IsLoading: true}, s.State())

	s.Dispatch(SetLoading{Loading: false})
	s.Dispatch(SetView{View: ViewUniverse})
	s.Dispatch(SetError{Err: `planet "x" not found`})
	assert.Equal(t, AppState{CurrentView: ViewUniverse, Error: `planet "x" not found`}, s.State())

	s.Dispatch(SetError{})
	assert.Empty(t, s.State().Error)
}

func TestSubscribeOrdering(t *testing.T) {
	s := NewAudioStore()
	var seen []string
	unsub := s.Subscribe(func(prev, next AudioState) {
		if next.IsPlaying && !prev.IsPlaying {
			seen = append(seen, "started")
			s.Dispatch(SetVolume{Volume: 0.5})
		}
		if next.Volume != prev.Volume {
			seen = append(seen, "volume")
		}
	})

	s.Dispatch(PlayTrack{Track: theme})
	assert.Equal(t, []string{"started", "volume"}, seen)
	assert.Equal(t, 0.5, s.State().Volume)

	unsub()
	s.Dispatch(Pause{})
	s.Dispatch(Resume{})
	assert.Len(t, seen, 2)
}

func TestScope(t *testing.T) {
	ctx := context.Background()

	assertUsageError := func(t *testing.T, fn func()) {
		t.Helper()
		defer func() {
			r := recover()
			require.NotNil(t, r)
			err, ok := r.(error)
			require.True(t, ok)
			assert.True(t, errors.Is(err, ErrOutsideScope))
		}()
		fn()
	}
	assertUsageError(t, func() { Audio(ctx) })
	assertUsageError(t, func() { App(ctx) })

	audio := NewAudioStore()
	app := NewAppStore()
	scoped := WithApp(WithAudio(ctx, audio), app)
	scoped = WithSession(scoped, "abc")

	Audio(scoped).Dispatch(Resume{})
	assert.True(t, audio.State().IsPlaying)
	App(scoped).Dispatch(SetView{View: ViewPlanet})
	assert.Equal(t, ViewPlanet, app.State().CurrentView)
	assert.Equal(t, "abc", Session(scoped))
	assert.Empty(t, Session(ctx))
}
