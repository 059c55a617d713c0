package store

import (
	"slices"

	"github.com/milk9111/orbitcore/data"
)

// PlaybackMode alters playback presentation. Only the flag lives here; what
// blackhole playback sounds like is up to the media backend.
type PlaybackMode string

const (
	PlaybackNormal    PlaybackMode = "normal"
	PlaybackBlackhole PlaybackMode = "blackhole"
)

const DefaultVolume = 0.7

// AudioState is what the app believes is playing.
type AudioState struct {
	CurrentTrack  *data.Track
	IsPlaying     bool
	Volume        float64
	CurrentPlanet *data.Planet
	Playlist      []data.Track
	PlaybackMode  PlaybackMode
}

// NewAudioState returns the state of a freshly mounted app.
func NewAudioState() AudioState {
	return AudioState{
		Volume:       DefaultVolume,
		PlaybackMode: PlaybackNormal,
		Playlist:     []data.Track{},
	}
}

func cloneAudioState(s AudioState) AudioState {
	if s.CurrentTrack != nil {
		t := *s.CurrentTrack
		s.CurrentTrack = &t
	}
	if s.CurrentPlanet != nil {
		p := *s.CurrentPlanet
		p.Tracks = slices.Clone(p.Tracks)
		s.CurrentPlanet = &p
	}
	if s.Playlist != nil {
		s.Playlist = slices.Clone(s.Playlist)
	}
	return s
}

// AudioAction is the closed set of audio store transitions.
type AudioAction interface {
	Type() string
	audioAction()
}

type PlayTrack struct{ Track data.Track }
type Pause struct{}
type Resume struct{}

// SetVolume is applied as given. Callers supply values in [0,1]; the media
// backend clamps what it hands to the audio device.
type SetVolume struct{ Volume float64 }
type SetPlanet struct{ Planet data.Planet }
type SetPlaylist struct{ Tracks []data.Track }
type SetPlaybackMode struct{ Mode PlaybackMode }

func (PlayTrack) Type() string       { return "PLAY_TRACK" }
func (Pause) Type() string           { return "PAUSE" }
func (Resume) Type() string          { return "RESUME" }
func (SetVolume) Type() string       { return "SET_VOLUME" }
func (SetPlanet) Type() string       { return "SET_PLANET" }
func (SetPlaylist) Type() string     { return "SET_PLAYLIST" }
func (SetPlaybackMode) Type() string { return "SET_PLAYBACK_MODE" }

func (PlayTrack) audioAction()       {}
func (Pause) audioAction()           {}
func (Resume) audioAction()          {}
func (SetVolume) audioAction()       {}
func (SetPlanet) audioAction()       {}
func (SetPlaylist) audioAction()     {}
func (SetPlaybackMode) audioAction() {}

// ReduceAudio is the audio store reducer.
func ReduceAudio(state AudioState, action AudioAction) AudioState {
	switch a := action.(type) {
	case PlayTrack:
		t := a.Track
		state.CurrentTrack = &t
		state.IsPlaying = true
	case Pause:
		state.IsPlaying = false
	case Resume:
		state.IsPlaying = true
	case SetVolume:
		state.Volume = a.Volume
	case SetPlanet:
		p := a.Planet
		p.Tracks = slices.Clone(p.Tracks)
		state.CurrentPlanet = &p
	case SetPlaylist:
		state.Playlist = slices.Clone(a.Tracks)
		if state.Playlist == nil {
			state.Playlist = []data.Track{}
		}
	case SetPlaybackMode:
		state.PlaybackMode = a.Mode
	}
	return state
}

// AudioStore is the store of one mounted app's audio state.
type AudioStore = Store[AudioState, AudioAction]

// NewAudioStore creates an audio store with default state.
func NewAudioStore() *AudioStore {
	return New(NewAudioState(), ReduceAudio, cloneAudioState)
}
