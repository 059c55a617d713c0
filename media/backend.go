// Package media plays the audio store's state through real audio players.
package media

import (
	"log"

	"github.com/milk9111/orbitcore/common"
	"github.com/milk9111/orbitcore/data"
	"github.com/milk9111/orbitcore/store"
)

const (
	DefaultFadeFrames = 30

	// BlackholeGain attenuates playback while the blackhole mode is on.
	BlackholeGain = 0.5
)

// Player is one opened track. *audio.Player satisfies it.
type Player interface {
	Play()
	Pause()
	Rewind() error
	IsPlaying() bool
	SetVolume(volume float64)
	Close() error
}

// PlayerFactory opens players for tracks.
type PlayerFactory interface {
	Open(track data.Track) (Player, error)
}

// Backend follows the audio store. Store notifications only record the
// wanted state; Update applies it once per frame, fading between tracks.
type Backend struct {
	factory    PlayerFactory
	fadeFrames int

	players map[string]Player

	want      store.AudioState
	haveWant  bool
	current   string
	curVolume float64

	pending  string
	fading   bool
	fadeStep float64
	paused   bool
	failed   string

	unsubscribe func()
}

func NewBackend(factory PlayerFactory, fadeFrames int) *Backend {
	if fadeFrames <= 0 {
		fadeFrames = DefaultFadeFrames
	}
	return &Backend{
		factory:    factory,
		fadeFrames: fadeFrames,
		players:    make(map[string]Player),
	}
}

// Attach subscribes b to h and takes h's current state as the target.
func (b *Backend) Attach(h store.AudioHandle) {
	b.Detach()
	b.want, b.haveWant = h.State(), true
	b.unsubscribe = h.Subscribe(func(_, next store.AudioState) {
		b.want, b.haveWant = next, true
	})
}

// Detach stops following the store.
func (b *Backend) Detach() {
	if b.unsubscribe != nil {
		b.unsubscribe()
		b.unsubscribe = nil
	}
}

// Current returns the key of the sounding track, or "".
func (b *Backend) Current() string {
	return b.current
}

// Volume is the volume applied to the current player.
func (b *Backend) Volume() float64 {
	return b.curVolume
}

// TargetVolume maps a store volume and mode to a player volume in [0,1].
func TargetVolume(s store.AudioState) float64 {
	v := s.Volume
	if s.PlaybackMode == store.PlaybackBlackhole {
		v *= BlackholeGain
	}
	return common.Clamp01(v)
}

// TrackKey identifies a track's audio.
func TrackKey(t data.Track) string {
	if t.URL != "" {
		return t.URL
	}
	return t.Title
}

func (b *Backend) Update() {
	if !b.haveWant {
		return
	}

	wantKey := ""
	if b.want.CurrentTrack != nil {
		wantKey = TrackKey(*b.want.CurrentTrack)
	}
	if wantKey != b.failed {
		b.failed = ""
	}
	if wantKey != b.current && wantKey != b.failed && (!b.fading || wantKey != b.pending) {
		b.beginSwitch(wantKey)
	}

	if b.fading {
		b.updateFade()
		return
	}

	p := b.player(b.current)
	if p == nil {
		return
	}
	b.curVolume = TargetVolume(b.want)
	p.SetVolume(b.curVolume)

	switch {
	case b.want.IsPlaying && !p.IsPlaying():
		if !b.paused {
			// Finished; loop from the start.
			if err := p.Rewind(); err != nil {
				log.Printf("media: rewind %q: %v", b.current, err)
			}
		}
		b.paused = false
		p.Play()
	case !b.want.IsPlaying && p.IsPlaying():
		p.Pause()
		b.paused = true
	}
}

func (b *Backend) beginSwitch(key string) {
	b.pending = key
	cur := b.player(b.current)
	if cur == nil || !cur.IsPlaying() {
		if cur != nil {
			cur.Pause()
		}
		b.fading = false
		b.switchToPending()
		return
	}
	b.fading = true
	b.fadeStep = b.curVolume / float64(b.fadeFrames)
	if b.fadeStep <= 0 {
		b.fadeStep = 1
	}
}

func (b *Backend) updateFade() {
	cur := b.player(b.current)
	if cur == nil {
		b.fading = false
		b.switchToPending()
		return
	}

	b.curVolume -= b.fadeStep
	if b.curVolume > 0 {
		cur.SetVolume(b.curVolume)
		return
	}

	b.curVolume = 0
	cur.SetVolume(0)
	cur.Pause()
	if err := cur.Rewind(); err != nil {
		log.Printf("media: rewind %q: %v", b.current, err)
	}
	b.fading = false
	b.switchToPending()
}

func (b *Backend) switchToPending() {
	b.pending = ""
	b.current = ""
	b.curVolume = 0
	if b.want.CurrentTrack == nil {
		return
	}

	key := TrackKey(*b.want.CurrentTrack)
	p, err := b.playerFor(*b.want.CurrentTrack)
	if err != nil {
		log.Printf("media: open %q: %v", key, err)
		b.failed = key
		return
	}
	b.current = key
	b.paused = !b.want.IsPlaying
	b.curVolume = TargetVolume(b.want)
	if err := p.Rewind(); err != nil {
		log.Printf("media: rewind %q: %v", key, err)
	}
	p.SetVolume(b.curVolume)
	if b.want.IsPlaying {
		p.Play()
	}
}

func (b *Backend) player(key string) Player {
	if key == "" {
		return nil
	}
	return b.players[key]
}

func (b *Backend) playerFor(t data.Track) (Player, error) {
	key := TrackKey(t)
	if p, ok := b.players[key]; ok && p != nil {
		return p, nil
	}
	p, err := b.factory.Open(t)
	if err != nil {
		return nil, err
	}
	b.players[key] = p
	return p, nil
}

// Close detaches and releases every opened player.
func (b *Backend) Close() error {
	b.Detach()
	var first error
	for key, p := range b.players {
		p.Pause()
		if err := p.Close(); err != nil && first == nil {
			first = err
		}
		delete(b.players, key)
	}
	b.current, b.pending, b.fading = "", "", false
	b.haveWant = false
	return first
}
