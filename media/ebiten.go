package media

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/orbitcore/assets"
	"github.com/milk9111/orbitcore/data"
)

const toneSeconds = 4

// AssetFactory opens embedded track audio, falling back to a generated
// tone when a track has no file.
type AssetFactory struct {
	ctx *audio.Context
}

func NewAssetFactory(ctx *audio.Context) *AssetFactory {
	if ctx == nil {
		ctx = assets.AudioContext()
	}
	return &AssetFactory{ctx: ctx}
}

func (f *AssetFactory) Open(t data.Track) (Player, error) {
	if t.URL != "" && assets.HasAudio(t.URL) {
		p, err := assets.LoadAudioPlayer(f.ctx, t.URL)
		if err == nil {
			return p, nil
		}
		log.Printf("media: load %q: %v; using tone", t.URL, err)
	}
	pcm := Tone(ToneFrequency(t), toneSeconds, f.ctx.SampleRate())
	return f.ctx.NewPlayerFromBytes(pcm), nil
}
