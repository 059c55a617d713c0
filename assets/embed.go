package assets

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

const SampleRate = 44100

//go:embed sounds
var soundsFS embed.FS

// AudioContext returns the process-wide audio context, creating it on first
// use. Ebiten allows only one.
var AudioContext = sync.OnceValue(func() *audio.Context {
	return audio.NewContext(SampleRate)
})

// LoadFile loads an embedded asset by track URL or assets-relative path.
func LoadFile(p string) ([]byte, error) {
	return soundsFS.ReadFile(cleanAssetPath(p))
}

// HasAudio reports whether an embedded file exists for p.
func HasAudio(p string) bool {
	_, err := soundsFS.Open(cleanAssetPath(p))
	return err == nil
}

// LoadAudioPlayer decodes an embedded audio asset and creates a player.
func LoadAudioPlayer(ctx *audio.Context, p string) (*audio.Player, error) {
	b, err := LoadFile(p)
	if err != nil {
		return nil, err
	}

	stream, err := decode(ctx.SampleRate(), p, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	if stream == nil {
		// Already-decoded PCM in Ebiten's native format.
		return ctx.NewPlayerFromBytes(b), nil
	}
	return ctx.NewPlayer(stream)
}

func decode(sampleRate int, p string, r *bytes.Reader) (io.Reader, error) {
	switch strings.ToLower(path.Ext(p)) {
	case ".wav":
		s, err := wav.DecodeWithSampleRate(sampleRate, r)
		if err != nil {
			return nil, fmt.Errorf("decode wav %q: %w", p, err)
		}
		return s, nil
	case ".mp3":
		s, err := mp3.DecodeWithSampleRate(sampleRate, r)
		if err != nil {
			return nil, fmt.Errorf("decode mp3 %q: %w", p, err)
		}
		return s, nil
	case ".ogg":
		s, err := vorbis.DecodeWithSampleRate(sampleRate, r)
		if err != nil {
			return nil, fmt.Errorf("decode ogg %q: %w", p, err)
		}
		return s, nil
	default:
		return nil, nil
	}
}

// cleanAssetPath maps "/sounds/x/theme.mp3", "assets/sounds/x/theme.mp3"
// and "sounds/x/theme.mp3" to the same embedded path.
func cleanAssetPath(p string) string {
	s := strings.TrimPrefix(path.Clean("/"+strings.ReplaceAll(p, "\\", "/")), "/")
	if idx := strings.LastIndex(s, "assets/"); idx >= 0 {
		s = s[idx+len("assets/"):]
	}
	return s
}
