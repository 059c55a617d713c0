package media

import (
	"encoding/binary"
	"hash/fnv"
	"math"

	"github.com/milk9111/orbitcore/data"
)

// Pentatonic degrees above A3; every track gets one as its root.
var toneSteps = []float64{0, 2, 4, 7, 9, 12, 14, 16}

const toneBase = 220.0

// ToneFrequency picks a stable root frequency for a track.
func ToneFrequency(t data.Track) float64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(TrackKey(t)))
	step := toneSteps[h.Sum32()%uint32(len(toneSteps))]
	return toneBase * math.Pow(2, step/12)
}

// Tone renders a soft two-voice drone as 16-bit little-endian stereo PCM,
// the format ebiten players read. It fades in and out so it loops cleanly.
func Tone(freq float64, seconds float64, sampleRate int) []byte {
	n := int(seconds * float64(sampleRate))
	if n <= 0 || freq <= 0 {
		return nil
	}
	fade := sampleRate / 10
	out := make([]byte, n*4)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(sampleRate)
		v := 0.6*math.Sin(2*math.Pi*freq*t) + 0.25*math.Sin(2*math.Pi*freq*1.5*t)
		env := 1.0
		if i < fade {
			env = float64(i) / float64(fade)
		} else if n-i < fade {
			env = float64(n-i) / float64(fade)
		}
		sample := int16(v * env * 0.3 * math.MaxInt16)
		binary.LittleEndian.PutUint16(out[i*4:], uint16(sample))
		binary.LittleEndian.PutUint16(out[i*4+2:], uint16(sample))
	}
	return out
}
