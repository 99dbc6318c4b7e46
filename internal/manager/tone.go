package manager

import (
	"encoding/binary"
	"io"
	"math"
	"time"
)

const toneAmplitude = 0.2 * math.MaxInt16

// Tone is an io.Reader producing signed 16-bit little-endian PCM of a sine
// wave. A zero duration plays forever.
type Tone struct {
	freq       float64
	sampleRate int
	channels   int
	frames     int64 // total frames, 0 = endless
	pos        int64
}

// NewTone returns a tone of freqHz lasting d.
func NewTone(freqHz float64, d time.Duration, sampleRate, channels int) *Tone {
	t := &Tone{freq: freqHz, sampleRate: sampleRate, channels: channels}
	if d > 0 {
		t.frames = int64(d.Seconds() * float64(sampleRate))
		if t.frames == 0 {
			t.frames = 1
		}
	}
	return t
}

// Read fills p with whole frames.
func (t *Tone) Read(p []byte) (int, error) {
	frameSize := 2 * t.channels
	n := int64(len(p) / frameSize)
	if n == 0 && len(p) > 0 {
		return 0, io.ErrShortBuffer
	}
	if t.frames > 0 {
		if remaining := t.frames - t.pos; remaining <= 0 {
			return 0, io.EOF
		} else if n > remaining {
			n = remaining
		}
	}
	step := 2 * math.Pi * t.freq / float64(t.sampleRate)
	off := 0
	for i := int64(0); i < n; i++ {
		s := int16(math.Sin(step*float64(t.pos)) * toneAmplitude)
		for c := 0; c < t.channels; c++ {
			binary.LittleEndian.PutUint16(p[off:], uint16(s))
			off += 2
		}
		t.pos++
	}
	return off, nil
}
