package manager

import (
	"encoding/binary"
	"io"
	"testing"
	"time"
)

func TestToneLengthAndFrames(t *testing.T) {
	tone := NewTone(440, 100*time.Millisecond, 8000, 2)
	b, err := io.ReadAll(tone)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	// 800 frames * 2 channels * 2 bytes
	if len(b) != 3200 {
		t.Fatalf("got %d bytes, want 3200", len(b))
	}
	for i := 0; i < len(b); i += 4 {
		l := binary.LittleEndian.Uint16(b[i:])
		r := binary.LittleEndian.Uint16(b[i+2:])
		if l != r {
			t.Fatalf("frame %d: channels differ (%d vs %d)", i/4, l, r)
		}
	}
}

func TestToneEndless(t *testing.T) {
	tone := NewTone(220, 0, 8000, 1)
	buf := make([]byte, 1001)
	for i := 0; i < 50; i++ {
		n, err := tone.Read(buf)
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		if n != 1000 {
			t.Fatalf("expected whole frames only, got %d bytes", n)
		}
	}
}

func TestToneAmplitudeBounded(t *testing.T) {
	tone := NewTone(1000, 10*time.Millisecond, 48000, 1)
	b, _ := io.ReadAll(tone)
	for i := 0; i < len(b); i += 2 {
		s := int16(binary.LittleEndian.Uint16(b[i:]))
		if float64(s) > toneAmplitude || float64(s) < -toneAmplitude {
			t.Fatalf("sample %d out of range: %d", i/2, s)
		}
	}
}
