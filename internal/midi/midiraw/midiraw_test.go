package midiraw

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLength(t *testing.T) {
	for status, want := range map[byte]int{
		0x3C: 0,
		0x80: 3,
		0x9F: 3,
		0xB0: 3,
		0xC5: 2,
		0xD0: 2,
		0xE1: 3,
		0xF0: -1,
		0xF1: 2,
		0xF2: 3,
		0xF3: 2,
		0xF6: 1,
		0xF8: 1,
		0xFE: 1,
	} {
		assert.Equal(t, want, Length(status), "status 0x%X", status)
	}
}

func TestIgnored(t *testing.T) {
	assert.True(t, Ignored(nil))
	assert.True(t, Ignored([]byte{0xF0, 0x7E, 0xF7}))
	assert.True(t, Ignored([]byte{0xF1, 0x10}))
	assert.True(t, Ignored([]byte{0xF8}))
	assert.True(t, Ignored([]byte{0xFE}))
	assert.False(t, Ignored([]byte{0x90, 60, 100}))
	assert.False(t, Ignored([]byte{0xFA}))
}

func TestSplit(t *testing.T) {
	for _, tc := range []struct {
		name   string
		packet []byte
		want   [][]byte
	}{
		{
			name:   "single note on",
			packet: []byte{0x90, 60, 100},
			want:   [][]byte{{0x90, 60, 100}},
		},
		{
			name:   "two messages",
			packet: []byte{0x90, 60, 100, 0x80, 60, 0},
			want:   [][]byte{{0x90, 60, 100}, {0x80, 60, 0}},
		},
		{
			name:   "running status",
			packet: []byte{0x91, 60, 100, 62, 90},
			want:   [][]byte{{0x91, 60, 100}, {0x91, 62, 90}},
		},
		{
			name:   "sysex then clock",
			packet: []byte{0xF0, 0x7E, 0x01, 0xF7, 0xF8},
			want:   [][]byte{{0xF0, 0x7E, 0x01, 0xF7}, {0xF8}},
		},
		{
			name:   "program change",
			packet: []byte{0xC0, 5},
			want:   [][]byte{{0xC0, 5}},
		},
		{
			name:   "truncated",
			packet: []byte{0x90, 60},
			want:   [][]byte{{0x90, 60}},
		},
		{
			name:   "stray data bytes",
			packet: []byte{60, 100},
			want:   nil,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Split(tc.packet))
		})
	}
}

func TestClock(t *testing.T) {
	base := time.Unix(1000, 0)
	times := []time.Time{base, base.Add(250 * time.Millisecond), base.Add(time.Second), base.Add(2 * time.Second)}
	i := 0
	c := NewClock(func() time.Time {
		t := times[i]
		i++
		return t
	})

	assert.Equal(t, 0.0, c.Stamp())
	assert.InDelta(t, 0.25, c.Stamp(), 1e-9)
	assert.InDelta(t, 0.75, c.Stamp(), 1e-9)
	c.Reset()
	assert.Equal(t, 0.0, c.Stamp())
}
