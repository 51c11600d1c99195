package pcm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrames(t *testing.T) {
	assert.Equal(t, 256, Frames(256*8, 2))
	assert.Equal(t, 1, Frames(15, 2))
	assert.Equal(t, 0, Frames(64, 0))
}

func TestEncodeLittleEndian(t *testing.T) {
	dst := make([]byte, 8)
	n := Encode(dst, []float32{1, -0.5})
	assert.Equal(t, 8, n)
	// 1.0 = 0x3f800000, -0.5 = 0xbf000000
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x3f, 0x00, 0x00, 0x00, 0xbf}, dst)
}

func TestEncodeStopsWhenFull(t *testing.T) {
	dst := make([]byte, 6)
	n := Encode(dst, []float32{0.25, 0.5})
	assert.Equal(t, 4, n)
}

func TestDecodeIgnoresTrailingBytes(t *testing.T) {
	src := []byte{0x00, 0x00, 0x80, 0x3f, 0xff}
	dst := make([]float32, 4)
	n := Decode(dst, src)
	assert.Equal(t, 1, n)
	assert.Equal(t, float32(1), dst[0])
}

func TestBufferReuse(t *testing.T) {
	var b Buffer
	s := b.Samples(4)
	s[0] = 1
	again := b.Samples(2)
	assert.Equal(t, []float32{0, 0}, again)
	assert.Same(t, &s[0], &again[0])
	assert.Len(t, b.Samples(16), 16)
}
