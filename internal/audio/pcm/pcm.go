// Package pcm converts between interleaved float32 samples and the
// little-endian byte buffers used by byte-oriented audio backends.
package pcm

import (
	"encoding/binary"
	"math"
)

// BytesPerSample is the size of one float32 sample.
const BytesPerSample = 4

// Frames returns how many whole frames of the given channel count fit in n
// bytes of float32 data.
func Frames(n, channels int) int {
	if channels <= 0 {
		return 0
	}
	return n / (BytesPerSample * channels)
}

// Encode writes samples into dst as little-endian float32 and returns the
// number of bytes written. It stops when dst is full.
func Encode(dst []byte, samples []float32) int {
	n := 0
	for _, s := range samples {
		if n+BytesPerSample > len(dst) {
			break
		}
		binary.LittleEndian.PutUint32(dst[n:], math.Float32bits(s))
		n += BytesPerSample
	}
	return n
}

// Decode reads little-endian float32 samples from src into dst and returns
// the number of samples read.
func Decode(dst []float32, src []byte) int {
	n := 0
	for i := 0; i+BytesPerSample <= len(src) && n < len(dst); i += BytesPerSample {
		dst[n] = math.Float32frombits(binary.LittleEndian.Uint32(src[i:]))
		n++
	}
	return n
}

// Buffer is a reusable float32 scratch buffer that grows on demand. It is not
// safe for concurrent use; each stream owns one.
type Buffer struct {
	buf []float32
}

// Samples returns a zeroed slice of length n, reusing the previous
// allocation when it is large enough.
func (b *Buffer) Samples(n int) []float32 {
	if cap(b.buf) < n {
		b.buf = make([]float32, n)
	}
	b.buf = b.buf[:n]
	clear(b.buf)
	return b.buf
}
