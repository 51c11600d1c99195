package audiomalgo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leandrodaf/audiomidi/internal/audio/pcm"
	"github.com/leandrodaf/audiomidi/sdk/contracts"
)

func TestProcessEncodesCallbackOutput(t *testing.T) {
	frames := 0
	o := &Output{
		cfg: contracts.StreamConfig{SampleRate: 44100, BufferSize: 3, Channels: 2},
		callback: func(in, out []float32, n int) {
			assert.Nil(t, in)
			frames = n
			for i := range out {
				out[i] = float32(i)
			}
		},
	}

	out := make([]byte, 3*2*pcm.BytesPerSample)
	o.process(out, nil, 3)

	assert.Equal(t, 3, frames)
	decoded := make([]float32, 6)
	assert.Equal(t, 6, pcm.Decode(decoded, out))
	assert.Equal(t, []float32{0, 1, 2, 3, 4, 5}, decoded)
}

func TestProcessSkipsEmptyPeriods(t *testing.T) {
	called := false
	o := &Output{
		cfg:      contracts.StreamConfig{Channels: 2},
		callback: func(_, _ []float32, _ int) { called = true },
	}
	o.process(nil, nil, 0)
	assert.False(t, called)
}

func TestStreamOperationsNeedOpenDevice(t *testing.T) {
	o := &Output{}
	assert.False(t, o.IsOpen())
	assert.ErrorIs(t, o.Start(), contracts.ErrStreamNotOpen)
	assert.ErrorIs(t, o.Stop(), contracts.ErrStreamNotOpen)
	assert.NoError(t, o.Close())
}

func TestOpenAfterCloseFails(t *testing.T) {
	o := &Output{}
	_, err := o.Open(contracts.StreamConfig{SampleRate: 44100, BufferSize: 256, Channels: 2}, nil)
	assert.ErrorIs(t, err, contracts.ErrClosed)
}
