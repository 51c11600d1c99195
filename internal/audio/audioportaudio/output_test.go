package audioportaudio

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leandrodaf/audiomidi/sdk/contracts"
)

func TestProcessForwardsInterleavedBuffer(t *testing.T) {
	var gotIn, gotOut []float32
	var gotFrames int
	o := &Output{
		cfg: contracts.StreamConfig{SampleRate: 48000, BufferSize: 4, Channels: 2},
		callback: func(in, out []float32, frames int) {
			gotIn, gotOut, gotFrames = in, out, frames
			for i := range out {
				out[i] = 0.5
			}
		},
	}

	buf := make([]float32, 8)
	o.process(buf)

	assert.Nil(t, gotIn)
	assert.Equal(t, 4, gotFrames)
	assert.Len(t, gotOut, 8)
	assert.Equal(t, []float32{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5}, buf)
}

func TestStreamOperationsNeedOpenStream(t *testing.T) {
	o := &Output{}
	assert.False(t, o.IsOpen())
	assert.ErrorIs(t, o.Start(), contracts.ErrStreamNotOpen)
	assert.ErrorIs(t, o.Stop(), contracts.ErrStreamNotOpen)
}

func TestOpenAfterCloseFails(t *testing.T) {
	o := &Output{closed: true}
	_, err := o.Open(contracts.StreamConfig{SampleRate: 44100, BufferSize: 256, Channels: 2}, nil)
	assert.ErrorIs(t, err, contracts.ErrClosed)
}
