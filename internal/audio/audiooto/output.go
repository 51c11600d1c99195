// Package audiooto plays audio through an oto player that pulls samples from
// the audio callback.
package audiooto

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/leandrodaf/audiomidi/internal/audio/pcm"
	"github.com/leandrodaf/audiomidi/sdk/contracts"
)

// Output is a contracts.AudioOutput backed by oto. oto allows one context per
// process, so only one Output may be opened.
type Output struct {
	logger contracts.Logger
	mu     sync.Mutex
	octx   *oto.Context
	player *oto.Player
	cfg    contracts.StreamConfig
}

// NewAudioOutput returns an oto output; the context is created by Open once
// the sample rate is known.
func NewAudioOutput(options *contracts.Options) (contracts.AudioOutput, error) {
	options.Logger.Info("oto output created")
	return &Output{logger: options.Logger}, nil
}

// DeviceCount reports the system default device; oto does not enumerate.
func (o *Output) DeviceCount() (int, error) {
	return 1, nil
}

func (o *Output) DefaultDevice() (contracts.AudioDeviceInfo, error) {
	return contracts.AudioDeviceInfo{Name: "default", MaxOutputChannels: 2}, nil
}

// Open creates the oto context and a player reading from the callback.
func (o *Output) Open(cfg contracts.StreamConfig, cb contracts.AudioCallback) (contracts.StreamConfig, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.player != nil {
		return o.cfg, contracts.ErrStreamOpen
	}

	var bufferDuration time.Duration
	if cfg.BufferSize > 0 && cfg.SampleRate > 0 {
		bufferDuration = time.Duration(cfg.BufferSize) * time.Second / time.Duration(cfg.SampleRate)
	}
	octx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   int(cfg.SampleRate),
		ChannelCount: cfg.Channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   bufferDuration,
	})
	if err != nil {
		return cfg, fmt.Errorf("creating oto context: %w", err)
	}
	<-ready

	player := octx.NewPlayer(newCallbackReader(cfg.Channels, cb))
	if cfg.BufferSize > 0 {
		player.SetBufferSize(int(cfg.BufferSize) * cfg.Channels * pcm.BytesPerSample)
	}

	o.octx = octx
	o.player = player
	o.cfg = cfg

	o.logger.Info("oto player opened",
		o.logger.Field().Int("sampleRate", int(cfg.SampleRate)),
		o.logger.Field().Int("bufferSize", int(cfg.BufferSize)))
	return cfg, nil
}

func (o *Output) Start() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.player == nil {
		return contracts.ErrStreamNotOpen
	}
	if err := o.octx.Resume(); err != nil {
		return err
	}
	o.player.Play()
	return nil
}

func (o *Output) Stop() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.player == nil {
		return contracts.ErrStreamNotOpen
	}
	o.player.Pause()
	return o.octx.Suspend()
}

func (o *Output) IsOpen() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.player != nil
}

// Close closes the player. The oto context lives until the process exits.
func (o *Output) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.player == nil {
		return nil
	}
	err := o.player.Close()
	o.player = nil
	return err
}

// callbackReader adapts an AudioCallback to the io.Reader oto pulls from.
type callbackReader struct {
	channels int
	callback contracts.AudioCallback
	scratch  pcm.Buffer
}

func newCallbackReader(channels int, cb contracts.AudioCallback) *callbackReader {
	return &callbackReader{channels: channels, callback: cb}
}

// Read renders as many whole frames as fit in p.
func (r *callbackReader) Read(p []byte) (int, error) {
	frames := pcm.Frames(len(p), r.channels)
	if frames == 0 {
		return 0, nil
	}
	samples := r.scratch.Samples(frames * r.channels)
	r.callback(nil, samples, frames)
	return pcm.Encode(p, samples), nil
}
