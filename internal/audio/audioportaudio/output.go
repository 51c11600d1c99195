// Package audioportaudio plays audio through PortAudio's default output device.
package audioportaudio

import (
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"

	"github.com/leandrodaf/audiomidi/sdk/contracts"
)

// Output is a contracts.AudioOutput backed by a PortAudio callback stream.
type Output struct {
	logger   contracts.Logger
	mu       sync.Mutex
	stream   *portaudio.Stream
	cfg      contracts.StreamConfig
	callback contracts.AudioCallback
	closed   bool
}

// NewAudioOutput initializes PortAudio. Close terminates it again.
func NewAudioOutput(options *contracts.Options) (contracts.AudioOutput, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initializing portaudio: %w", err)
	}
	options.Logger.Info("PortAudio output created",
		options.Logger.Field().String("version", portaudio.VersionText()))

	return &Output{logger: options.Logger}, nil
}

// DeviceCount returns the number of devices PortAudio reports.
func (o *Output) DeviceCount() (int, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return 0, fmt.Errorf("listing audio devices: %w", err)
	}
	return len(devices), nil
}

// DefaultDevice describes the default output device.
func (o *Output) DefaultDevice() (contracts.AudioDeviceInfo, error) {
	dev, err := portaudio.DefaultOutputDevice()
	if err != nil {
		return contracts.AudioDeviceInfo{}, fmt.Errorf("default output device: %w", err)
	}
	return contracts.AudioDeviceInfo{
		Name:              dev.Name,
		MaxOutputChannels: dev.MaxOutputChannels,
		DefaultSampleRate: dev.DefaultSampleRate,
	}, nil
}

// Open opens an interleaved float32 stream on the default output device.
func (o *Output) Open(cfg contracts.StreamConfig, cb contracts.AudioCallback) (contracts.StreamConfig, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return cfg, contracts.ErrClosed
	}
	if o.stream != nil {
		return o.cfg, contracts.ErrStreamOpen
	}
	dev, err := portaudio.DefaultOutputDevice()
	if err != nil {
		return cfg, fmt.Errorf("default output device: %w", err)
	}

	params := portaudio.StreamParameters{
		Output: portaudio.StreamDeviceParameters{
			Device:   dev,
			Channels: cfg.Channels,
			Latency:  dev.DefaultLowOutputLatency,
		},
		SampleRate:      float64(cfg.SampleRate),
		FramesPerBuffer: int(cfg.BufferSize),
	}

	o.cfg = cfg
	o.callback = cb
	stream, err := portaudio.OpenStream(params, o.process)
	if err != nil {
		return cfg, fmt.Errorf("opening portaudio stream: %w", err)
	}
	o.stream = stream

	o.logger.Info("PortAudio stream opened",
		o.logger.Field().String("device", dev.Name),
		o.logger.Field().Int("sampleRate", int(cfg.SampleRate)),
		o.logger.Field().Int("bufferSize", int(cfg.BufferSize)))
	return cfg, nil
}

// process forwards one interleaved output buffer to the callback.
func (o *Output) process(out []float32) {
	o.callback(nil, out, len(out)/o.cfg.Channels)
}

func (o *Output) Start() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.stream == nil {
		return contracts.ErrStreamNotOpen
	}
	return o.stream.Start()
}

func (o *Output) Stop() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.stream == nil {
		return contracts.ErrStreamNotOpen
	}
	return o.stream.Stop()
}

func (o *Output) IsOpen() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.stream != nil
}

// Close closes the stream, if any, and terminates PortAudio.
func (o *Output) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return nil
	}
	o.closed = true

	var err error
	if o.stream != nil {
		err = o.stream.Close()
		o.stream = nil
	}
	if terr := portaudio.Terminate(); err == nil {
		err = terr
	}
	return err
}
