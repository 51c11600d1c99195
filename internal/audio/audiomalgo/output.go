// Package audiomalgo plays audio through miniaudio's default playback device.
package audiomalgo

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gen2brain/malgo"

	"github.com/leandrodaf/audiomidi/internal/audio/pcm"
	"github.com/leandrodaf/audiomidi/sdk/contracts"
)

// Output is a contracts.AudioOutput backed by a miniaudio playback device.
type Output struct {
	logger   contracts.Logger
	mu       sync.Mutex
	mctx     *malgo.AllocatedContext
	device   *malgo.Device
	cfg      contracts.StreamConfig
	callback contracts.AudioCallback
	scratch  pcm.Buffer
}

// NewAudioOutput creates a miniaudio context on the platform's default backend.
func NewAudioOutput(options *contracts.Options) (contracts.AudioOutput, error) {
	log := options.Logger
	mctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(msg string) {
		log.Debug("miniaudio", log.Field().String("message", strings.TrimSpace(msg)))
	})
	if err != nil {
		return nil, fmt.Errorf("initializing miniaudio: %w", err)
	}
	log.Info("miniaudio output created")

	return &Output{logger: log, mctx: mctx}, nil
}

// DeviceCount returns the number of playback devices.
func (o *Output) DeviceCount() (int, error) {
	infos, err := o.mctx.Devices(malgo.Playback)
	if err != nil {
		return 0, fmt.Errorf("listing playback devices: %w", err)
	}
	return len(infos), nil
}

// DefaultDevice describes the default playback device, or the first one when
// the backend does not flag a default.
func (o *Output) DefaultDevice() (contracts.AudioDeviceInfo, error) {
	infos, err := o.mctx.Devices(malgo.Playback)
	if err != nil {
		return contracts.AudioDeviceInfo{}, fmt.Errorf("listing playback devices: %w", err)
	}
	if len(infos) == 0 {
		return contracts.AudioDeviceInfo{}, contracts.ErrNoAudioDevices
	}
	chosen := infos[0]
	for _, info := range infos {
		if info.IsDefault != 0 {
			chosen = info
			break
		}
	}
	return contracts.AudioDeviceInfo{Name: chosen.Name()}, nil
}

// Open initializes a float32 playback device with the requested period size.
func (o *Output) Open(cfg contracts.StreamConfig, cb contracts.AudioCallback) (contracts.StreamConfig, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.mctx == nil {
		return cfg, contracts.ErrClosed
	}
	if o.device != nil {
		return o.cfg, contracts.ErrStreamOpen
	}

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.Playback.Format = malgo.FormatF32
	deviceConfig.Playback.Channels = uint32(cfg.Channels)
	deviceConfig.SampleRate = cfg.SampleRate
	deviceConfig.PeriodSizeInFrames = cfg.BufferSize

	o.cfg = cfg
	o.callback = cb
	device, err := malgo.InitDevice(o.mctx.Context, deviceConfig, malgo.DeviceCallbacks{
		Data: o.process,
	})
	if err != nil {
		return cfg, fmt.Errorf("initializing playback device: %w", err)
	}
	o.device = device

	o.logger.Info("miniaudio device opened",
		o.logger.Field().Int("sampleRate", int(cfg.SampleRate)),
		o.logger.Field().Int("bufferSize", int(cfg.BufferSize)))
	return cfg, nil
}

// process renders framecount frames through the callback and encodes them
// into the device buffer.
func (o *Output) process(out, _ []byte, framecount uint32) {
	if framecount == 0 {
		return
	}
	samples := o.scratch.Samples(int(framecount) * o.cfg.Channels)
	o.callback(nil, samples, int(framecount))
	pcm.Encode(out, samples)
}

func (o *Output) Start() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.device == nil {
		return contracts.ErrStreamNotOpen
	}
	return o.device.Start()
}

func (o *Output) Stop() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.device == nil {
		return contracts.ErrStreamNotOpen
	}
	return o.device.Stop()
}

func (o *Output) IsOpen() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.device != nil
}

// Close uninitializes the device and frees the context.
func (o *Output) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.device != nil {
		o.device.Uninit()
		o.device = nil
	}
	if o.mctx == nil {
		return nil
	}
	err := o.mctx.Uninit()
	o.mctx.Free()
	o.mctx = nil
	return err
}
