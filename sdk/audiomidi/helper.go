// Package audiomidi opens the default audio output and a MIDI input port and
// forwards their device callbacks to two simple user callbacks.
package audiomidi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"go.uber.org/multierr"

	"github.com/leandrodaf/audiomidi/sdk/contracts"
)

// Helper owns the audio stream and MIDI port opened by New.
type Helper struct {
	options contracts.Options
	logger  contracts.Logger

	audio     contracts.AudioOutput
	midi      contracts.MIDIInput
	streamCfg contracts.StreamConfig

	audioStarted bool
	midiStarted  bool

	mu     sync.Mutex
	closed bool
}

// New opens audio when an audio callback is configured and MIDI when a MIDI
// callback is configured. With WithStayOpen it then blocks until a byte is
// read from stdin, stdin ends, or ctx is done.
//
// opts ...contracts.Option: A variadic list of option functions to customize the helper.
//
// Returns:
//   - *Helper: the running helper; call Close to release the devices.
//   - error: contracts.ErrNoAudioDevices, contracts.ErrNoMIDIPorts or a backend
//     error. Everything opened so far is released before it is returned.
func New(ctx context.Context, opts ...contracts.Option) (*Helper, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}

	h := &Helper{options: options, logger: options.Logger}

	if options.AudioCallback != nil {
		if err := h.startAudio(); err != nil {
			h.logger.Error("Failed to start audio", h.logger.Field().Error("error", err))
			return nil, multierr.Append(err, h.Close())
		}
	}

	if options.MIDICallback != nil {
		if err := h.startMIDI(); err != nil {
			h.logger.Error("Failed to start MIDI", h.logger.Field().Error("error", err))
			return nil, multierr.Append(err, h.Close())
		}
	}

	if options.StayOpen {
		h.waitForKey(ctx)
	}

	return h, nil
}

// StreamConfig returns the audio stream configuration in effect. The backend
// may have changed the requested buffer size.
func (h *Helper) StreamConfig() contracts.StreamConfig {
	return h.streamCfg
}

func (h *Helper) startAudio() error {
	out, err := newAudioOutput(&h.options)
	if err != nil {
		return err
	}
	h.audio = out

	count, err := out.DeviceCount()
	if err != nil {
		return err
	}
	if count < 1 {
		h.logger.Error("No audio devices found!")
		return contracts.ErrNoAudioDevices
	}

	if dev, err := out.DefaultDevice(); err != nil {
		h.logger.Warn("Could not describe default output device", h.logger.Field().Error("error", err))
	} else {
		h.logger.Info("Using default output device", h.logger.Field().String("device", dev.Name))
	}

	cfg, err := out.Open(contracts.StreamConfig{
		SampleRate: h.options.SampleRate,
		BufferSize: h.options.BufferSize,
		Channels:   2,
	}, h.options.AudioCallback)
	if err != nil {
		return err
	}
	h.streamCfg = cfg

	if err := out.Start(); err != nil {
		return fmt.Errorf("starting audio stream: %w", err)
	}
	h.audioStarted = true

	h.logger.Info("Audio stream started",
		h.logger.Field().Int("sampleRate", int(cfg.SampleRate)),
		h.logger.Field().Int("bufferSize", int(cfg.BufferSize)))
	return nil
}

func (h *Helper) startMIDI() error {
	in, err := newMIDIInput(&h.options)
	if err != nil {
		return err
	}
	h.midi = in

	devices, err := in.ListDevices()
	if errors.Is(err, contracts.ErrNoMIDIPorts) || (err == nil && len(devices) == 0) {
		h.logger.Error("No midi ports available!")
		return contracts.ErrNoMIDIPorts
	}
	if err != nil {
		return err
	}

	if err := in.SelectDevice(h.options.MIDIPort); err != nil {
		return err
	}
	if err := in.StartCapture(h.handleMIDI); err != nil {
		return err
	}
	h.midiStarted = true

	h.logger.Info("MIDI input started", h.logger.Field().Int("port", h.options.MIDIPort))
	return nil
}

// handleMIDI parses a raw message, forwards note events to the MIDI callback
// and logs the raw bytes at debug level.
func (h *Helper) handleMIDI(data []byte, stamp float64) {
	if msg, ok := ParseMessage(data); ok {
		if msg.Type == contracts.NoteOn && msg.Velocity == 0 && h.options.VelocityZeroNoteOff && len(data) > 2 {
			msg.Type = contracts.NoteOff
		}
		h.options.MIDICallback(msg)

		h.logger.Debug("MIDI note",
			h.logger.Field().Int("channel", msg.Channel),
			h.logger.Field().String("type", msg.Type.String()),
			h.logger.Field().Int("note", msg.Note))
	}

	if len(data) > 0 {
		h.logger.Debug("MIDI message",
			h.logger.Field().Binary("bytes", data),
			h.logger.Field().Float64("stamp", stamp))
	}
}

// waitForKey blocks until one byte is read from stdin, stdin ends, or ctx is
// done. A pending read is abandoned when ctx ends first.
func (h *Helper) waitForKey(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		var b [1]byte
		if _, err := io.ReadFull(h.options.Stdin, b[:]); err != nil && !errors.Is(err, io.EOF) {
			h.logger.Warn("Reading stdin", h.logger.Field().Error("error", err))
		}
	}()

	select {
	case <-done:
	case <-ctx.Done():
	}
}

// Close stops and closes the audio stream and stops MIDI capture. A failure
// to stop the stream is logged; the stream is still closed. Close is safe to
// call more than once.
func (h *Helper) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true

	var err error
	if h.audio != nil {
		if h.audioStarted {
			if stopErr := h.audio.Stop(); stopErr != nil {
				h.logger.Error("Failed to stop audio stream", h.logger.Field().Error("error", stopErr))
			}
		}
		if h.audio.IsOpen() {
			h.logger.Info("Closing audio stream")
		}
		err = multierr.Append(err, h.audio.Close())
	}

	if h.midi != nil {
		err = multierr.Append(err, h.midi.Stop())
	}

	return err
}
