//go:build darwin
// +build darwin

package mididarwin

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/youpy/go-coremidi"

	"github.com/leandrodaf/audiomidi/internal/midi/midiraw"
	"github.com/leandrodaf/audiomidi/sdk/contracts"
)

// Error definitions for MIDI connection and handling issues.
var (
	ErrMIDIConnectionError = errors.New("error connecting to MIDI device")
	ErrCreateInputPort     = errors.New("error creating input port")
)

// internalPortConnection is an interface for handling disconnection from a MIDI port.
type internalPortConnection interface {
	Disconnect()
}

// ClientMid manages MIDI input on Darwin (macOS) systems through CoreMIDI.
type ClientMid struct {
	logger    contracts.Logger
	handler   atomic.Value           // contracts.RawMIDIHandler, set by StartCapture.
	client    coremidi.Client        // CoreMIDI client instance for MIDI operations.
	inputPort coremidi.InputPort     // Input port for receiving MIDI events.
	portConn  internalPortConnection // Connection to the selected source.
	clock     *midiraw.Clock
	mu        sync.Mutex
	capturing bool
	wg        sync.WaitGroup // Tracks packets being delivered.
	stopOnce  sync.Once
}

// NewMIDIClient creates the CoreMIDI client announced under the configured name.
func NewMIDIClient(options *contracts.Options) (contracts.MIDIInput, error) {
	client, err := coremidi.NewClient(options.ClientName)
	if err != nil {
		return nil, err
	}
	options.Logger.Info("MIDI client successfully created")

	return &ClientMid{
		logger: options.Logger,
		client: client,
		clock:  midiraw.NewClock(nil),
	}, nil
}

// ListDevices returns the CoreMIDI sources.
func (m *ClientMid) ListDevices() ([]contracts.DeviceInfo, error) {
	sources, err := coremidi.AllSources()
	if err != nil {
		return nil, fmt.Errorf("error listing MIDI sources: %w", err)
	}
	if len(sources) == 0 {
		m.logger.Warn(contracts.ErrNoMIDIPorts.Error())
		return nil, contracts.ErrNoMIDIPorts
	}

	devices := make([]contracts.DeviceInfo, len(sources))
	for i, source := range sources {
		sourceEntity := source.Entity()
		devices[i] = contracts.DeviceInfo{
			ID:           i,
			Name:         source.Name(),
			EntityName:   sourceEntity.Name(),
			Manufacturer: sourceEntity.Manufacturer(),
		}
	}
	return devices, nil
}

// SelectDevice connects the input port to the source at index deviceID.
// If a source is already connected, it disconnects first.
func (m *ClientMid) SelectDevice(deviceID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sources, err := coremidi.AllSources()
	if err != nil {
		return fmt.Errorf("error retrieving MIDI sources: %w", err)
	}
	if deviceID < 0 || deviceID >= len(sources) {
		m.logger.Error(contracts.ErrInvalidMIDIPort.Error(), m.logger.Field().Int("deviceID", deviceID))
		return fmt.Errorf("%w: %d", contracts.ErrInvalidMIDIPort, deviceID)
	}

	if m.portConn != nil {
		m.portConn.Disconnect()
		m.portConn = nil
	}

	source := sources[deviceID]
	m.logger.Info("MIDI device selected",
		m.logger.Field().Int("deviceID", deviceID),
		m.logger.Field().String("deviceName", source.Name()))

	m.inputPort, err = coremidi.NewInputPort(m.client, "Input Port", m.handlePacket)
	if err != nil {
		m.logger.Error(ErrCreateInputPort.Error())
		return fmt.Errorf("%w: %v", ErrCreateInputPort, err)
	}

	m.portConn, err = m.inputPort.Connect(source)
	if err != nil {
		m.logger.Error(ErrMIDIConnectionError.Error())
		return fmt.Errorf("%w: %v", ErrMIDIConnectionError, err)
	}

	m.logger.Info("MIDI device successfully connected")
	return nil
}

// handlePacket splits a CoreMIDI packet into messages and hands every
// message that is not sysex, time code or active sensing to the handler.
func (m *ClientMid) handlePacket(source coremidi.Source, packet coremidi.Packet) {
	m.wg.Add(1)
	defer m.wg.Done()

	handler, _ := m.handler.Load().(contracts.RawMIDIHandler)
	if handler == nil {
		return
	}
	for _, msg := range midiraw.Split(packet.Data) {
		if midiraw.Ignored(msg) {
			continue
		}
		handler(msg, m.clock.Stamp())
	}
}

// StartCapture begins delivering packets to handler.
func (m *ClientMid) StartCapture(handler contracts.RawMIDIHandler) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.portConn == nil {
		m.logger.Error("Cannot start capture: No MIDI device selected")
		return contracts.ErrNoDeviceSelected
	}
	if m.capturing {
		m.logger.Warn("Capture already started; replacing handler")
	}

	m.logger.Info("Starting MIDI event capture")
	m.clock.Reset()
	m.handler.Store(handler)
	m.capturing = true
	return nil
}

// Stop disconnects from the source and waits for in-flight packets.
// It only executes once, even if called multiple times.
func (m *ClientMid) Stop() error {
	m.stopOnce.Do(func() {
		m.logger.Info("Stopping MIDI capture")
		m.mu.Lock()
		defer m.mu.Unlock()

		m.capturing = false
		if m.portConn != nil {
			m.portConn.Disconnect()
			m.portConn = nil
		}
		m.handler.Store(contracts.RawMIDIHandler(func([]byte, float64) {}))

		m.wg.Wait()
		m.logger.Info("MIDI capture stopped")
	})
	return nil
}
