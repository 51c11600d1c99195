// Package midigomidi reads MIDI input through gomidi's driver abstraction,
// using the RtMidi driver by default.
package midigomidi

import (
	"fmt"
	"sync"

	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/leandrodaf/audiomidi/sdk/contracts"
)

// ClientMid manages a single gomidi input port.
type ClientMid struct {
	logger     contracts.Logger
	driver     drivers.Driver
	ownsDriver bool // Close the driver on Stop.

	mu      sync.Mutex
	in      drivers.In
	stopFn  func()
	stopped bool

	stampMu  sync.Mutex
	lastMs   int32
	received bool
}

// NewMIDIClient opens the RtMidi driver.
func NewMIDIClient(options *contracts.Options) (contracts.MIDIInput, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("opening rtmidi driver: %w", err)
	}
	options.Logger.Info("MIDI client created", options.Logger.Field().String("driver", drv.String()))

	return &ClientMid{logger: options.Logger, driver: drv, ownsDriver: true}, nil
}

// NewMIDIClientWithDriver uses drv without taking ownership of it.
func NewMIDIClientWithDriver(options *contracts.Options, drv drivers.Driver) contracts.MIDIInput {
	return &ClientMid{logger: options.Logger, driver: drv}
}

// ListDevices returns the driver's input ports.
func (m *ClientMid) ListDevices() ([]contracts.DeviceInfo, error) {
	ins, err := m.driver.Ins()
	if err != nil {
		return nil, fmt.Errorf("error listing MIDI inputs: %w", err)
	}
	if len(ins) == 0 {
		m.logger.Warn(contracts.ErrNoMIDIPorts.Error())
		return nil, contracts.ErrNoMIDIPorts
	}

	devices := make([]contracts.DeviceInfo, len(ins))
	for i, in := range ins {
		devices[i] = contracts.DeviceInfo{
			ID:         in.Number(),
			Name:       in.String(),
			EntityName: in.String(),
		}
	}
	return devices, nil
}

// SelectDevice opens the input port at index deviceID, closing any port
// opened before.
func (m *ClientMid) SelectDevice(deviceID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ins, err := m.driver.Ins()
	if err != nil {
		return fmt.Errorf("error listing MIDI inputs: %w", err)
	}
	if deviceID < 0 || deviceID >= len(ins) {
		m.logger.Error(contracts.ErrInvalidMIDIPort.Error(), m.logger.Field().Int("deviceID", deviceID))
		return fmt.Errorf("%w: %d", contracts.ErrInvalidMIDIPort, deviceID)
	}

	m.closePort()

	in := ins[deviceID]
	if !in.IsOpen() {
		if err := in.Open(); err != nil {
			return fmt.Errorf("opening MIDI input %q: %w", in.String(), err)
		}
	}
	m.in = in
	m.logger.Info("MIDI device selected",
		m.logger.Field().Int("deviceID", deviceID),
		m.logger.Field().String("deviceName", in.String()))
	return nil
}

// StartCapture listens on the selected port. Sysex, time code and active
// sensing are left disabled in the listen config, so the driver drops them.
func (m *ClientMid) StartCapture(handler contracts.RawMIDIHandler) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.in == nil {
		m.logger.Error("Cannot start capture: No MIDI device selected")
		return contracts.ErrNoDeviceSelected
	}
	if m.stopFn != nil {
		m.logger.Warn("Capture already started; restarting")
		m.stopFn()
		m.stopFn = nil
	}
	m.stampMu.Lock()
	m.received = false
	m.stampMu.Unlock()

	stop, err := m.in.Listen(func(msg []byte, milliseconds int32) {
		handler(msg, m.stamp(milliseconds))
	}, drivers.ListenConfig{
		OnErr: func(err error) {
			m.logger.Warn("MIDI listener error", m.logger.Field().Error("error", err))
		},
	})
	if err != nil {
		return fmt.Errorf("listening on MIDI input %q: %w", m.in.String(), err)
	}
	m.stopFn = stop
	m.logger.Info("MIDI capture started")
	return nil
}

// stamp turns the driver's running millisecond counter into seconds since
// the previous message.
func (m *ClientMid) stamp(ms int32) float64 {
	m.stampMu.Lock()
	defer m.stampMu.Unlock()
	if !m.received {
		m.received = true
		m.lastMs = ms
		return 0
	}
	d := ms - m.lastMs
	m.lastMs = ms
	if d < 0 {
		return 0
	}
	return float64(d) / 1000
}

// Stop ends capture, closes the port and, when owned, the driver.
func (m *ClientMid) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopped {
		return nil
	}
	m.stopped = true

	m.closePort()
	m.logger.Info("MIDI capture stopped and device closed")
	if m.ownsDriver {
		return m.driver.Close()
	}
	return nil
}

func (m *ClientMid) closePort() {
	if m.stopFn != nil {
		m.stopFn()
		m.stopFn = nil
	}
	if m.in != nil {
		if err := m.in.Close(); err != nil {
			m.logger.Warn("Failed to close MIDI input", m.logger.Field().Error("error", err))
		}
		m.in = nil
	}
}
