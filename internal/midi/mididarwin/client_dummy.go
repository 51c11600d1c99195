//go:build !darwin
// +build !darwin

package mididarwin

import (
	"fmt"

	"github.com/leandrodaf/audiomidi/sdk/contracts"
)

// DummyMIDIClient stands in for the CoreMIDI client on other platforms.
type DummyMIDIClient struct {
	logger contracts.Logger
}

func NewMIDIClient(options *contracts.Options) (contracts.MIDIInput, error) {
	options.Logger.Info("Using dummy MIDI client for non-macOS system")
	return &DummyMIDIClient{
		logger: options.Logger,
	}, nil
}

func (m *DummyMIDIClient) ListDevices() ([]contracts.DeviceInfo, error) {
	m.logger.Warn("ListDevices called on dummy MIDI client")
	return nil, fmt.Errorf("%w: CoreMIDI needs macOS", contracts.ErrUnsupportedOS)
}

func (m *DummyMIDIClient) SelectDevice(deviceID int) error {
	m.logger.Warn("SelectDevice called on dummy MIDI client")
	return fmt.Errorf("%w: CoreMIDI needs macOS", contracts.ErrUnsupportedOS)
}

func (m *DummyMIDIClient) StartCapture(handler contracts.RawMIDIHandler) error {
	m.logger.Warn("StartCapture called on dummy MIDI client")
	return fmt.Errorf("%w: CoreMIDI needs macOS", contracts.ErrUnsupportedOS)
}

func (m *DummyMIDIClient) Stop() error {
	m.logger.Warn("Stop called on dummy MIDI client")
	return nil
}
