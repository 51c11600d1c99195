//go:build windows
// +build windows

package midiwindows

import (
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/leandrodaf/audiomidi/internal/midi/midiraw"
	"github.com/leandrodaf/audiomidi/sdk/contracts"
)

// Type definitions for MIDI handles
type HMIDIIN windows.Handle

// Constants for callback flags
const (
	CALLBACK_FUNCTION = 0x00030000 // Indicates that the callback is a function
	MIDI_IO_STATUS    = 0x00000020 // MIDI input/output status
)

// Constants for MIDI message types
const (
	MIM_OPEN      = 0x3C1 // MIDI device opened
	MIM_CLOSE     = 0x3C2 // MIDI device closed
	MIM_DATA      = 0x3C3 // MIDI data received
	MIM_LONGDATA  = 0x3C4 // Sysex buffer filled
	MIM_ERROR     = 0x3C5 // MIDI error
	MIM_LONGERROR = 0x3C6 // Long MIDI error
	MIM_MOREDATA  = 0x3CC // More MIDI data available
)

// Struct representing MIDI device capabilities
type midiInCaps struct {
	wMid           uint16
	wPid           uint16
	vDriverVersion uint32
	szPname        [32]uint16
	dwSupport      uint32
}

// ClientMid manages MIDI input on Windows through winmm.
type ClientMid struct {
	logger   contracts.Logger
	handler  atomic.Value // contracts.RawMIDIHandler
	handle   HMIDIIN
	portConn bool
	started  bool
	mu       sync.Mutex
	clock    *midiraw.Clock
	instance uintptr // Key into clients, passed to winmm as dwInstance.
}

// Load the winmm.dll library and required functions
var (
	winmm                = windows.NewLazySystemDLL("winmm.dll")
	procMidiInGetNumDevs = winmm.NewProc("midiInGetNumDevs")
	procMidiInGetDevCaps = winmm.NewProc("midiInGetDevCapsW")
	procMidiInOpen       = winmm.NewProc("midiInOpen")
	procMidiInStart      = winmm.NewProc("midiInStart")
	procMidiInStop       = winmm.NewProc("midiInStop")
	procMidiInClose      = winmm.NewProc("midiInClose")
)

// winmm calls back with an integer instance; clients maps it back to the Go
// value so no Go pointer crosses into C.
var (
	clients      sync.Map
	nextInstance atomic.Uintptr
	callbackOnce sync.Once
	callbackPtr  uintptr
)

func midiInProc() uintptr {
	callbackOnce.Do(func() {
		callbackPtr = windows.NewCallback(midiInCallback)
	})
	return callbackPtr
}

// NewMIDIClient creates a MIDI client for Windows
func NewMIDIClient(options *contracts.Options) (contracts.MIDIInput, error) {
	options.Logger.Info("MIDI client created for Windows")

	m := &ClientMid{
		logger:   options.Logger,
		clock:    midiraw.NewClock(nil),
		instance: nextInstance.Add(1),
	}
	clients.Store(m.instance, m)
	return m, nil
}

// ListDevices lists the available MIDI input devices
func (m *ClientMid) ListDevices() ([]contracts.DeviceInfo, error) {
	r0, _, _ := procMidiInGetNumDevs.Call()
	numDevices := uint32(r0)
	if numDevices == 0 {
		m.logger.Warn(contracts.ErrNoMIDIPorts.Error())
		return nil, contracts.ErrNoMIDIPorts
	}

	devices := make([]contracts.DeviceInfo, 0, numDevices)
	for i := uint32(0); i < numDevices; i++ {
		var caps midiInCaps
		r1, _, _ := procMidiInGetDevCaps.Call(
			uintptr(i),
			uintptr(unsafe.Pointer(&caps)),
			unsafe.Sizeof(caps),
		)
		if r1 != 0 {
			m.logger.Warn("Failed to get information for MIDI device", m.logger.Field().Int("deviceID", int(i)))
			continue
		}
		deviceName := windows.UTF16ToString(caps.szPname[:])
		devices = append(devices, contracts.DeviceInfo{
			ID:           int(i),
			Name:         deviceName,
			EntityName:   deviceName,
			Manufacturer: fmt.Sprintf("MID: %d PID: %d", caps.wMid, caps.wPid),
		})
	}
	return devices, nil
}

// SelectDevice opens the MIDI input device at index deviceID
func (m *ClientMid) SelectDevice(deviceID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r0, _, _ := procMidiInGetNumDevs.Call()
	if deviceID < 0 || deviceID >= int(uint32(r0)) {
		m.logger.Error(contracts.ErrInvalidMIDIPort.Error(), m.logger.Field().Int("deviceID", deviceID))
		return fmt.Errorf("%w: %d", contracts.ErrInvalidMIDIPort, deviceID)
	}

	if m.portConn {
		if err := m.closeDevice(); err != nil {
			return fmt.Errorf("failed to close previous MIDI device: %w", err)
		}
	}

	fdwOpen := CALLBACK_FUNCTION | MIDI_IO_STATUS
	r1, _, err := procMidiInOpen.Call(
		uintptr(unsafe.Pointer(&m.handle)),
		uintptr(deviceID),
		midiInProc(),
		m.instance,
		uintptr(fdwOpen),
	)
	if r1 != 0 {
		m.logger.Error("Failed to open MIDI device",
			m.logger.Field().Int("deviceID", deviceID),
			m.logger.Field().Error("error", err))
		return fmt.Errorf("failed to open MIDI device %d: %v", deviceID, err)
	}

	m.portConn = true
	m.logger.Info("MIDI device connected", m.logger.Field().Int("deviceID", deviceID))
	return nil
}

// StartCapture stores the handler and starts MIDI input
func (m *ClientMid) StartCapture(handler contracts.RawMIDIHandler) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.portConn || m.handle == 0 {
		m.logger.Error("Cannot start capture: No MIDI device selected")
		return contracts.ErrNoDeviceSelected
	}

	m.clock.Reset()
	m.handler.Store(handler)
	if m.started {
		m.logger.Warn("Capture already started; replacing handler")
		return nil
	}

	r1, _, err := procMidiInStart.Call(uintptr(m.handle))
	if r1 != 0 {
		m.logger.Error("Failed to start MIDI capture", m.logger.Field().Error("error", err))
		return fmt.Errorf("failed to start MIDI capture: %v", err)
	}
	m.started = true

	m.logger.Info("MIDI capture started")
	return nil
}

// midiInCallback processes incoming MIDI messages
func midiInCallback(hMidiIn uintptr, wMsg uint32, dwInstance uintptr, dwParam1 uintptr, dwParam2 uintptr) uintptr {
	v, ok := clients.Load(dwInstance)
	if !ok {
		return 0
	}
	m := v.(*ClientMid)

	switch wMsg {
	case MIM_OPEN:
		m.logger.Debug("MIDI device opened")
	case MIM_CLOSE:
		m.logger.Debug("MIDI device closed")
	case MIM_DATA, MIM_MOREDATA:
		msg := unpackShortMessage(dwParam1)
		if midiraw.Ignored(msg) {
			return 0
		}
		if handler, ok := m.handler.Load().(contracts.RawMIDIHandler); ok && handler != nil {
			handler(msg, m.clock.Stamp())
		}
	case MIM_LONGDATA:
		// Sysex is not delivered.
	case MIM_ERROR, MIM_LONGERROR:
		m.logger.Error("MIDI error", m.logger.Field().Int("msg", int(wMsg)))
	default:
		m.logger.Warn("Unknown MIDI message", m.logger.Field().Int("msg", int(wMsg)))
	}

	return 0
}

// unpackShortMessage extracts the status and data bytes winmm packs into
// dwParam1, trimmed to the message's length.
func unpackShortMessage(param uintptr) []byte {
	status := byte(param & 0xFF)
	msg := []byte{status, byte((param >> 8) & 0xFF), byte((param >> 16) & 0xFF)}
	if n := midiraw.Length(status); n > 0 && n < len(msg) {
		msg = msg[:n]
	}
	return msg
}

// Stop terminates MIDI input and closes the device
func (m *ClientMid) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.portConn {
		return nil
	}

	if err := m.closeDevice(); err != nil {
		return fmt.Errorf("failed to stop MIDI capture: %w", err)
	}
	clients.Delete(m.instance)
	m.logger.Info("MIDI capture stopped and device closed")
	return nil
}

// closeDevice stops input and releases the handle
func (m *ClientMid) closeDevice() error {
	if m.handle == 0 {
		return fmt.Errorf("invalid MIDI device handle")
	}

	if m.started {
		r1, _, err := procMidiInStop.Call(uintptr(m.handle))
		if r1 != 0 {
			m.logger.Error("Failed to stop MIDI capture", m.logger.Field().Error("error", err))
			return err
		}
		m.started = false
	}

	r1, _, err := procMidiInClose.Call(uintptr(m.handle))
	if r1 != 0 {
		m.logger.Error("Failed to close MIDI device", m.logger.Field().Error("error", err))
		return err
	}

	m.portConn = false
	m.handle = 0
	return nil
}
