package contracts

import "fmt"

// MessageType is the kind of note event delivered to a MIDICallback.
type MessageType int

const (
	// NoteOn is reported for status bytes 0x90-0x9F.
	NoteOn MessageType = iota
	// NoteOff is reported for status bytes 0x80-0x8F.
	NoteOff
)

func (t MessageType) String() string {
	switch t {
	case NoteOn:
		return "note on"
	case NoteOff:
		return "note off"
	}
	return fmt.Sprintf("MessageType(%d)", int(t))
}

// Status nibbles for the two messages the helper understands.
const (
	StatusNoteOff byte = 0x80
	StatusNoteOn  byte = 0x90
)

// MIDIMessage is a parsed note-on or note-off event.
type MIDIMessage struct {
	Type     MessageType // NoteOn or NoteOff.
	Note     int         // MIDI note number (0-127).
	Channel  int         // Channel from the low nibble of the status byte (0-15).
	Velocity int         // Velocity, 0 when the message carried none.
}

// MIDICallback receives parsed note events. It is called from the backend's
// MIDI thread.
type MIDICallback func(MIDIMessage)

// RawMIDIHandler receives every unfiltered message from a MIDI input with the
// number of seconds elapsed since the previous message.
type RawMIDIHandler func(data []byte, stamp float64)

// MIDIInput defines the operations a MIDI input backend provides.
type MIDIInput interface {
	ListDevices() ([]DeviceInfo, error)        // Lists all available MIDI input ports.
	SelectDevice(deviceID int) error           // Opens the port with the given index.
	StartCapture(handler RawMIDIHandler) error // Starts delivering messages to handler.
	Stop() error                               // Stops capture and closes the port.
}
