package audiomidi

import "github.com/leandrodaf/audiomidi/sdk/contracts"

// ParseMessage classifies a raw MIDI message by the high nibble of its status
// byte. It reports false for anything but note-on and note-off and for
// messages too short to carry a note.
func ParseMessage(data []byte) (contracts.MIDIMessage, bool) {
	if len(data) < 2 {
		return contracts.MIDIMessage{}, false
	}
	status := data[0]

	var msg contracts.MIDIMessage
	switch status & 0xF0 {
	case contracts.StatusNoteOn:
		msg.Type = contracts.NoteOn
	case contracts.StatusNoteOff:
		msg.Type = contracts.NoteOff
	default:
		return contracts.MIDIMessage{}, false
	}
	msg.Channel = int(status & 0x0F)
	msg.Note = int(data[1])
	if len(data) > 2 {
		msg.Velocity = int(data[2])
	}
	return msg, true
}
