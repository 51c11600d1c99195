package audiomidi

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leandrodaf/audiomidi/sdk/contracts"
)

func TestParseMessage(t *testing.T) {
	for _, tc := range []struct {
		name string
		data []byte
		want contracts.MIDIMessage
		ok   bool
	}{
		{
			name: "note on channel 1",
			data: []byte{0x90, 60, 100},
			want: contracts.MIDIMessage{Type: contracts.NoteOn, Note: 60, Channel: 0, Velocity: 100},
			ok:   true,
		},
		{
			name: "note on channel 16",
			data: []byte{0x9F, 127, 1},
			want: contracts.MIDIMessage{Type: contracts.NoteOn, Note: 127, Channel: 15, Velocity: 1},
			ok:   true,
		},
		{
			name: "note off",
			data: []byte{0x83, 64, 40},
			want: contracts.MIDIMessage{Type: contracts.NoteOff, Note: 64, Channel: 3, Velocity: 40},
			ok:   true,
		},
		{
			name: "note on with velocity zero stays note on",
			data: []byte{0x90, 60, 0},
			want: contracts.MIDIMessage{Type: contracts.NoteOn, Note: 60},
			ok:   true,
		},
		{
			name: "two byte note on",
			data: []byte{0x92, 61},
			want: contracts.MIDIMessage{Type: contracts.NoteOn, Note: 61, Channel: 2},
			ok:   true,
		},
		{name: "control change", data: []byte{0xB0, 7, 100}},
		{name: "program change", data: []byte{0xC0, 5}},
		{name: "timing clock", data: []byte{0xF8}},
		{name: "status only", data: []byte{0x90}},
		{name: "empty", data: nil},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseMessage(tc.data)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMessageTypeString(t *testing.T) {
	assert.Equal(t, "note on", contracts.NoteOn.String())
	assert.Equal(t, "note off", contracts.NoteOff.String())
	assert.Equal(t, "MessageType(7)", contracts.MessageType(7).String())
}
