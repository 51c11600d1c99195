package contracts

import "errors"

var (
	// ErrNoAudioDevices is returned when the audio backend reports no devices.
	ErrNoAudioDevices = errors.New("no audio devices found")
	// ErrNoMIDIPorts is returned when no MIDI input port is available.
	ErrNoMIDIPorts = errors.New("no MIDI ports available")
	// ErrInvalidMIDIPort is returned when the requested MIDI port does not exist.
	ErrInvalidMIDIPort = errors.New("invalid MIDI port")
	// ErrUnknownBackend is returned for a backend name that is not registered.
	ErrUnknownBackend = errors.New("unknown backend")
	// ErrUnsupportedOS is returned when a backend does not run on this platform.
	ErrUnsupportedOS = errors.New("unsupported operating system")
	// ErrStreamNotOpen is returned when an operation needs an open audio stream.
	ErrStreamNotOpen = errors.New("audio stream is not open")
	// ErrStreamOpen is returned when Open is called on an already open stream.
	ErrStreamOpen = errors.New("audio stream is already open")
	// ErrNoDeviceSelected is returned when capture starts before a port is selected.
	ErrNoDeviceSelected = errors.New("no MIDI device selected")
	// ErrClosed is returned when an audio output is used after Close.
	ErrClosed = errors.New("audio output is closed")
)
