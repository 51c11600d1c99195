package audiomidi

import (
	"fmt"
	"runtime"

	"github.com/leandrodaf/audiomidi/internal/audio/audiomalgo"
	"github.com/leandrodaf/audiomidi/internal/audio/audiooto"
	"github.com/leandrodaf/audiomidi/internal/audio/audioportaudio"
	"github.com/leandrodaf/audiomidi/internal/midi/mididarwin"
	"github.com/leandrodaf/audiomidi/internal/midi/midigomidi"
	"github.com/leandrodaf/audiomidi/internal/midi/midiwindows"
	"github.com/leandrodaf/audiomidi/sdk/contracts"
)

// audioInitializers maps backend names to audio output initializers.
var audioInitializers = map[string]func(*contracts.Options) (contracts.AudioOutput, error){
	contracts.BackendPortAudio: audioportaudio.NewAudioOutput,
	contracts.BackendMalgo:     audiomalgo.NewAudioOutput,
	contracts.BackendOto:       audiooto.NewAudioOutput,
}

// midiInitializers maps backend names to MIDI input initializers.
var midiInitializers = map[string]func(*contracts.Options) (contracts.MIDIInput, error){
	contracts.BackendGoMIDI:   midigomidi.NewMIDIClient,
	contracts.BackendCoreMIDI: mididarwin.NewMIDIClient,
	contracts.BackendWinMM:    midiwindows.NewMIDIClient,
}

// nativeMIDIBackends lists the OS-native MIDI backend chosen by BackendAuto.
// Other systems use gomidi's RtMidi driver.
var nativeMIDIBackends = map[string]string{
	"darwin":  contracts.BackendCoreMIDI,
	"windows": contracts.BackendWinMM,
}

// resolveAudioBackend maps BackendAuto to PortAudio.
func resolveAudioBackend(name string) string {
	if name == contracts.BackendAuto {
		return contracts.BackendPortAudio
	}
	return name
}

// resolveMIDIBackend maps BackendAuto to the native backend for goos.
func resolveMIDIBackend(name, goos string) string {
	if name != contracts.BackendAuto {
		return name
	}
	if native, ok := nativeMIDIBackends[goos]; ok {
		return native
	}
	return contracts.BackendGoMIDI
}

// newAudioOutput returns the injected output or builds the configured backend.
func newAudioOutput(opts *contracts.Options) (contracts.AudioOutput, error) {
	if opts.AudioOutput != nil {
		return opts.AudioOutput, nil
	}
	name := resolveAudioBackend(opts.AudioBackend)
	if initializer, exists := audioInitializers[name]; exists {
		return initializer(opts)
	}
	return nil, fmt.Errorf("%w: audio backend %q", contracts.ErrUnknownBackend, name)
}

// newMIDIInput returns the injected input or builds the configured backend.
func newMIDIInput(opts *contracts.Options) (contracts.MIDIInput, error) {
	if opts.MIDIInput != nil {
		return opts.MIDIInput, nil
	}
	name := resolveMIDIBackend(opts.MIDIBackend, runtime.GOOS)
	if initializer, exists := midiInitializers[name]; exists {
		return initializer(opts)
	}
	return nil, fmt.Errorf("%w: MIDI backend %q", contracts.ErrUnknownBackend, name)
}
