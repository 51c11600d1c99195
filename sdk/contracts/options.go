package contracts

import "io"

// Backend names accepted by WithAudioBackend and WithMIDIBackend.
const (
	BackendAuto      = "auto"
	BackendPortAudio = "portaudio"
	BackendMalgo     = "malgo"
	BackendOto       = "oto"
	BackendGoMIDI    = "gomidi"
	BackendCoreMIDI  = "coremidi"
	BackendWinMM     = "winmm"
)

// Defaults applied when the corresponding option is not set.
const (
	DefaultSampleRate uint32 = 44100
	DefaultBufferSize uint32 = 256
	DefaultClientName        = "GO Audio MIDI Helper"
)

// Options defines the configuration of the audio/MIDI helper.
type Options struct {
	SampleRate uint32 // Output sample rate in Hz.
	BufferSize uint32 // Requested frames per audio callback.
	StayOpen   bool   // Block in New until a key is pressed or the context ends.

	AudioCallback AudioCallback // Starts audio when set.
	MIDICallback  MIDICallback  // Starts MIDI when set.

	Logger      Logger   // Logger for lifecycle and MIDI traffic.
	LogLevel    LogLevel // Level of logging to use.
	LogFilePath string   // Log to this file instead of the console when set.

	AudioBackend string // Name of the audio backend, BackendAuto by default.
	MIDIBackend  string // Name of the MIDI backend, BackendAuto by default.
	MIDIPort     int    // Index of the MIDI input port to open.
	ClientName   string // Client name announced to the MIDI system.

	// VelocityZeroNoteOff reports a note-on with velocity 0 as NoteOff.
	VelocityZeroNoteOff bool

	Stdin io.Reader // Source read by StayOpen, os.Stdin by default.

	AudioOutput AudioOutput // Overrides the AudioBackend lookup.
	MIDIInput   MIDIInput   // Overrides the MIDIBackend lookup.
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithSampleRate sets the output sample rate.
func WithSampleRate(rate uint32) Option {
	return func(opts *Options) {
		opts.SampleRate = rate
	}
}

// WithBufferSize sets the requested number of frames per audio callback.
func WithBufferSize(frames uint32) Option {
	return func(opts *Options) {
		opts.BufferSize = frames
	}
}

// WithStayOpen makes New block until a byte is read from stdin.
func WithStayOpen(stay bool) Option {
	return func(opts *Options) {
		opts.StayOpen = stay
	}
}

// WithAudioCallback sets the callback that fills output buffers.
func WithAudioCallback(cb AudioCallback) Option {
	return func(opts *Options) {
		opts.AudioCallback = cb
	}
}

// WithMIDICallback sets the callback that receives note events.
func WithMIDICallback(cb MIDICallback) Option {
	return func(opts *Options) {
		opts.MIDICallback = cb
	}
}

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(opts *Options) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level.
func WithLogLevel(level LogLevel) Option {
	return func(opts *Options) {
		opts.LogLevel = level
	}
}

// WithLogFile directs log output to the given file.
func WithLogFile(path string) Option {
	return func(opts *Options) {
		opts.LogFilePath = path
	}
}

// WithAudioBackend selects the audio backend by name.
func WithAudioBackend(name string) Option {
	return func(opts *Options) {
		opts.AudioBackend = name
	}
}

// WithMIDIBackend selects the MIDI backend by name.
func WithMIDIBackend(name string) Option {
	return func(opts *Options) {
		opts.MIDIBackend = name
	}
}

// WithMIDIPort selects the MIDI input port by index.
func WithMIDIPort(port int) Option {
	return func(opts *Options) {
		opts.MIDIPort = port
	}
}

// WithClientName sets the name announced to the MIDI system.
func WithClientName(name string) Option {
	return func(opts *Options) {
		opts.ClientName = name
	}
}

// WithVelocityZeroNoteOff reports note-on messages with velocity 0 as NoteOff.
func WithVelocityZeroNoteOff(enabled bool) Option {
	return func(opts *Options) {
		opts.VelocityZeroNoteOff = enabled
	}
}

// WithStdin sets the reader used by WithStayOpen.
func WithStdin(r io.Reader) Option {
	return func(opts *Options) {
		opts.Stdin = r
	}
}

// WithAudioOutput uses the given backend instead of looking one up by name.
func WithAudioOutput(out AudioOutput) Option {
	return func(opts *Options) {
		opts.AudioOutput = out
	}
}

// WithMIDIInput uses the given backend instead of looking one up by name.
func WithMIDIInput(in MIDIInput) Option {
	return func(opts *Options) {
		opts.MIDIInput = in
	}
}
