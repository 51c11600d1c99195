package contracts

// AudioCallback receives one hardware buffer. in is nil for output-only
// streams; out holds frames interleaved stereo float32 samples and must be
// filled before returning. It runs on the backend's real-time thread.
type AudioCallback func(in, out []float32, frames int)

// StreamConfig describes an audio stream.
type StreamConfig struct {
	SampleRate uint32 // Frames per second.
	BufferSize uint32 // Frames per callback; 0 lets the backend decide.
	Channels   int    // Interleaved channels; the helper always uses 2.
}

// AudioOutput defines the operations an audio output backend provides.
type AudioOutput interface {
	// DeviceCount reports how many audio devices the backend can see.
	DeviceCount() (int, error)
	// DefaultDevice describes the device Open will use.
	DefaultDevice() (AudioDeviceInfo, error)
	// Open opens a float32 output stream on the default device. The returned
	// config is the one the backend actually uses; it may change BufferSize.
	Open(cfg StreamConfig, cb AudioCallback) (StreamConfig, error)
	Start() error
	Stop() error
	IsOpen() bool
	// Close closes the stream and releases the backend.
	Close() error
}
