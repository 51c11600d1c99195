package contracts

// DeviceInfo contains information about a MIDI input port.
type DeviceInfo struct {
	ID           int    // Port index as reported by the backend.
	Name         string // Port name.
	Manufacturer string // Device manufacturer, when the backend knows it.
	EntityName   string // Name of the entity to which the port belongs.
}

// AudioDeviceInfo contains information about an audio output device.
type AudioDeviceInfo struct {
	Name              string  // Device name.
	MaxOutputChannels int     // Output channels the device exposes, 0 if unknown.
	DefaultSampleRate float64 // Preferred sample rate, 0 if unknown.
}
