package audiomidi

import (
	"errors"
	"sync"

	"github.com/leandrodaf/audiomidi/sdk/contracts"
)

// fakeAudio records calls and lets tests drive the audio callback.
type fakeAudio struct {
	mu       sync.Mutex
	devices  int
	openErr  error
	stopErr  error
	cfg      contracts.StreamConfig
	callback contracts.AudioCallback
	open     bool
	started  bool
	calls    []string
}

func (f *fakeAudio) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeAudio) DeviceCount() (int, error) {
	f.record("DeviceCount")
	return f.devices, nil
}

func (f *fakeAudio) DefaultDevice() (contracts.AudioDeviceInfo, error) {
	f.record("DefaultDevice")
	return contracts.AudioDeviceInfo{Name: "fake output"}, nil
}

func (f *fakeAudio) Open(cfg contracts.StreamConfig, cb contracts.AudioCallback) (contracts.StreamConfig, error) {
	f.record("Open")
	if f.openErr != nil {
		return cfg, f.openErr
	}
	f.cfg = cfg
	f.callback = cb
	f.open = true
	return cfg, nil
}

func (f *fakeAudio) Start() error {
	f.record("Start")
	f.started = true
	return nil
}

func (f *fakeAudio) Stop() error {
	f.record("Stop")
	f.started = false
	return f.stopErr
}

func (f *fakeAudio) IsOpen() bool {
	return f.open
}

func (f *fakeAudio) Close() error {
	f.record("Close")
	f.open = false
	return nil
}

// render runs the callback over one buffer the way a backend does.
func (f *fakeAudio) render(frames int) []float32 {
	out := make([]float32, frames*f.cfg.Channels)
	f.callback(nil, out, frames)
	return out
}

// fakeMIDI holds ports and lets tests push raw messages.
type fakeMIDI struct {
	ports    []contracts.DeviceInfo
	listErr  error
	selected int
	handler  contracts.RawMIDIHandler
	stopped  bool
}

func (f *fakeMIDI) ListDevices() ([]contracts.DeviceInfo, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.ports, nil
}

func (f *fakeMIDI) SelectDevice(deviceID int) error {
	if deviceID < 0 || deviceID >= len(f.ports) {
		return contracts.ErrInvalidMIDIPort
	}
	f.selected = deviceID
	return nil
}

func (f *fakeMIDI) StartCapture(handler contracts.RawMIDIHandler) error {
	if handler == nil {
		return errors.New("nil handler")
	}
	f.handler = handler
	return nil
}

func (f *fakeMIDI) Stop() error {
	f.stopped = true
	return nil
}

func (f *fakeMIDI) send(data ...byte) {
	f.handler(data, 0.5)
}
