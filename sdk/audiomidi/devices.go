package audiomidi

import (
	"go.uber.org/multierr"

	"github.com/leandrodaf/audiomidi/sdk/contracts"
)

// ListMIDIDevices opens the configured MIDI backend, lists its input ports and
// releases the backend again.
func ListMIDIDevices(opts ...contracts.Option) (devices []contracts.DeviceInfo, err error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}
	in, err := newMIDIInput(&options)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = multierr.Append(err, in.Stop())
	}()
	return in.ListDevices()
}
