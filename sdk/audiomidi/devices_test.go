package audiomidi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leandrodaf/audiomidi/sdk/contracts"
)

func TestListMIDIDevices(t *testing.T) {
	log, _ := testLogger()
	midi := onePort()

	devices, err := ListMIDIDevices(contracts.WithLogger(log), contracts.WithMIDIInput(midi))
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, "fake keys", devices[0].Name)
	assert.True(t, midi.stopped, "backend released after listing")
}

func TestListMIDIDevicesNoPorts(t *testing.T) {
	log, _ := testLogger()
	midi := &fakeMIDI{listErr: contracts.ErrNoMIDIPorts}

	_, err := ListMIDIDevices(contracts.WithLogger(log), contracts.WithMIDIInput(midi))
	assert.ErrorIs(t, err, contracts.ErrNoMIDIPorts)
	assert.True(t, midi.stopped)
}
