//go:build !darwin

package mididarwin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/leandrodaf/audiomidi/internal/logger"
	"github.com/leandrodaf/audiomidi/sdk/contracts"
)

func TestDummyClientReportsUnsupportedOS(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c, err := NewMIDIClient(&contracts.Options{Logger: logger.NewFromZap(core)})
	require.NoError(t, err)

	_, err = c.ListDevices()
	assert.ErrorIs(t, err, contracts.ErrUnsupportedOS)
	assert.ErrorIs(t, c.SelectDevice(0), contracts.ErrUnsupportedOS)
	assert.ErrorIs(t, c.StartCapture(func([]byte, float64) {}), contracts.ErrUnsupportedOS)
	assert.NoError(t, c.Stop())
	assert.Equal(t, 5, logs.FilterMessageSnippet("dummy MIDI client").Len())
}
