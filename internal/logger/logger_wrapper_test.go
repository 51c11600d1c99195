package logger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/leandrodaf/audiomidi/sdk/contracts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewFromZap(core)

	log.Debug("hidden")
	log.Info("shown")
	assert.Equal(t, 1, logs.Len())

	log.SetLevel(contracts.DebugLevel)
	log.Debug("now shown")
	assert.Equal(t, 2, logs.Len())

	log.SetLevel(contracts.ErrorLevel)
	log.Warn("hidden again")
	log.Error("error shown")
	entries := logs.AllUntimed()
	require.Len(t, entries, 3)
	assert.Equal(t, "error shown", entries[2].Message)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
}

func TestZapLoggerFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewFromZap(core)

	log.Info("midi",
		log.Field().Int("channel", 3),
		log.Field().String("type", "note on"),
		log.Field().Float64("stamp", 0.25),
		log.Field().Binary("bytes", []byte{0x93, 60, 100}),
		log.Field().Error("error", errors.New("boom")),
		log.Field(), // empty builder is dropped
	)

	require.Equal(t, 1, logs.Len())
	ctx := logs.All()[0].ContextMap()
	assert.Equal(t, int64(3), ctx["channel"])
	assert.Equal(t, "note on", ctx["type"])
	assert.Equal(t, 0.25, ctx["stamp"])
	assert.Equal(t, []interface{}{0x93, 60, 100}, ctx["bytes"])
	assert.Equal(t, "boom", ctx["error"])
	assert.Len(t, ctx, 5)
}

func TestZapLoggerFileDestination(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audiomidi.log")
	log := NewZapLogger()

	require.NoError(t, log.SetDestination(contracts.FileLog, path))
	log.Info("written to file", log.Field().Int("port", 0))
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
	assert.Contains(t, string(data), "port")

	require.NoError(t, log.SetDestination(contracts.ConsoleLog))
}

func TestZapLoggerDestinationErrors(t *testing.T) {
	log := NewZapLogger()
	assert.Error(t, log.SetDestination(contracts.FileLog))
	assert.Error(t, log.SetDestination(contracts.LogDestination("syslog")))
}

func TestParseLogLevel(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want contracts.LogLevel
		ok   bool
	}{
		{"debug", contracts.DebugLevel, true},
		{"info", contracts.InfoLevel, true},
		{"warn", contracts.WarnLevel, true},
		{"error", contracts.ErrorLevel, true},
		{"fatal", contracts.FatalLevel, true},
		{"verbose", 0, false},
	} {
		got, ok := contracts.ParseLogLevel(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}
