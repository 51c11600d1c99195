package audiomidi

import (
	"fmt"
	"os"

	"github.com/leandrodaf/audiomidi/internal/logger"
	"github.com/leandrodaf/audiomidi/sdk/contracts"
)

// applyDefaultOptions sets default values for Options if not explicitly provided.
//
// opts ...contracts.Option: A variadic list of option functions that can modify Options.
//
// Returns:
//   - contracts.Options: the finalized options with defaults applied.
//   - error: an error if the log destination could not be set up.
func applyDefaultOptions(opts ...contracts.Option) (contracts.Options, error) {
	options := &contracts.Options{}
	for _, opt := range opts {
		opt(options)
	}

	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}
	if options.LogLevel == 0 {
		options.LogLevel = contracts.InfoLevel
	}
	options.Logger.SetLevel(options.LogLevel)

	if options.LogFilePath != "" {
		if err := options.Logger.SetDestination(contracts.FileLog, options.LogFilePath); err != nil {
			return contracts.Options{}, fmt.Errorf("setting log destination: %w", err)
		}
	}

	if options.SampleRate == 0 {
		options.SampleRate = contracts.DefaultSampleRate
	}
	if options.BufferSize == 0 {
		options.BufferSize = contracts.DefaultBufferSize
	}
	if options.AudioBackend == "" {
		options.AudioBackend = contracts.BackendAuto
	}
	if options.MIDIBackend == "" {
		options.MIDIBackend = contracts.BackendAuto
	}
	if options.ClientName == "" {
		options.ClientName = contracts.DefaultClientName
	}
	if options.Stdin == nil {
		options.Stdin = os.Stdin
	}

	return *options, nil
}
