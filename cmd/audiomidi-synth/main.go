// Command audiomidi-synth plays incoming MIDI notes on the default audio
// output, through a SoundFont when one is given and sine voices otherwise.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/leandrodaf/audiomidi/internal/logger"
	"github.com/leandrodaf/audiomidi/sdk/audiomidi"
	"github.com/leandrodaf/audiomidi/sdk/contracts"
)

var (
	sampleRateFlag = flag.Uint("rate", uint(contracts.DefaultSampleRate), "output sample rate in Hz")
	bufferFlag     = flag.Uint("buffer", uint(contracts.DefaultBufferSize), "frames per audio buffer")
	audioFlag      = flag.String("audio", contracts.BackendAuto, "audio backend: auto, portaudio, malgo or oto")
	midiFlag       = flag.String("midi", contracts.BackendAuto, "MIDI backend: auto, gomidi, coremidi or winmm")
	portFlag       = flag.Int("port", 0, "index of the MIDI input port")
	listFlag       = flag.Bool("list", false, "list MIDI input ports and exit")
	soundFontFlag  = flag.String("soundfont", "", "path to a .sf2 file; sine voices are used when empty")
	logLevelFlag   = flag.String("log-level", "info", "debug, info, warn or error")
	logFileFlag    = flag.String("log-file", "", "write logs to this file instead of stderr")
)

func main() {
	flag.Parse()

	log := logger.NewZapLogger()
	if err := run(log); err != nil {
		log.Error("audiomidi-synth failed", log.Field().Error("error", err))
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(log contracts.Logger) error {
	level, ok := contracts.ParseLogLevel(*logLevelFlag)
	if !ok {
		return fmt.Errorf("unknown log level %q", *logLevelFlag)
	}
	opts := []contracts.Option{
		contracts.WithLogger(log),
		contracts.WithLogLevel(level),
		contracts.WithLogFile(*logFileFlag),
		contracts.WithMIDIBackend(*midiFlag),
		contracts.WithMIDIPort(*portFlag),
	}

	if *listFlag {
		devices, err := audiomidi.ListMIDIDevices(opts...)
		if err != nil {
			return err
		}
		for _, d := range devices {
			fmt.Printf("%d: %s\n", d.ID, d.Name)
		}
		return nil
	}

	rate := uint32(*sampleRateFlag)
	inst, err := newInstrument(rate)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(interruptContext())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	opts = append(opts,
		contracts.WithSampleRate(rate),
		contracts.WithBufferSize(uint32(*bufferFlag)),
		contracts.WithAudioBackend(*audioFlag),
		contracts.WithAudioCallback(func(_, out []float32, frames int) {
			inst.Render(out, frames)
		}),
		contracts.WithMIDICallback(func(msg contracts.MIDIMessage) {
			play(inst, msg)
		}),
		contracts.WithStayOpen(true),
	)

	g.Go(func() error {
		defer cancel()
		fmt.Fprintln(os.Stderr, "Playing. Press Enter or Ctrl+C to quit.")
		helper, err := audiomidi.New(ctx, opts...)
		if err != nil {
			return err
		}
		return helper.Close()
	})
	g.Go(func() error {
		t := time.NewTicker(time.Second)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-t.C:
				log.Debug("voices", log.Field().Int("active", inst.Voices()))
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func newInstrument(rate uint32) (instrument, error) {
	if *soundFontFlag == "" {
		return newSineBank(rate), nil
	}
	f, err := os.Open(*soundFontFlag)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return newSoundFontSynth(f, rate)
}

func interruptContext() context.Context {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	go func() {
		<-ctx.Done()
		cancel()
	}()
	return ctx
}
