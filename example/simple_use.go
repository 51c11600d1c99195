package main

import (
	"context"
	"fmt"
	"math"

	"github.com/leandrodaf/audiomidi/internal/logger"
	"github.com/leandrodaf/audiomidi/sdk/audiomidi"
	"github.com/leandrodaf/audiomidi/sdk/contracts"
)

func main() {
	log := logger.NewZapLogger()

	// A quiet 440 Hz tone so the audio path is audible.
	const sampleRate = 48000
	var phase float64
	audio := func(_, out []float32, frames int) {
		for i := 0; i < frames; i++ {
			s := float32(0.1 * math.Sin(phase))
			out[2*i], out[2*i+1] = s, s
			phase += 2 * math.Pi * 440 / sampleRate
		}
	}

	notes := func(msg contracts.MIDIMessage) {
		log.Info("MIDI Event",
			log.Field().String("Type", msg.Type.String()),
			log.Field().Int("Channel", msg.Channel),
			log.Field().Int("Note", msg.Note),
			log.Field().Int("Velocity", msg.Velocity),
		)
	}

	fmt.Println("Playing and capturing MIDI events... Press Enter to exit.")
	helper, err := audiomidi.New(context.Background(),
		contracts.WithLogger(log),
		contracts.WithLogLevel(contracts.InfoLevel),
		contracts.WithSampleRate(sampleRate),
		contracts.WithBufferSize(256),
		contracts.WithAudioCallback(audio),
		contracts.WithMIDICallback(notes),
		contracts.WithStayOpen(true),
	)
	if err != nil {
		log.Error("Failed to start audio/MIDI helper", log.Field().Error("error", err))
		return
	}

	if err := helper.Close(); err != nil {
		log.Error("Failed to close audio/MIDI helper", log.Field().Error("error", err))
	}
}
