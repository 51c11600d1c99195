package main

import (
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/ezmidi/go-meltysynth/meltysynth"

	"github.com/leandrodaf/audiomidi/sdk/contracts"
)

// instrument turns note events into interleaved stereo audio. NoteOn and
// NoteOff run on the MIDI thread, Render on the audio thread.
type instrument interface {
	NoteOn(channel, note, velocity int)
	NoteOff(channel, note int)
	Render(out []float32, frames int)
	Voices() int
}

// play dispatches a parsed MIDI message to the instrument.
func play(inst instrument, msg contracts.MIDIMessage) {
	switch msg.Type {
	case contracts.NoteOn:
		if msg.Velocity == 0 {
			inst.NoteOff(msg.Channel, msg.Note)
			return
		}
		inst.NoteOn(msg.Channel, msg.Note, msg.Velocity)
	case contracts.NoteOff:
		inst.NoteOff(msg.Channel, msg.Note)
	}
}

// sineBank plays one sine per held note.
type sineBank struct {
	sampleRate float64
	gain       float64

	mu     sync.Mutex
	voices map[int]*sineVoice // keyed by note
}

type sineVoice struct {
	freq  float64
	amp   float64
	phase float64
}

func newSineBank(sampleRate uint32) *sineBank {
	return &sineBank{
		sampleRate: float64(sampleRate),
		gain:       0.2,
		voices:     make(map[int]*sineVoice),
	}
}

// noteFrequency returns the equal-tempered frequency of a MIDI note, A4 = 440 Hz.
func noteFrequency(note int) float64 {
	return 440 * math.Pow(2, float64(note-69)/12)
}

func (b *sineBank) NoteOn(_, note, velocity int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.voices[note] = &sineVoice{
		freq: noteFrequency(note),
		amp:  b.gain * float64(velocity) / 127,
	}
}

func (b *sineBank) NoteOff(_, note int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.voices, note)
}

func (b *sineBank) Voices() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.voices)
}

func (b *sineBank) Render(out []float32, frames int) {
	clear(out)
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, v := range b.voices {
		step := 2 * math.Pi * v.freq / b.sampleRate
		for i := 0; i < frames; i++ {
			s := float32(v.amp * math.Sin(v.phase))
			out[2*i] += s
			out[2*i+1] += s
			v.phase += step
		}
		v.phase = math.Mod(v.phase, 2*math.Pi)
	}
}

// soundFontSynth renders notes through a meltysynth SoundFont synthesizer.
type soundFontSynth struct {
	mu          sync.Mutex
	synth       *meltysynth.Synthesizer
	left, right []float32
	held        map[[2]int]struct{}
}

func newSoundFontSynth(sf2 io.Reader, sampleRate uint32) (*soundFontSynth, error) {
	soundFont, err := meltysynth.NewSoundFont(sf2)
	if err != nil {
		return nil, fmt.Errorf("loading sound font: %w", err)
	}
	settings := &meltysynth.SynthesizerSettings{
		SampleRate:            int32(sampleRate),
		BlockSize:             64,
		MaximumPolyphony:      64,
		EnableReverbAndChorus: true,
	}
	synth, err := meltysynth.NewSynthesizer(soundFont, settings)
	if err != nil {
		return nil, fmt.Errorf("creating synthesizer: %w", err)
	}
	return &soundFontSynth{synth: synth, held: make(map[[2]int]struct{})}, nil
}

func (s *soundFontSynth) NoteOn(channel, note, velocity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.synth.NoteOn(int32(channel), int32(note), int32(velocity))
	s.held[[2]int{channel, note}] = struct{}{}
}

func (s *soundFontSynth) NoteOff(channel, note int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.synth.NoteOff(int32(channel), int32(note))
	delete(s.held, [2]int{channel, note})
}

func (s *soundFontSynth) Voices() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.held)
}

func (s *soundFontSynth) Render(out []float32, frames int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cap(s.left) < frames {
		s.left = make([]float32, frames)
		s.right = make([]float32, frames)
	}
	left, right := s.left[:frames], s.right[:frames]
	s.synth.Render(left, right)
	for i := 0; i < frames; i++ {
		out[2*i] = left[i]
		out[2*i+1] = right[i]
	}
}
