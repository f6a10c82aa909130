package audio

import (
	"math"
	"sync/atomic"

	"github.com/faiface/beep"
)

const (
	dryGain    = 0.9
	reverbGain = 4.0
)

// ----- Synth ----- //

// Synth renders one sample per Step. Everything but the event queue and the
// clip counter belongs to the goroutine calling Step.
type Synth struct {
	sampleRate float64
	instrument Instrument
	events     <-chan NoteEvent
	clock      float64 // wraps at sampleRate
	pos        int64
	pool       voicePool
	delay      *delayLine
	reverb     *reverb
	clipped    atomic.Uint64
}

var _ beep.Streamer = (*Synth)(nil)

// NewSynth ...
func NewSynth(sampleRate int, instrument Instrument, events <-chan NoteEvent) *Synth {
	return &Synth{
		sampleRate: float64(sampleRate),
		instrument: instrument,
		events:     events,
		delay:      newDelayLine(delayLength),
		reverb:     newReverb(),
	}
}

// Step advances the session by one sample and returns it. Values outside
// (-1, 1) are counted as clipped and returned as is.
func (s *Synth) Step() float64 {
	s.clock++
	if s.clock >= s.sampleRate {
		s.clock -= s.sampleRate
	}
	s.pos++
	s.drainEvents()

	voiceSum := 0.0
	t := s.clock / s.sampleRate * 2.0 * math.Pi
	for i := range s.pool.voices {
		v := &s.pool.voices[i]
		if !v.active {
			continue
		}
		v.stepEnvelope(s.sampleRate)
		voiceSum += s.instrument.sample(t*v.freq, v.amplitude) * voiceGain
	}

	out := voiceSum + s.delay.process(voiceSum)
	x := s.reverb.diffuse(out)
	out = out*dryGain + reverbGain*x
	if out >= 1 || out <= -1 {
		s.clipped.Add(1)
	}
	return out
}

func (s *Synth) drainEvents() {
	for {
		select {
		case e := <-s.events:
			s.apply(e)
		default:
			return
		}
	}
}

func (s *Synth) apply(e NoteEvent) {
	switch e.Kind {
	case NoteOn:
		s.pool.allocate(e.Note, noteToFreq(e.Note))
	case NoteOff:
		s.pool.release(e.Note)
	}
}

// ActiveVoices must be called from the goroutine calling Step.
func (s *Synth) ActiveVoices() int {
	return s.pool.activeCount()
}

// Clipped returns the number of clipped samples so far. Safe from any goroutine.
func (s *Synth) Clipped() uint64 {
	return s.clipped.Load()
}

// Stream fills both channels of samples with successive Steps.
func (s *Synth) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		v := s.Step()
		samples[i][0] = v
		samples[i][1] = v
	}
	return len(samples), true
}

// Err ...
func (s *Synth) Err() error {
	return nil
}
