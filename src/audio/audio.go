package audio

import (
	"context"
	"io"
	"log"

	"github.com/pkg/errors"
)

// ----- Backend ----- //

// backend owns the output device and drives the session's sample pulls.
type backend interface {
	// play blocks until ctx is cancelled.
	play(ctx context.Context) error
	close() error
}

// ----- Audio ----- //

// Audio is one output session: a Synth feeding a negotiated output stream.
type Audio struct {
	ctx     context.Context
	config  Config
	synth   *Synth
	backend backend
}

var _ io.Reader = (*Audio)(nil)

// NewAudio opens the configured backend. events is drained by the synth from
// the audio goroutine only.
func NewAudio(config Config, events <-chan NoteEvent) (*Audio, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	a := newAudio(config, events)
	var err error
	switch config.Backend {
	case BackendOto:
		a.backend, err = newOtoBackend(a)
	case BackendOto3:
		a.backend, err = newOto3Backend(a)
	case BackendBeep:
		a.backend, err = newBeepBackend(a)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s output", config.Backend)
	}
	return a, nil
}

func newAudio(config Config, events <-chan NoteEvent) *Audio {
	return &Audio{
		ctx:    context.Background(),
		config: config,
		synth:  NewSynth(config.SampleRate, config.Instrument, events),
	}
}

// Read renders as many whole frames as fit in buf.
func (a *Audio) Read(buf []byte) (int, error) {
	select {
	case <-a.ctx.Done():
		log.Println("Read() interrupted.")
		return 0, io.EOF
	default:
	}
	frameSize := a.config.bytesPerFrame()
	frames := len(buf) / frameSize
	for i := 0; i < frames; i++ {
		writeFrame(buf, i*frameSize, a.config.Format, a.config.Channels, a.synth.Step())
	}
	return frames * frameSize, nil
}

// Clipped ...
func (a *Audio) Clipped() uint64 {
	return a.synth.Clipped()
}

// Start blocks until ctx is cancelled.
func (a *Audio) Start(ctx context.Context) error {
	a.ctx = ctx
	log.Printf("playing %s through %s (%d Hz, %d ch, %s)\n",
		a.config.Instrument, a.config.Backend, a.config.SampleRate, a.config.Channels, a.config.Format)
	if err := a.backend.play(ctx); err != nil {
		return err
	}
	log.Println("Start() ended.")
	return nil
}

// Close ...
func (a *Audio) Close() error {
	log.Println("Closing Audio...")
	return a.backend.close()
}
