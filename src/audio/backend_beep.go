package audio

import (
	"context"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

// ----- beep speaker ----- //

type beepBackend struct {
	audio *Audio
}

func newBeepBackend(a *Audio) (*beepBackend, error) {
	if err := speaker.Init(beep.SampleRate(a.config.SampleRate), a.config.BufferFrames); err != nil {
		return nil, err
	}
	return &beepBackend{audio: a}, nil
}

// play streams the synth directly; the speaker goroutine calls Synth.Stream.
func (b *beepBackend) play(ctx context.Context) error {
	speaker.Play(b.audio.synth)
	<-ctx.Done()
	speaker.Clear()
	return nil
}

func (b *beepBackend) close() error {
	speaker.Close()
	return nil
}
