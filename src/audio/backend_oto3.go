package audio

import (
	"context"
	"log"
	"time"

	oto3 "github.com/ebitengine/oto/v3"
)

// ----- oto v3 (pull) ----- //

var oto3Formats = map[Format]oto3.Format{
	FormatU8:  oto3.FormatUnsignedInt8,
	FormatI16: oto3.FormatSignedInt16LE,
	FormatF32: oto3.FormatFloat32LE,
}

type oto3Backend struct {
	audio      *Audio
	otoContext *oto3.Context
}

func newOto3Backend(a *Audio) (*oto3Backend, error) {
	otoContext, ready, err := oto3.NewContext(&oto3.NewContextOptions{
		SampleRate:   a.config.SampleRate,
		ChannelCount: a.config.Channels,
		Format:       oto3Formats[a.config.Format],
		BufferSize:   time.Duration(a.config.BufferFrames) * time.Second / time.Duration(a.config.SampleRate),
	})
	if err != nil {
		return nil, err
	}
	<-ready
	return &oto3Backend{
		audio:      a,
		otoContext: otoContext,
	}, nil
}

// play hands Audio to the oto player, which calls Read from its own goroutine.
func (b *oto3Backend) play(ctx context.Context) error {
	p := b.otoContext.NewPlayer(b.audio)
	defer func() {
		if err := p.Close(); err != nil {
			log.Printf("error: %v", err)
		}
	}()
	p.Play()

	t := time.NewTicker(time.Second / 10)
	defer t.Stop()
	var lastErr error
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if err := p.Err(); err != nil && err != lastErr {
				log.Printf("stream error: %v\n", err)
				lastErr = err
			}
		}
	}
}

func (b *oto3Backend) close() error {
	return b.otoContext.Suspend()
}
