package audio

import (
	"context"
	"io"
	"log"

	"github.com/hajimehoshi/oto"
)

// ----- oto (push) ----- //

type otoBackend struct {
	audio      *Audio
	otoContext *oto.Context
	bufferSize int // bytes
}

func newOtoBackend(a *Audio) (*otoBackend, error) {
	bufferSize := a.config.BufferFrames * a.config.bytesPerFrame()
	otoContext, err := oto.NewContext(a.config.SampleRate, a.config.Channels, a.config.Format.bytesPerSample(), bufferSize)
	if err != nil {
		return nil, err
	}
	return &otoBackend{
		audio:      a,
		otoContext: otoContext,
		bufferSize: bufferSize,
	}, nil
}

func (b *otoBackend) play(ctx context.Context) error {
	p := b.otoContext.NewPlayer()
	defer func() {
		if err := p.Close(); err != nil {
			log.Printf("error: %v", err)
		}
	}()
	buf := make([]byte, b.bufferSize)
	for {
		n, err := b.audio.Read(buf)
		if err == io.EOF {
			return nil
		}
		// Write blocks while the device buffer is full, pacing the loop.
		if _, err := p.Write(buf[:n]); err != nil {
			log.Printf("stream error, buffer skipped: %v\n", err)
		}
	}
}

func (b *otoBackend) close() error {
	return b.otoContext.Close()
}
