package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/darkhill/darkhill/src/audio"
	"golang.org/x/sync/errgroup"
)

type args struct {
	DeviceID     *int          `arg:"positional" help:"MIDI input device id; omit to list devices"`
	Instrument   string        `arg:"-i,--instrument,env:DARKHILL_INSTRUMENT" default:"hardsaw" help:"organ, weird, brass, softsaw or hardsaw"`
	Backend      string        `arg:"-b,--backend,env:DARKHILL_BACKEND" default:"oto" help:"oto, oto3 or beep"`
	Format       string        `arg:"-f,--format,env:DARKHILL_FORMAT" default:"i16" help:"u8, i16 or f32 (beep: f32)"`
	SampleRate   int           `arg:"--sample-rate,env:DARKHILL_SAMPLE_RATE" default:"44100"`
	Channels     int           `arg:"--channels,env:DARKHILL_CHANNELS" default:"2"`
	BufferFrames int           `arg:"--buffer,env:DARKHILL_BUFFER" default:"1024" help:"frames per output buffer"`
	PollInterval time.Duration `arg:"--poll-interval,env:DARKHILL_POLL_INTERVAL" default:"1ms" help:"MIDI poll interval"`
}

func (args) Description() string {
	return "Darkhill synthesizer\n\nOmitting DEVICEID lists the available MIDI inputs."
}

func (a *args) config() (audio.Config, error) {
	config := audio.DefaultConfig()
	instrument, err := audio.ParseInstrument(a.Instrument)
	if err != nil {
		return config, err
	}
	format, err := audio.ParseFormat(a.Format)
	if err != nil {
		return config, err
	}
	config.Instrument = instrument
	config.Format = format
	config.Backend = a.Backend
	config.SampleRate = a.SampleRate
	config.Channels = a.Channels
	config.BufferFrames = a.BufferFrames
	config.PollInterval = a.PollInterval
	return config, config.Validate()
}

func main() {
	var args args
	arg.MustParse(&args)
	log.SetFlags(log.Lshortfile)

	if args.DeviceID == nil {
		names, err := audio.ListMidiInputs()
		if err != nil {
			log.Fatalf("error: %v\n", err)
		}
		for id, name := range names {
			fmt.Printf("%d) %s\n", id, name)
		}
		return
	}
	config, err := args.config()
	if err != nil {
		log.Fatalf("error: %v\n", err)
	}

	// The session always listens on the first input.
	deviceID := 0
	if *args.DeviceID != deviceID {
		log.Printf("[WARN] device %d requested, using %d\n", *args.DeviceID, deviceID)
	}
	in, err := audio.OpenMidiInput(deviceID)
	if err != nil {
		log.Fatalf("error: %v\n", err)
	}
	defer in.Close()
	log.Printf("Listening on: %d) %s\n", in.ID(), in.Name())

	events := audio.NewEventQueue()
	a, err := audio.NewAudio(config, events)
	if err != nil {
		log.Fatalf("error: %v\n", err)
	}
	defer a.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
	defer func() {
		signal.Stop(signalCh)
		cancel()
	}()
	go func() {
		select {
		case sig := <-signalCh:
			log.Printf("Caught signal %s: shutting down...\n", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return audio.Capture(ctx, in, events, config.PollInterval)
	})
	g.Go(func() error {
		return a.Start(ctx)
	})
	g.Go(func() error {
		return reportClipping(ctx, a)
	})
	if err := g.Wait(); err != nil {
		log.Fatalf("error: %v\n", err)
	}
	log.Println("main() ended.")
}

// reportClipping logs from outside the audio goroutine so Step never does I/O.
func reportClipping(ctx context.Context, a *audio.Audio) error {
	t := time.NewTicker(time.Second)
	defer t.Stop()
	var reported uint64
loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case <-t.C:
			clipped := a.Clipped()
			if clipped > reported {
				log.Printf("[WARN] Output too high! %d samples clipped (%d total)\n", clipped-reported, clipped)
				reported = clipped
			}
		}
	}
	log.Println("reportClipping() ended.")
	return nil
}
