package audio

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ----- Output Format ----- //

// Format is the numeric sample encoding negotiated with the output backend.
type Format int

const (
	FormatU8 Format = iota
	FormatI16
	FormatF32
)

var formatNames = map[Format]string{
	FormatU8:  "u8",
	FormatI16: "i16",
	FormatF32: "f32",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "unknown"
}

// ParseFormat ...
func ParseFormat(s string) (Format, error) {
	for f, name := range formatNames {
		if strings.EqualFold(s, name) {
			return f, nil
		}
	}
	return 0, errors.Errorf("unknown sample format %q", s)
}

// ----- Backend ----- //

const (
	BackendOto  = "oto"
	BackendOto3 = "oto3"
	BackendBeep = "beep"
)

// formats each backend can negotiate
var backendFormats = map[string][]Format{
	BackendOto:  {FormatU8, FormatI16},
	BackendOto3: {FormatU8, FormatI16, FormatF32},
	BackendBeep: {FormatF32},
}

// ----- Config ----- //

// Config describes one audio session.
type Config struct {
	SampleRate   int
	Channels     int
	Format       Format
	Backend      string
	Instrument   Instrument
	BufferFrames int           // frames per backend buffer
	PollInterval time.Duration // MIDI capture poll interval
}

// DefaultConfig ...
func DefaultConfig() Config {
	return Config{
		SampleRate:   44100,
		Channels:     2,
		Format:       FormatI16,
		Backend:      BackendOto,
		Instrument:   HardSaw,
		BufferFrames: 1024,
		PollInterval: time.Millisecond,
	}
}

// Validate reports configurations no backend can open.
func (c Config) Validate() error {
	if c.SampleRate <= 0 {
		return errors.Errorf("invalid sample rate %d", c.SampleRate)
	}
	if c.Channels <= 0 {
		return errors.Errorf("invalid channel count %d", c.Channels)
	}
	if c.BufferFrames <= 0 {
		return errors.Errorf("invalid buffer size %d", c.BufferFrames)
	}
	if c.PollInterval <= 0 {
		return errors.Errorf("invalid poll interval %v", c.PollInterval)
	}
	formats, ok := backendFormats[c.Backend]
	if !ok {
		return errors.Errorf("unknown backend %q", c.Backend)
	}
	if c.Backend == BackendBeep && c.Channels != 2 {
		return errors.Errorf("backend %s is stereo only", c.Backend)
	}
	for _, f := range formats {
		if f == c.Format {
			return nil
		}
	}
	return errors.Errorf("backend %s does not support format %s", c.Backend, c.Format)
}

func (c Config) bytesPerFrame() int {
	return c.Format.bytesPerSample() * c.Channels
}
