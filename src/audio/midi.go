package audio

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi"
	"gitlab.com/gomidi/rtmididrv"
)

// ----- MIDI Event ----- //

// EventKind ...
type EventKind int

const (
	NoteOn EventKind = iota
	NoteOff
)

func (k EventKind) String() string {
	if k == NoteOn {
		return "note-on"
	}
	return "note-off"
}

// NoteEvent is a decoded note message handed from the capture loop to the synth.
type NoteEvent struct {
	Kind   EventKind
	Note   uint8
	Status byte
	Data1  byte
	Data2  byte
}

// DecodeNoteEvent accepts note-on (0x9n) and note-off (0x8n) on any channel.
// Velocity is kept but not interpreted: a note-on with velocity 0 stays a note-on.
func DecodeNoteEvent(msg []byte) (NoteEvent, bool) {
	if len(msg) < 2 {
		return NoteEvent{}, false
	}
	e := NoteEvent{Status: msg[0], Data1: msg[1], Note: msg[1]}
	if len(msg) > 2 {
		e.Data2 = msg[2]
	}
	switch msg[0] & 0xf0 {
	case 0x90:
		e.Kind = NoteOn
	case 0x80:
		e.Kind = NoteOff
	default:
		return NoteEvent{}, false
	}
	return e, true
}

// ----- Capture ----- //

const (
	eventQueueSize = 65536
	midiReadBatch  = 1024
)

// MidiInput is polled by Capture for raw MIDI messages.
type MidiInput interface {
	// ReadMessages appends up to midiReadBatch pending messages to dst.
	ReadMessages(dst [][]byte) ([][]byte, error)
}

// NewEventQueue ...
func NewEventQueue() chan NoteEvent {
	return make(chan NoteEvent, eventQueueSize)
}

// Capture polls in every interval and forwards note events to out in arrival order.
// A read failure ends capture without an error; the session keeps playing.
func Capture(ctx context.Context, in MidiInput, out chan<- NoteEvent, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	msgs := make([][]byte, 0, midiReadBatch)
	for {
		var err error
		msgs, err = in.ReadMessages(msgs[:0])
		if err != nil {
			log.Printf("MIDI read failed, capture stopped: %v\n", err)
			return nil
		}
		for _, msg := range msgs {
			e, ok := DecodeNoteEvent(msg)
			if !ok {
				continue
			}
			select {
			case out <- e:
			case <-ctx.Done():
				log.Println("Capture() interrupted")
				return nil
			}
		}
		select {
		case <-ctx.Done():
			log.Println("Capture() interrupted")
			return nil
		case <-ticker.C:
		}
	}
}

// ----- MIDI Port ----- //

var errPortClosed = errors.New("MIDI port closed")

// MidiPort buffers messages delivered by the rtmidi listener until they are polled.
type MidiPort struct {
	id      int
	drv     *rtmididrv.Driver
	in      midi.In
	mu      sync.Mutex
	pending [][]byte
	closed  bool
}

var _ MidiInput = (*MidiPort)(nil)

// ListMidiInputs returns input port names indexed by device id.
func ListMidiInputs() ([]string, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize MIDI driver")
	}
	defer func() {
		if err := drv.Close(); err != nil {
			log.Printf("failed to close MIDI driver: %v\n", err)
		}
	}()
	ins, err := drv.Ins()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get MIDI IN")
	}
	names := make([]string, len(ins))
	for i, in := range ins {
		names[i] = in.String()
	}
	return names, nil
}

// OpenMidiInput opens input port id and starts buffering its messages.
func OpenMidiInput(id int) (*MidiPort, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize MIDI driver")
	}
	p, err := openPort(drv, id)
	if err != nil {
		if err := drv.Close(); err != nil {
			log.Printf("failed to close MIDI driver: %v\n", err)
		}
		return nil, err
	}
	return p, nil
}

func openPort(drv *rtmididrv.Driver, id int) (*MidiPort, error) {
	ins, err := drv.Ins()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get MIDI IN")
	}
	if len(ins) == 0 {
		return nil, errors.New("MIDI IN not found")
	}
	if id < 0 || id >= len(ins) {
		return nil, errors.Errorf("MIDI IN %d not found (%d available)", id, len(ins))
	}
	in := ins[id]
	if err := in.Open(); err != nil {
		return nil, errors.Wrapf(err, "failed to open MIDI IN %s", in)
	}
	p := &MidiPort{
		id:      id,
		drv:     drv,
		in:      in,
		pending: make([][]byte, 0, midiReadBatch),
	}
	if err := in.SetListener(p.receive); err != nil {
		if err := in.Close(); err != nil {
			log.Printf("failed to close MIDI IN: %v\n", err)
		}
		return nil, errors.Wrap(err, "failed to set listener")
	}
	return p, nil
}

func (p *MidiPort) receive(data []byte, deltaMicroseconds int64) {
	msg := append([]byte(nil), data...)
	p.mu.Lock()
	if !p.closed {
		p.pending = append(p.pending, msg)
	}
	p.mu.Unlock()
}

// ID ...
func (p *MidiPort) ID() int {
	return p.id
}

// Name ...
func (p *MidiPort) Name() string {
	return p.in.String()
}

// ReadMessages ...
func (p *MidiPort) ReadMessages(dst [][]byte) ([][]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return dst, errPortClosed
	}
	n := len(p.pending)
	if n > midiReadBatch {
		n = midiReadBatch
	}
	dst = append(dst, p.pending[:n]...)
	rest := copy(p.pending, p.pending[n:])
	for i := rest; i < len(p.pending); i++ {
		p.pending[i] = nil
	}
	p.pending = p.pending[:rest]
	return dst, nil
}

// Close stops listening and releases the port and driver.
func (p *MidiPort) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.pending = nil
	p.mu.Unlock()

	log.Println("stop listening MIDI IN...")
	if err := p.in.StopListening(); err != nil {
		log.Printf("failed to stop listening: %v\n", err)
	}
	if err := p.in.Close(); err != nil {
		log.Printf("failed to close MIDI IN: %v\n", err)
	}
	return p.drv.Close()
}
