package audio

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

func TestDecodeNoteEvent(t *testing.T) {
	tests := []struct {
		name string
		msg  []byte
		want NoteEvent
		ok   bool
	}{
		{"note on ch1", []byte{0x90, 60, 100}, NoteEvent{Kind: NoteOn, Note: 60, Status: 0x90, Data1: 60, Data2: 100}, true},
		{"note on ch16", []byte{0x9f, 61, 1}, NoteEvent{Kind: NoteOn, Note: 61, Status: 0x9f, Data1: 61, Data2: 1}, true},
		{"note on zero velocity", []byte{0x90, 62, 0}, NoteEvent{Kind: NoteOn, Note: 62, Status: 0x90, Data1: 62}, true},
		{"note off", []byte{0x83, 63, 64}, NoteEvent{Kind: NoteOff, Note: 63, Status: 0x83, Data1: 63, Data2: 64}, true},
		{"note off without velocity", []byte{0x80, 64}, NoteEvent{Kind: NoteOff, Note: 64, Status: 0x80, Data1: 64}, true},
		{"control change", []byte{0xb0, 7, 100}, NoteEvent{}, false},
		{"clock", []byte{0xf8}, NoteEvent{}, false},
		{"empty", nil, NoteEvent{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DecodeNoteEvent(tt.msg)
			expectEqual(t, ok, tt.ok)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("DecodeNoteEvent(%v) (-want +got):\n%s", tt.msg, diff)
			}
		})
	}
}

type fakeMidiInput struct {
	batches [][][]byte
	err     error
}

func (f *fakeMidiInput) ReadMessages(dst [][]byte) ([][]byte, error) {
	if len(f.batches) == 0 {
		return dst, f.err
	}
	dst = append(dst, f.batches[0]...)
	f.batches = f.batches[1:]
	return dst, nil
}

func TestCaptureForwardsInOrder(t *testing.T) {
	in := &fakeMidiInput{
		batches: [][][]byte{
			{{0x90, 60, 100}, {0xb0, 1, 2}, {0x90, 64, 100}},
			{},
			{{0x80, 60, 0}},
		},
		err: errors.New("device unplugged"),
	}
	out := make(chan NoteEvent, 16)
	err := Capture(context.Background(), in, out, time.Microsecond)
	expectNoError(t, err)
	close(out)

	var got []EventKind
	var notes []uint8
	for e := range out {
		got = append(got, e.Kind)
		notes = append(notes, e.Note)
	}
	if diff := cmp.Diff([]EventKind{NoteOn, NoteOn, NoteOff}, got); diff != "" {
		t.Errorf("kinds (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]uint8{60, 64, 60}, notes); diff != "" {
		t.Errorf("notes (-want +got):\n%s", diff)
	}
}

type idleMidiInput struct{}

func (idleMidiInput) ReadMessages(dst [][]byte) ([][]byte, error) {
	return dst, nil
}

func TestCaptureStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Capture(ctx, idleMidiInput{}, make(chan NoteEvent), time.Millisecond)
	}()
	cancel()
	select {
	case err := <-done:
		expectNoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Capture did not return after cancel")
	}
}

func TestMidiPortReadMessagesBatches(t *testing.T) {
	p := &MidiPort{}
	for i := 0; i < midiReadBatch+5; i++ {
		p.receive([]byte{0x90, byte(i % 128), 1}, 0)
	}
	msgs, err := p.ReadMessages(nil)
	expectNoError(t, err)
	expectEqual(t, len(msgs), midiReadBatch)
	msgs, err = p.ReadMessages(msgs[:0])
	expectNoError(t, err)
	expectEqual(t, len(msgs), 5)
	expectEqual(t, msgs[0][1], byte(midiReadBatch%128))

	p.closed = true
	_, err = p.ReadMessages(nil)
	expectEqual(t, err, errPortClosed)
}

func TestMidiPortCopiesListenerData(t *testing.T) {
	p := &MidiPort{}
	data := []byte{0x90, 60, 100}
	p.receive(data, 0)
	data[1] = 99
	msgs, err := p.ReadMessages(nil)
	expectNoError(t, err)
	expectEqual(t, msgs[0][1], byte(60))
}
