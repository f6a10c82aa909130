package audio

import "testing"

func TestDelayImpulse(t *testing.T) {
	d := newDelayLine(delayLength)
	expectEqual(t, d.process(1.0), 0.0)
	for i := 1; i < delayLength; i++ {
		if v := d.process(0); v != 0 {
			t.Fatalf("sample %d: expected silence, but got %v", i, v)
		}
	}
	expectEqual(t, d.cursor, 0)
	// one period later the impulse comes back scaled ...
	expectEqual(t, d.process(0), delayFeedback)
	for i := 1; i < delayLength; i++ {
		if v := d.process(0); v != 0 {
			t.Fatalf("sample %d: expected silence, but got %v", delayLength+i, v)
		}
	}
	// ... and so does the echo of the echo
	expectNearlyEqual(t, d.process(0), delayFeedback*delayFeedback)
}

func TestDelayStoresInputPlusEcho(t *testing.T) {
	d := newDelayLine(3)
	d.process(1.0)
	d.process(0)
	d.process(0)
	expectEqual(t, d.process(0.5), delayFeedback)
	expectEqual(t, d.past[0], 0.5+delayFeedback)
	expectEqual(t, d.cursor, 1)
}
