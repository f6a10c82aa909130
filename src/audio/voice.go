package audio

import "math"

const maxPoly = 10

// noteToFreq truncates to whole hertz so that every partial completes a whole
// number of cycles when the master clock wraps once per second.
func noteToFreq(note uint8) float64 {
	freq := (440.0 / 32.0) * math.Pow(2, (float64(note)-9.0)/12.0)
	return float64(int(freq))
}

// ----- Voice ----- //

type voice struct {
	freq      float64
	note      uint8
	amplitude float64
	attackPos float64 // samples spent in attack
	decayPos  float64 // reserved
	active    bool
	released  bool
}

// ----- Voice Pool ----- //

type voicePool struct {
	voices [maxPoly]voice
	cursor int
}

// allocate reuses the lowest released slot. Without one, the slot under the
// round-robin cursor is stolen, sounding or not.
func (p *voicePool) allocate(note uint8, freq float64) int {
	slot := -1
	for i := range p.voices {
		if p.voices[i].released {
			slot = i
			break
		}
	}
	if slot < 0 {
		slot = p.cursor
		p.cursor++
		if p.cursor >= maxPoly {
			p.cursor = 0
		}
	}
	p.voices[slot] = voice{
		freq:   freq,
		note:   note,
		active: true,
	}
	return slot
}

// release marks every slot holding note, so layered duplicates all decay.
func (p *voicePool) release(note uint8) {
	for i := range p.voices {
		if p.voices[i].note == note {
			p.voices[i].released = true
		}
	}
}

func (p *voicePool) activeCount() int {
	n := 0
	for i := range p.voices {
		if p.voices[i].active {
			n++
		}
	}
	return n
}
