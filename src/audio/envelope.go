package audio

// ----- Envelope ----- //

/*
  2.0 +       x
      |      /  \__
      |     /      \__          (held: -0.000001 / sample)
      |    /          \__
      |   /       ^      \__
      |  /        |noteOff  \   (released: -0.000501 / sample)
      | /                    \
    0 +--------+--------------x-- inactive
      |attack  |decay ...
      |0.1 sec |
*/

const (
	attackTime  = 0.1 // sec
	attackSlope = 20.0
	decayStep   = 0.000001
	releaseStep = 0.0005
)

const (
	envelopeNone = iota
	envelopeAttack
	envelopeDecay
	envelopeRelease
)

func (v *voice) envelopePhase(sampleRate float64) int {
	switch {
	case !v.active:
		return envelopeNone
	case v.released:
		return envelopeRelease
	case v.attackPos < attackTime*sampleRate:
		return envelopeAttack
	default:
		return envelopeDecay
	}
}

// stepEnvelope advances the amplitude by one sample. A voice released during
// attack skips straight to release; there is no sustain plateau.
func (v *voice) stepEnvelope(sampleRate float64) {
	switch v.envelopePhase(sampleRate) {
	case envelopeNone:
		return
	case envelopeAttack:
		v.amplitude = attackSlope * v.attackPos / sampleRate
		v.attackPos++
		return
	case envelopeRelease:
		v.amplitude -= releaseStep
	}
	v.amplitude -= decayStep
	if v.amplitude <= 0 {
		v.active = false
	}
}
