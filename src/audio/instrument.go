package audio

import (
	"math"
	"strings"

	"github.com/pkg/errors"
)

// ----- Instrument ----- //

// Instrument is the waveform every voice is rendered with. One is chosen per session.
type Instrument int

const (
	Organ Instrument = iota
	Weird
	Brass
	SoftSaw
	HardSaw
)

var instrumentNames = [...]string{
	Organ:   "organ",
	Weird:   "weird",
	Brass:   "brass",
	SoftSaw: "softsaw",
	HardSaw: "hardsaw",
}

func (i Instrument) String() string {
	if i < 0 || int(i) >= len(instrumentNames) {
		return "unknown"
	}
	return instrumentNames[i]
}

// ParseInstrument ...
func ParseInstrument(s string) (Instrument, error) {
	for i, name := range instrumentNames {
		if strings.EqualFold(s, name) {
			return Instrument(i), nil
		}
	}
	return 0, errors.Errorf("unknown instrument %q", s)
}

// mix weight applied to every voice before summation
const voiceGain = 0.1

type partial struct {
	n    float64
	gain float64
}

var organPartials = [...]partial{
	{1, 0.1}, {2, 0.1}, {3, 0.1}, {4, 0.3}, {6, 0.2}, {8, 0.2}, {10, 0.1},
}

var brassPartials = [...]partial{
	{1, 1.17}, {2, 2.33}, {3, 1.4}, {4, 0.85}, {5, 0.28},
	{6, 0.11}, {7, 0.05}, {8, 0.02}, {9, 0.008}, {10, 0.003},
}

const softSawPartials = 20

// 25-term Fourier series of an arbitrary drawn wave
type fourierTerm struct {
	w   float64
	cos float64
	sin float64
}

const weirdOffset = -0.255069

var weirdTerms = [...]fourierTerm{
	{15.708, -0.007918, 0.038073},
	{15.0796, 0.022659, 0.019358},
	{14.4513, 0.000969, -0.009212},
	{13.823, -0.019904, 0.004311},
	{13.1947, -0.026721, 0.018882},
	{12.5664, -0.011172, 0.047797},
	{11.9381, 0.029089, 0.023723},
	{11.3097, -0.001463, -0.01358},
	{10.6814, -0.027469, 0.007344},
	{10.0531, -0.035268, 0.023627},
	{9.42478, -0.017356, 0.064208},
	{8.79646, 0.04064, 0.03071},
	{8.16814, -0.008001, -0.022867},
	{7.53982, -0.043, 0.014937},
	{6.9115, -0.051253, 0.031978},
	{6.28319, -0.032015, 0.097756},
	{5.65487, 0.067429, 0.043588},
	{5.02655, -0.031871, -0.050568},
	{4.39823, -0.088597, 0.043866},
	{3.76991, -0.089768, 0.051323},
	{3.14159, -0.088465, 0.203019},
	{2.51327, 0.189877, 0.069533},
	{1.88496, -0.253464, -0.271843},
	{1.25664, -0.546645, 0.49343},
	{0.628319, 0.15225, 0.12749},
}

// sample maps a phase in radians to the instrument's output at the given amplitude.
// phase is not wrapped.
func (i Instrument) sample(phase float64, amplitude float64) float64 {
	value := 0.0
	switch i {
	case Organ:
		for _, p := range organPartials {
			value += p.gain * math.Sin(p.n*phase)
		}
		return amplitude * value
	case Brass:
		for _, p := range brassPartials {
			value += p.gain * math.Sin(p.n*phase)
		}
	case SoftSaw:
		for n := 1; n <= softSawPartials; n++ {
			x := float64(n)
			if n%2 == 1 {
				value += math.Sin(2*x*phase) / x
			} else {
				value -= math.Sin(2*x*phase) / x
			}
		}
	case HardSaw:
		// naive; aliases above a few hundred hertz
		value = math.Mod(phase, 1.0)
	case Weird:
		for _, t := range weirdTerms {
			value += t.cos*math.Cos(t.w*phase) + t.sin*math.Sin(t.w*phase)
		}
		value += weirdOffset
	}
	return 0.5 * amplitude * value
}
