package audio

import (
	"encoding/binary"
	"math"
)

func (f Format) bytesPerSample() int {
	switch f {
	case FormatU8:
		return 1
	case FormatI16:
		return 2
	case FormatF32:
		return 4
	}
	return 0
}

// writeFrame writes the same value to every channel of the frame at buf[offset:].
// Out-of-range values are not clamped; integer encodings wrap.
func writeFrame(buf []byte, offset int, f Format, channels int, value float64) {
	switch f {
	case FormatU8:
		const scale = 255
		b := byte(int64((value*0.5 + 0.5) * scale))
		for ch := 0; ch < channels; ch++ {
			buf[offset+ch] = b
		}
	case FormatI16:
		const scale = 32767
		b := uint16(int16(int64(value * scale)))
		for ch := 0; ch < channels; ch++ {
			binary.LittleEndian.PutUint16(buf[offset+2*ch:], b)
		}
	case FormatF32:
		b := math.Float32bits(float32(value))
		for ch := 0; ch < channels; ch++ {
			binary.LittleEndian.PutUint32(buf[offset+4*ch:], b)
		}
	}
}
