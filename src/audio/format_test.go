package audio

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestWriteFrame(t *testing.T) {
	t.Run("u8", func(t *testing.T) {
		buf := make([]byte, 2)
		writeFrame(buf, 0, FormatU8, 2, 0)
		expectEqual(t, buf[0], byte(127))
		expectEqual(t, buf[1], byte(127))
		writeFrame(buf, 0, FormatU8, 2, 1)
		expectEqual(t, buf[0], byte(255))
		writeFrame(buf, 0, FormatU8, 2, -1)
		expectEqual(t, buf[1], byte(0))
	})
	t.Run("i16", func(t *testing.T) {
		buf := make([]byte, 8)
		writeFrame(buf, 4, FormatI16, 2, 0.5)
		expectEqual(t, int16(binary.LittleEndian.Uint16(buf[4:])), int16(16383))
		expectEqual(t, int16(binary.LittleEndian.Uint16(buf[6:])), int16(16383))
		expectEqual(t, buf[0], byte(0))
		writeFrame(buf, 0, FormatI16, 1, -1)
		expectEqual(t, int16(binary.LittleEndian.Uint16(buf[0:])), int16(-32767))
	})
	t.Run("i16 wraps out of range", func(t *testing.T) {
		buf := make([]byte, 2)
		writeFrame(buf, 0, FormatI16, 1, 1.5)
		expectEqual(t, int16(binary.LittleEndian.Uint16(buf)), int16(49150-65536))
	})
	t.Run("f32", func(t *testing.T) {
		buf := make([]byte, 12)
		writeFrame(buf, 0, FormatF32, 3, -0.25)
		for ch := 0; ch < 3; ch++ {
			expectEqual(t, math.Float32frombits(binary.LittleEndian.Uint32(buf[4*ch:])), float32(-0.25))
		}
	})
}
