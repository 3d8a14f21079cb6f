package audio

import (
	"encoding/binary"
	"math"
)

// NewToneSample builds a mono 16-bit RawSample holding whole periods of a
// sine tone, sized so the buffer loops without a phase jump. amplitude is
// the peak value, e.g. 16000 for a comfortably loud test tone.
func NewToneSample(rate, toneHz uint32, amplitude int16) (*RawSample, error) {
	if toneHz == 0 || toneHz > rate/2 {
		toneHz = 440
	}
	// One whole period, rounded to the nearest frame count.
	n := int((rate + toneHz/2) / toneHz)
	if n < 2 {
		n = 2
	}
	buf := make([]byte, 2*n)
	for i := 0; i < n; i++ {
		v := int16(float64(amplitude) * math.Sin(2*math.Pi*float64(i)/float64(n)))
		binary.LittleEndian.PutUint16(buf[2*i:], uint16(v))
	}
	return NewRawSample(buf, 16, 1, rate)
}
