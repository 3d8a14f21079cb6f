package rp2

// DMA bus access widths (CTRL DATA_SIZE field).
const (
	dmaSize8  = 0
	dmaSize16 = 1
	dmaSize32 = 2
)

// transferSizing maps a sample buffer onto DMA bus accesses. samples is the
// buffer length in 16-bit samples, after any widening. Mono goes out as
// narrow 16-bit writes — the RP2040 bus fabric replicates narrow writes
// across the 32-bit FIFO register, which fills both halves of the frame for
// free. Stereo packs one two-sample frame per 32-bit word.
func transferSizing(channels uint8, samples int) (count uint32, size uint32) {
	if channels == 2 {
		return uint32(samples / 2), dmaSize32
	}
	return uint32(samples), dmaSize16
}

// widenSamples converts signed 8-bit samples to 16-bit. Shifting into the
// high byte preserves sign and scales to full range.
func widenSamples(dst []uint16, src []byte) {
	for i, b := range src {
		dst[i] = uint16(int16(int8(b)) << 8)
	}
}
