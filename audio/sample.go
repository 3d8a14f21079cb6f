// Package audio defines the sample-source contracts consumed by the audio
// output drivers, plus a couple of concrete in-memory sources.
package audio

// Sample describes the PCM properties an output device needs to configure
// itself. Implementations hold signed PCM data.
type Sample interface {
	BitsPerSample() uint8
	SampleRate() uint32
	ChannelCount() uint8
}

// BufferState reports the outcome of a NextBuffer call.
type BufferState uint8

const (
	// BufferMore: the returned buffer is valid and more data follows.
	BufferMore BufferState = iota
	// BufferDone: the returned buffer is the last one of this pass.
	BufferDone
	// BufferError: the source failed; the buffer must not be used.
	BufferError
)

// BufferedSample is the buffer protocol a DMA engine streams from.
// Reset rewinds the source to the start of its data; NextBuffer hands out
// the next chunk for the given audio channel. Buffers stay owned by the
// sample and remain valid until the next NextBuffer or Reset call.
type BufferedSample interface {
	Sample
	Reset() error
	NextBuffer(channel uint8) ([]byte, BufferState, error)
}
