package audio

import "github.com/xs5871/picoaudio/errcode"

// RawSample wraps a caller-provided buffer of signed PCM data. The buffer is
// not copied and must stay untouched while the sample is playing. Interleaved
// stereo is expected for two-channel data.
type RawSample struct {
	data     []byte
	bits     uint8
	channels uint8
	rate     uint32
	spent    bool
}

// NewRawSample validates the PCM parameters and wraps data. bits must be
// 8 or 16, channels 1 or 2, and the buffer length a whole number of frames.
func NewRawSample(data []byte, bits, channels uint8, rate uint32) (*RawSample, error) {
	if bits != 8 && bits != 16 {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "audio.NewRawSample", Msg: "bits per sample must be 8 or 16"}
	}
	if channels < 1 || channels > 2 {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "audio.NewRawSample", Msg: "channel count must be 1 or 2"}
	}
	if rate == 0 {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "audio.NewRawSample", Msg: "sample rate must be non-zero"}
	}
	frame := int(bits/8) * int(channels)
	if len(data) == 0 || len(data)%frame != 0 {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "audio.NewRawSample", Msg: "buffer is not a whole number of frames"}
	}
	return &RawSample{data: data, bits: bits, channels: channels, rate: rate}, nil
}

func (s *RawSample) BitsPerSample() uint8 { return s.bits }
func (s *RawSample) SampleRate() uint32   { return s.rate }
func (s *RawSample) ChannelCount() uint8  { return s.channels }

// Reset rewinds the sample for another pass.
func (s *RawSample) Reset() error {
	s.spent = false
	return nil
}

// NextBuffer hands out the whole buffer in one chunk. A second call without
// an intervening Reset reports the pass as finished.
func (s *RawSample) NextBuffer(channel uint8) ([]byte, BufferState, error) {
	if channel >= s.channels {
		return nil, BufferError, &errcode.E{C: errcode.SourceError, Op: "audio.NextBuffer", Msg: "channel out of range"}
	}
	if s.spent {
		return nil, BufferDone, nil
	}
	s.spent = true
	return s.data, BufferDone, nil
}
