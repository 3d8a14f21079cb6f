// Package i2sout drives a 3-wire serial audio output (bit clock, word
// select, data) on RP2-class parts: a PIO-style sequencer produces bit-exact
// I2S timing from one of four fixed micro-programs while a DMA engine
// streams PCM words into the sequencer's TX FIFO, paced by its request line.
// Once playing, both engines run without per-sample CPU work.
//
// The sequencer and DMA engines themselves are collaborators behind the
// SequencerProvider and PlaybackDMA interfaces; package rp2 binds them to
// real silicon.
package i2sout

import (
	"github.com/xs5871/picoaudio/audio"
	"github.com/xs5871/picoaudio/errcode"
	"github.com/xs5871/picoaudio/x/mathx"
)

// I2SOut is one I2S output device. Lifecycle: New (claims the sequencer
// slot and DMA channel) → Play/Pause/Resume/Stop → Deinit (terminal).
//
// Calls on one device must be serialized by the owner; the hardware engines
// run concurrently with the caller but configuration does not.
type I2SOut struct {
	seq Sequencer
	dma PlaybackDMA

	// playing records last known software intent. It can lag the real DMA
	// state (a non-looping transfer finishes on its own) and is
	// reconciled in Playing.
	playing bool
}

// New claims a sequencer slot and DMA channel for the given pin
// configuration and starts the warm-up clock. On any error nothing stays
// allocated.
func New(cfg Config, provider SequencerProvider, dma PlaybackDMA) (*I2SOut, error) {
	scfg, err := cfg.sequencerConfig()
	if err != nil {
		return nil, err
	}
	seq, err := provider.Claim(scfg)
	if err != nil {
		return nil, err
	}
	if err := dma.Init(); err != nil {
		seq.Deinit()
		return nil, err
	}
	return &I2SOut{seq: seq, dma: dma}, nil
}

// Play starts sample, restarting from scratch if something is already
// playing. With loop set the sample repeats until Stop.
func (o *I2SOut) Play(sample audio.Sample, loop bool) error {
	if o.Deinited() {
		return &errcode.E{C: errcode.Error, Op: "i2sout.Play", Msg: "device deinited"}
	}
	if o.Playing() {
		o.Stop()
	}

	// The output side transmits at least 16 bits per channel; narrower
	// sources are clamped and padded by the DMA engine.
	bits := mathx.Max(sample.BitsPerSample(), 16)
	if sample.ChannelCount() > 2 {
		return &errcode.E{
			C:   errcode.TooManyChannels,
			Op:  "i2sout.Play",
			Msg: "sample has more than 2 channels",
		}
	}

	if err := o.seq.SetFrequency(playbackFrequency(bits, sample.SampleRate())); err != nil {
		o.Stop()
		return &errcode.E{C: errcode.InvalidParams, Op: "i2sout.Play", Err: err}
	}
	o.seq.Restart()

	// Writes to the TX FIFO are mono-compatible: a 16-bit mono stream is
	// replicated into both halves of the 32-bit FIFO word by the engine
	// (see rp2.AudioDMA), so stereo framing needs no extra conversion.
	err := o.dma.SetupPlayback(sample, PlaybackOptions{
		Loop:          loop,
		SingleChannel: false,
		AudioChannel:  0,
		OutputSigned:  true,
		BitsPerSample: bits,
		Dest:          o.seq.TxFIFO(),
		DREQ:          o.seq.TxDREQ(),
		SwapChannel:   false,
	})
	if err != nil {
		o.Stop()
		return err
	}

	o.playing = true
	return nil
}

// Pause suspends the DMA stream. The sequencer keeps running and recycles
// its last frame, so the line is not guaranteed silent while paused.
func (o *I2SOut) Pause() {
	o.dma.Pause()
}

// Resume continues a paused stream from where it stopped. Any FIFO
// overrun/underrun flags accumulated while paused are left as they are.
func (o *I2SOut) Resume() {
	o.dma.Resume()
}

// Paused reports whether the DMA stream is paused.
func (o *I2SOut) Paused() bool {
	return o.dma.Paused()
}

// Stop halts playback from any state and returns the device to idle.
// Idempotent. The hardware engines finish their in-flight cycle, so the
// cutoff is not sample-accurate.
func (o *I2SOut) Stop() {
	if o.Deinited() {
		return
	}
	o.dma.Stop()
	o.seq.Stop()
	o.playing = false
}

// Playing reports whether playback is running, reconciling software state
// with the hardware first: if the DMA drained a non-looping transfer on its
// own, the device is stopped here before reporting false. This is the one
// place stale state is expected rather than an error.
func (o *I2SOut) Playing() bool {
	if o.Deinited() {
		return false
	}
	playing := o.dma.Playing()
	if !playing && o.playing {
		o.Stop()
	}
	return playing
}

// Deinit stops playback and releases the sequencer slot and DMA channel.
// Idempotent; the device is unusable afterwards.
func (o *I2SOut) Deinit() {
	if o.Deinited() {
		return
	}
	if o.Playing() {
		o.Stop()
	}
	o.seq.Deinit()
	o.dma.Deinit()
}

// Deinited reports whether Deinit has run.
func (o *I2SOut) Deinited() bool {
	return o.seq == nil || o.seq.Deinited()
}

// playbackFrequency derives the sequencer clock for a sample: 6 ticks per
// bit, two channels of max(bits, 16) bits per frame, sampleRate frames/s.
func playbackFrequency(bitsPerSample uint8, sampleRate uint32) uint32 {
	bits := uint32(mathx.Max(bitsPerSample, 16))
	return clocksPerBit * 2 * bits * sampleRate
}
