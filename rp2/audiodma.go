//go:build rp2040

package rp2

import (
	"device/rp"
	"runtime/interrupt"
	"unsafe"

	"github.com/xs5871/picoaudio/audio"
	"github.com/xs5871/picoaudio/errcode"
	"github.com/xs5871/picoaudio/i2sout"
)

// Refills run in interrupt context where allocation is off-limits, so the
// conversion buffer is sized once in SetupPlayback and bounded; a later
// buffer that outgrows it ends playback instead of allocating.
const maxConversionSamples = 1 << 14

// AudioDMA streams sample buffers into a peripheral FIFO, one DMA channel
// per instance. Buffer turnover happens in the channel's completion
// interrupt: the next buffer is requested from the source and the channel
// retriggered, so playback continues without the caller's involvement.
type AudioDMA struct {
	ch      dmaChannel
	claimed bool

	sample  audio.BufferedSample
	opts    i2sout.PlaybackOptions
	convBuf []uint16

	playing bool
	paused  bool
}

func NewAudioDMA() *AudioDMA {
	return &AudioDMA{}
}

// Per-channel dispatch table for the shared DMA interrupt.
var dmaHandlers [numDMAChannels]*AudioDMA

var dmaIRQ interrupt.Interrupt

func init() {
	dmaIRQ = interrupt.New(rp.IRQ_DMA_IRQ_0, serviceDMAInterrupt)
	dmaIRQ.SetPriority(0xff)
}

func serviceDMAInterrupt(interrupt.Interrupt) {
	status := rp.DMA.INTS0.Get()
	rp.DMA.INTS0.Set(status) // write-1-to-clear
	for i := uint8(0); i < numDMAChannels; i++ {
		if status&(1<<i) != 0 && dmaHandlers[i] != nil {
			dmaHandlers[i].advance()
		}
	}
}

func (d *AudioDMA) Init() error {
	if d.claimed {
		return nil
	}
	ch, ok := dmaArb.claim()
	if !ok {
		return &errcode.E{C: errcode.DMABusy, Op: "rp2.Init", Msg: "no free DMA channel"}
	}
	d.ch = ch
	d.claimed = true
	dmaHandlers[ch.idx] = d
	rp.DMA.INTE0.SetBits(1 << ch.idx)
	dmaIRQ.Enable()
	return nil
}

// SetupPlayback rewinds the source, pulls its first buffer and triggers the
// channel. Any failure leaves the channel idle and unprogrammed; the caller
// owns rollback of the wider device state.
func (d *AudioDMA) SetupPlayback(sample audio.Sample, opts i2sout.PlaybackOptions) error {
	const op = "rp2.SetupPlayback"
	if !d.claimed {
		return &errcode.E{C: errcode.DMABusy, Op: op, Msg: "channel not initialized"}
	}
	if opts.SwapChannel {
		return &errcode.E{C: errcode.Unsupported, Op: op, Msg: "channel swap"}
	}
	src, ok := sample.(audio.BufferedSample)
	if !ok {
		return &errcode.E{C: errcode.SourceError, Op: op, Msg: "sample does not stream buffers"}
	}
	if err := src.Reset(); err != nil {
		return &errcode.E{C: errcode.SourceError, Op: op, Err: err}
	}

	d.sample = src
	d.opts = opts
	d.paused = false

	buf, _, err := src.NextBuffer(opts.AudioChannel)
	if err != nil {
		d.sample = nil
		return &errcode.E{C: errcode.SourceError, Op: op, Err: err}
	}
	if len(buf) == 0 {
		d.sample = nil
		return &errcode.E{C: errcode.SourceError, Op: op, Msg: "empty first buffer"}
	}
	if src.BitsPerSample() == 8 {
		if len(buf) > maxConversionSamples {
			d.sample = nil
			return &errcode.E{C: errcode.AllocationFailed, Op: op, Msg: "source buffer exceeds conversion capacity"}
		}
		if cap(d.convBuf) < len(buf) {
			d.convBuf = make([]uint16, len(buf))
		}
	}
	if err := d.startTransfer(buf); err != nil {
		d.sample = nil
		return err
	}
	d.playing = true
	return nil
}

// startTransfer widens 8-bit sources into the conversion buffer, sizes the
// bus accesses for the channel layout and triggers the channel. Never
// allocates; callable from interrupt context.
func (d *AudioDMA) startTransfer(buf []byte) error {
	var (
		addr    uintptr
		samples int
	)
	if d.sample.BitsPerSample() == 8 {
		samples = len(buf)
		if samples > cap(d.convBuf) {
			return &errcode.E{C: errcode.AllocationFailed, Op: "rp2.startTransfer", Msg: "source buffer exceeds conversion capacity"}
		}
		cb := d.convBuf[:samples]
		widenSamples(cb, buf)
		addr = uintptr(unsafe.Pointer(&cb[0]))
	} else {
		samples = len(buf) / 2
		addr = uintptr(unsafe.Pointer(&buf[0]))
	}
	count, size := transferSizing(d.sample.ChannelCount(), samples)

	ctrl := uint32(dmaCtrlEn|dmaCtrlIncrRead) |
		size<<dmaCtrlDataSizePos |
		uint32(d.opts.DREQ)<<dmaCtrlTreqSelPos |
		uint32(d.ch.idx)<<dmaCtrlChainToPos // chain to self: no chain

	d.ch.hw.READ_ADDR.Set(uint32(addr))
	d.ch.hw.WRITE_ADDR.Set(uint32(d.opts.Dest))
	d.ch.hw.TRANS_COUNT.Set(count)
	d.ch.hw.CTRL_TRIG.Set(ctrl)
	return nil
}

// advance runs in interrupt context when the channel finishes a buffer.
// Source errors end playback rather than propagate; Playing() reports the
// outcome to the caller.
func (d *AudioDMA) advance() {
	if !d.playing || d.sample == nil {
		return
	}
	buf, state, err := d.sample.NextBuffer(d.opts.AudioChannel)
	if err != nil || state == audio.BufferError {
		d.playing = false
		return
	}
	if len(buf) == 0 {
		if !d.opts.Loop {
			d.playing = false
			return
		}
		if err := d.sample.Reset(); err != nil {
			d.playing = false
			return
		}
		buf, _, err = d.sample.NextBuffer(d.opts.AudioChannel)
		if err != nil || len(buf) == 0 {
			d.playing = false
			return
		}
	}
	if d.startTransfer(buf) != nil {
		d.playing = false
	}
}

// Pause gates the channel off without losing its position. The write goes
// through the AL1 alias so it cannot retrigger.
func (d *AudioDMA) Pause() {
	if !d.playing || d.paused {
		return
	}
	d.ch.hw.AL1_CTRL.ClearBits(dmaCtrlEn)
	d.paused = true
}

func (d *AudioDMA) Resume() {
	if !d.playing || !d.paused {
		return
	}
	d.ch.hw.AL1_CTRL.SetBits(dmaCtrlEn)
	d.paused = false
}

func (d *AudioDMA) Stop() {
	if !d.claimed {
		return
	}
	d.ch.hw.AL1_CTRL.ClearBits(dmaCtrlEn)
	d.ch.abort()
	rp.DMA.INTS0.Set(1 << d.ch.idx)
	d.playing = false
	d.paused = false
	d.sample = nil
}

func (d *AudioDMA) Playing() bool { return d.playing }

func (d *AudioDMA) Paused() bool { return d.paused }

func (d *AudioDMA) Deinit() {
	if !d.claimed {
		return
	}
	d.Stop()
	rp.DMA.INTE0.ClearBits(1 << d.ch.idx)
	dmaHandlers[d.ch.idx] = nil
	dmaArb.unclaim(d.ch)
	d.claimed = false
	d.convBuf = nil
}
