package i2sout

import (
	"github.com/xs5871/picoaudio/audio"
	"github.com/xs5871/picoaudio/pioseq"
)

// Pin is a GPIO number. Pin validity is the caller's responsibility;
// the driver only checks relative ordering.
type Pin uint8

// SequencerConfig is the full static descriptor handed to a sequencer
// provider at claim time. It captures everything the hardware needs before
// the program starts: the program itself, the warm-up clock, pin roles and
// shift behaviour.
type SequencerConfig struct {
	Program   *pioseq.Program
	Frequency uint32 // initial clock, Hz

	// Pin roles. OutPin carries the serial data; the two side-set pins
	// start at SideSetPin and carry bit clock and word select.
	OutPin       Pin
	OutPinCount  uint8
	SideSetPin   Pin
	SideSetCount uint8
	// SideSetOptional steals one more bit as a per-instruction enable.
	// The I2S programs drive both pins every cycle, so this stays false.
	SideSetOptional bool
	// SideSetPinDirs makes side-set drive pin directions instead of levels.
	SideSetPinDirs bool

	// Out shift register behaviour.
	OutShiftRight bool  // false = shift left, MSB first
	AutoPull      bool  // false = the program pulls explicitly
	PullThreshold uint8 // bits per refill, 32 for full words

	// FIFO and execution behaviour.
	JoinTxFIFO        bool // false = default four-deep TX FIFO
	ExclusivePins     bool
	UserInterruptible bool

	// Program counter wrap range, program-relative.
	WrapTarget uint8
	Wrap       uint8
}

// Sequencer is an exclusively-owned hardware sequencer slot, claimed with a
// loaded program and live until Deinit.
type Sequencer interface {
	// SetFrequency retargets the sequencer clock.
	SetFrequency(hz uint32) error
	// Restart resets internal state and the program counter to
	// instruction 0, leaving the sequencer running.
	Restart()
	// Stop halts execution and drops any queued FIFO words.
	Stop()
	Deinit()
	Deinited() bool
	// TxFIFO returns the address of the transmit-FIFO register, the DMA
	// write destination.
	TxFIFO() uintptr
	// TxDREQ returns the paired transmit data-request line.
	TxDREQ() uint8
}

// SequencerProvider claims a free sequencer slot, loads cfg.Program and
// applies the descriptor. Claim failures leave nothing allocated.
type SequencerProvider interface {
	Claim(cfg SequencerConfig) (Sequencer, error)
}

// PlaybackOptions parameterizes one DMA playback session.
type PlaybackOptions struct {
	Loop          bool
	SingleChannel bool
	AudioChannel  uint8
	OutputSigned  bool
	BitsPerSample uint8
	Dest          uintptr // transmit-FIFO register address
	DREQ          uint8   // pacing request line
	SwapChannel   bool
}

// PlaybackDMA is the DMA engine collaborator. SetupPlayback errors carry an
// errcode of DMABusy, AllocationFailed or SourceError; the lifecycle
// controller rolls back and propagates them unchanged.
type PlaybackDMA interface {
	Init() error
	SetupPlayback(sample audio.Sample, opts PlaybackOptions) error
	Pause()
	Resume()
	Stop()
	Playing() bool
	Paused() bool
	Deinit()
}
