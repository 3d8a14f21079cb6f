//go:build rp2040

// Package rp2 binds the i2sout collaborator contracts to RP2040 silicon:
// sequencer slots are PIO state machines driven through
// github.com/tinygo-org/pio, playback DMA is a channel of the DMA
// controller paced by the state machine's TX DREQ.
package rp2

import (
	"machine"
	"unsafe"

	pio "github.com/tinygo-org/pio/rp2-pio"

	"github.com/xs5871/picoaudio/errcode"
	"github.com/xs5871/picoaudio/i2sout"
)

// SequencerProvider claims state machines on one PIO block.
type SequencerProvider struct {
	pio *pio.PIO
}

func NewSequencerProvider(block *pio.PIO) *SequencerProvider {
	return &SequencerProvider{pio: block}
}

// Claim takes the first free state machine on the block, loads the program
// and applies the descriptor. The machine comes back running the warm-up
// clock. Exclusivity is enforced at the state-machine level; the caller
// guarantees the pins themselves are free.
func (p *SequencerProvider) Claim(cfg i2sout.SequencerConfig) (i2sout.Sequencer, error) {
	if err := cfg.Program.Validate(); err != nil {
		return nil, err
	}
	// Resolve the divider before anything is claimed or loaded so failure
	// leaves no residue.
	whole, frac, err := pio.ClkDivFromFrequency(cfg.Frequency, machine.CPUFrequency())
	if err != nil {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "rp2.Claim", Err: err}
	}
	sm, ok := p.freeStateMachine()
	if !ok {
		return nil, &errcode.E{C: errcode.NoSequencer, Op: "rp2.Claim", Msg: "no free state machine"}
	}
	offset, err := p.pio.AddProgram(cfg.Program.Instructions, cfg.Program.Origin)
	if err != nil {
		sm.Unclaim()
		return nil, &errcode.E{C: errcode.AllocationFailed, Op: "rp2.Claim", Err: err}
	}

	smCfg := pio.DefaultStateMachineConfig()
	smCfg.SetOutPins(machine.Pin(cfg.OutPin), cfg.OutPinCount)
	smCfg.SetSidesetPins(machine.Pin(cfg.SideSetPin))
	smCfg.SetSidesetParams(cfg.SideSetCount, cfg.SideSetOptional, cfg.SideSetPinDirs)
	smCfg.SetOutShift(cfg.OutShiftRight, cfg.AutoPull, uint16(cfg.PullThreshold))
	smCfg.SetWrap(offset+cfg.WrapTarget, offset+cfg.Wrap)
	if cfg.JoinTxFIFO {
		smCfg.SetFIFOJoin(pio.FIFO_JOIN_TX)
	}
	smCfg.SetClkDivIntFrac(whole, frac)

	// Hand the pins to the PIO and settle their idle state: all outputs,
	// all low.
	pinCfg := machine.PinConfig{Mode: p.pio.PinMode()}
	machine.Pin(cfg.OutPin).Configure(pinCfg)
	for i := uint8(0); i < cfg.SideSetCount; i++ {
		(machine.Pin(cfg.SideSetPin) + machine.Pin(i)).Configure(pinCfg)
	}

	sm.Init(offset, smCfg)
	var mask uint32
	for i := uint8(0); i < cfg.OutPinCount; i++ {
		mask |= 1 << (uint8(cfg.OutPin) + i)
	}
	for i := uint8(0); i < cfg.SideSetCount; i++ {
		mask |= 1 << (uint8(cfg.SideSetPin) + i)
	}
	sm.SetPindirsMasked(mask, mask)
	sm.SetPinsMasked(0, mask)
	sm.SetEnabled(true)

	return &Sequencer{sm: sm, offset: offset}, nil
}

func (p *SequencerProvider) freeStateMachine() (pio.StateMachine, bool) {
	for i := uint8(0); i < 4; i++ {
		sm := p.pio.StateMachine(i)
		if sm.TryClaim() {
			return sm, true
		}
	}
	return pio.StateMachine{}, false
}

// Sequencer is one claimed state machine with its program loaded.
type Sequencer struct {
	sm       pio.StateMachine
	offset   uint8
	deinited bool
}

func (s *Sequencer) SetFrequency(hz uint32) error {
	whole, frac, err := pio.ClkDivFromFrequency(hz, machine.CPUFrequency())
	if err != nil {
		return err
	}
	s.sm.SetClkDiv(whole, frac)
	return nil
}

// Restart clears shift/FIFO state, zeroes the clock divider phase and sends
// the program counter back to instruction 0.
func (s *Sequencer) Restart() {
	s.sm.SetEnabled(false)
	s.sm.ClearFIFOs()
	s.sm.Restart()
	s.sm.ClkDivRestart()
	s.sm.Exec(pio.EncodeJmp(s.offset, pio.JmpAlways))
	s.sm.SetEnabled(true)
}

func (s *Sequencer) Stop() {
	s.sm.SetEnabled(false)
	s.sm.ClearFIFOs()
}

// Deinit halts the machine and releases the slot. The program stays in
// instruction memory; slots are claimed far more often than programs churn.
func (s *Sequencer) Deinit() {
	if s.deinited {
		return
	}
	s.Stop()
	s.sm.Unclaim()
	s.deinited = true
}

func (s *Sequencer) Deinited() bool { return s.deinited }

func (s *Sequencer) TxFIFO() uintptr {
	return uintptr(unsafe.Pointer(s.sm.TxReg()))
}

// TxDREQ follows the RP2040 system DREQ table: PIO TX lines occupy
// block*8 + machine index.
func (s *Sequencer) TxDREQ() uint8 {
	return s.sm.PIO().BlockIndex()*8 + s.sm.StateMachineIndex()
}
