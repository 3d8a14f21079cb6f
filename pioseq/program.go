package pioseq

import "github.com/xs5871/picoaudio/errcode"

// MaxProgramLen is the instruction memory available to one PIO block.
const MaxProgramLen = 32

// Program is an immutable sequencer micro-program: up to 32 fixed 16-bit
// instruction words plus the assembly-time parameters a loader needs.
// Programs are selected from static tables, never generated at run time.
type Program struct {
	Name         string
	Instructions []uint16
	// SideSet is the non-optional side-set bit count stolen from the
	// delay field of every instruction.
	SideSet uint8
	// Origin is the fixed load offset, or -1 if position independent.
	Origin int8
}

// Len returns the instruction count.
func (p *Program) Len() uint8 { return uint8(len(p.Instructions)) }

// WrapBounds returns the program counter wrap range [target, wrap].
// All programs in this module wrap over their whole body.
func (p *Program) WrapBounds() (target, wrap uint8) {
	return 0, p.Len() - 1
}

// Validate checks the structural limits imposed by the sequencer hardware.
func (p *Program) Validate() error {
	if len(p.Instructions) == 0 || len(p.Instructions) > MaxProgramLen {
		return &errcode.E{C: errcode.InvalidParams, Op: "pioseq.Validate", Msg: "program length out of range"}
	}
	if p.SideSet > 5 {
		return &errcode.E{C: errcode.InvalidParams, Op: "pioseq.Validate", Msg: "side-set wider than 5 bits"}
	}
	return nil
}

// Listing disassembles the whole program, one line per instruction word.
func (p *Program) Listing() []string {
	out := make([]string, len(p.Instructions))
	for i, instr := range p.Instructions {
		out[i] = Disassemble(instr, p.SideSet)
	}
	return out
}
