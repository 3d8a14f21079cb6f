// Package pioseq models the short fixed-width instruction programs executed
// by the RP2-series PIO sequencer: encoding of individual 16-bit instruction
// words, the read-only Program container, and a disassembler for verifying
// hand-assembled tables against their documented listings.
//
// The package is pure Go with no hardware imports, so programs can be built
// and inspected on the host as well as on target.
package pioseq

// InstrKind is the major opcode of a PIO instruction, bits 15:13.
type InstrKind uint8

const (
	InstrJMP InstrKind = iota
	InstrWAIT
	InstrIN
	InstrOUT
	InstrPUSH // PUSH and PULL share an opcode, split on bit 7
	InstrMOV
	InstrIRQ
	InstrSET
)

const (
	instrBitsJMP  = 0x0000
	instrBitsWAIT = 0x2000
	instrBitsIN   = 0x4000
	instrBitsOUT  = 0x6000
	instrBitsPUSH = 0x8000
	instrBitsPULL = 0x8080
	instrBitsMOV  = 0xa000
	instrBitsIRQ  = 0xc000
	instrBitsSET  = 0xe000

	// Bit mask for the major opcode.
	instrBitsMsk = 0xe000
)

// SrcDest selects the source or destination operand of IN/OUT/MOV/SET.
type SrcDest uint8

const (
	SrcDestPins    SrcDest = 0
	SrcDestX       SrcDest = 1
	SrcDestY       SrcDest = 2
	SrcDestNull    SrcDest = 3
	SrcDestPinDirs SrcDest = 4
	SrcDestPC      SrcDest = 5
	SrcDestISR     SrcDest = 6
	SrcDestOSR     SrcDest = 7
)

// JmpCond is the condition field of a JMP instruction.
type JmpCond uint8

const (
	// No condition, always jumps.
	JmpAlways JmpCond = iota
	// Jump if X is zero.
	JmpXZero
	// Jump if X is not zero, prior to decrement of X.
	JmpXNZeroDec
	// Jump if Y is zero.
	JmpYZero
	// Jump if Y is not zero, prior to decrement of Y.
	JmpYNZeroDec
	// Jump if X is not equal to Y.
	JmpXNotEqualY
	// Jump if the configured jump pin is high.
	JmpPinInput
	// Jump if the OSR still holds bits below the pull threshold.
	JmpOSRNotEmpty
)

func encodeInstrAndArgs(instr uint16, arg1 uint8, arg2 uint8) uint16 {
	return instr | (uint16(arg1&0b111) << 5) | uint16(arg2&0x1f)
}

func encodeInstrAndSrcDest(instr uint16, dest SrcDest, value uint8) uint16 {
	return encodeInstrAndArgs(instr, uint8(dest)&7, value)
}

// EncodeDelay places a cycle delay in the combined delay/side-set field.
// With a side-set of width n only the low 5-n bits are usable as delay.
func EncodeDelay(cycles uint8) uint16 {
	return uint16(cycles&0x1f) << 8
}

// EncodeSideSet places a side-set value for a program with the given
// (non-optional) side-set bit count.
func EncodeSideSet(bitCount, value uint8) uint16 {
	return uint16(value) << (13 - bitCount)
}

func EncodeJmp(addr uint8, condition JmpCond) uint16 {
	return encodeInstrAndArgs(instrBitsJMP, uint8(condition), addr)
}

func EncodeOut(dest SrcDest, count uint8) uint16 {
	return encodeInstrAndSrcDest(instrBitsOUT, dest, count)
}

func EncodeIn(src SrcDest, count uint8) uint16 {
	return encodeInstrAndSrcDest(instrBitsIN, src, count)
}

func EncodePush(ifFull bool, block bool) uint16 {
	arg := boolAsU8(ifFull)<<1 | boolAsU8(block)
	return encodeInstrAndArgs(instrBitsPUSH, arg, 0)
}

func EncodePull(ifEmpty bool, block bool) uint16 {
	arg := boolAsU8(ifEmpty)<<1 | boolAsU8(block)
	return encodeInstrAndArgs(instrBitsPULL, arg, 0)
}

func EncodeMov(dest SrcDest, src SrcDest) uint16 {
	return encodeInstrAndSrcDest(instrBitsMOV, dest, uint8(src)&7)
}

func EncodeSet(dest SrcDest, value uint8) uint16 {
	return encodeInstrAndSrcDest(instrBitsSET, dest, value)
}

func EncodeNOP() uint16 {
	return EncodeMov(SrcDestY, SrcDestY)
}

func majorInstrBits(instr uint16) uint16 {
	return instr & instrBitsMsk
}

func boolAsU8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
