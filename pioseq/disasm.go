package pioseq

import (
	"fmt"
	"strings"
)

// Operand name tables. MOV has its own source/destination spellings.
var (
	outDests = [8]string{"pins", "x", "y", "null", "pindirs", "pc", "isr", "exec"}
	inSrcs   = [8]string{"pins", "x", "y", "null", "", "status", "isr", "osr"}
	movDests = [8]string{"pins", "x", "y", "", "exec", "pc", "isr", "osr"}
	movSrcs  = [8]string{"pins", "x", "y", "null", "", "status", "isr", "osr"}
	setDests = [8]string{"pins", "x", "y", "", "pindirs", "", "", ""}
	jmpConds = [8]string{"", "!x", "x--", "!y", "y--", "x!=y", "pin", "!osre"}
)

// Disassemble renders one instruction word in the pioasm listing format,
// e.g. "out    pins, 1         side 2 [2]". sideSet is the program's
// non-optional side-set bit count; the remaining delay bits are shown in
// brackets when non-zero.
func Disassemble(instr uint16, sideSet uint8) string {
	if sideSet > 5 {
		sideSet = 5
	}
	field := uint8(instr>>8) & 0x1f
	delayBits := 5 - sideSet
	delay := field & (1<<delayBits - 1)
	side := field >> delayBits

	mn, ops := decodeBody(instr)

	s := fmt.Sprintf("%-7s%-16s", mn, ops)
	if sideSet > 0 {
		s += fmt.Sprintf("side %d", side)
	}
	if delay > 0 {
		s += fmt.Sprintf(" [%d]", delay)
	}
	return strings.TrimRight(s, " ")
}

func decodeBody(instr uint16) (mnemonic, operands string) {
	arg1 := uint8(instr>>5) & 0b111
	arg2 := uint8(instr) & 0x1f

	switch majorInstrBits(instr) {
	case instrBitsJMP:
		if cond := jmpConds[arg1]; cond != "" {
			return "jmp", fmt.Sprintf("%s, %d", cond, arg2)
		}
		return "jmp", fmt.Sprintf("%d", arg2)

	case instrBitsWAIT:
		pol := arg1 >> 2 & 1
		switch arg1 & 0b11 {
		case 0:
			return "wait", fmt.Sprintf("%d gpio, %d", pol, arg2)
		case 1:
			return "wait", fmt.Sprintf("%d pin, %d", pol, arg2)
		default:
			return "wait", fmt.Sprintf("%d irq, %d", pol, arg2&0xf)
		}

	case instrBitsIN:
		return "in", fmt.Sprintf("%s, %d", inSrcs[arg1], bitCount(arg2))

	case instrBitsOUT:
		return "out", fmt.Sprintf("%s, %d", outDests[arg1], bitCount(arg2))

	case instrBitsPUSH: // PUSH or PULL, split on bit 7
		var flags []string
		if arg1&0b10 != 0 {
			if instr&0x0080 != 0 {
				flags = append(flags, "ifempty")
			} else {
				flags = append(flags, "iffull")
			}
		}
		if arg1&0b01 != 0 {
			flags = append(flags, "block")
		} else {
			flags = append(flags, "noblock")
		}
		if instr&0x0080 != 0 {
			return "pull", strings.Join(flags, " ")
		}
		return "push", strings.Join(flags, " ")

	case instrBitsMOV:
		op := ""
		switch arg2 >> 3 {
		case 1:
			op = "!"
		case 2:
			op = "::"
		}
		return "mov", fmt.Sprintf("%s, %s%s", movDests[arg1], op, movSrcs[arg2&0b111])

	case instrBitsIRQ:
		idx := fmt.Sprintf("%d", arg2&0xf)
		if arg2&0x10 != 0 {
			idx += " rel"
		}
		switch {
		case arg1&0b10 != 0:
			return "irq", "clear " + idx
		case arg1&0b01 != 0:
			return "irq", "wait " + idx
		default:
			return "irq", idx
		}

	case instrBitsSET:
		return "set", fmt.Sprintf("%s, %d", setDests[arg1], arg2)
	}
	return "nop", ""
}

// OUT/IN encode a count of 32 as zero.
func bitCount(n uint8) uint8 {
	if n == 0 {
		return 32
	}
	return n
}
