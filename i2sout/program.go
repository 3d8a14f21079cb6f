package i2sout

import (
	"github.com/xs5871/picoaudio/errcode"
	"github.com/xs5871/picoaudio/pioseq"
)

// The four I2S transmit programs, pre-assembled. Two framing variants
// (standard I2S asserts data one bit clock after the word-select edge,
// left-justified asserts it on the edge) times two pin orientations (side-set
// bit 0 is the lower-numbered pin, so the clock/word-select roles swap when
// the word-select pin sits below the bit clock).
//
// Every program: side-set 2, ten words, wraps over its whole body. The bit
// loops run one instruction plus a [2] delay per half clock, so one output
// bit costs 6 sequencer ticks. Refill is the program's own pull noblock: on
// an empty FIFO it recycles X, repeating the last frame instead of tearing.

// Orientation: bit clock = word select - 1. Side-set bit 0 drives the bit
// clock, bit 1 the word select.
var i2sStandard = pioseq.Program{
	Name:    "i2s",
	SideSet: 2,
	Origin:  -1,
	Instructions: []uint16{
		0x9880, //  0: pull   noblock         side 3
		0xb827, //  1: mov    x, osr          side 3
		0xf84e, //  2: set    y, 14           side 3
		0x7201, //  3: out    pins, 1         side 2 [2]  ; right channel
		0x1a83, //  4: jmp    y--, 3          side 3 [2]
		0x6201, //  5: out    pins, 1         side 0 [2]
		0xea4e, //  6: set    y, 14           side 1 [2]
		0x6201, //  7: out    pins, 1         side 0 [2]  ; left channel
		0x0a87, //  8: jmp    y--, 7          side 1 [2]
		0x7201, //  9: out    pins, 1         side 2 [2]
	},
}

var i2sLeftJustified = pioseq.Program{
	Name:    "i2s_left",
	SideSet: 2,
	Origin:  -1,
	Instructions: []uint16{
		0x8880, //  0: pull   noblock         side 1
		0xa827, //  1: mov    x, osr          side 1
		0xe84e, //  2: set    y, 14           side 1
		0x7201, //  3: out    pins, 1         side 2 [2]  ; right channel
		0x1a83, //  4: jmp    y--, 3          side 3 [2]
		0x7201, //  5: out    pins, 1         side 2 [2]
		0xfa4e, //  6: set    y, 14           side 3 [2]
		0x6201, //  7: out    pins, 1         side 0 [2]  ; left channel
		0x0a87, //  8: jmp    y--, 7          side 1 [2]
		0x6201, //  9: out    pins, 1         side 0 [2]
	},
}

// Orientation: bit clock = word select + 1. Side-set bit 0 drives the word
// select, bit 1 the bit clock.
var i2sSwapped = pioseq.Program{
	Name:    "i2s_swap",
	SideSet: 2,
	Origin:  -1,
	Instructions: []uint16{
		0x9880, //  0: pull   noblock         side 3
		0xb827, //  1: mov    x, osr          side 3
		0xf84e, //  2: set    y, 14           side 3
		0x6a01, //  3: out    pins, 1         side 1 [2]  ; right channel
		0x1a83, //  4: jmp    y--, 3          side 3 [2]
		0x6201, //  5: out    pins, 1         side 0 [2]
		0xf24e, //  6: set    y, 14           side 2 [2]
		0x6201, //  7: out    pins, 1         side 0 [2]  ; left channel
		0x1287, //  8: jmp    y--, 7          side 2 [2]
		0x6a01, //  9: out    pins, 1         side 1 [2]
	},
}

var i2sLeftJustifiedSwapped = pioseq.Program{
	Name:    "i2s_swap_left",
	SideSet: 2,
	Origin:  -1,
	Instructions: []uint16{
		0x9080, //  0: pull   noblock         side 2
		0xb027, //  1: mov    x, osr          side 2
		0xf04e, //  2: set    y, 14           side 2
		0x6a01, //  3: out    pins, 1         side 1 [2]  ; right channel
		0x1a83, //  4: jmp    y--, 3          side 3 [2]
		0x6a01, //  5: out    pins, 1         side 1 [2]
		0xfa4e, //  6: set    y, 14           side 3 [2]
		0x6201, //  7: out    pins, 1         side 0 [2]  ; left channel
		0x1287, //  8: jmp    y--, 7          side 2 [2]
		0x6201, //  9: out    pins, 1         side 0 [2]
	},
}

// 2-bit program selector: justification in bit 0, orientation in bit 1.
const (
	selLeftJustified = 1 << 0
	selSwapped       = 1 << 1
)

var programs = [4]*pioseq.Program{
	&i2sStandard,
	&i2sLeftJustified,
	&i2sSwapped,
	&i2sLeftJustifiedSwapped,
}

// resolveProgram maps the clock pin pair onto a side-set base pin and the
// matching program. The two side-set pins are consecutive, so bit clock and
// word select must be adjacent GPIOs; the lower-numbered one becomes the
// side-set base.
func resolveProgram(bitClock, wordSelect Pin, leftJustified bool) (Pin, *pioseq.Program, error) {
	sel := 0
	if leftJustified {
		sel |= selLeftJustified
	}
	switch {
	case wordSelect > 0 && bitClock == wordSelect-1:
		return bitClock, programs[sel], nil
	case bitClock > 0 && bitClock-1 == wordSelect:
		return wordSelect, programs[sel|selSwapped], nil
	default:
		return 0, nil, &errcode.E{
			C:   errcode.InvalidPinPairing,
			Op:  "i2sout.New",
			Msg: "bit clock and word select must be sequential pins",
		}
	}
}
