//go:build rp2040

package rp2

import (
	"device/rp"
	"runtime/volatile"
	"unsafe"
)

const numDMAChannels = 12

// DMA channel CTRL register fields (RP2040 datasheet 2.5.7).
const (
	dmaCtrlEn          = 1 << 0
	dmaCtrlHighPrio    = 1 << 1
	dmaCtrlDataSizePos = 2
	dmaCtrlIncrRead    = 1 << 4
	dmaCtrlIncrWrite   = 1 << 5
	dmaCtrlChainToPos  = 11
	dmaCtrlTreqSelPos  = 15
	dmaCtrlIrqQuiet    = 1 << 21
	dmaCtrlBswap       = 1 << 22
	dmaCtrlBusy        = 1 << 24
)

// dmaChannelHW is one channel's register window. The AL1 aliases let CTRL
// be rewritten without retriggering the channel.
type dmaChannelHW struct {
	READ_ADDR            volatile.Register32
	WRITE_ADDR           volatile.Register32
	TRANS_COUNT          volatile.Register32
	CTRL_TRIG            volatile.Register32
	AL1_CTRL             volatile.Register32
	AL1_READ_ADDR        volatile.Register32
	AL1_WRITE_ADDR       volatile.Register32
	AL1_TRANS_COUNT_TRIG volatile.Register32
	AL2_CTRL             volatile.Register32
	AL2_TRANS_COUNT      volatile.Register32
	AL2_READ_ADDR        volatile.Register32
	AL2_WRITE_ADDR_TRIG  volatile.Register32
	AL3_CTRL             volatile.Register32
	AL3_WRITE_ADDR       volatile.Register32
	AL3_TRANS_COUNT      volatile.Register32
	AL3_READ_ADDR_TRIG   volatile.Register32
}

type dmaChannel struct {
	hw  *dmaChannelHW
	idx uint8
}

func dmaChannelReg(idx uint8) *dmaChannelHW {
	channels := (*[numDMAChannels]dmaChannelHW)(unsafe.Pointer(rp.DMA))
	return &channels[idx]
}

// abort stops the channel hard and waits for the in-flight transfer to
// drain. Required before reprogramming a paced channel mid-transfer.
func (ch dmaChannel) abort() {
	rp.DMA.CHAN_ABORT.Set(1 << ch.idx)
	for rp.DMA.CHAN_ABORT.Get() != 0 {
	}
}

func (ch dmaChannel) busy() bool {
	return ch.hw.CTRL_TRIG.Get()&dmaCtrlBusy != 0
}

// dmaArbiter hands out channels from a shared bitmask. Single claimant per
// channel; no reference counting.
type dmaArbiter struct {
	claimed uint16
}

var dmaArb dmaArbiter

func (arb *dmaArbiter) claim() (dmaChannel, bool) {
	for i := uint8(0); i < numDMAChannels; i++ {
		if arb.claimed&(1<<i) == 0 {
			arb.claimed |= 1 << i
			return dmaChannel{hw: dmaChannelReg(i), idx: i}, true
		}
	}
	return dmaChannel{}, false
}

func (arb *dmaArbiter) unclaim(ch dmaChannel) {
	arb.claimed &^= 1 << ch.idx
}
