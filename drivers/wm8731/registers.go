// Package wm8731 provides constants for register sub-addresses and bitfields
// used in the operation of the WM8731 audio codec control port.
package wm8731

const (
	// 7-bit I2C addresses, selected by the CSB strap pin.
	AddressCSBLow  = 0x1A
	AddressCSBHigh = 0x1B

	// --- Register sub-addresses (7-bit; each carries a 9-bit value) ---

	regLeftLineIn   = 0x00 // R/W
	regRightLineIn  = 0x01 // R/W
	regLeftHPOut    = 0x02 // R/W
	regRightHPOut   = 0x03 // R/W
	regAnalogPath   = 0x04 // R/W
	regDigitalPath  = 0x05 // R/W
	regPowerDown    = 0x06 // R/W
	regInterface    = 0x07 // R/W
	regSampling     = 0x08 // R/W
	regActive       = 0x09 // R/W, bit0 only
	regReset        = 0x0F // W, write 0 to reset

	// --- Headphone output (0x02/0x03) ---
	hpBoth      = 1 << 8 // write tracks to the other channel too
	hpZeroCross = 1 << 7
	hpVolMask   = 0x7F
	hpVol0dB    = 0x79 // 0dB; 1dB steps down to 0x30 (-73dB), below is mute

	// --- Analog audio path (0x04) ---
	apMicBoost    = 1 << 0
	apMuteMic     = 1 << 1
	apInselMic    = 1 << 2
	apBypass      = 1 << 3
	apDACSelected = 1 << 4
	apSideTone    = 1 << 5

	// --- Digital audio path (0x05) ---
	dpADCHighPassDisable = 1 << 0
	dpDeemp44k1          = 0x2 << 1
	dpDeemp48k           = 0x3 << 1
	dpSoftMute           = 1 << 3

	// --- Power down control (0x06); 1 = powered off ---
	pwrLineIn = 1 << 0
	pwrMic    = 1 << 1
	pwrADC    = 1 << 2
	pwrDAC    = 1 << 3
	pwrOut    = 1 << 4
	pwrOsc    = 1 << 5
	pwrClkOut = 1 << 6
	pwrOff    = 1 << 7

	// --- Digital audio interface format (0x07) ---
	fmtRightJustified = 0x0
	fmtLeftJustified  = 0x1
	fmtI2S            = 0x2
	fmtDSP            = 0x3
	iwl16             = 0x0 << 2
	iwl20             = 0x1 << 2
	iwl24             = 0x2 << 2
	iwl32             = 0x3 << 2
	ifLRSwap          = 1 << 5
	ifMaster          = 1 << 6
	ifBCLKInvert      = 1 << 7

	// --- Sampling control (0x08), normal (non-USB) mode, 256fs ---
	// SR field occupies bits 5:2; BOSR bit 1; USB select bit 0.
	sampling48k  = 0x0 << 2 // MCLK 12.288MHz
	sampling44k1 = 0x8 << 2 // MCLK 11.2896MHz
	sampling8k   = 0x3 << 2

	actActive = 1 << 0
)
