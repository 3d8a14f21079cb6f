// Package wm8731 provides a minimal TinyGo driver for the WM8731/WM8731L
// stereo codec's I2C control port.
//
// Design notes (datasheet references):
// • Write-only control port: each frame is 16 bits, 7-bit register
//   sub-address followed by a 9-bit value, MSB first.
// • Slave-mode DAC path only: line in, mic and ADC stay powered down.
// • Sampling control assumes normal (non-USB) mode with a 256fs MCLK.

package wm8731

import (
	"errors"

	"tinygo.org/x/drivers"
)

// ---------------- Types and configuration ----------------

var ErrUnsupportedRate = errors.New("unsupported sample rate")

type Config struct {
	Address       uint16
	LeftJustified bool   // left-justified framing instead of I2S
	WordLength    uint8  // 16, 20, 24 or 32 bits; 0 means 16
	SampleRate    uint32 // 44100 or 48000 family; 0 means 44100
}

type Device struct {
	i2c  drivers.I2C
	addr uint16

	// Fixed buffer to avoid per-call heap allocations.
	w [2]byte
}

func New(i2c drivers.I2C, addr uint16) *Device {
	if addr == 0 {
		addr = AddressCSBLow
	}
	return &Device{i2c: i2c, addr: addr}
}

// Configure resets the codec and brings up the DAC playback path:
// digital interface per cfg, outputs unmuted at 0dB, everything the DAC
// does not need left powered down.
func (d *Device) Configure(cfg Config) error {
	if err := d.Reset(); err != nil {
		return err
	}

	iface, err := interfaceWord(cfg)
	if err != nil {
		return err
	}
	sampling, err := samplingWord(cfg.SampleRate)
	if err != nil {
		return err
	}

	steps := []struct {
		reg uint8
		val uint16
	}{
		{regPowerDown, pwrLineIn | pwrMic | pwrADC | pwrClkOut | pwrOsc},
		{regAnalogPath, apDACSelected | apMuteMic},
		{regDigitalPath, 0}, // unmute, no de-emphasis
		{regInterface, iface},
		{regSampling, sampling},
		{regLeftHPOut, hpBoth | hpVol0dB},
		{regActive, actActive},
	}
	for _, s := range steps {
		if err := d.writeReg(s.reg, s.val); err != nil {
			return err
		}
	}
	return nil
}

// Reset restores all registers to their power-on defaults.
func (d *Device) Reset() error {
	return d.writeReg(regReset, 0)
}

// SetActive gates the digital audio interface. The datasheet recommends
// deactivating before changing interface or sampling registers.
func (d *Device) SetActive(on bool) error {
	var v uint16
	if on {
		v = actActive
	}
	return d.writeReg(regActive, v)
}

// SetMute applies the DAC soft mute ramp.
func (d *Device) SetMute(mute bool) error {
	var v uint16
	if mute {
		v = dpSoftMute
	}
	return d.writeReg(regDigitalPath, v)
}

// SetHeadphoneVolume sets both headphone channels. vol is the raw 7-bit
// register value: hpVol0dB is 0dB, each step is 1dB, anything below 0x30
// mutes the output.
func (d *Device) SetHeadphoneVolume(vol uint8) error {
	return d.writeReg(regLeftHPOut, hpBoth|uint16(vol&hpVolMask))
}

// ---------------- Register word helpers ----------------

func interfaceWord(cfg Config) (uint16, error) {
	v := uint16(fmtI2S)
	if cfg.LeftJustified {
		v = fmtLeftJustified
	}
	switch cfg.WordLength {
	case 0, 16:
		v |= iwl16
	case 20:
		v |= iwl20
	case 24:
		v |= iwl24
	case 32:
		v |= iwl32
	default:
		return 0, errors.New("unsupported word length")
	}
	return v, nil
}

func samplingWord(rate uint32) (uint16, error) {
	switch rate {
	case 0, 44100:
		return sampling44k1, nil
	case 48000:
		return sampling48k, nil
	case 8000:
		return sampling8k, nil
	default:
		return 0, ErrUnsupportedRate
	}
}

// Control port write: 7-bit sub-address then 9-bit value, MSB first.

func (d *Device) writeReg(reg uint8, val uint16) error {
	d.w[0] = reg<<1 | uint8(val>>8)&1
	d.w[1] = uint8(val)
	return d.i2c.Tx(d.addr, d.w[:2], nil)
}
