package i2sout

import "github.com/xs5871/picoaudio/errcode"

const (
	// clocksPerBit is fixed by the program timing: each half bit clock is
	// one instruction plus a two-cycle delay.
	clocksPerBit = 6

	// warmupFrequencyHz keeps an attached DAC clocked at a 44.1 kHz frame
	// rate from construction until the first Play retargets the clock.
	warmupFrequencyHz = 44100 * 32 * clocksPerBit
)

// Config selects the pins and framing for an I2S output.
type Config struct {
	BitClock   Pin
	WordSelect Pin
	Data       Pin
	// MainClock requests a continuous master-clock output. Unsupported;
	// leave nil.
	MainClock *Pin
	// LeftJustified selects the left-justified framing variant instead of
	// standard I2S.
	LeftJustified bool
}

// sequencerConfig resolves the pin orientation and builds the full claim
// descriptor. It performs every configuration check that must fail before
// any hardware is touched.
func (c Config) sequencerConfig() (SequencerConfig, error) {
	if c.MainClock != nil {
		return SequencerConfig{}, &errcode.E{
			C:   errcode.Unsupported,
			Op:  "i2sout.New",
			Msg: "main clock output is not supported",
		}
	}
	sideSetPin, program, err := resolveProgram(c.BitClock, c.WordSelect, c.LeftJustified)
	if err != nil {
		return SequencerConfig{}, err
	}
	wrapTarget, wrap := program.WrapBounds()
	return SequencerConfig{
		Program:   program,
		Frequency: warmupFrequencyHz,

		OutPin:       c.Data,
		OutPinCount:  1,
		SideSetPin:   sideSetPin,
		SideSetCount: 2,

		OutShiftRight: false, // MSB first
		AutoPull:      false, // the program pulls noblock itself
		PullThreshold: 32,

		ExclusivePins: true,

		WrapTarget: wrapTarget,
		Wrap:       wrap,
	}, nil
}
