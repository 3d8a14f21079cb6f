//go:build rp2040

// cmd/tone-demo/main.go
//
// Loops a 440Hz sine out of an I2S DAC on a Pico. Wiring for a PCM510x
// style board: BCK on GP10, LRCK on GP11, DIN on GP12. The LED blinks
// while playback is live.
package main

import (
	"machine"
	"time"

	pio "github.com/tinygo-org/pio/rp2-pio"

	"github.com/xs5871/picoaudio/audio"
	"github.com/xs5871/picoaudio/i2sout"
	"github.com/xs5871/picoaudio/rp2"
)

// ---------- Configuration ----------

const (
	pinBitClock   = 10
	pinWordSelect = 11
	pinData       = 12

	sampleRate = 44100
	toneHz     = 440
	amplitude  = 16000

	playFor = 10 * time.Second
)

func main() {
	time.Sleep(2 * time.Second) // let USB settle for serial monitors

	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})

	tone, err := audio.NewToneSample(sampleRate, toneHz, amplitude)
	if err != nil {
		fatal(led)
	}

	dev, err := i2sout.New(
		i2sout.Config{BitClock: pinBitClock, WordSelect: pinWordSelect, Data: pinData},
		rp2.NewSequencerProvider(pio.PIO0),
		rp2.NewAudioDMA(),
	)
	if err != nil {
		fatal(led)
	}

	if err := dev.Play(tone, true); err != nil {
		fatal(led)
	}

	deadline := time.Now().Add(playFor)
	for time.Now().Before(deadline) && dev.Playing() {
		led.High()
		time.Sleep(250 * time.Millisecond)
		led.Low()
		time.Sleep(250 * time.Millisecond)
	}

	dev.Stop()
	dev.Deinit()
	for {
		time.Sleep(time.Hour)
	}
}

// fatal signals an error with a fast LED strobe. No serial dependency.
func fatal(led machine.Pin) {
	for {
		led.High()
		time.Sleep(50 * time.Millisecond)
		led.Low()
		time.Sleep(50 * time.Millisecond)
	}
}
