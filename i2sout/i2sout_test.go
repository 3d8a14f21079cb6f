package i2sout

import (
	"testing"

	"github.com/xs5871/picoaudio/audio"
	"github.com/xs5871/picoaudio/errcode"
)

// ---- Test doubles ----

type fakeSequencer struct {
	freqs    []uint32
	restarts int
	stops    int
	deinited bool
	freqErr  error
}

func (s *fakeSequencer) SetFrequency(hz uint32) error {
	if s.freqErr != nil {
		return s.freqErr
	}
	s.freqs = append(s.freqs, hz)
	return nil
}
func (s *fakeSequencer) Restart()       { s.restarts++ }
func (s *fakeSequencer) Stop()          { s.stops++ }
func (s *fakeSequencer) Deinit()        { s.deinited = true }
func (s *fakeSequencer) Deinited() bool { return s.deinited }
func (s *fakeSequencer) TxFIFO() uintptr { return 0x50200010 }
func (s *fakeSequencer) TxDREQ() uint8   { return 3 }

type fakeProvider struct {
	seq    *fakeSequencer
	cfg    SequencerConfig
	claims int
	err    error
}

func (p *fakeProvider) Claim(cfg SequencerConfig) (Sequencer, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.claims++
	p.cfg = cfg
	if p.seq == nil {
		p.seq = &fakeSequencer{}
	}
	return p.seq, nil
}

type fakeDMA struct {
	opts     []PlaybackOptions
	samples  []audio.Sample
	inits    int
	stops    int
	deinits  int
	playing  bool
	paused   bool
	initErr  error
	setupErr error
}

func (d *fakeDMA) Init() error {
	d.inits++
	return d.initErr
}

func (d *fakeDMA) SetupPlayback(sample audio.Sample, opts PlaybackOptions) error {
	if d.setupErr != nil {
		return d.setupErr
	}
	d.samples = append(d.samples, sample)
	d.opts = append(d.opts, opts)
	d.playing = true
	return nil
}
func (d *fakeDMA) Pause()  { d.paused = true }
func (d *fakeDMA) Resume() { d.paused = false }
func (d *fakeDMA) Stop() {
	d.stops++
	d.playing = false
	d.paused = false
}
func (d *fakeDMA) Playing() bool { return d.playing }
func (d *fakeDMA) Paused() bool  { return d.paused }
func (d *fakeDMA) Deinit()       { d.deinits++ }

type fakeSample struct {
	bits     uint8
	rate     uint32
	channels uint8
}

func (s fakeSample) BitsPerSample() uint8 { return s.bits }
func (s fakeSample) SampleRate() uint32   { return s.rate }
func (s fakeSample) ChannelCount() uint8  { return s.channels }

func newTestDevice(t *testing.T) (*I2SOut, *fakeProvider, *fakeDMA) {
	t.Helper()
	provider := &fakeProvider{}
	dma := &fakeDMA{}
	dev, err := New(Config{BitClock: 10, WordSelect: 11, Data: 12}, provider, dma)
	if err != nil {
		t.Fatalf("construct failed: %v", err)
	}
	return dev, provider, dma
}

// ---- Construction ----

func TestNewClaimsSequencerAndDMA(t *testing.T) {
	_, provider, dma := newTestDevice(t)
	if provider.claims != 1 {
		t.Fatalf("expected one sequencer claim, got %d", provider.claims)
	}
	if dma.inits != 1 {
		t.Fatalf("expected one DMA init, got %d", dma.inits)
	}
}

func TestNewProviderFailureLeavesNothing(t *testing.T) {
	provider := &fakeProvider{err: errcode.NoSequencer}
	dma := &fakeDMA{}
	if _, err := New(Config{BitClock: 10, WordSelect: 11, Data: 12}, provider, dma); err == nil {
		t.Fatal("expected claim error")
	}
	if dma.inits != 0 {
		t.Fatal("DMA must not be touched when the claim fails")
	}
}

func TestNewDMAFailureReleasesSequencer(t *testing.T) {
	provider := &fakeProvider{}
	dma := &fakeDMA{initErr: errcode.DMABusy}
	if _, err := New(Config{BitClock: 10, WordSelect: 11, Data: 12}, provider, dma); errcode.Of(err) != errcode.DMABusy {
		t.Fatalf("expected dma_busy, got %v", err)
	}
	if !provider.seq.deinited {
		t.Fatal("sequencer slot must be released when DMA init fails")
	}
}

// ---- Frequency law ----

func TestPlaybackFrequencyLaw(t *testing.T) {
	cases := []struct {
		bits uint8
		rate uint32
		want uint32
	}{
		{16, 44100, 8_467_200},
		{8, 44100, 8_467_200}, // clamps to 16 bits
		{24, 48000, 13_824_000},
		{32, 8000, 3_072_000},
	}
	for _, c := range cases {
		if got := playbackFrequency(c.bits, c.rate); got != c.want {
			t.Fatalf("bits=%d rate=%d: got %d, want %d", c.bits, c.rate, got, c.want)
		}
	}
}

// ---- Play ----

func TestPlayConfiguresDMAPlayback(t *testing.T) {
	dev, provider, dma := newTestDevice(t)
	if err := dev.Play(fakeSample{bits: 8, rate: 44100, channels: 1}, true); err != nil {
		t.Fatalf("play failed: %v", err)
	}
	if !dev.Playing() {
		t.Fatal("device should report playing")
	}
	if provider.seq.restarts != 1 {
		t.Fatalf("expected one sequencer restart, got %d", provider.seq.restarts)
	}
	if len(provider.seq.freqs) != 1 || provider.seq.freqs[0] != 8_467_200 {
		t.Fatalf("unexpected retargeted frequency: %v", provider.seq.freqs)
	}
	if len(dma.opts) != 1 {
		t.Fatalf("expected one DMA setup, got %d", len(dma.opts))
	}
	opt := dma.opts[0]
	if !opt.Loop || opt.SingleChannel || opt.AudioChannel != 0 || !opt.OutputSigned || opt.SwapChannel {
		t.Fatalf("unexpected playback options: %+v", opt)
	}
	if opt.BitsPerSample != 16 {
		t.Fatalf("bits per sample should clamp to 16, got %d", opt.BitsPerSample)
	}
	if opt.Dest != 0x50200010 || opt.DREQ != 3 {
		t.Fatalf("DMA not bound to the sequencer FIFO/DREQ: %+v", opt)
	}
}

func TestPlayTooManyChannelsLeavesStateUntouched(t *testing.T) {
	dev, provider, dma := newTestDevice(t)
	err := dev.Play(fakeSample{bits: 16, rate: 44100, channels: 3}, false)
	if errcode.Of(err) != errcode.TooManyChannels {
		t.Fatalf("expected too_many_channels, got %v", err)
	}
	if dev.Playing() {
		t.Fatal("device must not be playing")
	}
	if len(provider.seq.freqs) != 0 || provider.seq.restarts != 0 {
		t.Fatal("sequencer must not be mutated by the channel check")
	}
	if len(dma.opts) != 0 {
		t.Fatal("DMA must not be set up")
	}
}

func TestPlayWhilePlayingRestarts(t *testing.T) {
	dev, provider, dma := newTestDevice(t)
	first := fakeSample{bits: 16, rate: 44100, channels: 2}
	second := fakeSample{bits: 16, rate: 22050, channels: 1}
	if err := dev.Play(first, false); err != nil {
		t.Fatalf("first play: %v", err)
	}
	if err := dev.Play(second, false); err != nil {
		t.Fatalf("second play: %v", err)
	}
	if dma.stops != 1 {
		t.Fatalf("restart should stop the running transfer once, got %d", dma.stops)
	}
	if provider.seq.restarts != 2 {
		t.Fatalf("expected two sequencer restarts, got %d", provider.seq.restarts)
	}
	if len(dma.samples) != 2 || dma.samples[1] != second {
		t.Fatal("second sample should be the active one")
	}
	if !dev.Playing() {
		t.Fatal("device should be playing the second sample")
	}
}

func TestPlayRollsBackOnDMAErrors(t *testing.T) {
	for _, code := range []errcode.Code{errcode.DMABusy, errcode.AllocationFailed, errcode.SourceError} {
		dev, provider, dma := newTestDevice(t)
		dma.setupErr = code
		err := dev.Play(fakeSample{bits: 16, rate: 44100, channels: 2}, false)
		if errcode.Of(err) != code {
			t.Fatalf("%v: error not propagated, got %v", code, err)
		}
		if dev.Playing() {
			t.Fatalf("%v: device must not report playing", code)
		}
		if dma.stops == 0 || provider.seq.stops == 0 {
			t.Fatalf("%v: rollback must stop DMA and sequencer", code)
		}
	}
}

// ---- Pause / resume ----

func TestPauseResume(t *testing.T) {
	dev, _, dma := newTestDevice(t)
	if err := dev.Play(fakeSample{bits: 16, rate: 44100, channels: 2}, true); err != nil {
		t.Fatalf("play: %v", err)
	}
	dev.Pause()
	if !dev.Paused() {
		t.Fatal("device should be paused")
	}
	dev.Resume()
	if dev.Paused() {
		t.Fatal("device should have resumed")
	}
	if !dev.Playing() {
		t.Fatal("resume should return to playing")
	}
	if dma.stops != 0 {
		t.Fatal("pause/resume must not stop the transfer")
	}
}

// ---- Stop and reconciliation ----

func TestStopIsIdempotent(t *testing.T) {
	dev, provider, _ := newTestDevice(t)
	if err := dev.Play(fakeSample{bits: 16, rate: 44100, channels: 2}, true); err != nil {
		t.Fatalf("play: %v", err)
	}
	dev.Stop()
	dev.Stop()
	if dev.Playing() {
		t.Fatal("device must not report playing after stop")
	}
	if provider.seq.stops != 2 {
		t.Fatalf("stop should always reach the sequencer, got %d", provider.seq.stops)
	}
}

func TestPlayingReconcilesDrainedTransfer(t *testing.T) {
	dev, _, dma := newTestDevice(t)
	if err := dev.Play(fakeSample{bits: 16, rate: 44100, channels: 2}, false); err != nil {
		t.Fatalf("play: %v", err)
	}
	// The non-looping transfer finishes autonomously.
	dma.playing = false
	if dev.Playing() {
		t.Fatal("drained transfer must report not playing")
	}
	if dma.stops != 1 {
		t.Fatalf("reconciliation should force exactly one stop, got %d", dma.stops)
	}
	// Software state is now in sync; no further corrective stops.
	if dev.Playing() || dma.stops != 1 {
		t.Fatal("second query must be a pure read")
	}
}

// ---- Deinit ----

func TestDeinitIsIdempotent(t *testing.T) {
	dev, provider, dma := newTestDevice(t)
	if err := dev.Play(fakeSample{bits: 16, rate: 44100, channels: 2}, true); err != nil {
		t.Fatalf("play: %v", err)
	}
	dev.Deinit()
	if !dev.Deinited() {
		t.Fatal("device should report deinited")
	}
	if dev.Playing() {
		t.Fatal("deinited device must never report playing")
	}
	dev.Deinit()
	if !dev.Deinited() {
		t.Fatal("deinited must stay true")
	}
	if !provider.seq.deinited || dma.deinits != 1 {
		t.Fatalf("resources must be released exactly once, dma deinits=%d", dma.deinits)
	}
}

func TestPlayAfterDeinitFails(t *testing.T) {
	dev, _, _ := newTestDevice(t)
	dev.Deinit()
	if err := dev.Play(fakeSample{bits: 16, rate: 44100, channels: 2}, false); err == nil {
		t.Fatal("play on a deinited device must fail")
	}
}
