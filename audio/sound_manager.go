package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const defaultSampleRate = beep.SampleRate(44100)

// Options configures a SoundManager.
type Options struct {
	Mute       bool
	Volume     float64
	SampleRate int
}

// SoundManager plays game sounds through a single mixer on the speaker.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	rate        beep.SampleRate
	volume      float64
	mute        bool
	initialized bool
}

func NewSoundManager(opts Options) *SoundManager {
	rate := defaultSampleRate
	if opts.SampleRate > 0 {
		rate = beep.SampleRate(opts.SampleRate)
	}
	return &SoundManager{
		mixer:  &beep.Mixer{},
		rate:   rate,
		volume: opts.Volume,
		mute:   opts.Mute,
	}
}

// Initialize opens the speaker. A muted manager never touches the audio
// device.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || sm.mute {
		return nil
	}

	if err := speaker.Init(sm.rate, sm.rate.N(time.Second/20)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Enabled reports whether sounds will be heard.
func (sm *SoundManager) Enabled() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// PlayHit plays the ball-target clack.
func (sm *SoundManager) PlayHit() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	sound, err := HitSound(sm.rate, sm.volume)
	if err != nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(sound)
	speaker.Unlock()
}

// Close stops all sounds and releases the speaker.
func (sm *SoundManager) Close() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return nil
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
	return nil
}

// HitSound is a short high tone followed by a lower one, each with a fast
// decay.
func HitSound(rate beep.SampleRate, volume float64) (beep.Streamer, error) {
	high, err := tone(rate, 660, 40*time.Millisecond)
	if err != nil {
		return nil, err
	}
	low, err := tone(rate, 440, 60*time.Millisecond)
	if err != nil {
		return nil, err
	}
	return newVolume(beep.Seq(high, low), volume), nil
}

func tone(rate beep.SampleRate, freq float64, d time.Duration) (beep.Streamer, error) {
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		return nil, fmt.Errorf("sine %gHz: %w", freq, err)
	}
	n := rate.N(d)
	return &decay{streamer: beep.Take(n, sine), total: n}, nil
}

// decay fades a stream linearly to silence over total samples.
type decay struct {
	streamer beep.Streamer
	position int
	total    int
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1 - float64(d.position)/float64(d.total)
		samples[i][0] *= vol
		samples[i][1] *= vol
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// newVolume maps a linear volume onto effects.Volume, treating zero as
// silence.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
