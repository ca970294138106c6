package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
}

func TestHitSound(t *testing.T) {
	rate := beep.SampleRate(8000)
	sound, err := HitSound(rate, 0.5)
	require.NoError(t, err)

	samples := drain(t, sound)
	assert.Len(t, samples, rate.N(40*time.Millisecond)+rate.N(60*time.Millisecond))

	peak := 0.0
	for _, s := range samples {
		peak = math.Max(peak, math.Abs(s[0]))
		assert.Equal(t, s[0], s[1], "mono")
	}
	assert.Greater(t, peak, 0.0)
	assert.LessOrEqual(t, peak, 0.5+1e-9)
}

func TestHitSoundSilentAtZeroVolume(t *testing.T) {
	sound, err := HitSound(beep.SampleRate(8000), 0)
	require.NoError(t, err)

	for _, s := range drain(t, sound) {
		assert.Zero(t, s[0])
	}
}

func TestDecayFadesOut(t *testing.T) {
	rate := beep.SampleRate(1000)
	s, err := tone(rate, 50, 100*time.Millisecond)
	require.NoError(t, err)

	samples := drain(t, s)
	require.Len(t, samples, 100)

	first, last := 0.0, 0.0
	for _, v := range samples[:20] {
		first = math.Max(first, math.Abs(v[0]))
	}
	for _, v := range samples[80:] {
		last = math.Max(last, math.Abs(v[0]))
	}
	assert.Less(t, last, first)
}

func TestMutedManagerIsInert(t *testing.T) {
	sm := NewSoundManager(Options{Mute: true, Volume: 1})

	require.NoError(t, sm.Initialize())
	assert.False(t, sm.Enabled())
	sm.PlayHit()
	assert.NoError(t, sm.Close())
}
