package config

import (
	"flag"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 1280, cfg.Width)
	assert.Equal(t, 60, cfg.TPS)
	assert.Equal(t, 512, cfg.CompactWidth)
	assert.Equal(t, 12.0, cfg.CameraHeight)
	assert.Equal(t, 21.0, cfg.CompactCameraHeight)
	assert.Equal(t, 0.02, cfg.DragScale)
	assert.Equal(t, -30.0, cfg.FlickBias)
	assert.Equal(t, 500*time.Millisecond, cfg.HitCooldown)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("FLICKBALL_WIDTH", "400")
	t.Setenv("FLICKBALL_DEBUG", "true")
	t.Setenv("FLICKBALL_FLICK_BIAS", "0")
	t.Setenv("FLICKBALL_HIT_COOLDOWN", "250ms")
	t.Setenv("FLICKBALL_TPS", "fast")

	cfg := Load()

	assert.Equal(t, 400, cfg.Width)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 0.0, cfg.FlickBias)
	assert.Equal(t, 250*time.Millisecond, cfg.HitCooldown)
	assert.Equal(t, 60, cfg.TPS, "unparsable values fall back to the default")
}

func TestBindFlagsOverridesEnvironment(t *testing.T) {
	t.Setenv("FLICKBALL_MUTE", "true")
	cfg := Load()

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.BindFlags(fs)
	require.NoError(t, fs.Parse([]string{"-mute=false", "-width", "320", "-drift", "0"}))

	assert.False(t, cfg.Mute)
	assert.Equal(t, 320, cfg.Width)
	assert.Equal(t, 0.0, cfg.Drift)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero width", func(c *Config) { c.Width = 0 }, "width must be positive"},
		{"negative tps", func(c *Config) { c.TPS = -1 }, "tps must be positive"},
		{"loud", func(c *Config) { c.Volume = 2 }, "volume must be within"},
		{"negative cooldown", func(c *Config) { c.HitCooldown = -time.Second }, "hit cooldown"},
		{"massless ball", func(c *Config) { c.BallMass = 0 }, "ball mass"},
		{"super bouncy", func(c *Config) { c.Restitution = 1.5 }, "restitution"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParams(t *testing.T) {
	cfg := Load()
	cfg.FlickBias = -10
	cfg.Drift = 0
	cfg.Debug = true

	p := cfg.Params()

	assert.Equal(t, -10.0, p.FlickBiasX)
	assert.Equal(t, -10.0, p.FlickBiasZ)
	assert.Zero(t, p.DriftX)
	assert.Zero(t, p.DriftZ)
	assert.True(t, p.Debug)
	assert.Equal(t, 0.5, p.BallRadius)
}

func TestCamera(t *testing.T) {
	cfg := Load()
	cfg.Width, cfg.Height = 400, 800

	cam := cfg.Camera()

	assert.True(t, cam.Compact())
	assert.Equal(t, 21.0, cam.Eye().Y())
}
