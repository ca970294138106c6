package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/plus3/flickball/audio"
	"github.com/plus3/flickball/game"
	"github.com/plus3/flickball/render"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

const envPrefix = "FLICKBALL_"

type Config struct {
	// Window
	Width  int
	Height int
	Title  string
	TPS    int

	// Overlay and sound
	Debug  bool
	Mute   bool
	Volume float64

	// Camera
	CompactWidth        int
	CameraHeight        float64
	CompactCameraHeight float64

	// Game tuning
	DragScale    float64
	FlickScale   float64
	FlickBias    float64
	Drift        float64
	HitCooldown  time.Duration
	BallRadius   float64
	TargetRadius float64
	BallMass     float64
	Restitution  float64
}

// Load reads an optional .env file and then FLICKBALL_* environment
// variables on top of the defaults.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("[CONFIG] ignoring .env: %v", err)
	}

	defaults := game.DefaultParams()
	return &Config{
		// Window
		Width:  getEnvInt("WIDTH", 1280),
		Height: getEnvInt("HEIGHT", 720),
		Title:  getEnv("TITLE", "flickball"),
		TPS:    getEnvInt("TPS", 60),

		// Overlay and sound
		Debug:  getEnvBool("DEBUG", false),
		Mute:   getEnvBool("MUTE", false),
		Volume: getEnvFloat("VOLUME", 0.5),

		// Camera
		CompactWidth:        getEnvInt("COMPACT_WIDTH", render.DefaultCompactWidth),
		CameraHeight:        getEnvFloat("CAMERA_HEIGHT", render.DefaultCameraHeight),
		CompactCameraHeight: getEnvFloat("COMPACT_CAMERA_HEIGHT", render.DefaultCompactCameraHeight),

		// Game tuning
		DragScale:    getEnvFloat("DRAG_SCALE", defaults.DragScale),
		FlickScale:   getEnvFloat("FLICK_SCALE", defaults.FlickScale),
		FlickBias:    getEnvFloat("FLICK_BIAS", defaults.FlickBiasX),
		Drift:        getEnvFloat("DRIFT", defaults.DriftX),
		HitCooldown:  getEnvDuration("HIT_COOLDOWN", defaults.HitCooldown),
		BallRadius:   getEnvFloat("BALL_RADIUS", defaults.BallRadius),
		TargetRadius: getEnvFloat("TARGET_RADIUS", defaults.TargetRadius),
		BallMass:     getEnvFloat("BALL_MASS", defaults.BallMass),
		Restitution:  getEnvFloat("RESTITUTION", defaults.Restitution),
	}
}

// BindFlags registers command line overrides for every field on fs. The
// current values become the flag defaults.
func (c *Config) BindFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "window width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "window height in pixels")
	fs.StringVar(&c.Title, "title", c.Title, "window title")
	fs.IntVar(&c.TPS, "tps", c.TPS, "frames per second")

	fs.BoolVar(&c.Debug, "debug", c.Debug, "show the debug overlay and log game events")
	fs.BoolVar(&c.Mute, "mute", c.Mute, "disable sound")
	fs.Float64Var(&c.Volume, "volume", c.Volume, "sound volume between 0 and 1")

	fs.IntVar(&c.CompactWidth, "compact-width", c.CompactWidth, "viewport width below which the camera pulls back")
	fs.Float64Var(&c.CameraHeight, "camera-height", c.CameraHeight, "camera height")
	fs.Float64Var(&c.CompactCameraHeight, "compact-camera-height", c.CompactCameraHeight, "camera height on compact viewports")

	fs.Float64Var(&c.DragScale, "drag-scale", c.DragScale, "ball displacement per dragged pixel")
	fs.Float64Var(&c.FlickScale, "flick-scale", c.FlickScale, "impulse per released pixel")
	fs.Float64Var(&c.FlickBias, "flick-bias", c.FlickBias, "impulse added on X and Z at release")
	fs.Float64Var(&c.Drift, "drift", c.Drift, "visual drift per frame on X and Z")
	fs.DurationVar(&c.HitCooldown, "hit-cooldown", c.HitCooldown, "minimum time between counted hits")
	fs.Float64Var(&c.BallRadius, "ball-radius", c.BallRadius, "ball radius")
	fs.Float64Var(&c.TargetRadius, "target-radius", c.TargetRadius, "target radius")
	fs.Float64Var(&c.BallMass, "ball-mass", c.BallMass, "ball mass")
	fs.Float64Var(&c.Restitution, "restitution", c.Restitution, "ball restitution")
}

// Validate reports every invalid field.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Width > 0, "width must be positive, got %d", c.Width)
	check(c.Height > 0, "height must be positive, got %d", c.Height)
	check(c.TPS > 0, "tps must be positive, got %d", c.TPS)
	check(c.Volume >= 0 && c.Volume <= 1, "volume must be within [0, 1], got %g", c.Volume)
	check(c.CompactWidth >= 0, "compact width must not be negative, got %d", c.CompactWidth)
	check(c.CameraHeight > 0, "camera height must be positive, got %g", c.CameraHeight)
	check(c.CompactCameraHeight > 0, "compact camera height must be positive, got %g", c.CompactCameraHeight)
	check(c.HitCooldown >= 0, "hit cooldown must not be negative, got %v", c.HitCooldown)
	check(c.BallRadius > 0, "ball radius must be positive, got %g", c.BallRadius)
	check(c.TargetRadius > 0, "target radius must be positive, got %g", c.TargetRadius)
	check(c.BallMass > 0, "ball mass must be positive, got %g", c.BallMass)
	check(c.Restitution >= 0 && c.Restitution <= 1, "restitution must be within [0, 1], got %g", c.Restitution)

	return errors.Join(errs...)
}

// Params converts the tuning fields into game parameters.
func (c *Config) Params() game.Params {
	p := game.DefaultParams()
	p.DragScale = c.DragScale
	p.FlickScale = c.FlickScale
	p.FlickBiasX = c.FlickBias
	p.FlickBiasZ = c.FlickBias
	p.DriftX = c.Drift
	p.DriftZ = c.Drift
	p.HitCooldown = c.HitCooldown
	p.BallRadius = c.BallRadius
	p.TargetRadius = c.TargetRadius
	p.BallMass = c.BallMass
	p.Restitution = c.Restitution
	p.Debug = c.Debug
	return p
}

// Camera returns a camera sized to the configured window.
func (c *Config) Camera() *render.Camera {
	cam := render.NewCamera(c.Width, c.Height)
	cam.CompactWidth = c.CompactWidth
	cam.Height = c.CameraHeight
	cam.CompactHeight = c.CompactCameraHeight
	cam.Resize(c.Width, c.Height)
	return cam
}

func (c *Config) Audio() audio.Options {
	return audio.Options{
		Mute:   c.Mute,
		Volume: c.Volume,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(envPrefix + key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(envPrefix + key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("[CONFIG] %s%s=%q is not an integer, using %d", envPrefix, key, value, defaultValue)
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(envPrefix + key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
		log.Printf("[CONFIG] %s%s=%q is not a number, using %g", envPrefix, key, value, defaultValue)
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(envPrefix + key); value != "" {
		if boolVal, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return boolVal
		}
		log.Printf("[CONFIG] %s%s=%q is not a boolean, using %t", envPrefix, key, value, defaultValue)
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(envPrefix + key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("[CONFIG] %s%s=%q is not a duration, using %v", envPrefix, key, value, defaultValue)
	}
	return defaultValue
}
