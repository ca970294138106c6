package game

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Params holds the tuning constants of a session.
type Params struct {
	Gravity float64

	// DragScale converts pointer pixels into ball displacement while
	// dragging.
	DragScale float64
	// FlickScale converts the last pointer delta into impulse on release.
	FlickScale float64
	// FlickBias is added to the release impulse on X and Z.
	FlickBiasX float64
	FlickBiasZ float64

	// DriftX/DriftZ move the ball's visual position every frame while it
	// is not dragged. The physics body is not affected.
	DriftX        float64
	DriftZ        float64
	DriftFriction float64

	HitCooldown time.Duration
	ResetMargin float64

	BallRadius    float64
	BallMass      float64
	TargetRadius  float64
	TargetMass    float64
	Restitution   float64
	BallSpawn     mgl64.Vec3
	TargetSpawn   mgl64.Vec3
	PlaneY        float64
	ArenaHalfSize float64

	Debug bool
}

// DefaultParams returns the stock game tuning.
func DefaultParams() Params {
	return Params{
		Gravity:       9.81,
		DragScale:     0.02,
		FlickScale:    0.5,
		FlickBiasX:    -30,
		FlickBiasZ:    -30,
		DriftX:        2,
		DriftZ:        2,
		DriftFriction: 0,
		HitCooldown:   500 * time.Millisecond,
		ResetMargin:   0.1,
		BallRadius:    0.5,
		BallMass:      1,
		TargetRadius:  0.5,
		TargetMass:    1,
		Restitution:   0.8,
		BallSpawn:     mgl64.Vec3{0, 0.6, 2},
		TargetSpawn:   mgl64.Vec3{0, 0.6, -4},
		PlaneY:        -0.5,
		ArenaHalfSize: 5,
	}
}
