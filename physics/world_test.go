package physics_test

import (
	"math"
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/flickball/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var gravity = mgl64.Vec3{0, -9.81, 0}

func addGround(w *physics.World) physics.ColliderHandle {
	ground := w.CreateRigidBody(physics.FixedBody().WithTranslation(0, -0.5, 0))
	return w.CreateCollider(physics.CuboidCollider(5, 0.5, 5), ground)
}

func addBall(w *physics.World, x, y, z float64) (physics.BodyHandle, physics.ColliderHandle) {
	body := w.CreateRigidBody(physics.DynamicBody().WithTranslation(x, y, z))
	collider := w.CreateCollider(physics.BallCollider(0.5).WithMass(1).WithRestitution(0.8), body)
	return body, collider
}

func TestFreeFall(t *testing.T) {
	w := physics.NewWorld(gravity)
	ball, _ := addBall(w, 0, 10, 0)

	w.Step()

	dt := w.Params.Dt
	assert.InDelta(t, -9.81*dt, w.Linvel(ball).Y(), 1e-12)
	assert.InDelta(t, 10-9.81*dt*dt, w.Translation(ball).Y(), 1e-12)
	assert.Equal(t, uint64(1), w.Steps())
}

func TestBallRestsOnGround(t *testing.T) {
	w := physics.NewWorld(gravity)
	addGround(w)
	ball, _ := addBall(w, 0, 0.6, 0)

	for range 60 {
		w.Step()
	}

	assert.InDelta(t, 0.5, w.Translation(ball).Y(), 0.02)
	assert.InDelta(t, 0, w.Linvel(ball).Len(), 0.05)
}

func TestRestitutionBounces(t *testing.T) {
	w := physics.NewWorld(gravity)
	ground := w.CreateRigidBody(physics.FixedBody().WithTranslation(0, -0.5, 0))
	w.CreateCollider(physics.CuboidCollider(5, 0.5, 5).WithRestitution(1), ground)
	ball := w.CreateRigidBody(physics.DynamicBody().WithTranslation(0, 3, 0))
	w.CreateCollider(physics.BallCollider(0.5).WithMass(1).WithRestitution(1), ball)

	bounced := false
	for range 120 {
		w.Step()
		if w.Linvel(ball).Y() > 3 {
			bounced = true
			break
		}
	}
	assert.True(t, bounced, "ball should leave the ground moving upward")
}

func TestHeadOnCollisionConservesMomentum(t *testing.T) {
	w := physics.NewWorld(mgl64.Vec3{})
	a, ca := addBall(w, 0, 0, 0)
	b, cb := addBall(w, 1.2, 0, 0)
	w.SetLinvel(a, mgl64.Vec3{5, 0, 0}, true)

	touched := false
	for range 30 {
		w.Step()
		if _, ok := w.ContactPair(ca, cb); ok {
			touched = true
		}
	}
	require.True(t, touched)

	va, vb := w.Linvel(a).X(), w.Linvel(b).X()
	assert.InDelta(t, 5.0, va+vb, 1e-9, "momentum")
	assert.InDelta(t, 0.5, va, 1e-6)
	assert.InDelta(t, 4.5, vb, 1e-6)
	assert.Greater(t, w.Translation(b).X()-w.Translation(a).X(), 1.0)
}

func TestContactPairNormalFollowsArgumentOrder(t *testing.T) {
	w := physics.NewWorld(mgl64.Vec3{})
	_, ca := addBall(w, 0, 0, 0)
	_, cb := addBall(w, 0.9, 0, 0)

	w.Step()

	ab, ok := w.ContactPair(ca, cb)
	require.True(t, ok)
	assert.Equal(t, ca, ab.Collider1)
	assert.InDelta(t, 1.0, ab.Normal.X(), 1e-9)
	assert.Greater(t, ab.Depth, 0.0)

	ba, ok := w.ContactPair(cb, ca)
	require.True(t, ok)
	assert.Equal(t, cb, ba.Collider1)
	assert.InDelta(t, -1.0, ba.Normal.X(), 1e-9)
}

func TestContactEvents(t *testing.T) {
	w := physics.NewWorld(mgl64.Vec3{})
	a, ca := addBall(w, 0, 0, 0)
	_, cb := addBall(w, 0.9, 0, 0)

	w.Step()
	require.Len(t, w.ContactEvents(), 1)
	assert.Equal(t, physics.ContactEvent{Collider1: ca, Collider2: cb, Started: true}, w.ContactEvents()[0])

	w.SetTranslation(a, mgl64.Vec3{-5, 0, 0}, true)
	w.SetLinvel(a, mgl64.Vec3{}, true)
	w.Step()
	require.Len(t, w.ContactEvents(), 1)
	assert.False(t, w.ContactEvents()[0].Started)

	_, ok := w.ContactPair(ca, cb)
	assert.False(t, ok)
}

func TestSleeping(t *testing.T) {
	w := physics.NewWorld(gravity)
	addGround(w)
	ball, _ := addBall(w, 0, 0.5, 0)

	for range 300 {
		w.Step()
	}
	require.True(t, w.IsSleeping(ball))
	assert.Equal(t, mgl64.Vec3{}, w.Linvel(ball))

	rest := w.Translation(ball)
	w.Step()
	assert.Equal(t, rest, w.Translation(ball), "sleeping bodies do not move")

	w.ApplyImpulse(ball, mgl64.Vec3{2, 0, 0}, true)
	assert.False(t, w.IsSleeping(ball))
	assert.InDelta(t, 2.0, w.Linvel(ball).X(), 1e-12)
}

func TestMovingBodyWakesSleepingBody(t *testing.T) {
	w := physics.NewWorld(gravity)
	addGround(w)
	target, _ := addBall(w, 0, 0.5, 0)

	for range 300 {
		w.Step()
	}
	require.True(t, w.IsSleeping(target))

	ball, _ := addBall(w, -3, 0.5, 0)
	w.SetLinvel(ball, mgl64.Vec3{8, 0, 0}, true)

	for range 30 {
		w.Step()
	}
	assert.False(t, w.IsSleeping(target))
	assert.Greater(t, w.Translation(target).X(), 0.0)
}

func TestSetTranslationWithoutWake(t *testing.T) {
	w := physics.NewWorld(gravity)
	addGround(w)
	ball, _ := addBall(w, 0, 0.5, 0)
	for range 300 {
		w.Step()
	}
	require.True(t, w.IsSleeping(ball))

	w.SetTranslation(ball, mgl64.Vec3{1, 0.5, 1}, false)
	assert.True(t, w.IsSleeping(ball))
	assert.Equal(t, mgl64.Vec3{1, 0.5, 1}, w.Translation(ball))

	w.SetTranslation(ball, mgl64.Vec3{1, 0.6, 1}, true)
	assert.False(t, w.IsSleeping(ball))
}

func TestFixedBodiesIgnoreVelocityChanges(t *testing.T) {
	w := physics.NewWorld(gravity)
	addGround(w)

	w.ApplyImpulse(0, mgl64.Vec3{0, 100, 0}, true)
	w.SetLinvel(0, mgl64.Vec3{1, 0, 0}, true)
	w.Step()

	assert.Equal(t, physics.Fixed, w.BodyType(0))
	assert.Equal(t, mgl64.Vec3{0, -0.5, 0}, w.Translation(0))
	assert.Zero(t, w.Mass(0))
}

func TestInvalidHandlePanics(t *testing.T) {
	w := physics.NewWorld(gravity)
	assert.Panics(t, func() { w.Translation(3) })
	assert.Panics(t, func() { w.ColliderBody(0) })
}

func TestFlickedBallRolls(t *testing.T) {
	w := physics.NewWorld(gravity)
	addGround(w)
	ball, _ := addBall(w, 0, 0.5, 0)
	for range 30 {
		w.Step()
	}
	require.True(t, mgl64.QuatIdent().ApproxEqualThreshold(w.Rotation(ball), 1e-9))

	w.ApplyImpulse(ball, mgl64.Vec3{0, 0, -5}, true)
	for range 30 {
		w.Step()
	}

	// A solid ball sliding onto the ground settles at 5/7 of its speed.
	v, omega := w.Linvel(ball), w.Angvel(ball)
	assert.InDelta(t, -5.0*5/7, v.Z(), 0.15)
	assert.InDelta(t, v.Len()/0.5, omega.Len(), 0.2)
	assert.Less(t, omega.X(), 0.0)

	rot := w.Rotation(ball)
	assert.Less(t, math.Abs(rot.W), 0.9, "rotation %v", rot)
	assert.InDelta(t, 1, rot.Len(), 1e-9)
}

func TestFrictionlessBallSlides(t *testing.T) {
	w := physics.NewWorld(gravity)
	ground := w.CreateRigidBody(physics.FixedBody().WithTranslation(0, -0.5, 0))
	w.CreateCollider(physics.CuboidCollider(5, 0.5, 5).WithFriction(0), ground)
	ball := w.CreateRigidBody(physics.DynamicBody().WithTranslation(0, 0.5, 0))
	w.CreateCollider(physics.BallCollider(0.5).WithMass(1).WithFriction(0), ball)

	w.ApplyImpulse(ball, mgl64.Vec3{0, 0, -5}, true)
	for range 30 {
		w.Step()
	}

	assert.InDelta(t, -5, w.Linvel(ball).Z(), 1e-6)
	assert.InDelta(t, 0, w.Angvel(ball).Len(), 1e-9)
	assert.True(t, mgl64.QuatIdent().ApproxEqualThreshold(w.Rotation(ball), 1e-9))
}

func TestDensityDeterminesMass(t *testing.T) {
	w := physics.NewWorld(gravity)
	ball := w.CreateRigidBody(physics.DynamicBody())
	collider := w.CreateCollider(physics.BallCollider(0.5).WithMass(3).WithDensity(2), ball)

	assert.InDelta(t, 2*4.0/3.0*math.Pi*0.125, w.Mass(ball), 1e-12)
	assert.Equal(t, physics.Shape{Kind: physics.ShapeBall, Radius: 0.5}, w.ColliderShape(collider))
	assert.Equal(t, ball, w.ColliderBody(collider))
}

func TestDampingSlowsBody(t *testing.T) {
	w := physics.NewWorld(mgl64.Vec3{})
	ball := w.CreateRigidBody(physics.DynamicBody().WithLinvel(mgl64.Vec3{2, 0, 0}).WithDamping(1, 2))
	w.CreateCollider(physics.BallCollider(0.5).WithMass(1), ball)
	w.SetAngvel(ball, mgl64.Vec3{0, 3, 0}, true)

	w.Step()

	dt := w.Params.Dt
	assert.InDelta(t, 2/(1+dt), w.Linvel(ball).X(), 1e-12)
	assert.InDelta(t, 3/(1+2*dt), w.Angvel(ball).Y(), 1e-12)
}

func TestAngularVelocityTurnsBody(t *testing.T) {
	w := physics.NewWorld(mgl64.Vec3{})
	ball, _ := addBall(w, 0, 0, 0)
	w.SetAngvel(ball, mgl64.Vec3{0, math.Pi / 2, 0}, true)

	for range 60 {
		w.Step()
	}

	turned := w.Rotation(ball).Rotate(mgl64.Vec3{1, 0, 0})
	assert.True(t, turned.ApproxEqualThreshold(mgl64.Vec3{0, 0, -1}, 0.02), "turned to %v", turned)
}

func TestRotationSetters(t *testing.T) {
	w := physics.NewWorld(gravity)
	quarter := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0})
	ball := w.CreateRigidBody(physics.DynamicBody().WithRotation(quarter.Scale(2)))
	w.CreateCollider(physics.BallCollider(0.5).WithMass(1), ball)
	assert.True(t, quarter.ApproxEqualThreshold(w.Rotation(ball), 1e-12))

	w.SetRotation(ball, mgl64.QuatIdent(), false)
	assert.Equal(t, mgl64.QuatIdent(), w.Rotation(ball))
}

func TestCanSleepFalseKeepsBodyAwake(t *testing.T) {
	w := physics.NewWorld(gravity)
	addGround(w)
	ball := w.CreateRigidBody(physics.DynamicBody().WithTranslation(0, 0.5, 0).WithCanSleep(false))
	w.CreateCollider(physics.BallCollider(0.5).WithMass(1), ball)

	for range 300 {
		w.Step()
	}
	assert.False(t, w.IsSleeping(ball))
}

func TestWakeUp(t *testing.T) {
	w := physics.NewWorld(gravity)
	addGround(w)
	ball, _ := addBall(w, 0, 0.5, 0)

	for range 600 {
		if w.IsSleeping(ball) {
			break
		}
		w.Step()
	}
	require.True(t, w.IsSleeping(ball))

	w.WakeUp(ball)
	assert.False(t, w.IsSleeping(ball))
}

func TestBodiesListsHandlesInOrder(t *testing.T) {
	w := physics.NewWorld(gravity)
	ground := w.ColliderBody(addGround(w))
	ball, _ := addBall(w, 0, 2, 0)

	handles := slices.Collect(w.Bodies())
	assert.Equal(t, []physics.BodyHandle{ground, ball}, handles)
	assert.Len(t, handles, w.NumBodies())
}

func TestNormalImpulseSupportsRestingBall(t *testing.T) {
	w := physics.NewWorld(gravity)
	groundCollider := addGround(w)
	ball, ballCollider := addBall(w, 0, 0.5, 0)
	for range 30 {
		w.Step()
	}

	total := 0.0
	for range 60 {
		w.Step()
		m, ok := w.ContactPair(ballCollider, groundCollider)
		require.True(t, ok)
		total += m.NormalImpulse()
	}

	// One second of support cancels one second of gravity.
	assert.InDelta(t, 9.81*w.Mass(ball), total, 0.5)
}
