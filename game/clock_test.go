package game_test

import (
	"testing"
	"time"

	"github.com/plus3/flickball/game"
	"github.com/stretchr/testify/assert"
)

func TestManualClock(t *testing.T) {
	clock := &game.ManualClock{}
	assert.Zero(t, clock.Now())

	clock.Advance(250 * time.Millisecond)
	clock.Advance(250 * time.Millisecond)
	assert.Equal(t, 500*time.Millisecond, clock.Now())

	clock.Set(time.Second)
	assert.Equal(t, time.Second, clock.Now())
}

func TestSystemClockIsMonotonic(t *testing.T) {
	clock := game.NewSystemClock()
	a := clock.Now()
	b := clock.Now()
	assert.GreaterOrEqual(t, b, a)
	assert.GreaterOrEqual(t, a, time.Duration(0))
}
