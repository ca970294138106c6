package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/flickball/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MovementSystem struct {
	Entities ecs.Query[struct {
		*Position
		*Velocity
	}]
	ExecuteCount int
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	for item := range s.Entities.Values() {
		item.Position.X += item.Velocity.X * frame.DeltaTime
		item.Position.Z += item.Velocity.Z * frame.DeltaTime
	}
}

type ScoreSystem struct {
	Balls ecs.Query[struct{ *BallTag }]
	Score ecs.Singleton[Score]
}

func (s *ScoreSystem) Execute(frame *ecs.UpdateFrame) {
	s.Score.Get().Hits += s.Balls.Len()
}

type spawnOnceSystem struct {
	done bool
}

func (s *spawnOnceSystem) Execute(frame *ecs.UpdateFrame) {
	if s.done {
		return
	}
	s.done = true
	frame.Commands.Spawn(Position{}, Velocity{X: 1})
}

func TestScheduler(t *testing.T) {
	t.Run("systems run in order with bound fields", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		ecs.NewSingleton[Score](storage)
		scheduler := ecs.NewScheduler(storage)

		movement := &MovementSystem{}
		score := &ScoreSystem{}
		scheduler.Register(movement)
		scheduler.Register(score)

		storage.Spawn(Position{}, Velocity{X: 2, Z: -4})
		storage.Spawn(BallTag{})

		scheduler.Once(0.5)
		scheduler.Once(0.5)

		assert.Equal(t, 2, movement.ExecuteCount)
		assert.Equal(t, 2, score.Score.Get().Hits)

		item, _, ok := movement.Entities.First()
		require.True(t, ok)
		pos := ecs.ReadComponent[Position](storage, item)
		assert.InDelta(t, 2.0, pos.X, 1e-9)
		assert.InDelta(t, -4.0, pos.Z, 1e-9)
	})

	t.Run("queries see entities spawned by earlier frames", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		scheduler := ecs.NewScheduler(storage)

		scheduler.Register(&spawnOnceSystem{})
		movement := &MovementSystem{}
		scheduler.Register(movement)

		scheduler.Once(1)
		assert.Equal(t, 0, movement.Entities.Len(), "spawn is deferred to the end of the frame")

		scheduler.Once(1)
		assert.Equal(t, 1, movement.Entities.Len())
	})

	t.Run("deferred functions run after the frame", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		commands := &ecs.Commands{}

		var order []string
		commands.Defer(func() { order = append(order, "defer") })
		commands.Spawn(Position{})
		commands.Flush(storage)

		assert.Equal(t, []string{"defer"}, order)
		assert.Equal(t, 1, storage.CollectStats().TotalEntityCount)
	})

	t.Run("stats", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		scheduler := ecs.NewScheduler(storage)
		scheduler.Register(&MovementSystem{})

		for i := 0; i < 3; i++ {
			scheduler.Once(1.0 / 60)
		}

		stats := scheduler.GetStats()
		assert.Equal(t, 1, stats.SystemCount)
		assert.Equal(t, uint64(3), stats.Frames)
		require.Len(t, stats.Systems, 1)
		assert.Equal(t, "MovementSystem", stats.Systems[0].Name)
		assert.Equal(t, int64(3), stats.Systems[0].ExecutionCount)
		assert.LessOrEqual(t, stats.Systems[0].MinDuration, stats.Systems[0].MaxDuration)
	})

	t.Run("run stops on context cancellation", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		scheduler := ecs.NewScheduler(storage)
		movement := &MovementSystem{}
		scheduler.Register(movement)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			scheduler.Run(ctx, time.Millisecond)
			close(done)
		}()

		time.Sleep(20 * time.Millisecond)
		cancel()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("scheduler did not stop after context cancellation")
		}
		assert.Positive(t, movement.ExecuteCount)
	})
}
