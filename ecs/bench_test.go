package ecs_test

import (
	"testing"

	"github.com/plus3/flickball/ecs"
)

func BenchmarkSpawn(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		storage.Spawn(Position{X: 1, Z: 2}, Velocity{X: 0.5})
	}
}

func BenchmarkDelete(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())

	ids := make([]ecs.EntityId, b.N)
	for i := 0; i < b.N; i++ {
		ids[i] = storage.Spawn(Position{X: 1, Z: 2}, Velocity{X: 0.5})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		storage.Delete(ids[i])
	}
}

func BenchmarkQueryExecute(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())
	for i := 0; i < 1000; i++ {
		storage.Spawn(Position{X: float64(i)}, Velocity{X: 1})
	}
	query := ecs.NewQuery[struct {
		*Position
		*Velocity
	}](storage)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		query.Execute()
		for item := range query.Values() {
			item.Position.X += item.Velocity.X
		}
	}
}

func BenchmarkSchedulerOnce(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())
	for i := 0; i < 100; i++ {
		storage.Spawn(Position{}, Velocity{X: 1, Z: -1})
	}
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&MovementSystem{})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		scheduler.Once(1.0 / 60.0)
	}
}
