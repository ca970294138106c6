package ecs_test

import (
	"fmt"

	"github.com/plus3/flickball/ecs"
)

// ExampleQuery moves every entity that has both a position and a
// velocity. Matching archetypes are cached until the archetype set
// changes, so repeated iteration stays cheap.
func ExampleQuery() {
	storage := ecs.NewStorage(newTestRegistry())

	storage.Spawn(Position{X: 0, Z: 2}, Velocity{Z: -1})
	storage.Spawn(Position{X: 0, Z: -4}, Velocity{})
	storage.Spawn(Position{X: 1, Z: 1}, Velocity{X: 1}, BallTag{})
	storage.Spawn(Position{X: 5})

	query := ecs.NewQuery[struct {
		*Position
		*Velocity
	}](storage)

	for item := range query.Values() {
		item.Position.X += item.Velocity.X
		item.Position.Z += item.Velocity.Z
	}

	query.Execute()
	fmt.Println("Moving entities:", query.Len())
	for item := range query.Values() {
		fmt.Printf("(%.0f, %.0f)\n", item.Position.X, item.Position.Z)
	}

	// Output:
	// Moving entities: 3
	// (0, 1)
	// (0, -4)
	// (2, 1)
}

// ExampleQuery_First picks out a single tagged entity.
func ExampleQuery_First() {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Spawn(Position{Z: -4}, Label("target"))
	storage.Spawn(Position{Z: 2}, Label("ball"), BallTag{})

	query := ecs.NewQuery[struct {
		*Label
		*BallTag
	}](storage)

	if _, ball, ok := query.First(); ok {
		fmt.Println(*ball.Label)
	}

	// Output:
	// ball
}
