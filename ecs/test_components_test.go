package ecs_test

import "github.com/plus3/flickball/ecs"

type Position struct {
	X, Y, Z float64
}

type Velocity struct {
	X, Y, Z float64
}

type Radius float64

type Label string

type BallTag struct{}

type Score struct {
	Hits int
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Radius](registry)
	ecs.RegisterComponent[Label](registry)
	ecs.RegisterComponent[BallTag](registry)
	ecs.RegisterComponent[Score](registry)
	return registry
}
