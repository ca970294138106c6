package ecs

import "reflect"

// ComponentRegistry maps component types to column factories. Each Storage
// owns one, so independent simulations never share component layouts.
type ComponentRegistry struct {
	factories map[reflect.Type]func() column
}

// NewComponentRegistry creates an empty component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() column),
	}
}

// RegisterComponent registers T so archetypes containing it can be built.
// Registering the same type twice is harmless.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() column {
		return &chunkedColumn[T]{}
	}
}

// Registered reports whether the type has been registered.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

func (r *ComponentRegistry) newColumn(t reflect.Type) column {
	factory, ok := r.factories[t]
	if !ok {
		panic("component type " + t.String() + " not registered")
	}
	return factory()
}

// column is a type-erased component array addressed by archetype slot.
type column interface {
	set(slot int, value any)
	get(slot int) any
	clear(slot int)
}

const chunkSize = 64

// chunkedColumn stores components in fixed-size chunks so pointers handed
// out by get stay valid while the column grows.
type chunkedColumn[T any] struct {
	chunks []*[chunkSize]T
}

func (c *chunkedColumn[T]) set(slot int, value any) {
	for slot/chunkSize >= len(c.chunks) {
		c.chunks = append(c.chunks, new([chunkSize]T))
	}

	dst := &c.chunks[slot/chunkSize][slot%chunkSize]
	switch v := value.(type) {
	case T:
		*dst = v
	case *T:
		*dst = *v
	default:
		panic("component value " + reflect.TypeOf(value).String() + " does not match column type")
	}
}

func (c *chunkedColumn[T]) get(slot int) any {
	if slot < 0 || slot/chunkSize >= len(c.chunks) {
		return nil
	}
	return &c.chunks[slot/chunkSize][slot%chunkSize]
}

func (c *chunkedColumn[T]) clear(slot int) {
	if slot < 0 || slot/chunkSize >= len(c.chunks) {
		return
	}
	var zero T
	c.chunks[slot/chunkSize][slot%chunkSize] = zero
}
