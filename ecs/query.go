package ecs

import "iter"

// Query wraps a View with a per-frame cache. The Scheduler calls Execute
// before each system run, so Iter inside Execute(frame) sees the entities
// that existed when the frame reached that system.
type Query[T any] struct {
	view    *View[T]
	storage *Storage

	archetypes     []*Archetype
	archetypeCount int

	ids    []EntityId
	values []T
	valid  bool
}

// NewQuery creates a Query bound to storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the Query to storage. Called by the Scheduler during
// system registration.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.archetypes = nil
	q.archetypeCount = -1
	q.valid = false
}

// Execute rebuilds the cached ids and values.
func (q *Query[T]) Execute() {
	if len(q.storage.order) != q.archetypeCount {
		q.archetypes = q.archetypes[:0]
		for _, archetype := range q.storage.order {
			if q.view.matches(archetype) {
				q.archetypes = append(q.archetypes, archetype)
			}
		}
		q.archetypeCount = len(q.storage.order)
	}

	q.ids = q.ids[:0]
	q.values = q.values[:0]
	for _, archetype := range q.archetypes {
		q.view.iterArchetype(archetype, func(id EntityId, value T) bool {
			q.ids = append(q.ids, id)
			q.values = append(q.values, value)
			return true
		})
	}
	q.valid = true
}

// Iter yields the cached entities, executing the query first if it has
// never run.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	if !q.valid {
		q.Execute()
	}
	return func(yield func(EntityId, T) bool) {
		for i := range q.ids {
			if !yield(q.ids[i], q.values[i]) {
				return
			}
		}
	}
}

// Values yields only the cached view structs.
func (q *Query[T]) Values() iter.Seq[T] {
	if !q.valid {
		q.Execute()
	}
	return func(yield func(T) bool) {
		for i := range q.values {
			if !yield(q.values[i]) {
				return
			}
		}
	}
}

// First returns the first cached match.
func (q *Query[T]) First() (EntityId, T, bool) {
	for id, value := range q.Iter() {
		return id, value, true
	}
	var zero T
	return 0, zero, false
}

// Len returns the number of cached matches.
func (q *Query[T]) Len() int {
	if !q.valid {
		q.Execute()
	}
	return len(q.ids)
}
