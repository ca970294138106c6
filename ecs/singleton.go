package ecs

import "reflect"

// Singleton gives systems direct access to a component instance that
// belongs to no entity: game state, tuning, shared handles.
type Singleton[T any] struct {
	storage *Storage
	ptr     *T
}

// NewSingleton returns an accessor for the T singleton, creating it from
// initializer (or the zero value) when storage has none yet.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	if _, ok := storage.singleton(reflect.TypeFor[T]()); !ok {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(value)
	}

	s := &Singleton[T]{}
	s.Init(storage)
	return s
}

// Init binds the accessor to storage. The Scheduler calls this for every
// Singleton field of a registered system.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.ptr = nil
	s.refresh()
}

// Get returns the singleton, or nil if it has not been added to storage.
func (s *Singleton[T]) Get() *T {
	if s.ptr == nil {
		s.refresh()
	}
	return s.ptr
}

// Exists reports whether the singleton has been added to storage.
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}

func (s *Singleton[T]) refresh() {
	if s.storage == nil {
		return
	}
	if ptr, ok := s.storage.singleton(reflect.TypeFor[T]()); ok {
		s.ptr = ptr.Interface().(*T)
	}
}
