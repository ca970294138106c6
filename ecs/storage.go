package ecs

import (
	"reflect"
	"slices"
	"sort"

	"github.com/kamstrup/intmap"
)

// Storage owns all entities and singletons of one simulation.
type Storage struct {
	archetypes *intmap.Map[uint32, *Archetype]
	order      []*Archetype
	registry   *ComponentRegistry
	singletons map[reflect.Type]reflect.Value
}

// NewStorage creates a new ECS storage with the given component registry.
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: intmap.New[uint32, *Archetype](16),
		registry:   registry,
		singletons: make(map[reflect.Type]reflect.Value),
	}
}

// Registry returns the component registry backing this storage.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// Archetypes returns archetypes in creation order.
func (s *Storage) Archetypes() []*Archetype {
	return s.order
}

// GetArchetype returns the archetype holding exactly the given component
// types, or nil if none has been created.
func (s *Storage) GetArchetype(components ...any) *Archetype {
	types := extractComponentTypes(components)
	archetype, _ := s.findArchetype(types)
	return archetype
}

// Spawn creates a new entity with the provided components.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	types := extractComponentTypes(components)
	archetype := s.archetypeFor(types)
	slot := archetype.Spawn(components)
	return NewEntityId(archetype.id, slot)
}

// Delete removes the entity. Unknown ids are ignored.
func (s *Storage) Delete(id EntityId) {
	if archetype, ok := s.archetypes.Get(id.ArchetypeId()); ok {
		archetype.Delete(id.Index())
	}
}

// Alive reports whether id names a live entity.
func (s *Storage) Alive(id EntityId) bool {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	return ok && archetype.Alive(id.Index())
}

// GetComponent returns a pointer to the entity's component of compType,
// or nil.
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	if !ok {
		return nil
	}
	return archetype.GetComponent(id.Index(), compType)
}

// HasComponent checks if an entity has a specific component type.
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	return ok && archetype.Alive(id.Index()) && archetype.HasComponent(compType)
}

// AddSingleton stores value as the singleton of its type, replacing any
// previous one. Pointers already handed out for a replaced singleton keep
// pointing at the old value.
func (s *Storage) AddSingleton(value any) {
	typ := componentType(value)
	ptr := reflect.New(typ)
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	ptr.Elem().Set(rv)
	s.singletons[typ] = ptr
}

// ReadSingleton points *out at the singleton of the pointed-to type.
// out must be a **T. Returns false when no such singleton exists.
func (s *Storage) ReadSingleton(out any) bool {
	target := reflect.ValueOf(out)
	if target.Kind() != reflect.Ptr || target.Elem().Kind() != reflect.Ptr {
		panic("ReadSingleton expects a pointer to a pointer")
	}

	ptr, ok := s.singletons[target.Elem().Type().Elem()]
	if !ok {
		return false
	}
	target.Elem().Set(ptr)
	return true
}

func (s *Storage) singleton(t reflect.Type) (reflect.Value, bool) {
	ptr, ok := s.singletons[t]
	return ptr, ok
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	archetype, id := s.findArchetype(types)
	if archetype != nil {
		return archetype
	}
	archetype = NewArchetype(id, types, s.registry)
	s.archetypes.Put(id, archetype)
	s.order = append(s.order, archetype)
	return archetype
}

// findArchetype returns the archetype holding exactly types. When none
// exists it returns nil and the first free id. Hash collisions move on to
// the next id.
func (s *Storage) findArchetype(types []reflect.Type) (*Archetype, uint32) {
	id := hashTypes(types)
	for {
		archetype, ok := s.archetypes.Get(id)
		if !ok {
			return nil, id
		}
		if slices.Equal(archetype.types, types) {
			return archetype, id
		}
		id++
		if id == 0 {
			id = 1
		}
	}
}

func componentType(comp any) reflect.Type {
	t := reflect.TypeOf(comp)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// extractComponentTypes returns the sorted component types of components.
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		t := componentType(comp)
		switch t.Kind() {
		case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
			panic("components cannot be pointers, maps, channels, or functions")
		}
		types = append(types, t)
	}
	sort.Sort(byTypeName(types))
	return types
}

// hashTypes is FNV-1a over the sorted type names. Zero is reserved so the
// zero EntityId never names a live entity.
func hashTypes(types []reflect.Type) uint32 {
	var h uint32 = 2166136261
	const prime uint32 = 16777619

	for _, t := range types {
		name := t.PkgPath() + "." + t.String()
		for i := 0; i < len(name); i++ {
			h ^= uint32(name[i])
			h *= prime
		}
		h ^= 0xff
		h *= prime
	}

	if h == 0 {
		h = 1
	}
	return h
}

// ComponentReader is implemented by anything that resolves components by id.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's T component, or nil.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}
