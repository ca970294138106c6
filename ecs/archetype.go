package ecs

import (
	"iter"
	"reflect"
	"slices"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

// Archetype holds every entity that has exactly one combination of
// component types. Slots are reused after deletion; an EntityId stays
// valid until its entity is deleted.
type Archetype struct {
	id      uint32
	types   []reflect.Type
	columns []column
	alive   []bool
	free    []uint32
	count   int
}

// NewArchetype creates an archetype for the given sorted component types.
func NewArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:      id,
		types:   types,
		columns: make([]column, len(types)),
	}
	for i, typ := range types {
		a.columns[i] = registry.newColumn(typ)
	}
	return a
}

// Spawn stores one entity's components and returns its slot.
func (a *Archetype) Spawn(components []any) uint32 {
	var slot uint32
	if n := len(a.free); n > 0 {
		slot = a.free[n-1]
		a.free = a.free[:n-1]
		a.alive[slot] = true
	} else {
		slot = uint32(len(a.alive))
		a.alive = append(a.alive, true)
	}

	for _, comp := range components {
		idx := a.columnIndex(componentType(comp))
		if idx < 0 {
			panic("component " + componentType(comp).String() + " is not part of this archetype")
		}
		a.columns[idx].set(int(slot), comp)
	}

	a.count++
	return slot
}

// Delete frees the slot. Deleting a dead slot is a no-op.
func (a *Archetype) Delete(slot uint32) {
	if !a.Alive(slot) {
		return
	}
	for _, col := range a.columns {
		col.clear(int(slot))
	}
	a.alive[slot] = false
	a.free = append(a.free, slot)
	a.count--
}

// Alive reports whether the slot currently holds an entity.
func (a *Archetype) Alive(slot uint32) bool {
	return int(slot) < len(a.alive) && a.alive[slot]
}

// GetComponent returns a pointer to the component of compType stored in
// slot, or nil when the archetype lacks that type or the slot is dead.
func (a *Archetype) GetComponent(slot uint32, compType reflect.Type) any {
	if !a.Alive(slot) {
		return nil
	}
	idx := a.columnIndex(compType)
	if idx < 0 {
		return nil
	}
	return a.columns[idx].get(int(slot))
}

// HasComponent checks if this archetype has the given component type.
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return slices.Contains(a.types, compType)
}

// ID returns the archetype's identifier.
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types for this archetype.
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities.
func (a *Archetype) Len() int {
	return a.count
}

// Iter yields the ids of all live entities in slot order.
func (a *Archetype) Iter() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		for slot, ok := range a.alive {
			if !ok {
				continue
			}
			if !yield(NewEntityId(a.id, uint32(slot))) {
				return
			}
		}
	}
}

func (a *Archetype) columnIndex(t reflect.Type) int {
	for i, typ := range a.types {
		if typ == t {
			return i
		}
	}
	return -1
}
