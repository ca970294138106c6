package ecs

import (
	"iter"
	"reflect"
)

var entityIdType = reflect.TypeFor[EntityId]()

type viewField struct {
	index    int
	typ      reflect.Type
	optional bool
	entity   bool
}

// View matches entities against a struct shape. Every pointer field of T
// names a component; a field of type EntityId receives the entity's id.
// Named pointer fields tagged `ecs:"optional"` may be nil.
type View[T any] struct {
	storage *Storage
	fields  []viewField
}

// NewView builds a view for the struct type T.
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	fields := make([]viewField, 0, structType.NumField())
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityIdType {
			fields = append(fields, viewField{index: i, entity: true})
			continue
		}
		if field.Type.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types or EntityId")
		}

		optional := false
		if tag := field.Tag.Get("ecs"); tag != "" && !field.Anonymous {
			if tag != "optional" {
				panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
			optional = true
		}

		fields = append(fields, viewField{
			index:    i,
			typ:      field.Type.Elem(),
			optional: optional,
		})
	}

	return &View[T]{storage: storage, fields: fields}
}

// Fill populates out for the given entity. Returns false if the entity is
// dead or lacks a required component.
func (v *View[T]) Fill(id EntityId, out *T) bool {
	archetype, ok := v.storage.archetypes.Get(id.ArchetypeId())
	if !ok || !archetype.Alive(id.Index()) {
		return false
	}
	return v.fill(archetype, v.columnMap(archetype), id.Index(), out)
}

// Get returns a populated view for id, or nil.
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

// Iter yields every matching entity, archetypes in creation order.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for _, archetype := range v.storage.order {
			if !v.matches(archetype) {
				continue
			}
			if !v.iterArchetype(archetype, yield) {
				return
			}
		}
	}
}

// Values yields only the populated view structs.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

func (v *View[T]) iterArchetype(archetype *Archetype, yield func(EntityId, T) bool) bool {
	columns := v.columnMap(archetype)
	for id := range archetype.Iter() {
		var result T
		if !v.fill(archetype, columns, id.Index(), &result) {
			continue
		}
		if !yield(id, result) {
			return false
		}
	}
	return true
}

// matches reports whether archetype has every required component.
func (v *View[T]) matches(archetype *Archetype) bool {
	for _, f := range v.fields {
		if f.entity || f.optional {
			continue
		}
		if !archetype.HasComponent(f.typ) {
			return false
		}
	}
	return true
}

func (v *View[T]) columnMap(archetype *Archetype) []int {
	columns := make([]int, len(v.fields))
	for i, f := range v.fields {
		columns[i] = -1
		if !f.entity {
			columns[i] = archetype.columnIndex(f.typ)
		}
	}
	return columns
}

func (v *View[T]) fill(archetype *Archetype, columns []int, slot uint32, out *T) bool {
	rv := reflect.ValueOf(out).Elem()
	for i, f := range v.fields {
		dst := rv.Field(f.index)
		if f.entity {
			dst.SetUint(uint64(NewEntityId(archetype.id, slot)))
			continue
		}
		if columns[i] < 0 {
			if !f.optional {
				return false
			}
			dst.SetZero()
			continue
		}
		dst.Set(reflect.ValueOf(archetype.columns[columns[i]].get(int(slot))))
	}
	return true
}
