package ecs

import (
	"reflect"
	"slices"
	"weak"

	"github.com/kamstrup/intmap"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

// Archetype stores all entities sharing one exact component set. Each
// component type gets its own parallel storage; an entity is a slot index
// valid across all of them. The refs map tracks weakly-held EntityRefs so
// deletes and compaction can fix them up.
type Archetype struct {
	id       uint32
	types    []reflect.Type
	storages []iComponentStorage
	refs     *intmap.Map[EntityId, weak.Pointer[EntityRef]]
}

// NewArchetype builds an archetype for the given sorted component types.
// Panics when a type was never registered, since there is no factory to
// build its storage from.
func NewArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:       id,
		types:    types,
		storages: make([]iComponentStorage, len(types)),
		refs:     intmap.New[EntityId, weak.Pointer[EntityRef]](256),
	}

	for idx, typ := range types {
		factory := registry.getFactory(typ)
		if factory == nil {
			panic("component type " + typ.String() + " not registered")
		}
		a.storages[idx] = factory()
	}

	return a
}

// Spawn appends the components into their storages and returns the slot
// index of the new entity. All storages append in lockstep, so any one
// storage's position works as the entity index.
func (a *Archetype) Spawn(components []any) uint32 {
	var storagePos int
	for _, comp := range components {
		compType := reflect.TypeOf(comp)
		if compType.Kind() == reflect.Ptr {
			compType = compType.Elem()
		}

		for idx, typ := range a.types {
			if typ == compType {
				storagePos = a.storages[idx].Append(comp)
			}
		}
	}

	return uint32(storagePos)
}

// GetComponent returns the entity's component of the given type, or nil when
// the archetype does not carry that type or the slot is empty.
func (a *Archetype) GetComponent(entityIndex uint32, compType reflect.Type) any {
	slot := -1
	for i, typ := range a.types {
		if typ == compType {
			slot = i
			break
		}
	}
	if slot == -1 {
		return nil
	}

	return a.storages[slot].Get(int(entityIndex))
}

// Delete empties the entity's slot in every storage and invalidates any
// EntityRef pointing at it. Slot indices of other entities are unaffected.
func (a *Archetype) Delete(entityIndex uint32) {
	entityId := NewEntityId(a.id, entityIndex)

	if weakPtr, ok := a.refs.Get(entityId); ok {
		if ref := weakPtr.Value(); ref != nil {
			ref.Id = 0
			ref.Archetype = nil
		}
		a.refs.Del(entityId)
	}

	for _, storage := range a.storages {
		storage.Delete(int(entityIndex))
	}
}

// HasComponent reports whether this archetype carries the component type.
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return slices.Contains(a.types, compType)
}

// ID returns the archetype's identifier.
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the archetype's component types, sorted by type name.
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// EntityCount returns the number of live entities in this archetype.
func (a *Archetype) EntityCount() int {
	if len(a.storages) == 0 {
		return 0
	}
	return a.storages[0].Count()
}

// Compact squeezes empty slots out of every storage. Live EntityRefs are
// rewritten to the new slot indices; dead weak pointers are dropped.
func (a *Archetype) Compact() {
	if len(a.storages) == 0 {
		return
	}

	// All storages share slot layout, so the first one's mapping is
	// canonical for ref fixup.
	indexMap := a.storages[0].Compact()
	for i := 1; i < len(a.storages); i++ {
		a.storages[i].Compact()
	}

	updatedRefs := make(map[EntityId]weak.Pointer[EntityRef])
	for oldIdx, newIdx := range indexMap {
		oldEntityId := NewEntityId(a.id, uint32(oldIdx))
		if weakPtr, ok := a.refs.Get(oldEntityId); ok {
			if ref := weakPtr.Value(); ref != nil {
				ref.Id = NewEntityId(a.id, uint32(newIdx))
				updatedRefs[ref.Id] = weakPtr
			}
		}
	}

	a.refs.Clear()
	for newEntityId, weakPtr := range updatedRefs {
		a.refs.Put(newEntityId, weakPtr)
	}
}

// Iter yields the EntityId of every live entity in this archetype.
func (a *Archetype) Iter() func(yield func(EntityId) bool) {
	return func(yield func(EntityId) bool) {
		if len(a.storages) == 0 {
			return
		}

		for index := range a.storages[0].Iter() {
			entityId := NewEntityId(a.id, uint32(index))
			if !yield(entityId) {
				return
			}
		}
	}
}
