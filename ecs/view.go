package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// View resolves entities into a caller-defined struct of component pointers.
// T must be a struct whose fields are all pointers to component types. A named
// field tagged `ecs:"optional"` is left nil when the entity lacks that
// component; every other field is required for a match. Embedded fields are
// always required.
type View[T any] struct {
	storage *Storage
	fields  []viewField

	// Archetype id for the exact required field set. Filled lazily by Spawn
	// so repeated spawns of the same shape skip the type hash.
	cachedArchetypeId *uint32
}

// viewField is one field of T: which component it binds, where it sits in the
// struct, and whether a missing component fails the match.
type viewField struct {
	componentType reflect.Type
	offset        uintptr
	optional      bool
}

// NewView inspects T once via reflection and returns a View bound to storage.
// Panics if T is not a struct or any field is not a pointer, since field
// writes are done through precomputed offsets.
func NewView[T any](storage *Storage) *View[T] {
	var zero T
	structType := reflect.TypeOf(zero)

	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	fields := make([]viewField, 0, structType.NumField())
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types")
		}

		vf := viewField{
			componentType: field.Type.Elem(),
			offset:        field.Offset,
		}

		if !field.Anonymous {
			switch tag := field.Tag.Get("ecs"); tag {
			case "":
			case "optional":
				vf.optional = true
			default:
				panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
		}

		fields = append(fields, vf)
	}

	return &View[T]{
		storage: storage,
		fields:  fields,
	}
}

// Fill populates *ptr with component pointers for the given entity. Returns
// false when the entity (or a required component) is missing; optional fields
// are nilled out rather than failing the fill.
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	archetype, ok := v.storage.archetypes[id.ArchetypeId()]
	if !ok {
		return false
	}

	// Write each field directly through its offset; no per-call reflection.
	base := unsafe.Pointer(ptr)
	for i := range v.fields {
		field := &v.fields[i]
		fieldPtr := unsafe.Pointer(uintptr(base) + field.offset)

		component := archetype.GetComponent(id.Index(), field.componentType)
		if component == nil {
			if !field.optional {
				return false
			}
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}

		// Pull the data pointer out of the interface value.
		*(*unsafe.Pointer)(fieldPtr) = (*iface)(unsafe.Pointer(&component)).data
	}

	return true
}

// Get returns a populated view struct for the entity, or nil when it does not
// carry every required component.
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

// GetRef resolves the entity ref first, then behaves like Get. Returns nil
// when the ref no longer points at a live entity.
func (v *View[T]) GetRef(ref *EntityRef) *T {
	entityId, ok := v.storage.ResolveEntityRef(ref)
	if !ok {
		return nil
	}

	var result T
	if !v.Fill(entityId, &result) {
		return nil
	}
	return &result
}

// matchesArchetype reports whether the archetype carries every required
// component. Optional components are ignored here.
func (v *View[T]) matchesArchetype(archetype *Archetype) bool {
	for i := range v.fields {
		if v.fields[i].optional {
			continue
		}
		if !archetype.HasComponent(v.fields[i].componentType) {
			return false
		}
	}
	return true
}

// buildStorageIndices maps each view field to the archetype's storage slot,
// or -1 for components the archetype does not hold.
func (v *View[T]) buildStorageIndices(archetype *Archetype) []int {
	indices := make([]int, len(v.fields))
	for i := range v.fields {
		indices[i] = -1
		for slot, archetypeType := range archetype.types {
			if archetypeType == v.fields[i].componentType {
				indices[i] = slot
				break
			}
		}
	}
	return indices
}

// populateResult writes one entity's component pointers into the struct at
// resultPtr using precomputed storage slots. Returns false when a required
// component is absent.
func (v *View[T]) populateResult(resultPtr unsafe.Pointer, archetype *Archetype, entityIndex int, storageIndices []int) bool {
	for i, slot := range storageIndices {
		fieldPtr := unsafe.Pointer(uintptr(resultPtr) + v.fields[i].offset)

		if slot == -1 {
			if !v.fields[i].optional {
				return false
			}
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}

		component := archetype.storages[slot].Get(entityIndex)
		if component == nil {
			if !v.fields[i].optional {
				return false
			}
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}

		*(*unsafe.Pointer)(fieldPtr) = (*iface)(unsafe.Pointer(&component)).data
	}
	return true
}

// Iter yields (EntityId, T) for every entity carrying the view's required
// components, scanning all matching archetypes. Optional fields come back nil
// where absent.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for archetypeId, archetype := range v.storage.archetypes {
			if !v.matchesArchetype(archetype) {
				continue
			}
			if len(archetype.storages) == 0 {
				continue
			}

			storageIndices := v.buildStorageIndices(archetype)
			firstStorage := archetype.storages[0]

			var result T
			resultPtr := unsafe.Pointer(&result)

			for entityIndex := range firstStorage.Iter() {
				if !v.populateResult(resultPtr, archetype, entityIndex, storageIndices) {
					continue
				}

				entityId := NewEntityId(archetypeId, uint32(entityIndex))
				if !yield(entityId, result) {
					return
				}
			}
		}
	}
}

// Values is Iter without the entity ids.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Spawn creates an entity from the non-nil fields of data. Optional nil
// fields are simply omitted; a nil required field panics, as does a view
// whose fields are all nil.
func (v *View[T]) Spawn(data T) EntityId {
	base := unsafe.Pointer(&data)

	components := make([]any, 0, len(v.fields))
	componentTypes := make([]reflect.Type, 0, len(v.fields))
	for i := range v.fields {
		field := &v.fields[i]
		componentPtr := *(*unsafe.Pointer)(unsafe.Pointer(uintptr(base) + field.offset))

		if componentPtr == nil {
			if !field.optional {
				panic("required component is nil in View.Spawn")
			}
			continue
		}

		component := reflect.NewAt(field.componentType, componentPtr).Elem().Interface()
		components = append(components, component)
		componentTypes = append(componentTypes, field.componentType)
	}

	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	// Archetype identity depends on type order, so sort by type name the same
	// way Storage.Spawn does.
	for i := 0; i < len(componentTypes); i++ {
		for j := i + 1; j < len(componentTypes); j++ {
			if componentTypes[i].String() > componentTypes[j].String() {
				componentTypes[i], componentTypes[j] = componentTypes[j], componentTypes[i]
				components[i], components[j] = components[j], components[i]
			}
		}
	}

	var archetypeId uint32
	if v.cachedArchetypeId != nil && len(componentTypes) == len(v.requiredTypes()) {
		archetypeId = *v.cachedArchetypeId
	} else {
		archetypeId = hashTypesToUint32(componentTypes)
		if len(componentTypes) == len(v.requiredTypes()) {
			v.cachedArchetypeId = &archetypeId
		}
	}

	archetype, exists := v.storage.archetypes[archetypeId]
	if !exists {
		archetype = NewArchetype(archetypeId, componentTypes, v.storage.registry)
		v.storage.archetypes[archetypeId] = archetype
	}

	entityIndex := archetype.Spawn(components)
	return NewEntityId(archetypeId, entityIndex)
}

// requiredTypes returns the component types of the non-optional fields.
func (v *View[T]) requiredTypes() []reflect.Type {
	required := make([]reflect.Type, 0, len(v.fields))
	for i := range v.fields {
		if !v.fields[i].optional {
			required = append(required, v.fields[i].componentType)
		}
	}
	return required
}
