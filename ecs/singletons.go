package ecs

import (
	"reflect"
	"unsafe"
)

// singletonEntry is one stored singleton. The holder keeps the heap
// allocation alive; dataPtr is the address handed out to Singleton[T]
// accessors, stable for the lifetime of the storage.
type singletonEntry struct {
	typ     reflect.Type
	holder  reflect.Value
	dataPtr unsafe.Pointer
}

// AddSingleton stores a global component instance not tied to any entity.
// If a singleton of the same type already exists it is left untouched.
// Singleton types do not need to be registered in the ComponentRegistry.
func (s *Storage) AddSingleton(value any) {
	typ := reflect.TypeOf(value)
	if typ == nil {
		panic("cannot store a nil singleton")
	}
	if typ.Kind() == reflect.Ptr {
		panic("singletons must be stored by value, not by pointer")
	}

	if _, exists := s.singletons[typ]; exists {
		return
	}

	holder := reflect.New(typ)
	holder.Elem().Set(reflect.ValueOf(value))

	s.singletons[typ] = &singletonEntry{
		typ:     typ,
		holder:  holder,
		dataPtr: unsafe.Pointer(holder.Pointer()),
	}
}

// ReadSingleton fills target (which must be a **T) with a pointer to the
// stored singleton of type T. Returns false and leaves target untouched
// when no singleton of that type exists.
func (s *Storage) ReadSingleton(target any) bool {
	outer := reflect.ValueOf(target)
	if outer.Kind() != reflect.Ptr || outer.Elem().Kind() != reflect.Ptr {
		panic("ReadSingleton target must be a pointer to a component pointer")
	}

	inner := outer.Elem()
	entry, ok := s.singletons[inner.Type().Elem()]
	if !ok {
		return false
	}

	inner.Set(entry.holder)
	return true
}

// SingletonTypes returns the types of all stored singletons.
// Order is unspecified; callers that display the list should sort it.
func (s *Storage) SingletonTypes() []reflect.Type {
	types := make([]reflect.Type, 0, len(s.singletons))
	for typ := range s.singletons {
		types = append(types, typ)
	}
	return types
}

// GetSingletonByType returns a pointer to the singleton of the given type
// as an untyped value, or nil if absent. Used by reflection-driven code
// that only knows the type at runtime.
func (s *Storage) GetSingletonByType(typ reflect.Type) any {
	entry, ok := s.singletons[typ]
	if !ok {
		return nil
	}
	return entry.holder.Interface()
}

// getSingletonEntry is the internal accessor used by Singleton[T].
func (s *Storage) getSingletonEntry(typ reflect.Type) *singletonEntry {
	return s.singletons[typ]
}
