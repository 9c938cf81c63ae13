package ecs

import "reflect"

// WorldView is the read-only face of a Storage. Code that receives a
// WorldView can observe entities, components, and singletons but has no
// access to spawning, deletion, or structural changes. Inspector tabs
// registered as analytics run against this interface, which makes the
// read-only restriction a compile-time property rather than a runtime
// check.
//
// Note that component and singleton accessors still hand out pointers to
// live data (the storage has no copy-on-read layer); WorldView removes the
// ability to issue structural mutations, which is the boundary that
// matters for frame safety.
type WorldView interface {
	// GetComponent returns the component of the given type for the entity,
	// or nil if the entity or component does not exist.
	GetComponent(id EntityId, compType reflect.Type) any

	// HasComponent reports whether the entity's archetype includes the type.
	HasComponent(id EntityId, compType reflect.Type) bool

	// ReadSingleton fills a **T target with the singleton of type T.
	ReadSingleton(target any) bool

	// GetArchetypes returns all archetypes keyed by id.
	GetArchetypes() map[uint32]*Archetype

	// EntityCount returns the number of live entities.
	EntityCount() int

	// CollectStats returns a point-in-time storage summary.
	CollectStats() *StorageStats

	// SingletonTypes lists the types of all stored singletons.
	SingletonTypes() []reflect.Type
}

// Storage satisfies WorldView.
var _ WorldView = (*Storage)(nil)
