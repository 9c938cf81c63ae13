package ecs_test

import "github.com/plus3/spyglass/ecs"

// Shared component vocabulary for the package tests: a minimal 2D scene.
type Translation struct {
	X, Y float32
}

type Motion struct {
	DX, DY float32
}

type Label struct {
	Text string
}

type Durability struct {
	Current, Max int
}

type Ghost struct{}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Translation](registry)
	ecs.RegisterComponent[Motion](registry)
	ecs.RegisterComponent[Label](registry)
	ecs.RegisterComponent[Durability](registry)
	ecs.RegisterComponent[Ghost](registry)
	return registry
}

func newTestStorage() *ecs.Storage {
	return ecs.NewStorage(newTestRegistry())
}
