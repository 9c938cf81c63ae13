package ecs

import "reflect"

// Commands buffers structural changes made during a frame. Systems queue
// spawns, deletes and component moves here instead of mutating Storage
// mid-iteration; the Scheduler flushes the buffer after all systems ran.
type Commands struct {
	spawns  [][]any
	deletes []EntityId
	adds    []pendingAdd
	removes []pendingRemove
	defers  []func()
}

type pendingAdd struct {
	entity    EntityId
	component any
}

type pendingRemove struct {
	entity   EntityId
	compType reflect.Type
}

func newCommands() *Commands {
	return &Commands{}
}

// Defer queues an arbitrary function to run at the end of the frame, after
// all structural changes were applied.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Spawn queues an entity spawn with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, components)
}

// Delete queues an entity deletion.
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// AddComponent queues adding a component to an existing entity.
func (c *Commands) AddComponent(entity EntityId, component any) {
	c.adds = append(c.adds, pendingAdd{entity: entity, component: component})
}

// RemoveComponent queues removing a component from an existing entity.
func (c *Commands) RemoveComponent(entity EntityId, compType reflect.Type) {
	c.removes = append(c.removes, pendingRemove{entity: entity, compType: compType})
}

// Flush applies the buffered operations to storage and resets the buffer.
// Deletes run first so later operations against a deleted entity are dropped,
// then removes, adds, spawns, and finally deferred functions.
func (c *Commands) Flush(storage *Storage) {
	deleted := make(map[EntityId]bool)

	for _, entity := range c.deletes {
		storage.Delete(entity)
		deleted[entity] = true
	}

	for _, cmd := range c.removes {
		if !deleted[cmd.entity] {
			storage.RemoveComponent(cmd.entity, cmd.compType)
		}
	}

	for _, cmd := range c.adds {
		if !deleted[cmd.entity] {
			storage.AddComponent(cmd.entity, cmd.component)
		}
	}

	for _, components := range c.spawns {
		storage.Spawn(components...)
	}

	for _, fn := range c.defers {
		fn()
	}

	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]
}
