package ecs

import (
	"iter"
	"reflect"
)

// ComponentRegistry maps component types to storage factories. Each Storage
// owns its own registry, so independent worlds never share type state.
type ComponentRegistry struct {
	factories map[reflect.Type]func() iComponentStorage
}

// NewComponentRegistry returns an empty registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() iComponentStorage),
	}
}

// RegisterComponent makes T usable as a component in storages built from
// this registry. Spawning an entity with an unregistered type panics.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	r.factories[t] = func() iComponentStorage {
		return &genericComponentStorage[T]{}
	}
}

// getFactory returns the storage factory for t, or nil when unregistered.
func (r *ComponentRegistry) getFactory(t reflect.Type) func() iComponentStorage {
	return r.factories[t]
}

const genericBlockSize = 64

// genericComponentStorage keeps components of one type in fixed-size blocks.
// Blocks never move, so component pointers handed out by Get stay valid
// until the slot is deleted or the storage is compacted. Freed slots are
// recycled before the tail grows.
type genericComponentStorage[T any] struct {
	blocks    [][genericBlockSize]T
	filled    [][genericBlockSize]bool
	freeSlots []int
	nextIndex int
}

func blockSlot(index int) (int, int) {
	return index / genericBlockSize, index % genericBlockSize
}

// Append stores the component (given as T or *T) and returns its slot index.
func (cs *genericComponentStorage[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case *T:
		value = *v
	case T:
		value = v
	default:
		return -1
	}

	if n := len(cs.freeSlots); n > 0 {
		index := cs.freeSlots[n-1]
		cs.freeSlots = cs.freeSlots[:n-1]

		block, slot := blockSlot(index)
		cs.blocks[block][slot] = value
		cs.filled[block][slot] = true
		return index
	}

	index := cs.nextIndex
	cs.nextIndex++

	block, slot := blockSlot(index)
	if block >= len(cs.blocks) {
		cs.blocks = append(cs.blocks, [genericBlockSize]T{})
		cs.filled = append(cs.filled, [genericBlockSize]bool{})
	}

	cs.blocks[block][slot] = value
	cs.filled[block][slot] = true
	return index
}

// Get returns a *T (as any) pointing into block storage, or nil for an
// out-of-range or empty slot.
func (cs *genericComponentStorage[T]) Get(index int) any {
	if index < 0 {
		return nil
	}

	block, slot := blockSlot(index)
	if block >= len(cs.blocks) || !cs.filled[block][slot] {
		return nil
	}

	return &cs.blocks[block][slot]
}

// Delete zeroes the slot and queues it for reuse.
func (cs *genericComponentStorage[T]) Delete(index int) {
	if index < 0 {
		return
	}

	block, slot := blockSlot(index)
	if block >= len(cs.blocks) {
		return
	}

	if cs.filled[block][slot] {
		cs.filled[block][slot] = false
		var zero T
		cs.blocks[block][slot] = zero
		cs.freeSlots = append(cs.freeSlots, index)
	}
}

// Count returns the number of occupied slots.
func (cs *genericComponentStorage[T]) Count() int {
	return cs.nextIndex - len(cs.freeSlots)
}

// Has reports whether the slot holds a component.
func (cs *genericComponentStorage[T]) Has(index int) bool {
	if index < 0 {
		return false
	}

	block, slot := blockSlot(index)
	if block >= len(cs.blocks) {
		return false
	}
	return cs.filled[block][slot]
}

// Compact rewrites the storage without gaps and returns the old-to-new slot
// mapping so callers can fix up external references.
func (cs *genericComponentStorage[T]) Compact() map[int]int {
	indexMap := make(map[int]int)

	live := cs.nextIndex - len(cs.freeSlots)
	if cs.nextIndex == 0 || live == 0 {
		cs.blocks = make([][genericBlockSize]T, 1)
		cs.filled = make([][genericBlockSize]bool, 1)
		cs.freeSlots = nil
		cs.nextIndex = 0
		return indexMap
	}

	blockCount := (live + genericBlockSize - 1) / genericBlockSize
	newBlocks := make([][genericBlockSize]T, blockCount)
	newFilled := make([][genericBlockSize]bool, blockCount)

	writePos := 0
	for readIdx := 0; readIdx < cs.nextIndex; readIdx++ {
		readBlock, readSlot := blockSlot(readIdx)
		if !cs.filled[readBlock][readSlot] {
			continue
		}

		indexMap[readIdx] = writePos
		writeBlock, writeSlot := blockSlot(writePos)
		newBlocks[writeBlock][writeSlot] = cs.blocks[readBlock][readSlot]
		newFilled[writeBlock][writeSlot] = true
		writePos++
	}

	cs.blocks = newBlocks
	cs.filled = newFilled
	cs.freeSlots = nil
	cs.nextIndex = writePos

	return indexMap
}

// Iter yields every occupied slot index in ascending order.
func (cs *genericComponentStorage[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < cs.nextIndex; i++ {
			block, slot := blockSlot(i)
			if block >= len(cs.filled) {
				continue
			}
			if cs.filled[block][slot] {
				if !yield(i) {
					return
				}
			}
		}
	}
}
