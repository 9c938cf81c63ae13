package ecs

import "iter"

// iComponentStorage is the type-erased face of genericComponentStorage,
// letting an archetype hold storages of different component types uniformly.
type iComponentStorage interface {
	Append(item any) int
	Delete(index int)
	Get(index int) any
	Has(index int) bool
	Count() int
	Compact() map[int]int
	Iter() iter.Seq[int]
}
