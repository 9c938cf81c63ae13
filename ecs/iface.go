package ecs

import "unsafe"

// iface mirrors the runtime layout of an interface value, letting views pull
// the data pointer out of an any without an allocation.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}
