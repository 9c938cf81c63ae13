// Package assets provides an in-memory asset store keyed by typed handles.
// Hosts load whatever they like into it (images, clips, config blobs); the
// inspector's Assets tab enumerates every stored handle and its Inspector
// tab resolves handles back to values for reflection display.
package assets

import (
	"reflect"
	"sort"
)

// Handle is a typed reference to a stored asset of type T.
type Handle[T any] struct {
	id uint32
}

// ID returns the handle's numeric identity within its type's table.
func (h Handle[T]) ID() uint32 { return h.id }

// Untyped erases the handle's compile-time type for storage in
// heterogeneous structures such as the inspector's selection.
func (h Handle[T]) Untyped() UntypedHandle {
	var zero T
	return UntypedHandle{Type: reflect.TypeOf(zero), ID: h.id}
}

// UntypedHandle identifies an asset by (type, id) without compile-time
// type information.
type UntypedHandle struct {
	Type reflect.Type
	ID   uint32
}

// Entry describes one stored asset for enumeration.
type Entry struct {
	Type   reflect.Type
	Name   string
	Handle UntypedHandle
}

type table struct {
	nextID uint32
	names  map[uint32]string
	values map[uint32]reflect.Value
}

// Store holds all loaded assets, one table per asset type.
// Not safe for concurrent use; load during startup or on the frame
// goroutine.
type Store struct {
	tables map[reflect.Type]*table
}

// NewStore creates an empty asset store.
func NewStore() *Store {
	return &Store{tables: make(map[reflect.Type]*table)}
}

// Add stores value under the given display name and returns its handle.
// Names need not be unique; identity is the handle, not the name.
func Add[T any](s *Store, name string, value T) Handle[T] {
	typ := reflect.TypeFor[T]()

	tbl, ok := s.tables[typ]
	if !ok {
		tbl = &table{
			nextID: 1,
			names:  make(map[uint32]string),
			values: make(map[uint32]reflect.Value),
		}
		s.tables[typ] = tbl
	}

	id := tbl.nextID
	tbl.nextID++

	holder := reflect.New(typ)
	holder.Elem().Set(reflect.ValueOf(value))
	tbl.names[id] = name
	tbl.values[id] = holder

	return Handle[T]{id: id}
}

// Get returns a pointer to the asset behind the handle, or nil if the
// handle does not resolve.
func Get[T any](s *Store, h Handle[T]) *T {
	tbl, ok := s.tables[reflect.TypeFor[T]()]
	if !ok {
		return nil
	}
	holder, ok := tbl.values[h.id]
	if !ok {
		return nil
	}
	return holder.Interface().(*T)
}

// Resolve returns a pointer to the asset behind an untyped handle as an
// untyped value, or nil if it does not resolve.
func (s *Store) Resolve(h UntypedHandle) any {
	tbl, ok := s.tables[h.Type]
	if !ok {
		return nil
	}
	holder, ok := tbl.values[h.ID]
	if !ok {
		return nil
	}
	return holder.Interface()
}

// Name returns the display name recorded for the handle, or "" if absent.
func (s *Store) Name(h UntypedHandle) string {
	tbl, ok := s.tables[h.Type]
	if !ok {
		return ""
	}
	return tbl.names[h.ID]
}

// Entries lists every stored asset, sorted by type name, then display
// name, then handle id, so browsers render stably across frames.
func (s *Store) Entries() []Entry {
	var entries []Entry
	for typ, tbl := range s.tables {
		for id, name := range tbl.names {
			entries = append(entries, Entry{
				Type:   typ,
				Name:   name,
				Handle: UntypedHandle{Type: typ, ID: id},
			})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		ti, tj := entries[i].Type.String(), entries[j].Type.String()
		if ti != tj {
			return ti < tj
		}
		if entries[i].Name != entries[j].Name {
			return entries[i].Name < entries[j].Name
		}
		return entries[i].Handle.ID < entries[j].Handle.ID
	})
	return entries
}

// Len returns the total number of stored assets across all types.
func (s *Store) Len() int {
	total := 0
	for _, tbl := range s.tables {
		total += len(tbl.names)
	}
	return total
}
