package ecs_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/spyglass/ecs"
)

func TestSpawnAndReadComponent(t *testing.T) {
	storage := newTestStorage()

	id := storage.Spawn(Translation{X: 3, Y: -1}, Label{Text: "crate"})
	require.NotEqual(t, ecs.EntityId(0), id)

	pos := ecs.ReadComponent[Translation](storage, id)
	require.NotNil(t, pos)
	assert.Equal(t, float32(3), pos.X)
	assert.Equal(t, float32(-1), pos.Y)

	label := ecs.ReadComponent[Label](storage, id)
	assert.Equal(t, "crate", label.Text)

	// Components are stored in place; writes through the pointer stick.
	pos.X = 99
	assert.Equal(t, float32(99), ecs.ReadComponent[Translation](storage, id).X)
}

func TestSpawnEmptyPanics(t *testing.T) {
	storage := newTestStorage()
	assert.Panics(t, func() {
		storage.Spawn()
	})
}

func TestSameTypesShareArchetype(t *testing.T) {
	storage := newTestStorage()

	a := storage.Spawn(Translation{}, Motion{DX: 1})
	b := storage.Spawn(Motion{DX: 2}, Translation{})
	c := storage.Spawn(Translation{})

	assert.Equal(t, a.ArchetypeId(), b.ArchetypeId(), "component order should not matter")
	assert.NotEqual(t, a.ArchetypeId(), c.ArchetypeId())
	assert.Equal(t, 3, storage.EntityCount())
}

func TestHasAndGetComponent(t *testing.T) {
	storage := newTestStorage()
	id := storage.Spawn(Translation{X: 1}, Durability{Current: 5, Max: 10})

	translationType := reflect.TypeFor[Translation]()
	motionType := reflect.TypeFor[Motion]()

	assert.True(t, storage.HasComponent(id, translationType))
	assert.False(t, storage.HasComponent(id, motionType))

	got := storage.GetComponent(id, translationType)
	require.NotNil(t, got)
	assert.Equal(t, float32(1), got.(*Translation).X)

	assert.Nil(t, storage.GetComponent(id, motionType))
}

func TestDelete(t *testing.T) {
	storage := newTestStorage()
	id := storage.Spawn(Translation{}, Label{Text: "gone"})
	keep := storage.Spawn(Translation{}, Label{Text: "kept"})

	storage.Delete(id)

	assert.Equal(t, 1, storage.EntityCount())
	assert.Equal(t, "kept", ecs.ReadComponent[Label](storage, keep).Text)
}

func TestAddComponentMigratesEntity(t *testing.T) {
	storage := newTestStorage()
	id := storage.Spawn(Translation{X: 7})

	newId := storage.AddComponent(id, Motion{DX: 2})
	require.NotEqual(t, ecs.EntityId(0), newId)
	assert.NotEqual(t, id.ArchetypeId(), newId.ArchetypeId())

	// The moved entity carries its old data plus the new component.
	assert.Equal(t, float32(7), ecs.ReadComponent[Translation](storage, newId).X)
	assert.Equal(t, float32(2), ecs.ReadComponent[Motion](storage, newId).DX)
	assert.Equal(t, 1, storage.EntityCount())
}

func TestRemoveComponentMigratesEntity(t *testing.T) {
	storage := newTestStorage()
	id := storage.Spawn(Translation{X: 4}, Motion{DX: 9})

	newId := storage.RemoveComponent(id, reflect.TypeFor[Motion]())
	require.NotEqual(t, ecs.EntityId(0), newId)

	assert.Equal(t, float32(4), ecs.ReadComponent[Translation](storage, newId).X)
	assert.False(t, storage.HasComponent(newId, reflect.TypeFor[Motion]()))
	assert.Equal(t, 1, storage.EntityCount())
}

func TestRemoveLastComponentDeletesEntity(t *testing.T) {
	storage := newTestStorage()
	id := storage.Spawn(Label{Text: "solo"})

	newId := storage.RemoveComponent(id, reflect.TypeFor[Label]())

	assert.Equal(t, ecs.EntityId(0), newId)
	assert.Equal(t, 0, storage.EntityCount())
}

func TestEntityRefSurvivesMigration(t *testing.T) {
	storage := newTestStorage()
	id := storage.Spawn(Translation{X: 11})
	ref := storage.CreateEntityRef(id)
	require.NotNil(t, ref)

	resolved, ok := storage.ResolveEntityRef(ref)
	require.True(t, ok)
	assert.Equal(t, id, resolved)

	// Adding a component moves the entity; the ref must follow it.
	newId := storage.AddComponent(id, Motion{})
	resolved, ok = storage.ResolveEntityRef(ref)
	require.True(t, ok)
	assert.Equal(t, newId, resolved)
	assert.Equal(t, float32(11), ecs.ReadComponent[Translation](storage, resolved).X)
}

func TestEntityRefInvalidatedOnDelete(t *testing.T) {
	storage := newTestStorage()
	id := storage.Spawn(Translation{})
	ref := storage.CreateEntityRef(id)

	storage.Delete(id)

	_, ok := storage.ResolveEntityRef(ref)
	assert.False(t, ok)
}

func TestInvalidateEntityRef(t *testing.T) {
	storage := newTestStorage()
	id := storage.Spawn(Translation{})
	ref := storage.CreateEntityRef(id)

	assert.True(t, storage.InvalidateEntityRef(ref))

	_, ok := storage.ResolveEntityRef(ref)
	assert.False(t, ok)

	// Already invalidated.
	assert.False(t, storage.InvalidateEntityRef(ref))
}

func TestCollectStats(t *testing.T) {
	storage := newTestStorage()
	storage.Spawn(Translation{}, Motion{})
	storage.Spawn(Translation{}, Motion{})
	storage.Spawn(Label{Text: "sign"})
	storage.AddSingleton(Durability{Current: 1, Max: 1})

	stats := storage.CollectStats()

	assert.Equal(t, 3, stats.TotalEntityCount)
	assert.Equal(t, 2, stats.ArchetypeCount)
	assert.Equal(t, 1, stats.SingletonCount)
	require.Len(t, stats.ArchetypeBreakdown, 2)
	// Breakdown is sorted by archetype id.
	assert.Less(t, stats.ArchetypeBreakdown[0].ID, stats.ArchetypeBreakdown[1].ID)
}

func TestGetArchetypes(t *testing.T) {
	storage := newTestStorage()
	a := storage.Spawn(Translation{})
	b := storage.Spawn(Label{Text: "x"}, Ghost{})

	archetypes := storage.GetArchetypes()
	assert.Len(t, archetypes, 2)

	arch := storage.GetArchetypeById(b.ArchetypeId())
	require.NotNil(t, arch)
	assert.Equal(t, 1, arch.EntityCount())
	assert.Len(t, arch.Types(), 2)

	assert.NotNil(t, storage.GetArchetypeById(a.ArchetypeId()))
	assert.Nil(t, storage.GetArchetypeById(0xdeadbeef))
}
