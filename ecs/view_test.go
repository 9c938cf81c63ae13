package ecs_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/spyglass/ecs"
)

type moverView struct {
	Translation *Translation
	Motion      *Motion
}

type taggedView struct {
	Translation *Translation
	Label       *Label `ecs:"optional"`
}

func TestNewViewRejectsValueFields(t *testing.T) {
	storage := newTestStorage()

	assert.Panics(t, func() {
		ecs.NewView[struct {
			Translation Translation
		}](storage)
	})
}

func TestViewGet(t *testing.T) {
	storage := newTestStorage()
	id := storage.Spawn(Translation{X: 2}, Motion{DX: 5})
	bare := storage.Spawn(Translation{X: 8})

	view := ecs.NewView[moverView](storage)

	item := view.Get(id)
	require.NotNil(t, item)
	assert.Equal(t, float32(2), item.Translation.X)
	assert.Equal(t, float32(5), item.Motion.DX)

	// Writes through view pointers reach storage.
	item.Motion.DX = 12
	assert.Equal(t, float32(12), ecs.ReadComponent[Motion](storage, id).DX)

	// Missing a required component.
	assert.Nil(t, view.Get(bare))
}

func TestViewFill(t *testing.T) {
	storage := newTestStorage()
	id := storage.Spawn(Translation{Y: 3}, Motion{})

	view := ecs.NewView[moverView](storage)

	var item moverView
	require.True(t, view.Fill(id, &item))
	assert.Equal(t, float32(3), item.Translation.Y)

	storage.Delete(id)
	assert.False(t, view.Fill(id, &item))
}

func TestViewOptionalField(t *testing.T) {
	storage := newTestStorage()
	named := storage.Spawn(Translation{}, Label{Text: "torch"})
	anonymous := storage.Spawn(Translation{})

	view := ecs.NewView[taggedView](storage)

	item := view.Get(named)
	require.NotNil(t, item)
	require.NotNil(t, item.Label)
	assert.Equal(t, "torch", item.Label.Text)

	item = view.Get(anonymous)
	require.NotNil(t, item)
	assert.Nil(t, item.Label)
}

func TestViewIter(t *testing.T) {
	storage := newTestStorage()
	storage.Spawn(Translation{X: 1}, Motion{})
	storage.Spawn(Translation{X: 2}, Motion{})
	storage.Spawn(Label{Text: "ignored"})

	view := ecs.NewView[moverView](storage)

	var total float32
	count := 0
	for id, item := range view.Iter() {
		assert.NotEqual(t, ecs.EntityId(0), id)
		total += item.Translation.X
		count++
	}
	assert.Equal(t, 2, count)
	assert.Equal(t, float32(3), total)
}

func TestViewSpawn(t *testing.T) {
	storage := newTestStorage()
	view := ecs.NewView[moverView](storage)

	id := view.Spawn(moverView{
		Translation: &Translation{X: 6},
		Motion:      &Motion{DY: -2},
	})

	assert.Equal(t, float32(6), ecs.ReadComponent[Translation](storage, id).X)
	assert.Equal(t, float32(-2), ecs.ReadComponent[Motion](storage, id).DY)
}

func TestViewSpawnOmitsNilOptional(t *testing.T) {
	storage := newTestStorage()
	view := ecs.NewView[taggedView](storage)

	id := view.Spawn(taggedView{Translation: &Translation{X: 1}})

	assert.True(t, storage.HasComponent(id, reflect.TypeFor[Translation]()))
	assert.False(t, storage.HasComponent(id, reflect.TypeFor[Label]()))
}

func TestViewSpawnNilRequiredPanics(t *testing.T) {
	storage := newTestStorage()
	view := ecs.NewView[moverView](storage)

	assert.Panics(t, func() {
		view.Spawn(moverView{Translation: &Translation{}})
	})
}
