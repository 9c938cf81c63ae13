package assets_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/spyglass/assets"
)

type Clip struct {
	Frames int
}

type Palette struct {
	Colors []uint32
}

func TestAddAndGet(t *testing.T) {
	store := assets.NewStore()

	h := assets.Add(store, "walk", Clip{Frames: 8})

	clip := assets.Get(store, h)
	require.NotNil(t, clip)
	assert.Equal(t, 8, clip.Frames)

	// Get returns a pointer into the store.
	clip.Frames = 12
	assert.Equal(t, 12, assets.Get(store, h).Frames)
}

func TestGetUnknownHandle(t *testing.T) {
	store := assets.NewStore()

	assert.Nil(t, assets.Get(store, assets.Handle[Clip]{}))

	assets.Add(store, "walk", Clip{})
	missing := assets.Handle[Palette]{}
	assert.Nil(t, assets.Get(store, missing))
}

func TestUntypedResolveAndName(t *testing.T) {
	store := assets.NewStore()
	h := assets.Add(store, "warm", Palette{Colors: []uint32{0xff0000}})

	untyped := h.Untyped()
	assert.Equal(t, reflect.TypeFor[Palette](), untyped.Type)
	assert.Equal(t, "warm", store.Name(untyped))

	value := store.Resolve(untyped)
	require.NotNil(t, value)
	palette, ok := value.(*Palette)
	require.True(t, ok)
	assert.Len(t, palette.Colors, 1)
}

func TestResolveUnknown(t *testing.T) {
	store := assets.NewStore()

	unknown := assets.UntypedHandle{Type: reflect.TypeFor[Clip](), ID: 42}
	assert.Nil(t, store.Resolve(unknown))
	assert.Empty(t, store.Name(unknown))
}

func TestEntriesSortedAndComplete(t *testing.T) {
	store := assets.NewStore()
	assets.Add(store, "b-clip", Clip{})
	assets.Add(store, "a-clip", Clip{})
	assets.Add(store, "palette", Palette{})

	entries := store.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, 3, store.Len())

	// Sorted by type name first, then display name.
	assert.Equal(t, "a-clip", entries[0].Name)
	assert.Equal(t, "b-clip", entries[1].Name)
	assert.Equal(t, "palette", entries[2].Name)
}

func TestDuplicateNamesGetDistinctHandles(t *testing.T) {
	store := assets.NewStore()
	h1 := assets.Add(store, "same", Clip{Frames: 1})
	h2 := assets.Add(store, "same", Clip{Frames: 2})

	assert.NotEqual(t, h1.ID(), h2.ID())
	assert.Equal(t, 1, assets.Get(store, h1).Frames)
	assert.Equal(t, 2, assets.Get(store, h2).Frames)
}
