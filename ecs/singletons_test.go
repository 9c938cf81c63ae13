package ecs_test

import (
	"reflect"
	"testing"

	"github.com/plus3/spyglass/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type WorldClock struct {
	Elapsed float64
}

type Settings struct {
	Difficulty int
}

func TestAddAndReadSingleton(t *testing.T) {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())

	storage.AddSingleton(WorldClock{Elapsed: 1.5})

	var clock *WorldClock
	require.True(t, storage.ReadSingleton(&clock))
	assert.Equal(t, 1.5, clock.Elapsed)

	// The returned pointer aliases the stored value.
	clock.Elapsed = 3.0
	var again *WorldClock
	require.True(t, storage.ReadSingleton(&again))
	assert.Equal(t, 3.0, again.Elapsed)
}

func TestReadSingletonMissing(t *testing.T) {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())

	var clock *WorldClock
	assert.False(t, storage.ReadSingleton(&clock))
	assert.Nil(t, clock)
}

func TestAddSingletonKeepsFirstValue(t *testing.T) {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())

	storage.AddSingleton(Settings{Difficulty: 1})
	storage.AddSingleton(Settings{Difficulty: 9})

	var settings *Settings
	require.True(t, storage.ReadSingleton(&settings))
	assert.Equal(t, 1, settings.Difficulty)
}

func TestAddSingletonRejectsPointer(t *testing.T) {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())

	assert.Panics(t, func() {
		storage.AddSingleton(&WorldClock{})
	})
	assert.Panics(t, func() {
		storage.AddSingleton(nil)
	})
}

func TestSingletonTypes(t *testing.T) {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	assert.Empty(t, storage.SingletonTypes())

	storage.AddSingleton(WorldClock{})
	storage.AddSingleton(Settings{})

	types := storage.SingletonTypes()
	assert.Len(t, types, 2)
	assert.Contains(t, types, reflect.TypeFor[WorldClock]())
	assert.Contains(t, types, reflect.TypeFor[Settings]())
}

func TestGetSingletonByType(t *testing.T) {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	storage.AddSingleton(WorldClock{Elapsed: 2.0})

	value := storage.GetSingletonByType(reflect.TypeFor[WorldClock]())
	require.NotNil(t, value)

	clock, ok := value.(*WorldClock)
	require.True(t, ok)
	assert.Equal(t, 2.0, clock.Elapsed)

	assert.Nil(t, storage.GetSingletonByType(reflect.TypeFor[Settings]()))
}
