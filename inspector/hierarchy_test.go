package inspector

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/spyglass/ecs"
	"github.com/plus3/spyglass/scene"
)

func newSearchWorld(t *testing.T) *ecs.Storage {
	t.Helper()

	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[scene.Name](registry)
	ecs.RegisterComponent[scene.Transform](registry)
	return ecs.NewStorage(registry)
}

func TestSearchEntitiesMatchesNames(t *testing.T) {
	world := newSearchWorld(t)
	world.Spawn(scene.Name("Player One"), scene.Transform{})
	world.Spawn(scene.Name("Enemy Grunt"), scene.Transform{})
	world.Spawn(scene.Name("Enemy Boss"), scene.Transform{})

	matches := searchEntities(world, "enemy")
	require.Len(t, matches, 2)
	assert.Equal(t, "Enemy Boss", matches[0].DisplayName)
	assert.Equal(t, "Enemy Grunt", matches[1].DisplayName)
}

func TestSearchEntitiesCaseInsensitive(t *testing.T) {
	world := newSearchWorld(t)
	world.Spawn(scene.Name("CamelCaseName"), scene.Transform{})

	matches := searchEntities(world, strings.ToLower("camelcase"))
	require.Len(t, matches, 1)
	assert.Equal(t, "CamelCaseName", matches[0].DisplayName)
}

func TestSearchEntitiesMatchesIdentityText(t *testing.T) {
	world := newSearchWorld(t)
	id := world.Spawn(scene.Name("Whatever"), scene.Transform{})

	matches := searchEntities(world, fmt.Sprintf("%d", id))
	require.Len(t, matches, 1)
	assert.Equal(t, id, matches[0].ID)
}

func TestSearchEntitiesDeduplicates(t *testing.T) {
	world := newSearchWorld(t)
	// Name contains the digit 0 and so does the identity text of an
	// index-0 entity; the entity must still appear exactly once.
	id := world.Spawn(scene.Name("Entity 0 of 10"), scene.Transform{})

	matches := searchEntities(world, "0")
	count := 0
	for _, m := range matches {
		if m.ID == id {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestSearchEntitiesSortTieBreakById(t *testing.T) {
	world := newSearchWorld(t)
	a := world.Spawn(scene.Name("Twin"), scene.Transform{})
	b := world.Spawn(scene.Name("Twin"), scene.Transform{})

	matches := searchEntities(world, "twin")
	require.Len(t, matches, 2)

	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	assert.Equal(t, lo, matches[0].ID)
	assert.Equal(t, hi, matches[1].ID)
}

func TestSearchEntitiesUnnamedFallbackName(t *testing.T) {
	world := newSearchWorld(t)
	id := world.Spawn(scene.Transform{})

	matches := searchEntities(world, fmt.Sprintf("%d", id.Index()))
	require.Len(t, matches, 1)
	assert.Equal(t, fmt.Sprintf("Entity %d", id.Index()), matches[0].DisplayName)
}
