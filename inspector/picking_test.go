package inspector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/spyglass/ecs"
	"github.com/plus3/spyglass/scene"
)

func TestPickTopmostHighestZWins(t *testing.T) {
	candidates := []pickCandidate{
		{ID: ecs.NewEntityId(1, 0), X: 0, Y: 0, Z: 1.0, W: 32, H: 32},
		{ID: ecs.NewEntityId(1, 1), X: 0, Y: 0, Z: 2.0, W: 32, H: 32},
	}

	winner, hit := pickTopmost(candidates, 0, 0)
	require.True(t, hit)
	assert.Equal(t, ecs.NewEntityId(1, 1), winner)

	// Order of candidates must not matter.
	candidates[0], candidates[1] = candidates[1], candidates[0]
	winner, hit = pickTopmost(candidates, 0, 0)
	require.True(t, hit)
	assert.Equal(t, ecs.NewEntityId(1, 1), winner)
}

func TestPickTopmostInclusiveBounds(t *testing.T) {
	candidates := []pickCandidate{
		{ID: ecs.NewEntityId(1, 0), X: 0, Y: 0, Z: 0, W: 32, H: 32},
	}

	_, hit := pickTopmost(candidates, 16, 16)
	assert.True(t, hit, "boundary point should hit")

	_, hit = pickTopmost(candidates, -16, -16)
	assert.True(t, hit, "opposite boundary point should hit")

	_, hit = pickTopmost(candidates, 16.5, 0)
	assert.False(t, hit, "point outside bounds should miss")
}

func TestPickTopmostNoCandidates(t *testing.T) {
	_, hit := pickTopmost(nil, 0, 0)
	assert.False(t, hit)
}

func TestResolvePickSizeFallbacks(t *testing.T) {
	w, h := resolvePickSize(nil)
	assert.Equal(t, float32(defaultPickSize), w)
	assert.Equal(t, float32(defaultPickSize), h)

	w, h = resolvePickSize(&scene.Sprite{})
	assert.Equal(t, float32(defaultPickSize), w)
	assert.Equal(t, float32(defaultPickSize), h)
}

func TestResolvePickSizeOverride(t *testing.T) {
	sprite := &scene.Sprite{Size: scene.SizeOverride{W: 10, H: 20}}

	w, h := resolvePickSize(sprite)
	assert.Equal(t, float32(10), w)
	assert.Equal(t, float32(20), h)
}

func TestResolvePickSizeAppliesScale(t *testing.T) {
	sprite := &scene.Sprite{Size: scene.SizeOverride{W: 10, H: 20}, Scale: 2}

	w, h := resolvePickSize(sprite)
	assert.Equal(t, float32(20), w)
	assert.Equal(t, float32(40), h)
}

func newPickingWorld(t *testing.T) *ecs.Storage {
	t.Helper()

	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[scene.Transform](registry)
	ecs.RegisterComponent[scene.Sprite](registry)
	ecs.RegisterComponent[scene.Pickable](registry)
	return ecs.NewStorage(registry)
}

func TestSelectionModifierFlow(t *testing.T) {
	world := newPickingWorld(t)
	set := NewSelectedEntities()
	first := world.Spawn(scene.Transform{X: 1})
	second := world.Spawn(scene.Transform{X: 2})
	third := world.Spawn(scene.Transform{X: 3})

	// Plain click selects the first object.
	set.SelectOrToggle(world, first, false)
	assert.Equal(t, []ecs.EntityId{first}, set.Live())

	// Shift-click on a second object grows the set to two.
	set.SelectOrToggle(world, second, true)
	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Contains(first))
	assert.True(t, set.Contains(second))

	// Plain click on a third replaces the whole set.
	set.SelectOrToggle(world, third, false)
	assert.Equal(t, []ecs.EntityId{third}, set.Live())
}

func TestAutoPickableTagsSpriteEntities(t *testing.T) {
	world := newPickingWorld(t)
	scheduler := ecs.NewScheduler(world)
	scheduler.Register(&AutoPickableSystem{})

	plain := world.Spawn(scene.Transform{}, scene.Sprite{Scale: 1})
	tagged := world.Spawn(scene.Transform{}, scene.Sprite{Scale: 1}, scene.Pickable{})
	bare := world.Spawn(scene.Transform{})

	plainRef := world.CreateEntityRef(plain)
	taggedRef := world.CreateEntityRef(tagged)

	scheduler.Once(1.0 / 60.0)

	// The untagged sprite entity gained Pickable, migrating archetypes.
	plainId, ok := world.ResolveEntityRef(plainRef)
	require.True(t, ok)
	assert.NotEqual(t, plain, plainId)
	assert.True(t, world.HasComponent(plainId, pickableType))

	// Already-tagged entities stay where they are.
	taggedId, ok := world.ResolveEntityRef(taggedRef)
	require.True(t, ok)
	assert.Equal(t, tagged, taggedId)

	// Entities without a sprite are left alone.
	assert.False(t, world.HasComponent(bare, pickableType))

	// A second pass finds nothing left to tag.
	scheduler.Once(1.0 / 60.0)
	again, ok := world.ResolveEntityRef(plainRef)
	require.True(t, ok)
	assert.Equal(t, plainId, again)
}
