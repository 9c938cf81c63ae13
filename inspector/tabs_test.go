package inspector_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/spyglass/ecs"
	"github.com/plus3/spyglass/inspector"
)

func TestTabFromBuiltinRoundTrip(t *testing.T) {
	kinds := []inspector.BuiltinTab{
		inspector.TabGameView,
		inspector.TabHierarchy,
		inspector.TabInspector,
		inspector.TabResources,
		inspector.TabAssets,
		inspector.TabDiagnostics,
	}

	for _, kind := range kinds {
		tab := inspector.TabFromBuiltin(kind)
		assert.Equal(t, inspector.TabKindBuiltin, tab.Kind)
		assert.Equal(t, kind, tab.Builtin)
	}

	// Equality distinguishes every pair of distinct kinds.
	for i, a := range kinds {
		for j, b := range kinds {
			if i == j {
				assert.Equal(t, inspector.TabFromBuiltin(a), inspector.TabFromBuiltin(b))
			} else {
				assert.NotEqual(t, inspector.TabFromBuiltin(a), inspector.TabFromBuiltin(b))
			}
		}
	}
}

func TestDefaultDockPositionIsBottom(t *testing.T) {
	tab := inspector.NewAnalyticsTab("t", "T", func(ecs.WorldView) {})
	assert.Equal(t, inspector.DockBottom, tab.DockPosition())

	var zero inspector.DockPosition
	assert.Equal(t, inspector.DockBottom, zero)
}

func TestRegistryHandOff(t *testing.T) {
	reg := inspector.NewTabRegistry()
	assert.True(t, reg.IsEmpty())

	for i := 0; i < 3; i++ {
		reg.RegisterAnalytics(fmt.Sprintf("tab-%d", i), fmt.Sprintf("Tab %d", i), func(ecs.WorldView) {})
	}
	assert.Equal(t, 3, reg.Len())
	assert.False(t, reg.IsEmpty())

	tabs := reg.Take()
	require.Len(t, tabs, 3)
	for i, tab := range tabs {
		assert.Equal(t, fmt.Sprintf("tab-%d", i), tab.ID(), "registration order preserved")
	}

	// Ownership moved: the registry is empty afterwards.
	assert.True(t, reg.IsEmpty())
	assert.Equal(t, 0, reg.Len())
}

func TestRegistryDropsLateRegistrations(t *testing.T) {
	reg := inspector.NewTabRegistry()
	reg.RegisterAnalytics("early", "Early", func(ecs.WorldView) {})
	reg.Take()

	reg.RegisterInteractive("late", "Late", func(*ecs.Storage) {})
	assert.True(t, reg.IsEmpty(), "registrations after hand-off are dropped")
}

func TestRegistryAllowsDuplicateIDs(t *testing.T) {
	reg := inspector.NewTabRegistry()
	reg.RegisterAnalytics("dup", "First", func(ecs.WorldView) {})
	reg.RegisterAnalytics("dup", "Second", func(ecs.WorldView) {})

	tabs := reg.Take()
	require.Len(t, tabs, 2)
	assert.Equal(t, "First", tabs[0].Title())
	assert.Equal(t, "Second", tabs[1].Title())
}

func TestRegistryLayoutPlacesCustomTabs(t *testing.T) {
	reg := inspector.NewTabRegistry()
	for i := 0; i < 2; i++ {
		reg.RegisterAnalytics(fmt.Sprintf("c%d", i), fmt.Sprintf("C%d", i), func(ecs.WorldView) {})
	}

	tree := inspector.BuildDefaultLayout(reg.Len(), inspector.DefaultLayoutRatios())
	reg.Take()

	var bottom []inspector.Tab
	for _, leaf := range tree.Leaves() {
		if len(leaf.Tabs) > 0 && leaf.Tabs[0] == inspector.TabFromBuiltin(inspector.TabAssets) {
			bottom = leaf.Tabs
		}
	}
	require.Len(t, bottom, 3)
	assert.Equal(t, inspector.TabFromCustom(0), bottom[1])
	assert.Equal(t, inspector.TabFromCustom(1), bottom[2])
}
