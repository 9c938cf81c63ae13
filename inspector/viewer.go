package inspector

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/spyglass/ecs"
)

// tabViewer routes dock leaves to tab bodies. Built-in tabs receive the
// shared UI state and the world; custom tabs receive the world through
// their registered capability (Render narrows to WorldView for analytics
// adapters). One viewer is built per frame by the panel system.
type tabViewer struct {
	world *ecs.Storage
	state *UIState
	dt    float64
}

func (v *tabViewer) title(tab Tab) string {
	switch tab.Kind {
	case TabKindBuiltin:
		return tab.Builtin.Title()
	case TabKindCustom:
		if tab.Custom >= 0 && tab.Custom < len(v.state.customTabs) {
			return v.state.customTabs[tab.Custom].Title()
		}
		return fmt.Sprintf("Tab %d", tab.Custom)
	}
	return "Unknown"
}

func (v *tabViewer) render(tab Tab) {
	switch tab.Kind {
	case TabKindBuiltin:
		v.renderBuiltin(tab.Builtin)
	case TabKindCustom:
		v.renderCustom(tab.Custom)
	}
}

func (v *tabViewer) renderBuiltin(kind BuiltinTab) {
	switch kind {
	case TabGameView:
		renderGameView(v.state)
	case TabHierarchy:
		renderHierarchy(v.world, v.state)
	case TabInspector:
		renderInspector(v.world, v.state)
	case TabResources:
		renderResources(v.world, v.state)
	case TabAssets:
		renderAssetBrowser(v.world, v.state)
	case TabDiagnostics:
		renderDiagnostics(v.world, v.state, v.dt)
	}
}

// renderCustom dispatches to a registered custom tab, absorbing the two
// failure edges: a stale index renders a "not found" placeholder, and a
// tab that declares itself not visible for the current world state gets a
// neutral placeholder instead of having its body invoked.
func (v *tabViewer) renderCustom(index int) {
	if index < 0 || index >= len(v.state.customTabs) {
		imgui.Text(fmt.Sprintf("Custom tab %d not found", index))
		return
	}

	tab := v.state.customTabs[index]
	if !tab.IsVisible(v.world) {
		imgui.TextDisabled("Tab currently hidden")
		return
	}

	tab.Render(v.world)
}
