package inspector

import (
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/spyglass/ecs"
)

// renderResources lists every registered singleton by type name. Clicking
// one switches the selection to that resource so the Inspector tab can
// edit it.
func renderResources(world *ecs.Storage, state *UIState) {
	types := world.SingletonTypes()
	sort.Slice(types, func(i, j int) bool { return types[i].String() < types[j].String() })

	if len(types) == 0 {
		imgui.TextDisabled("No resources registered")
		return
	}

	for _, typ := range types {
		name := typ.String()
		selected := state.Selection.Kind == SelectionResource && state.Selection.Type == typ
		if imgui.SelectableBoolV(name, selected, imgui.SelectableFlagsNone, imgui.NewVec2(0, 0)) {
			state.Selection = ResourceSelection(typ, name)
		}
	}
}
