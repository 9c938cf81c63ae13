package inspector

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/spyglass/assets"
	"github.com/plus3/spyglass/ecs"
)

// renderAssetBrowser lists every asset in the store grouped under its
// type, clickable into the selection like the resources list.
func renderAssetBrowser(world *ecs.Storage, state *UIState) {
	var store *assets.Store
	if !world.ReadSingleton(&store) {
		imgui.TextDisabled("No asset store registered")
		return
	}

	entries := store.Entries()
	if len(entries) == 0 {
		imgui.TextDisabled("No assets loaded")
		return
	}

	var openType string
	var open bool
	for _, entry := range entries {
		typeName := entry.Type.String()
		if typeName != openType {
			if openType != "" && open {
				imgui.TreePop()
			}
			openType = typeName
			open = imgui.TreeNodeStr(typeName)
		}
		if !open {
			continue
		}

		label := fmt.Sprintf("%s##%d", entry.Name, entry.Handle.ID)
		selected := state.Selection.Kind == SelectionAsset && state.Selection.Handle == entry.Handle
		if imgui.SelectableBoolV(label, selected, imgui.SelectableFlagsNone, imgui.NewVec2(0, 0)) {
			state.Selection = AssetSelection(entry.Type, entry.Name, entry.Handle)
		}
	}
	if openType != "" && open {
		imgui.TreePop()
	}
}
