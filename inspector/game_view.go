package inspector

import (
	"github.com/AllenDang/cimgui-go/imgui"
)

// renderGameView is the live-scene passthrough tab. It draws nothing; its
// only job is to measure the screen rectangle its content region occupies
// this frame. That rectangle is the single source of "space occupied by
// the live scene" for the viewport reconciler and input routing.
func renderGameView(state *UIState) {
	pos := imgui.CursorScreenPos()
	avail := imgui.ContentRegionAvail()

	state.ViewportRect = ViewportRect{
		MinX: pos.X,
		MinY: pos.Y,
		MaxX: pos.X + avail.X,
		MaxY: pos.Y + avail.Y,
	}
}
