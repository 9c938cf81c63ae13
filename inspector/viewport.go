package inspector

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/spyglass/ecs"
	"github.com/plus3/spyglass/scene"
)

// minWindowSize is the smallest window dimension, in device pixels, for
// which a viewport override is applied. Below this the window is treated
// as minimized and the camera renders full-frame.
const minWindowSize = 16

// computeViewport translates the panel layout's UI-space rectangle into a
// camera viewport in device pixels, or nil when no valid override can be
// produced. When panels are hidden the full window is used. An override
// is applied only if the window is at least minWindowSize in both
// dimensions, the rectangle stays within window bounds, and its size is
// strictly positive; otherwise the result is nil so the renderer falls
// back to full-frame instead of receiving an invalid viewport.
func computeViewport(rect ViewportRect, panelsVisible bool, winW, winH int, scale float64) *scene.Viewport {
	if winW < minWindowSize || winH < minWindowSize {
		return nil
	}

	if !panelsVisible {
		return &scene.Viewport{X: 0, Y: 0, W: winW, H: winH}
	}

	x := int(float64(rect.MinX) * scale)
	y := int(float64(rect.MinY) * scale)
	w := int(float64(rect.Width()) * scale)
	h := int(float64(rect.Height()) * scale)

	if w <= 0 || h <= 0 {
		return nil
	}
	if x < 0 || y < 0 || x+w > winW || y+h > winH {
		return nil
	}

	return &scene.Viewport{X: x, Y: y, W: w, H: h}
}

// ViewportSystem reconciles the mirrored panel rectangle onto every main
// camera once per frame, after the panel system has rendered. It reads
// the mirror rather than the live UI state so it never observes a
// half-updated rectangle.
type ViewportSystem struct {
	Enabled  ecs.Singleton[Enabled]
	Viewport ecs.Singleton[ViewportState]

	Cameras ecs.Query[struct {
		Camera *scene.Camera
		Main   *scene.MainCamera
	}]

	// UIScale multiplies the OS device scale factor; hosts that render
	// imgui at a custom scale set it through Config.
	UIScale float64
}

func (s *ViewportSystem) Execute(frame *ecs.UpdateFrame) {
	ww, wh := ebiten.WindowSize()
	deviceScale := ebiten.Monitor().DeviceScaleFactor()
	winW := int(float64(ww) * deviceScale)
	winH := int(float64(wh) * deviceScale)
	scale := deviceScale * s.UIScale

	viewport := computeViewport(s.Viewport.Get().Rect, s.Enabled.Get().Visible, winW, winH, scale)

	for _, cam := range s.Cameras.Iter() {
		if viewport == nil {
			cam.Camera.Viewport = nil
			continue
		}
		v := *viewport
		cam.Camera.Viewport = &v
	}
}

// PointerOverPanels reports whether the cursor currently sits on panel
// chrome rather than the live scene. Hosts use it to gate their own
// click and drag handling. Always false while panels are hidden.
func PointerOverPanels(world ecs.WorldView) bool {
	var enabled *Enabled
	if !world.ReadSingleton(&enabled) || !enabled.Visible {
		return false
	}

	var vs *ViewportState
	if !world.ReadSingleton(&vs) {
		return false
	}

	cx, cy := ebiten.CursorPosition()
	return !vs.Rect.Contains(float32(cx), float32(cy))
}
