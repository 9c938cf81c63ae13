package scene

// Viewport is a rectangle in physical (device) pixels of the render target.
type Viewport struct {
	X, Y int
	W, H int
}

// Camera projects world coordinates onto the screen. X, Y is the world
// position visible at the top-left of the camera's view; Zoom scales world
// units to logical pixels. Order decides which camera handles picking:
// cameras with negative order are treated as UI-only overlays and skipped.
//
// Viewport, when non-nil, restricts rendering to a sub-rectangle of the
// window, in device pixels. The inspector's reconciler owns this field for
// cameras tagged MainCamera; hosts should not write it while the inspector
// is installed.
type Camera struct {
	X, Y     float32
	Zoom     float32
	Order    int
	Viewport *Viewport
}

// ScreenToWorld converts a position in logical pixels, relative to the
// camera's visible origin, to world coordinates. Callers whose camera is
// clipped to a sub-rectangle of the window subtract that rectangle's
// origin from the cursor first. Returns false when the camera cannot
// project (zero zoom).
func (c *Camera) ScreenToWorld(sx, sy float32) (float32, float32, bool) {
	if c.Zoom == 0 {
		return 0, 0, false
	}
	return c.X + sx/c.Zoom, c.Y + sy/c.Zoom, true
}

// WorldToScreen converts world coordinates to logical pixels relative to
// the camera's visible origin.
func (c *Camera) WorldToScreen(wx, wy float32) (float32, float32) {
	return (wx - c.X) * c.Zoom, (wy - c.Y) * c.Zoom
}
