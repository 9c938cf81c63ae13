package inspector

import (
	"reflect"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/spyglass/ecs"
	"github.com/plus3/spyglass/scene"
)

var pickableType = reflect.TypeFor[scene.Pickable]()

// defaultPickSize is the fallback bounding box edge, in world units, for
// pickable sprites with no size override and no image.
const defaultPickSize = 32

// AutoPickableSystem tags every sprite entity that carries no Pickable
// yet, so anything the scene renders can be click-selected without
// per-spawn bookkeeping. Installed by default; hosts that want manual
// control set Config.DisableAutoPickable and add Pickable themselves.
type AutoPickableSystem struct {
	Sprites ecs.Query[struct {
		Transform *scene.Transform
		Sprite    *scene.Sprite
	}]
}

func (s *AutoPickableSystem) Execute(frame *ecs.UpdateFrame) {
	for id := range s.Sprites.Iter() {
		if frame.Storage.HasComponent(id, pickableType) {
			continue
		}
		// Queued, not applied directly: adding a component migrates the
		// entity, which would invalidate ids mid-iteration.
		frame.Commands.AddComponent(id, scene.Pickable{})
	}
}

// pickCandidate is one pickable object flattened for hit-testing.
type pickCandidate struct {
	ID      ecs.EntityId
	X, Y, Z float32
	W, H    float32
}

// pickTopmost returns the candidate under the world-space point with the
// greatest Z value. Bounds are centered on the candidate's position and
// boundary hits count. Ties keep the earlier candidate.
func pickTopmost(candidates []pickCandidate, wx, wy float32) (ecs.EntityId, bool) {
	best := -1
	var bestZ float32

	for i, c := range candidates {
		halfW, halfH := c.W/2, c.H/2
		if wx < c.X-halfW || wx > c.X+halfW || wy < c.Y-halfH || wy > c.Y+halfH {
			continue
		}
		if best == -1 || c.Z > bestZ {
			best = i
			bestZ = c.Z
		}
	}

	if best == -1 {
		return 0, false
	}
	return candidates[best].ID, true
}

// resolvePickSize determines a sprite's hit box: the explicit size
// override wins, then the image's natural size, then defaultPickSize.
// The sprite's scale applies to all three.
func resolvePickSize(sprite *scene.Sprite) (float32, float32) {
	w, h := float32(defaultPickSize), float32(defaultPickSize)

	switch {
	case sprite == nil:
		return w, h
	case sprite.Size.IsSet():
		w, h = sprite.Size.W, sprite.Size.H
	case sprite.Image != nil:
		bounds := sprite.Image.Bounds()
		w, h = float32(bounds.Dx()), float32(bounds.Dy())
	}

	if sprite.Scale > 0 {
		w *= sprite.Scale
		h *= sprite.Scale
	}
	return w, h
}

// PickingSystem maps a primary click on the live scene to the topmost
// pickable entity under the cursor. It runs after the viewport systems
// so the panel rectangle it consults is current for this frame.
type PickingSystem struct {
	Enabled ecs.Singleton[Enabled]
	UI      ecs.Singleton[UIState]

	Cameras ecs.Query[struct {
		Camera *scene.Camera
	}]
	Pickables ecs.Query[struct {
		Transform *scene.Transform
		Sprite    *scene.Sprite
		Pickable  *scene.Pickable
	}]
}

func (s *PickingSystem) Execute(frame *ecs.UpdateFrame) {
	if !s.Enabled.Get().Visible {
		return
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}

	// Precondition chain, each an early exit: click landed on a panel,
	// no scene camera, no usable cursor position, nothing hit.
	if PointerOverPanels(frame.Storage) {
		return
	}

	var camera *scene.Camera
	for _, cam := range s.Cameras.Iter() {
		if cam.Camera.Order >= 0 {
			camera = cam.Camera
			break
		}
	}
	if camera == nil {
		return
	}

	cx, cy := ebiten.CursorPosition()
	ww, wh := ebiten.WindowSize()
	if cx < 0 || cy < 0 || cx > ww || cy > wh {
		return
	}

	sx, sy := float32(cx), float32(cy)
	if camera.Viewport != nil {
		deviceScale := float32(ebiten.Monitor().DeviceScaleFactor())
		sx -= float32(camera.Viewport.X) / deviceScale
		sy -= float32(camera.Viewport.Y) / deviceScale
	}

	wx, wy, ok := camera.ScreenToWorld(sx, sy)
	if !ok {
		return
	}

	var candidates []pickCandidate
	for id, p := range s.Pickables.Iter() {
		w, h := resolvePickSize(p.Sprite)
		candidates = append(candidates, pickCandidate{
			ID: id,
			X:  p.Transform.X,
			Y:  p.Transform.Y,
			Z:  p.Transform.Z,
			W:  w,
			H:  h,
		})
	}

	winner, hit := pickTopmost(candidates, wx, wy)
	if !hit {
		return
	}

	additive := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyShift)
	ui := s.UI.Get()
	ui.Selected.SelectOrToggle(frame.Storage, winner, additive)
	ui.Selection = EntitiesSelection()
}
