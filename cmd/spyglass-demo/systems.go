package main

import (
	"image"
	"reflect"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/spyglass/ecs"
	"github.com/plus3/spyglass/inspector"
	"github.com/plus3/spyglass/scene"
)

// World bounds the critters bounce inside, in world units.
const (
	worldHalfW = terrainCols * tileSize / 2
	worldHalfH = terrainRows * tileSize / 2
)

// MovementSystem moves critters and bounces them off the world edges.
type MovementSystem struct {
	Critters ecs.Query[struct {
		Transform *scene.Transform
		Velocity  *Velocity
	}]
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	dt := float32(frame.DeltaTime)

	for _, c := range s.Critters.Iter() {
		c.Transform.X += c.Velocity.X * dt
		c.Transform.Y += c.Velocity.Y * dt

		if c.Transform.X < -worldHalfW || c.Transform.X > worldHalfW {
			c.Velocity.X = -c.Velocity.X
		}
		if c.Transform.Y < -worldHalfH || c.Transform.Y > worldHalfH {
			c.Velocity.Y = -c.Velocity.Y
		}
	}
}

// CameraControlSystem pans with a left-button drag and zooms with the
// wheel. Both are suppressed while the cursor is over inspector panels
// so camera input never fights panel interaction.
type CameraControlSystem struct {
	Cameras ecs.Query[struct {
		Camera *scene.Camera
		Main   *scene.MainCamera
	}]

	lastX, lastY int
	dragging     bool
}

func (s *CameraControlSystem) Execute(frame *ecs.UpdateFrame) {
	if inspector.PointerOverPanels(frame.Storage) {
		s.dragging = false
		return
	}

	cx, cy := ebiten.CursorPosition()
	_, wheelY := ebiten.Wheel()

	for _, cam := range s.Cameras.Iter() {
		if wheelY != 0 {
			cam.Camera.Zoom *= 1 + float32(wheelY)*0.1
			if cam.Camera.Zoom < 0.25 {
				cam.Camera.Zoom = 0.25
			}
			if cam.Camera.Zoom > 8 {
				cam.Camera.Zoom = 8
			}
		}

		if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
			if s.dragging && cam.Camera.Zoom != 0 {
				cam.Camera.X -= float32(cx-s.lastX) / cam.Camera.Zoom
				cam.Camera.Y -= float32(cy-s.lastY) / cam.Camera.Zoom
			}
			s.dragging = true
		} else {
			s.dragging = false
		}
	}

	s.lastX, s.lastY = cx, cy
}

var (
	cameraType    = reflect.TypeFor[scene.Camera]()
	transformType = reflect.TypeFor[scene.Transform]()
	spriteType    = reflect.TypeFor[scene.Sprite]()
)

// RenderSystem draws every sprite through the main camera during the
// host draw pass, honoring the viewport the inspector reconciles onto
// the camera.
type RenderSystem struct{}

func (r *RenderSystem) Draw(screen *ebiten.Image, storage *ecs.Storage) {
	camera := findMainCamera(storage)
	if camera == nil {
		return
	}

	target := screen
	var offX, offY float32
	if v := camera.Viewport; v != nil {
		if v.W <= 0 || v.H <= 0 {
			return
		}
		sub := screen.SubImage(image.Rect(v.X, v.Y, v.X+v.W, v.Y+v.H))
		target = sub.(*ebiten.Image)
		offX, offY = float32(v.X), float32(v.Y)
	}

	type drawable struct {
		t      *scene.Transform
		sprite *scene.Sprite
	}
	var items []drawable

	for _, arch := range storage.GetArchetypes() {
		if !arch.HasComponent(transformType) || !arch.HasComponent(spriteType) {
			continue
		}

		for id := range arch.Iter() {
			t, _ := storage.GetComponent(id, transformType).(*scene.Transform)
			sprite, _ := storage.GetComponent(id, spriteType).(*scene.Sprite)
			if t == nil || sprite == nil || sprite.Image == nil {
				continue
			}
			items = append(items, drawable{t: t, sprite: sprite})
		}
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].t.Z < items[j].t.Z })

	for _, item := range items {
		// Sprites are centered on their transform, matching the hit
		// boxes the inspector's picking uses.
		sx, sy := camera.WorldToScreen(item.t.X, item.t.Y)

		scale := item.sprite.Scale
		if scale == 0 {
			scale = 1
		}
		bounds := item.sprite.Image.Bounds()
		halfW := float32(bounds.Dx()) * scale * camera.Zoom / 2
		halfH := float32(bounds.Dy()) * scale * camera.Zoom / 2

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(float64(scale*camera.Zoom), float64(scale*camera.Zoom))
		op.GeoM.Translate(float64(sx+offX-halfW), float64(sy+offY-halfH))
		target.DrawImage(item.sprite.Image, op)
	}
}

func findMainCamera(storage *ecs.Storage) *scene.Camera {
	for _, arch := range storage.GetArchetypes() {
		if !arch.HasComponent(cameraType) {
			continue
		}
		for id := range arch.Iter() {
			if cam, ok := storage.GetComponent(id, cameraType).(*scene.Camera); ok && cam.Order >= 0 {
				return cam
			}
		}
	}
	return nil
}
