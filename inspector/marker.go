package inspector

import (
	"image/color"
	"reflect"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/spyglass/ecs"
	"github.com/plus3/spyglass/scene"
)

var (
	cameraType    = reflect.TypeFor[scene.Camera]()
	transformType = reflect.TypeFor[scene.Transform]()
)

// Crosshair geometry for selection markers, in logical pixels.
const (
	markerSize        = 20
	markerCircleRatio = 0.7
)

var markerColor = color.RGBA{R: 50, G: 220, B: 50, A: 255}

// DrawSelectionMarkers draws a crosshair over every selected entity that
// still exists and has a transform. Hosts call it from their draw pass,
// after the scene has rendered. Does nothing while panels are hidden.
func DrawSelectionMarkers(screen *ebiten.Image, world ecs.WorldView) {
	var enabled *Enabled
	if !world.ReadSingleton(&enabled) || !enabled.Visible {
		return
	}

	var ui *UIState
	if !world.ReadSingleton(&ui) || ui.Selected.Len() == 0 {
		return
	}

	var camera *scene.Camera
	for _, arch := range world.GetArchetypes() {
		if !arch.HasComponent(cameraType) {
			continue
		}
		for id := range arch.Iter() {
			if cam, ok := world.GetComponent(id, cameraType).(*scene.Camera); ok && cam.Order >= 0 {
				camera = cam
				break
			}
		}
		if camera != nil {
			break
		}
	}
	if camera == nil {
		return
	}

	var offX, offY float32
	if camera.Viewport != nil {
		deviceScale := float32(ebiten.Monitor().DeviceScaleFactor())
		offX = float32(camera.Viewport.X) / deviceScale
		offY = float32(camera.Viewport.Y) / deviceScale
	}

	for _, id := range ui.Selected.Live() {
		t, ok := world.GetComponent(id, transformType).(*scene.Transform)
		if !ok || t == nil {
			continue
		}

		sx, sy := camera.WorldToScreen(t.X, t.Y)
		sx += offX
		sy += offY

		half := float32(markerSize) / 2
		vector.StrokeLine(screen, sx-half, sy, sx+half, sy, 1, markerColor, true)
		vector.StrokeLine(screen, sx, sy-half, sx, sy+half, 1, markerColor, true)
		vector.StrokeCircle(screen, sx, sy, half*markerCircleRatio, 1, markerColor, true)
	}
}
