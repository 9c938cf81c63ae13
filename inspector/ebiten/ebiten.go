// Package ebiten bridges the Dear ImGui ebiten backend into hosts that
// run the inspector inside an ebiten game loop.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
)

// Backend wraps the ebiten-specific Dear ImGui backend. Store it as a
// singleton and call BeginFrame/EndFrame around the scheduler pass, then
// Draw in the host's draw pass after the scene.
type Backend struct {
	*ebitenbackend.EbitenBackend
}

// NewBackend creates the wrapped backend. The host still owns window
// creation through the embedded EbitenBackend.
func NewBackend() Backend {
	return Backend{EbitenBackend: ebitenbackend.NewEbitenBackend()}
}
