package inspector

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/spyglass/ecs"
)

// ToggleSystem flips panel visibility on the configured key. It is the
// only writer of the Enabled flag.
type ToggleSystem struct {
	Key ebiten.Key

	Enabled ecs.Singleton[Enabled]
}

func (s *ToggleSystem) Execute(frame *ecs.UpdateFrame) {
	if inpututil.IsKeyJustPressed(s.Key) {
		enabled := s.Enabled.Get()
		enabled.Visible = !enabled.Visible
	}
}

// PanelSystem renders the dock layout once per frame and then refreshes
// the viewport mirror from the rectangle the GameView tab captured during
// that render. It must run between the imgui backend's BeginFrame and
// EndFrame, before the viewport and picking systems.
type PanelSystem struct {
	Enabled  ecs.Singleton[Enabled]
	UI       ecs.Singleton[UIState]
	Viewport ecs.Singleton[ViewportState]
}

func (s *PanelSystem) Execute(frame *ecs.UpdateFrame) {
	if !s.Enabled.Get().Visible {
		return
	}

	ui := s.UI.Get()
	viewer := &tabViewer{
		world: frame.Storage,
		state: ui,
		dt:    frame.DeltaTime,
	}
	renderDock(ui.Tree, viewer)

	// Mirror once per frame, after layout rendering, so downstream
	// consumers never read a mid-render rectangle.
	s.Viewport.Get().Rect = ui.ViewportRect
}
