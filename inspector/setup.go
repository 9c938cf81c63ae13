package inspector

import (
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/plus3/spyglass/ecs"
	"github.com/plus3/spyglass/internal/logger"
)

// Config controls inspector installation. Zero values are replaced by
// DefaultConfig's choices, so hosts can set only what they care about.
type Config struct {
	// ToggleKey flips panel visibility.
	ToggleKey ebiten.Key

	// UIScale multiplies the OS device scale factor when panel
	// rectangles are converted to camera viewports.
	UIScale float64

	// Ratios are the split proportions of the default layout.
	Ratios LayoutRatios

	// DisableAutoPickable turns off the system that tags every sprite
	// entity with Pickable. When set, only entities spawned with an
	// explicit Pickable respond to click selection.
	DisableAutoPickable bool
}

// DefaultConfig returns the stock configuration: Delete toggles the
// panels and the layout uses the standard split proportions.
func DefaultConfig() Config {
	return Config{
		ToggleKey: ebiten.KeyDelete,
		UIScale:   1.0,
		Ratios:    DefaultLayoutRatios(),
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.ToggleKey == 0 {
		c.ToggleKey = def.ToggleKey
	}
	if c.UIScale == 0 {
		c.UIScale = def.UIScale
	}
	if c.Ratios == (LayoutRatios{}) {
		c.Ratios = def.Ratios
	}
	return c
}

// Install wires the inspector into a host world: it takes ownership of
// the registry's custom tabs, builds the default dock layout, seeds the
// panel singletons, and registers the per-frame systems in their required
// order (toggle, panel render, viewport reconcile, pickable tagging,
// picking).
//
// Call it once at startup, after all custom tabs have been registered.
// The panel system issues imgui calls, so the host must run the
// scheduler between the backend's BeginFrame and EndFrame.
func Install(storage *ecs.Storage, scheduler *ecs.Scheduler, registry *TabRegistry, cfg Config) {
	cfg = cfg.withDefaults()

	tabs := registry.Take()

	ui := NewUIState()
	ui.SetCustomTabs(tabs)
	ui.Tree = BuildDefaultLayout(len(tabs), cfg.Ratios)

	storage.AddSingleton(*ui)
	storage.AddSingleton(Enabled{Visible: true})
	storage.AddSingleton(ViewportState{Rect: DefaultViewportRect()})

	scheduler.Register(&ToggleSystem{Key: cfg.ToggleKey})
	scheduler.Register(&PanelSystem{})
	scheduler.Register(&ViewportSystem{UIScale: cfg.UIScale})
	if !cfg.DisableAutoPickable {
		scheduler.Register(&AutoPickableSystem{})
	}
	scheduler.Register(&PickingSystem{})

	logger.Log.Info("inspector installed",
		zap.Int("customTabs", len(tabs)),
		zap.Bool("autoPickable", !cfg.DisableAutoPickable),
		zap.String("toggleKey", cfg.ToggleKey.String()))
}
