package inspector

import (
	"go.uber.org/zap"

	"github.com/plus3/spyglass/ecs"
	"github.com/plus3/spyglass/internal/logger"
)

// DockPosition is a tab's preferred placement in the default layout.
type DockPosition int

const (
	// DockBottom is the default position.
	DockBottom DockPosition = iota
	DockLeft
	DockRight
	DockCenter
)

// InspectorTab is the contract every panel satisfies, built-in or
// host-registered. Implementations own their state privately; the dock
// tree stores only Tab identifiers, never the implementation.
type InspectorTab interface {
	// ID is a stable identifier for the tab. Uniqueness is not enforced;
	// two registrations with the same id produce two independent tabs.
	ID() string

	// Title is the display string shown in the tab header.
	Title() string

	// Render draws the tab body. Called once per frame while the tab is
	// the active one in its dock leaf, strictly sequenced with all other
	// tabs. Adapters built with NewAnalyticsTab narrow the world to its
	// read-only view before the closure sees it.
	Render(world *ecs.Storage)

	// DockPosition is the preferred placement in the default layout.
	DockPosition() DockPosition

	// IsVisible lets a tab opt out for world states it was not designed
	// for; the dock renders a neutral placeholder instead of the body.
	IsVisible(world ecs.WorldView) bool
}

// AnalyticsFunc renders a read-only tab. The WorldView parameter cannot
// issue structural mutations.
type AnalyticsFunc func(world ecs.WorldView)

// InteractiveFunc renders a tab with full world access.
type InteractiveFunc func(world *ecs.Storage)

// analyticsTab adapts a read-only closure to the tab contract.
type analyticsTab struct {
	id       string
	title    string
	position DockPosition
	render   AnalyticsFunc
}

func (t *analyticsTab) ID() string                   { return t.id }
func (t *analyticsTab) Title() string                { return t.title }
func (t *analyticsTab) Render(world *ecs.Storage)    { t.render(world) }
func (t *analyticsTab) DockPosition() DockPosition   { return t.position }
func (t *analyticsTab) IsVisible(ecs.WorldView) bool { return true }

// interactiveTab adapts a mutating closure to the tab contract.
type interactiveTab struct {
	id       string
	title    string
	position DockPosition
	render   InteractiveFunc
}

func (t *interactiveTab) ID() string                   { return t.id }
func (t *interactiveTab) Title() string                { return t.title }
func (t *interactiveTab) Render(world *ecs.Storage)    { t.render(world) }
func (t *interactiveTab) DockPosition() DockPosition   { return t.position }
func (t *interactiveTab) IsVisible(ecs.WorldView) bool { return true }

// NewAnalyticsTab wraps a read-only render closure as a tab docked at the
// default (bottom) position.
func NewAnalyticsTab(id, title string, render AnalyticsFunc) InspectorTab {
	return NewAnalyticsTabAt(id, title, DockBottom, render)
}

// NewAnalyticsTabAt wraps a read-only render closure with an explicit
// preferred dock position.
func NewAnalyticsTabAt(id, title string, position DockPosition, render AnalyticsFunc) InspectorTab {
	return &analyticsTab{id: id, title: title, position: position, render: render}
}

// NewInteractiveTab wraps a mutating render closure as a tab docked at
// the default (bottom) position.
func NewInteractiveTab(id, title string, render InteractiveFunc) InspectorTab {
	return NewInteractiveTabAt(id, title, DockBottom, render)
}

// NewInteractiveTabAt wraps a mutating render closure with an explicit
// preferred dock position.
func NewInteractiveTabAt(id, title string, position DockPosition, render InteractiveFunc) InspectorTab {
	return &interactiveTab{id: id, title: title, position: position, render: render}
}

// TabRegistry collects custom tabs during host startup. Registration is
// valid only before the one-time hand-off to the dock layout (Take);
// afterwards the registry is sealed and late registrations are dropped
// with a warning.
type TabRegistry struct {
	tabs   []InspectorTab
	sealed bool
}

// NewTabRegistry returns an empty registry.
func NewTabRegistry() *TabRegistry {
	return &TabRegistry{}
}

// Register appends a tab. Duplicate ids are allowed and produce two
// independent tabs.
func (r *TabRegistry) Register(tab InspectorTab) {
	if r.sealed {
		logger.Log.Warn("inspector tab registered after layout build; dropped",
			zap.String("id", tab.ID()))
		return
	}
	r.tabs = append(r.tabs, tab)
}

// RegisterAnalytics wraps and registers a read-only closure tab.
func (r *TabRegistry) RegisterAnalytics(id, title string, render AnalyticsFunc) {
	r.Register(NewAnalyticsTab(id, title, render))
}

// RegisterInteractive wraps and registers a mutating closure tab.
func (r *TabRegistry) RegisterInteractive(id, title string, render InteractiveFunc) {
	r.Register(NewInteractiveTab(id, title, render))
}

// Tabs returns the registered tabs. Nil after Take.
func (r *TabRegistry) Tabs() []InspectorTab { return r.tabs }

// Len returns the number of registered tabs.
func (r *TabRegistry) Len() int { return len(r.tabs) }

// IsEmpty reports whether no tabs are registered.
func (r *TabRegistry) IsEmpty() bool { return len(r.tabs) == 0 }

// Take moves the tab collection out of the registry and seals it.
// Called exactly once, when the dock layout is first built.
func (r *TabRegistry) Take() []InspectorTab {
	tabs := r.tabs
	r.tabs = nil
	r.sealed = true
	return tabs
}

// BuiltinTab enumerates the six panels the inspector ships with.
type BuiltinTab int

const (
	// TabGameView is the live scene passthrough; it only measures the
	// screen space the scene may occupy.
	TabGameView BuiltinTab = iota
	// TabHierarchy browses and searches all live entities.
	TabHierarchy
	// TabInspector shows the current selection through reflection.
	TabInspector
	// TabResources lists all registered singletons.
	TabResources
	// TabAssets lists all loaded asset handles.
	TabAssets
	// TabDiagnostics shows FPS, frame time, and entity counts.
	TabDiagnostics
)

// Title returns the display name used in the tab header.
func (b BuiltinTab) Title() string {
	switch b {
	case TabGameView:
		return "Game"
	case TabHierarchy:
		return "Hierarchy"
	case TabInspector:
		return "Inspector"
	case TabResources:
		return "Resources"
	case TabAssets:
		return "Assets"
	case TabDiagnostics:
		return "Diagnostics"
	}
	return "Unknown"
}

// TabKind discriminates the Tab union.
type TabKind int

const (
	// TabKindBuiltin identifies one of the six fixed panels.
	TabKindBuiltin TabKind = iota
	// TabKindCustom indexes into the custom tab list by registration order.
	TabKindCustom
)

// Tab is the lightweight identifier stored in dock tree leaves: either a
// built-in kind or an index into the custom tab list. Comparable with ==.
type Tab struct {
	Kind    TabKind
	Builtin BuiltinTab
	Custom  int
}

// TabFromBuiltin wraps a built-in kind as a Tab identifier.
func TabFromBuiltin(b BuiltinTab) Tab {
	return Tab{Kind: TabKindBuiltin, Builtin: b}
}

// TabFromCustom wraps a custom tab index as a Tab identifier.
func TabFromCustom(index int) Tab {
	return Tab{Kind: TabKindCustom, Custom: index}
}
