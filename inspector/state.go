// Package inspector provides a dockable developer panel overlay for a
// running ECS world: entity hierarchy browsing with search, a reflection
// component inspector, resource and asset browsers, performance
// diagnostics, click-to-select entity picking, and automatic camera
// viewport clipping so the live scene keeps rendering in the screen region
// not covered by panels. Hosts can register additional read-only
// (analytics) or mutating (interactive) tabs.
package inspector

import (
	"reflect"

	"github.com/chewxy/math32"

	"github.com/plus3/spyglass/assets"
	"github.com/plus3/spyglass/ecs"
)

// Enabled is the singleton flag controlling panel visibility.
// Defaults to visible; flipped only by the toggle system.
type Enabled struct {
	Visible bool
}

// ViewportRect is the screen region currently occupied by the live scene,
// in UI (logical pixel) coordinates: everything NOT covered by panels.
type ViewportRect struct {
	MinX, MinY float32
	MaxX, MaxY float32
}

// DefaultViewportRect returns the pre-first-frame rectangle. It contains
// every point so input routing never blocks clicks before the panel
// system has produced a real rectangle.
func DefaultViewportRect() ViewportRect {
	return ViewportRect{
		MinX: 0,
		MinY: 0,
		MaxX: math32.MaxFloat32,
		MaxY: math32.MaxFloat32,
	}
}

// Contains reports whether the point lies inside the rectangle.
// Boundary values are inside.
func (r ViewportRect) Contains(x, y float32) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

// Width returns the rectangle's horizontal extent.
func (r ViewportRect) Width() float32 { return r.MaxX - r.MinX }

// Height returns the rectangle's vertical extent.
func (r ViewportRect) Height() float32 { return r.MaxY - r.MinY }

// ViewportState is the plain-data mirror of the UI-space viewport
// rectangle, refreshed by the panel system once per frame after layout
// rendering. Input-routing code outside the render pass reads this copy.
type ViewportState struct {
	Rect ViewportRect
}

// SelectionKind discriminates the Selection union.
type SelectionKind int

const (
	// SelectionEntities means the multi-select set holds the target(s).
	SelectionEntities SelectionKind = iota
	// SelectionResource targets a singleton by type.
	SelectionResource
	// SelectionAsset targets one stored asset by typed handle.
	SelectionAsset
)

// Selection is what the Inspector tab currently shows: the multi-select
// entity set, a resource, or an asset. Exactly one variant is active.
// The zero value is the Entities variant, and two Selections are equal
// under == when they carry the same variant and payload.
type Selection struct {
	Kind SelectionKind

	// Resource and Asset payloads. Unused fields stay zero so that
	// equality between same-variant selections behaves as expected.
	Type   reflect.Type
	Name   string
	Handle assets.UntypedHandle
}

// EntitiesSelection returns the Entities variant.
func EntitiesSelection() Selection {
	return Selection{Kind: SelectionEntities}
}

// ResourceSelection returns a selection targeting a singleton type.
func ResourceSelection(typ reflect.Type, name string) Selection {
	return Selection{Kind: SelectionResource, Type: typ, Name: name}
}

// AssetSelection returns a selection targeting a stored asset.
func AssetSelection(typ reflect.Type, name string, handle assets.UntypedHandle) Selection {
	return Selection{Kind: SelectionAsset, Type: typ, Name: name, Handle: handle}
}

// SelectedEntities is the ordered multi-select set. Entries hold EntityRefs
// rather than raw ids: the storage re-points a ref when its entity migrates
// between archetypes and zeroes it on despawn, so a slot id recycled by a
// later spawn can never silently re-enter the set. Order is insertion
// order, which keeps snapshots and marker drawing deterministic.
type SelectedEntities struct {
	refs []*ecs.EntityRef
}

// NewSelectedEntities returns an empty set.
func NewSelectedEntities() *SelectedEntities {
	return &SelectedEntities{}
}

// Select replaces the whole set with the single given entity. Selecting a
// dead id leaves the set empty.
func (s *SelectedEntities) Select(world *ecs.Storage, id ecs.EntityId) {
	s.Clear()
	if ref := world.CreateEntityRef(id); ref != nil {
		s.refs = append(s.refs, ref)
	}
}

// Toggle adds the entity if absent or removes it if present. Dead ids are
// ignored.
func (s *SelectedEntities) Toggle(world *ecs.Storage, id ecs.EntityId) {
	for i, ref := range s.refs {
		if ref.Id != 0 && ref.Id == id {
			s.refs = append(s.refs[:i], s.refs[i+1:]...)
			return
		}
	}
	if ref := world.CreateEntityRef(id); ref != nil {
		s.refs = append(s.refs, ref)
	}
}

// SelectOrToggle toggles when additive is set (modifier key held),
// otherwise replaces the set with just this entity.
func (s *SelectedEntities) SelectOrToggle(world *ecs.Storage, id ecs.EntityId, additive bool) {
	if additive {
		s.Toggle(world, id)
	} else {
		s.Select(world, id)
	}
}

// Contains reports whether the entity is currently selected. Ids are
// matched against each entry's live identity, so an id reused by a later
// spawn does not count as selected.
func (s *SelectedEntities) Contains(id ecs.EntityId) bool {
	for _, ref := range s.refs {
		if ref.Id != 0 && ref.Id == id {
			return true
		}
	}
	return false
}

// Len returns the number of selected entities still alive.
func (s *SelectedEntities) Len() int {
	n := 0
	for _, ref := range s.refs {
		if ref.Id != 0 {
			n++
		}
	}
	return n
}

// Live drops entries whose entity has despawned and returns the current
// ids of the rest, in insertion order. A returned id can differ from the
// one the entity was selected under when components were added or removed
// since.
func (s *SelectedEntities) Live() []ecs.EntityId {
	kept := s.refs[:0]
	for _, ref := range s.refs {
		if ref.Id != 0 {
			kept = append(kept, ref)
		}
	}
	for i := len(kept); i < len(s.refs); i++ {
		s.refs[i] = nil
	}
	s.refs = kept

	out := make([]ecs.EntityId, len(kept))
	for i, ref := range kept {
		out[i] = ref.Id
	}
	return out
}

// Clear empties the set.
func (s *SelectedEntities) Clear() {
	for i := range s.refs {
		s.refs[i] = nil
	}
	s.refs = s.refs[:0]
}

// UIState is the live panel state: the dock tree, the UI-space viewport
// rectangle, the current selection, and the custom tabs taken from the
// registry at startup. Stored as a singleton and mutated only by the
// panel system's per-frame pass.
type UIState struct {
	Tree         *DockTree
	ViewportRect ViewportRect
	Selection    Selection
	Selected     *SelectedEntities
	Search       string
	Frames       *FrameHistory

	customTabs []InspectorTab
}

// NewUIState creates panel state with an empty single-leaf layout.
// Call BuildDefaultLayout (or set Tree directly) before first render.
func NewUIState() *UIState {
	return &UIState{
		Tree:         NewLeaf(TabFromBuiltin(TabGameView)),
		ViewportRect: DefaultViewportRect(),
		Selection:    EntitiesSelection(),
		Selected:     NewSelectedEntities(),
		Frames:       NewFrameHistory(120),
	}
}

// SetCustomTabs installs the custom tabs the dock dispatches Custom(i)
// identifiers to. Ownership passes to the UIState.
func (u *UIState) SetCustomTabs(tabs []InspectorTab) {
	u.customTabs = tabs
}

// CustomTabCount returns how many custom tabs are installed.
func (u *UIState) CustomTabCount() int { return len(u.customTabs) }
