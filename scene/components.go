// Package scene defines the renderable component vocabulary shared between
// a host game and the spyglass inspector: transforms, sprites, names, and
// cameras. Hosts register these alongside their own components; the
// inspector's picking and viewport systems only understand entities built
// from them.
package scene

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Name is an optional human-readable label component.
type Name string

// Transform places an entity in world space. Z orders overlapping sprites:
// higher values draw later and win picking ties.
type Transform struct {
	X, Y float32
	Z    float32
}

// Sprite is a drawable image anchored at the entity's transform.
// Size, when positive, overrides the image's natural dimensions.
type Sprite struct {
	Image *ebiten.Image
	Size  SizeOverride
	Scale float32
}

// SizeOverride is an optional explicit sprite size in world units.
// The zero value means "use the image's natural size".
type SizeOverride struct {
	W, H float32
}

// IsSet reports whether the override carries usable dimensions.
func (o SizeOverride) IsSet() bool {
	return o.W > 0 && o.H > 0
}

// Pickable marks an entity as a candidate for click selection.
type Pickable struct{}

// MainCamera marks the camera whose viewport the inspector manages.
type MainCamera struct{}
