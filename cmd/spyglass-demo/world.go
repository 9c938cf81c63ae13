package main

import (
	"fmt"
	"image/color"
	"math/rand/v2"

	perlin "github.com/aquilax/go-perlin"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/spyglass/assets"
	"github.com/plus3/spyglass/ecs"
	"github.com/plus3/spyglass/scene"
)

const (
	terrainCols = 48
	terrainRows = 32
	tileSize    = 16
)

// WorldConfig records the demo's generation parameters so they show up
// in the inspector's Resources tab.
type WorldConfig struct {
	Seed         int64
	CritterCount int
}

// Velocity moves a critter in world units per second.
type Velocity struct {
	X, Y float32
}

// Terrain marks static ground tiles so systems can skip them.
type Terrain struct{}

func solidImage(w, h int, c color.RGBA) *ebiten.Image {
	img := ebiten.NewImage(w, h)
	img.Fill(c)
	return img
}

type demoImages struct {
	Grass   assets.Handle[*ebiten.Image]
	Water   assets.Handle[*ebiten.Image]
	Rock    assets.Handle[*ebiten.Image]
	Critter assets.Handle[*ebiten.Image]
}

var images demoImages

func loadAssets(store *assets.Store) {
	images.Grass = assets.Add(store, "grass", solidImage(tileSize, tileSize, color.RGBA{106, 168, 79, 255}))
	images.Water = assets.Add(store, "water", solidImage(tileSize, tileSize, color.RGBA{61, 133, 198, 255}))
	images.Rock = assets.Add(store, "rock", solidImage(tileSize, tileSize, color.RGBA{127, 127, 127, 255}))
	images.Critter = assets.Add(store, "critter", solidImage(12, 12, color.RGBA{230, 145, 56, 255}))
}

// generateWorld lays out perlin-noise terrain tiles and scatters the
// requested number of wandering critters on top.
func generateWorld(storage *ecs.Storage, store *assets.Store, seed int64, critterCount int) {
	noise := perlin.NewPerlin(2, 2, 3, seed)

	for row := 0; row < terrainRows; row++ {
		for col := 0; col < terrainCols; col++ {
			sample := noise.Noise2D(float64(col)/10, float64(row)/10)

			handle := images.Grass
			switch {
			case sample < -0.15:
				handle = images.Water
			case sample > 0.3:
				handle = images.Rock
			}

			img := assets.Get(store, handle)
			if img == nil {
				continue
			}

			storage.Spawn(
				scene.Transform{
					X: float32(col*tileSize) - terrainCols*tileSize/2,
					Y: float32(row*tileSize) - terrainRows*tileSize/2,
					Z: 0,
				},
				scene.Sprite{Image: *img, Scale: 1},
				Terrain{},
			)
		}
	}

	for i := 0; i < critterCount; i++ {
		x := rand.Float32()*terrainCols*tileSize - terrainCols*tileSize/2
		y := rand.Float32()*terrainRows*tileSize - terrainRows*tileSize/2
		spawnCritter(storage, store, x, y)
	}
}

var critterSerial int

func spawnCritter(storage *ecs.Storage, store *assets.Store, x, y float32) {
	img := assets.Get(store, images.Critter)
	if img == nil {
		return
	}

	critterSerial++
	// No explicit Pickable: the inspector's auto-pickable system tags
	// every sprite entity on its first frame.
	storage.Spawn(
		scene.Name(fmt.Sprintf("Critter %d", critterSerial)),
		scene.Transform{X: x, Y: y, Z: 1},
		scene.Sprite{Image: *img, Scale: 1},
		Velocity{
			X: rand.Float32()*40 - 20,
			Y: rand.Float32()*40 - 20,
		},
	)
}
