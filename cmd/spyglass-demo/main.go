package main

import (
	"flag"
	"fmt"
	"math/rand/v2"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/plus3/spyglass/assets"
	"github.com/plus3/spyglass/ecs"
	"github.com/plus3/spyglass/inspector"
	inspector_ebiten "github.com/plus3/spyglass/inspector/ebiten"
	"github.com/plus3/spyglass/internal/logger"
	"github.com/plus3/spyglass/scene"
)

const (
	ScreenWidth  = 1280
	ScreenHeight = 720
)

func main() {
	critterCount := flag.Int("critters", 40, "The number of wandering critters to spawn.")
	seed := flag.Int64("seed", 0, "Terrain seed; 0 picks a random one.")
	debug := flag.Bool("debug", false, "Enable debug logging.")
	flag.Parse()

	if err := logger.Init(*debug); err != nil {
		panic(err)
	}

	if *seed == 0 {
		*seed = rand.Int64()
	}

	backend := inspector_ebiten.NewBackend()
	backend.CreateWindow("Spyglass Demo", ScreenWidth, ScreenHeight)
	imgui.CurrentIO().SetIniFilename("")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[scene.Name](registry)
	ecs.RegisterComponent[scene.Transform](registry)
	ecs.RegisterComponent[scene.Sprite](registry)
	ecs.RegisterComponent[scene.Pickable](registry)
	ecs.RegisterComponent[scene.Camera](registry)
	ecs.RegisterComponent[scene.MainCamera](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Terrain](registry)

	storage := ecs.NewStorage(registry)

	store := assets.NewStore()
	loadAssets(store)
	storage.AddSingleton(*store)
	storage.AddSingleton(WorldConfig{Seed: *seed, CritterCount: *critterCount})

	storage.Spawn(
		scene.Name("Main Camera"),
		scene.Camera{X: -100, Y: -80, Zoom: 1.5, Order: 0},
		scene.MainCamera{},
	)

	generateWorld(storage, store, *seed, *critterCount)

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&MovementSystem{})
	scheduler.Register(&CameraControlSystem{})

	tabs := inspector.NewTabRegistry()
	tabs.RegisterAnalytics("world-stats", "World Stats", renderWorldStats)
	tabs.RegisterInteractive("spawner", "Spawner", makeSpawnerTab(store))
	tabs.RegisterAnalytics("systems", "Systems", makeSystemStatsTab(scheduler))

	inspector.Install(storage, scheduler, tabs, inspector.DefaultConfig())

	renderSystem := &RenderSystem{}

	game := &Game{
		storage:      storage,
		scheduler:    scheduler,
		renderSystem: renderSystem,
		backend:      backend,
	}

	if err := ebiten.RunGame(game); err != nil {
		logger.Log.Fatal("game exited", zap.Error(err))
	}
}

// Game wires the scheduler and the imgui backend into the ebiten loop.
type Game struct {
	storage      *ecs.Storage
	scheduler    *ecs.Scheduler
	renderSystem *RenderSystem
	backend      inspector_ebiten.Backend
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	g.backend.BeginFrame()
	g.scheduler.Once(1.0 / 60.0)
	g.backend.EndFrame()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderSystem.Draw(screen, g.storage)
	inspector.DrawSelectionMarkers(screen, g.storage)
	g.backend.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.backend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// renderWorldStats is a read-only custom tab summarizing the world.
func renderWorldStats(world ecs.WorldView) {
	stats := world.CollectStats()
	imgui.Text(fmt.Sprintf("Entities: %d", stats.TotalEntityCount))
	imgui.Text(fmt.Sprintf("Archetypes: %d", stats.ArchetypeCount))
	for _, arch := range stats.ArchetypeBreakdown {
		imgui.BulletText(fmt.Sprintf("0x%X: %d entities", arch.ID, arch.EntityCount))
	}
}

// makeSpawnerTab returns an interactive tab that drops new critters into
// the world at random positions.
func makeSpawnerTab(store *assets.Store) inspector.InteractiveFunc {
	return func(world *ecs.Storage) {
		imgui.Text("Spawn a wandering critter")
		if imgui.Button("Spawn") {
			spawnCritter(world, store, rand.Float32()*800-400, rand.Float32()*600-300)
		}
	}
}

// makeSystemStatsTab returns a read-only tab showing scheduler timings.
func makeSystemStatsTab(scheduler *ecs.Scheduler) inspector.AnalyticsFunc {
	return func(world ecs.WorldView) {
		stats := scheduler.GetStats()
		for _, sys := range stats.Systems {
			imgui.Text(fmt.Sprintf("%-24s avg %8s  last %8s", sys.Name, sys.AvgDuration, sys.LastDuration))
		}
	}
}
