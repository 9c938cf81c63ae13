package inspector

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/spyglass/ecs"
)

// Severity colors shared by the FPS and frame-time read-outs.
var (
	diagGreen  = imgui.NewVec4(0.3, 0.9, 0.3, 1.0)
	diagYellow = imgui.NewVec4(0.9, 0.9, 0.3, 1.0)
	diagRed    = imgui.NewVec4(0.9, 0.3, 0.3, 1.0)
)

// fpsColor classifies a frames-per-second reading: 60 and above is green,
// 30 and above is yellow, anything lower is red.
func fpsColor(fps float64) imgui.Vec4 {
	switch {
	case fps >= 60:
		return diagGreen
	case fps >= 30:
		return diagYellow
	default:
		return diagRed
	}
}

// frameTimeColor classifies a frame duration in milliseconds: up to
// 16.7 ms is green, up to 33.3 ms is yellow, anything slower is red.
// Boundary values take the better color.
func frameTimeColor(ms float64) imgui.Vec4 {
	switch {
	case ms <= 16.7:
		return diagGreen
	case ms <= 33.3:
		return diagYellow
	default:
		return diagRed
	}
}

// FrameHistory is a fixed-size ring of recent frame times in
// milliseconds, feeding the diagnostics plot.
type FrameHistory struct {
	samples []float32
	next    int
	filled  bool
}

// NewFrameHistory creates a ring holding the given number of samples.
func NewFrameHistory(size int) *FrameHistory {
	if size < 1 {
		size = 1
	}
	return &FrameHistory{samples: make([]float32, size)}
}

// Push records one frame time in milliseconds.
func (h *FrameHistory) Push(ms float32) {
	h.samples[h.next] = ms
	h.next++
	if h.next == len(h.samples) {
		h.next = 0
		h.filled = true
	}
}

// Len returns how many samples have been recorded, capped at the ring
// size.
func (h *FrameHistory) Len() int {
	if h.filled {
		return len(h.samples)
	}
	return h.next
}

// Average returns the mean of the recorded samples, or 0 when empty.
func (h *FrameHistory) Average() float32 {
	n := h.Len()
	if n == 0 {
		return 0
	}
	var sum float32
	for _, s := range h.samples[:n] {
		sum += s
	}
	return sum / float32(n)
}

// frameReadout converts the last frame's delta time into the displayed
// instantaneous FPS and frame-time values. ok is false when dt carries no
// signal yet (first frame, paused clock).
func frameReadout(dt float64) (fps, ms float64, ok bool) {
	if dt <= 0 {
		return 0, 0, false
	}
	return 1.0 / dt, dt * 1000.0, true
}

// renderDiagnostics is the performance tab: colored FPS and frame-time
// read-outs, world totals, the frame-time plot, and per-archetype detail.
// The read-outs reflect the last frame alone so a single slow frame shows
// up immediately; the ring only smooths the plot's average line.
func renderDiagnostics(world *ecs.Storage, state *UIState, dt float64) {
	if dt > 0 {
		state.Frames.Push(float32(dt * 1000.0))
	}

	if fps, ms, ok := frameReadout(dt); ok {
		imgui.TextColored(fpsColor(fps), fmt.Sprintf("FPS: %.1f", fps))
		imgui.TextColored(frameTimeColor(ms), fmt.Sprintf("Frame Time: %.2f ms", ms))
	} else {
		imgui.TextDisabled("FPS: --")
		imgui.TextDisabled("Frame Time: --")
	}

	stats := world.CollectStats()
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Total Entities: %d", stats.TotalEntityCount))
	imgui.Text(fmt.Sprintf("Archetypes: %d", stats.ArchetypeCount))
	imgui.Text(fmt.Sprintf("Singletons: %d", stats.SingletonCount))

	if n := state.Frames.Len(); n > 1 {
		imgui.Separator()
		imgui.Text(fmt.Sprintf("Frame Time Graph (avg %.2f ms)", state.Frames.Average()))
		imgui.PlotLinesFloatPtr("##frametime", &state.Frames.samples[0], int32(n))
	}

	if imgui.TreeNodeStr("Archetype Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("ArchStatsTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Archetype ID")
			imgui.TableSetupColumn("Components")
			imgui.TableSetupColumn("Entity Count")
			imgui.TableHeadersRow()

			for _, arch := range stats.ArchetypeBreakdown {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("0x%X", arch.ID))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", len(arch.ComponentTypes)))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", arch.EntityCount))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}
}
