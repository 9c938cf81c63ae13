package inspector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/spyglass/scene"
)

func TestComputeViewportAppliesFittingRect(t *testing.T) {
	rect := ViewportRect{MinX: 100, MinY: 50, MaxX: 500, MaxY: 450}

	v := computeViewport(rect, true, 800, 600, 1)
	require.NotNil(t, v)
	assert.Equal(t, &scene.Viewport{X: 100, Y: 50, W: 400, H: 400}, v)
}

func TestComputeViewportScalesByFactor(t *testing.T) {
	rect := ViewportRect{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100}

	v := computeViewport(rect, true, 400, 400, 2)
	require.NotNil(t, v)
	assert.Equal(t, &scene.Viewport{X: 0, Y: 0, W: 200, H: 200}, v)
}

func TestComputeViewportClearsWhenExceedingWindow(t *testing.T) {
	// 900 wide inside an 800-wide window: cleared, never clamped.
	rect := ViewportRect{MinX: 0, MinY: 0, MaxX: 900, MaxY: 600}

	assert.Nil(t, computeViewport(rect, true, 800, 600, 1))
}

func TestComputeViewportClearsOnMinimizedWindow(t *testing.T) {
	rect := ViewportRect{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100}

	assert.Nil(t, computeViewport(rect, true, 8, 600, 1))
	assert.Nil(t, computeViewport(rect, true, 800, 8, 1))
}

func TestComputeViewportClearsOnDegenerateRect(t *testing.T) {
	empty := ViewportRect{MinX: 50, MinY: 50, MaxX: 50, MaxY: 200}
	assert.Nil(t, computeViewport(empty, true, 800, 600, 1))

	inverted := ViewportRect{MinX: 200, MinY: 50, MaxX: 100, MaxY: 200}
	assert.Nil(t, computeViewport(inverted, true, 800, 600, 1))
}

func TestComputeViewportFullWindowWhenHidden(t *testing.T) {
	// With panels hidden the rect is irrelevant; the full window wins.
	rect := ViewportRect{MinX: 100, MinY: 100, MaxX: 200, MaxY: 200}

	v := computeViewport(rect, false, 800, 600, 1)
	require.NotNil(t, v)
	assert.Equal(t, &scene.Viewport{X: 0, Y: 0, W: 800, H: 600}, v)
}

func TestComputeViewportHiddenStillGuardsMinimized(t *testing.T) {
	rect := DefaultViewportRect()
	assert.Nil(t, computeViewport(rect, false, 4, 4, 1))
}
