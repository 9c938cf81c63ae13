package inspector

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/chewxy/math32"
)

// SplitAxis is the direction a dock node divides its region.
type SplitAxis int

const (
	// SplitHorizontal places child A left of child B.
	SplitHorizontal SplitAxis = iota
	// SplitVertical places child A above child B.
	SplitVertical
)

// DockNode is one region of the dock tree: either a leaf holding an
// ordered group of tab identifiers, or a split holding two children and
// the ratio of the region given to the first child.
type DockNode struct {
	// Leaf fields.
	Tabs []Tab

	// Split fields.
	Axis  SplitAxis
	Ratio float32
	A, B  *DockNode
}

// IsLeaf reports whether the node holds tabs rather than children.
func (n *DockNode) IsLeaf() bool { return n.A == nil }

// DockTree is the binary split layout. It stores only Tab identifiers;
// tab behavior lives in the UIState's tab lists, so the tree can be
// rebuilt or cloned without touching behavior ownership.
type DockTree struct {
	Root *DockNode
}

// NewLeaf returns a tree consisting of a single tab group.
func NewLeaf(tabs ...Tab) *DockTree {
	return &DockTree{Root: &DockNode{Tabs: tabs}}
}

// LayoutRatios are the split proportions of the default layout. They are
// a policy default, not a correctness constraint.
type LayoutRatios struct {
	// Center is the width share kept by the main area when the inspector
	// column splits off to the right.
	Center float32
	// Left is the width share of the diagnostics/hierarchy column.
	Left float32
	// LeftSplit is the height share diagnostics keeps within that column.
	LeftSplit float32
	// Main is the height share the game view keeps above the bottom
	// assets strip.
	Main float32
}

// DefaultLayoutRatios returns the stock proportions.
func DefaultLayoutRatios() LayoutRatios {
	return LayoutRatios{Center: 0.8, Left: 0.2, LeftSplit: 0.2, Main: 0.8}
}

// BuildDefaultLayout constructs the fixed startup layout:
//
//	+------+----------------+-----------+
//	| Diag |                |           |
//	+------+    Game        | Inspector |
//	| Hier |                |           |
//	| /Res +----------------+           |
//	|      | Assets+Custom  |           |
//	+------+----------------+-----------+
//
// Custom tabs are appended to the bottom group after Assets, one per
// registration, in registration order.
func BuildDefaultLayout(customTabCount int, ratios LayoutRatios) *DockTree {
	bottomTabs := []Tab{TabFromBuiltin(TabAssets)}
	for i := 0; i < customTabCount; i++ {
		bottomTabs = append(bottomTabs, TabFromCustom(i))
	}

	center := &DockNode{
		Axis:  SplitVertical,
		Ratio: ratios.Main,
		A:     &DockNode{Tabs: []Tab{TabFromBuiltin(TabGameView)}},
		B:     &DockNode{Tabs: bottomTabs},
	}

	leftColumn := &DockNode{
		Axis:  SplitVertical,
		Ratio: ratios.LeftSplit,
		A:     &DockNode{Tabs: []Tab{TabFromBuiltin(TabDiagnostics)}},
		B: &DockNode{Tabs: []Tab{
			TabFromBuiltin(TabHierarchy),
			TabFromBuiltin(TabResources),
		}},
	}

	main := &DockNode{
		Axis:  SplitHorizontal,
		Ratio: ratios.Left,
		A:     leftColumn,
		B:     center,
	}

	root := &DockNode{
		Axis:  SplitHorizontal,
		Ratio: ratios.Center,
		A:     main,
		B:     &DockNode{Tabs: []Tab{TabFromBuiltin(TabInspector)}},
	}

	return &DockTree{Root: root}
}

// Leaves returns the tree's leaf nodes in depth-first (A before B) order.
func (t *DockTree) Leaves() []*DockNode {
	var leaves []*DockNode
	var walk func(n *DockNode)
	walk = func(n *DockNode) {
		if n == nil {
			return
		}
		if n.IsLeaf() {
			leaves = append(leaves, n)
			return
		}
		walk(n.A)
		walk(n.B)
	}
	walk(t.Root)
	return leaves
}

// dockRect is a solved screen rectangle in UI coordinates.
type dockRect struct {
	x, y, w, h float32
}

// splitterThickness is the gap, in logical pixels, between sibling
// regions; it doubles as the drag handle for resizing.
const splitterThickness = 4.0

const minSplitRatio = 0.05
const maxSplitRatio = 0.95

// solveLeafRects computes the rectangle of every leaf for the given
// display region, in the same depth-first order as Leaves. Pure geometry;
// exercised directly by tests.
func solveLeafRects(root *DockNode, region dockRect) []dockRect {
	var rects []dockRect
	var walk func(n *DockNode, r dockRect)
	walk = func(n *DockNode, r dockRect) {
		if n.IsLeaf() {
			rects = append(rects, r)
			return
		}

		a, b := splitRegion(n, r)
		walk(n.A, a)
		walk(n.B, b)
	}
	walk(root, region)
	return rects
}

// splitRegion divides a region between a split node's children, leaving
// the splitter gap between them.
func splitRegion(n *DockNode, r dockRect) (dockRect, dockRect) {
	ratio := clampRatio(n.Ratio)

	if n.Axis == SplitHorizontal {
		aw := math32.Round(r.w*ratio) - splitterThickness/2
		a := dockRect{x: r.x, y: r.y, w: aw, h: r.h}
		b := dockRect{x: r.x + aw + splitterThickness, y: r.y, w: r.w - aw - splitterThickness, h: r.h}
		return a, b
	}

	ah := math32.Round(r.h*ratio) - splitterThickness/2
	a := dockRect{x: r.x, y: r.y, w: r.w, h: ah}
	b := dockRect{x: r.x, y: r.y + ah + splitterThickness, w: r.w, h: r.h - ah - splitterThickness}
	return a, b
}

func clampRatio(ratio float32) float32 {
	if ratio < minSplitRatio {
		return minSplitRatio
	}
	if ratio > maxSplitRatio {
		return maxSplitRatio
	}
	return ratio
}

// renderDock walks the tree, draws one undecorated window per leaf with a
// tab bar, draws the splitter handles, and dispatches tab bodies through
// the viewer. Returns after every visible tab has rendered; the viewer
// has captured the game viewport rectangle by then.
func renderDock(tree *DockTree, viewer *tabViewer) {
	vp := imgui.MainViewport()
	region := dockRect{
		x: vp.Pos().X,
		y: vp.Pos().Y,
		w: vp.Size().X,
		h: vp.Size().Y,
	}

	leafIndex := 0
	var walk func(n *DockNode, r dockRect, path string)
	walk = func(n *DockNode, r dockRect, path string) {
		if n.IsLeaf() {
			renderLeaf(n, r, leafIndex, viewer)
			leafIndex++
			return
		}

		a, b := splitRegion(n, r)
		renderSplitter(n, r, a, path)
		walk(n.A, a, path+"a")
		walk(n.B, b, path+"b")
	}
	walk(tree.Root, region, "r")
}

// renderSplitter draws the invisible drag handle between a split node's
// children and applies drag movement to the node's ratio.
func renderSplitter(n *DockNode, region, a dockRect, path string) {
	var pos, size imgui.Vec2
	if n.Axis == SplitHorizontal {
		pos = imgui.NewVec2(a.x+a.w, region.y)
		size = imgui.NewVec2(splitterThickness, region.h)
	} else {
		pos = imgui.NewVec2(region.x, a.y+a.h)
		size = imgui.NewVec2(region.w, splitterThickness)
	}
	if size.X <= 0 || size.Y <= 0 {
		return
	}

	imgui.SetNextWindowPosV(pos, imgui.CondAlways, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(size, imgui.CondAlways)

	const flags = imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoCollapse |
		imgui.WindowFlagsNoScrollbar | imgui.WindowFlagsNoBackground
	if imgui.BeginV("##splitter:"+path, nil, flags) {
		imgui.InvisibleButtonV("##grip", size, imgui.ButtonFlagsNone)
		if imgui.IsItemActive() {
			delta := imgui.CurrentIO().MouseDelta()
			if n.Axis == SplitHorizontal && region.w > 0 {
				n.Ratio = clampRatio(n.Ratio + delta.X/region.w)
			} else if n.Axis == SplitVertical && region.h > 0 {
				n.Ratio = clampRatio(n.Ratio + delta.Y/region.h)
			}
		}
	}
	imgui.End()
}

// renderLeaf draws one dock region: a fixed undecorated window holding a
// tab bar with the leaf's tab group.
func renderLeaf(n *DockNode, r dockRect, leafIndex int, viewer *tabViewer) {
	if r.w <= 0 || r.h <= 0 || len(n.Tabs) == 0 {
		return
	}

	imgui.SetNextWindowPosV(imgui.NewVec2(r.x, r.y), imgui.CondAlways, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(r.w, r.h), imgui.CondAlways)

	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoCollapse |
		imgui.WindowFlagsNoBringToFrontOnFocus
	if leafHoldsGameView(n) {
		// The scene renders behind the UI; this region must stay
		// transparent for it to show through.
		flags |= imgui.WindowFlagsNoBackground
	}

	name := fmt.Sprintf("##dockleaf:%d", leafIndex)
	if imgui.BeginV(name, nil, flags) {
		if imgui.BeginTabBarV(fmt.Sprintf("##tabs:%d", leafIndex), imgui.TabBarFlagsNone) {
			for _, tab := range n.Tabs {
				label := fmt.Sprintf("%s###%d:%s", viewer.title(tab), leafIndex, tabKey(tab))
				if imgui.BeginTabItemV(label, nil, imgui.TabItemFlagsNone) {
					viewer.render(tab)
					imgui.EndTabItem()
				}
			}
			imgui.EndTabBar()
		}
	}
	imgui.End()
}

func leafHoldsGameView(n *DockNode) bool {
	for _, tab := range n.Tabs {
		if tab.Kind == TabKindBuiltin && tab.Builtin == TabGameView {
			return true
		}
	}
	return false
}

func tabKey(tab Tab) string {
	if tab.Kind == TabKindBuiltin {
		return fmt.Sprintf("b%d", tab.Builtin)
	}
	return fmt.Sprintf("c%d", tab.Custom)
}
