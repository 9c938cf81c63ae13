package inspector

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/spyglass/ecs"
	"github.com/plus3/spyglass/scene"
)

var nameType = reflect.TypeFor[scene.Name]()

// renderHierarchy is the entity browser tab: a search field over all live
// entities, with a grouped-by-archetype tree when the filter is empty and
// a flat result list when it is not.
func renderHierarchy(world *ecs.Storage, state *UIState) {
	imgui.Text("Search:")
	imgui.SameLine()
	imgui.SetNextItemWidth(180)
	imgui.InputTextWithHint("##hierarchy-search", "name or id...", &state.Search, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear") {
		state.Search = ""
	}
	imgui.Separator()

	query := strings.ToLower(strings.TrimSpace(state.Search))
	if query == "" {
		renderArchetypeTree(world, state)
		return
	}

	matches := searchEntities(world, query)
	imgui.Text(fmt.Sprintf("%d results", len(matches)))

	for _, m := range matches {
		label := fmt.Sprintf("%s (%d)##%d", m.DisplayName, m.ID.Index(), m.ID)
		selected := state.Selected.Contains(m.ID)
		if imgui.SelectableBoolV(label, selected, imgui.SelectableFlagsNone, imgui.NewVec2(0, 0)) {
			clickSelect(world, state, m.ID)
		}
	}
}

// renderArchetypeTree is the default, unfiltered browser: entities grouped
// by archetype, one collapsible node per component combination.
func renderArchetypeTree(world *ecs.Storage, state *UIState) {
	archetypes := sortedArchetypes(world)

	for _, archetype := range archetypes {
		typeNames := make([]string, len(archetype.Types()))
		for i, typ := range archetype.Types() {
			typeNames[i] = typ.String()
		}

		header := fmt.Sprintf("%s (%d)##arch%X",
			strings.Join(typeNames, ", "), archetype.EntityCount(), archetype.ID())
		if !imgui.TreeNodeStr(header) {
			continue
		}

		for id := range archetype.Iter() {
			label := fmt.Sprintf("%s (%d)##%d", entityDisplayName(world, id), id.Index(), id)
			selected := state.Selected.Contains(id)
			if imgui.SelectableBoolV(label, selected, imgui.SelectableFlagsNone, imgui.NewVec2(0, 0)) {
				clickSelect(world, state, id)
			}
		}
		imgui.TreePop()
	}
}

// clickSelect applies the hierarchy click rules: plain click replaces the
// multi-select set, ctrl/shift click toggles membership. Either way the
// selection switches to the Entities variant.
func clickSelect(world *ecs.Storage, state *UIState, id ecs.EntityId) {
	additive := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyShift)
	state.Selected.SelectOrToggle(world, id, additive)
	state.Selection = EntitiesSelection()
}

// entityMatch is one search hit.
type entityMatch struct {
	ID          ecs.EntityId
	DisplayName string
}

// searchEntities scans all live entities for a lowercased substring match
// against the Name component and against the entity's raw identity text
// (decimal id, decimal index, hex archetype id). Results are deduplicated
// by id and sorted by display name ascending, with the id as tie-break so
// equal names order deterministically.
func searchEntities(world ecs.WorldView, query string) []entityMatch {
	seen := make(map[ecs.EntityId]bool)
	var matches []entityMatch

	for _, archetype := range world.GetArchetypes() {
		hasName := archetype.HasComponent(nameType)

		for id := range archetype.Iter() {
			var name string
			if hasName {
				if n, ok := archetype.GetComponent(id.Index(), nameType).(*scene.Name); ok && n != nil {
					name = string(*n)
				}
			}

			idText := fmt.Sprintf("%d %d 0x%x", id, id.Index(), id.ArchetypeId())
			matched := strings.Contains(strings.ToLower(name), query) ||
				strings.Contains(idText, query)
			if !matched || seen[id] {
				continue
			}

			seen[id] = true
			display := name
			if display == "" {
				display = fmt.Sprintf("Entity %d", id.Index())
			}
			matches = append(matches, entityMatch{ID: id, DisplayName: display})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].DisplayName != matches[j].DisplayName {
			return matches[i].DisplayName < matches[j].DisplayName
		}
		return matches[i].ID < matches[j].ID
	})
	return matches
}

// entityDisplayName returns the Name component if present, else a
// placeholder derived from the entity's index.
func entityDisplayName(world ecs.WorldView, id ecs.EntityId) string {
	if n, ok := world.GetComponent(id, nameType).(*scene.Name); ok && n != nil {
		return string(*n)
	}
	return fmt.Sprintf("Entity %d", id.Index())
}

// sortedArchetypes returns the world's archetypes ordered by id so the
// tree renders stably across frames.
func sortedArchetypes(world ecs.WorldView) []*ecs.Archetype {
	byID := world.GetArchetypes()
	out := make([]*ecs.Archetype, 0, len(byID))
	for _, a := range byID {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}
