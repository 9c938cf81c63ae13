package inspector

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/spyglass/assets"
	"github.com/plus3/spyglass/ecs"
)

// renderInspector is the detail pane: it shows and edits whatever the
// current selection points at, whether that is entities, a resource or
// an asset.
func renderInspector(world *ecs.Storage, state *UIState) {
	switch state.Selection.Kind {
	case SelectionEntities:
		renderEntityInspector(world, state)
	case SelectionResource:
		renderResourceInspector(world, state)
	case SelectionAsset:
		renderAssetInspector(world, state)
	}
}

func renderEntityInspector(world *ecs.Storage, state *UIState) {
	// Live prunes despawned entries and follows entities across archetype
	// migrations, so the editors below always target what the user picked.
	ids := state.Selected.Live()

	switch len(ids) {
	case 0:
		imgui.TextDisabled("No entity selected")
	case 1:
		renderSingleEntity(world, ids[0])
	default:
		renderSharedComponents(world, ids)
	}
}

func renderSingleEntity(world *ecs.Storage, id ecs.EntityId) {
	archetype := world.GetArchetypeById(id.ArchetypeId())
	if archetype == nil {
		imgui.Text(fmt.Sprintf("Entity %d not found (invalid archetype)", id))
		return
	}

	imgui.Text(fmt.Sprintf("Entity ID: %d", id))
	imgui.Text(fmt.Sprintf("Archetype: 0x%X", id.ArchetypeId()))
	imgui.Separator()

	for _, compType := range archetype.Types() {
		component := world.GetComponent(id, compType)
		if component == nil {
			continue
		}

		if imgui.TreeNodeStr(compType.String()) {
			renderStructEditor(compType.String(), componentValue(component))
			imgui.TreePop()
		}
	}
}

// renderSharedComponents shows the component types common to every
// selected entity. Editors are bound to the first entity; a committed
// edit copies the whole component to the rest of the selection.
func renderSharedComponents(world *ecs.Storage, ids []ecs.EntityId) {
	imgui.Text(fmt.Sprintf("%d entities selected", len(ids)))
	imgui.Separator()

	shared := sharedComponentTypes(world, ids)
	if len(shared) == 0 {
		imgui.TextDisabled("No components shared by all selected entities")
		return
	}

	first := ids[0]
	for _, compType := range shared {
		component := world.GetComponent(first, compType)
		if component == nil {
			continue
		}

		if imgui.TreeNodeStr(compType.String()) {
			if renderStructEditor(compType.String(), componentValue(component)) {
				propagateComponent(world, compType, first, ids[1:])
			}
			imgui.TreePop()
		}
	}
}

// sharedComponentTypes intersects the component sets of the selected
// entities' archetypes, sorted by type name for stable rendering.
func sharedComponentTypes(world ecs.WorldView, ids []ecs.EntityId) []reflect.Type {
	firstArch := world.GetArchetypes()[ids[0].ArchetypeId()]
	if firstArch == nil {
		return nil
	}

	var shared []reflect.Type
	for _, compType := range firstArch.Types() {
		inAll := true
		for _, id := range ids[1:] {
			if !world.HasComponent(id, compType) {
				inAll = false
				break
			}
		}
		if inAll {
			shared = append(shared, compType)
		}
	}

	sort.Slice(shared, func(i, j int) bool { return shared[i].String() < shared[j].String() })
	return shared
}

// propagateComponent copies the source entity's component value onto
// every other entity in the selection.
func propagateComponent(world *ecs.Storage, compType reflect.Type, src ecs.EntityId, rest []ecs.EntityId) {
	srcComponent := world.GetComponent(src, compType)
	if srcComponent == nil {
		return
	}
	srcVal := componentValue(srcComponent)

	for _, id := range rest {
		dst := world.GetComponent(id, compType)
		if dst == nil {
			continue
		}
		dstVal := componentValue(dst)
		if dstVal.CanSet() {
			dstVal.Set(srcVal)
		}
	}
}

func renderResourceInspector(world *ecs.Storage, state *UIState) {
	imgui.Text(fmt.Sprintf("Resource: %s", state.Selection.Name))
	imgui.Separator()

	resource := world.GetSingletonByType(state.Selection.Type)
	if resource == nil {
		imgui.TextDisabled("Resource no longer present")
		return
	}

	renderStructEditor(state.Selection.Name, componentValue(resource))
}

func renderAssetInspector(world *ecs.Storage, state *UIState) {
	imgui.Text(fmt.Sprintf("Asset: %s", state.Selection.Name))
	imgui.Text(fmt.Sprintf("Type: %s  Handle: %d", state.Selection.Type, state.Selection.Handle.ID))
	imgui.Separator()

	var store *assets.Store
	if !world.ReadSingleton(&store) {
		imgui.TextDisabled("No asset store registered")
		return
	}

	value := store.Resolve(state.Selection.Handle)
	if value == nil {
		imgui.TextDisabled("Asset no longer present")
		return
	}

	renderStructEditor(state.Selection.Name, componentValue(value))
}

// componentValue dereferences the pointer handed out by the storage into
// an addressable value so editors can write through it.
func componentValue(component any) reflect.Value {
	val := reflect.ValueOf(component)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	return val
}

// renderStructEditor renders editors for every exported field of val and
// reports whether any field was edited this frame. Non-struct values get
// a single value editor.
func renderStructEditor(idPrefix string, val reflect.Value) bool {
	if val.Kind() != reflect.Struct {
		return renderFieldEditor(idPrefix, "Value", val)
	}

	changed := false
	fields := globalReflectionCache.GetFields(val.Type())
	if len(fields) == 0 {
		imgui.TextDisabled("(no exported fields)")
		return false
	}

	for _, field := range fields {
		fieldVal := val.Field(field.Index)
		if field.IsPointer {
			if fieldVal.IsNil() {
				imgui.Text(fmt.Sprintf("%s: nil", field.Name))
				continue
			}
			fieldVal = fieldVal.Elem()
		}

		if renderFieldEditor(idPrefix, field.Name, fieldVal) {
			changed = true
		}
	}
	return changed
}

// renderFieldEditor renders one editable field and reports whether the
// user committed a change. Addressable scalar fields are written in
// place; everything else renders read-only.
func renderFieldEditor(idPrefix, name string, val reflect.Value) bool {
	if !val.IsValid() {
		imgui.Text(fmt.Sprintf("%s: <invalid>", name))
		return false
	}

	label := fmt.Sprintf("##%s.%s", idPrefix, name)

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(label, &v) && val.CanSet() {
			val.SetInt(int64(v))
			return true
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(label, &v) && v >= 0 && val.CanSet() {
			val.SetUint(uint64(v))
			return true
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(label, &v) && val.CanSet() {
			val.SetFloat(float64(v))
			return true
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(fmt.Sprintf("%s%s", name, label), &v) && val.CanSet() {
			val.SetBool(v)
			return true
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(label, "", &v, imgui.InputTextFlagsNone, nil) && val.CanSet() {
			val.SetString(v)
			return true
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(fmt.Sprintf("%s%s", name, label)) {
			changed := renderStructEditor(fmt.Sprintf("%s.%s", idPrefix, name), val)
			imgui.TreePop()
			return changed
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	case reflect.Ptr, reflect.Interface:
		if val.IsNil() {
			imgui.Text(fmt.Sprintf("%s: nil", name))
		} else {
			imgui.Text(fmt.Sprintf("%s: %T", name, val.Interface()))
		}

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}

	return false
}
