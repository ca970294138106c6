package debugui

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/flickball/ecs"
)

type EntityInfo struct {
	ID             ecs.EntityId
	ArchetypeID    uint32
	ComponentTypes []string
}

func NewEntityBrowser() *EntityBrowser {
	return &EntityBrowser{}
}

// CollectEntities lists every live entity in archetype creation order.
func CollectEntities(storage *ecs.Storage) []EntityInfo {
	var entities []EntityInfo
	for _, archetype := range storage.Archetypes() {
		names := make([]string, len(archetype.Types()))
		for i, t := range archetype.Types() {
			names[i] = t.String()
		}
		for id := range archetype.Iter() {
			entities = append(entities, EntityInfo{
				ID:             id,
				ArchetypeID:    archetype.ID(),
				ComponentTypes: names,
			})
		}
	}
	return entities
}

// FilterEntities keeps entities whose id or component names contain
// text, case-insensitively.
func FilterEntities(entities []EntityInfo, text string) []EntityInfo {
	if text == "" {
		return entities
	}
	needle := strings.ToLower(text)

	var filtered []EntityInfo
	for _, e := range entities {
		haystack := strings.ToLower(fmt.Sprintf("%d %s", e.ID, strings.Join(e.ComponentTypes, " ")))
		if strings.Contains(haystack, needle) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// DescribeEntity formats every component of id, one per line.
func DescribeEntity(storage *ecs.Storage, id ecs.EntityId) []string {
	if !storage.Alive(id) {
		return nil
	}

	var lines []string
	for _, archetype := range storage.Archetypes() {
		if archetype.ID() != id.ArchetypeId() {
			continue
		}
		for _, t := range archetype.Types() {
			value := reflect.ValueOf(storage.GetComponent(id, t)).Elem()
			lines = append(lines, fmt.Sprintf("%s: %+v", t.String(), value.Interface()))
		}
	}
	return lines
}

func (eb *EntityBrowser) refresh(storage *ecs.Storage) {
	stats := storage.CollectStats()
	if eb.cache != nil && stats.ArchetypeCount == eb.archetypeCount && stats.TotalEntityCount == eb.entityCount {
		return
	}
	eb.cache = CollectEntities(storage)
	eb.archetypeCount = stats.ArchetypeCount
	eb.entityCount = stats.TotalEntityCount
}

// Render draws the entity table and the selected entity's components.
func (eb *EntityBrowser) Render(storage *ecs.Storage) {
	imgui.SetNextWindowPosV(imgui.NewVec2(380, 40), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 360), imgui.CondOnce)
	if !imgui.BeginV("Entities", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.refresh(storage)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear") {
		eb.filterText = ""
	}

	entities := FilterEntities(eb.cache, eb.filterText)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 2, tableFlags, imgui.NewVec2(0, 160), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()

		for _, entity := range entities {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			selected := eb.selectedEntityId == entity.ID
			if imgui.SelectableBoolV(fmt.Sprintf("%d", entity.ID), selected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selectedEntityId = entity.ID
			}
			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentTypes, ", "))
		}
		imgui.EndTable()
	}

	imgui.Separator()
	if eb.selectedEntityId == 0 {
		imgui.Text("Select an entity")
	} else {
		for _, line := range DescribeEntity(storage, eb.selectedEntityId) {
			imgui.Text(line)
		}
	}

	imgui.End()
}

func (eb *EntityBrowser) Selected() ecs.EntityId {
	return eb.selectedEntityId
}
