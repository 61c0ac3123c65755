package views

import (
	"fmt"
	"strings"

	"kanadex/internal/filter"
)

// SidebarState is what the sidebar needs from the model to draw itself
type SidebarState struct {
	Collapsed     bool
	Fields        []filter.Field
	ActiveFieldID string
	ActiveValue   string
	Cursor        int

	// PickingValue switches the sidebar from the field list to the
	// value list of the field under the cursor.
	PickingValue bool
	Values       []string
	ValueCursor  int

	SortField     string
	SortDirection string
	Height        int
}

// SidebarRenderer draws the facet filter sidebar
type SidebarRenderer struct {
	styles *Styles
}

func NewSidebarRenderer(styles *Styles) *SidebarRenderer {
	return &SidebarRenderer{styles: styles}
}

func (r *SidebarRenderer) Render(state SidebarState) string {
	if state.Collapsed {
		return ""
	}

	var b strings.Builder
	b.WriteString(r.styles.Title.Render("絞り込み"))
	b.WriteString("\n")

	if state.PickingValue {
		r.renderValues(&b, state)
	} else {
		r.renderFields(&b, state)
	}

	b.WriteString("\n")
	b.WriteString(r.styles.Dim.Render(fmt.Sprintf("並び: %s %s",
		sortFieldLabel(state.SortField), directionGlyph(state.SortDirection))))

	return r.styles.Sidebar.Render(b.String())
}

func (r *SidebarRenderer) renderFields(b *strings.Builder, state SidebarState) {
	for i, field := range state.Fields {
		line := field.Label
		if field.ID == state.ActiveFieldID && state.ActiveValue != "" {
			line = fmt.Sprintf("%s: %s", field.Label, truncate(state.ActiveValue, 12))
			line = r.styles.SidebarActive.Render(line)
		}
		if i == state.Cursor {
			line = "> " + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
}

func (r *SidebarRenderer) renderValues(b *strings.Builder, state SidebarState) {
	b.WriteString(r.styles.Dim.Render("値を選択 (Escで戻る)"))
	b.WriteString("\n")

	window, offset := visibleWindow(len(state.Values), state.ValueCursor, state.Height-6)
	for i := offset; i < offset+window; i++ {
		line := truncate(state.Values[i], 18)
		if state.Values[i] == state.ActiveValue {
			line = r.styles.SidebarActive.Render(line)
		}
		if i == state.ValueCursor {
			line = "> " + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if offset+window < len(state.Values) {
		b.WriteString(r.styles.Dim.Render("  ↓"))
		b.WriteString("\n")
	}
}

// visibleWindow clamps a scrolling window of size height around cursor
func visibleWindow(total, cursor, height int) (window, offset int) {
	if height < 3 {
		height = 3
	}
	if total <= height {
		return total, 0
	}
	offset = cursor - height/2
	if offset < 0 {
		offset = 0
	}
	if offset > total-height {
		offset = total - height
	}
	return height, offset
}

func sortFieldLabel(fieldID string) string {
	if f := filter.FieldByID(fieldID); f != nil {
		return f.Label
	}
	if fieldID == "productionDate" {
		return "製造日"
	}
	return fieldID
}

func directionGlyph(direction string) string {
	if direction == "asc" {
		return "▲"
	}
	return "▼"
}
