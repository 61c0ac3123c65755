package views

import (
	"fmt"
	"strings"
)

// ColumnPickState drives the column chooser shown over the table view
type ColumnPickState struct {
	Columns       []string
	Labels        map[string]string
	Cursor        int
	SortColumn    string
	SortDirection string
	Filtered      func(string) bool
}

// ColumnFilterState drives the per-value checkbox popup for one column.
// Values are already narrowed by the live search text.
type ColumnFilterState struct {
	Label   string
	Values  []string
	Checked func(string) bool
	Cursor  int
	Search  string
	Total   int
	Height  int
}

// RenderColumnPick renders the column chooser list
func (r *Renderer) RenderColumnPick(state ColumnPickState) string {
	var b strings.Builder
	b.WriteString(r.styles.Title.Render("列の操作"))
	b.WriteString("\n")
	b.WriteString(r.styles.Dim.Render("enter: 絞り込み  s: 並び替え  x: 解除"))
	b.WriteString("\n\n")

	for i, column := range state.Columns {
		line := state.Labels[column]
		if column == state.SortColumn {
			line += r.styles.SortIndicator.Render(directionGlyph(state.SortDirection))
		}
		if state.Filtered != nil && state.Filtered(column) {
			line += r.styles.Filter.Render("◆")
		}
		if i == state.Cursor {
			line = "> " + r.styles.Highlight.Render(line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// RenderColumnFilter renders the checkbox list with its search line
func (r *Renderer) RenderColumnFilter(state ColumnFilterState) string {
	var b strings.Builder
	b.WriteString(r.styles.Title.Render(state.Label + " で絞り込み"))
	b.WriteString("\n")
	b.WriteString(r.styles.Filter.Render("検索: ") + state.Search + "▌")
	b.WriteString("\n\n")

	if len(state.Values) == 0 {
		b.WriteString(r.styles.Dim.Render("該当する値がありません"))
		b.WriteString("\n")
	}

	window, offset := visibleWindow(len(state.Values), state.Cursor, state.Height-8)
	for i := offset; i < offset+window; i++ {
		value := state.Values[i]
		box := "[ ]"
		if state.Checked(value) {
			box = "[x]"
		}
		line := fmt.Sprintf("%s %s", box, truncate(value, 24))
		if i == state.Cursor {
			line = "> " + r.styles.Highlight.Render(line)
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

	b.WriteString("\n")
	b.WriteString(r.styles.Dim.Render(fmt.Sprintf("%d件  space: 切替  ctrl+a: 全切替  enter: 適用  esc: 戻る", state.Total)))
	return b.String()
}
