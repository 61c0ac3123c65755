package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"kanadex/internal/domain"
	"kanadex/internal/ui/render"
)

// columnWidths holds display widths per column id. Japanese headers and
// cell text are measured in terminal cells, not runes.
var columnWidths = map[string]int{
	render.ColumnID:             8,
	render.ColumnCode:           10,
	render.ColumnName:           20,
	render.ColumnKind:           6,
	render.ColumnDimensions:     14,
	render.ColumnProductionDate: 10,
	render.ColumnStatusDate:     10,
	render.ColumnLocation:       10,
	render.ColumnRackLocation:   10,
	render.ColumnStorageCompany: 12,
	render.ColumnCustomer:       12,
	render.ColumnStatus:         8,
}

// TableViewRenderer draws one page of items as an aligned table
type TableViewRenderer struct {
	styles *Styles
}

func NewTableViewRenderer(styles *Styles) *TableViewRenderer {
	return &TableViewRenderer{styles: styles}
}

// RenderPage renders the header plus one page of rows. sortColumn and
// sortDirection drive the header indicator; filteredColumns marks
// headers that carry an active column filter.
func (r *TableViewRenderer) RenderPage(items []*domain.Item, cursor int,
	selected func(string) bool, sortColumn, sortDirection string,
	filteredColumns func(string) bool) string {

	var b strings.Builder
	b.WriteString(r.renderHeader(sortColumn, sortDirection, filteredColumns))
	b.WriteString("\n")

	if len(items) == 0 {
		b.WriteString(r.styles.Dim.Render("該当する品目がありません"))
		return b.String()
	}

	for i, item := range items {
		b.WriteString(r.renderRow(item, i == cursor, selected(item.ID())))
		if i < len(items)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (r *TableViewRenderer) renderHeader(sortColumn, sortDirection string, filteredColumns func(string) bool) string {
	cells := make([]string, 0, len(render.Columns)+1)
	cells = append(cells, "  ")
	for _, column := range render.Columns {
		label := render.ColumnLabels[column]
		if column == sortColumn || (sortColumn == "" && column == render.ColumnProductionDate) {
			arrow := "▼"
			if sortDirection == "asc" {
				arrow = "▲"
			}
			label += r.styles.SortIndicator.Render(arrow)
		}
		if filteredColumns != nil && filteredColumns(column) {
			label += r.styles.Filter.Render("◆")
		}
		cells = append(cells, r.styles.TableHeader.Render(pad(label, columnWidths[column])))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (r *TableViewRenderer) renderRow(item *domain.Item, hasCursor, isSelected bool) string {
	mark := "  "
	if isSelected {
		mark = r.styles.Highlight.Render("✓ ")
	}
	cells := make([]string, 0, len(render.Columns)+1)
	cells = append(cells, mark)
	for _, column := range render.Columns {
		value := pad(render.CellValue(item, column), columnWidths[column])
		switch {
		case column == render.ColumnStatus:
			cells = append(cells, r.styles.StatusStyle(item.StatusText()).Render(value))
		default:
			cells = append(cells, r.styles.TableRow.Render(value))
		}
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	if hasCursor {
		return r.styles.TableSelected.Render(row)
	}
	return row
}

// pad truncates or right-pads a string to the given display width
func pad(s string, width int) string {
	if width <= 0 {
		return s
	}
	s = runewidth.Truncate(s, width-1, "…")
	return runewidth.FillRight(s, width)
}
