package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"kanadex/internal/domain"
)

// cardsPerRow controls the grid layout; narrow terminals fall back to
// fewer columns in layout().
const cardsPerRow = 4

// CardViewRenderer draws one page of items as a card grid
type CardViewRenderer struct {
	styles *Styles
}

func NewCardViewRenderer(styles *Styles) *CardViewRenderer {
	return &CardViewRenderer{styles: styles}
}

// RenderPage renders a grid of cards for the given page of items.
// cursor is the index of the keyboard cursor within the page, -1 for
// none. selected reports whether an item id is in the shared selection.
func (r *CardViewRenderer) RenderPage(items []*domain.Item, cursor int, selected func(string) bool, width int) string {
	if len(items) == 0 {
		return r.styles.Dim.Render("該当する品目がありません")
	}

	perRow := r.layout(width)
	rows := make([]string, 0, (len(items)+perRow-1)/perRow)
	for start := 0; start < len(items); start += perRow {
		end := start + perRow
		if end > len(items) {
			end = len(items)
		}
		cards := make([]string, 0, perRow)
		for i := start; i < end; i++ {
			cards = append(cards, r.renderCard(items[i], i == cursor, selected(items[i].ID())))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return strings.Join(rows, "\n")
}

func (r *CardViewRenderer) layout(width int) int {
	perRow := cardsPerRow
	if width > 0 {
		if fit := width / (cardWidth + 2); fit < perRow && fit > 0 {
			perRow = fit
		}
	}
	return perRow
}

const cardWidth = 26

func (r *CardViewRenderer) renderCard(item *domain.Item, hasCursor, isSelected bool) string {
	var b strings.Builder

	mark := "  "
	if isSelected {
		mark = r.styles.Highlight.Render("✓ ")
	}
	title := mark + r.styles.CardValue.Bold(true).Render(truncate(item.NameText(), cardWidth-4))
	b.WriteString(title)
	b.WriteString("\n")

	b.WriteString(r.field("ID", item.ID()))
	b.WriteString(r.field("コード", item.CodeText()))
	b.WriteString(r.field("寸法", item.DimensionsText()))
	b.WriteString(r.field("保管", item.LocationText()))

	status := item.StatusText()
	b.WriteString(fmt.Sprintf("%s %s",
		r.styles.CardLabel.Render("状態"),
		r.styles.StatusStyle(status).Render(status)))

	style := r.styles.Card
	if isSelected || hasCursor {
		style = r.styles.CardSelected
	}
	return style.Width(cardWidth).Render(b.String())
}

func (r *CardViewRenderer) field(label, value string) string {
	return fmt.Sprintf("%s %s\n",
		r.styles.CardLabel.Render(label),
		r.styles.CardValue.Render(truncate(value, cardWidth-6)))
}

func truncate(s string, max int) string {
	if max <= 1 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
