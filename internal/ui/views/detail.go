package views

import (
	"fmt"
	"strings"

	"kanadex/internal/domain"
	"kanadex/internal/history"
)

// DetailRenderer draws the read-only detail panel for a single item
type DetailRenderer struct {
	styles *Styles
}

func NewDetailRenderer(styles *Styles) *DetailRenderer {
	return &DetailRenderer{styles: styles}
}

// Render produces the detail popup body: the item's full field set
// followed by the tail of its status history. entries come newest
// first, the way the history store returns them.
func (r *DetailRenderer) Render(item *domain.Item, entries []history.Entry) string {
	var b strings.Builder

	b.WriteString(r.styles.Title.Render(item.NameText()))
	b.WriteString("\n\n")

	r.row(&b, "管理番号", item.ID())
	r.row(&b, "コード", item.CodeText())
	r.row(&b, "種別", string(item.Kind))
	r.row(&b, "寸法", item.DimensionsText())
	r.row(&b, "製造日", item.DisplayDate)
	r.row(&b, "保管場所", item.LocationText())
	r.row(&b, "棚位置", item.RackLocationText())
	r.row(&b, "保管会社", item.StorageCompanyText())
	r.row(&b, "得意先", item.CustomerText())
	r.row(&b, "図面番号", item.DrawingNumberText())
	r.row(&b, "設備コード", item.EquipmentCodeText())
	r.row(&b, "樹脂", item.PlasticTypeText())
	notes := item.Notes
	if notes == "" {
		notes = "-"
	}
	r.row(&b, "備考", notes)

	status := item.StatusText()
	b.WriteString(fmt.Sprintf("%s  %s\n",
		r.styles.CardLabel.Render(fmt.Sprintf("%-6s", "状態")),
		r.styles.StatusStyle(status).Render(status)))

	if len(entries) > 0 {
		b.WriteString("\n")
		b.WriteString(r.styles.TableHeader.Render("履歴"))
		b.WriteString("\n")
		for _, e := range entries {
			line := fmt.Sprintf("%s  %s", e.LoggedAt.Format("2006/01/02 15:04"), e.Status)
			if e.Actor != "" {
				line += "  " + e.Actor
			}
			if e.Note != "" {
				line += "  " + r.styles.Dim.Render(e.Note)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	return r.styles.DetailBox.Render(b.String())
}

func (r *DetailRenderer) row(b *strings.Builder, label, value string) {
	b.WriteString(fmt.Sprintf("%s  %s\n",
		r.styles.CardLabel.Render(fmt.Sprintf("%-6s", label)),
		r.styles.CardValue.Render(value)))
}

// HistoryText renders an item's full history as plain text for the
// external pager.
func HistoryText(item *domain.Item, entries []history.Entry, teflon []history.TeflonEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", item.NameText(), item.ID())
	b.WriteString(strings.Repeat("=", 40))
	b.WriteString("\n\n状態履歴\n")
	if len(entries) == 0 {
		b.WriteString("  (記録なし)\n")
	}
	for _, e := range entries {
		fmt.Fprintf(&b, "  %s  %-8s", e.LoggedAt.Format("2006/01/02 15:04"), e.Status)
		if e.Actor != "" {
			fmt.Fprintf(&b, "  %s", e.Actor)
		}
		if e.Session != "" {
			fmt.Fprintf(&b, "  [棚卸 %s]", e.Session)
		}
		if e.Note != "" {
			fmt.Fprintf(&b, "  %s", e.Note)
		}
		b.WriteString("\n")
	}

	if len(teflon) > 0 {
		b.WriteString("\nテフロン加工\n")
		for _, te := range teflon {
			if te.ReturnedAt.IsZero() {
				fmt.Fprintf(&b, "  %s  送付 (未返却)\n", te.SentAt.Format("2006/01/02"))
			} else {
				fmt.Fprintf(&b, "  %s  送付 → %s 返却\n",
					te.SentAt.Format("2006/01/02"), te.ReturnedAt.Format("2006/01/02"))
			}
		}
	}
	return b.String()
}
