package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"kanadex/internal/domain"
	"kanadex/internal/history"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	// Header
	Query         string
	Category      domain.Category
	SearchFocused bool
	SearchInput   string
	Loading       bool

	// Body
	ActiveView    string // "card" or "table"
	PageItems     []*domain.Item
	Cursor        int
	Selected      func(string) bool
	SortColumn    string
	SortDirection string
	HasColFilter  func(string) bool
	Sidebar       SidebarState

	// Footer
	Page           int
	TotalPages     int
	ResultCount    int
	SelectionCount int
	ScrollLocked   bool
	AuditMode      bool
	HelpText       string
	StatusMessage  string

	// Popups
	ShowDetail    bool
	DetailItem    *domain.Item
	DetailHistory []history.Entry
	ConfirmAudit  bool

	ShowColumnPick   bool
	ColumnPick       ColumnPickState
	ShowColumnFilter bool
	ColumnFilter     ColumnFilterState
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	cardView    *CardViewRenderer
	tableView   *TableViewRenderer
	sidebar     *SidebarRenderer
	detail      *DetailRenderer
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		cardView:    NewCardViewRenderer(styles),
		tableView:   NewTableViewRenderer(styles),
		sidebar:     NewSidebarRenderer(styles),
		detail:      NewDetailRenderer(styles),
		popupRender: NewPopupRenderer(styles),
	}
}

func (r *Renderer) Styles() *Styles { return r.styles }

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	if state.ShowDetail && state.DetailItem != nil {
		popup := r.detail.Render(state.DetailItem, state.DetailHistory)
		return r.popupRender.RenderPopupOverlay(popup, state.Height, state.Width, lipgloss.NewStyle())
	}
	if state.ShowColumnFilter {
		filterState := state.ColumnFilter
		filterState.Height = state.Height
		popup := r.RenderColumnFilter(filterState)
		return r.popupRender.RenderPopupOverlay(popup, state.Height, state.Width, r.styles.DetailBox)
	}
	if state.ShowColumnPick {
		popup := r.RenderColumnPick(state.ColumnPick)
		return r.popupRender.RenderPopupOverlay(popup, state.Height, state.Width, r.styles.DetailBox)
	}
	if state.ConfirmAudit {
		popup := fmt.Sprintf("選択した %d 件を棚卸済みとして記録しますか？\n\n  y: 記録する   n/Esc: 戻る",
			state.SelectionCount)
		return r.popupRender.RenderPopupOverlay(popup, state.Height, state.Width, r.styles.DetailBox)
	}

	header := r.renderHeader(state)
	footer := r.renderFooter(state)

	bodyHeight := state.Height - lipgloss.Height(header) - lipgloss.Height(footer)
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	var body string
	switch state.ActiveView {
	case "table":
		body = r.tableView.RenderPage(state.PageItems, state.Cursor, state.Selected,
			state.SortColumn, state.SortDirection, state.HasColFilter)
	default:
		body = r.cardView.RenderPage(state.PageItems, state.Cursor, state.Selected, r.contentWidth(state))
	}

	sidebarState := state.Sidebar
	sidebarState.Height = bodyHeight
	side := r.sidebar.Render(sidebarState)
	if side != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, side)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		r.styles.Main.MaxHeight(bodyHeight).Render(body),
		footer)
}

func (r *Renderer) contentWidth(state ViewState) int {
	if state.Sidebar.Collapsed {
		return state.Width
	}
	return state.Width - 24
}

func (r *Renderer) renderHeader(state ViewState) string {
	title := r.styles.Title.Render("kanadex")

	category := categoryLabel(state.Category)
	parts := []string{title, r.styles.Dim.Render(category)}

	if state.SearchFocused {
		parts = append(parts, r.styles.Filter.Render("検索: ")+state.SearchInput+"▌")
	} else if state.Query != "" {
		parts = append(parts, r.styles.Filter.Render("検索: "+state.Query))
	}

	if state.Loading {
		parts = append(parts, r.styles.Dim.Render("読込中..."))
	}

	return strings.Join(parts, "  ")
}

func (r *Renderer) renderFooter(state ViewState) string {
	var left []string
	left = append(left, fmt.Sprintf("%d件", state.ResultCount))
	left = append(left, fmt.Sprintf("%d/%dページ", state.Page, state.TotalPages))
	if state.SelectionCount > 0 {
		left = append(left, r.styles.Highlight.Render(fmt.Sprintf("選択 %d", state.SelectionCount)))
	}
	if state.ScrollLocked {
		left = append(left, r.styles.Dim.Render("スクロール固定"))
	}

	line := r.styles.Status.Render(strings.Join(left, "  "))
	if state.StatusMessage != "" {
		line += "  " + r.styles.Filter.Render(state.StatusMessage)
	}

	if state.AuditMode {
		bar := r.styles.AuditBar.Render(fmt.Sprintf(" 棚卸モード  選択 %d 件  Enterで記録 ", state.SelectionCount))
		return lipgloss.JoinVertical(lipgloss.Left, bar, line, r.styles.Help.Render(state.HelpText))
	}
	return lipgloss.JoinVertical(lipgloss.Left, line, r.styles.Help.Render(state.HelpText))
}

func categoryLabel(c domain.Category) string {
	switch c {
	case domain.CategoryMold:
		return "金型"
	case domain.CategoryCutter:
		return "抜型"
	}
	return "すべて"
}
