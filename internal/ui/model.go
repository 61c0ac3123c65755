package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"kanadex/internal/config"
	"kanadex/internal/datastore"
	"kanadex/internal/domain"
	"kanadex/internal/eventbus"
	"kanadex/internal/filter"
	"kanadex/internal/history"
	"kanadex/internal/search"
	"kanadex/internal/ui/coordinator"
	"kanadex/internal/ui/render"
	"kanadex/internal/ui/views"
)

// searchDebounce is the typing pause before a search fires
const searchDebounce = 300 * time.Millisecond

type inputMode int

const (
	modeNormal inputMode = iota
	modeSearch
	modeSidebarField
	modeSidebarValue
	modeConfirmAudit
	modeDetail
	modeColumnPick
	modeColumnFilter
)

// keyMap defines the key bindings shown in the footer help
type keyMap struct {
	Search     key.Binding
	ToggleView key.Binding
	Category   key.Binding
	Sidebar    key.Binding
	Columns    key.Binding
	Sort       key.Binding
	Select     key.Binding
	SelectAll  key.Binding
	Audit      key.Binding
	Detail     key.Binding
	History    key.Binding
	Reset      key.Binding
	Quit       key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.ToggleView, k.Category, k.Sidebar, k.Select, k.Audit, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.ToggleView, k.Category, k.Sidebar},
		{k.Sort, k.Columns, k.Select, k.SelectAll, k.Audit},
		{k.Detail, k.History, k.Reset, k.Quit},
	}
}

var keys = keyMap{
	Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "検索")),
	ToggleView: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "表示切替")),
	Category:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "種別")),
	Sidebar:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "絞り込み")),
	Columns:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "列")),
	Sort:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s/S", "並び替え")),
	Select:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "選択")),
	SelectAll:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a/A", "全選択")),
	Audit:      key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "棚卸")),
	Detail:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "詳細")),
	History:    key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "履歴")),
	Reset:      key.NewBinding(key.WithKeys("R"), key.WithHelp("r/R", "リセット")),
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "終了")),
}

// sortCycle is the order the s key walks the shared sort fields in
var sortCycle = []string{"productionDate", "id", "code", "location", "company", "size"}

// Model represents the UI state
type Model struct {
	bus        eventbus.EventBus
	cfg        *config.Config
	cfgService config.ConfigService
	log        *zap.Logger

	store     *datastore.Store
	histStore *history.Store

	searchEngine *search.Engine
	filterEngine *filter.Engine
	card         *render.CardRenderer
	table        *render.TableRenderer
	coord        *coordinator.Coordinator

	renderer *views.Renderer
	pager    *PagerOps

	width  int
	height int
	help   help.Model

	mode      inputMode
	textInput textinput.Model
	searchSeq int

	cursor           int
	sidebarCollapsed bool
	fieldCursor      int
	valueCursor      int
	valueOptions     []string

	columnCursor  int
	filterColumn  string
	filterValues  []string
	filterChecked map[string]bool
	filterCursor  int
	filterSearch  string

	auditMode bool
	auditing  bool
	loading   bool
	restored  bool

	detailItem    *domain.Item
	detailEntries []history.Entry

	statusMessage string
}

// Deps bundles what the model needs from the bootstrap
type Deps struct {
	Bus        eventbus.EventBus
	Config     *config.Config
	CfgService config.ConfigService
	Store      *datastore.Store
	HistStore  *history.Store
	Search     *search.Engine
	Filter     *filter.Engine
	Card       *render.CardRenderer
	Table      *render.TableRenderer
	Coord      *coordinator.Coordinator
	Log        *zap.Logger
}

// NewModel creates a new UI model
func NewModel(d Deps) *Model {
	ti := textinput.New()
	ti.Placeholder = "キーワード (カンマ区切りでAND)"
	ti.CharLimit = 120
	ti.Width = 40

	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}

	m := &Model{
		bus:              d.Bus,
		cfg:              d.Config,
		cfgService:       d.CfgService,
		log:              log,
		store:            d.Store,
		histStore:        d.HistStore,
		searchEngine:     d.Search,
		filterEngine:     d.Filter,
		card:             d.Card,
		table:            d.Table,
		coord:            d.Coord,
		renderer:         views.NewRenderer(),
		pager:            NewPagerOps(nil),
		help:             help.New(),
		textInput:        ti,
		loading:          true,
		sidebarCollapsed: d.Config.SidebarCollapsed,
	}

	if d.Config.UISettings.ScrollLock && !d.Table.ScrollLocked() {
		d.Table.ToggleScrollLock()
	}

	d.Card.SetItemClickFunction(m.onItemClicked)
	d.Table.SetItemClickFunction(m.onItemClicked)

	return m
}

// onItemClicked reacts to either result view reporting an opened item
func (m *Model) onItemClicked(item *domain.Item) {
	m.bus.Publish(eventbus.ItemClickedEvent{Item: item})
	m.openDetail(item)
}

// SetProgram attaches the running Bubble Tea program for pager handoff
func (m *Model) SetProgram(p *tea.Program) { m.pager.SetProgram(p) }

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case EventMsg:
		return m.handleEvent(msg.Event)

	case searchDebounceMsg:
		if msg.Seq == m.searchSeq && m.mode == modeSearch {
			m.searchEngine.SetQuery(m.textInput.Value())
			m.searchEngine.PerformSearch()
			m.cursor = 0
		}
		return m, nil

	case auditRecordedMsg:
		return m.handleAuditRecorded(msg)

	case historyPagerMsg:
		if msg.err != nil {
			m.statusMessage = "履歴の表示に失敗しました"
			m.log.Error("history pager failed", zap.String("item", msg.itemID), zap.Error(msg.err))
		}
		return m, nil

	case quitMsg:
		if msg.saveConfig {
			m.persistConfig()
		}
		return m, tea.Quit
	}

	if m.mode == modeSearch {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeSearch:
		return m.handleSearchKey(msg)
	case modeSidebarField:
		return m.handleSidebarFieldKey(msg)
	case modeSidebarValue:
		return m.handleSidebarValueKey(msg)
	case modeConfirmAudit:
		return m.handleConfirmAuditKey(msg)
	case modeColumnPick:
		return m.handleColumnPickKey(msg)
	case modeColumnFilter:
		return m.handleColumnFilterKey(msg)
	case modeDetail:
		switch msg.String() {
		case "esc", "enter", "q":
			m.mode = modeNormal
			m.detailItem = nil
			m.detailEntries = nil
		}
		return m, nil
	}
	return m.handleNormalKey(msg)
}

func (m *Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.statusMessage = ""

	switch msg.String() {
	case "q", "ctrl+c":
		m.persistConfig()
		return m, tea.Quit

	case "/":
		m.mode = modeSearch
		m.textInput.SetValue(m.searchEngine.Query())
		m.textInput.CursorEnd()
		return m, m.textInput.Focus()

	case "tab":
		m.coord.ToggleView()
		m.cursor = 0

	case "c":
		m.searchEngine.SetCategory(nextCategory(m.searchEngine.Category()))
		m.searchEngine.PerformSearch()
		m.cursor = 0

	case "left", "h":
		m.coord.PrevPage()
		m.cursor = 0
	case "right", "l":
		m.coord.NextPage()
		m.cursor = 0

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.pageItems())-1 {
			m.cursor++
		}

	case " ":
		if item := m.cursorItem(); item != nil {
			if m.coord.CurrentView() == coordinator.ViewTable {
				m.table.ToggleSelect(item.ID())
			} else {
				m.card.ToggleSelect(item.ID())
			}
		}

	case "a":
		if m.coord.CurrentView() == coordinator.ViewTable {
			m.table.ToggleSelectAll()
		} else {
			m.card.SelectAllResults()
		}
	case "A":
		if m.coord.CurrentView() == coordinator.ViewTable {
			m.table.SelectAllResults()
		} else {
			m.card.SelectAllResults()
		}

	case "esc":
		switch {
		case m.auditMode:
			m.auditMode = false
		case m.coord.SelectionCount() > 0:
			m.card.ClearSelection()
			m.table.SetSelection(nil)
		}

	case "b":
		m.sidebarCollapsed = !m.sidebarCollapsed

	case "f":
		m.sidebarCollapsed = false
		m.mode = modeSidebarField

	case "s":
		spec := m.filterEngine.Sort()
		spec.Field = nextSortField(spec.Field)
		m.filterEngine.SetSort(spec)
		m.cursor = 0
	case "S":
		spec := m.filterEngine.Sort()
		if spec.Direction == "asc" {
			spec.Direction = "desc"
		} else {
			spec.Direction = "asc"
		}
		m.filterEngine.SetSort(spec)
		m.cursor = 0

	case "L":
		m.table.ToggleScrollLock()

	case "o":
		if m.coord.CurrentView() == coordinator.ViewTable {
			m.columnCursor = 0
			m.mode = modeColumnPick
		}

	case "enter":
		if m.auditMode {
			if m.coord.SelectionCount() == 0 {
				m.statusMessage = "棚卸する品目を選択してください"
				return m, nil
			}
			m.mode = modeConfirmAudit
			return m, nil
		}
		if item := m.cursorItem(); item != nil {
			if m.coord.CurrentView() == coordinator.ViewTable {
				m.table.Click(item)
			} else {
				m.card.Click(item)
			}
		}

	case "H":
		if item := m.cursorItem(); item != nil {
			return m, m.showHistoryCmd(item)
		}

	case "i":
		m.auditMode = !m.auditMode

	case "t":
		if item := m.cursorItem(); item != nil {
			if err := m.histStore.RecordTeflonSent(item.ID(), time.Now()); err != nil {
				m.statusMessage = "テフロン送付の記録に失敗しました"
				m.log.Error("teflon send failed", zap.String("item", item.ID()), zap.Error(err))
			} else {
				m.statusMessage = fmt.Sprintf("%s をテフロン加工へ送付", item.ID())
			}
		}
	case "T":
		if item := m.cursorItem(); item != nil {
			if err := m.histStore.RecordTeflonReturned(item.ID(), time.Now()); err != nil {
				m.statusMessage = "テフロン返却の記録に失敗しました"
				m.log.Error("teflon return failed", zap.String("item", item.ID()), zap.Error(err))
			} else {
				m.statusMessage = fmt.Sprintf("%s のテフロン返却を記録", item.ID())
			}
		}

	case "r":
		m.filterEngine.Reset()
		m.cursor = 0
	case "R":
		m.coord.ResetAll()
		m.cursor = 0
	}

	return m, nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = modeNormal
		m.textInput.Blur()
		m.searchEngine.SetQuery(m.textInput.Value())
		m.searchEngine.PerformSearch()
		m.cursor = 0
		return m, nil
	case "esc":
		m.mode = modeNormal
		m.textInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)

	m.searchSeq++
	seq := m.searchSeq
	debounce := tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return searchDebounceMsg{Seq: seq}
	})
	return m, tea.Batch(cmd, debounce)
}

func (m *Model) handleSidebarFieldKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	fields := m.filterEngine.FieldOptions()
	switch msg.String() {
	case "esc", "f", "q":
		m.mode = modeNormal
	case "up", "k":
		if m.fieldCursor > 0 {
			m.fieldCursor--
		}
	case "down", "j":
		if m.fieldCursor < len(fields)-1 {
			m.fieldCursor++
		}
	case "x", "backspace":
		m.filterEngine.SetState("", "")
		m.cursor = 0
	case "enter":
		if m.fieldCursor >= len(fields) {
			return m, nil
		}
		field := fields[m.fieldCursor]
		m.valueOptions = m.filterEngine.ValueOptions(field.ID)
		if len(m.valueOptions) == 0 {
			m.statusMessage = "この項目には値がありません"
			return m, nil
		}
		m.valueCursor = 0
		m.mode = modeSidebarValue
	}
	return m, nil
}

func (m *Model) handleSidebarValueKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.mode = modeSidebarField
	case "up", "k":
		if m.valueCursor > 0 {
			m.valueCursor--
		}
	case "down", "j":
		if m.valueCursor < len(m.valueOptions)-1 {
			m.valueCursor++
		}
	case "enter":
		fields := m.filterEngine.FieldOptions()
		if m.fieldCursor < len(fields) && m.valueCursor < len(m.valueOptions) {
			m.filterEngine.SetState(fields[m.fieldCursor].ID, m.valueOptions[m.valueCursor])
			m.cursor = 0
		}
		m.mode = modeNormal
	}
	return m, nil
}

func (m *Model) handleColumnPickKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "o", "q":
		m.mode = modeNormal
	case "up", "k":
		if m.columnCursor > 0 {
			m.columnCursor--
		}
	case "down", "j":
		if m.columnCursor < len(render.Columns)-1 {
			m.columnCursor++
		}
	case "s":
		m.table.ClickColumn(render.Columns[m.columnCursor])
		m.cursor = 0
	case "x":
		m.table.SetColumnFilter(render.Columns[m.columnCursor], nil)
		m.cursor = 0
	case "enter":
		column := render.Columns[m.columnCursor]
		values := m.table.ColumnValues(column)
		if len(values) == 0 {
			m.statusMessage = "この列には値がありません"
			return m, nil
		}
		m.filterColumn = column
		m.filterValues = values
		m.filterSearch = ""
		m.filterCursor = 0
		m.filterChecked = make(map[string]bool, len(values))
		if m.table.HasColumnFilter(column) {
			for _, v := range m.table.ColumnFilter(column) {
				m.filterChecked[v] = true
			}
		} else {
			for _, v := range values {
				m.filterChecked[v] = true
			}
		}
		m.mode = modeColumnFilter
	}
	return m, nil
}

func (m *Model) handleColumnFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.visibleFilterValues()
	switch msg.String() {
	case "esc":
		m.mode = modeColumnPick
	case "up":
		if m.filterCursor > 0 {
			m.filterCursor--
		}
	case "down":
		if m.filterCursor < len(visible)-1 {
			m.filterCursor++
		}
	case " ":
		if m.filterCursor < len(visible) {
			v := visible[m.filterCursor]
			m.filterChecked[v] = !m.filterChecked[v]
		}
	case "ctrl+a":
		all := len(visible) > 0
		for _, v := range visible {
			if !m.filterChecked[v] {
				all = false
				break
			}
		}
		for _, v := range visible {
			m.filterChecked[v] = !all
		}
	case "backspace":
		if m.filterSearch != "" {
			runes := []rune(m.filterSearch)
			m.filterSearch = string(runes[:len(runes)-1])
			m.filterCursor = 0
		}
	case "enter":
		var checked []string
		for _, v := range m.filterValues {
			if m.filterChecked[v] {
				checked = append(checked, v)
			}
		}
		m.table.SetColumnFilter(m.filterColumn, checked)
		m.cursor = 0
		m.mode = modeNormal
	default:
		if msg.Type == tea.KeyRunes {
			m.filterSearch += string(msg.Runes)
			m.filterCursor = 0
		}
	}
	return m, nil
}

// visibleFilterValues narrows the checkbox list by the live search text
func (m *Model) visibleFilterValues() []string {
	if m.filterSearch == "" {
		return m.filterValues
	}
	needle := strings.ToLower(m.filterSearch)
	var out []string
	for _, v := range m.filterValues {
		if strings.Contains(strings.ToLower(v), needle) {
			out = append(out, v)
		}
	}
	return out
}

func (m *Model) handleConfirmAuditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		m.mode = modeNormal
		return m, m.recordAuditCmd()
	case "n", "esc", "q":
		m.mode = modeNormal
	}
	return m, nil
}

func (m *Model) handleEvent(event eventbus.DomainEvent) (tea.Model, tea.Cmd) {
	switch ev := event.(type) {
	case eventbus.DataReadyEvent:
		m.loading = false
		if !m.restored {
			m.restored = true
			m.searchEngine.SetQuery(m.cfg.LastSearch.Query)
			m.searchEngine.SetCategory(domain.Category(m.cfg.LastSearch.Category))
			m.filterEngine.RestoreState(m.cfg.LastFacet.FieldID, m.cfg.LastFacet.Value)
		}
		m.searchEngine.PerformSearch()
		if ev.Reloaded {
			m.statusMessage = fmt.Sprintf("データを再読込しました (%d件)", ev.ItemCount)
		}

	case eventbus.ErrorEvent:
		m.statusMessage = ev.Message

	case eventbus.AuditCompletedEvent:
		m.statusMessage = fmt.Sprintf("棚卸を記録しました (%d件)", len(ev.ItemIDs))
	}
	return m, nil
}

func (m *Model) handleAuditRecorded(msg auditRecordedMsg) (tea.Model, tea.Cmd) {
	m.auditing = false
	if msg.err != nil {
		m.statusMessage = "棚卸の記録に失敗しました"
		m.log.Error("audit batch failed", zap.String("session", msg.session), zap.Error(msg.err))
		return m, nil
	}

	m.auditMode = false
	m.card.ClearSelection()
	m.table.SetSelection(nil)
	m.statusMessage = fmt.Sprintf("棚卸を記録しました (%d件)", msg.count)

	if err := m.store.Load(true); err != nil {
		m.log.Error("reload after audit failed", zap.Error(err))
	}
	return m, nil
}

// recordAuditCmd writes the selected items as one audit batch under a
// fresh session id.
func (m *Model) recordAuditCmd() tea.Cmd {
	ids := m.coord.SelectedIDs()
	session := uuid.NewString()
	m.auditing = true
	return func() tea.Msg {
		err := m.histStore.RecordAudit(session, ids, "", time.Now())
		if err == nil {
			m.bus.Publish(eventbus.AuditCompletedEvent{SessionID: session, ItemIDs: ids})
		}
		return auditRecordedMsg{session: session, count: len(ids), err: err}
	}
}

func (m *Model) showHistoryCmd(item *domain.Item) tea.Cmd {
	return func() tea.Msg {
		entries, err := m.histStore.History(item.ID(), 0)
		if err != nil {
			return historyPagerMsg{itemID: item.ID(), err: err}
		}
		teflon, err := m.histStore.TeflonHistory(item.ID())
		if err != nil {
			return historyPagerMsg{itemID: item.ID(), err: err}
		}
		content := views.HistoryText(item, entries, teflon)
		return historyPagerMsg{itemID: item.ID(), err: m.pager.ShowInPager(content)}
	}
}

func (m *Model) openDetail(item *domain.Item) {
	entries, err := m.histStore.History(item.ID(), 5)
	if err != nil {
		m.log.Warn("history tail unavailable", zap.String("item", item.ID()), zap.Error(err))
	}
	m.detailItem = item
	m.detailEntries = entries
	m.mode = modeDetail
}

func (m *Model) persistConfig() {
	fieldID, value := m.filterEngine.State()
	m.cfg.LastSearch.Query = m.searchEngine.Query()
	m.cfg.LastSearch.Category = string(m.searchEngine.Category())
	m.cfg.LastFacet.FieldID = fieldID
	m.cfg.LastFacet.Value = value
	m.cfg.SidebarCollapsed = m.sidebarCollapsed
	m.cfg.UISettings.ScrollLock = m.table.ScrollLocked()

	if err := m.cfgService.Save(m.cfg); err != nil {
		m.log.Error("failed to save config", zap.Error(err))
	}
}

func (m *Model) pageItems() []*domain.Item {
	if m.coord.CurrentView() == coordinator.ViewTable {
		return m.table.PageItems()
	}
	return m.card.PageItems()
}

func (m *Model) cursorItem() *domain.Item {
	items := m.pageItems()
	if m.cursor < 0 || m.cursor >= len(items) {
		return nil
	}
	return items[m.cursor]
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "読込中..."
	}

	active := "card"
	page := m.card.Page()
	totalPages := m.card.TotalPages()
	if m.coord.CurrentView() == coordinator.ViewTable {
		active = "table"
		page = m.table.Page()
		totalPages = m.table.TotalPages()
	}

	fieldID, value := m.filterEngine.State()
	spec := m.filterEngine.Sort()

	state := views.ViewState{
		Width:  m.width,
		Height: m.height,

		Query:         m.searchEngine.Query(),
		Category:      m.searchEngine.Category(),
		SearchFocused: m.mode == modeSearch,
		SearchInput:   m.textInput.Value(),
		Loading:       m.loading || m.auditing,

		ActiveView:    active,
		PageItems:     m.pageItems(),
		Cursor:        m.cursor,
		Selected:      m.isSelected,
		SortColumn:    m.table.SortColumn(),
		SortDirection: m.table.SortDirection(),
		HasColFilter:  m.table.HasColumnFilter,
		Sidebar: views.SidebarState{
			Collapsed:     m.sidebarCollapsed,
			Fields:        m.filterEngine.FieldOptions(),
			ActiveFieldID: fieldID,
			ActiveValue:   value,
			Cursor:        m.fieldCursor,
			PickingValue:  m.mode == modeSidebarValue,
			Values:        m.valueOptions,
			ValueCursor:   m.valueCursor,
			SortField:     spec.Field,
			SortDirection: spec.Direction,
		},

		Page:           page,
		TotalPages:     totalPages,
		ResultCount:    len(m.coord.FilteredItems()),
		SelectionCount: m.coord.SelectionCount(),
		ScrollLocked:   m.table.ScrollLocked(),
		AuditMode:      m.auditMode,
		HelpText:       m.help.View(keys),
		StatusMessage:  m.statusMessage,

		ShowDetail:    m.mode == modeDetail,
		DetailItem:    m.detailItem,
		DetailHistory: m.detailEntries,
		ConfirmAudit:  m.mode == modeConfirmAudit,
	}

	if m.mode == modeColumnPick {
		state.ShowColumnPick = true
		state.ColumnPick = views.ColumnPickState{
			Columns:       render.Columns,
			Labels:        render.ColumnLabels,
			Cursor:        m.columnCursor,
			SortColumn:    m.table.SortColumn(),
			SortDirection: m.table.SortDirection(),
			Filtered:      m.table.HasColumnFilter,
		}
	}
	if m.mode == modeColumnFilter {
		state.ShowColumnFilter = true
		state.ColumnFilter = views.ColumnFilterState{
			Label:   render.ColumnLabels[m.filterColumn],
			Values:  m.visibleFilterValues(),
			Checked: func(v string) bool { return m.filterChecked[v] },
			Cursor:  m.filterCursor,
			Search:  m.filterSearch,
			Total:   len(m.filterValues),
		}
	}

	return m.renderer.Render(state)
}

func (m *Model) isSelected(id string) bool {
	if m.coord.CurrentView() == coordinator.ViewTable {
		return m.table.IsSelected(id)
	}
	return m.card.IsSelected(id)
}

func nextCategory(c domain.Category) domain.Category {
	switch c {
	case domain.CategoryAll:
		return domain.CategoryMold
	case domain.CategoryMold:
		return domain.CategoryCutter
	}
	return domain.CategoryAll
}

func nextSortField(current string) string {
	for i, f := range sortCycle {
		if f == current {
			return sortCycle[(i+1)%len(sortCycle)]
		}
	}
	return sortCycle[0]
}
