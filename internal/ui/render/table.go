package render

import (
	"sort"
	"strconv"

	"go.uber.org/zap"

	"kanadex/internal/compare"
	"kanadex/internal/domain"
	"kanadex/internal/eventbus"
)

// Column ids of the table view. "date" is the latest status-log
// timestamp and deliberately not the same thing as "productionDate".
const (
	ColumnID             = "id"
	ColumnCode           = "code"
	ColumnName           = "name"
	ColumnKind           = "kind"
	ColumnDimensions     = "dimensions"
	ColumnProductionDate = "productionDate"
	ColumnStatusDate     = "date"
	ColumnLocation       = "location"
	ColumnRackLocation   = "rackLocation"
	ColumnStorageCompany = "storageCompany"
	ColumnCustomer       = "customer"
	ColumnStatus         = "status"
)

// Columns is the fixed display order of the table
var Columns = []string{
	ColumnID, ColumnCode, ColumnName, ColumnKind, ColumnDimensions,
	ColumnProductionDate, ColumnStatusDate, ColumnLocation,
	ColumnRackLocation, ColumnStorageCompany, ColumnCustomer, ColumnStatus,
}

// ColumnLabels maps column ids to their header text
var ColumnLabels = map[string]string{
	ColumnID:             "管理番号",
	ColumnCode:           "コード",
	ColumnName:           "名称",
	ColumnKind:           "種別",
	ColumnDimensions:     "サイズ",
	ColumnProductionDate: "製造日",
	ColumnStatusDate:     "状態更新日",
	ColumnLocation:       "保管場所",
	ColumnRackLocation:   "棚位置",
	ColumnStorageCompany: "保管会社",
	ColumnCustomer:       "得意先",
	ColumnStatus:         "状態",
}

// CellValue extracts a column's display string from an item
func CellValue(item *domain.Item, column string) string {
	switch column {
	case ColumnID:
		return item.ID()
	case ColumnCode:
		return item.CodeText()
	case ColumnName:
		return item.NameText()
	case ColumnKind:
		return string(item.Kind)
	case ColumnDimensions:
		return item.DimensionsText()
	case ColumnProductionDate:
		return item.DisplayDate
	case ColumnStatusDate:
		if d := item.StatusDate(); !d.IsZero() {
			return d.Format("2006/01/02")
		}
		return "-"
	case ColumnLocation:
		return item.LocationText()
	case ColumnRackLocation:
		return item.RackLocationText()
	case ColumnStorageCompany:
		return item.StorageCompanyText()
	case ColumnCustomer:
		return item.CustomerText()
	case ColumnStatus:
		return item.StatusText()
	}
	return ""
}

// TableRenderer renders the sortable data grid with per-column facet
// filters. It acts as a secondary source of truth for sort order: every
// user-driven recomputation re-emits the result set so the card view and
// the sidebar see the same ordering when the user switches over.
type TableRenderer struct {
	bus eventbus.EventBus
	log *zap.Logger

	items    []*domain.Item // result set assigned by the coordinator
	filtered []*domain.Item // after column filters and sort

	sortColumn    string // "" means the default production-date order
	sortDirection string

	columnFilters map[string]map[string]struct{}

	pageSize   int
	page       int
	totalPages int

	selected map[string]struct{}

	scrollLock bool // presentational sticky-column lock, no data meaning

	clickFn     func(*domain.Item)
	selectionFn func(ids []int)
}

// NewTableRenderer creates a table renderer with the given page size
func NewTableRenderer(pageSize int, bus eventbus.EventBus, log *zap.Logger) *TableRenderer {
	if pageSize <= 0 {
		pageSize = 50
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &TableRenderer{
		bus:           bus,
		log:           log,
		sortDirection: "desc",
		columnFilters: make(map[string]map[string]struct{}),
		pageSize:      pageSize,
		page:          1,
		totalPages:    1,
		selected:      make(map[string]struct{}),
	}
}

// SetItemClickFunction sets the row-open callback
func (t *TableRenderer) SetItemClickFunction(fn func(*domain.Item)) { t.clickFn = fn }

// SetSelectionChangedFunction sets the selection callback (numeric ids,
// unparseable ones dropped)
func (t *TableRenderer) SetSelectionChangedFunction(fn func(ids []int)) { t.selectionFn = fn }

// Render assigns a result set from a user-visible refresh and recomputes
// with re-emission, preserving the current page: table re-renders are
// mostly in-place sort clicks where page continuity matters more than a
// reset (the card view is the one the coordinator resets to page 1).
func (t *TableRenderer) Render(items []*domain.Item) {
	t.items = items
	t.recompute(true)
}

// SetItems is the coordinator's silent assignment: same recomputation,
// no re-emission. Emitting here would bounce the coordinator's own push
// straight back into the pipeline.
func (t *TableRenderer) SetItems(items []*domain.Item) {
	t.items = items
	t.recompute(false)
}

// Filtered returns the rows after column filters and sort
func (t *TableRenderer) Filtered() []*domain.Item { return t.filtered }

// PageItems returns the visible rows of the current page
func (t *TableRenderer) PageItems() []*domain.Item {
	return pageSlice(t.filtered, t.page, t.pageSize)
}

// Page returns the current 1-based page
func (t *TableRenderer) Page() int { return t.page }

// TotalPages returns the page count, floor 1
func (t *TableRenderer) TotalPages() int { return t.totalPages }

// SetPage moves to a page, clamped
func (t *TableRenderer) SetPage(page int) { t.page = clampPage(page, t.totalPages) }

// NextPage advances one page
func (t *TableRenderer) NextPage() { t.SetPage(t.page + 1) }

// PrevPage goes back one page
func (t *TableRenderer) PrevPage() { t.SetPage(t.page - 1) }

// SortColumn returns the active sort column ("" = default order)
func (t *TableRenderer) SortColumn() string { return t.sortColumn }

// SortDirection returns "asc" or "desc"
func (t *TableRenderer) SortDirection() string { return t.sortDirection }

// ClickColumn handles a header click: toggle direction on the active
// column, otherwise select the column with descending as the opener.
func (t *TableRenderer) ClickColumn(column string) {
	if column == t.sortColumn {
		if t.sortDirection == "desc" {
			t.sortDirection = "asc"
		} else {
			t.sortDirection = "desc"
		}
	} else {
		t.sortColumn = column
		t.sortDirection = "desc"
	}
	t.recompute(true)
}

// SetSort adopts a sort column/direction from outside (coordinator
// mirroring the sidebar) without re-emitting.
func (t *TableRenderer) SetSort(column, direction string) {
	t.sortColumn = column
	if direction != "" {
		t.sortDirection = direction
	}
	t.recompute(false)
}

// ColumnValues returns the distinct values of a column across the
// assigned result set, naturally ordered, for the filter popup.
func (t *TableRenderer) ColumnValues(column string) []string {
	seen := make(map[string]struct{})
	var values []string
	for _, item := range t.items {
		v := CellValue(item, column)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Slice(values, func(i, j int) bool { return compare.Natural(values[i], values[j]) < 0 })
	return values
}

// SetColumnFilter restricts a column to an include-set of values. An
// empty or complete set removes the restriction: all boxes checked means
// "no filter", matching the popup's default state.
func (t *TableRenderer) SetColumnFilter(column string, values []string) {
	if len(values) == 0 || len(values) >= len(t.ColumnValues(column)) {
		delete(t.columnFilters, column)
	} else {
		set := make(map[string]struct{}, len(values))
		for _, v := range values {
			set[v] = struct{}{}
		}
		t.columnFilters[column] = set
	}
	t.recompute(true)
}

// HasColumnFilter reports whether a column is restricted
func (t *TableRenderer) HasColumnFilter(column string) bool {
	_, ok := t.columnFilters[column]
	return ok
}

// ColumnFilter returns the active include set for a column, naturally
// ordered, or nil when the column is unrestricted.
func (t *TableRenderer) ColumnFilter(column string) []string {
	set, ok := t.columnFilters[column]
	if !ok {
		return nil
	}
	values := make([]string, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	sort.Slice(values, func(i, j int) bool { return compare.Natural(values[i], values[j]) < 0 })
	return values
}

// ClearColumnFilters drops every column restriction. Silent: the
// coordinator clears filters while adopting a sidebar result set, and
// that push must not re-enter the pipeline.
func (t *TableRenderer) ClearColumnFilters() {
	if len(t.columnFilters) == 0 {
		return
	}
	t.columnFilters = make(map[string]map[string]struct{})
	t.recompute(false)
}

// ToggleSelectAll is the header checkbox: page-scoped. If every visible
// row is selected it unselects them, otherwise it selects them. Distinct
// from SelectAllResults, which is the bulk-audit path over every
// filtered row.
func (t *TableRenderer) ToggleSelectAll() {
	visible := t.PageItems()
	allSelected := len(visible) > 0
	for _, item := range visible {
		if _, ok := t.selected[item.ID()]; !ok {
			allSelected = false
			break
		}
	}
	for _, item := range visible {
		if allSelected {
			delete(t.selected, item.ID())
		} else {
			t.selected[item.ID()] = struct{}{}
		}
	}
	t.notifySelection()
}

// SelectAllResults selects every filtered row across all pages
func (t *TableRenderer) SelectAllResults() {
	for _, item := range t.filtered {
		t.selected[item.ID()] = struct{}{}
	}
	t.notifySelection()
}

// ToggleSelect flips one row's checkbox
func (t *TableRenderer) ToggleSelect(id string) {
	if id == "" {
		return
	}
	if _, ok := t.selected[id]; ok {
		delete(t.selected, id)
	} else {
		t.selected[id] = struct{}{}
	}
	t.notifySelection()
}

// ClearSelection unchecks every row
func (t *TableRenderer) ClearSelection() {
	if len(t.selected) == 0 {
		return
	}
	t.selected = make(map[string]struct{})
	t.notifySelection()
}

// SetSelection replaces the selection without firing the callback
func (t *TableRenderer) SetSelection(ids []string) {
	t.selected = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		t.selected[id] = struct{}{}
	}
}

// IsSelected reports whether a row is checked
func (t *TableRenderer) IsSelected(id string) bool {
	_, ok := t.selected[id]
	return ok
}

// SelectedIDs returns the checked ids in stable order
func (t *TableRenderer) SelectedIDs() []string {
	ids := make([]string, 0, len(t.selected))
	for id := range t.selected {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return compare.Natural(ids[i], ids[j]) < 0 })
	return ids
}

// SelectionCount returns the number of checked rows
func (t *TableRenderer) SelectionCount() int { return len(t.selected) }

// Click opens a row
func (t *TableRenderer) Click(item *domain.Item) {
	if t.clickFn != nil && item != nil {
		t.clickFn(item)
	}
}

// ToggleScrollLock flips the sticky-column lock; purely presentational
func (t *TableRenderer) ToggleScrollLock() { t.scrollLock = !t.scrollLock }

// ScrollLocked reports the sticky-column lock state
func (t *TableRenderer) ScrollLocked() bool { return t.scrollLock }

// recompute applies column filters, sorts, paginates and optionally
// re-emits the result set.
func (t *TableRenderer) recompute(emit bool) {
	filtered := make([]*domain.Item, 0, len(t.items))
	for _, item := range t.items {
		if t.matchesColumnFilters(item) {
			filtered = append(filtered, item)
		}
	}
	t.sortRows(filtered)
	t.filtered = filtered

	t.totalPages = totalPages(len(filtered), t.pageSize)
	t.page = clampPage(t.page, t.totalPages)

	if !emit || t.bus == nil {
		return
	}
	t.log.Debug("table recomputed",
		zap.String("sortColumn", t.sortColumn),
		zap.String("direction", t.sortDirection),
		zap.Int("rows", len(filtered)))
	t.bus.Publish(eventbus.TableFilteredEvent{
		Results:       filtered,
		SortColumn:    t.sortColumn,
		SortDirection: t.sortDirection,
	})
	t.bus.Publish(eventbus.ResultsUpdatedEvent{
		Results: filtered,
		Total:   len(filtered),
		Origin:  domain.OriginTable,
	})
}

func (t *TableRenderer) matchesColumnFilters(item *domain.Item) bool {
	for column, allowed := range t.columnFilters {
		if _, ok := allowed[CellValue(item, column)]; !ok {
			return false
		}
	}
	return true
}

func (t *TableRenderer) sortRows(rows []*domain.Item) {
	desc := t.sortDirection == "desc"

	switch t.sortColumn {
	case "", ColumnProductionDate:
		// Default order: production date, missing dates oldest
		sort.SliceStable(rows, func(i, j int) bool {
			c := compare.Dates(rows[i].ProductionDate, rows[j].ProductionDate)
			if desc {
				return c > 0
			}
			return c < 0
		})
	case ColumnStatusDate:
		sort.SliceStable(rows, func(i, j int) bool {
			c := compare.Dates(rows[i].StatusDate(), rows[j].StatusDate())
			if desc {
				return c > 0
			}
			return c < 0
		})
	case ColumnDimensions:
		sort.SliceStable(rows, func(i, j int) bool {
			a, b := rows[i].DimensionsText(), rows[j].DimensionsText()
			// Unparseable values stay at the end whichever way we sort
			pa, pb := compare.DimensionsParsed(a), compare.DimensionsParsed(b)
			if pa != pb {
				return pa
			}
			c := compare.Dimensions(a, b)
			if desc {
				return c > 0
			}
			return c < 0
		})
	default:
		if !isKnownColumn(t.sortColumn) {
			return // stale sort key from an old session: leave order alone
		}
		sort.SliceStable(rows, func(i, j int) bool {
			c := compare.Natural(CellValue(rows[i], t.sortColumn), CellValue(rows[j], t.sortColumn))
			if desc {
				return c > 0
			}
			return c < 0
		})
	}
}

func isKnownColumn(column string) bool {
	for _, c := range Columns {
		if c == column {
			return true
		}
	}
	return false
}

func (t *TableRenderer) notifySelection() {
	if t.selectionFn == nil {
		return
	}
	ids := make([]int, 0, len(t.selected))
	for _, id := range t.SelectedIDs() {
		n, err := strconv.Atoi(id)
		if err != nil {
			continue
		}
		ids = append(ids, n)
	}
	t.selectionFn(ids)
}
