// Package render holds the two result views of the search pipeline: the
// paginated card grid and the sortable/filterable table. Both keep their
// own pagination and selection state over the result set the coordinator
// assigns them; neither ever mutates an item.
package render

import (
	"sort"
	"strconv"

	"kanadex/internal/compare"
	"kanadex/internal/domain"
)

// CardRenderer renders paginated item cards. Pagination and selection
// are its own; the sort preference is shared with the filter sidebar and
// injected as a function so both surfaces stay in step.
type CardRenderer struct {
	items      []*domain.Item
	pageSize   int
	page       int
	totalPages int

	selected map[string]struct{}

	sortFn      func() domain.SortSpec
	clickFn     func(*domain.Item)
	selectionFn func(ids []int)
}

// NewCardRenderer creates a card renderer with the given page size
func NewCardRenderer(pageSize int) *CardRenderer {
	if pageSize <= 0 {
		pageSize = 24
	}
	return &CardRenderer{
		pageSize:   pageSize,
		page:       1,
		totalPages: 1,
		selected:   make(map[string]struct{}),
	}
}

// SetSortFunction sets the provider for the shared sort preference
func (c *CardRenderer) SetSortFunction(fn func() domain.SortSpec) { c.sortFn = fn }

// SetItemClickFunction sets the callback invoked when a card is opened
func (c *CardRenderer) SetItemClickFunction(fn func(*domain.Item)) { c.clickFn = fn }

// SetSelectionChangedFunction sets the callback receiving the selected
// ids as numbers. Ids that do not parse are dropped, matching the bulk
// workflows that consume numeric ids.
func (c *CardRenderer) SetSelectionChangedFunction(fn func(ids []int)) { c.selectionFn = fn }

// Render assigns the result set, applies the shared sort and clamps the
// requested page into the valid range.
func (c *CardRenderer) Render(items []*domain.Item, page int) {
	sorted := make([]*domain.Item, len(items))
	copy(sorted, items)

	spec := domain.DefaultSort()
	if c.sortFn != nil {
		spec = c.sortFn()
	}
	compare.SortItems(sorted, spec)

	c.items = sorted
	c.totalPages = totalPages(len(sorted), c.pageSize)
	c.page = clampPage(page, c.totalPages)
}

// Items returns the full sorted result set
func (c *CardRenderer) Items() []*domain.Item { return c.items }

// PageItems returns the cards of the current page
func (c *CardRenderer) PageItems() []*domain.Item {
	return pageSlice(c.items, c.page, c.pageSize)
}

// Page returns the current 1-based page number
func (c *CardRenderer) Page() int { return c.page }

// TotalPages returns the page count, always at least 1
func (c *CardRenderer) TotalPages() int { return c.totalPages }

// SetPage moves to a page, clamped into [1, totalPages]
func (c *CardRenderer) SetPage(page int) {
	c.page = clampPage(page, c.totalPages)
}

// NextPage advances one page if possible
func (c *CardRenderer) NextPage() { c.SetPage(c.page + 1) }

// PrevPage goes back one page if possible
func (c *CardRenderer) PrevPage() { c.SetPage(c.page - 1) }

// ToggleSelect flips one card's checkbox
func (c *CardRenderer) ToggleSelect(id string) {
	if id == "" {
		return
	}
	if _, ok := c.selected[id]; ok {
		delete(c.selected, id)
	} else {
		c.selected[id] = struct{}{}
	}
	c.notifySelection()
}

// SelectAllResults selects every item across ALL pages of the current
// result set, not just the visible page. The table view's header
// checkbox is the page-scoped counterpart.
func (c *CardRenderer) SelectAllResults() {
	for _, item := range c.items {
		c.selected[item.ID()] = struct{}{}
	}
	c.notifySelection()
}

// ClearSelection unchecks everything
func (c *CardRenderer) ClearSelection() {
	if len(c.selected) == 0 {
		return
	}
	c.selected = make(map[string]struct{})
	c.notifySelection()
}

// SetSelection replaces the selection wholesale without firing the
// callback; the coordinator uses it when mirroring the other view.
func (c *CardRenderer) SetSelection(ids []string) {
	c.selected = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		c.selected[id] = struct{}{}
	}
}

// IsSelected reports whether a card's checkbox is checked
func (c *CardRenderer) IsSelected(id string) bool {
	_, ok := c.selected[id]
	return ok
}

// SelectedIDs returns the selected ids in stable order
func (c *CardRenderer) SelectedIDs() []string {
	ids := make([]string, 0, len(c.selected))
	for id := range c.selected {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return compare.Natural(ids[i], ids[j]) < 0 })
	return ids
}

// SelectionCount returns the number of checked cards
func (c *CardRenderer) SelectionCount() int { return len(c.selected) }

// Click opens an item; the renderer does not know what a detail panel is
func (c *CardRenderer) Click(item *domain.Item) {
	if c.clickFn != nil && item != nil {
		c.clickFn(item)
	}
}

func (c *CardRenderer) notifySelection() {
	if c.selectionFn == nil {
		return
	}
	ids := make([]int, 0, len(c.selected))
	for _, id := range c.SelectedIDs() {
		n, err := strconv.Atoi(id)
		if err != nil {
			continue // non-numeric ids are dropped at this boundary
		}
		ids = append(ids, n)
	}
	c.selectionFn(ids)
}

// totalPages computes ceil(count/pageSize) with a floor of 1
func totalPages(count, pageSize int) int {
	if count <= 0 {
		return 1
	}
	pages := (count + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// clampPage forces a page number into [1, total]
func clampPage(page, total int) int {
	if page < 1 {
		return 1
	}
	if page > total {
		return total
	}
	return page
}

// pageSlice returns the window of items belonging to a 1-based page
func pageSlice(items []*domain.Item, page, pageSize int) []*domain.Item {
	start := (page - 1) * pageSize
	if start >= len(items) {
		return nil
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
