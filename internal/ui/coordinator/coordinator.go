// Package coordinator keeps the two result views, the search engine and
// the filter sidebar mutually consistent. It owns the view toggle, the
// page mirror, the cross-view selection set and the translation between
// the table's sort-column vocabulary and the sidebar's sort fields.
package coordinator

import (
	"go.uber.org/zap"

	"kanadex/internal/domain"
	"kanadex/internal/eventbus"
	"kanadex/internal/filter"
	"kanadex/internal/search"
	"kanadex/internal/ui/render"
)

// View identifies the active result view
type View string

const (
	ViewCard  View = "card"
	ViewTable View = "table"
)

// tableToFilterField translates table sort columns into the sidebar's
// sort vocabulary. Grown historically on both surfaces; the mapping is
// kept for behavioral compatibility, with the vocabularies themselves
// now pinned by the shared SortSpec.
var tableToFilterField = map[string]string{
	render.ColumnDimensions:     "size",
	render.ColumnID:             "id",
	render.ColumnCode:           "code",
	render.ColumnLocation:       "location",
	render.ColumnProductionDate: "productionDate",
	render.ColumnStorageCompany: "company",
}

// filterToTableColumn is the reverse direction, used when a sidebar
// filter run must re-align the table's header sort.
var filterToTableColumn = func() map[string]string {
	m := make(map[string]string, len(tableToFilterField))
	for column, field := range tableToFilterField {
		m[field] = column
	}
	return m
}()

// Coordinator orchestrates the pipeline around the two renderers
type Coordinator struct {
	bus    eventbus.EventBus
	search *search.Engine
	filter *filter.Engine
	card   *render.CardRenderer
	table  *render.TableRenderer
	log    *zap.Logger

	currentView   View
	filteredItems []*domain.Item
	selectedIDs   map[string]struct{}

	// Guards: syncing one view's selection into the other fires the
	// same callback we are reacting to; without the flag the sync
	// recurses until the stack gives out.
	isSyncingSelection bool
}

// NewCoordinator wires the services together and subscribes to the bus
func NewCoordinator(bus eventbus.EventBus, se *search.Engine, fe *filter.Engine,
	card *render.CardRenderer, table *render.TableRenderer, log *zap.Logger) *Coordinator {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Coordinator{
		bus:         bus,
		search:      se,
		filter:      fe,
		card:        card,
		table:       table,
		log:         log,
		currentView: ViewCard,
		selectedIDs: make(map[string]struct{}),
	}

	card.SetSortFunction(fe.Sort)
	card.SetSelectionChangedFunction(func([]int) { c.syncSelectionFrom(card.SelectedIDs()) })
	table.SetSelectionChangedFunction(func([]int) { c.syncSelectionFrom(table.SelectedIDs()) })

	bus.Subscribe(eventbus.EventResultsUpdated, c.onResultsUpdated)
	bus.Subscribe(eventbus.EventFilterApplied, c.onFilterApplied)
	bus.Subscribe(eventbus.EventTableFiltered, c.onTableFiltered)

	return c
}

// CurrentView returns the active result view
func (c *Coordinator) CurrentView() View { return c.currentView }

// FilteredItems returns the result set both views are showing
func (c *Coordinator) FilteredItems() []*domain.Item { return c.filteredItems }

// SelectedIDs returns the cross-view selection mirror
func (c *Coordinator) SelectedIDs() []string {
	ids := make([]string, 0, len(c.selectedIDs))
	for id := range c.selectedIDs {
		ids = append(ids, id)
	}
	return ids
}

// SelectionCount returns the size of the shared selection
func (c *Coordinator) SelectionCount() int { return len(c.selectedIDs) }

// CurrentPage returns the active view's page
func (c *Coordinator) CurrentPage() int {
	if c.currentView == ViewTable {
		return c.table.Page()
	}
	return c.card.Page()
}

// SwitchView toggles card/table, carrying the other view's page number
// over so the user keeps their place. The carry-over is deliberately
// naive: page N of one view maps to page N of the other, clamped.
func (c *Coordinator) SwitchView(view View) {
	if view == c.currentView {
		return
	}
	switch view {
	case ViewTable:
		c.table.SetPage(c.card.Page())
		c.table.SetItems(c.filteredItems)
	case ViewCard:
		c.card.Render(c.filteredItems, c.table.Page())
	default:
		return
	}
	c.currentView = view
}

// ToggleView flips between the two views
func (c *Coordinator) ToggleView() {
	if c.currentView == ViewCard {
		c.SwitchView(ViewTable)
	} else {
		c.SwitchView(ViewCard)
	}
}

// SetPage pages the active view
func (c *Coordinator) SetPage(page int) {
	if c.currentView == ViewTable {
		c.table.SetPage(page)
	} else {
		c.card.SetPage(page)
	}
}

// NextPage advances the active view one page
func (c *Coordinator) NextPage() { c.SetPage(c.CurrentPage() + 1) }

// PrevPage goes back one page on the active view
func (c *Coordinator) PrevPage() { c.SetPage(c.CurrentPage() - 1) }

// ResetAll returns category, selection and table sort/filter state to
// their defaults in one pass, then re-runs search and filter from the
// blank state.
func (c *Coordinator) ResetAll() {
	c.search.SetCategory(domain.CategoryAll)

	c.isSyncingSelection = true
	c.selectedIDs = make(map[string]struct{})
	c.card.SetSelection(nil)
	c.table.SetSelection(nil)
	c.isSyncingSelection = false

	c.table.SetSort("", "desc")
	c.table.ClearColumnFilters()
	c.filter.SetSortSilent(domain.DefaultSort())

	c.filter.ResetAll()

	if c.bus != nil {
		c.bus.Publish(eventbus.SelectionChangedEvent{Count: 0})
	}
}

// onResultsUpdated adopts fresh result sets coming from the search or
// filter engines. Table-tagged events are ignored here: the table's own
// recomputation already updated it, and its narrowing is folded back in
// through the filter engine's re-emission.
func (c *Coordinator) onResultsUpdated(ev eventbus.DomainEvent) {
	update, ok := ev.(eventbus.ResultsUpdatedEvent)
	if !ok {
		return
	}
	switch update.Origin {
	case domain.OriginTable:
		return
	case domain.OriginSearch:
		// With an active facet the filter engine re-emits the narrowed
		// set right after this event; adopting the wide set too would
		// flash unfiltered results and fight the narrowed adoption.
		if c.filter.Active() {
			return
		}
	}

	c.adopt(update.Results)
}

// onFilterApplied adopts a sidebar filter run: results come verbatim
// (already narrowed and sorted), the card view restarts at page 1 and
// the table's header sort is re-aligned to the sidebar's field. The
// table's column filters are cleared so two independent filter layers
// cannot silently contradict each other about which rows are missing.
func (c *Coordinator) onFilterApplied(ev eventbus.DomainEvent) {
	applied, ok := ev.(eventbus.FilterAppliedEvent)
	if !ok {
		return
	}

	c.table.ClearColumnFilters()
	if column, ok := filterToTableColumn[applied.Sort.Field]; ok {
		c.table.SetSort(column, applied.Sort.Direction)
	}
	c.adopt(applied.Results)
}

// onTableFiltered mirrors a table header sort into the sidebar's sort
// state. The push is silent: echoing it back through the filter engine
// would re-trigger the very recomputation that produced this event.
func (c *Coordinator) onTableFiltered(ev eventbus.DomainEvent) {
	filtered, ok := ev.(eventbus.TableFilteredEvent)
	if !ok {
		return
	}
	if field, ok := tableToFilterField[filtered.SortColumn]; ok {
		c.filter.SetSortSilent(domain.SortSpec{Field: field, Direction: filtered.SortDirection})
	}
	c.log.Debug("table sort mirrored to sidebar",
		zap.String("column", filtered.SortColumn),
		zap.String("direction", filtered.SortDirection))
}

// adopt installs a result set into both views; the card view restarts
// at page 1, the table keeps its page (clamped).
func (c *Coordinator) adopt(results []*domain.Item) {
	c.filteredItems = results
	c.card.Render(results, 1)
	c.table.SetItems(results)
}

// syncSelectionFrom mirrors one view's selection into the shared set
// and the other view, then announces the new count.
func (c *Coordinator) syncSelectionFrom(ids []string) {
	if c.isSyncingSelection {
		return
	}
	c.isSyncingSelection = true
	defer func() { c.isSyncingSelection = false }()

	c.selectedIDs = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		c.selectedIDs[id] = struct{}{}
	}
	c.card.SetSelection(ids)
	c.table.SetSelection(ids)

	if c.bus != nil {
		c.bus.Publish(eventbus.SelectionChangedEvent{Count: len(ids)})
	}
}
