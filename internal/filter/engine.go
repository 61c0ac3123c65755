// Package filter implements the sidebar facet filter: one field+value
// facet at a time, re-applied over every result set that arrives on the
// bus and re-emitted with its own origin tag.
package filter

import (
	"strings"

	"go.uber.org/zap"

	"kanadex/internal/compare"
	"kanadex/internal/domain"
	"kanadex/internal/eventbus"
)

// Searcher is the search-engine surface the filter engine drives when a
// facet is cleared or re-applied from the sidebar.
type Searcher interface {
	SetQuery(string)
	Query() string
	Category() domain.Category
	PerformSearch() []*domain.Item
}

// ItemSource supplies the full universe for value-option lists
type ItemSource interface {
	GetAllItems() []*domain.Item
}

// Engine holds the single active facet and the shared sort preference.
//
// It listens for ResultsUpdated events from the search engine and the
// table view, narrows them by the active facet and re-emits the result
// tagged OriginFilter. Events carrying that tag are skipped: without the
// guard every search would recurse search -> filter -> filter -> ...
// until the stack blew. That guard is the single most load-bearing
// conditional in this package.
type Engine struct {
	bus      eventbus.EventBus
	searcher Searcher
	source   ItemSource
	log      *zap.Logger

	fieldID string
	value   string
	sort    domain.SortSpec

	lastResults []*domain.Item
	persistFn   func(fieldID, value string)
}

// NewEngine creates a filter engine and subscribes it to the bus
func NewEngine(bus eventbus.EventBus, searcher Searcher, source ItemSource, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	e := &Engine{
		bus:      bus,
		searcher: searcher,
		source:   source,
		log:      log,
		sort:     domain.DefaultSort(),
	}
	if bus != nil {
		bus.Subscribe(eventbus.EventResultsUpdated, e.onResultsUpdated)
	}
	return e
}

// SetPersistFunction sets the callback that saves facet state between sessions
func (e *Engine) SetPersistFunction(fn func(fieldID, value string)) {
	e.persistFn = fn
}

// State returns the active facet (empty fieldID means none)
func (e *Engine) State() (fieldID, value string) {
	return e.fieldID, e.value
}

// Active reports whether a facet is currently narrowing results
func (e *Engine) Active() bool {
	return e.fieldID != "" && e.value != ""
}

// Sort returns the shared sort preference
func (e *Engine) Sort() domain.SortSpec { return e.sort }

// LastResults returns the most recent narrowed result set
func (e *Engine) LastResults() []*domain.Item { return e.lastResults }

// FieldOptions returns the facet catalog in its fixed order
func (e *Engine) FieldOptions() []Field {
	return Catalog
}

// ValueOptions derives the distinct non-empty values of a field across
// ALL items, not just the current result set. Intentional: the value
// dropdown reflects the universe, so an operator can widen a narrowed
// view by picking a different value.
func (e *Engine) ValueOptions(fieldID string) []string {
	field := FieldByID(fieldID)
	if field == nil || e.source == nil {
		return nil
	}

	seen := make(map[string]struct{})
	var values []string
	for _, item := range e.source.GetAllItems() {
		v := field.Getter(item)
		if v == "" || v == "-" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	compare.SortStrings(values)
	return values
}

// SetState is the single programmatic mutator for the facet. It re-runs
// the current search so the narrowing starts from the full result set,
// then announces the outcome to the coordinator.
func (e *Engine) SetState(fieldID, value string) {
	if fieldID == "" {
		value = "" // a value without a field is meaningless
	}
	e.fieldID = fieldID
	e.value = value
	e.persist()
	e.reapply()
}

// SetSort changes the shared sort preference and re-announces the
// current results in the new order.
func (e *Engine) SetSort(spec domain.SortSpec) {
	e.sort = spec
	e.reapply()
}

// SetSortSilent adopts a sort preference without emitting any events.
// The coordinator uses it when mirroring a table-header sort; emitting
// here would bounce the same change straight back at the table.
func (e *Engine) SetSortSilent(spec domain.SortSpec) {
	e.sort = spec
}

// RestoreState adopts persisted facet state without emitting events;
// used once at startup before the first search runs.
func (e *Engine) RestoreState(fieldID, value string) {
	if fieldID == "" {
		value = ""
	}
	e.fieldID = fieldID
	e.value = value
}

// Reset clears the facet but keeps the active text query: the search is
// re-issued as-is against the full item set. ResetAll is the wider
// operation that clears the query too; the two are deliberately distinct
// entry points with different blast radii.
func (e *Engine) Reset() {
	e.fieldID = ""
	e.value = ""
	e.persist()
	e.reapply()
}

// ResetAll clears both the facet and the text query
func (e *Engine) ResetAll() {
	e.fieldID = ""
	e.value = ""
	if e.searcher != nil {
		e.searcher.SetQuery("")
	}
	e.persist()
	e.reapply()
}

// ApplyFilter narrows a list by one facet. Identity when either side of
// the facet is empty. Matching is a case-insensitive substring test, the
// same philosophy as keyword search, and the function is pure: calling
// it twice with the same arguments yields the same result.
func ApplyFilter(list []*domain.Item, fieldID, value string) []*domain.Item {
	if fieldID == "" || value == "" {
		return list
	}
	field := FieldByID(fieldID)
	if field == nil {
		return list
	}

	needle := strings.ToLower(strings.TrimSpace(value))
	if needle == "" {
		return list
	}

	filtered := make([]*domain.Item, 0, len(list))
	for _, item := range list {
		if strings.Contains(strings.ToLower(field.Getter(item)), needle) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// onResultsUpdated narrows every incoming result set by the active facet
// and re-emits it. Must skip self-tagged events (see type doc).
func (e *Engine) onResultsUpdated(ev eventbus.DomainEvent) {
	update, ok := ev.(eventbus.ResultsUpdatedEvent)
	if !ok {
		return
	}
	if update.Origin == domain.OriginFilter {
		return // our own re-emission coming back around
	}

	if e.fieldID == "" || e.value == "" {
		e.lastResults = update.Results
		return
	}

	narrowed := ApplyFilter(update.Results, e.fieldID, e.value)
	e.lastResults = narrowed

	e.log.Debug("facet narrowed results",
		zap.String("field", e.fieldID),
		zap.String("value", e.value),
		zap.Int("in", len(update.Results)),
		zap.Int("out", len(narrowed)))

	e.bus.Publish(eventbus.ResultsUpdatedEvent{
		Results:  narrowed,
		Total:    len(narrowed),
		Query:    update.Query,
		Category: update.Category,
		Origin:   domain.OriginFilter,
	})
}

// reapply re-runs the current search (which round-trips through
// onResultsUpdated synchronously) and announces the narrowed, sorted set
// to the coordinator.
func (e *Engine) reapply() {
	if e.searcher == nil {
		return
	}

	e.searcher.PerformSearch()

	sorted := make([]*domain.Item, len(e.lastResults))
	copy(sorted, e.lastResults)
	compare.SortItems(sorted, e.sort)
	e.lastResults = sorted

	if e.bus != nil {
		e.bus.Publish(eventbus.FilterAppliedEvent{
			Results:  sorted,
			Category: e.searcher.Category(),
			Sort:     e.sort,
		})
	}
}

func (e *Engine) persist() {
	if e.persistFn != nil {
		e.persistFn(e.fieldID, e.value)
	}
}
