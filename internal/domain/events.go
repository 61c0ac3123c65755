package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventDataReady        EventType = "DataReady"
	EventSearchPerformed  EventType = "SearchPerformed"
	EventResultsUpdated   EventType = "ResultsUpdated"
	EventFilterApplied    EventType = "FilterApplied"
	EventTableFiltered    EventType = "TableFiltered"
	EventSelectionChanged EventType = "SelectionChanged"
	EventItemClicked      EventType = "ItemClicked"
	EventAuditCompleted   EventType = "AuditCompleted"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
	EventError            EventType = "Error"
)

// Origin identifies which component produced a ResultsUpdated event.
// Listeners that both consume and re-emit the event (the filter engine,
// the table view) skip events they tagged themselves; without that check
// a search would recurse search -> filter -> filter -> ... forever.
type Origin string

const (
	OriginSearch Origin = "search"
	OriginFilter Origin = "filter"
	OriginTable  Origin = "table"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// DataReadyEvent is emitted when the data store has finished (re)loading
type DataReadyEvent struct {
	ItemCount int
	Reloaded  bool
}

func (e DataReadyEvent) Type() EventType { return EventDataReady }

// SearchPerformedEvent is emitted when a search has been requested
type SearchPerformedEvent struct {
	Query string
}

func (e SearchPerformedEvent) Type() EventType { return EventSearchPerformed }

// ResultsUpdatedEvent carries the current filtered/sorted result set.
// This is the single channel components use to receive fresh results.
type ResultsUpdatedEvent struct {
	Results  []*Item
	Total    int
	Query    string
	Category Category
	Origin   Origin
}

func (e ResultsUpdatedEvent) Type() EventType { return EventResultsUpdated }

// FilterAppliedEvent is emitted by the filter sidebar toward the coordinator
type FilterAppliedEvent struct {
	Results  []*Item
	Category Category
	Sort     SortSpec
}

func (e FilterAppliedEvent) Type() EventType { return EventFilterApplied }

// TableFilteredEvent is emitted by the table view after a sort or column
// filter recomputation
type TableFilteredEvent struct {
	Results       []*Item
	SortColumn    string
	SortDirection string
}

func (e TableFilteredEvent) Type() EventType { return EventTableFiltered }

// SelectionChangedEvent is emitted by either result view when the set of
// checked items changes
type SelectionChangedEvent struct {
	Count int
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// ItemClickedEvent is emitted toward the detail panel
type ItemClickedEvent struct {
	Item *Item
}

func (e ItemClickedEvent) Type() EventType { return EventItemClicked }

// AuditCompletedEvent is emitted after a bulk audit batch has been recorded
type AuditCompletedEvent struct {
	SessionID string
	ItemIDs   []string
}

func (e AuditCompletedEvent) Type() EventType { return EventAuditCompleted }

// ConfigLoadedEvent is emitted when persisted UI state is loaded
type ConfigLoadedEvent struct {
	Query    string
	Category Category
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when persisted UI state is written
type ConfigSavedEvent struct{}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ErrorEvent is emitted when a background operation fails
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
