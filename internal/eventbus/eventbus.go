package eventbus

import (
	"runtime/debug"
	"sync"

	"go.uber.org/zap"

	"kanadex/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventDataReady        = domain.EventDataReady
	EventSearchPerformed  = domain.EventSearchPerformed
	EventResultsUpdated   = domain.EventResultsUpdated
	EventFilterApplied    = domain.EventFilterApplied
	EventTableFiltered    = domain.EventTableFiltered
	EventSelectionChanged = domain.EventSelectionChanged
	EventItemClicked      = domain.EventItemClicked
	EventAuditCompleted   = domain.EventAuditCompleted
	EventConfigLoaded     = domain.EventConfigLoaded
	EventConfigSaved      = domain.EventConfigSaved
	EventError            = domain.EventError
)

// Re-export domain event types
type DataReadyEvent = domain.DataReadyEvent
type SearchPerformedEvent = domain.SearchPerformedEvent
type ResultsUpdatedEvent = domain.ResultsUpdatedEvent
type FilterAppliedEvent = domain.FilterAppliedEvent
type TableFilteredEvent = domain.TableFilteredEvent
type SelectionChangedEvent = domain.SelectionChangedEvent
type ItemClickedEvent = domain.ItemClickedEvent
type AuditCompletedEvent = domain.AuditCompletedEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigSavedEvent = domain.ConfigSavedEvent
type ErrorEvent = domain.ErrorEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
}

// bus is the concrete implementation of EventBus.
//
// Dispatch is synchronous: Publish runs every handler in registration
// order on the calling goroutine before returning. The whole
// search/filter/render pipeline relies on that ordering; re-emission
// loops are broken by origin tags, not by queueing.
type bus struct {
	mu       sync.Mutex
	handlers map[EventType][]*subscription
	log      *zap.Logger
}

type subscription struct {
	handler EventHandler
}

// New creates a new event bus
func New(log *zap.Logger) EventBus {
	if log == nil {
		log = zap.NewNop()
	}
	return &bus{
		handlers: make(map[EventType][]*subscription),
		log:      log,
	}
}

// Publish delivers an event to all subscribers of its type, in the order
// they subscribed. Handlers may publish further events; those are fully
// dispatched before this call returns to the handler.
func (b *bus) Publish(event DomainEvent) {
	switch event.Type() {
	case EventResultsUpdated:
		// High-frequency event, keep the log quiet
	default:
		b.log.Debug("publishing event", zap.String("type", string(event.Type())))
	}

	b.mu.Lock()
	subs := b.handlers[event.Type()]
	// Copy so re-entrant Subscribe/unsubscribe cannot corrupt the walk
	subsCopy := make([]*subscription, len(subs))
	copy(subsCopy, subs)
	b.mu.Unlock()

	for _, sub := range subsCopy {
		b.call(sub, event)
	}
}

func (b *bus) call(sub *subscription, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("event handler panic",
				zap.String("type", string(event.Type())),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()))
		}
	}()
	sub.handler(event)
}

// Subscribe subscribes to events of a specific type.
// Returns an unsubscribe function.
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := &subscription{handler: handler}
	b.handlers[eventType] = append(b.handlers[eventType], sub)

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s == sub {
				b.handlers[eventType] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
	}
}
