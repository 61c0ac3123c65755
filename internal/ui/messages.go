package ui

import (
	"kanadex/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// searchDebounceMsg fires after the typing pause; Seq guards against
// stale timers from earlier keystrokes.
type searchDebounceMsg struct {
	Seq int
}

// historyPagerMsg contains the result of an external pager session
type historyPagerMsg struct {
	itemID string
	err    error
}

// auditRecordedMsg contains the result of writing an audit batch
type auditRecordedMsg struct {
	session string
	count   int
	err     error
}

// quitMsg signals that the application should quit
type quitMsg struct {
	saveConfig bool
}
