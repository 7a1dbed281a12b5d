package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/jinyier/jinyier/internal/models"
)

// EventLog is the append-only record of narrated occurrences. It is not safe
// for concurrent use; Game guards it.
type EventLog struct {
	events    []models.GameEvent
	now       func() time.Time
	listeners []func(models.GameEvent)
}

// NewEventLog creates an empty log stamped by now.
func NewEventLog(now func() time.Time) *EventLog {
	return &EventLog{now: now}
}

// Append records a new event and notifies listeners.
func (l *EventLog) Append(message string, category models.Category) models.GameEvent {
	event := models.GameEvent{
		ID:        uuid.NewString(),
		Message:   message,
		Category:  category,
		Timestamp: l.now(),
	}
	l.events = append(l.events, event)
	for _, fn := range l.listeners {
		fn(event)
	}
	return event
}

// Events returns a copy of the log, oldest first.
func (l *EventLog) Events() []models.GameEvent {
	return append([]models.GameEvent(nil), l.events...)
}

// Len is the number of recorded events.
func (l *EventLog) Len() int {
	return len(l.events)
}

// Replace swaps the whole log, as when a snapshot is loaded. Listeners are not
// notified.
func (l *EventLog) Replace(events []models.GameEvent) {
	l.events = append([]models.GameEvent(nil), events...)
}

// Subscribe registers fn to be called for every appended event. fn runs while
// the game lock is held and must not block.
func (l *EventLog) Subscribe(fn func(models.GameEvent)) {
	l.listeners = append(l.listeners, fn)
}
