package domain

import "time"

// EventRepository is the append-only ledger port. There is deliberately
// no update or delete operation.
type EventRepository interface {
	AppendEvent(event *LifecycleEvent) error
	GetEventsByVenue(venueID string, from, to time.Time) ([]*LifecycleEvent, error)
	GetEventsByVerifier(verifiedBy string, from, to time.Time) ([]*LifecycleEvent, error)
	GetEventsByOrder(orderID string, eventType EventType) ([]*LifecycleEvent, error)
	CountVerificationAttempts(orderID string) (int64, error)
}
