package usecase

import (
	"encoding/json"
	"time"

	"github.com/Dompi123/fomo-pr-sub002/internal/domain"
	"github.com/google/uuid"
)

// EventRecorder appends immutable lifecycle events and serves the
// ledger's read contract. Appends are best-effort telemetry: callers
// log failures and move on, they never roll back pass state.
type EventRecorder interface {
	RecordCreation(pass *domain.Pass, revenue domain.Revenue) error
	RecordStatusChange(pass *domain.Pass, from, to domain.PassStatus, updatedBy string) error
	RecordVerification(pass *domain.Pass, meta domain.VerificationMeta, verifiedBy string, took time.Duration) error
	RecordCompletion(pass *domain.Pass, revenue domain.Revenue, verifiedBy string, took time.Duration) error

	EventsByVenue(venueID string, from, to time.Time) ([]*domain.LifecycleEvent, error)
	EventsByVerifier(verifiedBy string, from, to time.Time) ([]*domain.LifecycleEvent, error)
	EventsByOrder(orderID string, eventType domain.EventType) ([]*domain.LifecycleEvent, error)
}

type DefaultEventRecorder struct {
	EventRepo domain.EventRepository
}

func NewDefaultEventRecorder(eventRepo domain.EventRepository) *DefaultEventRecorder {
	return &DefaultEventRecorder{EventRepo: eventRepo}
}

func (r *DefaultEventRecorder) RecordCreation(pass *domain.Pass, revenue domain.Revenue) error {
	event := newEvent(pass, domain.EventCreation)
	event.Revenue = &revenue
	return r.EventRepo.AppendEvent(event)
}

func (r *DefaultEventRecorder) RecordStatusChange(pass *domain.Pass, from, to domain.PassStatus, updatedBy string) error {
	event := newEvent(pass, domain.EventStatusChange)
	event.VerifiedBy = updatedBy
	event.ItemSnapshot = statusChangeSnapshot(pass, from, to)
	return r.EventRepo.AppendEvent(event)
}

// RecordVerification appends one attempt, successful or not. The
// attempt counter is derived from the ledger itself, distinct from the
// success flag, so a lost concurrent race stays visible in telemetry
// without ever touching revenue.
func (r *DefaultEventRecorder) RecordVerification(pass *domain.Pass, meta domain.VerificationMeta, verifiedBy string, took time.Duration) error {
	prior, err := r.EventRepo.CountVerificationAttempts(pass.ID)
	if err != nil {
		return err
	}
	meta.AttemptCount = int(prior) + 1

	event := newEvent(pass, domain.EventVerification)
	event.VerifiedBy = verifiedBy
	event.ProcessingTimeMs = took.Milliseconds()
	event.Verification = &meta
	return r.EventRepo.AppendEvent(event)
}

func (r *DefaultEventRecorder) RecordCompletion(pass *domain.Pass, revenue domain.Revenue, verifiedBy string, took time.Duration) error {
	event := newEvent(pass, domain.EventCompletion)
	event.VerifiedBy = verifiedBy
	event.ProcessingTimeMs = took.Milliseconds()
	event.Revenue = &revenue
	return r.EventRepo.AppendEvent(event)
}

func (r *DefaultEventRecorder) EventsByVenue(venueID string, from, to time.Time) ([]*domain.LifecycleEvent, error) {
	return r.EventRepo.GetEventsByVenue(venueID, from, to)
}

func (r *DefaultEventRecorder) EventsByVerifier(verifiedBy string, from, to time.Time) ([]*domain.LifecycleEvent, error) {
	return r.EventRepo.GetEventsByVerifier(verifiedBy, from, to)
}

func (r *DefaultEventRecorder) EventsByOrder(orderID string, eventType domain.EventType) ([]*domain.LifecycleEvent, error) {
	return r.EventRepo.GetEventsByOrder(orderID, eventType)
}

func newEvent(pass *domain.Pass, eventType domain.EventType) *domain.LifecycleEvent {
	return &domain.LifecycleEvent{
		ID:           uuid.New().String(),
		OrderID:      pass.ID,
		VenueID:      pass.VenueID,
		EventType:    eventType,
		Timestamp:    time.Now(),
		ItemSnapshot: passSnapshot(pass),
	}
}

func passSnapshot(pass *domain.Pass) string {
	snapshot, _ := json.Marshal(map[string]any{
		"type":  pass.Type,
		"price": pass.PurchasePrice,
	})
	return string(snapshot)
}

func statusChangeSnapshot(pass *domain.Pass, from, to domain.PassStatus) string {
	snapshot, _ := json.Marshal(map[string]any{
		"type": pass.Type,
		"from": from,
		"to":   to,
	})
	return string(snapshot)
}
