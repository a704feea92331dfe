package usecase

import (
	"fmt"
	"sync"
	"time"

	"github.com/Dompi123/fomo-pr-sub002/internal/domain"
)

// In-memory doubles for the repository ports. memPassRepo reproduces
// the store's conditional-write semantics under a mutex so concurrency
// tests race against the same guarantee the Postgres repo provides.

type memPassRepo struct {
	mu     sync.Mutex
	passes map[string]*domain.Pass
}

func newMemPassRepo() *memPassRepo {
	return &memPassRepo{passes: make(map[string]*domain.Pass)}
}

func (r *memPassRepo) CreatePass(pass *domain.Pass) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.passes[pass.ID] = copyPass(pass)
	return nil
}

func (r *memPassRepo) GetPassByID(passID string) (*domain.Pass, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pass, ok := r.passes[passID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrPassNotFound, passID)
	}
	return copyPass(pass), nil
}

func (r *memPassRepo) RedeemPass(passID, verifiedBy, method string, at time.Time) (*domain.Pass, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pass, ok := r.passes[passID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrPassNotFound, passID)
	}
	if pass.Redemption.IsRedeemed {
		return nil, fmt.Errorf("%w: %s", domain.ErrAlreadyRedeemed, passID)
	}

	redeemedAt := at
	pass.Redemption = domain.RedemptionStatus{
		IsRedeemed:         true,
		RedeemedAt:         &redeemedAt,
		VerifiedBy:         verifiedBy,
		VerificationMethod: method,
	}
	pass.Status = domain.StatusRedeemed
	pass.StatusHistory = append(pass.StatusHistory, domain.StatusChange{
		Status:    domain.StatusRedeemed,
		Timestamp: at,
		UpdatedBy: verifiedBy,
	})
	pass.UpdatedAt = at
	return copyPass(pass), nil
}

func (r *memPassRepo) MarkExpired(passID, updatedBy string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pass, ok := r.passes[passID]
	if !ok {
		return false, fmt.Errorf("%w: %s", domain.ErrPassNotFound, passID)
	}
	if pass.Status != domain.StatusActive {
		return false, nil
	}

	pass.Status = domain.StatusExpired
	pass.StatusHistory = append(pass.StatusHistory, domain.StatusChange{
		Status:    domain.StatusExpired,
		Timestamp: at,
		UpdatedBy: updatedBy,
	})
	pass.UpdatedAt = at
	return true, nil
}

func (r *memPassRepo) FindExpiredActive(now time.Time, limit int) ([]*domain.Pass, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domain.Pass
	for _, pass := range r.passes {
		if pass.Status == domain.StatusActive && pass.ExpiryDate.Before(now) {
			out = append(out, copyPass(pass))
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func copyPass(pass *domain.Pass) *domain.Pass {
	clone := *pass
	clone.StatusHistory = append([]domain.StatusChange(nil), pass.StatusHistory...)
	if pass.Redemption.RedeemedAt != nil {
		redeemedAt := *pass.Redemption.RedeemedAt
		clone.Redemption.RedeemedAt = &redeemedAt
	}
	return &clone
}

type memPassTypeRepo struct {
	types map[string]*domain.VenuePassType
}

func newMemPassTypeRepo(types ...*domain.VenuePassType) *memPassTypeRepo {
	repo := &memPassTypeRepo{types: make(map[string]*domain.VenuePassType)}
	for _, t := range types {
		repo.types[t.VenueID+"/"+t.Type] = t
	}
	return repo
}

func (r *memPassTypeRepo) GetVenuePassType(venueID, passType string) (*domain.VenuePassType, error) {
	t, ok := r.types[venueID+"/"+passType]
	if !ok {
		return nil, fmt.Errorf("%w: %s at venue %s", domain.ErrPassTypeUnavailable, passType, venueID)
	}
	clone := *t
	return &clone, nil
}

type memEventRepo struct {
	mu     sync.Mutex
	events []*domain.LifecycleEvent
}

func newMemEventRepo() *memEventRepo {
	return &memEventRepo{}
}

func (r *memEventRepo) AppendEvent(event *domain.LifecycleEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *event
	r.events = append(r.events, &clone)
	return nil
}

func (r *memEventRepo) GetEventsByVenue(venueID string, from, to time.Time) ([]*domain.LifecycleEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.LifecycleEvent
	for _, e := range r.events {
		if e.VenueID == venueID && !e.Timestamp.Before(from) && !e.Timestamp.After(to) {
			clone := *e
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *memEventRepo) GetEventsByVerifier(verifiedBy string, from, to time.Time) ([]*domain.LifecycleEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.LifecycleEvent
	for _, e := range r.events {
		if e.VerifiedBy == verifiedBy && !e.Timestamp.Before(from) && !e.Timestamp.After(to) {
			clone := *e
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *memEventRepo) GetEventsByOrder(orderID string, eventType domain.EventType) ([]*domain.LifecycleEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.LifecycleEvent
	for _, e := range r.events {
		if e.OrderID == orderID && e.EventType == eventType {
			clone := *e
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *memEventRepo) CountVerificationAttempts(orderID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, e := range r.events {
		if e.OrderID == orderID && e.EventType == domain.EventVerification {
			count++
		}
	}
	return count, nil
}

type capturePublisher struct {
	mu     sync.Mutex
	topics []string
	msgs   []domain.Message
}

func (p *capturePublisher) Publish(topic string, msgs ...domain.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, m := range msgs {
		p.topics = append(p.topics, topic)
		p.msgs = append(p.msgs, m)
	}
	return nil
}

func (p *capturePublisher) published() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.msgs)
}
