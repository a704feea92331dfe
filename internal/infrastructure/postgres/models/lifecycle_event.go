package models

import (
	"time"

	"github.com/Dompi123/fomo-pr-sub002/internal/domain"
)

// LifecycleEventModel rows are insert-only. The compound indexes back
// the ledger's three read paths: venue+time, verifier+time and
// order+event type.
type LifecycleEventModel struct {
	ID               string           `gorm:"primaryKey;type:uuid"`
	OrderID          string           `gorm:"type:uuid;index:idx_order_event_type"`
	VenueID          string           `gorm:"type:uuid;index:idx_venue_timestamp"`
	EventType        domain.EventType `gorm:"index:idx_order_event_type"`
	Timestamp        time.Time        `gorm:"index:idx_venue_timestamp;index:idx_verifier_timestamp"`
	ProcessingTimeMs int64
	HasRevenue       bool
	Subtotal         float64
	ServiceFee       float64
	Tip              float64
	Total            float64
	ItemSnapshot     string `gorm:"type:jsonb"`
	HasVerification  bool
	Method           string
	VerifierRole     string
	AttemptCount     int
	Success          bool
	VerifiedBy       string `gorm:"index:idx_verifier_timestamp"`
	CreatedAt        time.Time
}
