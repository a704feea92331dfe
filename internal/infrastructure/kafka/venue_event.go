package kafka

import (
	"encoding/json"
	"time"

	"github.com/Dompi123/fomo-pr-sub002/internal/domain"
)

const (
	VenueEventPassPurchased = "pass_purchased"
	VenueEventPassRedeemed  = "pass_redeemed"
)

// VenueUpdateEvent is the at-least-once message pushed to the venue
// update channel. Deduplication is the subscriber's problem.
type VenueUpdateEvent struct {
	EventType string    `json:"event_type"`
	PassID    string    `json:"pass_id"`
	VenueID   string    `json:"venue_id"`
	UserID    string    `json:"user_id"`
	PassType  string    `json:"pass_type"`
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// MarshalVenueUpdate keys the message by venue so one venue's updates
// stay ordered within a partition.
func MarshalVenueUpdate(event VenueUpdateEvent) (domain.Message, error) {
	v, err := json.Marshal(event)
	if err != nil {
		return domain.Message{}, err
	}
	return domain.Message{Key: []byte(event.VenueID), Value: v}, nil
}
