package domain

import "time"

type EventType string

const (
	EventCreation     EventType = "creation"
	EventStatusChange EventType = "status_change"
	EventVerification EventType = "verification"
	EventCompletion   EventType = "completion"
)

type Revenue struct {
	Subtotal   float64 `json:"subtotal"`
	ServiceFee float64 `json:"service_fee"`
	Tip        float64 `json:"tip"`
	Total      float64 `json:"total"`
}

type VerificationMeta struct {
	Method       string `json:"method"`
	VerifierRole string `json:"verifier_role"`
	AttemptCount int    `json:"attempt_count"`
	Success      bool   `json:"success"`
}

// LifecycleEvent is one immutable row of the audit ledger. Events are
// appended once and never mutated or deleted.
type LifecycleEvent struct {
	ID               string
	OrderID          string
	VenueID          string
	EventType        EventType
	Timestamp        time.Time
	ProcessingTimeMs int64
	Revenue          *Revenue
	ItemSnapshot     string
	Verification     *VerificationMeta
	VerifiedBy       string
}
