package domain

import "time"

type PassStatus string

const (
	StatusActive   PassStatus = "active"
	StatusRedeemed PassStatus = "redeemed"
	StatusExpired  PassStatus = "expired"
)

// RedemptionStatus captures the single consumption of a pass.
// IsRedeemed flips false->true exactly once and never back.
type RedemptionStatus struct {
	IsRedeemed         bool
	RedeemedAt         *time.Time
	VerifiedBy         string
	VerificationMethod string
}

type StatusChange struct {
	Status    PassStatus `json:"status"`
	Timestamp time.Time  `json:"timestamp"`
	UpdatedBy string     `json:"updated_by"`
}

type Pass struct {
	ID               string
	VenueID          string
	UserID           string
	Type             string
	PurchasePrice    float64
	PurchaseDate     time.Time
	ExpiryDate       time.Time
	Status           PassStatus
	Redemption       RedemptionStatus
	VerificationCode string
	StatusHistory    []StatusChange
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (p *Pass) IsExpired(now time.Time) bool {
	return now.After(p.ExpiryDate)
}

// EffectiveStatus derives expiry at read time: a pass past its validity
// window reads as expired even before the sweeper wrote it. An explicit
// redemption that happened before expiry always wins.
func (p *Pass) EffectiveStatus(now time.Time) PassStatus {
	if p.Status == StatusActive && p.IsExpired(now) {
		return StatusExpired
	}
	return p.Status
}

// VenuePassType is one row of the venue's admission catalog.
// Inventory < 0 means unlimited.
type VenuePassType struct {
	ID           string
	VenueID      string
	Type         string
	Price        float64
	ServiceFee   float64
	Enabled      bool
	Inventory    int
	Restrictions []string
}

func (t *VenuePassType) IsAvailable() bool {
	return t.Enabled && t.Inventory != 0
}
