package models

import (
	"time"

	"github.com/Dompi123/fomo-pr-sub002/internal/domain"
)

type PassModel struct {
	ID                 string `gorm:"primaryKey;type:uuid"`
	VenueID            string `gorm:"type:uuid;index:idx_venue_status"`
	UserID             string `gorm:"type:uuid;index"`
	Type               string
	PurchasePrice      float64
	PurchaseDate       time.Time
	ExpiryDate         time.Time         `gorm:"index:idx_status_expiry"`
	Status             domain.PassStatus `gorm:"index:idx_status_expiry;index:idx_venue_status"`
	IsRedeemed         bool              `gorm:"not null;default:false"`
	RedeemedAt         *time.Time
	VerifiedBy         string
	VerificationMethod string
	VerificationCode   string
	StatusHistory      string `gorm:"type:jsonb;default:'[]'"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type VenuePassTypeModel struct {
	ID           string `gorm:"primaryKey;type:uuid"`
	VenueID      string `gorm:"type:uuid;uniqueIndex:idx_venue_pass_type"`
	Type         string `gorm:"uniqueIndex:idx_venue_pass_type"`
	Price        float64
	ServiceFee   float64
	Enabled      bool
	Inventory    int    `gorm:"default:-1"`
	Restrictions string `gorm:"type:jsonb;default:'[]'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
