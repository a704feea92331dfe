package domain

import "time"

// PassRepository is the persistence port for passes. Redeem must be a
// single conditional write so concurrent callers race against the store,
// not against application logic.
type PassRepository interface {
	CreatePass(pass *Pass) error
	GetPassByID(passID string) (*Pass, error)
	// RedeemPass flips is_redeemed false->true and status to redeemed in
	// one conditional update. Returns ErrAlreadyRedeemed when the
	// precondition fails and ErrPassNotFound when no such pass exists.
	RedeemPass(passID, verifiedBy, method string, at time.Time) (*Pass, error)
	// MarkExpired transitions an active pass to expired. Reports whether
	// the write applied; a concurrently redeemed pass is left untouched.
	MarkExpired(passID, updatedBy string, at time.Time) (bool, error)
	FindExpiredActive(now time.Time, limit int) ([]*Pass, error)
}

// VenuePassTypeRepository reads the venue admission catalog. The catalog
// itself is managed outside this service.
type VenuePassTypeRepository interface {
	GetVenuePassType(venueID, passType string) (*VenuePassType, error)
}
