package domain

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidRole         = errors.New("role not accepted by current vocabulary")
	ErrPassNotFound        = errors.New("pass not found")
	ErrUnknownFlag         = errors.New("unknown feature flag")
	ErrAlreadyRedeemed     = errors.New("pass already redeemed")
	ErrNotAuthorized       = errors.New("actor is not authorized to verify")
	ErrPassExpired         = errors.New("pass validity window has passed")
	ErrPassNotActive       = errors.New("pass is not active")
	ErrWrongVenue          = errors.New("pass does not belong to this venue")
	ErrVerificationCode    = errors.New("verification code mismatch")
	ErrPassTypeUnavailable = errors.New("pass type is not available at this venue")
)
