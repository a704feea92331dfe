package passdto

type PurchasePassInput struct {
	ActorID string
	VenueID string
	Type    string
	Price   float64
	Tip     float64
}

type ValidatePassInput struct {
	PassID  string
	VenueID string
}

type VerifyPassInput struct {
	PassID           string
	ActorID          string
	ActorRole        string
	VerificationCode string
}
