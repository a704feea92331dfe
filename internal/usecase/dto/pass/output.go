package passdto

type AvailabilityOutput struct {
	IsAvailable  bool     `json:"is_available"`
	Price        float64  `json:"price"`
	Restrictions []string `json:"restrictions"`
}
