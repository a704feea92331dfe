package domain

import "time"

type FlagMetrics struct {
	UsageCount int64     `json:"usage_count"`
	LastUsedAt time.Time `json:"last_used_at"`
	ErrorCount int64     `json:"error_count"`
}

type FeatureFlag struct {
	Key               string      `json:"key"`
	Enabled           bool        `json:"enabled"`
	RolloutPercentage int         `json:"rollout_percentage"`
	Description       string      `json:"description"`
	IsDynamic         bool        `json:"is_dynamic"`
	Metrics           FlagMetrics `json:"metrics"`
	LastUpdatedAt     time.Time   `json:"last_updated_at"`
}

// State is derived from Enabled, never stored separately.
func (f *FeatureFlag) State() string {
	if f.Enabled {
		return "active"
	}
	return "inactive"
}

// FlagState is the safe read view handed to callers. Unknown keys yield
// a fallback value with IsFallback set, never a nil.
type FlagState struct {
	Key               string `json:"key"`
	Enabled           bool   `json:"enabled"`
	RolloutPercentage int    `json:"rollout_percentage"`
	State             string `json:"state"`
	IsFallback        bool   `json:"is_fallback"`
}

// FlagUpdate is a partial config merged into an existing flag by
// SetFeatureState. Nil fields are left untouched.
type FlagUpdate struct {
	Enabled           *bool   `json:"enabled,omitempty"`
	RolloutPercentage *int    `json:"rollout_percentage,omitempty"`
	Description       *string `json:"description,omitempty"`
}
