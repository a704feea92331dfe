package features

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/Dompi123/fomo-pr-sub002/internal/domain"
)

// Registry holds process-local feature flag state. State is NOT
// synchronized across service instances: an admin write lands only on
// the instance serving it, and bucketing stays consistent across
// replicas only because the hash is seedless and deterministic.
//
// Every IsEnabled call touches usage metrics, so the read path takes
// the write lock too. Flag lookups are cheap map hits either way.
type Registry struct {
	mu     sync.RWMutex
	flags  map[string]*domain.FeatureFlag
	strict bool
}

// NewRegistry creates an empty registry. With strict set, unknown-key
// lookups are reported as errors instead of being auto-registered;
// meant for test and staging environments where a typo should fail
// loudly rather than silently read as disabled.
func NewRegistry(strict bool) *Registry {
	return &Registry{
		flags:  make(map[string]*domain.FeatureFlag),
		strict: strict,
	}
}

// IsEnabled reports whether the flag applies to the given context.
// Enabled at 100% is an immediate yes, a partial percentage delegates
// to the bucketing function, and an unknown key never raises: it is
// auto-registered disabled at 0% with a warning (fail-open tradeoff,
// availability over typo detection). In strict mode the unknown key is
// logged as an error and left unregistered.
func (r *Registry) IsEnabled(key string, ctx BucketContext) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	flag, ok := r.flags[key]
	if !ok {
		if r.strict {
			slog.Error("unknown feature flag lookup in strict mode", "key", key)
			return false
		}
		flag = r.autoRegister(key)
	}

	flag.Metrics.UsageCount++
	flag.Metrics.LastUsedAt = time.Now()

	if !flag.Enabled {
		return false
	}
	if flag.RolloutPercentage >= 100 {
		return true
	}
	return InRollout(key, ctx, flag.RolloutPercentage)
}

// GetFeatureState returns a safe read view. Unknown keys yield a
// disabled fallback object so callers never nil-check.
func (r *Registry) GetFeatureState(key string) domain.FlagState {
	r.mu.RLock()
	defer r.mu.RUnlock()

	flag, ok := r.flags[key]
	if !ok {
		return domain.FlagState{
			Key:        key,
			Enabled:    false,
			State:      "inactive",
			IsFallback: true,
		}
	}
	return domain.FlagState{
		Key:               flag.Key,
		Enabled:           flag.Enabled,
		RolloutPercentage: flag.RolloutPercentage,
		State:             flag.State(),
	}
}

// Lookup returns a copy of the flag, or ErrUnknownFlag. Used by the
// admin surface where a missing key must be visible, not papered over.
func (r *Registry) Lookup(key string) (domain.FeatureFlag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	flag, ok := r.flags[key]
	if !ok {
		return domain.FeatureFlag{}, domain.ErrUnknownFlag
	}
	return *flag, nil
}

// SetFeatureState upserts: it creates the flag when absent and merges
// the partial update otherwise, refreshing LastUpdatedAt.
func (r *Registry) SetFeatureState(key string, update domain.FlagUpdate) domain.FeatureFlag {
	r.mu.Lock()
	defer r.mu.Unlock()

	flag, ok := r.flags[key]
	if !ok {
		flag = &domain.FeatureFlag{Key: key}
		r.flags[key] = flag
	}
	if update.Enabled != nil {
		flag.Enabled = *update.Enabled
	}
	if update.RolloutPercentage != nil {
		flag.RolloutPercentage = clampPercentage(*update.RolloutPercentage)
	}
	if update.Description != nil {
		flag.Description = *update.Description
	}
	flag.LastUpdatedAt = time.Now()
	return *flag
}

// RegisterFeature creates the flag explicitly. An already-present key
// is warned about and left untouched.
func (r *Registry) RegisterFeature(key string, flag domain.FeatureFlag) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.flags[key]; ok {
		slog.Warn("feature flag already registered", "key", key)
		return
	}
	flag.Key = key
	flag.RolloutPercentage = clampPercentage(flag.RolloutPercentage)
	flag.LastUpdatedAt = time.Now()
	r.flags[key] = &flag
}

// ListFlags returns copies of every flag, sorted by key.
func (r *Registry) ListFlags() []domain.FeatureFlag {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.FeatureFlag, 0, len(r.flags))
	for _, flag := range r.flags {
		out = append(out, *flag)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func (r *Registry) autoRegister(key string) *domain.FeatureFlag {
	slog.Warn("unknown feature flag auto-registered as disabled", "key", key)
	flag := &domain.FeatureFlag{
		Key:           key,
		Enabled:       false,
		IsDynamic:     true,
		Description:   "auto-registered on first lookup",
		LastUpdatedAt: time.Now(),
	}
	r.flags[key] = flag
	return flag
}

func clampPercentage(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
