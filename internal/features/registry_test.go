package features

import (
	"testing"

	"github.com/Dompi123/fomo-pr-sub002/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool    { return &b }
func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

func TestUnknownFlagAutoRegisters(t *testing.T) {
	registry := NewRegistry(false)

	assert.False(t, registry.IsEnabled("no-such-flag", nil))

	flag, err := registry.Lookup("no-such-flag")
	require.NoError(t, err)
	assert.False(t, flag.Enabled)
	assert.Equal(t, 0, flag.RolloutPercentage)
	assert.True(t, flag.IsDynamic)
	assert.EqualValues(t, 1, flag.Metrics.UsageCount)
}

func TestStrictModeDoesNotAutoRegister(t *testing.T) {
	registry := NewRegistry(true)

	assert.False(t, registry.IsEnabled("typo-flag", nil))

	_, err := registry.Lookup("typo-flag")
	assert.ErrorIs(t, err, domain.ErrUnknownFlag)
	assert.Empty(t, registry.ListFlags())
}

func TestGetFeatureStateFallback(t *testing.T) {
	registry := NewRegistry(false)

	state := registry.GetFeatureState("missing")
	assert.Equal(t, "missing", state.Key)
	assert.False(t, state.Enabled)
	assert.True(t, state.IsFallback)
	assert.Equal(t, "inactive", state.State)

	registry.RegisterFeature("present", domain.FeatureFlag{Enabled: true, RolloutPercentage: 100})
	state = registry.GetFeatureState("present")
	assert.True(t, state.Enabled)
	assert.False(t, state.IsFallback)
	assert.Equal(t, "active", state.State)
}

func TestSetFeatureStateUpsertsAndMerges(t *testing.T) {
	registry := NewRegistry(false)

	created := registry.SetFeatureState("new-flag", domain.FlagUpdate{
		Enabled:           boolPtr(true),
		RolloutPercentage: intPtr(40),
	})
	assert.True(t, created.Enabled)
	assert.Equal(t, 40, created.RolloutPercentage)
	assert.False(t, created.LastUpdatedAt.IsZero())

	// Partial update touches only the supplied fields.
	merged := registry.SetFeatureState("new-flag", domain.FlagUpdate{
		Description: strPtr("checkout experiment"),
	})
	assert.True(t, merged.Enabled)
	assert.Equal(t, 40, merged.RolloutPercentage)
	assert.Equal(t, "checkout experiment", merged.Description)

	clamped := registry.SetFeatureState("new-flag", domain.FlagUpdate{RolloutPercentage: intPtr(250)})
	assert.Equal(t, 100, clamped.RolloutPercentage)
}

func TestRegisterFeatureDoesNotOverwrite(t *testing.T) {
	registry := NewRegistry(false)

	registry.RegisterFeature("flag", domain.FeatureFlag{Enabled: true, RolloutPercentage: 100})
	registry.RegisterFeature("flag", domain.FeatureFlag{Enabled: false})

	flag, err := registry.Lookup("flag")
	require.NoError(t, err)
	assert.True(t, flag.Enabled)
}

func TestIsEnabledDeterministicUntilStateChanges(t *testing.T) {
	registry := NewRegistry(false)
	registry.RegisterFeature("gradual", domain.FeatureFlag{Enabled: true, RolloutPercentage: 50})

	ctx := BucketContext{"actorId": "actor-9"}
	first := registry.IsEnabled("gradual", ctx)
	for i := 0; i < 50; i++ {
		require.Equal(t, first, registry.IsEnabled("gradual", ctx))
	}

	registry.SetFeatureState("gradual", domain.FlagUpdate{Enabled: boolPtr(false)})
	assert.False(t, registry.IsEnabled("gradual", ctx))
}

func TestIsEnabledFullRolloutShortCircuits(t *testing.T) {
	registry := NewRegistry(false)
	registry.RegisterFeature("everyone", domain.FeatureFlag{Enabled: true, RolloutPercentage: 100})

	// Every context is in at 100%, no bucketing involved.
	for _, actor := range []string{"a", "b", "c", "d"} {
		assert.True(t, registry.IsEnabled("everyone", BucketContext{"actorId": actor}))
	}
}

func TestUsageMetricsIncrement(t *testing.T) {
	registry := NewRegistry(false)
	registry.RegisterFeature("tracked", domain.FeatureFlag{Enabled: true, RolloutPercentage: 100})

	for i := 0; i < 5; i++ {
		registry.IsEnabled("tracked", nil)
	}

	flag, err := registry.Lookup("tracked")
	require.NoError(t, err)
	assert.EqualValues(t, 5, flag.Metrics.UsageCount)
	assert.False(t, flag.Metrics.LastUsedAt.IsZero())
}

func TestListFlagsSortedCopies(t *testing.T) {
	registry := NewRegistry(false)
	registry.RegisterFeature("zeta", domain.FeatureFlag{})
	registry.RegisterFeature("alpha", domain.FeatureFlag{})
	registry.RegisterFeature("mid", domain.FeatureFlag{})

	flags := registry.ListFlags()
	require.Len(t, flags, 3)
	assert.Equal(t, "alpha", flags[0].Key)
	assert.Equal(t, "mid", flags[1].Key)
	assert.Equal(t, "zeta", flags[2].Key)

	// Mutating the returned slice must not leak into the registry.
	flags[0].Enabled = true
	flag, err := registry.Lookup("alpha")
	require.NoError(t, err)
	assert.False(t, flag.Enabled)
}
