package features

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInRolloutBoundaries(t *testing.T) {
	ctx := BucketContext{"actorId": "actor-1"}

	assert.False(t, InRollout("some-flag", ctx, 0))
	assert.False(t, InRollout("some-flag", ctx, -5))
	assert.True(t, InRollout("some-flag", ctx, 100))
	assert.True(t, InRollout("some-flag", ctx, 150))
}

func TestInRolloutDeterministic(t *testing.T) {
	for _, percentage := range []int{1, 25, 50, 75, 99} {
		ctx := BucketContext{"actorId": "actor-42", "venueId": "venue-7"}
		first := InRollout("checkout-v2", ctx, percentage)
		for i := 0; i < 100; i++ {
			require.Equal(t, first, InRollout("checkout-v2", ctx, percentage),
				"bucketing flapped at percentage %d", percentage)
		}
	}
}

func TestSerializeContextOrderIndependent(t *testing.T) {
	a := BucketContext{}
	a["actorId"] = "u-1"
	a["venueId"] = "v-1"
	a["device"] = "ios"

	b := BucketContext{}
	b["device"] = "ios"
	b["venueId"] = "v-1"
	b["actorId"] = "u-1"

	assert.Equal(t, serializeContext(a), serializeContext(b))
	assert.Equal(t, bucketOf("flag", a), bucketOf("flag", b))
}

func TestBucketDependsOnKeyAndContext(t *testing.T) {
	// Distinct keys or contexts must be able to land in different
	// buckets; sample enough pairs that at least one differs.
	base := bucketOf("flag-a", BucketContext{"actorId": "u-0"})

	differsByContext := false
	for i := 1; i < 50; i++ {
		if bucketOf("flag-a", BucketContext{"actorId": fmt.Sprintf("u-%d", i)}) != base {
			differsByContext = true
			break
		}
	}
	assert.True(t, differsByContext)

	differsByKey := false
	for i := 0; i < 50; i++ {
		key := fmt.Sprintf("flag-%d", i)
		if bucketOf(key, BucketContext{"actorId": "u-0"}) != base {
			differsByKey = true
			break
		}
	}
	assert.True(t, differsByKey)
}

func TestRolloutAccuracy(t *testing.T) {
	const samples = 20000

	for _, percentage := range []int{10, 30, 50, 80} {
		in := 0
		for i := 0; i < samples; i++ {
			ctx := BucketContext{"actorId": fmt.Sprintf("actor-%d", i)}
			if InRollout("gradual-flag", ctx, percentage) {
				in++
			}
		}
		fraction := float64(in) / float64(samples)
		assert.InDelta(t, float64(percentage)/100, fraction, 0.05,
			"rollout fraction off at percentage %d", percentage)
	}
}
