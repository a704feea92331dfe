package features

import (
	"sort"
	"strings"
)

// BucketContext carries the stable caller attributes a rollout decision
// keys off, e.g. {"actorId": "..."}.
type BucketContext map[string]string

// serializeContext renders a context deterministically: keys sorted,
// joined as key=value pairs. Map iteration order must never leak into
// the hash input, or replicas would disagree on bucketing.
func serializeContext(ctx BucketContext) string {
	if len(ctx) == 0 {
		return ""
	}
	keys := make([]string, 0, len(ctx))
	for k := range ctx {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(ctx[k])
	}
	return b.String()
}

// bucketHash is a base-31 polynomial rolling hash wrapped to 32 bits.
// No seed, no randomness: every replica running the same algorithm
// buckets a given input identically.
func bucketHash(s string) int32 {
	var h int32
	for _, r := range s {
		h = h*31 + int32(r)
	}
	return h
}

// bucketOf maps a (key, context) pair onto [0,100).
func bucketOf(key string, ctx BucketContext) int {
	bucket := int(bucketHash(key+":"+serializeContext(ctx)) % 100)
	if bucket < 0 {
		bucket += 100
	}
	return bucket
}

// InRollout reports whether the pair falls inside the rollout
// percentage. Stable for a given pair until the percentage changes.
func InRollout(key string, ctx BucketContext, percentage int) bool {
	if percentage >= 100 {
		return true
	}
	if percentage <= 0 {
		return false
	}
	return bucketOf(key, ctx) < percentage
}
