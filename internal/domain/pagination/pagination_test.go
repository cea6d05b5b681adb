package pagination

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolicy_Resolve(t *testing.T) {
	policy := DefaultPolicy()

	tests := []struct {
		name  string
		page  int
		limit int
		want  Bounds
	}{
		{name: "defaults", page: 0, limit: 0, want: Bounds{Page: 1, Skip: 0, Take: 10}},
		{name: "negative page clamps to first", page: -3, limit: 5, want: Bounds{Page: 1, Skip: 0, Take: 5}},
		{name: "second page of one", page: 2, limit: 1, want: Bounds{Page: 2, Skip: 1, Take: 1}},
		{name: "third page of default size", page: 3, limit: 0, want: Bounds{Page: 3, Skip: 20, Take: 10}},
		{name: "limit capped", page: 2, limit: 1000, want: Bounds{Page: 2, Skip: 100, Take: 100}},
		{name: "limit at cap", page: 1, limit: 100, want: Bounds{Page: 1, Skip: 0, Take: 100}},
		{name: "huge page saturates skip", page: 100_000_000_000_000_000, limit: 100, want: Bounds{Page: 100_000_000_000_000_000, Skip: math.MaxInt64, Take: 100}},
		{name: "max int page with limit one", page: math.MaxInt, limit: 1, want: Bounds{Page: math.MaxInt, Skip: int64(math.MaxInt) - 1, Take: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.Resolve(tt.page, tt.limit))
		})
	}
}

func TestNewPolicy_NormalizesValues(t *testing.T) {
	assert.Equal(t, Policy{DefaultLimit: 10, MaxLimit: 100}, NewPolicy(0, 0))
	assert.Equal(t, Policy{DefaultLimit: 20, MaxLimit: 20}, NewPolicy(50, 20))
	assert.Equal(t, Policy{DefaultLimit: 25, MaxLimit: 50}, NewPolicy(25, 50))
}

func TestPolicy_ZeroValueStillBounded(t *testing.T) {
	var policy Policy

	assert.Equal(t, Bounds{Page: 1, Skip: 0, Take: 10}, policy.Resolve(1, 0))
	assert.Equal(t, Bounds{Page: 1, Skip: 0, Take: 100}, policy.Resolve(1, 500))
}

func TestPolicy_Resolve_SkipNeverNegative(t *testing.T) {
	policy := DefaultPolicy()

	for _, page := range []int{1, 2, 1 << 40, 92233720368547759, 92233720368547760, math.MaxInt} {
		for _, limit := range []int{1, 10, 100} {
			bounds := policy.Resolve(page, limit)
			assert.GreaterOrEqual(t, bounds.Skip, int64(0), "page=%d limit=%d", page, limit)
		}
	}
}
