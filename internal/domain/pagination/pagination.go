// Package pagination turns page/limit request parameters into store bounds.
package pagination

import "math"

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Policy holds the default and the hard cap applied to page sizes.
type Policy struct {
	DefaultLimit int
	MaxLimit     int
}

// Bounds are the skip/take values handed to the store.
type Bounds struct {
	Page int
	Skip int64
	Take int64
}

// NewPolicy builds a policy, falling back to package defaults for non-positive values.
func NewPolicy(defaultLimit, maxLimit int) Policy {
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	if defaultLimit > maxLimit {
		defaultLimit = maxLimit
	}

	return Policy{DefaultLimit: defaultLimit, MaxLimit: maxLimit}
}

// DefaultPolicy is the 10/100 policy.
func DefaultPolicy() Policy {
	return NewPolicy(DefaultLimit, MaxLimit)
}

// Resolve never fails. A page below 1 becomes 1, a missing (zero or negative)
// limit becomes the default and a limit above the cap is clamped to it.
// A page so large that its offset overflows int64 saturates at math.MaxInt64,
// which always yields an empty page.
func (p Policy) Resolve(page, limit int) Bounds {
	policy := NewPolicy(p.DefaultLimit, p.MaxLimit)

	if page < 1 {
		page = 1
	}

	take := limit
	if take < 1 {
		take = policy.DefaultLimit
	}
	if take > policy.MaxLimit {
		take = policy.MaxLimit
	}

	return Bounds{
		Page: page,
		Skip: skipFor(int64(page), int64(take)),
		Take: int64(take),
	}
}

// skipFor returns (page-1)*take for page >= 1 and take >= 1, saturating on overflow.
func skipFor(page, take int64) int64 {
	if page-1 > math.MaxInt64/take {
		return math.MaxInt64
	}

	return (page - 1) * take
}
