// Package domain defines plan tiers and the membership-to-tier mapping.
package domain

// Tier classifies a principal's plan. The tier is embedded in token claims
// and gates access to generation.
type Tier string

const (
	TierFree   Tier = "FREE"
	TierGrowth Tier = "GROWTH"
	TierImpact Tier = "IMPACT"
)

// Valid reports whether t is one of the known tiers.
func (t Tier) Valid() bool {
	switch t {
	case TierFree, TierGrowth, TierImpact:
		return true
	}
	return false
}

// Membership is one active membership record of a principal, identified by
// its external plan id.
type Membership struct {
	PlanID int
}

// TierMapping maps external membership plan ids to tiers. Loaded fresh from
// settings per resolution; no cache staleness guarantee beyond request scope.
type TierMapping struct {
	Free   []int
	Growth []int
	Impact []int
}

// Resolve maps active memberships to a tier. Precedence is
// IMPACT > GROWTH > FREE: the first set that contains any held plan id wins.
// No memberships, or memberships matching no set, resolve to FREE.
func (m TierMapping) Resolve(memberships []Membership) Tier {
	if containsAny(m.Impact, memberships) {
		return TierImpact
	}
	if containsAny(m.Growth, memberships) {
		return TierGrowth
	}
	return TierFree
}

func containsAny(ids []int, memberships []Membership) bool {
	for _, membership := range memberships {
		for _, id := range ids {
			if membership.PlanID == id {
				return true
			}
		}
	}
	return false
}
