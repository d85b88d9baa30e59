package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTier_Valid(t *testing.T) {
	assert.True(t, TierFree.Valid())
	assert.True(t, TierGrowth.Valid())
	assert.True(t, TierImpact.Valid())
	assert.False(t, Tier("PLATINUM").Valid())
	assert.False(t, Tier("").Valid())
}

func TestTierMapping_Resolve(t *testing.T) {
	mapping := TierMapping{
		Free:   []int{2268},
		Growth: []int{2259, 2271},
		Impact: []int{2272, 2273},
	}

	tests := []struct {
		name        string
		memberships []Membership
		expected    Tier
	}{
		{
			name:        "no memberships",
			memberships: nil,
			expected:    TierFree,
		},
		{
			name:        "free membership",
			memberships: []Membership{{PlanID: 2268}},
			expected:    TierFree,
		},
		{
			name:        "growth membership",
			memberships: []Membership{{PlanID: 2271}},
			expected:    TierGrowth,
		},
		{
			name:        "impact membership",
			memberships: []Membership{{PlanID: 2273}},
			expected:    TierImpact,
		},
		{
			name:        "growth and impact held simultaneously resolves impact",
			memberships: []Membership{{PlanID: 2259}, {PlanID: 2272}},
			expected:    TierImpact,
		},
		{
			name:        "free and growth held simultaneously resolves growth",
			memberships: []Membership{{PlanID: 2268}, {PlanID: 2259}},
			expected:    TierGrowth,
		},
		{
			name:        "unmapped membership defaults to free",
			memberships: []Membership{{PlanID: 9999}},
			expected:    TierFree,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, mapping.Resolve(tt.memberships))
		})
	}
}

func TestTierMapping_Resolve_EmptyMapping(t *testing.T) {
	// Missing configuration always falls back to FREE
	mapping := TierMapping{}
	assert.Equal(t, TierFree, mapping.Resolve([]Membership{{PlanID: 2272}}))
	assert.Equal(t, TierFree, mapping.Resolve(nil))
}
