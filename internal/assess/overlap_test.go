package assess

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assessmentWith(vnets ...*VNet) *Assessment {
	return &Assessment{
		Subscriptions: []*Subscription{{
			ID:          "sub-a",
			DisplayName: "Subscription A",
			VNets:       vnets,
		}},
	}
}

func TestDetectOverlaps_Containment(t *testing.T) {
	a := assessmentWith(
		&VNet{ID: "/vnets/1", Name: "hub", AddressSpace: []string{"10.0.0.0/16"}},
		&VNet{ID: "/vnets/2", Name: "spoke", AddressSpace: []string{"10.0.1.0/24"}},
	)

	DetectOverlaps(a)

	require.Len(t, a.Overlaps, 1)
	assert.Equal(t, "10.0.1.0/24 is contained within 10.0.0.0/16", a.Overlaps[0].Relationship)

	// Recorded symmetrically on both VNets.
	hub, spoke := a.Subscriptions[0].VNets[0], a.Subscriptions[0].VNets[1]
	require.Len(t, hub.Overlapping, 1)
	require.Len(t, spoke.Overlapping, 1)
	assert.Equal(t, "spoke", hub.Overlapping[0].VNetName)
	assert.Equal(t, "hub", spoke.Overlapping[0].VNetName)
	assert.Equal(t, hub.Overlapping[0].Relationship, spoke.Overlapping[0].Relationship)
}

func TestDetectOverlaps_PartialOverlap(t *testing.T) {
	a := assessmentWith(
		&VNet{ID: "/vnets/1", Name: "left", AddressSpace: []string{"10.0.0.0/23"}},
		&VNet{ID: "/vnets/2", Name: "right", AddressSpace: []string{"10.0.1.0/23"}},
	)

	DetectOverlaps(a)

	// 10.0.1.0/23 normalizes to 10.0.0.0/23, making the ranges identical;
	// identical prefixes are containment in both directions, reported as
	// containment of the first.
	require.Len(t, a.Overlaps, 1)
	assert.Contains(t, a.Overlaps[0].Relationship, "contained within")
}

func TestDetectOverlaps_NoOverlap(t *testing.T) {
	a := assessmentWith(
		&VNet{ID: "/vnets/1", Name: "vnet1", AddressSpace: []string{"10.0.0.0/16"}},
		&VNet{ID: "/vnets/2", Name: "vnet2", AddressSpace: []string{"10.1.0.0/16"}},
	)

	DetectOverlaps(a)

	assert.Empty(t, a.Overlaps)
	assert.Empty(t, a.Subscriptions[0].VNets[0].Overlapping)
}

func TestDetectOverlaps_SameVNetSkipped(t *testing.T) {
	a := assessmentWith(
		&VNet{ID: "/vnets/1", Name: "vnet1", AddressSpace: []string{"10.0.0.0/16", "10.0.1.0/24"}},
	)

	DetectOverlaps(a)

	assert.Empty(t, a.Overlaps)
}

func TestDetectOverlaps_DeduplicatedAcrossSubscriptions(t *testing.T) {
	a := &Assessment{
		Subscriptions: []*Subscription{
			{ID: "sub-a", DisplayName: "A", VNets: []*VNet{
				{ID: "/vnets/1", Name: "vnet1", AddressSpace: []string{"192.168.0.0/16"}},
			}},
			{ID: "sub-b", DisplayName: "B", VNets: []*VNet{
				{ID: "/vnets/2", Name: "vnet2", AddressSpace: []string{"192.168.10.0/24"}},
			}},
		},
	}

	DetectOverlaps(a)

	require.Len(t, a.Overlaps, 1)
	assert.Equal(t, "sub-a", a.Overlaps[0].A.SubscriptionID)
	assert.Equal(t, "sub-b", a.Overlaps[0].B.SubscriptionID)
}

func TestDetectOverlaps_InvalidPrefixWarnsAndContinues(t *testing.T) {
	a := assessmentWith(
		&VNet{ID: "/vnets/1", Name: "vnet1", AddressSpace: []string{"not-a-cidr", "10.0.0.0/16"}},
		&VNet{ID: "/vnets/2", Name: "vnet2", AddressSpace: []string{"10.0.1.0/24"}},
	)

	DetectOverlaps(a)

	require.Len(t, a.Warnings, 1)
	assert.Contains(t, a.Warnings[0], "not-a-cidr")
	require.Len(t, a.Overlaps, 1)
}

func mustPrefix(t *testing.T, s string) netip.Prefix {
	t.Helper()
	prefix, err := netip.ParsePrefix(s)
	require.NoError(t, err)
	return prefix.Masked()
}

func TestSubsetOf(t *testing.T) {
	tests := []struct {
		name string
		p, q string
		want bool
	}{
		{"proper subset", "10.0.1.0/24", "10.0.0.0/16", true},
		{"superset", "10.0.0.0/16", "10.0.1.0/24", false},
		{"equal", "10.0.0.0/16", "10.0.0.0/16", true},
		{"disjoint", "10.0.0.0/16", "10.1.0.0/16", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, subsetOf(mustPrefix(t, tt.p), mustPrefix(t, tt.q)))
		})
	}
}
