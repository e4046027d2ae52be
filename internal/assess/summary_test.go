package assess

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fixtureAssessment builds a small classified graph:
//
//	sub-a / hub:   gateway subnet (UDR, 2 NICs), app subnet (default egress, 3 NICs)
//	sub-a / spoke: public subnet (2/2 public NICs), empty subnet
//	sub-b / edge:  mixed subnet (1 of 2 public)
func fixtureAssessment() *Assessment {
	mkSubnet := func(name string, facts SubnetFacts) *Subnet {
		v := ClassifySubnet(facts)
		return &Subnet{
			Name:              name,
			NICCount:          facts.NICCount,
			PublicIPCount:     facts.PublicIPCount,
			HasDefaultRoute:   facts.HasDefaultRoute,
			NATGatewayID:      map[bool]string{true: "/natgw/1", false: ""}[facts.HasNATGateway],
			Classification:    v.Classification,
			ReasonCode:        v.ReasonCode,
			Reason:            v.Reason,
			EgressMechanism:   v.Mechanism,
			UsesDefaultEgress: v.UsesDefaultEgress,
		}
	}

	a := &Assessment{
		GeneratedAt: time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC),
		Subscriptions: []*Subscription{
			{
				ID: "sub-a", DisplayName: "Production", State: "Enabled",
				VNets: []*VNet{
					{
						ID: "/vnets/hub", Name: "hub", ResourceGroup: "rg-net",
						AddressSpace: []string{"10.0.0.0/16"},
						Subnets: []*Subnet{
							mkSubnet("gateway", SubnetFacts{NICCount: 2, HasDefaultRoute: true, NextHopType: "VirtualAppliance"}),
							mkSubnet("app", SubnetFacts{NICCount: 3}),
						},
					},
					{
						ID: "/vnets/spoke", Name: "spoke", ResourceGroup: "rg-net",
						AddressSpace: []string{"10.0.1.0/24"},
						Subnets: []*Subnet{
							mkSubnet("public", SubnetFacts{NICCount: 2, PublicIPCount: 2}),
							mkSubnet("empty", SubnetFacts{}),
						},
					},
				},
			},
			{
				ID: "sub-b", DisplayName: "Dev", State: "Enabled",
				VNets: []*VNet{
					{
						ID: "/vnets/edge", Name: "edge", ResourceGroup: "rg-dev",
						AddressSpace: []string{"192.168.0.0/24"},
						Subnets: []*Subnet{
							mkSubnet("mixed", SubnetFacts{NICCount: 2, PublicIPCount: 1}),
						},
					},
				},
			},
		},
	}
	Finalize(a)
	DetectOverlaps(a)
	return a
}

func TestSummarize(t *testing.T) {
	a := fixtureAssessment()
	totals := Summarize(a)

	assert.Equal(t, 2, totals.Subscriptions)
	assert.Equal(t, 3, totals.VNets)
	assert.Equal(t, 5, totals.Subnets)

	assert.Equal(t, 2, totals.SubnetsAffected)
	assert.Equal(t, 1, totals.SubnetsDefaultEgress)
	assert.Equal(t, 1, totals.SubnetsMixedMode)
	assert.Equal(t, 3, totals.SubnetsNotAffected)
	assert.Equal(t, 1, totals.SubnetsNoWorkloads)
	assert.Equal(t, 1, totals.SubnetsPublic)
	assert.Equal(t, 0, totals.SubnetsNATGateway)
	assert.Equal(t, 1, totals.SubnetsUDR)

	// hub has an affected subnet, edge too; spoke has only public/empty.
	assert.Equal(t, 2, totals.VNetsAffected)
	assert.Equal(t, 1, totals.VNetsReadySecure)
	assert.Equal(t, 0, totals.VNetsReadyInsecure)

	assert.Equal(t, 9, totals.Workloads)
	assert.Equal(t, 3, totals.WorkloadsPublicIP)
	assert.Equal(t, 5, totals.WorkloadsAffected) // app(3) + mixed(2)

	// hub 10.0.0.0/16 contains spoke 10.0.1.0/24.
	assert.Equal(t, 1, totals.CIDROverlaps)
	assert.Equal(t, 2, totals.VNetsWithOverlaps)
}

func TestTotals_Percentages(t *testing.T) {
	totals := Summarize(fixtureAssessment())

	assert.InDelta(t, 40.0, totals.ImpactPercent(), 0.01)    // 2 of 5 subnets
	assert.InDelta(t, 33.3, totals.PublicIPPercent(), 0.01)  // 3 of 9 workloads
	assert.InDelta(t, 33.3, totals.ReadinessPercent(), 0.01) // 1 of 3 vnets
	assert.Equal(t, 2, totals.VNetsNeedingRemediation())
}

func TestTotals_EmptyAssessment(t *testing.T) {
	totals := Summarize(&Assessment{})
	assert.Zero(t, totals.Subnets)
	assert.Zero(t, totals.ImpactPercent())
	assert.Zero(t, totals.ReadinessPercent())
}

func TestSummarizeSubscription(t *testing.T) {
	a := fixtureAssessment()
	totals := SummarizeSubscription(a.Subscriptions[0])

	assert.Equal(t, 2, totals.VNets)
	assert.Equal(t, 4, totals.Subnets)
	assert.Equal(t, 1, totals.SubnetsAffected)
	assert.Equal(t, 7, totals.Workloads)
}
