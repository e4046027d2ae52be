package assess

import "fmt"

// SubnetFacts are the inputs to the subnet classification decision.
type SubnetFacts struct {
	HasDefaultRoute bool   // route table carries a 0.0.0.0/0 route
	NextHopType     string // next hop of that route, when present
	NextHopIP       string // next hop address for VirtualAppliance hops
	HasNATGateway   bool
	NICCount        int
	PublicIPCount   int // NICs with a public IP, 0 <= PublicIPCount <= NICCount
}

// Verdict is the classification outcome for a subnet.
type Verdict struct {
	Classification Classification
	ReasonCode     ReasonCode
	Reason         string
	Mechanism      EgressMechanism
	// UsesDefaultEgress is true when no explicit egress mechanism
	// (NAT gateway or default-route UDR) is configured.
	UsesDefaultEgress bool
}

// ClassifySubnet maps a subnet's configuration to its verdict.
// Rules are evaluated in order; the first match wins:
//
//  1. no interfaces             → Not Affected (no workloads to impact)
//  2. every interface public    → Not Affected (self-sufficient public subnet)
//  3. NAT gateway attached      → Not Affected
//  4. UDR with 0.0.0.0/0 route  → Not Affected
//  5. some-but-not-all public   → Affected: Mixed-Mode
//  6. otherwise                 → Affected: Default Egress
//
// Mixed-mode ranks above plain default egress because remediation has to be
// planned per interface instead of per subnet.
func ClassifySubnet(f SubnetFacts) Verdict {
	v := Verdict{
		Mechanism:         EgressDefault,
		UsesDefaultEgress: true,
	}
	if f.HasDefaultRoute {
		v.Mechanism = EgressUDR
		v.UsesDefaultEgress = false
	}
	if f.HasNATGateway {
		v.Mechanism = EgressNATGateway
		v.UsesDefaultEgress = false
	}

	switch {
	case f.NICCount == 0:
		v.Classification = NotAffected
		v.ReasonCode = ReasonNoWorkloads
		v.Reason = "No Workloads"
	case f.PublicIPCount == f.NICCount:
		v.Classification = NotAffected
		v.ReasonCode = ReasonPublicSubnet
		v.Reason = "Public Subnet"
	case f.HasNATGateway:
		v.Classification = NotAffected
		v.ReasonCode = ReasonNATGateway
		v.Reason = "Azure NAT Gateway"
	case f.HasDefaultRoute:
		v.Classification = NotAffected
		v.ReasonCode = ReasonDefaultRoute
		v.Reason = fmt.Sprintf("UDR with 0.0.0.0/0 (%s)", f.NextHopType)
	case f.PublicIPCount > 0 && f.PublicIPCount < f.NICCount:
		v.Classification = AffectedMixedMode
		v.ReasonCode = ReasonMixedMode
		v.Reason = "Mixed mode subnet"
	default:
		v.Classification = AffectedDefaultEgress
		v.ReasonCode = ReasonDefaultEgress
		v.Reason = "Using default egress"
	}
	return v
}

// ClassifyVNet rolls subnet verdicts up to a network-level verdict.
//
// Public subnets and subnets without workloads are ignored. Any affected
// subnet makes the VNet Affected: Insecure. If every qualifying subnet routes
// through a default-route UDR, the VNet is Not Affected: Secure. A NAT
// gateway alone, or a mix of NAT and UDR, is Not Affected: Insecure — NAT
// provides egress but not an inspected path. A VNet with no qualifying
// subnets is Not Affected: Secure.
func ClassifyVNet(subnets []*Subnet) VNetClassification {
	hasAffected := false
	hasNAT := false
	hasUDR := false
	qualifying := 0

	for _, s := range subnets {
		switch s.ReasonCode {
		case ReasonNoWorkloads, ReasonPublicSubnet:
			continue
		case ReasonNATGateway:
			hasNAT = true
		case ReasonDefaultRoute:
			hasUDR = true
		case ReasonMixedMode, ReasonDefaultEgress:
			hasAffected = true
		}
		qualifying++
	}

	switch {
	case hasAffected:
		return VNetAffectedInsecure
	case qualifying == 0:
		return VNetNotAffectedSecure
	case hasUDR && !hasNAT:
		return VNetNotAffectedSecure
	default:
		return VNetNotAffectedInsecure
	}
}

// Finalize applies the classification engine to every subnet-level verdict
// already stored on the graph and derives the VNet-level attributes.
func Finalize(a *Assessment) {
	for _, sub := range a.Subscriptions {
		for _, vnet := range sub.VNets {
			vnet.HasNATGateway = false
			vnet.HasDefaultUDR = false
			for _, subnet := range vnet.Subnets {
				if subnet.NATGatewayID != "" {
					vnet.HasNATGateway = true
				}
				if subnet.HasDefaultRoute {
					vnet.HasDefaultUDR = true
				}
			}
			vnet.Classification = ClassifyVNet(vnet.Subnets)
		}
	}
}
