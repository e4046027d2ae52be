// Package assess holds the assessment data model, the subnet/VNet
// classification engine, the CIDR overlap detector, and the report renderers.
package assess

import "time"

// Classification is the verdict for a single subnet.
type Classification string

const (
	NotAffected           Classification = "Not Affected"
	AffectedDefaultEgress Classification = "Affected: Default Egress"
	AffectedMixedMode     Classification = "Affected: Mixed-Mode"
)

// Affected reports whether the subnet loses connectivity when the default
// egress path is retired.
func (c Classification) Affected() bool {
	return c == AffectedDefaultEgress || c == AffectedMixedMode
}

// ReasonCode identifies why a subnet received its classification.
type ReasonCode string

const (
	ReasonNoWorkloads   ReasonCode = "no-workloads"
	ReasonPublicSubnet  ReasonCode = "public-subnet"
	ReasonNATGateway    ReasonCode = "nat-gateway"
	ReasonDefaultRoute  ReasonCode = "udr-default-route"
	ReasonMixedMode     ReasonCode = "mixed-mode"
	ReasonDefaultEgress ReasonCode = "default-egress"
)

// EgressMechanism names the outbound path a subnet is configured with.
type EgressMechanism string

const (
	EgressDefault    EgressMechanism = "Default"
	EgressUDR        EgressMechanism = "UDR"
	EgressNATGateway EgressMechanism = "NAT Gateway"
)

// VNetClassification is the roll-up verdict for a virtual network.
type VNetClassification string

const (
	VNetAffectedInsecure    VNetClassification = "Affected: Insecure"
	VNetNotAffectedSecure   VNetClassification = "Not Affected: Secure"
	VNetNotAffectedInsecure VNetClassification = "Not Affected: Insecure"
)

// Affected reports whether the VNet contains subnets that break when the
// default egress path is retired.
func (c VNetClassification) Affected() bool {
	return c == VNetAffectedInsecure
}

// Assessment is the root of the classified entity graph for one run.
// It is built once by the walker, annotated by the classification engine and
// the overlap detector, and read-only for the renderers.
type Assessment struct {
	GeneratedAt   time.Time       `json:"generatedAt"`
	Subscriptions []*Subscription `json:"subscriptions"`
	Overlaps      []*Overlap      `json:"cidrOverlaps"`
	Warnings      []string        `json:"warnings,omitempty"`
}

// Subscription is one billing subscription and the networks found in it.
type Subscription struct {
	ID          string  `json:"subscriptionId"`
	DisplayName string  `json:"displayName"`
	State       string  `json:"state"`
	VNets       []*VNet `json:"vnets"`
}

// VNet is a virtual network with its subnets and roll-up verdict.
type VNet struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	ResourceGroup  string             `json:"resourceGroup"`
	AddressSpace   []string           `json:"addressSpace"`
	Subnets        []*Subnet          `json:"subnets"`
	Classification VNetClassification `json:"classification"`
	HasNATGateway  bool               `json:"hasNatGateway"`
	HasDefaultUDR  bool               `json:"hasDefaultRouteUdr"`
	Overlapping    []OverlapPeer      `json:"overlappingCidrs,omitempty"`
}

// Subnet is one subnet with its routing/NAT configuration, attached
// interfaces, and classification verdict.
type Subnet struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	AddressPrefix string `json:"addressPrefix"`

	RouteTableID string `json:"routeTableId,omitempty"`
	NATGatewayID string `json:"natGatewayId,omitempty"`

	HasDefaultRoute       bool   `json:"hasDefaultRoute"`
	DefaultRouteNextHop   string `json:"defaultRouteNextHop,omitempty"`
	DefaultRouteNextHopIP string `json:"defaultRouteNextHopIp,omitempty"`

	Interfaces    []Interface `json:"networkInterfaces"`
	NICCount      int         `json:"nicCount"`
	PublicIPCount int         `json:"publicIpCount"`

	UsesDefaultEgress bool            `json:"usesDefaultEgress"`
	Classification    Classification  `json:"classification"`
	ReasonCode        ReasonCode      `json:"reasonCode"`
	Reason            string          `json:"reason"`
	EgressMechanism   EgressMechanism `json:"egressMechanism"`
}

// Interface is a network interface IP configuration placed in a subnet.
type Interface struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PrivateIP   string `json:"privateIp,omitempty"`
	HasPublicIP bool   `json:"hasPublicIp"`
	PublicIPID  string `json:"publicIpId,omitempty"`
}

// Overlap records one unordered pair of VNet address prefixes whose ranges
// intersect.
type Overlap struct {
	A            OverlapEndpoint `json:"vnet1"`
	B            OverlapEndpoint `json:"vnet2"`
	Relationship string          `json:"relationship"`
}

// OverlapEndpoint identifies one side of a CIDR overlap.
type OverlapEndpoint struct {
	SubscriptionID   string `json:"subscriptionId"`
	SubscriptionName string `json:"subscriptionName"`
	VNetID           string `json:"vnetId"`
	VNetName         string `json:"vnetName"`
	CIDR             string `json:"cidr"`
}

// OverlapPeer is the symmetric overlap annotation stored on each VNet.
type OverlapPeer struct {
	SubscriptionID   string `json:"subscriptionId"`
	SubscriptionName string `json:"subscriptionName"`
	VNetID           string `json:"vnetId"`
	VNetName         string `json:"vnetName"`
	CIDR             string `json:"cidr"`
	Relationship     string `json:"relationship"`
}
