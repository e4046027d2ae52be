package assess

import "math"

// Totals aggregates classification counts for one subscription or the whole
// assessment.
type Totals struct {
	Subscriptions int `json:"subscriptions,omitempty"`
	VNets         int `json:"vnets"`
	Subnets       int `json:"subnets"`

	// Subnet verdicts.
	SubnetsNotAffected   int `json:"subnetsNotAffected"`
	SubnetsDefaultEgress int `json:"subnetsDefaultEgress"`
	SubnetsMixedMode     int `json:"subnetsMixedMode"`
	SubnetsAffected      int `json:"subnetsAffected"`

	// Not-affected reasons.
	SubnetsNoWorkloads int `json:"subnetsNoWorkloads"`
	SubnetsPublic      int `json:"subnetsPublic"`
	SubnetsNATGateway  int `json:"subnetsNatGateway"`
	SubnetsUDR         int `json:"subnetsUdr"`

	// VNet verdicts.
	VNetsReadySecure   int `json:"vnetsReadySecure"`
	VNetsReadyInsecure int `json:"vnetsReadyInsecure"`
	VNetsAffected      int `json:"vnetsAffected"`
	VNetsWithOverlaps  int `json:"vnetsWithOverlaps"`

	// Workloads (NIC IP configurations).
	Workloads         int `json:"workloads"`
	WorkloadsPublicIP int `json:"workloadsPublicIp"`
	WorkloadsAffected int `json:"workloadsAffected"`

	// Workload-weighted subnet verdicts, for the report charts.
	WorkloadsNoWorkloads   int `json:"workloadsNoWorkloads"`
	WorkloadsPublicSubnet  int `json:"workloadsPublicSubnet"`
	WorkloadsNATGateway    int `json:"workloadsNatGateway"`
	WorkloadsUDR           int `json:"workloadsUdr"`
	WorkloadsDefaultEgress int `json:"workloadsDefaultEgress"`
	WorkloadsMixedMode     int `json:"workloadsMixedMode"`

	CIDROverlaps int `json:"cidrOverlaps"`
}

// Summarize folds the classified graph into overall totals.
func Summarize(a *Assessment) Totals {
	var t Totals
	t.Subscriptions = len(a.Subscriptions)
	t.CIDROverlaps = len(a.Overlaps)
	for _, sub := range a.Subscriptions {
		t.add(SummarizeSubscription(sub))
	}
	return t
}

// SummarizeSubscription folds one subscription's networks into totals.
func SummarizeSubscription(sub *Subscription) Totals {
	var t Totals
	t.VNets = len(sub.VNets)
	for _, vnet := range sub.VNets {
		switch vnet.Classification {
		case VNetAffectedInsecure:
			t.VNetsAffected++
		case VNetNotAffectedSecure:
			t.VNetsReadySecure++
		case VNetNotAffectedInsecure:
			t.VNetsReadyInsecure++
		}
		if len(vnet.Overlapping) > 0 {
			t.VNetsWithOverlaps++
		}

		for _, subnet := range vnet.Subnets {
			t.Subnets++
			t.Workloads += subnet.NICCount
			t.WorkloadsPublicIP += subnet.PublicIPCount

			switch subnet.Classification {
			case AffectedDefaultEgress:
				t.SubnetsAffected++
				t.SubnetsDefaultEgress++
				t.WorkloadsDefaultEgress += subnet.NICCount
				t.WorkloadsAffected += subnet.NICCount
			case AffectedMixedMode:
				t.SubnetsAffected++
				t.SubnetsMixedMode++
				t.WorkloadsMixedMode += subnet.NICCount
				t.WorkloadsAffected += subnet.NICCount
			case NotAffected:
				t.SubnetsNotAffected++
				switch subnet.ReasonCode {
				case ReasonNoWorkloads:
					t.SubnetsNoWorkloads++
					t.WorkloadsNoWorkloads += subnet.NICCount
				case ReasonPublicSubnet:
					t.SubnetsPublic++
					t.WorkloadsPublicSubnet += subnet.NICCount
				case ReasonNATGateway:
					t.SubnetsNATGateway++
					t.WorkloadsNATGateway += subnet.NICCount
				case ReasonDefaultRoute:
					t.SubnetsUDR++
					t.WorkloadsUDR += subnet.NICCount
				}
			}
		}
	}
	return t
}

func (t *Totals) add(o Totals) {
	t.VNets += o.VNets
	t.Subnets += o.Subnets
	t.SubnetsNotAffected += o.SubnetsNotAffected
	t.SubnetsDefaultEgress += o.SubnetsDefaultEgress
	t.SubnetsMixedMode += o.SubnetsMixedMode
	t.SubnetsAffected += o.SubnetsAffected
	t.SubnetsNoWorkloads += o.SubnetsNoWorkloads
	t.SubnetsPublic += o.SubnetsPublic
	t.SubnetsNATGateway += o.SubnetsNATGateway
	t.SubnetsUDR += o.SubnetsUDR
	t.VNetsReadySecure += o.VNetsReadySecure
	t.VNetsReadyInsecure += o.VNetsReadyInsecure
	t.VNetsAffected += o.VNetsAffected
	t.VNetsWithOverlaps += o.VNetsWithOverlaps
	t.Workloads += o.Workloads
	t.WorkloadsPublicIP += o.WorkloadsPublicIP
	t.WorkloadsAffected += o.WorkloadsAffected
	t.WorkloadsNoWorkloads += o.WorkloadsNoWorkloads
	t.WorkloadsPublicSubnet += o.WorkloadsPublicSubnet
	t.WorkloadsNATGateway += o.WorkloadsNATGateway
	t.WorkloadsUDR += o.WorkloadsUDR
	t.WorkloadsDefaultEgress += o.WorkloadsDefaultEgress
	t.WorkloadsMixedMode += o.WorkloadsMixedMode
}

// ImpactPercent is the share of subnets that are affected, rounded to one
// decimal place.
func (t Totals) ImpactPercent() float64 {
	return percent(t.SubnetsAffected, t.Subnets)
}

// PublicIPPercent is the share of workloads carrying a public IP.
func (t Totals) PublicIPPercent() float64 {
	return percent(t.WorkloadsPublicIP, t.Workloads)
}

// ReadinessPercent is the share of VNets that survive the retirement
// (ready secure + ready insecure).
func (t Totals) ReadinessPercent() float64 {
	return percent(t.VNetsReadySecure+t.VNetsReadyInsecure, t.VNets)
}

// VNetsNeedingRemediation counts VNets that need work before or after the
// retirement (affected, or relying on NAT alone).
func (t Totals) VNetsNeedingRemediation() int {
	return t.VNetsReadyInsecure + t.VNetsAffected
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(whole)*1000) / 10
}
