package assess

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// RenderTerminal prints the per-subscription and overall summaries with
// severity coloring. Pure presentation over the classified graph.
func RenderTerminal(w io.Writer, a *Assessment) {
	bold := color.New(color.Bold)
	header := color.New(color.FgMagenta, color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	header.Fprintln(w, "==================== ASSESSMENT SUMMARY ====================")

	for _, sub := range a.Subscriptions {
		t := SummarizeSubscription(sub)

		fmt.Fprintln(w)
		bold.Fprintf(w, "Subscription: %s (%s)\n", sub.DisplayName, sub.ID)
		fmt.Fprintf(w, "  VNets: %d (Ready Secure: %d, Ready Insecure: %d, Affected: %d)\n",
			t.VNets, t.VNetsReadySecure, t.VNetsReadyInsecure, t.VNetsAffected)
		fmt.Fprintf(w, "  Subnets: %d\n", t.Subnets)
		fmt.Fprintf(w, "  Affected Subnets: %d\n", t.SubnetsAffected)
		fmt.Fprintf(w, "  VNets with Overlapping CIDRs: %d\n", t.VNetsWithOverlaps)
		fmt.Fprintln(w, "  Subnet Classification:")
		green.Fprintf(w, "    Not Affected: %d (No Workloads: %d, Public: %d, NAT Gateway: %d, UDR: %d)\n",
			t.SubnetsNotAffected, t.SubnetsNoWorkloads, t.SubnetsPublic, t.SubnetsNATGateway, t.SubnetsUDR)
		yellow.Fprintf(w, "    Default Egress: %d\n", t.SubnetsDefaultEgress)
		red.Fprintf(w, "    Mixed-Mode: %d\n", t.SubnetsMixedMode)
	}

	t := Summarize(a)
	fmt.Fprintln(w)
	header.Fprintln(w, "==================== OVERALL SUMMARY ====================")
	fmt.Fprintf(w, "Total Subscriptions: %d\n", t.Subscriptions)
	fmt.Fprintf(w, "Total VNets: %d\n", t.VNets)
	fmt.Fprintf(w, "  Ready (Secure): %d\n", t.VNetsReadySecure)
	fmt.Fprintf(w, "  Ready (Insecure): %d\n", t.VNetsReadyInsecure)
	fmt.Fprintf(w, "  Affected: %d\n", t.VNetsAffected)
	fmt.Fprintf(w, "Total Subnets: %d\n", t.Subnets)
	fmt.Fprintf(w, "Total Affected Subnets: %d (%.1f%%)\n", t.SubnetsAffected, t.ImpactPercent())
	fmt.Fprintf(w, "Total Workloads: %d (%d with public IP)\n", t.Workloads, t.WorkloadsPublicIP)
	fmt.Fprintf(w, "Total VNets with Overlapping CIDRs: %d\n", t.VNetsWithOverlaps)
	fmt.Fprintln(w, "Subnet Classification:")
	green.Fprintf(w, "  Not Affected: %d\n", t.SubnetsNotAffected)
	fmt.Fprintf(w, "    - No Workloads: %d\n", t.SubnetsNoWorkloads)
	fmt.Fprintf(w, "    - Public Subnets: %d\n", t.SubnetsPublic)
	fmt.Fprintf(w, "    - NAT Gateway: %d\n", t.SubnetsNATGateway)
	fmt.Fprintf(w, "    - UDR with 0.0.0.0/0: %d\n", t.SubnetsUDR)
	yellow.Fprintf(w, "  Default Egress: %d\n", t.SubnetsDefaultEgress)
	red.Fprintf(w, "  Mixed-Mode: %d\n", t.SubnetsMixedMode)

	if len(a.Overlaps) > 0 {
		fmt.Fprintln(w)
		header.Fprintln(w, "==================== CIDR OVERLAPS ====================")
		for _, overlap := range a.Overlaps {
			fmt.Fprintf(w, "  %s (%s) - %s\n", overlap.A.VNetName, overlap.A.SubscriptionName, overlap.A.CIDR)
			fmt.Fprintf(w, "  %s (%s) - %s\n", overlap.B.VNetName, overlap.B.SubscriptionName, overlap.B.CIDR)
			fmt.Fprintf(w, "  Relationship: %s\n\n", overlap.Relationship)
		}
	}

	if len(a.Warnings) > 0 {
		fmt.Fprintln(w)
		for _, warning := range a.Warnings {
			yellow.Fprintf(w, "! %s\n", warning)
		}
	}
}

// ClassificationColor returns the terminal color for a subnet verdict.
func ClassificationColor(c Classification) *color.Color {
	switch c {
	case AffectedDefaultEgress:
		return color.New(color.FgYellow)
	case AffectedMixedMode:
		return color.New(color.FgRed)
	default:
		return color.New(color.FgGreen)
	}
}
