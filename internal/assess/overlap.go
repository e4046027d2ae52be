package assess

import (
	"fmt"
	"net/netip"
	"sort"
	"strings"
)

type prefixEntry struct {
	subscription *Subscription
	vnet         *VNet
	cidr         string
	prefix       netip.Prefix
}

// DetectOverlaps performs a pairwise comparison of every VNet address prefix
// across all subscriptions. Each unordered pair of overlapping prefixes is
// recorded once on the assessment and symmetrically on both VNets. Invalid
// prefixes are skipped with a warning. O(n²) over address prefixes, which is
// fine for real-world inventories.
func DetectOverlaps(a *Assessment) {
	entries := make([]prefixEntry, 0)
	for _, sub := range a.Subscriptions {
		for _, vnet := range sub.VNets {
			for _, cidr := range vnet.AddressSpace {
				prefix, err := netip.ParsePrefix(cidr)
				if err != nil {
					a.Warnings = append(a.Warnings,
						fmt.Sprintf("invalid CIDR %s in VNet %s: %v", cidr, vnet.Name, err))
					continue
				}
				entries = append(entries, prefixEntry{
					subscription: sub,
					vnet:         vnet,
					cidr:         cidr,
					prefix:       prefix.Masked(),
				})
			}
		}
	}

	seen := make(map[string]bool)
	for i, e1 := range entries {
		for _, e2 := range entries[i+1:] {
			if e1.vnet.ID == e2.vnet.ID {
				continue
			}
			if !e1.prefix.Overlaps(e2.prefix) {
				continue
			}

			key := pairKey(e1, e2)
			if seen[key] {
				continue
			}
			seen[key] = true

			relationship := relate(e1, e2)
			a.Overlaps = append(a.Overlaps, &Overlap{
				A:            endpoint(e1),
				B:            endpoint(e2),
				Relationship: relationship,
			})
			e1.vnet.Overlapping = append(e1.vnet.Overlapping, peer(e2, relationship))
			e2.vnet.Overlapping = append(e2.vnet.Overlapping, peer(e1, relationship))
		}
	}
}

// relate describes the containment relationship between two overlapping
// prefixes.
func relate(e1, e2 prefixEntry) string {
	switch {
	case subsetOf(e1.prefix, e2.prefix):
		return fmt.Sprintf("%s is contained within %s", e1.cidr, e2.cidr)
	case subsetOf(e2.prefix, e1.prefix):
		return fmt.Sprintf("%s is contained within %s", e2.cidr, e1.cidr)
	default:
		return fmt.Sprintf("%s and %s partially overlap", e1.cidr, e2.cidr)
	}
}

// subsetOf reports whether every address of p is also in q.
func subsetOf(p, q netip.Prefix) bool {
	return p.Bits() >= q.Bits() && q.Contains(p.Addr())
}

func pairKey(e1, e2 prefixEntry) string {
	parts := []string{
		fmt.Sprintf("%s:%s:%s", e1.subscription.ID, e1.vnet.ID, e1.cidr),
		fmt.Sprintf("%s:%s:%s", e2.subscription.ID, e2.vnet.ID, e2.cidr),
	}
	sort.Strings(parts)
	return strings.Join(parts, "|")
}

func endpoint(e prefixEntry) OverlapEndpoint {
	return OverlapEndpoint{
		SubscriptionID:   e.subscription.ID,
		SubscriptionName: e.subscription.DisplayName,
		VNetID:           e.vnet.ID,
		VNetName:         e.vnet.Name,
		CIDR:             e.cidr,
	}
}

func peer(e prefixEntry, relationship string) OverlapPeer {
	return OverlapPeer{
		SubscriptionID:   e.subscription.ID,
		SubscriptionName: e.subscription.DisplayName,
		VNetID:           e.vnet.ID,
		VNetName:         e.vnet.Name,
		CIDR:             e.cidr,
		Relationship:     relationship,
	}
}
