package azure

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork/v6"

	"github.com/kjourdan1/egressctl/internal/assess"
	"github.com/kjourdan1/egressctl/internal/output"
)

const defaultRoutePrefix = "0.0.0.0/0"

// Options configures a Walker.
type Options struct {
	// Subscriptions is an allow-list of subscription IDs or display names.
	// Empty means every subscription visible to the credential.
	Subscriptions []string
	// Concurrency caps parallel subscription walks. Zero means the default.
	Concurrency int
	// Progress receives per-VNet ticks when set.
	Progress *output.Progress
	Retry    RetryConfig
}

// Walker inventories the network topology of a tenant and classifies every
// subnet as it goes. Subscription-level failures become warnings on the
// assessment, not errors; only an empty inventory is fatal.
type Walker struct {
	api         API
	include     []string
	concurrency int
	progress    *output.Progress
	retry       RetryConfig
}

// NewWalker creates a walker over the given API.
func NewWalker(api API, opts Options) *Walker {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = 5
	}
	return &Walker{
		api:         api,
		include:     opts.Subscriptions,
		concurrency: concurrency,
		progress:    opts.Progress,
		retry:       opts.Retry,
	}
}

// Walk lists subscriptions, walks each one concurrently, and returns the
// fully classified assessment (subnet verdicts, VNet roll-ups, CIDR overlaps).
func (w *Walker) Walk(ctx context.Context) (*assess.Assessment, error) {
	subs, err := w.api.ListSubscriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing subscriptions: %w", err)
	}
	if len(subs) == 0 {
		return nil, output.NewErrorWithFix("no subscriptions visible to this credential",
			"Check access with: az account list --output table")
	}

	selected, unmatched := filterSubscriptions(subs, w.include)
	if len(w.include) > 0 && len(selected) == 0 {
		return nil, output.NewErrorWithFix(
			fmt.Sprintf("none of the requested subscriptions matched: %s", strings.Join(w.include, ", ")),
			"List the visible subscriptions with: az account list --output table")
	}

	a := &assess.Assessment{GeneratedAt: time.Now().UTC()}
	for _, miss := range unmatched {
		a.Warnings = append(a.Warnings, fmt.Sprintf("requested subscription not found: %s", miss))
	}

	type result struct {
		sub      *assess.Subscription
		warnings []string
	}
	results := make([]result, len(selected))
	sem := make(chan struct{}, w.concurrency)
	var wg sync.WaitGroup

	for i, info := range selected {
		i, info := i, info
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			sub, warnings := w.walkSubscription(ctx, info)
			results[i] = result{sub: sub, warnings: warnings}
		}()
	}
	wg.Wait()

	for _, r := range results {
		a.Subscriptions = append(a.Subscriptions, r.sub)
		a.Warnings = append(a.Warnings, r.warnings...)
	}
	sort.Strings(a.Warnings)

	assess.Finalize(a)
	assess.DetectOverlaps(a)
	return a, nil
}

// walkSubscription builds the classified VNet graph for one subscription.
// Listing failures degrade to warnings: a subscription whose networks cannot
// be read still appears in the report, empty.
func (w *Walker) walkSubscription(ctx context.Context, info SubscriptionInfo) (*assess.Subscription, []string) {
	sub := &assess.Subscription{
		ID:          info.ID,
		DisplayName: info.DisplayName,
		State:       info.State,
		VNets:       make([]*assess.VNet, 0),
	}
	warnings := make([]string, 0)

	vnets, err := w.api.ListVirtualNetworks(ctx, info.ID)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("subscription %s: %v", info.ID, err))
		return sub, warnings
	}

	nicIndex, nicWarnings := w.indexInterfaces(ctx, info.ID)
	warnings = append(warnings, nicWarnings...)

	if w.progress != nil {
		w.progress.AddTotal(len(vnets))
	}

	// Route tables are shared across subnets; fetch each once.
	routeTables := make(map[string]*armnetwork.RouteTable)

	for _, v := range vnets {
		vnet := &assess.VNet{
			ID:            deref(v.ID),
			Name:          deref(v.Name),
			ResourceGroup: resourceGroupFromID(deref(v.ID)),
			Subnets:       make([]*assess.Subnet, 0),
		}
		if v.Properties != nil && v.Properties.AddressSpace != nil {
			for _, prefix := range v.Properties.AddressSpace.AddressPrefixes {
				if prefix != nil {
					vnet.AddressSpace = append(vnet.AddressSpace, *prefix)
				}
			}
		}

		if v.Properties != nil {
			for _, s := range v.Properties.Subnets {
				subnet, warn := w.buildSubnet(ctx, info.ID, s, nicIndex, routeTables)
				if warn != "" {
					warnings = append(warnings, warn)
				}
				vnet.Subnets = append(vnet.Subnets, subnet)
			}
		}

		sub.VNets = append(sub.VNets, vnet)
		if w.progress != nil {
			w.progress.Increment()
		}
	}

	return sub, warnings
}

// buildSubnet assembles the routing/NAT/NIC facts for one subnet and runs the
// classifier. A route table that cannot be fetched is reported as a warning
// and treated as having no default route.
func (w *Walker) buildSubnet(ctx context.Context, subscriptionID string, s *armnetwork.Subnet,
	nicIndex map[string][]assess.Interface, routeTables map[string]*armnetwork.RouteTable) (*assess.Subnet, string) {

	subnet := &assess.Subnet{
		ID:         deref(s.ID),
		Name:       deref(s.Name),
		Interfaces: make([]assess.Interface, 0),
	}
	if s.Properties != nil {
		if s.Properties.AddressPrefix != nil {
			subnet.AddressPrefix = *s.Properties.AddressPrefix
		} else if len(s.Properties.AddressPrefixes) > 0 && s.Properties.AddressPrefixes[0] != nil {
			subnet.AddressPrefix = *s.Properties.AddressPrefixes[0]
		}
		if s.Properties.RouteTable != nil {
			subnet.RouteTableID = deref(s.Properties.RouteTable.ID)
		}
		if s.Properties.NatGateway != nil {
			subnet.NATGatewayID = deref(s.Properties.NatGateway.ID)
		}
	}

	subnet.Interfaces = nicIndex[strings.ToLower(subnet.ID)]
	if subnet.Interfaces == nil {
		subnet.Interfaces = make([]assess.Interface, 0)
	}
	subnet.NICCount = len(subnet.Interfaces)
	for _, nic := range subnet.Interfaces {
		if nic.HasPublicIP {
			subnet.PublicIPCount++
		}
	}

	warning := ""
	if subnet.RouteTableID != "" {
		rt, err := w.routeTable(ctx, subscriptionID, subnet.RouteTableID, routeTables)
		if err != nil {
			warning = fmt.Sprintf("subnet %s: %v", subnet.Name, err)
		} else if rt != nil {
			subnet.HasDefaultRoute, subnet.DefaultRouteNextHop, subnet.DefaultRouteNextHopIP = defaultRoute(rt)
		}
	}

	verdict := assess.ClassifySubnet(assess.SubnetFacts{
		HasDefaultRoute: subnet.HasDefaultRoute,
		NextHopType:     subnet.DefaultRouteNextHop,
		NextHopIP:       subnet.DefaultRouteNextHopIP,
		HasNATGateway:   subnet.NATGatewayID != "",
		NICCount:        subnet.NICCount,
		PublicIPCount:   subnet.PublicIPCount,
	})
	subnet.Classification = verdict.Classification
	subnet.ReasonCode = verdict.ReasonCode
	subnet.Reason = verdict.Reason
	subnet.EgressMechanism = verdict.Mechanism
	subnet.UsesDefaultEgress = verdict.UsesDefaultEgress

	return subnet, warning
}

// routeTable fetches a route table by ARM ID with retry, memoizing per walk.
func (w *Walker) routeTable(ctx context.Context, subscriptionID, id string,
	cache map[string]*armnetwork.RouteTable) (*armnetwork.RouteTable, error) {

	key := strings.ToLower(id)
	if rt, ok := cache[key]; ok {
		return rt, nil
	}

	resourceGroup := resourceGroupFromID(id)
	name := lastSegment(id)
	if resourceGroup == "" || name == "" {
		return nil, fmt.Errorf("malformed route table ID %s", id)
	}

	rt, err := Retry(ctx, w.retry, func() (*armnetwork.RouteTable, error) {
		return w.api.GetRouteTable(ctx, subscriptionID, resourceGroup, name)
	})
	if err != nil {
		return nil, err
	}
	cache[key] = rt
	return rt, nil
}

// indexInterfaces lists every NIC in the subscription once and groups its IP
// configurations by subnet ID. Each IP configuration counts as one workload.
func (w *Walker) indexInterfaces(ctx context.Context, subscriptionID string) (map[string][]assess.Interface, []string) {
	index := make(map[string][]assess.Interface)

	nics, err := w.api.ListNetworkInterfaces(ctx, subscriptionID)
	if err != nil {
		return index, []string{fmt.Sprintf("subscription %s: %v", subscriptionID, err)}
	}

	for _, nic := range nics {
		if nic.Properties == nil {
			continue
		}
		for _, ipcfg := range nic.Properties.IPConfigurations {
			if ipcfg.Properties == nil || ipcfg.Properties.Subnet == nil || ipcfg.Properties.Subnet.ID == nil {
				continue
			}
			key := strings.ToLower(*ipcfg.Properties.Subnet.ID)
			entry := assess.Interface{
				ID:   deref(nic.ID),
				Name: deref(nic.Name),
			}
			if ipcfg.Properties.PrivateIPAddress != nil {
				entry.PrivateIP = *ipcfg.Properties.PrivateIPAddress
			}
			if ipcfg.Properties.PublicIPAddress != nil {
				entry.HasPublicIP = true
				entry.PublicIPID = deref(ipcfg.Properties.PublicIPAddress.ID)
			}
			index[key] = append(index[key], entry)
		}
	}
	return index, nil
}

// defaultRoute reports whether the route table carries a 0.0.0.0/0 route and
// its next hop.
func defaultRoute(rt *armnetwork.RouteTable) (has bool, nextHopType, nextHopIP string) {
	if rt.Properties == nil {
		return false, "", ""
	}
	for _, route := range rt.Properties.Routes {
		if route.Properties == nil || route.Properties.AddressPrefix == nil {
			continue
		}
		if *route.Properties.AddressPrefix != defaultRoutePrefix {
			continue
		}
		has = true
		if route.Properties.NextHopType != nil {
			nextHopType = string(*route.Properties.NextHopType)
		}
		if route.Properties.NextHopIPAddress != nil {
			nextHopIP = *route.Properties.NextHopIPAddress
		}
		return has, nextHopType, nextHopIP
	}
	return false, "", ""
}

// filterSubscriptions applies the allow-list, matching on ID or display name
// case-insensitively. It returns the selection in discovery order plus the
// requested entries that matched nothing.
func filterSubscriptions(subs []SubscriptionInfo, include []string) (selected []SubscriptionInfo, unmatched []string) {
	if len(include) == 0 {
		return subs, nil
	}

	matched := make(map[string]bool, len(include))
	for _, sub := range subs {
		for _, want := range include {
			if strings.EqualFold(want, sub.ID) || strings.EqualFold(want, sub.DisplayName) {
				selected = append(selected, sub)
				matched[strings.ToLower(want)] = true
				break
			}
		}
	}
	for _, want := range include {
		if !matched[strings.ToLower(want)] {
			unmatched = append(unmatched, want)
		}
	}
	return selected, unmatched
}

// resourceGroupFromID extracts the resource group name from an ARM ID.
func resourceGroupFromID(id string) string {
	parts := strings.Split(id, "/")
	for i := 0; i < len(parts)-1; i++ {
		if strings.EqualFold(parts[i], "resourceGroups") {
			return parts[i+1]
		}
	}
	return ""
}

func lastSegment(id string) string {
	parts := strings.Split(id, "/")
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
