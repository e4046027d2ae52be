// Package azure walks subscriptions, virtual networks, subnets, and network
// interfaces through the ARM SDK and feeds the classification engine.
package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork/v6"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
)

// SubscriptionInfo is the subset of subscription metadata the walker needs.
type SubscriptionInfo struct {
	ID          string
	DisplayName string
	State       string
}

// API is the surface of the ARM SDK the walker consumes. Tests substitute a
// fake; production code uses Clients.
type API interface {
	ListSubscriptions(ctx context.Context) ([]SubscriptionInfo, error)
	ListVirtualNetworks(ctx context.Context, subscriptionID string) ([]*armnetwork.VirtualNetwork, error)
	GetRouteTable(ctx context.Context, subscriptionID, resourceGroup, name string) (*armnetwork.RouteTable, error)
	ListNetworkInterfaces(ctx context.Context, subscriptionID string) ([]*armnetwork.Interface, error)
}

// Clients is the SDK-backed API implementation. Network clients are scoped to
// a subscription, so they are constructed per call.
type Clients struct {
	cred azcore.TokenCredential
	opts *arm.ClientOptions
}

// NewClients creates an API backed by the ARM SDK.
func NewClients(cred azcore.TokenCredential, opts *arm.ClientOptions) *Clients {
	return &Clients{cred: cred, opts: opts}
}

func (c *Clients) ListSubscriptions(ctx context.Context) ([]SubscriptionInfo, error) {
	client, err := armsubscriptions.NewClient(c.cred, c.opts)
	if err != nil {
		return nil, fmt.Errorf("creating subscriptions client: %w", err)
	}

	out := make([]SubscriptionInfo, 0)
	pager := client.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing subscriptions: %w", err)
		}
		for _, sub := range page.Value {
			if sub.SubscriptionID == nil {
				continue
			}
			info := SubscriptionInfo{ID: *sub.SubscriptionID}
			if sub.DisplayName != nil {
				info.DisplayName = *sub.DisplayName
			}
			if sub.State != nil {
				info.State = string(*sub.State)
			}
			out = append(out, info)
		}
	}
	return out, nil
}

func (c *Clients) ListVirtualNetworks(ctx context.Context, subscriptionID string) ([]*armnetwork.VirtualNetwork, error) {
	client, err := armnetwork.NewVirtualNetworksClient(subscriptionID, c.cred, c.opts)
	if err != nil {
		return nil, fmt.Errorf("creating virtual networks client: %w", err)
	}

	out := make([]*armnetwork.VirtualNetwork, 0)
	pager := client.NewListAllPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing virtual networks: %w", err)
		}
		out = append(out, page.Value...)
	}
	return out, nil
}

func (c *Clients) GetRouteTable(ctx context.Context, subscriptionID, resourceGroup, name string) (*armnetwork.RouteTable, error) {
	client, err := armnetwork.NewRouteTablesClient(subscriptionID, c.cred, c.opts)
	if err != nil {
		return nil, fmt.Errorf("creating route tables client: %w", err)
	}

	resp, err := client.Get(ctx, resourceGroup, name, nil)
	if err != nil {
		return nil, fmt.Errorf("getting route table %s/%s: %w", resourceGroup, name, err)
	}
	return &resp.RouteTable, nil
}

func (c *Clients) ListNetworkInterfaces(ctx context.Context, subscriptionID string) ([]*armnetwork.Interface, error) {
	client, err := armnetwork.NewInterfacesClient(subscriptionID, c.cred, c.opts)
	if err != nil {
		return nil, fmt.Errorf("creating network interfaces client: %w", err)
	}

	out := make([]*armnetwork.Interface, 0)
	pager := client.NewListAllPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing network interfaces: %w", err)
		}
		out = append(out, page.Value...)
	}
	return out, nil
}
