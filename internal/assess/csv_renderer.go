package assess

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
)

var csvHeader = []string{
	"Subscription ID", "Subscription Name",
	"VNet Name", "Resource Group", "Address Space",
	"Subnet Name", "Address Prefix", "Classification", "Reason",
	"Uses Default Egress", "Has Route Table", "Has Default Route",
	"Has NAT Gateway", "NICs Count", "NICs With Public IP",
}

// RenderCSV writes one row per subnet.
func RenderCSV(w io.Writer, a *Assessment) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}

	for _, sub := range a.Subscriptions {
		for _, vnet := range sub.VNets {
			for _, subnet := range vnet.Subnets {
				row := []string{
					sub.ID, sub.DisplayName,
					vnet.Name, vnet.ResourceGroup, strings.Join(vnet.AddressSpace, ", "),
					subnet.Name, subnet.AddressPrefix, string(subnet.Classification), subnet.Reason,
					strconv.FormatBool(subnet.UsesDefaultEgress),
					strconv.FormatBool(subnet.RouteTableID != ""),
					strconv.FormatBool(subnet.HasDefaultRoute),
					strconv.FormatBool(subnet.NATGatewayID != ""),
					strconv.Itoa(subnet.NICCount),
					strconv.Itoa(subnet.PublicIPCount),
				}
				if err := writer.Write(row); err != nil {
					return err
				}
			}
		}
	}

	writer.Flush()
	return writer.Error()
}
