// Package gates computes the managed_by_module flag per resource family.
// Gates only mark whether a resource is provisioned by the module; unmanaged
// resources are still fully derived so that anything referencing them keeps
// a valid resource ID.
package gates

import (
	"strings"

	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/types"
)

func HubNetworkDeploy(settings types.NormalizedSettings, hubNetwork types.NormalizedHubNetwork) bool {
	return settings.Enabled && hubNetwork.Enabled
}

// GatewayDeploy requires a gateway subnet address prefix on top of the
// enablement flags; without one the GatewaySubnet cannot be synthesized.
func GatewayDeploy(settings types.NormalizedSettings, hubNetwork types.NormalizedHubNetwork) bool {
	gateway := hubNetwork.Config.VirtualNetworkGateway
	return HubNetworkDeploy(settings, hubNetwork) && gateway.Enabled && gateway.Config.AddressPrefix != ""
}

func ExpressRouteGatewayDeploy(settings types.NormalizedSettings, hubNetwork types.NormalizedHubNetwork) bool {
	return GatewayDeploy(settings, hubNetwork) && hubNetwork.Config.VirtualNetworkGateway.Config.GatewaySkuExpressroute != ""
}

func VpnGatewayDeploy(settings types.NormalizedSettings, hubNetwork types.NormalizedHubNetwork) bool {
	return GatewayDeploy(settings, hubNetwork) && hubNetwork.Config.VirtualNetworkGateway.Config.GatewaySkuVpn != ""
}

func FirewallDeploy(settings types.NormalizedSettings, hubNetwork types.NormalizedHubNetwork) bool {
	return HubNetworkDeploy(settings, hubNetwork) && hubNetwork.Config.AzureFirewall.Enabled
}

func DdosProtectionPlanDeploy(settings types.NormalizedSettings) bool {
	return settings.Enabled && settings.Ddos.Enabled
}

func DnsDeploy(settings types.NormalizedSettings) bool {
	return settings.Enabled && settings.Dns.Enabled
}

// DnsZoneDeploy gates a zone owned by private link services: the zone is
// deployed when DNS is deployed and at least one owning service is enabled.
func DnsZoneDeploy(settings types.NormalizedSettings, owningServices []string) bool {
	if !DnsDeploy(settings) {
		return false
	}
	for _, serviceName := range owningServices {
		if settings.Dns.Config.EnablePrivateLinkByService[serviceName] {
			return true
		}
	}
	return false
}

func ZoneLinkDeploy(zoneDeploy bool, linkEnabled bool) bool {
	return zoneDeploy && linkEnabled
}

func OutboundPeeringDeploy(settings types.NormalizedSettings, hubNetwork types.NormalizedHubNetwork) bool {
	return DnsDeploy(settings) && hubNetwork.Config.EnableOutboundVirtualNetworkPeering
}

// ZoneRedundantGatewaySku reports whether a gateway SKU carries the zone
// redundancy marker, which switches its public IP defaults.
func ZoneRedundantGatewaySku(sku string) bool {
	return strings.HasSuffix(sku, "AZ")
}
