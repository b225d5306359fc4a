// Package assembler projects the derived resource collections into the
// externally consumed records. Templates are built by explicit per-family
// projection functions; logic-only fields (resource IDs, gates, scopes, NSG
// and route table references on subnets) never reach a template.
package assembler

import (
	"github.com/sirupsen/logrus"

	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/gates"
	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/types"
)

type IClient interface {
	Assemble(settings types.NormalizedSettings, derived types.DerivedResources) types.GeneratedResources
}

type Client struct {
	Logger *logrus.Logger
}

func NewClient(logger *logrus.Logger) *Client {
	return &Client{
		Logger: logger,
	}
}

func (client *Client) Assemble(settings types.NormalizedSettings, derived types.DerivedResources) types.GeneratedResources {
	resources := types.GeneratedResources{
		ResourceGroups:           []types.ResourceRecord{},
		DdosProtectionPlans:      []types.ResourceRecord{},
		VirtualNetworks:          []types.ResourceRecord{},
		Subnets:                  []types.ResourceRecord{},
		VirtualNetworkGateways:   []types.ResourceRecord{},
		PublicIPAddresses:        []types.ResourceRecord{},
		AzureFirewalls:           []types.ResourceRecord{},
		PrivateDnsZones:          []types.ResourceRecord{},
		PublicDnsZones:           []types.ResourceRecord{},
		PrivateDnsZoneLinks:      []types.ResourceRecord{},
		VirtualNetworkPeerings:   []types.ResourceRecord{},
		ArchetypeConfigOverrides: archetypeConfigOverrides(settings, derived),
		TemplateFileVariables:    map[string]string{"resource_prefix": settings.ResourcePrefix},
	}

	for _, resourceGroup := range derived.ResourceGroups {
		resources.ResourceGroups = append(resources.ResourceGroups, resourceGroupRecord(resourceGroup))
	}
	for _, ddosPlan := range derived.Network.DdosProtectionPlans {
		resources.DdosProtectionPlans = append(resources.DdosProtectionPlans, ddosProtectionPlanRecord(ddosPlan))
	}
	for _, virtualNetwork := range derived.Network.VirtualNetworks {
		resources.VirtualNetworks = append(resources.VirtualNetworks, virtualNetworkRecord(virtualNetwork))
	}
	for _, subnet := range derived.Network.Subnets {
		resources.Subnets = append(resources.Subnets, subnetRecord(subnet))
	}
	for _, gateway := range derived.Network.Gateways {
		resources.VirtualNetworkGateways = append(resources.VirtualNetworkGateways, gatewayRecord(gateway))
	}
	for _, publicIP := range derived.Network.PublicIPAddresses {
		resources.PublicIPAddresses = append(resources.PublicIPAddresses, publicIPAddressRecord(publicIP))
	}
	for _, firewall := range derived.Network.Firewalls {
		resources.AzureFirewalls = append(resources.AzureFirewalls, firewallRecord(firewall))
	}
	for _, zone := range derived.Dns.PrivateZones {
		resources.PrivateDnsZones = append(resources.PrivateDnsZones, dnsZoneRecord(zone))
	}
	for _, zone := range derived.Dns.PublicZones {
		resources.PublicDnsZones = append(resources.PublicDnsZones, dnsZoneRecord(zone))
	}
	for _, zoneLink := range derived.Dns.ZoneLinks {
		resources.PrivateDnsZoneLinks = append(resources.PrivateDnsZoneLinks, zoneLinkRecord(zoneLink))
	}
	for _, peering := range derived.Peerings {
		resources.VirtualNetworkPeerings = append(resources.VirtualNetworkPeerings, peeringRecord(peering))
	}

	client.Logger.Debugf("Assembled %d resource families", len(resources.Families()))

	return resources
}

func archetypeConfigOverrides(settings types.NormalizedSettings, derived types.DerivedResources) map[string]types.ArchetypeConfigOverride {
	privateDnsZoneIDs := map[string]any{}
	for _, zone := range derived.Dns.PrivateZones {
		privateDnsZoneIDs[zone.Name] = zone.ResourceID
	}

	ddosPlanID := ""
	if gates.DdosProtectionPlanDeploy(settings) && len(derived.Network.DdosProtectionPlans) > 0 {
		ddosPlanID = derived.Network.DdosProtectionPlans[0].ResourceID
	}

	return map[string]types.ArchetypeConfigOverride{
		"corp": {
			Parameters: map[string]any{
				"Deploy-Private-DNS-Zones": privateDnsZoneIDs,
			},
		},
		"landing_zones": {
			Parameters: map[string]any{
				"Enable-DDoS-VNET": map[string]any{
					"ddosPlan": ddosPlanID,
				},
			},
		},
	}
}

// newRecord applies the empty-template rule for unmanaged resources;
// buildTemplate runs only when the resource gate is open.
func newRecord(resourceID string, resourceName string, managed bool, buildTemplate func() map[string]any) types.ResourceRecord {
	record := types.ResourceRecord{
		ResourceID:      resourceID,
		ResourceName:    resourceName,
		Template:        map[string]any{},
		ManagedByModule: managed,
	}
	if managed {
		record.Template = buildTemplate()
	}
	return record
}

func resourceGroupRecord(resourceGroup types.ResourceGroup) types.ResourceRecord {
	return newRecord(resourceGroup.ResourceID, resourceGroup.Name, resourceGroup.Managed, func() map[string]any {
		return map[string]any{
			"name":     resourceGroup.Name,
			"location": resourceGroup.Location,
			"tags":     resourceGroup.Tags,
		}
	})
}

func ddosProtectionPlanRecord(ddosPlan types.DdosProtectionPlan) types.ResourceRecord {
	return newRecord(ddosPlan.ResourceID, ddosPlan.Name, ddosPlan.Managed, func() map[string]any {
		return map[string]any{
			"name":                ddosPlan.Name,
			"resource_group_name": ddosPlan.ResourceGroupName,
			"location":            ddosPlan.Location,
			"tags":                ddosPlan.Tags,
		}
	})
}

func virtualNetworkRecord(virtualNetwork types.VirtualNetwork) types.ResourceRecord {
	return newRecord(virtualNetwork.ResourceID, virtualNetwork.Name, virtualNetwork.Managed, func() map[string]any {
		template := map[string]any{
			"name":                virtualNetwork.Name,
			"resource_group_name": virtualNetwork.ResourceGroupName,
			"location":            virtualNetwork.Location,
			"address_space":       virtualNetwork.AddressSpace,
			"tags":                virtualNetwork.Tags,
		}
		if len(virtualNetwork.DnsServers) > 0 {
			template["dns_servers"] = virtualNetwork.DnsServers
		}
		if virtualNetwork.BgpCommunity != "" {
			template["bgp_community"] = virtualNetwork.BgpCommunity
		}
		if virtualNetwork.DdosProtectionPlanID != "" {
			template["ddos_protection_plan"] = []map[string]any{
				{
					"id":     virtualNetwork.DdosProtectionPlanID,
					"enable": true,
				},
			}
		}
		return template
	})
}

func subnetRecord(subnet types.Subnet) types.ResourceRecord {
	return newRecord(subnet.ResourceID, subnet.Name, subnet.Managed, func() map[string]any {
		return map[string]any{
			"name":                 subnet.Name,
			"resource_group_name":  subnet.ResourceGroupName,
			"virtual_network_name": subnet.VirtualNetworkName,
			"address_prefixes":     subnet.AddressPrefixes,
		}
	})
}

func gatewayRecord(gateway types.VirtualNetworkGateway) types.ResourceRecord {
	return newRecord(gateway.ResourceID, gateway.Name, gateway.Managed, func() map[string]any {
		template := map[string]any{
			"name":                gateway.Name,
			"resource_group_name": gateway.ResourceGroupName,
			"location":            gateway.Location,
			"type":                string(gateway.Type),
			"vpn_type":            gateway.VpnType,
			"sku":                 gateway.Sku,
			"ip_configuration": []map[string]any{
				{
					"name":                          gateway.IpConfigurationName,
					"public_ip_address_id":          gateway.PublicIPAddressID,
					"private_ip_address_allocation": "Dynamic",
					"subnet_id":                     gateway.SubnetID,
				},
			},
			"tags": gateway.Tags,
		}
		if gateway.Type == types.GatewayTypeVpn {
			template["enable_bgp"] = gateway.EnableBgp
			template["active_active"] = gateway.ActiveActive
		}
		return template
	})
}

func publicIPAddressRecord(publicIP types.PublicIPAddress) types.ResourceRecord {
	return newRecord(publicIP.ResourceID, publicIP.Name, publicIP.Managed, func() map[string]any {
		template := map[string]any{
			"name":                publicIP.Name,
			"resource_group_name": publicIP.ResourceGroupName,
			"location":            publicIP.Location,
			"sku":                 publicIP.Sku,
			"allocation_method":   publicIP.AllocationMethod,
			"tags":                publicIP.Tags,
		}
		if len(publicIP.AvailabilityZones) > 0 {
			template["zones"] = publicIP.AvailabilityZones
		}
		return template
	})
}

func firewallRecord(firewall types.AzureFirewall) types.ResourceRecord {
	return newRecord(firewall.ResourceID, firewall.Name, firewall.Managed, func() map[string]any {
		return map[string]any{
			"name":                firewall.Name,
			"resource_group_name": firewall.ResourceGroupName,
			"location":            firewall.Location,
			"sku_name":            firewall.SkuName,
			"sku_tier":            firewall.SkuTier,
			"dns_proxy_enabled":   firewall.DnsProxyEnabled,
			"threat_intel_mode":   firewall.ThreatIntelMode,
			"zones":               firewall.AvailabilityZones,
			"ip_configuration": []map[string]any{
				{
					"name":                 firewall.IpConfigurationName,
					"public_ip_address_id": firewall.PublicIPAddressID,
					"subnet_id":            firewall.SubnetID,
				},
			},
			"tags": firewall.Tags,
		}
	})
}

func dnsZoneRecord(zone types.DnsZone) types.ResourceRecord {
	return newRecord(zone.ResourceID, zone.Name, zone.Managed, func() map[string]any {
		return map[string]any{
			"name":                zone.Name,
			"resource_group_name": zone.ResourceGroupName,
			"tags":                zone.Tags,
		}
	})
}

func zoneLinkRecord(zoneLink types.DnsZoneLink) types.ResourceRecord {
	return newRecord(zoneLink.ResourceID, zoneLink.Name, zoneLink.Managed, func() map[string]any {
		return map[string]any{
			"name":                  zoneLink.Name,
			"resource_group_name":   zoneLink.ResourceGroupName,
			"private_dns_zone_name": zoneLink.ZoneName,
			"virtual_network_id":    zoneLink.VirtualNetworkID,
			"registration_enabled":  zoneLink.RegistrationEnabled,
			"tags":                  zoneLink.Tags,
		}
	})
}

func peeringRecord(peering types.VirtualNetworkPeering) types.ResourceRecord {
	return newRecord(peering.ResourceID, peering.Name, peering.Managed, func() map[string]any {
		return map[string]any{
			"name":                         peering.Name,
			"resource_group_name":          peering.ResourceGroupName,
			"virtual_network_name":         peering.VirtualNetworkName,
			"remote_virtual_network_id":    peering.RemoteVirtualNetworkID,
			"allow_virtual_network_access": peering.AllowVirtualNetworkAccess,
			"allow_forwarded_traffic":      peering.AllowForwardedTraffic,
			"allow_gateway_transit":        peering.AllowGatewayTransit,
			"use_remote_gateways":          peering.UseRemoteGateways,
		}
	})
}
