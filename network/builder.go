package network

import (
	"github.com/sirupsen/logrus"

	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/gates"
	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/naming"
	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/types"
)

// Reserved subnet names required by the Azure platform contract.
const (
	GatewaySubnetName       = "GatewaySubnet"
	AzureFirewallSubnetName = "AzureFirewallSubnet"
)

const (
	virtualNetworkPath     = "/providers/Microsoft.Network/virtualNetworks/"
	subnetPath             = "/subnets/"
	gatewayPath            = "/providers/Microsoft.Network/virtualNetworkGateways/"
	publicIPAddressPath    = "/providers/Microsoft.Network/publicIPAddresses/"
	azureFirewallPath      = "/providers/Microsoft.Network/azureFirewalls/"
	ddosProtectionPlanPath = "/providers/Microsoft.Network/ddosProtectionPlans/"
)

const gatewayIpConfigurationName = "vnetGatewayConfig"

type IBuilderClient interface {
	Build(settings types.NormalizedSettings, groupIndex types.ResourceGroupIndex) (types.NetworkResources, error)
}

type BuilderClient struct {
	Logger *logrus.Logger
}

func NewBuilderClient(logger *logrus.Logger) *BuilderClient {
	return &BuilderClient{
		Logger: logger,
	}
}

// Build derives the DDoS protection plan, then per hub (in declaration
// order) the virtual network, its subnets, both gateway flavours with their
// public IPs, and the firewall with its public IP. Every resource is derived
// whether or not its gate is open; the gate only drives Managed.
func (builderClient *BuilderClient) Build(settings types.NormalizedSettings, groupIndex types.ResourceGroupIndex) (types.NetworkResources, error) {
	resources := types.NetworkResources{}

	ddosPlan, err := builderClient.buildDdosProtectionPlan(settings, groupIndex)
	if err != nil {
		return types.NetworkResources{}, err
	}
	resources.DdosProtectionPlans = append(resources.DdosProtectionPlans, ddosPlan)

	for _, hubNetwork := range settings.HubNetworks {
		connectivityGroup, err := groupIndex.Lookup(types.ScopeConnectivity, hubNetwork.Location)
		if err != nil {
			return types.NetworkResources{}, err
		}

		virtualNetwork := builderClient.buildVirtualNetwork(settings, hubNetwork, connectivityGroup, ddosPlan)
		resources.VirtualNetworks = append(resources.VirtualNetworks, virtualNetwork)

		resources.Subnets = append(resources.Subnets, buildSubnets(settings, hubNetwork, connectivityGroup, virtualNetwork)...)

		expressRouteGateway, expressRoutePip := buildGateway(settings, hubNetwork, connectivityGroup, virtualNetwork, types.GatewayTypeExpressRoute)
		vpnGateway, vpnPip := buildGateway(settings, hubNetwork, connectivityGroup, virtualNetwork, types.GatewayTypeVpn)
		resources.Gateways = append(resources.Gateways, expressRouteGateway, vpnGateway)

		firewall, firewallPip := buildFirewall(settings, hubNetwork, connectivityGroup, virtualNetwork)
		resources.Firewalls = append(resources.Firewalls, firewall)

		// Public IP children merge into one flat collection, ER then VPN
		// then firewall per hub.
		resources.PublicIPAddresses = append(resources.PublicIPAddresses, expressRoutePip, vpnPip, firewallPip)

		builderClient.Logger.Debugf("Built network resources for hub %s", hubNetwork.Location)
	}

	return resources, nil
}

func (builderClient *BuilderClient) buildDdosProtectionPlan(settings types.NormalizedSettings, groupIndex types.ResourceGroupIndex) (types.DdosProtectionPlan, error) {
	ddosGroup, err := groupIndex.Lookup(types.ScopeDdos, settings.Ddos.Location)
	if err != nil {
		return types.DdosProtectionPlan{}, err
	}

	name := naming.ResourceName(settings.ResourcePrefix, "ddos", settings.Ddos.Location, settings.ResourceSuffix)
	return types.DdosProtectionPlan{
		Name:              name,
		ResourceID:        ddosGroup.ResourceID + ddosProtectionPlanPath + name,
		ResourceGroupName: ddosGroup.Name,
		Location:          settings.Ddos.Location,
		Tags:              settings.Tags,
		Managed:           gates.DdosProtectionPlanDeploy(settings),
	}, nil
}

func (builderClient *BuilderClient) buildVirtualNetwork(settings types.NormalizedSettings, hubNetwork types.NormalizedHubNetwork, connectivityGroup types.ResourceGroup, ddosPlan types.DdosProtectionPlan) types.VirtualNetwork {
	name := naming.ResourceName(settings.ResourcePrefix, "hub", hubNetwork.Location, settings.ResourceSuffix)

	ddosPlanID := ""
	if hubNetwork.Config.LinkToDdosProtectionPlan {
		ddosPlanID = ddosPlan.ResourceID
	}

	return types.VirtualNetwork{
		Name:                 name,
		ResourceID:           connectivityGroup.ResourceID + virtualNetworkPath + name,
		ResourceGroupName:    connectivityGroup.Name,
		Location:             hubNetwork.Location,
		AddressSpace:         hubNetwork.Config.AddressSpace,
		DnsServers:           hubNetwork.Config.DnsServers,
		BgpCommunity:         hubNetwork.Config.BgpCommunity,
		DdosProtectionPlanID: ddosPlanID,
		Tags:                 settings.Tags,
		Managed:              gates.HubNetworkDeploy(settings, hubNetwork),
	}
}

// buildSubnets returns the declared subnets followed by the synthesized
// GatewaySubnet and AzureFirewallSubnet, each added only when the matching
// address prefix is configured.
func buildSubnets(settings types.NormalizedSettings, hubNetwork types.NormalizedHubNetwork, connectivityGroup types.ResourceGroup, virtualNetwork types.VirtualNetwork) []types.Subnet {
	managed := gates.HubNetworkDeploy(settings, hubNetwork)

	subnets := []types.Subnet{}
	for _, subnetConfig := range hubNetwork.Config.Subnets {
		subnets = append(subnets, types.Subnet{
			Name:                   subnetConfig.Name,
			ResourceID:             virtualNetwork.ResourceID + subnetPath + subnetConfig.Name,
			ResourceGroupName:      connectivityGroup.Name,
			VirtualNetworkName:     virtualNetwork.Name,
			AddressPrefixes:        subnetConfig.AddressPrefixes,
			NetworkSecurityGroupID: subnetConfig.NetworkSecurityGroupID,
			RouteTableID:           subnetConfig.RouteTableID,
			Managed:                managed,
		})
	}

	if prefix := hubNetwork.Config.VirtualNetworkGateway.Config.AddressPrefix; prefix != "" {
		subnets = append(subnets, types.Subnet{
			Name:               GatewaySubnetName,
			ResourceID:         virtualNetwork.ResourceID + subnetPath + GatewaySubnetName,
			ResourceGroupName:  connectivityGroup.Name,
			VirtualNetworkName: virtualNetwork.Name,
			AddressPrefixes:    []string{prefix},
			Managed:            managed,
		})
	}

	if prefix := hubNetwork.Config.AzureFirewall.Config.AddressPrefix; prefix != "" {
		subnets = append(subnets, types.Subnet{
			Name:               AzureFirewallSubnetName,
			ResourceID:         virtualNetwork.ResourceID + subnetPath + AzureFirewallSubnetName,
			ResourceGroupName:  connectivityGroup.Name,
			VirtualNetworkName: virtualNetwork.Name,
			AddressPrefixes:    []string{prefix},
			Managed:            managed,
		})
	}

	return subnets
}

func buildGateway(settings types.NormalizedSettings, hubNetwork types.NormalizedHubNetwork, connectivityGroup types.ResourceGroup, virtualNetwork types.VirtualNetwork, gatewayType types.GatewayType) (types.VirtualNetworkGateway, types.PublicIPAddress) {
	gatewayConfig := hubNetwork.Config.VirtualNetworkGateway.Config

	role := "ergw"
	sku := gatewayConfig.GatewaySkuExpressroute
	managed := gates.ExpressRouteGatewayDeploy(settings, hubNetwork)
	if gatewayType == types.GatewayTypeVpn {
		role = "vpngw"
		sku = gatewayConfig.GatewaySkuVpn
		managed = gates.VpnGatewayDeploy(settings, hubNetwork)
	}

	name := naming.ResourceName(settings.ResourcePrefix, role, hubNetwork.Location, settings.ResourceSuffix)

	publicIP := types.PublicIPAddress{
		Name:              name + "-pip",
		ResourceID:        connectivityGroup.ResourceID + publicIPAddressPath + name + "-pip",
		ResourceGroupName: connectivityGroup.Name,
		Location:          hubNetwork.Location,
		Sku:               "Basic",
		AllocationMethod:  "Dynamic",
		Tags:              settings.Tags,
		Managed:           managed,
	}
	if gates.ZoneRedundantGatewaySku(sku) {
		publicIP.Sku = "Standard"
		publicIP.AllocationMethod = "Static"
		publicIP.AvailabilityZones = []string{"1", "2", "3"}
	}

	gateway := types.VirtualNetworkGateway{
		Name:                name,
		ResourceID:          connectivityGroup.ResourceID + gatewayPath + name,
		ResourceGroupName:   connectivityGroup.Name,
		Location:            hubNetwork.Location,
		Type:                gatewayType,
		VpnType:             "RouteBased",
		Sku:                 sku,
		IpConfigurationName: gatewayIpConfigurationName,
		PublicIPAddressID:   publicIP.ResourceID,
		SubnetID:            virtualNetwork.ResourceID + subnetPath + GatewaySubnetName,
		Tags:                settings.Tags,
		Managed:             managed,
	}
	if gatewayType == types.GatewayTypeVpn {
		gateway.EnableBgp = gatewayConfig.EnableBgp
		gateway.ActiveActive = gatewayConfig.ActiveActive
	}

	return gateway, publicIP
}

func buildFirewall(settings types.NormalizedSettings, hubNetwork types.NormalizedHubNetwork, connectivityGroup types.ResourceGroup, virtualNetwork types.VirtualNetwork) (types.AzureFirewall, types.PublicIPAddress) {
	firewallConfig := hubNetwork.Config.AzureFirewall.Config
	managed := gates.FirewallDeploy(settings, hubNetwork)

	name := naming.ResourceName(settings.ResourcePrefix, "fw", hubNetwork.Location, settings.ResourceSuffix)
	zones := availabilityZones(firewallConfig.AvailabilityZones)

	publicIP := types.PublicIPAddress{
		Name:              name + "-pip",
		ResourceID:        connectivityGroup.ResourceID + publicIPAddressPath + name + "-pip",
		ResourceGroupName: connectivityGroup.Name,
		Location:          hubNetwork.Location,
		Sku:               "Standard",
		AllocationMethod:  "Static",
		AvailabilityZones: zones,
		Tags:              settings.Tags,
		Managed:           managed,
	}

	skuTier := firewallConfig.SkuTier
	if skuTier == "" {
		skuTier = "Standard"
	}
	threatIntelMode := firewallConfig.ThreatIntelligenceMode
	if threatIntelMode == "" {
		threatIntelMode = "Alert"
	}

	firewall := types.AzureFirewall{
		Name:                name,
		ResourceID:          connectivityGroup.ResourceID + azureFirewallPath + name,
		ResourceGroupName:   connectivityGroup.Name,
		Location:            hubNetwork.Location,
		SkuName:             "AZFW_VNet",
		SkuTier:             skuTier,
		DnsProxyEnabled:     firewallConfig.DnsProxyEnabled,
		ThreatIntelMode:     threatIntelMode,
		AvailabilityZones:   zones,
		IpConfigurationName: publicIP.Name,
		PublicIPAddressID:   publicIP.ResourceID,
		SubnetID:            virtualNetwork.ResourceID + subnetPath + AzureFirewallSubnetName,
		Tags:                settings.Tags,
		Managed:             managed,
	}

	return firewall, publicIP
}

// availabilityZones renders the three independent zone toggles as an
// ascending zone list.
func availabilityZones(zonesConfig types.AvailabilityZones) []string {
	zones := []string{}
	if zonesConfig.Zone1 {
		zones = append(zones, "1")
	}
	if zonesConfig.Zone2 {
		zones = append(zones, "2")
	}
	if zonesConfig.Zone3 {
		zones = append(zones, "3")
	}
	return zones
}
