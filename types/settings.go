package types

// Settings is the root configuration tree consumed by the generator. It is
// decoded once from the config file and never mutated; all derivation works
// on the NormalizedSettings produced from it.
type Settings struct {
	RootID             string                   `mapstructure:"rootId"`
	Enabled            bool                     `mapstructure:"enabled"`
	SubscriptionID     string                   `mapstructure:"subscriptionId"`
	Location           string                   `mapstructure:"location"`
	Tags               map[string]string        `mapstructure:"tags"`
	ResourcePrefix     string                   `mapstructure:"resourcePrefix"`
	ResourceSuffix     string                   `mapstructure:"resourceSuffix"`
	HubNetworks        []HubNetworkConfig       `mapstructure:"hubNetworks"`
	DdosProtectionPlan DdosProtectionPlanConfig `mapstructure:"ddosProtectionPlan"`
	Dns                DnsConfig                `mapstructure:"dns"`
}

type HubNetworkConfig struct {
	Enabled bool               `mapstructure:"enabled"`
	Config  HubNetworkSettings `mapstructure:"config"`
}

type HubNetworkSettings struct {
	Location                            string                      `mapstructure:"location"`
	AddressSpace                        []string                    `mapstructure:"addressSpace"`
	DnsServers                          []string                    `mapstructure:"dnsServers"`
	BgpCommunity                        string                      `mapstructure:"bgpCommunity"`
	LinkToDdosProtectionPlan            bool                        `mapstructure:"linkToDdosProtectionPlan"`
	Subnets                             []SubnetConfig              `mapstructure:"subnets"`
	VirtualNetworkGateway               VirtualNetworkGatewayConfig `mapstructure:"virtualNetworkGateway"`
	AzureFirewall                       AzureFirewallConfig         `mapstructure:"azureFirewall"`
	SpokeVirtualNetworkResourceIDs      []string                    `mapstructure:"spokeVirtualNetworkResourceIds"`
	EnableOutboundVirtualNetworkPeering bool                        `mapstructure:"enableOutboundVirtualNetworkPeering"`
}

type SubnetConfig struct {
	Name                   string   `mapstructure:"name"`
	AddressPrefixes        []string `mapstructure:"addressPrefixes"`
	NetworkSecurityGroupID string   `mapstructure:"networkSecurityGroupId"`
	RouteTableID           string   `mapstructure:"routeTableId"`
}

type VirtualNetworkGatewayConfig struct {
	Enabled bool                          `mapstructure:"enabled"`
	Config  VirtualNetworkGatewaySettings `mapstructure:"config"`
}

type VirtualNetworkGatewaySettings struct {
	AddressPrefix          string `mapstructure:"addressPrefix"`
	GatewaySkuExpressroute string `mapstructure:"gatewaySkuExpressroute"`
	GatewaySkuVpn          string `mapstructure:"gatewaySkuVpn"`
	EnableBgp              bool   `mapstructure:"enableBgp"`
	ActiveActive           bool   `mapstructure:"activeActive"`
}

type AzureFirewallConfig struct {
	Enabled bool                  `mapstructure:"enabled"`
	Config  AzureFirewallSettings `mapstructure:"config"`
}

type AzureFirewallSettings struct {
	AddressPrefix          string            `mapstructure:"addressPrefix"`
	SkuTier                string            `mapstructure:"skuTier"`
	DnsProxyEnabled        bool              `mapstructure:"dnsProxyEnabled"`
	ThreatIntelligenceMode string            `mapstructure:"threatIntelligenceMode"`
	AvailabilityZones      AvailabilityZones `mapstructure:"availabilityZones"`
}

// AvailabilityZones holds the three independent zone toggles used to build
// the zones list of an Azure Firewall and its public IP.
type AvailabilityZones struct {
	Zone1 bool `mapstructure:"zone1"`
	Zone2 bool `mapstructure:"zone2"`
	Zone3 bool `mapstructure:"zone3"`
}

type DdosProtectionPlanConfig struct {
	Enabled bool                       `mapstructure:"enabled"`
	Config  DdosProtectionPlanSettings `mapstructure:"config"`
}

type DdosProtectionPlanSettings struct {
	Location string `mapstructure:"location"`
}

type DnsConfig struct {
	Enabled bool        `mapstructure:"enabled"`
	Config  DnsSettings `mapstructure:"config"`
}

type DnsSettings struct {
	Location                                       string          `mapstructure:"location"`
	EnablePrivateLinkByService                     map[string]bool `mapstructure:"enablePrivateLinkByService"`
	PrivateLinkLocations                           []string        `mapstructure:"privateLinkLocations"`
	PublicDnsZones                                 []string        `mapstructure:"publicDnsZones"`
	PrivateDnsZones                                []string        `mapstructure:"privateDnsZones"`
	EnablePrivateDnsZoneVirtualNetworkLinkOnHubs   bool            `mapstructure:"enablePrivateDnsZoneVirtualNetworkLinkOnHubs"`
	EnablePrivateDnsZoneVirtualNetworkLinkOnSpokes bool            `mapstructure:"enablePrivateDnsZoneVirtualNetworkLinkOnSpokes"`
	VirtualNetworkResourceIDsToLink                []string        `mapstructure:"virtualNetworkResourceIdsToLink"`
}
