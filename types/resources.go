package types

// Scope identifies which resource group family a resource belongs to.
type Scope string

const (
	ScopeConnectivity Scope = "connectivity"
	ScopeDdos         Scope = "ddos"
	ScopeDns          Scope = "dns"
)

func (scope Scope) IsValidScope() bool {
	switch scope {
	case ScopeConnectivity,
		ScopeDdos,
		ScopeDns:
		return true
	default:
		return false
	}
}

type ResourceGroup struct {
	Scope      Scope
	Location   string
	Name       string
	ResourceID string
	Tags       map[string]string
	Managed    bool
}

// ResourceGroupIndex looks resource groups up by (scope, location). Missing
// keys are a contract violation between stages and surface as ReferenceError.
type ResourceGroupIndex map[string]ResourceGroup

func ResourceGroupKey(scope Scope, location string) string {
	return string(scope) + "/" + location
}

func (index ResourceGroupIndex) Lookup(scope Scope, location string) (ResourceGroup, error) {
	group, exists := index[ResourceGroupKey(scope, location)]
	if !exists {
		return ResourceGroup{}, &ReferenceError{Scope: scope, Location: location}
	}
	return group, nil
}

type DdosProtectionPlan struct {
	Name              string
	ResourceID        string
	ResourceGroupName string
	Location          string
	Tags              map[string]string
	Managed           bool
}

type VirtualNetwork struct {
	Name                 string
	ResourceID           string
	ResourceGroupName    string
	Location             string
	AddressSpace         []string
	DnsServers           []string
	BgpCommunity         string
	DdosProtectionPlanID string
	Tags                 map[string]string
	Managed              bool
}

// Subnet carries the NSG and route table IDs for cross-referencing only;
// both are stripped from the emitted template.
type Subnet struct {
	Name                   string
	ResourceID             string
	ResourceGroupName      string
	VirtualNetworkName     string
	AddressPrefixes        []string
	NetworkSecurityGroupID string
	RouteTableID           string
	Managed                bool
}

type GatewayType string

const (
	GatewayTypeExpressRoute GatewayType = "ExpressRoute"
	GatewayTypeVpn          GatewayType = "Vpn"
)

type VirtualNetworkGateway struct {
	Name                string
	ResourceID          string
	ResourceGroupName   string
	Location            string
	Type                GatewayType
	VpnType             string
	Sku                 string
	EnableBgp           bool
	ActiveActive        bool
	IpConfigurationName string
	PublicIPAddressID   string
	SubnetID            string
	Tags                map[string]string
	Managed             bool
}

type PublicIPAddress struct {
	Name              string
	ResourceID        string
	ResourceGroupName string
	Location          string
	Sku               string
	AllocationMethod  string
	AvailabilityZones []string
	Tags              map[string]string
	Managed           bool
}

type AzureFirewall struct {
	Name                string
	ResourceID          string
	ResourceGroupName   string
	Location            string
	SkuName             string
	SkuTier             string
	DnsProxyEnabled     bool
	ThreatIntelMode     string
	AvailabilityZones   []string
	IpConfigurationName string
	PublicIPAddressID   string
	SubnetID            string
	Tags                map[string]string
	Managed             bool
}

// DnsZone is a private or public DNS zone. Services lists the private link
// services owning the zone; it is empty for explicitly configured zones.
type DnsZone struct {
	Name              string
	ResourceID        string
	ResourceGroupName string
	Services          []string
	Tags              map[string]string
	Managed           bool
}

type DnsZoneLink struct {
	Name                string
	ResourceID          string
	ResourceGroupName   string
	ZoneName            string
	VirtualNetworkID    string
	RegistrationEnabled bool
	Tags                map[string]string
	Managed             bool
}

type VirtualNetworkPeering struct {
	Name                      string
	ResourceID                string
	ResourceGroupName         string
	VirtualNetworkName        string
	RemoteVirtualNetworkID    string
	AllowVirtualNetworkAccess bool
	AllowForwardedTraffic     bool
	AllowGatewayTransit       bool
	UseRemoteGateways         bool
	Managed                   bool
}

// NetworkResources is the network builder output for all hubs, in hub
// declaration order.
type NetworkResources struct {
	DdosProtectionPlans []DdosProtectionPlan
	VirtualNetworks     []VirtualNetwork
	Subnets             []Subnet
	Gateways            []VirtualNetworkGateway
	PublicIPAddresses   []PublicIPAddress
	Firewalls           []AzureFirewall
}

type DnsResources struct {
	PrivateZones []DnsZone
	PublicZones  []DnsZone
	ZoneLinks    []DnsZoneLink
}

// DerivedResources bundles every stage output for the assembler.
type DerivedResources struct {
	ResourceGroups []ResourceGroup
	Network        NetworkResources
	Dns            DnsResources
	Peerings       []VirtualNetworkPeering
}
