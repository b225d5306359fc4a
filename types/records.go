package types

// ResourceRecord is the externally consumed shape of one derived resource.
// When ManagedByModule is false the template is an empty (non-nil) map;
// consumers must gate on the flag, never on template emptiness.
type ResourceRecord struct {
	ResourceID      string         `json:"resource_id"`
	ResourceName    string         `json:"resource_name"`
	Template        map[string]any `json:"template"`
	ManagedByModule bool           `json:"managed_by_module"`
}

type ArchetypeConfigOverride struct {
	Parameters map[string]any `json:"parameters"`
}

// GeneratedResources is the full assembler output: one record collection per
// resource family plus the auxiliary policy override and templating maps.
type GeneratedResources struct {
	ResourceGroups           []ResourceRecord                   `json:"resource_groups"`
	DdosProtectionPlans      []ResourceRecord                   `json:"ddos_protection_plans"`
	VirtualNetworks          []ResourceRecord                   `json:"virtual_networks"`
	Subnets                  []ResourceRecord                   `json:"subnets"`
	VirtualNetworkGateways   []ResourceRecord                   `json:"virtual_network_gateways"`
	PublicIPAddresses        []ResourceRecord                   `json:"public_ip_addresses"`
	AzureFirewalls           []ResourceRecord                   `json:"azure_firewalls"`
	PrivateDnsZones          []ResourceRecord                   `json:"private_dns_zones"`
	PublicDnsZones           []ResourceRecord                   `json:"public_dns_zones"`
	PrivateDnsZoneLinks      []ResourceRecord                   `json:"private_dns_zone_virtual_network_links"`
	VirtualNetworkPeerings   []ResourceRecord                   `json:"virtual_network_peerings"`
	ArchetypeConfigOverrides map[string]ArchetypeConfigOverride `json:"archetype_config_overrides"`
	TemplateFileVariables    map[string]string                  `json:"template_file_variables"`
}

type ResourceFamily struct {
	Name    string
	Records []ResourceRecord
}

// Families returns the record collections in their fixed output order so
// that exporters never depend on map iteration order.
func (resources GeneratedResources) Families() []ResourceFamily {
	return []ResourceFamily{
		{Name: "resource_groups", Records: resources.ResourceGroups},
		{Name: "ddos_protection_plans", Records: resources.DdosProtectionPlans},
		{Name: "virtual_networks", Records: resources.VirtualNetworks},
		{Name: "subnets", Records: resources.Subnets},
		{Name: "virtual_network_gateways", Records: resources.VirtualNetworkGateways},
		{Name: "public_ip_addresses", Records: resources.PublicIPAddresses},
		{Name: "azure_firewalls", Records: resources.AzureFirewalls},
		{Name: "private_dns_zones", Records: resources.PrivateDnsZones},
		{Name: "public_dns_zones", Records: resources.PublicDnsZones},
		{Name: "private_dns_zone_virtual_network_links", Records: resources.PrivateDnsZoneLinks},
		{Name: "virtual_network_peerings", Records: resources.VirtualNetworkPeerings},
	}
}
