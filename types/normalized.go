package types

// NormalizedSettings is the output of the settings normalizer: every
// location-bearing field is resolved to its effective value, the resource
// prefix and suffix are rendered, and the subscription ID is guaranteed to
// be a well-formed GUID. All derivation stages consume this shape.
type NormalizedSettings struct {
	RootID         string
	Enabled        bool
	SubscriptionID string
	Location       string
	Tags           map[string]string
	ResourcePrefix string
	ResourceSuffix string
	HubNetworks    []NormalizedHubNetwork
	Ddos           NormalizedDdos
	Dns            NormalizedDns
}

// NormalizedHubNetwork pairs a hub network config with its effective
// location (own location, or the global default when unset).
type NormalizedHubNetwork struct {
	Enabled  bool
	Location string
	Config   HubNetworkSettings
}

type NormalizedDdos struct {
	Enabled  bool
	Location string
}

type NormalizedDns struct {
	Enabled              bool
	Location             string
	PrivateLinkLocations []string
	Config               DnsSettings
}

// HubNetworksByLocation indexes hub networks by their effective location.
// The ordered hub slice remains the iteration source for output collections;
// this map exists for lookups and duplicate detection only.
type HubNetworksByLocation map[string]NormalizedHubNetwork
