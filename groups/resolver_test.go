package groups

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/types"
)

func testSettings() types.NormalizedSettings {
	return types.NormalizedSettings{
		RootID:         "myorg",
		Enabled:        true,
		SubscriptionID: "3ea5bee7-7a60-4ad9-9d1e-664a1aa28b3b",
		Location:       "eastus",
		ResourcePrefix: "contoso",
		HubNetworks: []types.NormalizedHubNetwork{
			{Enabled: true, Location: "eastus"},
		},
		Ddos: types.NormalizedDdos{Enabled: true, Location: "eastus"},
		Dns:  types.NormalizedDns{Enabled: true, Location: "eastus"},
	}
}

func TestResolverClient_Resolve_ConnectivityGroupNameDefault(t *testing.T) {
	resolverClient := NewResolverClient(logrus.New())

	resourceGroups, index := resolverClient.Resolve(testSettings())

	assert.Len(t, resourceGroups, 3)
	connectivityGroup, err := index.Lookup(types.ScopeConnectivity, "eastus")
	assert.NoError(t, err)
	assert.Equal(t, "contoso-connectivity-eastus", connectivityGroup.Name)
	assert.Equal(t, "/subscriptions/3ea5bee7-7a60-4ad9-9d1e-664a1aa28b3b/resourceGroups/contoso-connectivity-eastus", connectivityGroup.ResourceID)
}

func TestResolverClient_Resolve_SuffixAppended(t *testing.T) {
	resolverClient := NewResolverClient(logrus.New())
	settings := testSettings()
	settings.ResourceSuffix = "-dev"

	_, index := resolverClient.Resolve(settings)

	connectivityGroup, err := index.Lookup(types.ScopeConnectivity, "eastus")
	assert.NoError(t, err)
	assert.Equal(t, "contoso-connectivity-eastus-dev", connectivityGroup.Name)
}

func TestResolverClient_Resolve_OneGroupPerScopePerLocation(t *testing.T) {
	resolverClient := NewResolverClient(logrus.New())
	settings := testSettings()
	settings.HubNetworks = append(settings.HubNetworks, types.NormalizedHubNetwork{Enabled: true, Location: "westeurope"})

	resourceGroups, index := resolverClient.Resolve(settings)

	assert.Len(t, resourceGroups, 4)

	// A hub sharing the dns/ddos location still gets its own connectivity
	// group; names differ by scope.
	ddosGroup, err := index.Lookup(types.ScopeDdos, "eastus")
	assert.NoError(t, err)
	assert.Equal(t, "contoso-ddos-eastus", ddosGroup.Name)
	dnsGroup, err := index.Lookup(types.ScopeDns, "eastus")
	assert.NoError(t, err)
	assert.Equal(t, "contoso-dns-eastus", dnsGroup.Name)
}

func TestResolverClient_Resolve_ManagedFollowsScopeGates(t *testing.T) {
	resolverClient := NewResolverClient(logrus.New())
	settings := testSettings()
	settings.Ddos.Enabled = false

	_, index := resolverClient.Resolve(settings)

	ddosGroup, _ := index.Lookup(types.ScopeDdos, "eastus")
	assert.False(t, ddosGroup.Managed)
	connectivityGroup, _ := index.Lookup(types.ScopeConnectivity, "eastus")
	assert.True(t, connectivityGroup.Managed)
}

func TestResourceGroupIndex_Lookup_MissingKeyFails(t *testing.T) {
	resolverClient := NewResolverClient(logrus.New())

	_, index := resolverClient.Resolve(testSettings())

	_, err := index.Lookup(types.ScopeConnectivity, "australiaeast")
	referenceError := &types.ReferenceError{}
	assert.True(t, errors.As(err, &referenceError))
	assert.Equal(t, "australiaeast", referenceError.Location)
}
