package groups

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/gates"
	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/naming"
	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/types"
)

type IResolverClient interface {
	Resolve(settings types.NormalizedSettings) ([]types.ResourceGroup, types.ResourceGroupIndex)
}

type ResolverClient struct {
	Logger *logrus.Logger
}

func NewResolverClient(logger *logrus.Logger) *ResolverClient {
	return &ResolverClient{
		Logger: logger,
	}
}

// Resolve derives one resource group per (scope, location) pair actually
// used: connectivity per hub location in hub order, then exactly one each
// for ddos and dns at their effective locations. The returned slice is the
// ordered output collection; the index serves lookups by later stages.
func (resolverClient *ResolverClient) Resolve(settings types.NormalizedSettings) ([]types.ResourceGroup, types.ResourceGroupIndex) {
	resourceGroups := []types.ResourceGroup{}

	for _, hubNetwork := range settings.HubNetworks {
		resourceGroups = append(resourceGroups, newResourceGroup(settings, types.ScopeConnectivity, hubNetwork.Location, gates.HubNetworkDeploy(settings, hubNetwork)))
	}
	resourceGroups = append(resourceGroups, newResourceGroup(settings, types.ScopeDdos, settings.Ddos.Location, gates.DdosProtectionPlanDeploy(settings)))
	resourceGroups = append(resourceGroups, newResourceGroup(settings, types.ScopeDns, settings.Dns.Location, gates.DnsDeploy(settings)))

	index := types.ResourceGroupIndex{}
	for _, resourceGroup := range resourceGroups {
		index[types.ResourceGroupKey(resourceGroup.Scope, resourceGroup.Location)] = resourceGroup
		resolverClient.Logger.Tracef("Resolved resource group %s for scope %s", resourceGroup.Name, resourceGroup.Scope)
	}

	return resourceGroups, index
}

func newResourceGroup(settings types.NormalizedSettings, scope types.Scope, location string, managed bool) types.ResourceGroup {
	name := naming.ResourceName(settings.ResourcePrefix, string(scope), location, settings.ResourceSuffix)
	return types.ResourceGroup{
		Scope:      scope,
		Location:   location,
		Name:       name,
		ResourceID: fmt.Sprintf("/subscriptions/%s/resourceGroups/%s", settings.SubscriptionID, name),
		Tags:       settings.Tags,
		Managed:    managed,
	}
}
