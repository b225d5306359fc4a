package peering

import (
	"github.com/sirupsen/logrus"

	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/gates"
	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/naming"
	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/types"
)

const peeringPath = "/virtualNetworkPeerings/"

type IResolverClient interface {
	Resolve(settings types.NormalizedSettings, virtualNetworks []types.VirtualNetwork) []types.VirtualNetworkPeering
}

type ResolverClient struct {
	Logger *logrus.Logger
}

func NewResolverClient(logger *logrus.Logger) *ResolverClient {
	return &ResolverClient{
		Logger: logger,
	}
}

// Resolve derives one outbound peering per (hub, spoke) pair in declared
// order. The name reuses the stable hash of the spoke ID so the same spoke
// always yields the same peering name, regardless of which hub it sits on.
func (resolverClient *ResolverClient) Resolve(settings types.NormalizedSettings, virtualNetworks []types.VirtualNetwork) []types.VirtualNetworkPeering {
	vnetsByLocation := map[string]types.VirtualNetwork{}
	for _, virtualNetwork := range virtualNetworks {
		vnetsByLocation[virtualNetwork.Location] = virtualNetwork
	}

	peerings := []types.VirtualNetworkPeering{}
	for _, hubNetwork := range settings.HubNetworks {
		hubVnet := vnetsByLocation[hubNetwork.Location]
		managed := gates.OutboundPeeringDeploy(settings, hubNetwork)

		for _, spokeID := range hubNetwork.Config.SpokeVirtualNetworkResourceIDs {
			name := "peering-" + naming.HashName(spokeID)
			peerings = append(peerings, types.VirtualNetworkPeering{
				Name:                      name,
				ResourceID:                hubVnet.ResourceID + peeringPath + name,
				ResourceGroupName:         hubVnet.ResourceGroupName,
				VirtualNetworkName:        hubVnet.Name,
				RemoteVirtualNetworkID:    spokeID,
				AllowVirtualNetworkAccess: true,
				AllowForwardedTraffic:     true,
				AllowGatewayTransit:       true,
				UseRemoteGateways:         false,
				Managed:                   managed,
			})
			resolverClient.Logger.Tracef("Resolved peering %s from hub %s", name, hubNetwork.Location)
		}
	}

	return peerings
}
