package locations

import (
	"github.com/sirupsen/logrus"

	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/types"
)

type IPartitionerClient interface {
	Partition(hubNetworks []types.NormalizedHubNetwork) (types.HubNetworksByLocation, error)
}

type PartitionerClient struct {
	Logger *logrus.Logger
}

func NewPartitionerClient(logger *logrus.Logger) *PartitionerClient {
	return &PartitionerClient{
		Logger: logger,
	}
}

// Partition indexes hub networks by their effective location. Two hubs
// resolving to the same location is a configuration error, never a silent
// overwrite.
func (partitionerClient *PartitionerClient) Partition(hubNetworks []types.NormalizedHubNetwork) (types.HubNetworksByLocation, error) {
	byLocation := types.HubNetworksByLocation{}

	for _, hubNetwork := range hubNetworks {
		if _, exists := byLocation[hubNetwork.Location]; exists {
			return nil, &types.DuplicateLocationError{Location: hubNetwork.Location}
		}
		partitionerClient.Logger.Debugf("Hub network partitioned to location %s", hubNetwork.Location)
		byLocation[hubNetwork.Location] = hubNetwork
	}

	return byLocation, nil
}
