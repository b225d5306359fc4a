package locations

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/types"
)

func TestPartitionerClient_Partition_IndexesByLocation(t *testing.T) {
	partitionerClient := NewPartitionerClient(logrus.New())
	hubNetworks := []types.NormalizedHubNetwork{
		{Enabled: true, Location: "eastus"},
		{Enabled: false, Location: "westeurope"},
	}

	byLocation, err := partitionerClient.Partition(hubNetworks)

	assert.NoError(t, err)
	assert.Len(t, byLocation, 2)
	assert.True(t, byLocation["eastus"].Enabled)
	assert.False(t, byLocation["westeurope"].Enabled)
}

func TestPartitionerClient_Partition_DuplicateLocationFails(t *testing.T) {
	partitionerClient := NewPartitionerClient(logrus.New())
	hubNetworks := []types.NormalizedHubNetwork{
		{Location: "eastus"},
		{Location: "eastus"},
	}

	_, err := partitionerClient.Partition(hubNetworks)

	duplicateLocationError := &types.DuplicateLocationError{}
	assert.True(t, errors.As(err, &duplicateLocationError))
	assert.Equal(t, "eastus", duplicateLocationError.Location)
}

func TestPartitionerClient_Partition_EmptyInput(t *testing.T) {
	partitionerClient := NewPartitionerClient(logrus.New())

	byLocation, err := partitionerClient.Partition(nil)

	assert.NoError(t, err)
	assert.Empty(t, byLocation)
}
