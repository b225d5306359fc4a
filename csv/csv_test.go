package csv

import (
	csvreader "encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/types"
)

func TestResourceCsvClient_Export_SortsByFamilyAndResourceID(t *testing.T) {
	outputFolderPath := t.TempDir()
	csvClient := NewResourceCsvClient(outputFolderPath, logrus.New())

	resources := types.GeneratedResources{
		VirtualNetworks: []types.ResourceRecord{
			{ResourceID: "/subscriptions/s/resourceGroups/rg/providers/Microsoft.Network/virtualNetworks/b", ResourceName: "b", ManagedByModule: true},
			{ResourceID: "/subscriptions/s/resourceGroups/rg/providers/Microsoft.Network/virtualNetworks/a", ResourceName: "a", ManagedByModule: true},
		},
		ResourceGroups: []types.ResourceRecord{
			{ResourceID: "/subscriptions/s/resourceGroups/rg", ResourceName: "rg", ManagedByModule: false},
		},
	}

	err := csvClient.Export(resources)
	assert.NoError(t, err)

	csvFile, err := os.Open(filepath.Join(outputFolderPath, "resources.csv"))
	assert.NoError(t, err)
	defer csvFile.Close()
	records, err := csvreader.NewReader(csvFile).ReadAll()
	assert.NoError(t, err)

	assert.Len(t, records, 4)
	assert.Equal(t, []string{"Resource Family", "Resource Name", "Resource ID", "Managed By Module"}, records[0])
	assert.Equal(t, "resource_groups", records[1][0])
	assert.Equal(t, "false", records[1][3])
	assert.Equal(t, "a", records[2][1])
	assert.Equal(t, "b", records[3][1])
}

func Test_ByFamilyAndResourceID_OrdersFamilyFirst(t *testing.T) {
	rows := ByFamilyAndResourceID{
		{Family: "virtual_networks", ResourceID: "/a"},
		{Family: "resource_groups", ResourceID: "/z"},
	}

	assert.True(t, rows.Less(1, 0))
	assert.False(t, rows.Less(0, 1))
}
