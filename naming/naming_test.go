package naming

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ResourceName(t *testing.T) {
	assert.Equal(t, "contoso-connectivity-eastus", ResourceName("contoso", "connectivity", "eastus", ""))
	assert.Equal(t, "contoso-hub-eastus-dev", ResourceName("contoso", "hub", "eastus", "-dev"))
}

func Test_Suffix(t *testing.T) {
	assert.Equal(t, "", Suffix(""))
	assert.Equal(t, "-dev", Suffix("dev"))
}

func Test_HashName_DeterministicUuidShape(t *testing.T) {
	resourceID := "/subscriptions/3ea5bee7-7a60-4ad9-9d1e-664a1aa28b3b/resourceGroups/rg-spoke/providers/Microsoft.Network/virtualNetworks/spoke1"

	first := HashName(resourceID)
	second := HashName(resourceID)

	assert.Equal(t, first, second)
	uuidRegex := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-5[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
	assert.Regexp(t, uuidRegex, first)
}

func Test_HashName_DifferentInputsDiffer(t *testing.T) {
	assert.NotEqual(t, HashName("/subscriptions/a/resourceGroups/one"), HashName("/subscriptions/a/resourceGroups/two"))
}
