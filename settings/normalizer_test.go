package settings

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/azure"
	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/issues"
	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/types"
)

func validSettings() types.Settings {
	return types.Settings{
		RootID:         "myorg",
		Enabled:        true,
		SubscriptionID: "3ea5bee7-7a60-4ad9-9d1e-664a1aa28b3b",
		Location:       "eastus",
		ResourcePrefix: "contoso",
		HubNetworks: []types.HubNetworkConfig{
			{
				Enabled: true,
				Config: types.HubNetworkSettings{
					AddressSpace: []string{"10.100.0.0/16"},
				},
			},
		},
	}
}

func TestNormalizerClient_Normalize_DefaultsHubLocationToGlobal(t *testing.T) {
	normalizerClient := NewNormalizerClient(logrus.New())

	normalized, err := normalizerClient.Normalize(validSettings())

	assert.NoError(t, err)
	assert.Equal(t, "eastus", normalized.HubNetworks[0].Location)
	assert.Equal(t, "eastus", normalized.Ddos.Location)
	assert.Equal(t, "eastus", normalized.Dns.Location)
}

func TestNormalizerClient_Normalize_ExplicitLocationWins(t *testing.T) {
	normalizerClient := NewNormalizerClient(logrus.New())
	inputSettings := validSettings()
	inputSettings.HubNetworks[0].Config.Location = "westeurope"

	normalized, err := normalizerClient.Normalize(inputSettings)

	assert.NoError(t, err)
	assert.Equal(t, "westeurope", normalized.HubNetworks[0].Location)
}

func TestNormalizerClient_Normalize_PrefixFallsBackToRootID(t *testing.T) {
	normalizerClient := NewNormalizerClient(logrus.New())
	inputSettings := validSettings()
	inputSettings.ResourcePrefix = ""

	normalized, err := normalizerClient.Normalize(inputSettings)

	assert.NoError(t, err)
	assert.Equal(t, "myorg", normalized.ResourcePrefix)
}

func TestNormalizerClient_Normalize_SuffixRenderedWithSeparator(t *testing.T) {
	normalizerClient := NewNormalizerClient(logrus.New())
	inputSettings := validSettings()
	inputSettings.ResourceSuffix = "dev"

	normalized, err := normalizerClient.Normalize(inputSettings)

	assert.NoError(t, err)
	assert.Equal(t, "-dev", normalized.ResourceSuffix)
}

func TestNormalizerClient_Normalize_EmptySubscriptionIDGetsSentinel(t *testing.T) {
	normalizerClient := NewNormalizerClient(logrus.New())
	inputSettings := validSettings()
	inputSettings.SubscriptionID = ""

	normalized, err := normalizerClient.Normalize(inputSettings)

	assert.NoError(t, err)
	assert.Equal(t, azure.EmptyGuid, normalized.SubscriptionID)
}

func TestNormalizerClient_Normalize_InvalidSubscriptionIDFails(t *testing.T) {
	normalizerClient := NewNormalizerClient(logrus.New())
	inputSettings := validSettings()
	inputSettings.SubscriptionID = "not-a-guid"

	_, err := normalizerClient.Normalize(inputSettings)

	configurationError := &types.ConfigurationError{}
	assert.True(t, errors.As(err, &configurationError))
	assert.Equal(t, "subscriptionId", configurationError.Field)
}

func TestNormalizerClient_Normalize_InvalidRootIDFails(t *testing.T) {
	normalizerClient := NewNormalizerClient(logrus.New())

	for _, rootID := range []string{"", "a", "this-id-is-far-too-long", "under_score"} {
		inputSettings := validSettings()
		inputSettings.RootID = rootID

		_, err := normalizerClient.Normalize(inputSettings)

		configurationError := &types.ConfigurationError{}
		assert.True(t, errors.As(err, &configurationError), "expected ConfigurationError for rootId %q", rootID)
	}
}

func TestNormalizerClient_Normalize_UnknownServiceFails(t *testing.T) {
	normalizerClient := NewNormalizerClient(logrus.New())
	inputSettings := validSettings()
	inputSettings.Dns.Config.EnablePrivateLinkByService = map[string]bool{"azure_nonexistent_service": true}

	_, err := normalizerClient.Normalize(inputSettings)

	configurationError := &types.ConfigurationError{}
	assert.True(t, errors.As(err, &configurationError))
	assert.Equal(t, "azure_nonexistent_service", configurationError.Value)
}

func TestNormalizerClient_Normalize_MalformedSpokeIDFails(t *testing.T) {
	normalizerClient := NewNormalizerClient(logrus.New())
	inputSettings := validSettings()
	inputSettings.HubNetworks[0].Config.SpokeVirtualNetworkResourceIDs = []string{"not-a-resource-id"}

	_, err := normalizerClient.Normalize(inputSettings)

	configurationError := &types.ConfigurationError{}
	assert.True(t, errors.As(err, &configurationError))
}

func TestNormalizerClient_Normalize_PrivateLinkLocationsDefaultToDnsLocation(t *testing.T) {
	normalizerClient := NewNormalizerClient(logrus.New())
	inputSettings := validSettings()
	inputSettings.Dns.Config.Location = "westeurope"

	normalized, err := normalizerClient.Normalize(inputSettings)

	assert.NoError(t, err)
	assert.Equal(t, []string{"westeurope"}, normalized.Dns.PrivateLinkLocations)
}

func TestNormalizerClient_Validate_CollectsAllFindings(t *testing.T) {
	normalizerClient := NewNormalizerClient(logrus.New())
	inputSettings := validSettings()
	inputSettings.RootID = "x"
	inputSettings.SubscriptionID = "not-a-guid"
	inputSettings.Dns.Config.EnablePrivateLinkByService = map[string]bool{"azure_nonexistent_service": true}
	inputSettings.HubNetworks[0].Config.SpokeVirtualNetworkResourceIDs = []string{"not-a-resource-id"}

	foundIssues := normalizerClient.Validate(inputSettings)

	assert.Len(t, foundIssues, 4)
	issueTypes := []issues.IssueType{}
	for _, foundIssue := range foundIssues {
		assert.True(t, foundIssue.IssueType.IsValidIssueType())
		issueTypes = append(issueTypes, foundIssue.IssueType)
	}
	assert.Contains(t, issueTypes, issues.IssueTypeInvalidRootID)
	assert.Contains(t, issueTypes, issues.IssueTypeInvalidSubscriptionID)
	assert.Contains(t, issueTypes, issues.IssueTypeUnknownService)
	assert.Contains(t, issueTypes, issues.IssueTypeMalformedResourceID)
}

func TestNormalizerClient_Validate_ValidSettingsHaveNoFindings(t *testing.T) {
	normalizerClient := NewNormalizerClient(logrus.New())

	foundIssues := normalizerClient.Validate(validSettings())

	assert.Empty(t, foundIssues)
}

func Test_coalesce_EmptyStringIsAbsent(t *testing.T) {
	assert.Equal(t, "fallback", coalesce("", "fallback"))
	assert.Equal(t, "explicit", coalesce("explicit", "fallback"))
	assert.Equal(t, "", coalesce("", ""))
}
