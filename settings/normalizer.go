package settings

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/azure"
	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/dns"
	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/issues"
	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/naming"
	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/types"
)

type INormalizerClient interface {
	Normalize(inputSettings types.Settings) (types.NormalizedSettings, error)
	Validate(inputSettings types.Settings) []issues.Issue
}

type NormalizerClient struct {
	Logger *logrus.Logger
}

func NewNormalizerClient(logger *logrus.Logger) *NormalizerClient {
	return &NormalizerClient{
		Logger: logger,
	}
}

var rootIDRegex = regexp.MustCompile(`^[A-Za-z0-9-]{2,10}$`)

// Normalize resolves every defaulted field of the settings tree and fails
// with ConfigurationError on the first invalid identifier. The input is
// never mutated; all derivation stages consume the returned value.
func (normalizerClient *NormalizerClient) Normalize(inputSettings types.Settings) (types.NormalizedSettings, error) {
	if !rootIDRegex.MatchString(inputSettings.RootID) {
		return types.NormalizedSettings{}, &types.ConfigurationError{Field: "rootId", Value: inputSettings.RootID, Message: "must be 2-10 alphanumeric or hyphen characters"}
	}

	if inputSettings.Location == "" {
		return types.NormalizedSettings{}, &types.ConfigurationError{Field: "location", Value: "", Message: "a global default location is required"}
	}

	subscriptionID := inputSettings.SubscriptionID
	if subscriptionID == "" {
		normalizerClient.Logger.Debugf("No subscription ID configured, substituting %s", azure.EmptyGuid)
		subscriptionID = azure.EmptyGuid
	} else if !azure.IsValidGuid(subscriptionID) {
		return types.NormalizedSettings{}, &types.ConfigurationError{Field: "subscriptionId", Value: inputSettings.SubscriptionID, Message: "must be a GUID"}
	}

	hubNetworks := make([]types.NormalizedHubNetwork, 0, len(inputSettings.HubNetworks))
	for hubIndex, hubNetwork := range inputSettings.HubNetworks {
		for _, spokeID := range hubNetwork.Config.SpokeVirtualNetworkResourceIDs {
			if !azure.IsValidResourceID(spokeID) {
				return types.NormalizedSettings{}, &types.ConfigurationError{
					Field:   fmt.Sprintf("hubNetworks[%d].spokeVirtualNetworkResourceIds", hubIndex),
					Value:   spokeID,
					Message: "must be an Azure resource ID",
				}
			}
		}
		hubNetworks = append(hubNetworks, types.NormalizedHubNetwork{
			Enabled:  hubNetwork.Enabled,
			Location: coalesce(hubNetwork.Config.Location, inputSettings.Location),
			Config:   hubNetwork.Config,
		})
	}

	dnsSettings := inputSettings.Dns.Config
	for _, serviceName := range sortedKeys(dnsSettings.EnablePrivateLinkByService) {
		if !dns.IsKnownService(serviceName) {
			return types.NormalizedSettings{}, &types.ConfigurationError{
				Field:   "dns.enablePrivateLinkByService",
				Value:   serviceName,
				Message: "unknown private link service",
			}
		}
	}
	for _, linkedID := range dnsSettings.VirtualNetworkResourceIDsToLink {
		if !azure.IsValidResourceID(linkedID) {
			return types.NormalizedSettings{}, &types.ConfigurationError{
				Field:   "dns.virtualNetworkResourceIdsToLink",
				Value:   linkedID,
				Message: "must be an Azure resource ID",
			}
		}
	}

	dnsLocation := coalesce(dnsSettings.Location, inputSettings.Location)
	privateLinkLocations := dnsSettings.PrivateLinkLocations
	if len(privateLinkLocations) == 0 {
		privateLinkLocations = []string{dnsLocation}
	}

	normalized := types.NormalizedSettings{
		RootID:         inputSettings.RootID,
		Enabled:        inputSettings.Enabled,
		SubscriptionID: subscriptionID,
		Location:       inputSettings.Location,
		Tags:           inputSettings.Tags,
		ResourcePrefix: coalesce(inputSettings.ResourcePrefix, inputSettings.RootID),
		ResourceSuffix: naming.Suffix(inputSettings.ResourceSuffix),
		HubNetworks:    hubNetworks,
		Ddos: types.NormalizedDdos{
			Enabled:  inputSettings.DdosProtectionPlan.Enabled,
			Location: coalesce(inputSettings.DdosProtectionPlan.Config.Location, inputSettings.Location),
		},
		Dns: types.NormalizedDns{
			Enabled:              inputSettings.Dns.Enabled,
			Location:             dnsLocation,
			PrivateLinkLocations: privateLinkLocations,
			Config:               dnsSettings,
		},
	}

	normalizerClient.Logger.Debugf("Normalized settings for %d hub networks with prefix %s", len(normalized.HubNetworks), normalized.ResourcePrefix)

	return normalized, nil
}

// Validate runs the same checks as Normalize but collects every finding
// instead of stopping at the first, for the validate command.
func (normalizerClient *NormalizerClient) Validate(inputSettings types.Settings) []issues.Issue {
	foundIssues := []issues.Issue{}

	if !rootIDRegex.MatchString(inputSettings.RootID) {
		foundIssues = append(foundIssues, issues.NewIssue(issues.IssueTypeInvalidRootID, "rootId", inputSettings.RootID, "must be 2-10 alphanumeric or hyphen characters"))
	}

	if inputSettings.Location == "" {
		foundIssues = append(foundIssues, issues.NewIssue(issues.IssueTypeMissingLocation, "location", "", "a global default location is required"))
	}

	if inputSettings.SubscriptionID != "" && !azure.IsValidGuid(inputSettings.SubscriptionID) {
		foundIssues = append(foundIssues, issues.NewIssue(issues.IssueTypeInvalidSubscriptionID, "subscriptionId", inputSettings.SubscriptionID, "must be a GUID"))
	}

	for hubIndex, hubNetwork := range inputSettings.HubNetworks {
		for _, spokeID := range hubNetwork.Config.SpokeVirtualNetworkResourceIDs {
			if !azure.IsValidResourceID(spokeID) {
				foundIssues = append(foundIssues, issues.NewIssue(issues.IssueTypeMalformedResourceID, fmt.Sprintf("hubNetworks[%d].spokeVirtualNetworkResourceIds", hubIndex), spokeID, "must be an Azure resource ID"))
			}
		}
	}

	for _, serviceName := range sortedKeys(inputSettings.Dns.Config.EnablePrivateLinkByService) {
		if !dns.IsKnownService(serviceName) {
			foundIssues = append(foundIssues, issues.NewIssue(issues.IssueTypeUnknownService, "dns.enablePrivateLinkByService", serviceName, "unknown private link service"))
		}
	}

	for _, linkedID := range inputSettings.Dns.Config.VirtualNetworkResourceIDsToLink {
		if !azure.IsValidResourceID(linkedID) {
			foundIssues = append(foundIssues, issues.NewIssue(issues.IssueTypeMalformedResourceID, "dns.virtualNetworkResourceIdsToLink", linkedID, "must be an Azure resource ID"))
		}
	}

	return foundIssues
}

// sortedKeys keeps the validation report order independent of map iteration.
func sortedKeys(values map[string]bool) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// coalesce returns the first non-empty value; an empty string is treated as
// absent rather than as an explicit value.
func coalesce(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
