package azure

import (
	"regexp"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
)

// EmptyGuid is substituted for a missing subscription ID so that derived
// resource ID strings stay well-formed without a real subscription context.
const EmptyGuid = "00000000-0000-0000-0000-000000000000"

var guidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

func IsValidGuid(value string) bool {
	return guidRegex.MatchString(value)
}

func IsValidResourceID(resourceID string) bool {
	_, err := arm.ParseResourceID(resourceID)
	return err == nil
}

// SubscriptionIDFromResourceID extracts the lowercased subscription GUID
// segment of an Azure resource ID.
func SubscriptionIDFromResourceID(resourceID string) (string, error) {
	parsedID, err := arm.ParseResourceID(resourceID)
	if err != nil {
		return "", err
	}
	return strings.ToLower(parsedID.SubscriptionID), nil
}

func ResourceNameFromResourceID(resourceID string) (string, error) {
	parsedID, err := arm.ParseResourceID(resourceID)
	if err != nil {
		return "", err
	}
	return parsedID.Name, nil
}
