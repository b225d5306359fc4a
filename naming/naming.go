package naming

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ResourceName renders the default "{prefix}-{role}-{location}{suffix}"
// naming convention. The suffix is expected to already carry its separator
// (see Suffix).
func ResourceName(prefix string, role string, location string, suffix string) string {
	return fmt.Sprintf("%s-%s-%s%s", prefix, role, location, suffix)
}

// Suffix renders a resource suffix with its leading separator, or an empty
// string when no suffix is configured.
func Suffix(resourceSuffix string) string {
	if resourceSuffix == "" {
		return ""
	}
	return "-" + resourceSuffix
}

// HashName derives a stable, collision-resistant name segment from a
// resource ID using a version-5 namespace UUID. Identical input yields an
// identical name across runs, so generated names never depend on a counter.
func HashName(resourceID string) string {
	return strings.ToLower(uuid.NewSHA1(uuid.NameSpaceURL, []byte(resourceID)).String())
}
