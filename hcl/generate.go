package hcl

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/sirupsen/logrus"
	"github.com/zclconf/go-cty/cty"

	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/types"
)

type IHclClient interface {
	WriteResourceBlocks(resources types.GeneratedResources, fileName string) error
	CleanFiles(filesToRemove []string) error
}

type HclClient struct {
	OutputFolderPath string
	Logger           *logrus.Logger
}

func NewHclClient(outputFolderPath string, logger *logrus.Logger) *HclClient {
	return &HclClient{
		OutputFolderPath: outputFolderPath,
		Logger:           logger,
	}
}

// terraformTypes maps each resource family to the azurerm resource type its
// blocks are emitted as.
var terraformTypes = map[string]string{
	"resource_groups":                         "azurerm_resource_group",
	"ddos_protection_plans":                   "azurerm_network_ddos_protection_plan",
	"virtual_networks":                        "azurerm_virtual_network",
	"subnets":                                 "azurerm_subnet",
	"virtual_network_gateways":                "azurerm_virtual_network_gateway",
	"public_ip_addresses":                     "azurerm_public_ip",
	"azure_firewalls":                         "azurerm_firewall",
	"private_dns_zones":                       "azurerm_private_dns_zone",
	"public_dns_zones":                        "azurerm_dns_zone",
	"private_dns_zone_virtual_network_links":  "azurerm_private_dns_zone_virtual_network_link",
	"virtual_network_peerings":                "azurerm_virtual_network_peering",
}

var familyShortNames = map[string]string{
	"resource_groups":                         "rg",
	"ddos_protection_plans":                   "ddos",
	"virtual_networks":                        "vnet",
	"subnets":                                 "snet",
	"virtual_network_gateways":                "vgw",
	"public_ip_addresses":                     "pip",
	"azure_firewalls":                         "afw",
	"private_dns_zones":                       "pdns",
	"public_dns_zones":                        "dns",
	"private_dns_zone_virtual_network_links":  "link",
	"virtual_network_peerings":                "peer",
}

// WriteResourceBlocks emits one terraform resource block per managed
// resource. Unmanaged resources are referenced by other templates but never
// emitted.
func (hclClient *HclClient) WriteResourceBlocks(resources types.GeneratedResources, fileName string) error {
	hclFilePath := filepath.Join(hclClient.OutputFolderPath, fileName)
	hclFile := hclwrite.NewEmptyFile()

	blockCount := 0
	for _, family := range resources.Families() {
		terraformType := terraformTypes[family.Name]
		for _, record := range family.Records {
			if !record.ManagedByModule {
				hclClient.Logger.Tracef("Skipping unmanaged resource %s", record.ResourceID)
				continue
			}

			resourceBlock := hclFile.Body().AppendNewBlock("resource", []string{terraformType, blockLabel(familyShortNames[family.Name], record.ResourceName)})
			for _, attributeName := range sortedTemplateKeys(record.Template) {
				resourceBlock.Body().SetAttributeValue(attributeName, ctyValue(record.Template[attributeName]))
			}
			hclFile.Body().AppendNewline()
			blockCount++
		}
	}

	if err := os.WriteFile(hclFilePath, hclFile.Bytes(), 0644); err != nil {
		return err
	}

	hclClient.Logger.Infof("HCL file %s written with %d resource blocks", hclFilePath, blockCount)
	return nil
}

func (hclClient *HclClient) CleanFiles(filesToRemove []string) error {
	for _, fileName := range filesToRemove {
		filePath := filepath.Join(hclClient.OutputFolderPath, fileName)
		if _, err := os.Stat(filePath); err == nil {
			hclClient.Logger.Debugf("File %s already exists, it will be deleted", filePath)
			if err := os.Remove(filePath); err != nil {
				return err
			}
		}
	}
	return nil
}

var labelInvalidChars = regexp.MustCompile(`[^a-z0-9_]`)

func blockLabel(familyShortName string, resourceName string) string {
	return familyShortName + "_" + labelInvalidChars.ReplaceAllString(strings.ToLower(resourceName), "_")
}

func sortedTemplateKeys(template map[string]any) []string {
	keys := make([]string, 0, len(template))
	for key := range template {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// ctyValue converts template values into cty values. Lists of maps use
// tuples so elements do not have to share an object type.
func ctyValue(value any) cty.Value {
	switch typed := value.(type) {
	case string:
		return cty.StringVal(typed)
	case bool:
		return cty.BoolVal(typed)
	case int:
		return cty.NumberIntVal(int64(typed))
	case float64:
		return cty.NumberFloatVal(typed)
	case []string:
		if len(typed) == 0 {
			return cty.ListValEmpty(cty.String)
		}
		values := make([]cty.Value, 0, len(typed))
		for _, element := range typed {
			values = append(values, cty.StringVal(element))
		}
		return cty.ListVal(values)
	case map[string]string:
		if len(typed) == 0 {
			return cty.MapValEmpty(cty.String)
		}
		values := map[string]cty.Value{}
		for key, element := range typed {
			values[key] = cty.StringVal(element)
		}
		return cty.MapVal(values)
	case map[string]any:
		if len(typed) == 0 {
			return cty.EmptyObjectVal
		}
		values := map[string]cty.Value{}
		for key, element := range typed {
			values[key] = ctyValue(element)
		}
		return cty.ObjectVal(values)
	case []map[string]any:
		values := make([]cty.Value, 0, len(typed))
		for _, element := range typed {
			values = append(values, ctyValue(element))
		}
		if len(values) == 0 {
			return cty.EmptyTupleVal
		}
		return cty.TupleVal(values)
	case []any:
		values := make([]cty.Value, 0, len(typed))
		for _, element := range typed {
			values = append(values, ctyValue(element))
		}
		if len(values) == 0 {
			return cty.EmptyTupleVal
		}
		return cty.TupleVal(values)
	default:
		return cty.NullVal(cty.DynamicPseudoType)
	}
}
