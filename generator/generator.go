package generator

import (
	"github.com/sirupsen/logrus"

	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/assembler"
	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/csv"
	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/dns"
	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/groups"
	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/hcl"
	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/json"
	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/locations"
	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/network"
	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/peering"
	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/settings"
	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/types"
)

type IGeneratorClient interface {
	Generate(inputSettings types.Settings) (types.GeneratedResources, error)
	GenerateAndExport(inputSettings types.Settings) (types.GeneratedResources, error)
}

// GeneratorClient runs the derivation pipeline: normalize, partition,
// resolve resource groups, build network resources, resolve DNS and
// peerings, assemble. Each stage is a pure transformation of the previous
// stages' outputs; the first error aborts with no partial output.
type GeneratorClient struct {
	Normalizer      settings.INormalizerClient
	Partitioner     locations.IPartitionerClient
	GroupResolver   groups.IResolverClient
	NetworkBuilder  network.IBuilderClient
	DnsResolver     dns.IResolverClient
	PeeringResolver peering.IResolverClient
	Assembler       assembler.IClient
	JsonClient      json.IJsonClient
	CsvClient       csv.IResourceCsvClient
	HclClient       hcl.IHclClient
	SkipHclOutput   bool
	Logger          *logrus.Logger
}

func NewGeneratorClient(
	normalizer settings.INormalizerClient,
	partitioner locations.IPartitionerClient,
	groupResolver groups.IResolverClient,
	networkBuilder network.IBuilderClient,
	dnsResolver dns.IResolverClient,
	peeringResolver peering.IResolverClient,
	resourceAssembler assembler.IClient,
	jsonClient json.IJsonClient,
	csvClient csv.IResourceCsvClient,
	hclClient hcl.IHclClient,
	skipHclOutput bool,
	logger *logrus.Logger,
) *GeneratorClient {
	return &GeneratorClient{
		Normalizer:      normalizer,
		Partitioner:     partitioner,
		GroupResolver:   groupResolver,
		NetworkBuilder:  networkBuilder,
		DnsResolver:     dnsResolver,
		PeeringResolver: peeringResolver,
		Assembler:       resourceAssembler,
		JsonClient:      jsonClient,
		CsvClient:       csvClient,
		HclClient:       hclClient,
		SkipHclOutput:   skipHclOutput,
		Logger:          logger,
	}
}

func (generatorClient *GeneratorClient) Generate(inputSettings types.Settings) (types.GeneratedResources, error) {
	normalized, err := generatorClient.Normalizer.Normalize(inputSettings)
	if err != nil {
		return types.GeneratedResources{}, err
	}

	byLocation, err := generatorClient.Partitioner.Partition(normalized.HubNetworks)
	if err != nil {
		return types.GeneratedResources{}, err
	}
	generatorClient.Logger.Infof("Deriving resources for %d hub network locations", len(byLocation))

	resourceGroups, groupIndex := generatorClient.GroupResolver.Resolve(normalized)

	networkResources, err := generatorClient.NetworkBuilder.Build(normalized, groupIndex)
	if err != nil {
		return types.GeneratedResources{}, err
	}

	dnsResources, err := generatorClient.DnsResolver.Resolve(normalized, networkResources.VirtualNetworks, groupIndex)
	if err != nil {
		return types.GeneratedResources{}, err
	}

	peerings := generatorClient.PeeringResolver.Resolve(normalized, networkResources.VirtualNetworks)

	derived := types.DerivedResources{
		ResourceGroups: resourceGroups,
		Network:        networkResources,
		Dns:            dnsResources,
		Peerings:       peerings,
	}

	return generatorClient.Assembler.Assemble(normalized, derived), nil
}

func (generatorClient *GeneratorClient) GenerateAndExport(inputSettings types.Settings) (types.GeneratedResources, error) {
	resources, err := generatorClient.Generate(inputSettings)
	if err != nil {
		return types.GeneratedResources{}, err
	}

	if err := generatorClient.JsonClient.Export(resources, "resources.json"); err != nil {
		return types.GeneratedResources{}, err
	}
	if err := generatorClient.CsvClient.Export(resources); err != nil {
		return types.GeneratedResources{}, err
	}

	if generatorClient.SkipHclOutput {
		generatorClient.Logger.Debug("Skipping HCL output")
		return resources, nil
	}

	if err := generatorClient.HclClient.CleanFiles([]string{"generated.tf"}); err != nil {
		return types.GeneratedResources{}, err
	}
	if err := generatorClient.HclClient.WriteResourceBlocks(resources, "generated.tf"); err != nil {
		return types.GeneratedResources{}, err
	}

	return resources, nil
}
