package cmd

import (
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/assembler"
	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/csv"
	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/dns"
	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/filepathparser"
	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/generator"
	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/groups"
	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/hcl"
	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/json"
	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/locations"
	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/network"
	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/peering"
	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/settings"
	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/types"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Derive the full connectivity resource graph and write exporter outputs",
	Long: `The generate command runs the full derivation pipeline:

1. Normalizes the settings tree (locations, prefix/suffix, subscription ID)
2. Partitions hub networks by location and resolves resource groups
3. Derives virtual networks, subnets, gateways, firewalls and public IPs
4. Derives private/public DNS zones, virtual network links and peerings
5. Writes resources.json, resources.csv and (unless skipped) generated.tf

Examples:
  # Generate from ./config.yaml into ./out
  connectivity-generator generate --config ./config.yaml --outputFolderPath ./out

  # Generate without the terraform file
  connectivity-generator generate --config ./config.yaml --skipHclOutput`,
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging(cmd)

		for key, value := range viper.GetViper().AllSettings() {
			log.Debugf("Command Flag: %s = %s", key, value)
		}

		outputFolderPath, err := filepathparser.ParsePath(viper.GetString("outputFolderPath"))
		if err != nil {
			log.Fatalf("Error getting output folder path: %v", err)
		}
		if err := filepathparser.EnsureDir(outputFolderPath); err != nil {
			log.Fatalf("Error creating output folder: %v", err)
		}

		inputSettings := types.Settings{}
		if err := viper.Unmarshal(&inputSettings); err != nil {
			log.Fatalf("Error decoding settings: %v", err)
		}

		jsonClient := json.NewJsonClient(
			outputFolderPath,
			log,
		)

		csvClient := csv.NewResourceCsvClient(
			outputFolderPath,
			log,
		)

		hclClient := hcl.NewHclClient(
			outputFolderPath,
			log,
		)

		generatorClient := generator.NewGeneratorClient(
			settings.NewNormalizerClient(log),
			locations.NewPartitionerClient(log),
			groups.NewResolverClient(log),
			network.NewBuilderClient(log),
			dns.NewResolverClient(log),
			peering.NewResolverClient(log),
			assembler.NewClient(log),
			jsonClient,
			csvClient,
			hclClient,
			viper.GetBool("skipHclOutput"),
			log,
		)

		resources, err := generatorClient.GenerateAndExport(inputSettings)
		if err != nil {
			log.Fatalf("Error generating resources: %v", err)
		}

		printSummary(resources)
	},
}

func printSummary(resources types.GeneratedResources) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Resource Family", "Total", "Managed"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, family := range resources.Families() {
		managed := 0
		for _, record := range family.Records {
			if record.ManagedByModule {
				managed++
			}
		}
		table.Append([]string{family.Name, strconv.Itoa(len(family.Records)), strconv.Itoa(managed)})
	}

	table.Render()
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.PersistentFlags().StringP("outputFolderPath", "o", ".", "Output folder path to use")
	viper.BindPFlag("outputFolderPath", generateCmd.PersistentFlags().Lookup("outputFolderPath"))
	generateCmd.PersistentFlags().Bool("skipHclOutput", false, "Skip writing the generated terraform file")
	viper.BindPFlag("skipHclOutput", generateCmd.PersistentFlags().Lookup("skipHclOutput"))
}
