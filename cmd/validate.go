package cmd

import (
	"errors"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/issues"
	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/locations"
	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/settings"
	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/types"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the settings file without deriving resources",
	Long: `The validate command checks the settings tree and reports every finding:
invalid root ID, malformed subscription ID, missing location, unknown private
link service names, malformed spoke resource IDs and duplicate hub locations.
It exits non-zero when any finding exists.`,
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging(cmd)

		inputSettings := types.Settings{}
		if err := viper.Unmarshal(&inputSettings); err != nil {
			log.Fatalf("Error decoding settings: %v", err)
		}

		normalizerClient := settings.NewNormalizerClient(log)
		foundIssues := normalizerClient.Validate(inputSettings)

		// Duplicate location detection needs the normalized hub list, so it
		// only runs once the per-field checks pass.
		if len(foundIssues) == 0 {
			normalized, err := normalizerClient.Normalize(inputSettings)
			if err != nil {
				log.Fatalf("Error normalizing settings: %v", err)
			}
			if _, err := locations.NewPartitionerClient(log).Partition(normalized.HubNetworks); err != nil {
				duplicateLocationError := &types.DuplicateLocationError{}
				if !errors.As(err, &duplicateLocationError) {
					log.Fatalf("Error partitioning hub networks: %v", err)
				}
				foundIssues = append(foundIssues, issues.NewIssue(issues.IssueTypeDuplicateLocation, "hubNetworks", duplicateLocationError.Location, "more than one hub network resolves to this location"))
			}
		}

		if len(foundIssues) == 0 {
			log.Info("Configuration is valid")
			return
		}

		log.Warnf("Found %d issues in the configuration", len(foundIssues))

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Issue ID", "Issue Type", "Field", "Value", "Message"})
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		for _, foundIssue := range foundIssues {
			table.Append([]string{foundIssue.IssueID, string(foundIssue.IssueType), foundIssue.Field, foundIssue.Value, foundIssue.Message})
		}
		table.Render()

		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
