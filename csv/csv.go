package csv

import (
	csvwriter "encoding/csv"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/types"
)

type IResourceCsvClient interface {
	Export(resources types.GeneratedResources) error
}

type ResourceCsvClient struct {
	OutputFolderPath string
	ResourceCsv      *ResourceCsv
	Logger           *logrus.Logger
}

type ResourceCsv struct {
	Header []string
	Rows   []*ResourceCsvRow
}

type ResourceCsvRow struct {
	Family          string
	ResourceName    string
	ResourceID      string
	ManagedByModule bool
}

func NewResourceCsvClient(outputFolderPath string, logger *logrus.Logger) *ResourceCsvClient {
	return &ResourceCsvClient{
		OutputFolderPath: outputFolderPath,
		ResourceCsv:      &ResourceCsv{Header: []string{"Resource Family", "Resource Name", "Resource ID", "Managed By Module"}},
		Logger:           logger,
	}
}

func (csv *ResourceCsv) AddRow(row *ResourceCsvRow) {
	csv.Rows = append(csv.Rows, row)
}

// Export writes one inventory row per derived resource, sorted by family
// and resource ID so the output is stable across runs.
func (csvClient *ResourceCsvClient) Export(resources types.GeneratedResources) error {
	for _, family := range resources.Families() {
		for _, record := range family.Records {
			csvClient.ResourceCsv.AddRow(&ResourceCsvRow{
				Family:          family.Name,
				ResourceName:    record.ResourceName,
				ResourceID:      record.ResourceID,
				ManagedByModule: record.ManagedByModule,
			})
		}
	}

	sort.Sort(ByFamilyAndResourceID(csvClient.ResourceCsv.Rows))

	return csvClient.writeCsv()
}

func (csvClient *ResourceCsvClient) writeCsv() error {
	csvData := [][]string{csvClient.ResourceCsv.Header}
	for _, row := range csvClient.ResourceCsv.Rows {
		csvData = append(csvData, []string{
			row.Family,
			row.ResourceName,
			row.ResourceID,
			strconv.FormatBool(row.ManagedByModule),
		})
	}

	csvFilePath := filepath.Join(csvClient.OutputFolderPath, "resources.csv")
	csvFile, err := os.Create(csvFilePath)
	if err != nil {
		return err
	}
	defer csvFile.Close()
	csvWriter := csvwriter.NewWriter(csvFile)
	defer csvWriter.Flush()
	if err := csvWriter.WriteAll(csvData); err != nil {
		return err
	}
	csvClient.Logger.Infof("Resource inventory written to %s", csvFilePath)
	return nil
}

type ByFamilyAndResourceID []*ResourceCsvRow

func (o ByFamilyAndResourceID) Len() int      { return len(o) }
func (o ByFamilyAndResourceID) Swap(i, j int) { o[i], o[j] = o[j], o[i] }
func (o ByFamilyAndResourceID) Less(i, j int) bool {
	if o[i].Family != o[j].Family {
		return o[i].Family < o[j].Family
	}

	return o[i].ResourceID < o[j].ResourceID
}
