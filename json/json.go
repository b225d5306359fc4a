package json

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

type IJsonClient interface {
	Export(resources any, fileName string) error
}

type JsonClient struct {
	OutputFolderPath string
	Logger           *logrus.Logger
}

func NewJsonClient(outputFolderPath string, logger *logrus.Logger) *JsonClient {
	return &JsonClient{
		OutputFolderPath: outputFolderPath,
		Logger:           logger,
	}
}

func (jsonClient *JsonClient) Export(resources any, fileName string) error {
	jsonResources, err := json.MarshalIndent(resources, "", "  ")
	if err != nil {
		return err
	}
	jsonFilePath := filepath.Join(jsonClient.OutputFolderPath, fileName)
	if err := os.WriteFile(jsonFilePath, jsonResources, 0644); err != nil {
		return err
	}
	jsonClient.Logger.Infof("Resources written to %s", jsonFilePath)
	return nil
}
