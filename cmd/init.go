package cmd

import (
	"fmt"

	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/oxlift/oxlift/assist"
	tt "github.com/oxlift/oxlift/internal/types"
)

// initCmd: oxlift init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new assist configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		if err := initConfigurationFile(cfgFile); err != nil {
			logger.Error("Error initializing config file", zap.Error(err))
			return
		}
		path := cfgFile
		if path == "" {
			path = ".oxlift.yaml"
		}
		fmt.Printf("Configuration file created/updated: %s\n", path)
	},
}

func initConfigurationFile(configurationPath string) error {
	if configurationPath == "" {
		configurationPath = ".oxlift.yaml"
	}

	// Create a yaml file with the assist settings
	config := assist.Config{
		Name:    "oxlift",
		Assists: map[string]tt.ConfigAssist{},
	}
	d, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	f, err := os.Create(configurationPath)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(d)
	if err != nil {
		return err
	}

	return nil
}
