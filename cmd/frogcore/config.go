package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/frogcore/internal/config"
)

var flagConfigDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print or check the configuration",
	Long: `Print the effective configuration as YAML, or check a file.

The configuration is searched for in this order:
  --config <path>
  ~/.frogcore/config.yaml
  ./configs/frogcore.yaml
  built-in defaults

Examples:
  frogcore config                       # Effective configuration
  frogcore config --defaults > my.yaml  # Start a new file from the defaults
  frogcore config check --config my.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigCheck,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the built-in defaults")
	configCmd.AddCommand(configCheckCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	if flagConfigDefaults {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}

	cfg, source, err := config.LoadWithSource(flagConfig)
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Printf("# source: %s\n", source)
	_, err = os.Stdout.Write(data)
	return err
}

func runConfigCheck(_ *cobra.Command, _ []string) error {
	_, source, err := config.LoadWithSource(flagConfig)
	if err != nil {
		return err
	}
	fmt.Printf("%s: ok\n", source)
	return nil
}
