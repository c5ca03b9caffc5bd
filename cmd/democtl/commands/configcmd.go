package commands

import (
	"fmt"
	"os"

	"github.com/ddc-bot/democtl/internal/config"
	"github.com/spf13/cobra"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Config file utilities",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter democtl.yaml",
	Long: `Write a starter config file with the built-in defaults. The target is
--config if given, otherwise ./democtl.yaml. Refuses to overwrite an
existing file unless --force is set.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		path = config.DefaultFileName
	}

	if !configForce {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	if err := config.WriteFile(path, config.DefaultFile()); err != nil {
		return err
	}

	newReporter().Success(fmt.Sprintf("Wrote %s", path))
	return nil
}
