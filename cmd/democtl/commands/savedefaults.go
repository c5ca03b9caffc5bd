package commands

import (
	"context"

	"github.com/spf13/cobra"
)

var saveDefaultsCmd = &cobra.Command{
	Use:   "save-defaults",
	Short: "Save the server's current configuration as the new demo defaults",
	Long: `Ask the demo server to snapshot its current configuration as the defaults
that every subsequent reset restores.`,
	Args: cobra.NoArgs,
	RunE: runSaveDefaults,
}

func runSaveDefaults(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	r := newReporter()

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
	defer cancel()

	env, err := newClient(cfg).SaveDefaults(ctx)
	if err != nil {
		r.Failure("Saving demo defaults failed")
		r.Body(responseBody(err))
		return errTriggerFailed
	}

	r.Success("Demo defaults saved")
	if env.Message != "" {
		r.Println(env.Message)
	}
	return nil
}
