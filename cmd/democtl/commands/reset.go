package commands

import (
	"context"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Trigger an immediate demo reset",
	Long: `Trigger the demo server's reset routine immediately instead of waiting
for its hourly timer.

The server performs the reset asynchronously: this command only confirms
that the trigger was accepted. The reset itself completes within 30 seconds.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

// resetActions is what the server does once the trigger is accepted
var resetActions = []string{
	"reset the demo counters",
	"stop running services",
	"purge channel messages",
	"post the reset notification",
	"restore the default configuration",
}

func runReset(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	r := newReporter()

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
	defer cancel()

	env, err := newClient(cfg).ForceReset(ctx)
	if err != nil {
		r.Failure("Demo reset failed")
		r.Body(responseBody(err))
		return errTriggerFailed
	}

	r.Success("Demo reset triggered")
	if env.Message != "" {
		r.Println(env.Message)
	}
	r.Println("The server will perform the following within 30 seconds:")
	r.List(resetActions)
	return nil
}
