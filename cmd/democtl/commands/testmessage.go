package commands

import (
	"context"

	"github.com/spf13/cobra"
)

var testMessageCmd = &cobra.Command{
	Use:   "test-message",
	Short: "Post one sample update message to the demo update channel",
	Args:  cobra.NoArgs,
	RunE:  runTestMessage,
}

func runTestMessage(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	r := newReporter()

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
	defer cancel()

	env, err := newClient(cfg).SendTestMessage(ctx)
	if err != nil {
		r.Failure("Test message failed")
		r.Body(responseBody(err))
		return errTriggerFailed
	}

	r.Success("Test message sent")
	if env.Message != "" {
		r.Println(env.Message)
	}
	return nil
}
