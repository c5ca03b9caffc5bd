package commands

import (
	"context"
	"fmt"

	"github.com/ddc-bot/democtl/internal/client"
	"github.com/spf13/cobra"
)

var (
	logsAll      bool
	clearLogType string
)

var logsCmd = &cobra.Command{
	Use:   "logs [source]",
	Short: "Fetch logs from the demo server",
	Long: `Fetch logs from the demo server.

Sources: bot, discord, webui, app, action.
Use "logs container <name>" for one container's logs, or --all to fetch
every source concurrently. The log endpoints require basic auth
(--user/--password or the auth section of democtl.yaml).`,
	RunE: runLogs,
}

var logsContainerCmd = &cobra.Command{
	Use:   "container <name>",
	Short: "Fetch one container's logs",
	Args:  cobra.ExactArgs(1),
	RunE:  runContainerLogs,
}

var logsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear server-side logs",
	Args:  cobra.NoArgs,
	RunE:  runClearLogs,
}

func init() {
	logsCmd.Flags().BoolVar(&logsAll, "all", false, "Fetch every log source")
	logsClearCmd.Flags().StringVar(&clearLogType, "type", "container", "Log type to clear")

	logsCmd.AddCommand(logsContainerCmd)
	logsCmd.AddCommand(logsClearCmd)
}

func runLogs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	r := newReporter()
	c := newClient(cfg)

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
	defer cancel()

	if logsAll {
		if len(args) > 0 {
			return fmt.Errorf("--all cannot be combined with a source argument")
		}
		results, err := c.AllLogs(ctx)
		for _, res := range results {
			r.Header(fmt.Sprintf("%s logs", res.Source))
			if res.Err != nil {
				r.Failure(fmt.Sprintf("Fetching %s logs failed", res.Source))
				r.Body(responseBody(res.Err))
				continue
			}
			r.Println(res.Content)
		}
		if err != nil {
			return errTriggerFailed
		}
		return nil
	}

	if len(args) != 1 {
		return fmt.Errorf("specify a log source (bot, discord, webui, app, action) or --all")
	}
	source, err := client.ParseLogSource(args[0])
	if err != nil {
		return err
	}

	content, err := c.Logs(ctx, source)
	if err != nil {
		r.Failure(fmt.Sprintf("Fetching %s logs failed", source))
		r.Body(responseBody(err))
		return errTriggerFailed
	}

	r.Println(content)
	return nil
}

func runContainerLogs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	r := newReporter()

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
	defer cancel()

	content, err := newClient(cfg).ContainerLogs(ctx, args[0])
	if err != nil {
		r.Failure(fmt.Sprintf("Fetching logs for container %q failed", args[0]))
		r.Body(responseBody(err))
		return errTriggerFailed
	}

	r.Println(content)
	return nil
}

func runClearLogs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	r := newReporter()

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
	defer cancel()

	env, err := newClient(cfg).ClearLogs(ctx, clearLogType)
	if err != nil {
		r.Failure(fmt.Sprintf("Clearing %s logs failed", clearLogType))
		r.Body(responseBody(err))
		return errTriggerFailed
	}

	r.Success(fmt.Sprintf("Cleared %s logs", clearLogType))
	if env.Message != "" {
		r.Println(env.Message)
	}
	return nil
}
