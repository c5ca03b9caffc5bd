package commands

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-version"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the demo server's status",
	Long: `Fetch the demo context from the server: demo mode flag, server version,
protected containers, and the monitored channel.

With min_server_version configured (or --min-server-version), an older
server version is treated as a failure.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	r := newReporter()

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
	defer cancel()

	info, err := newClient(cfg).Status(ctx)
	if err != nil {
		r.Failure("Status check failed")
		r.Body(responseBody(err))
		return errTriggerFailed
	}

	r.Success("Demo server is up")
	r.Printf("  demo mode:         %v\n", info.DemoMode)
	if info.Version != "" {
		r.Printf("  version:           %s\n", info.Version)
	}
	if info.MonitoredChannel != "" {
		r.Printf("  monitored channel: %s\n", info.MonitoredChannel)
	}
	if len(info.ProtectedContainers) > 0 {
		r.Println("  protected containers:")
		r.List(info.ProtectedContainers)
	}

	if cfg.MinServerVersion != "" {
		if err := checkServerVersion(info.Version, cfg.MinServerVersion); err != nil {
			r.Failure(err.Error())
			return err
		}
		r.Printf("  version check:     ok (>= %s)\n", cfg.MinServerVersion)
	}

	return nil
}

// checkServerVersion validates the reported server version against the
// configured minimum using semantic version comparison
func checkServerVersion(reported, minimum string) error {
	if reported == "" {
		return fmt.Errorf("server did not report a version (require >= %s)", minimum)
	}

	v, err := version.NewVersion(reported)
	if err != nil {
		return fmt.Errorf("server reported unparseable version %q: %w", reported, err)
	}

	minV, err := version.NewVersion(minimum)
	if err != nil {
		return fmt.Errorf("invalid min server version %q: %w", minimum, err)
	}

	if v.LessThan(minV) {
		return fmt.Errorf("server version %s is older than required %s", reported, minimum)
	}
	return nil
}
