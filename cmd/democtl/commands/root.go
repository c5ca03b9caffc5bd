package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ddc-bot/democtl/internal/client"
	"github.com/ddc-bot/democtl/internal/config"
	"github.com/ddc-bot/democtl/internal/logging"
	"github.com/ddc-bot/democtl/internal/ui"
	"github.com/spf13/cobra"
)

const Version = "0.1.0"

var (
	logLevelFlags    []string // Supports multiple --log-level flags
	cfgFile          string
	serverFlag       string
	timeoutFlag      time.Duration
	userFlag         string
	passwordFlag     string
	minServerVersion string
	noColor          bool
)

// errTriggerFailed is what commands return after printing the failure
// report; the body echo already went to stdout. All API failures are one
// category: network error, timeout, non-2xx, unsuccessful envelope.
var errTriggerFailed = errors.New("trigger failed")

var rootCmd = &cobra.Command{
	Use:   "democtl",
	Short: "democtl - admin client for the DDC demo server",
	Long: `democtl triggers out-of-band administrative actions on a DockerDiscordControl
demo server and inspects its logs. Every command is a single HTTP request;
the actual reset work happens inside the server.`,
	Version:      Version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLog(logLevelFlags)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags available to all subcommands
	rootCmd.PersistentFlags().StringSliceVar(&logLevelFlags, "log-level",
		[]string{"info"},
		"Log level for packages. Use a bare level for the default, or 'package=level' for per-package.\n"+
			"Examples: --log-level debug (all), --log-level client=debug")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"Path to democtl.yaml (default: ./democtl.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", config.DefaultServer,
		"Base URL of the DDC demo server")
	rootCmd.PersistentFlags().DurationVar(&timeoutFlag, "timeout", config.DefaultTimeout,
		"Per-request timeout")
	rootCmd.PersistentFlags().StringVar(&userFlag, "user", "",
		"HTTP basic auth user (required for log endpoints)")
	rootCmd.PersistentFlags().StringVar(&passwordFlag, "password", "",
		"HTTP basic auth password")
	rootCmd.PersistentFlags().StringVar(&minServerVersion, "min-server-version", "",
		"Fail `status` if the server reports an older semantic version")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable colored output")

	// Add subcommands
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(saveDefaultsCmd)
	rootCmd.AddCommand(testMessageCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig resolves the effective configuration.
// Precedence: CLI flags > config file > built-in defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()

	path := cfgFile
	if path == "" {
		if _, err := os.Stat(config.DefaultFileName); err == nil {
			path = config.DefaultFileName
		}
	}
	if path != "" {
		loaded, err := config.LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("server") {
		cfg.Server = serverFlag
	}
	if flags.Changed("timeout") {
		cfg.Timeout = timeoutFlag
	}
	if flags.Changed("user") {
		cfg.User = userFlag
	}
	if flags.Changed("password") {
		cfg.Password = passwordFlag
	}
	if flags.Changed("min-server-version") {
		cfg.MinServerVersion = minServerVersion
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

func newClient(cfg *config.Config) *client.Client {
	return client.New(client.Config{
		BaseURL:  cfg.Server,
		Timeout:  cfg.Timeout,
		User:     cfg.User,
		Password: cfg.Password,
	})
}

func newReporter() *ui.Reporter {
	return ui.NewReporter(os.Stdout, noColor)
}

// responseBody extracts the raw body to echo from a client error.
// Network-level failures have no body; the error text is the explicit
// marker the user sees instead.
func responseBody(err error) string {
	var respErr *client.ResponseError
	if errors.As(err, &respErr) {
		return respErr.Body
	}
	return err.Error()
}

// setupLog initializes the logging system with parsed log level flags
func setupLog(flags []string) error {
	defaultLevel, packageLevels, err := parseLogLevelFlags(flags)
	if err != nil {
		return err
	}
	return logging.Initialize(defaultLevel, packageLevels)
}

// parseLogLevelFlags parses CLI log level flags.
//
// Format: ["debug"], or ["info", "client=debug"]. A bare level sets the
// default; "package=level" overrides one package.
//
// Returns: (defaultLevel, packageLevels map, error)
func parseLogLevelFlags(flags []string) (string, map[string]string, error) {
	result := make(map[string]string)

	for _, flag := range flags {
		if !strings.Contains(flag, "=") {
			result["default"] = flag
		} else {
			parts := strings.SplitN(flag, "=", 2)
			if len(parts) == 2 {
				result[parts[0]] = parts[1]
			}
		}
	}

	defaultLevel := "info"
	if level, exists := result["default"]; exists {
		defaultLevel = level
		delete(result, "default")
	}

	if err := validateLogLevel(defaultLevel); err != nil {
		return "", nil, err
	}
	for pkg, level := range result {
		if err := validateLogLevel(level); err != nil {
			return "", nil, fmt.Errorf("invalid log level for package %q: %v", pkg, err)
		}
	}

	return defaultLevel, result, nil
}

// validateLogLevel checks if a level string is valid
func validateLogLevel(level string) error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"fatal": true,
	}
	if !validLevels[strings.ToLower(level)] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error, fatal)", level)
	}
	return nil
}
