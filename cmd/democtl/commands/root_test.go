package commands

import (
	"errors"
	"io"
	"os"
	"testing"

	"github.com/ddc-bot/democtl/internal/client"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag to its default so one test's arguments
// cannot leak into the next through pflag's Changed tracking.
func resetFlags(t *testing.T) {
	t.Helper()
	var walk func(*cobra.Command)
	walk = func(cmd *cobra.Command) {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if f.Changed {
				require.NoError(t, f.Value.Set(f.DefValue))
				f.Changed = false
			}
		})
		for _, sub := range cmd.Commands() {
			walk(sub)
		}
	}
	walk(rootCmd)
}

// execute runs the root command with args and captures the stdout the
// reporters write to.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(t)

	oldStdout := os.Stdout
	rp, wp, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = wp

	rootCmd.SetArgs(args)
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	execErr := rootCmd.Execute()

	wp.Close()
	os.Stdout = oldStdout
	out, readErr := io.ReadAll(rp)
	require.NoError(t, readErr)

	return string(out), execErr
}

func TestParseLogLevelFlags(t *testing.T) {
	tests := []struct {
		name        string
		flags       []string
		wantDefault string
		wantPkgs    map[string]string
		wantErr     bool
	}{
		{
			name:        "bare level sets default",
			flags:       []string{"debug"},
			wantDefault: "debug",
			wantPkgs:    map[string]string{},
		},
		{
			name:        "per-package override",
			flags:       []string{"info", "client=debug"},
			wantDefault: "info",
			wantPkgs:    map[string]string{"client": "debug"},
		},
		{
			name:        "explicit default key",
			flags:       []string{"default=warn"},
			wantDefault: "warn",
			wantPkgs:    map[string]string{},
		},
		{
			name:    "invalid default level",
			flags:   []string{"loud"},
			wantErr: true,
		},
		{
			name:    "invalid package level",
			flags:   []string{"client=loud"},
			wantErr: true,
		},
		{
			name:        "empty flags fall back to info",
			flags:       nil,
			wantDefault: "info",
			wantPkgs:    map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, pkgs, err := parseLogLevelFlags(tt.flags)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDefault, def)
			assert.Equal(t, tt.wantPkgs, pkgs)
		})
	}
}

func TestValidateLogLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "fatal", "INFO"} {
		assert.NoError(t, validateLogLevel(level), level)
	}
	assert.Error(t, validateLogLevel("verbose"))
	assert.Error(t, validateLogLevel(""))
}

func TestResponseBody(t *testing.T) {
	respErr := &client.ResponseError{StatusCode: 200, Body: `{"success":false}`}
	assert.Equal(t, `{"success":false}`, responseBody(respErr))

	wrapped := errors.New("wrapped")
	assert.Equal(t, "wrapped", responseBody(wrapped))
}

func TestCheckServerVersion(t *testing.T) {
	tests := []struct {
		name     string
		reported string
		minimum  string
		wantErr  string
	}{
		{"newer is fine", "2.0.0", "1.2.0", ""},
		{"equal is fine", "1.2.0", "1.2.0", ""},
		{"older fails", "1.1.9", "1.2.0", "older than required"},
		{"missing version fails", "", "1.2.0", "did not report a version"},
		{"garbage version fails", "not-semver", "1.2.0", "unparseable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkServerVersion(tt.reported, tt.minimum)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
