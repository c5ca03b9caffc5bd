package client

import (
	"fmt"
)

// Envelope is the JSON envelope the DDC API wraps trigger results in.
// Success is the only field the caller decides on; Message and Error are
// informational.
type Envelope struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
	DemoMode bool   `json:"demo_mode,omitempty"`
}

// StatusInfo is the response of GET /api/demo/status
type StatusInfo struct {
	Success             bool     `json:"success"`
	DemoMode            bool     `json:"demo_mode"`
	Version             string   `json:"version"`
	ProtectedContainers []string `json:"protected_containers"`
	MonitoredChannel    string   `json:"monitored_channel"`
	Error               string   `json:"error,omitempty"`
}

// LogSource identifies one of the server's log read endpoints
type LogSource string

const (
	LogBot     LogSource = "bot"
	LogDiscord LogSource = "discord"
	LogWebUI   LogSource = "webui"
	LogApp     LogSource = "app"
	LogAction  LogSource = "action"
)

// AllLogSources returns the fixed log sources in deterministic print order
func AllLogSources() []LogSource {
	return []LogSource{LogBot, LogDiscord, LogWebUI, LogApp, LogAction}
}

// ParseLogSource validates a user-supplied log source name
func ParseLogSource(s string) (LogSource, error) {
	switch LogSource(s) {
	case LogBot, LogDiscord, LogWebUI, LogApp, LogAction:
		return LogSource(s), nil
	default:
		return "", fmt.Errorf("unknown log source %q (must be one of: bot, discord, webui, app, action)", s)
	}
}

// path maps a log source to its server endpoint (from the DDC log routes)
func (s LogSource) path() string {
	switch s {
	case LogBot:
		return "/logs/bot_logs"
	case LogDiscord:
		return "/logs/discord_logs"
	case LogWebUI:
		return "/logs/webui_logs"
	case LogApp:
		return "/logs/application_logs"
	case LogAction:
		return "/logs/action_logs"
	default:
		return ""
	}
}

// LogResult is the outcome of fetching one log source
type LogResult struct {
	Source  LogSource
	Content string
	Err     error
}

// ResponseError is returned when the server answered but the response did
// not signal success: non-2xx status, undecodable envelope, or an envelope
// with success=false. Body carries the raw response text so callers can
// echo it for diagnosis.
type ResponseError struct {
	StatusCode int
	Body       string
}

// Error returns the error message
func (e *ResponseError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("server returned status %d with empty body", e.StatusCode)
	}
	return fmt.Sprintf("server returned status %d: %s", e.StatusCode, e.Body)
}
