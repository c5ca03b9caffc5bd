// Package client is the HTTP client for the DDC demo server API.
//
// Every operation is a single request with a bounded timeout and no
// retries. The tool is a manual diagnostic trigger, not a resilient
// client: network failure, timeout, non-2xx status, and an unsuccessful
// envelope are all one failure category for the caller.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ddc-bot/democtl/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Config holds the settings for a Client
type Config struct {
	// BaseURL is the DDC demo server base URL (e.g., "http://localhost:9374")
	BaseURL string

	// Timeout is the overall per-request timeout
	Timeout time.Duration

	// User and Password enable HTTP basic auth when both are set
	User     string
	Password string
}

// Client is an HTTP client wrapper for the DDC demo admin API
type Client struct {
	baseURL    string
	httpClient *http.Client
	user       string
	password   string
	logger     *logging.Logger
}

// New creates a new DDC API client.
// The transport settings follow the usual tuning for short-lived CLI
// requests; the dialer timeout keeps a refused connection from eating
// the whole request budget.
func New(cfg Config) *Client {
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     30 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,

		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	}

	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		user:     cfg.User,
		password: cfg.Password,
		logger:   logging.GetLogger("client"),
	}
}

// ForceReset triggers an immediate demo reset.
// POST /api/demo/force-reset with an empty body; the server performs the
// actual reset work asynchronously within 30 seconds.
func (c *Client) ForceReset(ctx context.Context) (*Envelope, error) {
	return c.trigger(ctx, "/api/demo/force-reset")
}

// SaveDefaults asks the server to snapshot its current configuration as
// the new demo defaults. POST /api/demo/save-defaults.
func (c *Client) SaveDefaults(ctx context.Context) (*Envelope, error) {
	return c.trigger(ctx, "/api/demo/save-defaults")
}

// SendTestMessage asks the server to post one sample update message to
// the demo update channel. POST /api/demo/test-message.
func (c *Client) SendTestMessage(ctx context.Context) (*Envelope, error) {
	return c.trigger(ctx, "/api/demo/test-message")
}

// Status fetches the demo context: demo mode flag, server version,
// protected containers, monitored channel. GET /api/demo/status.
func (c *Client) Status(ctx context.Context) (*StatusInfo, error) {
	body, status, err := c.do(ctx, http.MethodGet, "/api/demo/status", nil, "")
	if err != nil {
		return nil, fmt.Errorf("fetch status: %w", err)
	}

	if status < 200 || status > 299 {
		return nil, &ResponseError{StatusCode: status, Body: string(body)}
	}

	var info StatusInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, &ResponseError{StatusCode: status, Body: string(body)}
	}
	if !info.Success {
		return nil, &ResponseError{StatusCode: status, Body: string(body)}
	}

	return &info, nil
}

// Logs fetches one server-side log source as plain text
func (c *Client) Logs(ctx context.Context, source LogSource) (string, error) {
	return c.fetchText(ctx, source.path())
}

// ContainerLogs fetches the logs of a single container.
// GET /logs/container_logs/<name>.
func (c *Client) ContainerLogs(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("container name must not be empty")
	}
	return c.fetchText(ctx, "/logs/container_logs/"+url.PathEscape(name))
}

// AllLogs fetches every fixed log source concurrently and returns the
// results in deterministic order. Each fetch runs to completion so the
// results are fully populated; the returned error is the first failure,
// if any.
func (c *Client) AllLogs(ctx context.Context) ([]LogResult, error) {
	sources := AllLogSources()
	results := make([]LogResult, len(sources))

	var g errgroup.Group
	for i, source := range sources {
		i, source := i, source
		g.Go(func() error {
			content, err := c.Logs(ctx, source)
			results[i] = LogResult{Source: source, Content: content, Err: err}
			if err != nil {
				return fmt.Errorf("fetch %s logs: %w", source, err)
			}
			return nil
		})
	}

	err := g.Wait()
	return results, err
}

// ClearLogs asks the server to clear logs of the given type.
// POST /logs/clear_logs with a JSON body.
func (c *Client) ClearLogs(ctx context.Context, logType string) (*Envelope, error) {
	payload, err := json.Marshal(map[string]string{"log_type": logType})
	if err != nil {
		return nil, fmt.Errorf("marshal clear request: %w", err)
	}

	body, status, err := c.do(ctx, http.MethodPost, "/logs/clear_logs",
		bytes.NewReader(payload), "application/json")
	if err != nil {
		return nil, fmt.Errorf("clear logs: %w", err)
	}

	return decideEnvelope(body, status)
}

// trigger issues an empty-body POST to a trigger endpoint and decides
// success on the response envelope
func (c *Client) trigger(ctx context.Context, path string) (*Envelope, error) {
	body, status, err := c.do(ctx, http.MethodPost, path, nil, "")
	if err != nil {
		return nil, fmt.Errorf("trigger %s: %w", path, err)
	}

	return decideEnvelope(body, status)
}

// decideEnvelope turns a raw response into an Envelope or a ResponseError.
// The envelope's boolean success field is the sole success signal; any
// body that fails to decode, decodes to success=false, or arrived with a
// non-2xx status is a failure carrying the raw body for diagnosis.
func decideEnvelope(body []byte, status int) (*Envelope, error) {
	if status < 200 || status > 299 {
		return nil, &ResponseError{StatusCode: status, Body: string(body)}
	}

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &ResponseError{StatusCode: status, Body: string(body)}
	}
	if !env.Success {
		return nil, &ResponseError{StatusCode: status, Body: string(body)}
	}

	return &env, nil
}

// fetchText GETs a text/plain endpoint. The DDC log routes return plain
// log content on success and the JSON error envelope on failure.
func (c *Client) fetchText(ctx context.Context, path string) (string, error) {
	body, status, err := c.do(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return "", err
	}

	if status < 200 || status > 299 {
		return "", &ResponseError{StatusCode: status, Body: string(body)}
	}

	return string(body), nil
}

// do executes a single request and returns the fully-read body and status.
// Every request carries an X-Request-ID so invocations can be correlated
// with the server's action log.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) ([]byte, int, error) {
	reqURL := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.New().String()
	req.Header.Set("X-Request-ID", requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.user != "" && c.password != "" {
		req.SetBasicAuth(c.user, c.password)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.DebugWithFields("request failed",
			logging.Field("method", method),
			logging.Field("url", reqURL),
			logging.Field("request_id", requestID),
			logging.Field("error", err.Error()),
		)
		return nil, 0, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	// Always read the body to completion for connection reuse
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response body: %w", err)
	}

	c.logger.DebugWithFields("request complete",
		logging.Field("method", method),
		logging.Field("url", reqURL),
		logging.Field("request_id", requestID),
		logging.Field("status_code", resp.StatusCode),
		logging.Field("duration_ms", time.Since(start).Milliseconds()),
	)

	return respBody, resp.StatusCode, nil
}
