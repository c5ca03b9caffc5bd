package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	return New(Config{
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
	})
}

func TestForceReset_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/demo/force-reset", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"message":"reset queued"}`))
	}))
	defer srv.Close()

	env, err := newTestClient(srv.URL).ForceReset(context.Background())
	require.NoError(t, err)
	require.NotNil(t, env)
	assert.True(t, env.Success)
	assert.Equal(t, "reset queued", env.Message)
}

func TestForceReset_ErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"error":"busy"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ForceReset(context.Background())
	require.Error(t, err)

	var respErr *ResponseError
	require.True(t, errors.As(err, &respErr), "expected a ResponseError, got %T", err)
	// The raw body must be preserved verbatim for the user to diagnose
	assert.Equal(t, `{"success":false,"error":"busy"}`, respErr.Body)
	assert.Equal(t, http.StatusOK, respErr.StatusCode)
}

func TestForceReset_MalformedBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "internal server error"},
		{"empty body", ""},
		{"json without success field", `{"status":"ok"}`},
		{"success as string", `{"success":"true"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL).ForceReset(context.Background())
			require.Error(t, err)

			var respErr *ResponseError
			require.True(t, errors.As(err, &respErr))
			assert.Equal(t, tt.body, respErr.Body)
		})
	}
}

func TestForceReset_Non2xxStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"success":false,"error":"This feature is disabled on the demo server"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ForceReset(context.Background())
	require.Error(t, err)

	var respErr *ResponseError
	require.True(t, errors.As(err, &respErr))
	assert.Equal(t, http.StatusForbidden, respErr.StatusCode)
	assert.Contains(t, respErr.Body, "disabled on the demo server")
}

func TestForceReset_ConnectionRefused(t *testing.T) {
	// Grab a URL with no listener behind it
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	start := time.Now()
	_, err := newTestClient(url).ForceReset(context.Background())
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second, "refused connection must fail fast")

	// Network failures carry no response body
	var respErr *ResponseError
	assert.False(t, errors.As(err, &respErr))
}

func TestForceReset_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	_, err := c.ForceReset(context.Background())
	require.Error(t, err)

	var respErr *ResponseError
	assert.False(t, errors.As(err, &respErr))
}

func TestRequestHeaders(t *testing.T) {
	var gotRequestID string
	var gotUser, gotPass string
	var gotAuth bool

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = r.Header.Get("X-Request-ID")
		gotUser, gotPass, gotAuth = r.BasicAuth()
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c := New(Config{
		BaseURL:  srv.URL,
		Timeout:  5 * time.Second,
		User:     "admin",
		Password: "secret",
	})
	_, err := c.SaveDefaults(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, gotRequestID, "every request must carry an X-Request-ID")
	require.True(t, gotAuth)
	assert.Equal(t, "admin", gotUser)
	assert.Equal(t, "secret", gotPass)
}

func TestTriggerEndpointPaths(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	ctx := context.Background()

	_, err := c.ForceReset(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/api/demo/force-reset", gotPath)

	_, err = c.SaveDefaults(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/api/demo/save-defaults", gotPath)

	_, err = c.SendTestMessage(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/api/demo/test-message", gotPath)
}

func TestStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/demo/status", r.URL.Path)
		w.Write([]byte(`{
			"success": true,
			"demo_mode": true,
			"version": "1.2.0",
			"protected_containers": ["ddc", "caddy"],
			"monitored_channel": "1443591386292289678"
		}`))
	}))
	defer srv.Close()

	info, err := newTestClient(srv.URL).Status(context.Background())
	require.NoError(t, err)
	assert.True(t, info.DemoMode)
	assert.Equal(t, "1.2.0", info.Version)
	assert.Equal(t, []string{"ddc", "caddy"}, info.ProtectedContainers)
	assert.Equal(t, "1443591386292289678", info.MonitoredChannel)
}

func TestStatus_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"success":false,"error":"not in demo mode"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Status(context.Background())
	require.Error(t, err)

	var respErr *ResponseError
	require.True(t, errors.As(err, &respErr))
	assert.Contains(t, respErr.Body, "not in demo mode")
}

func TestLogs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/logs/bot_logs" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("line one\nline two\n"))
	}))
	defer srv.Close()

	content, err := newTestClient(srv.URL).Logs(context.Background(), LogBot)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two\n", content)
}

func TestLogs_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("Unauthorized"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Logs(context.Background(), LogDiscord)
	require.Error(t, err)

	var respErr *ResponseError
	require.True(t, errors.As(err, &respErr))
	assert.Equal(t, http.StatusUnauthorized, respErr.StatusCode)
	assert.Equal(t, "Unauthorized", respErr.Body)
}

func TestContainerLogs(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte("container output"))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	content, err := c.ContainerLogs(context.Background(), "minecraft")
	require.NoError(t, err)
	assert.Equal(t, "container output", content)
	assert.Equal(t, "/logs/container_logs/minecraft", gotPath)

	// Names are path-escaped
	_, err = c.ContainerLogs(context.Background(), "odd/name")
	require.NoError(t, err)
	assert.Equal(t, "/logs/container_logs/odd%2Fname", gotPath)

	_, err = c.ContainerLogs(context.Background(), "")
	assert.Error(t, err)
}

func TestAllLogs(t *testing.T) {
	mux := http.NewServeMux()
	for _, source := range AllLogSources() {
		mux.HandleFunc(source.path(), func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, "content for "+r.URL.Path)
		})
	}
	srv := httptest.NewServer(mux)
	defer srv.Close()

	results, err := newTestClient(srv.URL).AllLogs(context.Background())
	require.NoError(t, err)
	require.Len(t, results, len(AllLogSources()))

	// Results come back in the fixed source order regardless of
	// completion order
	for i, source := range AllLogSources() {
		assert.Equal(t, source, results[i].Source)
		assert.NoError(t, results[i].Err)
		assert.Equal(t, "content for "+source.path(), results[i].Content)
	}
}

func TestAllLogs_PartialFailure(t *testing.T) {
	mux := http.NewServeMux()
	for _, source := range AllLogSources() {
		failing := source == LogAction
		mux.HandleFunc(source.path(), func(w http.ResponseWriter, r *http.Request) {
			if failing {
				w.WriteHeader(http.StatusInternalServerError)
				io.WriteString(w, "boom")
				return
			}
			io.WriteString(w, "ok")
		})
	}
	srv := httptest.NewServer(mux)
	defer srv.Close()

	results, err := newTestClient(srv.URL).AllLogs(context.Background())
	require.Error(t, err)
	require.Len(t, results, len(AllLogSources()))

	for _, res := range results {
		if res.Source == LogAction {
			assert.Error(t, res.Err)
		} else {
			assert.NoError(t, res.Err)
			assert.Equal(t, "ok", res.Content)
		}
	}
}

func TestClearLogs(t *testing.T) {
	var gotBody map[string]string
	var gotContentType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/logs/clear_logs", r.URL.Path)
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"success":true,"message":"logs cleared"}`))
	}))
	defer srv.Close()

	env, err := newTestClient(srv.URL).ClearLogs(context.Background(), "container")
	require.NoError(t, err)
	assert.Equal(t, "logs cleared", env.Message)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, map[string]string{"log_type": "container"}, gotBody)
}

func TestParseLogSource(t *testing.T) {
	tests := []struct {
		input   string
		want    LogSource
		wantErr bool
	}{
		{"bot", LogBot, false},
		{"discord", LogDiscord, false},
		{"webui", LogWebUI, false},
		{"app", LogApp, false},
		{"action", LogAction, false},
		{"nope", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLogSource(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResponseError_Message(t *testing.T) {
	withBody := &ResponseError{StatusCode: 500, Body: "boom"}
	assert.Contains(t, withBody.Error(), "boom")
	assert.Contains(t, withBody.Error(), "500")

	empty := &ResponseError{StatusCode: 204}
	assert.Contains(t, empty.Error(), "empty body")
}

func TestBaseURLTrailingSlash(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL + "/")
	_, err := c.ForceReset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/api/demo/force-reset", gotPath)
}
