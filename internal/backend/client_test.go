package backend

import (
	"context"
	"encoding/json"
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

type capturedRequest struct {
	method      string
	path        string
	apiKey      string
	contentType string
	body        []byte
}

type recorder struct {
	mu    sync.Mutex
	calls []capturedRequest
}

func (r *recorder) all() []capturedRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]capturedRequest(nil), r.calls...)
}

func newBackend(t *testing.T, status int, body string) (*httptest.Server, *recorder) {
	t.Helper()

	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		rec.mu.Lock()
		rec.calls = append(rec.calls, capturedRequest{
			method:      r.Method,
			path:        r.URL.Path,
			apiKey:      r.Header.Get("x-api-key"),
			contentType: r.Header.Get("Content-Type"),
			body:        b,
		})
		rec.mu.Unlock()
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	return srv, rec
}

func TestLatestReading(t *testing.T) {
	gForce := 3.1
	lightRaw := 120

	testCases := []struct {
		name     string
		status   int
		body     string
		expected HelmetReading
	}{
		{
			name:   "empty_body",
			status: http.StatusOK,
			body:   "",
		},
		{
			name:   "not_json",
			status: http.StatusOK,
			body:   "<html>bad gateway</html>",
		},
		{
			name:   "json_array",
			status: http.StatusOK,
			body:   `[1, 2, 3]`,
		},
		{
			name:   "empty_object",
			status: http.StatusOK,
			body:   `{}`,
		},
		{
			name:   "error_field",
			status: http.StatusNotFound,
			body:   `{"error": "no readings yet"}`,
		},
		{
			name:   "full_reading",
			status: http.StatusOK,
			body:   `{"impact": 2, "g_force": 3.1, "light_state": "dark", "light_raw": 120}`,
			expected: HelmetReading{
				Impact:     ImpactHard,
				GForce:     &gForce,
				LightState: LightDark,
				LightRaw:   &lightRaw,
				present:    true,
			},
		},
		{
			name:   "falsy_error_field_is_ignored",
			status: http.StatusOK,
			body:   `{"error": null, "impact": 1}`,
			expected: HelmetReading{
				Impact:  ImpactLight,
				present: true,
			},
		},
		{
			name:   "impact_out_of_range",
			status: http.StatusOK,
			body:   `{"impact": 7}`,
			expected: HelmetReading{
				Impact:  ImpactUnknown,
				present: true,
			},
		},
		{
			name:   "null_measurements",
			status: http.StatusOK,
			body:   `{"impact": 2, "g_force": null, "light_raw": null}`,
			expected: HelmetReading{
				Impact:  ImpactHard,
				present: true,
			},
		},
		{
			name:   "non_numeric_g_force",
			status: http.StatusOK,
			body:   `{"impact": 1, "g_force": "high"}`,
			expected: HelmetReading{
				Impact:  ImpactLight,
				present: true,
			},
		},
		{
			name:   "impact_as_string",
			status: http.StatusOK,
			body:   `{"impact": "2", "light_state": "normal"}`,
			expected: HelmetReading{
				Impact:     ImpactUnknown,
				LightState: "normal",
				present:    true,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv, rec := newBackend(t, tc.status, tc.body)
			c := NewClient(Config{BaseURL: srv.URL, APIKey: "secret"})

			reading, err := c.LatestReading(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tc.expected, reading)
			assert.Equal(t, tc.expected.Empty(), reading.Empty())

			calls := rec.all()
			require.Len(t, calls, 1)
			call := calls[0]
			assert.Equal(t, http.MethodGet, call.method)
			assert.Equal(t, PathLatestReading, call.path)
			assert.Equal(t, "secret", call.apiKey)
		})
	}
}

func TestLatestReadingNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(Config{BaseURL: url})
	_, err := c.LatestReading(context.Background())
	require.Error(t, err)

	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, http.MethodGet, netErr.Method)
	assert.Equal(t, PathLatestReading, netErr.Path)
}

func TestSend(t *testing.T) {
	testCases := []struct {
		name       string
		body       string
		wantEmpty  bool
		wantFailed bool
	}{
		{name: "empty_body", body: "", wantEmpty: true},
		{name: "not_json", body: "OK", wantEmpty: true},
		{name: "success", body: `{"status": "ok"}`},
		{name: "error_field", body: `{"error": "x"}`, wantFailed: true},
		{name: "error_false", body: `{"error": false}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv, _ := newBackend(t, http.StatusOK, tc.body)
			c := NewClient(Config{BaseURL: srv.URL, APIKey: "secret"})

			res, err := ClearEvents(context.Background(), c)
			require.NoError(t, err)
			require.NotNil(t, res)
			assert.Equal(t, tc.wantEmpty, res.Empty())
			assert.Equal(t, tc.wantFailed, res.Failed())
		})
	}
}

func TestSendRequestShape(t *testing.T) {
	t.Run("report_impact", func(t *testing.T) {
		srv, rec := newBackend(t, http.StatusCreated, `{"id": 1}`)
		c := NewClient(Config{BaseURL: srv.URL, APIKey: "secret"})

		_, err := ReportImpact(context.Background(), c, ImpactReport{Impact: 1, Light: "normal", GForce: 2.5, LightRaw: 512})
		require.NoError(t, err)

		calls := rec.all()
		require.Len(t, calls, 1)
		call := calls[0]
		assert.Equal(t, http.MethodPost, call.method)
		assert.Equal(t, PathImpact, call.path)
		assert.Equal(t, "secret", call.apiKey)
		assert.Contains(t, call.contentType, "application/json")
		assert.JSONEq(t, `{"impact": 1, "light": "normal", "g_force": 2.5, "light_raw": 512}`, string(call.body))
	})

	t.Run("update_hardhat_omits_absent_fields", func(t *testing.T) {
		srv, rec := newBackend(t, http.StatusOK, `{}`)
		c := NewClient(Config{BaseURL: srv.URL, APIKey: "secret"})

		_, err := UpdateHardhat(context.Background(), c, HardhatUpdate{Nickname: "Bob"})
		require.NoError(t, err)

		calls := rec.all()
		require.Len(t, calls, 1)
		call := calls[0]
		assert.Equal(t, http.MethodPut, call.method)
		assert.Equal(t, PathHardhat, call.path)

		var sent map[string]any
		require.NoError(t, json.Unmarshal(call.body, &sent))
		assert.Equal(t, map[string]any{"nickname": "Bob"}, sent)
	})

	t.Run("delete_has_no_body", func(t *testing.T) {
		srv, rec := newBackend(t, http.StatusOK, `{}`)
		c := NewClient(Config{BaseURL: srv.URL, APIKey: "secret"})

		_, err := ClearEvents(context.Background(), c)
		require.NoError(t, err)

		calls := rec.all()
		require.Len(t, calls, 1)
		assert.Equal(t, http.MethodDelete, calls[0].method)
		assert.Equal(t, PathEvents, calls[0].path)
		assert.Empty(t, calls[0].body)
	})
}

func TestSendNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(Config{BaseURL: url})
	res, err := ReportImpact(context.Background(), c, ImpactReport{})
	require.Error(t, err)
	assert.Nil(t, res)

	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, http.MethodPost, netErr.Method)
	assert.Equal(t, PathImpact, netErr.Path)
}

func TestSendCancelledContext(t *testing.T) {
	srv, rec := newBackend(t, http.StatusOK, `{}`)
	c := NewClient(Config{BaseURL: srv.URL})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Send(ctx, http.MethodPut, PathHardhat, HardhatUpdate{Nickname: "x"})
	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rec.all())
}
