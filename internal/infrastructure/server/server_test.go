package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GriffinCanCode/RecipeDeck/internal/infrastructure/config"
	"github.com/GriffinCanCode/RecipeDeck/internal/infrastructure/logging"
	"github.com/GriffinCanCode/RecipeDeck/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/RecipeDeck/internal/shared/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeDrive(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/drive/v3/files", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"files": []gin.H{
			{"id": "f-soups", "name": "Soups"},
			{"id": "f-breads", "name": "Breads"},
		}})
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(driveURL string) *config.Config {
	cfg := config.Default()
	cfg.Drive.APIKey = "test-key"
	cfg.Drive.RootFolderID = "root"
	cfg.Drive.BaseURL = driveURL
	return cfg
}

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	s, err := NewServerWithLogger(cfg, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestNewServerRejectsMissingCredentials(t *testing.T) {
	cfg := config.Default()

	_, err := NewServerWithLogger(cfg, logging.NewNop())

	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrMissingDriveCredentials)
}

func TestSkillLaunchListsCategories(t *testing.T) {
	s := newTestServer(t, testConfig(fakeDrive(t).URL))

	body := `{"version":"1.0","request":{"type":"LaunchRequest","requestId":"r-1"}}`
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/skill", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(tracing.HeaderTraceID))

	var resp types.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Response.Directives, 1)
	assert.Equal(t, types.DirectiveRenderDocument, resp.Response.Directives[0].Type)
	assert.False(t, resp.Response.ShouldEndSession)
	assert.Contains(t, w.Body.String(), "Breads")
	assert.Contains(t, w.Body.String(), "f-soups")
}

func TestSkillPathIsConfigurable(t *testing.T) {
	cfg := testConfig(fakeDrive(t).URL)
	cfg.Server.SkillPath = "/alexa"
	s := newTestServer(t, cfg)

	tests := []struct {
		path string
		want int
	}{
		{path: "/alexa", want: http.StatusOK},
		{path: "/skill", want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			body := `{"request":{"type":"SessionEndedRequest"}}`
			w := httptest.NewRecorder()
			s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(body)))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestSkillRejectsOversizedEvent(t *testing.T) {
	s := newTestServer(t, testConfig(fakeDrive(t).URL))

	body := `{"version":"` + strings.Repeat("x", MaxEventSize) + `"}`
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/skill", strings.NewReader(body)))

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestHealthReportsBreakers(t *testing.T) {
	s := newTestServer(t, testConfig(fakeDrive(t).URL))

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Status   string            `json:"status"`
		Breakers map[string]string `json:"breakers"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, map[string]string{"drive": "closed", "timers": "closed"}, resp.Breakers)
}

func TestMetricsAfterTurn(t *testing.T) {
	s := newTestServer(t, testConfig(fakeDrive(t).URL))

	body := `{"request":{"type":"LaunchRequest"}}`
	s.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/skill", strings.NewReader(body)))

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	out := w.Body.String()
	assert.Contains(t, out, `recipedeck_turns_total{kind="launch",outcome="ok"} 1`)
	assert.Contains(t, out, `recipedeck_breaker_state{name="drive"} 0`)
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := testConfig(fakeDrive(t).URL)
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = "0"
	s := newTestServer(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	cancel()
	assert.NoError(t, <-done)
}

func TestResponsesAreCompressedOnRequest(t *testing.T) {
	s := newTestServer(t, testConfig(fakeDrive(t).URL))

	tests := []struct {
		name     string
		encoding string
		want     string
	}{
		{name: "gzip accepted", encoding: "gzip", want: "gzip"},
		{name: "identity", encoding: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
			if tt.encoding != "" {
				req.Header.Set("Accept-Encoding", tt.encoding)
			}
			w := httptest.NewRecorder()
			s.Handler().ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, w.Header().Get("Content-Encoding"))
		})
	}
}
