package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GriffinCanCode/RecipeDeck/internal/api/middleware"
	"github.com/GriffinCanCode/RecipeDeck/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/RecipeDeck/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/RecipeDeck/internal/shared/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dispatchFunc func(ctx context.Context, ev *types.Event) *types.Response

func (f dispatchFunc) Dispatch(ctx context.Context, ev *types.Event) *types.Response {
	return f(ctx, ev)
}

func setupRouter(t *testing.T, d Dispatcher) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewHandlers(d, monitoring.NewMetrics(), nil, resilience.New("drive", resilience.Settings{}))
	r := gin.New()
	r.Use(middleware.MaxBodySize(1024))
	r.POST("/skill", h.Skill)
	r.GET("/health", h.Health)
	r.GET("/metrics", h.Metrics)
	return r
}

func TestSkill(t *testing.T) {
	var got *types.Event
	router := setupRouter(t, dispatchFunc(func(_ context.Context, ev *types.Event) *types.Response {
		got = ev
		return &types.Response{
			Version:  types.ResponseVersion,
			Response: types.ResponseBody{OutputSpeech: types.PlainText("hi")},
		}
	}))

	body := `{
		"version": "1.0",
		"session": {"new": false, "sessionId": "s-1", "attributes": {"last_recipe_name": "Soup"}},
		"context": {"System": {"apiEndpoint": "https://api.example.com", "apiAccessToken": "tok"}},
		"request": {"type": "Alexa.Presentation.APL.UserEvent", "requestId": "r-1", "arguments": ["node-1"]}
	}`
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/skill", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, got)
	assert.Equal(t, types.RequestUserEvent, got.Request.Type)
	assert.JSONEq(t, `["node-1"]`, string(got.Request.Arguments))
	assert.Equal(t, "Soup", got.Attributes()["last_recipe_name"])
	endpoint, token := got.Credentials()
	assert.Equal(t, "https://api.example.com", endpoint)
	assert.Equal(t, "tok", token)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "1.0", resp["version"])
	speech := resp["response"].(map[string]interface{})["outputSpeech"].(map[string]interface{})
	assert.Equal(t, "hi", speech["text"])
}

func TestSkillRejectsBadBodies(t *testing.T) {
	called := false
	router := setupRouter(t, dispatchFunc(func(context.Context, *types.Event) *types.Response {
		called = true
		return &types.Response{}
	}))

	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "malformed json", body: `{"request":`, want: http.StatusBadRequest},
		{name: "empty body", body: ``, want: http.StatusBadRequest},
		{name: "oversized", body: `{"version":"` + strings.Repeat("x", 2048) + `"}`, want: http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/skill", strings.NewReader(tt.body)))
			assert.Equal(t, tt.want, w.Code)
		})
	}
	assert.False(t, called)
}

func TestHealth(t *testing.T) {
	router := setupRouter(t, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, map[string]interface{}{"drive": "closed"}, resp["breakers"])
	assert.Contains(t, resp, "turns")
}

func TestMetrics(t *testing.T) {
	router := setupRouter(t, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "recipedeck_uptime_seconds")
}
