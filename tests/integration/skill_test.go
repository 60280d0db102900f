package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/GriffinCanCode/RecipeDeck/internal/infrastructure/config"
	"github.com/GriffinCanCode/RecipeDeck/internal/infrastructure/logging"
	"github.com/GriffinCanCode/RecipeDeck/internal/infrastructure/server"
	"github.com/GriffinCanCode/RecipeDeck/internal/shared/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	apiKey      = "integration-key"
	rootFolder  = "root"
	accessToken = "device-token"
)

// drive serves a two-level recipe tree
func drive(t *testing.T) *httptest.Server {
	t.Helper()
	r := gin.New()

	r.GET("/drive/v3/files", func(c *gin.Context) {
		if c.Query("key") != apiKey {
			c.Status(http.StatusForbidden)
			return
		}
		switch c.Query("q") {
		case "'root' in parents and mimeType='application/vnd.google-apps.folder'":
			c.JSON(http.StatusOK, gin.H{"files": []gin.H{
				{"id": "f-soups", "name": "Soups"},
				{"id": "f-breads", "name": "Breads"},
			}})
		case "'f-soups' in parents and mimeType!='application/vnd.google-apps.folder'":
			c.JSON(http.StatusOK, gin.H{"files": []gin.H{{"id": "d-tomato", "name": "Tomato Soup"}}})
		default:
			c.JSON(http.StatusOK, gin.H{"files": []gin.H{}})
		}
	})
	r.GET("/drive/v3/files/:id", func(c *gin.Context) {
		mime := "application/vnd.google-apps.document"
		if strings.HasPrefix(c.Param("id"), "f-") {
			mime = "application/vnd.google-apps.folder"
		}
		c.JSON(http.StatusOK, gin.H{"mimeType": mime})
	})
	r.GET("/drive/v3/files/:id/export", func(c *gin.Context) {
		if c.Param("id") != "d-tomato" {
			c.Status(http.StatusNotFound)
			return
		}
		c.Data(http.StatusOK, "text/plain", []byte("Tomato Soup\r\n4 tomatoes\r\nSimmer 20 minutes"))
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

// platform records timer calls made against the device API
type platform struct {
	mu      sync.Mutex
	created []map[string]interface{}
	deletes int
	auth    []string
}

func (p *platform) serve(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/v1/alerts/timers", func(c *gin.Context) {
		var body map[string]interface{}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		p.mu.Lock()
		p.created = append(p.created, body)
		p.auth = append(p.auth, c.GetHeader("Authorization"))
		p.mu.Unlock()
		c.JSON(http.StatusOK, gin.H{"id": "timer-1", "status": "ON", "duration": body["duration"]})
	})
	r.DELETE("/v1/alerts/timers", func(c *gin.Context) {
		p.mu.Lock()
		p.deletes++
		p.auth = append(p.auth, c.GetHeader("Authorization"))
		p.mu.Unlock()
		c.Status(http.StatusOK)
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

type skill struct {
	t        *testing.T
	handler  http.Handler
	endpoint string
	attrs    map[string]interface{}
}

func newSkill(t *testing.T, endpoint string) *skill {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.Drive.APIKey = apiKey
	cfg.Drive.RootFolderID = rootFolder
	cfg.Drive.BaseURL = drive(t).URL
	cfg.Timers.AllowedHosts = []string{"127.0.0.1"}

	srv, err := server.NewServerWithLogger(cfg, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Close() })

	return &skill{t: t, handler: srv.Handler(), endpoint: endpoint}
}

// turn posts one request and carries the returned session attributes forward
func (s *skill) turn(request map[string]interface{}) types.Response {
	s.t.Helper()
	event := map[string]interface{}{
		"version": "1.0",
		"session": map[string]interface{}{"sessionId": "s-1", "attributes": s.attrs},
		"context": map[string]interface{}{
			"System": map[string]interface{}{"apiEndpoint": s.endpoint, "apiAccessToken": accessToken},
		},
		"request": request,
	}
	body, err := json.Marshal(event)
	require.NoError(s.t, err)

	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/skill", strings.NewReader(string(body))))
	require.Equal(s.t, http.StatusOK, w.Code)

	var resp types.Response
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &resp))
	s.attrs = resp.SessionAttributes
	return resp
}

func directiveTypes(resp types.Response) []string {
	out := make([]string, 0, len(resp.Response.Directives))
	for _, d := range resp.Response.Directives {
		out = append(out, d.Type)
	}
	return out
}

func TestBrowseCookAndTime(t *testing.T) {
	p := &platform{}
	s := newSkill(t, p.serve(t).URL)

	// Launch lists categories
	resp := s.turn(map[string]interface{}{"type": "LaunchRequest", "requestId": "r-1"})
	assert.Equal(t, []string{types.DirectiveRenderDocument}, directiveTypes(resp))
	assert.False(t, resp.Response.ShouldEndSession)
	assert.Empty(t, resp.SessionAttributes)

	// Picking a folder lists its recipes
	resp = s.turn(map[string]interface{}{"type": "Alexa.Presentation.APL.UserEvent", "arguments": []string{"f-soups"}})
	assert.Equal(t, []string{types.DirectiveRenderDocument}, directiveTypes(resp))
	raw, _ := json.Marshal(resp)
	assert.Contains(t, string(raw), "Tomato Soup")

	// Picking a document renders it and remembers it
	resp = s.turn(map[string]interface{}{"type": "Alexa.Presentation.APL.UserEvent", "arguments": []string{"d-tomato"}})
	assert.Equal(t, []string{types.DirectiveRenderDocument, types.DirectiveExecuteCommands}, directiveTypes(resp))
	assert.Equal(t, "d-tomato", resp.SessionAttributes["last_recipe_name"])
	assert.Equal(t, "Tomato Soup\n4 tomatoes\nSimmer 20 minutes", resp.SessionAttributes["last_recipe_content"])

	// Scrolling keeps the session
	resp = s.turn(map[string]interface{}{"type": "IntentRequest", "intent": map[string]interface{}{"name": "ScrollDownIntent"}})
	assert.Equal(t, []string{types.DirectiveExecuteCommands}, directiveTypes(resp))
	assert.Equal(t, "d-tomato", resp.SessionAttributes["last_recipe_name"])

	// Setting a timer re-renders the retained recipe
	resp = s.turn(map[string]interface{}{
		"type":   "IntentRequest",
		"locale": "en-GB",
		"intent": map[string]interface{}{
			"name":  "SetTimerIntent",
			"slots": map[string]interface{}{"duration": map[string]interface{}{"name": "duration", "value": "PT20M"}},
		},
	})
	assert.Equal(t, "Timer set for 20 minutes. You can continue viewing your recipe.", resp.Speech())
	assert.Contains(t, directiveTypes(resp), types.DirectiveRenderDocument)
	assert.Equal(t, "d-tomato", resp.SessionAttributes["last_recipe_name"])

	// Cancelling clears every timer
	resp = s.turn(map[string]interface{}{"type": "IntentRequest", "intent": map[string]interface{}{"name": "CancelTimerIntent"}})
	assert.Equal(t, "All timers have been canceled.", resp.Speech())

	// Relaunch reopens the recipe instead of the category list
	resp = s.turn(map[string]interface{}{"type": "LaunchRequest"})
	assert.Equal(t, []string{types.DirectiveRenderDocument, types.DirectiveExecuteCommands}, directiveTypes(resp))

	resp = s.turn(map[string]interface{}{"type": "SessionEndedRequest", "reason": "USER_INITIATED"})
	assert.True(t, resp.Response.ShouldEndSession)
	assert.Nil(t, resp.Response.OutputSpeech)

	p.mu.Lock()
	defer p.mu.Unlock()
	require.Len(t, p.created, 1)
	assert.Equal(t, "PT20M", p.created[0]["duration"])
	assert.Equal(t, "Recipe Timer", p.created[0]["label"])
	assert.Equal(t, 1, p.deletes)
	for _, h := range p.auth {
		assert.Equal(t, "Bearer "+accessToken, h)
	}
}

func TestTimerFailureKeepsSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/v1/alerts/timers", func(c *gin.Context) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "no permission"})
	})
	down := httptest.NewServer(r)
	t.Cleanup(down.Close)

	s := newSkill(t, down.URL)
	s.attrs = map[string]interface{}{"last_recipe_name": "Soup", "last_recipe_content": "Water"}

	resp := s.turn(map[string]interface{}{
		"type": "IntentRequest",
		"intent": map[string]interface{}{
			"name":  "SetTimerIntent",
			"slots": map[string]interface{}{"duration": map[string]interface{}{"name": "duration", "value": "PT5M"}},
		},
	})

	assert.Equal(t, "There was an issue setting the timer. Please try again.", resp.Speech())
	assert.Equal(t, "Soup", resp.SessionAttributes["last_recipe_name"])
	assert.False(t, resp.Response.ShouldEndSession)
}

func TestUnknownSelectionApologises(t *testing.T) {
	s := newSkill(t, "http://127.0.0.1:1")

	resp := s.turn(map[string]interface{}{"type": "Alexa.Presentation.APL.UserEvent", "arguments": []string{"d-missing"}})

	assert.Equal(t, "Sorry, I couldn't fetch the content of this recipe. Please try again later.", resp.Speech())
	assert.Empty(t, resp.Response.Directives)
}

func TestUnrecognizedRequestEndsSession(t *testing.T) {
	s := newSkill(t, "http://127.0.0.1:1")

	resp := s.turn(map[string]interface{}{"type": "IntentRequest", "intent": map[string]interface{}{"name": "AMAZON.HelpIntent"}})

	assert.Equal(t, "Sorry, I couldn't process your request. Please try again.", resp.Speech())
	assert.True(t, resp.Response.ShouldEndSession)
}

func TestTimerEndpointOutsideAllowlist(t *testing.T) {
	p := &platform{}
	s := newSkill(t, strings.Replace(p.serve(t).URL, "127.0.0.1", "localhost", 1))
	s.attrs = map[string]interface{}{"last_recipe_name": "Soup", "last_recipe_content": "Water"}

	resp := s.turn(map[string]interface{}{
		"type": "IntentRequest",
		"intent": map[string]interface{}{
			"name":  "SetTimerIntent",
			"slots": map[string]interface{}{"duration": map[string]interface{}{"name": "duration", "value": "PT5M"}},
		},
	})
	assert.Equal(t, "There was an issue setting the timer. Please try again.", resp.Speech())

	resp = s.turn(map[string]interface{}{"type": "IntentRequest", "intent": map[string]interface{}{"name": "CancelTimerIntent"}})
	assert.Equal(t, "There was an issue canceling your timers.", resp.Speech())

	p.mu.Lock()
	defer p.mu.Unlock()
	assert.Empty(t, p.created)
	assert.Zero(t, p.deletes)
	assert.Empty(t, p.auth)
}
