// Package testutil provides testing utilities and helpers for backend tests.
package testutil

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/GriffinCanCode/RecipeDeck/internal/shared/types"
	"github.com/stretchr/testify/mock"
)

// MockContentGateway is a mock implementation of turn.ContentGateway for testing.
type MockContentGateway struct {
	mock.Mock
}

// ListFolders mocks the ListFolders method.
func (m *MockContentGateway) ListFolders(ctx context.Context, parentID string) types.Outcome[types.Listing] {
	args := m.Called(ctx, parentID)
	return args.Get(0).(types.Outcome[types.Listing])
}

// ListFiles mocks the ListFiles method.
func (m *MockContentGateway) ListFiles(ctx context.Context, parentID string) types.Outcome[types.Listing] {
	args := m.Called(ctx, parentID)
	return args.Get(0).(types.Outcome[types.Listing])
}

// FetchText mocks the FetchText method.
func (m *MockContentGateway) FetchText(ctx context.Context, fileID string) types.Outcome[string] {
	args := m.Called(ctx, fileID)
	return args.Get(0).(types.Outcome[string])
}

// IsFolder mocks the IsFolder method.
func (m *MockContentGateway) IsFolder(ctx context.Context, nodeID string) types.Outcome[bool] {
	args := m.Called(ctx, nodeID)
	return args.Get(0).(types.Outcome[bool])
}

// MockTimerGateway is a mock implementation of turn.TimerGateway for testing.
type MockTimerGateway struct {
	mock.Mock
}

// Create mocks the Create method.
func (m *MockTimerGateway) Create(ctx context.Context, endpoint, token string, req types.TimerRequest) types.Outcome[*types.Timer] {
	args := m.Called(ctx, endpoint, token, req)
	return args.Get(0).(types.Outcome[*types.Timer])
}

// CancelAll mocks the CancelAll method.
func (m *MockTimerGateway) CancelAll(ctx context.Context, endpoint, token string) types.Outcome[bool] {
	args := m.Called(ctx, endpoint, token)
	return args.Get(0).(types.Outcome[bool])
}

// NewMockContentGateway creates a mock content gateway with no default behaviors.
func NewMockContentGateway(t *testing.T) *MockContentGateway {
	t.Helper()
	m := new(MockContentGateway)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// NewMockTimerGateway creates a mock timer gateway with no default behaviors.
func NewMockTimerGateway(t *testing.T) *MockTimerGateway {
	t.Helper()
	m := new(MockTimerGateway)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Test credentials carried by events built here.
const (
	TestAPIEndpoint = "https://api.amazonalexa.com"
	TestAccessToken = "test-access-token"
)

// NewEvent creates an event of the given request type with session attributes.
func NewEvent(t *testing.T, requestType string, attrs map[string]interface{}) *types.Event {
	t.Helper()

	return &types.Event{
		Version: "1.0",
		Session: &types.EventSession{
			SessionID:  "amzn1.echo-api.session.test",
			Attributes: attrs,
		},
		Context: &types.EventContext{
			System: types.SystemContext{
				APIEndpoint:    TestAPIEndpoint,
				APIAccessToken: TestAccessToken,
			},
		},
		Request: types.Request{
			Type:      requestType,
			RequestID: "amzn1.echo-api.request.test",
			Locale:    "en-US",
		},
	}
}

// NewIntentEvent creates an intent event with the given slot values.
func NewIntentEvent(t *testing.T, intent string, slots map[string]string, attrs map[string]interface{}) *types.Event {
	t.Helper()

	ev := NewEvent(t, types.RequestIntent, attrs)
	ev.Request.Intent = &types.Intent{Name: intent, Slots: map[string]types.Slot{}}
	for name, value := range slots {
		ev.Request.Intent.Slots[name] = types.Slot{Name: name, Value: value}
	}
	return ev
}

// NewSelectEvent creates a touch selection event carrying the given arguments.
func NewSelectEvent(t *testing.T, attrs map[string]interface{}, arguments ...interface{}) *types.Event {
	t.Helper()

	ev := NewEvent(t, types.RequestUserEvent, attrs)
	raw, err := json.Marshal(arguments)
	if err != nil {
		t.Fatalf("marshal arguments: %v", err)
	}
	ev.Request.Arguments = raw
	return ev
}

// RecipeAttributes returns session attributes retaining a recipe.
func RecipeAttributes(name, content string) map[string]interface{} {
	return map[string]interface{}{
		"last_recipe_name":    name,
		"last_recipe_content": content,
	}
}
