package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/GriffinCanCode/RecipeDeck/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingDispatcher struct {
	got *types.Event
}

func (r *recordingDispatcher) Dispatch(_ context.Context, ev *types.Event) *types.Response {
	r.got = ev
	return &types.Response{
		Version:           types.ResponseVersion,
		SessionAttributes: ev.Attributes(),
		Response:          types.ResponseBody{OutputSpeech: types.PlainText("ok")},
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadDocument(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{
			name:    "json passes through",
			file:    "event.json",
			content: `{"request":{"type":"LaunchRequest"}}`,
			want:    `{"request":{"type":"LaunchRequest"}}`,
		},
		{
			name:    "yaml converts",
			file:    "event.yaml",
			content: "request:\n  type: LaunchRequest\n",
			want:    `{"request":{"type":"LaunchRequest"}}`,
		},
		{
			name:    "yml extension",
			file:    "event.YML",
			content: "request:\n  type: SessionEndedRequest\n",
			want:    `{"request":{"type":"SessionEndedRequest"}}`,
		},
		{
			name:    "toml converts",
			file:    "session.toml",
			content: "last_recipe_name = \"Soup\"\nlast_recipe_content = \"Water\"\n",
			want:    `{"last_recipe_name":"Soup","last_recipe_content":"Water"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := readDocument(writeFile(t, tt.file, tt.content))
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}

func TestReadDocumentErrors(t *testing.T) {
	_, err := readDocument(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)

	_, err = readDocument(writeFile(t, "bad.toml", "name = "))
	assert.Error(t, err)
}

func TestInvoke(t *testing.T) {
	d := &recordingDispatcher{}
	var out bytes.Buffer

	event := []byte(`{"session":{"attributes":{"stale":"yes"}},"request":{"type":"LaunchRequest","requestId":"r-1"}}`)
	attrs := []byte(`{"last_recipe_name":"Soup","last_recipe_content":"Water"}`)

	require.NoError(t, invoke(context.Background(), d, event, attrs, &out))

	require.NotNil(t, d.got)
	assert.Equal(t, types.RequestLaunch, d.got.Request.Type)
	assert.Equal(t, map[string]interface{}{
		"last_recipe_name":    "Soup",
		"last_recipe_content": "Water",
	}, d.got.Attributes())

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, "1.0", resp["version"])
	assert.Contains(t, out.String(), "\n  \"response\"")
}

func TestInvokeWithoutSession(t *testing.T) {
	d := &recordingDispatcher{}
	var out bytes.Buffer

	require.NoError(t, invoke(context.Background(), d, []byte(`{"request":{"type":"LaunchRequest"}}`), nil, &out))

	assert.Nil(t, d.got.Attributes())
	assert.NotContains(t, out.String(), "sessionAttributes")
}

func TestInvokeRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name  string
		event string
		attrs string
	}{
		{name: "bad event", event: `{"request":`},
		{name: "bad session", event: `{"request":{"type":"LaunchRequest"}}`, attrs: `[1,2`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var attrs []byte
			if tt.attrs != "" {
				attrs = []byte(tt.attrs)
			}
			err := invoke(context.Background(), &recordingDispatcher{}, []byte(tt.event), attrs, &bytes.Buffer{})
			assert.Error(t, err)
		})
	}
}

// capture redirects the process stdout and stderr while fn runs
func capture(t *testing.T, fn func()) (stdout, stderr string) {
	t.Helper()

	outR, outW, err := os.Pipe()
	require.NoError(t, err)
	errR, errW, err := os.Pipe()
	require.NoError(t, err)

	origOut, origErr := os.Stdout, os.Stderr
	os.Stdout, os.Stderr = outW, errW
	defer func() { os.Stdout, os.Stderr = origOut, origErr }()

	outC := make(chan string, 1)
	errC := make(chan string, 1)
	go func() { data, _ := io.ReadAll(outR); outC <- string(data) }()
	go func() { data, _ := io.ReadAll(errR); errC <- string(data) }()

	fn()

	require.NoError(t, outW.Close())
	require.NoError(t, errW.Close())
	return <-outC, <-errC
}

func TestInvokeCommandKeepsStdoutForResponse(t *testing.T) {
	t.Setenv("DRIVE_API_KEY", "test-key")
	t.Setenv("DRIVE_ROOT_FOLDER_ID", "root")
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("LOG_DEV", "false")

	event := writeFile(t, "fallback.yaml", "request:\n  type: IntentRequest\n  intent:\n    name: AMAZON.FallbackIntent\n")

	var runErr error
	stdout, stderr := capture(t, func() {
		rootCmd.SetArgs([]string{"invoke", "--event", event})
		defer rootCmd.SetArgs(nil)
		runErr = rootCmd.Execute()
	})
	require.NoError(t, runErr)

	dec := json.NewDecoder(bytes.NewBufferString(stdout))
	var resp map[string]interface{}
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, "1.0", resp["version"])
	assert.Contains(t, resp, "response")
	assert.ErrorIs(t, dec.Decode(&resp), io.EOF, "stdout must hold exactly one JSON document")

	assert.Contains(t, stderr, "turn handled")
}
