package chatgpt

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateChatCompletionSendsResponseFormat(t *testing.T) {
	var got ChatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"[]"},"finish_reason":"stop"}],"usage":{"total_tokens":12}}`))
	}))
	defer srv.Close()

	client, err := NewClient("sk-test", srv.URL+"/v1/", WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	resp, err := client.CreateChatCompletion(context.Background(), ChatCompletionRequest{
		Model:    "gpt-4o-mini",
		Messages: []Message{{Role: "user", Content: "hi"}},
		ResponseFormat: &ResponseFormat{
			Type:       "json_schema",
			JSONSchema: &JSONSchema{Name: "outfits", Schema: map[string]any{"type": "object"}},
		},
	})
	require.NoError(t, err)

	content, err := resp.FirstContent()
	require.NoError(t, err)
	require.Equal(t, "[]", content)
	require.Equal(t, 12, resp.Usage.TotalTokens)
	require.NotNil(t, got.ResponseFormat)
	require.Equal(t, "outfits", got.ResponseFormat.JSONSchema.Name)
}

func TestCreateChatCompletionReportsStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client, err := NewClient("sk-test", srv.URL)
	require.NoError(t, err)

	_, err = client.CreateChatCompletion(context.Background(), ChatCompletionRequest{Model: "m"})
	require.ErrorContains(t, err, "status=429")
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(" ", "")
	require.Error(t, err)
}

func TestFirstContentEmpty(t *testing.T) {
	_, err := ChatCompletionResponse{}.FirstContent()
	require.Error(t, err)
}
