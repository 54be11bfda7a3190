package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(serverURL string) *Client {
	client := NewClient("test-key", "test-model")
	client.endpoint = serverURL
	return client
}

func TestClient_Complete_ReturnsText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("Missing API key header")
		}
		if r.Header.Get("anthropic-version") == "" {
			t.Errorf("Missing anthropic-version header")
		}

		var req messagesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if req.MaxTokens != 1024 {
			t.Errorf("MaxTokens = %d, expected 1024", req.MaxTokens)
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("Messages = %+v, expected a single user message", req.Messages)
		}

		w.Write([]byte(`{"content":[{"type":"text","text":"hello"}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	reply, err := client.Complete(context.Background(), "prompt", 1024)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if reply != "hello" {
		t.Errorf("Complete = %q, expected %q", reply, "hello")
	}
}

func TestClient_Complete_NonTextBlock(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content":[{"type":"tool_use"}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	reply, err := client.Complete(context.Background(), "prompt", 100)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if reply != "" {
		t.Errorf("Complete = %q, expected empty for non-text reply", reply)
	}
}

func TestClient_Complete_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"type":"rate_limit_error"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Complete(context.Background(), "prompt", 100)
	if err == nil {
		t.Fatal("Expected error for 429 response, got nil")
	}
	if !strings.Contains(err.Error(), "rate_limit_error") {
		t.Errorf("Error %q should carry the upstream payload", err)
	}
}

func TestClient_Complete_MissingAPIKey(t *testing.T) {
	client := NewClient("", "test-model")
	if _, err := client.Complete(context.Background(), "prompt", 100); err == nil {
		t.Error("Expected error for missing API key, got nil")
	}
}
