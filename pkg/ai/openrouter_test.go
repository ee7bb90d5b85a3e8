package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/johnquangdev/meeting-companion/pkg/config"
)

func testClient(baseURL string) *OpenRouterClient {
	return NewOpenRouterClient(&config.OpenRouterConfig{
		APIKey:  "test-key",
		BaseURL: baseURL,
	})
}

func completionBody(content string) map[string]interface{} {
	return map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": content}},
		},
	}
}

func TestCreateChatCompletion_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST got %s", r.Method)
		}
		if r.URL.Path != "/v1/chat/completions" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Fatalf("unexpected authorization header %q", got)
		}
		var payload ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if payload.Model != "test-model" {
			t.Fatalf("unexpected model %s", payload.Model)
		}
		if payload.MaxTokens == 0 {
			t.Fatalf("expected max_tokens to be defaulted")
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(completionBody("hello"))
	}))
	defer ts.Close()

	client := testClient(ts.URL)
	got, err := client.CreateChatCompletion(context.Background(), ChatRequest{
		Model:    "test-model",
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hello" {
		t.Fatalf("unexpected content %q", got)
	}
}

func TestCreateChatCompletion_UpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "rate limit exceeded"},
		})
	}))
	defer ts.Close()

	client := testClient(ts.URL)
	_, err := client.CreateChatCompletion(context.Background(), ChatRequest{Model: "test-model"})
	if err == nil {
		t.Fatal("expected error")
	}

	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected *UpstreamError, got %T", err)
	}
	if upstream.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("unexpected status %d", upstream.StatusCode)
	}
	if upstream.Message != "rate limit exceeded" {
		t.Fatalf("unexpected message %q", upstream.Message)
	}
}

func TestCreateChatCompletion_EmptyChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer ts.Close()

	client := testClient(ts.URL)
	_, err := client.CreateChatCompletion(context.Background(), ChatRequest{Model: "test-model"})
	if err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestCreateJSONCompletion_SetsJSONMode(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if payload.ResponseFormat == nil || payload.ResponseFormat.Type != "json_object" {
			t.Fatalf("expected json_object response format, got %+v", payload.ResponseFormat)
		}
		if len(payload.Messages) != 2 {
			t.Fatalf("expected system+user messages, got %d", len(payload.Messages))
		}
		if payload.Messages[0].Role != "system" || payload.Messages[1].Role != "user" {
			t.Fatalf("unexpected message roles %+v", payload.Messages)
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(completionBody(`{"ok":true}`))
	}))
	defer ts.Close()

	client := testClient(ts.URL)
	got, err := client.CreateJSONCompletion(context.Background(), "test-model", "system prompt", "user input")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `{"ok":true}` {
		t.Fatalf("unexpected content %q", got)
	}
}
