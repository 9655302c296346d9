package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/notetrackhq/notetrack/pkg/config"
)

func newTestClient(baseURL string) *GroqClient {
	return NewGroqClient(&config.LLMConfig{
		APIKey:      "test-key",
		BaseURL:     baseURL,
		Model:       "test-model",
		Temperature: 0.2,
		MaxTokens:   512,
		Timeout:     5 * time.Second,
	})
}

func TestCompleteJSON_RequestShape(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/openai/v1/chat/completions" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Fatalf("unexpected auth header %q", got)
		}

		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if req.ResponseFormat == nil || req.ResponseFormat.Type != "json_object" {
			t.Fatalf("expected json_object response format, got %+v", req.ResponseFormat)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Role != "user" {
			t.Fatalf("unexpected messages %+v", req.Messages)
		}
		if req.Temperature != 0.2 {
			t.Fatalf("expected fixed temperature 0.2, got %v", req.Temperature)
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": `{"ok":true}`}},
			},
		})
	}))
	defer ts.Close()

	client := newTestClient(ts.URL)
	content, err := client.CompleteJSON(context.Background(), "system prompt", "user prompt")
	if err != nil {
		t.Fatalf("CompleteJSON failed: %v", err)
	}
	if content != `{"ok":true}` {
		t.Fatalf("unexpected content %q", content)
	}
}

func TestCompleteJSON_RetriesOn429(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": `{"tasks":[]}`}},
			},
		})
	}))
	defer ts.Close()

	client := newTestClient(ts.URL)
	content, err := client.CompleteJSON(context.Background(), "s", "u")
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if content != `{"tasks":[]}` {
		t.Fatalf("unexpected content %q", content)
	}
	if atomic.LoadInt32(&calls) < 2 {
		t.Fatalf("expected at least 2 calls, got %d", calls)
	}
}

func TestCompleteJSON_DoesNotRetryOn400(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer ts.Close()

	client := newTestClient(ts.URL)
	if _, err := client.CompleteJSON(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected error for 400 response")
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected exactly 1 call for a client error, got %d", got)
	}
}

func TestCompleteJSON_EmptyChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer ts.Close()

	client := newTestClient(ts.URL)
	if _, err := client.CompleteJSON(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected error for empty choices")
	}
}
