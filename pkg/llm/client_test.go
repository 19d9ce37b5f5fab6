package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func newServerClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewHTTPClient(Config{
		BaseURL:   srv.URL,
		Model:     "test-model",
		APIKey:    "test-key",
		MaxTokens: 64,
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewHTTPClient: %v", err)
	}
	return client
}

func TestCompleteSuccess(t *testing.T) {
	var gotPath, gotAuth string
	var gotReq struct {
		Model       string  `json:"model"`
		Temperature float64 `json:"temperature"`
		MaxTokens   int     `json:"max_tokens"`
		Messages    []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	client := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"email"}}]}`))
	})

	got, err := client.Complete(context.Background(), "what type is this column")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "email" {
		t.Fatalf("completion = %q, want email", got)
	}
	if gotPath != "/chat/completions" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("auth = %q", gotAuth)
	}
	if gotReq.Model != "test-model" || gotReq.Temperature != 0 || gotReq.MaxTokens != 64 {
		t.Errorf("request = %+v", gotReq)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Content != "what type is this column" {
		t.Errorf("messages = %+v", gotReq.Messages)
	}
}

func TestCompleteNon200(t *testing.T) {
	client := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})
	if _, err := client.Complete(context.Background(), "p"); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestCompleteAPIError(t *testing.T) {
	client := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":{"message":"invalid model"}}`))
	})
	if _, err := client.Complete(context.Background(), "p"); err == nil {
		t.Fatal("expected error for API error body")
	}
}

func TestCompleteNoChoices(t *testing.T) {
	client := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	})
	if _, err := client.Complete(context.Background(), "p"); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestCompleteCancelledContext(t *testing.T) {
	client := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"content":"x"}}]}`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := client.Complete(ctx, "p"); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestNewHTTPClientValidation(t *testing.T) {
	logger := zap.NewNop()
	if _, err := NewHTTPClient(Config{Model: "m"}, logger); err == nil {
		t.Fatal("expected error for empty base URL")
	}
	if _, err := NewHTTPClient(Config{BaseURL: "http://x"}, logger); err == nil {
		t.Fatal("expected error for empty model")
	}
	if _, err := NewHTTPClient(Config{BaseURL: "http://x", Model: "m"}, nil); err == nil {
		t.Fatal("expected error for nil logger")
	}
}
