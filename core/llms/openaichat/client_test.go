package openaichat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/orpilot/orvoice-core/core/llms"
)

func TestPromptSendsSystemAndUserMessages(t *testing.T) {
	var captured requestBody
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{}"}}]}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithModel("test-model"))
	content, err := client.Prompt(context.Background(), "hello",
		llms.WithSystemPrompt("You are terse."),
		llms.WithTemperature(0.1),
		llms.WithTopP(0.9),
		llms.WithMaxTokens(256),
	)
	if err != nil {
		t.Fatalf("prompt failed: %v", err)
	}
	if content != "{}" {
		t.Fatalf("expected raw content back, got %q", content)
	}

	if captured.Model != "test-model" {
		t.Fatalf("expected model 'test-model', got %q", captured.Model)
	}
	if len(captured.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(captured.Messages))
	}
	if captured.Messages[0].Role != llms.MessageRoleSystem {
		t.Fatalf("expected a leading system message, got %q", captured.Messages[0].Role)
	}
	if captured.Messages[1].Content != "hello" {
		t.Fatalf("expected user prompt 'hello', got %q", captured.Messages[1].Content)
	}
	if captured.Temperature == nil || *captured.Temperature != 0.1 {
		t.Fatalf("expected temperature 0.1, got %v", captured.Temperature)
	}
	if captured.TopP == nil || *captured.TopP != 0.9 {
		t.Fatalf("expected top_p 0.9, got %v", captured.TopP)
	}
	if captured.MaxTokens != 256 {
		t.Fatalf("expected max_tokens 256, got %d", captured.MaxTokens)
	}
}

func TestPromptFailsOnNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	if _, err := client.Prompt(context.Background(), "hello"); err == nil {
		t.Fatal("expected an error for a non-OK status")
	}
}

func TestPromptFailsWithoutChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	if _, err := client.Prompt(context.Background(), "hello"); err == nil {
		t.Fatal("expected an error when no choices are returned")
	}
}
