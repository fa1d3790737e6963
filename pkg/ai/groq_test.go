package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/johnquangdev/meeting-scribe/pkg/config"
)

func TestGroqChatCompletion(t *testing.T) {
	var gotReq ChatRequest
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/openai/v1/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"# Compte-rendu\n\nRésumé."}}]}`))
	}))
	defer server.Close()

	client := NewGroqClient(&config.GroqConfig{
		APIKey:      "test-key",
		BaseURL:     server.URL,
		Model:       "llama-3.3-70b-versatile",
		Temperature: 0.2,
		MaxTokens:   2500,
	})

	content, err := client.ChatCompletion(context.Background(), "tu es un assistant", "rédige le compte-rendu")
	if err != nil {
		t.Fatalf("chat completion: %v", err)
	}
	if content != "# Compte-rendu\n\nRésumé." {
		t.Errorf("content = %q", content)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("auth = %q", gotAuth)
	}
	if gotReq.Model != "llama-3.3-70b-versatile" {
		t.Errorf("model = %q", gotReq.Model)
	}
	if gotReq.MaxTokens != 2500 {
		t.Errorf("max_tokens = %d", gotReq.MaxTokens)
	}

	messages, ok := gotReq.Messages.([]interface{})
	if !ok || len(messages) != 2 {
		t.Fatalf("messages = %v", gotReq.Messages)
	}
	system := messages[0].(map[string]interface{})
	if system["role"] != "system" || system["content"] != "tu es un assistant" {
		t.Errorf("system message = %v", system)
	}
}

func TestGroqChatCompletionServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewGroqClient(&config.GroqConfig{APIKey: "test-key", BaseURL: server.URL})

	if _, err := client.ChatCompletion(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected error on 500")
	}
}

func TestGroqChatCompletionEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewGroqClient(&config.GroqConfig{APIKey: "test-key", BaseURL: server.URL})

	if _, err := client.ChatCompletion(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected error on empty choices")
	}
}

func TestGroqConfigured(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")

	if NewGroqClient(&config.GroqConfig{BaseURL: "http://localhost"}).Configured() {
		t.Error("client without key should not be configured")
	}
	if !NewGroqClient(&config.GroqConfig{APIKey: "gsk_real", BaseURL: "http://localhost"}).Configured() {
		t.Error("client with key should be configured")
	}
}
