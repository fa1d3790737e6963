package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/johnquangdev/meeting-scribe/pkg/config"
)

func TestWhisperTranscribe(t *testing.T) {
	var gotAuth, gotModel, gotFilename string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/audio/transcriptions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")

		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		gotModel = r.FormValue("model")
		if _, header, err := r.FormFile("file"); err != nil {
			t.Fatalf("form file: %v", err)
		} else {
			gotFilename = header.Filename
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text":"bonjour à tous"}`))
	}))
	defer server.Close()

	client := NewWhisperClient(&config.WhisperConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "whisper-1",
	})

	text, err := client.Transcribe(context.Background(), "meeting.webm", strings.NewReader("fake audio bytes"))
	if err != nil {
		t.Fatalf("transcribe: %v", err)
	}
	if text != "bonjour à tous" {
		t.Errorf("text = %q", text)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("auth = %q", gotAuth)
	}
	if gotModel != "whisper-1" {
		t.Errorf("model = %q", gotModel)
	}
	if gotFilename != "meeting.webm" {
		t.Errorf("filename = %q", gotFilename)
	}
}

func TestWhisperTranscribeServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limit"}}`))
	}))
	defer server.Close()

	client := NewWhisperClient(&config.WhisperConfig{APIKey: "test-key", BaseURL: server.URL})

	_, err := client.Transcribe(context.Background(), "a.webm", strings.NewReader("x"))
	if err == nil {
		t.Fatal("expected error on 429")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("error should carry the status code, got %v", err)
	}
}

func TestWhisperConfigured(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	cases := []struct {
		key  string
		want bool
	}{
		{"", false},
		{"sk-your-api-key-here", false},
		{"sk-real-key", true},
	}
	for _, c := range cases {
		client := NewWhisperClient(&config.WhisperConfig{APIKey: c.key, BaseURL: "http://localhost"})
		if got := client.Configured(); got != c.want {
			t.Errorf("Configured(%q) = %v, want %v", c.key, got, c.want)
		}
	}
}
