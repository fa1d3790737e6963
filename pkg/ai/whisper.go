package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/johnquangdev/meeting-scribe/pkg/config"
)

// WhisperClient is a minimal client for OpenAI-compatible speech-to-text
// via the audio transcriptions endpoint.
type WhisperClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// NewWhisperClient creates a Whisper client using values from the provided
// config. Pass a nil config to fall back to environment variables.
func NewWhisperClient(cfg *config.WhisperConfig) *WhisperClient {
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	var base string
	if cfg != nil && cfg.BaseURL != "" {
		base = cfg.BaseURL
	} else {
		base = os.Getenv("OPENAI_API_URL")
		if base == "" {
			base = "https://api.openai.com"
		}
	}

	model := "whisper-1"
	if cfg != nil && cfg.Model != "" {
		model = cfg.Model
	}

	return &WhisperClient{
		apiKey:  apiKey,
		baseURL: base,
		model:   model,
		client:  &http.Client{Timeout: 10 * time.Minute},
	}
}

// Configured reports whether a usable API key is present. Placeholder keys
// from .env templates count as unconfigured.
func (w *WhisperClient) Configured() bool {
	return w.apiKey != "" && !strings.HasPrefix(w.apiKey, "sk-your")
}

type whisperResponse struct {
	Text string `json:"text"`
}

// Transcribe uploads the audio stream and returns the transcribed text.
// No language is specified so the model auto-detects the source language,
// which works better for multilingual meetings.
func (w *WhisperClient) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if err := mw.WriteField("model", w.model); err != nil {
		return "", err
	}
	if err := mw.WriteField("response_format", "json"); err != nil {
		return "", err
	}

	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(fw, audio); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	endpoint := w.baseURL + "/v1/audio/transcriptions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+w.apiKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := w.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("whisper returned status %d: %s", resp.StatusCode, string(b))
	}

	var wr whisperResponse
	if err := json.NewDecoder(resp.Body).Decode(&wr); err != nil {
		return "", err
	}
	return wr.Text, nil
}
