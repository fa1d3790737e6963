package ai

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	backoff "github.com/cenkalti/backoff/v4"

	"github.com/johnquangdev/meeting-scribe/pkg/config"
)

// AssemblyAIClient wraps the official AssemblyAI SDK for synchronous
// transcription of an uploaded audio stream.
type AssemblyAIClient struct {
	apiKey string
	sdk    *aai.Client
}

// NewAssemblyAIClient creates an AssemblyAI client using the provided config.
// If cfg is nil, falls back to environment variables.
func NewAssemblyAIClient(cfg *config.AssemblyAIConfig) *AssemblyAIClient {
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		apiKey = os.Getenv("ASSEMBLYAI_API_KEY")
	}
	return &AssemblyAIClient{
		apiKey: apiKey,
		sdk:    aai.NewClient(apiKey),
	}
}

// Configured reports whether a usable API key is present
func (c *AssemblyAIClient) Configured() bool {
	return c.apiKey != ""
}

// Transcribe uploads the audio stream to AssemblyAI and blocks until the
// transcript is ready. Language detection is enabled instead of pinning a
// language so multilingual meetings transcribe correctly.
func (c *AssemblyAIClient) Transcribe(ctx context.Context, audio io.Reader) (string, error) {
	// Upload with retry: the upload is the transient-failure-prone step.
	// Stage-level failures stay terminal; this only smooths network blips
	// within a single adapter invocation. The stream is buffered once so a
	// retried attempt re-reads from the start.
	data, err := io.ReadAll(audio)
	if err != nil {
		return "", fmt.Errorf("failed to read audio stream: %w", err)
	}

	var uploadURL string
	uploadFn := func() error {
		url, err := c.sdk.Upload(ctx, bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("failed to upload to AssemblyAI: %w", err)
		}
		uploadURL = url
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	bo.MaxInterval = 10 * time.Second
	bo.MaxElapsedTime = 30 * time.Second

	if err := backoff.Retry(uploadFn, backoff.WithContext(bo, ctx)); err != nil {
		return "", err
	}

	params := &aai.TranscriptOptionalParams{
		LanguageDetection: aai.Bool(true),
		SpeakerLabels:     aai.Bool(true),
	}

	transcript, err := c.sdk.Transcripts.TranscribeFromURL(ctx, uploadURL, params)
	if err != nil {
		return "", fmt.Errorf("assemblyai transcription failed: %w", err)
	}

	if transcript.Status == aai.TranscriptStatusError {
		msg := "unknown error"
		if transcript.Error != nil {
			msg = *transcript.Error
		}
		return "", fmt.Errorf("assemblyai transcription failed: %s", msg)
	}
	if transcript.Text == nil || *transcript.Text == "" {
		return "", fmt.Errorf("assemblyai returned empty transcript")
	}
	return *transcript.Text, nil
}
