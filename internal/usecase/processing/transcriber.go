package processing

import (
	"context"
	"fmt"
	"io"

	"github.com/johnquangdev/meeting-scribe/pkg/ai"
	"github.com/johnquangdev/meeting-scribe/pkg/config"
)

// Transcriber converts an audio stream into text. Implementations wrap one
// speech-to-text backend each; the pipeline treats them interchangeably.
type Transcriber interface {
	// Configured reports whether the backend has usable credentials
	Configured() bool
	// Transcribe blocks until the full transcript is available
	Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error)
}

// NewTranscriber selects the speech-to-text backend named by configuration
func NewTranscriber(cfg *config.AIConfig) (Transcriber, error) {
	switch cfg.TranscribeProvider {
	case "whisper":
		return &whisperTranscriber{client: ai.NewWhisperClient(&cfg.Whisper)}, nil
	case "assemblyai":
		return &assemblyTranscriber{client: ai.NewAssemblyAIClient(&cfg.Assembly)}, nil
	default:
		return nil, fmt.Errorf("unknown transcription provider %q", cfg.TranscribeProvider)
	}
}

type whisperTranscriber struct {
	client *ai.WhisperClient
}

func (t *whisperTranscriber) Configured() bool {
	return t.client.Configured()
}

func (t *whisperTranscriber) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	return t.client.Transcribe(ctx, filename, audio)
}

type assemblyTranscriber struct {
	client *ai.AssemblyAIClient
}

func (t *assemblyTranscriber) Configured() bool {
	return t.client.Configured()
}

func (t *assemblyTranscriber) Transcribe(ctx context.Context, _ string, audio io.Reader) (string, error) {
	return t.client.Transcribe(ctx, audio)
}
