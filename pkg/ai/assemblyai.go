package ai

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/johnquangdev/meeting-summarizer/pkg/config"
)

// AssemblyAIClient transcribes audio through the official AssemblyAI SDK
type AssemblyAIClient struct {
	client *aai.Client
}

// NewAssemblyAIClient creates an AssemblyAI client using the provided config.
// A zero timeout leaves requests unbounded.
func NewAssemblyAIClient(cfg *config.AssemblyAIConfig, timeout time.Duration) *AssemblyAIClient {
	opts := []aai.ClientOption{
		aai.WithAPIKey(cfg.APIKey),
		aai.WithHTTPClient(&http.Client{Timeout: timeout}),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, aai.WithBaseURL(cfg.BaseURL))
	}
	return &AssemblyAIClient{client: aai.NewClientWithOptions(opts...)}
}

// Name returns the provider name used in logs
func (c *AssemblyAIClient) Name() string {
	return config.ProviderAssemblyAI
}

// Transcribe uploads the audio and blocks until AssemblyAI finishes the
// transcript. filename is unused; AssemblyAI sniffs the format itself.
func (c *AssemblyAIClient) Transcribe(ctx context.Context, model, _ string, audio io.Reader) (string, error) {
	params := &aai.TranscriptOptionalParams{}
	if model != "" {
		params.SpeechModel = aai.SpeechModel(model)
	}

	transcript, err := c.client.Transcripts.TranscribeFromReader(ctx, audio, params)
	if err != nil {
		return "", fmt.Errorf("assemblyai transcription failed: %w", err)
	}
	return transcriptText(transcript)
}

// transcriptText maps a finished transcript to its text or its error
func transcriptText(t aai.Transcript) (string, error) {
	if t.Status == aai.TranscriptStatusError {
		msg := "unknown error"
		if t.Error != nil && *t.Error != "" {
			msg = *t.Error
		}
		return "", fmt.Errorf("assemblyai transcription failed: %s", msg)
	}
	if t.Text == nil {
		return "", nil
	}
	return *t.Text, nil
}
