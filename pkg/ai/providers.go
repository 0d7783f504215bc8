package ai

import (
	"context"
	"fmt"
	"io"

	"github.com/johnquangdev/meeting-summarizer/pkg/config"
)

// SpeechToText is implemented by every transcription provider
type SpeechToText interface {
	Name() string
	Transcribe(ctx context.Context, model, filename string, audio io.Reader) (string, error)
}

// Chat is implemented by every summarization provider
type Chat interface {
	Name() string
	ChatCompletion(ctx context.Context, req ChatRequest) (string, error)
}

var (
	_ SpeechToText = (*OpenAIClient)(nil)
	_ SpeechToText = (*AssemblyAIClient)(nil)
	_ Chat         = (*OpenAIClient)(nil)
	_ Chat         = (*GeminiClient)(nil)
)

// NewSpeechToText builds the client selected by TRANSCRIPTION_PROVIDER
func NewSpeechToText(cfg *config.AIConfig) (SpeechToText, error) {
	switch cfg.TranscriptionProvider {
	case config.ProviderOpenAI:
		return NewOpenAIClient(&cfg.OpenAI, cfg.HTTPTimeout), nil
	case config.ProviderGroq:
		return NewGroqClient(&cfg.Groq, cfg.HTTPTimeout), nil
	case config.ProviderAssemblyAI:
		return NewAssemblyAIClient(&cfg.Assembly, cfg.HTTPTimeout), nil
	default:
		return nil, fmt.Errorf("unsupported transcription provider %q", cfg.TranscriptionProvider)
	}
}

// NewChat builds the client selected by SUMMARY_PROVIDER
func NewChat(ctx context.Context, cfg *config.AIConfig) (Chat, error) {
	switch cfg.SummaryProvider {
	case config.ProviderOpenAI:
		return NewOpenAIClient(&cfg.OpenAI, cfg.HTTPTimeout), nil
	case config.ProviderGroq:
		return NewGroqClient(&cfg.Groq, cfg.HTTPTimeout), nil
	case config.ProviderGemini:
		return NewGeminiClient(ctx, &cfg.Gemini, cfg.HTTPTimeout)
	default:
		return nil, fmt.Errorf("unsupported summary provider %q", cfg.SummaryProvider)
	}
}
