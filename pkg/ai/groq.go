package ai

import (
	"time"

	"github.com/johnquangdev/meeting-summarizer/pkg/config"
)

// NewGroqClient creates a client for Groq's OpenAI compatible endpoints.
// Groq serves both whisper transcription and chat completions.
func NewGroqClient(cfg *config.GroqConfig, timeout time.Duration) *OpenAIClient {
	return newOpenAICompatible(config.ProviderGroq, cfg.APIKey, cfg.BaseURL, "https://api.groq.com/openai/v1", timeout)
}
