package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/johnquangdev/meeting-summarizer/pkg/config"
)

// GeminiClient summarizes through the Gemini API
type GeminiClient struct {
	client *genai.Client
}

// NewGeminiClient creates a Gemini client. A zero timeout leaves requests unbounded.
func NewGeminiClient(ctx context.Context, cfg *config.GeminiConfig, timeout time.Duration) (*GeminiClient, error) {
	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiClient{client: client}, nil
}

func (c *GeminiClient) Name() string {
	return config.ProviderGemini
}

// ChatCompletion maps the chat request onto GenerateContent. System messages
// become the system instruction, everything else is sent as user content.
func (c *GeminiClient) ChatCompletion(ctx context.Context, req ChatRequest) (string, error) {
	contents, gcc := toGeminiRequest(req)

	result, err := c.client.Models.GenerateContent(ctx, req.Model, contents, gcc)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	text := geminiText(result)
	if text == "" {
		return "", fmt.Errorf("empty response from gemini")
	}
	return text, nil
}

func toGeminiRequest(req ChatRequest) ([]*genai.Content, *genai.GenerateContentConfig) {
	gcc := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(req.Temperature)),
	}
	if req.MaxTokens > 0 {
		gcc.MaxOutputTokens = int32(req.MaxTokens)
	}

	var system []string
	var contents []*genai.Content
	for _, m := range req.Messages {
		if m.Role == "system" {
			system = append(system, m.Content)
			continue
		}
		role := genai.RoleUser
		if m.Role == "assistant" {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, genai.Role(role)))
	}
	if len(system) > 0 {
		gcc.SystemInstruction = genai.NewContentFromText(strings.Join(system, "\n\n"), genai.RoleUser)
	}
	return contents, gcc
}

func geminiText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}
