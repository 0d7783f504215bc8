package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/johnquangdev/meeting-summarizer/pkg/config"
)

// maxErrorBody bounds how much of a failed response is copied into errors
const maxErrorBody = 2048

// OpenAIClient talks to an OpenAI compatible API (OpenAI itself, Groq)
// for audio transcription and chat completions.
type OpenAIClient struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewOpenAIClient creates a client for api.openai.com.
// A zero timeout leaves requests unbounded.
func NewOpenAIClient(cfg *config.OpenAIConfig, timeout time.Duration) *OpenAIClient {
	return newOpenAICompatible(config.ProviderOpenAI, cfg.APIKey, cfg.BaseURL, "https://api.openai.com/v1", timeout)
}

func newOpenAICompatible(name, apiKey, baseURL, fallbackURL string, timeout time.Duration) *OpenAIClient {
	if baseURL == "" {
		baseURL = fallbackURL
	}
	return &OpenAIClient{
		name:    name,
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Name returns the provider name used in logs
func (c *OpenAIClient) Name() string {
	return c.name
}

// ChatMessage is one entry of a chat completion conversation
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the shape for chat completion requests
type ChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// ChatResponse is a minimal response shape
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// transcriptionResponse is the json response_format of /audio/transcriptions
type transcriptionResponse struct {
	Text string `json:"text"`
}

// ChatCompletion sends the conversation and returns the first choice's content
func (c *OpenAIClient) ChatCompletion(ctx context.Context, reqBody ChatRequest) (string, error) {
	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s chat request failed: %w", c.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", c.statusError(resp)
	}

	var cr ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("failed to decode %s chat response: %w", c.name, err)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("empty response from %s", c.name)
	}
	return cr.Choices[0].Message.Content, nil
}

// Transcribe uploads the audio as multipart form data and returns the text.
// The body is streamed so the file is never held in memory as a whole.
func (c *OpenAIClient) Transcribe(ctx context.Context, model, filename string, audio io.Reader) (string, error) {
	pr, pw := io.Pipe()
	defer pr.Close()

	form := multipart.NewWriter(pw)
	go func() {
		pw.CloseWithError(writeTranscriptionForm(form, model, filename, audio))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/transcriptions", pr)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s transcription request failed: %w", c.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", c.statusError(resp)
	}

	var tr transcriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("failed to decode %s transcription response: %w", c.name, err)
	}
	return tr.Text, nil
}

func writeTranscriptionForm(form *multipart.Writer, model, filename string, audio io.Reader) error {
	if err := form.WriteField("model", model); err != nil {
		return err
	}
	if err := form.WriteField("response_format", "json"); err != nil {
		return err
	}
	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, audio); err != nil {
		return fmt.Errorf("failed to stream audio: %w", err)
	}
	return form.Close()
}

// statusError builds an error from a non-2xx response, preferring the
// provider's own error message when the body carries one.
func (c *OpenAIClient) statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var apiErr struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
		return fmt.Errorf("%s returned status %d: %s", c.name, resp.StatusCode, apiErr.Error.Message)
	}
	if msg := strings.TrimSpace(string(body)); msg != "" {
		return fmt.Errorf("%s returned status %d: %s", c.name, resp.StatusCode, msg)
	}
	return fmt.Errorf("%s returned status %d", c.name, resp.StatusCode)
}
