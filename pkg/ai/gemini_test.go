package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/genai"

	"github.com/johnquangdev/meeting-summarizer/pkg/config"
)

func TestToGeminiRequest(t *testing.T) {
	contents, gcc := toGeminiRequest(ChatRequest{
		Model: "gemini-2.0-flash",
		Messages: []ChatMessage{
			{Role: "system", Content: "be terse"},
			{Role: "user", Content: "summarize this"},
		},
		Temperature: 0.2,
		MaxTokens:   600,
	})

	if len(contents) != 1 {
		t.Fatalf("contents = %d, want 1", len(contents))
	}
	if contents[0].Role != string(genai.RoleUser) || contents[0].Parts[0].Text != "summarize this" {
		t.Fatalf("unexpected user content %+v", contents[0])
	}
	if gcc.SystemInstruction == nil || gcc.SystemInstruction.Parts[0].Text != "be terse" {
		t.Fatalf("system instruction = %+v", gcc.SystemInstruction)
	}
	if gcc.MaxOutputTokens != 600 {
		t.Fatalf("MaxOutputTokens = %d, want 600", gcc.MaxOutputTokens)
	}
	if gcc.Temperature == nil || *gcc.Temperature != float32(0.2) {
		t.Fatalf("Temperature = %v, want 0.2", gcc.Temperature)
	}
}

func TestGeminiText(t *testing.T) {
	tests := []struct {
		name   string
		result *genai.GenerateContentResponse
		want   string
	}{
		{"nil", nil, ""},
		{"no candidates", &genai.GenerateContentResponse{}, ""},
		{"joined parts", &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []*genai.Part{{Text: "{\"summary\":"}, {Text: "\"ok\"}"}}},
			}},
		}, "{\"summary\":\"ok\"}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := geminiText(tt.result); got != tt.want {
				t.Fatalf("geminiText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGeminiChatCompletion(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || !strings.HasSuffix(r.URL.Path, ":generateContent") {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"summary\":\"short\"}"}]}}]}`))
	}))
	defer ts.Close()

	client, err := NewGeminiClient(context.Background(), &config.GeminiConfig{APIKey: "test-key", BaseURL: ts.URL + "/"}, 0)
	if err != nil {
		t.Fatalf("NewGeminiClient() error = %v", err)
	}

	got, err := client.ChatCompletion(context.Background(), ChatRequest{
		Model:    "gemini-2.0-flash",
		Messages: []ChatMessage{{Role: "user", Content: "hi"}},
	})
	if err != nil {
		t.Fatalf("ChatCompletion() error = %v", err)
	}
	if got != `{"summary":"short"}` {
		t.Fatalf("ChatCompletion() = %q", got)
	}
}
