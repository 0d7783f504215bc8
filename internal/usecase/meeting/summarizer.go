package meeting

import (
	"context"
	"fmt"

	pkgai "github.com/johnquangdev/meeting-summarizer/pkg/ai"
)

const summarySystemPrompt = "You are a helpful assistant specialized in meeting summaries."

const summaryPromptTemplate = "You are an assistant that converts meeting transcripts into concise summaries, " +
	"key decisions, and action items. Produce:\n\n" +
	"1) A 2-4 sentence summary of the meeting.\n" +
	"2) Bullet list of Key Decisions.\n" +
	"3) Numbered Action Items (who, what, by when when possible).\n\n" +
	"Meeting transcript:\n\n" +
	"%s\n\n" +
	"Output in JSON with fields: summary, decisions (array), action_items (array)."

// buildSummaryRequest assembles the chat request for one transcript
func (s *service) buildSummaryRequest(transcript string) pkgai.ChatRequest {
	return pkgai.ChatRequest{
		Model: s.opts.SummaryModel,
		Messages: []pkgai.ChatMessage{
			{Role: "system", Content: summarySystemPrompt},
			{Role: "user", Content: fmt.Sprintf(summaryPromptTemplate, transcript)},
		},
		MaxTokens:   s.opts.SummaryMaxTokens,
		Temperature: s.opts.SummaryTemperature,
	}
}

// summarize asks the chat provider for a summary and parses the answer.
// Any error here is soft: the caller stores empty strings instead.
func (s *service) summarize(ctx context.Context, transcript string) (string, string, error) {
	raw, err := s.summarizer.ChatCompletion(ctx, s.buildSummaryRequest(transcript))
	if err != nil {
		return "", "", fmt.Errorf("chat completion via %s: %w", s.summarizer.Name(), err)
	}
	return ParseSummaryResponse(raw)
}
