package meeting

import (
	"encoding/json"
	"fmt"
	"strings"
)

// decisionsHeader separates the prose summary from the decision list
const decisionsHeader = "\n\nKey decisions:\n"

// ParseSummaryResponse turns the raw chat completion text into the stored
// summary and action item strings.
//
// The response is expected to contain a JSON object somewhere in it. The
// block is taken greedily from the first '{' to the last '}', so prose with
// stray braces around the object defeats the extraction. When no block
// decodes, the raw text becomes the summary and action items are empty.
// A block that decodes but has the wrong shape is reported as an error.
func ParseSummaryResponse(raw string) (summary string, actionItems string, err error) {
	block, ok := extractJSONBlock(raw)
	if !ok {
		return raw, "", nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(block), &fields); err != nil {
		return raw, "", nil
	}

	text, err := stringField(fields, "summary")
	if err != nil {
		return "", "", err
	}
	decisions, err := listField(fields, "decisions")
	if err != nil {
		return "", "", err
	}
	actions, err := listField(fields, "action_items")
	if err != nil {
		return "", "", err
	}

	return text + decisionsHeader + bulletLines(decisions), bulletLines(actions), nil
}

// extractJSONBlock returns the text between the first '{' and the last '}'
func extractJSONBlock(s string) (string, bool) {
	start := strings.Index(s, "{")
	if start < 0 {
		return "", false
	}
	end := strings.LastIndex(s, "}")
	if end < start {
		return "", false
	}
	return s[start : end+1], true
}

func stringField(fields map[string]json.RawMessage, key string) (string, error) {
	raw, ok := fields[key]
	if !ok {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || isNull(raw) {
		return "", fmt.Errorf("summary response field %q is not a string", key)
	}
	return s, nil
}

func listField(fields map[string]json.RawMessage, key string) ([]string, error) {
	raw, ok := fields[key]
	if !ok {
		return nil, nil
	}
	// A bare string is one item
	var single string
	if err := json.Unmarshal(raw, &single); err == nil && !isNull(raw) {
		if single == "" {
			return nil, nil
		}
		return []string{single}, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || isNull(raw) {
		return nil, fmt.Errorf("summary response field %q is not an array", key)
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil && !isNull(item) {
			out = append(out, s)
			continue
		}
		// Objects and numbers are kept as compact JSON
		out = append(out, compactJSON(item))
	}
	return out, nil
}

func bulletLines(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n")
}

func isNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}

func compactJSON(raw json.RawMessage) string {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return strings.TrimSpace(string(raw))
	}
	b, err := json.Marshal(v)
	if err != nil {
		return strings.TrimSpace(string(raw))
	}
	return string(b)
}
