package llm

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Models wrap JSON in markdown fences or surround it with prose.
// Extraction tries a priority-ordered chain of pure candidate
// producers; the first candidate that parses wins.
var (
	jsonFenceRe = regexp.MustCompile("(?s)```json\\s*(.*?)```")
	bareFenceRe = regexp.MustCompile("(?s)```\\s*(.*?)```")
)

// ExtractJSON pulls a JSON value out of free-form model output. Order
// of attempts: the whole text, a ```json fence, a bare ``` fence, then
// a scan from the first { to the last }.
func ExtractJSON(text string) (json.RawMessage, bool) {
	for _, candidate := range candidates(text) {
		trimmed := strings.TrimSpace(candidate)
		if trimmed == "" {
			continue
		}
		if json.Valid([]byte(trimmed)) {
			return json.RawMessage(trimmed), true
		}
	}
	return nil, false
}

func candidates(text string) []string {
	out := []string{text}

	if m := jsonFenceRe.FindStringSubmatch(text); m != nil {
		out = append(out, m[1])
	}
	if m := bareFenceRe.FindStringSubmatch(text); m != nil {
		out = append(out, m[1])
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		out = append(out, text[start:end+1])
	}

	return out
}
