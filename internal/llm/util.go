// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import "strings"

// ExtractJSONBlock pulls the JSON payload out of model output. The model is
// instructed to return JSON optionally wrapped in a fenced code block, often
// with prose before or after the fence; the fenced content wins when present.
func ExtractJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if idx := strings.LastIndex(text, "```json"); idx >= 0 {
		return trimToFenceEnd(text[idx+len("```json"):])
	}

	if idx := strings.Index(text, "```"); idx >= 0 {
		inner := text[idx+len("```"):]
		// Skip a language identifier on the opening fence line
		if nl := strings.Index(inner, "\n"); nl >= 0 {
			firstLine := strings.TrimSpace(inner[:nl])
			if firstLine != "" && len(firstLine) < 20 && !strings.ContainsAny(firstLine, " {[") {
				inner = inner[nl+1:]
			}
		}
		return trimToFenceEnd(inner)
	}

	return text
}

// trimToFenceEnd drops everything from the closing fence onward
func trimToFenceEnd(text string) string {
	if idx := strings.Index(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
