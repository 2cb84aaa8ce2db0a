package summarizer

import (
	"context"
	"errors"
	"strings"
)

// ErrSummarizationFailed is returned for any failure to obtain a summary.
var ErrSummarizationFailed = errors.New("failed to generate summary")

// Item is one todo as presented to the text-generation service.
type Item struct {
	Title       string
	Description string
}

// Summarizer turns a batch of todo items into one synopsis.
type Summarizer interface {
	Summarize(ctx context.Context, items []Item) (string, error)
}

const (
	promptHeader = "Please provide a concise summary of the following todo items. For each item, include its key points and any important details:\n"
	promptFooter = "\n\nSummary:"

	maxTokens   = 200
	temperature = 0.7
)

// BuildPrompt renders items as "- title: description" lines between a fixed
// instruction header and a trailing "Summary:" cue.
func BuildPrompt(items []Item) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item.Title + ": " + item.Description
	}

	var b strings.Builder
	b.WriteString(promptHeader)
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString(promptFooter)
	return b.String()
}
