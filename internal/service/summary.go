package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jaekwang-park/todo-summary/internal/metrics"
	"github.com/jaekwang-park/todo-summary/internal/model"
	"github.com/jaekwang-park/todo-summary/internal/notifier"
	"github.com/jaekwang-park/todo-summary/internal/repository"
	"github.com/jaekwang-park/todo-summary/internal/summarizer"
)

const messageTimeLayout = "1/2/2006, 3:04:05 PM MST"

type SummaryService struct {
	repo       repository.TodoRepository
	summarizer summarizer.Summarizer
	notifier   notifier.Notifier
}

func NewSummaryService(repo repository.TodoRepository, s summarizer.Summarizer, n notifier.Notifier) *SummaryService {
	return &SummaryService{repo: repo, summarizer: s, notifier: n}
}

// SummarizeOne summarizes a single incomplete todo and posts it to chat.
func (s *SummaryService) SummarizeOne(ctx context.Context, caller model.Identity, todoID string) (model.SummaryResult, error) {
	todo, err := loadOwned(ctx, s.repo, caller, todoID, "summarize")
	if err != nil {
		return model.SummaryResult{}, err
	}
	if todo.Completed {
		return model.SummaryResult{}, fmt.Errorf("%w: cannot summarize completed todos", ErrInvalidInput)
	}

	return s.run(ctx, metrics.ScopeSingle, []model.Todo{todo})
}

// SummarizeAll summarizes every incomplete todo of caller in one request.
// Each todo gets its own block in the message, all sharing the combined
// summary.
func (s *SummaryService) SummarizeAll(ctx context.Context, caller model.Identity) (model.SummaryResult, error) {
	todos, err := s.repo.List(ctx, caller.ID)
	if err != nil {
		return model.SummaryResult{}, fmt.Errorf("failed to list todos: %w", err)
	}

	pending := model.Incomplete(todos)
	if len(pending) == 0 {
		return model.SummaryResult{}, fmt.Errorf("%w: no incomplete todos found to summarize", ErrInvalidInput)
	}

	return s.run(ctx, metrics.ScopeAll, pending)
}

func (s *SummaryService) run(ctx context.Context, scope string, todos []model.Todo) (model.SummaryResult, error) {
	items := make([]summarizer.Item, len(todos))
	for i, t := range todos {
		items[i] = summarizer.Item{Title: t.Title, Description: t.Description}
	}

	summary, err := s.summarizer.Summarize(ctx, items)
	if err != nil {
		metrics.Summaries.WithLabelValues(scope, metrics.ResultFailure).Inc()
		slog.ErrorContext(ctx, "summarization failed", "scope", scope, "todos", len(todos), "error", err)
		return model.SummaryResult{}, err
	}

	blocks := make([]string, len(todos))
	for i, t := range todos {
		blocks[i] = FormatMessage(t, summary)
	}

	sent, err := s.notifier.Notify(ctx, strings.Join(blocks, "\n"))
	if err != nil {
		metrics.Summaries.WithLabelValues(scope, metrics.ResultFailure).Inc()
		slog.ErrorContext(ctx, "notification failed", "scope", scope, "error", err)
		return model.SummaryResult{}, err
	}

	metrics.Summaries.WithLabelValues(scope, metrics.ResultSuccess).Inc()
	metrics.SummarizedTodos.Add(float64(len(todos)))

	return model.SummaryResult{
		Success:     true,
		Summary:     summary,
		SentToSlack: sent,
	}, nil
}

// FormatMessage renders the chat block posted for one todo.
func FormatMessage(todo model.Todo, summary string) string {
	return fmt.Sprintf("*%s*\nSummary: %s\nCreated by: %s\nCreated at: %s\n---",
		todo.Title, summary, todo.OwnerName, formatCreatedAt(todo.CreatedAt))
}

func formatCreatedAt(createdAt string) string {
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return createdAt
	}
	return t.UTC().Format(messageTimeLayout)
}
