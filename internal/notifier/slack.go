package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jaekwang-park/todo-summary/internal/metrics"
)

// ErrNotificationFailed is returned when a message could not be delivered.
var ErrNotificationFailed = errors.New("failed to send notification")

type Notifier interface {
	Notify(ctx context.Context, text string) (bool, error)
}

// SlackWebhook posts messages to a Slack incoming webhook.
type SlackWebhook struct {
	url        string
	httpClient *http.Client
}

func NewSlackWebhook(url string) *SlackWebhook {
	return &SlackWebhook{
		url:        url,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *SlackWebhook) Notify(ctx context.Context, text string) (bool, error) {
	if err := s.post(ctx, text); err != nil {
		metrics.Notifications.WithLabelValues(metrics.ResultFailure).Inc()
		return false, err
	}
	metrics.Notifications.WithLabelValues(metrics.ResultSuccess).Inc()
	return true, nil
}

func (s *SlackWebhook) post(ctx context.Context, text string) error {
	if s.url == "" {
		return fmt.Errorf("%w: webhook url is not configured", ErrNotificationFailed)
	}

	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: webhook returned status %d", ErrNotificationFailed, resp.StatusCode)
	}
	return nil
}

var _ Notifier = (*SlackWebhook)(nil)
