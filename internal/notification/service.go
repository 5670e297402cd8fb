// AngelaMos | 2026
// service.go

package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/atelierlabs/workshop-tracker/internal/config"
)

const historyLimit = 50

type Service struct {
	repo       Repository
	cfg        config.NotifyConfig
	configured bool
	httpClient *http.Client
}

func NewService(repo Repository, cfg *config.Config) *Service {
	return &Service{
		repo:       repo,
		cfg:        cfg.Notify,
		configured: cfg.NotifyConfigured(),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *Service) History(ctx context.Context) ([]LogEntry, error) {
	return s.repo.ListRecent(ctx, historyLimit)
}

func (s *Service) Configured() bool {
	return s.configured
}

// SendTest fires one message at the provider and records the attempt,
// success or not. The log row is the source of truth for history.
func (s *Service) SendTest(
	ctx context.Context,
	recipient string,
) (*LogEntry, error) {
	entry := &LogEntry{
		ID:        uuid.New().String(),
		Recipient: recipient,
		Subject:   "Workshop Tracker test notification",
		Kind:      "test",
		Status:    StatusSent,
	}

	if err := s.deliver(ctx, recipient, entry.Subject); err != nil {
		slog.Warn("test notification failed",
			"recipient", recipient,
			"error", err,
		)
		entry.Status = StatusFailed
		msg := err.Error()
		entry.Error = &msg
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

func (s *Service) deliver(
	ctx context.Context,
	recipient, subject string,
) error {
	payload, err := json.Marshal(map[string]any{
		"from":    s.cfg.FromAddress,
		"to":      []string{recipient},
		"subject": subject,
		"text":    "This is a test notification from Workshop Tracker.",
	})
	if err != nil {
		return fmt.Errorf("encode notification payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.cfg.ProviderURL,
		bytes.NewReader(payload),
	)
	if err != nil {
		return fmt.Errorf("build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf(
			"notification provider returned %d: %s",
			resp.StatusCode,
			string(body),
		)
	}

	return nil
}
