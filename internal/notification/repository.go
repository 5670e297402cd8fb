// AngelaMos | 2026
// repository.go

package notification

import (
	"context"
	"fmt"

	"github.com/atelierlabs/workshop-tracker/internal/core"
)

type Repository interface {
	Create(ctx context.Context, entry *LogEntry) error
	ListRecent(ctx context.Context, limit int) ([]LogEntry, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, entry *LogEntry) error {
	query := `
		INSERT INTO notification_log
			(id, recipient, subject, kind, status, error)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &entry.CreatedAt, query,
		entry.ID,
		entry.Recipient,
		entry.Subject,
		entry.Kind,
		entry.Status,
		entry.Error,
	)
	if err != nil {
		return fmt.Errorf("create notification log entry: %w", err)
	}

	return nil
}

func (r *repository) ListRecent(
	ctx context.Context,
	limit int,
) ([]LogEntry, error) {
	query := `
		SELECT id, recipient, subject, kind, status, error, created_at
		FROM notification_log
		ORDER BY created_at DESC
		LIMIT $1`

	var entries []LogEntry
	if err := r.db.SelectContext(ctx, &entries, query, limit); err != nil {
		return nil, fmt.Errorf("list notification log: %w", err)
	}

	return entries, nil
}
