// AngelaMos | 2026
// repository.go

package workshop

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/atelierlabs/workshop-tracker/internal/core"
)

// pg error code for a relation that does not exist. The workshops table
// is optional; deployments without it behave as if it were empty.
const undefinedTableCode = "42P01"

type Repository interface {
	Create(ctx context.Context, workshop *Workshop) error
	GetByID(ctx context.Context, id string) (*Workshop, error)
	Update(ctx context.Context, workshop *Workshop) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Workshop, error)
	ListRecent(ctx context.Context, limit int) ([]Workshop, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, workshop *Workshop) error {
	query := `
		INSERT INTO workshops
			(id, name, capacity, attendance, date, instructor_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, workshop, query,
		workshop.ID,
		workshop.Name,
		workshop.Capacity,
		workshop.Attendance,
		workshop.Date,
		workshop.InstructorID,
	)
	if err != nil {
		return fmt.Errorf("create workshop: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*Workshop, error) {
	query := `
		SELECT id, name, capacity, attendance, date, instructor_id,
		       created_at, updated_at
		FROM workshops
		WHERE id = $1`

	var ws Workshop
	err := r.db.GetContext(ctx, &ws, query, id)
	if errors.Is(err, sql.ErrNoRows) || isUndefinedTable(err) {
		return nil, fmt.Errorf("get workshop: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get workshop: %w", err)
	}

	return &ws, nil
}

func (r *repository) Update(ctx context.Context, workshop *Workshop) error {
	query := `
		UPDATE workshops
		SET name = $2, capacity = $3, attendance = $4, date = $5,
		    instructor_id = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &workshop.UpdatedAt, query,
		workshop.ID,
		workshop.Name,
		workshop.Capacity,
		workshop.Attendance,
		workshop.Date,
		workshop.InstructorID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update workshop: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update workshop: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(
		ctx,
		`DELETE FROM workshops WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("delete workshop: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete workshop: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete workshop: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(ctx context.Context) ([]Workshop, error) {
	query := `
		SELECT id, name, capacity, attendance, date, instructor_id,
		       created_at, updated_at
		FROM workshops
		ORDER BY date DESC`

	var workshops []Workshop
	err := r.db.SelectContext(ctx, &workshops, query)
	if isUndefinedTable(err) {
		return []Workshop{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list workshops: %w", err)
	}

	return workshops, nil
}

// ListRecent returns the most recently held workshops, newest first.
func (r *repository) ListRecent(
	ctx context.Context,
	limit int,
) ([]Workshop, error) {
	query := `
		SELECT id, name, capacity, attendance, date, instructor_id,
		       created_at, updated_at
		FROM workshops
		ORDER BY date DESC
		LIMIT $1`

	var workshops []Workshop
	err := r.db.SelectContext(ctx, &workshops, query, limit)
	if isUndefinedTable(err) {
		return []Workshop{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list recent workshops: %w", err)
	}

	return workshops, nil
}

func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == undefinedTableCode
	}
	return false
}
