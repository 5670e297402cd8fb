// AngelaMos | 2026
// repository.go

package income

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atelierlabs/workshop-tracker/internal/core"
)

type Repository interface {
	Create(ctx context.Context, income *Income) error
	GetByID(ctx context.Context, id string) (*Income, error)
	Update(ctx context.Context, income *Income) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params ListIncomesParams) ([]Income, int, error)
	ListInWindow(
		ctx context.Context,
		userID string,
		from, to time.Time,
	) ([]Income, error)
	ExistsByClientID(ctx context.Context, clientID string) (bool, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, income *Income) error {
	query := `
		INSERT INTO incomes
			(id, user_id, name, payment, platform, guest_count,
			 class_type_id, client_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8,
		        COALESCE($9, NOW()))
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, income, query,
		income.ID,
		income.UserID,
		income.Name,
		income.Payment,
		income.Platform,
		income.GuestCount,
		income.ClassTypeID,
		income.ClientID,
		nullableTime(income.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create income: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*Income, error) {
	query := `
		SELECT id, user_id, name, payment, platform, guest_count,
		       class_type_id, client_id, created_at, updated_at
		FROM incomes
		WHERE id = $1`

	var income Income
	err := r.db.GetContext(ctx, &income, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get income: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get income: %w", err)
	}

	return &income, nil
}

func (r *repository) Update(ctx context.Context, income *Income) error {
	query := `
		UPDATE incomes
		SET name = $2, payment = $3, platform = $4, guest_count = $5,
		    class_type_id = $6, client_id = $7, created_at = $8,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &income.UpdatedAt, query,
		income.ID,
		income.Name,
		income.Payment,
		income.Platform,
		income.GuestCount,
		income.ClassTypeID,
		income.ClientID,
		income.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update income: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update income: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(
		ctx,
		`DELETE FROM incomes WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("delete income: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete income: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete income: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListIncomesParams,
) ([]Income, int, error) {
	params.Normalize()

	var conditions []string
	var args []any
	argIdx := 1

	if params.UserID != "" {
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", argIdx))
		args = append(args, params.UserID)
		argIdx++
	}

	if params.Year != 0 {
		from, to := windowBounds(params.Year, params.Month)
		conditions = append(conditions, fmt.Sprintf(
			"created_at >= $%d AND created_at < $%d", argIdx, argIdx+1))
		args = append(args, from, to)
		argIdx += 2
	}

	if params.ClassTypeID != "" {
		conditions = append(
			conditions,
			fmt.Sprintf("class_type_id = $%d", argIdx),
		)
		args = append(args, params.ClassTypeID)
		argIdx++
	}

	whereClause := "TRUE"
	if len(conditions) > 0 {
		whereClause = strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM incomes WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count incomes: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, name, payment, platform, guest_count,
		       class_type_id, client_id, created_at, updated_at
		FROM incomes
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var incomes []Income
	if err := r.db.SelectContext(ctx, &incomes, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list incomes: %w", err)
	}

	return incomes, total, nil
}

// ListInWindow returns every row in [from, to) for aggregation. A zero
// bound is open; an empty userID spans all users.
func (r *repository) ListInWindow(
	ctx context.Context,
	userID string,
	from, to time.Time,
) ([]Income, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if userID != "" {
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", argIdx))
		args = append(args, userID)
		argIdx++
	}

	if !from.IsZero() {
		conditions = append(
			conditions,
			fmt.Sprintf("created_at >= $%d", argIdx),
		)
		args = append(args, from)
		argIdx++
	}

	if !to.IsZero() {
		conditions = append(
			conditions,
			fmt.Sprintf("created_at < $%d", argIdx),
		)
		args = append(args, to)
		argIdx++
	}

	whereClause := "TRUE"
	if len(conditions) > 0 {
		whereClause = strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, name, payment, platform, guest_count,
		       class_type_id, client_id, created_at, updated_at
		FROM incomes
		WHERE %s
		ORDER BY created_at ASC`,
		whereClause)

	var incomes []Income
	if err := r.db.SelectContext(ctx, &incomes, query, args...); err != nil {
		return nil, fmt.Errorf("list incomes in window: %w", err)
	}

	return incomes, nil
}

func (r *repository) ExistsByClientID(
	ctx context.Context,
	clientID string,
) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM incomes WHERE client_id = $1)`,
		clientID,
	)
	if err != nil {
		return false, fmt.Errorf("check incomes for client: %w", err)
	}

	return exists, nil
}

// windowBounds maps a year (and optional month) to the half-open UTC
// interval covering it.
func windowBounds(year int, month time.Month) (time.Time, time.Time) {
	if month != 0 {
		from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		return from, from.AddDate(0, 1, 0)
	}

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(1, 0, 0)
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
