// AngelaMos | 2026
// repository.go

package expense

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
	Create(ctx context.Context, expense *Expense) error
	GetByID(ctx context.Context, id string) (*Expense, error)
	Update(ctx context.Context, expense *Expense) error
	Delete(ctx context.Context, id string) error
	List(
		ctx context.Context,
		params ListExpensesParams,
	) ([]Expense, int, error)
	ListInWindow(
		ctx context.Context,
		userID string,
		from, to time.Time,
	) ([]Expense, error)
	ExistsByClientID(ctx context.Context, clientID string) (bool, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, expense *Expense) error {
	query := `
		INSERT INTO expenses
			(id, user_id, name, cost, category, who_paid, month,
			 client_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8,
		        COALESCE($9, NOW()))
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, expense, query,
		expense.ID,
		expense.UserID,
		expense.Name,
		expense.Cost,
		expense.Category,
		expense.WhoPaid,
		expense.Month,
		expense.ClientID,
		nullableTime(expense.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create expense: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*Expense, error) {
	query := `
		SELECT id, user_id, name, cost, category, who_paid, month,
		       client_id, created_at, updated_at
		FROM expenses
		WHERE id = $1`

	var expense Expense
	err := r.db.GetContext(ctx, &expense, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get expense: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get expense: %w", err)
	}

	return &expense, nil
}

func (r *repository) Update(ctx context.Context, expense *Expense) error {
	query := `
		UPDATE expenses
		SET name = $2, cost = $3, category = $4, who_paid = $5,
		    month = $6, client_id = $7, created_at = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &expense.UpdatedAt, query,
		expense.ID,
		expense.Name,
		expense.Cost,
		expense.Category,
		expense.WhoPaid,
		expense.Month,
		expense.ClientID,
		expense.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update expense: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(
		ctx,
		`DELETE FROM expenses WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete expense: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListExpensesParams,
) ([]Expense, int, error) {
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

	if params.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argIdx))
		args = append(args, params.Category)
		argIdx++
	}

	whereClause := "TRUE"
	if len(conditions) > 0 {
		whereClause = strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM expenses WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count expenses: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, name, cost, category, who_paid, month,
		       client_id, created_at, updated_at
		FROM expenses
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var expenses []Expense
	if err := r.db.SelectContext(ctx, &expenses, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list expenses: %w", err)
	}

	return expenses, total, nil
}

func (r *repository) ListInWindow(
	ctx context.Context,
	userID string,
	from, to time.Time,
) ([]Expense, error) {
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
		SELECT id, user_id, name, cost, category, who_paid, month,
		       client_id, created_at, updated_at
		FROM expenses
		WHERE %s
		ORDER BY created_at ASC`,
		whereClause)

	var expenses []Expense
	if err := r.db.SelectContext(ctx, &expenses, query, args...); err != nil {
		return nil, fmt.Errorf("list expenses in window: %w", err)
	}

	return expenses, nil
}

func (r *repository) ExistsByClientID(
	ctx context.Context,
	clientID string,
) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM expenses WHERE client_id = $1)`,
		clientID,
	)
	if err != nil {
		return false, fmt.Errorf("check expenses for client: %w", err)
	}

	return exists, nil
}

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
