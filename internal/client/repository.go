// AngelaMos | 2026
// repository.go

package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/atelierlabs/workshop-tracker/internal/core"
)

type Repository interface {
	Create(ctx context.Context, client *Client) error
	GetByID(ctx context.Context, id string) (*Client, error)
	Update(ctx context.Context, client *Client) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params ListClientsParams) ([]Client, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, client *Client) error {
	query := `
		INSERT INTO clients
			(id, full_name, email, phone, company, address, notes,
			 is_active, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, client, query,
		client.ID,
		client.FullName,
		client.Email,
		client.Phone,
		client.Company,
		client.Address,
		client.Notes,
		client.IsActive,
		client.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*Client, error) {
	query := `
		SELECT c.id, c.full_name, c.email, c.phone, c.company, c.address,
		       c.notes, c.is_active, c.created_by, c.created_at, c.updated_at,
		       COALESCE(i.total_spent, 0) AS total_spent,
		       COALESCE(i.total_sessions, 0) AS total_sessions
		FROM clients c
		LEFT JOIN (
			SELECT client_id,
			       SUM(payment) AS total_spent,
			       COUNT(*) AS total_sessions
			FROM incomes
			WHERE client_id IS NOT NULL
			GROUP BY client_id
		) i ON i.client_id = c.id
		WHERE c.id = $1`

	var client Client
	err := r.db.GetContext(ctx, &client, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get client: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get client: %w", err)
	}

	return &client, nil
}

func (r *repository) Update(ctx context.Context, client *Client) error {
	query := `
		UPDATE clients
		SET full_name = $2, email = $3, phone = $4, company = $5,
		    address = $6, notes = $7, is_active = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &client.UpdatedAt, query,
		client.ID,
		client.FullName,
		client.Email,
		client.Phone,
		client.Company,
		client.Address,
		client.Notes,
		client.IsActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update client: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(
		ctx,
		`DELETE FROM clients WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete client: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListClientsParams,
) ([]Client, int, error) {
	params.Normalize()

	var conditions []string
	var args []any
	argIdx := 1

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(c.full_name ILIKE $%d OR c.email ILIKE $%d OR c.company ILIKE $%d)",
			argIdx, argIdx, argIdx))
		args = append(args, "%"+escapeLike(params.Search)+"%")
		argIdx++
	}

	if params.Active != nil {
		conditions = append(
			conditions,
			fmt.Sprintf("c.is_active = $%d", argIdx),
		)
		args = append(args, *params.Active)
		argIdx++
	}

	if params.CreatedBy != "" {
		conditions = append(
			conditions,
			fmt.Sprintf("c.created_by = $%d", argIdx),
		)
		args = append(args, params.CreatedBy)
		argIdx++
	}

	whereClause := "TRUE"
	if len(conditions) > 0 {
		whereClause = strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM clients c WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count clients: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT c.id, c.full_name, c.email, c.phone, c.company, c.address,
		       c.notes, c.is_active, c.created_by, c.created_at, c.updated_at,
		       COALESCE(i.total_spent, 0) AS total_spent,
		       COALESCE(i.total_sessions, 0) AS total_sessions
		FROM clients c
		LEFT JOIN (
			SELECT client_id,
			       SUM(payment) AS total_spent,
			       COUNT(*) AS total_sessions
			FROM incomes
			WHERE client_id IS NOT NULL
			GROUP BY client_id
		) i ON i.client_id = c.id
		WHERE %s
		ORDER BY c.created_at DESC
		LIMIT $%d OFFSET $%d`,
		whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var clients []Client
	if err := r.db.SelectContext(ctx, &clients, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list clients: %w", err)
	}

	return clients, total, nil
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
