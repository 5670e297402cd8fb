// AngelaMos | 2026
// repository.go

package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/atelierlabs/workshop-tracker/internal/core"
)

// UserRecord is the identity row joined with the profile fields the
// auth flow needs. Profile columns are coalesced so a user whose
// profile row is missing can still log in.
type UserRecord struct {
	ID           string `db:"id"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	FullName     string `db:"full_name"`
	Username     string `db:"username"`
	Role         string `db:"role"`
}

type Repository interface {
	GetUserByEmail(ctx context.Context, email string) (*UserRecord, error)
	GetUserByID(ctx context.Context, id string) (*UserRecord, error)
	CreateUserWithProfile(
		ctx context.Context,
		user *User,
		profile *Profile,
	) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	UpdateProfile(ctx context.Context, profile *Profile) error
	ListInstructorNames(ctx context.Context) (map[string]string, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const userRecordQuery = `
	SELECT u.id, u.email, u.password_hash,
	       COALESCE(p.full_name, '') AS full_name,
	       COALESCE(p.username, '') AS username,
	       COALESCE(p.role, 'user') AS role
	FROM users u
	LEFT JOIN profiles p ON p.id = u.id`

func (r *repository) GetUserByEmail(
	ctx context.Context,
	email string,
) (*UserRecord, error) {
	query := userRecordQuery + `
	WHERE u.email = $1 AND u.deleted_at IS NULL`

	var rec UserRecord
	err := r.db.GetContext(ctx, &rec, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &rec, nil
}

func (r *repository) GetUserByID(
	ctx context.Context,
	id string,
) (*UserRecord, error) {
	query := userRecordQuery + `
	WHERE u.id = $1 AND u.deleted_at IS NULL`

	var rec UserRecord
	err := r.db.GetContext(ctx, &rec, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &rec, nil
}

// CreateUserWithProfile inserts both rows in one transaction so a
// failed profile insert never strands a bare identity row.
func (r *repository) CreateUserWithProfile(
	ctx context.Context,
	user *User,
	profile *Profile,
) error {
	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		userQuery := `
			INSERT INTO users (id, email, password_hash)
			VALUES ($1, $2, $3)
			RETURNING created_at, updated_at`

		if err := tx.GetContext(ctx, user, userQuery,
			user.ID,
			user.Email,
			user.PasswordHash,
		); err != nil {
			return fmt.Errorf("insert user: %w", err)
		}

		profileQuery := `
			INSERT INTO profiles
				(id, email, full_name, username, phone_number, role)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING created_at, updated_at`

		if err := tx.GetContext(ctx, profile, profileQuery,
			profile.ID,
			profile.Email,
			profile.FullName,
			profile.Username,
			profile.PhoneNumber,
			profile.Role,
		); err != nil {
			return fmt.Errorf("insert profile: %w", err)
		}

		return nil
	})
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *repository) UpdatePassword(
	ctx context.Context,
	userID, passwordHash string,
) error {
	query := `
		UPDATE users
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, userID, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update password: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) GetProfile(
	ctx context.Context,
	userID string,
) (*Profile, error) {
	query := `
		SELECT id, email, full_name, username, avatar_url, phone_number,
		       role, created_at, updated_at
		FROM profiles
		WHERE id = $1`

	var p Profile
	err := r.db.GetContext(ctx, &p, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get profile: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	return &p, nil
}

func (r *repository) UpdateProfile(
	ctx context.Context,
	profile *Profile,
) error {
	query := `
		UPDATE profiles
		SET full_name = $2, username = $3, avatar_url = $4,
		    phone_number = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &profile.UpdatedAt, query,
		profile.ID,
		profile.FullName,
		profile.Username,
		profile.AvatarURL,
		profile.PhoneNumber,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update profile: %w", core.ErrNotFound)
	}
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("update profile: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("update profile: %w", err)
	}

	return nil
}

// ListInstructorNames maps every profile id to its display name, for
// labelling the instructor leaderboard.
func (r *repository) ListInstructorNames(
	ctx context.Context,
) (map[string]string, error) {
	rows := []struct {
		ID       string `db:"id"`
		FullName string `db:"full_name"`
	}{}

	query := `SELECT id, full_name FROM profiles`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list instructor names: %w", err)
	}

	names := make(map[string]string, len(rows))
	for _, row := range rows {
		names[row.ID] = row.FullName
	}

	return names, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
