// AngelaMos | 2026
// repository_test.go

package profile

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/atelierlabs/workshop-tracker/internal/core"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(
		sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp),
	)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestProfileRoundTrip(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM profiles\s+WHERE id = \$1`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "email", "full_name", "username", "avatar_url",
			"phone_number", "role", "created_at", "updated_at",
		}).AddRow("u1", "ana@atelierlabs.io", "Ana Moss", "ana",
			nil, nil, "user", now, now))

	p, err := repo.GetProfile(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, "Ana Moss", p.FullName)
	require.Nil(t, p.AvatarURL)

	p.FullName = "Ana M. Moss"
	avatar := "https://cdn.test/ana.png"
	p.AvatarURL = &avatar

	mock.ExpectQuery(`UPDATE profiles\s+SET full_name = \$2`).
		WithArgs("u1", "Ana M. Moss", "ana", &avatar, (*string)(nil)).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).
			AddRow(now.Add(time.Minute)))

	require.NoError(t, repo.UpdateProfile(context.Background(), p))
	require.True(t, p.UpdatedAt.After(now))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProfileNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM profiles\s+WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetProfile(context.Background(), "missing")

	require.ErrorIs(t, err, core.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProfileUsernameTaken(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`UPDATE profiles\s+SET full_name = \$2`).
		WillReturnError(&pgconn.PgError{
			Code:           "23505",
			ConstraintName: "profiles_username_idx",
		})

	err := repo.UpdateProfile(context.Background(), &Profile{
		ID:       "u1",
		Username: "taken",
	})

	require.ErrorIs(t, err, core.ErrDuplicateKey)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByEmailCoalescesMissingProfile(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT u\.id, u\.email, u\.password_hash`).
		WithArgs("ana@atelierlabs.io").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "email", "password_hash", "full_name", "username", "role",
		}).AddRow("u1", "ana@atelierlabs.io", "$argon2id$hash",
			"", "", "user"))

	rec, err := repo.GetUserByEmail(
		context.Background(), "ana@atelierlabs.io",
	)

	require.NoError(t, err)
	require.Equal(t, "user", rec.Role)
	require.Empty(t, rec.FullName,
		"a user without a profile row still resolves")
	require.NoError(t, mock.ExpectationsWereMet())
}
