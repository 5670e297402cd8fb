// AngelaMos | 2026
// repository_test.go

package income

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
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

var incomeColumns = []string{
	"id", "user_id", "name", "payment", "platform", "guest_count",
	"class_type_id", "client_id", "created_at", "updated_at",
}

func TestRepositoryGetByID(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM incomes\s+WHERE id = \$1`).
		WithArgs("i1").
		WillReturnRows(sqlmock.NewRows(incomeColumns).
			AddRow("i1", "u1", "Raku firing", 120.0, "Direct", 6,
				nil, nil, now, now))

	income, err := repo.GetByID(context.Background(), "i1")

	require.NoError(t, err)
	require.Equal(t, "Raku firing", income.Name)
	require.Equal(t, 120.0, income.Payment)
	require.Equal(t, 6, income.GuestCount)
	require.Nil(t, income.ClassTypeID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM incomes\s+WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(incomeColumns))

	_, err := repo.GetByID(context.Background(), "missing")

	require.ErrorIs(t, err, core.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryDeleteNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`DELETE FROM incomes WHERE id = \$1`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "missing")

	require.ErrorIs(t, err, core.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryListFilters(t *testing.T) {
	repo, mock := newMockRepo(t)
	from := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM incomes WHERE user_id = \$1 AND created_at >= \$2 AND created_at < \$3`).
		WithArgs("u1", from, to).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery(`SELECT .+ FROM incomes\s+WHERE user_id = \$1 AND created_at >= \$2 AND created_at < \$3`).
		WithArgs("u1", from, to, 50, 0).
		WillReturnRows(sqlmock.NewRows(incomeColumns).
			AddRow("i1", "u1", "Wheel intro", 80.0, "Airbnb", 4,
				nil, nil, from.Add(24*time.Hour), from))

	incomes, total, err := repo.List(context.Background(), ListIncomesParams{
		UserID: "u1",
		Year:   2026,
		Month:  time.March,
	})

	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, incomes, 1)
	require.Equal(t, "Wheel intro", incomes[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryListInWindowOpenBounds(t *testing.T) {
	repo, mock := newMockRepo(t)

	// No user filter and zero bounds degrade to WHERE TRUE.
	mock.ExpectQuery(`SELECT .+ FROM incomes\s+WHERE TRUE\s+ORDER BY created_at ASC`).
		WillReturnRows(sqlmock.NewRows(incomeColumns))

	incomes, err := repo.ListInWindow(
		context.Background(), "", time.Time{}, time.Time{},
	)

	require.NoError(t, err)
	require.Empty(t, incomes)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryExistsByClientID(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM incomes WHERE client_id = \$1\)`).
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByClientID(context.Background(), "c1")

	require.NoError(t, err)
	require.True(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}
