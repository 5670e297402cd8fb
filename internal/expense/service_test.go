// AngelaMos | 2026
// service_test.go

package expense

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/atelierlabs/workshop-tracker/internal/middleware"
)

// -------- test fakes --------

type fakeExpenseRepo struct {
	Repository

	created    *Expense
	listParams ListExpensesParams
}

func (f *fakeExpenseRepo) Create(ctx context.Context, e *Expense) error {
	f.created = e
	return nil
}

func (f *fakeExpenseRepo) List(
	ctx context.Context,
	params ListExpensesParams,
) ([]Expense, int, error) {
	f.listParams = params
	return []Expense{}, 0, nil
}

func TestCreateDefaultsMonthFromBackdate(t *testing.T) {
	repo := &fakeExpenseRepo{}
	svc := NewService(repo)

	backdated := time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)
	resp, err := svc.Create(context.Background(), "u1",
		CreateExpenseRequest{
			Name:      "Clay order",
			Cost:      220,
			CreatedAt: &backdated,
		})

	require.NoError(t, err)
	require.Equal(t, "2026-02", resp.Month)
	require.Equal(t, "2026-02", repo.created.Month)
}

func TestCreateDefaultsMonthFromNow(t *testing.T) {
	repo := &fakeExpenseRepo{}
	svc := NewService(repo)

	resp, err := svc.Create(context.Background(), "u1",
		CreateExpenseRequest{Name: "Glaze", Cost: 40})

	require.NoError(t, err)
	require.Equal(t, time.Now().Format("2006-01"), resp.Month)
}

func TestCreateKeepsExplicitMonth(t *testing.T) {
	repo := &fakeExpenseRepo{}
	svc := NewService(repo)

	resp, err := svc.Create(context.Background(), "u1",
		CreateExpenseRequest{Name: "Kiln repair", Cost: 500, Month: "2025-12"})

	require.NoError(t, err)
	require.Equal(t, "2025-12", resp.Month)
}

func TestListScopesNonAdminToOwnRows(t *testing.T) {
	repo := &fakeExpenseRepo{}
	svc := NewService(repo)

	_, _, err := svc.List(
		context.Background(), "u1", middleware.RoleUser,
		ListExpensesParams{UserID: "someone-else"},
	)

	require.NoError(t, err)
	require.Equal(t, "u1", repo.listParams.UserID)
}
