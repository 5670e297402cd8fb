// AngelaMos | 2026
// service_test.go

package income

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atelierlabs/workshop-tracker/internal/core"
	"github.com/atelierlabs/workshop-tracker/internal/middleware"
)

// -------- test fakes --------

type fakeIncomeRepo struct {
	Repository

	row        *Income
	listParams ListIncomesParams
	deletedIDs []string
}

func (f *fakeIncomeRepo) GetByID(
	ctx context.Context,
	id string,
) (*Income, error) {
	if f.row == nil {
		return nil, core.ErrNotFound
	}
	return f.row, nil
}

func (f *fakeIncomeRepo) Delete(ctx context.Context, id string) error {
	f.deletedIDs = append(f.deletedIDs, id)
	return nil
}

func (f *fakeIncomeRepo) List(
	ctx context.Context,
	params ListIncomesParams,
) ([]Income, int, error) {
	f.listParams = params
	return []Income{}, 0, nil
}

func TestGetRejectsForeignRow(t *testing.T) {
	repo := &fakeIncomeRepo{row: &Income{ID: "i1", UserID: "owner"}}
	svc := NewService(repo)

	_, err := svc.Get(
		context.Background(), "intruder", middleware.RoleUser, "i1",
	)
	require.ErrorIs(t, err, core.ErrForbidden)

	_, err = svc.Get(
		context.Background(), "owner", middleware.RoleUser, "i1",
	)
	require.NoError(t, err)
}

func TestAdminBypassesOwnership(t *testing.T) {
	repo := &fakeIncomeRepo{row: &Income{ID: "i1", UserID: "owner"}}
	svc := NewService(repo)

	_, err := svc.Get(
		context.Background(), "someone-else", middleware.RoleAdmin, "i1",
	)
	require.NoError(t, err)

	err = svc.Delete(
		context.Background(), "someone-else", middleware.RoleAdmin, "i1",
	)
	require.NoError(t, err)
	require.Equal(t, []string{"i1"}, repo.deletedIDs)
}

func TestListScopesNonAdminToOwnRows(t *testing.T) {
	repo := &fakeIncomeRepo{}
	svc := NewService(repo)

	_, _, err := svc.List(
		context.Background(), "u1", middleware.RoleUser,
		ListIncomesParams{UserID: "someone-else"},
	)

	require.NoError(t, err)
	require.Equal(t, "u1", repo.listParams.UserID,
		"the requested filter must be overridden for non-admins")
}

func TestListKeepsAdminFilter(t *testing.T) {
	repo := &fakeIncomeRepo{}
	svc := NewService(repo)

	_, _, err := svc.List(
		context.Background(), "admin-1", middleware.RoleAdmin,
		ListIncomesParams{UserID: "u7"},
	)

	require.NoError(t, err)
	require.Equal(t, "u7", repo.listParams.UserID)
}
