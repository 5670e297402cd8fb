// AngelaMos | 2026
// service_test.go

package client

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atelierlabs/workshop-tracker/internal/core"
)

// -------- test fakes --------

type fakeClientRepo struct {
	Repository

	client     *Client
	deletedIDs []string
}

func (f *fakeClientRepo) GetByID(
	ctx context.Context,
	id string,
) (*Client, error) {
	if f.client == nil {
		return nil, core.ErrNotFound
	}
	return f.client, nil
}

func (f *fakeClientRepo) Delete(ctx context.Context, id string) error {
	f.deletedIDs = append(f.deletedIDs, id)
	return nil
}

func (f *fakeClientRepo) Update(ctx context.Context, c *Client) error {
	f.client = c
	return nil
}

type fakeChecker struct {
	referenced bool
	err        error
	calls      int
}

func (f *fakeChecker) ExistsByClientID(
	ctx context.Context,
	clientID string,
) (bool, error) {
	f.calls++
	return f.referenced, f.err
}

func TestDeleteRejectsReferencedClient(t *testing.T) {
	repo := &fakeClientRepo{client: &Client{ID: "c1"}}
	incomes := &fakeChecker{referenced: true}
	expenses := &fakeChecker{}
	svc := NewService(repo, incomes, expenses)

	err := svc.Delete(context.Background(), "c1")

	var appErr *core.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "CLIENT_IN_USE", appErr.Code)
	require.Empty(t, repo.deletedIDs, "referenced clients must survive")
	require.Zero(t, expenses.calls,
		"checking stops at the first referencing table")
}

func TestDeleteUnreferencedClient(t *testing.T) {
	repo := &fakeClientRepo{client: &Client{ID: "c1"}}
	incomes := &fakeChecker{}
	expenses := &fakeChecker{}
	svc := NewService(repo, incomes, expenses)

	err := svc.Delete(context.Background(), "c1")

	require.NoError(t, err)
	require.Equal(t, []string{"c1"}, repo.deletedIDs)
	require.Equal(t, 1, incomes.calls)
	require.Equal(t, 1, expenses.calls)
}

func TestDeleteUnknownClient(t *testing.T) {
	repo := &fakeClientRepo{}
	checker := &fakeChecker{}
	svc := NewService(repo, checker)

	err := svc.Delete(context.Background(), "missing")

	require.ErrorIs(t, err, core.ErrNotFound)
	require.Zero(t, checker.calls)
}

func TestDeleteCheckerFailure(t *testing.T) {
	repo := &fakeClientRepo{client: &Client{ID: "c1"}}
	checker := &fakeChecker{err: errors.New("connection reset")}
	svc := NewService(repo, checker)

	err := svc.Delete(context.Background(), "c1")

	require.Error(t, err)
	require.Empty(t, repo.deletedIDs)
}

func TestUpdateAppliesPatch(t *testing.T) {
	repo := &fakeClientRepo{client: &Client{
		ID:       "c1",
		FullName: "Old Name",
		Email:    "old@example.com",
		IsActive: true,
	}}
	svc := NewService(repo)

	name := "New Name"
	inactive := false
	resp, err := svc.Update(context.Background(), "c1",
		UpdateClientRequest{FullName: &name, IsActive: &inactive})

	require.NoError(t, err)
	require.Equal(t, "New Name", resp.FullName)
	require.Equal(t, "old@example.com", resp.Email)
	require.False(t, resp.IsActive)
}
