// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/atelierlabs/workshop-tracker/internal/core"
)

// -------- test fakes --------

type fakeUserProvider struct {
	UserProvider

	createCalls int
	emailCalls  int
}

func (f *fakeUserProvider) CreateWithProfile(
	ctx context.Context,
	params CreateUserParams,
) (*UserInfo, error) {
	f.createCalls++
	return nil, core.ErrDuplicateKey
}

func (f *fakeUserProvider) GetByEmail(
	ctx context.Context,
	email string,
) (*UserInfo, error) {
	f.emailCalls++
	return nil, core.ErrNotFound
}

type fakeTokenRepo struct {
	Repository

	token         *RefreshToken
	findErr       error
	revokedFamily string
	revokedIDs    []string
}

func (f *fakeTokenRepo) FindByHash(
	ctx context.Context,
	tokenHash string,
) (*RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.token, nil
}

func (f *fakeTokenRepo) FindByID(
	ctx context.Context,
	id string,
) (*RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.token, nil
}

func (f *fakeTokenRepo) RevokeByFamilyID(
	ctx context.Context,
	familyID string,
) error {
	f.revokedFamily = familyID
	return nil
}

func (f *fakeTokenRepo) RevokeByID(ctx context.Context, id string) error {
	f.revokedIDs = append(f.revokedIDs, id)
	return nil
}

func newTestService(
	repo Repository,
	provider UserProvider,
) *Service {
	return NewService(
		repo,
		nil,
		provider,
		[]string{"atelierlabs.io", "atelierlabs.studio"},
		15*time.Minute,
	)
}

func TestDomainAllowed(t *testing.T) {
	svc := newTestService(nil, nil)

	tests := []struct {
		email string
		want  bool
	}{
		{"ana@atelierlabs.io", true},
		{"ana@ATELIERLABS.IO", true},
		{"ana@atelierlabs.studio", true},
		{"ana@gmail.com", false},
		{"plainaddress", false},
		{"trick@atelierlabs.io@evil.com", false},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, svc.DomainAllowed(tt.email), tt.email)
	}
}

func TestRegisterRejectsDomainBeforeProvisioning(t *testing.T) {
	provider := &fakeUserProvider{}
	svc := newTestService(&fakeTokenRepo{}, provider)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "outsider@gmail.com",
		Password: "correct-horse-battery",
		FullName: "Out Sider",
	}, "ua", "127.0.0.1")

	require.ErrorIs(t, err, ErrDomainNotAllowed)
	require.Zero(t, provider.createCalls,
		"no identity call may happen for a rejected domain")
}

func TestRegisterMapsDuplicateEmail(t *testing.T) {
	provider := &fakeUserProvider{}
	svc := newTestService(&fakeTokenRepo{}, provider)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "ana@atelierlabs.io",
		Password: "correct-horse-battery",
		FullName: "Ana Moss",
	}, "ua", "127.0.0.1")

	require.ErrorIs(t, err, ErrEmailExists)
	require.Equal(t, 1, provider.createCalls)
}

func TestRefreshReuseRevokesFamily(t *testing.T) {
	repo := &fakeTokenRepo{
		token: &RefreshToken{
			ID:        "tok-1",
			UserID:    "u1",
			FamilyID:  "fam-1",
			IsUsed:    true,
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}
	svc := newTestService(repo, &fakeUserProvider{})

	_, err := svc.Refresh(
		context.Background(), "some-refresh-token", "ua", "127.0.0.1",
	)

	require.ErrorIs(t, err, ErrTokenReuse)
	require.Equal(t, "fam-1", repo.revokedFamily,
		"every token in the family must be revoked on reuse")
}

func TestRefreshRevokedToken(t *testing.T) {
	revokedAt := time.Now().Add(-time.Minute)
	repo := &fakeTokenRepo{
		token: &RefreshToken{
			ID:        "tok-1",
			UserID:    "u1",
			FamilyID:  "fam-1",
			RevokedAt: &revokedAt,
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}
	svc := newTestService(repo, &fakeUserProvider{})

	_, err := svc.Refresh(
		context.Background(), "some-refresh-token", "ua", "127.0.0.1",
	)

	require.ErrorIs(t, err, core.ErrTokenRevoked)
}

func TestRefreshExpiredToken(t *testing.T) {
	repo := &fakeTokenRepo{
		token: &RefreshToken{
			ID:        "tok-1",
			UserID:    "u1",
			FamilyID:  "fam-1",
			ExpiresAt: time.Now().Add(-time.Hour),
		},
	}
	svc := newTestService(repo, &fakeUserProvider{})

	_, err := svc.Refresh(
		context.Background(), "some-refresh-token", "ua", "127.0.0.1",
	)

	require.ErrorIs(t, err, core.ErrTokenExpired)
}

func TestRefreshUnknownToken(t *testing.T) {
	repo := &fakeTokenRepo{findErr: core.ErrNotFound}
	svc := newTestService(repo, &fakeUserProvider{})

	_, err := svc.Refresh(
		context.Background(), "bogus", "ua", "127.0.0.1",
	)

	require.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestLogoutOwnershipCheck(t *testing.T) {
	repo := &fakeTokenRepo{
		token: &RefreshToken{ID: "tok-1", UserID: "owner"},
	}
	svc := newTestService(repo, &fakeUserProvider{})

	err := svc.Logout(context.Background(), "some-token", "intruder")
	require.ErrorIs(t, err, core.ErrForbidden)
	require.Empty(t, repo.revokedIDs)

	err = svc.Logout(context.Background(), "some-token", "owner")
	require.NoError(t, err)
	require.Equal(t, []string{"tok-1"}, repo.revokedIDs)
}

func TestRevokeSessionOwnershipCheck(t *testing.T) {
	repo := &fakeTokenRepo{
		token: &RefreshToken{ID: "tok-1", UserID: "owner"},
	}
	svc := newTestService(repo, &fakeUserProvider{})

	err := svc.RevokeSession(context.Background(), "intruder", "tok-1")
	require.ErrorIs(t, err, core.ErrForbidden)
	require.Empty(t, repo.revokedIDs)
}

func TestRequestPasswordResetSilentOnUnknownEmail(t *testing.T) {
	provider := &fakeUserProvider{}
	svc := newTestService(&fakeTokenRepo{}, provider)

	err := svc.RequestPasswordReset(
		context.Background(), "nobody@atelierlabs.io",
	)

	require.NoError(t, err)
	require.Equal(t, 1, provider.emailCalls)
}

func TestUsernameDefaultsFromEmail(t *testing.T) {
	require.Equal(t, "ana.moss", UsernameFromEmail("Ana.Moss@atelierlabs.io"))
	require.Equal(t, "bare", UsernameFromEmail("bare"))
}
