// AngelaMos | 2026
// service_test.go

package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/atelierlabs/workshop-tracker/internal/auth"
	"github.com/atelierlabs/workshop-tracker/internal/core"
)

// -------- test fakes --------

type fakeRepo struct {
	Repository

	profile    *Profile
	getErr     error
	getDelay   time.Duration
	updated    *Profile
	updateErr  error
	userRecord *UserRecord
}

func (f *fakeRepo) GetProfile(
	ctx context.Context,
	userID string,
) (*Profile, error) {
	if f.getDelay > 0 {
		select {
		case <-time.After(f.getDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.profile, nil
}

func (f *fakeRepo) UpdateProfile(ctx context.Context, p *Profile) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = p
	return nil
}

func (f *fakeRepo) GetUserByEmail(
	ctx context.Context,
	email string,
) (*UserRecord, error) {
	if f.userRecord == nil {
		return nil, core.ErrNotFound
	}
	return f.userRecord, nil
}

func testProfile() *Profile {
	return &Profile{
		ID:       "u1",
		Email:    "ana@atelierlabs.io",
		FullName: "Ana Moss",
		Username: "ana",
		Role:     RoleUser,
	}
}

func TestSessionReturnsProfile(t *testing.T) {
	svc := NewService(&fakeRepo{profile: testProfile()})

	resp, err := svc.Session(
		context.Background(), "u1", "ana@atelierlabs.io", "Ana Moss",
	)

	require.NoError(t, err)
	require.NotNil(t, resp.Profile)
	require.Equal(t, "ana", resp.Profile.Username)
	require.False(t, resp.ProfileMissing)
	require.False(t, resp.ProfileFallback)
}

func TestSessionProfileMissing(t *testing.T) {
	svc := NewService(&fakeRepo{getErr: core.ErrNotFound})

	resp, err := svc.Session(
		context.Background(), "u1", "ana@atelierlabs.io", "Ana Moss",
	)

	require.NoError(t, err)
	require.Nil(t, resp.Profile)
	require.True(t, resp.ProfileMissing)
	require.False(t, resp.ProfileFallback)
}

func TestSessionFallsBackOnTimeout(t *testing.T) {
	svc := NewService(&fakeRepo{
		profile:  testProfile(),
		getDelay: 500 * time.Millisecond,
	})
	svc.fetchTimeout = 20 * time.Millisecond

	start := time.Now()
	resp, err := svc.Session(
		context.Background(), "u1", "ana@atelierlabs.io", "Ana Moss",
	)
	elapsed := time.Since(start)

	require.NoError(t, err)
	require.Less(t, elapsed, 300*time.Millisecond,
		"session must not wait for the slow fetch")

	require.True(t, resp.ProfileFallback)
	require.NotNil(t, resp.Profile)
	require.Equal(t, "u1", resp.Profile.ID)
	require.Equal(t, "Ana Moss", resp.Profile.FullName)
	require.Equal(t, "ana", resp.Profile.Username)
	require.Equal(t, RoleUser, resp.Profile.Role)
}

func TestSessionFallsBackOnRepoError(t *testing.T) {
	svc := NewService(&fakeRepo{getErr: errors.New("connection refused")})

	resp, err := svc.Session(
		context.Background(), "u1", "ana@atelierlabs.io", "Ana Moss",
	)

	require.NoError(t, err)
	require.True(t, resp.ProfileFallback)
	require.NotNil(t, resp.Profile)
}

func TestSessionInflightGuard(t *testing.T) {
	repo := &fakeRepo{
		profile:  testProfile(),
		getDelay: 100 * time.Millisecond,
	}
	svc := NewService(repo)

	started := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		close(started)
		_, err := svc.Session(
			context.Background(), "u1", "ana@atelierlabs.io", "Ana Moss",
		)
		require.NoError(t, err)
	}()

	<-started
	time.Sleep(10 * time.Millisecond)

	_, err := svc.Session(
		context.Background(), "u1", "ana@atelierlabs.io", "Ana Moss",
	)
	require.ErrorIs(t, err, ErrProfileLoading)

	<-done

	// The guard clears once the first fetch finishes.
	resp, err := svc.Session(
		context.Background(), "u1", "ana@atelierlabs.io", "Ana Moss",
	)
	require.NoError(t, err)
	require.NotNil(t, resp.Profile)
}

func TestUpdateProfileAppliesPatch(t *testing.T) {
	repo := &fakeRepo{profile: testProfile()}
	svc := NewService(repo)

	name := "Ana M. Moss"
	phone := "+31612345678"
	resp, err := svc.UpdateProfile(context.Background(), "u1",
		UpdateProfileRequest{FullName: &name, PhoneNumber: &phone})

	require.NoError(t, err)
	require.Equal(t, "Ana M. Moss", resp.FullName)
	require.Equal(t, "ana", resp.Username, "unpatched fields survive")
	require.NotNil(t, repo.updated)
	require.Equal(t, &phone, repo.updated.PhoneNumber)
}

func TestFallbackUsernameMatchesSignupDefault(t *testing.T) {
	svc := NewService(&fakeRepo{getErr: errors.New("connection refused")})

	resp, err := svc.Session(
		context.Background(), "u1", "Ana.Moss@atelierlabs.io", "Ana Moss",
	)

	require.NoError(t, err)
	require.Equal(t, auth.UsernameFromEmail("Ana.Moss@atelierlabs.io"),
		resp.Profile.Username)
	require.Equal(t, "ana.moss", resp.Profile.Username)
}
