// AngelaMos | 2026
// service.go

package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/atelierlabs/workshop-tracker/internal/auth"
	"github.com/atelierlabs/workshop-tracker/internal/core"
)

// ErrProfileLoading signals that another request is already resolving
// this user's profile; callers answer 202 instead of issuing a
// duplicate query.
var ErrProfileLoading = errors.New("profile fetch already in progress")

const defaultFetchTimeout = 5 * time.Second

type Service struct {
	repo         Repository
	fetchTimeout time.Duration
	inflight     sync.Map
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:         repo,
		fetchTimeout: defaultFetchTimeout,
	}
}

// Session resolves the caller's profile under a hard timeout. It always
// returns a renderable session object: the real row, an explicit
// profile-missing marker, or a synthesized placeholder when the fetch
// times out or fails. Only one fetch per user runs at a time.
func (s *Service) Session(
	ctx context.Context,
	userID, email, fullName string,
) (*SessionResponse, error) {
	if _, loaded := s.inflight.LoadOrStore(userID, struct{}{}); loaded {
		return nil, ErrProfileLoading
	}
	defer s.inflight.Delete(userID)

	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	resp := &SessionResponse{
		User: SessionUser{ID: userID, Email: email},
	}

	p, err := s.repo.GetProfile(fetchCtx, userID)
	switch {
	case err == nil:
		resp.Profile = toProfileResponse(p)
	case errors.Is(err, core.ErrNotFound):
		resp.ProfileMissing = true
	default:
		slog.Warn("profile fetch failed, serving fallback",
			"user_id", userID,
			"error", err,
		)
		resp.Profile = fallbackProfile(userID, email, fullName)
		resp.ProfileFallback = true
	}

	return resp, nil
}

// fallbackProfile synthesizes a minimal profile from token metadata so
// the client can render something while the real row is unreachable.
func fallbackProfile(userID, email, fullName string) *ProfileResponse {
	return &ProfileResponse{
		ID:       userID,
		Email:    email,
		FullName: fullName,
		Username: auth.UsernameFromEmail(email),
		Role:     RoleUser,
	}
}

func (s *Service) GetProfile(
	ctx context.Context,
	userID string,
) (*ProfileResponse, error) {
	p, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	return toProfileResponse(p), nil
}

func (s *Service) UpdateProfile(
	ctx context.Context,
	userID string,
	req UpdateProfileRequest,
) (*ProfileResponse, error) {
	p, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		p.FullName = *req.FullName
	}
	if req.Username != nil {
		p.Username = *req.Username
	}
	if req.AvatarURL != nil {
		p.AvatarURL = req.AvatarURL
	}
	if req.PhoneNumber != nil {
		p.PhoneNumber = req.PhoneNumber
	}

	if err := s.repo.UpdateProfile(ctx, p); err != nil {
		return nil, err
	}

	return toProfileResponse(p), nil
}

// GetByEmail implements auth.UserProvider.
func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	rec, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	return toUserInfo(rec), nil
}

// GetByID implements auth.UserProvider.
func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*auth.UserInfo, error) {
	rec, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toUserInfo(rec), nil
}

// CreateWithProfile implements auth.UserProvider. The identity row and
// the profile row commit or roll back together.
func (s *Service) CreateWithProfile(
	ctx context.Context,
	params auth.CreateUserParams,
) (*auth.UserInfo, error) {
	id := uuid.New().String()

	user := &User{
		ID:           id,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
	}

	var phone *string
	if params.PhoneNumber != "" {
		phone = &params.PhoneNumber
	}

	p := &Profile{
		ID:          id,
		Email:       params.Email,
		FullName:    params.FullName,
		Username:    params.Username,
		PhoneNumber: phone,
		Role:        RoleUser,
	}

	if err := s.repo.CreateUserWithProfile(ctx, user, p); err != nil {
		return nil, fmt.Errorf("create user with profile: %w", err)
	}

	return &auth.UserInfo{
		ID:           user.ID,
		Email:        user.Email,
		FullName:     p.FullName,
		Username:     p.Username,
		PasswordHash: user.PasswordHash,
		Role:         p.Role,
	}, nil
}

// UpdatePassword implements auth.UserProvider.
func (s *Service) UpdatePassword(
	ctx context.Context,
	userID, passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, userID, passwordHash)
}

func (s *Service) ListInstructorNames(
	ctx context.Context,
) (map[string]string, error) {
	return s.repo.ListInstructorNames(ctx)
}

func toUserInfo(rec *UserRecord) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           rec.ID,
		Email:        rec.Email,
		FullName:     rec.FullName,
		Username:     rec.Username,
		PasswordHash: rec.PasswordHash,
		Role:         rec.Role,
	}
}
