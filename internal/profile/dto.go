// AngelaMos | 2026
// dto.go

package profile

import (
	"time"
)

type UpdateProfileRequest struct {
	FullName    *string `json:"full_name"    validate:"omitempty,min=1,max=100"`
	Username    *string `json:"username"     validate:"omitempty,min=3,max=50"`
	AvatarURL   *string `json:"avatar_url"   validate:"omitempty,url,max=500"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=30"`
}

type ProfileResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	Username    string    `json:"username"`
	AvatarURL   *string   `json:"avatar_url"`
	PhoneNumber *string   `json:"phone_number"`
	Role        string    `json:"role"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type SessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// SessionResponse is always renderable: either Profile carries the real
// row, ProfileMissing marks an account with no profile yet, or
// ProfileFallback marks a synthesized placeholder after a failed fetch.
type SessionResponse struct {
	User            SessionUser      `json:"user"`
	Profile         *ProfileResponse `json:"profile"`
	ProfileMissing  bool             `json:"profile_missing"`
	ProfileFallback bool             `json:"profile_fallback"`
}

type SessionLoadingResponse struct {
	Status string `json:"status"`
}

func toProfileResponse(p *Profile) *ProfileResponse {
	return &ProfileResponse{
		ID:          p.ID,
		Email:       p.Email,
		FullName:    p.FullName,
		Username:    p.Username,
		AvatarURL:   p.AvatarURL,
		PhoneNumber: p.PhoneNumber,
		Role:        p.Role,
		UpdatedAt:   p.UpdatedAt,
	}
}
