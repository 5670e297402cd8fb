// AngelaMos | 2026
// entity.go

package profile

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the identity row. Everything a human would recognize about
// the account lives on the Profile that shares its ID.
type User struct {
	ID           string     `db:"id"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

type Profile struct {
	ID          string    `db:"id"`
	Email       string    `db:"email"`
	FullName    string    `db:"full_name"`
	Username    string    `db:"username"`
	AvatarURL   *string   `db:"avatar_url"`
	PhoneNumber *string   `db:"phone_number"`
	Role        string    `db:"role"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (p *Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}
