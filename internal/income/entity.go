// AngelaMos | 2026
// entity.go

package income

import (
	"time"
)

// Income is one completed workshop's revenue.
type Income struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	Name        string    `db:"name"`
	Payment     float64   `db:"payment"`
	Platform    string    `db:"platform"`
	GuestCount  int       `db:"guest_count"`
	ClassTypeID *string   `db:"class_type_id"`
	ClientID    *string   `db:"client_id"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
