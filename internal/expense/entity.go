// AngelaMos | 2026
// entity.go

package expense

import (
	"time"
)

// Expense is one business cost. Month is the denormalized "YYYY-MM"
// label the row was booked under, which may differ from created_at for
// backdated entries.
type Expense struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Name      string    `db:"name"`
	Cost      float64   `db:"cost"`
	Category  string    `db:"category"`
	WhoPaid   string    `db:"who_paid"`
	Month     string    `db:"month"`
	ClientID  *string   `db:"client_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
