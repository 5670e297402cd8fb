// AngelaMos | 2026
// entity.go

package client

import (
	"time"
)

type Client struct {
	ID            string    `db:"id"`
	FullName      string    `db:"full_name"`
	Email         string    `db:"email"`
	Phone         string    `db:"phone"`
	Company       string    `db:"company"`
	Address       string    `db:"address"`
	Notes         string    `db:"notes"`
	TotalSpent    float64   `db:"total_spent"`
	TotalSessions int       `db:"total_sessions"`
	IsActive      bool      `db:"is_active"`
	CreatedBy     string    `db:"created_by"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}
