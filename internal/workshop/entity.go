// AngelaMos | 2026
// entity.go

package workshop

import (
	"time"
)

type Workshop struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Capacity     int       `db:"capacity"`
	Attendance   int       `db:"attendance"`
	Date         time.Time `db:"date"`
	InstructorID *string   `db:"instructor_id"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}
