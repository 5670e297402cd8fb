// AngelaMos | 2026
// entity.go

package notification

import (
	"time"
)

const (
	StatusSent   = "sent"
	StatusFailed = "failed"
)

// LogEntry is one outbound email attempt. Rows for income/expense
// notifications are written by the provider-facing trigger; this
// service writes rows only for manual test sends.
type LogEntry struct {
	ID        string    `db:"id"         json:"id"`
	Recipient string    `db:"recipient"  json:"recipient"`
	Subject   string    `db:"subject"    json:"subject"`
	Kind      string    `db:"kind"       json:"kind"`
	Status    string    `db:"status"     json:"status"`
	Error     *string   `db:"error"      json:"error"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
