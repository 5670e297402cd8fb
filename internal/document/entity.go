// AngelaMos | 2026
// entity.go

package document

import (
	"time"
)

// Document is the metadata row for an object stored in the bucket.
// StorageKey is the object key; FileURL is the public URL derived from
// it at upload time.
type Document struct {
	ID           string    `db:"id"`
	FileName     string    `db:"file_name"`
	FileURL      string    `db:"file_url"`
	FileSize     int64     `db:"file_size"`
	FileType     string    `db:"file_type"`
	DocumentType string    `db:"document_type"`
	Description  string    `db:"description"`
	StorageKey   string    `db:"storage_key"`
	UploadedBy   string    `db:"uploaded_by"`
	WorkshopID   *string   `db:"workshop_id"`
	IncomeID     *string   `db:"income_id"`
	ExpenseID    *string   `db:"expense_id"`
	ClientID     *string   `db:"client_id"`
	CreatedAt    time.Time `db:"created_at"`
}
