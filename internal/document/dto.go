// AngelaMos | 2026
// dto.go

package document

import (
	"time"
)

type DocumentResponse struct {
	ID           string    `json:"id"`
	FileName     string    `json:"file_name"`
	FileURL      string    `json:"file_url"`
	FileSize     int64     `json:"file_size"`
	FileType     string    `json:"file_type"`
	DocumentType string    `json:"document_type"`
	Description  string    `json:"description"`
	UploadedBy   string    `json:"uploaded_by"`
	WorkshopID   *string   `json:"workshop_id"`
	IncomeID     *string   `json:"income_id"`
	ExpenseID    *string   `json:"expense_id"`
	ClientID     *string   `json:"client_id"`
	CreatedAt    time.Time `json:"created_at"`
}

type DownloadURLResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UploadMeta is the non-file part of the multipart form.
type UploadMeta struct {
	DocumentType string  `json:"document_type" validate:"omitempty,max=50"`
	Description  string  `json:"description"   validate:"omitempty,max=2000"`
	WorkshopID   *string `json:"workshop_id"   validate:"omitempty,uuid"`
	IncomeID     *string `json:"income_id"     validate:"omitempty,uuid"`
	ExpenseID    *string `json:"expense_id"    validate:"omitempty,uuid"`
	ClientID     *string `json:"client_id"     validate:"omitempty,uuid"`
}

func ToDocumentResponse(d *Document) DocumentResponse {
	return DocumentResponse{
		ID:           d.ID,
		FileName:     d.FileName,
		FileURL:      d.FileURL,
		FileSize:     d.FileSize,
		FileType:     d.FileType,
		DocumentType: d.DocumentType,
		Description:  d.Description,
		UploadedBy:   d.UploadedBy,
		WorkshopID:   d.WorkshopID,
		IncomeID:     d.IncomeID,
		ExpenseID:    d.ExpenseID,
		ClientID:     d.ClientID,
		CreatedAt:    d.CreatedAt,
	}
}

func ToDocumentResponseList(docs []Document) []DocumentResponse {
	responses := make([]DocumentResponse, 0, len(docs))
	for _, d := range docs {
		responses = append(responses, ToDocumentResponse(&d))
	}
	return responses
}
