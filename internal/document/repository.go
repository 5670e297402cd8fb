// AngelaMos | 2026
// repository.go

package document

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atelierlabs/workshop-tracker/internal/core"
)

type Repository interface {
	Create(ctx context.Context, doc *Document) error
	GetByID(ctx context.Context, id string) (*Document, error)
	Delete(ctx context.Context, id string) error
	ListByUploader(ctx context.Context, userID string) ([]Document, error)
	ListAll(ctx context.Context) ([]Document, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const documentColumns = `
	id, file_name, file_url, file_size, file_type, document_type,
	description, storage_key, uploaded_by, workshop_id, income_id,
	expense_id, client_id, created_at`

func (r *repository) Create(ctx context.Context, doc *Document) error {
	query := `
		INSERT INTO documents
			(id, file_name, file_url, file_size, file_type, document_type,
			 description, storage_key, uploaded_by, workshop_id, income_id,
			 expense_id, client_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &doc.CreatedAt, query,
		doc.ID,
		doc.FileName,
		doc.FileURL,
		doc.FileSize,
		doc.FileType,
		doc.DocumentType,
		doc.Description,
		doc.StorageKey,
		doc.UploadedBy,
		doc.WorkshopID,
		doc.IncomeID,
		doc.ExpenseID,
		doc.ClientID,
	)
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*Document, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM documents WHERE id = $1`,
		documentColumns,
	)

	var doc Document
	err := r.db.GetContext(ctx, &doc, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get document: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}

	return &doc, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(
		ctx,
		`DELETE FROM documents WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete document: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) ListByUploader(
	ctx context.Context,
	userID string,
) ([]Document, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM documents
		WHERE uploaded_by = $1
		ORDER BY created_at DESC`,
		documentColumns,
	)

	var docs []Document
	if err := r.db.SelectContext(ctx, &docs, query, userID); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	return docs, nil
}

func (r *repository) ListAll(ctx context.Context) ([]Document, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM documents
		ORDER BY created_at DESC`,
		documentColumns,
	)

	var docs []Document
	if err := r.db.SelectContext(ctx, &docs, query); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	return docs, nil
}
