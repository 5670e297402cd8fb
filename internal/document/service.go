// AngelaMos | 2026
// service.go

package document

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/atelierlabs/workshop-tracker/internal/core"
	"github.com/atelierlabs/workshop-tracker/internal/middleware"
)

const presignExpiry = 15 * time.Minute

type UploadParams struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
	Meta        UploadMeta
}

// ObjectStore is the slice of core.Storage the document flow needs.
type ObjectStore interface {
	Upload(
		ctx context.Context,
		key, contentType string,
		body io.Reader,
		size int64,
	) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
	PresignGet(
		ctx context.Context,
		key string,
		expires time.Duration,
	) (string, error)
}

type Service struct {
	repo    Repository
	storage ObjectStore
}

func NewService(repo Repository, storage ObjectStore) *Service {
	return &Service{repo: repo, storage: storage}
}

// Upload streams the file to the bucket first, then records the
// metadata row; an object without a row is cleaned up best-effort.
func (s *Service) Upload(
	ctx context.Context,
	userID string,
	params UploadParams,
) (*DocumentResponse, error) {
	id := uuid.New().String()
	key := fmt.Sprintf(
		"documents/%s/%s%s",
		userID,
		id,
		path.Ext(params.FileName),
	)

	if err := s.storage.Upload(
		ctx,
		key,
		params.ContentType,
		params.Body,
		params.Size,
	); err != nil {
		return nil, fmt.Errorf("upload file: %w", err)
	}

	doc := &Document{
		ID:           id,
		FileName:     params.FileName,
		FileURL:      s.storage.PublicURL(key),
		FileSize:     params.Size,
		FileType:     params.ContentType,
		DocumentType: params.Meta.DocumentType,
		Description:  params.Meta.Description,
		StorageKey:   key,
		UploadedBy:   userID,
		WorkshopID:   params.Meta.WorkshopID,
		IncomeID:     params.Meta.IncomeID,
		ExpenseID:    params.Meta.ExpenseID,
		ClientID:     params.Meta.ClientID,
	}

	if err := s.repo.Create(ctx, doc); err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			slog.Warn("orphaned object cleanup failed",
				"key", key,
				"error", delErr,
			)
		}
		return nil, err
	}

	resp := ToDocumentResponse(doc)
	return &resp, nil
}

func (s *Service) Get(
	ctx context.Context,
	callerID, callerRole, id string,
) (*DocumentResponse, error) {
	doc, err := s.authorizedDoc(ctx, callerID, callerRole, id)
	if err != nil {
		return nil, err
	}

	resp := ToDocumentResponse(doc)
	return &resp, nil
}

// DownloadURL hands out a short-lived presigned link to the object.
func (s *Service) DownloadURL(
	ctx context.Context,
	callerID, callerRole, id string,
) (*DownloadURLResponse, error) {
	doc, err := s.authorizedDoc(ctx, callerID, callerRole, id)
	if err != nil {
		return nil, err
	}

	url, err := s.storage.PresignGet(ctx, doc.StorageKey, presignExpiry)
	if err != nil {
		return nil, err
	}

	return &DownloadURLResponse{
		URL:       url,
		ExpiresAt: time.Now().Add(presignExpiry),
	}, nil
}

func (s *Service) Delete(
	ctx context.Context,
	callerID, callerRole, id string,
) error {
	doc, err := s.authorizedDoc(ctx, callerID, callerRole, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, doc.StorageKey); err != nil {
		slog.Warn("stored object delete failed",
			"key", doc.StorageKey,
			"error", err,
		)
	}

	return nil
}

func (s *Service) List(
	ctx context.Context,
	callerID, callerRole string,
) ([]Document, error) {
	if callerRole == middleware.RoleAdmin {
		return s.repo.ListAll(ctx)
	}
	return s.repo.ListByUploader(ctx, callerID)
}

func (s *Service) authorizedDoc(
	ctx context.Context,
	callerID, callerRole, id string,
) (*Document, error) {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if doc.UploadedBy != callerID && callerRole != middleware.RoleAdmin {
		return nil, fmt.Errorf("authorize document: %w", core.ErrForbidden)
	}

	return doc, nil
}
