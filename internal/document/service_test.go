// AngelaMos | 2026
// service_test.go

package document

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/atelierlabs/workshop-tracker/internal/core"
	"github.com/atelierlabs/workshop-tracker/internal/middleware"
)

// -------- test fakes --------

type fakeStore struct {
	uploadedKey string
	uploadErr   error
	deletedKeys []string
	presignURL  string
}

func (f *fakeStore) Upload(
	ctx context.Context,
	key, contentType string,
	body io.Reader,
	size int64,
) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.uploadedKey = key
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, key string) error {
	f.deletedKeys = append(f.deletedKeys, key)
	return nil
}

func (f *fakeStore) PublicURL(key string) string {
	return "https://cdn.test/" + key
}

func (f *fakeStore) PresignGet(
	ctx context.Context,
	key string,
	expires time.Duration,
) (string, error) {
	return f.presignURL, nil
}

type fakeDocRepo struct {
	Repository

	doc       *Document
	createErr error
	created   *Document
}

func (f *fakeDocRepo) Create(ctx context.Context, doc *Document) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = doc
	return nil
}

func (f *fakeDocRepo) GetByID(
	ctx context.Context,
	id string,
) (*Document, error) {
	if f.doc == nil {
		return nil, core.ErrNotFound
	}
	return f.doc, nil
}

func uploadParams() UploadParams {
	return UploadParams{
		FileName:    "invoice.pdf",
		ContentType: "application/pdf",
		Size:        1024,
		Body:        strings.NewReader("pdf bytes"),
		Meta:        UploadMeta{DocumentType: "invoice"},
	}
}

func TestUploadStoresObjectAndRow(t *testing.T) {
	store := &fakeStore{}
	repo := &fakeDocRepo{}
	svc := NewService(repo, store)

	resp, err := svc.Upload(context.Background(), "u1", uploadParams())

	require.NoError(t, err)
	require.NotNil(t, repo.created)
	require.Equal(t, store.uploadedKey, repo.created.StorageKey)
	require.True(t, strings.HasPrefix(store.uploadedKey, "documents/u1/"))
	require.True(t, strings.HasSuffix(store.uploadedKey, ".pdf"),
		"the original extension survives the rename")
	require.Equal(t, "https://cdn.test/"+store.uploadedKey, resp.FileURL)
}

func TestUploadCleansUpOrphanedObject(t *testing.T) {
	store := &fakeStore{}
	repo := &fakeDocRepo{createErr: errors.New("pq: deadlock detected")}
	svc := NewService(repo, store)

	_, err := svc.Upload(context.Background(), "u1", uploadParams())

	require.Error(t, err)
	require.Equal(t, []string{store.uploadedKey}, store.deletedKeys,
		"an object without a row must not linger")
}

func TestUploadFailureSkipsRow(t *testing.T) {
	store := &fakeStore{uploadErr: errors.New("bucket unavailable")}
	repo := &fakeDocRepo{}
	svc := NewService(repo, store)

	_, err := svc.Upload(context.Background(), "u1", uploadParams())

	require.Error(t, err)
	require.Nil(t, repo.created)
}

func TestDownloadURLAuthorization(t *testing.T) {
	store := &fakeStore{presignURL: "https://signed.test/doc"}
	repo := &fakeDocRepo{doc: &Document{
		ID:         "d1",
		UploadedBy: "owner",
		StorageKey: "documents/owner/d1.pdf",
	}}
	svc := NewService(repo, store)

	_, err := svc.DownloadURL(
		context.Background(), "intruder", middleware.RoleUser, "d1",
	)
	require.ErrorIs(t, err, core.ErrForbidden)

	resp, err := svc.DownloadURL(
		context.Background(), "owner", middleware.RoleUser, "d1",
	)
	require.NoError(t, err)
	require.Equal(t, "https://signed.test/doc", resp.URL)

	_, err = svc.DownloadURL(
		context.Background(), "someone-else", middleware.RoleAdmin, "d1",
	)
	require.NoError(t, err, "admins can fetch any document")
}
