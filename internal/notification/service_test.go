// AngelaMos | 2026
// service_test.go

package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/atelierlabs/workshop-tracker/internal/config"
)

// -------- test fakes --------

type fakeLogRepo struct {
	entries []LogEntry
}

func (f *fakeLogRepo) Create(ctx context.Context, entry *LogEntry) error {
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeLogRepo) ListRecent(
	ctx context.Context,
	limit int,
) ([]LogEntry, error) {
	if len(f.entries) > limit {
		return f.entries[:limit], nil
	}
	return f.entries, nil
}

func newTestService(repo Repository, providerURL string) *Service {
	cfg := &config.Config{}
	cfg.Notify.ProviderURL = providerURL
	cfg.Notify.APIKey = "test-key"
	cfg.Notify.FromAddress = "noreply@atelierlabs.io"

	return NewService(repo, cfg)
}

func TestSendTestRecordsSuccess(t *testing.T) {
	var gotAuth string
	var gotPayload map[string]any

	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			require.NoError(t,
				json.NewDecoder(r.Body).Decode(&gotPayload))
			w.WriteHeader(http.StatusAccepted)
		}))
	defer srv.Close()

	repo := &fakeLogRepo{}
	svc := newTestService(repo, srv.URL)

	entry, err := svc.SendTest(context.Background(), "ana@atelierlabs.io")

	require.NoError(t, err)
	require.Equal(t, StatusSent, entry.Status)
	require.Nil(t, entry.Error)

	require.Equal(t, "Bearer test-key", gotAuth)
	require.Equal(t, "noreply@atelierlabs.io", gotPayload["from"])
	require.Equal(t,
		[]any{"ana@atelierlabs.io"}, gotPayload["to"])

	require.Len(t, repo.entries, 1)
	require.Equal(t, StatusSent, repo.entries[0].Status)
}

func TestSendTestRecordsProviderFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "invalid recipient", http.StatusUnprocessableEntity)
		}))
	defer srv.Close()

	repo := &fakeLogRepo{}
	svc := newTestService(repo, srv.URL)

	entry, err := svc.SendTest(context.Background(), "bad@@address")

	// The attempt itself succeeds; the failure lives in the log row.
	require.NoError(t, err)
	require.Equal(t, StatusFailed, entry.Status)
	require.NotNil(t, entry.Error)
	require.Contains(t, *entry.Error, "422")

	require.Len(t, repo.entries, 1)
	require.Equal(t, StatusFailed, repo.entries[0].Status)
}

func TestSendTestRecordsUnreachableProvider(t *testing.T) {
	repo := &fakeLogRepo{}
	svc := newTestService(repo, "http://127.0.0.1:1")
	svc.httpClient.Timeout = time.Second

	entry, err := svc.SendTest(context.Background(), "ana@atelierlabs.io")

	require.NoError(t, err)
	require.Equal(t, StatusFailed, entry.Status)
	require.NotNil(t, entry.Error)
}

func TestConfigured(t *testing.T) {
	repo := &fakeLogRepo{}

	require.True(t, newTestService(repo, "http://provider").Configured())

	unconfigured := NewService(repo, &config.Config{})
	require.False(t, unconfigured.Configured())
}
