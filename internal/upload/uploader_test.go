package upload

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caritas-cda/rawload/internal/logging"
	"github.com/caritas-cda/rawload/internal/scan"
	"github.com/caritas-cda/rawload/internal/storage"
)

// fakeStore records calls and lets tests preset existing keys and failures.
type fakeStore struct {
	existing map[string]bool

	existsErr error
	uploadErr error
	putErr    error

	existsCalls int
	uploadCalls int

	uploadedKeys  []string
	uploadedPaths []string
	uploadedOpts  []storage.UploadOptions
	putKeys       []string
	putBodies     [][]byte
}

func (f *fakeStore) CheckBucket(ctx context.Context) error { return nil }

func (f *fakeStore) Exists(ctx context.Context, key string) (bool, error) {
	f.existsCalls++
	if f.existsErr != nil {
		return false, f.existsErr
	}
	return f.existing[key], nil
}

func (f *fakeStore) UploadFile(ctx context.Context, key, localPath string, opts storage.UploadOptions) error {
	f.uploadCalls++
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.uploadedKeys = append(f.uploadedKeys, key)
	f.uploadedPaths = append(f.uploadedPaths, localPath)
	f.uploadedOpts = append(f.uploadedOpts, opts)
	return nil
}

func (f *fakeStore) PutJSON(ctx context.Context, key string, body []byte) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.putKeys = append(f.putKeys, key)
	f.putBodies = append(f.putBodies, body)
	return nil
}

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testRecord(t *testing.T) scan.FileRecord {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sf_accounts.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(`{"id":1}`+"\n"), 0o644))
	return scan.FileRecord{LocalPath: path, Source: "salesforce", Table: "accounts", SizeBytes: 9, Records: 1}
}

func defaultOptions() Options {
	return Options{Client: "wise", RunDate: "2025-12-17", Compress: true}
}

func TestUpload_SkipWithoutForce(t *testing.T) {
	rec := testRecord(t)
	key := "clients/wise/salesforce/accounts/run_date=2025-12-17/sf_accounts.jsonl.gz"
	store := &fakeStore{existing: map[string]bool{key: true}}

	u := NewUploader(store, discardLogger(), defaultOptions())
	res := u.Upload(context.Background(), rec)

	assert.Equal(t, OutcomeSkipped, res.Outcome)
	assert.Equal(t, key, res.Key)
	assert.NoError(t, res.Err)
	assert.Zero(t, store.uploadCalls, "a skipped file must not trigger an upload call")
}

func TestUpload_ForceOverwrite(t *testing.T) {
	rec := testRecord(t)
	key := "clients/wise/salesforce/accounts/run_date=2025-12-17/sf_accounts.jsonl.gz"
	store := &fakeStore{existing: map[string]bool{key: true}}

	opts := defaultOptions()
	opts.Force = true
	u := NewUploader(store, discardLogger(), opts)
	res := u.Upload(context.Background(), rec)

	assert.Equal(t, OutcomeUploaded, res.Outcome)
	assert.Zero(t, store.existsCalls, "force skips the existence probe")
	assert.Equal(t, 1, store.uploadCalls)
}

func TestUpload_CompressedArtifact(t *testing.T) {
	rec := testRecord(t)
	store := &fakeStore{}

	u := NewUploader(store, discardLogger(), defaultOptions())
	res := u.Upload(context.Background(), rec)

	require.Equal(t, OutcomeUploaded, res.Outcome)
	require.Len(t, store.uploadedPaths, 1)

	sent := store.uploadedPaths[0]
	assert.NotEqual(t, rec.LocalPath, sent, "the original file must not be sent when compressing")
	assert.Equal(t, "gzip", store.uploadedOpts[0].ContentEncoding)
	assert.Equal(t, "sf_accounts.jsonl", store.uploadedOpts[0].Metadata["original-filename"])
	assert.NotEmpty(t, store.uploadedOpts[0].Metadata["uploaded-at"])

	_, err := os.Stat(sent)
	assert.True(t, os.IsNotExist(err), "temporary compressed artifact must be removed after upload")
}

func TestUpload_Uncompressed(t *testing.T) {
	rec := testRecord(t)
	store := &fakeStore{}

	opts := defaultOptions()
	opts.Compress = false
	u := NewUploader(store, discardLogger(), opts)
	res := u.Upload(context.Background(), rec)

	require.Equal(t, OutcomeUploaded, res.Outcome)
	assert.Equal(t, "clients/wise/salesforce/accounts/run_date=2025-12-17/sf_accounts.jsonl", res.Key)
	require.Len(t, store.uploadedPaths, 1)
	assert.Equal(t, rec.LocalPath, store.uploadedPaths[0])
	assert.Empty(t, store.uploadedOpts[0].ContentEncoding)
}

func TestUpload_CompressedContentRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stripe_customers.jsonl")
	content := `{"id":"cus_1"}` + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	rec := scan.FileRecord{LocalPath: path, Source: "stripe", Table: "customers"}

	var captured []byte
	store := &fakeStore{}
	u := NewUploader(storeFunc{store, func(localPath string) {
		b, err := os.ReadFile(localPath)
		require.NoError(t, err)
		captured = b
	}}, discardLogger(), defaultOptions())

	res := u.Upload(context.Background(), rec)
	require.Equal(t, OutcomeUploaded, res.Outcome)

	zr, err := gzip.NewReader(bytes.NewReader(captured))
	require.NoError(t, err)
	got, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))
}

func TestUpload_FailedTransfer(t *testing.T) {
	rec := testRecord(t)
	store := &fakeStore{uploadErr: errors.New("connection reset")}

	u := NewUploader(store, discardLogger(), defaultOptions())
	res := u.Upload(context.Background(), rec)

	assert.Equal(t, OutcomeFailed, res.Outcome)
	require.Error(t, res.Err)
}

func TestUpload_ExistsProbeError(t *testing.T) {
	rec := testRecord(t)
	store := &fakeStore{existsErr: errors.New("access denied")}

	u := NewUploader(store, discardLogger(), defaultOptions())
	res := u.Upload(context.Background(), rec)

	assert.Equal(t, OutcomeFailed, res.Outcome)
	assert.Zero(t, store.uploadCalls)
}

func TestUpload_DryRun(t *testing.T) {
	rec := testRecord(t)
	store := &fakeStore{}

	opts := defaultOptions()
	opts.DryRun = true
	u := NewUploader(store, discardLogger(), opts)
	res := u.Upload(context.Background(), rec)

	assert.Equal(t, OutcomePlanned, res.Outcome)
	assert.Zero(t, store.existsCalls)
	assert.Zero(t, store.uploadCalls)
}

func TestPublisher_WritesMarker(t *testing.T) {
	store := &fakeStore{}
	p := NewPublisher(store, discardLogger(), "wise", "2025-12-17")
	p.now = func() time.Time { return time.Date(2025, 12, 17, 10, 30, 0, 0, time.UTC) }

	err := p.Publish(context.Background(), "stripe", "customers", 3)
	require.NoError(t, err)

	require.Len(t, store.putKeys, 1)
	assert.Equal(t, "clients/wise/stripe/customers/run_date=2025-12-17/_SUCCESS", store.putKeys[0])

	var m Marker
	require.NoError(t, json.Unmarshal(store.putBodies[0], &m))
	assert.Equal(t, Marker{
		UploadedAt: "2025-12-17T10:30:00Z",
		FileCount:  3,
		Status:     "complete",
	}, m)
}

func TestPublisher_WriteFailure(t *testing.T) {
	store := &fakeStore{putErr: errors.New("timeout")}
	p := NewPublisher(store, discardLogger(), "wise", "2025-12-17")

	err := p.Publish(context.Background(), "stripe", "customers", 1)
	require.Error(t, err)
}

// storeFunc wraps a fakeStore and observes the local path handed to
// UploadFile before the temp artifact is cleaned up.
type storeFunc struct {
	*fakeStore
	onUpload func(localPath string)
}

func (s storeFunc) UploadFile(ctx context.Context, key, localPath string, opts storage.UploadOptions) error {
	s.onUpload(localPath)
	return s.fakeStore.UploadFile(ctx, key, localPath, opts)
}

