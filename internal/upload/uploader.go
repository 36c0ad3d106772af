// Package upload moves admitted files into the raw layer and publishes the
// completion markers downstream promotion waits for.
package upload

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/caritas-cda/rawload/internal/filex"
	"github.com/caritas-cda/rawload/internal/logging"
	"github.com/caritas-cda/rawload/internal/s3path"
	"github.com/caritas-cda/rawload/internal/scan"
	"github.com/caritas-cda/rawload/internal/storage"
)

// Options configures an Uploader for one run. Client and RunDate become path
// components; RunDate must already be validated as YYYY-MM-DD.
type Options struct {
	Client   string
	RunDate  string
	Compress bool
	Force    bool
	DryRun   bool
	// Timeout bounds a single file's probe+upload. Zero means no limit.
	Timeout time.Duration
}

type Uploader struct {
	store storage.ObjectStore
	log   logging.Logger
	opts  Options
	// now is swappable for tests.
	now func() time.Time
}

func NewUploader(store storage.ObjectStore, log logging.Logger, opts Options) *Uploader {
	return &Uploader{store: store, log: log, opts: opts, now: time.Now}
}

// Key returns the destination key for rec under this run's settings.
func (u *Uploader) Key(rec scan.FileRecord) string {
	return s3path.Object(u.opts.Client, rec.Source, rec.Table, u.opts.RunDate,
		filepath.Base(rec.LocalPath), u.opts.Compress)
}

// Upload moves one admitted file to its destination key and returns its
// terminal outcome. Errors are carried in the Result, never returned: a
// failed file must not abort the rest of the batch.
//
// Unless force is set, an existence probe runs first and a present object
// yields OutcomeSkipped without any upload call. With compression on, the
// file is gzipped into a temporary artifact that is removed on every path
// out of this function.
func (u *Uploader) Upload(ctx context.Context, rec scan.FileRecord) Result {
	key := u.Key(rec)
	name := filepath.Base(rec.LocalPath)

	if u.opts.DryRun {
		u.log.Info(ctx, "would upload", "file", name, "key", key)
		return Result{File: rec, Key: key, Outcome: OutcomePlanned}
	}

	if u.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.opts.Timeout)
		defer cancel()
	}

	if !u.opts.Force {
		exists, err := u.store.Exists(ctx, key)
		if err != nil {
			u.log.Error(ctx, "existence check failed", "file", name, "key", key, "error", err.Error())
			return Result{File: rec, Key: key, Outcome: OutcomeFailed, Err: err}
		}
		if exists {
			u.log.Info(ctx, "already exists, skipping", "file", name, "key", key)
			return Result{File: rec, Key: key, Outcome: OutcomeSkipped}
		}
	}

	path := rec.LocalPath
	opts := storage.UploadOptions{
		Metadata: map[string]string{
			"original-filename": name,
			"uploaded-at":       u.now().UTC().Format(time.RFC3339),
		},
	}

	if u.opts.Compress {
		tmp, err := filex.GzipToTemp(rec.LocalPath)
		if err != nil {
			u.log.Error(ctx, "compression failed", "file", name, "error", err.Error())
			return Result{File: rec, Key: key, Outcome: OutcomeFailed, Err: err}
		}
		defer os.Remove(tmp)
		path = tmp
		opts.ContentEncoding = "gzip"
	}

	if err := u.store.UploadFile(ctx, key, path, opts); err != nil {
		u.log.Error(ctx, "upload failed", "file", name, "key", key, "error", err.Error())
		return Result{File: rec, Key: key, Outcome: OutcomeFailed, Err: err}
	}

	u.log.Info(ctx, "uploaded", "file", name, "key", key)
	return Result{File: rec, Key: key, Outcome: OutcomeUploaded}
}
