// Package run sequences one ingestion run: scan, plan, upload, mark,
// summarize. It owns the process exit code.
package run

import (
	"context"
	"io"
	"os"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/caritas-cda/rawload/internal/config"
	"github.com/caritas-cda/rawload/internal/logging"
	"github.com/caritas-cda/rawload/internal/scan"
	"github.com/caritas-cda/rawload/internal/storage"
	"github.com/caritas-cda/rawload/internal/upload"
)

// GroupKey identifies a (source, table) partition group within a run.
type GroupKey struct {
	Source string
	Table  string
}

// Summary aggregates the per-file and per-group outcomes of one run.
type Summary struct {
	Admitted       int
	Rejected       int
	Uploaded       int
	Skipped        int
	Failed         int
	Markers        int
	MarkerFailures int
}

type Runner struct {
	config *config.Config
	log    logging.Logger
	store  storage.ObjectStore

	// out and tty control the human-readable plan/summary tables; logs go
	// through the structured logger regardless.
	out io.Writer
	tty bool
}

// NewRunner wires a run. store may be nil when cfg.DryRun is set; it is not
// touched before the dry-run exit.
func NewRunner(cfg *config.Config, log logging.Logger, store storage.ObjectStore) *Runner {
	return &Runner{
		config: cfg,
		log:    log.With("run_id", uuid.New().String()),
		store:  store,
		out:    os.Stdout,
		tty:    term.IsTerminal(int(os.Stdout.Fd())),
	}
}

// Run executes the pipeline and returns the process exit code: 0 on success
// (including the empty-directory and all-skipped cases), 1 when configuration
// is invalid or any file or marker failed.
func (r *Runner) Run(ctx context.Context) int {
	if err := r.config.Validate(); err != nil {
		r.log.Error(ctx, "invalid configuration", "error", err.Error())
		return 1
	}
	r.reportConfig(ctx)

	admitted, rejected, err := scan.NewScanner(r.log).Scan(ctx, r.config.SourceDir)
	if err != nil {
		r.log.Error(ctx, "scan failed", "error", err.Error())
		return 1
	}
	if len(rejected) > 0 {
		r.log.Warn(ctx, "files rejected during scan", "count", len(rejected))
	}
	if len(admitted) == 0 {
		r.log.Info(ctx, "no valid files to upload", "dir", r.config.SourceDir)
		return 0
	}

	uploader := upload.NewUploader(r.store, r.log, upload.Options{
		Client:   r.config.Client,
		RunDate:  r.config.RunDate,
		Compress: r.config.Compress,
		Force:    r.config.Force,
		DryRun:   r.config.DryRun,
		Timeout:  r.config.UploadTimeout,
	})

	r.reportPlan(ctx, admitted, uploader)
	if r.config.DryRun {
		r.log.Info(ctx, "dry run, no files were uploaded")
		return 0
	}

	if err := r.store.CheckBucket(ctx); err != nil {
		r.log.Error(ctx, "bucket preflight failed", "bucket", r.config.Bucket, "error", err.Error())
		return 1
	}

	// Uploads for distinct files are independent; dispatch them across a
	// bounded pool. Results land in a per-index slot, so no lock is needed.
	results := make([]upload.Result, len(admitted))
	g := new(errgroup.Group)
	g.SetLimit(r.config.Workers)
	for i, rec := range admitted {
		g.Go(func() error {
			results[i] = uploader.Upload(ctx, rec)
			return nil
		})
	}
	// The join doubles as the per-group barrier: no marker is written until
	// every file outcome is known.
	_ = g.Wait()

	summary := Summary{Admitted: len(admitted), Rejected: len(rejected)}
	for _, res := range results {
		switch res.Outcome {
		case upload.OutcomeUploaded:
			summary.Uploaded++
		case upload.OutcomeSkipped:
			summary.Skipped++
		case upload.OutcomeFailed:
			summary.Failed++
		}
	}

	groups := groupCounts(admitted)
	publisher := upload.NewPublisher(r.store, r.log, r.config.Client, r.config.RunDate)
	for _, key := range sortedKeys(groups) {
		if err := publisher.Publish(ctx, key.Source, key.Table, groups[key]); err != nil {
			summary.MarkerFailures++
			continue
		}
		summary.Markers++
	}

	r.reportSummary(ctx, summary)

	if summary.Failed > 0 || summary.MarkerFailures > 0 {
		return 1
	}
	return 0
}

func groupCounts(admitted []scan.FileRecord) map[GroupKey]int {
	groups := make(map[GroupKey]int)
	for _, rec := range admitted {
		groups[GroupKey{Source: rec.Source, Table: rec.Table}]++
	}
	return groups
}

func sortedKeys(groups map[GroupKey]int) []GroupKey {
	keys := make([]GroupKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Source != keys[j].Source {
			return keys[i].Source < keys[j].Source
		}
		return keys[i].Table < keys[j].Table
	})
	return keys
}
