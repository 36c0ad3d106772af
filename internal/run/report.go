package run

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/caritas-cda/rawload/internal/scan"
	"github.com/caritas-cda/rawload/internal/upload"
)

// reportConfig echoes the resolved configuration before anything runs, so a
// bad invocation is obvious from the first lines of output.
func (r *Runner) reportConfig(ctx context.Context) {
	r.log.Info(ctx, "starting run",
		"source_dir", r.config.SourceDir,
		"bucket", r.config.Bucket,
		"client", r.config.Client,
		"run_date", r.config.RunDate,
		"compress", r.config.Compress,
		"dry_run", r.config.DryRun,
		"force", r.config.Force,
		"workers", r.config.Workers,
	)
}

// reportPlan lists every admitted file with its destination key. On a
// terminal an aligned table is printed as well; the structured log always
// carries the full plan.
func (r *Runner) reportPlan(ctx context.Context, admitted []scan.FileRecord, uploader *upload.Uploader) {
	for _, rec := range admitted {
		r.log.Info(ctx, "planned upload",
			"source", rec.Source, "table", rec.Table,
			"records", rec.Records, "size", rec.SizeBytes,
			"key", uploader.Key(rec))
	}

	if !r.tty {
		return
	}

	w := tabwriter.NewWriter(r.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SOURCE\tTABLE\tRECORDS\tSIZE\tDESTINATION")
	for _, rec := range admitted {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			rec.Source, rec.Table, rec.Records, formatSize(rec.SizeBytes), uploader.Key(rec))
	}
	_ = w.Flush()
}

func (r *Runner) reportSummary(ctx context.Context, s Summary) {
	r.log.Info(ctx, "run finished",
		"admitted", s.Admitted,
		"rejected", s.Rejected,
		"uploaded", s.Uploaded,
		"skipped", s.Skipped,
		"failed", s.Failed,
		"markers", s.Markers,
		"marker_failures", s.MarkerFailures,
	)

	if !r.tty {
		return
	}

	w := tabwriter.NewWriter(r.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STATUS\tCOUNT")
	fmt.Fprintf(w, "uploaded\t%d\n", s.Uploaded)
	fmt.Fprintf(w, "skipped\t%d\n", s.Skipped)
	fmt.Fprintf(w, "failed\t%d\n", s.Failed)
	fmt.Fprintf(w, "total\t%d\n", s.Admitted)
	_ = w.Flush()
}

func formatSize(bytes int64) string {
	const mb = 1024 * 1024
	if bytes < mb {
		return fmt.Sprintf("%d B", bytes)
	}
	return fmt.Sprintf("%.2f MB", float64(bytes)/mb)
}
