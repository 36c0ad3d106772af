package config

import (
	"flag"
	"os"
	"time"

	"github.com/caritas-cda/rawload/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-source-dir string   directory containing *.jsonl files
//	-bucket string       destination bucket name
//	-client string       client name used as a key prefix component
//	-run-date string     partition date, YYYY-MM-DD
//	-region string       object-store region
//	-profile string      shared credentials profile name
//	-endpoint string     custom S3-compatible endpoint URL
//	-workers int         maximum concurrent uploads
//	-timeout int         per-file upload timeout, seconds (0 disables)
//	-dry-run             preview the plan without uploading
//	-force               overwrite existing objects
//	-no-compress         upload files without gzip compression
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with the -c/-config flags handled by
// the JSON loader.
func parseFlags(config *Config) {
	valueFlags := []string{
		"-source-dir", "-bucket", "-client", "-run-date",
		"-region", "-profile", "-endpoint", "-workers", "-timeout",
	}
	boolFlags := []string{"-dry-run", "-force", "-no-compress"}
	args := flagx.FilterArgs(os.Args[1:], valueFlags, boolFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.SourceDir, "source-dir", config.SourceDir, "source directory containing JSONL files")
	fs.StringVar(&config.Bucket, "bucket", config.Bucket, "destination bucket name")
	fs.StringVar(&config.Client, "client", config.Client, "client name for the key prefix")
	fs.StringVar(&config.RunDate, "run-date", config.RunDate, "run date for partitioning (YYYY-MM-DD)")
	fs.StringVar(&config.Region, "region", config.Region, "object-store region")
	fs.StringVar(&config.Profile, "profile", config.Profile, "credentials profile name")
	fs.StringVar(&config.Endpoint, "endpoint", config.Endpoint, "custom S3-compatible endpoint URL")
	fs.IntVar(&config.Workers, "workers", config.Workers, "maximum concurrent uploads")

	timeout := fs.Int("timeout", int(config.UploadTimeout.Seconds()), "per-file upload timeout (in seconds)")

	fs.BoolVar(&config.DryRun, "dry-run", config.DryRun, "preview changes without uploading")
	fs.BoolVar(&config.Force, "force", config.Force, "overwrite existing objects")
	noCompress := fs.Bool("no-compress", false, "disable gzip compression")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.UploadTimeout = time.Duration(*timeout) * time.Second
	if *noCompress {
		config.Compress = false
	}
}
