package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caritas-cda/rawload/internal/common"
)

// RunDateLayout is the accepted run-date format (Hive partition value).
const RunDateLayout = "2006-01-02"

// Config holds runtime settings for one rawload run.
//
// Fields:
//   - SourceDir: local directory scanned for *.jsonl files.
//   - Bucket / Client: destination bucket and the client path component; both required.
//   - RunDate: partition date in YYYY-MM-DD form; defaults to today (UTC).
//   - Region / Profile / Endpoint: object-store auth context; empty means the
//     platform default resolution chain.
//   - AccessKeyID / SecretAccessKey: optional static credentials for
//     S3-compatible endpoints.
//   - DryRun: print the upload plan and stop, no network writes.
//   - Force: skip the existence probe and always overwrite.
//   - Compress: gzip files before transfer (on by default).
//   - Workers: bound on concurrent file uploads.
//   - UploadTimeout: per-file probe+upload time limit; zero disables it.
type Config struct {
	SourceDir       string
	Bucket          string
	Client          string
	RunDate         string
	Region          string
	Profile         string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	DryRun          bool
	Force           bool
	Compress        bool
	Workers         int
	UploadTimeout   time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.SourceDir = "./data"
	c.RunDate = time.Now().UTC().Format(RunDateLayout)
	c.Compress = true
	c.Workers = 4
	c.UploadTimeout = 5 * time.Minute
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

// Validate checks everything that must hold before any upload is attempted.
// All failures here are configuration errors and fatal.
func (c *Config) Validate() error {
	if c.Bucket == "" {
		return common.ErrBucketRequired
	}
	if c.Client == "" {
		return common.ErrClientRequired
	}
	if _, err := time.Parse(RunDateLayout, c.RunDate); err != nil {
		return fmt.Errorf("%w: %q", common.ErrInvalidRunDate, c.RunDate)
	}
	info, err := os.Stat(c.SourceDir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", common.ErrSourceDirMissing, c.SourceDir)
	}
	if c.Workers < 1 {
		return errors.New("workers must be at least 1")
	}
	return nil
}
