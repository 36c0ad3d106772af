// Package scan discovers record files in a source directory and admits the
// ones that pass name parsing and structural validation.
package scan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caritas-cda/rawload/internal/jsonl"
	"github.com/caritas-cda/rawload/internal/logging"
	"github.com/caritas-cda/rawload/internal/naming"
)

// FileRecord describes one admitted file. Source and table are derived once
// from the file name and never recomputed from content.
type FileRecord struct {
	LocalPath string
	Source    string
	Table     string
	SizeBytes int64
	Records   int
}

// Rejection records a discovered file that was excluded from the run.
type Rejection struct {
	Filename string
	Reason   error
}

type Scanner struct {
	log logging.Logger
}

func NewScanner(log logging.Logger) *Scanner {
	return &Scanner{log: log}
}

// Scan enumerates *.jsonl files directly under dir (non-recursive) in name
// order and applies name parsing followed by structural validation to each.
// A file failing either check is reported as a Rejection and excluded;
// rejection of one file never stops the scan of the others. Zero admitted
// files is not an error.
func (s *Scanner) Scan(ctx context.Context, dir string) ([]FileRecord, []Rejection, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("read source dir: %w", err)
	}

	var admitted []FileRecord
	var rejected []Rejection

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), naming.Extension) {
			continue
		}

		source, table, err := naming.Parse(entry.Name())
		if err != nil {
			s.log.Warn(ctx, "rejected file", "file", entry.Name(), "reason", err.Error())
			rejected = append(rejected, Rejection{Filename: entry.Name(), Reason: err})
			continue
		}

		path := filepath.Join(dir, entry.Name())
		records, err := jsonl.Validate(path)
		if err != nil {
			s.log.Warn(ctx, "rejected file", "file", entry.Name(), "reason", err.Error())
			rejected = append(rejected, Rejection{Filename: entry.Name(), Reason: err})
			continue
		}

		info, err := entry.Info()
		if err != nil {
			rejected = append(rejected, Rejection{Filename: entry.Name(), Reason: err})
			continue
		}

		s.log.Info(ctx, "admitted file",
			"file", entry.Name(), "source", source, "table", table, "records", records)

		admitted = append(admitted, FileRecord{
			LocalPath: path,
			Source:    source,
			Table:     table,
			SizeBytes: info.Size(),
			Records:   records,
		})
	}

	return admitted, rejected, nil
}
