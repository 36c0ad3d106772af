// Package jsonl validates line-delimited JSON record files.
package jsonl

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/caritas-cda/rawload/internal/common"
)

// maxLineSize bounds a single record line. Raw exports occasionally carry
// multi-megabyte rows, so the scanner buffer is sized well above the bufio
// default.
const maxLineSize = 16 * 1024 * 1024

// Validate reads the file at path in a single streaming pass and confirms
// that every non-blank line is a self-contained JSON record. Each line is
// decoded and discarded, so memory use stays independent of file size.
//
// Validation is fail-fast: the first malformed line aborts with its 1-based
// line number and zero records reported. A file with no records after
// skipping blank lines fails with common.ErrEmptyFile.
func Validate(path string) (records int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	line := 0
	for sc.Scan() {
		line++
		b := bytes.TrimSpace(sc.Bytes())
		if len(b) == 0 {
			continue
		}
		var raw json.RawMessage
		if err := json.Unmarshal(b, &raw); err != nil {
			return 0, fmt.Errorf("invalid JSON at line %d: %w", line, err)
		}
		records++
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}

	if records == 0 {
		return 0, common.ErrEmptyFile
	}
	return records, nil
}
