// Package filex holds small filesystem helpers.
package filex

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// GzipToTemp compresses the file at src into a freshly created temporary
// file and returns its path. The source file is never modified. The caller
// owns the returned file and must remove it when done; on error no file is
// left behind.
func GzipToTemp(src string) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	tmp, err := os.CreateTemp("", filepath.Base(src)+".*.gz")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	gz := gzip.NewWriter(tmp)
	if _, err = io.Copy(gz, in); err == nil {
		err = gz.Close()
	} else {
		_ = gz.Close()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("compress %s: %w", src, err)
	}

	return tmp.Name(), nil
}
