// Package common defines shared sentinel errors used across the rawload
// pipeline. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Discovery-stage errors. A file hitting one of these is rejected and
	// excluded from the run; the run itself continues.
	ErrInvalidName = errors.New("invalid filename format")
	ErrEmptyFile   = errors.New("empty file")

	// Configuration errors. These are fatal and abort the run before any
	// upload is attempted.
	ErrInvalidRunDate     = errors.New("run date must be in YYYY-MM-DD format")
	ErrBucketRequired     = errors.New("bucket is required")
	ErrClientRequired     = errors.New("client is required")
	ErrSourceDirMissing   = errors.New("source directory does not exist")
	ErrBucketNotFound     = errors.New("bucket not found")
	ErrBucketAccessDenied = errors.New("access denied to bucket")
)
