// Package s3path builds the object-store keys of the raw layer. Both
// functions are pure string composition: for identical inputs they produce
// byte-identical keys, which is what makes reruns idempotent.
//
// Key layout (Hive-style partitioning, consumed by the promotion step):
//
//	clients/{client}/{source}/{table}/run_date={YYYY-MM-DD}/{filename}[.gz]
//	clients/{client}/{source}/{table}/run_date={YYYY-MM-DD}/_SUCCESS
package s3path

import "fmt"

// MarkerName is the completion-marker object name within a partition.
const MarkerName = "_SUCCESS"

// CompressedSuffix is appended to object names uploaded gzip-compressed.
const CompressedSuffix = ".gz"

// Object returns the destination key for one data file. runDate must already
// be validated as YYYY-MM-DD by the caller; no validation happens here.
func Object(client, source, table, runDate, filename string, compressed bool) string {
	suffix := ""
	if compressed {
		suffix = CompressedSuffix
	}
	return fmt.Sprintf("clients/%s/%s/%s/run_date=%s/%s%s",
		client, source, table, runDate, filename, suffix)
}

// Marker returns the completion-marker key for a (source, table) group.
func Marker(client, source, table, runDate string) string {
	return fmt.Sprintf("clients/%s/%s/%s/run_date=%s/%s",
		client, source, table, runDate, MarkerName)
}
