// Package naming maps record-file names to their (source, table) identity.
//
// A file name such as "sf_accounts.jsonl" carries the source system as a
// prefix and the logical table name after the first underscore. Source
// prefixes are resolved through a fixed alias table; unknown prefixes pass
// through unchanged. Both components are reported lower-cased.
package naming

import (
	"fmt"
	"strings"

	"github.com/caritas-cda/rawload/internal/common"
)

// Extension is the record-file extension the pipeline ingests.
const Extension = ".jsonl"

// sourceAliases resolves short file-name prefixes to full source-system
// names. Prefixes not listed here map to themselves.
var sourceAliases = map[string]string{
	"stripe":   "stripe",
	"sf":       "salesforce",
	"zendesk":  "zendesk",
	"harvest":  "harvest",
	"jira":     "jira",
	"mixpanel": "mixpanel",
	"intacct":  "intacct",
}

// Parse splits filename into its (source, table) identity. The split happens
// on the first underscore, so table names may themselves contain
// underscores. A name without a usable split point (no underscore, or an
// empty component on either side) fails with common.ErrInvalidName.
func Parse(filename string) (source, table string, err error) {
	name := strings.TrimSuffix(filename, Extension)

	prefix, rest, found := strings.Cut(name, "_")
	if !found || prefix == "" || rest == "" {
		return "", "", fmt.Errorf("%w: %s (expected source_table%s)", common.ErrInvalidName, filename, Extension)
	}

	prefix = strings.ToLower(prefix)
	if full, ok := sourceAliases[prefix]; ok {
		prefix = full
	}

	return prefix, strings.ToLower(rest), nil
}
