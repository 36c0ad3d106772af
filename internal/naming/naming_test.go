package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caritas-cda/rawload/internal/common"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		filename   string
		wantSource string
		wantTable  string
		wantErr    bool
	}{
		{name: "plain prefix", filename: "stripe_customers.jsonl", wantSource: "stripe", wantTable: "customers"},
		{name: "aliased prefix", filename: "sf_accounts.jsonl", wantSource: "salesforce", wantTable: "accounts"},
		{name: "unknown prefix passes through", filename: "unknownprefix_widgets.jsonl", wantSource: "unknownprefix", wantTable: "widgets"},
		{name: "table with underscores", filename: "zendesk_ticket_events.jsonl", wantSource: "zendesk", wantTable: "ticket_events"},
		{name: "upper case is lowered", filename: "Jira_Issues.jsonl", wantSource: "jira", wantTable: "issues"},
		{name: "no delimiter", filename: "customers.jsonl", wantErr: true},
		{name: "empty source", filename: "_customers.jsonl", wantErr: true},
		{name: "empty table", filename: "stripe_.jsonl", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source, table, err := Parse(tt.filename)
			if tt.wantErr {
				require.Error(t, err)
				require.ErrorIs(t, err, common.ErrInvalidName)
				assert.Contains(t, err.Error(), tt.filename, "error should name the offending file")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSource, source)
			assert.Equal(t, tt.wantTable, table)
		})
	}
}
