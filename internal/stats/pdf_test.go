package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildStatementPDF(t *testing.T) {
	st := &Statement{
		Username:   "alice",
		Month:      "2024-01",
		TotalSpent: 182.30,
		TotalCount: 3,
		ByCategory: []CategoryTotal{
			{Category: "food", Total: 120.30, Count: 2},
			{Category: "transport", Total: 62.00, Count: 1},
		},
	}

	out, err := BuildStatementPDF(st)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestBuildStatementPDFEmptyMonth(t *testing.T) {
	st := &Statement{Username: "alice", Month: "2024-02"}

	out, err := BuildStatementPDF(st)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}
