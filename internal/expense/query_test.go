package expense

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQueryDefaults(t *testing.T) {
	q, err := ParseQuery(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "", q.Category)
	assert.Equal(t, "", q.PaymentMethod)
	assert.Nil(t, q.DateFrom)
	assert.Nil(t, q.DateTo)
	assert.Equal(t, "date", q.SortColumn)
	assert.True(t, q.SortDesc)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.Limit)
}

func TestParseQuerySort(t *testing.T) {
	tests := []struct {
		name     string
		sort     string
		wantCol  string
		wantDesc bool
	}{
		{"ascending date", "date", "date", false},
		{"descending date", "-date", "date", true},
		{"ascending amount", "amount", "amount", false},
		{"descending amount", "-amount", "amount", true},
		{"camelCase field maps to column", "paymentMethod", "payment_method", false},
		{"unknown field falls back to default", "evil; DROP TABLE", "date", true},
		{"empty keeps default", "", "date", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := ParseQuery(map[string]string{"sort": tt.sort})
			require.NoError(t, err)
			assert.Equal(t, tt.wantCol, q.SortColumn)
			assert.Equal(t, tt.wantDesc, q.SortDesc)
		})
	}
}

func TestParseQueryDates(t *testing.T) {
	q, err := ParseQuery(map[string]string{
		"dateFrom": "2024-01-01",
		"dateTo":   "2024-01-31",
	})
	require.NoError(t, err)
	require.NotNil(t, q.DateFrom)
	require.NotNil(t, q.DateTo)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *q.DateFrom)
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), *q.DateTo)

	_, err = ParseQuery(map[string]string{"dateFrom": "01-01-2024"})
	assert.Error(t, err)

	_, err = ParseQuery(map[string]string{"dateTo": "next tuesday"})
	assert.Error(t, err)

	// Either bound may be supplied on its own.
	q, err = ParseQuery(map[string]string{"dateTo": "2024-06-30"})
	require.NoError(t, err)
	assert.Nil(t, q.DateFrom)
	require.NotNil(t, q.DateTo)
}

func TestParseQueryPagination(t *testing.T) {
	q, err := ParseQuery(map[string]string{"page": "3", "limit": "25"})
	require.NoError(t, err)
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 25, q.Limit)
	assert.Equal(t, 50, q.offset())

	// Garbage and non-positive values keep the defaults.
	for _, bad := range []string{"0", "-1", "abc", "1.5"} {
		q, err := ParseQuery(map[string]string{"page": bad, "limit": bad})
		require.NoError(t, err)
		assert.Equal(t, 1, q.Page, "page=%q", bad)
		assert.Equal(t, 10, q.Limit, "limit=%q", bad)
	}
}

func TestFilterClauseOwnershipAlwaysFirst(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		q         Query
		wantWhere string
		wantArgs  []any
	}{
		{
			name:      "owner only",
			q:         Query{},
			wantWhere: "user_id = $1",
			wantArgs:  []any{"u1"},
		},
		{
			name:      "category",
			q:         Query{Category: "food"},
			wantWhere: "user_id = $1 AND category = $2",
			wantArgs:  []any{"u1", "food"},
		},
		{
			name:      "payment method",
			q:         Query{PaymentMethod: "cash"},
			wantWhere: "user_id = $1 AND payment_method = $2",
			wantArgs:  []any{"u1", "cash"},
		},
		{
			name:      "date range",
			q:         Query{DateFrom: &from, DateTo: &to},
			wantWhere: "user_id = $1 AND date >= $2 AND date <= $3",
			wantArgs:  []any{"u1", from, to},
		},
		{
			name:      "all filters",
			q:         Query{Category: "food", PaymentMethod: "credit", DateFrom: &from, DateTo: &to},
			wantWhere: "user_id = $1 AND category = $2 AND payment_method = $3 AND date >= $4 AND date <= $5",
			wantArgs:  []any{"u1", "food", "credit", from, to},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.q.filterClause("u1")
			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestOrderClause(t *testing.T) {
	q := Query{SortColumn: "amount", SortDesc: true}
	assert.Equal(t, "amount DESC", q.orderClause())

	q = Query{SortColumn: "date", SortDesc: false}
	assert.Equal(t, "date ASC", q.orderClause())
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{95, 10, 10},
		{100, 10, 10},
		{101, 10, 11},
		{7, 3, 3},
		{5, 0, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.total, tt.limit), "total=%d limit=%d", tt.total, tt.limit)
	}
}
