package expense

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// Query is the declarative descriptor for the listing endpoint: optional
// exact-match filters, an inclusive date range, a sort order and pagination.
type Query struct {
	Category      string
	PaymentMethod string
	DateFrom      *time.Time
	DateTo        *time.Time
	SortColumn    string
	SortDesc      bool
	Page          int
	Limit         int
}

// sortColumns whitelists the sortable fields and maps them to columns, so
// caller input never reaches the ORDER BY clause verbatim.
var sortColumns = map[string]string{
	"date":          "date",
	"amount":        "amount",
	"category":      "category",
	"paymentMethod": "payment_method",
	"description":   "description",
	"createdAt":     "created_at",
}

// ParseQuery builds a Query from the request's query parameters. A leading
// "-" on sort means descending; the default sort is "-date". Unknown sort
// fields fall back to the default rather than erroring.
func ParseQuery(params map[string]string) (Query, error) {
	q := Query{
		Category:      strings.TrimSpace(params["category"]),
		PaymentMethod: strings.TrimSpace(params["paymentMethod"]),
		SortColumn:    "date",
		SortDesc:      true,
		Page:          defaultPage,
		Limit:         defaultLimit,
	}

	if v := strings.TrimSpace(params["dateFrom"]); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return Query{}, fmt.Errorf("dateFrom must be YYYY-MM-DD")
		}
		q.DateFrom = &t
	}
	if v := strings.TrimSpace(params["dateTo"]); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return Query{}, fmt.Errorf("dateTo must be YYYY-MM-DD")
		}
		q.DateTo = &t
	}

	if v := strings.TrimSpace(params["sort"]); v != "" {
		field := v
		desc := false
		if strings.HasPrefix(field, "-") {
			field = field[1:]
			desc = true
		}
		if col, ok := sortColumns[field]; ok {
			q.SortColumn = col
			q.SortDesc = desc
		}
	}

	if v := strings.TrimSpace(params["page"]); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			q.Page = parsed
		}
	}
	if v := strings.TrimSpace(params["limit"]); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			q.Limit = parsed
		}
	}

	return q, nil
}

// filterClause renders the WHERE conditions with positional args. Ownership
// is always the first condition and cannot be displaced by caller input.
func (q Query) filterClause(userID string) (string, []any) {
	conds := []string{"user_id = $1"}
	args := []any{userID}

	if q.Category != "" {
		args = append(args, q.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if q.PaymentMethod != "" {
		args = append(args, q.PaymentMethod)
		conds = append(conds, fmt.Sprintf("payment_method = $%d", len(args)))
	}
	if q.DateFrom != nil {
		args = append(args, *q.DateFrom)
		conds = append(conds, fmt.Sprintf("date >= $%d", len(args)))
	}
	if q.DateTo != nil {
		args = append(args, *q.DateTo)
		conds = append(conds, fmt.Sprintf("date <= $%d", len(args)))
	}

	return strings.Join(conds, " AND "), args
}

func (q Query) orderClause() string {
	dir := "ASC"
	if q.SortDesc {
		dir = "DESC"
	}
	return q.SortColumn + " " + dir
}

func (q Query) offset() int {
	return (q.Page - 1) * q.Limit
}

// TotalPages is ceil(total/limit); 0 when nothing matched.
func TotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
