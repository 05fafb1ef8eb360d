package stats

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	Pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{Pool: pool}
}

type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int64   `json:"count"`
}

type MonthTotal struct {
	Month string  `json:"month"` // YYYY-MM
	Total float64 `json:"total"`
	Count int64   `json:"count"`
}

type Overview struct {
	TotalSpent float64         `json:"totalSpent"`
	TotalCount int64           `json:"totalCount"`
	ByCategory []CategoryTotal `json:"byCategory"`
	ByMonth    []MonthTotal    `json:"byMonth"`
}

// Statement is the aggregate backing the monthly PDF report.
type Statement struct {
	Username   string
	Month      string // YYYY-MM
	TotalSpent float64
	TotalCount int64
	ByCategory []CategoryTotal
}

func rangeClause(from, to *time.Time) (string, []any) {
	where := "user_id = $1"
	args := []any{}
	if from != nil {
		args = append(args, *from)
		where += fmt.Sprintf(" AND date >= $%d", len(args)+1)
	}
	if to != nil {
		args = append(args, *to)
		where += fmt.Sprintf(" AND date <= $%d", len(args)+1)
	}
	return where, args
}

// Overview aggregates the owner's spend by category and by month, optionally
// bounded to an inclusive date range.
func (r *Repo) Overview(ctx context.Context, userID string, from, to *time.Time) (Overview, error) {
	where, extra := rangeClause(from, to)
	args := append([]any{userID}, extra...)

	var out Overview

	rows, err := r.Pool.Query(ctx, `
		SELECT category, COALESCE(SUM(amount), 0)::float8, COUNT(*)::bigint
		FROM expenses
		WHERE `+where+`
		GROUP BY category
		ORDER BY 2 DESC`, args...)
	if err != nil {
		return Overview{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var ct CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total, &ct.Count); err != nil {
			return Overview{}, err
		}
		out.ByCategory = append(out.ByCategory, ct)
		out.TotalSpent += ct.Total
		out.TotalCount += ct.Count
	}
	if err := rows.Err(); err != nil {
		return Overview{}, err
	}

	monthRows, err := r.Pool.Query(ctx, `
		SELECT to_char(date, 'YYYY-MM') AS month, COALESCE(SUM(amount), 0)::float8, COUNT(*)::bigint
		FROM expenses
		WHERE `+where+`
		GROUP BY 1
		ORDER BY 1`, args...)
	if err != nil {
		return Overview{}, err
	}
	defer monthRows.Close()

	for monthRows.Next() {
		var mt MonthTotal
		if err := monthRows.Scan(&mt.Month, &mt.Total, &mt.Count); err != nil {
			return Overview{}, err
		}
		out.ByMonth = append(out.ByMonth, mt)
	}
	return out, monthRows.Err()
}

// MonthStatement aggregates a single calendar month for the PDF report.
func (r *Repo) MonthStatement(ctx context.Context, userID, username, month string) (*Statement, error) {
	start, err := time.Parse("2006-01", strings.TrimSpace(month))
	if err != nil {
		return nil, fmt.Errorf("month must be YYYY-MM")
	}
	end := start.AddDate(0, 1, 0)

	rows, err := r.Pool.Query(ctx, `
		SELECT category, COALESCE(SUM(amount), 0)::float8, COUNT(*)::bigint
		FROM expenses
		WHERE user_id = $1 AND date >= $2 AND date < $3
		GROUP BY category
		ORDER BY 2 DESC`, userID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	st := &Statement{Username: username, Month: start.Format("2006-01")}
	for rows.Next() {
		var ct CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total, &ct.Count); err != nil {
			return nil, err
		}
		st.ByCategory = append(st.ByCategory, ct)
		st.TotalSpent += ct.Total
		st.TotalCount += ct.Count
	}
	return st, rows.Err()
}
