package expense

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound covers a wrong id and a right id owned by someone else; the
// two are deliberately indistinguishable to the caller.
var ErrNotFound = errors.New("expense not found")

type Repository struct {
	Pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{Pool: pool}
}

const expenseColumns = `id, user_id, amount, description, category, payment_method, date, created_at`

func (r *Repository) Insert(ctx context.Context, e *Expense) error {
	err := r.Pool.QueryRow(
		ctx,
		`INSERT INTO expenses (user_id, amount, description, category, payment_method, date)
         VALUES ($1, $2, $3, $4, $5, $6)
         RETURNING id, created_at`,
		e.UserID, e.Amount, e.Description, e.Category, e.PaymentMethod, e.Date,
	).Scan(&e.ID, &e.CreatedAt)
	return err
}

// List returns the requested page plus the total count of matching records
// ignoring pagination. A page past the end yields an empty slice.
func (r *Repository) List(ctx context.Context, userID string, q Query) ([]Expense, int64, error) {
	where, args := q.filterClause(userID)

	var total int64
	err := r.Pool.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM expenses WHERE `+where,
		args...,
	).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	sql := fmt.Sprintf(
		`SELECT %s FROM expenses WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		expenseColumns, where, q.orderClause(), len(args)+1, len(args)+2,
	)
	args = append(args, q.Limit, q.offset())

	rows, err := r.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]Expense, 0, q.Limit)
	for rows.Next() {
		var e Expense
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.Amount, &e.Description,
			&e.Category, &e.PaymentMethod, &e.Date, &e.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Update applies the non-nil fields to the record matching id AND owner.
func (r *Repository) Update(ctx context.Context, userID, id string, f UpdateFields) (*Expense, error) {
	var e Expense
	err := r.Pool.QueryRow(
		ctx,
		`UPDATE expenses SET
		    amount         = COALESCE($3, amount),
		    description    = COALESCE($4, description),
		    category       = COALESCE($5, category),
		    payment_method = COALESCE($6, payment_method),
		    date           = COALESCE($7, date)
		 WHERE id = $1::uuid AND user_id = $2
		 RETURNING `+expenseColumns,
		id, userID, f.Amount, f.Description, f.Category, f.PaymentMethod, f.Date,
	).Scan(
		&e.ID, &e.UserID, &e.Amount, &e.Description,
		&e.Category, &e.PaymentMethod, &e.Date, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// DeleteMany removes the given ids belonging to the owner and reports how
// many records actually went away.
func (r *Repository) DeleteMany(ctx context.Context, userID string, ids []string) (int64, error) {
	ct, err := r.Pool.Exec(
		ctx,
		`DELETE FROM expenses WHERE user_id = $1 AND id = ANY($2::uuid[])`,
		userID, ids,
	)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

// InsertBatch writes all candidates in a single batched round trip. Any
// failure fails the whole call; there is no per-row retry.
func (r *Repository) InsertBatch(ctx context.Context, items []Expense) (int, error) {
	b := &pgx.Batch{}
	for i := range items {
		e := &items[i]
		b.Queue(
			`INSERT INTO expenses (user_id, amount, description, category, payment_method, date)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			e.UserID, e.Amount, e.Description, e.Category, e.PaymentMethod, e.Date,
		)
	}

	br := r.Pool.SendBatch(ctx, b)
	defer br.Close()

	for range items {
		if _, err := br.Exec(); err != nil {
			return 0, err
		}
	}
	return len(items), nil
}
