package expense

import (
	"encoding/json"
	"time"
)

// Expense is a single owner-scoped expense record.
type Expense struct {
	ID            string    `db:"id" json:"id"`
	UserID        string    `db:"user_id" json:"user_id"`
	Amount        float64   `db:"amount" json:"amount"`
	Description   string    `db:"description" json:"description"`
	Category      string    `db:"category" json:"category"`
	PaymentMethod string    `db:"payment_method" json:"paymentMethod"`
	Date          time.Time `db:"date" json:"date"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

type CreateExpenseRequest struct {
	Amount        float64 `json:"amount"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	PaymentMethod string  `json:"paymentMethod"`
	Date          string  `json:"date"` // YYYY-MM-DD
}

// UpdateExpenseRequest carries a partial update; nil fields are untouched.
type UpdateExpenseRequest struct {
	Amount        *float64 `json:"amount"`
	Description   *string  `json:"description"`
	Category      *string  `json:"category"`
	PaymentMethod *string  `json:"paymentMethod"`
	Date          *string  `json:"date"`
}

// UpdateFields is the parsed form of UpdateExpenseRequest handed to the store.
type UpdateFields struct {
	Amount        *float64
	Description   *string
	Category      *string
	PaymentMethod *string
	Date          *time.Time
}

type deleteRequest struct {
	IDs idList `json:"ids"`
}

// idList accepts either a single id string or a list of them.
type idList []string

func (l *idList) UnmarshalJSON(data []byte) error {
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*l = many
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*l = []string{one}
	return nil
}

// ListResponse is the envelope returned by the listing endpoint.
type ListResponse struct {
	Expenses      []Expense `json:"expenses"`
	TotalExpenses int64     `json:"totalExpenses"`
	CurrentPage   int       `json:"currentPage"`
	TotalPages    int       `json:"totalPages"`
}
