package expense

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Pipeline-level outcomes. Per-row validation failures are not errors: bad
// rows are dropped and the rest of the file still goes through.
var (
	ErrProcessing  = errors.New("error processing file")
	ErrNoValidData = errors.New("no valid data found in the CSV file")
	ErrSave        = errors.New("error saving expenses")
)

var csvDateFormats = []string{"2006-01-02", time.RFC3339, "02/01/2006"}

type batchInserter interface {
	InsertBatch(ctx context.Context, items []Expense) (int, error)
}

// Ingestor streams a CSV upload into a single batch insert.
type Ingestor struct {
	Store batchInserter
}

// IngestCSV reads rows incrementally from r, drops rows missing any of the
// five required fields, stamps survivors with the owner and persists them in
// one batch. It returns the number of inserted records.
func (ing *Ingestor) IngestCSV(ctx context.Context, r io.Reader, userID string) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return 0, ErrNoValidData
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrProcessing, err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}

	var batch []Expense
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrProcessing, err)
		}

		e, ok := parseRow(cols, row, userID)
		if !ok {
			continue
		}
		batch = append(batch, e)
	}

	if len(batch) == 0 {
		return 0, ErrNoValidData
	}

	n, err := ing.Store.InsertBatch(ctx, batch)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSave, err)
	}
	return n, nil
}

func parseRow(cols map[string]int, row []string, userID string) (Expense, bool) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	rawAmount := field("amount")
	description := field("description")
	category := field("category")
	paymentMethod := field("paymentMethod")
	rawDate := field("date")

	if rawAmount == "" || description == "" || category == "" || paymentMethod == "" || rawDate == "" {
		return Expense{}, false
	}

	amount, err := strconv.ParseFloat(rawAmount, 64)
	if err != nil || amount <= 0 {
		return Expense{}, false
	}

	date, ok := parseDate(rawDate)
	if !ok {
		return Expense{}, false
	}

	return Expense{
		UserID:        userID,
		Amount:        amount,
		Description:   description,
		Category:      category,
		PaymentMethod: paymentMethod,
		Date:          date,
	}, true
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range csvDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
