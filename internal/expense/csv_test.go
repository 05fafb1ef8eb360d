package expense

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInserter struct {
	batches [][]Expense
	err     error
}

func (f *fakeInserter) InsertBatch(_ context.Context, items []Expense) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.batches = append(f.batches, items)
	return len(items), nil
}

const csvHeader = "amount,description,category,paymentMethod,date\n"

func TestIngestCSVAllRowsValid(t *testing.T) {
	store := &fakeInserter{}
	ing := &Ingestor{Store: store}

	input := csvHeader +
		"50,lunch,food,cash,2024-01-05\n" +
		"12.30,bus ticket,transport,cash,2024-01-06\n" +
		"99.99,shoes,shopping,credit,2024-01-07\n"

	n, err := ing.IngestCSV(context.Background(), strings.NewReader(input), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	require.Len(t, store.batches, 1, "all rows go in a single batch")
	batch := store.batches[0]
	require.Len(t, batch, 3)

	// Row order is preserved and every record is stamped with the owner.
	assert.Equal(t, "lunch", batch[0].Description)
	assert.Equal(t, "bus ticket", batch[1].Description)
	assert.Equal(t, "shoes", batch[2].Description)
	for _, e := range batch {
		assert.Equal(t, "user-1", e.UserID)
	}
	assert.Equal(t, 50.0, batch[0].Amount)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), batch[0].Date)
}

func TestIngestCSVDropsInvalidRows(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{"missing amount", ",coffee,food,cash,2024-02-01"},
		{"missing description", "5,,food,cash,2024-02-01"},
		{"missing category", "5,coffee,,cash,2024-02-01"},
		{"missing payment method", "5,coffee,food,,2024-02-01"},
		{"missing date", "5,coffee,food,cash,"},
		{"non-numeric amount", "five,coffee,food,cash,2024-02-01"},
		{"negative amount", "-5,coffee,food,cash,2024-02-01"},
		{"zero amount", "0,coffee,food,cash,2024-02-01"},
		{"unparseable date", "5,coffee,food,cash,someday"},
		{"short row", "5,coffee"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeInserter{}
			ing := &Ingestor{Store: store}

			input := csvHeader + tt.row + "\n" + "8,sandwich,food,cash,2024-02-02\n"

			n, err := ing.IngestCSV(context.Background(), strings.NewReader(input), "user-1")
			require.NoError(t, err, "a bad row must not fail the file")
			assert.Equal(t, 1, n)
			require.Len(t, store.batches, 1)
			require.Len(t, store.batches[0], 1)
			assert.Equal(t, "sandwich", store.batches[0][0].Description)
		})
	}
}

func TestIngestCSVNoValidRows(t *testing.T) {
	store := &fakeInserter{}
	ing := &Ingestor{Store: store}

	input := csvHeader + ",,,,\n" + "abc,x,y,z,nope\n"

	_, err := ing.IngestCSV(context.Background(), strings.NewReader(input), "user-1")
	assert.ErrorIs(t, err, ErrNoValidData)
	assert.Empty(t, store.batches, "no insert may happen when nothing validated")
}

func TestIngestCSVEmptyFile(t *testing.T) {
	ing := &Ingestor{Store: &fakeInserter{}}

	_, err := ing.IngestCSV(context.Background(), strings.NewReader(""), "user-1")
	assert.ErrorIs(t, err, ErrNoValidData)
}

func TestIngestCSVMalformedFile(t *testing.T) {
	store := &fakeInserter{}
	ing := &Ingestor{Store: store}

	// An unterminated quote is a stream-level parse error, not a bad row.
	input := csvHeader + "5,\"broken,food,cash,2024-02-01\n"

	_, err := ing.IngestCSV(context.Background(), strings.NewReader(input), "user-1")
	assert.ErrorIs(t, err, ErrProcessing)
	assert.Empty(t, store.batches)
}

func TestIngestCSVSaveFailure(t *testing.T) {
	store := &fakeInserter{err: errors.New("connection reset")}
	ing := &Ingestor{Store: store}

	input := csvHeader + "5,coffee,food,cash,2024-02-01\n"

	_, err := ing.IngestCSV(context.Background(), strings.NewReader(input), "user-1")
	assert.ErrorIs(t, err, ErrSave)
}

func TestIngestCSVReordersColumnsByHeader(t *testing.T) {
	store := &fakeInserter{}
	ing := &Ingestor{Store: store}

	input := "date,category,amount,description,paymentMethod,ignored\n" +
		"2024-03-01,food,15,dinner,credit,extra\n"

	n, err := ing.IngestCSV(context.Background(), strings.NewReader(input), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	e := store.batches[0][0]
	assert.Equal(t, 15.0, e.Amount)
	assert.Equal(t, "dinner", e.Description)
	assert.Equal(t, "food", e.Category)
	assert.Equal(t, "credit", e.PaymentMethod)
}
