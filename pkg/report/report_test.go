package report

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"finance-analyzer/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	rows     []models.Transaction
	from, to time.Time
	err      error
}

func (f *fakeSource) Between(_ context.Context, _ uint, from, to time.Time) ([]models.Transaction, error) {
	f.from, f.to = from, to
	return f.rows, f.err
}

func tx(typ models.TransactionType, amount string, cat string) models.Transaction {
	t := models.Transaction{Type: typ, Amount: decimal.RequireFromString(amount), TransactionDate: time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC)}
	if cat != "" {
		t.Category = &models.Category{Name: cat}
	}
	return t
}

func TestBuild(t *testing.T) {
	src := &fakeSource{rows: []models.Transaction{
		tx(models.TransactionIncome, "1000", ""),
		tx(models.TransactionExpense, "50.25", "Food"),
		tx(models.TransactionExpense, "20", "Transport"),
		tx(models.TransactionExpense, "30", "Food"),
		tx(models.TransactionExpense, "5", ""),
	}}

	m, err := Build(context.Background(), src, 1, "2024-02")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), src.from)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), src.to)
	assert.Equal(t, 5, m.Count)
	assert.Equal(t, "1000.00", m.Income.StringFixed(2))
	assert.Equal(t, "105.25", m.Expense.StringFixed(2))
	assert.Equal(t, "894.75", m.Net().StringFixed(2))

	require.Len(t, m.ByCategory, 3)
	assert.Equal(t, "Food", m.ByCategory[0].Category)
	assert.Equal(t, "80.25", m.ByCategory[0].Expense.StringFixed(2))
	assert.Equal(t, "Uncategorized", m.ByCategory[2].Category)

	var buf bytes.Buffer
	m.Print(&buf, "alice", true)
	assert.Contains(t, buf.String(), "records=5 income=1000.00 expense=105.25 net=894.75")
	assert.Contains(t, buf.String(), "|2024-02-03|EXPENSE|50.25|")
}

func TestBuildErrors(t *testing.T) {
	_, err := Build(context.Background(), &fakeSource{}, 1, "2024/02")
	assert.Error(t, err)

	_, err = Build(context.Background(), &fakeSource{err: errors.New("boom")}, 1, "2024-02")
	assert.ErrorContains(t, err, "boom")
}

func TestMonthBoundsDecember(t *testing.T) {
	from, to, err := MonthBounds("2023-12")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), to)
}
