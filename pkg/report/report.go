// Package report summarises a user's transactions for one calendar month (UTC).
package report

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"finance-analyzer/models"

	"github.com/shopspring/decimal"
)

// MonthLayout is the accepted month format.
const MonthLayout = "2006-01"

// Source lists a user's transactions dated in [from, to).
type Source interface {
	Between(ctx context.Context, userID uint, from, to time.Time) ([]models.Transaction, error)
}

// CategoryTotal is the expense total for one category name ("Uncategorized" when unset).
type CategoryTotal struct {
	Category string
	Expense  decimal.Decimal
}

type Monthly struct {
	Month        string
	From, To     time.Time
	Count        int
	Income       decimal.Decimal
	Expense      decimal.Decimal
	ByCategory   []CategoryTotal
	Transactions []models.Transaction
}

// Net is income minus expense.
func (m *Monthly) Net() decimal.Decimal { return m.Income.Sub(m.Expense) }

// MonthBounds returns the first instant of month and of the following month.
func MonthBounds(month string) (time.Time, time.Time, error) {
	t, err := time.Parse(MonthLayout, month)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid month %q, expected YYYY-MM", month)
	}
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0), nil
}

// Build loads and totals month for userID.
func Build(ctx context.Context, src Source, userID uint, month string) (*Monthly, error) {
	from, to, err := MonthBounds(month)
	if err != nil {
		return nil, err
	}
	rows, err := src.Between(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	m := &Monthly{Month: month, From: from, To: to, Count: len(rows), Transactions: rows}
	byCat := map[string]decimal.Decimal{}
	for _, t := range rows {
		switch t.Type {
		case models.TransactionIncome:
			m.Income = m.Income.Add(t.Amount)
		case models.TransactionExpense:
			m.Expense = m.Expense.Add(t.Amount)
			name := "Uncategorized"
			if t.Category != nil {
				name = t.Category.Name
			}
			byCat[name] = byCat[name].Add(t.Amount)
		}
	}
	for name, total := range byCat {
		m.ByCategory = append(m.ByCategory, CategoryTotal{Category: name, Expense: total})
	}
	sort.Slice(m.ByCategory, func(i, j int) bool {
		if c := m.ByCategory[i].Expense.Cmp(m.ByCategory[j].Expense); c != 0 {
			return c > 0
		}
		return m.ByCategory[i].Category < m.ByCategory[j].Category
	})
	return m, nil
}

// Print writes a human-readable summary, with one line per transaction when list is set.
func (m *Monthly) Print(w io.Writer, username string, list bool) {
	fmt.Fprintf(w, "Report for user=%s month=%s (UTC):\n", username, m.Month)
	fmt.Fprintf(w, "  records=%d income=%s expense=%s net=%s\n",
		m.Count, m.Income.StringFixed(2), m.Expense.StringFixed(2), m.Net().StringFixed(2))
	for _, c := range m.ByCategory {
		fmt.Fprintf(w, "  %-24s %s\n", c.Category, c.Expense.StringFixed(2))
	}
	if !list {
		return
	}
	for _, t := range m.Transactions {
		fmt.Fprintf(w, "%d|%s|%s|%s|%s|%s\n", t.ID, t.TransactionDate.Format(models.DateLayout), t.Type, t.Amount.StringFixed(2), t.Source, t.Description)
	}
}
