package finance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"finance-analyzer/models"
	"finance-analyzer/pkg/apperr"
	"finance-analyzer/pkg/store"

	"github.com/shopspring/decimal"
)

const msgTransactionNotFound = "Transaction not found or access denied"

// TransactionInput describes a manually entered transaction.
type TransactionInput struct {
	Amount      decimal.Decimal
	Date        time.Time
	Type        models.TransactionType
	Description string
	CategoryID  *uint
}

// NewTransaction builds a record for userID from in, tagged with source.
// Amounts keep two decimal places. Manual entry and CSV import both go through here.
func NewTransaction(userID uint, in TransactionInput, source models.TransactionSource) models.Transaction {
	return models.Transaction{
		UserID:          userID,
		CategoryID:      in.CategoryID,
		Amount:          in.Amount.Round(2),
		Description:     strings.TrimSpace(in.Description),
		TransactionDate: truncateDay(in.Date),
		Type:            in.Type,
		Source:          source,
	}
}

// Money columns are decimal(12,2).
const (
	MaxIntegerDigits = 10
	// MinExponent bounds the fractional digits accepted before rounding to cents.
	MinExponent = -18
)

var maxMoney = decimal.New(1, MaxIntegerDigits)

// ValidateMoney rejects values that do not fit a decimal(12,2) column once rounded.
// The exponent and digit checks run before any arithmetic, so inputs like 1e50000000 stay cheap.
func ValidateMoney(amount decimal.Decimal) error {
	exp := amount.Exponent()
	if exp < MinExponent {
		return apperr.Validation("Amount has too many decimal places")
	}
	if exp > MaxIntegerDigits || amount.NumDigits()+int(exp) > MaxIntegerDigits {
		return apperr.Validation(fmt.Sprintf("Amount must be less than %s", maxMoney.String()))
	}
	if amount.Round(2).Abs().GreaterThanOrEqual(maxMoney) {
		return apperr.Validation(fmt.Sprintf("Amount must be less than %s", maxMoney.String()))
	}
	return nil
}

// ValidateAmount rejects zero, negative and out-of-range amounts.
func ValidateAmount(amount decimal.Decimal) error {
	if err := ValidateMoney(amount); err != nil {
		return err
	}
	if !amount.Round(2).IsPositive() {
		return apperr.Validation("Amount must be greater than 0")
	}
	return nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type TransactionService struct {
	st *store.Store
}

func NewTransactionService(st *store.Store) *TransactionService {
	return &TransactionService{st: st}
}

func (s *TransactionService) List(ctx context.Context, userID uint) ([]models.Transaction, error) {
	return s.st.Transactions.ListByOwner(ctx, userID)
}

func (s *TransactionService) Get(ctx context.Context, id, userID uint) (*models.Transaction, error) {
	t, err := s.st.Transactions.ByIDAndOwner(ctx, id, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.NotFound(msgTransactionNotFound)
	}
	return t, err
}

func (s *TransactionService) Create(ctx context.Context, userID uint, in TransactionInput) (*models.Transaction, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}
	cat, err := s.ownedCategory(ctx, in.CategoryID, userID)
	if err != nil {
		return nil, err
	}
	t := NewTransaction(userID, in, models.SourceManual)
	if err := s.st.Transactions.Create(ctx, &t); err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}
	t.Category = cat
	return &t, nil
}

// Update rewrites an owned transaction. Source is preserved.
func (s *TransactionService) Update(ctx context.Context, id, userID uint, in TransactionInput) (*models.Transaction, error) {
	t, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if err := s.validate(in); err != nil {
		return nil, err
	}
	cat, err := s.ownedCategory(ctx, in.CategoryID, userID)
	if err != nil {
		return nil, err
	}
	next := NewTransaction(userID, in, t.Source)
	next.ID, next.CreatedAt = t.ID, t.CreatedAt
	if err := s.st.Transactions.Save(ctx, &next); err != nil {
		return nil, fmt.Errorf("update transaction: %w", err)
	}
	next.Category = cat
	return &next, nil
}

func (s *TransactionService) Delete(ctx context.Context, id, userID uint) error {
	err := s.st.Transactions.Delete(ctx, id, userID)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound(msgTransactionNotFound)
	}
	return err
}

func (s *TransactionService) validate(in TransactionInput) error {
	if err := ValidateAmount(in.Amount); err != nil {
		return err
	}
	if in.Date.IsZero() {
		return apperr.Validation("Transaction date is required")
	}
	if _, ok := models.ParseTransactionType(string(in.Type)); !ok {
		return apperr.Validation("Transaction type is required")
	}
	return nil
}

func (s *TransactionService) ownedCategory(ctx context.Context, id *uint, userID uint) (*models.Category, error) {
	if id == nil {
		return nil, nil
	}
	c, err := s.st.Categories.ByIDAndOwner(ctx, *id, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.NotFound(msgCategoryNotFound)
	}
	return c, err
}
