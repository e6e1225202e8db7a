package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"finance-analyzer/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// StoreTestSuite runs every repository against a fresh in-memory SQLite database.
type StoreTestSuite struct {
	suite.Suite
	st  *Store
	ctx context.Context
}

func (s *StoreTestSuite) SetupTest() {
	db, err := Open(DriverSQLite, ":memory:", true)
	require.NoError(s.T(), err)
	require.NoError(s.T(), Migrate(db))
	s.st = New(db)
	s.ctx = context.Background()
}

func (s *StoreTestSuite) TearDownTest() {
	if s.st != nil {
		s.st.Close()
	}
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (s *StoreTestSuite) user(name string) *models.User {
	u := &models.User{Username: name, Email: name + "@example.com", HashedPassword: []byte("x"), Preferences: models.DefaultPreferences()}
	require.NoError(s.T(), s.st.Users.Create(s.ctx, u))
	return u
}

func day(s string) time.Time {
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func (s *StoreTestSuite) TestUserUniqueness() {
	s.user("alice")

	dupName := &models.User{Username: "alice", Email: "other@example.com", HashedPassword: []byte("x")}
	err := s.st.Users.Create(s.ctx, dupName)
	assert.ErrorIs(s.T(), err, ErrDuplicate)

	dupEmail := &models.User{Username: "alice2", Email: "alice@example.com", HashedPassword: []byte("x")}
	err = s.st.Users.Create(s.ctx, dupEmail)
	assert.ErrorIs(s.T(), err, ErrDuplicate)

	ok, err := s.st.Users.ExistsByUsername(s.ctx, "alice")
	require.NoError(s.T(), err)
	assert.True(s.T(), ok)
	ok, err = s.st.Users.ExistsByEmail(s.ctx, "nobody@example.com")
	require.NoError(s.T(), err)
	assert.False(s.T(), ok)
}

func (s *StoreTestSuite) TestUserLookupAndPreferences() {
	u := s.user("alice")
	u.Preferences.MonthlyBudgetLimit = decimal.NewNullDecimal(decimal.RequireFromString("1500.25"))
	u.Preferences.NotificationEmailEnabled = false
	require.NoError(s.T(), s.st.Users.Save(s.ctx, u))

	got, err := s.st.Users.ByUsername(s.ctx, "alice")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), u.ID, got.ID)
	assert.True(s.T(), got.Preferences.MonthlyBudgetLimit.Valid)
	assert.True(s.T(), got.Preferences.MonthlyBudgetLimit.Decimal.Equal(decimal.RequireFromString("1500.25")))
	assert.False(s.T(), got.Preferences.NotificationEmailEnabled)
	assert.Equal(s.T(), models.DefaultCurrency, got.Preferences.PreferredCurrency)

	_, err = s.st.Users.ByUsername(s.ctx, "ghost")
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *StoreTestSuite) TestCategoriesScopedToOwner() {
	alice, bob := s.user("alice"), s.user("bob")
	require.NoError(s.T(), s.st.Categories.CreateBatch(s.ctx, []models.Category{
		{UserID: alice.ID, Name: "Transport"},
		{UserID: alice.ID, Name: "Food"},
	}))
	bobCat := &models.Category{UserID: bob.ID, Name: "Food"}
	require.NoError(s.T(), s.st.Categories.Create(s.ctx, bobCat), "same name under another owner is allowed")

	list, err := s.st.Categories.ListByOwner(s.ctx, alice.ID)
	require.NoError(s.T(), err)
	require.Len(s.T(), list, 2)
	assert.Equal(s.T(), "Food", list[0].Name)
	assert.Equal(s.T(), "Transport", list[1].Name)

	err = s.st.Categories.Create(s.ctx, &models.Category{UserID: alice.ID, Name: "Food"})
	assert.ErrorIs(s.T(), err, ErrDuplicate)

	_, err = s.st.Categories.ByIDAndOwner(s.ctx, bobCat.ID, alice.ID)
	assert.ErrorIs(s.T(), err, ErrNotFound)
	assert.ErrorIs(s.T(), s.st.Categories.Delete(s.ctx, bobCat.ID, alice.ID), ErrNotFound)

	exists, err := s.st.Categories.ExistsByNameAndOwner(s.ctx, "Food", bob.ID)
	require.NoError(s.T(), err)
	assert.True(s.T(), exists)
}

func (s *StoreTestSuite) TestCategoryDeleteDetachesTransactions() {
	alice := s.user("alice")
	cat := &models.Category{UserID: alice.ID, Name: "Food"}
	require.NoError(s.T(), s.st.Categories.Create(s.ctx, cat))
	tx := &models.Transaction{UserID: alice.ID, CategoryID: &cat.ID, Amount: decimal.NewFromInt(5),
		TransactionDate: day("2024-01-01"), Type: models.TransactionExpense, Source: models.SourceManual}
	require.NoError(s.T(), s.st.Transactions.Create(s.ctx, tx))

	require.NoError(s.T(), s.st.Categories.Delete(s.ctx, cat.ID, alice.ID))

	got, err := s.st.Transactions.ByIDAndOwner(s.ctx, tx.ID, alice.ID)
	require.NoError(s.T(), err)
	assert.Nil(s.T(), got.CategoryID)
	assert.Nil(s.T(), got.Category)
}

func (s *StoreTestSuite) TestTransactionsOrderAndScope() {
	alice, bob := s.user("alice"), s.user("bob")
	cat := &models.Category{UserID: alice.ID, Name: "Food"}
	require.NoError(s.T(), s.st.Categories.Create(s.ctx, cat))
	for _, d := range []string{"2024-01-02", "2024-03-01", "2024-02-15"} {
		require.NoError(s.T(), s.st.Transactions.Create(s.ctx, &models.Transaction{
			UserID: alice.ID, CategoryID: &cat.ID, Amount: decimal.RequireFromString("10.50"),
			TransactionDate: day(d), Type: models.TransactionExpense, Source: models.SourceManual,
		}))
	}
	bobTx := &models.Transaction{UserID: bob.ID, Amount: decimal.NewFromInt(1),
		TransactionDate: day("2024-01-01"), Type: models.TransactionIncome, Source: models.SourceCSVUpload}
	require.NoError(s.T(), s.st.Transactions.Create(s.ctx, bobTx))

	list, err := s.st.Transactions.ListByOwner(s.ctx, alice.ID)
	require.NoError(s.T(), err)
	require.Len(s.T(), list, 3)
	assert.Equal(s.T(), "2024-03-01", list[0].TransactionDate.Format(models.DateLayout))
	assert.Equal(s.T(), "2024-02-15", list[1].TransactionDate.Format(models.DateLayout))
	assert.Equal(s.T(), "2024-01-02", list[2].TransactionDate.Format(models.DateLayout))
	require.NotNil(s.T(), list[0].Category)
	assert.Equal(s.T(), "Food", list[0].Category.Name)
	assert.True(s.T(), list[0].Amount.Equal(decimal.RequireFromString("10.5")))

	feb, err := s.st.Transactions.Between(s.ctx, alice.ID, day("2024-02-01"), day("2024-03-01"))
	require.NoError(s.T(), err)
	require.Len(s.T(), feb, 1)
	assert.Equal(s.T(), "2024-02-15", feb[0].TransactionDate.Format(models.DateLayout))

	_, err = s.st.Transactions.ByIDAndOwner(s.ctx, bobTx.ID, alice.ID)
	assert.ErrorIs(s.T(), err, ErrNotFound)
	assert.ErrorIs(s.T(), s.st.Transactions.Delete(s.ctx, bobTx.ID, alice.ID), ErrNotFound)
	assert.NoError(s.T(), s.st.Transactions.Delete(s.ctx, bobTx.ID, bob.ID))
}

func (s *StoreTestSuite) TestUploadLifecycleAndOrder() {
	alice, bob := s.user("alice"), s.user("bob")
	older := &models.Upload{UserID: alice.ID, FileName: "a.csv", FileSize: 10, UploadDate: time.Now().Add(-time.Hour), Status: models.UploadUploaded}
	newer := &models.Upload{UserID: alice.ID, FileName: "b.csv", FileSize: 20, UploadDate: time.Now(), Status: models.UploadUploaded}
	require.NoError(s.T(), s.st.Uploads.Create(s.ctx, older))
	require.NoError(s.T(), s.st.Uploads.Create(s.ctx, newer))

	newer.Status = models.UploadSuccess
	newer.Processed = true
	newer.RecordsCount = 0
	require.NoError(s.T(), s.st.Uploads.Save(s.ctx, newer))

	list, err := s.st.Uploads.ListByOwner(s.ctx, alice.ID)
	require.NoError(s.T(), err)
	require.Len(s.T(), list, 2)
	assert.Equal(s.T(), "b.csv", list[0].FileName)
	assert.Equal(s.T(), models.UploadSuccess, list[0].Status)
	assert.True(s.T(), list[0].Processed)

	_, err = s.st.Uploads.ByIDAndOwner(s.ctx, older.ID, bob.ID)
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *StoreTestSuite) TestUserDeleteCascades() {
	alice, bob := s.user("alice"), s.user("bob")
	require.NoError(s.T(), s.st.Categories.Create(s.ctx, &models.Category{UserID: alice.ID, Name: "Food"}))
	require.NoError(s.T(), s.st.Categories.Create(s.ctx, &models.Category{UserID: bob.ID, Name: "Food"}))
	require.NoError(s.T(), s.st.Transactions.Create(s.ctx, &models.Transaction{UserID: alice.ID, Amount: decimal.NewFromInt(1),
		TransactionDate: day("2024-01-01"), Type: models.TransactionIncome, Source: models.SourceManual}))
	require.NoError(s.T(), s.st.Uploads.Create(s.ctx, &models.Upload{UserID: alice.ID, FileName: "a.csv", UploadDate: time.Now(), Status: models.UploadSuccess}))

	require.NoError(s.T(), s.st.Users.Delete(s.ctx, alice.ID))

	_, err := s.st.Users.ByID(s.ctx, alice.ID)
	assert.ErrorIs(s.T(), err, ErrNotFound)
	cats, _ := s.st.Categories.ListByOwner(s.ctx, alice.ID)
	txs, _ := s.st.Transactions.ListByOwner(s.ctx, alice.ID)
	ups, _ := s.st.Uploads.ListByOwner(s.ctx, alice.ID)
	assert.Empty(s.T(), cats)
	assert.Empty(s.T(), txs)
	assert.Empty(s.T(), ups)

	bobCats, _ := s.st.Categories.ListByOwner(s.ctx, bob.ID)
	assert.Len(s.T(), bobCats, 1)
	assert.ErrorIs(s.T(), s.st.Users.Delete(s.ctx, alice.ID), ErrNotFound)
}

func (s *StoreTestSuite) TestWithTxRollsBack() {
	boom := errors.New("boom")
	err := s.st.WithTx(s.ctx, func(tx *Store) error {
		u := &models.User{Username: "temp", Email: "temp@example.com", HashedPassword: []byte("x")}
		if err := tx.Users.Create(s.ctx, u); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(s.T(), err, boom)
	ok, err := s.st.Users.ExistsByUsername(s.ctx, "temp")
	require.NoError(s.T(), err)
	assert.False(s.T(), ok)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open("mysql", "dsn", true)
	assert.Error(t, err)
}

func TestIsUniqueConstraintError(t *testing.T) {
	assert.True(t, isUniqueConstraintError(errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_username"`)))
	assert.True(t, isUniqueConstraintError(errors.New("UNIQUE constraint failed: users.username")))
	assert.False(t, isUniqueConstraintError(errors.New("connection refused")))
}

func TestConnect(t *testing.T) {
	st, err := Connect(DriverSQLite, ":memory:", true)
	require.NoError(t, err)
	defer st.Close()
	require.NoError(t, st.Ping(context.Background()))
	ok, err := st.Users.ExistsByUsername(context.Background(), "nobody")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = Connect("oracle", "x", false)
	assert.Error(t, err)
}
