package finance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"finance-analyzer/models"
	"finance-analyzer/pkg/apperr"
	"finance-analyzer/pkg/auth"
	"finance-analyzer/pkg/store"

	"github.com/shopspring/decimal"
)

// MinPasswordLen is the shortest accepted password.
const MinPasswordLen = 6

const (
	msgUsernameTaken = "Username is already taken!"
	msgEmailTaken    = "Email is already in use!"
	msgEmailInUse    = "Email is already in use by another user"
	msgBadLogin      = "Invalid username or password"
)

// SignupInput is a new account request.
type SignupInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// ProfileUpdate changes only the non-nil fields.
type ProfileUpdate struct {
	FirstName                 *string
	LastName                  *string
	Email                     *string
	MonthlyBudgetLimit        *decimal.Decimal
	AutoCategorizationEnabled *bool
	PreferredCurrency         *string
	NotificationEmailEnabled  *bool
	NotificationSmsEnabled    *bool
}

type UserService struct {
	st     *store.Store
	hasher auth.Hasher
	log    *slog.Logger
}

func NewUserService(st *store.Store, hasher auth.Hasher, logger *slog.Logger) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{st: st, hasher: hasher, log: logger.With("component", "users")}
}

// Signup creates the account and its default categories in one transaction.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if in.Username == "" || in.Email == "" {
		return nil, apperr.Validation("username and email are required")
	}
	if len(in.Password) < MinPasswordLen {
		return nil, apperr.Validation(fmt.Sprintf("Password must be at least %d characters", MinPasswordLen))
	}
	if taken, err := s.st.Users.ExistsByUsername(ctx, in.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, apperr.Conflict(msgUsernameTaken)
	}
	if taken, err := s.st.Users.ExistsByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, apperr.Conflict(msgEmailTaken)
	}
	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &models.User{
		Username:       in.Username,
		Email:          in.Email,
		HashedPassword: hashed,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Preferences:    models.DefaultPreferences(),
	}
	err = s.st.WithTx(ctx, func(tx *store.Store) error {
		if err := tx.Users.Create(ctx, user); err != nil {
			return err
		}
		return tx.Categories.CreateBatch(ctx, DefaultCategories(user.ID))
	})
	if errors.Is(err, store.ErrDuplicate) {
		// lost a race with a concurrent signup after the pre-checks passed
		return nil, apperr.Conflict("Username or email is already in use")
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.log.InfoContext(ctx, "new user created", "username", user.Username, "user_id", user.ID)
	return user, nil
}

// Authenticate verifies credentials. Unknown user and wrong password fail identically.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.st.Users.ByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.Authentication(msgBadLogin)
	}
	if err != nil {
		return nil, err
	}
	if !s.hasher.Verify(user.HashedPassword, password) {
		return nil, apperr.Authentication(msgBadLogin)
	}
	return user, nil
}

// ByUsername resolves a token subject.
func (s *UserService) ByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.st.Users.ByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.NotFound("User not found: " + username)
	}
	return user, err
}

// Get returns the caller's own account.
func (s *UserService) Get(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.st.Users.ByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.NotFound("User not found")
	}
	return user, err
}

// UpdateProfile applies upd to the caller's account. A changed email must be unused.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, upd ProfileUpdate) (*models.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if upd.Email != nil {
		email := strings.TrimSpace(*upd.Email)
		if email == "" {
			return nil, apperr.Validation("Email must not be blank")
		}
		if email != user.Email {
			taken, err := s.st.Users.ExistsByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, apperr.Conflict(msgEmailInUse)
			}
			user.Email = email
		}
	}
	if upd.FirstName != nil {
		user.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		user.LastName = *upd.LastName
	}
	p := &user.Preferences
	if upd.MonthlyBudgetLimit != nil {
		if err := ValidateMoney(*upd.MonthlyBudgetLimit); err != nil {
			return nil, err
		}
		if upd.MonthlyBudgetLimit.IsNegative() {
			return nil, apperr.Validation("Monthly budget limit must be positive")
		}
		p.MonthlyBudgetLimit = decimal.NewNullDecimal(upd.MonthlyBudgetLimit.Round(2))
	}
	if upd.AutoCategorizationEnabled != nil {
		p.AutoCategorizationEnabled = *upd.AutoCategorizationEnabled
	}
	if upd.PreferredCurrency != nil {
		p.PreferredCurrency = *upd.PreferredCurrency
	}
	if upd.NotificationEmailEnabled != nil {
		p.NotificationEmailEnabled = *upd.NotificationEmailEnabled
	}
	if upd.NotificationSmsEnabled != nil {
		p.NotificationSmsEnabled = *upd.NotificationSmsEnabled
	}
	if err := s.st.Users.Save(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.Conflict(msgEmailInUse)
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

// ChangePassword requires the current password.
func (s *UserService) ChangePassword(ctx context.Context, userID uint, current, next string) error {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !s.hasher.Verify(user.HashedPassword, current) {
		return apperr.Authentication("Current password is incorrect")
	}
	return s.setPassword(ctx, user, next)
}

// ResetPassword sets a new password without the old one. Operator use only.
func (s *UserService) ResetPassword(ctx context.Context, username, next string) error {
	user, err := s.ByUsername(ctx, username)
	if err != nil {
		return err
	}
	return s.setPassword(ctx, user, next)
}

func (s *UserService) setPassword(ctx context.Context, user *models.User, next string) error {
	if len(next) < MinPasswordLen {
		return apperr.Validation(fmt.Sprintf("Password must be at least %d characters", MinPasswordLen))
	}
	hashed, err := s.hasher.Hash(next)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.HashedPassword = hashed
	return s.st.Users.Save(ctx, user)
}

// Delete removes the account and all owned records.
func (s *UserService) Delete(ctx context.Context, userID uint) error {
	err := s.st.Users.Delete(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound("User not found")
	}
	if err == nil {
		s.log.InfoContext(ctx, "user deleted", "user_id", userID)
	}
	return err
}
