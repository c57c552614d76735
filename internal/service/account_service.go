package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/stockroom-dev/stockroom-api/internal/apperr"
	"github.com/stockroom-dev/stockroom-api/internal/authz"
	"github.com/stockroom-dev/stockroom-api/internal/domain"
	"github.com/stockroom-dev/stockroom-api/internal/service/auth"
	"github.com/stockroom-dev/stockroom-api/internal/store"
)

// MsgInvalidLogin is returned for every failed login, whatever the cause.
const MsgInvalidLogin = "Invalid email or password"

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	UserName  *string
	Gender    string
	DOB       *time.Time
	Phone     string
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Account   *domain.Account `json:"account"`
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
}

// AccountService provides registration, login and profile operations.
type AccountService interface {
	// Register creates an account and issues a token for it.
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)

	// Login checks credentials and issues a token.
	Login(ctx context.Context, email, password string) (*AuthResult, error)

	// Get returns an account by ID.
	Get(ctx context.Context, id int64) (*domain.Account, error)

	// List returns one page of accounts.
	List(ctx context.Context, limit, offset int) (store.Page[*domain.Account], error)

	// Update applies patch to account id if requestorID is that account.
	Update(ctx context.Context, requestorID, id int64, patch domain.AccountPatch) (*domain.Account, error)

	// Delete removes account id if requestorID is that account.
	Delete(ctx context.Context, requestorID, id int64) error
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	auth.PasswordHasher
	auth.PasswordVerifier
}

type accountService struct {
	accounts store.AccountStore
	tokens   auth.JWTService
	hasher   PasswordHasher
	logger   *slog.Logger
}

// NewAccountService creates an AccountService.
func NewAccountService(
	accounts store.AccountStore,
	tokens auth.JWTService,
	hasher PasswordHasher,
	logger *slog.Logger,
) AccountService {
	if logger == nil {
		logger = slog.Default()
	}
	return &accountService{
		accounts: accounts,
		tokens:   tokens,
		hasher:   hasher,
		logger:   logger.With("component", "account_service"),
	}
}

// Register creates an account and issues a token for it.
func (s *accountService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	account, err := domain.NewAccount(in.Email, in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to register account: %w", err)
	}
	if err := account.Apply(domain.AccountPatch{
		FirstName: &in.FirstName,
		LastName:  &in.LastName,
		UserName:  in.UserName,
		Gender:    &in.Gender,
		DOB:       in.DOB,
		Phone:     &in.Phone,
	}); err != nil {
		return nil, fmt.Errorf("failed to register account: %w", err)
	}

	if err := s.setPassword(account); err != nil {
		return nil, err
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			s.logger.Debug("registration rejected: duplicate account")
		} else {
			s.logger.Error("failed to save account", slog.String("error", err.Error()))
		}
		return nil, fmt.Errorf("failed to register account: %w", err)
	}

	s.logger.Info("account registered", slog.Int64("account_id", account.ID))
	return s.issue(ctx, account)
}

// Login checks credentials and issues a token. Unknown email, wrong
// password and disabled accounts are indistinguishable to the caller.
func (s *accountService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	account, err := s.accounts.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.Unauthenticated(MsgInvalidLogin, auth.ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	if err := s.hasher.Compare(account.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			s.logger.Debug("login rejected: password mismatch", slog.Int64("account_id", account.ID))
			return nil, apperr.Unauthenticated(MsgInvalidLogin, err)
		}
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !account.IsActive {
		s.logger.Debug("login rejected: inactive account", slog.Int64("account_id", account.ID))
		return nil, apperr.Unauthenticated(MsgInvalidLogin, auth.ErrInvalidCredentials)
	}

	return s.issue(ctx, account)
}

// Get returns an account by ID.
func (s *accountService) Get(ctx context.Context, id int64) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve account: %w", err)
	}
	return account, nil
}

// List returns one page of accounts.
func (s *accountService) List(ctx context.Context, limit, offset int) (store.Page[*domain.Account], error) {
	if err := checkPage(limit, offset); err != nil {
		return store.Page[*domain.Account]{}, err
	}
	page, err := s.accounts.ListPaged(ctx, limit, offset)
	if err != nil {
		return store.Page[*domain.Account]{}, fmt.Errorf("failed to list accounts: %w", err)
	}
	return page, nil
}

// Update applies patch to account id if requestorID is that account.
func (s *accountService) Update(
	ctx context.Context,
	requestorID, id int64,
	patch domain.AccountPatch,
) (*domain.Account, error) {
	account, err := s.loadOwned(ctx, requestorID, id, MsgUpdateAccountFailed)
	if err != nil {
		return nil, err
	}

	if err := account.Apply(patch); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	if patch.Password != nil {
		if err := s.setPassword(account); err != nil {
			return nil, err
		}
	}
	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	s.logger.Info("account updated", slog.Int64("account_id", id))
	return account, nil
}

// Delete removes account id if requestorID is that account.
func (s *accountService) Delete(ctx context.Context, requestorID, id int64) error {
	if _, err := s.loadOwned(ctx, requestorID, id, MsgDeleteAccountFailed); err != nil {
		return err
	}
	if err := s.accounts.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	s.logger.Info("account deleted", slog.Int64("account_id", id))
	return nil
}

// An account is owned by itself.
func (s *accountService) loadOwned(ctx context.Context, requestorID, id int64, action string) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve account: %w", err)
	}
	if err := authz.RequireOwner(requestorID, account.ID, action); err != nil {
		s.logger.Warn("ownership check denied",
			slog.Int64("account_id", id),
			slog.Int64("requestor_id", requestorID))
		return nil, err
	}
	return account, nil
}

// setPassword hashes the plaintext password and clears it.
func (s *accountService) setPassword(account *domain.Account) error {
	hash, err := s.hasher.Hash(account.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	account.PasswordHash = hash
	account.Password = ""
	return nil
}

func (s *accountService) issue(ctx context.Context, account *domain.Account) (*AuthResult, error) {
	token, err := s.tokens.GenerateToken(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	// Decoding our own token gives the exact expiry that was signed.
	claims, err := s.tokens.ValidateToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to read issued token: %w", err)
	}
	return &AuthResult{Account: account, Token: token, ExpiresAt: claims.ExpiresAt}, nil
}
