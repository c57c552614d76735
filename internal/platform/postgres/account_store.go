package postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/stockroom-dev/stockroom-api/internal/domain"
	"github.com/stockroom-dev/stockroom-api/internal/store"
	"gorm.io/gorm"
)

type accountModel struct {
	ID           int64      `gorm:"column:id;primaryKey"`
	Email        string     `gorm:"column:email"`
	PasswordHash string     `gorm:"column:password_hash"`
	FirstName    string     `gorm:"column:first_name"`
	LastName     string     `gorm:"column:last_name"`
	UserName     *string    `gorm:"column:user_name"`
	Gender       string     `gorm:"column:gender"`
	DOB          *time.Time `gorm:"column:dob"`
	Phone        string     `gorm:"column:phone"`
	IsActive     bool       `gorm:"column:is_active"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (accountModel) TableName() string { return "accounts" }

func accountModelFromDomain(a *domain.Account) accountModel {
	return accountModel{
		ID:           a.ID,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		UserName:     a.UserName,
		Gender:       a.Gender,
		DOB:          a.DOB,
		Phone:        a.Phone,
		IsActive:     a.IsActive,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func (m accountModel) toDomain() *domain.Account {
	return &domain.Account{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		UserName:     m.UserName,
		Gender:       m.Gender,
		DOB:          m.DOB,
		Phone:        m.Phone,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
}

// PostgresAccountStore implements store.AccountStore on gorm.
type PostgresAccountStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewPostgresAccountStore creates a new account store.
// If logger is nil, a default logger will be used.
func NewPostgresAccountStore(db *gorm.DB, logger *slog.Logger) *PostgresAccountStore {
	if db == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresAccountStore{
		db:     db,
		logger: logger.With(slog.String("component", "account_store")),
	}
}

// Ensure PostgresAccountStore implements store.AccountStore interface
var _ store.AccountStore = (*PostgresAccountStore)(nil)

// Create implements store.AccountStore.Create.
func (s *PostgresAccountStore) Create(ctx context.Context, account *domain.Account) error {
	if err := account.Validate(); err != nil {
		return store.InvalidEntity(err)
	}
	if account.PasswordHash == "" {
		return store.InvalidEntity(domain.NewValidationError("password", "must be hashed before storage", nil))
	}

	row := accountModelFromDomain(account)
	row.ID = 0
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		mapped := MapError(err)
		s.logger.Debug("account insert failed", slog.String("error_type", errorKind(mapped)))
		return mapped
	}

	account.ID = row.ID
	account.Password = ""
	return nil
}

// GetByID implements store.AccountStore.GetByID.
func (s *PostgresAccountStore) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	var row accountModel
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrAccountNotFound
		}
		return nil, MapError(err)
	}
	return row.toDomain(), nil
}

// GetByEmail implements store.AccountStore.GetByEmail.
func (s *PostgresAccountStore) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var row accountModel
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrAccountNotFound
		}
		return nil, MapError(err)
	}
	return row.toDomain(), nil
}

// Update implements store.AccountStore.Update.
func (s *PostgresAccountStore) Update(ctx context.Context, account *domain.Account) error {
	if err := account.Validate(); err != nil {
		return store.InvalidEntity(err)
	}

	result := s.db.WithContext(ctx).
		Model(&accountModel{}).
		Where("id = ?", account.ID).
		Updates(map[string]any{
			"password_hash": account.PasswordHash,
			"first_name":    account.FirstName,
			"last_name":     account.LastName,
			"user_name":     account.UserName,
			"gender":        account.Gender,
			"dob":           account.DOB,
			"phone":         account.Phone,
			"is_active":     account.IsActive,
			"updated_at":    account.UpdatedAt.UTC(),
		})
	return checkRowsAffected(result, store.ErrAccountNotFound)
}

// Delete implements store.AccountStore.Delete.
func (s *PostgresAccountStore) Delete(ctx context.Context, id int64) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&accountModel{})
	return checkRowsAffected(result, store.ErrAccountNotFound)
}

// ListPaged implements store.AccountStore.ListPaged.
func (s *PostgresAccountStore) ListPaged(ctx context.Context, limit, offset int) (store.Page[*domain.Account], error) {
	page := store.Page[*domain.Account]{Limit: limit, Offset: offset}

	if err := s.db.WithContext(ctx).Model(&accountModel{}).Count(&page.Total).Error; err != nil {
		return page, MapError(err)
	}

	var rows []accountModel
	if err := s.db.WithContext(ctx).Order("id ASC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return page, MapError(err)
	}

	page.Items = make([]*domain.Account, 0, len(rows))
	for _, row := range rows {
		page.Items = append(page.Items, row.toDomain())
	}
	return page, nil
}

func errorKind(err error) string {
	switch {
	case store.IsDuplicateError(err):
		return "duplicate"
	case errors.Is(err, store.ErrInvalidEntity):
		return "invalid_entity"
	case store.IsNotFoundError(err):
		return "not_found"
	default:
		return "unknown"
	}
}
