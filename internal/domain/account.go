package domain

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Password length bounds. 72 bytes is bcrypt's practical limit.
const (
	MinPasswordLength = 12
	MaxPasswordLength = 72
)

// Genders accepted by Account.Validate. The empty string means unset.
var validGenders = map[string]struct{}{
	"male": {}, "female": {}, "other": {}, "": {},
}

var fieldValidator = validator.New()

// Account represents a registered user. Accounts own products.
type Account struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email"`
	Password     string     `json:"-"` // plaintext, only set while registering or changing it
	PasswordHash string     `json:"-"`
	FirstName    string     `json:"firstName,omitempty"`
	LastName     string     `json:"lastName,omitempty"`
	UserName     *string    `json:"userName,omitempty"`
	Gender       string     `json:"gender,omitempty"`
	DOB          *time.Time `json:"dob,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	IsActive     bool       `json:"isActive"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// AccountPatch carries the optional fields of a profile update. Nil fields
// are left untouched.
type AccountPatch struct {
	FirstName *string
	LastName  *string
	UserName  *string
	Gender    *string
	DOB       *time.Time
	Phone     *string
	Password  *string
}

// NewAccount creates an active Account with a normalized email and the
// plaintext password set. The caller hashes the password before storage.
func NewAccount(email, password string) (*Account, error) {
	now := time.Now().UTC()
	a := &Account{
		Email:     NormalizeEmail(email),
		Password:  password,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Validate checks if the Account has valid data.
func (a *Account) Validate() error {
	if a.Email == "" {
		return NewValidationError("email", "is required", nil)
	}
	if err := fieldValidator.Var(a.Email, "email"); err != nil {
		return NewValidationError("email", "must be a valid email address", nil)
	}

	if _, ok := validGenders[a.Gender]; !ok {
		return NewValidationError("gender", "must be one of male, female, other", nil)
	}

	if a.UserName != nil && strings.TrimSpace(*a.UserName) == "" {
		return NewValidationError("userName", "cannot be blank", nil)
	}

	if a.Password != "" {
		switch {
		case len(a.Password) < MinPasswordLength:
			return NewValidationError("password", "must be at least 12 characters long", nil)
		case len(a.Password) > MaxPasswordLength:
			return NewValidationError("password", "must be at most 72 characters long", nil)
		}
	} else if a.PasswordHash == "" {
		return NewValidationError("password", "is required", nil)
	}

	return nil
}

// Apply copies the non-nil fields of p onto the account and validates the
// result. The account is left unchanged when validation fails.
func (a *Account) Apply(p AccountPatch) error {
	updated := *a
	if p.FirstName != nil {
		updated.FirstName = strings.TrimSpace(*p.FirstName)
	}
	if p.LastName != nil {
		updated.LastName = strings.TrimSpace(*p.LastName)
	}
	if p.UserName != nil {
		name := strings.TrimSpace(*p.UserName)
		updated.UserName = &name
	}
	if p.Gender != nil {
		updated.Gender = strings.ToLower(strings.TrimSpace(*p.Gender))
	}
	if p.DOB != nil {
		dob := p.DOB.UTC()
		updated.DOB = &dob
	}
	if p.Phone != nil {
		updated.Phone = strings.TrimSpace(*p.Phone)
	}
	if p.Password != nil {
		updated.Password = *p.Password
		if updated.Password == "" {
			return NewValidationError("password", "cannot be empty", nil)
		}
	}

	if err := updated.Validate(); err != nil {
		return err
	}
	updated.UpdatedAt = time.Now().UTC()
	*a = updated
	return nil
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
