package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/stockroom-dev/stockroom-api/internal/domain"
	"github.com/stockroom-dev/stockroom-api/internal/service"
)

// RegisterRequest defines the payload for the account registration endpoint.
type RegisterRequest struct {
	Email     string     `json:"email"               validate:"required,email"`
	Password  string     `json:"password"            validate:"required,min=12,max=72"`
	FirstName string     `json:"firstName,omitempty" validate:"max=100"`
	LastName  string     `json:"lastName,omitempty"  validate:"max=100"`
	UserName  *string    `json:"userName,omitempty"  validate:"omitempty,min=1,max=50"`
	Gender    string     `json:"gender,omitempty"    validate:"omitempty,oneof=male female other"`
	DOB       *time.Time `json:"dob,omitempty"`
	Phone     string     `json:"phone,omitempty"     validate:"max=30"`
}

func (r RegisterRequest) toInput() service.RegisterInput {
	return service.RegisterInput{
		Email:     r.Email,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		UserName:  r.UserName,
		Gender:    r.Gender,
		DOB:       r.DOB,
		Phone:     r.Phone,
	}
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateAccountRequest defines the payload for profile updates. Omitted
// fields are left unchanged.
type UpdateAccountRequest struct {
	FirstName *string    `json:"firstName" validate:"omitempty,max=100"`
	LastName  *string    `json:"lastName"  validate:"omitempty,max=100"`
	UserName  *string    `json:"userName"  validate:"omitempty,min=1,max=50"`
	Gender    *string    `json:"gender"    validate:"omitempty,oneof=male female other"`
	DOB       *time.Time `json:"dob"`
	Phone     *string    `json:"phone"     validate:"omitempty,max=30"`
	Password  *string    `json:"password"  validate:"omitempty,min=12,max=72"`
}

func (r UpdateAccountRequest) toPatch() domain.AccountPatch {
	return domain.AccountPatch{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		UserName:  r.UserName,
		Gender:    r.Gender,
		DOB:       r.DOB,
		Phone:     r.Phone,
		Password:  r.Password,
	}
}

// CreateProductRequest defines the payload for creating a product.
type CreateProductRequest struct {
	Name        string     `json:"name"        validate:"required,max=255"`
	Description string     `json:"description"`
	Price       *FlexFloat `json:"price"       validate:"required"`
	Stock       FlexInt    `json:"stock"`
	ImageURL    string     `json:"imageUrl"    validate:"omitempty,url"`
}

func (r CreateProductRequest) toInput() service.ProductInput {
	input := service.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		Stock:       int(r.Stock),
		ImageURL:    r.ImageURL,
	}
	if r.Price != nil {
		input.Price = float64(*r.Price)
	}
	return input
}

// UpdateProductRequest defines the payload for updating a product. Omitted
// fields are left unchanged.
type UpdateProductRequest struct {
	Name        *string    `json:"name"        validate:"omitempty,min=1,max=255"`
	Description *string    `json:"description"`
	Price       *FlexFloat `json:"price"`
	Stock       *FlexInt   `json:"stock"`
	ImageURL    *string    `json:"imageUrl"    validate:"omitempty,url"`
}

func (r UpdateProductRequest) toPatch() domain.ProductPatch {
	patch := domain.ProductPatch{
		Name:        r.Name,
		Description: r.Description,
		ImageURL:    r.ImageURL,
	}
	if r.Price != nil {
		v := float64(*r.Price)
		patch.Price = &v
	}
	if r.Stock != nil {
		v := int(*r.Stock)
		patch.Stock = &v
	}
	return patch
}

// FlexFloat accepts a JSON number or a string holding one, e.g. 1.5 or "1.50".
type FlexFloat float64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	raw, err := numberText(data, "price")
	if err != nil {
		return err
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return domain.NewValidationError("price", "must be a number", nil)
	}
	*f = FlexFloat(v)
	return nil
}

// FlexInt accepts a JSON integer or a string holding one, e.g. 10 or "10".
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler.
func (n *FlexInt) UnmarshalJSON(data []byte) error {
	raw, err := numberText(data, "stock")
	if err != nil {
		return err
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return domain.NewValidationError("stock", "must be a whole number", nil)
	}
	*n = FlexInt(v)
	return nil
}

// numberText returns the literal text of a JSON number or numeric string.
func numberText(data []byte, field string) (string, error) {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return "0", nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", fmt.Errorf("decode %s: %w", field, err)
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return "", domain.NewValidationError(field, "must not be empty", nil)
		}
		return s, nil
	}
	return string(data), nil
}
