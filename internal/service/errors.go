package service

import (
	"errors"

	"github.com/stockroom-dev/stockroom-api/internal/apperr"
)

// Paging bounds for list operations.
const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// Messages attached to ownership denials. They match the generic
// mutation-failure wording so a denied request reads like any failed write.
const (
	MsgUpdateProductFailed = "Failed to update product"
	MsgDeleteProductFailed = "Failed to delete product"
	MsgUpdateAccountFailed = "Failed to update account"
	MsgDeleteAccountFailed = "Failed to delete account"
)

// ErrInvalidPage indicates a limit outside 1..MaxPageLimit or a negative offset.
var ErrInvalidPage = errors.New("invalid pagination parameters")

// checkPage validates list paging parameters.
func checkPage(limit, offset int) error {
	if limit < 1 || limit > MaxPageLimit || offset < 0 {
		return apperr.BadRequest("limit must be between 1 and 100 and offset must not be negative", ErrInvalidPage)
	}
	return nil
}
