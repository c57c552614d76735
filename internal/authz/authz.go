// Package authz implements the single-owner rule for mutating owned
// resources: only the owning account may update or delete.
package authz

import (
	"fmt"

	"github.com/stockroom-dev/stockroom-api/internal/apperr"
)

// Decision is the outcome of an ownership check.
type Decision int

const (
	// Deny is the zero value so that an unset Decision never grants access.
	Deny Decision = iota
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// Authorize allows the request only when the requestor owns the resource.
// Non-positive ids never match.
func Authorize(requestorID, ownerID int64) Decision {
	if requestorID <= 0 || ownerID <= 0 || requestorID != ownerID {
		return Deny
	}
	return Allow
}

// RequireOwner returns an OwnershipDenied error unless Authorize allows.
// action is the client-facing failure message, e.g. "Failed to update product".
func RequireOwner(requestorID, ownerID int64, action string) error {
	if Authorize(requestorID, ownerID) == Allow {
		return nil
	}
	return apperr.OwnershipDenied(action,
		fmt.Errorf("account %d does not own resource owned by %d", requestorID, ownerID))
}
