package apperr

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/stockroom-dev/stockroom-api/internal/api/shared"
	"github.com/stockroom-dev/stockroom-api/internal/domain"
	"github.com/stockroom-dev/stockroom-api/internal/platform/logger"
	"github.com/stockroom-dev/stockroom-api/internal/redact"
	"github.com/stockroom-dev/stockroom-api/internal/service/auth"
	"github.com/stockroom-dev/stockroom-api/internal/store"
)

// Public messages used by the fixed rules.
const (
	MsgValidation        = "Validation error"
	MsgDuplicate         = "Duplicate entry"
	MsgInvalidCredential = "Invalid or expired token"
	MsgInternal          = "Internal server error"
)

// Classification is the client-facing view of a failure.
type Classification struct {
	Category Category
	Status   int
	Message  string
	// Detail is empty in production mode.
	Detail string
}

// Classifier maps errors to classifications. In production mode it hides
// details and raw error text.
type Classifier struct {
	Production bool
	Logger     *slog.Logger
}

// NewClassifier creates a Classifier.
func NewClassifier(production bool, log *slog.Logger) *Classifier {
	return &Classifier{Production: production, Logger: log}
}

// Classify applies the ordered rules and returns the first match.
//
//  1. field validation failure -> ValidationError 400
//  2. uniqueness violation -> DuplicateEntry 409
//  3. credential failure -> InvalidCredential 401
//  4. explicit status (or store not-found) -> that status
//  5. anything else -> InternalError 500
func (c *Classifier) Classify(err error) Classification {
	if err == nil {
		return c.internal(errors.New("nil error classified"))
	}

	switch {
	case errors.Is(err, store.ErrInvalidEntity), errors.Is(err, domain.ErrValidation):
		return c.withDetail(Classification{
			Category: CategoryValidation,
			Status:   http.StatusBadRequest,
			Message:  MsgValidation,
		}, validationDetail(err))

	case errors.Is(err, store.ErrDuplicate):
		return c.withDetail(Classification{
			Category: CategoryDuplicate,
			Status:   http.StatusConflict,
			Message:  MsgDuplicate,
		}, duplicateDetail(err))

	case errors.Is(err, auth.ErrInvalidToken):
		return Classification{
			Category: CategoryInvalidCredential,
			Status:   http.StatusUnauthorized,
			Message:  MsgInvalidCredential,
		}
	}

	var appErr *Error
	if errors.As(err, &appErr) && appErr.Status > 0 {
		return c.explicit(appErr.Category, appErr.Status, appErr.Message)
	}
	if errors.Is(err, store.ErrNotFound) {
		return c.explicit(CategoryNotFound, http.StatusNotFound, notFoundMessage(err))
	}

	return c.internal(err)
}

// Respond classifies err, logs it once and writes the failure envelope.
func (c *Classifier) Respond(w http.ResponseWriter, r *http.Request, err error) {
	cl := c.Classify(err)
	c.log(r, cl, err)
	shared.RespondFail(w, r, cl.Status, cl.Message, cl.Detail)
}

func (c *Classifier) explicit(category Category, status int, message string) Classification {
	if c.Production || message == "" {
		message = http.StatusText(status)
	}
	return Classification{Category: category, Status: status, Message: message}
}

func (c *Classifier) internal(err error) Classification {
	message := MsgInternal
	if !c.Production {
		message = err.Error()
	}
	return Classification{
		Category: CategoryInternal,
		Status:   http.StatusInternalServerError,
		Message:  message,
	}
}

func (c *Classifier) withDetail(cl Classification, detail string) Classification {
	if !c.Production {
		cl.Detail = detail
	}
	return cl
}

func (c *Classifier) log(r *http.Request, cl Classification, err error) {
	log := logger.FromContextOrDefault(r.Context(), c.Logger)

	level := slog.LevelDebug
	switch {
	case cl.Status >= http.StatusInternalServerError:
		level = slog.LevelError
	case cl.Category == CategoryOwnershipDenied:
		level = slog.LevelWarn
	}

	attrs := []slog.Attr{
		slog.String("category", string(cl.Category)),
		slog.Int("status_code", cl.Status),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("trace_id", shared.GetTraceID(r.Context())),
	}
	if err != nil {
		attrs = append(attrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)),
		)
	}

	log.LogAttrs(r.Context(), level, "API error response", attrs...)
}

func validationDetail(err error) string {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve.Field + ": " + ve.Message
	}
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Err != nil {
		return appErr.Err.Error()
	}
	return err.Error()
}

func duplicateDetail(err error) string {
	switch {
	case errors.Is(err, store.ErrEmailExists):
		return "email already registered"
	case errors.Is(err, store.ErrUserNameExists):
		return "user name already taken"
	}
	return err.Error()
}

func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, store.ErrProductNotFound):
		return "Product not found"
	case errors.Is(err, store.ErrAccountNotFound):
		return "Account not found"
	}
	return "Resource not found"
}
