package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/directory"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// Error is the JSON error payload returned for every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// respondError translates typed core errors into HTTP status codes. Anything
// unrecognized is a 500 with a generic message so internals do not leak.
func respondError(ctx echo.Context, err error) error {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal error"
	}
	return ctx.JSON(status, Error{Code: status, Message: message})
}

func statusFor(err error) int {
	var notFound *errs.ObjectNotFoundError
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.Is(err, commands.ErrForbidden), errors.Is(err, queries.ErrQueryForbidden):
		return http.StatusForbidden
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrAlreadyAssigned),
		errors.Is(err, order.ErrNotAssigned):
		return http.StatusConflict
	case errors.Is(err, directory.ErrStoreNotFound):
		return http.StatusUnprocessableEntity
	case isBadInput(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func isBadInput(err error) bool {
	var (
		required   *errs.ValueIsRequiredError
		invalid    *errs.ValueIsInvalidError
		outOfRange *errs.ValueIsOutOfRangeError
	)
	return errors.As(err, &required) ||
		errors.As(err, &invalid) ||
		errors.As(err, &outOfRange)
}
