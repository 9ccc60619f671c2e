package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/directory"
	"dispatch/internal/core/domain/model/kernel"
)

// Identity headers set by the authentication layer in front of this service.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUserRole = "X-User-Role"
)

type identity struct {
	id   kernel.UUID
	role directory.Role
}

// identityFrom reads the caller identity from the request headers. Requests
// with missing or malformed identity headers get 401 directly; authorization
// decisions stay in the use cases.
func identityFrom(ctx echo.Context) (identity, error) {
	rawID := ctx.Request().Header.Get(HeaderUserID)
	rawRole := ctx.Request().Header.Get(HeaderUserRole)
	if rawID == "" || rawRole == "" {
		return identity{}, echo.NewHTTPError(http.StatusUnauthorized, "identity headers are required")
	}

	id, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return identity{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid "+HeaderUserID+" header")
	}

	role, err := directory.RoleFromString(rawRole)
	if err != nil {
		return identity{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid "+HeaderUserRole+" header")
	}

	return identity{id: id, role: role}, nil
}

func (i identity) actor() (commands.Actor, error) {
	return commands.NewActor(i.id, i.role)
}
