package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/shkolla/portal/core/policy"
)

// adminMiddleware rejects any caller whose verified claims are not admin.
func adminMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		actor, err := getContextActor(ctx)
		if err != nil {
			return err
		}
		if !policy.CanManageUsers(actor) {
			return errHttpForbidden
		}
		return next(ctx)
	}
}

// intParam parses a numeric path parameter; a non-numeric value is a 404.
func intParam(ctx echo.Context, name string) (int, error) {
	val, err := strconv.Atoi(ctx.Param(name))
	if err != nil {
		return 0, errHttpNotFound
	}
	return val, nil
}

// intQueryParam parses an optional numeric query parameter; nil when absent.
func intQueryParam(ctx echo.Context, name string) (*int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, name+" must be an integer")
	}
	return &val, nil
}
