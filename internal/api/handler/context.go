package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/pet-management/internal/api/middleware"
	"github.com/99minutos/pet-management/internal/core/domain"
)

// ctxUser returns the user injected by the Auth middleware. A missing user
// means the route was mounted without the middleware; callers must answer
// 401 rather than reach the store.
func ctxUser(c echo.Context) (*domain.User, bool) {
	return middleware.UserFromContext(c)
}

// badRequest reports a malformed or incomplete request body. Rendering is
// left to the HTTP error handler.
func badRequest(msg string) error {
	return echo.NewHTTPError(http.StatusBadRequest, msg)
}
