package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ourletters/love-letters/internal/api/middleware"
	"github.com/ourletters/love-letters/internal/core/ports"
)

// clientFrom assembles the caller from what the ClientID and Session
// middleware put in the context. Missing values mean the route was mounted
// without them.
func clientFrom(c echo.Context) (ports.Client, error) {
	id, _ := c.Get(middleware.ContextClientID).(string)
	if id == "" {
		return ports.Client{}, echo.NewHTTPError(http.StatusInternalServerError, "missing client identity")
	}

	storage, ok := c.Get(middleware.ContextStorage).(ports.ClientStorage)
	if !ok {
		return ports.Client{}, echo.NewHTTPError(http.StatusInternalServerError, "missing client storage")
	}

	origin, _ := c.Get(middleware.ContextOrigin).(string)
	return ports.Client{ID: id, Storage: storage, Origin: origin}, nil
}
