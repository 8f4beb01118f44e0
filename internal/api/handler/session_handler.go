package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ourletters/love-letters/internal/api/metrics"
	"github.com/ourletters/love-letters/internal/core/domain"
	"github.com/ourletters/love-letters/internal/core/ports"
)

// SessionHandler passes clients through the passcode gate and back out.
type SessionHandler struct {
	service ports.AppService
}

func NewSessionHandler(service ports.AppService) *SessionHandler {
	return &SessionHandler{service: service}
}

// Login handles POST /api/session.
//
// @Summary      Enter the passcode
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Passcode"
// @Success      200   {object}  viewResponse
// @Failure      401   {object}  viewResponse
// @Router       /api/session [post]
func (h *SessionHandler) Login(c echo.Context) error {
	client, err := clientFrom(c)
	if err != nil {
		return err
	}

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	view, err := h.service.Login(c.Request().Context(), client, req.Passcode)
	switch {
	case err == nil:
		metrics.PasscodeAttemptsTotal.WithLabelValues("accepted").Inc()
	case errors.Is(err, domain.ErrWrongPasscode):
		metrics.PasscodeAttemptsTotal.WithLabelValues("rejected").Inc()
	}
	return respondView(c, view, err)
}

// Logout handles DELETE /api/session.
//
// @Summary      Log out
// @Description  Only available from the home page.
// @Tags         session
// @Produce      json
// @Success      200  {object}  viewResponse
// @Failure      401  {object}  viewResponse
// @Failure      422  {object}  errorResponse
// @Router       /api/session [delete]
func (h *SessionHandler) Logout(c echo.Context) error {
	client, err := clientFrom(c)
	if err != nil {
		return err
	}
	view, err := h.service.Logout(c.Request().Context(), client)
	return respondView(c, view, err)
}
