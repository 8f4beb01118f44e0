package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ourletters/love-letters/internal/core/domain"
	"github.com/ourletters/love-letters/internal/core/ports"
)

// ViewHandler serves app startup, re-renders and page transitions.
type ViewHandler struct {
	service ports.AppService
}

func NewViewHandler(service ports.AppService) *ViewHandler {
	return &ViewHandler{service: service}
}

// Bootstrap handles GET /api/bootstrap.
//
// @Summary      Start the app
// @Description  Resolves the startup page. A letterId opens that letter and lets the client in for this app load.
// @Tags         views
// @Produce      json
// @Param        letterId  query     string  false  "Shared letter id"
// @Success      200       {object}  viewResponse
// @Failure      409       {object}  errorResponse
// @Router       /api/bootstrap [get]
func (h *ViewHandler) Bootstrap(c echo.Context) error {
	client, err := clientFrom(c)
	if err != nil {
		return err
	}
	view, err := h.service.Bootstrap(c.Request().Context(), client, c.QueryParam(domain.LetterIDParam))
	return respondView(c, view, err)
}

// Current handles GET /api/view.
//
// @Summary      Render the current page
// @Tags         views
// @Produce      json
// @Success      200  {object}  viewResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/view [get]
func (h *ViewHandler) Current(c echo.Context) error {
	client, err := clientFrom(c)
	if err != nil {
		return err
	}
	view, err := h.service.Current(c.Request().Context(), client)
	return respondView(c, view, err)
}

// Navigate handles POST /api/navigation.
//
// @Summary      Move to another page
// @Tags         views
// @Accept       json
// @Produce      json
// @Param        body  body      navigationRequest  true  "Target page"
// @Success      200   {object}  viewResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  viewResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/navigation [post]
func (h *ViewHandler) Navigate(c echo.Context) error {
	client, err := clientFrom(c)
	if err != nil {
		return err
	}

	var req navigationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	to, ok := domain.ParsePageKind(req.To)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown page")
	}

	view, err := h.service.Navigate(c.Request().Context(), client, to, req.LetterID)
	return respondView(c, view, err)
}

// respondView sends view when the service produced one, even alongside an
// error; otherwise the error goes to the HTTP error handler.
func respondView(c echo.Context, view *ports.View, err error) error {
	if view == nil {
		if err == nil {
			err = errors.New("no view rendered")
		}
		return err
	}
	return c.JSON(viewStatus(err), toViewResponse(view))
}
