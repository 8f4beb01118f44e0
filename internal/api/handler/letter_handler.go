package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ourletters/love-letters/internal/api/metrics"
	"github.com/ourletters/love-letters/internal/core/domain"
	"github.com/ourletters/love-letters/internal/core/ports"
)

// photoField is the multipart field the selected photo arrives in.
const photoField = "photo"

// LetterHandler handles letter submission, sharing and the author list.
type LetterHandler struct {
	service ports.AppService
}

func NewLetterHandler(service ports.AppService) *LetterHandler {
	return &LetterHandler{service: service}
}

// Create handles POST /api/letters.
//
// @Summary      Submit a new letter
// @Description  On success the client is back on the feed. On failure the composer comes back with every field as submitted.
// @Tags         letters
// @Accept       multipart/form-data
// @Produce      json
// @Param        title              formData  string  true   "Title"
// @Param        message            formData  string  true   "Message"
// @Param        author_id          formData  string  false  "Author; defaults to the first user"
// @Param        youtube_music_url  formData  string  false  "YouTube link"
// @Param        photo_mode         formData  string  false  "upload or url"
// @Param        photo_url          formData  string  false  "Photo link in url mode"
// @Param        photo              formData  file    false  "Photo in upload mode, image/*, at most 5 MiB"
// @Success      200                {object}  viewResponse
// @Failure      400                {object}  errorResponse
// @Failure      401                {object}  viewResponse
// @Failure      422                {object}  viewResponse
// @Failure      502                {object}  viewResponse
// @Router       /api/letters [post]
func (h *LetterHandler) Create(c echo.Context) error {
	client, err := clientFrom(c)
	if err != nil {
		return err
	}

	var req createLetterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	draft, err := h.draftFrom(c, req)
	if err != nil {
		return err
	}

	view, err := h.service.Submit(c.Request().Context(), client, draft)
	switch {
	case err == nil:
		metrics.LettersCreatedTotal.WithLabelValues(photoSource(draft)).Inc()
	case view != nil && view.Kind == ports.ViewAdd:
		metrics.LetterSubmitErrorsTotal.WithLabelValues(metrics.SubmitErrorReason(err)).Inc()
	}
	return respondView(c, view, err)
}

func (h *LetterHandler) draftFrom(c echo.Context, req createLetterRequest) (domain.Draft, error) {
	mode, err := domain.ParsePhotoMode(req.PhotoMode)
	if err != nil {
		return domain.Draft{}, err
	}

	draft := domain.NewDraft()
	draft.Title = req.Title
	draft.Message = req.Message
	draft.AuthorID = req.AuthorID
	draft.YouTubeMusicURL = req.YouTubeMusicURL

	if mode == domain.PhotoModeURL {
		draft.SetPhotoURL(req.PhotoURL)
		return draft, nil
	}

	photo, err := readPhoto(c)
	if err != nil {
		return domain.Draft{}, err
	}
	if photo != nil {
		draft.AttachPhoto(photo)
	}
	return draft, nil
}

// readPhoto returns the uploaded file, or nil when none was sent. A file that
// fails the type or size rule is returned without its body; the draft's
// validation rejects it.
func readPhoto(c echo.Context) (*domain.PhotoFile, error) {
	fh, err := c.FormFile(photoField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid photo upload")
	}

	photo := &domain.PhotoFile{
		Name:        fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
	}
	if domain.CheckPhoto(photo.ContentType, photo.Size) != nil {
		return photo, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open photo: %w", err)
	}
	defer f.Close()

	body, err := io.ReadAll(io.LimitReader(f, domain.MaxPhotoBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read photo: %w", err)
	}
	photo.Body = body
	photo.Size = int64(len(body))
	return photo, nil
}

func photoSource(d domain.Draft) string {
	switch {
	case d.WantsUpload():
		return "upload"
	case d.LinkedPhotoURL() != nil:
		return "url"
	}
	return "none"
}

// Share handles POST /api/letters/:id/share.
//
// @Summary      Copy a letter's share link
// @Description  Only from the letter's own page. The letter view reports copied for two seconds afterwards.
// @Tags         letters
// @Produce      json
// @Param        id   path      string  true  "Letter id"
// @Success      200  {object}  shareResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /api/letters/{id}/share [post]
func (h *LetterHandler) Share(c echo.Context) error {
	client, err := clientFrom(c)
	if err != nil {
		return err
	}

	res, err := h.service.Share(c.Request().Context(), client, c.Param("id"))
	if err != nil {
		return err
	}

	metrics.SharesTotal.Inc()
	return c.JSON(http.StatusOK, shareResponse{
		URL:         res.URL,
		Copied:      res.Copied,
		CopiedForMs: res.TTL.Milliseconds(),
	})
}

// Authors handles GET /api/users.
//
// @Summary      List who can write a letter
// @Tags         letters
// @Produce      json
// @Success      200  {array}   authorResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/users [get]
func (h *LetterHandler) Authors(c echo.Context) error {
	client, err := clientFrom(c)
	if err != nil {
		return err
	}

	users, err := h.service.Authors(c.Request().Context(), client)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAuthorResponses(users))
}
