package handler

import (
	"errors"
	"net/http"

	"github.com/ourletters/love-letters/internal/core/domain"
	"github.com/ourletters/love-letters/internal/core/ports"
)

func toViewResponse(v *ports.View) viewResponse {
	resp := viewResponse{Kind: string(v.Kind)}
	switch {
	case v.Gate != nil:
		resp.Gate = &gateResponse{Passcode: v.Gate.Passcode, Error: v.Gate.Error}
	case v.Feed != nil:
		resp.Feed = toFeedResponse(v.Feed)
	case v.Detail != nil:
		resp.Letter = toDetailResponse(v.Detail)
	case v.Compose != nil:
		resp.Compose = toComposeResponse(v.Compose)
	}
	return resp
}

func toCardResponse(c ports.LetterCard) letterCardResponse {
	return letterCardResponse{
		ID:          c.ID,
		Title:       c.Title,
		Message:     c.Message,
		PhotoURL:    c.PhotoURL,
		AuthorID:    c.AuthorID,
		AuthorName:  c.AuthorName,
		AuthorColor: c.AuthorColor,
		CreatedAt:   c.CreatedAt,
		DisplayDate: c.DisplayDate,
	}
}

func toFeedResponse(f *ports.FeedView) *feedResponse {
	letters := make([]letterCardResponse, 0, len(f.Letters))
	for _, c := range f.Letters {
		letters = append(letters, toCardResponse(c))
	}
	return &feedResponse{Status: string(f.Status), Letters: letters}
}

func toDetailResponse(d *ports.DetailView) *detailResponse {
	resp := &detailResponse{Status: string(d.Status)}
	if d.Letter != nil {
		resp.Letter = &letterDetailResponse{
			letterCardResponse: toCardResponse(d.Letter.LetterCard),
			YouTubeMusicURL:    d.Letter.YouTubeMusicURL,
			EmbedURL:           d.Letter.EmbedURL,
			ShareURL:           d.Letter.ShareURL,
			Copied:             d.Letter.Copied,
		}
	}
	return resp
}

func toAuthorResponses(users []domain.User) []authorResponse {
	out := make([]authorResponse, 0, len(users))
	for _, u := range users {
		out = append(out, authorResponse{ID: u.ID, Name: u.Name, Color: u.Color})
	}
	return out
}

func toComposeResponse(cv *ports.ComposeView) *composeResponse {
	d := cv.Draft
	draft := draftResponse{
		Title:           d.Title,
		Message:         d.Message,
		AuthorID:        d.AuthorID,
		YouTubeMusicURL: d.YouTubeMusicURL,
		PhotoMode:       string(d.PhotoMode),
		PhotoURL:        d.PhotoURL,
	}
	if d.Photo != nil {
		draft.PhotoName = d.Photo.Name
	}
	return &composeResponse{
		Draft:         draft,
		Authors:       toAuthorResponses(cv.Authors),
		Error:         cv.Error,
		MaxPhotoBytes: domain.MaxPhotoBytes,
	}
}

// viewStatus picks the status code a view is sent with.
func viewStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, domain.ErrUnauthenticated), errors.Is(err, domain.ErrWrongPasscode):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrSubmitFailed):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrMissingFields),
		errors.Is(err, domain.ErrNotAnImage),
		errors.Is(err, domain.ErrPhotoTooLarge),
		errors.Is(err, domain.ErrUnknownAuthor),
		errors.Is(err, domain.ErrNoAuthors):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
