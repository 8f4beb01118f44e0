package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses
// that do not carry a view.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type loginRequest struct {
	Passcode string `json:"passcode" form:"passcode"`
}

type navigationRequest struct {
	To       string `json:"to"        validate:"required,oneof=home add letter"`
	LetterID string `json:"letter_id" validate:"required_if=To letter,max=128"`
}

// createLetterRequest is the multipart form of POST /api/letters. Title and
// message are checked by the composer so the error comes back on the view.
type createLetterRequest struct {
	Title           string `form:"title"             validate:"max=500"`
	Message         string `form:"message"           validate:"max=20000"`
	AuthorID        string `form:"author_id"         validate:"max=128"`
	YouTubeMusicURL string `form:"youtube_music_url" validate:"max=2048"`
	PhotoMode       string `form:"photo_mode"        validate:"omitempty,oneof=upload url"`
	PhotoURL        string `form:"photo_url"         validate:"max=2048"`
}

// --- Response types ---

// viewResponse carries exactly one of the page payloads, matching Kind.
type viewResponse struct {
	Kind    string           `json:"kind"`
	Gate    *gateResponse    `json:"gate,omitempty"`
	Feed    *feedResponse    `json:"feed,omitempty"`
	Letter  *detailResponse  `json:"letter,omitempty"`
	Compose *composeResponse `json:"compose,omitempty"`
}

type gateResponse struct {
	Passcode string `json:"passcode"`
	Error    string `json:"error,omitempty"`
}

type letterCardResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	PhotoURL    *string   `json:"photo_url"`
	AuthorID    string    `json:"author_id"`
	AuthorName  string    `json:"author_name"`
	AuthorColor string    `json:"author_color"`
	CreatedAt   time.Time `json:"created_at"`
	DisplayDate string    `json:"display_date"`
}

type feedResponse struct {
	Status  string               `json:"status"`
	Letters []letterCardResponse `json:"letters"`
}

type letterDetailResponse struct {
	letterCardResponse
	YouTubeMusicURL *string `json:"youtube_music_url"`
	EmbedURL        *string `json:"embed_url"`
	ShareURL        string  `json:"share_url"`
	Copied          bool    `json:"copied"`
}

type detailResponse struct {
	Status string                `json:"status"`
	Letter *letterDetailResponse `json:"letter,omitempty"`
}

type authorResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type draftResponse struct {
	Title           string `json:"title"`
	Message         string `json:"message"`
	AuthorID        string `json:"author_id"`
	YouTubeMusicURL string `json:"youtube_music_url"`
	PhotoMode       string `json:"photo_mode"`
	PhotoURL        string `json:"photo_url"`
	PhotoName       string `json:"photo_name,omitempty"`
}

type composeResponse struct {
	Draft         draftResponse    `json:"draft"`
	Authors       []authorResponse `json:"authors"`
	Error         string           `json:"error,omitempty"`
	MaxPhotoBytes int64            `json:"max_photo_bytes"`
}

type shareResponse struct {
	URL         string `json:"url"`
	Copied      bool   `json:"copied"`
	CopiedForMs int64  `json:"copied_for_ms"`
}
