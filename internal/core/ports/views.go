package ports

import (
	"time"

	"github.com/ourletters/love-letters/internal/core/domain"
)

// ViewKind says which screen the client must render.
type ViewKind string

const (
	ViewGate   ViewKind = "gate"
	ViewHome   ViewKind = "home"
	ViewLetter ViewKind = "letter"
	ViewAdd    ViewKind = "add"
)

// View is exactly one of Gate, Feed, Detail or Compose, matching Kind.
type View struct {
	Kind    ViewKind
	Gate    *GateView
	Feed    *FeedView
	Detail  *DetailView
	Compose *ComposeView
}

// GateView is the passcode prompt.
type GateView struct {
	// Passcode is always empty; a failed attempt clears the field.
	Passcode string
	Error    string
}

// FeedStatus is the settled state of a feed load. While a request is pending
// the client shows its own loading state.
type FeedStatus string

const (
	FeedEmpty FeedStatus = "empty"
	FeedReady FeedStatus = "ready"
)

// LetterCard is a letter prepared for display.
type LetterCard struct {
	ID          string
	Title       string
	Message     string
	PhotoURL    *string
	AuthorID    string
	AuthorName  string
	AuthorColor string
	CreatedAt   time.Time
	DisplayDate string
}

// FeedView is the home page listing.
type FeedView struct {
	Status  FeedStatus
	Letters []LetterCard
}

type DetailStatus string

const (
	DetailFound    DetailStatus = "found"
	DetailNotFound DetailStatus = "not_found"
)

// LetterDetail is a single letter with its derived links.
type LetterDetail struct {
	LetterCard
	YouTubeMusicURL *string
	// EmbedURL is nil when no video id could be extracted.
	EmbedURL *string
	ShareURL string
	Copied   bool
}

// DetailView is the letter page. Letter is nil unless Status is DetailFound.
type DetailView struct {
	Status DetailStatus
	Letter *LetterDetail
}

// ComposeView is the composer with its authors and the last error, if any.
type ComposeView struct {
	Draft   domain.Draft
	Authors []domain.User
	Error   string
}

// ShareResult is returned when a share link is copied.
type ShareResult struct {
	URL    string
	Copied bool
	TTL    time.Duration
}
