package domain

import "time"

// Display fallbacks used when a letter's author could not be joined.
const (
	FallbackAuthorName  = "Unknown"
	FallbackAuthorColor = "#FFB6C1"
)

// DisplayDateLayout renders dates the way the feed and the detail page show them.
const DisplayDateLayout = "January 2, 2006"

// Author is the display metadata joined from users onto a letter.
type Author struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Letter is immutable once created.
type Letter struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Message         string    `json:"message"`
	PhotoURL        *string   `json:"photo_url"`
	YouTubeMusicURL *string   `json:"youtube_music_url"`
	AuthorID        string    `json:"author_id"`
	CreatedAt       time.Time `json:"created_at"`
	// Author is nil when the join found no matching user.
	Author *Author `json:"users,omitempty"`
}

// AuthorName returns the joined author name or the fallback label.
func (l Letter) AuthorName() string {
	if l.Author == nil || l.Author.Name == "" {
		return FallbackAuthorName
	}
	return l.Author.Name
}

// AuthorColor returns the joined author color or the fallback color.
func (l Letter) AuthorColor() string {
	if l.Author == nil || l.Author.Color == "" {
		return FallbackAuthorColor
	}
	return l.Author.Color
}

// DisplayDate formats CreatedAt as "Month D, YYYY".
func (l Letter) DisplayDate() string {
	return l.CreatedAt.Format(DisplayDateLayout)
}

// NewLetter carries the resolved fields of a letter about to be inserted.
// The store assigns ID and CreatedAt.
type NewLetter struct {
	Title           string
	Message         string
	PhotoURL        *string
	YouTubeMusicURL *string
	AuthorID        string
}
