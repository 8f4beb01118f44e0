package domain

import (
	"path"
	"strings"
)

// MaxPhotoBytes is the largest photo accepted in upload mode (5 MiB).
const MaxPhotoBytes = 5 * 1024 * 1024

// PhotoMode selects how a letter gets its photo.
type PhotoMode string

const (
	PhotoModeUpload PhotoMode = "upload"
	PhotoModeURL    PhotoMode = "url"
)

// ParsePhotoMode maps a form value to a PhotoMode; empty means upload, the
// composer's default.
func ParsePhotoMode(s string) (PhotoMode, error) {
	switch PhotoMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", PhotoModeUpload:
		return PhotoModeUpload, nil
	case PhotoModeURL:
		return PhotoModeURL, nil
	}
	return "", ErrInvalidPhotoMode
}

// PhotoFile is an image selected for upload.
type PhotoFile struct {
	Name        string
	ContentType string
	Size        int64
	Body        []byte
}

// CheckPhoto applies the selection rules: the declared type must be image/*
// and the size at most MaxPhotoBytes.
func CheckPhoto(contentType string, size int64) error {
	if !strings.HasPrefix(contentType, "image/") {
		return ErrNotAnImage
	}
	if size > MaxPhotoBytes {
		return ErrPhotoTooLarge
	}
	return nil
}

// NewPhotoFile validates a selected file held in memory.
func NewPhotoFile(name, contentType string, body []byte) (*PhotoFile, error) {
	if err := CheckPhoto(contentType, int64(len(body))); err != nil {
		return nil, err
	}
	return &PhotoFile{Name: name, ContentType: contentType, Size: int64(len(body)), Body: body}, nil
}

// Extension returns the original file extension without the dot, or "" when
// the name has none.
func (f *PhotoFile) Extension() string {
	return strings.TrimPrefix(path.Ext(f.Name), ".")
}

// Draft is the composer's in-progress letter. The two photo modes are mutually
// exclusive: switching clears the other mode's data.
type Draft struct {
	Title           string    `json:"title"`
	Message         string    `json:"message"`
	AuthorID        string    `json:"author_id"`
	YouTubeMusicURL string    `json:"youtube_music_url"`
	PhotoMode       PhotoMode `json:"photo_mode"`
	PhotoURL        string    `json:"photo_url"`
	// Photo is only set in upload mode.
	Photo *PhotoFile `json:"-"`
}

// NewDraft returns an empty draft in upload mode.
func NewDraft() Draft {
	return Draft{PhotoMode: PhotoModeUpload}
}

// SwitchPhotoMode changes the photo mode, discarding the other mode's data.
func (d *Draft) SwitchPhotoMode(mode PhotoMode) {
	if d.PhotoMode == mode {
		return
	}
	d.PhotoMode = mode
	switch mode {
	case PhotoModeUpload:
		d.PhotoURL = ""
	case PhotoModeURL:
		d.Photo = nil
	}
}

// AttachPhoto selects a file for upload mode.
func (d *Draft) AttachPhoto(f *PhotoFile) {
	d.SwitchPhotoMode(PhotoModeUpload)
	d.Photo = f
}

// SetPhotoURL selects a link for url mode.
func (d *Draft) SetPhotoURL(url string) {
	d.SwitchPhotoMode(PhotoModeURL)
	d.PhotoURL = url
}

// Validate checks everything that can be rejected before anything is sent:
// the selected photo first, then the required fields.
func (d Draft) Validate() error {
	if d.WantsUpload() {
		if err := CheckPhoto(d.Photo.ContentType, d.Photo.Size); err != nil {
			return err
		}
	}
	if strings.TrimSpace(d.Title) == "" || strings.TrimSpace(d.Message) == "" {
		return ErrMissingFields
	}
	return nil
}

// WantsUpload reports whether submitting must upload a file first.
func (d Draft) WantsUpload() bool {
	return d.PhotoMode == PhotoModeUpload && d.Photo != nil
}

// LinkedPhotoURL returns the trimmed url-mode photo link, or nil.
func (d Draft) LinkedPhotoURL() *string {
	if d.PhotoMode != PhotoModeURL {
		return nil
	}
	return optionalString(d.PhotoURL)
}

// MusicURL returns the trimmed music link, or nil.
func (d Draft) MusicURL() *string {
	return optionalString(d.YouTubeMusicURL)
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
