package domain

import "errors"

// Messages are shown to the user verbatim.
var (
	ErrWrongPasscode   = errors.New("Wrong passcode. Try again!")
	ErrMissingFields   = errors.New("Please fill in the title and message")
	ErrNotAnImage      = errors.New("Please select an image file")
	ErrPhotoTooLarge   = errors.New("Photo must be smaller than 5MB")
	ErrSubmitFailed    = errors.New("Failed to create letter. Please try again.")
	ErrUnknownAuthor   = errors.New("Please choose who is writing this letter")
	ErrNoAuthors       = errors.New("No authors are available yet")
	ErrLetterNotFound  = errors.New("letter not found")
	ErrUnauthenticated = errors.New("passcode required")
)

var (
	ErrEmptyLetterID     = errors.New("letter id must not be empty")
	ErrInvalidTransition = errors.New("invalid page transition")
	ErrLogoutNotAllowed  = errors.New("logout is only available from the home page")
	ErrStaleView         = errors.New("view changed while loading")
	ErrInvalidPhotoMode  = errors.New("invalid photo mode")
)
