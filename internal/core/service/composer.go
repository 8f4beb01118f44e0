package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ourletters/love-letters/internal/core/domain"
	"github.com/ourletters/love-letters/internal/core/ports"
)

// Composer validates and submits new letters.
type Composer struct {
	letters ports.LetterRepository
	users   ports.UserRepository
	photos  ports.PhotoStorage
	logger  zerolog.Logger

	now   func() time.Time
	token func() string
}

func NewComposer(letters ports.LetterRepository, users ports.UserRepository, photos ports.PhotoStorage, logger zerolog.Logger) *Composer {
	return &Composer{
		letters: letters,
		users:   users,
		photos:  photos,
		logger:  logger,
		now:     time.Now,
		token:   randomToken,
	}
}

// Authors lists the users a letter can be written by, oldest first.
func (s *Composer) Authors(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("error loading users")
		return nil, err
	}
	return users, nil
}

// Submit runs the whole submission in order: validate locally, resolve the
// author, upload the photo when upload mode has a file, then insert the row.
// Validation failures are returned as-is; any failure after validation is
// reported as domain.ErrSubmitFailed and nothing is inserted.
func (s *Composer) Submit(ctx context.Context, draft domain.Draft) (*domain.Letter, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	authorID, err := s.resolveAuthor(ctx, draft.AuthorID)
	if err != nil {
		return nil, err
	}

	photoURL := draft.LinkedPhotoURL()
	if draft.WantsUpload() {
		url, err := s.uploadPhoto(ctx, draft.Photo)
		if err != nil {
			s.logger.Error().Err(err).Str("file", draft.Photo.Name).Msg("error uploading photo")
			return nil, fmt.Errorf("%w: %w", domain.ErrSubmitFailed, err)
		}
		photoURL = &url
	}

	letter, err := s.letters.CreateLetter(ctx, domain.NewLetter{
		Title:           strings.TrimSpace(draft.Title),
		Message:         strings.TrimSpace(draft.Message),
		PhotoURL:        photoURL,
		YouTubeMusicURL: draft.MusicURL(),
		AuthorID:        authorID,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("error creating letter")
		return nil, fmt.Errorf("%w: %w", domain.ErrSubmitFailed, err)
	}

	s.logger.Info().Str("letter_id", letter.ID).Str("author_id", authorID).Bool("photo", photoURL != nil).Msg("letter created")
	return letter, nil
}

// resolveAuthor defaults to the first user and rejects ids that are not loaded.
func (s *Composer) resolveAuthor(ctx context.Context, authorID string) (string, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("error loading users")
		return "", fmt.Errorf("%w: %w", domain.ErrSubmitFailed, err)
	}
	if len(users) == 0 {
		return "", domain.ErrNoAuthors
	}
	if authorID == "" {
		return users[0].ID, nil
	}
	for _, u := range users {
		if u.ID == authorID {
			return authorID, nil
		}
	}
	return "", domain.ErrUnknownAuthor
}

func (s *Composer) uploadPhoto(ctx context.Context, f *domain.PhotoFile) (string, error) {
	name := s.objectName(f)
	if err := s.photos.Upload(ctx, name, bytes.NewReader(f.Body), f.Size, f.ContentType); err != nil {
		return "", err
	}
	return s.photos.PublicURL(name), nil
}

// objectName returns "<unix millis>-<random token>.<ext>".
func (s *Composer) objectName(f *domain.PhotoFile) string {
	name := fmt.Sprintf("%d-%s", s.now().UnixMilli(), s.token())
	if ext := f.Extension(); ext != "" {
		name += "." + ext
	}
	return name
}

func randomToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
}
