package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ourletters/love-letters/internal/core/domain"
)

// DBTX is the subset of *sql.DB and *sql.Tx the repositories use.
type DBTX interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type LetterRepository struct {
	db DBTX
}

func NewLetterRepository(db DBTX) *LetterRepository {
	return &LetterRepository{db: db}
}

const selectLetters = `
SELECT l.id, l.title, l.message, l.photo_url, l.youtube_music_url, l.author_id, l.created_at,
       u.name, u.color
  FROM letters l
  LEFT JOIN users u ON u.id = l.author_id`

type scanner interface {
	Scan(dest ...any) error
}

func scanLetter(s scanner) (domain.Letter, error) {
	var (
		l           domain.Letter
		photo, song sql.NullString
		name, color sql.NullString
	)
	if err := s.Scan(&l.ID, &l.Title, &l.Message, &photo, &song, &l.AuthorID, &l.CreatedAt, &name, &color); err != nil {
		return domain.Letter{}, err
	}
	l.PhotoURL = nullable(photo)
	l.YouTubeMusicURL = nullable(song)
	l.CreatedAt = l.CreatedAt.UTC()
	if name.Valid {
		l.Author = &domain.Author{Name: name.String, Color: color.String}
	}
	return l, nil
}

func (r *LetterRepository) ListLetters(ctx context.Context) ([]domain.Letter, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, selectLetters+` ORDER BY l.created_at DESC, l.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	letters := []domain.Letter{}
	for rows.Next() {
		l, err := scanLetter(rows)
		if err != nil {
			return nil, fmt.Errorf("scan letter: %w", err)
		}
		letters = append(letters, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return letters, nil
}

// GetLetter reports domain.ErrLetterNotFound for ids that are not UUIDs.
func (r *LetterRepository) GetLetter(ctx context.Context, id string) (*domain.Letter, error) {
	key, ok := letterKey(id)
	if !ok {
		return nil, domain.ErrLetterNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	l, err := scanLetter(r.db.QueryRowContext(ctx, selectLetters+` WHERE l.id = $1`, key))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrLetterNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &l, nil
}

// letterKey returns id in the canonical hyphenated form Postgres accepts.
// uuid.Parse also takes urn:uuid: and braced forms, which the server rejects.
func letterKey(id string) (string, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}

func (r *LetterRepository) CreateLetter(ctx context.Context, nl domain.NewLetter) (*domain.Letter, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `
INSERT INTO letters (title, message, photo_url, youtube_music_url, author_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at`

	l := domain.Letter{
		Title:           nl.Title,
		Message:         nl.Message,
		PhotoURL:        nl.PhotoURL,
		YouTubeMusicURL: nl.YouTubeMusicURL,
		AuthorID:        nl.AuthorID,
	}
	err := r.db.QueryRowContext(ctx, query, nl.Title, nl.Message, nl.PhotoURL, nl.YouTubeMusicURL, nl.AuthorID).
		Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	l.CreatedAt = l.CreatedAt.UTC()
	return &l, nil
}

func nullable(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}
