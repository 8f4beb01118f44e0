package ports

import (
	"context"

	"github.com/ourletters/love-letters/internal/core/domain"
)

// LetterRepository is the letters table of the backend data service.
type LetterRepository interface {
	// ListLetters returns every letter with its author joined where possible,
	// newest first.
	ListLetters(ctx context.Context) ([]domain.Letter, error)
	// GetLetter returns domain.ErrLetterNotFound when no letter has that id,
	// including ids the store could never have issued.
	GetLetter(ctx context.Context, id string) (*domain.Letter, error)
	// CreateLetter inserts a single row; the store assigns id and created_at.
	CreateLetter(ctx context.Context, l domain.NewLetter) (*domain.Letter, error)
}

// UserRepository is the read-only users table.
type UserRepository interface {
	// ListUsers returns users ordered by created_at ascending.
	ListUsers(ctx context.Context) ([]domain.User, error)
}
