package service

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/ourletters/love-letters/internal/core/domain"
	"github.com/ourletters/love-letters/internal/core/ports"
)

// FeedLoader builds the home page listing.
type FeedLoader struct {
	repo   ports.LetterRepository
	logger zerolog.Logger
}

func NewFeedLoader(repo ports.LetterRepository, logger zerolog.Logger) *FeedLoader {
	return &FeedLoader{repo: repo, logger: logger}
}

// Load fetches all letters newest first. A failed fetch is logged and shown as
// an empty feed.
func (f *FeedLoader) Load(ctx context.Context) *ports.FeedView {
	letters, err := f.repo.ListLetters(ctx)
	if err != nil {
		f.logger.Error().Err(err).Msg("error loading letters")
		return &ports.FeedView{Status: ports.FeedEmpty, Letters: []ports.LetterCard{}}
	}
	if len(letters) == 0 {
		return &ports.FeedView{Status: ports.FeedEmpty, Letters: []ports.LetterCard{}}
	}

	// Stores already order by created_at; keep the order stable for ties.
	sort.SliceStable(letters, func(i, j int) bool {
		return letters[i].CreatedAt.After(letters[j].CreatedAt)
	})

	cards := make([]ports.LetterCard, 0, len(letters))
	for _, l := range letters {
		cards = append(cards, toLetterCard(l))
	}
	return &ports.FeedView{Status: ports.FeedReady, Letters: cards}
}

func toLetterCard(l domain.Letter) ports.LetterCard {
	return ports.LetterCard{
		ID:          l.ID,
		Title:       l.Title,
		Message:     l.Message,
		PhotoURL:    l.PhotoURL,
		AuthorID:    l.AuthorID,
		AuthorName:  l.AuthorName(),
		AuthorColor: l.AuthorColor(),
		CreatedAt:   l.CreatedAt,
		DisplayDate: l.DisplayDate(),
	}
}
