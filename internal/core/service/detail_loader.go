package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/ourletters/love-letters/internal/core/domain"
	"github.com/ourletters/love-letters/internal/core/ports"
)

// DetailLoader builds the letter page and hands out share links.
type DetailLoader struct {
	repo   ports.LetterRepository
	acks   ports.ShareAckStore
	logger zerolog.Logger
}

func NewDetailLoader(repo ports.LetterRepository, acks ports.ShareAckStore, logger zerolog.Logger) *DetailLoader {
	return &DetailLoader{repo: repo, acks: acks, logger: logger}
}

// Load fetches one letter. Unknown or malformed ids and failed fetches all end
// in the not-found view; only the log tells them apart.
func (d *DetailLoader) Load(ctx context.Context, c ports.Client, id string) *ports.DetailView {
	letter, err := d.repo.GetLetter(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrLetterNotFound) {
			d.logger.Error().Err(err).Str("letter_id", id).Msg("error loading letter")
		}
		return &ports.DetailView{Status: ports.DetailNotFound}
	}

	detail := &ports.LetterDetail{
		LetterCard:      toLetterCard(*letter),
		YouTubeMusicURL: letter.YouTubeMusicURL,
		EmbedURL:        letter.MusicEmbed(),
		ShareURL:        domain.ShareURL(c.Origin, letter.ID),
		Copied:          d.copied(ctx, c.ID, letter.ID),
	}
	return &ports.DetailView{Status: ports.DetailFound, Letter: detail}
}

// Share returns the deep link for id and raises the "copied" acknowledgment for
// domain.ShareAckTTL. It never touches navigation or the session.
func (d *DetailLoader) Share(ctx context.Context, c ports.Client, id string) *ports.ShareResult {
	res := &ports.ShareResult{URL: domain.ShareURL(c.Origin, id), TTL: domain.ShareAckTTL}
	if err := d.acks.Mark(ctx, ackKey(c.ID, id), domain.ShareAckTTL); err != nil {
		d.logger.Warn().Err(err).Str("letter_id", id).Msg("failed to record share acknowledgment")
		return res
	}
	res.Copied = true
	return res
}

func (d *DetailLoader) copied(ctx context.Context, clientID, letterID string) bool {
	ok, err := d.acks.Active(ctx, ackKey(clientID, letterID))
	if err != nil {
		d.logger.Warn().Err(err).Str("letter_id", letterID).Msg("failed to read share acknowledgment")
		return false
	}
	return ok
}

func ackKey(clientID, letterID string) string {
	return clientID + ":" + letterID
}
