package service

import (
	"context"
	"testing"
	"time"

	"github.com/ourletters/love-letters/internal/core/domain"
	"github.com/ourletters/love-letters/internal/core/ports"
)

func TestFeedLoader_Load_NewestFirst(t *testing.T) {
	users := newStubUserRepo()
	repo := newStubLetterRepo(users)
	repo.add(domain.Letter{ID: "a", Title: "A", Message: "m", AuthorID: "user-jen", CreatedAt: baseTime})
	repo.add(domain.Letter{ID: "c", Title: "C", Message: "m", AuthorID: "user-kat", CreatedAt: baseTime.Add(2 * time.Hour)})
	repo.add(domain.Letter{ID: "b", Title: "B", Message: "m", AuthorID: "user-jen", CreatedAt: baseTime.Add(time.Hour)})

	view := NewFeedLoader(repo, discardLogger).Load(context.Background())

	if view.Status != ports.FeedReady {
		t.Fatalf("expected ready, got %q", view.Status)
	}
	if len(view.Letters) != 3 {
		t.Fatalf("expected 3 letters, got %d", len(view.Letters))
	}
	for i := 1; i < len(view.Letters); i++ {
		if view.Letters[i].CreatedAt.After(view.Letters[i-1].CreatedAt) {
			t.Fatalf("feed not newest first at %d: %v after %v", i, view.Letters[i].CreatedAt, view.Letters[i-1].CreatedAt)
		}
	}
	if view.Letters[0].ID != "c" {
		t.Errorf("expected newest letter first, got %q", view.Letters[0].ID)
	}
	if view.Letters[0].AuthorName != "Kat" || view.Letters[0].AuthorColor != "#9370DB" {
		t.Errorf("author not joined: %+v", view.Letters[0])
	}
	if view.Letters[0].DisplayDate != "September 7, 2025" {
		t.Errorf("unexpected display date %q", view.Letters[0].DisplayDate)
	}
}

func TestFeedLoader_Load_MissingAuthorFallsBack(t *testing.T) {
	repo := newStubLetterRepo(newStubUserRepo())
	repo.add(domain.Letter{ID: "x", Title: "T", Message: "m", AuthorID: "user-gone", CreatedAt: baseTime})

	view := NewFeedLoader(repo, discardLogger).Load(context.Background())

	card := view.Letters[0]
	if card.AuthorName != domain.FallbackAuthorName {
		t.Errorf("expected fallback name, got %q", card.AuthorName)
	}
	if card.AuthorColor != domain.FallbackAuthorColor {
		t.Errorf("expected fallback color, got %q", card.AuthorColor)
	}
}

func TestFeedLoader_Load_Empty(t *testing.T) {
	view := NewFeedLoader(newStubLetterRepo(newStubUserRepo()), discardLogger).Load(context.Background())

	if view.Status != ports.FeedEmpty {
		t.Fatalf("expected empty, got %q", view.Status)
	}
	if view.Letters == nil || len(view.Letters) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", view.Letters)
	}
}

func TestFeedLoader_Load_BackendErrorDegradesToEmpty(t *testing.T) {
	repo := newStubLetterRepo(newStubUserRepo())
	repo.add(domain.Letter{ID: "a", Title: "A", Message: "m", CreatedAt: baseTime})
	repo.listErr = errBackendDown

	view := NewFeedLoader(repo, discardLogger).Load(context.Background())

	if view.Status != ports.FeedEmpty || len(view.Letters) != 0 {
		t.Fatalf("expected degraded empty feed, got %+v", view)
	}
}
