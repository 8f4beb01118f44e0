package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ourletters/love-letters/internal/core/domain"
)

func TestGetLetter_MalformedIDIsNotFound(t *testing.T) {
	r := &LetterRepository{}
	for _, id := range []string{"", "not-an-object-id", "00000000-0000-0000-0000-000000000000"} {
		if _, err := r.GetLetter(context.Background(), id); !errors.Is(err, domain.ErrLetterNotFound) {
			t.Errorf("%q: expected ErrLetterNotFound, got %v", id, err)
		}
	}
}

func TestLetterDocument_ToDomain(t *testing.T) {
	oid := primitive.NewObjectID()
	created := time.Date(2025, time.September, 7, 10, 0, 0, 0, time.FixedZone("CEST", 2*3600))

	d := letterDocument{ID: oid, Title: "t", Message: "m", AuthorID: "u1", CreatedAt: created}
	l := d.toDomain()
	if l.ID != oid.Hex() || l.Author != nil {
		t.Fatalf("unexpected letter %+v", l)
	}
	if !l.CreatedAt.Equal(created) || l.CreatedAt.Location() != time.UTC {
		t.Fatalf("created_at must be normalised to UTC, got %v", l.CreatedAt)
	}
	if l.AuthorName() != domain.FallbackAuthorName {
		t.Fatal("unjoined author must fall back")
	}

	d.Users = []userDocument{{Name: "Kat", Color: "#9370DB"}}
	if l := d.toDomain(); l.Author == nil || l.Author.Name != "Kat" {
		t.Fatalf("joined author missing: %+v", l.Author)
	}
}
