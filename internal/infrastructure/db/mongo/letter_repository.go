package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ourletters/love-letters/internal/core/domain"
)

const collectionLetters = "letters"

type LetterRepository struct {
	col *mongo.Collection
	now func() time.Time
}

func NewLetterRepository(db *mongo.Database) *LetterRepository {
	return &LetterRepository{col: db.Collection(collectionLetters), now: time.Now}
}

type letterDocument struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Title           string             `bson:"title"`
	Message         string             `bson:"message"`
	PhotoURL        *string            `bson:"photo_url"`
	YouTubeMusicURL *string            `bson:"youtube_music_url"`
	AuthorID        string             `bson:"author_id"`
	CreatedAt       time.Time          `bson:"created_at"`
	// Users holds the $lookup result: zero or one matching user.
	Users []userDocument `bson:"users,omitempty"`
}

func (d letterDocument) toDomain() domain.Letter {
	l := domain.Letter{
		ID:              d.ID.Hex(),
		Title:           d.Title,
		Message:         d.Message,
		PhotoURL:        d.PhotoURL,
		YouTubeMusicURL: d.YouTubeMusicURL,
		AuthorID:        d.AuthorID,
		CreatedAt:       d.CreatedAt.UTC(),
	}
	if len(d.Users) > 0 {
		l.Author = &domain.Author{Name: d.Users[0].Name, Color: d.Users[0].Color}
	}
	return l
}

// joinAuthor pipes each letter through a $lookup on users keyed by the hex of
// the user's ObjectID, which is what author_id stores.
func joinAuthor() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from": collectionUsers,
			"let":  bson.M{"author": "$author_id"},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{"$expr": bson.M{"$eq": bson.A{bson.M{"$toString": "$_id"}, "$$author"}}}},
				bson.M{"$project": bson.M{"name": 1, "color": 1}},
				bson.M{"$limit": 1},
			},
			"as": "users",
		}}},
	}
}

// ListLetters returns every letter newest first; ties on created_at fall back
// to _id descending.
func (r *LetterRepository) ListLetters(ctx context.Context) ([]domain.Letter, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := append(mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}}},
	}, joinAuthor()...)

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list letters: %w", err)
	}
	defer cur.Close(ctx)

	var docs []letterDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode letters: %w", err)
	}

	letters := make([]domain.Letter, 0, len(docs))
	for _, d := range docs {
		letters = append(letters, d.toDomain())
	}
	return letters, nil
}

// GetLetter reports domain.ErrLetterNotFound for ids that are not ObjectIDs.
func (r *LetterRepository) GetLetter(ctx context.Context, id string) (*domain.Letter, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrLetterNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := append(mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": oid}}},
		{{Key: "$limit", Value: 1}},
	}, joinAuthor()...)

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("get letter: %w", err)
	}
	defer cur.Close(ctx)

	if !cur.Next(ctx) {
		if err := cur.Err(); err != nil {
			return nil, fmt.Errorf("get letter: %w", err)
		}
		return nil, domain.ErrLetterNotFound
	}
	var d letterDocument
	if err := cur.Decode(&d); err != nil {
		return nil, fmt.Errorf("decode letter: %w", err)
	}
	l := d.toDomain()
	return &l, nil
}

// CreateLetter inserts one document and returns it as stored, without the
// author join.
func (r *LetterRepository) CreateLetter(ctx context.Context, nl domain.NewLetter) (*domain.Letter, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := letterDocument{
		ID:              primitive.NewObjectID(),
		Title:           nl.Title,
		Message:         nl.Message,
		PhotoURL:        nl.PhotoURL,
		YouTubeMusicURL: nl.YouTubeMusicURL,
		AuthorID:        nl.AuthorID,
		// Mongo stores milliseconds; truncate so the returned value round-trips.
		CreatedAt: r.now().UTC().Truncate(time.Millisecond),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert letter: %w", err)
	}
	l := doc.toDomain()
	return &l, nil
}

// EnsureIndexes creates the index the feed sort runs on.
func (r *LetterRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}},
	})
	return err
}
