package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ourletters/love-letters/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

var baseTime = time.Date(2025, time.September, 7, 12, 0, 0, 0, time.UTC)

type stubUserRepo struct {
	users   []domain.User
	listErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: []domain.User{
		{ID: "user-jen", Name: "Jen", Color: "#FF69B4", CreatedAt: baseTime.Add(-48 * time.Hour)},
		{ID: "user-kat", Name: "Kat", Color: "#9370DB", CreatedAt: baseTime.Add(-24 * time.Hour)},
	}}
}

func (r *stubUserRepo) ListUsers(_ context.Context) ([]domain.User, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]domain.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

type stubLetterRepo struct {
	mu        sync.Mutex
	letters   []domain.Letter
	users     *stubUserRepo
	nextID    int
	listErr   error
	getErr    error
	createErr error
	creates   int
	// entered is signalled and block waited on by ListLetters when set.
	entered chan struct{}
	block   chan struct{}
}

func newStubLetterRepo(users *stubUserRepo) *stubLetterRepo {
	return &stubLetterRepo{users: users}
}

func (r *stubLetterRepo) join(l domain.Letter) domain.Letter {
	for _, u := range r.users.users {
		if u.ID == l.AuthorID {
			l.Author = &domain.Author{Name: u.Name, Color: u.Color}
		}
	}
	return l
}

func (r *stubLetterRepo) ListLetters(_ context.Context) ([]domain.Letter, error) {
	if r.entered != nil {
		r.entered <- struct{}{}
	}
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]domain.Letter, 0, len(r.letters))
	for _, l := range r.letters {
		out = append(out, r.join(l))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubLetterRepo) GetLetter(_ context.Context, id string) (*domain.Letter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	for _, l := range r.letters {
		if l.ID == id {
			joined := r.join(l)
			return &joined, nil
		}
	}
	return nil, domain.ErrLetterNotFound
}

func (r *stubLetterRepo) CreateLetter(_ context.Context, nl domain.NewLetter) (*domain.Letter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	l := domain.Letter{
		ID:              fmt.Sprintf("letter-%d", r.nextID),
		Title:           nl.Title,
		Message:         nl.Message,
		PhotoURL:        nl.PhotoURL,
		YouTubeMusicURL: nl.YouTubeMusicURL,
		AuthorID:        nl.AuthorID,
		CreatedAt:       baseTime.Add(time.Duration(len(r.letters)+1) * time.Hour),
	}
	r.letters = append(r.letters, l)
	return &l, nil
}

func (r *stubLetterRepo) add(l domain.Letter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.letters = append(r.letters, l)
}

type stubPhotoStorage struct {
	uploads   map[string][]byte
	types     map[string]string
	uploadErr error
}

func newStubPhotoStorage() *stubPhotoStorage {
	return &stubPhotoStorage{uploads: make(map[string][]byte), types: make(map[string]string)}
}

func (s *stubPhotoStorage) Upload(_ context.Context, name string, body io.Reader, _ int64, contentType string) error {
	if s.uploadErr != nil {
		return s.uploadErr
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.uploads[name] = b
	s.types[name] = contentType
	return nil
}

func (s *stubPhotoStorage) PublicURL(name string) string {
	return "https://cdn.example.com/letter-photos/" + name
}

// memStorage stands in for the browser's durable storage.
type memStorage struct {
	values map[string]string
	setErr error
}

func newMemStorage() *memStorage {
	return &memStorage{values: make(map[string]string)}
}

func (s *memStorage) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s *memStorage) Set(key, value string) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.values[key] = value
	return nil
}

func (s *memStorage) Remove(key string) error {
	delete(s.values, key)
	return nil
}

type stubAcks struct {
	now     time.Time
	expiry  map[string]time.Time
	markErr error
}

func newStubAcks() *stubAcks {
	return &stubAcks{now: baseTime, expiry: make(map[string]time.Time)}
}

func (a *stubAcks) Mark(_ context.Context, key string, ttl time.Duration) error {
	if a.markErr != nil {
		return a.markErr
	}
	a.expiry[key] = a.now.Add(ttl)
	return nil
}

func (a *stubAcks) Active(_ context.Context, key string) (bool, error) {
	exp, ok := a.expiry[key]
	return ok && a.now.Before(exp), nil
}

var errBackendDown = errors.New("backend unavailable")

func strPtr(s string) *string { return &s }
