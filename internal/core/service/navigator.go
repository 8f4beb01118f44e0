package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ourletters/love-letters/internal/core/domain"
	"github.com/ourletters/love-letters/internal/core/ports"
)

const (
	// maxRenderAttempts bounds how often a render is redone after its load was
	// overtaken by a navigation from the same client.
	maxRenderAttempts = 3

	clientIdleTTL = 24 * time.Hour
	sweepInterval = 10 * time.Minute
)

// ViewObserver is told about renders whose result was thrown away.
type ViewObserver interface {
	StaleViewDiscarded(page domain.PageKind)
}

type nopObserver struct{}

func (nopObserver) StaleViewDiscarded(domain.PageKind) {}

type clientState struct {
	mu       sync.Mutex
	nav      *domain.Navigation
	lastSeen time.Time
}

// snapshot reads the navigation under the client lock.
func (s *clientState) snapshot() (page domain.Page, gen uint64, authed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.Page(), s.nav.Generation(), s.nav.Authenticated()
}

// Navigator owns every client's transient navigation state and renders the
// view for the page each client is on. Transitions for one client are applied
// one at a time; loads run outside the lock, and a load that finishes after
// its client has moved on is discarded.
type Navigator struct {
	gate     *SessionGate
	feed     *FeedLoader
	detail   *DetailLoader
	composer *Composer
	observer ViewObserver
	logger   zerolog.Logger

	mu        sync.Mutex
	clients   map[string]*clientState
	lastSweep time.Time
	now       func() time.Time
}

func NewNavigator(gate *SessionGate, feed *FeedLoader, detail *DetailLoader, composer *Composer, observer ViewObserver, logger zerolog.Logger) *Navigator {
	if observer == nil {
		observer = nopObserver{}
	}
	return &Navigator{
		gate:     gate,
		feed:     feed,
		detail:   detail,
		composer: composer,
		observer: observer,
		logger:   logger,
		clients:  make(map[string]*clientState),
		now:      time.Now,
	}
}

// Bootstrap resolves the startup state: a deep link opens that letter and lets
// the client in for this app instance; otherwise the stored flag decides
// between the feed and the gate.
func (n *Navigator) Bootstrap(ctx context.Context, c ports.Client, deepLinkID string) (*ports.View, error) {
	st := n.state(c)
	st.mu.Lock()
	st.nav.Start(deepLinkID, n.gate.StoredLoggedIn(c.Storage))
	st.mu.Unlock()

	if deepLinkID != "" {
		n.logger.Info().Str("client_id", c.ID).Str("letter_id", deepLinkID).Msg("opened shared letter")
	}
	return n.render(ctx, c, st)
}

// Current renders the page the client is on.
func (n *Navigator) Current(ctx context.Context, c ports.Client) (*ports.View, error) {
	return n.render(ctx, c, n.state(c))
}

// Login checks the passcode. A wrong passcode returns the gate, cleared, with
// the error message.
func (n *Navigator) Login(ctx context.Context, c ports.Client, passcode string) (*ports.View, error) {
	if err := n.gate.CheckPasscode(c.Storage, passcode); err != nil {
		return gateView(err.Error()), err
	}

	st := n.state(c)
	st.mu.Lock()
	st.nav.Authenticate()
	st.mu.Unlock()
	return n.render(ctx, c, st)
}

// Logout clears the stored flag and resets navigation. Only allowed from home.
func (n *Navigator) Logout(ctx context.Context, c ports.Client) (*ports.View, error) {
	st := n.state(c)
	st.mu.Lock()
	if !st.nav.Authenticated() {
		st.mu.Unlock()
		return gateView(""), domain.ErrUnauthenticated
	}
	if err := st.nav.Logout(); err != nil {
		st.mu.Unlock()
		return nil, err
	}
	st.mu.Unlock()

	n.gate.Forget(c.Storage)
	return gateView(""), nil
}

// Navigate moves the client to another page and renders it.
func (n *Navigator) Navigate(ctx context.Context, c ports.Client, to domain.PageKind, letterID string) (*ports.View, error) {
	var next domain.Page
	switch to {
	case domain.PageHome:
		next = domain.HomePage()
	case domain.PageAdd:
		next = domain.AddPage()
	case domain.PageLetter:
		p, err := domain.NewLetterPage(letterID)
		if err != nil {
			return nil, err
		}
		next = p
	default:
		return nil, domain.ErrInvalidTransition
	}

	st := n.state(c)
	st.mu.Lock()
	if !st.nav.Authenticated() {
		st.mu.Unlock()
		return gateView(""), domain.ErrUnauthenticated
	}
	if err := st.nav.Go(next); err != nil {
		st.mu.Unlock()
		return nil, err
	}
	st.mu.Unlock()

	return n.render(ctx, c, st)
}

// Submit sends the composer's draft. On success the client is back on the feed,
// where the new letter is listed first. On failure the composer is returned
// with every field as submitted and the error message.
func (n *Navigator) Submit(ctx context.Context, c ports.Client, draft domain.Draft) (*ports.View, error) {
	st := n.state(c)
	page, _, authed := st.snapshot()
	if !authed {
		return gateView(""), domain.ErrUnauthenticated
	}
	if page.Kind() != domain.PageAdd {
		return nil, domain.ErrInvalidTransition
	}

	if _, err := n.composer.Submit(ctx, draft); err != nil {
		return n.composeView(ctx, draft, userMessage(err)), err
	}

	st.mu.Lock()
	if st.nav.Page().Kind() == domain.PageAdd {
		_ = st.nav.Go(domain.HomePage())
	}
	st.mu.Unlock()
	return n.render(ctx, c, st)
}

// Share hands out the deep link for the letter the client is reading. Sharing
// from any other page is rejected with domain.ErrInvalidTransition.
func (n *Navigator) Share(ctx context.Context, c ports.Client, letterID string) (*ports.ShareResult, error) {
	page, _, authed := n.state(c).snapshot()
	if !authed {
		return nil, domain.ErrUnauthenticated
	}
	if letterID == "" {
		return nil, domain.ErrEmptyLetterID
	}
	if page.Kind() != domain.PageLetter || page.LetterID() != letterID {
		return nil, domain.ErrInvalidTransition
	}
	return n.detail.Share(ctx, c, letterID), nil
}

// Authors lists who can write a letter.
func (n *Navigator) Authors(ctx context.Context, c ports.Client) ([]domain.User, error) {
	if _, _, authed := n.state(c).snapshot(); !authed {
		return nil, domain.ErrUnauthenticated
	}
	return n.composer.Authors(ctx)
}

func (n *Navigator) render(ctx context.Context, c ports.Client, st *clientState) (*ports.View, error) {
	for attempt := 0; attempt < maxRenderAttempts; attempt++ {
		page, gen, authed := st.snapshot()
		if !authed {
			return gateView(""), nil
		}

		view := n.load(ctx, c, page)

		if _, current, _ := st.snapshot(); current == gen {
			return view, nil
		}
		n.logger.Debug().Str("client_id", c.ID).Str("page", string(page.Kind())).Msg("discarding stale view")
		n.observer.StaleViewDiscarded(page.Kind())
	}
	return nil, domain.ErrStaleView
}

func (n *Navigator) load(ctx context.Context, c ports.Client, page domain.Page) *ports.View {
	switch page.Kind() {
	case domain.PageLetter:
		return &ports.View{Kind: ports.ViewLetter, Detail: n.detail.Load(ctx, c, page.LetterID())}
	case domain.PageAdd:
		return n.composeView(ctx, domain.NewDraft(), "")
	default:
		return &ports.View{Kind: ports.ViewHome, Feed: n.feed.Load(ctx)}
	}
}

// composeView renders the composer around draft. A draft without an author is
// given the first loaded user.
func (n *Navigator) composeView(ctx context.Context, draft domain.Draft, errMsg string) *ports.View {
	authors, err := n.composer.Authors(ctx)
	if err != nil {
		authors = []domain.User{}
	}
	if draft.AuthorID == "" && len(authors) > 0 {
		draft.AuthorID = authors[0].ID
	}
	return &ports.View{Kind: ports.ViewAdd, Compose: &ports.ComposeView{
		Draft:   draft,
		Authors: authors,
		Error:   errMsg,
	}}
}

// state returns the client's navigation, creating it as a fresh app load when
// the client is unknown (first visit, or the process restarted).
func (n *Navigator) state(c ports.Client) *clientState {
	n.mu.Lock()
	defer n.mu.Unlock()

	now := n.now()
	n.sweepLocked(now)

	st, ok := n.clients[c.ID]
	if !ok {
		st = &clientState{nav: domain.NewNavigation()}
		st.nav.Start("", n.gate.StoredLoggedIn(c.Storage))
		n.clients[c.ID] = st
	}
	st.lastSeen = now
	return st
}

// sweepLocked forgets clients idle for longer than clientIdleTTL.
func (n *Navigator) sweepLocked(now time.Time) {
	if now.Sub(n.lastSweep) < sweepInterval {
		return
	}
	n.lastSweep = now
	for id, st := range n.clients {
		if now.Sub(st.lastSeen) > clientIdleTTL {
			delete(n.clients, id)
		}
	}
}

func gateView(errMsg string) *ports.View {
	return &ports.View{Kind: ports.ViewGate, Gate: &ports.GateView{Error: errMsg}}
}

// userMessage maps an error to the text shown on the composer.
func userMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrSubmitFailed):
		return domain.ErrSubmitFailed.Error()
	case errors.Is(err, domain.ErrMissingFields),
		errors.Is(err, domain.ErrUnknownAuthor),
		errors.Is(err, domain.ErrNoAuthors),
		errors.Is(err, domain.ErrNotAnImage),
		errors.Is(err, domain.ErrPhotoTooLarge):
		return err.Error()
	}
	return domain.ErrSubmitFailed.Error()
}
