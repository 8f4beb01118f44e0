package domain

import "strings"

// PageKind names one of the three views of the app.
type PageKind string

const (
	PageHome   PageKind = "home"
	PageLetter PageKind = "letter"
	PageAdd    PageKind = "add"
)

// validTransitions defines the allowed navigation moves between pages.
var validTransitions = map[PageKind][]PageKind{
	PageHome:   {PageAdd, PageLetter},
	PageAdd:    {PageHome},
	PageLetter: {PageHome},
}

// CanTransitionTo reports whether moving from k to next is allowed.
func (k PageKind) CanTransitionTo(next PageKind) bool {
	for _, allowed := range validTransitions[k] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ParsePageKind maps a raw page name to a PageKind.
func ParsePageKind(s string) (PageKind, bool) {
	switch PageKind(strings.ToLower(strings.TrimSpace(s))) {
	case PageHome:
		return PageHome, true
	case PageLetter:
		return PageLetter, true
	case PageAdd:
		return PageAdd, true
	}
	return "", false
}

// Page is the current view. Its fields are unexported so a letter page can only
// be built through NewLetterPage, which requires a letter id. The zero value is
// the home page.
type Page struct {
	kind     PageKind
	letterID string
}

// HomePage returns the feed page.
func HomePage() Page { return Page{kind: PageHome} }

// AddPage returns the composer page.
func AddPage() Page { return Page{kind: PageAdd} }

// NewLetterPage returns the detail page for id.
func NewLetterPage(id string) (Page, error) {
	if id == "" {
		return Page{}, ErrEmptyLetterID
	}
	return Page{kind: PageLetter, letterID: id}, nil
}

// Kind returns the page kind, treating the zero value as home.
func (p Page) Kind() PageKind {
	if p.kind == "" {
		return PageHome
	}
	return p.kind
}

// LetterID is only set on the letter page.
func (p Page) LetterID() string {
	if p.Kind() != PageLetter {
		return ""
	}
	return p.letterID
}

// Navigation is the per-client routing state machine. It is transient and never
// persisted. Generation increases on every change so that loads started on an
// older page can be recognised and discarded.
type Navigation struct {
	page          Page
	generation    uint64
	authenticated bool
}

// NewNavigation returns an unauthenticated navigation on the home page.
func NewNavigation() *Navigation {
	return &Navigation{page: HomePage()}
}

func (n *Navigation) Page() Page { return n.page }

func (n *Navigation) Generation() uint64 { return n.generation }

func (n *Navigation) Authenticated() bool { return n.authenticated }

// Authenticate marks the client as past the gate.
func (n *Navigation) Authenticate() {
	n.authenticated = true
	n.generation++
}

// Go moves to next when the transition table allows it.
func (n *Navigation) Go(next Page) error {
	if !n.page.Kind().CanTransitionTo(next.Kind()) {
		return ErrInvalidTransition
	}
	if next.Kind() == PageLetter && next.LetterID() == "" {
		return ErrEmptyLetterID
	}
	n.page = next
	n.generation++
	return nil
}

// Start resolves the initial state when the app is (re)loaded. A non-empty
// deep-link letter id wins over the stored flag and authenticates the client
// for this app instance.
func (n *Navigation) Start(deepLinkID string, storedLoggedIn bool) {
	n.generation++
	if page, err := NewLetterPage(deepLinkID); err == nil {
		n.page = page
		n.authenticated = true
		return
	}
	n.page = HomePage()
	n.authenticated = storedLoggedIn
}

// Logout drops authentication and resets to home. Only allowed from home.
func (n *Navigation) Logout() error {
	if n.page.Kind() != PageHome {
		return ErrLogoutNotAllowed
	}
	n.page = HomePage()
	n.authenticated = false
	n.generation++
	return nil
}
