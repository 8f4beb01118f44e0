package ports

import (
	"context"

	"github.com/ourletters/love-letters/internal/core/domain"
)

// AppService drives one client's session and navigation. Every method returns
// the view the client must render next; when an error is returned alongside a
// view, the view still describes a stable screen (the gate after a wrong
// passcode, the composer with its fields intact after a failed submit).
type AppService interface {
	// Bootstrap resolves the initial state of a freshly loaded app.
	Bootstrap(ctx context.Context, c Client, deepLinkID string) (*View, error)
	// Current renders the client's current page.
	Current(ctx context.Context, c Client) (*View, error)
	Login(ctx context.Context, c Client, passcode string) (*View, error)
	Logout(ctx context.Context, c Client) (*View, error)
	Navigate(ctx context.Context, c Client, to domain.PageKind, letterID string) (*View, error)
	Submit(ctx context.Context, c Client, draft domain.Draft) (*View, error)
	Share(ctx context.Context, c Client, letterID string) (*ShareResult, error)
	Authors(ctx context.Context, c Client) ([]domain.User, error)
}
