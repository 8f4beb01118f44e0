// Package metrics defines the custom Prometheus metrics of the letters service.
// Request counts and latencies come from the echoprometheus middleware; the
// metrics here count what happens inside the app.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ourletters/love-letters/internal/core/domain"
)

const namespace = "letters"

// ── Session metrics ───────────────────────────────────────────────────────────

// PasscodeAttemptsTotal counts passcode submissions.
// Label:
//   - result: "accepted" or "rejected"
var PasscodeAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "passcode_attempts_total",
		Help:      "Total number of passcode submissions, by result.",
	},
	[]string{"result"},
)

// ── Letter metrics ────────────────────────────────────────────────────────────

// LettersCreatedTotal counts letters inserted.
// Label:
//   - photo: "upload", "url" or "none"
var LettersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "letters_created_total",
		Help:      "Total number of letters created, by photo source.",
	},
	[]string{"photo"},
)

// LetterSubmitErrorsTotal counts rejected or failed submissions.
// Label:
//   - reason: "missing_fields", "not_an_image", "photo_too_large",
//     "unknown_author", "no_authors" or "submit_failed"
var LetterSubmitErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "letter_submit_errors_total",
		Help:      "Total number of letter submissions that did not create a letter.",
	},
	[]string{"reason"},
)

// SharesTotal counts share links handed out.
var SharesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shares_total",
		Help:      "Total number of share links copied.",
	},
)

// ── Navigation metrics ────────────────────────────────────────────────────────

// StaleViewsDiscardedTotal counts renders thrown away because the client
// navigated while the page was loading.
// Label:
//   - page: "home", "letter" or "add"
var StaleViewsDiscardedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stale_views_discarded_total",
		Help:      "Total number of loaded views discarded as stale, by page.",
	},
	[]string{"page"},
)

// ViewObserver feeds navigator events into StaleViewsDiscardedTotal.
type ViewObserver struct{}

func (ViewObserver) StaleViewDiscarded(page domain.PageKind) {
	StaleViewsDiscardedTotal.WithLabelValues(string(page)).Inc()
}

// SubmitErrorReason maps a submit error to its reason label.
func SubmitErrorReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrMissingFields):
		return "missing_fields"
	case errors.Is(err, domain.ErrNotAnImage):
		return "not_an_image"
	case errors.Is(err, domain.ErrPhotoTooLarge):
		return "photo_too_large"
	case errors.Is(err, domain.ErrUnknownAuthor):
		return "unknown_author"
	case errors.Is(err, domain.ErrNoAuthors):
		return "no_authors"
	}
	return "submit_failed"
}
