package metrics

import (
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/ourletters/love-letters/internal/core/domain"
)

func TestViewObserver_CountsByPage(t *testing.T) {
	before := testutil.ToFloat64(StaleViewsDiscardedTotal.WithLabelValues("home"))
	ViewObserver{}.StaleViewDiscarded(domain.PageHome)
	ViewObserver{}.StaleViewDiscarded(domain.PageHome)
	if got := testutil.ToFloat64(StaleViewsDiscardedTotal.WithLabelValues("home")) - before; got != 2 {
		t.Fatalf("expected 2 increments, got %v", got)
	}
}

func TestSubmitErrorReason(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{domain.ErrMissingFields, "missing_fields"},
		{domain.ErrPhotoTooLarge, "photo_too_large"},
		{fmt.Errorf("%w: %w", domain.ErrSubmitFailed, errors.New("timeout")), "submit_failed"},
		{errors.New("anything else"), "submit_failed"},
	}
	for _, tc := range cases {
		if got := SubmitErrorReason(tc.err); got != tc.want {
			t.Errorf("%v: got %q, want %q", tc.err, got, tc.want)
		}
	}
}
