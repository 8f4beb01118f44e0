package service

import (
	"github.com/rs/zerolog"

	"github.com/ourletters/love-letters/internal/core/domain"
	"github.com/ourletters/love-letters/internal/core/ports"
)

// SessionGate checks the shared passcode and keeps the logged-in flag in the
// client's durable storage.
//
// This is not access control. The comparison is a plain string match against a
// secret every deployment knows, there is no rate limit, and deep links bypass
// the gate entirely.
type SessionGate struct {
	passcode string
	logger   zerolog.Logger
}

func NewSessionGate(passcode string, logger zerolog.Logger) *SessionGate {
	if passcode == "" {
		passcode = domain.DefaultPasscode
	}
	return &SessionGate{passcode: passcode, logger: logger}
}

// CheckPasscode compares input with the passcode exactly. On a match the flag is
// persisted; on a mismatch nothing is stored and domain.ErrWrongPasscode is
// returned.
func (g *SessionGate) CheckPasscode(storage ports.ClientStorage, input string) error {
	if input != g.passcode {
		return domain.ErrWrongPasscode
	}
	if err := storage.Set(domain.LoggedInKey, "true"); err != nil {
		// The in-memory session still counts; it just won't survive a reload.
		g.logger.Warn().Err(err).Msg("failed to persist logged-in flag")
	}
	return nil
}

// StoredLoggedIn reads the persisted flag.
func (g *SessionGate) StoredLoggedIn(storage ports.ClientStorage) bool {
	v, ok := storage.Get(domain.LoggedInKey)
	return ok && v == "true"
}

// Forget clears the persisted flag.
func (g *SessionGate) Forget(storage ports.ClientStorage) {
	if err := storage.Remove(domain.LoggedInKey); err != nil {
		g.logger.Warn().Err(err).Msg("failed to clear logged-in flag")
	}
}
