package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	// SessionCookie carries the signed client storage.
	SessionCookie = "letters_session"
	// ContextStorage is the echo context key holding the ports.ClientStorage.
	ContextStorage = "client_storage"
	// ContextOrigin is the echo context key holding the share link origin.
	ContextOrigin = "origin"
)

// Session exposes the session cookie as durable client storage. The cookie is
// an HS256 JWT whose string claims are the stored values; a missing, forged or
// unreadable cookie reads as empty storage. publicOrigin, when set, overrides
// the request's own origin for share links.
func Session(secret, publicOrigin string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			store := &cookieStorage{c: c, secret: []byte(secret), values: map[string]string{}}
			if ck, err := c.Cookie(SessionCookie); err == nil {
				store.values = parseValues(ck.Value, store.secret)
			}

			origin := strings.TrimRight(publicOrigin, "/")
			if origin == "" {
				origin = c.Scheme() + "://" + c.Request().Host
			}

			c.Set(ContextStorage, store)
			c.Set(ContextOrigin, origin)
			return next(c)
		}
	}
}

func parseValues(raw string, secret []byte) map[string]string {
	values := map[string]string{}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !tkn.Valid {
		return values
	}

	for k, v := range claims {
		if k == "iat" {
			continue
		}
		if s, ok := v.(string); ok {
			values[k] = s
		}
	}
	return values
}

// cookieStorage writes through to the response: every Set or Remove re-signs
// the cookie.
type cookieStorage struct {
	c      echo.Context
	secret []byte
	values map[string]string
}

func (s *cookieStorage) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s *cookieStorage) Set(key, value string) error {
	s.values[key] = value
	return s.write()
}

func (s *cookieStorage) Remove(key string) error {
	delete(s.values, key)
	return s.write()
}

func (s *cookieStorage) write() error {
	ck := &http.Cookie{
		Name:     SessionCookie,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.c.Scheme() == "https",
		SameSite: http.SameSiteLaxMode,
	}

	if len(s.values) == 0 {
		ck.MaxAge = -1
		s.c.SetCookie(ck)
		return nil
	}

	claims := jwt.MapClaims{"iat": time.Now().Unix()}
	for k, v := range s.values {
		claims[k] = v
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return err
	}
	ck.Value = signed
	ck.MaxAge = int(cookieMaxAge.Seconds())
	s.c.SetCookie(ck)
	return nil
}
