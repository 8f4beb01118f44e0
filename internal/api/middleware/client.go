package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// ClientCookie identifies a browser across requests.
	ClientCookie = "letters_client"
	// ContextClientID is the echo context key holding the client id.
	ContextClientID = "client_id"

	cookieMaxAge = 365 * 24 * time.Hour
)

// ClientID reads the client id cookie, issuing a fresh one when it is missing
// or not a UUID, and stores the id in the echo context.
func ClientID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := ""
			if ck, err := c.Cookie(ClientCookie); err == nil {
				if parsed, err := uuid.Parse(ck.Value); err == nil {
					id = parsed.String()
				}
			}
			if id == "" {
				id = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     ClientCookie,
					Value:    id,
					Path:     "/",
					MaxAge:   int(cookieMaxAge.Seconds()),
					HttpOnly: true,
					Secure:   c.Scheme() == "https",
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Set(ContextClientID, id)
			return next(c)
		}
	}
}
