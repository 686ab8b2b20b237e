// Package session gives each browser a signed cookie id and a single-slot
// flash message stored in redis under that id.
package session

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"blogly/internal/cache"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const (
	// CookieName is the session cookie issued to every client.
	CookieName = "blogly_session"

	// ContextKey is where the middleware stores the session id on the
	// echo context.
	ContextKey = "session_id"

	// flashTTL bounds how long an unread flash survives in redis.
	flashTTL = time.Hour
)

var randRead = rand.Read

// Middleware ensures every request carries a valid session id. Missing or
// tampered cookies are replaced with a fresh id.
func Middleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid := fromCookie(c, secret)
			if sid == "" {
				var err error
				sid, err = newID()
				if err != nil {
					return echo.NewHTTPError(http.StatusInternalServerError, "failed to create session")
				}
				c.SetCookie(&http.Cookie{
					Name:     CookieName,
					Value:    sign(sid, secret),
					Path:     "/",
					HttpOnly: true,
				})
			}
			c.Set(ContextKey, sid)
			return next(c)
		}
	}
}

// ID returns the session id set by Middleware, or "" outside it.
func ID(c echo.Context) string {
	sid, _ := c.Get(ContextKey).(string)
	return sid
}

// SetFlash stores msg as the session's single pending message, replacing
// any unread one.
func SetFlash(ctx context.Context, rdb cache.Cache, sid, msg string) error {
	if sid == "" {
		return nil
	}
	if err := rdb.Set(ctx, flashKey(sid), msg, flashTTL).Err(); err != nil {
		return fmt.Errorf("SetFlash: %w", err)
	}
	return nil
}

// PopFlash returns the pending message and clears it. An empty string
// means nothing was pending.
func PopFlash(ctx context.Context, rdb cache.Cache, sid string) (string, error) {
	if sid == "" {
		return "", nil
	}
	msg, err := rdb.GetDel(ctx, flashKey(sid)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("PopFlash: %w", err)
	}
	return msg, nil
}

func flashKey(sid string) string {
	return "flash:" + sid
}

func newID() (string, error) {
	b := make([]byte, 16)
	if _, err := randRead(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// sign appends an HMAC-SHA256 tag so a client cannot forge another
// session's id.
func sign(sid, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(sid))
	return sid + "." + hex.EncodeToString(mac.Sum(nil))
}

func fromCookie(c echo.Context, secret string) string {
	cookie, err := c.Cookie(CookieName)
	if err != nil {
		return ""
	}
	sid, _, ok := strings.Cut(cookie.Value, ".")
	if !ok || sid == "" {
		return ""
	}
	if !hmac.Equal([]byte(cookie.Value), []byte(sign(sid, secret))) {
		return ""
	}
	return sid
}
