package api

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/erazemk/fundbuero/internal/auth"
	"github.com/erazemk/fundbuero/internal/model"
	"github.com/erazemk/fundbuero/internal/store"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "user"

// Sessions issues and resolves cookie sessions.
type Sessions struct {
	DB     *sql.DB
	Secret string
	TTL    time.Duration
}

// NewSessions returns a session provider signing with secret. A zero ttl
// uses auth.DefaultTokenExpiry.
func NewSessions(db *sql.DB, secret string, ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = auth.DefaultTokenExpiry
	}
	return &Sessions{DB: db, Secret: secret, TTL: ttl}
}

// Issue starts a session for user by setting the session cookie.
func (s *Sessions) Issue(w http.ResponseWriter, user *model.User) error {
	token, err := auth.GenerateToken(s.Secret, user, s.TTL)
	if err != nil {
		return fmt.Errorf("issuing session: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.TTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	return nil
}

// Revoke invalidates the session behind claims and clears the cookie.
func (s *Sessions) Revoke(ctx context.Context, w http.ResponseWriter, claims *auth.Claims) error {
	clearSessionCookie(w)
	if claims == nil || claims.ID == "" {
		return nil
	}
	expires := time.Now().Add(s.TTL)
	if claims.ExpiresAt != nil {
		expires = claims.ExpiresAt.Time
	}
	return store.RevokeToken(ctx, s.DB, store.Revocation{JTI: claims.ID, UserID: claims.UserID, ExpiresAt: expires})
}

// resolve returns the claims of a valid, unrevoked session cookie, or nil.
func (s *Sessions) resolve(r *http.Request) *auth.Claims {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}

	claims, err := auth.ValidateToken(s.Secret, cookie.Value)
	if err != nil {
		return nil
	}

	if claims.ID != "" {
		revoked, err := store.IsTokenRevoked(r.Context(), s.DB, claims.ID)
		if err != nil {
			slog.Error("failed to check token revocation", "error", err)
			return nil
		}
		if revoked {
			return nil
		}
	}
	return claims
}

// clearSessionCookie clears the session cookie with consistent attributes.
func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
