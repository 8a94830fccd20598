package auth

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/isdelr/jokebox/internal/models"
	"github.com/rs/zerolog/log"
)

type contextKey string

// UserIDKey is the context key under which RequireUser stores the
// authenticated user's ID.
const UserIDKey = contextKey("userID")

// ErrUserNotFound must be returned by UserStore implementations when no user
// exists for the given ID.
var ErrUserNotFound = errors.New("user not found")

// UserStore is the slice of the credential store the guard needs to resolve a
// session's user ID into a full user.
type UserStore interface {
	GetUserByID(id string) (models.User, error)
}

// Guard derives the current user from a request's session cookie and protects
// routes that require one.
type Guard struct {
	codec *SessionCodec
	users UserStore
}

// NewGuard creates a new Guard.
func NewGuard(codec *SessionCodec, users UserStore) *Guard {
	return &Guard{codec: codec, users: users}
}

// UserID returns the user ID carried by the request's session cookie. It never
// fails: a missing or invalid cookie is simply no session.
func (g *Guard) UserID(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return "", false
	}
	id := g.codec.Decode(cookie.Value)
	return id, id != ""
}

// UserIDFromContext returns the user ID stored by RequireUser.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserIDKey).(string)
	return id, ok
}

// RequireUser is a middleware that redirects requests without a valid session
// to the login page, carrying the requested path in a redirectTo query
// parameter so the login flow can send the user back afterward. Handlers
// behind it read the user ID from the request context and never see an
// unauthenticated request.
func (g *Guard) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := g.UserID(r)
		if !ok {
			params := url.Values{"redirectTo": {r.URL.Path}}
			http.Redirect(w, r, "/login?"+params.Encode(), http.StatusSeeOther)
			return
		}
		ctx := context.WithValue(r.Context(), UserIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CurrentUser resolves the request's session into a full user. A session
// naming a user that no longer exists yields no user; an unexpected store
// error additionally clears the cookie, so a client holding a session the
// server cannot resolve is logged out instead of wedged.
func (g *Guard) CurrentUser(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	id, ok := g.UserID(r)
	if !ok {
		return models.User{}, false
	}

	user, err := g.users.GetUserByID(id)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			log.Error().Err(err).Str("user_id", id).Msg("Failed to resolve session user, clearing session")
			http.SetCookie(w, g.codec.ClearCookie())
		}
		return models.User{}, false
	}

	user.PasswordHash = ""
	return user, true
}

// DefaultRedirectTarget is where login sends users when no (or no acceptable)
// redirect target was supplied.
const DefaultRedirectTarget = "/jokes"

// ValidateRedirectTarget constrains a client-supplied redirect target to a
// fixed allow-list of known destinations. Anything outside it falls back to
// the default, closing the open-redirect hole a raw redirectTo would leave.
func ValidateRedirectTarget(target string) string {
	switch target {
	case "/jokes", "/", "https://jokebox.dev":
		return target
	}
	return DefaultRedirectTarget
}
