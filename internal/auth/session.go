package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCookieName is the name of the session cookie.
const SessionCookieName = "jokebox_session"

// sessionMaxAge bounds both the cookie lifetime and the signed payload's
// expiry claim.
const sessionMaxAge = 30 * 24 * time.Hour

// sessionClaims is the signed cookie payload. The session carries nothing but
// the user's ID; everything else is looked up per request.
type sessionClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// SessionCodec encodes and decodes the signed session cookie. Secrets are
// fixed at construction: new cookies are signed with the first secret, and
// decoding tries every configured secret in order so old cookies survive a
// secret rotation.
type SessionCodec struct {
	secrets [][]byte
	secure  bool
}

// NewSessionCodec creates a codec from an ordered list of signing secrets.
// At least one non-empty secret is required.
func NewSessionCodec(secrets []string, secure bool) (*SessionCodec, error) {
	keys := make([][]byte, 0, len(secrets))
	for _, s := range secrets {
		if s != "" {
			keys = append(keys, []byte(s))
		}
	}
	if len(keys) == 0 {
		return nil, errors.New("session codec requires at least one non-empty secret")
	}
	return &SessionCodec{secrets: keys, secure: secure}, nil
}

// Encode signs a session payload for the given user ID.
func (c *SessionCodec) Encode(userID string) (string, error) {
	claims := &sessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionMaxAge)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secrets[0])
}

// Decode extracts the user ID from a session cookie value. A missing,
// malformed, expired, or forged value yields "" — decoding attacker-controlled
// input must never fail louder than an empty session.
func (c *SessionCodec) Decode(cookieValue string) string {
	if cookieValue == "" {
		return ""
	}
	for _, secret := range c.secrets {
		claims := &sessionClaims{}
		token, err := jwt.ParseWithClaims(cookieValue, claims, func(t *jwt.Token) (interface{}, error) {
			return secret, nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err == nil && token.Valid && claims.UserID != "" {
			return claims.UserID
		}
	}
	return ""
}

// Cookie builds the session cookie carrying an encoded session value.
func (c *SessionCodec) Cookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(sessionMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearCookie builds a cookie that immediately invalidates the session.
func (c *SessionCodec) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
