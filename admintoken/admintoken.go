// Package admintoken issues and verifies admin session credentials.
//
// The admin password is checked against a bcrypt hash supplied via
// configuration. Successful logins receive an HS256-signed JWT valid for 24
// hours, carried either in the admin_token cookie or an Authorization bearer
// header.
package admintoken

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	// CookieName is the session cookie set on successful login.
	CookieName = "admin_token"

	// TokenTTL bounds the session lifetime.
	TokenTTL = 24 * time.Hour

	subject = "admin"
)

var (
	// ErrNotConfigured indicates the password hash or signing secret is
	// missing from the server configuration.
	ErrNotConfigured = errors.New("admin credentials are not configured")

	// ErrBadPassword indicates the supplied password did not match.
	ErrBadPassword = errors.New("invalid admin password")

	// ErrInvalidToken indicates a missing, malformed, expired or
	// wrongly-signed session token.
	ErrInvalidToken = errors.New("invalid admin token")
)

// Issuer verifies the admin password and signs session tokens.
type Issuer struct {
	passwordHash []byte
	secret       []byte
}

// NewIssuer creates an issuer from the bcrypt password hash and the token
// signing secret. Either may be empty; operations then fail with
// ErrNotConfigured so handlers can report a server misconfiguration.
func NewIssuer(passwordHash, secret string) *Issuer {
	return &Issuer{
		passwordHash: []byte(passwordHash),
		secret:       []byte(secret),
	}
}

// VerifyPassword checks the password against the configured bcrypt hash.
// bcrypt's comparison is constant-time on the derived key.
func (i *Issuer) VerifyPassword(password string) error {
	if len(i.passwordHash) == 0 {
		return ErrNotConfigured
	}
	if err := bcrypt.CompareHashAndPassword(i.passwordHash, []byte(password)); err != nil {
		return ErrBadPassword
	}
	return nil
}

// Issue signs a session token valid for TokenTTL from now.
func (i *Issuer) Issue(now time.Time) (string, error) {
	if len(i.secret) == 0 {
		return "", ErrNotConfigured
	}

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign admin token: %w", err)
	}
	return signed, nil
}

// Verify checks the token's signature, subject, and expiry.
func (i *Issuer) Verify(tokenString string) error {
	if len(i.secret) == 0 {
		return ErrNotConfigured
	}

	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return i.secret, nil
		},
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject != subject {
		return ErrInvalidToken
	}
	return nil
}

// FromRequest extracts the session token from the admin_token cookie, or
// failing that from an Authorization bearer header.
func FromRequest(r *http.Request) (string, bool) {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}
	auth := r.Header.Get("Authorization")
	if token, found := strings.CutPrefix(auth, "Bearer "); found && token != "" {
		return token, true
	}
	return "", false
}

// NewCookie builds the session cookie for a signed token.
func NewCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(TokenTTL / time.Second),
		SameSite: http.SameSiteLaxMode,
	}
}
