package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieCodec signs and verifies the session cookie.
// The cookie is an HS256 JWT whose ID claim is the server-side session identifier.
type CookieCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCookieCodec creates a codec with the given secret; ttl bounds the cookie lifetime.
func NewCookieCodec(secret string, ttl time.Duration) *CookieCodec {
	return &CookieCodec{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Secret returns the signing key.
func (c *CookieCodec) Secret() []byte {
	return c.secret
}

// Sign returns a signed cookie value for the session identifier.
func (c *CookieCodec) Sign(sessionID string) (string, error) {
	if sessionID == "" {
		return "", errors.New("empty session id")
	}
	now := c.now()
	claims := jwt.RegisteredClaims{
		ID:        sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Parse validates a cookie value and returns the session identifier it carries.
func (c *CookieCodec) Parse(raw string) (string, error) {
	token, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, c.Keyfunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return "", err
	}
	return SessionIDFromToken(token)
}

// Keyfunc resolves the signing key for HMAC tokens.
func (c *CookieCodec) Keyfunc(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("unexpected signing method")
	}
	return c.secret, nil
}

// SessionIDFromToken extracts the session identifier from a parsed cookie token.
func SessionIDFromToken(token *jwt.Token) (string, error) {
	if token == nil || !token.Valid {
		return "", errors.New("invalid token")
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.ID == "" {
		return "", errors.New("session id not found")
	}
	return claims.ID, nil
}
