package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"nzwalks-api/internal/domain"
)

var (
	// ErrKeyTooShort rejects signing keys below the HMAC-SHA256 minimum at
	// construction time, so a misconfigured process never starts issuing.
	ErrKeyTooShort = errors.New("signing key must be at least 32 bytes")
	// ErrInvalidToken covers every validation failure: bad signature, wrong
	// issuer or audience, expiry, malformed input. The distinction is logged
	// by callers, never surfaced to clients.
	ErrInvalidToken = errors.New("invalid token")
)

const minKeyLength = 32

// Claims is the claim set carried by issued tokens: the user's email, one
// entry per assigned role, and the registered time/issuer/audience claims.
type Claims struct {
	jwt.RegisteredClaims
	Email string   `json:"email"`
	Roles []string `json:"roles,omitempty"`
}

// HasAnyRole reports whether the claims carry at least one of the required
// roles. Matching is exact and case-sensitive.
func (c *Claims) HasAnyRole(required ...domain.Role) bool {
	for _, want := range required {
		for _, have := range c.Roles {
			if have == string(want) {
				return true
			}
		}
	}
	return false
}

// Issuer mints and validates signed access tokens. Its configuration is
// fixed at construction and never mutated.
type Issuer struct {
	key      []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

func NewIssuer(key []byte, issuer, audience string, ttl time.Duration) (*Issuer, error) {
	if len(key) < minKeyLength {
		return nil, ErrKeyTooShort
	}
	return &Issuer{
		key:      key,
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
		now:      time.Now,
	}, nil
}

// WithClock replaces the issuer's time source. Tests use this to simulate
// expiry without sleeping.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	clone := *i
	clone.now = now
	return &clone
}

// Issue signs a token for the user embedding one claim per role. The token
// is never persisted and cannot be revoked before it expires.
func (i *Issuer) Issue(user *domain.User, roles []domain.Role) (string, error) {
	if user == nil || user.Username == "" {
		return "", errors.New("user with a username is required")
	}

	roleNames := make([]string, len(roles))
	for idx, role := range roles {
		roleNames[idx] = string(role)
	}

	now := i.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Audience:  jwt.ClaimStrings{i.audience},
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		Email: user.Username,
		Roles: roleNames,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate parses the token and enforces signature, signing method, issuer,
// audience and expiry. On success the embedded claims are returned.
func (i *Issuer) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			return i.key, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithAudience(i.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
