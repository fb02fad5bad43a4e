// Package token issues and verifies the signed, self-expiring identity
// tokens that stand in for sessions. Tokens are never stored server-side.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/shuaizuo666/Task-System/apperr"
)

const DefaultTTL = 24 * time.Hour

// Identity is the verified payload of a token.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Service signs and verifies HS256 tokens. The clock is injectable so
// expiry behavior is testable without sleeping.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type Option func(*Service)

func WithTTL(ttl time.Duration) Option {
	return func(s *Service) { s.ttl = ttl }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(secret []byte, opts ...Option) *Service {
	s := &Service{secret: secret, ttl: DefaultTTL, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue produces a signed token carrying the user id in the subject
// claim and the email alongside it, expiring one TTL from now.
func (s *Service) Issue(userID uuid.UUID, email string) (string, error) {
	now := s.now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", apperr.Internal("could not sign token", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded identity.
// Malformed input, a bad signature, and an expired token all collapse to
// the same unauthorized failure.
func (s *Service) Verify(tokenString string) (Identity, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(tokenString, &c,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return Identity{}, apperr.Unauthorized("invalid or expired token")
	}
	userID, err := uuid.Parse(c.Subject)
	if err != nil {
		return Identity{}, apperr.Unauthorized("invalid or expired token")
	}
	return Identity{UserID: userID, Email: c.Email}, nil
}

// ExtractUserID verifies the token in full before returning its user id;
// it never yields an unverified value.
func (s *Service) ExtractUserID(tokenString string) (uuid.UUID, error) {
	identity, err := s.Verify(tokenString)
	if err != nil {
		return uuid.Nil, err
	}
	return identity.UserID, nil
}
