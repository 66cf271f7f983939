// Package token issues and validates the self-service links embedded in
// confirmation emails. Tokens are stateless bearer credentials: nothing is
// stored server-side, and rotating the secret invalidates everything
// outstanding.
package token

import (
	"time"

	"github.com/YonTemasek/asrulbasri.com-sub000/internal/data/entity"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type claims struct {
	BookingID string `json:"bid"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

// Codec binds {bookingID, customerEmail, expiry} into a signed, URL-safe string.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// Issue mints a token for one booking, tied to the customer's email.
func (c *Codec) Issue(bookingID uuid.UUID, email string) (string, error) {
	now := time.Now()
	cl := claims{
		BookingID: bookingID.String(),
		Email:     email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString(c.secret)
}

// Validate returns the booking id and email bound into the token. Every
// failure mode - tampered signature, malformed structure, expiry - collapses
// into the same entity.ErrInvalidToken so callers can't be used as an oracle.
func (c *Codec) Validate(tok string) (uuid.UUID, string, error) {
	parsed, err := jwt.ParseWithClaims(tok, &claims{}, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return uuid.Nil, "", entity.ErrInvalidToken
	}

	cl, ok := parsed.Claims.(*claims)
	if !ok || cl.BookingID == "" || cl.Email == "" {
		return uuid.Nil, "", entity.ErrInvalidToken
	}

	id, err := uuid.Parse(cl.BookingID)
	if err != nil {
		return uuid.Nil, "", entity.ErrInvalidToken
	}

	return id, cl.Email, nil
}
