package media

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid preview token")

type previewClaims struct {
	DraftID string `json:"did"`
	jwt.RegisteredClaims
}

// TokenSigner issues HS256 tokens that name a stored preview object. Tokens
// carry no expiry: a reference stays valid until its object is released, and
// a released object no longer resolves.
type TokenSigner struct {
	secret []byte
	now    func() time.Time
}

func NewTokenSigner(secret string) *TokenSigner {
	return &TokenSigner{secret: []byte(secret), now: time.Now}
}

// Sign returns a token whose subject is the object key.
func (s *TokenSigner) Sign(key, imageID, draftID string) (string, error) {
	now := s.now()
	claims := previewClaims{
		DraftID: draftID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  key,
			ID:       imageID,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign preview token: %w", err)
	}
	return signed, nil
}

// Parse verifies a token and returns the object key and draft id it names.
func (s *TokenSigner) Parse(token string) (key, draftID string, err error) {
	claims := &previewClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}
		return s.secret, nil
	}, jwt.WithLeeway(30*time.Second), jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return "", "", ErrInvalidToken
	}
	return claims.Subject, claims.DraftID, nil
}
