package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// VisitorTTL is how long a visitor cookie stays valid.
const VisitorTTL = 30 * 24 * time.Hour

var ErrInvalidVisitor = errors.New("invalid visitor token")

// Issuer signs and verifies the visitor cookie. The cookie identifies a browser, not a user:
// the user's backend token lives in that visitor's local storage.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: VisitorTTL, now: time.Now}
}

func (i *Issuer) TTL() time.Duration { return i.ttl }

// Issue mints a new visitor id and its signed token.
func (i *Issuer) Issue() (string, string, error) {
	visitorID := uuid.NewString()
	now := i.now()
	claims := jwt.RegisteredClaims{
		Subject:   visitorID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", "", err
	}
	return visitorID, token, nil
}

// Parse returns the visitor id of a valid, unexpired token.
func (i *Issuer) Parse(tokenString string) (string, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !token.Valid {
		return "", ErrInvalidVisitor
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", ErrInvalidVisitor
	}
	return claims.Subject, nil
}
