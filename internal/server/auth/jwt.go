// Package auth holds the credential primitives of the server: password and
// OTP hashing, JWT issuance and the typed identity attached to requests.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/portfolio/internal/common"
	"github.com/dmitrijs2005/portfolio/internal/server/models"
)

// Claims carries the identity of the token holder. Subject and UserID both
// hold the user id; Role reflects the user's role at issuance only.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// Issuer signs and verifies HS256 tokens with a process-wide secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type IssuerOption func(*Issuer)

// WithClock overrides the time source used for iat, exp and validation.
func WithClock(now func() time.Time) IssuerOption {
	return func(i *Issuer) { i.now = now }
}

func NewIssuer(secret []byte, ttl time.Duration, opts ...IssuerOption) *Issuer {
	i := &Issuer{secret: secret, ttl: ttl, now: time.Now}
	for _, o := range opts {
		o(i)
	}
	return i
}

// Issue returns a signed token for u that expires after the issuer ttl.
func (i *Issuer) Issue(u *models.User) (string, error) {
	now := i.now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		UserID: u.ID,
		Email:  u.Email,
		Role:   u.Role,
	})

	tokenString, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tokenString, nil
}

// Verify parses tokenString and checks signature, algorithm and expiry.
// A token is valid strictly before its exp. Every failure wraps common.ErrInvalidToken.
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
