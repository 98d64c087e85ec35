// Package token mints and verifies the stateless bearer tokens used by
// both the user and admin identity spaces. Tokens are HS256 JWTs with an
// expiry enforced at parse time; there is no refresh or revocation.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the payload carried by every session token. Exactly one of
// UserID/AdminID is set depending on the identity space.
type Claims struct {
	UserID  int64  `json:"userId,omitempty"`
	AdminID int64  `json:"adminId,omitempty"`
	Email   string `json:"email,omitempty"`
	Type    string `json:"type,omitempty"`
	jwt.RegisteredClaims
}

type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret string, expiryHours int) *Issuer {
	if expiryHours <= 0 {
		expiryHours = 24
	}
	return &Issuer{
		secret: []byte(secret),
		ttl:    time.Duration(expiryHours) * time.Hour,
	}
}

// TTL returns the configured token lifetime.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

func (i *Issuer) GenerateUserToken(userID int64, email string) (string, error) {
	return i.sign(Claims{
		UserID: userID,
		Email:  email,
	})
}

func (i *Issuer) GenerateAdminToken(adminID int64, email, adminType string) (string, error) {
	return i.sign(Claims{
		AdminID: adminID,
		Email:   email,
		Type:    adminType,
	})
}

func (i *Issuer) sign(claims Claims) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies the signature and expiry and returns the claims.
func (i *Issuer) Parse(raw string) (*Claims, error) {
	var claims Claims
	t, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil || !t.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
