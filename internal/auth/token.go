package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the claim set carried by a session token: the subject's id and
// username plus standard issued-at/expiry claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID   int64  `json:"uid"`
	Username string `json:"username"`
}

var ErrInvalidToken = errors.New("invalid token")

// TokenCodec issues and parses signed session tokens. Tokens are HS256 JWTs:
// compact, URL-safe and tamper-evident under the shared secret. There is no
// revocation; a token stays valid until its expiry.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenCodec(secret []byte, ttl time.Duration) *TokenCodec {
	return &TokenCodec{secret: secret, ttl: ttl}
}

// TTL returns the configured session lifetime.
func (c *TokenCodec) TTL() time.Duration { return c.ttl }

// Issue mints a token for the given account, expiring after the codec's TTL.
func (c *TokenCodec) Issue(userID int64, username string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		UserID:   userID,
		Username: username,
	})
	return token.SignedString(c.secret)
}

// Parse validates the signature and expiry and returns the claims.
// Expiry is strict; there is no clock-skew allowance.
func (c *TokenCodec) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
