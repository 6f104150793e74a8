package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenTTL is the fixed lifetime of every issued access token.
const AccessTokenTTL = 30 * time.Minute

// AccessClaims is the claim set carried by an access token: the subject
// (username) plus the standard expiry and issued-at timestamps.
type AccessClaims struct {
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies compact HS256 tokens with a process-wide
// static secret. Rotating the secret invalidates all previously issued
// tokens; there is no multi-key grace period.
type TokenCodec struct {
	secret []byte
}

func NewTokenCodec(secret string) *TokenCodec {
	return &TokenCodec{secret: []byte(secret)}
}

// Issue signs a token for subject expiring at now + AccessTokenTTL.
// The same now snapshot is used for both issued-at and expiry.
func (c *TokenCodec) Issue(subject string, now time.Time) (string, error) {
	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Decode verifies structure, signature, and expiry against the given now
// snapshot. Any failure returns a non-nil error; callers must not
// differentiate the causes to the client.
func (c *TokenCodec) Decode(tokenString string, now time.Time) (*AccessClaims, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return c.secret, nil
		},
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}
