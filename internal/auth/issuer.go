package auth

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/marryplan/marryplan-server/internal/domain"
)

const defaultTokenTTL = time.Hour

// IssuedToken is the mint-time snapshot returned to login callers: the token
// itself, the absolute expiry in epoch seconds, and the seconds remaining at
// issuance. ExpiresIn is only meaningful at mint time; anyone reporting time
// remaining later must recompute against their own clock.
type IssuedToken struct {
	Token     string
	ExpiresAt int64
	ExpiresIn int64
}

// Issuer mints signed tokens with a fixed per-process TTL.
type Issuer struct {
	codec *Codec
	ttl   time.Duration
	now   func() time.Time
}

// NewIssuer builds an issuer. Non-positive TTLs fall back to one hour.
func NewIssuer(codec *Codec, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &Issuer{codec: codec, ttl: ttl, now: time.Now}
}

// Issue signs a token for a just-authenticated identity. The only failure
// mode is a signing failure, which means the process secret is unusable.
func (i *Issuer) Issue(userID int64, username string, role domain.Role) (*IssuedToken, error) {
	now := i.now()
	expiresAt := now.Add(i.ttl)

	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := i.codec.Encode(claims)
	if err != nil {
		return nil, err
	}
	return &IssuedToken{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
		ExpiresIn: expiresAt.Unix() - now.Unix(),
	}, nil
}
