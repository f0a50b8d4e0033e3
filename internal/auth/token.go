package auth

import (
	"errors"
	"fmt"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/marryplan/marryplan-server/internal/domain"
)

// Decode failure classes. Anything the parser reports that does not map onto
// one of these is an unexpected fault and is passed through unchanged.
var (
	// ErrTokenMalformed covers structural corruption and signature mismatch.
	ErrTokenMalformed = errors.New("token is malformed")
	// ErrTokenUnsupported covers tokens this codec cannot verify, such as a
	// foreign signing method.
	ErrTokenUnsupported = errors.New("token format is unsupported")
)

// Claims describes the signed token payload. Timestamps travel as epoch
// seconds via RegisteredClaims, never as formatted strings.
type Claims struct {
	UserID int64       `json:"uid"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Codec signs and verifies the compact token format. Decoding is structural
// only: it proves the signature and shape but never the expiry. Expiry belongs
// to the Validator, so a malformed token cannot be misreported as expired.
type Codec struct {
	secret []byte
	parser *jwt.Parser
}

// NewCodec binds a codec to the process signing secret.
func NewCodec(secret []byte) *Codec {
	return &Codec{
		secret: secret,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
	}
}

// Encode signs the claim set with HS256.
func (c *Codec) Encode(claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies the signature and returns the embedded claim set. The
// signature is checked before any field is trusted.
func (c *Codec) Decode(tokenStr string) (*Claims, error) {
	parsed, err := c.parser.ParseWithClaims(tokenStr, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	})
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenMalformed), errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return nil, fmt.Errorf("%w: %v", ErrTokenUnsupported, err)
	default:
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected claims type", ErrTokenMalformed)
	}
	return claims, nil
}
