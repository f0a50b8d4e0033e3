package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/marryplan/marryplan-server/internal/domain"
)

// Status tags the outcome of one validation call.
type Status int

const (
	StatusValid Status = iota
	StatusExpired
	StatusInvalid
	StatusError
)

// String returns the status name for logging.
func (s Status) String() string {
	switch s {
	case StatusValid:
		return "VALID"
	case StatusExpired:
		return "EXPIRED"
	case StatusInvalid:
		return "INVALID"
	case StatusError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Result is the tagged outcome of validating a raw token string. Claims is
// populated only when Status is StatusValid.
type Result struct {
	Status Status
	Claims *Claims
	Reason string
}

// Valid reports whether the token may be trusted.
func (r Result) Valid() bool {
	return r.Status == StatusValid
}

// Validator classifies arbitrary token strings. It never panics and never
// returns a Go error; every outcome, including internal faults, is a Result.
type Validator struct {
	codec  *Codec
	logger *zap.Logger
	now    func() time.Time
}

// NewValidator builds a validator over the shared codec.
func NewValidator(codec *Codec, logger *zap.Logger) *Validator {
	return &Validator{codec: codec, logger: logger, now: time.Now}
}

// Validate classifies a token: structure and signature first, then required
// claims, then expiry. A token that is both malformed and expired reports as
// Invalid, because an unverified payload cannot be trusted to carry a real
// expiry.
func (v *Validator) Validate(tokenStr string) Result {
	if strings.TrimSpace(tokenStr) == "" {
		return Result{Status: StatusInvalid, Reason: "token is empty"}
	}

	claims, err := v.codec.Decode(tokenStr)
	if err != nil {
		if errors.Is(err, ErrTokenMalformed) || errors.Is(err, ErrTokenUnsupported) {
			return Result{Status: StatusInvalid, Reason: err.Error()}
		}
		v.logger.Error("unexpected token decode failure", zap.Error(err))
		return Result{Status: StatusError, Reason: err.Error()}
	}

	if reason, ok := requiredClaims(claims); !ok {
		return Result{Status: StatusInvalid, Reason: reason}
	}

	// Expiry is exclusive of the boundary instant: exp == now is expired.
	if !claims.ExpiresAt.Time.After(v.now()) {
		return Result{
			Status: StatusExpired,
			Reason: fmt.Sprintf("token expired at %s", claims.ExpiresAt.Time.UTC().Format(time.RFC3339)),
		}
	}

	return Result{Status: StatusValid, Claims: claims}
}

// requiredClaims checks that a correctly signed token actually carries a
// usable identity. A valid signature with a missing claim is still rejected.
func requiredClaims(claims *Claims) (string, bool) {
	switch {
	case claims.ExpiresAt == nil:
		return "missing required claim: exp", false
	case claims.Subject == "":
		return "missing required claim: sub", false
	case claims.UserID == 0:
		return "missing required claim: uid", false
	case claims.Role == "":
		return "missing required claim: role", false
	case !claims.Role.Valid():
		return fmt.Sprintf("unknown role %q", claims.Role), false
	}
	return "", true
}

// ExtractUserID returns the uid claim from a decodable token. It does not
// check expiry; it is a convenience wrapper over decoding, not a validator.
func (v *Validator) ExtractUserID(tokenStr string) (int64, bool) {
	claims, err := v.codec.Decode(tokenStr)
	if err != nil || claims.UserID == 0 {
		return 0, false
	}
	return claims.UserID, true
}

// ExtractUsername returns the subject claim from a decodable token.
func (v *Validator) ExtractUsername(tokenStr string) (string, bool) {
	claims, err := v.codec.Decode(tokenStr)
	if err != nil || claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}

// ExtractUserRole returns the embedded role claim from a decodable token.
// Authorization code should prefer the store-backed role on the Principal.
func (v *Validator) ExtractUserRole(tokenStr string) (domain.Role, bool) {
	claims, err := v.codec.Decode(tokenStr)
	if err != nil || claims.Role == "" {
		return "", false
	}
	return claims.Role, true
}
