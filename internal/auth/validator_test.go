package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/marryplan/marryplan-server/internal/domain"
)

func newTestValidator(t *testing.T, at time.Time) *Validator {
	t.Helper()
	v := NewValidator(NewCodec(testSecret), zap.NewNop())
	v.now = func() time.Time { return at }
	return v
}

func issueAt(t *testing.T, mintedAt time.Time, ttl time.Duration) string {
	t.Helper()
	issuer := NewIssuer(NewCodec(testSecret), ttl)
	issuer.now = func() time.Time { return mintedAt }
	issued, err := issuer.Issue(7, "alice", domain.RoleUser)
	require.NoError(t, err)
	return issued.Token
}

func signMapClaims(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)
	return signed
}

func TestValidateFreshToken(t *testing.T) {
	mintedAt := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	token := issueAt(t, mintedAt, time.Hour)

	result := newTestValidator(t, mintedAt.Add(10*time.Second)).Validate(token)

	require.Equal(t, StatusValid, result.Status)
	require.NotNil(t, result.Claims)
	assert.Equal(t, int64(7), result.Claims.UserID)
	assert.Equal(t, "alice", result.Claims.Subject)
	assert.Equal(t, domain.RoleUser, result.Claims.Role)
}

func TestValidateExpiredToken(t *testing.T) {
	mintedAt := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	token := issueAt(t, mintedAt, time.Hour)

	result := newTestValidator(t, mintedAt.Add(3601*time.Second)).Validate(token)

	assert.Equal(t, StatusExpired, result.Status)
	assert.Nil(t, result.Claims)
	assert.Contains(t, result.Reason, "expired")
}

func TestValidateExpiryBoundary(t *testing.T) {
	mintedAt := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	token := issueAt(t, mintedAt, time.Hour)
	expiresAt := mintedAt.Add(time.Hour)

	t.Run("at the expiry instant the token is expired", func(t *testing.T) {
		result := newTestValidator(t, expiresAt).Validate(token)
		assert.Equal(t, StatusExpired, result.Status)
	})

	t.Run("one second before expiry the token is valid", func(t *testing.T) {
		result := newTestValidator(t, expiresAt.Add(-time.Second)).Validate(token)
		assert.Equal(t, StatusValid, result.Status)
	})
}

func TestValidateEmptyInput(t *testing.T) {
	validator := newTestValidator(t, time.Now())

	for _, input := range []string{"", "   ", "\t"} {
		result := validator.Validate(input)
		assert.Equal(t, StatusInvalid, result.Status)
		assert.Equal(t, "token is empty", result.Reason)
	}
}

func TestValidateMissingClaims(t *testing.T) {
	now := time.Now()
	exp := now.Add(time.Hour).Unix()
	validator := newTestValidator(t, now)

	tests := []struct {
		name   string
		claims jwt.MapClaims
		reason string
	}{
		{
			name:   "missing role",
			claims: jwt.MapClaims{"sub": "alice", "uid": 7, "exp": exp},
			reason: "role",
		},
		{
			name:   "missing subject",
			claims: jwt.MapClaims{"uid": 7, "role": "USER", "exp": exp},
			reason: "sub",
		},
		{
			name:   "missing user id",
			claims: jwt.MapClaims{"sub": "alice", "role": "USER", "exp": exp},
			reason: "uid",
		},
		{
			name:   "missing expiry",
			claims: jwt.MapClaims{"sub": "alice", "uid": 7, "role": "USER"},
			reason: "exp",
		},
		{
			name:   "unknown role",
			claims: jwt.MapClaims{"sub": "alice", "uid": 7, "role": "SUPERUSER", "exp": exp},
			reason: "role",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := validator.Validate(signMapClaims(t, tc.claims))
			assert.Equal(t, StatusInvalid, result.Status)
			assert.Contains(t, result.Reason, tc.reason)
		})
	}
}

func TestValidateMalformedBeatsExpired(t *testing.T) {
	mintedAt := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	token := issueAt(t, mintedAt, time.Hour)

	// Tamper with the payload of an already-expired token. The unverified
	// signature must win: the result is Invalid, never Expired.
	tampered := flipChar(token, len(token)/2)
	result := newTestValidator(t, mintedAt.Add(48*time.Hour)).Validate(tampered)

	assert.Equal(t, StatusInvalid, result.Status)
}

func TestValidateIdempotent(t *testing.T) {
	mintedAt := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	token := issueAt(t, mintedAt, time.Hour)
	validator := newTestValidator(t, mintedAt.Add(time.Minute))

	first := validator.Validate(token)
	second := validator.Validate(token)

	assert.Equal(t, first, second)
}

func TestExtractHelpers(t *testing.T) {
	mintedAt := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	token := issueAt(t, mintedAt, time.Hour)
	validator := newTestValidator(t, mintedAt)

	t.Run("valid token", func(t *testing.T) {
		id, ok := validator.ExtractUserID(token)
		require.True(t, ok)
		assert.Equal(t, int64(7), id)

		username, ok := validator.ExtractUsername(token)
		require.True(t, ok)
		assert.Equal(t, "alice", username)

		role, ok := validator.ExtractUserRole(token)
		require.True(t, ok)
		assert.Equal(t, domain.RoleUser, role)
	})

	t.Run("expired token still decodes", func(t *testing.T) {
		// The helpers wrap decoding only; they are not validators and must
		// not re-implement the expiry check.
		late := newTestValidator(t, mintedAt.Add(48*time.Hour))
		username, ok := late.ExtractUsername(token)
		assert.True(t, ok)
		assert.Equal(t, "alice", username)
	})

	t.Run("undecodable token yields absent values", func(t *testing.T) {
		for _, input := range []string{"", "garbage", flipChar(token, len(token)/2)} {
			_, ok := validator.ExtractUserID(input)
			assert.False(t, ok)
			_, ok = validator.ExtractUsername(input)
			assert.False(t, ok)
			_, ok = validator.ExtractUserRole(input)
			assert.False(t, ok)
		}
	})
}
