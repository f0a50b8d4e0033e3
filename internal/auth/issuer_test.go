package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marryplan/marryplan-server/internal/domain"
)

func TestIssuerIssue(t *testing.T) {
	codec := NewCodec(testSecret)
	mintedAt := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	issuer := NewIssuer(codec, time.Hour)
	issuer.now = func() time.Time { return mintedAt }

	issued, err := issuer.Issue(7, "alice", domain.RoleUser)
	require.NoError(t, err)

	assert.Equal(t, mintedAt.Add(time.Hour).Unix(), issued.ExpiresAt)
	assert.Equal(t, int64(3600), issued.ExpiresIn)

	decoded, err := codec.Decode(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), decoded.UserID)
	assert.Equal(t, "alice", decoded.Subject)
	assert.Equal(t, domain.RoleUser, decoded.Role)
	assert.Equal(t, mintedAt.Unix(), decoded.IssuedAt.Unix())
	assert.Equal(t, mintedAt.Add(time.Hour).Unix(), decoded.ExpiresAt.Unix())
}

func TestIssuerDefaultTTL(t *testing.T) {
	issuer := NewIssuer(NewCodec(testSecret), 0)
	assert.Equal(t, defaultTokenTTL, issuer.ttl)
}
