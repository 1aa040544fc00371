package jwt

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var codec = NewCodec("test-signing-secret", "lendflow-los-test")

func Test_Issue_AccessToken(t *testing.T) {
	token, err := codec.Issue("batbayar", TokenTypeAccess, []string{"OFFICER"}, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "batbayar", claims.Subject)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.Equal(t, []string{"OFFICER"}, claims.Roles)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
	assert.True(t, claims.ExpiresAt.Time.After(claims.IssuedAt.Time))
}

func Test_IsValid_ExpiresAfterTTL(t *testing.T) {
	token, err := codec.Issue("batbayar", TokenTypeAccess, nil, 1000*time.Millisecond)
	require.NoError(t, err)

	assert.True(t, codec.IsValid(token, TokenTypeAccess))

	time.Sleep(1100 * time.Millisecond)
	assert.False(t, codec.IsValid(token, TokenTypeAccess))
}

func Test_IsValid_TypeMismatch(t *testing.T) {
	refresh, err := codec.IssueRefresh("batbayar", "token-id-1", time.Hour)
	require.NoError(t, err)

	assert.True(t, codec.IsValid(refresh, TokenTypeRefresh))
	assert.False(t, codec.IsValid(refresh, TokenTypeAccess))
}

func Test_Decode_ExpiredTokenStillDecodes(t *testing.T) {
	// Decode only checks structure and signature; expiry belongs to IsValid
	token, err := codec.Issue("batbayar", TokenTypeAccess, nil, -time.Hour)
	require.NoError(t, err)

	claims, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "batbayar", claims.Subject)
	assert.False(t, codec.IsValid(token, TokenTypeAccess))
}

func Test_Decode_MalformedToken(t *testing.T) {
	_, err := codec.Decode("not-a-jwt")
	require.ErrorIs(t, err, ErrMalformedToken)
	assert.False(t, codec.IsValid("not-a-jwt", TokenTypeAccess))
}

func Test_Decode_TamperedSignature(t *testing.T) {
	token, err := codec.Issue("batbayar", TokenTypeAccess, nil, time.Hour)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = codec.Decode(tampered)
	require.ErrorIs(t, err, ErrSignatureInvalid)
	assert.False(t, codec.IsValid(tampered, TokenTypeAccess))
}

func Test_Decode_WrongSecret(t *testing.T) {
	other := NewCodec("another-secret", "lendflow-los-test")
	token, err := other.Issue("batbayar", TokenTypeAccess, nil, time.Hour)
	require.NoError(t, err)

	_, err = codec.Decode(token)
	require.ErrorIs(t, err, ErrSignatureInvalid)
}
