package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anasir-dev/portfolio-backend/errs"
)

func TestTokenIssueAndVerify(t *testing.T) {
	tokens := NewTokenService("test-secret")

	token, err := tokens.Issue("admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	username, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", username)
}

func TestTokenVerifyRejectsTamperedSignature(t *testing.T) {
	tokens := NewTokenService("test-secret")

	token, err := tokens.Issue("admin")
	require.NoError(t, err)

	// Flip the last character of the signature segment.
	last := token[len(token)-1]
	flipped := "A"
	if last == 'A' {
		flipped = "B"
	}
	tampered := token[:len(token)-1] + flipped

	_, err = tokens.Verify(tampered)
	assert.True(t, errs.IsInvalidTokenError(err))
}

func TestTokenVerifyRejectsWrongSecret(t *testing.T) {
	issued, err := NewTokenService("secret-one").Issue("admin")
	require.NoError(t, err)

	_, err = NewTokenService("secret-two").Verify(issued)
	assert.True(t, errs.IsInvalidTokenError(err))
}

func TestTokenVerifyRejectsGarbage(t *testing.T) {
	tokens := NewTokenService("test-secret")

	for _, garbage := range []string{"", "not-a-token", strings.Repeat("x", 300)} {
		_, err := tokens.Verify(garbage)
		assert.True(t, errs.IsInvalidTokenError(err), "token %q", garbage)
	}
}

func TestTokenVerifyRejectsExpired(t *testing.T) {
	tokens := NewTokenService("test-secret")

	issuedAt := time.Now().Add(-48 * time.Hour)
	tokens.now = func() time.Time { return issuedAt }

	token, err := tokens.Issue("admin")
	require.NoError(t, err)

	tokens.now = time.Now
	_, err = tokens.Verify(token)
	assert.True(t, errs.IsExpiredTokenError(err))
}

func TestTokenValidWithinWindow(t *testing.T) {
	tokens := NewTokenService("test-secret")

	issuedAt := time.Now().Add(-23 * time.Hour)
	tokens.now = func() time.Time { return issuedAt }

	token, err := tokens.Issue("admin")
	require.NoError(t, err)

	tokens.now = time.Now
	username, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", username)
}
