package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCredentials_Valid(t *testing.T) {
	creds, err := ExtractCredentials(basicToken("john.doe", "secret1234"))
	require.NoError(t, err)
	assert.Equal(t, "john.doe", creds.Username)
	assert.Equal(t, "secret1234", creds.Password)
}

func TestExtractCredentials_PasswordWithColon(t *testing.T) {
	// Only the first colon separates the pair.
	creds, err := ExtractCredentials(basicToken("john.doe", "pa:ss:word"))
	require.NoError(t, err)
	assert.Equal(t, "john.doe", creds.Username)
	assert.Equal(t, "pa:ss:word", creds.Password)
}

func TestExtractCredentials_MissingPrefix(t *testing.T) {
	_, err := ExtractCredentials("Bearer abcdef")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = ExtractCredentials("")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestExtractCredentials_BadBase64(t *testing.T) {
	_, err := ExtractCredentials("Basic not-base64!!!")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestExtractCredentials_NoColon(t *testing.T) {
	_, err := ExtractCredentials("Basic am9obi5kb2U=") // "john.doe", no separator
	assert.ErrorIs(t, err, ErrUnauthorized)
}
