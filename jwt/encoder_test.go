package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobinette/bookshelf/errors"
)

func TestEncodeDecoder(t *testing.T) {
	e := NewEncodeDecoder([]byte("secret"), time.Hour)

	token, err := e.Encode("user-1")
	require.NoError(t, err)

	userID, err := e.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestEncodeDecoder_Invalid(t *testing.T) {
	e := NewEncodeDecoder([]byte("secret"), time.Hour)
	expired := NewEncodeDecoder([]byte("secret"), -time.Minute)
	other := NewEncodeDecoder([]byte("other secret"), time.Hour)

	expiredToken, err := expired.Encode("user-1")
	require.NoError(t, err)
	otherToken, err := other.Encode("user-1")
	require.NoError(t, err)

	tts := map[string]string{
		"expired":   expiredToken,
		"other key": otherToken,
		"garbage":   "not.a.token",
		"empty":     "",
	}

	for name, token := range tts {
		_, err := e.Decode(token)
		errors.AssertCode(t, err, errors.CodeValidation, name)
	}
}
