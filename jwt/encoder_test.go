package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecoder(t *testing.T) {
	ed := NewEncodeDecoder([]byte("test key"))

	bearer, err := ed.Encode(42, "pizza@bockdocs.com")
	require.NoError(t, err, "encoding should not fail")

	userID, email, err := ed.Decode(bearer)
	require.NoError(t, err, "decoding should not fail")
	assert.Equal(t, 42, userID)
	assert.Equal(t, "pizza@bockdocs.com", email)
}

func TestEncodeDecoder_WrongKey(t *testing.T) {
	bearer, err := NewEncodeDecoder([]byte("key 1")).Encode(1, "a@b.com")
	require.NoError(t, err)

	_, _, err = NewEncodeDecoder([]byte("key 2")).Decode(bearer)
	assert.Error(t, err, "decoding with another key should fail")
}

func TestEncodeDecoder_Expired(t *testing.T) {
	key := []byte("test key")
	claims := Claims{
		UserID: 1,
		Email:  "a@b.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			Issuer:    "bockdocs",
		},
	}
	bearer, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	require.NoError(t, err)

	_, _, err = NewEncodeDecoder(key).Decode(bearer)
	assert.Error(t, err, "decoding an expired token should fail")
}
