package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateJWTToken_Success(t *testing.T) {
	signed, err := GenerateJWTToken("gpilotd", "gpilotctl", time.Hour, "secret-key")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims := &jwt.RegisteredClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(signed, claims)
	require.NoError(t, err)
	assert.Equal(t, "gpilotd", claims.Issuer)
	assert.Equal(t, "gpilotctl", claims.Subject)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		subject  string
		duration time.Duration
		key      string
	}{
		{"empty issuer", "", "sub", time.Hour, "key"},
		{"empty subject", "iss", "", time.Hour, "key"},
		{"zero duration", "iss", "sub", 0, "key"},
		{"empty key", "iss", "sub", time.Hour, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, tt.subject, tt.duration, tt.key)
			assert.True(t, errors.Is(err, ErrInvalidTokenParams))
		})
	}
}

func TestValidateAndParseJWTToken_Success(t *testing.T) {
	signed, err := GenerateJWTToken("gpilotd", "ops", time.Hour, "k")
	require.NoError(t, err)

	sub, err := ValidateAndParseJWTToken(signed, "k", "gpilotd")

	require.NoError(t, err)
	assert.Equal(t, "ops", sub)
}

func TestValidateAndParseJWTToken_InvalidKey(t *testing.T) {
	signed, err := GenerateJWTToken("gpilotd", "ops", time.Hour, "right")
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(signed, "wrong", "gpilotd")
	assert.Error(t, err)
}

func TestValidateAndParseJWTToken_Expired(t *testing.T) {
	claims := &jwt.RegisteredClaims{
		Issuer:    "gpilotd",
		Subject:   "ops",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(signed, "k", "gpilotd")
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
}

func TestValidateAndParseJWTToken_WrongIssuer(t *testing.T) {
	signed, err := GenerateJWTToken("someone-else", "ops", time.Hour, "k")
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(signed, "k", "gpilotd")
	assert.Error(t, err)
}

func TestValidateAndParseJWTToken_NoExpiry(t *testing.T) {
	claims := &jwt.RegisteredClaims{Issuer: "gpilotd", Subject: "ops"}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(signed, "k", "gpilotd")
	assert.Error(t, err)
}

func TestValidateAndParseJWTToken_Malformed(t *testing.T) {
	_, err := ValidateAndParseJWTToken("not.a.token", "k", "gpilotd")
	assert.Error(t, err)
}

func TestParseBearerToken(t *testing.T) {
	tok, err := ParseBearerToken("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", tok)

	for _, h := range []string{"", "Bearer", "Basic abc", "Bearer a b"} {
		_, err := ParseBearerToken(h)
		assert.Error(t, err, h)
	}
}
