package jwtauth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotedesk/internal/auth/jwtauth"
	"quotedesk/internal/config"
	"quotedesk/internal/domain"
)

const testSecret = "unit-test-secret"

func newVerifier() *jwtauth.Verifier {
	return jwtauth.NewVerifier(&config.JWTConfig{
		Secret: testSecret,
		Issuer: "portal-identity",
	})
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestVerify_Success(t *testing.T) {
	userID := uuid.New()
	signed := signToken(t, jwt.MapClaims{
		"sub":   userID.String(),
		"iss":   "portal-identity",
		"email": "broker@example.com",
		"role":  "broker",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	claims, err := newVerifier().Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "broker@example.com", claims.Email)
	assert.Equal(t, domain.RoleBroker, claims.Role)
}

func TestVerify_MissingRoleDefaultsToBroker(t *testing.T) {
	signed := signToken(t, jwt.MapClaims{
		"sub": uuid.NewString(),
		"iss": "portal-identity",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	claims, err := newVerifier().Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleBroker, claims.Role)
}

func TestVerify_WrongIssuer(t *testing.T) {
	signed := signToken(t, jwt.MapClaims{
		"sub": uuid.NewString(),
		"iss": "some-other-service",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := newVerifier().Verify(signed)
	assert.Error(t, err)
}

func TestVerify_Expired(t *testing.T) {
	signed := signToken(t, jwt.MapClaims{
		"sub": uuid.NewString(),
		"iss": "portal-identity",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	_, err := newVerifier().Verify(signed)
	assert.Error(t, err)
}

func TestVerify_MissingExpiry(t *testing.T) {
	signed := signToken(t, jwt.MapClaims{
		"sub": uuid.NewString(),
		"iss": "portal-identity",
	})

	_, err := newVerifier().Verify(signed)
	assert.Error(t, err)
}

func TestVerify_WrongSecret(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": uuid.NewString(),
		"iss": "portal-identity",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("not-the-secret"))
	require.NoError(t, err)

	_, err = newVerifier().Verify(signed)
	assert.Error(t, err)
}

func TestVerify_SubjectNotAUUID(t *testing.T) {
	signed := signToken(t, jwt.MapClaims{
		"sub": "user-42",
		"iss": "portal-identity",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := newVerifier().Verify(signed)
	assert.Error(t, err)
}
