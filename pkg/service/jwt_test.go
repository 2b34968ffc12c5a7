package service

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "competence-system/pkg/errors"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	token, err := svc.Generate(42, "hr@nexusai.com", "hr", "EMP042")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, "hr@nexusai.com", claims.Email)
	assert.Equal(t, "hr", claims.Role)
	assert.Equal(t, "EMP042", claims.EmployeeID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestDecodeEmptyToken(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	_, err := svc.Decode("")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestDecodeExpiredToken(t *testing.T) {
	svc := NewTokenService("test-secret", -time.Minute)

	token, err := svc.Generate(1, "a@b.com", "employee", "EMP001")
	require.NoError(t, err)

	_, err = svc.Decode(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestDecodeWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-one", time.Hour)
	verifier := NewTokenService("secret-two", time.Hour)

	token, err := issuer.Generate(1, "a@b.com", "employee", "EMP001")
	require.NoError(t, err)

	_, err = verifier.Decode(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestDecodeRejectsNonHMACMethod(t *testing.T) {
	// Token signed with "none" must never pass, regardless of claims.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &IdentityClaims{UserID: 1})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	svc := NewTokenService("test-secret", time.Hour)
	_, err = svc.Decode(raw)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestDecodeGarbage(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	_, err := svc.Decode("not.a.token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
