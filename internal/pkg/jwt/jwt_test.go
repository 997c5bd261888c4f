package jwt

import (
	"context"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/sodeng/branchops-backend-go/internal/domain/auth"
	"github.com/sodeng/branchops-backend-go/internal/domain/staff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() Service {
	return NewJWTService("test-secret-key-for-jwt", "1h", "24h", false)
}

func TestGenerateAccessToken_Claims(t *testing.T) {
	svc := newTestService()

	tokenString, expiresAt, err := svc.GenerateAccessToken(auth.Session{
		Email:   "zed@fakeemail.com",
		StaffID: "adm-1",
		Name:    "ZED",
		Branch:  "TELOK",
		Role:    staff.RoleAdmin,
		IsAdmin: true,
	})
	require.NoError(t, err)
	assert.NotZero(t, expiresAt)

	token, err := jwtauth.VerifyToken(svc.JWTAuth(), tokenString)
	require.NoError(t, err)
	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)

	assert.Equal(t, TypeAccess, claims["type"])
	assert.Equal(t, "zed@fakeemail.com", claims["email"])
	assert.Equal(t, "TELOK", claims["branch"])
	assert.Equal(t, true, claims["is_admin"])
}

func TestGenerateAccessToken_BadDuration(t *testing.T) {
	svc := NewJWTService("secret", "soon", "24h", false)
	_, _, err := svc.GenerateAccessToken(auth.Session{Email: "a@fakeemail.com"})
	assert.Error(t, err)
}

func TestStreamToken(t *testing.T) {
	svc := newTestService()

	token, expiresIn, err := svc.GenerateStreamToken("amy@fakeemail.com")
	require.NoError(t, err)
	assert.Equal(t, 300, expiresIn)

	email, err := svc.ValidateStreamToken(token)
	require.NoError(t, err)
	assert.Equal(t, "amy@fakeemail.com", email)

	refresh, _, err := svc.GenerateRefreshToken("amy@fakeemail.com")
	require.NoError(t, err)
	_, err = svc.ValidateStreamToken(refresh)
	assert.Error(t, err)

	_, err = svc.ValidateStreamToken("not-a-token")
	assert.Error(t, err)
}

func TestRefreshTokensAreDistinct(t *testing.T) {
	svc := newTestService()

	a, _, err := svc.GenerateRefreshToken("amy@fakeemail.com")
	require.NoError(t, err)
	b, _, err := svc.GenerateRefreshToken("amy@fakeemail.com")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
