package service

import (
	"context"
	"testing"

	"ai-intake-be/internal/config"
	"ai-intake-be/internal/dto"
	"ai-intake-be/internal/pkg/serverutils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(password string) IAuthService {
	return NewAuthService(config.AdminConfig{
		Username:  "carla",
		Password:  password,
		JWTSecret: "test-secret",
	}, nopLogger{})
}

func TestLogin_PlaintextPassword(t *testing.T) {
	svc := newAuthService("s3nha")

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "carla", Password: "s3nha"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLogin_BcryptPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3nha"), bcrypt.DefaultCost)
	require.NoError(t, err)
	svc := newAuthService(string(hash))

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "carla", Password: "s3nha"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLogin_WrongCredentials(t *testing.T) {
	svc := newAuthService("s3nha")

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "carla", Password: "errada"})
	assert.ErrorIs(t, err, serverutils.ErrUnauthorized)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{Username: "outro", Password: "s3nha"})
	assert.ErrorIs(t, err, serverutils.ErrUnauthorized)
}

func TestLogin_DisabledWhenUnconfigured(t *testing.T) {
	svc := NewAuthService(config.AdminConfig{}, nopLogger{})

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "", Password: ""})
	assert.ErrorIs(t, err, serverutils.ErrUnauthorized)
}

func TestLogin_TokenCarriesAdminClaims(t *testing.T) {
	svc := newAuthService("s3nha")

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "carla", Password: "s3nha"})
	require.NoError(t, err)

	token, err := jwt.Parse(resp.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "admin", claims["role"])
	assert.Equal(t, "carla", claims["sub"])
	assert.NotNil(t, claims["exp"])
}
