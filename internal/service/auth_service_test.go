package service

import (
	"context"
	"testing"
	"time"

	"ai-learning-assistant-be/internal/dto"
	"ai-learning-assistant-be/internal/pkg/apperror"
	"ai-learning-assistant-be/internal/pkg/logger"
	"ai-learning-assistant-be/internal/repository/repotest"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(repotest.NewStore(), testSecret, time.Hour, logger.NewNopLogger())

	registered, err := svc.Register(ctx, &dto.RegisterRequest{Email: " Ada@Example.com ", Password: "secret1", Username: "ada"})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", registered.Email)

	res, err := svc.Login(ctx, &dto.LoginRequest{Email: "ADA@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, registered.Id, res.User.Id)
	assert.Equal(t, "0.00", res.User.AvgScore)

	token, err := jwt.Parse(res.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	require.NoError(t, err)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, registered.Id.String(), claims["user_id"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(repotest.NewStore(), testSecret, time.Hour, logger.NewNopLogger())

	_, err := svc.Register(ctx, &dto.RegisterRequest{Email: "a@b.c", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &dto.RegisterRequest{Email: "A@B.C", Password: "other12"})
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(repotest.NewStore(), testSecret, time.Hour, logger.NewNopLogger())
	_, err := svc.Register(ctx, &dto.RegisterRequest{Email: "a@b.c", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "a@b.c", Password: "wrong"})
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "nobody@b.c", Password: "secret1"})
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
}
