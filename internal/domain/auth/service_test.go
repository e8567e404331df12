package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmastock/internal/core/apperror"
	"pharmastock/internal/domain/auth"
	"pharmastock/internal/infrastructure/storage/memory"
)

func newAuthService(t *testing.T) *auth.Service {
	t.Helper()
	store := memory.NewStore()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		Secret:         "test-secret-do-not-use-in-production",
		Issuer:         "pharmastock",
		AccessTokenTTL: time.Hour,
	})
	return auth.NewService(
		memory.NewUserRepo(store),
		memory.NewTxManager(store),
		jwtService,
		nil,
		auth.DefaultServiceConfig(),
	)
}

func TestCreateUserAndLogin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, auth.CreateUserInput{
		Name:     "Jordan Smith",
		Email:    "jordan@pharmacy.test",
		Password: "correct horse battery",
		Role:     auth.RolePharmacist,
	})
	require.NoError(t, err)
	assert.True(t, user.Active)
	assert.NotEqual(t, "correct horse battery", user.PasswordHash)

	result, err := svc.Login(ctx, auth.Credentials{
		Email:    "jordan@pharmacy.test",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.True(t, result.ExpiresAt.After(time.Now()))
	require.NotNil(t, result.User)
	assert.NotNil(t, result.User.LastLoginAt)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, auth.CreateUserInput{
		Name:     "Jordan Smith",
		Email:    "jordan@pharmacy.test",
		Password: "correct horse battery",
		Role:     auth.RoleCashier,
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, auth.Credentials{
		Email:    "jordan@pharmacy.test",
		Password: "wrong password",
	})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Login(context.Background(), auth.Credentials{
		Email:    "nobody@pharmacy.test",
		Password: "whatever",
	})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	// Unknown email and wrong password are indistinguishable to the caller.
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
}

func TestLogin_InactiveUser(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, auth.CreateUserInput{
		Name:     "Jordan Smith",
		Email:    "jordan@pharmacy.test",
		Password: "correct horse battery",
		Role:     auth.RoleCashier,
	})
	require.NoError(t, err)

	inactive := false
	_, err = svc.UpdateUser(ctx, user.ID, auth.UpdateUserInput{Active: &inactive})
	require.NoError(t, err)

	_, err = svc.Login(ctx, auth.Credentials{
		Email:    "jordan@pharmacy.test",
		Password: "correct horse battery",
	})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeForbidden, appErr.Code)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	input := auth.CreateUserInput{
		Name:     "Jordan Smith",
		Email:    "jordan@pharmacy.test",
		Password: "correct horse battery",
		Role:     auth.RoleCashier,
	}
	_, err := svc.CreateUser(ctx, input)
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, input)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
}

func TestCreateUser_ShortPassword(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.CreateUser(context.Background(), auth.CreateUserInput{
		Name:     "Jordan Smith",
		Email:    "jordan@pharmacy.test",
		Password: "short",
		Role:     auth.RoleCashier,
	})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestCreateUser_InvalidRole(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.CreateUser(context.Background(), auth.CreateUserInput{
		Name:     "Jordan Smith",
		Email:    "jordan@pharmacy.test",
		Password: "correct horse battery",
		Role:     "SUPERVISOR",
	})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestChangePassword(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, auth.CreateUserInput{
		Name:     "Jordan Smith",
		Email:    "jordan@pharmacy.test",
		Password: "original password",
		Role:     auth.RoleCashier,
	})
	require.NoError(t, err)

	require.NoError(t, svc.ChangePassword(ctx, user.ID, "brand new password"))

	_, err = svc.Login(ctx, auth.Credentials{
		Email:    "jordan@pharmacy.test",
		Password: "original password",
	})
	require.Error(t, err)

	_, err = svc.Login(ctx, auth.Credentials{
		Email:    "jordan@pharmacy.test",
		Password: "brand new password",
	})
	require.NoError(t, err)
}

func TestEnsureAdmin_Idempotent(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureAdmin(ctx, "Admin", "admin@pharmacy.test", "bootstrap password"))
	require.NoError(t, svc.EnsureAdmin(ctx, "Admin", "admin@pharmacy.test", "bootstrap password"))

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, auth.RoleAdmin, users[0].Role)
}

func TestTokenRoundtrip(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		Secret:         "test-secret-do-not-use-in-production",
		Issuer:         "pharmastock",
		AccessTokenTTL: time.Hour,
	})

	user := auth.NewUser("Jordan Smith", "jordan@pharmacy.test", "hash", auth.RolePharmacist)
	token, expiresAt, err := jwtService.GenerateAccessToken(user)
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := jwtService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, "jordan@pharmacy.test", claims.Email)
	assert.Equal(t, auth.RolePharmacist, claims.Role)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	issuer := auth.NewJWTService(auth.JWTConfig{
		Secret:         "secret-a",
		Issuer:         "pharmastock",
		AccessTokenTTL: time.Hour,
	})
	verifier := auth.NewJWTService(auth.JWTConfig{
		Secret:         "secret-b",
		Issuer:         "pharmastock",
		AccessTokenTTL: time.Hour,
	})

	user := auth.NewUser("Jordan Smith", "jordan@pharmacy.test", "hash", auth.RoleCashier)
	token, _, err := issuer.GenerateAccessToken(user)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}
