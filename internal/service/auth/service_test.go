package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	domain "github.com/vitilevu-hr/payroll-backend-go/internal/domain/auth"
	"github.com/vitilevu-hr/payroll-backend-go/internal/domain/user"
	"github.com/vitilevu-hr/payroll-backend-go/internal/pkg/jwt"
)

type fakeUserRepo struct {
	users map[string]user.User
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (user.User, error) {
	u, ok := f.users[username]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func newTestAuthService(t *testing.T) domain.AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &fakeUserRepo{users: map[string]user.User{
		"sela": {ID: "u1", Username: "sela", PasswordHash: string(hash), IsAdmin: true},
	}}
	jwtService := jwt.NewJWTService("test-secret-key-for-jwt", "1h")
	return NewAuthService(repo, jwtService)
}

func TestLogin_Success(t *testing.T) {
	svc := newTestAuthService(t)

	resp, err := svc.Login(context.Background(), domain.LoginRequest{Username: "sela", Password: "password123"})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Greater(t, resp.ExpiresAt, int64(0))
	assert.Equal(t, "sela", resp.Username)
	assert.True(t, resp.IsAdmin)
}

func TestLogin_InvalidPassword(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.Login(context.Background(), domain.LoginRequest{Username: "sela", Password: "wrong"})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

// Unknown users get the same error as a wrong password.
func TestLogin_UnknownUser(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.Login(context.Background(), domain.LoginRequest{Username: "nobody", Password: "password123"})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_MissingFields(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.Login(context.Background(), domain.LoginRequest{})

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
}
