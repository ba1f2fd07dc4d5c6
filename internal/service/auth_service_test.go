package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/crane-workorders/internal/auth"
	"github.com/spec-kit/crane-workorders/internal/config"
	"github.com/spec-kit/crane-workorders/internal/persistence"
	"github.com/spec-kit/crane-workorders/internal/repository"
	"github.com/spec-kit/crane-workorders/internal/service"
	"github.com/spec-kit/crane-workorders/internal/testutil"
	apperrors "github.com/spec-kit/crane-workorders/pkg/util"
)

var testAuthConfig = config.AuthConfig{
	JWTSecret:             "test-secret",
	AccessTokenTTLMinutes: 5,
	BcryptCost:            4,
}

func newAuthService(t *testing.T) (*service.AuthService, *persistence.Store) {
	t.Helper()
	store := testutil.OpenStore(t)
	svc := service.NewAuthService(testAuthConfig, service.AuthDependencies{
		UserRepo:     repository.NewUserRepository(store),
		SessionStore: auth.NewMemorySessionStore(),
	})
	require.NoError(t, svc.EnsureDefaultUser(context.Background(), "admin", "secret"))
	return svc, store
}

func statusOf(err error) int {
	return apperrors.ToDomainError(err).HTTPStatus
}

func TestAuthService_EnsureDefaultUserTwice(t *testing.T) {
	svc, store := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureDefaultUser(ctx, "admin", "other"))

	var count int
	require.NoError(t, store.DB().GetContext(ctx, &count, `SELECT COUNT(*) FROM usertable WHERE username = 'admin'`))
	assert.Equal(t, 1, count)

	var hash string
	require.NoError(t, store.DB().GetContext(ctx, &hash, `SELECT hashed_password FROM usertable WHERE username = 'admin'`))
	assert.NotEqual(t, "secret", hash)

	user, err := svc.Authenticate(ctx, "admin", "secret")
	require.NoError(t, err)
	require.NotNil(t, user)
}

func TestAuthService_Authenticate(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	for _, tc := range []struct{ username, password string }{
		{"admin", "wrong"},
		{"admin", ""},
		{"nobody", "secret"},
		{"ADMIN", "secret"},
	} {
		user, err := svc.Authenticate(ctx, tc.username, tc.password)
		require.NoError(t, err)
		assert.Nil(t, user, "%s/%s", tc.username, tc.password)
	}
}

func TestAuthService_LoginAndValidate(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	token, err := svc.Login(ctx, "admin", "secret")
	require.NoError(t, err)
	assert.Equal(t, "bearer", token.TokenType)
	assert.NotEqual(t, "fake-jwt-token", token.AccessToken)

	principal, err := svc.Validate(ctx, token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", principal.User.Username)

	_, err = svc.Login(ctx, "admin", "nope")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, statusOf(err))
	assert.Equal(t, "Incorrect username or password", apperrors.ToDomainError(err).Message)

	_, err = svc.Validate(ctx, "fake-jwt-token")
	assert.Equal(t, http.StatusUnauthorized, statusOf(err))
	assert.Equal(t, "Invalid token", apperrors.ToDomainError(err).Message)
}

func TestAuthService_Logout(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	first, err := svc.Login(ctx, "admin", "secret")
	require.NoError(t, err)
	second, err := svc.Login(ctx, "admin", "secret")
	require.NoError(t, err)

	principal, err := svc.Validate(ctx, first.AccessToken)
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx, principal))

	_, err = svc.Validate(ctx, first.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, statusOf(err))

	_, err = svc.Validate(ctx, second.AccessToken)
	assert.NoError(t, err)
}

func TestAuthService_DisabledAccount(t *testing.T) {
	svc, store := newAuthService(t)
	ctx := context.Background()

	token, err := svc.Login(ctx, "admin", "secret")
	require.NoError(t, err)

	_, err = store.DB().ExecContext(ctx, `UPDATE usertable SET disabled = 1 WHERE username = 'admin'`)
	require.NoError(t, err)

	_, err = svc.Validate(ctx, token.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, statusOf(err))

	_, err = svc.Login(ctx, "admin", "secret")
	assert.Equal(t, http.StatusUnauthorized, statusOf(err))
}
