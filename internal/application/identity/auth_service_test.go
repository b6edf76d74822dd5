package identity

import (
	"context"
	"testing"
	"time"

	"github.com/estatebooks/backend/internal/domain/identity"
	"github.com/estatebooks/backend/internal/domain/shared"
	"github.com/estatebooks/backend/internal/infrastructure/auth"
	"github.com/estatebooks/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) SaveWithLock(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func newAuthTestService(t *testing.T, userRepo identity.UserRepository) *AuthService {
	t.Helper()
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-that-is-long-enough",
		AccessTokenExpiration: time.Hour,
		Issuer:                "estatebooks-test",
	})
	return NewAuthService(
		userRepo,
		jwtService,
		auth.NewInMemoryTokenBlacklist(),
		DefaultAuthServiceConfig(),
		zap.NewNop(),
	)
}

func newActiveUser(t *testing.T) *identity.User {
	t.Helper()
	u, err := identity.NewUser("asha.menon", "Secret123", identity.RoleHOF)
	require.NoError(t, err)
	return u
}

func assertAuthErrCode(t *testing.T, err error, code string) {
	t.Helper()
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
}

func TestAuthService_Login_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newAuthTestService(t, userRepo)
	user := newActiveUser(t)

	userRepo.On("FindByUsername", mock.Anything, "asha.menon").Return(user, nil)
	userRepo.On("Save", mock.Anything, user).Return(nil)

	result, err := svc.Login(context.Background(), LoginInput{
		Username: "asha.menon",
		Password: "Secret123",
		IP:       "10.1.2.3",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.Equal(t, "HOF", result.User.Role)
	assert.Equal(t, "10.1.2.3", user.LastLoginIP)
	userRepo.AssertExpectations(t)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newAuthTestService(t, userRepo)

	userRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, nil)

	_, err := svc.Login(context.Background(), LoginInput{Username: "ghost", Password: "whatever1"})
	assertAuthErrCode(t, err, "INVALID_CREDENTIALS")
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newAuthTestService(t, userRepo)
	user := newActiveUser(t)

	userRepo.On("FindByUsername", mock.Anything, "asha.menon").Return(user, nil)
	userRepo.On("Save", mock.Anything, user).Return(nil)

	_, err := svc.Login(context.Background(), LoginInput{Username: "asha.menon", Password: "Wrong123"})
	assertAuthErrCode(t, err, "INVALID_CREDENTIALS")
	assert.Equal(t, 1, user.FailedAttempts)
}

func TestAuthService_Login_LocksAfterRepeatedFailures(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newAuthTestService(t, userRepo)
	user := newActiveUser(t)

	userRepo.On("FindByUsername", mock.Anything, "asha.menon").Return(user, nil)
	userRepo.On("Save", mock.Anything, user).Return(nil)

	var lastErr error
	for i := 0; i < DefaultAuthServiceConfig().MaxLoginAttempts; i++ {
		_, lastErr = svc.Login(context.Background(), LoginInput{Username: "asha.menon", Password: "Wrong123"})
	}

	assertAuthErrCode(t, lastErr, "ACCOUNT_LOCKED")
	assert.True(t, user.IsLocked())

	// Locked account rejects even the correct password
	_, err := svc.Login(context.Background(), LoginInput{Username: "asha.menon", Password: "Secret123"})
	assertAuthErrCode(t, err, "ACCOUNT_LOCKED")
}

func TestAuthService_Login_DeactivatedAccount(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newAuthTestService(t, userRepo)
	user := newActiveUser(t)
	require.NoError(t, user.Deactivate())

	userRepo.On("FindByUsername", mock.Anything, "asha.menon").Return(user, nil)

	_, err := svc.Login(context.Background(), LoginInput{Username: "asha.menon", Password: "Secret123"})
	assertAuthErrCode(t, err, "ACCOUNT_DEACTIVATED")
}

func TestAuthService_Logout_BlacklistsToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newAuthTestService(t, userRepo)

	err := svc.Logout(context.Background(), LogoutInput{
		TokenJTI:  "some-jti",
		ExpiresAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	blacklisted, err := svc.blacklist.IsBlacklisted(context.Background(), "some-jti")
	require.NoError(t, err)
	assert.True(t, blacklisted)
}

func TestAuthService_Logout_ExpiredTokenIsNoop(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newAuthTestService(t, userRepo)

	err := svc.Logout(context.Background(), LogoutInput{
		TokenJTI:  "stale-jti",
		ExpiresAt: time.Now().Add(-time.Minute),
	})
	require.NoError(t, err)

	blacklisted, err := svc.blacklist.IsBlacklisted(context.Background(), "stale-jti")
	require.NoError(t, err)
	assert.False(t, blacklisted)
}

func TestAuthService_ChangePassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newAuthTestService(t, userRepo)
	user := newActiveUser(t)

	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	userRepo.On("SaveWithLock", mock.Anything, user).Return(nil)

	err := svc.ChangePassword(context.Background(), ChangePasswordInput{
		UserID:      user.ID,
		OldPassword: "Secret123",
		NewPassword: "Fresh456x",
	})
	require.NoError(t, err)
	assert.True(t, user.VerifyPassword("Fresh456x"))
}

func TestAuthService_ChangePassword_WrongOldPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newAuthTestService(t, userRepo)
	user := newActiveUser(t)

	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	err := svc.ChangePassword(context.Background(), ChangePasswordInput{
		UserID:      user.ID,
		OldPassword: "Wrong123",
		NewPassword: "Fresh456x",
	})
	assertAuthErrCode(t, err, "INVALID_PASSWORD")
}

func TestAuthService_GetCurrentUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newAuthTestService(t, userRepo)
	user := newActiveUser(t)
	require.NoError(t, user.SetDisplayName("Asha Menon"))

	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	info, err := svc.GetCurrentUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha Menon", info.DisplayName)
	assert.Equal(t, "HOF", info.Role)

	userRepo2 := new(MockUserRepository)
	svc2 := newAuthTestService(t, userRepo2)
	userRepo2.On("FindByID", mock.Anything, mock.Anything).Return(nil, nil)

	_, err = svc2.GetCurrentUser(context.Background(), uuid.New())
	assertAuthErrCode(t, err, "NOT_FOUND")
}
