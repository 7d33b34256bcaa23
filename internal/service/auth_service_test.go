package service

import (
	"context"
	"errors"
	"testing"

	"github.com/cardnews/cardnews-backend/internal/common"
	"github.com/cardnews/cardnews-backend/internal/domain"
	"github.com/cardnews/cardnews-backend/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// --- Mock UserRepository ---

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(user)
	if user.ID == "" {
		user.ID = "generated"
	}
	return args.Error(0)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func newTestAuthService(repo *mockUserRepo) *authService {
	return &authService{
		userRepo:   repo,
		jwtManager: jwt.NewManager("test-secret", 900, 3600),
		bcryptCost: bcrypt.MinCost,
	}
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestRegister_Success(t *testing.T) {
	repo := new(mockUserRepo)
	svc := newTestAuthService(repo)

	repo.On("ExistsByEmail", "new@example.com").Return(false, nil)
	repo.On("Create", mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "new@example.com" && bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("secret1")) == nil
	})).Return(nil)

	user, err := svc.Register(context.Background(), &domain.RegisterRequest{
		Email: " New@Example.com ", Name: "새 사용자", Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "generated", user.ID)
	assert.Equal(t, "new@example.com", user.Email)
	repo.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := new(mockUserRepo)
	svc := newTestAuthService(repo)
	repo.On("ExistsByEmail", "a@example.com").Return(true, nil)

	_, err := svc.Register(context.Background(), &domain.RegisterRequest{Email: "a@example.com", Name: "a", Password: "secret1"})
	assert.ErrorIs(t, err, common.ErrUserAlreadyExists)
	assert.ErrorIs(t, err, common.ErrValidation)
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestLogin(t *testing.T) {
	user := &domain.User{ID: "u1", Email: "a@example.com", Name: "관리자", Password: hashed(t, "admin123")}

	tests := []struct {
		name     string
		email    string
		password string
		setup    func(*mockUserRepo)
		wantErr  error
	}{
		{
			name: "valid credentials", email: "a@example.com", password: "admin123",
			setup: func(m *mockUserRepo) { m.On("FindByEmail", "a@example.com").Return(user, nil) },
		},
		{
			name: "wrong password", email: "a@example.com", password: "nope",
			setup:   func(m *mockUserRepo) { m.On("FindByEmail", "a@example.com").Return(user, nil) },
			wantErr: common.ErrInvalidCredentials,
		},
		{
			name: "unknown email", email: "x@example.com", password: "admin123",
			setup:   func(m *mockUserRepo) { m.On("FindByEmail", "x@example.com").Return(nil, common.ErrUserNotFound) },
			wantErr: common.ErrInvalidCredentials,
		},
		{
			name: "database down", email: "a@example.com", password: "admin123",
			setup:   func(m *mockUserRepo) { m.On("FindByEmail", "a@example.com").Return(nil, errors.New("conn refused")) },
			wantErr: common.ErrStorage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockUserRepo)
			tt.setup(repo)
			svc := newTestAuthService(repo)

			res, err := svc.Login(context.Background(), &domain.LoginRequest{Email: tt.email, Password: tt.password})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 900, res.ExpiresIn)
			assert.Equal(t, "관리자", res.User.Name)

			claims, err := svc.jwtManager.VerifyToken(res.AccessToken)
			require.NoError(t, err)
			assert.Equal(t, "u1", claims.UserID)
		})
	}
}

func TestRefreshToken(t *testing.T) {
	repo := new(mockUserRepo)
	svc := newTestAuthService(repo)
	user := &domain.User{ID: "u1", Email: "a@example.com", Name: "a"}
	repo.On("FindByID", "u1").Return(user, nil)

	refresh, err := svc.jwtManager.GenerateRefreshToken("u1")
	require.NoError(t, err)

	res, err := svc.RefreshToken(context.Background(), refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)

	access, err := svc.jwtManager.GenerateAccessToken("u1", "a", "a@example.com")
	require.NoError(t, err)
	_, err = svc.RefreshToken(context.Background(), access)
	assert.ErrorIs(t, err, common.ErrInvalidToken, "access tokens cannot refresh")
}
