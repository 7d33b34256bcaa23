package service

import (
	"context"
	"errors"
	"strings"

	"github.com/cardnews/cardnews-backend/internal/common"
	"github.com/cardnews/cardnews-backend/internal/domain"
	"github.com/cardnews/cardnews-backend/internal/repository"
	"github.com/cardnews/cardnews-backend/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// AuthService authentication business logic
type AuthService interface {
	Register(ctx context.Context, req *domain.RegisterRequest) (*domain.AuthorSummary, error)
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*domain.LoginResponse, error)
	Me(ctx context.Context, userID string) (*domain.AuthorSummary, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtManager *jwt.Manager
	bcryptCost int
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, jwtManager *jwt.Manager) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		bcryptCost: bcrypt.DefaultCost,
	}
}

// Register creates a new account; a taken email is a validation error
func (s *authService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.AuthorSummary, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, common.Storage("check email", err)
	}
	if exists {
		return nil, common.ErrUserAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:    email,
		Name:     strings.TrimSpace(req.Name),
		Password: string(hashed),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrUserAlreadyExists) {
			return nil, err
		}
		return nil, common.Storage("create user", err)
	}
	return summaryOf(user, true), nil
}

// Login verifies credentials and issues a token pair
func (s *authService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, common.Storage("find user", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, common.ErrInvalidCredentials
	}
	return s.issue(user)
}

// RefreshToken exchanges a refresh token for a new pair
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*domain.LoginResponse, error) {
	claims, err := s.jwtManager.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, common.ErrInvalidToken
	}
	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, common.Storage("find user", err)
	}
	return s.issue(user)
}

// Me returns the caller's profile
func (s *authService) Me(ctx context.Context, userID string) (*domain.AuthorSummary, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		return nil, common.Storage("find user", err)
	}
	return summaryOf(user, true), nil
}

func (s *authService) issue(user *domain.User) (*domain.LoginResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Name, user.Email)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &domain.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    s.jwtManager.ExpiresIn(),
		User:         *summaryOf(user, true),
	}, nil
}

func summaryOf(user *domain.User, withEmail bool) *domain.AuthorSummary {
	if user == nil {
		return nil
	}
	s := &domain.AuthorSummary{ID: user.ID, Name: user.Name}
	if withEmail {
		s.Email = user.Email
	}
	return s
}
