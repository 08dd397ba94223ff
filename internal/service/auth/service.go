package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	domain "github.com/vitilevu-hr/payroll-backend-go/internal/domain/auth"
	"github.com/vitilevu-hr/payroll-backend-go/internal/domain/user"
	"github.com/vitilevu-hr/payroll-backend-go/internal/pkg/jwt"
)

type AuthServiceImpl struct {
	userRepo   user.UserRepository
	jwtService jwt.Service
}

func NewAuthService(userRepo user.UserRepository, jwtService jwt.Service) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

func (s *AuthServiceImpl) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return domain.LoginResponse{}, err
	}

	u, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return domain.LoginResponse{}, domain.ErrInvalidCredentials
		}
		return domain.LoginResponse{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(u.ID, u.Username, u.IsAdmin)
	if err != nil {
		return domain.LoginResponse{}, err
	}

	return domain.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		Username:    u.Username,
		IsAdmin:     u.IsAdmin,
	}, nil
}
