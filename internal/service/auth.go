package service

import (
	"context"
	"errors"
	"strings"

	"rentcar-backend/internal/domain"
	"rentcar-backend/internal/logger"
	"rentcar-backend/internal/repository"
	"rentcar-backend/internal/security"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// BootstrapAdmin is an administrator defined in configuration, used when
// no matching row exists in the admins table.
type BootstrapAdmin struct {
	Email        string
	Name         string
	PasswordHash string
}

type authService struct {
	adminRepo repository.AdminRepository
	tokens    security.TokenManager
	bootstrap *BootstrapAdmin
	policy    CallPolicy
}

func NewAuthService(adminRepo repository.AdminRepository, tokens security.TokenManager, bootstrap *BootstrapAdmin, policy CallPolicy) AuthService {
	if bootstrap != nil && bootstrap.Email == "" {
		bootstrap = nil
	}
	return &authService{
		adminRepo: adminRepo,
		tokens:    tokens,
		bootstrap: bootstrap,
		policy:    policy,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	logger.EnterMethod("authService.Login", "email", email)

	if email == "" || password == "" {
		err := domain.NewValidationError("", "email and password are required")
		logger.ExitMethodWithError("authService.Login", err)
		return nil, err
	}

	admin, err := s.findAdmin(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			err = ErrInvalidCredentials
		}
		logger.ExitMethodWithError("authService.Login", err, "email", email)
		return nil, err
	}

	if err := security.CheckPassword(admin.PasswordHash, password); err != nil {
		logger.ExitMethodWithError("authService.Login", ErrInvalidCredentials, "email", email)
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.GenerateAccessToken(admin.ID, admin.Email, admin.Name)
	if err != nil {
		logger.ExitMethodWithError("authService.Login", err)
		return nil, err
	}

	logger.ExitMethod("authService.Login", "adminID", admin.ID)
	return &LoginResult{Token: token, ExpiresAt: expiresAt, Admin: admin}, nil
}

func (s *authService) findAdmin(ctx context.Context, email string) (*domain.Admin, error) {
	admin, err := read(ctx, s.policy, "get admin", func(ctx context.Context) (*domain.Admin, error) {
		return s.adminRepo.GetByEmail(ctx, email)
	})
	if err == nil {
		return admin, nil
	}
	if errors.Is(err, domain.ErrNotFound) && s.bootstrap != nil && strings.EqualFold(s.bootstrap.Email, email) {
		return &domain.Admin{
			Email:        s.bootstrap.Email,
			Name:         s.bootstrap.Name,
			PasswordHash: s.bootstrap.PasswordHash,
		}, nil
	}
	return nil, err
}
