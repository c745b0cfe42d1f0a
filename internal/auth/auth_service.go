package auth

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	autherrors "go-leave/internal/auth/errors"
	"go-leave/internal/domain"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/database"
	"go-leave/internal/shared/token"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 8

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, username, password string) (LoginResponse, error)
	Status(ctx context.Context, userID string) (StatusResponse, error)
	CreateUser(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	EnsureAdmin(ctx context.Context, username, password string) error
}

type service struct {
	repo   Repository
	tokens *token.Manager
	logger *zap.Logger
}

func NewService(repo Repository, tokens *token.Manager, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{repo: repo, tokens: tokens, logger: l}
}

func (s *service) Login(ctx context.Context, username, password string) (LoginResponse, error) {
	user, err := s.repo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoginResponse{}, autherrors.ErrInvalidCredentials
		}
		return LoginResponse{}, apperror.Storage(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Info("login rejected", zap.String("username", user.Username))
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	signed, expiresAt, err := s.tokens.Generate(user.ID, user.Username, user.Role)
	if err != nil {
		return LoginResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Failed to issue session", http.StatusInternalServerError)
	}

	s.logger.Info("login succeeded", zap.Uint("user_id", user.ID), zap.String("role", user.Role))
	return LoginResponse{
		User:      toUserResponse(user),
		Token:     signed,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
	}, nil
}

// Status reports whether userID still maps to an account.
func (s *service) Status(ctx context.Context, userID string) (StatusResponse, error) {
	id, err := strconv.ParseUint(userID, 10, 64)
	if err != nil || id == 0 {
		return StatusResponse{Authenticated: false}, nil
	}

	user, err := s.repo.FindByID(ctx, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StatusResponse{Authenticated: false}, nil
		}
		return StatusResponse{}, apperror.Storage(err)
	}

	resp := toUserResponse(user)
	return StatusResponse{Authenticated: true, User: &resp}, nil
}

func (s *service) CreateUser(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return UserResponse{}, apperror.RequiredField("Username")
	}
	if !domain.ValidRole(req.Role) {
		return UserResponse{}, autherrors.ErrInvalidRole
	}
	if len(req.Password) < minPasswordLength {
		return UserResponse{}, autherrors.ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Failed to hash password", http.StatusInternalServerError)
	}

	user := &User{Username: username, PasswordHash: string(hash), Role: req.Role}
	if err := s.repo.Create(ctx, user); err != nil {
		if database.IsUniqueViolation(err) {
			return UserResponse{}, autherrors.ErrUsernameTaken
		}
		return UserResponse{}, apperror.Storage(err)
	}

	s.logger.Info("user created", zap.Uint("user_id", user.ID), zap.String("role", user.Role))
	return toUserResponse(user), nil
}

// EnsureAdmin creates the configured admin account, or resets its password
// and role when it already exists. Empty credentials are a no-op.
func (s *service) EnsureAdmin(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		s.logger.Warn("admin credentials not configured, skipping admin seed")
		return nil
	}

	existing, err := s.repo.FindByUsername(ctx, username)
	switch {
	case err == nil:
		if bcrypt.CompareHashAndPassword([]byte(existing.PasswordHash), []byte(password)) == nil &&
			existing.Role == domain.RoleAdmin {
			return nil
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if err := s.repo.UpdatePassword(ctx, existing.ID, string(hash), domain.RoleAdmin); err != nil {
			return apperror.Storage(err)
		}
		s.logger.Info("admin account refreshed", zap.String("username", username))
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		_, err := s.CreateUser(ctx, CreateUserRequest{Username: username, Password: password, Role: domain.RoleAdmin})
		return err
	default:
		return apperror.Storage(err)
	}
}
