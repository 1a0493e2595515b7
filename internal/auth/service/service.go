package service

import (
	"context"
	"errors"
	"strings"
	"time"

	autherrors "utsav/internal/auth/errors"
	"utsav/internal/auth/repository"
	"utsav/internal/auth/validator"
	"utsav/pkg/config"
	apperrors "utsav/pkg/errors"
	"utsav/pkg/model"
	"utsav/pkg/sanitizer"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	MsgMissingFields      = "Please enter all fields"
	MsgEmailTaken         = "User with this email already exists"
	MsgUsernameTaken      = "User with this username already exists"
	MsgInvalidCredentials = "Invalid credentials"
	MsgServerError        = "Server error"
)

type AuthService interface {
	Signup(ctx context.Context, req *model.SignupRequest) (*model.AuthResponse, error)
	Signin(ctx context.Context, req *model.SigninRequest) (*model.AuthResponse, error)
}

type authService struct {
	repo      repository.UserRepository
	validator *validator.AuthValidator
	tokens    *TokenManager
	cfg       *config.Config
	now       func() time.Time
}

func NewAuthService(repo repository.UserRepository, validator *validator.AuthValidator, tokens *TokenManager, cfg *config.Config) AuthService {
	return &authService{
		repo:      repo,
		validator: validator,
		tokens:    tokens,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *authService) Signup(ctx context.Context, req *model.SignupRequest) (*model.AuthResponse, error) {
	if validator.HasMissing(req.Username, req.Email, req.Password) {
		return nil, apperrors.Validation(MsgMissingFields, nil)
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = sanitizer.NormalizeEmail(req.Email)

	if problems := s.validator.ValidateSignup(req); len(problems) > 0 {
		s.cfg.Log.Warn("signup validation failed", "problems", problems)
		return nil, apperrors.Validation(strings.Join(problems, ", "), nil)
	}

	existing, err := s.repo.FindByEmailOrUsername(ctx, req.Email, req.Username)
	switch {
	case err == nil && existing.Email == req.Email:
		return nil, takenError(autherrors.ErrEmailTaken)
	case err == nil:
		return nil, takenError(autherrors.ErrUsernameTaken)
	case !errors.Is(err, autherrors.ErrNotFound):
		s.cfg.Log.Error("failed to look up user", "error", err)
		return nil, apperrors.Internal(MsgServerError, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BcryptCost)
	if err != nil {
		s.cfg.Log.Error("failed to hash password", "error", err)
		return nil, apperrors.Internal(MsgServerError, err)
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, autherrors.ErrEmailTaken) || errors.Is(err, autherrors.ErrUsernameTaken) {
			return nil, takenError(err)
		}
		s.cfg.Log.Error("failed to create user", "error", err)
		return nil, apperrors.Internal(MsgServerError, err)
	}

	s.cfg.Log.Info("user signed up", "user_id", user.ID)
	return s.respond(user)
}

func (s *authService) Signin(ctx context.Context, req *model.SigninRequest) (*model.AuthResponse, error) {
	if validator.HasMissing(req.Email, req.Password) {
		return nil, apperrors.Validation(MsgMissingFields, nil)
	}

	user, err := s.repo.FindByEmail(ctx, sanitizer.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, autherrors.ErrNotFound) {
			return nil, apperrors.Validation(MsgInvalidCredentials, nil)
		}
		s.cfg.Log.Error("failed to look up user", "error", err)
		return nil, apperrors.Internal(MsgServerError, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.cfg.Log.Warn("signin rejected", "user_id", user.ID)
		return nil, apperrors.Validation(MsgInvalidCredentials, nil)
	}

	return s.respond(user)
}

func (s *authService) respond(user *model.User) (*model.AuthResponse, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.cfg.Log.Error("failed to sign token", "user_id", user.ID, "error", err)
		return nil, apperrors.Internal(MsgServerError, err)
	}
	return &model.AuthResponse{Token: token, User: user.Public()}, nil
}

func takenError(err error) *apperrors.AppError {
	if errors.Is(err, autherrors.ErrUsernameTaken) {
		return apperrors.Validation(MsgUsernameTaken, map[string]any{"field": "username"})
	}
	return apperrors.Validation(MsgEmailTaken, map[string]any{"field": "email"})
}
