package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"gala/config"
	"gala/internal/auth"
	"gala/internal/domain"
	"gala/internal/models"
	"gala/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailExists     = errors.New("email already registered")
	ErrInvalidCreds    = errors.New("invalid email or password")
	ErrAccountDisabled = errors.New("account is deactivated")
	ErrInvalidEmail    = errors.New("invalid email format")
	ErrWeakPassword    = errors.New("password must be at least 6 characters")
	ErrPasswordTooLong = errors.New("password must be at most 72 bytes")
)

const (
	minPasswordLen = 6
	// bcrypt ignores input past this length and GenerateFromPassword rejects it.
	maxPasswordLen = 72
)

// AuthService handles site user accounts.
type AuthService struct {
	cfg      *config.Config
	userRepo *repository.UserRepository
}

func NewAuthService(cfg *config.Config, userRepo *repository.UserRepository) *AuthService {
	return &AuthService{cfg: cfg, userRepo: userRepo}
}

func (s *AuthService) Signup(ctx context.Context, email, password string) (*models.User, error) {
	email, err := normalizeCredentials(email, password)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &models.User{Email: email, PasswordHash: string(hash)}
	if err := s.userRepo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	u, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, "", ErrInvalidCreds
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCreds
	}
	token, err := auth.GenerateToken(&s.cfg.JWT, domain.KindUser, u.ID, u.Email, "")
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Authenticate resolves a user token into the stored user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := auth.ParseToken(&s.cfg.JWT, domain.KindUser, token)
	if err != nil {
		return nil, err
	}
	u, err := s.userRepo.GetByID(ctx, claims.ID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, auth.ErrInvalidToken
		}
		return nil, err
	}
	return u, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

func (s *AuthService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, domain.NotFound("User not found")
		}
		return nil, err
	}
	return u, nil
}

func (s *AuthService) DeleteUser(ctx context.Context, id uint) error {
	n, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFound("User not found")
	}
	return nil
}

func normalizeCredentials(email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil || !strings.Contains(email, "@") {
		return "", ErrInvalidEmail
	}
	if len(password) < minPasswordLen {
		return "", ErrWeakPassword
	}
	if len(password) > maxPasswordLen {
		return "", ErrPasswordTooLong
	}
	return email, nil
}
