package service

import (
	"context"
	"errors"
	"strings"

	"gala/config"
	"gala/internal/auth"
	"gala/internal/domain"
	"gala/internal/models"
	"gala/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// AdminAuthService handles CMS administrator sessions.
type AdminAuthService struct {
	cfg       *config.Config
	adminRepo *repository.AdminRepository
}

func NewAdminAuthService(cfg *config.Config, adminRepo *repository.AdminRepository) *AdminAuthService {
	return &AdminAuthService{cfg: cfg, adminRepo: adminRepo}
}

type CreateAdminInput struct {
	Email    string
	Password string
	Name     string
	Role     string
}

// Login checks credentials and returns the admin with a signed session token.
// Unknown email and wrong password both yield ErrInvalidCreds.
func (s *AdminAuthService) Login(ctx context.Context, email, password string) (*models.Admin, string, error) {
	a, err := s.adminRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, "", ErrInvalidCreds
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCreds
	}
	if !a.IsActive {
		return nil, "", ErrAccountDisabled
	}
	token, err := auth.GenerateToken(&s.cfg.JWT, domain.KindAdmin, a.ID, a.Email, a.Role)
	if err != nil {
		return nil, "", err
	}
	return a, token, nil
}

// Authenticate resolves an admin token into an active admin.
func (s *AdminAuthService) Authenticate(ctx context.Context, token string) (*models.Admin, error) {
	claims, err := auth.ParseToken(&s.cfg.JWT, domain.KindAdmin, token)
	if err != nil {
		return nil, err
	}
	a, err := s.adminRepo.GetByID(ctx, claims.ID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, auth.ErrInvalidToken
		}
		return nil, err
	}
	if !a.IsActive {
		return nil, ErrAccountDisabled
	}
	return a, nil
}

func (s *AdminAuthService) Create(ctx context.Context, in CreateAdminInput) (*models.Admin, error) {
	email, err := normalizeCredentials(in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	role := in.Role
	switch role {
	case "":
		role = domain.RoleAdmin
	case domain.RoleAdmin, domain.RoleSuperAdmin:
	default:
		return nil, domain.BadRequest("role must be admin or super_admin")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = "Admin User"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	a := &models.Admin{Email: email, PasswordHash: string(hash), Name: name, Role: role, IsActive: true}
	if err := s.adminRepo.Create(ctx, a); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return a, nil
}

func (s *AdminAuthService) List(ctx context.Context) ([]models.Admin, error) {
	return s.adminRepo.List(ctx)
}

// SetActive enables or disables the admin with the given id. Only a super
// admin may do this, and never to their own account.
func (s *AdminAuthService) SetActive(ctx context.Context, actor *models.Admin, id uint, active bool) (*models.Admin, error) {
	if actor == nil || !actor.IsSuperAdmin() {
		return nil, domain.Forbidden("Only a super admin can change account status")
	}
	if actor.ID == id && !active {
		return nil, domain.BadRequest("You cannot deactivate your own account")
	}
	if _, err := s.getAdmin(ctx, id); err != nil {
		return nil, err
	}
	if err := s.adminRepo.UpdateFields(ctx, id, map[string]interface{}{"is_active": active}); err != nil {
		return nil, err
	}
	return s.getAdmin(ctx, id)
}

func (s *AdminAuthService) getAdmin(ctx context.Context, id uint) (*models.Admin, error) {
	a, err := s.adminRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, domain.NotFound("Admin not found")
		}
		return nil, err
	}
	return a, nil
}
