package usecase

import (
	"context"
	"fmt"

	"github.com/Cross-Atlantic-Software/collegefinder-sub002/internal/data/entity"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/internal/data/repository"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/internal/dto/request"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/internal/dto/response"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/pkg/token"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/pkg/utils"

	"go.uber.org/zap"
)

type AdminService interface {
	Login(ctx context.Context, req *request.AdminLoginRequest) (*response.AdminLoginResponse, error)
	GetMe(ctx context.Context, adminID int64) (*response.AdminResponse, error)
	List(ctx context.Context, callerType string) ([]response.AdminResponse, error)
	Create(ctx context.Context, callerType string, req *request.CreateAdminRequest) (*response.AdminResponse, error)
	Update(ctx context.Context, callerType string, id int64, req *request.UpdateAdminRequest) (*response.AdminResponse, error)
	Delete(ctx context.Context, callerType string, callerID, id int64) error
	ListUsers(ctx context.Context, callerType string) ([]response.UserResponse, error)
	EnsureBootstrap(ctx context.Context, email, password string) error
}

type adminService struct {
	repo   *repository.Repository
	issuer *token.Issuer
	log    *zap.Logger
}

func NewAdminService(repo *repository.Repository, issuer *token.Issuer, log *zap.Logger) AdminService {
	return &adminService{
		repo:   repo,
		issuer: issuer,
		log:    log,
	}
}

func (s *adminService) Login(ctx context.Context, req *request.AdminLoginRequest) (*response.AdminLoginResponse, error) {
	admin, err := s.repo.Admin.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to look up admin", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to log in")
	}
	if admin == nil {
		s.log.Warn("Admin not found for login", zap.String("email", req.Email))
		return nil, fmt.Errorf("invalid credentials")
	}

	if !admin.IsActive {
		s.log.Warn("Inactive admin tried to log in", zap.Int64("admin_id", admin.ID))
		return nil, fmt.Errorf("Admin account is inactive")
	}

	if !utils.CheckPasswordHash(req.Password, admin.PasswordHash) {
		s.log.Warn("Invalid admin password", zap.Int64("admin_id", admin.ID))
		return nil, fmt.Errorf("invalid credentials")
	}

	if err := s.repo.Admin.UpdateLastLogin(ctx, admin.ID); err != nil {
		s.log.Warn("Failed to update admin last login", zap.Error(err), zap.Int64("admin_id", admin.ID))
	}

	tok, err := s.issuer.GenerateAdminToken(admin.ID, admin.Email, string(admin.Type))
	if err != nil {
		s.log.Error("Failed to issue admin token", zap.Error(err), zap.Int64("admin_id", admin.ID))
		return nil, fmt.Errorf("failed to log in")
	}

	s.log.Info("Admin logged in", zap.Int64("admin_id", admin.ID), zap.String("email", admin.Email))

	return &response.AdminLoginResponse{
		Admin: response.AdminToResponse(admin),
		Token: tok,
	}, nil
}

func (s *adminService) GetMe(ctx context.Context, adminID int64) (*response.AdminResponse, error) {
	admin, err := s.repo.Admin.FindByID(ctx, adminID)
	if err != nil {
		s.log.Error("Failed to load admin", zap.Error(err), zap.Int64("admin_id", adminID))
		return nil, fmt.Errorf("failed to get admin")
	}
	if admin == nil {
		return nil, fmt.Errorf("admin not found")
	}

	resp := response.AdminToResponse(admin)
	return &resp, nil
}

func (s *adminService) List(ctx context.Context, callerType string) ([]response.AdminResponse, error) {
	if err := requireSuperAdmin(callerType); err != nil {
		return nil, err
	}

	admins, err := s.repo.Admin.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list admins", zap.Error(err))
		return nil, fmt.Errorf("failed to list admins")
	}

	resp := make([]response.AdminResponse, len(admins))
	for i, admin := range admins {
		resp[i] = response.AdminToResponse(admin)
	}
	return resp, nil
}

// Create always produces a regular admin; the bootstrap super_admin is
// the only row of its type and is seeded at startup, never via the API.
func (s *adminService) Create(ctx context.Context, callerType string, req *request.CreateAdminRequest) (*response.AdminResponse, error) {
	if err := requireSuperAdmin(callerType); err != nil {
		return nil, err
	}

	existing, err := s.repo.Admin.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to check admin email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to create admin")
	}
	if existing != nil {
		return nil, fmt.Errorf("email already registered")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash admin password", zap.Error(err))
		return nil, fmt.Errorf("failed to create admin")
	}

	admin, err := s.repo.Admin.Create(ctx, req.Email, hash, entity.AdminTypeUser)
	if err != nil {
		s.log.Error("Failed to create admin", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to create admin")
	}

	s.log.Info("Admin created", zap.Int64("admin_id", admin.ID), zap.String("email", admin.Email))

	resp := response.AdminToResponse(admin)
	return &resp, nil
}

// Update applies the four optional mutations in sequence. A super_admin
// row is immutable through this endpoint.
func (s *adminService) Update(ctx context.Context, callerType string, id int64, req *request.UpdateAdminRequest) (*response.AdminResponse, error) {
	if err := requireSuperAdmin(callerType); err != nil {
		return nil, err
	}

	admin, err := s.repo.Admin.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to load admin", zap.Error(err), zap.Int64("admin_id", id))
		return nil, fmt.Errorf("failed to update admin")
	}
	if admin == nil {
		return nil, fmt.Errorf("admin not found")
	}
	if admin.Type == entity.AdminTypeSuper {
		return nil, fmt.Errorf("super admin account cannot be modified")
	}

	if req.Email != nil {
		if err := s.repo.Admin.UpdateEmail(ctx, id, *req.Email); err != nil {
			s.log.Error("Failed to update admin email", zap.Error(err), zap.Int64("admin_id", id))
			return nil, fmt.Errorf("failed to update admin")
		}
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			s.log.Error("Failed to hash admin password", zap.Error(err))
			return nil, fmt.Errorf("failed to update admin")
		}
		if err := s.repo.Admin.UpdatePassword(ctx, id, hash); err != nil {
			s.log.Error("Failed to update admin password", zap.Error(err), zap.Int64("admin_id", id))
			return nil, fmt.Errorf("failed to update admin")
		}
	}
	if req.Type != nil {
		if err := s.repo.Admin.UpdateType(ctx, id, entity.AdminType(*req.Type)); err != nil {
			s.log.Error("Failed to update admin type", zap.Error(err), zap.Int64("admin_id", id))
			return nil, fmt.Errorf("failed to update admin")
		}
	}
	if req.IsActive != nil {
		if err := s.repo.Admin.UpdateActiveStatus(ctx, id, *req.IsActive); err != nil {
			s.log.Error("Failed to update admin active status", zap.Error(err), zap.Int64("admin_id", id))
			return nil, fmt.Errorf("failed to update admin")
		}
	}

	updated, err := s.repo.Admin.FindByID(ctx, id)
	if err != nil || updated == nil {
		s.log.Error("Failed to reload admin after update", zap.Error(err), zap.Int64("admin_id", id))
		return nil, fmt.Errorf("failed to update admin")
	}

	s.log.Info("Admin updated", zap.Int64("admin_id", id))

	resp := response.AdminToResponse(updated)
	return &resp, nil
}

func (s *adminService) Delete(ctx context.Context, callerType string, callerID, id int64) error {
	if err := requireSuperAdmin(callerType); err != nil {
		return err
	}

	if callerID == id {
		return fmt.Errorf("cannot delete your own account")
	}

	admin, err := s.repo.Admin.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to load admin", zap.Error(err), zap.Int64("admin_id", id))
		return fmt.Errorf("failed to delete admin")
	}
	if admin == nil {
		return fmt.Errorf("admin not found")
	}
	if admin.Type == entity.AdminTypeSuper {
		return fmt.Errorf("super admin account cannot be deleted")
	}

	if err := s.repo.Admin.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete admin", zap.Error(err), zap.Int64("admin_id", id))
		return fmt.Errorf("failed to delete admin")
	}

	return nil
}

func (s *adminService) ListUsers(ctx context.Context, callerType string) ([]response.UserResponse, error) {
	if err := requireSuperAdmin(callerType); err != nil {
		return nil, err
	}

	users, err := s.repo.User.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list users", zap.Error(err))
		return nil, fmt.Errorf("failed to list users")
	}

	resp := make([]response.UserResponse, len(users))
	for i, user := range users {
		resp[i] = response.UserToResponse(user)
	}
	return resp, nil
}

// EnsureBootstrap seeds the single super_admin on startup when no row
// of that type exists yet.
func (s *adminService) EnsureBootstrap(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		s.log.Warn("Super admin bootstrap skipped, credentials not configured")
		return nil
	}

	count, err := s.repo.Admin.CountSuperAdmins(ctx)
	if err != nil {
		return fmt.Errorf("count super admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash super admin password: %w", err)
	}

	admin, err := s.repo.Admin.Create(ctx, email, hash, entity.AdminTypeSuper)
	if err != nil {
		return fmt.Errorf("create super admin: %w", err)
	}

	s.log.Info("Super admin bootstrapped", zap.Int64("admin_id", admin.ID), zap.String("email", email))
	return nil
}

func requireSuperAdmin(callerType string) error {
	if callerType != string(entity.AdminTypeSuper) {
		return fmt.Errorf("super admin access required")
	}
	return nil
}
