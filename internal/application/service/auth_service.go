package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/shulefees-api/internal/domain/entity"
	"github.com/sangkips/shulefees-api/internal/domain/enum"
	"github.com/sangkips/shulefees-api/internal/domain/repository"
	"github.com/sangkips/shulefees-api/pkg/apperror"
	"github.com/sangkips/shulefees-api/pkg/utils"
	"go.uber.org/zap"
)

// AuthService handles authentication-related operations
type AuthService struct {
	userRepo   repository.UserRepository
	roleRepo   repository.RoleRepository
	tenantRepo repository.TenantRepository
	schoolRepo repository.SchoolProfileRepository
	jwtManager *utils.JWTManager
	trialDays  int
	log        *zap.Logger
	now        func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	tenantRepo repository.TenantRepository,
	schoolRepo repository.SchoolProfileRepository,
	jwtManager *utils.JWTManager,
	trialDays int,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		roleRepo:   roleRepo,
		tenantRepo: tenantRepo,
		schoolRepo: schoolRepo,
		jwtManager: jwtManager,
		trialDays:  trialDays,
		log:        log,
		now:        time.Now,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	User         *entity.User    `json:"user"`
	Tenants      []entity.Tenant `json:"tenants"`
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, apperror.ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	now := s.now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.log.Warn("failed to record last login", zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	return s.issueTokens(ctx, user.ID)
}

// RegisterInput represents the registration input
type RegisterInput struct {
	FirstName     string
	LastName      string
	Email         string
	Password      string
	Phone         *string
	SchoolName    string
	SchoolAddress string
	SchoolPhone   string
}

// Register creates a staff account together with its school: a tenant on
// trial, the school profile and an owner membership.
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*LoginOutput, error) {
	email := normalizeEmail(input.Email)
	existingUser, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, apperror.NewConflictError("Email already registered")
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Email:     email,
		Password:  hashedPassword,
		Phone:     input.Phone,
		IsActive:  true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// School owners administer their own tenant
	role, err := s.roleRepo.GetByName(ctx, enum.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if role != nil {
		if err := s.userRepo.AssignRole(ctx, user.ID, role.ID); err != nil {
			return nil, err
		}
	}

	slug, err := s.uniqueSlug(ctx, input.SchoolName)
	if err != nil {
		return nil, err
	}
	trialEnds := s.now().AddDate(0, 0, s.trialDays)
	tenant := &entity.Tenant{
		Name:               strings.TrimSpace(input.SchoolName),
		Slug:               slug,
		OwnerID:            user.ID,
		Settings:           entity.DefaultTenantSettings(),
		Plan:               "basic",
		SubscriptionStatus: enum.SubscriptionStatusTrial,
		TrialEndsAt:        &trialEnds,
	}
	if err := s.tenantRepo.Create(ctx, tenant); err != nil {
		return nil, err
	}

	if err := s.tenantRepo.AddMember(ctx, &entity.TenantMembership{
		TenantID: tenant.ID,
		UserID:   user.ID,
		Role:     enum.MemberRoleOwner,
	}); err != nil {
		return nil, err
	}

	if err := s.schoolRepo.Save(ctx, &entity.SchoolProfile{
		TenantID: tenant.ID,
		Name:     tenant.Name,
		Address:  input.SchoolAddress,
		Phone:    input.SchoolPhone,
		Email:    email,
	}); err != nil {
		return nil, err
	}

	s.log.Info("school registered",
		zap.String("tenant", tenant.Slug),
		zap.String("user_id", user.ID.String()),
		zap.Time("trial_ends_at", trialEnds))

	return s.issueTokens(ctx, user.ID)
}

// RefreshToken generates new tokens from a refresh token
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*LoginOutput, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}
	return s.issueTokens(ctx, userID)
}

// GetCurrentUser returns the current user by ID
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetWithRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrNotFound
	}
	return user, nil
}

// Profile is the signed-in user with the schools they belong to
type Profile struct {
	User    *entity.User    `json:"user"`
	Tenants []entity.Tenant `json:"tenants"`
}

// GetProfile returns the current user and their schools
func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	user, err := s.GetCurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	tenants, err := s.tenantRepo.GetUserTenants(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Profile{User: user, Tenants: tenants}, nil
}

func (s *AuthService) issueTokens(ctx context.Context, userID uuid.UUID) (*LoginOutput, error) {
	user, err := s.userRepo.GetWithRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, apperror.ErrInvalidToken
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, user.RoleNames(), user.GetPermissions())
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	tenants, err := s.tenantRepo.GetUserTenants(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		User:         user,
		Tenants:      tenants,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// uniqueSlug derives a tenant slug from the school name, appending -2, -3...
// until it is free
func (s *AuthService) uniqueSlug(ctx context.Context, name string) (string, error) {
	base := utils.Slugify(name)
	if base == "" {
		base = "school"
	}
	slug := base
	for i := 2; ; i++ {
		exists, err := s.tenantRepo.SlugExists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
