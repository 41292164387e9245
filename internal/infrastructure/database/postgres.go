package database

import (
	"fmt"
	"strings"

	"github.com/sangkips/shulefees-api/internal/config"
	"github.com/sangkips/shulefees-api/internal/domain/entity"
	"github.com/sangkips/shulefees-api/internal/domain/enum"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, debug bool, log *zap.Logger) (*gorm.DB, error) {
	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Info("connected to postgres", zap.String("host", cfg.Host), zap.String("database", cfg.Name))
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")

	err := db.AutoMigrate(
		&entity.User{},
		&entity.Role{},
		&entity.Permission{},

		&entity.Tenant{},
		&entity.TenantMembership{},
		&entity.SchoolProfile{},

		&entity.Class{},
		&entity.Student{},
		&entity.Payment{},

		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("database migrations completed")
	return nil
}

// Permission names checked by the HTTP layer
const (
	PermViewDashboard  = "view-dashboard"
	PermManageSchool   = "manage-school"
	PermManageClasses  = "manage-classes"
	PermManageStudents = "manage-students"
	PermRecordPayments = "record-payments"
	PermDeletePayments = "delete-payments"
	PermPrintReceipts  = "print-receipts"
	PermViewReports    = "view-reports"
)

var allPermissions = []string{
	PermViewDashboard,
	PermManageSchool,
	PermManageClasses,
	PermManageStudents,
	PermRecordPayments,
	PermDeletePayments,
	PermPrintReceipts,
	PermViewReports,
}

// rolePermissions maps each seeded role to its grants; nil means all
var rolePermissions = map[string][]string{
	enum.RoleSuperAdmin: nil,
	enum.RoleAdmin:      nil,
	enum.RoleBursar: {
		PermViewDashboard,
		PermManageStudents,
		PermRecordPayments,
		PermPrintReceipts,
		PermViewReports,
	},
	enum.RoleUser: {
		PermViewDashboard,
		PermPrintReceipts,
	},
}

// SeedDefaultData seeds permissions, roles and the optional super admin
func SeedDefaultData(db *gorm.DB, admin config.AdminConfig, log *zap.Logger) error {
	log.Info("seeding default data")

	byName := make(map[string]entity.Permission, len(allPermissions))
	for _, name := range allPermissions {
		perm := entity.Permission{Name: name}
		if err := db.Where(entity.Permission{Name: name}).FirstOrCreate(&perm).Error; err != nil {
			return fmt.Errorf("seed permission %s: %w", name, err)
		}
		byName[name] = perm
	}

	for roleName, grants := range rolePermissions {
		if grants == nil {
			grants = allPermissions
		}
		perms := make([]entity.Permission, 0, len(grants))
		for _, g := range grants {
			perms = append(perms, byName[g])
		}

		role := entity.Role{Name: roleName}
		if err := db.Where(entity.Role{Name: roleName}).FirstOrCreate(&role).Error; err != nil {
			return fmt.Errorf("seed role %s: %w", roleName, err)
		}
		if err := db.Model(&role).Association("Permissions").Replace(perms); err != nil {
			return fmt.Errorf("sync permissions for role %s: %w", roleName, err)
		}
	}

	if err := seedSuperAdmin(db, admin, log); err != nil {
		log.Warn("super admin not seeded", zap.Error(err))
	}

	log.Info("default data seeding completed")
	return nil
}

func seedSuperAdmin(db *gorm.DB, admin config.AdminConfig, log *zap.Logger) error {
	if admin.Email == "" || admin.Password == "" {
		return nil
	}

	var count int64
	if err := db.Model(&entity.User{}).Where("email = ?", admin.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Debug("super admin already exists", zap.String("email", admin.Email))
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	var role entity.Role
	if err := db.Where("name = ?", enum.RoleSuperAdmin).First(&role).Error; err != nil {
		return fmt.Errorf("load super-admin role: %w", err)
	}

	name := admin.Name
	if name == "" {
		name = "Super Admin"
	}
	firstName, lastName, _ := strings.Cut(name, " ")

	user := entity.User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     admin.Email,
		Password:  string(hashed),
		IsActive:  true,
		Roles:     []entity.Role{role},
	}
	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("create super admin: %w", err)
	}
	log.Info("super admin user created", zap.String("email", admin.Email))
	return nil
}
