package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ctxKey string

// TenantIDKey is the context key for tenant ID
const TenantIDKey ctxKey = "tenant_id"

// TenantScope returns a GORM scope that filters by the tenant in ctx.
// A context without a tenant sees no rows.
func TenantScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return TableTenantScope(ctx, "")
}

// TableTenantScope is TenantScope with the tenant_id column qualified by
// table, for queries that join several tenant-owned tables.
func TableTenantScope(ctx context.Context, table string) func(db *gorm.DB) *gorm.DB {
	column := "tenant_id"
	if table != "" {
		column = table + ".tenant_id"
	}
	return func(db *gorm.DB) *gorm.DB {
		tenantID, ok := GetTenantID(ctx)
		if !ok {
			return db.Where("1 = 0")
		}
		return db.Where(column+" = ?", tenantID)
	}
}

// WithTenant adds tenant ID to context
func WithTenant(ctx context.Context, tenantID uuid.UUID) context.Context {
	return context.WithValue(ctx, TenantIDKey, tenantID)
}

// GetTenantID extracts tenant ID from context
func GetTenantID(ctx context.Context) (uuid.UUID, bool) {
	tenantID, ok := ctx.Value(TenantIDKey).(uuid.UUID)
	return tenantID, ok && tenantID != uuid.Nil
}
