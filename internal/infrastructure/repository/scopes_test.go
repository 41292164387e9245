package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type scopedRow struct {
	ID uuid.UUID
}

func (scopedRow) TableName() string { return "students" }

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=localhost user=test dbname=test sslmode=disable"}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db
}

func scopedSQL(db *gorm.DB, scope func(*gorm.DB) *gorm.DB) string {
	return db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var rows []scopedRow
		return tx.Scopes(scope).Find(&rows)
	})
}

func TestTenantScope(t *testing.T) {
	db := dryRunDB(t)
	tenantID := uuid.New()
	ctx := WithTenant(context.Background(), tenantID)

	sql := scopedSQL(db, TenantScope(ctx))
	assert.Contains(t, sql, "tenant_id = '"+tenantID.String()+"'")

	sql = scopedSQL(db, TableTenantScope(ctx, "students"))
	assert.Contains(t, sql, "students.tenant_id = '"+tenantID.String()+"'")
}

func TestTenantScopeWithoutTenantMatchesNothing(t *testing.T) {
	db := dryRunDB(t)

	for name, ctx := range map[string]context.Context{
		"missing": context.Background(),
		"nil":     WithTenant(context.Background(), uuid.Nil),
	} {
		t.Run(name, func(t *testing.T) {
			sql := scopedSQL(db, TenantScope(ctx))
			assert.Contains(t, sql, "1 = 0")
			assert.NotContains(t, sql, "tenant_id")
		})
	}
}

func TestGetTenantID(t *testing.T) {
	_, ok := GetTenantID(context.Background())
	assert.False(t, ok)

	tenantID := uuid.New()
	got, ok := GetTenantID(WithTenant(context.Background(), tenantID))
	assert.True(t, ok)
	assert.Equal(t, tenantID, got)
}
