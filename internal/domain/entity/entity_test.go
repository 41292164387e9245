package entity

import (
	"testing"
	"time"

	"github.com/sangkips/shulefees-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestClassTotalFee(t *testing.T) {
	annual := Class{AnnualFee: decimal.NewFromInt(20000), MonthlyFee: decimal.NewFromInt(1000)}
	assert.True(t, annual.TotalFee().Equal(decimal.NewFromInt(20000)))

	monthly := Class{MonthlyFee: decimal.NewFromInt(1500)}
	assert.True(t, monthly.TotalFee().Equal(decimal.NewFromInt(18000)))
}

func TestTenantCanWrite(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name   string
		tenant Tenant
		want   bool
	}{
		{"trial running", Tenant{SubscriptionStatus: enum.SubscriptionStatusTrial, TrialEndsAt: &future}, true},
		{"trial ended", Tenant{SubscriptionStatus: enum.SubscriptionStatusTrial, TrialEndsAt: &past}, false},
		{"active open ended", Tenant{SubscriptionStatus: enum.SubscriptionStatusActive}, true},
		{"active lapsed", Tenant{SubscriptionStatus: enum.SubscriptionStatusActive, SubscriptionEndsAt: &past}, false},
		{"expired", Tenant{SubscriptionStatus: enum.SubscriptionStatusExpired, SubscriptionEndsAt: &future}, false},
		{"cancelled", Tenant{SubscriptionStatus: enum.SubscriptionStatusCancelled}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tenant.CanWrite(now))
		})
	}
}

func TestTenantCurrency(t *testing.T) {
	var nilTenant *Tenant
	assert.Equal(t, "KES", nilTenant.Currency("KES"))
	assert.Equal(t, "UGX", (&Tenant{Settings: TenantSettings{Currency: "UGX"}}).Currency("KES"))
}

func TestStudentHelpers(t *testing.T) {
	s := Student{FirstName: "Jane", LastName: "Doe", GuardianPhone: "0712 345 678"}
	assert.Equal(t, "Jane Doe", s.FullName())
	assert.Equal(t, "", s.ClassName())

	_ = s.BeforeSave(nil)
	assert.Equal(t, "254712345678", s.GuardianKey)

	s.Class = &Class{Name: "Grade 4"}
	assert.Equal(t, "Grade 4", s.ClassName())
}

func TestUserPermissionsDeduplicated(t *testing.T) {
	view := Permission{Name: "payments.view"}
	u := User{Roles: []Role{
		{Name: "bursar", Permissions: []Permission{view, {Name: "payments.create"}}},
		{Name: "user", Permissions: []Permission{view}},
	}}
	assert.ElementsMatch(t, []string{"payments.view", "payments.create"}, u.GetPermissions())
	assert.True(t, u.HasRole("bursar"))
	assert.Equal(t, []string{"bursar", "user"}, u.RoleNames())
}
