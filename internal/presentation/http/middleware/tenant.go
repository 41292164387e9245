package middleware

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/shulefees-api/internal/domain/entity"
	infraRepo "github.com/sangkips/shulefees-api/internal/infrastructure/repository"
	"github.com/sangkips/shulefees-api/internal/presentation/http/dto/response"
	"github.com/sangkips/shulefees-api/pkg/apperror"
)

// TenantHeader names the school by slug when the API is not reached
// through a school subdomain
const TenantHeader = "X-Tenant"

// TenantResolver finds schools by slug and checks membership
type TenantResolver interface {
	ResolveBySlug(ctx context.Context, slug string) (*entity.Tenant, error)
	IsMember(ctx context.Context, tenantID, userID uuid.UUID) (bool, error)
}

// ExtractTenantFromHost returns the school slug of a host under baseDomain,
// e.g. "sunrise.shulefees.app" -> "sunrise". It returns "" for the bare
// domain or an unrelated host.
func ExtractTenantFromHost(host, baseDomain string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	baseDomain = strings.ToLower(strings.TrimSpace(baseDomain))
	if baseDomain == "" || !strings.HasSuffix(host, "."+baseDomain) {
		return ""
	}
	sub := strings.TrimSuffix(host, "."+baseDomain)
	if sub == "" || strings.Contains(sub, ".") || sub == "www" || sub == "api" {
		return ""
	}
	return sub
}

// TenantMiddleware resolves the school for the request from the X-Tenant
// header or the subdomain, checks the user belongs to it and scopes the
// request context to it. Super admins may enter any school.
func TenantMiddleware(resolver TenantResolver, baseDomain string) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := strings.TrimSpace(c.GetHeader(TenantHeader))
		if slug == "" {
			slug = ExtractTenantFromHost(c.Request.Host, baseDomain)
		}
		if slug == "" {
			response.Error(c, apperror.ErrTenantRequired)
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		tenant, err := resolver.ResolveBySlug(ctx, slug)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		if !IsSuperAdmin(c) {
			userID, ok := c.Get("user_id")
			id, _ := userID.(uuid.UUID)
			if !ok || id == uuid.Nil {
				response.Unauthorized(c, "User not authenticated")
				c.Abort()
				return
			}
			isMember, err := resolver.IsMember(ctx, tenant.ID, id)
			if err != nil {
				response.Error(c, err)
				c.Abort()
				return
			}
			if !isMember {
				response.Forbidden(c, "Access denied to this school")
				c.Abort()
				return
			}
		}

		c.Set("tenant_id", tenant.ID)
		c.Set("tenant", tenant)

		// Services and repositories read the tenant from the request context
		c.Request = c.Request.WithContext(infraRepo.WithTenant(ctx, tenant.ID))

		c.Next()
	}
}

// RequireWritableSubscription rejects mutating requests with 402 once the
// school's trial or subscription has ended. Reads stay available and super
// admins are never blocked.
func RequireWritableSubscription(now func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case "GET", "HEAD", "OPTIONS":
			c.Next()
			return
		}
		tenant := GetTenant(c)
		if tenant == nil || IsSuperAdmin(c) || tenant.CanWrite(now()) {
			c.Next()
			return
		}
		response.Error(c, apperror.ErrSubscriptionEnded)
		c.Abort()
	}
}

// GetTenantID retrieves the tenant ID from gin context
func GetTenantID(c *gin.Context) uuid.UUID {
	tenantID, exists := c.Get("tenant_id")
	if !exists {
		return uuid.Nil
	}
	id, ok := tenantID.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}

// GetTenant retrieves the resolved tenant from gin context
func GetTenant(c *gin.Context) *entity.Tenant {
	v, exists := c.Get("tenant")
	if !exists {
		return nil
	}
	tenant, _ := v.(*entity.Tenant)
	return tenant
}
