package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/shulefees-api/internal/config"
	"github.com/sangkips/shulefees-api/internal/domain/enum"
	domainRepo "github.com/sangkips/shulefees-api/internal/domain/repository"
	"github.com/sangkips/shulefees-api/internal/presentation/http/handler"
	"github.com/sangkips/shulefees-api/internal/presentation/http/middleware"
	"github.com/sangkips/shulefees-api/pkg/utils"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Tenant    *handler.TenantHandler
	School    *handler.SchoolHandler
	Class     *handler.ClassHandler
	Student   *handler.StudentHandler
	Payment   *handler.PaymentHandler
	Dashboard *handler.DashboardHandler
	Report    *handler.ReportHandler
	Receipt   *handler.ReceiptHandler
	Printer   *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	Tenants         middleware.TenantResolver
	RateLimiter     *middleware.TenantRateLimiter
	Log             *zap.Logger
	Now             func() time.Time
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Log))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		registerAccountRoutes(protected, h)
		registerAdminRoutes(protected, h)

		// School-scoped routes
		school := protected.Group("")
		school.Use(middleware.TenantMiddleware(deps.Tenants, deps.Cfg.App.BaseDomain))
		if deps.RateLimiter != nil {
			school.Use(deps.RateLimiter.Middleware())
		}
		registerSchoolRoutes(school, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerAccountRoutes(protected *gin.RouterGroup, h *Handlers) {
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.GET("/tenants", h.Tenant.ListMine)
}

func registerAdminRoutes(protected *gin.RouterGroup, h *Handlers) {
	admin := protected.Group("/admin")
	admin.Use(middleware.RequireRole(enum.RoleSuperAdmin))
	{
		admin.GET("/tenants", h.Tenant.ListAllTenants)
		admin.GET("/stats", h.Tenant.Stats)
		admin.PUT("/tenants/:id/subscription", h.Tenant.UpdateSubscription)
		admin.POST("/tenants/assign-user", h.Tenant.AssignUserToTenant)
	}
}

func registerSchoolRoutes(school *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Writes stop once the trial or subscription ends; reads stay available
	gate := middleware.RequireWritableSubscription(deps.Now)

	school.GET("/school", h.School.GetProfile)
	school.PUT("/school", middleware.RequirePermission("manage-school"), h.School.UpdateProfile)
	school.GET("/settings", h.School.GetSettings)
	school.PUT("/settings", middleware.RequirePermission("manage-school"), h.School.UpdateSettings)

	school.GET("/dashboard", middleware.RequirePermission("view-dashboard"), h.Dashboard.GetStats)

	classes := school.Group("/classes")
	classes.Use(middleware.RequirePermission("manage-classes"), gate)
	{
		classes.GET("", h.Class.List)
		classes.POST("", h.Class.Create)
		classes.GET("/:id", h.Class.Get)
		classes.PUT("/:id", h.Class.Update)
		classes.DELETE("/:id", h.Class.Delete)
	}

	students := school.Group("/students")
	students.Use(middleware.RequirePermission("manage-students"), gate)
	{
		students.GET("", h.Student.List)
		students.POST("", h.Student.Create)
		students.GET("/:id", h.Student.Get)
		students.PUT("/:id", h.Student.Update)
		students.DELETE("/:id", h.Student.Delete)
		students.GET("/:id/balance", h.Student.Balance)
	}

	payments := school.Group("/payments")
	payments.Use(gate)
	{
		payments.GET("", h.Payment.List)
		// Retried submissions with the same Idempotency-Key replay the first response
		payments.POST("", middleware.RequirePermission("record-payments"), middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
			Log:  deps.Log,
		}), h.Payment.Create)
		payments.GET("/:id", h.Payment.Get)
		payments.DELETE("/:id", middleware.RequirePermission("delete-payments"), h.Payment.Delete)
	}

	reports := school.Group("/reports")
	reports.Use(middleware.RequirePermission("view-reports"))
	{
		reports.GET("/payments.xlsx", h.Report.PaymentsExcel)
		reports.GET("/payments.pdf", h.Report.PaymentsPDF)
		reports.GET("/balances.xlsx", h.Report.BalancesExcel)
	}

	receipts := school.Group("/receipts")
	receipts.Use(middleware.RequirePermission("print-receipts"))
	{
		receipts.GET("/sizes", h.Receipt.Sizes)
		receipts.POST("/sessions", h.Receipt.Open)
		receipts.GET("/sessions/:id", h.Receipt.Get)
		receipts.PATCH("/sessions/:id", h.Receipt.Update)
		receipts.DELETE("/sessions/:id", h.Receipt.Close)
		receipts.POST("/sessions/:id/students/:student_id/toggle", h.Receipt.ToggleStudent)
		receipts.GET("/sessions/:id/preview", h.Receipt.Preview)
		receipts.GET("/sessions/:id/print", h.Receipt.Print)
		receipts.GET("/sessions/:id/pdf", h.Receipt.PDF)
		receipts.POST("/sessions/:id/thermal", h.Receipt.Thermal)
	}

	school.GET("/printer/status", h.Printer.GetStatus)
}
