package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/shulefees-api/internal/application/service"
	"github.com/sangkips/shulefees-api/internal/config"
	domainRepo "github.com/sangkips/shulefees-api/internal/domain/repository"
	"github.com/sangkips/shulefees-api/internal/infrastructure/database"
	"github.com/sangkips/shulefees-api/internal/infrastructure/repository"
	"github.com/sangkips/shulefees-api/internal/infrastructure/session"
	"github.com/sangkips/shulefees-api/internal/presentation/http/dto/request"
	"github.com/sangkips/shulefees-api/internal/presentation/http/handler"
	"github.com/sangkips/shulefees-api/internal/presentation/http/middleware"
	"github.com/sangkips/shulefees-api/internal/presentation/http/routes"
	"github.com/sangkips/shulefees-api/pkg/logger"
	"github.com/sangkips/shulefees-api/pkg/printer"
	"github.com/sangkips/shulefees-api/pkg/utils"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log := logger.Must(cfg.App.IsProduction())
	defer func() { _ = log.Sync() }()

	// Set Gin mode based on environment
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := request.RegisterValidators(); err != nil {
		log.Fatal("failed to register validators", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db, log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Seed default data
	if err := database.SeedDefaultData(db, cfg.Admin, log); err != nil {
		log.Warn("failed to seed default data", zap.Error(err))
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	tenantRepo := repository.NewTenantRepository(db)
	schoolRepo := repository.NewSchoolProfileRepository(db)
	classRepo := repository.NewClassRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize thermal printer
	thermalPrinter, err := printer.New(cfg.Printer.Type, cfg.Printer.USBPath, cfg.Printer.Address)
	if err != nil {
		log.Warn("failed to initialize printer, thermal printing disabled", zap.Error(err))
		thermalPrinter = printer.NewNullPrinter()
	}
	defer thermalPrinter.Close()

	// Receipt sessions live in memory and expire after the configured TTL
	sessions := session.NewStore(cfg.Receipt.SessionTTL, service.ReceiptSession.Clone)
	sessions.StartCleanup(ctx, time.Minute)

	// Initialize services
	authService := service.NewAuthService(userRepo, roleRepo, tenantRepo, schoolRepo, jwtManager, cfg.Subscription.TrialDays, log)
	tenantService := service.NewTenantService(tenantRepo, userRepo, log)
	schoolService := service.NewSchoolService(schoolRepo)
	classService := service.NewClassService(classRepo)
	balanceService := service.NewBalanceService(studentRepo, classRepo, paymentRepo)
	studentService := service.NewStudentService(studentRepo, classRepo, balanceService)
	paymentService := service.NewPaymentService(paymentRepo, studentRepo, log)
	printerService := service.NewPrinterService(thermalPrinter, cfg.Printer.CharWidth, log)
	receiptService := service.NewReceiptService(
		paymentRepo, studentRepo, schoolRepo, tenantRepo,
		balanceService, printerService, sessions, cfg.Receipt, log,
	)
	dashboardService := service.NewDashboardService(analyticsRepo)
	reportService := service.NewReportService(paymentRepo, analyticsRepo, schoolRepo, tenantRepo, cfg.Receipt.Currency)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Tenant:    handler.NewTenantHandler(tenantService),
		School:    handler.NewSchoolHandler(schoolService, tenantService),
		Class:     handler.NewClassHandler(classService),
		Student:   handler.NewStudentHandler(studentService),
		Payment:   handler.NewPaymentHandler(paymentService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Report:    handler.NewReportHandler(reportService),
		Receipt:   handler.NewReceiptHandler(receiptService),
		Printer:   handler.NewPrinterHandler(printerService),
	}

	rateLimiter := middleware.NewTenantRateLimiter(rateLimiterConfig(cfg.RateLimit))
	defer rateLimiter.Stop()

	go purgeIdempotencyKeys(ctx, idempotencyRepo, log)

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Tenants:         tenantService,
		RateLimiter:     rateLimiter,
		Log:             log,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("starting server",
			zap.String("app", cfg.App.Name),
			zap.String("port", port),
			zap.String("env", cfg.App.Env),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}

// rateLimiterConfig converts "Requests per Duration seconds" into a token rate
func rateLimiterConfig(rl config.RateLimitConfig) middleware.RateLimiterConfig {
	cfg := middleware.DefaultRateLimiterConfig()
	if rl.Requests > 0 && rl.Duration > 0 {
		cfg.RequestsPerSecond = float64(rl.Requests) / float64(rl.Duration)
		cfg.BurstSize = rl.Requests
	}
	return cfg
}

func purgeIdempotencyKeys(ctx context.Context, repo domainRepo.IdempotencyRepository, log *zap.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := repo.Purge(ctx, now)
			if err != nil {
				log.Warn("failed to purge idempotency keys", zap.Error(err))
				continue
			}
			if n > 0 {
				log.Debug("purged idempotency keys", zap.Int64("count", n))
			}
		}
	}
}
