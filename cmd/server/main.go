package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/estatebooks/backend/docs"
	financeapp "github.com/estatebooks/backend/internal/application/finance"
	identityapp "github.com/estatebooks/backend/internal/application/identity"
	salesapp "github.com/estatebooks/backend/internal/application/sales"
	"github.com/estatebooks/backend/internal/infrastructure/auth"
	"github.com/estatebooks/backend/internal/infrastructure/config"
	"github.com/estatebooks/backend/internal/infrastructure/logger"
	"github.com/estatebooks/backend/internal/infrastructure/persistence"
	"github.com/estatebooks/backend/internal/interfaces/http/handler"
	"github.com/estatebooks/backend/internal/interfaces/http/middleware"
	"github.com/estatebooks/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

//	@title			EstateBooks Backend API
//	@version		1.0
//	@description	Real estate sales back-office API - payment tracking, cancellations, refunds and two-tier financial approvals

//	@contact.name	API Support
//	@contact.url	https://github.com/estatebooks/backend

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting EstateBooks Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	cancellationRepo := persistence.NewGormCancellationRepository(db.DB)
	refundRepo := persistence.NewGormRefundRepository(db.DB)
	receiptRepo := persistence.NewGormReceiptRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	ledgerPoster := persistence.NewGormLedgerPoster(db.DB)

	// Initialize application services
	saleService := salesapp.NewSaleService(saleRepo)
	cancellationService := financeapp.NewCancellationService(cancellationRepo, saleRepo)
	refundService := financeapp.NewRefundService(refundRepo, cancellationRepo, ledgerPoster)
	receiptService := financeapp.NewReceiptService(receiptRepo, saleRepo, ledgerPoster)
	expenseService := financeapp.NewExpenseService(expenseRepo, ledgerPoster)
	queueService := financeapp.NewApprovalQueueService(receiptRepo, expenseRepo, refundRepo)

	// Identity services (auth)
	jwtService := auth.NewJWTService(cfg.JWT)
	tokenBlacklist := newTokenBlacklist(cfg, log)
	authService := identityapp.NewAuthService(userRepo, jwtService, tokenBlacklist, identityapp.DefaultAuthServiceConfig(), log)

	// Initialize HTTP handlers
	saleHandler := handler.NewSaleHandler(saleService)
	cancellationHandler := handler.NewCancellationHandler(cancellationService)
	refundHandler := handler.NewRefundHandler(refundService)
	receiptHandler := handler.NewReceiptHandler(receiptService)
	expenseHandler := handler.NewExpenseHandler(expenseService)
	queueHandler := handler.NewApprovalQueueHandler(queueService)
	authHandler := handler.NewAuthHandler(authService)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	// 7. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Swagger documentation
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to API routes
	// Configure skip paths for public endpoints
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: tokenBlacklist,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Sales domain (sale records, payment tracking)
	salesRoutes := router.NewDomainGroup("sales", "/sales")
	salesRoutes.POST("", saleHandler.Create)
	salesRoutes.GET("", saleHandler.List)
	salesRoutes.GET("/:id", saleHandler.GetByID)
	salesRoutes.POST("/:id/payments", saleHandler.RecordPayment)
	salesRoutes.POST("/:id/hold", saleHandler.Hold)
	salesRoutes.POST("/:id/resume", saleHandler.Resume)

	// Cancellation requests with refund computation
	cancellationRoutes := router.NewDomainGroup("cancellations", "/cancellations")
	cancellationRoutes.POST("", cancellationHandler.Create)
	cancellationRoutes.GET("", cancellationHandler.List)
	cancellationRoutes.GET("/:id", cancellationHandler.GetByID)
	cancellationRoutes.POST("/:id/approve", middleware.RequireApprover(), cancellationHandler.Approve)
	cancellationRoutes.POST("/:id/reject", middleware.RequireApprover(), cancellationHandler.Reject)

	// Refund installments
	refundRoutes := router.NewDomainGroup("refunds", "/refunds")
	refundRoutes.POST("/schedule", refundHandler.CreateSchedule)
	refundRoutes.GET("", refundHandler.List)
	refundRoutes.GET("/:id", refundHandler.GetByID)
	refundRoutes.POST("/:id/submit", refundHandler.Submit)
	refundRoutes.POST("/:id/approve", middleware.RequireApprover(), refundHandler.Approve)
	refundRoutes.POST("/:id/reject", middleware.RequireApprover(), refundHandler.Reject)
	refundRoutes.POST("/:id/mark-paid", refundHandler.MarkPaid)

	// Receipt vouchers
	receiptRoutes := router.NewDomainGroup("receipts", "/receipts")
	receiptRoutes.POST("", receiptHandler.Create)
	receiptRoutes.GET("", receiptHandler.List)
	receiptRoutes.GET("/:id", receiptHandler.GetByID)
	receiptRoutes.PUT("/:id", receiptHandler.Update)
	receiptRoutes.POST("/:id/submit", receiptHandler.Submit)
	receiptRoutes.POST("/:id/approve", middleware.RequireApprover(), receiptHandler.Approve)
	receiptRoutes.POST("/:id/reject", middleware.RequireApprover(), receiptHandler.Reject)

	// Expense vouchers
	expenseRoutes := router.NewDomainGroup("expenses", "/expenses")
	expenseRoutes.POST("", expenseHandler.Create)
	expenseRoutes.GET("", expenseHandler.List)
	expenseRoutes.GET("/:id", expenseHandler.GetByID)
	expenseRoutes.PUT("/:id", expenseHandler.Update)
	expenseRoutes.POST("/:id/submit", expenseHandler.Submit)
	expenseRoutes.POST("/:id/approve", middleware.RequireApprover(), expenseHandler.Approve)
	expenseRoutes.POST("/:id/reject", middleware.RequireApprover(), expenseHandler.Reject)

	// Merged pending-approval queue for approvers
	approvalRoutes := router.NewDomainGroup("approvals", "/approvals")
	approvalRoutes.GET("/queue", middleware.RequireApprover(), queueHandler.GetQueue)

	// Identity domain (authentication)
	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/logout", authHandler.Logout)
	authRoutes.GET("/me", authHandler.GetCurrentUser)
	authRoutes.PUT("/password", authHandler.ChangePassword)

	// System routes
	systemHandler := handler.NewSystemHandler()
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	// Register all domain groups
	r.Register(salesRoutes).
		Register(cancellationRoutes).
		Register(refundRoutes).
		Register(receiptRoutes).
		Register(expenseRoutes).
		Register(approvalRoutes).
		Register(authRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// newTokenBlacklist connects to Redis for token revocation, falling back to an
// in-process blacklist when Redis is unavailable
func newTokenBlacklist(cfg *config.Config, log *zap.Logger) auth.TokenBlacklist {
	blacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		return auth.NewInMemoryTokenBlacklist()
	}
	log.Info("Redis token blacklist connected",
		zap.String("host", cfg.Redis.Host),
		zap.Int("port", cfg.Redis.Port),
	)
	return blacklist
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
