package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/talentforge/hcm/api/audit"
	"github.com/talentforge/hcm/api/config"
	"github.com/talentforge/hcm/api/controller"
	"github.com/talentforge/hcm/api/db"
	logger "github.com/talentforge/hcm/api/logging"
	"github.com/talentforge/hcm/api/router"
	"github.com/talentforge/hcm/api/service"
	"github.com/talentforge/hcm/api/util"
)

func main() {
	// Initialize configuration
	if err := config.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}

	// Initialize logger
	logger.InitLogger("logging")
	defer logger.Sync()

	// Initialize the database
	if err := db.InitDatabase(); err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.CloseDatabase()

	// Migrate the schema and guarantee the Unassigned department exists
	// before the server accepts traffic.
	bootstrapCtx, cancelBootstrap := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.Bootstrap(bootstrapCtx, db.DB, config.GetBool("database.seedDemoData")); err != nil {
		cancelBootstrap()
		logger.Fatal("Failed to bootstrap database", zap.Error(err))
	}
	cancelBootstrap()

	// Initialize Redis
	if err := db.InitRedis(); err != nil {
		logger.Fatal("Failed to initialize Redis", zap.Error(err))
	}
	defer db.CloseRedis()

	// Initialize EventBus
	eventBus := util.NewEventBus()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	eventBus.Start(ctx)

	// Initialize services and utilities
	validationUtil := util.NewValidationUtil()
	cacheService := util.NewCacheService()
	notificationService := util.NewNotificationService()
	var auditService audit.Service
	if auditRepository, err := audit.NewElasticsearchRepository(config.GetString("elasticsearch.url")); err != nil {
		logger.Warn("Audit repository unavailable, mutations will not be audited", zap.Error(err))
	} else {
		auditService = audit.NewService(auditRepository)
	}

	// Initialize services
	services, err := service.InitializeServices(
		db.DB,
		auditService,
		validationUtil,
		cacheService,
		notificationService,
		eventBus,
	)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}

	// Initialize controllers
	healthController := controller.NewHealthController(db.DB, services.EmployeeDAO, services.DepartmentDAO)
	controllers := controller.InitializeControllers(services, healthController)

	// Set up Gin
	if !config.GetBool("server.debug") {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := router.SetupRouter(controllers, 100, time.Minute) // 100 requests per minute

	// Set up the server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", config.GetString("server.port")),
		Handler: engine,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", config.GetString("server.port")))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}
