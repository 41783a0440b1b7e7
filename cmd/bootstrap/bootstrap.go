package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dental-clinic-api/config"
	deliveryHttp "dental-clinic-api/internal/delivery/http"
	"dental-clinic-api/internal/delivery/http/handler"
	"dental-clinic-api/internal/delivery/http/middleware"
	"dental-clinic-api/internal/infrastructure/cache"
	"dental-clinic-api/internal/infrastructure/database"
	"dental-clinic-api/internal/repository"
	"dental-clinic-api/internal/service"
	"dental-clinic-api/internal/usecase"
	"dental-clinic-api/pkg/jwt"
	"dental-clinic-api/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
	Sweeper     *service.AbsenceSweeper
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Run schema migrations
	if err := database.RunMigrations(db, cfg.DB); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	logrus.Info("Migrations applied successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	server, sweeper := initializeServer(cfg, db, redisClient)
	app.Server = server
	app.Sweeper = sweeper

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server and the background
// sweep.
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*http.Server, *service.AbsenceSweeper) {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	dentistRepo := repository.NewDentistProfileRepository(db)
	patientRepo := repository.NewPatientProfileRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	officeRepo := repository.NewOfficeRepository(db)
	recordRepo := repository.NewClinicalRecordRepository(db)
	treatmentRepo := repository.NewTreatmentRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	// Initialize services
	tokenStore := service.NewRedisTokenStore(redisClient)
	auditService := service.NewAuditService(log, auditRepo)
	historyPDF := service.NewHistoryPDF()
	sweeper := service.NewAbsenceSweeper(log, appointmentRepo, auditService, cfg.Sweep)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, dentistRepo, patientRepo, jwtService, tokenStore, auditService)
	appointmentUsecase := usecase.NewAppointmentUsecase(log, appointmentRepo, dentistRepo, serviceRepo, auditService)
	serviceUsecase := usecase.NewServiceUsecase(log, serviceRepo, auditService)
	officeUsecase := usecase.NewOfficeUsecase(log, officeRepo, auditService)
	recordUsecase := usecase.NewClinicalRecordUsecase(log, recordRepo, treatmentRepo, patientRepo, historyPDF, auditService)
	doctorUsecase := usecase.NewDoctorUsecase(log, dentistRepo)
	patientUsecase := usecase.NewPatientUsecase(log, patientRepo, userRepo, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(log, auditRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	serviceHandler := handler.NewServiceHandler(serviceUsecase, customValidator)
	officeHandler := handler.NewOfficeHandler(officeUsecase, customValidator)
	recordHandler := handler.NewClinicalRecordHandler(recordUsecase, customValidator)
	doctorHandler := handler.NewDoctorHandler(doctorUsecase)
	patientHandler := handler.NewPatientHandler(patientUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, tokenStore)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		appointmentHandler,
		serviceHandler,
		officeHandler,
		recordHandler,
		doctorHandler,
		patientHandler,
		auditLogHandler,
		authMiddleware,
		corsMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}

	return server, sweeper
}

// Run starts the HTTP server, the daily sweep and handles graceful shutdown
func (app *App) Run() {
	app.Sweeper.Start()

	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Stop the background sweep before dropping connections
	app.Sweeper.Stop()

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
