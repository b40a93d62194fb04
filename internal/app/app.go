package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"insurancelk_backend/internal/config"
	"insurancelk_backend/internal/email"
	"insurancelk_backend/internal/handlers"
	"insurancelk_backend/internal/logger"
	"insurancelk_backend/internal/middleware"
	"insurancelk_backend/internal/models"
	"insurancelk_backend/internal/notifier"
	"insurancelk_backend/internal/repositories"
	"insurancelk_backend/internal/routes"
	"insurancelk_backend/internal/services"
	"insurancelk_backend/internal/storage"
	"insurancelk_backend/internal/validator"
	"insurancelk_backend/internal/workers"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := gormDB.AutoMigrate(
		&models.Policy{},
		&models.Payment{},
		&models.BankSlipDetails{},
		&models.OnlinePaymentDetails{},
		&models.AdminNotification{},
		&models.UserNotification{},
	); err != nil {
		logger.Fatal("Auto migration failed", "error", err)
	}

	if err := seedPolicies(gormDB); err != nil {
		logger.Fatal("Failed to seed policies", "error", err)
	}

	serviceContainer := initializeServices(cfg, gormDB)
	ginRouter := SetupRouter(cfg, gormDB, serviceContainer)

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()
	notificationWorker := workers.NewNotificationWorker(
		serviceContainer.AdminNotificationService,
		time.Duration(cfg.Notifier.ScheduleIntervalSeconds)*time.Second,
	)
	notificationWorker.Start(workerCtx)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB, serviceContainer *services.ServiceContainer) *gin.Engine {
	appHandlers := initializeHandlers(cfg, serviceContainer)

	ginRouter := initializeGinRouter(gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers)
	return ginRouter
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB) *services.ServiceContainer {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:       cfg.Storage.Type,
		BasePath:   cfg.Storage.BasePath,
		BaseURL:    cfg.Storage.BaseURL,
		Bucket:     cfg.Storage.Bucket,
		Region:     cfg.Storage.Region,
		AccessKey:  cfg.Storage.AccessKey,
		SecretKey:  cfg.Storage.SecretKey,
		Endpoint:   cfg.Storage.Endpoint,
		PublicRead: cfg.Storage.PublicRead,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	var emailService email.Provider
	if cfg.Email.SMTPHost != "" {
		emailService, err = email.NewSMTPProvider(&email.SMTPConfig{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
		})
		if err != nil {
			logger.Fatal("Failed to initialize email provider", "error", err)
		}
	} else {
		logger.Warn("SMTP is not configured. Using mock email provider.")
		emailService = &MockEmailProvider{}
	}

	paymentRepo := repositories.NewPaymentRepository(gormDB)
	policyRepo := repositories.NewPolicyRepository(gormDB)
	adminNotificationRepo := repositories.NewAdminNotificationRepository(gormDB)
	userNotificationRepo := repositories.NewUserNotificationRepository(gormDB)

	directory := notifier.NewStaticDirectory()
	subject := notifier.NewSubject()
	subject.Attach(notifier.NewDatabaseObserver(directory, userNotificationRepo))
	subject.Attach(notifier.NewLogObserver())
	subject.Attach(notifier.NewEmailObserver(directory, emailService))

	paymentService := services.NewPaymentService(
		paymentRepo,
		policyRepo,
		storageInstance,
		services.NewSimulatedAuthorizer(),
	)
	adminNotificationService := services.NewAdminNotificationService(
		adminNotificationRepo,
		subject,
		services.NewRangeEstimator(),
	)
	userNotificationService := services.NewUserNotificationService(userNotificationRepo)

	return &services.ServiceContainer{
		PaymentService:           paymentService,
		AdminNotificationService: adminNotificationService,
		UserNotificationService:  userNotificationService,
		EmailService:             emailService,
		Storage:                  storageInstance,
	}
}

func initializeHandlers(cfg *config.Config, serviceContainer *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		PaymentHandler: handlers.NewPaymentHandler(
			baseHandler,
			serviceContainer.PaymentService,
			cfg.Upload.MaxSize,
			cfg.Upload.AllowedTypes,
		),
		AdminPaymentHandler:     handlers.NewAdminPaymentHandler(baseHandler, serviceContainer.PaymentService),
		NotificationHandler:     handlers.NewNotificationHandler(baseHandler, serviceContainer.AdminNotificationService),
		UserNotificationHandler: handlers.NewUserNotificationHandler(baseHandler, serviceContainer.UserNotificationService),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

// seedPolicies inserts a starter set of payable policies on an empty
// database so payments can be exercised right after first boot.
func seedPolicies(db *gorm.DB) error {
	policyRepo := repositories.NewPolicyRepository(db)

	count, err := policyRepo.Count()
	if err != nil {
		return fmt.Errorf("failed to count policies: %w", err)
	}
	if count > 0 {
		logger.Info("Policies already seeded. Skipping.", "count", count)
		return nil
	}

	logger.Warn("No policies found. Seeding starter policies...")
	seed := []models.Policy{
		{Name: "Full Motor Cover", VehicleType: "Car", PremiumAmount: 4500, Status: models.PolicyStatusActive, HolderUserID: "u1"},
		{Name: "Third Party Motor", VehicleType: "Motorcycle", PremiumAmount: 1200, Status: models.PolicyStatusActive, HolderUserID: "u2"},
		{Name: "Commercial Fleet Cover", VehicleType: "Truck", PremiumAmount: 9800, Status: models.PolicyStatusApproved, HolderUserID: "u3"},
	}
	for i := range seed {
		if err := policyRepo.Create(&seed[i]); err != nil {
			return fmt.Errorf("failed to seed policy %q: %w", seed[i].Name, err)
		}
	}
	logger.Info("Seeded starter policies", "count", len(seed))
	return nil
}
