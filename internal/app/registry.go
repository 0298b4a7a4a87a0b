package app

import (
	"database/sql"

	"staffops/internal/bankaccount"
	"staffops/internal/client"
	"staffops/internal/messaging/kafka"
	"staffops/internal/notification"
	"staffops/internal/payroll"
	"staffops/internal/profile"
	"staffops/internal/project"
	"staffops/internal/roster"
	"staffops/internal/workinghour"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	logger := zap.L()

	// --- Repositories ---
	clientRepo := client.NewRepository(gormDB)
	projectRepo := project.NewRepository(gormDB)
	bankAccountRepo := bankaccount.NewRepository(gormDB)
	profileRepo := profile.NewRepository(gormDB)
	rosterRepo := roster.NewRepository(gormDB)
	workingHourRepo := workinghour.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	clientService := client.NewService(db, clientRepo)
	projectService := project.NewService(db, projectRepo)
	bankAccountService := bankaccount.NewService(db, bankAccountRepo)
	profileService := profile.NewService(db, profileRepo)
	rosterService := roster.NewService(db, rosterRepo, logger)
	workingHourService := workinghour.NewService(db, workingHourRepo, logger)
	notificationService := notification.NewService(notificationRepo)
	payrollService := payroll.NewService(
		db,
		payrollRepo,
		workingHourRepo,
		outboxRepo,
		notificationService,
		payroll.DefaultDeductionPolicy(),
		logger,
	)

	// --- Handlers ---
	clientHandler := client.NewHandler(clientService)
	projectHandler := project.NewHandler(projectService)
	bankAccountHandler := bankaccount.NewHandler(bankAccountService)
	profileHandler := profile.NewHandler(profileService)
	rosterHandler := roster.NewHandler(rosterService)
	workingHourHandler := workinghour.NewHandler(workingHourService)
	payrollHandler := payroll.NewHandlerWithRedis(payrollService, rdb)
	notificationHandler := notification.NewHandler(notificationService)

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		client.RegisterRoutes(api, clientHandler)
		project.RegisterRoutes(api, projectHandler)
		bankaccount.RegisterRoutes(api, bankAccountHandler)
		profile.RegisterRoutes(api, profileHandler)
		roster.RegisterRoutes(api, rosterHandler)
		workinghour.RegisterRoutes(api, workingHourHandler)
		payroll.RegisterRoutes(api, payrollHandler, rdb)
		notification.RegisterRoutes(api, notificationHandler)
	}

	return nil
}
