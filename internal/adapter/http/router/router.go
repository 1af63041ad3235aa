package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/adapter/http/handler"
	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/adapter/http/middleware"
	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/adapter/repository/postgres"
	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/domain/repository"
	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/infrastructure/cache"
	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/usecase"
)

// Deps are the collaborators the HTTP API is built from. Redis and Models may be nil.
type Deps struct {
	DB               *gorm.DB
	Redis            *redis.Client
	Models           handler.ModelService
	Predictor        usecase.Predictor
	CacheTTL         time.Duration
	MaxNotifications int
	MaxUploadBytes   int64
	Logger           *zap.Logger
}

// Setup creates and configures the Gin router
func Setup(deps Deps) *gin.Engine {
	router := gin.New()

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(deps.Logger))
	router.Use(middleware.Recovery(deps.Logger))
	router.Use(middleware.CORS())

	// Health endpoints
	healthHandler := handler.NewHealthHandler(deps.DB, deps.Redis, deps.Models)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Initialize repositories
	runRepo := postgres.NewRunRepository(deps.DB)
	recordRepo := postgres.NewPredictionRecordRepository(deps.DB)
	notificationRepo := postgres.NewNotificationRepository(deps.DB)

	var labelCache repository.LabelCache
	if deps.Redis != nil {
		labelCache = cache.NewLabelCache(deps.Redis, deps.CacheTTL)
	}

	// Initialize usecases
	classifyUC := usecase.NewClassifyUsecase(deps.Predictor, labelCache, deps.Logger)
	runUC := usecase.NewRunUsecase(runRepo, recordRepo, notificationRepo, deps.Predictor, deps.MaxNotifications, deps.Logger)

	// Initialize handlers
	classifyHandler := handler.NewClassifyHandler(classifyUC)
	runHandler := handler.NewRunHandler(runUC, deps.MaxUploadBytes)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/classify", classifyHandler.Classify)
		v1.POST("/rules/label", classifyHandler.LabelByRules)

		// Run routes
		runs := v1.Group("/runs")
		{
			runs.POST("", runHandler.CreateRun)
			runs.POST("/csv", runHandler.UploadCSV)
			runs.GET("", runHandler.ListRuns)
			runs.GET("/:id", runHandler.GetRun)
			runs.GET("/:id/records", runHandler.GetRecords)
			runs.GET("/:id/notifications", runHandler.GetNotifications)
		}
	}

	return router
}
