package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/ashmilgit15/scheduler-backend/api/swagger"
	"github.com/ashmilgit15/scheduler-backend/internal/handler"
	internalmiddleware "github.com/ashmilgit15/scheduler-backend/internal/middleware"
	"github.com/ashmilgit15/scheduler-backend/internal/repository"
	"github.com/ashmilgit15/scheduler-backend/internal/service"
	"github.com/ashmilgit15/scheduler-backend/pkg/config"
	"github.com/ashmilgit15/scheduler-backend/pkg/groq"
	"github.com/ashmilgit15/scheduler-backend/pkg/logger"
	corsmiddleware "github.com/ashmilgit15/scheduler-backend/pkg/middleware/cors"
	reqidmiddleware "github.com/ashmilgit15/scheduler-backend/pkg/middleware/requestid"
)

// @title Exam Scheduler API
// @version 1.0.0
// @description AI-Driven Practical Exam Scheduler for Engineering Colleges
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if cfg.Cache.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		cacheRepo = repository.NewCacheRepository(client, logr)
	}
	cache := service.NewCacheService(cacheRepo, metrics, cfg.Cache.TTL, logr, cfg.Cache.Enabled)

	allocation := service.NewAllocationService(cfg.Capacity, logr)
	validation := service.NewValidationService(cfg.Capacity, nil, logr)
	schedule := service.NewScheduleService(allocation, validation, logr)
	datePlan := service.NewDatePlanService(cfg.Capacity, logr)
	exporter := service.NewExportService(logr)
	vision := service.NewVisionService(groq.NewClient(cfg.Vision, logr), cache, metrics, cfg.Cache.TTL, logr)

	scheduleHandler := handler.NewScheduleHandler(schedule, datePlan, exporter, metrics)
	uploadHandler := handler.NewUploadHandler(vision)
	metricsHandler := handler.NewMetricsHandler(metrics)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	api := r.Group(cfg.APIPrefix)
	{
		scheduleGroup := api.Group("/schedule")
		scheduleGroup.POST("/generate", scheduleHandler.Generate)
		scheduleGroup.POST("/validate", scheduleHandler.Validate)
		scheduleGroup.POST("/auto-select-dates", scheduleHandler.AutoSelectDates)
		scheduleGroup.POST("/calculate-requirements", scheduleHandler.CalculateRequirements)
		scheduleGroup.POST("/export", scheduleHandler.Export)

		uploadGroup := api.Group("/upload")
		uploadGroup.POST("/parse-file", uploadHandler.ParseFile)
		uploadGroup.POST("/analyze-image", uploadHandler.AnalyzeImage)
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env,
		"vision_enabled", cfg.Vision.Enabled(), "cache_enabled", cfg.Cache.Enabled)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
