package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "spothop-backend/docs"
	"spothop-backend/internal/common/cache"
	"spothop-backend/internal/common/config"
	"spothop-backend/internal/common/logger"
	"spothop-backend/internal/common/middleware"
	contesthttp "spothop-backend/internal/features/contest/delivery/http"
	contestrepo "spothop-backend/internal/features/contest/repository/postgres"
	contestservice "spothop-backend/internal/features/contest/service"
	mediahttp "spothop-backend/internal/features/media/delivery/http"
	mediarepo "spothop-backend/internal/features/media/repository/postgres"
	mediaservice "spothop-backend/internal/features/media/service"
	spothttp "spothop-backend/internal/features/spot/delivery/http"
	spotrepo "spothop-backend/internal/features/spot/repository/postgres"
	spotservice "spothop-backend/internal/features/spot/service"
	userhttp "spothop-backend/internal/features/user/delivery/http"
	userrepo "spothop-backend/internal/features/user/repository/postgres"
	userservice "spothop-backend/internal/features/user/service"
	"spothop-backend/internal/platform/postgres"
	"spothop-backend/internal/platform/redis"
)

// @title           SpotHop API
// @version         1.0
// @description     Backend for SpotHop, a location-based community for skaters: spots, media, contests.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Access token issued by the hosted auth provider, sent as "Bearer <token>"

// @tag.name users
// @tag.description Profiles and the follow graph

// @tag.name spots
// @tag.description Spot catalog, favorites and comments

// @tag.name media
// @tag.description Photo and video metadata registry

// @tag.name contests
// @tag.description Contest lifecycle, eligibility, entries and voting

func main() {
	cfg := config.Load()
	logger.Init("spothop-backend", cfg.Debug)

	log := logger.Component("main")
	log.Info().Bool("debug", cfg.Debug).Msg("starting spothop backend")

	ctx := context.Background()

	postgresClient, err := postgres.NewClient(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer postgresClient.Close()

	redisClient, err := redis.NewClient(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()

	cacheService := cache.NewCacheService(redisClient)

	pool := postgresClient.Pool()
	userRepository := userrepo.NewPostgresRepository(pool)
	spotRepository := spotrepo.NewPostgresRepository(pool)
	mediaRepository := mediarepo.NewPostgresRepository(pool)
	contestRepository := contestrepo.NewPostgresRepository(pool)

	userSvc := userservice.NewUserService(userRepository, cacheService, cfg.Cache.UserTTL)
	spotSvc := spotservice.NewSpotService(spotRepository, cacheService, cfg.Cache.SpotTTL)
	mediaSvc := mediaservice.NewMediaService(mediaRepository, spotRepository, cacheService, cfg.Cache.SpotTTL)
	contestSvc := contestservice.NewContestService(contestRepository, mediaRepository, spotSvc, cacheService, cfg.Cache.ContestTTL)

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler(logger.Component("http")))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.Origin}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", "Accept", "X-Request-ID"}
	router.Use(cors.New(corsConfig))

	setupRoutes(router, cfg, userSvc, spotSvc, mediaSvc, contestSvc, postgresClient, redisClient)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	log.Info().Msg("server exited")
}

func setupRoutes(
	router *gin.Engine,
	cfg *config.Config,
	userSvc *userservice.UserService,
	spotSvc *spotservice.SpotService,
	mediaSvc *mediaservice.MediaService,
	contestSvc *contestservice.ContestService,
	postgresClient *postgres.Client,
	redisClient *redis.Client,
) {
	v1 := router.Group("/api/v1")
	v1.Use(middleware.Auth(cfg.Auth.JWTSecret))

	userhttp.NewUserHandler(userSvc).RegisterRoutes(v1)
	spothttp.NewSpotHandler(spotSvc).RegisterRoutes(v1)
	mediahttp.NewMediaHandler(mediaSvc).RegisterRoutes(v1)
	contesthttp.NewContestHandler(contestSvc).RegisterRoutes(v1, middleware.AdminOnly(cfg.IsAdmin))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"service":   "spothop-backend",
		})
	})

	router.GET("/live", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := postgresClient.HealthCheck(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unready",
				"error":  "postgres unavailable",
			})
			return
		}
		if err := redisClient.HealthCheck(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unready",
				"error":  "redis unavailable",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "ready",
			"timestamp": time.Now().UTC(),
			"service":   "spothop-backend",
		})
	})
}
