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

	"offerPilot/app/echo-server/router"
	"offerPilot/business/catalog"
	"offerPilot/business/curated"
	"offerPilot/business/profile"
	"offerPilot/business/recommend"
	"offerPilot/business/savings"
	userService "offerPilot/business/user"
	"offerPilot/internal/middleware"
	"offerPilot/internal/repository/csvfeed"
	"offerPilot/internal/repository/encoder"
	"offerPilot/internal/repository/jsonlcatalog"
	"offerPilot/internal/repository/notification"
	psqlRepo "offerPilot/internal/repository/postgres"
	redisRepo "offerPilot/internal/repository/redis"
	"offerPilot/internal/rest"
	"offerPilot/pkg/config"
	"offerPilot/pkg/database"
	redisdb "offerPilot/pkg/database/redis"
	"offerPilot/pkg/logger"
	"offerPilot/pkg/metrics"
	"offerPilot/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting OfferPilot", "version", cfg.App.Version)

	utils.InitJWT(cfg.JWT.SecretKey)
	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to redis", "error", err)
	}
	defer func() {
		if err := redisdb.CloseRedisClient(redisClient); err != nil {
			logger.Warn("Failed to close redis client", "error", err)
		}
	}()

	// Init notification from mailjet
	mailjetEmail := notification.NewMailjetRepository(
		notification.MailjetConfig{
			MailjetBaseURL:           cfg.Mailjet.MailjetBaseUrl,
			MailjetBasicAuthUsername: cfg.Mailjet.MailjetBasicAuthUsername,
			MailjetBasicAuthPassword: cfg.Mailjet.MailjetBasicAuthPassword,
			MailjetSenderEmail:       cfg.Mailjet.MailjetSenderEmail,
			MailjetSenderName:        cfg.Mailjet.MailjetSenderName,
		},
	)

	encoderRepo := encoder.NewRepository(encoder.Config{
		BaseURL: cfg.Encoder.BaseUrl,
		APIKey:  cfg.Encoder.APIKey,
		Timeout: time.Duration(cfg.Encoder.TimeoutSeconds) * time.Second,
	})

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	vendorRepo := psqlRepo.NewVendorRepository(db)
	txnRepo := psqlRepo.NewTransactionRepository(db)
	cfgRepo := psqlRepo.NewRecoConfigRepository(db)
	curatedRepo := psqlRepo.NewCuratedOfferRepository(db)
	redemptionRepo := psqlRepo.NewRedemptionRepository(db)
	itemPriceRepo := psqlRepo.NewItemPriceRepository(db)
	categoryRepo := psqlRepo.NewCategoryRepository(db)
	vectorCache := redisRepo.NewVectorCache(redisClient, time.Duration(cfg.Engine.VectorCacheTTLHours)*time.Hour)

	// Init service
	defaultEngineCfg := recommend.DefaultConfig()
	defaultEngineCfg.WindowDays = cfg.Engine.WindowDays
	defaultEngineCfg.AnchorCount = cfg.Engine.AnchorCount
	defaultEngineCfg.PanelSize = cfg.Engine.PanelSize
	defaultEngineCfg.TauDays = cfg.Engine.TauDays

	vendorCatalog := recommend.NewCatalog(vendorRepo, encoderRepo, vectorCache)
	recoService := recommend.NewService(txnRepo, cfgRepo, itemPriceRepo, vendorCatalog, encoderRepo, defaultEngineCfg)
	profileService := profile.NewService(txnRepo)
	curatedService := curated.NewService(curatedRepo, vendorRepo)
	savingsService := savings.NewService(redemptionRepo)
	catalogService := catalog.NewService(vendorRepo, categoryRepo, jsonlcatalog.NewRepository())
	usrService := userService.NewUserService(userRepo, validate, mailjetEmail, cfg.App.AppEmailVerificationKey, cfg.App.AppDeploymentUrl)

	// Init handler
	userHandler := rest.NewUserHandler(usrService)
	recoHandler := rest.NewRecommendationHandler(recoService, curatedService)
	profileHandler := rest.NewProfileHandler(profileService)
	vendorHandler := rest.NewVendorHandler(catalogService)
	txnHandler := rest.NewTransactionHandler(txnRepo, csvfeed.NewRepository())
	recoAdminHandler := rest.NewRecoAdminHandler(cfgRepo, curatedService)
	savingsHandler := rest.NewSavingsHandler(savingsService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.RequestID())

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler)
	router.SetRecommendationRoutes(api, recoHandler)
	router.SetProfileRoutes(api, profileHandler)
	router.SetupVendorRoutes(api, vendorHandler)
	router.SetTransactionRoutes(api, txnHandler)
	router.SetRecoAdminRoutes(api, recoAdminHandler)
	router.SetSavingsRoutes(api, savingsHandler)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
