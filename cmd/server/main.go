package main

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"curtain_store/internal/config"
	"curtain_store/internal/database"
	"curtain_store/internal/handlers"
	"curtain_store/internal/logger"
	"curtain_store/internal/migrations"
	"curtain_store/internal/orderstore"
	"curtain_store/internal/redis"
	"curtain_store/internal/repository"
	"curtain_store/internal/services"
	"curtain_store/internal/storage"
	"curtain_store/pkg/whatsapp"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	zlog, err := logger.New(cfg.LogLevel, cfg.GinMode == gin.DebugMode)
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL, cfg.LogLevel, zlog)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	err = migrations.RunMigrations(ctx, db, migrations.Options{
		AdminUsername: cfg.AdminUsername,
		AdminPassword: cfg.AdminPassword,
	}, zlog)
	if err != nil {
		zlog.Fatal("failed to migrate database", zap.Error(err))
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		zlog.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer redisClient.Close()

	images, err := storage.NewDiskImageStore(cfg.UploadDir, cfg.UploadsURL(), cfg.MaxUploadBytes)
	if err != nil {
		zlog.Fatal("failed to prepare upload directory", zap.Error(err))
	}

	// Initialize WhatsApp client
	whatsappClient := whatsapp.NewClient(cfg.WhatsAppAPIURL, cfg.WhatsAppUsername, cfg.WhatsAppPassword, cfg.WhatsAppPath, cfg.WhatsAppCountry)
	if !whatsappClient.Enabled() {
		zlog.Info("whatsapp gateway not configured, order confirmations disabled")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	orderItemRepo := repository.NewOrderItemRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryImageRepo := repository.NewCategoryImageRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)

	store := orderstore.New(orderstore.WithLogger(zlog.Named("orderstore")))

	// Initialize services
	notifier := services.NewWhatsAppNotifier(whatsappClient)
	orderService := services.NewOrderService(orderRepo, orderItemRepo, customerRepo, store, notifier, zlog.Named("orders"))
	storefrontService := services.NewStorefrontService(redisClient, productRepo, orderService, zlog.Named("storefront"), cfg.SessionTTL(), cfg.LockTTL())
	catalogService := services.NewCatalogService(productRepo, categoryImageRepo, images, zlog.Named("catalog"))
	userService := services.NewUserService(userRepo)
	authService := services.NewAuthService(userService, redisClient, cfg.TokenTTL())
	quoteService := services.NewQuoteService(quoteRepo)
	reportService := services.NewReportService(store, orderService)

	if cfg.DemoOrderFeed {
		orderstore.SeedDemo(store, 25, rand.New(rand.NewSource(time.Now().UnixNano())))
		zlog.Info("demo order feed enabled", zap.Int("orders", len(store.Orders())))
	} else if err := orderService.LoadStore(ctx, time.Now().AddDate(0, 0, -cfg.StoreSeedDays)); err != nil {
		zlog.Fatal("failed to load order store", zap.Error(err))
	}

	// Initialize handlers
	apiHandler := handlers.NewAPIHandler(storefrontService, catalogService, quoteService)
	adminHandler := handlers.NewAdminHandler(orderService, catalogService, userService, authService, quoteService, reportService)
	whatsappHandler := handlers.NewWhatsAppHandler(whatsappClient, orderService, notifier, zlog.Named("whatsapp"))

	// Setup routes
	router := gin.New()
	router.Use(gin.Recovery(), handlers.RequestLogger(zlog.Named("http")))
	router.Static("/uploads", cfg.UploadDir)
	router.GET("/healthz", func(c *gin.Context) {
		if err := redisClient.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "redis unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	handlers.RegisterRoutes(router, apiHandler, adminHandler, whatsappHandler, authService)

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// Open order streams end when the process is signalled.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go func() {
		zlog.Info("server starting", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
	}
}
