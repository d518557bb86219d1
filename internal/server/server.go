package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/zokirzonovbek1-art/school-food-system/internal/config"
	"github.com/zokirzonovbek1-art/school-food-system/internal/handler"
	"github.com/zokirzonovbek1-art/school-food-system/internal/repository"
	"github.com/zokirzonovbek1-art/school-food-system/internal/service"
	"github.com/zokirzonovbek1-art/school-food-system/pkg/metrics"
)

type Server struct {
	engine *gin.Engine
	cfg    *config.Config
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	notificationSvc := service.NewNotificationService(notificationRepo, redisClient)
	notificationHandler := handler.NewNotificationHandler(notificationSvc, redisClient)

	authSvc := service.NewAuthService(userRepo)
	authHandler := handler.NewAuthHandler(authSvc)

	userSvc := service.NewUserService(userRepo, notificationSvc)
	userHandler := handler.NewUserHandler(userSvc)

	menuSvc := service.NewMenuService(menuRepo)
	menuHandler := handler.NewMenuHandler(menuSvc)

	orderSvc := service.NewOrderService(orderRepo, menuRepo, notificationSvc)
	orderHandler := handler.NewOrderHandler(orderSvc)

	inventorySvc := service.NewInventoryService(inventoryRepo)
	inventoryHandler := handler.NewInventoryHandler(inventorySvc)

	purchaseSvc := service.NewPurchaseService(purchaseRepo, userRepo, notificationSvc)
	purchaseHandler := handler.NewPurchaseHandler(purchaseSvc)

	settingsSvc := service.NewSettingsService(settingsRepo)
	settingsHandler := handler.NewSettingsHandler(settingsSvc)

	statsSvc := service.NewStatsService(userRepo, orderRepo, purchaseRepo)
	statsHandler := handler.NewStatsHandler(statsSvc)

	paymentSvc := service.NewPaymentService(paymentRepo, userRepo, notificationSvc)
	paymentHandler := handler.NewPaymentHandler(paymentSvc)

	router := gin.New()

	setupCORS(router, cfg)

	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/api/health", "/metrics"},
	}))
	router.Use(metrics.Middleware())

	router.GET("/metrics", metrics.Handler())

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true, "status": "ok"})
		})

		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/register", userHandler.Create)
		}

		users := api.Group("/users")
		{
			users.GET("", userHandler.List)
			users.GET("/search", userHandler.Search)
			users.GET("/export", userHandler.Export)
			users.GET("/:id", userHandler.Get)
			users.POST("", userHandler.Create)
			users.PUT("/:id", userHandler.Update)
			users.DELETE("/:id", userHandler.Delete)
			users.POST("/:id/reset_password", userHandler.ResetPassword)
			users.POST("/:id/toggle_active", userHandler.ToggleActive)
		}

		menu := api.Group("/menu")
		{
			menu.GET("", menuHandler.List)
			menu.GET("/:id", menuHandler.Get)
			menu.POST("", menuHandler.Create)
			menu.PUT("/:id", menuHandler.Update)
			menu.DELETE("/:id", menuHandler.Delete)
		}

		orders := api.Group("/orders")
		{
			orders.GET("", orderHandler.List)
			orders.GET("/:id", orderHandler.Get)
			orders.POST("", orderHandler.Create)
			orders.PUT("/:id", orderHandler.Update)
		}

		inventory := api.Group("/inventory")
		{
			inventory.GET("", inventoryHandler.List)
			inventory.GET("/:id", inventoryHandler.Get)
			inventory.POST("", inventoryHandler.Create)
			inventory.PUT("/:id", inventoryHandler.Update)
			inventory.DELETE("/:id", inventoryHandler.Delete)
		}

		purchases := api.Group("/purchase_requests")
		{
			purchases.GET("", purchaseHandler.List)
			purchases.GET("/:id", purchaseHandler.Get)
			purchases.POST("", purchaseHandler.Create)
			purchases.PUT("/:id", purchaseHandler.Update)
		}

		notifications := api.Group("/notifications")
		{
			notifications.GET("", notificationHandler.List)
			notifications.POST("", notificationHandler.Create)
			notifications.POST("/:id/read", notificationHandler.MarkRead)
			notifications.GET("/ws", notificationHandler.Stream)
		}

		payments := api.Group("/payments")
		{
			payments.GET("", paymentHandler.List)
			payments.GET("/:id", paymentHandler.Get)
			payments.POST("", paymentHandler.Create)
			payments.POST("/:id/complete", paymentHandler.Complete)
		}

		api.GET("/settings", settingsHandler.Get)
		api.PUT("/settings", settingsHandler.Update)

		api.GET("/statistics", statsHandler.Summary)
	}

	return &Server{engine: router, cfg: cfg}
}

func (s *Server) Run() error {
	return s.engine.Run(":" + s.cfg.Port)
}

// Engine exposes the router for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func setupCORS(router *gin.Engine, cfg *config.Config) {
	var origins []string
	if cfg.AllowedOrigins != "" {
		origins = strings.Split(cfg.AllowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
