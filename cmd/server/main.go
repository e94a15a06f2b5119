package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/booktime/backend/internal/application/catalog"
	checkoutapp "github.com/booktime/backend/internal/application/checkout"
	contactapp "github.com/booktime/backend/internal/application/contact"
	customerapp "github.com/booktime/backend/internal/application/customer"
	"github.com/booktime/backend/internal/infrastructure/auth"
	"github.com/booktime/backend/internal/infrastructure/config"
	"github.com/booktime/backend/internal/infrastructure/logger"
	"github.com/booktime/backend/internal/infrastructure/mail"
	"github.com/booktime/backend/internal/infrastructure/persistence"
	"github.com/booktime/backend/internal/infrastructure/session"
	"github.com/booktime/backend/internal/infrastructure/storage"
	"github.com/booktime/backend/internal/interfaces/http/handler"
	"github.com/booktime/backend/internal/interfaces/http/middleware"
	"github.com/booktime/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log := logger.New(cfg.Log)
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Booktime backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with a GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Basket session store (Redis, in-memory fallback outside production)
	sessionFactory := session.NewStoreFactory(cfg.Redis,
		session.WithLogger(log),
		session.WithInMemoryFallback(cfg.App.Env != "production"),
	)
	sessionStore, err := sessionFactory.CreateStore()
	if err != nil {
		log.Fatal("Failed to create basket session store", zap.Error(err))
	}
	defer func() {
		_ = sessionStore.Close()
	}()

	// Object storage for product images
	var imageStorage catalogapp.ObjectStorage
	switch cfg.Storage.Backend {
	case "s3":
		imageStorage, err = storage.NewS3Storage(cfg.Storage.S3, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to create S3 storage", zap.Error(err))
		}
	default:
		imageStorage, err = storage.NewLocalStorage(cfg.Storage.LocalPath)
		if err != nil {
			log.Fatal("Failed to create local storage", zap.Error(err))
		}
	}

	// Outbound mail for the contact form
	var mailer contactapp.Mailer
	if cfg.Mail.Host != "" {
		mailer = mail.NewSMTPMailer(cfg.Mail)
	} else {
		mailer = mail.NewLogMailer(log)
		log.Warn("No SMTP host configured, contact mail goes to the log")
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	tagRepo := persistence.NewGormProductTagRepository(db.DB)
	imageRepo := persistence.NewGormProductImageRepository(db.DB)
	addressRepo := persistence.NewGormAddressRepository(db.DB)
	basketRepo := persistence.NewGormBasketRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	checkoutTxScope := persistence.NewGormCheckoutTransactionScope(db.DB)

	// Services
	jwtService := auth.NewJWTService(cfg.JWT)
	productService := catalogapp.NewProductService(productRepo, tagRepo)
	productService.SetConfig(catalogapp.ProductServiceConfig{PageSize: cfg.Catalog.PageSize})
	tagService := catalogapp.NewTagService(tagRepo)
	imageService := catalogapp.NewImageService(imageRepo, productRepo, imageStorage, log)
	addressService := customerapp.NewAddressService(addressRepo)
	basketService := checkoutapp.NewBasketService(basketRepo, productRepo, log)
	checkoutService := checkoutapp.NewCheckoutService(checkoutTxScope, addressRepo, log)
	orderService := checkoutapp.NewOrderService(orderRepo)
	contactService := contactapp.NewService(mailer, cfg.Mail.Recipients, log)

	// Session cookie settings shared by middleware and handlers
	sessionConfig := middleware.BasketSessionConfig{
		Store:        sessionStore,
		CookieDomain: cfg.HTTP.CookieDomain,
		CookieSecure: cfg.HTTP.CookieSecure,
		Logger:       log,
	}

	// Handlers
	catalogHandler := handler.NewCatalogHandler(productService, tagService, imageService)
	basketHandler := handler.NewBasketHandler(basketService, sessionConfig, log)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService, orderService, basketService, sessionConfig, log)
	addressHandler := handler.NewAddressHandler(addressService)
	orderHandler := handler.NewOrderHandler(orderService)
	contactHandler := handler.NewContactHandler(contactService)
	systemHandler := handler.NewSystemHandler(db)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", systemHandler.Health)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Every API request may carry a login token and a basket cookie
	r.Use(middleware.OptionalJWTAuthMiddleware(jwtService))
	r.Use(middleware.BasketSession(sessionConfig))

	authRequired := middleware.JWTAuthMiddleware(jwtService)
	staffOnly := middleware.RequireStaff()

	// Storefront catalog
	catalogRoutes := router.NewDomainGroup("catalog", "/catalog")
	catalogRoutes.GET("/products", catalogHandler.ListProducts)
	catalogRoutes.GET("/products/:slug", catalogHandler.GetProduct)
	catalogRoutes.GET("/tags", catalogHandler.ListTags)
	catalogRoutes.GET("/tags/:slug", catalogHandler.GetTag)

	// Basket
	basketRoutes := router.NewDomainGroup("basket", "/basket")
	basketRoutes.GET("", basketHandler.Get)
	basketRoutes.POST("/items", basketHandler.AddProduct)
	basketRoutes.PUT("/items/:productId", basketHandler.UpdateLine)
	basketRoutes.DELETE("/items/:productId", basketHandler.RemoveProduct)
	basketRoutes.POST("/claim", authRequired, basketHandler.Claim)

	// Checkout and the customer's own orders
	checkoutRoutes := router.NewDomainGroup("checkout", "/checkout")
	checkoutRoutes.Use(authRequired)
	checkoutRoutes.POST("/orders", checkoutHandler.CreateOrder)
	checkoutRoutes.GET("/orders", checkoutHandler.ListMyOrders)
	checkoutRoutes.GET("/orders/:id", checkoutHandler.GetMyOrder)

	// Address book
	addressRoutes := router.NewDomainGroup("addresses", "/addresses")
	addressRoutes.GET("/countries", addressHandler.Countries)
	addressRoutes.POST("", authRequired, addressHandler.Create)
	addressRoutes.GET("", authRequired, addressHandler.List)
	addressRoutes.GET("/:id", authRequired, addressHandler.Get)
	addressRoutes.PUT("/:id", authRequired, addressHandler.Update)
	addressRoutes.DELETE("/:id", authRequired, addressHandler.Delete)

	// Contact form
	contactRoutes := router.NewDomainGroup("contact", "/contact")
	contactRoutes.POST("", contactHandler.Send)

	// Staff dashboard
	adminRoutes := router.NewDomainGroup("admin", "/admin")
	adminRoutes.Use(authRequired, staffOnly)
	adminRoutes.GET("/products", catalogHandler.ListAllProducts)
	adminRoutes.POST("/products", catalogHandler.CreateProduct)
	adminRoutes.PUT("/products/:id", catalogHandler.UpdateProduct)
	adminRoutes.DELETE("/products/:id", catalogHandler.DeleteProduct)
	adminRoutes.POST("/products/:id/images", catalogHandler.UploadImage)
	adminRoutes.GET("/products/:id/images", catalogHandler.ListImages)
	adminRoutes.DELETE("/products/:id/images/:imageId", catalogHandler.DeleteImage)
	adminRoutes.POST("/tags", catalogHandler.CreateTag)
	adminRoutes.PUT("/tags/:id", catalogHandler.UpdateTag)
	adminRoutes.DELETE("/tags/:id", catalogHandler.DeleteTag)
	adminRoutes.GET("/orders", orderHandler.List)
	adminRoutes.GET("/orders/:id", orderHandler.Get)
	adminRoutes.PUT("/orders/:id/status", orderHandler.UpdateStatus)
	adminRoutes.PUT("/orders/:id/lines/:lineId/status", orderHandler.UpdateLineStatus)
	adminRoutes.PUT("/orders/:id/contact", orderHandler.AssignContact)

	// System
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)

	r.Register(catalogRoutes).
		Register(basketRoutes).
		Register(checkoutRoutes).
		Register(addressRoutes).
		Register(contactRoutes).
		Register(adminRoutes).
		Register(systemRoutes)

	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
