package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "go-grocery/docs/swagger"
	cartadapters "go-grocery/internal/cart/adapters"
	cartapp "go-grocery/internal/cart/application"
	cartinfra "go-grocery/internal/cart/infrastructure"
	catalogadapters "go-grocery/internal/catalog/adapters"
	catalogapp "go-grocery/internal/catalog/application"
	cataloginfra "go-grocery/internal/catalog/infrastructure"
	customeradapters "go-grocery/internal/customers/adapters"
	customerapp "go-grocery/internal/customers/application"
	customerinfra "go-grocery/internal/customers/infrastructure"
	identityadapters "go-grocery/internal/identity/adapters"
	identityapp "go-grocery/internal/identity/application"
	identityinfra "go-grocery/internal/identity/infrastructure"
	identityports "go-grocery/internal/identity/ports"
	orderadapters "go-grocery/internal/orders/adapters"
	orderapp "go-grocery/internal/orders/application"
	orderinfra "go-grocery/internal/orders/infrastructure"
	orderports "go-grocery/internal/orders/ports"
	"go-grocery/pkg/auth"
	"go-grocery/pkg/config"
	"go-grocery/pkg/logger"
	"go-grocery/pkg/middleware"
	"go-grocery/pkg/mongodb"
	"go-grocery/pkg/rabbitmq"
	"go-grocery/pkg/tls"
)

// @title Grocery Backend API
// @version 1.0
// @description E-commerce backend: catalog, cart, orders, customers and users.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	log := logger.New(cfg.ServiceName, cfg.LogLevel, cfg.LogFormat)
	defer log.Sync()

	log.Info("starting " + cfg.ServiceName)

	// Connect to MongoDB
	connectCtx, connectCancel := context.WithTimeout(context.Background(), cfg.MongoTimeout)
	db, err := mongodb.Connect(connectCtx, mongodb.Config{
		URI:      cfg.MongoURI,
		Database: cfg.MongoDatabase,
		Timeout:  cfg.MongoTimeout,
	})
	connectCancel()
	if err != nil {
		log.Fatal("failed to connect to MongoDB: " + err.Error())
	}
	defer mongodb.Disconnect(context.Background(), db)
	log.Info("connected to MongoDB")

	// Repositories
	productRepo := catalogadapters.NewMongoProductRepository(db)
	cartRepo := cartadapters.NewMongoCartRepository(db)
	orderRepo := orderadapters.NewMongoOrderRepository(db)
	customerRepo := customeradapters.NewMongoCustomerRepository(db)
	userRepo := identityadapters.NewMongoUserRepository(db)

	indexCtx, indexCancel := context.WithTimeout(context.Background(), cfg.MongoTimeout)
	ensureIndexes(indexCtx, log, map[string]func(context.Context) error{
		"carts":     cartRepo.EnsureIndexes,
		"orders":    orderRepo.EnsureIndexes,
		"customers": customerRepo.EnsureIndexes,
		"users":     userRepo.EnsureIndexes,
	})
	indexCancel()

	// Connect to RabbitMQ; events are optional
	var orderPublisher orderports.EventPublisher
	var userPublisher identityports.EventPublisher
	rabbitConn, err := rabbitmq.NewConnection(cfg.RabbitMQURL, log)
	if err != nil {
		log.Warn("failed to connect to RabbitMQ, events will be disabled: " + err.Error())
	} else {
		defer rabbitConn.Close()

		if pub, err := orderadapters.NewEventPublisher(rabbitConn, log); err != nil {
			log.Warn("failed to create order publisher: " + err.Error())
		} else {
			orderPublisher = pub
		}
		if pub, err := identityadapters.NewEventPublisher(rabbitConn, log); err != nil {
			log.Warn("failed to create user publisher: " + err.Error())
		} else {
			userPublisher = pub
		}
	}

	// Use cases
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiration)
	catalogUseCase := catalogapp.NewProductUseCase(productRepo, log)
	cartUseCase := cartapp.NewCartUseCase(cartRepo, cartadapters.NewCatalogClient(catalogUseCase), log)
	orderUseCase := orderapp.NewOrderUseCase(orderRepo, orderadapters.NewCatalogClient(catalogUseCase), orderPublisher, log)
	customerUseCase := customerapp.NewCustomerUseCase(customerRepo, log)
	userUseCase := identityapp.NewUserUseCase(userRepo, tokens, userPublisher, log)

	// HTTP server
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(middleware.TraceID())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.ErrorHandler(log))
	router.Use(middleware.CORS())

	authenticate := middleware.Authenticate(tokens)

	api := router.Group("/api/v1")
	cataloginfra.NewHTTPHandler(catalogUseCase).RegisterRoutes(api, authenticate)
	cartinfra.NewHTTPHandler(cartUseCase).RegisterRoutes(api, authenticate)
	orderinfra.NewHTTPHandler(orderUseCase).RegisterRoutes(api, authenticate)
	customerinfra.NewHTTPHandler(customerUseCase).RegisterRoutes(api, authenticate)
	identityinfra.NewHTTPHandler(userUseCase).RegisterRoutes(api, authenticate)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	httpServer := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  cfg.HTTPTimeout,
		WriteTimeout: cfg.HTTPTimeout,
	}

	go func() {
		log.Info("HTTP server listening on :" + cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error: " + err.Error())
		}
	}()

	var httpsServer *http.Server
	if cfg.TLSEnabled {
		tlsConfig, err := tls.ServerConfig(cfg.TLSCertFile, cfg.TLSKeyFile)
		if err != nil {
			log.Fatal("failed to load TLS config: " + err.Error())
		}

		httpsServer = &http.Server{
			Addr:         ":" + cfg.HTTPSPort,
			Handler:      router,
			TLSConfig:    tlsConfig,
			ReadTimeout:  cfg.HTTPTimeout,
			WriteTimeout: cfg.HTTPTimeout,
		}

		go func() {
			log.Info("HTTPS server listening on :" + cfg.HTTPSPort)
			if err := httpsServer.ListenAndServeTLS("", ""); err != nil && err != http.ErrServerClosed {
				log.Fatal("HTTPS server error: " + err.Error())
			}
		}()
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down servers...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP shutdown error: " + err.Error())
	}
	if httpsServer != nil {
		if err := httpsServer.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTPS shutdown error: " + err.Error())
		}
	}

	log.Info("servers stopped")
}

func ensureIndexes(ctx context.Context, log *logger.Logger, builders map[string]func(context.Context) error) {
	for name, build := range builders {
		if err := build(ctx); err != nil {
			log.Warn("failed to create indexes for " + name + ": " + err.Error())
		}
	}
}
