package main

import (
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	fumigationapp "github.com/rsetiawan/agrostock/application/fumigation"
	harvestapp "github.com/rsetiawan/agrostock/application/harvest"
	productapp "github.com/rsetiawan/agrostock/application/product"
	purchaseapp "github.com/rsetiawan/agrostock/application/purchase"
	transferapp "github.com/rsetiawan/agrostock/application/transfer"
	userapp "github.com/rsetiawan/agrostock/application/user"
	warehouseapp "github.com/rsetiawan/agrostock/application/warehouse"
	"github.com/rsetiawan/agrostock/cmd/config"
	redisclient "github.com/rsetiawan/agrostock/cmd/redis"
	_ "github.com/rsetiawan/agrostock/docs"
	fumigationRepo "github.com/rsetiawan/agrostock/repository/fumigation"
	harvestRepo "github.com/rsetiawan/agrostock/repository/harvest"
	productRepo "github.com/rsetiawan/agrostock/repository/product"
	purchaseRepo "github.com/rsetiawan/agrostock/repository/purchase"
	redisRepo "github.com/rsetiawan/agrostock/repository/redis"
	transferRepo "github.com/rsetiawan/agrostock/repository/transfer"
	txRepo "github.com/rsetiawan/agrostock/repository/tx"
	userRepo "github.com/rsetiawan/agrostock/repository/user"
	warehouseRepo "github.com/rsetiawan/agrostock/repository/warehouse"
	"github.com/rsetiawan/agrostock/thirdparty/rabbitmq"
	"github.com/rsetiawan/agrostock/transport"
	"github.com/rsetiawan/agrostock/utils/logger"
	"go.uber.org/zap"
)

// @title AGROSTOCK API
// @version 1.0
// @description Farm stock management API
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize global logger
	if err := logger.Init(cfg.Environment); err != nil {
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment))

	// Connect to database
	db, err := sqlx.Connect("mysql", cfg.GetDSN())
	if err != nil {
		logger.Fatal("err connect db", zap.Error(err))
	}

	// Initialize Redis client
	if err := redisclient.New(cfg); err != nil {
		logger.Fatal("err connect redis", zap.Error(err))
	}
	defer func() {
		_ = redisclient.Close()
	}()

	// Set database connection pool settings
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// RabbitMQ is optional: transfer expiration and low-stock alerts degrade
	// gracefully when the broker is unavailable.
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
	if err != nil {
		logger.Warn("rabbitmq unavailable, messaging disabled", zap.Error(err))
		publisher = nil
	} else {
		defer publisher.Close()
	}

	// Initialize repositories
	TxRepo := txRepo.NewTxRepository(db)
	UserRepo := userRepo.NewUserRepository(db)
	RedisRepo := redisRepo.NewRepository()
	ProductRepo := productRepo.NewProductRepository(db)
	WarehouseRepo := warehouseRepo.NewWarehouseRepository(db)
	FumigationRepo := fumigationRepo.NewFumigationRepository(db)
	HarvestRepo := harvestRepo.NewHarvestRepository(db)
	TransferRepo := transferRepo.NewTransferRepository(db)
	PurchaseRepo := purchaseRepo.NewPurchaseRepository(db)

	// Initialize application layers
	UserApp := userapp.NewUserApp(cfg, UserRepo, RedisRepo)
	ProductApp := productapp.NewProductApp(cfg, ProductRepo, WarehouseRepo, RedisRepo)
	WarehouseApp := warehouseapp.NewWarehouseApp(WarehouseRepo)
	FumigationApp := fumigationapp.NewFumigationApp(TxRepo, FumigationRepo, ProductRepo, publisher)
	HarvestApp := harvestapp.NewHarvestApp(TxRepo, HarvestRepo, ProductRepo, WarehouseRepo, publisher)
	TransferApp := transferapp.NewTransferApp(cfg, TxRepo, TransferRepo, ProductRepo, WarehouseRepo, publisher)
	PurchaseApp := purchaseapp.NewPurchaseApp(TxRepo, PurchaseRepo, ProductRepo, WarehouseRepo)

	httpTransport := transport.NewTransport(&transport.RestHandler{
		UserApp:       UserApp,
		ProductApp:    ProductApp,
		FumigationApp: FumigationApp,
		HarvestApp:    HarvestApp,
		TransferApp:   TransferApp,
		PurchaseApp:   PurchaseApp,
		WarehouseApp:  WarehouseApp,
	}, cfg.Server.InternalAPIKey)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
	err = server.ListenAndServe()
	if err != nil {
		logger.Fatal("failed server", zap.Error(err))
	}
}
