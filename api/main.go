package main

import (
	"context"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/warehouse-api/internal/alerts"
	"github.com/rogerio-castellano/warehouse-api/internal/auth"
	"github.com/rogerio-castellano/warehouse-api/internal/cache"
	"github.com/rogerio-castellano/warehouse-api/internal/config"
	"github.com/rogerio-castellano/warehouse-api/internal/db"
	"github.com/rogerio-castellano/warehouse-api/internal/events"
	api "github.com/rogerio-castellano/warehouse-api/internal/http"
	"github.com/rogerio-castellano/warehouse-api/internal/http/handlers"
	rl "github.com/rogerio-castellano/warehouse-api/internal/http/rate_limiter"
	"github.com/rogerio-castellano/warehouse-api/internal/logging"
	"github.com/rogerio-castellano/warehouse-api/internal/models"
	"github.com/rogerio-castellano/warehouse-api/internal/repo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var ctx = context.Background()

// @title Warehouse API
// @version 1.0
// @description REST API for listing warehouse products and logging stock transactions.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	_ = godotenv.Load()

	logger, err := logging.Init()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.Load()
	auth.SetSecret(cfg.JWTSecret)

	go rl.StartVisitorCleanupLoop()

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Fatal("could not connect to Redis", zap.Error(err))
		}
		defer rdb.Close()

		handlers.SetProductCache(cache.NewProductCache(rdb, ctx, cfg.CacheTTL))
		alerts.SetRedisClient(rdb, ctx)
		go alerts.StartDailyLowStockSummary(24 * time.Hour)
	}

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("could not connect to database", zap.Error(err))
	}
	defer database.Close()

	if err := db.EnsureSchema(database); err != nil {
		logger.Fatal("could not ensure schema", zap.Error(err))
	}

	userRepo := repo.NewPostgresUserRepository(database)
	handlers.SetProductRepo(repo.NewPostgresProductRepository(database))
	handlers.SetLedgerRepo(repo.NewPostgresLedgerRepository(database))
	handlers.SetUserRepo(userRepo)
	handlers.SetPageSize(cfg.PageSize)
	handlers.SetLowStockThreshold(cfg.LowStockThreshold)

	seedAdminUser(userRepo, cfg, logger)

	publisher := events.NewPublisher(cfg.KafkaBroker, cfg.KafkaTopic)
	defer publisher.Close()
	handlers.SetPublisher(publisher)

	r := api.NewRouter()
	logger.Info("server running", zap.String("addr", cfg.Addr))
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

// seedAdminUser creates the configured admin account on first boot so login
// verifies a stored bcrypt hash instead of a hardcoded credential pair.
func seedAdminUser(users repo.UserRepository, cfg config.Config, logger *zap.Logger) {
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return
	}

	if _, err := users.GetByUsername(cfg.AdminUsername); err == nil {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Fatal("could not hash admin password", zap.Error(err))
	}

	_, err = users.CreateUser(models.User{
		Username:     cfg.AdminUsername,
		PasswordHash: string(hash),
		Role:         "admin",
	})
	if err != nil {
		logger.Fatal("could not seed admin user", zap.Error(err))
	}
	logger.Info("seeded admin user", zap.String("username", cfg.AdminUsername))
}
