package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	_ "isp-billing/docs"
	"isp-billing/internal/api"
	"isp-billing/internal/batch"
	"isp-billing/internal/config"
	"isp-billing/internal/domain/auth"
	"isp-billing/internal/domain/customer"
	"isp-billing/internal/domain/dashboard"
	"isp-billing/internal/event"
	rediscache "isp-billing/internal/infrastructure/cache/redis"
	"isp-billing/internal/infrastructure/database/postgres"
	"isp-billing/internal/infrastructure/logging"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

const adminPasswordEnv = "ISP_ADMIN_PASSWORD"

// @title ISP Billing Admin API
// @version 1.0
// @description Administrator API for the ISP billing panel: customer list, customer records, exports and dashboard.

// @contact.name API Support
// @contact.email support@isp-billing.local

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	createAdmin := flag.String("create-admin", "", "create or update the administrator with this email (password read from "+adminPasswordEnv+") and exit")
	adminName := flag.String("admin-name", "Administrator", "display name used with -create-admin")
	flag.Parse()

	cfg, logger := initializeApp()

	dbPool := initializeDatabase(cfg, logger)
	defer closeDatabase(dbPool, logger)

	if *createAdmin != "" {
		adminRepo := postgres.NewAdminUserRepository(dbPool, logger)
		if err := bootstrapAdmin(context.Background(), adminRepo, *createAdmin, *adminName, os.Getenv(adminPasswordEnv), logger); err != nil {
			logger.Error("Failed to create administrator", slog.Any("error", err))
			os.Exit(1)
		}
		return
	}

	rootCtx, cancelRoot := context.WithCancel(context.Background())
	defer cancelRoot()

	rabbitMQConn := initializeRabbitMQ(cfg, logger)
	redisClient := initializeRedisClient(rootCtx, cfg, logger)
	services, sessions := initializeServices(cfg, dbPool, rabbitMQConn, redisClient, logger)

	sweepJob := batch.NewSessionSweepJob(sessions, cfg.Batch.SessionMaxIdle, logger)
	cronScheduler := startBatchJobs(cfg, logger, sweepJob)
	router := api.SetupRouter(rootCtx, services, cfg, logger)

	srv, serverErrors, shutdownChan := startServer(cfg, router, logger)
	handleShutdown(srv, cronScheduler, rabbitMQConn, redisClient, shutdownChan, serverErrors, logger)
}

func initializeApp() (*config.Config, *slog.Logger) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.Logger)
	slog.SetDefault(logger)
	logger.Info("Application starting...", "config_source", viper.ConfigFileUsed())

	if err := validateConfig(cfg); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	return cfg, logger
}

func validateConfig(cfg *config.Config) error {
	if cfg.Server.Auth.Enabled && cfg.Server.Auth.JWTSecret == "" {
		return fmt.Errorf("server.auth.jwtSecret must be set when auth is enabled")
	}
	if cfg.Server.Auth.SessionTTL <= 0 || cfg.Server.Auth.RememberTTL <= 0 {
		return fmt.Errorf("server.auth session and remember TTLs must be positive")
	}
	if cfg.Customers.PageSize <= 0 {
		return fmt.Errorf("customers.pageSize must be positive, got %d", cfg.Customers.PageSize)
	}
	return nil
}

func initializeDatabase(cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
	logger.Info("Initializing database connection pool...")
	dbPool, err := postgres.NewConnectionPool(context.Background(), cfg.Database, logger)
	if err != nil {
		logger.Error("Failed to initialize database connection pool", "error", err)
		os.Exit(1)
	}
	return dbPool
}

func closeDatabase(dbPool *pgxpool.Pool, logger *slog.Logger) {
	logger.Info("Closing database connection pool...")
	dbPool.Close()
}

func initializeRedisClient(ctx context.Context, cfg *config.Config, logger *slog.Logger) *redis.Client {
	rdb, err := rediscache.NewClient(ctx, cfg.Redis, logger)
	if err != nil {
		logger.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	return rdb
}

// initializeRabbitMQ returns nil when event publishing is disabled or the
// broker cannot be reached; customers are still saved without events.
func initializeRabbitMQ(cfg *config.Config, logger *slog.Logger) *amqp.Connection {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("RabbitMQ disabled, customer events will not be published.")
		return nil
	}
	conn, err := setupRabbitMQ(cfg, logger)
	if err != nil {
		logger.Warn("Continuing without RabbitMQ", "error", err)
		return nil
	}
	return conn
}

func initializeServices(cfg *config.Config, dbPool *pgxpool.Pool, rabbitConn *amqp.Connection, redisClient *redis.Client, logger *slog.Logger) (api.Services, *customer.Sessions) {
	logger.Info("Initializing application components...")

	var publisher event.EventPublisher = event.NoopPublisher{}
	if rabbitConn != nil {
		p, err := event.NewRabbitMQEventPublisher(rabbitConn, cfg.RabbitMQ.ExchangeName, logger)
		if err != nil {
			logger.Warn("Failed to set up event publisher, events will be dropped", "error", err)
		} else {
			publisher = p
		}
	}

	customerRepo := postgres.NewCustomerRepository(dbPool, logger)
	adminRepo := postgres.NewAdminUserRepository(dbPool, logger)
	revocations := rediscache.NewRevocationStore(redisClient, cfg.Redis.KeyPrefix, logger)

	source := customer.NewCustomerService(customerRepo, publisher, logger)
	sessions := customer.NewSessions(source, customer.ListOptions{
		PageSize: cfg.Customers.PageSize,
		Policy:   customer.FormPolicy{Packages: cfg.Customers.Packages},
	}, logger)

	return api.Services{
		Auth:      auth.NewAuthService(adminRepo, revocations, cfg.Server.Auth, logger),
		Sessions:  sessions,
		Dashboard: dashboard.NewService(source, logger),
	}, sessions
}

type adminUpserter interface {
	Upsert(ctx context.Context, acc auth.Account) error
}

func bootstrapAdmin(ctx context.Context, store adminUpserter, email, name, password string, logger *slog.Logger) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return fmt.Errorf("administrator email is required")
	}
	if len(password) < 8 {
		return fmt.Errorf("%s must hold a password of at least 8 characters", adminPasswordEnv)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	acc := auth.Account{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
	}
	if err := store.Upsert(ctx, acc); err != nil {
		return fmt.Errorf("failed to store administrator: %w", err)
	}

	logger.Info("Administrator saved", "email", email)
	return nil
}

func startServer(cfg *config.Config, router http.Handler, logger *slog.Logger) (*http.Server, <-chan error, <-chan os.Signal) {
	logger.Info("Setting up HTTP server...", "port", cfg.Server.Port)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Server listening on port %d", cfg.Server.Port))
		err := srv.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			serverErrors <- err
		} else {
			logger.Info("Server closed gracefully.")
			serverErrors <- nil
		}
	}()
	return srv, serverErrors, shutdownChan
}

func handleShutdown(srv *http.Server, cronScheduler *cron.Cron, rabbitConn *amqp.Connection, redisClient *redis.Client,
	shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) {
	logger.Info("Shutdown handler started. Waiting for signal or server error...")

	triggerReason := waitForShutdownTrigger(shutdownChan, serverErrors, logger)

	logger.Info("Starting graceful shutdown...", "trigger", triggerReason)

	stopCronScheduler(cronScheduler, logger)
	shutdownHTTPServer(srv, serverErrors, logger)
	closeRabbitMQConnection(rabbitConn, logger)
	rediscache.Close(redisClient, logger)

	logger.Info("Application shutdown process complete.")
}

func waitForShutdownTrigger(shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) string {
	select {
	case sig := <-shutdownChan:
		logger.Info("Shutdown signal received.", "signal", sig.String())
		return "signal: " + sig.String()
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server exited unexpectedly before signal", "error", err)
			os.Exit(1)
		}
		logger.Info("Server goroutine finished before signal.", "error", err)
		return "server exited"
	}
}

func stopCronScheduler(cronScheduler *cron.Cron, logger *slog.Logger) {
	logger.Info("Stopping cron scheduler...")
	cronCtx := cronScheduler.Stop()
	select {
	case <-cronCtx.Done():
		logger.Info("Cron scheduler stopped gracefully.")
	case <-time.After(15 * time.Second):
		logger.Warn("Cron scheduler shutdown timed out.")
	}
}

func closeRabbitMQConnection(rabbitConn *amqp.Connection, logger *slog.Logger) {
	if rabbitConn == nil {
		logger.Info("RabbitMQ connection was not established, skipping close.")
		return
	}
	if rabbitConn.IsClosed() {
		logger.Info("RabbitMQ connection already closed, skipping close.")
		return
	}
	logger.Info("Closing RabbitMQ connection...")
	if err := rabbitConn.Close(); err != nil {
		logger.Error("Failed to close RabbitMQ connection gracefully", slog.Any("error", err))
		return
	}
	logger.Info("RabbitMQ connection closed.")
}

func shutdownHTTPServer(srv *http.Server, serverErrors <-chan error, logger *slog.Logger) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Info("Attempting graceful HTTP server shutdown...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful HTTP server shutdown failed", "error", err)
		if closeErr := srv.Close(); closeErr != nil {
			logger.Error("HTTP server close failed", "error", closeErr)
		}
	} else {
		logger.Info("HTTP server shutdown complete.")
	}

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("Server goroutine exited with unexpected error after shutdown", "error", err)
		} else {
			logger.Info("Server goroutine confirmed exit.")
		}
	case <-time.After(5 * time.Second):
		logger.Warn("Timed out waiting for server goroutine confirmation.")
	}
}

func startBatchJobs(cfg *config.Config, logger *slog.Logger, sweepJob *batch.SessionSweepJob) *cron.Cron {
	logger.Info("Initializing batch job scheduler...")
	c := cron.New()

	scheduleSpec := cfg.Batch.SessionSweepSchedule
	if scheduleSpec == "" {
		scheduleSpec = "*/15 * * * *"
		logger.Warn("Session sweep schedule not configured, using default", "schedule", scheduleSpec)
	}

	jobID, err := c.AddJob(scheduleSpec, cron.FuncJob(func() {
		jobLogger := logger.With("job_name", "SessionSweep")
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if runErr := sweepJob.Run(ctx); runErr != nil {
			jobLogger.Error("Session sweep job finished with error", slog.Any("error", runErr))
		}
	}))
	if err != nil {
		logger.Error("Failed to schedule session sweep job", "schedule", scheduleSpec, slog.Any("error", err))
	} else {
		logger.Info("Scheduled session sweep job", "schedule", scheduleSpec, "job_id", jobID)
	}

	c.Start()
	logger.Info("Cron scheduler started.")
	return c
}

func connectRabbitMQ(uri string, logger *slog.Logger) (*amqp.Connection, error) {
	var conn *amqp.Connection
	var err error
	retryCount := 5
	for i := 1; i <= retryCount; i++ {
		conn, err = amqp.Dial(uri)
		if err == nil {
			logger.Info("Successfully connected to RabbitMQ")

			go func() {
				blockChan := conn.NotifyBlocked(make(chan amqp.Blocking))
				closeChan := conn.NotifyClose(make(chan *amqp.Error))

				select {
				case b := <-blockChan:
					logger.Warn("RabbitMQ Connection Blocked", "reason", b.Reason)
				case e := <-closeChan:
					if e != nil {
						logger.Error("RabbitMQ Connection Closed", slog.Any("error", e))
					}
				}
			}()

			return conn, nil
		}
		logger.Warn("Failed to connect to RabbitMQ, retrying...",
			slog.Int("attempt", i),
			slog.Int("max_attempts", retryCount),
			slog.Any("error", err),
		)
		time.Sleep(time.Duration(i*2) * time.Second)
	}
	return nil, fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", retryCount, err)
}

func rabbitMQURI(cfg config.RabbitMQConfig) (string, error) {
	if cfg.Host == "" {
		return "", fmt.Errorf("RabbitMQ host is not configured")
	}
	if (cfg.Username == "") != (cfg.Password == "") {
		return "", fmt.Errorf("RabbitMQ username and password must be provided together")
	}

	hostPort := cfg.Host
	if cfg.Port != 0 {
		hostPort = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	}
	if cfg.Username != "" {
		return fmt.Sprintf("amqp://%s:%s@%s/", cfg.Username, cfg.Password, hostPort), nil
	}
	return fmt.Sprintf("amqp://%s/", hostPort), nil
}

func setupRabbitMQ(cfg *config.Config, logger *slog.Logger) (*amqp.Connection, error) {
	uri, err := rabbitMQURI(cfg.RabbitMQ)
	if err != nil {
		return nil, err
	}

	conn, err := connectRabbitMQ(uri, logger)
	if err != nil {
		logger.Error("Failed to connect to RabbitMQ", "error", err)
		return nil, err
	}
	return conn, nil
}
