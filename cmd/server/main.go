package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	grpchealth "google.golang.org/grpc/health"

	"github.com/yishak-cs/BazaarSetu/internal/catalog"
	"github.com/yishak-cs/BazaarSetu/internal/database"
	"github.com/yishak-cs/BazaarSetu/internal/handlers"
	"github.com/yishak-cs/BazaarSetu/internal/health"
	"github.com/yishak-cs/BazaarSetu/internal/services"
	"github.com/yishak-cs/BazaarSetu/pkg/helper"
)

const (
	shutdownTimeout = 10 * time.Second
	healthInterval  = 30 * time.Second
	purgeInterval   = time.Hour
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v\n", err)
	}

	config, err := helper.LoadConfigFromEnv()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := helper.NewLogger(config.Env, config.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(config, logger); err != nil {
		logger.Fatal("server stopped with error", zap.Error(err))
	}
	logger.Info("server exited properly")
}

func run(config helper.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cat := catalog.Default()
	monitor := health.NewMonitor(grpchealth.NewServer(), 5*time.Second, logger.Named("health"))

	// Cart snapshots
	var snapshots services.SnapshotStore
	var sqliteStore *database.SnapshotStore
	if config.SQLitePath != "" {
		store, err := database.OpenSnapshotStore(ctx, config.SQLitePath, logger.Named("sqlite"))
		if err != nil {
			return errors.Wrap(err, "open snapshot store")
		}
		defer store.Close()
		sqliteStore, snapshots = store, store
		monitor.Register("sqlite", store.Health)
	} else {
		logger.Warn("SQLITE_PATH is empty, carts will not survive a restart")
	}

	// Order history
	var history services.OrderHistory = services.NewMemoryHistory()
	if config.Neo4jEnabled() {
		neo4jClient, err := database.NewNeo4jClient(ctx, config.Neo4j, logger.Named("neo4j"))
		if err != nil {
			return errors.Wrap(err, "connect to neo4j")
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := neo4jClient.Close(closeCtx); err != nil {
				logger.Error("error closing neo4j connection", zap.Error(err))
			}
		}()

		migrator := database.NewMigrator(neo4jClient, logger.Named("migrate"))
		if err := migrator.Migrate(ctx, cat.All()); err != nil {
			return errors.Wrap(err, "migrate neo4j")
		}
		if status, err := migrator.Status(ctx); err != nil {
			logger.Warn("failed to read graph status", zap.Error(err))
		} else {
			logger.Info("order graph ready", zap.Any("counts", status))
		}

		history = database.NewOrderHistory(neo4jClient)
		monitor.Register("neo4j", neo4jClient.Health)
	} else {
		logger.Info("NEO4J_URI is empty, order history is kept in memory")
	}

	// Initialize services
	sessions := services.NewSessionManager(snapshots, logger.Named("sessions"))
	coupons := services.NewCouponBook(catalog.DefaultCoupons())
	payment := services.NewMockPayment(config.PaymentSuccessRate, config.PaymentDelay, logger.Named("payment"))

	apiHandler := handlers.NewAPIHandler(handlers.Services{
		Catalog:         cat,
		Sessions:        sessions,
		Voice:           services.NewVoiceMatcher(cat),
		Advice:          services.NewAdviceEngine(logger.Named("advice")),
		Coupons:         coupons,
		Bulk:            services.NewBulkService(cat),
		Checkout:        services.NewCheckoutService(coupons, payment, history, logger.Named("checkout")),
		Auth:            services.NewAuthService(sessions, logger.Named("auth")),
		Recommendations: services.NewRecommendationService(history, logger.Named("recommendations")),
		Supplier:        services.NewSupplierService(history, services.NewInventory(cat, catalog.DefaultStock()), logger.Named("supplier")),
		Health:          monitor,
	}, config.DefaultLocale, logger.Named("api"))

	// Setup Gin router
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), handlers.RequestLogger(logger.Named("http")), handlers.CORS())
	apiHandler.SetupRoutes(router)

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found", "code": "not_found"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "not found", "code": "not_found"})
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", config.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	grpcServer := health.NewGRPCServer(monitor.Server())
	grpcListener, err := net.Listen("tcp", fmt.Sprintf(":%s", config.GRPCPort))
	if err != nil {
		return errors.Wrapf(err, "listen on grpc port %s", config.GRPCPort)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server starting", zap.String("port", config.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "http server")
		}
		return nil
	})

	g.Go(func() error {
		logger.Info("grpc health server starting", zap.String("port", config.GRPCPort))
		if err := grpcServer.Serve(grpcListener); err != nil {
			return errors.Wrap(err, "grpc server")
		}
		return nil
	})

	g.Go(func() error {
		return monitor.Run(gctx, healthInterval)
	})

	if sqliteStore != nil {
		g.Go(func() error {
			return purgeSnapshots(gctx, sqliteStore, config.SnapshotTTL, logger)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		monitor.Shutdown()
		stopped := make(chan struct{})
		go func() {
			grpcServer.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-shutdownCtx.Done():
			grpcServer.Stop()
		}

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "server forced to shutdown")
		}
		return nil
	})

	return g.Wait()
}

// purgeSnapshots drops abandoned carts older than ttl once per purgeInterval
func purgeSnapshots(ctx context.Context, store *database.SnapshotStore, ttl time.Duration, logger *zap.Logger) error {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			n, err := store.PurgeOlderThan(ctx, time.Now().Add(-ttl))
			if err != nil {
				logger.Warn("snapshot purge failed", zap.Error(err))
				continue
			}
			if n > 0 {
				logger.Info("purged stale cart snapshots", zap.Int64("count", n))
			}
		}
	}
}
